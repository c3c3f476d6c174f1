package client

import (
	"context"
	"time"
)

// User is the public account shape returned by the server.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Client interface {
	Register(ctx context.Context, username, password string) (*User, error)
	Login(ctx context.Context, username, password string) (string, error)
	Me(ctx context.Context, token string) (*User, error)
	Ping(ctx context.Context) error
}
