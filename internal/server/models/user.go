package models

import "time"

// User is a registered account. PasswordHash never leaves the server: the
// GraphQL User type exposes only ID, Username and the timestamps.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
