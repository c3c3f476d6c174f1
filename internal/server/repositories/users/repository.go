package users

import (
	"context"

	"github.com/dmitrijs2005/gqlauth/internal/server/models"
)

// Repository is the credential store. Lookups return common.ErrorNotFound for
// missing rows; Create returns common.ErrorAlreadyExists when the username is taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}
