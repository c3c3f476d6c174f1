package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/gqlauth/internal/common"
	"github.com/dmitrijs2005/gqlauth/internal/logging"
	"github.com/dmitrijs2005/gqlauth/internal/server/models"
)

// UserFinder looks users up by id. It returns common.ErrorNotFound for
// unknown ids.
type UserFinder interface {
	UserByID(ctx context.Context, id int64) (*models.User, error)
}

// Identity is the outcome of authenticating one request.
//
//   - User != nil: the token verified and the user exists.
//   - User == nil, Err == nil: anonymous (no header, foreign scheme or unknown user).
//   - Err != nil: a bearer token was presented but could not be accepted
//     (common.ErrInvalidToken, common.ErrTokenExpired) or the lookup failed
//     (common.ErrorInternal).
type Identity struct {
	User *models.User
	Err  error
}

// Authenticated reports whether the request carries a resolved user.
func (i Identity) Authenticated() bool {
	return i.User != nil && i.Err == nil
}

// TokenRejected reports whether a presented token failed verification.
func (i Identity) TokenRejected() bool {
	return errors.Is(i.Err, common.ErrInvalidToken) || errors.Is(i.Err, common.ErrTokenExpired)
}

// Authenticator resolves an Authorization header into an Identity.
type Authenticator struct {
	tokens *TokenService
	users  UserFinder
	logger logging.Logger
}

func NewAuthenticator(tokens *TokenService, users UserFinder, logger logging.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, logger: logger.With("module", "authenticator")}
}

// Authenticate never fails outright; every problem is reported through the
// returned Identity.
func (a *Authenticator) Authenticate(ctx context.Context, header string) Identity {
	if header == "" {
		return Identity{}
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != common.BearerScheme {
		a.logger.Debug(ctx, "ignoring authorization header with unexpected format")
		return Identity{}
	}

	claims, err := a.tokens.Verify(parts[1])
	if err != nil {
		a.logger.Info(ctx, "bearer token rejected", "error", err)
		if errors.Is(err, common.ErrTokenExpired) {
			return Identity{Err: common.ErrTokenExpired}
		}
		return Identity{Err: common.ErrInvalidToken}
	}

	user, err := a.users.UserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			a.logger.Info(ctx, "token refers to unknown user", "user_id", claims.UserID)
			return Identity{}
		}
		a.logger.Error(ctx, "user lookup failed", "user_id", claims.UserID, "error", err)
		return Identity{Err: common.ErrorInternal}
	}

	return Identity{User: user}
}
