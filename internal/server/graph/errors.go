package graph

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gqlauth/internal/common"
	"github.com/dmitrijs2005/gqlauth/internal/logging"
)

// Error codes reported in extensions.code.
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

// Error is a client-safe GraphQL error. graphql-go copies Extensions into the
// response because Error implements gqlerrors.ExtendedError.
type Error struct {
	Message string
	Code    string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

var (
	errUnauthorized      = &Error{Message: "Unauthorized", Code: CodeUnauthenticated}
	errUsernameTaken     = &Error{Message: "Username already exists", Code: CodeBadUserInput}
	errMissingCredential = &Error{Message: "Username and password are required", Code: CodeBadUserInput}
	errBadCredentials    = &Error{Message: "Invalid username or password", Code: CodeUnauthenticated}
	errInvalidToken      = &Error{Message: "Invalid token", Code: CodeUnauthenticated}
	errTokenExpired      = &Error{Message: "Token expired", Code: CodeUnauthenticated}
	errInternal          = &Error{Message: "Internal server error", Code: CodeInternal}
)

// toClientError maps domain errors onto fixed messages. Anything it does not
// recognise is logged and reported as an internal error.
func toClientError(ctx context.Context, logger logging.Logger, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		return errUsernameTaken
	case errors.Is(err, common.ErrorValidation):
		return errMissingCredential
	case errors.Is(err, common.ErrorUnauthorized):
		return errBadCredentials
	case errors.Is(err, common.ErrTokenExpired):
		return errTokenExpired
	case errors.Is(err, common.ErrInvalidToken):
		return errInvalidToken
	}

	logger.Error(ctx, "resolver failed", "op", op, "error", err)
	return errInternal
}
