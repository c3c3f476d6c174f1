package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

const codeUnauthenticated = "UNAUTHENTICATED"

// APIError is the first GraphQL error of a response.
type APIError struct {
	Message string
	Code    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Code == codeUnauthenticated
}
