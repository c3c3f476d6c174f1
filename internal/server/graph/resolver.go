package graph

import (
	"github.com/dmitrijs2005/gqlauth/internal/logging"
	"github.com/dmitrijs2005/gqlauth/internal/server/auth"
	"github.com/dmitrijs2005/gqlauth/internal/server/services"
	"github.com/graphql-go/graphql"
)

type resolver struct {
	users  UserService
	logger logging.Logger
}

func (r *resolver) ping(graphql.ResolveParams) (interface{}, error) {
	return "pong", nil
}

// me returns the user bound to the request. A rejected token is reported as
// such rather than as a missing identity.
func (r *resolver) me(p graphql.ResolveParams) (interface{}, error) {
	id := auth.IdentityFromContext(p.Context)
	if id.Err != nil {
		return nil, toClientError(p.Context, r.logger, "me", id.Err)
	}
	if !id.Authenticated() {
		return nil, errUnauthorized
	}
	return id.User, nil
}

func (r *resolver) register(p graphql.ResolveParams) (interface{}, error) {
	in := services.RegisterInput{
		Username: stringArg(p, "username"),
		Password: stringArg(p, "password"),
	}

	user, err := r.users.Register(p.Context, in)
	if err != nil {
		return nil, toClientError(p.Context, r.logger, "register", err)
	}

	r.logger.Info(p.Context, "user registered", "user_id", user.ID)
	return user, nil
}

func (r *resolver) login(p graphql.ResolveParams) (interface{}, error) {
	token, err := r.users.Login(p.Context, stringArg(p, "username"), stringArg(p, "password"))
	if err != nil {
		return nil, toClientError(p.Context, r.logger, "login", err)
	}
	return token, nil
}

// stringArg returns the named argument, or "" when it is absent or null.
func stringArg(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}
