// Package graph exposes the account operations as a GraphQL schema:
//
//	type User { id: Int!, username: String!, createdAt: DateTime!, updatedAt: DateTime! }
//	type Query { me: User!, ping: String! }
//	type Mutation {
//	  register(username: String!, password: String!): User!
//	  login(username: String, password: String): String!
//	}
package graph

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gqlauth/internal/logging"
	"github.com/dmitrijs2005/gqlauth/internal/server/models"
	"github.com/dmitrijs2005/gqlauth/internal/server/services"
	"github.com/graphql-go/graphql"
)

// UserService is the part of services.UserService the resolvers need.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// Request is a GraphQL-over-HTTP request body.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

// Executor runs requests against the schema.
type Executor struct {
	schema graphql.Schema
}

func NewExecutor(users UserService, logger logging.Logger) (*Executor, error) {
	r := &resolver{users: users, logger: logger.With("module", "graph")}

	schema, err := newSchema(r)
	if err != nil {
		return nil, fmt.Errorf("error building schema: %w", err)
	}

	return &Executor{schema: schema}, nil
}

// Execute runs req. The caller binds the request identity into ctx with
// auth.WithIdentity beforehand.
func (e *Executor) Execute(ctx context.Context, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         e.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
}

func newSchema(r *resolver) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Int),
				Resolve: userField(func(u *models.User) interface{} { return u.ID }),
			},
			"username": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: userField(func(u *models.User) interface{} { return u.Username }),
			},
			"createdAt": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.DateTime),
				Resolve: userField(func(u *models.User) interface{} { return u.CreatedAt }),
			},
			"updatedAt": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.DateTime),
				Resolve: userField(func(u *models.User) interface{} { return u.UpdatedAt }),
			},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type:    graphql.NewNonNull(userType),
				Resolve: r.me,
			},
			"ping": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: r.ping,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.register,
			},
			"login": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.String},
					"password": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.login,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

// userField resolves one field of a *models.User source. The password hash
// has no field, so it can never be selected.
func userField(get func(*models.User) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		u, ok := p.Source.(*models.User)
		if !ok || u == nil {
			return nil, nil
		}
		return get(u), nil
	}
}
