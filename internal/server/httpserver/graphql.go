package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gqlauth/internal/common"
	"github.com/dmitrijs2005/gqlauth/internal/server/auth"
	"github.com/dmitrijs2005/gqlauth/internal/server/graph"
	"github.com/dmitrijs2005/gqlauth/internal/server/metrics"
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
)

// maxRequestBodySize caps the JSON body of a POST /graphql request.
const maxRequestBodySize = 1 << 20

var errRequestTooLarge = errors.New("request body too large")

type errorBody struct {
	Errors []errorEntry `json:"errors"`
}

type errorEntry struct {
	Message    string         `json:"message"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func abortWithError(c *gin.Context, status int, msg, code string) {
	entry := errorEntry{Message: msg}
	if code != "" {
		entry.Extensions = map[string]any{"code": code}
	}
	c.AbortWithStatusJSON(status, errorBody{Errors: []errorEntry{entry}})
}

func (s *Server) handleGraphQL(c *gin.Context) {
	req, err := bindRequest(c)
	if errors.Is(err, errRequestTooLarge) {
		abortWithError(c, http.StatusRequestEntityTooLarge, err.Error(), graph.CodeBadUserInput)
		return
	}
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error(), graph.CodeBadUserInput)
		return
	}

	if c.Request.Method == http.MethodGet && isMutation(req) {
		c.Header("Allow", http.MethodPost)
		abortWithError(c, http.StatusMethodNotAllowed, "Can only perform a mutation operation from a POST request", graph.CodeBadUserInput)
		return
	}

	ctx := c.Request.Context()
	identity := s.authn.Authenticate(ctx, c.GetHeader(common.AuthorizationHeaderName))
	s.metrics.ObserveAuth(authOutcome(identity))

	if s.opts.StrictAuth && identity.TokenRejected() {
		msg := "Invalid token"
		if errors.Is(identity.Err, common.ErrTokenExpired) {
			msg = "Token expired"
		}
		requestLogger(c, s.logger).Info(ctx, "token rejected", "error", identity.Err)
		abortWithError(c, http.StatusUnauthorized, msg, graph.CodeUnauthenticated)
		return
	}

	res := s.executor.Execute(auth.WithIdentity(ctx, identity), req)

	for _, e := range res.Errors {
		code, _ := e.Extensions["code"].(string)
		s.metrics.ObserveGraphQLError(code)
	}

	c.JSON(http.StatusOK, res)
}

// bindRequest reads a GraphQL request from a JSON body (POST) or from the
// query string (GET).
func bindRequest(c *gin.Context) (graph.Request, error) {
	var req graph.Request

	if c.Request.Method == http.MethodGet {
		req.Query = c.Query("query")
		req.OperationName = c.Query("operationName")
		if v := c.Query("variables"); v != "" {
			if err := json.Unmarshal([]byte(v), &req.Variables); err != nil {
				return req, errors.New("variables must be a JSON object")
			}
		}
	} else {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBodySize)
		if err := c.ShouldBindJSON(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return req, errRequestTooLarge
			}
			return req, errors.New("request body must be a JSON GraphQL request")
		}
	}

	if req.Query == "" {
		return req, errors.New("query is required")
	}
	return req, nil
}

// isMutation reports whether the operation req selects is a mutation.
// Documents that do not parse, or name no single operation, are left to the
// executor to reject.
func isMutation(req graph.Request) bool {
	doc, err := parser.Parse(parser.ParseParams{Source: req.Query})
	if err != nil {
		return false
	}

	var selected *ast.OperationDefinition
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if req.OperationName == "" {
			if selected != nil {
				return false
			}
			selected = op
			continue
		}
		if op.Name != nil && op.Name.Value == req.OperationName {
			selected = op
			break
		}
	}

	return selected != nil && selected.Operation == ast.OperationTypeMutation
}

func authOutcome(id auth.Identity) string {
	switch {
	case id.Authenticated():
		return metrics.AuthAuthenticated
	case id.TokenRejected():
		return metrics.AuthRejected
	case id.Err != nil:
		return metrics.AuthError
	default:
		return metrics.AuthAnonymous
	}
}
