package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gqlauth/internal/common"
	"github.com/dmitrijs2005/gqlauth/internal/netx"
)

const (
	registerMutation = `mutation Register($username: String!, $password: String!) {
  register(username: $username, password: $password) { id username createdAt updatedAt }
}`
	loginMutation = `mutation Login($username: String, $password: String) {
  login(username: $username, password: $password)
}`
	meQuery   = `query Me { me { id username createdAt updatedAt } }`
	pingQuery = `query Ping { ping }`
)

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message    string         `json:"message"`
		Extensions map[string]any `json:"extensions"`
	} `json:"errors"`
}

// GraphQLClient implements Client over HTTP.
type GraphQLClient struct {
	endpoint string
	http     *http.Client
}

func NewGraphQLClient(endpoint string, timeout time.Duration) *GraphQLClient {
	return &GraphQLClient{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

func (c *GraphQLClient) Register(ctx context.Context, username, password string) (*User, error) {
	var out struct {
		Register *User `json:"register"`
	}
	vars := map[string]any{"username": username, "password": password}
	if err := c.do(ctx, "", registerMutation, vars, &out); err != nil {
		return nil, err
	}
	return out.Register, nil
}

func (c *GraphQLClient) Login(ctx context.Context, username, password string) (string, error) {
	var out struct {
		Login string `json:"login"`
	}
	vars := map[string]any{"username": username, "password": password}
	if err := c.do(ctx, "", loginMutation, vars, &out); err != nil {
		return "", err
	}
	return out.Login, nil
}

func (c *GraphQLClient) Me(ctx context.Context, token string) (*User, error) {
	var out struct {
		Me *User `json:"me"`
	}
	if err := c.do(ctx, token, meQuery, nil, &out); err != nil {
		return nil, err
	}
	return out.Me, nil
}

func (c *GraphQLClient) Ping(ctx context.Context) error {
	var out struct {
		Ping string `json:"ping"`
	}
	if err := c.do(ctx, "", pingQuery, nil, &out); err != nil {
		return err
	}
	if out.Ping != "pong" {
		return fmt.Errorf("unexpected ping reply %q", out.Ping)
	}
	return nil
}

func (c *GraphQLClient) do(ctx context.Context, token, query string, vars map[string]any, out any) error {
	header := http.Header{}
	if token != "" {
		header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	status, body, err := netx.PostJSON(ctx, c.http, c.endpoint, header, request{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("unexpected response (status %d): %w", status, err)
	}

	if len(resp.Errors) > 0 {
		e := resp.Errors[0]
		code, _ := e.Extensions["code"].(string)
		return &APIError{Message: e.Message, Code: code}
	}

	if status != http.StatusOK {
		return fmt.Errorf("unexpected status %d", status)
	}

	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
