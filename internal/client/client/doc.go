// Package client talks to the GraphQL account API on behalf of the CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Register, Login, Me and Ping.
//  2. A GraphQL-over-HTTP implementation (see GraphQLClient) that posts
//     queries, attaches the bearer token and decodes GraphQL errors.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Errors reported by the server are
// returned as *APIError carrying the server message and extensions code;
// errors.Is(err, ErrUnauthorized) holds for UNAUTHENTICATED ones.
package client
