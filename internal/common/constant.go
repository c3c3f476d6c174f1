package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token on
// requests to protected GraphQL fields.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only authorization scheme accepted by the server.
const BearerScheme = "Bearer"
