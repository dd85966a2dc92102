// Package common contains constants and small helpers shared by the client
// packages.
package common

const (
	// TokenStorageKey is the metadata key the session token is stored under.
	TokenStorageKey = "authToken"

	// TokenSaltStorageKey holds the argon2 salt when the token is sealed.
	TokenSaltStorageKey = "authTokenSalt"

	// AuthorizationHeaderName carries the bearer token on authenticated calls.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme prefixes the token in the Authorization header.
	BearerScheme = "Bearer"

	// RequestIDHeaderName carries a per-request correlation id.
	RequestIDHeaderName = "X-Request-ID"
)
