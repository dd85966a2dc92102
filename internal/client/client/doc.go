// Package client is the typed HTTP client of the Gymmi backend auth API.
//
// # Overview
//
// Client describes the calls the app makes: Login, Register, Me,
// CheckEmail and Ping. HTTPClient implements them over JSON/HTTP on top of
// an *http.Client from netx, which sets the default headers and caps the
// backend at one connection.
//
// # Error Handling
//
// Outcomes are mapped to sentinel errors matched with errors.Is:
// ErrInvalidURL, ErrInvalidResponse (ErrProfileNotFound wraps it),
// ErrUnauthorized and ErrUnavailable. A backend {detail} body becomes a
// *ServerError carrying the message; transport failures also become a
// *ServerError, with a localized message, that unwraps to ErrUnavailable
// and the original cause.
//
// ErrInvalidCredentials, ErrRegistrationFailed and ErrUnknown are part of
// the taxonomy but not produced by HTTPClient.
package client
