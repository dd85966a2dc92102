package client

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL means the endpoint could not be built. With a valid
	// configuration this only happens on a programming fault.
	ErrInvalidURL = errors.New("invalid url")

	// ErrInvalidResponse covers unparseable bodies and unexpected statuses.
	ErrInvalidResponse = errors.New("invalid response")

	// ErrInvalidCredentials is reserved for a login rejected with 401. The
	// login path currently reports backend rejections as *ServerError.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRegistrationFailed is reserved.
	ErrRegistrationFailed = errors.New("registration failed")

	ErrUnauthorized = errors.New("unauthorized")
	ErrUnknown      = errors.New("unknown error")

	// ErrUnavailable marks transport level failures. It is reachable through
	// *ServerError via errors.Is.
	ErrUnavailable = errors.New("server unavailable")

	// ErrProfileNotFound is returned for 404 on /auth/me. It is an
	// ErrInvalidResponse.
	ErrProfileNotFound = fmt.Errorf("%w: profile not found", ErrInvalidResponse)
)

const (
	MsgCannotConnect = "Не удается подключиться к серверу. Проверьте подключение к интернету."
	MsgTimeout       = "Превышено время ожидания ответа от сервера."
)

// ServerError carries a message meant for the user: either the backend's
// detail or a localized transport failure.
type ServerError struct {
	Message string
	// Status is the HTTP status for backend errors, 0 for transport failures.
	Status int
	// Err is the transport failure, nil when the backend answered.
	Err error
}

func (e *ServerError) Error() string {
	return e.Message
}

func (e *ServerError) Unwrap() []error {
	if e.Err == nil {
		return nil
	}
	return []error{ErrUnavailable, e.Err}
}
