package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized matches a ServerError carrying HTTP 401 via errors.Is.
var ErrUnauthorized = errors.New("unauthorized")

// Fallback messages shown when nothing better is available
const (
	msgServerError  = "Server error occurred"
	msgNoResponse   = "No response received from server"
	msgRequestSetup = "Error setting up request"
	msgAuth         = "Failed to acquire access token"
)

// NetworkError means no response was received (connection failure or timeout).
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", msgNoResponse, e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a response with status >= 400.
// Message comes from the body's "detail" field when present.
type ServerError struct {
	Status  int
	Message string
	Body    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Is makes errors.Is(err, ErrUnauthorized) true for 401 responses.
func (e *ServerError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// RequestSetupError covers failures building the request or decoding the response.
type RequestSetupError struct {
	Err error
}

func (e *RequestSetupError) Error() string {
	return fmt.Sprintf("%s: %v", msgRequestSetup, e.Err)
}

func (e *RequestSetupError) Unwrap() error { return e.Err }

// AuthAcquisitionError means a bearer token could not be obtained.
type AuthAcquisitionError struct {
	Err error
}

func (e *AuthAcquisitionError) Error() string {
	return fmt.Sprintf("%s: %v", msgAuth, e.Err)
}

func (e *AuthAcquisitionError) Unwrap() error { return e.Err }

// HTTPStatus maps a transport error to the status a gateway should answer with.
func HTTPStatus(err error) int {
	var (
		serverErr *ServerError
		netErr    *NetworkError
		authErr   *AuthAcquisitionError
	)
	switch {
	case errors.As(err, &serverErr):
		if serverErr.Status >= 400 && serverErr.Status < 500 {
			return serverErr.Status
		}
		return http.StatusBadGateway
	case errors.As(err, &netErr):
		return http.StatusGatewayTimeout
	case errors.As(err, &authErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
