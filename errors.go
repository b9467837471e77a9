package piifirewall

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors classifying API failures. Every *Error returned by the
// client matches exactly one of these with errors.Is.
var (
	// ErrBadRequest indicates a client request error (4xx) not otherwise
	// classified, including empty input rejected before any request is sent.
	ErrBadRequest = errors.New("bad request")

	// ErrUnauthorized indicates an invalid or missing API key (401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrPayloadTooLarge indicates the text exceeds the plan's size limit (413).
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrRateLimited indicates the plan's request quota is exhausted (429).
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrServer indicates a server-side failure (5xx).
	ErrServer = errors.New("server error")

	// ErrTransport indicates no response was received (timeout, connection
	// refused, DNS failure).
	ErrTransport = errors.New("transport error")

	// ErrMalformedResponse indicates a 2xx response whose body did not match
	// the expected JSON shape.
	ErrMalformedResponse = errors.New("malformed response")
)

// Error is the error type returned by all Client operations.
type Error struct {
	// StatusCode is the HTTP status of the failed call, or 0 when no
	// response was received.
	StatusCode int

	// Message is a human-readable description, sourced from the response
	// body when the service provided one.
	Message string

	// Retryable reports whether the caller may safely repeat the same call.
	// True for 5xx and transport failures, false for 4xx and malformed
	// responses.
	Retryable bool

	kind error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("[%d] %s", e.StatusCode, e.Message)
	}
	return e.Message
}

// Unwrap exposes the sentinel category for errors.Is checks.
func (e *Error) Unwrap() error {
	return e.kind
}

// fallbackMessages mirrors the service's documented error reasons, used when
// a failure body carries no message of its own.
var fallbackMessages = map[int]string{
	http.StatusBadRequest:            "bad request",
	http.StatusUnauthorized:          "invalid or missing API key",
	http.StatusForbidden:             "API key does not have access",
	http.StatusRequestEntityTooLarge: "payload exceeds plan size limit",
	http.StatusTooManyRequests:       "rate limit exceeded, upgrade your plan or wait",
}

// newAPIError maps a non-2xx status to an *Error. Only 5xx is retryable;
// every 4xx requires caller action before another attempt can succeed.
func newAPIError(status int, message string) *Error {
	if message == "" {
		if m, ok := fallbackMessages[status]; ok {
			message = m
		} else if status >= 500 {
			message = "server error, please try again later"
		} else {
			message = http.StatusText(status)
		}
	}

	var kind error
	switch {
	case status == http.StatusUnauthorized:
		kind = ErrUnauthorized
	case status == http.StatusRequestEntityTooLarge:
		kind = ErrPayloadTooLarge
	case status == http.StatusTooManyRequests:
		kind = ErrRateLimited
	case status >= 500:
		kind = ErrServer
	default:
		kind = ErrBadRequest
	}

	return &Error{
		StatusCode: status,
		Message:    message,
		Retryable:  status >= 500,
		kind:       kind,
	}
}

// newTransportError wraps a failure where no response reached the client.
func newTransportError(err error) *Error {
	return &Error{
		Message:   fmt.Sprintf("network error: %v", err),
		Retryable: true,
		kind:      ErrTransport,
	}
}

func newMalformedError(status int, detail string) *Error {
	return &Error{
		StatusCode: status,
		Message:    detail,
		kind:       ErrMalformedResponse,
	}
}

// errorBody is the failure payload shape. The service reports under "error";
// "message" is also honored for compatibility with gateway-level failures.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// extractMessage pulls a message out of a failure body, returning "" when
// the body is absent or not JSON.
func extractMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if eb.Message != "" {
		return eb.Message
	}
	return eb.Error
}
