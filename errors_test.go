package piifirewall

import (
	"errors"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "with status code",
			err:  &Error{StatusCode: 401, Message: "Invalid API key"},
			want: "[401] Invalid API key",
		},
		{
			name: "transport failure without status",
			err:  &Error{Message: "network error: connection refused", Retryable: true},
			want: "network error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewAPIErrorRetryablePolicy(t *testing.T) {
	tests := []struct {
		status        int
		wantRetryable bool
		wantKind      error
	}{
		{400, false, ErrBadRequest},
		{401, false, ErrUnauthorized},
		{403, false, ErrBadRequest},
		{404, false, ErrBadRequest},
		{413, false, ErrPayloadTooLarge},
		{429, false, ErrRateLimited},
		{451, false, ErrBadRequest},
		{500, true, ErrServer},
		{502, true, ErrServer},
		{503, true, ErrServer},
		{599, true, ErrServer},
	}

	for _, tt := range tests {
		err := newAPIError(tt.status, "")
		if err.Retryable != tt.wantRetryable {
			t.Errorf("status %d: retryable = %t, want %t", tt.status, err.Retryable, tt.wantRetryable)
		}
		if !errors.Is(err, tt.wantKind) {
			t.Errorf("status %d: category = %v, want %v", tt.status, err.kind, tt.wantKind)
		}
		if err.StatusCode != tt.status {
			t.Errorf("status %d: StatusCode = %d", tt.status, err.StatusCode)
		}
	}
}

func TestNewAPIErrorFallbackMessages(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{401, "invalid or missing API key"},
		{413, "payload exceeds plan size limit"},
		{429, "rate limit exceeded, upgrade your plan or wait"},
		{500, "server error, please try again later"},
		{404, "Not Found"},
	}

	for _, tt := range tests {
		if got := newAPIError(tt.status, "").Message; got != tt.want {
			t.Errorf("status %d: message = %q, want %q", tt.status, got, tt.want)
		}
	}

	// A body-provided message is passed through untouched.
	if got := newAPIError(401, "Invalid API key").Message; got != "Invalid API key" {
		t.Errorf("body message was rewritten: %q", got)
	}
}

func TestNewTransportError(t *testing.T) {
	err := newTransportError(errors.New("dial tcp: connection refused"))
	if err.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", err.StatusCode)
	}
	if !err.Retryable {
		t.Error("transport errors must be retryable")
	}
	if !errors.Is(err, ErrTransport) {
		t.Error("want ErrTransport category")
	}
}

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "message key", body: `{"message": "Invalid API key"}`, want: "Invalid API key"},
		{name: "error key", body: `{"error": "quota exhausted"}`, want: "quota exhausted"},
		{name: "message wins over error", body: `{"message": "a", "error": "b"}`, want: "a"},
		{name: "not JSON", body: `<html></html>`, want: ""},
		{name: "empty body", body: ``, want: ""},
		{name: "no known keys", body: `{"detail": "x"}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractMessage([]byte(tt.body)); got != tt.want {
				t.Errorf("extractMessage(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}
