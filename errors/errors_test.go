package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCodeForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorCode
	}{
		{http.StatusBadRequest, ErrCodeBadRequest},
		{http.StatusUnauthorized, ErrCodeUnauthorized},
		{http.StatusForbidden, ErrCodeForbidden},
		{http.StatusNotFound, ErrCodeNotFound},
		{http.StatusConflict, ErrCodeConflict},
		{http.StatusUnprocessableEntity, ErrCodeValidation},
		{http.StatusInternalServerError, ErrCodeServer},
		{http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{http.StatusTeapot, ErrCodeHTTP},
		{http.StatusBadGateway, ErrCodeHTTP},
		{http.StatusTooManyRequests, ErrCodeHTTP},
	}
	for _, tt := range tests {
		if got := CodeForStatus(tt.status); got != tt.want {
			t.Errorf("CodeForStatus(%d) = %s, want %s", tt.status, got, tt.want)
		}
	}
}

func TestDefaultMessage(t *testing.T) {
	if got := DefaultMessage(401); got != "Authentication failed. Please log in again." {
		t.Errorf("unexpected 401 message %q", got)
	}
	if got := DefaultMessage(403); got != "Access denied." {
		t.Errorf("unexpected 403 message %q", got)
	}
	if got := DefaultMessage(418); got != "Request failed with status 418." {
		t.Errorf("unexpected fallback message %q", got)
	}
}

func TestFromStatus(t *testing.T) {
	e := FromStatus(409, "Username already exists")
	if e.Code != ErrCodeConflict || e.StatusCode != 409 || e.Message != "Username already exists" {
		t.Errorf("unexpected error %+v", e)
	}

	e = FromStatus(404, "")
	if e.Message != "Resource not found." {
		t.Errorf("expected default message, got %q", e.Message)
	}
}

func TestAPIError_Error(t *testing.T) {
	e := &APIError{StatusCode: 404, Code: ErrCodeNotFound, Message: "Resource not found."}
	want := "NOT_FOUND (HTTP 404): Resource not found."
	if got := e.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	e2 := Network(fmt.Errorf("dial tcp: connection refused"))
	want2 := "NETWORK_ERROR: " + MessageNetwork
	if got := e2.Error(); got != want2 {
		t.Errorf("got %q, want %q", got, want2)
	}
}

func TestAPIError_CauseNotInMessage(t *testing.T) {
	cause := fmt.Errorf("secret stack detail")
	e := Unknown(cause)
	if e.Message != MessageUnknown {
		t.Errorf("unexpected message %q", e.Message)
	}
	if !stderrors.Is(e, cause) {
		t.Error("cause should be reachable through Unwrap")
	}
	if e.HasStatus() {
		t.Error("synthetic errors must not carry a status code")
	}
}

func TestAPIError_IsSentinel(t *testing.T) {
	err := fmt.Errorf("load profile: %w", FromStatus(404, "no such user"))
	if !stderrors.Is(err, ErrNotFound) {
		t.Error("expected errors.Is to match ErrNotFound")
	}
	if stderrors.Is(err, ErrConflict) {
		t.Error("did not expect errors.Is to match ErrConflict")
	}
}

func TestHelpers(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", InvalidResponse(nil))
	if !IsValidation(wrapped) {
		t.Error("IsValidation should match wrapped validation error")
	}
	if CodeOf(wrapped) != ErrCodeValidation {
		t.Errorf("CodeOf = %s", CodeOf(wrapped))
	}
	if CodeOf(fmt.Errorf("plain")) != "" {
		t.Error("CodeOf should be empty for foreign errors")
	}
	if _, ok := As(fmt.Errorf("plain")); ok {
		t.Error("As should fail for foreign errors")
	}
	if !IsNetwork(Network(nil)) || !IsUnauthorized(FromStatus(401, "")) ||
		!IsNotFound(FromStatus(404, "")) || !IsConflict(FromStatus(409, "")) {
		t.Error("Is helpers did not match their codes")
	}
	if InvalidFormat(nil).Message != MessageInvalidFormat {
		t.Error("InvalidFormat message mismatch")
	}
	if Mock("boom").Code != ErrCodeMock {
		t.Error("Mock code mismatch")
	}
}

func TestIsKnownCode(t *testing.T) {
	for _, c := range []ErrorCode{ErrCodeBadRequest, ErrCodeHTTP, ErrCodeNetwork, ErrCodeUnknown, ErrCodeMock} {
		if !IsKnownCode(c) {
			t.Errorf("%s should be known", c)
		}
	}
	if IsKnownCode("TIMEOUT") {
		t.Error("TIMEOUT is not part of the taxonomy")
	}
}
