package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeTooLarge, "%d edges exceed the limit of %d", 40, 30)
	if err.Code != ErrCodeTooLarge {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeTooLarge)
	}
	if want := "TOO_LARGE: 40 edges exceed the limit of 30"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(ErrCodeTimeout, context.DeadlineExceeded, "kite")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("errors.Is(err, DeadlineExceeded) = false, want true")
	}
	if errors.Unwrap(err) != context.DeadlineExceeded {
		t.Errorf("Unwrap() = %v", errors.Unwrap(err))
	}
	if want := "TIMEOUT: kite: context deadline exceeded"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCodeLookup(t *testing.T) {
	inner := New(ErrCodeInvalidGraph, "self-loop at 2")
	tests := []struct {
		name string
		err  error
		code Code
	}{
		{"Direct", inner, ErrCodeInvalidGraph},
		{"FmtWrapped", fmt.Errorf("parse: %w", inner), ErrCodeInvalidGraph},
		{"OuterWins", Wrap(ErrCodeInternal, inner, "compute"), ErrCodeInternal},
		{"Plain", errors.New("plain"), ""},
		{"Nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(err, %q) = false", tt.code)
			}
			if Is(tt.err, ErrCodeNetwork) {
				t.Error("Is(err, NETWORK_ERROR) = true")
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"Coded", New(ErrCodeFixtureNotFound, "unknown fixture %q", "hexagon"), `unknown fixture "hexagon"`},
		{"Plain", errors.New("disk full"), "disk full"},
		{"FmtWrapped", fmt.Errorf("catalog: %w", New(ErrCodeRecordNotFound, "no record abc")), "no record abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessageWithCause(t *testing.T) {
	err := Wrap(ErrCodeInvalidGraph, errors.New("self-loops are not allowed"), "edge 1-1")
	if got := UserMessage(err); got != "edge 1-1: self-loops are not allowed" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{ErrCodeInvalidGraph, http.StatusBadRequest},
		{ErrCodeInvalidFormat, http.StatusBadRequest},
		{ErrCodeFixtureNotFound, http.StatusNotFound},
		{ErrCodeRecordNotFound, http.StatusNotFound},
		{ErrCodeTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeTimeout, http.StatusGatewayTimeout},
		{ErrCodeCanceled, 499},
		{ErrCodeNetwork, http.StatusBadGateway},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.code); got != tt.want {
			t.Errorf("HTTPStatus(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
