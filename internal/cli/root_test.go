package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	cerrors "github.com/matzehuels/chromatic/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Nil", nil, ExitOK},
		{"Plain", errors.New("boom"), ExitError},
		{"Canceled", fmt.Errorf("run: %w", context.Canceled), ExitCanceled},
		{"CanceledCode", cerrors.New(cerrors.ErrCodeCanceled, "stop"), ExitCanceled},
		{"InvalidGraph", cerrors.New(cerrors.ErrCodeInvalidGraph, "loop"), ExitUsage},
		{"Fixture", cerrors.New(cerrors.ErrCodeFixtureNotFound, "nope"), ExitUsage},
		{"TooLarge", fmt.Errorf("wrap: %w", cerrors.New(cerrors.ErrCodeTooLarge, "big")), ExitTooLarge},
		{"Internal", cerrors.New(cerrors.ErrCodeInternal, "bug"), ExitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, cerrors.New(cerrors.ErrCodeTooLarge, "40 edges exceed the limit of 30"))
	out := buf.String()
	if !strings.Contains(out, "40 edges exceed the limit of 30") {
		t.Errorf("PrintError output = %q", out)
	}
	if strings.Contains(out, "TOO_LARGE") {
		t.Errorf("PrintError output = %q, should omit the code", out)
	}
}
