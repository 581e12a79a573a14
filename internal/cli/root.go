package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	cerrors "github.com/matzehuels/chromatic/pkg/errors"
)

// Exit codes returned by ExitCode.
const (
	ExitOK       = 0
	ExitError    = 1
	ExitUsage    = 2   // invalid graph, format, path or config
	ExitTooLarge = 3   // graph exceeds the edge limit
	ExitCanceled = 130 // standard shell convention for SIGINT
)

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitCanceled
	}
	switch cerrors.GetCode(err) {
	case cerrors.ErrCodeCanceled:
		return ExitCanceled
	case cerrors.ErrCodeInvalidInput, cerrors.ErrCodeInvalidGraph, cerrors.ErrCodeInvalidFormat,
		cerrors.ErrCodeInvalidPath, cerrors.ErrCodeInvalidConfig,
		cerrors.ErrCodeFixtureNotFound, cerrors.ErrCodeRecordNotFound, cerrors.ErrCodeFileNotFound:
		return ExitUsage
	case cerrors.ErrCodeTooLarge:
		return ExitTooLarge
	default:
		return ExitError
	}
}

// PrintError writes err to w without the error code prefix.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+cerrors.UserMessage(err))
}
