package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to handler failures so callers can branch on the
// failure stage without string matching.
const (
	codeValidationFailed = "COMMAND_VALIDATION_FAILED"
	codeCanceled         = "COMMAND_CONTEXT_CANCELED"
	codeTimeout          = "COMMAND_CONTEXT_TIMEOUT"
	codeExecutionFailed  = "COMMAND_EXECUTION_FAILED"
)

func wrapValidationError(err error) error {
	return wrapWithCode(err, goerrors.CategoryValidation, "command validation failed", codeValidationFailed)
}

// wrapContextError tags ctx.Err() results; the handler only passes in
// Canceled or DeadlineExceeded.
func wrapContextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return wrapWithCode(err, goerrors.CategoryCommand, "command execution deadline exceeded", codeTimeout)
	}
	return wrapWithCode(err, goerrors.CategoryCommand, "command execution cancelled", codeCanceled)
}

func wrapExecuteError(err error) error {
	return wrapWithCode(err, goerrors.CategoryCommand, "command execution failed", codeExecutionFailed)
}

func wrapWithCode(err error, category goerrors.Category, message, code string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, category, message).WithTextCode(code)
}
