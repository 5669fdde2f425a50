package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type noopMessage struct{}

func (noopMessage) Type() string { return "cms.nav.noop" }

func (noopMessage) Validate() error { return nil }

type rejectedMessage struct{}

func (rejectedMessage) Type() string { return "cms.nav.rejected" }

func (rejectedMessage) Validate() error { return errors.New("missing entries") }

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[noopMessage](func(ctx context.Context, msg noopMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), noopMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[rejectedMessage](func(ctx context.Context, msg rejectedMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), rejectedMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[noopMessage](func(ctx context.Context, msg noopMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, noopMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler[noopMessage](func(ctx context.Context, msg noopMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), noopMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestHandlerDoesNotDoubleWrap(t *testing.T) {
	wrapped := goerrors.Wrap(errors.New("entry missing"), goerrors.CategoryValidation, "entry missing")
	h := NewHandler[noopMessage](func(ctx context.Context, msg noopMessage) error {
		return wrapped
	})

	err := h.Execute(context.Background(), noopMessage{})
	if !errors.Is(err, wrapped) {
		t.Fatalf("expected already-wrapped error to pass through, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected original category to survive, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[noopMessage](func(ctx context.Context, msg noopMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
			return nil
		}
	}, WithTimeout[noopMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), noopMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}
