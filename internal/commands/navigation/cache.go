package navcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/memberweb/cms/internal/commands"
	"github.com/memberweb/cms/internal/logging"
	"github.com/memberweb/cms/internal/navigation"
	"github.com/memberweb/cms/pkg/interfaces"
)

const invalidateNavigationCacheMessageType = "cms.navigation.cache.invalidate"

// InvalidateNavigationCacheCommand clears cached navigation lookups so the
// next read regenerates the menu.
type InvalidateNavigationCacheCommand struct{}

// Type implements command.Message.
func (InvalidateNavigationCacheCommand) Type() string { return invalidateNavigationCacheMessageType }

// Validate satisfies command.Message.
func (InvalidateNavigationCacheCommand) Validate() error {
	return validation.ValidateStruct(&InvalidateNavigationCacheCommand{})
}

// InvalidateNavigationCacheHandler orchestrates navigation cache invalidation.
type InvalidateNavigationCacheHandler struct {
	inner *commands.Handler[InvalidateNavigationCacheCommand]
}

// NewInvalidateNavigationCacheHandler wires the handler to the navigation service.
func NewInvalidateNavigationCacheHandler(service navigation.Service, logger interfaces.Logger, opts ...commands.HandlerOption[InvalidateNavigationCacheCommand]) *InvalidateNavigationCacheHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, _ InvalidateNavigationCacheCommand) error {
		if err := service.InvalidateCache(ctx); err != nil {
			return err
		}
		baseLogger.Info("navigation.command.cache.invalidated")
		return nil
	}

	handlerOpts := []commands.HandlerOption[InvalidateNavigationCacheCommand]{
		commands.WithLogger[InvalidateNavigationCacheCommand](baseLogger),
		commands.WithOperation[InvalidateNavigationCacheCommand]("navigation.cache.invalidate"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &InvalidateNavigationCacheHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[InvalidateNavigationCacheCommand].
func (h *InvalidateNavigationCacheHandler) Execute(ctx context.Context, msg InvalidateNavigationCacheCommand) error {
	return h.inner.Execute(ctx, msg)
}
