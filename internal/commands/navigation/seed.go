package navcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/memberweb/cms/internal/commands"
	"github.com/memberweb/cms/internal/logging"
	"github.com/memberweb/cms/internal/navigation"
	"github.com/memberweb/cms/pkg/interfaces"
)

const seedNavigationMessageType = "cms.navigation.seed"

// SeedNavigationCommand creates the system and static entries on an empty
// store. Running it against a populated store is a no-op.
type SeedNavigationCommand struct {
	Entries []navigation.SeedEntry
}

// Type implements command.Message.
func (SeedNavigationCommand) Type() string { return seedNavigationMessageType }

// Validate satisfies command.Message.
func (c SeedNavigationCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Entries, validation.Required),
	)
}

// SeedNavigationHandler orchestrates the idempotent boot seed.
type SeedNavigationHandler struct {
	inner *commands.Handler[SeedNavigationCommand]
}

// NewSeedNavigationHandler wires the handler to the navigation service.
func NewSeedNavigationHandler(service navigation.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SeedNavigationCommand]) *SeedNavigationHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SeedNavigationCommand) error {
		created, err := service.EnsureSeed(ctx, msg.Entries)
		if err != nil {
			return err
		}
		if created > 0 {
			baseLogger.Info("navigation.command.seeded", "entries", created)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SeedNavigationCommand]{
		commands.WithLogger[SeedNavigationCommand](baseLogger),
		commands.WithOperation[SeedNavigationCommand]("navigation.seed"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SeedNavigationHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SeedNavigationCommand].
func (h *SeedNavigationHandler) Execute(ctx context.Context, msg SeedNavigationCommand) error {
	return h.inner.Execute(ctx, msg)
}
