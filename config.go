package cms

// LoggingConfig selects the go-logger backed provider. Disabled logging
// swaps in a no-op logger; services keep emitting but nothing is written.
type LoggingConfig struct {
	Enabled   bool
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// AdminConfig tunes the admin HTTP surface.
type AdminConfig struct {
	BasePath string
}

// NavigationConfig tunes navigation behaviour.
type NavigationConfig struct {
	// SeedOnStart runs the idempotent system/static entry seed when the
	// module starts.
	SeedOnStart bool
	// URLBasePath prefixes plain page URLs when no route manager is wired.
	URLBasePath string
	// RouteGroup, RouteName, and RouteKeyParam address the go-urlkit route
	// used for tree URLs when a route manager is configured.
	RouteGroup    string
	RouteName     string
	RouteKeyParam string
}

// Config is the module-level configuration.
type Config struct {
	Logging    LoggingConfig
	Admin      AdminConfig
	Navigation NavigationConfig
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Format:  "json",
		},
		Admin: AdminConfig{
			BasePath: "/admin/api",
		},
		Navigation: NavigationConfig{
			SeedOnStart: true,
		},
	}
}
