package logging

import (
	"context"
	"strings"

	"github.com/memberweb/cms/pkg/interfaces"
)

const (
	rootModule        = "cms"
	navigationModule  = "cms.navigation"
	customPagesModule = "cms.custompages"
	blocksModule      = "cms.blocks"
	faqsModule        = "cms.faqs"
	featuresModule    = "cms.features"
	adminAPIModule    = "cms.admin"
	commandsModule    = "cms.commands"
)

// ModuleLogger returns a namespaced logger from the provider, falling back to
// a no-op logger when the provider is absent.
func ModuleLogger(provider interfaces.LoggerProvider, name string) interfaces.Logger {
	if provider == nil {
		return NoOp()
	}
	logger := provider.GetLogger(strings.TrimSpace(name))
	if logger == nil {
		return NoOp()
	}
	return logger
}

// RootLogger returns the top level module logger namespace.
func RootLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, rootModule)
}

// NavigationLogger returns the logger namespace used by the navigation engine.
func NavigationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, navigationModule)
}

// CustomPagesLogger returns the logger namespace used by the custom page service.
func CustomPagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, customPagesModule)
}

// BlocksLogger returns the logger namespace used by the content block service.
func BlocksLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, blocksModule)
}

// FAQsLogger returns the logger namespace used by the FAQ service.
func FAQsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, faqsModule)
}

// FeaturesLogger returns the logger namespace used by the feature section service.
func FeaturesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, featuresModule)
}

// AdminAPILogger returns the logger namespace used by the admin HTTP surface.
func AdminAPILogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, adminAPIModule)
}

// CommandsLogger returns the logger namespace used by command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
