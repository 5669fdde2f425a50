package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/memberweb/cms/internal/blocks"
	"github.com/memberweb/cms/internal/custompages"
	"github.com/memberweb/cms/internal/faqs"
	"github.com/memberweb/cms/internal/features"
	"github.com/memberweb/cms/internal/navigation"
)

// AdminAPI registers the admin endpoints for navigation entries, custom
// pages, and page content.
type AdminAPI struct {
	basePath   string
	navigation navigation.Service
	pages      custompages.Service
	blocks     blocks.Service
	faqs       faqs.Service
	features   features.Service
}

// AdminOption mutates the AdminAPI configuration.
type AdminOption func(*AdminAPI)

// NewAdminAPI constructs an AdminAPI instance.
func NewAdminAPI(opts ...AdminOption) *AdminAPI {
	api := &AdminAPI{
		basePath: "/admin/api",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/admin/api").
func WithBasePath(path string) AdminOption {
	return func(api *AdminAPI) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithNavigationService wires the navigation service.
func WithNavigationService(service navigation.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.navigation = service
		}
	}
}

// WithCustomPageService wires the custom page service.
func WithCustomPageService(service custompages.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.pages = service
		}
	}
}

// WithBlockService wires the content block service.
func WithBlockService(service blocks.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.blocks = service
		}
	}
}

// WithFAQService wires the FAQ service.
func WithFAQService(service faqs.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.faqs = service
		}
	}
}

// WithFeatureService wires the feature section service.
func WithFeatureService(service features.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.features = service
		}
	}
}

// Register attaches the admin endpoints to the provided mux.
func (api *AdminAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: admin api is nil")
	}

	base := joinPath(api.basePath, "")

	api.registerNavigationRoutes(mux, base)
	api.registerCustomPageRoutes(mux, base)
	api.registerContentRoutes(mux, base)

	return nil
}
