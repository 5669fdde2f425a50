package custompages

import (
	"fmt"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"
)

// URLResolver maps a page key to the public URL rendered into the tree.
type URLResolver interface {
	PageURL(pageKey string) string
}

// URLResolverFunc adapts a plain function into a URLResolver.
type URLResolverFunc func(pageKey string) string

func (f URLResolverFunc) PageURL(pageKey string) string { return f(pageKey) }

// PathResolver joins the page key onto a base path. It is the default when
// no route manager is wired in.
func PathResolver(base string) URLResolver {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	return URLResolverFunc(func(pageKey string) string {
		return base + "/" + pageKey
	})
}

// URLKitResolverOptions configures the go-urlkit backed resolver.
type URLKitResolverOptions struct {
	Manager *urlkit.RouteManager
	// Group is a dot separated group path within the manager, e.g. "site"
	// or "site.pages".
	Group string
	// Route names the route built per page; defaults to "page".
	Route string
	// KeyParam names the route parameter filled with the page key;
	// defaults to "key".
	KeyParam string
}

// URLKitResolver resolves page URLs through a go-urlkit RouteManager. Build
// failures fall back to a plain path so tree rendering never errors on a
// misconfigured route table.
type URLKitResolver struct {
	manager  *urlkit.RouteManager
	group    string
	route    string
	keyParam string

	mu     sync.RWMutex
	cached *urlkit.Group
}

// NewURLKitResolver constructs a resolver backed by go-urlkit.
func NewURLKitResolver(opts URLKitResolverOptions) *URLKitResolver {
	if opts.Route == "" {
		opts.Route = "page"
	}
	if opts.KeyParam == "" {
		opts.KeyParam = "key"
	}
	return &URLKitResolver{
		manager:  opts.Manager,
		group:    strings.TrimSpace(opts.Group),
		route:    opts.Route,
		keyParam: opts.KeyParam,
	}
}

// PageURL implements URLResolver.
func (r *URLKitResolver) PageURL(pageKey string) string {
	if r == nil || r.manager == nil || r.group == "" {
		return "/" + pageKey
	}
	group, err := r.groupForPath()
	if err != nil || group == nil {
		return "/" + pageKey
	}
	builder, err := safeBuilder(group, r.route)
	if err != nil || builder == nil {
		return "/" + pageKey
	}
	url, err := builder.WithParam(r.keyParam, pageKey).Build()
	if err != nil || url == "" {
		return "/" + pageKey
	}
	return url
}

func (r *URLKitResolver) groupForPath() (*urlkit.Group, error) {
	r.mu.RLock()
	group := r.cached
	r.mu.RUnlock()
	if group != nil {
		return group, nil
	}

	parts := strings.Split(r.group, ".")
	current, err := lookupGroup(r.manager, parts[0])
	if err != nil {
		return nil, err
	}
	for _, part := range parts[1:] {
		current, err = lookupChildGroup(current, part)
		if err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	r.cached = current
	r.mu.Unlock()
	return current, nil
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("custompages: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("custompages: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("custompages: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	if parent == nil {
		return nil, fmt.Errorf("custompages: parent group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("custompages: child group %q not found", name)
		}
	}()
	group = parent.Group(name)
	return group, err
}
