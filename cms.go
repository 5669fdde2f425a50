package cms

import (
	"context"
	"net/http"
	"time"

	cache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/memberweb/cms/internal/blocks"
	"github.com/memberweb/cms/internal/custompages"
	"github.com/memberweb/cms/internal/faqs"
	"github.com/memberweb/cms/internal/features"
	cmshttp "github.com/memberweb/cms/internal/http"
	"github.com/memberweb/cms/internal/identity"
	"github.com/memberweb/cms/internal/logging"
	"github.com/memberweb/cms/internal/logging/gologger"
	"github.com/memberweb/cms/internal/navigation"
	"github.com/memberweb/cms/pkg/interfaces"
)

// Service contracts exported for consumers of the cms package.
type (
	NavigationService = navigation.Service
	PageService       = custompages.Service
	BlockService      = blocks.Service
	FAQService        = faqs.Service
	FeatureService    = features.Service

	Viewer   = navigation.Viewer
	TreeNode = custompages.TreeNode
)

// Module is the top level runtime façade: it owns the wired services and the
// admin HTTP surface.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider

	navigation navigation.Service
	pages      custompages.Service
	blocks     blocks.Service
	faqs       faqs.Service
	features   features.Service

	admin *cmshttp.AdminAPI
}

type dependencies struct {
	db             *bun.DB
	cacheService   cache.CacheService
	keySerializer  cache.KeySerializer
	loggerProvider interfaces.LoggerProvider
	routeManager   *urlkit.RouteManager
	clock          func() time.Time
	newID          func() uuid.UUID
}

// Option overrides a module dependency.
type Option func(*dependencies)

// WithBunDB wires a bun database; without it every store is in-memory.
func WithBunDB(db *bun.DB) Option {
	return func(d *dependencies) { d.db = db }
}

// WithCacheService enables read-through caching on the bun repositories.
func WithCacheService(service cache.CacheService, serializer cache.KeySerializer) Option {
	return func(d *dependencies) {
		d.cacheService = service
		d.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the logger provider built from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(d *dependencies) { d.loggerProvider = provider }
}

// WithRouteManager wires go-urlkit URL building into the navigation tree.
func WithRouteManager(manager *urlkit.RouteManager) Option {
	return func(d *dependencies) { d.routeManager = manager }
}

// WithClock overrides the time source used by every service.
func WithClock(clock func() time.Time) Option {
	return func(d *dependencies) { d.clock = clock }
}

// WithIDGenerator overrides the ID generator used by every service.
func WithIDGenerator(generator func() uuid.UUID) Option {
	return func(d *dependencies) { d.newID = generator }
}

// New constructs a CMS module using the provided configuration and optional
// dependency overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	deps := &dependencies{
		clock: time.Now,
		newID: uuid.New,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(deps)
		}
	}

	provider := deps.loggerProvider
	if provider == nil && cfg.Logging.Enabled {
		p, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		provider = p
	}

	var entryRepo navigation.EntryRepository
	var pageRepo custompages.PageRepository
	var syncStore custompages.SyncStore
	var blockRepo blocks.BlockRepository
	var faqRepo faqs.SectionRepository
	var featureRepo features.SectionRepository

	if deps.db != nil {
		entryRepo = navigation.NewBunEntryRepositoryWithCache(deps.db, deps.cacheService, deps.keySerializer)
		store := custompages.NewBunPageStoreWithCache(deps.db, deps.cacheService, deps.keySerializer)
		pageRepo = store
		syncStore = store
		blockRepo = blocks.NewBunBlockRepository(deps.db)
		faqRepo = faqs.NewBunSectionRepository(deps.db)
		featureRepo = features.NewBunSectionRepository(deps.db)
	} else {
		entryRepo = navigation.NewMemoryEntryRepository()
		store := custompages.NewMemoryStore(entryRepo)
		pageRepo = store
		syncStore = store
		blockRepo = blocks.NewMemoryBlockRepository()
		faqRepo = faqs.NewMemorySectionRepository()
		featureRepo = features.NewMemorySectionRepository()
	}

	navService := navigation.NewService(entryRepo,
		navigation.WithClock(deps.clock),
		navigation.WithIDGenerator(deps.newID),
		navigation.WithSeedIDDeriver(identity.NavigationEntryUUID),
		navigation.WithLogger(logging.NavigationLogger(provider)),
	)

	blockService := blocks.NewService(blockRepo,
		blocks.WithClock(deps.clock),
		blocks.WithIDGenerator(deps.newID),
		blocks.WithLogger(logging.BlocksLogger(provider)),
	)
	faqService := faqs.NewService(faqRepo,
		faqs.WithClock(deps.clock),
		faqs.WithIDGenerator(deps.newID),
		faqs.WithLogger(logging.FAQsLogger(provider)),
	)
	featureService := features.NewService(featureRepo,
		features.WithClock(deps.clock),
		features.WithIDGenerator(deps.newID),
		features.WithLogger(logging.FeaturesLogger(provider)),
	)

	pageOpts := []custompages.ServiceOption{
		custompages.WithClock(deps.clock),
		custompages.WithIDGenerator(deps.newID),
		custompages.WithLogger(logging.CustomPagesLogger(provider)),
		custompages.WithContentRemovers(blockService, faqService, featureService),
	}
	if deps.routeManager != nil {
		pageOpts = append(pageOpts, custompages.WithURLResolver(custompages.NewURLKitResolver(custompages.URLKitResolverOptions{
			Manager:  deps.routeManager,
			Group:    cfg.Navigation.RouteGroup,
			Route:    cfg.Navigation.RouteName,
			KeyParam: cfg.Navigation.RouteKeyParam,
		})))
	} else if cfg.Navigation.URLBasePath != "" {
		pageOpts = append(pageOpts, custompages.WithURLResolver(custompages.PathResolver(cfg.Navigation.URLBasePath)))
	}
	pageService := custompages.NewService(pageRepo, entryRepo, syncStore, pageOpts...)

	admin := cmshttp.NewAdminAPI(
		cmshttp.WithBasePath(cfg.Admin.BasePath),
		cmshttp.WithNavigationService(navService),
		cmshttp.WithCustomPageService(pageService),
		cmshttp.WithBlockService(blockService),
		cmshttp.WithFAQService(faqService),
		cmshttp.WithFeatureService(featureService),
	)

	return &Module{
		cfg:        cfg,
		provider:   provider,
		navigation: navService,
		pages:      pageService,
		blocks:     blockService,
		faqs:       faqService,
		features:   featureService,
		admin:      admin,
	}, nil
}

// Start runs boot-time tasks. With SeedOnStart enabled it performs the
// idempotent navigation seed against an empty store.
func (m *Module) Start(ctx context.Context) error {
	if m == nil {
		return nil
	}
	if m.cfg.Navigation.SeedOnStart {
		if _, err := m.navigation.EnsureSeed(ctx, DefaultNavigationSeed()); err != nil {
			return err
		}
	}
	return nil
}

// Navigation returns the configured navigation service.
func (m *Module) Navigation() NavigationService {
	return m.navigation
}

// Pages returns the configured custom page service.
func (m *Module) Pages() PageService {
	return m.pages
}

// Blocks returns the configured content block service.
func (m *Module) Blocks() BlockService {
	return m.blocks
}

// FAQs returns the configured FAQ service.
func (m *Module) FAQs() FAQService {
	return m.faqs
}

// Features returns the configured feature section service.
func (m *Module) Features() FeatureService {
	return m.features
}

// RegisterAdminRoutes attaches the admin endpoints to the provided mux.
func (m *Module) RegisterAdminRoutes(mux *http.ServeMux) error {
	return m.admin.Register(mux)
}
