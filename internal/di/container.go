package di

import (
	"net/http"

	"github.com/samber/do/v2"
	"github.com/samber/oops"

	cacheRepo "feeddeck/internal/modules/cache/repository"
	cacheService "feeddeck/internal/modules/cache/service"
	"feeddeck/internal/modules/feed/parser"
	feedService "feeddeck/internal/modules/feed/service"
	searchService "feeddeck/internal/modules/search/service"
	translationDomain "feeddeck/internal/modules/translation/domain"
	translationService "feeddeck/internal/modules/translation/service"
	weatherService "feeddeck/internal/modules/weather/service"
	"feeddeck/internal/shared/config"
	httpServer "feeddeck/internal/transport/http"
)

// Setup initializes the dependency injection container. The cache store
// is constructed exactly once here and handed to the orchestrator and
// the translation queue by reference; nothing holds hidden global state.
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register KV substrate
	do.Provide(injector, func(i do.Injector) (cacheRepo.KVStore, error) {
		cfg := do.MustInvoke[*config.Config](i)
		kv, err := cacheRepo.NewFileStorage(cfg.StoragePath)
		if err != nil {
			return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize kv store").Wrap(err)
		}
		return kv, nil
	})

	// Register Cache Store
	do.Provide(injector, func(i do.Injector) (*cacheService.Store, error) {
		kv := do.MustInvoke[cacheRepo.KVStore](i)
		return cacheService.New(kv), nil
	})

	// Register Feed Parser
	do.Provide(injector, func(i do.Injector) (*parser.Parser, error) {
		return parser.New(), nil
	})

	// Register Feed Fetcher
	do.Provide(injector, func(i do.Injector) (*feedService.Fetcher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return feedService.NewFetcher(http.DefaultClient, cfg.ProxyURL), nil
	})

	// Register Weather Service
	do.Provide(injector, func(i do.Injector) (*weatherService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return weatherService.New(http.DefaultClient, cfg.WeatherURL), nil
	})

	// Register Translation Capability
	do.Provide(injector, func(i do.Injector) (translationDomain.Capability, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return translationService.NewLibreTranslator(http.DefaultClient, cfg.TranslatorURL, "en", "ja"), nil
	})

	// Register Translation Queue
	do.Provide(injector, func(i do.Injector) (*translationService.Queue, error) {
		capability := do.MustInvoke[translationDomain.Capability](i)
		store := do.MustInvoke[*cacheService.Store](i)
		return translationService.New(capability, store, "en", "ja"), nil
	})

	// Register Feed Orchestrator
	do.Provide(injector, func(i do.Injector) (*feedService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		fetcher := do.MustInvoke[*feedService.Fetcher](i)
		feedParser := do.MustInvoke[*parser.Parser](i)
		weather := do.MustInvoke[*weatherService.Service](i)
		store := do.MustInvoke[*cacheService.Store](i)
		queue := do.MustInvoke[*translationService.Queue](i)
		return feedService.New(cfg.FeedURLs(), fetcher, feedParser, weather, cfg.Cities, store, queue), nil
	})

	// Register Search Service
	do.Provide(injector, func(i do.Injector) (*searchService.Service, error) {
		return searchService.New(), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		engine := do.MustInvoke[*feedService.Service](i)
		search := do.MustInvoke[*searchService.Service](i)
		queue := do.MustInvoke[*translationService.Queue](i)
		store := do.MustInvoke[*cacheService.Store](i)
		return httpServer.New(cfg, engine, search, queue, store), nil
	})

	return injector, nil
}
