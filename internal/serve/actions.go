// Package serve implements the HTTP serving command: pre-built pages are
// warmed into the page cache, everything else renders lazily on first
// request.
package serve

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/arnolddental/pagegen/internal/common"
	"github.com/arnolddental/pagegen/models"
	"github.com/arnolddental/pagegen/pkg/catalog"
	"github.com/arnolddental/pagegen/pkg/emitter"
	"github.com/arnolddental/pagegen/pkg/fallback"
	"github.com/arnolddental/pagegen/pkg/indexing"
	"github.com/arnolddental/pagegen/pkg/pagecache"
	"github.com/arnolddental/pagegen/pkg/planner"
	"github.com/arnolddental/pagegen/pkg/server"
	"github.com/arnolddental/pagegen/pkg/snapshot"
)

func Action(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"), c.Bool("verbose"))
	cfg := models.LoadConfig()

	client := catalog.NewClient(cfg.ContentAPIURL, cfg.ContentTimeout, logger)

	store, err := snapshot.Open(cfg.SnapshotDBPath)
	if err != nil {
		logger.Error("failed to open snapshot store", "error", err)
		os.Exit(2)
	}
	defer store.Close()

	defaults, err := fallback.LoadDefaults(cfg.PracticeDefaultsPath)
	if err != nil {
		logger.Error("failed to load practice defaults", "error", err)
		os.Exit(2)
	}

	rules := indexing.RulesFromConfig(cfg)
	chain := fallback.NewChain(client, store, defaults, cfg.ContentTimeout, uuid.NewString(), logger)

	renderPair := func(ctx context.Context, pair models.PairKey) (*models.RenderedPage, error) {
		page := emitter.BuildPage(ctx, pair, chain, cfg.BaseURL, cfg.Revalidate, rules)
		return &page, nil
	}
	cache := pagecache.New(cfg.Revalidate, renderPair, logger)

	buildPlan := func(ctx context.Context) (models.GenerationPlan, bool) {
		services := client.AllServices(ctx)
		locations := client.AllLocations(ctx)
		if len(services) == 0 || len(locations) == 0 {
			return models.GenerationPlan{}, false
		}
		// The indexing allowlist doubles as the planner's priority-location
		// list: the suburbs worth indexing are the ones worth pre-rendering.
		return planner.Plan(cfg.Mode, services, locations, cfg.PriorityServices, cfg.AllowlistSuburbs, 0, logger), true
	}

	// Warm the cache with the build-time plan in the background so planned
	// pairs are served hot from the first request.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		plan, ok := buildPlan(ctx)
		if !ok {
			logger.Warn("Skipping cache warm-up, catalog unavailable")
			return
		}
		pages := emitter.Emit(ctx, plan, chain, emitter.Options{
			BaseURL:    cfg.BaseURL,
			Workers:    cfg.WorkerCount,
			Revalidate: cfg.Revalidate,
			Rules:      rules,
			Logger:     logger,
		})
		for i := range pages {
			cache.Put(pages[i].Pair, &pages[i])
		}
		logger.Info("Cache warm-up complete", "pages", len(pages))
	}()

	sitemapFn := func(ctx context.Context) (string, error) {
		plan, ok := buildPlan(ctx)
		if !ok {
			return emitter.SitemapXML(nil, cfg.SitemapMaxURLs, time.Now())
		}
		pages := emitter.Emit(ctx, plan, chain, emitter.Options{
			BaseURL:    cfg.BaseURL,
			Workers:    cfg.WorkerCount,
			Revalidate: cfg.Revalidate,
			Rules:      rules,
			Logger:     logger,
		})
		return emitter.SitemapXML(pages, cfg.SitemapMaxURLs, time.Now())
	}

	srv := server.New(client, cache, sitemapFn, logger)
	addr := c.String("addr")
	logger.Info("Serving pages", "addr", addr, "base_url", cfg.BaseURL)
	if err := http.ListenAndServe(addr, srv.Routes()); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(2)
	}
	return nil
}
