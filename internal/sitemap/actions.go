// Package sitemap implements the sitemap generator command.
package sitemap

import (
	"context"
	"fmt"
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
	"github.com/arnolddental/pagegen/pkg/planner"
	"github.com/arnolddental/pagegen/pkg/snapshot"
)

func Action(c *cli.Context) error {
	logger := common.NewLogger(false, c.Bool("verbose"))
	cfg := models.LoadConfig()
	if c.IsSet("base-url") {
		cfg.BaseURL = c.String("base-url")
	}
	if c.IsSet("max") {
		cfg.SitemapMaxURLs = c.Int("max")
	}

	rules := indexing.RulesFromConfig(cfg)
	rules.ContentOnly = common.BoolPair(c, "content-only", rules.ContentOnly)
	rules.PriorityOnly = common.BoolPair(c, "priority-only", rules.PriorityOnly)
	rules.AllowlistOnly = common.BoolPair(c, "allowlist-only", rules.AllowlistOnly)
	rules.RequireLocalProof = common.BoolPair(c, "require-local-proof", rules.RequireLocalProof)

	ctx := context.Background()
	client := catalog.NewClient(cfg.ContentAPIURL, cfg.ContentTimeout, logger)

	services := client.AllServices(ctx)
	locations := client.AllLocations(ctx)
	if len(services) == 0 || len(locations) == 0 {
		logger.Error("catalog unavailable or empty, cannot generate sitemap",
			"services", len(services), "locations", len(locations))
		os.Exit(2)
	}

	// The plan runs under the generation cap; --max bounds only the sitemap
	// itself. Capping the plan at --max would let non-indexable pairs crowd
	// indexable ones out of the sitemap.
	// The indexing allowlist doubles as the planner's priority-location
	// list: the suburbs worth indexing are the ones worth pre-rendering.
	plan := planner.Plan(cfg.Mode, services, locations, cfg.PriorityServices, cfg.AllowlistSuburbs, c.Int("cap"), logger)

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

	chain := fallback.NewChain(client, store, defaults, cfg.ContentTimeout, uuid.NewString(), logger)
	pages := emitter.Emit(ctx, plan, chain, emitter.Options{
		BaseURL:    cfg.BaseURL,
		Workers:    cfg.WorkerCount,
		Revalidate: cfg.Revalidate,
		Rules:      rules,
		Logger:     logger,
	})

	if c.Bool("verbose") {
		printExclusions(pages)
	}

	xmlDoc, err := emitter.SitemapXML(pages, cfg.SitemapMaxURLs, time.Now())
	if err != nil {
		logger.Error("failed to build sitemap", "error", err)
		os.Exit(2)
	}

	outputPath := c.String("output")
	if outputPath == "" {
		fmt.Print(xmlDoc)
		return nil
	}
	if err := os.WriteFile(outputPath, []byte(xmlDoc), 0644); err != nil {
		logger.Error("failed to write sitemap", "path", outputPath, "error", err)
		os.Exit(2)
	}

	included := 0
	for _, p := range pages {
		if p.Indexable {
			included++
		}
	}
	fmt.Printf("Sitemap written to %s (%d of %d pages indexable)\n", outputPath, included, len(pages))
	return nil
}

// printExclusions reports the computed reasons per excluded pair. These are
// the real word counts and local-proof flags, not simulated values.
func printExclusions(pages []models.RenderedPage) {
	for _, p := range pages {
		if p.Indexable {
			continue
		}
		fmt.Fprintf(os.Stderr, "excluded %s:", p.Pair.Key())
		for _, reason := range p.Reasons {
			fmt.Fprintf(os.Stderr, " [%s]", reason)
		}
		fmt.Fprintln(os.Stderr)
	}
}
