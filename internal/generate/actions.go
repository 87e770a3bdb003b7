// Package generate implements the build-time generation command: plan the
// pair matrix, render every planned page, and write the static
// route-parameter list.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

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

// output is the artifact handed to the page-rendering layer's build step.
type output struct {
	Strategy string               `json:"strategy"`
	Exceeded bool                 `json:"exceeded"`
	Params   []emitter.RouteParam `json:"params"`
}

func Action(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"), c.Bool("verbose"))
	cfg := models.LoadConfig()
	if c.IsSet("mode") {
		cfg.Mode = c.String("mode")
	}
	if c.IsSet("workers") {
		cfg.WorkerCount = c.Int("workers")
	}

	ctx := context.Background()
	client := catalog.NewClient(cfg.ContentAPIURL, cfg.ContentTimeout, logger)

	services := client.AllServices(ctx)
	locations := client.AllLocations(ctx)
	if len(services) == 0 || len(locations) == 0 {
		// All-or-nothing: no partial plans. An empty param list means the
		// whole site falls back to lazy per-request generation.
		logger.Warn("Catalog unavailable or empty, emitting empty param list",
			"services", len(services), "locations", len(locations))
		return writeOutput(c.String("output"), output{Strategy: cfg.Mode, Params: []emitter.RouteParam{}})
	}

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

	runID := uuid.NewString()
	logger.Info("Generation run starting", "run_id", runID, "strategy", plan.Strategy, "pairs", len(plan.Pairs), "exceeded", plan.Exceeded)

	chain := fallback.NewChain(client, store, defaults, cfg.ContentTimeout, runID, logger)
	pages := emitter.Emit(ctx, plan, chain, emitter.Options{
		BaseURL:    cfg.BaseURL,
		Workers:    cfg.WorkerCount,
		Revalidate: cfg.Revalidate,
		Rules:      indexing.RulesFromConfig(cfg),
		Logger:     logger,
	})

	logSourceBreakdown(logger, pages)

	return writeOutput(c.String("output"), output{
		Strategy: plan.Strategy,
		Exceeded: plan.Exceeded,
		Params:   emitter.StaticParams(pages),
	})
}

func logSourceBreakdown(logger *slog.Logger, pages []models.RenderedPage) {
	bySource := map[string]int{}
	indexable := 0
	for _, p := range pages {
		bySource[p.Source]++
		if p.Indexable {
			indexable++
		}
	}
	logger.Info("Generation run finished",
		"pages", len(pages),
		"indexable", indexable,
		"live", bySource[models.SourceLive],
		"snapshot", bySource[models.SourceSnapshot],
		"default", bySource[models.SourceDefault])
}

func writeOutput(path string, out output) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write params file: %w", err)
	}
	return nil
}
