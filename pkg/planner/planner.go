// Package planner selects which slice of the service x location matrix is
// pre-rendered at build time. The full matrix grows multiplicatively with
// both catalogs, so every strategy bounds its output by a hard cap.
package planner

import (
	"log/slog"

	"github.com/arnolddental/pagegen/models"
	"github.com/arnolddental/pagegen/pkg/indexing"
)

// DefaultCap bounds a plan when the caller passes cap <= 0.
const DefaultCap = 500

// Staged-strategy fallbacks when no priority data is configured.
const (
	stagedServiceLimit  = 5
	stagedLocationLimit = 20
)

// Plan produces the bounded candidate set of pairs for the given strategy.
// Ordering is deterministic for identical catalog snapshots: services
// outer, locations inner, both in catalog list order. An unrecognized
// strategy takes the priority branch directly; it never re-enters the
// dispatcher.
func Plan(strategy string, services []models.ServiceEntry, locations []models.LocationEntry, priorityServices, priorityLocations []string, cap int, logger *slog.Logger) models.GenerationPlan {
	if logger == nil {
		logger = slog.Default()
	}
	if cap <= 0 {
		cap = DefaultCap
	}

	var selServices []models.ServiceEntry
	var selLocations []models.LocationEntry

	switch strategy {
	case models.StrategyFull:
		selServices = services
		selLocations = locations
	case models.StrategyStaged:
		selServices = prioritizedServices(services, priorityServices)
		if len(selServices) == 0 {
			selServices = head(services, stagedServiceLimit)
		}
		selLocations = majorTierLocations(locations)
		if len(selLocations) == 0 {
			selLocations = head(locations, stagedLocationLimit)
		}
	case models.StrategyPriority:
		selServices = prioritizedServices(services, priorityServices)
		selLocations = prioritizedLocations(locations, priorityLocations)
	default:
		logger.Warn("Unknown generation strategy, using priority behavior", "strategy", strategy)
		selServices = prioritizedServices(services, priorityServices)
		selLocations = prioritizedLocations(locations, priorityLocations)
		strategy = models.StrategyPriority
	}

	plan := models.GenerationPlan{Strategy: strategy, Cap: cap}
	total := len(selServices) * len(selLocations)
	for _, svc := range selServices {
		for _, loc := range selLocations {
			if len(plan.Pairs) >= cap {
				plan.Exceeded = true
				break
			}
			plan.Pairs = append(plan.Pairs, models.PairKey{Service: svc.Slug, Location: loc.Slug})
		}
		if plan.Exceeded {
			break
		}
	}
	if plan.Exceeded {
		logger.Warn("Plan truncated to cap", "strategy", strategy, "natural_size", total, "cap", cap)
	}
	return plan
}

// prioritizedServices filters to the configured priority slugs, falling
// back to the catalog's own priority flags when none are configured.
// Catalog order is preserved either way.
func prioritizedServices(services []models.ServiceEntry, prioritySlugs []string) []models.ServiceEntry {
	if len(prioritySlugs) > 0 {
		set := indexing.SlugSet(prioritySlugs)
		var out []models.ServiceEntry
		for _, s := range services {
			if _, ok := set[s.Slug]; ok {
				out = append(out, s)
			}
		}
		return out
	}
	var out []models.ServiceEntry
	for _, s := range services {
		if s.Priority {
			out = append(out, s)
		}
	}
	return out
}

func prioritizedLocations(locations []models.LocationEntry, prioritySlugs []string) []models.LocationEntry {
	if len(prioritySlugs) > 0 {
		set := indexing.SlugSet(prioritySlugs)
		var out []models.LocationEntry
		for _, l := range locations {
			if _, ok := set[l.Slug]; ok {
				out = append(out, l)
			}
		}
		return out
	}
	return majorTierLocations(locations)
}

func majorTierLocations(locations []models.LocationEntry) []models.LocationEntry {
	var out []models.LocationEntry
	for _, l := range locations {
		if l.Tier == "major" {
			out = append(out, l)
		}
	}
	return out
}

func head[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
