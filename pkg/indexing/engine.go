// Package indexing decides whether a rendered page should be exposed to
// search engines. The decision is a pure function of the pair's catalog
// entries, the rendered word count and the configured rule set: no clocks,
// no randomness, no network.
package indexing

import (
	"github.com/arnolddental/pagegen/models"
)

// Failure reasons, one per predicate.
const (
	ReasonNotPrioritized = "service not prioritized"
	ReasonNotAllowlisted = "location not allow-listed"
	ReasonThinContent    = "insufficient content"
	ReasonNoLocalProof   = "no local proof"
)

// Rules configures the decision engine.
type Rules struct {
	PriorityOnly      bool
	AllowlistOnly     bool
	ContentOnly       bool
	RequireLocalProof bool
	PriorityServices  map[string]struct{}
	AllowlistSuburbs  map[string]struct{}
	MinWords          int
}

// RulesFromConfig builds the rule set from environment configuration. A
// non-empty priority or allowlist list switches its predicate on.
func RulesFromConfig(cfg *models.Config) Rules {
	return Rules{
		PriorityOnly:      len(cfg.PriorityServices) > 0,
		AllowlistOnly:     len(cfg.AllowlistSuburbs) > 0,
		ContentOnly:       cfg.MinWords > 0,
		RequireLocalProof: cfg.RequireLocalProof,
		PriorityServices:  SlugSet(cfg.PriorityServices),
		AllowlistSuburbs:  SlugSet(cfg.AllowlistSuburbs),
		MinWords:          cfg.MinWords,
	}
}

// SlugSet converts a slug list into a membership set.
func SlugSet(slugs []string) map[string]struct{} {
	set := make(map[string]struct{}, len(slugs))
	for _, s := range slugs {
		set[s] = struct{}{}
	}
	return set
}

// Decide evaluates every applicable predicate and returns the conjunction
// plus a reason per failed predicate. Predicates are not short-circuited:
// a page failing three rules reports all three reasons, which is what makes
// exclusion debuggable.
func Decide(service models.ServiceEntry, location models.LocationEntry, wordCount int, rules Rules) (bool, []string) {
	var reasons []string

	if rules.PriorityOnly {
		if _, ok := rules.PriorityServices[service.Slug]; !ok {
			reasons = append(reasons, ReasonNotPrioritized)
		}
	}
	if rules.AllowlistOnly {
		if _, ok := rules.AllowlistSuburbs[location.Slug]; !ok {
			reasons = append(reasons, ReasonNotAllowlisted)
		}
	}
	if rules.ContentOnly && wordCount < rules.MinWords {
		reasons = append(reasons, ReasonThinContent)
	}
	if rules.RequireLocalProof && !location.HasLocalProof() {
		reasons = append(reasons, ReasonNoLocalProof)
	}

	return len(reasons) == 0, reasons
}
