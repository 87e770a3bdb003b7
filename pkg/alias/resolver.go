// Package alias normalizes legacy and alternate category identifiers to
// the canonical slugs stored in the services catalog.
package alias

import (
	"strings"

	"github.com/arnolddental/pagegen/internal/common"
)

// table maps historical and alternate spellings to canonical catalog slugs.
// Grown over several site migrations; keep entries lower-case.
var table = map[string]string{
	"emergency":        "emergency-dentistry",
	"emergency-dental": "emergency-dentistry",
	"cosmetic":         "cosmetic-dentistry",
	"implant":          "dental-implants",
	"implants":         "dental-implants",
	"braces":           "orthodontics",
	"invisible-braces": "invisalign",
	"checkup":          "general-dentistry",
	"check-up":         "general-dentistry",
	"hygiene":          "hygienist-services",
	"hygienist":        "hygienist-services",
}

// Suffixes stripped by the heuristic step, tried in order.
var strippableSuffixes = []string{"-dentistry", "-dental", "-services", "-service"}

// Canonical looks the requested slug up in the static alias table only.
// The page layer uses this for its one-shot retry after a full Resolve miss.
func Canonical(requested string) (string, bool) {
	slug, ok := table[common.NormalizeSlug(requested)]
	return slug, ok
}

// Resolve maps a requested category identifier to a canonical catalog slug.
// Order, first match wins: static alias table, exact catalog match, then a
// suffix-strip heuristic against each catalog slug. Returns false when
// nothing matches; the caller decides between a 404 and an alternate alias
// source.
func Resolve(requested string, catalogSlugs []string) (string, bool) {
	slug := common.NormalizeSlug(requested)
	if slug == "" {
		return "", false
	}

	if canonical, ok := table[slug]; ok {
		return canonical, true
	}

	for _, c := range catalogSlugs {
		if c == slug {
			return c, true
		}
	}

	for _, c := range catalogSlugs {
		for _, suffix := range strippableSuffixes {
			if stripped, ok := strings.CutSuffix(c, suffix); ok && stripped == slug {
				return c, true
			}
		}
	}

	return "", false
}
