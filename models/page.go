package models

import "time"

// Content-source names recorded on a rendered page, in fallback order.
const (
	SourceLive     = "live"
	SourceSnapshot = "snapshot"
	SourceDefault  = "default"
)

// RenderedPage is one fully filled page, ready for the page-rendering layer.
// Indexable controls search-engine exposure only; a non-indexable page is
// still buildable and servable.
type RenderedPage struct {
	Pair            PairKey       `json:"pair"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Heading         string        `json:"heading"`
	Body            *Document     `json:"bodyDocument"`
	Indexable       bool          `json:"indexable"`
	Reasons         []string      `json:"reasons,omitempty"`
	CanonicalURL    string        `json:"canonicalUrl"`
	Source          string        `json:"source"`
	RevalidateAfter time.Duration `json:"-"`
}
