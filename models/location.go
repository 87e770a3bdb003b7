package models

// Testimonial is a patient review tied to a specific location.
type Testimonial struct {
	Author string `json:"author" yaml:"author"`
	Quote  string `json:"quote" yaml:"quote"`
	Rating int    `json:"rating" yaml:"rating"`
}

// LocationEntry is one suburb from the locations catalog.
type LocationEntry struct {
	ID               string        `json:"id" yaml:"id"`
	Slug             string        `json:"slug" yaml:"slug"`
	Suburb           string        `json:"suburb" yaml:"suburb"`
	City             string        `json:"city" yaml:"city"`
	Postcode         string        `json:"postcode" yaml:"postcode"`
	Lat              float64       `json:"lat" yaml:"lat"`
	Lng              float64       `json:"lng" yaml:"lng"`
	Tier             string        `json:"tier,omitempty" yaml:"tier,omitempty"` // "major" marks staged-build locations
	Testimonials     []Testimonial `json:"testimonials,omitempty" yaml:"testimonials,omitempty"`
	HasUniqueContent bool          `json:"hasUniqueContent" yaml:"hasUniqueContent"`
}

// HasLocalProof reports whether the location carries content that proves
// genuine local relevance: at least one testimonial or unique local copy.
func (l LocationEntry) HasLocalProof() bool {
	return len(l.Testimonials) > 0 || l.HasUniqueContent
}
