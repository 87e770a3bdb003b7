package models

import (
	"encoding/json"
	"fmt"
)

// Content-entry kinds recognized at the content-source boundary.
const (
	KindService  = "service"
	KindLocation = "location"
	KindTemplate = "template"
)

// ContentEntry is the tagged envelope every record from the content source
// arrives in. Unknown kinds are rejected here, at the boundary, so nothing
// untyped travels further into the pipeline.
type ContentEntry struct {
	Kind   string          `json:"kind"`
	Fields json.RawMessage `json:"fields"`
}

// Validate checks that the entry carries a recognized kind and a payload.
func (e ContentEntry) Validate() error {
	switch e.Kind {
	case KindService, KindLocation, KindTemplate:
	default:
		return fmt.Errorf("unknown content entry kind %q", e.Kind)
	}
	if len(e.Fields) == 0 {
		return fmt.Errorf("content entry %q has no fields", e.Kind)
	}
	return nil
}

// Service decodes the entry as a ServiceEntry.
func (e ContentEntry) Service() (*ServiceEntry, error) {
	if e.Kind != KindService {
		return nil, fmt.Errorf("entry kind is %q, not %q", e.Kind, KindService)
	}
	var svc ServiceEntry
	if err := json.Unmarshal(e.Fields, &svc); err != nil {
		return nil, fmt.Errorf("failed to decode service entry: %w", err)
	}
	if svc.Slug == "" {
		return nil, fmt.Errorf("service entry %q has no slug", svc.ID)
	}
	return &svc, nil
}

// Location decodes the entry as a LocationEntry.
func (e ContentEntry) Location() (*LocationEntry, error) {
	if e.Kind != KindLocation {
		return nil, fmt.Errorf("entry kind is %q, not %q", e.Kind, KindLocation)
	}
	var loc LocationEntry
	if err := json.Unmarshal(e.Fields, &loc); err != nil {
		return nil, fmt.Errorf("failed to decode location entry: %w", err)
	}
	if loc.Slug == "" {
		return nil, fmt.Errorf("location entry %q has no slug", loc.ID)
	}
	return &loc, nil
}

// Template decodes the entry as template fields.
func (e ContentEntry) Template() (*TemplateFields, error) {
	if e.Kind != KindTemplate {
		return nil, fmt.Errorf("entry kind is %q, not %q", e.Kind, KindTemplate)
	}
	var tpl TemplateFields
	if err := json.Unmarshal(e.Fields, &tpl); err != nil {
		return nil, fmt.Errorf("failed to decode template entry: %w", err)
	}
	return &tpl, nil
}
