// Package models defines the shared data structures for the page-generation
// pipeline: catalog entities, the rich-text document tree, generation plans
// and rendered pages.
package models

// ServiceEntry is one treatment from the services catalog.
type ServiceEntry struct {
	ID             string `json:"id" yaml:"id"`
	Slug           string `json:"slug" yaml:"slug"`
	Name           string `json:"name" yaml:"name"`
	ParentCategory string `json:"parentCategory,omitempty" yaml:"parentCategory,omitempty"`
	Excerpt        string `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
	ProcedureType  string `json:"procedureType,omitempty" yaml:"procedureType,omitempty"`
	Priority       bool   `json:"priority" yaml:"priority"`
	SortOrder      int    `json:"sortOrder" yaml:"sortOrder"`
}
