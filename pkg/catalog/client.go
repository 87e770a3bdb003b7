// Package catalog fetches service, location and template records from the
// external content source. The source owns these entities; this package is
// read-only over them.
//
// Availability failures are not structural errors: list operations return
// empty slices and lookups return nil, and callers treat that as "currently
// unavailable". Health reports reachability for operators.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/arnolddental/pagegen/models"
	"github.com/arnolddental/pagegen/pkg/render"
)

// Client talks to the content source over HTTP. Construct it once at
// startup and pass it down; it owns no background state.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient builds a catalog client for the given content API base URL.
// timeout bounds every individual request.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// entriesEnvelope is the list response shape of the content API.
type entriesEnvelope struct {
	Items []models.ContentEntry `json:"items"`
}

// AllServices returns every service in stable order: sort order, then slug.
// Returns an empty slice when the source is unavailable.
func (c *Client) AllServices(ctx context.Context) []models.ServiceEntry {
	entries := c.listEntries(ctx, models.KindService)
	services := make([]models.ServiceEntry, 0, len(entries))
	for _, e := range entries {
		svc, err := e.Service()
		if err != nil {
			c.logger.Warn("Skipping malformed service entry", "error", err)
			continue
		}
		services = append(services, *svc)
	}
	sort.SliceStable(services, func(i, j int) bool {
		if services[i].SortOrder != services[j].SortOrder {
			return services[i].SortOrder < services[j].SortOrder
		}
		return services[i].Slug < services[j].Slug
	})
	return services
}

// AllLocations returns every location in stable order: sort order is not a
// location attribute, so ordering is by slug alone.
func (c *Client) AllLocations(ctx context.Context) []models.LocationEntry {
	entries := c.listEntries(ctx, models.KindLocation)
	locations := make([]models.LocationEntry, 0, len(entries))
	for _, e := range entries {
		loc, err := e.Location()
		if err != nil {
			c.logger.Warn("Skipping malformed location entry", "error", err)
			continue
		}
		locations = append(locations, *loc)
	}
	sort.SliceStable(locations, func(i, j int) bool {
		return locations[i].Slug < locations[j].Slug
	})
	return locations
}

// ServiceBySlug returns the service with the given slug, or nil when absent
// or the source is unavailable.
func (c *Client) ServiceBySlug(ctx context.Context, slug string) *models.ServiceEntry {
	entry, ok := c.getEntry(ctx, models.KindService, slug)
	if !ok {
		return nil
	}
	svc, err := entry.Service()
	if err != nil {
		c.logger.Warn("Malformed service entry", "slug", slug, "error", err)
		return nil
	}
	return svc
}

// LocationBySlug returns the location with the given slug, or nil.
func (c *Client) LocationBySlug(ctx context.Context, slug string) *models.LocationEntry {
	entry, ok := c.getEntry(ctx, models.KindLocation, slug)
	if !ok {
		return nil
	}
	loc, err := entry.Location()
	if err != nil {
		c.logger.Warn("Malformed location entry", "slug", slug, "error", err)
		return nil
	}
	return loc
}

// Template returns the single shared page template, or nil when absent.
// A body delivered as rich-text HTML is converted to the typed tree here,
// at the boundary.
func (c *Client) Template(ctx context.Context) *models.Template {
	entry, ok := c.fetchOne(ctx, "/template")
	if !ok {
		return nil
	}
	fields, err := entry.Template()
	if err != nil {
		c.logger.Warn("Malformed template entry", "error", err)
		return nil
	}
	tpl := &models.Template{
		TitleTemplate:       fields.TitleTemplate,
		DescriptionTemplate: fields.DescriptionTemplate,
		HeadingTemplate:     fields.HeadingTemplate,
		Body:                fields.Body,
	}
	if tpl.Body == nil && fields.BodyHTML != "" {
		body, err := render.DocumentFromHTML(fields.BodyHTML)
		if err != nil {
			c.logger.Warn("Failed to convert template body HTML", "error", err)
			return nil
		}
		tpl.Body = body
	}
	if tpl.Body == nil {
		tpl.Body = &models.Document{}
	}
	return tpl
}

// Health reports whether the content source is reachable.
func (c *Client) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

func (c *Client) listEntries(ctx context.Context, kind string) []models.ContentEntry {
	path := fmt.Sprintf("/entries?kind=%s", url.QueryEscape(kind))
	body, err := c.get(ctx, path)
	if err != nil {
		c.logger.Warn("Content source unavailable", "kind", kind, "error", err)
		return nil
	}
	var envelope entriesEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.logger.Warn("Failed to decode entries response", "kind", kind, "error", err)
		return nil
	}
	valid := make([]models.ContentEntry, 0, len(envelope.Items))
	for _, e := range envelope.Items {
		if err := e.Validate(); err != nil {
			c.logger.Warn("Rejecting content entry at boundary", "error", err)
			continue
		}
		if e.Kind != kind {
			c.logger.Warn("Ignoring entry of unexpected kind", "want", kind, "got", e.Kind)
			continue
		}
		valid = append(valid, e)
	}
	return valid
}

func (c *Client) getEntry(ctx context.Context, kind, slug string) (models.ContentEntry, bool) {
	path := fmt.Sprintf("/entries/%s/%s", url.PathEscape(kind), url.PathEscape(slug))
	return c.fetchOne(ctx, path)
}

func (c *Client) fetchOne(ctx context.Context, path string) (models.ContentEntry, bool) {
	body, err := c.get(ctx, path)
	if err != nil {
		c.logger.Warn("Content source unavailable", "path", path, "error", err)
		return models.ContentEntry{}, false
	}
	var entry models.ContentEntry
	if err := json.Unmarshal(body, &entry); err != nil {
		c.logger.Warn("Failed to decode entry response", "path", path, "error", err)
		return models.ContentEntry{}, false
	}
	if err := entry.Validate(); err != nil {
		c.logger.Warn("Rejecting content entry at boundary", "path", path, "error", err)
		return models.ContentEntry{}, false
	}
	return entry, true
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
