// Package server exposes the lazily generated pages over HTTP: per-pair
// page payloads for the rendering layer, the sitemap, and a health probe.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/arnolddental/pagegen/internal/common"
	"github.com/arnolddental/pagegen/models"
	"github.com/arnolddental/pagegen/pkg/alias"
	"github.com/arnolddental/pagegen/pkg/catalog"
	"github.com/arnolddental/pagegen/pkg/pagecache"
)

// SitemapBuilder produces the sitemap document on demand.
type SitemapBuilder func(ctx context.Context) (string, error)

// Server wires the catalog, page cache and sitemap builder behind a chi
// router.
type Server struct {
	catalog *catalog.Client
	cache   *pagecache.Cache
	sitemap SitemapBuilder
	logger  *slog.Logger
}

// New builds a server. All collaborators are injected; the server owns no
// construction of its own.
func New(cat *catalog.Client, cache *pagecache.Cache, sitemap SitemapBuilder, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{catalog: cat, cache: cache, sitemap: sitemap, logger: logger}
}

// Routes returns the HTTP routes.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/sitemap.xml", s.handleSitemap)
	r.Get("/{service}/{suburb}", s.handlePage)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.catalog.Health(r.Context()) {
		http.Error(w, "content source unreachable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	xmlDoc, err := s.sitemap(r.Context())
	if err != nil {
		s.logger.Error("Sitemap generation failed", "error", err)
		http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(xmlDoc))
}

// handlePage serves one pair. The requested category identifier goes
// through alias resolution with a single canonical-retry; anything still
// unresolved against a reachable catalog is a plain 404, never a generation
// error. An unreachable catalog is not a 404: cached pages keep serving and
// uncached pairs go through the fallback chain, which never fails.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	requested := chi.URLParam(r, "service")
	suburb := common.NormalizeSlug(chi.URLParam(r, "suburb"))

	slugs := serviceSlugs(s.catalog.AllServices(r.Context()))
	catalogUp := len(slugs) > 0

	serviceSlug, ok := resolveService(requested, slugs, catalogUp)
	if !ok {
		http.NotFound(w, r)
		return
	}
	pair := models.PairKey{Service: serviceSlug, Location: suburb}

	// Only a reachable catalog can declare a location absent, and a pair
	// already cached serves regardless of source health.
	if catalogUp && !s.cache.Has(pair) && s.catalog.LocationBySlug(r.Context(), suburb) == nil {
		http.NotFound(w, r)
		return
	}

	page, err := s.cache.Get(r.Context(), pair)
	if err != nil || page == nil {
		s.logger.Error("Page generation failed", "service", serviceSlug, "suburb", suburb, "error", err)
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "s-maxage="+itoaSeconds(page.RevalidateAfter)+", stale-while-revalidate")
	if !page.Indexable {
		w.Header().Set("X-Robots-Tag", "noindex")
	}
	if err := json.NewEncoder(w).Encode(pagePayload(page)); err != nil {
		s.logger.Error("Failed to encode page payload", "error", err)
	}
}

// resolveService applies the two-step retry: resolve the requested slug
// against the live catalog, and on a miss try the alias table's canonical
// form once. With the catalog down there is nothing to validate against,
// so the alias table's canonical form (or the normalized slug) stands in
// and the fallback chain supplies content for it.
func resolveService(requested string, slugs []string, catalogUp bool) (string, bool) {
	if !catalogUp {
		if canonical, ok := alias.Canonical(requested); ok {
			return canonical, true
		}
		return common.NormalizeSlug(requested), true
	}
	if slug, ok := alias.Resolve(requested, slugs); ok {
		return slug, true
	}
	if canonical, ok := alias.Canonical(requested); ok {
		if slug, ok := alias.Resolve(canonical, slugs); ok {
			return slug, true
		}
	}
	return "", false
}

func serviceSlugs(services []models.ServiceEntry) []string {
	slugs := make([]string, len(services))
	for i, s := range services {
		slugs[i] = s.Slug
	}
	return slugs
}

// pagePayload is the contract consumed by the page-rendering layer.
func pagePayload(p *models.RenderedPage) map[string]any {
	return map[string]any{
		"title":        p.Title,
		"description":  p.Description,
		"heading":      p.Heading,
		"bodyDocument": p.Body,
		"canonicalUrl": p.CanonicalURL,
		"indexable":    p.Indexable,
	}
}

func itoaSeconds(d time.Duration) string {
	secs := int(d / time.Second)
	if secs <= 0 {
		secs = 3600
	}
	return strconv.Itoa(secs)
}
