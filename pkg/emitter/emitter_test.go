package emitter

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/arnolddental/pagegen/internal/common"
	"github.com/arnolddental/pagegen/models"
	"github.com/arnolddental/pagegen/pkg/fallback"
	"github.com/arnolddental/pagegen/pkg/indexing"
)

// stubResolver serves fixed content for every pair, echoing the pair slugs
// into the entries the way the live chain would.
type stubResolver struct {
	body *models.Document
}

func (s *stubResolver) Resolve(ctx context.Context, serviceSlug, locationSlug string) fallback.Result {
	body := s.body
	if body == nil {
		body = &models.Document{Nodes: []models.Node{
			{Type: "p", Children: []models.Node{
				{Type: models.NodeText, Text: "About {{ service }} in {{ suburb }}."},
			}},
		}}
	}
	return fallback.Result{
		Content: fallback.Content{
			Service:  models.ServiceEntry{Slug: serviceSlug, Name: serviceSlug, Priority: true},
			Location: models.LocationEntry{Slug: locationSlug, Suburb: common.Titleize(locationSlug), City: "Nottingham", Tier: "major"},
			Template: models.Template{
				TitleTemplate:       "{{service}} in {{suburb}}",
				DescriptionTemplate: "Book {{ service }} near {{ suburb }} today",
				HeadingTemplate:     "{{ service }} in {{ suburb }}",
				Body:                body,
			},
			Practice: fallback.PracticeInfo{ReviewsCount: 200, ReviewsRating: 4.8, BookingURL: "/book"},
		},
		Source: models.SourceLive,
	}
}

func TestBuildPage_EndToEndScenario(t *testing.T) {
	// Catalog: one priority service "whitening", one major-tier location
	// "arnold"; template "{{service}} in {{suburb}}". Display names are
	// substituted, not slugs.
	resolver := &stubResolver{}
	rules := indexing.Rules{
		PriorityOnly:     true,
		AllowlistOnly:    true,
		PriorityServices: indexing.SlugSet([]string{"whitening"}),
		AllowlistSuburbs: indexing.SlugSet([]string{"arnold"}),
	}

	pair := models.PairKey{Service: "whitening", Location: "arnold"}
	page := BuildPage(context.Background(), pair, resolver, "https://example.com", time.Hour, rules)

	if page.Title != "whitening in Arnold" {
		t.Errorf("Title = %q, want %q", page.Title, "whitening in Arnold")
	}
	if !page.Indexable {
		t.Errorf("Indexable = false, reasons %v; want true", page.Reasons)
	}
	if page.CanonicalURL != "https://example.com/whitening/arnold" {
		t.Errorf("CanonicalURL = %q", page.CanonicalURL)
	}
	if page.RevalidateAfter != time.Hour {
		t.Errorf("RevalidateAfter = %v", page.RevalidateAfter)
	}
	if page.Body.Nodes[0].Children[0].Text != "About whitening in Arnold." {
		t.Errorf("body leaf = %q", page.Body.Nodes[0].Children[0].Text)
	}
}

func TestEmit_PreservesPlanOrder(t *testing.T) {
	plan := models.GenerationPlan{
		Strategy: models.StrategyFull,
		Pairs: []models.PairKey{
			{Service: "a", Location: "x"},
			{Service: "a", Location: "y"},
			{Service: "b", Location: "x"},
			{Service: "b", Location: "y"},
			{Service: "c", Location: "x"},
		},
		Cap: 10,
	}

	pages := Emit(context.Background(), plan, &stubResolver{}, Options{BaseURL: "https://example.com", Workers: 4})
	if len(pages) != len(plan.Pairs) {
		t.Fatalf("Emit() = %d pages, want %d", len(pages), len(plan.Pairs))
	}
	for i, p := range pages {
		if p.Pair != plan.Pairs[i] {
			t.Errorf("pages[%d].Pair = %v, want %v (output must follow plan order)", i, p.Pair, plan.Pairs[i])
		}
	}
}

func TestStaticParams(t *testing.T) {
	pages := []models.RenderedPage{
		{Pair: models.PairKey{Service: "a", Location: "x"}, Indexable: true},
		{Pair: models.PairKey{Service: "b", Location: "y"}, Indexable: false},
	}
	params := StaticParams(pages)
	if len(params) != 2 {
		t.Fatalf("StaticParams() = %d entries, want 2 (non-indexable pages are still buildable)", len(params))
	}
	if params[1].Service != "b" || params[1].Suburb != "y" {
		t.Errorf("params[1] = %+v", params[1])
	}
}

func TestSitemapXML_IndexableOnly(t *testing.T) {
	pages := []models.RenderedPage{
		{Pair: models.PairKey{Service: "a", Location: "x"}, Indexable: true, CanonicalURL: "https://example.com/a/x"},
		{Pair: models.PairKey{Service: "b", Location: "y"}, Indexable: false, CanonicalURL: "https://example.com/b/y"},
	}

	xmlDoc, err := SitemapXML(pages, 100, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("SitemapXML() error = %v", err)
	}
	if !strings.Contains(xmlDoc, "<loc>https://example.com/a/x</loc>") {
		t.Error("indexable page missing from sitemap")
	}
	if strings.Contains(xmlDoc, "/b/y") {
		t.Error("non-indexable page leaked into sitemap")
	}
	if !strings.Contains(xmlDoc, "<lastmod>2026-03-01</lastmod>") {
		t.Error("lastmod missing")
	}
	if !strings.Contains(xmlDoc, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`) {
		t.Error("urlset namespace missing")
	}
}

func TestSitemapXML_EscapesAndCaps(t *testing.T) {
	pages := []models.RenderedPage{
		{Indexable: true, CanonicalURL: "https://example.com/a/x?ref=1&src=2"},
		{Indexable: true, CanonicalURL: "https://example.com/a/y"},
		{Indexable: true, CanonicalURL: "https://example.com/a/z"},
	}

	xmlDoc, err := SitemapXML(pages, 2, time.Now())
	if err != nil {
		t.Fatalf("SitemapXML() error = %v", err)
	}
	if !strings.Contains(xmlDoc, "ref=1&amp;src=2") {
		t.Error("ampersand not XML-escaped")
	}
	if got := strings.Count(xmlDoc, "<url>"); got != 2 {
		t.Errorf("sitemap has %d urls, want 2 (capped)", got)
	}
	if strings.Contains(xmlDoc, "/a/z") {
		t.Error("cap not applied in stable order")
	}
}

func TestSitemapXML_NonIndexableDoesNotConsumeCap(t *testing.T) {
	pages := []models.RenderedPage{
		{Indexable: false, CanonicalURL: "https://example.com/a/x"},
		{Indexable: true, CanonicalURL: "https://example.com/a/y"},
		{Indexable: true, CanonicalURL: "https://example.com/a/z"},
	}

	xmlDoc, err := SitemapXML(pages, 2, time.Now())
	if err != nil {
		t.Fatalf("SitemapXML() error = %v", err)
	}
	if !strings.Contains(xmlDoc, "/a/y") || !strings.Contains(xmlDoc, "/a/z") {
		t.Error("excluded page consumed a sitemap slot")
	}
}

func TestReplacements_CoercesNumbers(t *testing.T) {
	repl := Replacements(fallback.Content{
		Service:  models.ServiceEntry{Name: "Implants"},
		Location: models.LocationEntry{Suburb: "Arnold", City: "Nottingham"},
		Practice: fallback.PracticeInfo{ReviewsCount: 312, ReviewsRating: 4.9},
	})
	if repl["reviewsCount"] != "312" {
		t.Errorf("reviewsCount = %q", repl["reviewsCount"])
	}
	if repl["reviewsRating"] != "4.9" {
		t.Errorf("reviewsRating = %q", repl["reviewsRating"])
	}
}
