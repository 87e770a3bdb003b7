package emitter

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/arnolddental/pagegen/models"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURL struct {
	XMLName    xml.Name `xml:"url"`
	Loc        string   `xml:"loc"`
	LastMod    string   `xml:"lastmod"`
	ChangeFreq string   `xml:"changefreq"`
	Priority   string   `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// SitemapXML renders the sitemap for the indexable pages only, capped at
// maxURLs. Escaping comes from encoding/xml.
func SitemapXML(pages []models.RenderedPage, maxURLs int, now time.Time) (string, error) {
	if maxURLs <= 0 {
		maxURLs = 2000
	}
	lastMod := now.UTC().Format("2006-01-02")

	set := urlSet{Xmlns: sitemapNamespace}
	for _, p := range pages {
		if !p.Indexable {
			continue
		}
		if len(set.URLs) >= maxURLs {
			break
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        p.CanonicalURL,
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal sitemap: %w", err)
	}
	return xml.Header + string(out) + "\n", nil
}
