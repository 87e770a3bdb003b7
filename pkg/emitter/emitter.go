// Package emitter turns a generation plan into rendered pages, the static
// route-parameter list, and the sitemap. Per-pair work shares no mutable
// state, so it fans out across a bounded worker pool.
package emitter

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/arnolddental/pagegen/models"
	"github.com/arnolddental/pagegen/pkg/fallback"
	"github.com/arnolddental/pagegen/pkg/indexing"
	"github.com/arnolddental/pagegen/pkg/render"
)

// DefaultWorkers keeps in-flight pair resolutions within the content
// source's rate limits.
const DefaultWorkers = 8

// DefaultRevalidate is the revalidation interval assigned to every
// pre-built page.
const DefaultRevalidate = 3600 * time.Second

// ContentResolver is the slice of the fallback chain the emitter needs.
type ContentResolver interface {
	Resolve(ctx context.Context, serviceSlug, locationSlug string) fallback.Result
}

// Options configures an emit run.
type Options struct {
	BaseURL    string
	Workers    int
	Revalidate time.Duration
	Rules      indexing.Rules
	Logger     *slog.Logger
}

type job struct {
	idx  int
	pair models.PairKey
}

// Emit resolves, renders and classifies every pair in the plan. Output
// order follows plan order regardless of worker completion order, keeping
// builds reproducible.
func Emit(ctx context.Context, plan models.GenerationPlan, resolver ContentResolver, opts Options) []models.RenderedPage {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	revalidate := opts.Revalidate
	if revalidate <= 0 {
		revalidate = DefaultRevalidate
	}

	logger.Info("Starting page emission", "pairs", len(plan.Pairs), "workers", workers, "strategy", plan.Strategy)

	pages := make([]models.RenderedPage, len(plan.Pairs))
	jobs := make(chan job, len(plan.Pairs))

	var wg sync.WaitGroup
	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := range jobs {
				pages[j.idx] = BuildPage(ctx, j.pair, resolver, opts.BaseURL, revalidate, opts.Rules)
				logger.Debug("Worker rendered pair", "worker_id", id, "pair", j.pair.Key(), "source", pages[j.idx].Source, "indexable", pages[j.idx].Indexable)
			}
		}(w)
	}

	for i, pair := range plan.Pairs {
		jobs <- job{idx: i, pair: pair}
	}
	close(jobs)
	wg.Wait()

	logger.Info("Page emission finished", "pages", len(pages))
	return pages
}

// BuildPage runs the per-pair sequence: resolve content, fill the template,
// decide indexability. The serve layer uses the same sequence for lazy,
// request-time generation of pairs outside the plan.
func BuildPage(ctx context.Context, pair models.PairKey, resolver ContentResolver, baseURL string, revalidate time.Duration, rules indexing.Rules) models.RenderedPage {
	res := resolver.Resolve(ctx, pair.Service, pair.Location)
	repl := Replacements(res.Content)

	body := render.Render(res.Template.Body, repl)
	wordCount := render.WordCount(body)
	indexable, reasons := indexing.Decide(res.Service, res.Location, wordCount, rules)

	return models.RenderedPage{
		Pair:            pair,
		Title:           render.RenderString(res.Template.TitleTemplate, repl),
		Description:     render.RenderString(res.Template.DescriptionTemplate, repl),
		Heading:         render.RenderString(res.Template.HeadingTemplate, repl),
		Body:            body,
		Indexable:       indexable,
		Reasons:         reasons,
		CanonicalURL:    CanonicalURL(baseURL, pair),
		Source:          res.Source,
		RevalidateAfter: revalidate,
	}
}

// Replacements maps the token vocabulary to this pair's values. Display
// names are substituted, not slugs.
func Replacements(content fallback.Content) render.Replacements {
	return render.Replacements{
		"service":       content.Service.Name,
		"suburb":        content.Location.Suburb,
		"city":          content.Location.City,
		"reviewsCount":  strconv.Itoa(content.Practice.ReviewsCount),
		"reviewsRating": strconv.FormatFloat(content.Practice.ReviewsRating, 'f', -1, 64),
		"membershipUrl": content.Practice.MembershipURL,
		"contactUrl":    content.Practice.ContactURL,
		"bookingUrl":    content.Practice.BookingURL,
	}
}

// CanonicalURL builds the public URL for a pair.
func CanonicalURL(baseURL string, pair models.PairKey) string {
	return strings.TrimRight(baseURL, "/") + "/" + pair.Service + "/" + pair.Location
}

// RouteParam is one entry of the static pre-render list handed to the page
// rendering layer.
type RouteParam struct {
	Service string `json:"service"`
	Suburb  string `json:"suburb"`
}

// StaticParams returns the route parameters for every page in the emit
// output, indexable or not: indexability controls search exposure, not
// page existence.
func StaticParams(pages []models.RenderedPage) []RouteParam {
	params := make([]RouteParam, len(pages))
	for i, p := range pages {
		params[i] = RouteParam{Service: p.Pair.Service, Suburb: p.Pair.Location}
	}
	return params
}
