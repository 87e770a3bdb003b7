// Package fallback resolves content for one service x location pair by
// trying ordered sources until one succeeds: live content source, local
// snapshot, synthesized defaults. The final stage never fails, so a pair
// always resolves to something servable.
package fallback

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/arnolddental/pagegen/models"
	"github.com/arnolddental/pagegen/pkg/snapshot"
)

// DefaultLiveTimeout bounds the live-fetch stage.
const DefaultLiveTimeout = 2000 * time.Millisecond

// Content is the per-pair payload every stage produces. Its shape is
// identical regardless of which stage satisfied the request.
type Content struct {
	Service  models.ServiceEntry  `json:"service"`
	Location models.LocationEntry `json:"location"`
	Template models.Template      `json:"template"`
	Practice PracticeInfo         `json:"practice"`
}

// Result is resolved pair content plus the stage that produced it.
type Result struct {
	Content
	Source string
}

// Source is the slice of the catalog client the chain needs. Satisfied by
// *catalog.Client.
type Source interface {
	ServiceBySlug(ctx context.Context, slug string) *models.ServiceEntry
	LocationBySlug(ctx context.Context, slug string) *models.LocationEntry
	Template(ctx context.Context) *models.Template
}

// Chain is the ordered resolution pipeline for pair content.
type Chain struct {
	source   Source
	store    *snapshot.Store
	defaults *Defaults
	timeout  time.Duration
	runID    string
	logger   *slog.Logger
}

// NewChain wires the three stages together. store may be nil, in which case
// stage 2 is skipped and live results are not persisted. timeout <= 0 falls
// back to DefaultLiveTimeout.
func NewChain(source Source, store *snapshot.Store, defaults *Defaults, timeout time.Duration, runID string, logger *slog.Logger) *Chain {
	if timeout <= 0 {
		timeout = DefaultLiveTimeout
	}
	if defaults == nil {
		defaults = builtinDefaults()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{
		source:   source,
		store:    store,
		defaults: defaults,
		timeout:  timeout,
		runID:    runID,
		logger:   logger,
	}
}

// Resolve obtains content for one pair. It never fails: if the live source
// times out or errors and no snapshot exists, the synthesized default is
// returned. The satisfying stage is logged and recorded on the result.
func (c *Chain) Resolve(ctx context.Context, serviceSlug, locationSlug string) Result {
	pair := models.PairKey{Service: serviceSlug, Location: locationSlug}

	if content, ok := c.live(ctx, serviceSlug, locationSlug); ok {
		c.logger.Debug("Pair content resolved", "pair", pair.Key(), "stage", models.SourceLive)
		c.persist(pair, content)
		return Result{Content: content, Source: models.SourceLive}
	}

	if content, ok := c.cached(pair); ok {
		c.logger.Info("Pair content served from snapshot", "pair", pair.Key(), "stage", models.SourceSnapshot)
		return Result{Content: content, Source: models.SourceSnapshot}
	}

	c.logger.Info("Pair content synthesized from defaults", "pair", pair.Key(), "stage", models.SourceDefault)
	content := c.defaults.Synthesize(serviceSlug, locationSlug)
	return Result{Content: content, Source: models.SourceDefault}
}

// live runs stage 1: a timeout-bounded fetch of all three records. Any
// missing record fails the stage; cancellation falls through rather than
// propagating an error.
func (c *Chain) live(ctx context.Context, serviceSlug, locationSlug string) (Content, bool) {
	if c.source == nil {
		return Content{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	svc := c.source.ServiceBySlug(ctx, serviceSlug)
	if svc == nil || ctx.Err() != nil {
		return Content{}, false
	}
	loc := c.source.LocationBySlug(ctx, locationSlug)
	if loc == nil || ctx.Err() != nil {
		return Content{}, false
	}
	tpl := c.source.Template(ctx)
	if tpl == nil || ctx.Err() != nil {
		return Content{}, false
	}

	return Content{
		Service:  *svc,
		Location: *loc,
		Template: *tpl,
		Practice: c.defaults.Practice,
	}, true
}

// cached runs stage 2: the local snapshot keyed "{service}--{location}".
func (c *Chain) cached(pair models.PairKey) (Content, bool) {
	if c.store == nil {
		return Content{}, false
	}
	payload, ok := c.store.Get(pair.Key())
	if !ok {
		return Content{}, false
	}
	var content Content
	if err := json.Unmarshal(payload, &content); err != nil {
		c.logger.Warn("Discarding unreadable snapshot", "pair", pair.Key(), "error", err)
		return Content{}, false
	}
	return content, true
}

// persist writes a live result back so the snapshot stage stays warm.
func (c *Chain) persist(pair models.PairKey, content Content) {
	if c.store == nil {
		return
	}
	payload, err := json.Marshal(content)
	if err != nil {
		c.logger.Warn("Failed to encode snapshot", "pair", pair.Key(), "error", err)
		return
	}
	ref := snapshot.PairRef{Key: pair.Key(), Service: pair.Service, Location: pair.Location}
	if err := c.store.Put(ref, payload, c.runID); err != nil {
		c.logger.Warn("Failed to persist snapshot", "pair", pair.Key(), "error", err)
	}
}
