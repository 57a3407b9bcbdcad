package search

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"

	"github.com/vidyarthi-io/scholarseek/internal/eligibility"
	serrors "github.com/vidyarthi-io/scholarseek/internal/errors"
	"github.com/vidyarthi-io/scholarseek/internal/memory"
	"github.com/vidyarthi-io/scholarseek/internal/safety"
	"github.com/vidyarthi-io/scholarseek/internal/store"
	"github.com/vidyarthi-io/scholarseek/internal/validation"
	"github.com/vidyarthi-io/scholarseek/internal/vector"
)

// Recall supplies personalization boosts. Implementations must degrade
// to an empty map instead of erroring.
type Recall interface {
	BoostsFor(ctx context.Context, userID, query string) map[string]float64
}

// InteractionLog receives fire-and-forget interaction records.
type InteractionLog interface {
	Log(memory.Interaction)
}

// Pipeline defaults.
const (
	DefaultTopK           = 20
	DefaultRetrievalLimit = 50
	DefaultScoringWorkers = 8
)

// Config assembles a Pipeline. Provider, Recall and Interactions are
// optional collaborators; nil means the feature is off.
type Config struct {
	Provider        vector.Provider
	Recall          Recall
	Interactions    InteractionLog
	TopK            int
	RetrievalLimit  int
	FusionK         int
	CacheTTL        time.Duration
	CacheMaxEntries int
	ScoringWorkers  int

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// Pipeline owns the result cache, the scoring worker pool and the
// per-request event stream. Safe for concurrent queries: the catalog
// and index are read-only, the cache is internally locked.
type Pipeline struct {
	catalog      *store.Catalog
	index        *store.BM25Index
	provider     vector.Provider
	recall       Recall
	interactions InteractionLog
	cache        *Cache
	pool         *ants.Pool

	topK           int
	retrievalLimit int
	fusionK        int

	now func() time.Time
}

// New builds a pipeline over a loaded catalog and its lexical index.
func New(catalog *store.Catalog, index *store.BM25Index, cfg Config) (*Pipeline, error) {
	if catalog == nil || index == nil {
		return nil, fmt.Errorf("pipeline requires a catalog and a lexical index")
	}
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	if cfg.RetrievalLimit <= 0 {
		cfg.RetrievalLimit = DefaultRetrievalLimit
	}
	if cfg.FusionK <= 0 {
		cfg.FusionK = DefaultFusionK
	}
	if cfg.ScoringWorkers <= 0 {
		cfg.ScoringWorkers = DefaultScoringWorkers
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	pool, err := ants.NewPool(cfg.ScoringWorkers)
	if err != nil {
		return nil, fmt.Errorf("create scoring pool: %w", err)
	}

	return &Pipeline{
		catalog:        catalog,
		index:          index,
		provider:       cfg.Provider,
		recall:         cfg.Recall,
		interactions:   cfg.Interactions,
		cache:          NewCache(cfg.CacheTTL, cfg.CacheMaxEntries),
		pool:           pool,
		topK:           cfg.TopK,
		retrievalLimit: cfg.RetrievalLimit,
		fusionK:        cfg.FusionK,
		now:            cfg.Now,
	}, nil
}

// Close releases the scoring pool.
func (p *Pipeline) Close() {
	p.pool.Release()
}

// Mode reports the retrieval strategy in effect.
func (p *Pipeline) Mode() string {
	if p.provider != nil {
		return "hybrid"
	}
	return "lexical"
}

// Search runs the full pipeline for a query. Validation failures are
// returned before any stage runs; collaborator failures degrade; an
// unexpected panic surfaces as a generic failure after a terminal
// error event.
func (p *Pipeline) Search(ctx context.Context, req Request, sink ProgressSink) (resp *Response, err error) {
	started := p.now()

	query, verr := validation.Query(req.Query)
	if verr != nil {
		return nil, verr
	}
	topK := req.TopK
	if topK == 0 {
		topK = p.topK
	}
	if verr := validation.TopK(topK); verr != nil {
		return nil, verr
	}
	profile := resolveProfile(req.Profile)

	em := newEmitter(sink, started)
	defer func() {
		if r := recover(); r != nil {
			slog.Error("search pipeline panicked", slog.Any("panic", r))
			em.emit(StageError, "search failed", nil)
			resp = nil
			err = serrors.New(serrors.ErrCodeSearchFailed, "search failed", nil)
		}
	}()

	key := Key(query, profile, req.Filters)
	if results, latency, logs, ok := p.cache.Get(key); ok {
		em.emit(StageStart, "cache hit", map[string]any{"query": query, "cache_hit": true})
		if len(results) > topK {
			results = results[:topK]
		}
		em.emit(StageComplete, "served from cache", map[string]any{"results": len(results)})
		return &Response{
			SearchID:  uuid.NewString(),
			Results:   results,
			Total:     len(results),
			LatencyMS: latency,
			Logs:      append([]string{"cache hit"}, logs...),
			CacheHit:  true,
		}, nil
	}

	logs := []string{fmt.Sprintf("query %q, mode %s", query, p.Mode())}
	em.emit(StageStart, "search started", map[string]any{"query": query, "mode": p.Mode()})

	candidateIDs, retrievalLogs, rerr := p.retrieve(ctx, query, topK, em)
	if rerr != nil {
		return nil, rerr
	}
	logs = append(logs, retrievalLogs...)

	filtered := p.hydrateAndFilter(candidateIDs, req.Filters)
	logs = append(logs, fmt.Sprintf("after filters: %d candidates", len(filtered)))

	boosts := p.boostsFor(ctx, profile, query)
	em.emit(StagePersonalization, "personalization boosts resolved",
		map[string]any{"boosts": len(boosts)})

	results := p.scoreAll(filtered, profile, started, boosts, req.OnlyEligible)
	em.emit(StageEligibility, "candidates scored",
		map[string]any{"scored": len(results)})

	if ctx.Err() != nil {
		// Caller went away: discard the result, emit nothing further.
		return nil, ctx.Err()
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	if len(results) > topK {
		results = results[:topK]
	}

	latency := float64(p.now().Sub(started).Microseconds()) / 1000.0
	logs = append(logs, fmt.Sprintf("returning %d results in %.1fms", len(results), latency))

	p.cache.Put(key, results, latency, logs)
	p.logSearchInteraction(profile, query, results)

	em.emit(StageComplete, "search complete", map[string]any{"results": len(results)})
	return &Response{
		SearchID:  uuid.NewString(),
		Results:   results,
		Total:     len(results),
		LatencyMS: latency,
		Logs:      logs,
	}, nil
}

// Browse lists records without a query: every known record is a
// candidate and the catalog's original order is preserved. No ranking
// is computed; filters, scoring and truncation still apply.
func (p *Pipeline) Browse(ctx context.Context, req Request, sink ProgressSink) (*Response, error) {
	started := p.now()
	topK := req.TopK
	if topK == 0 {
		topK = p.topK
	}
	if verr := validation.TopK(topK); verr != nil {
		return nil, verr
	}
	profile := resolveProfile(req.Profile)

	em := newEmitter(sink, started)
	em.emit(StageStart, "browse started", map[string]any{"records": p.catalog.Len()})

	ids := make([]string, 0, p.catalog.Len())
	for _, rec := range p.catalog.All() {
		ids = append(ids, rec.ID)
	}
	filtered := p.hydrateAndFilter(ids, req.Filters)

	results := p.scoreAll(filtered, profile, started, nil, req.OnlyEligible)
	em.emit(StageEligibility, "candidates scored", map[string]any{"scored": len(results)})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if len(results) > topK {
		results = results[:topK]
	}

	latency := float64(p.now().Sub(started).Microseconds()) / 1000.0
	em.emit(StageComplete, "browse complete", map[string]any{"results": len(results)})
	return &Response{
		SearchID:  uuid.NewString(),
		Results:   results,
		Total:     len(results),
		LatencyMS: latency,
		Logs:      []string{fmt.Sprintf("browsing %d records", len(results))},
	}, nil
}

// retrieve runs the configured retrieval strategy and returns ranked
// candidate ids. Vector provider failure degrades to lexical-only with
// a warning, never an error.
func (p *Pipeline) retrieve(ctx context.Context, query string, topK int, em *emitter) ([]string, []string, error) {
	var logs []string

	if p.provider == nil {
		lexical := p.index.Search(query, p.retrievalLimit)
		logs = append(logs, fmt.Sprintf("lexical: %d matches", len(lexical)))
		em.emit(StageRetrieval, "lexical retrieval done",
			map[string]any{"lexical": len(lexical)})
		em.emit(StageFusion, "fusion skipped (lexical-only)",
			map[string]any{"candidates": len(lexical)})

		ids := make([]string, len(lexical))
		for i, c := range lexical {
			ids[i] = c.ID
		}
		return ids, logs, nil
	}

	var lexical, semantic []store.RankedCandidate
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lexical = p.index.Search(query, p.retrievalLimit)
		return nil
	})
	g.Go(func() error {
		results, err := p.provider.Search(gctx, query, p.retrievalLimit)
		if err != nil {
			slog.Warn("vector retrieval unavailable, degrading to lexical",
				slog.String("error", err.Error()))
			return nil
		}
		semantic = results
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if ctx.Err() != nil {
		return nil, nil, ctx.Err()
	}

	logs = append(logs,
		fmt.Sprintf("lexical: %d matches", len(lexical)),
		fmt.Sprintf("vector: %d matches", len(semantic)))
	em.emit(StageRetrieval, "hybrid retrieval done",
		map[string]any{"lexical": len(lexical), "vector": len(semantic)})

	fused := Fuse([][]store.RankedCandidate{lexical, semantic}, p.fusionK)
	if len(fused) > 2*topK {
		fused = fused[:2*topK]
	}
	logs = append(logs, fmt.Sprintf("fusion: %d merged candidates", len(fused)))
	em.emit(StageFusion, "rank fusion done", map[string]any{"fused": len(fused)})

	ids := make([]string, len(fused))
	for i, c := range fused {
		ids[i] = c.ID
	}
	return ids, logs, nil
}

// hydrateAndFilter resolves ids to records and applies category/state
// filters. Unknown ids are dropped; records without a restriction pass
// any filter on that attribute.
func (p *Pipeline) hydrateAndFilter(ids []string, filters Filters) []*store.Scholarship {
	out := make([]*store.Scholarship, 0, len(ids))
	for _, id := range ids {
		rec := p.catalog.Get(id)
		if rec == nil {
			continue
		}
		if !matchesFilter(rec.Categories, filters.Category, "All") {
			continue
		}
		if !matchesFilter(rec.States, filters.State, store.DefaultState) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchesFilter(values []string, want, wildcard string) bool {
	if want == "" || want == wildcard {
		return true
	}
	if len(values) == 0 {
		return true
	}
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

// scoreAll scores candidates concurrently on the worker pool, folds in
// personalization boosts and drops candidates per OnlyEligible. A
// panicking candidate is skipped, not fatal.
func (p *Pipeline) scoreAll(candidates []*store.Scholarship, profile store.Profile, now time.Time, boosts map[string]float64, onlyEligible bool) []Result {
	scored := make([]*Result, len(candidates))
	var wg sync.WaitGroup

	for i, rec := range candidates {
		i, rec := i, rec
		wg.Add(1)
		task := func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					slog.Warn("skipping unscorable candidate",
						slog.String("id", rec.ID), slog.Any("panic", r))
				}
			}()
			scored[i] = p.scoreCandidate(rec, profile, now)
		}
		if err := p.pool.Submit(task); err != nil {
			// Pool unavailable: score inline rather than dropping work.
			task()
		}
	}
	wg.Wait()

	results := make([]Result, 0, len(scored))
	for _, r := range scored {
		if r == nil {
			continue
		}
		if onlyEligible && r.EligibilityStatus == eligibility.StatusNotEligible {
			continue
		}
		if boost, ok := boosts[r.ID]; ok && boost > 0 {
			r.Boost = boost
			r.MatchScore += int(math.Round(boost * 100))
			if r.MatchScore > 100 {
				r.MatchScore = 100
			}
		}
		results = append(results, *r)
	}
	return results
}

func (p *Pipeline) scoreCandidate(rec *store.Scholarship, profile store.Profile, now time.Time) *Result {
	verdict := eligibility.Score(rec, profile, now)
	report := safety.Validate(rec, now)

	return &Result{
		Scholarship:       rec,
		MatchScore:        verdict.Score,
		EligibilityStatus: verdict.Status,
		MatchReasons:      verdict.Breakdown,
		RadarScores:       eligibility.Radar(verdict.Breakdown),
		MissingDocuments:  eligibility.MissingDocuments(rec, profile),
		SafetyTrustScore:  report.TrustScore,
		ScamIndicators:    report.ScamIndicators,
		DeadlineInfo:      report.DeadlineInfo,
		IsSafe:            report.IsSafe,
	}
}

// boostsFor queries the personalization collaborator. Absence or
// failure yields zero boosts.
func (p *Pipeline) boostsFor(ctx context.Context, profile store.Profile, query string) map[string]float64 {
	if p.recall == nil {
		return nil
	}
	return p.recall.BoostsFor(ctx, memory.UserID(profile), query)
}

// logSearchInteraction hands the top hit to the interaction queue so
// future searches can boost it. Fire-and-forget.
func (p *Pipeline) logSearchInteraction(profile store.Profile, query string, results []Result) {
	if p.interactions == nil || len(results) == 0 {
		return
	}
	top := results[0]
	p.interactions.Log(memory.Interaction{
		UserID:          memory.UserID(profile),
		ScholarshipID:   top.ID,
		ScholarshipName: top.Name,
		Type:            memory.InteractionSearch,
		Query:           query,
	})
}

func resolveProfile(p *store.Profile) store.Profile {
	if p == nil {
		return store.DefaultProfile()
	}
	return p.Normalize()
}
