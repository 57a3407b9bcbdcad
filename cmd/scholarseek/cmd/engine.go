package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/vidyarthi-io/scholarseek/internal/config"
	"github.com/vidyarthi-io/scholarseek/internal/memory"
	"github.com/vidyarthi-io/scholarseek/internal/search"
	"github.com/vidyarthi-io/scholarseek/internal/store"
	"github.com/vidyarthi-io/scholarseek/internal/vector"
)

// engine bundles everything a command needs to run searches.
type engine struct {
	cfg      *config.Config
	catalog  *store.Catalog
	index    *store.BM25Index
	pipeline *search.Pipeline

	memStore *memory.Store
	asyncLog *memory.AsyncLogger
}

// newEngine loads the dataset and assembles the pipeline with whatever
// collaborators the config enables. Vector and memory failures degrade
// with a warning instead of aborting: lexical-only search still works.
func newEngine(cfgPath string) (*engine, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	catalog, err := store.LoadCatalog(cfg.Dataset.Path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	index := catalog.BuildIndex()

	e := &engine{cfg: cfg, catalog: catalog, index: index}

	pipelineCfg := search.Config{
		TopK:            cfg.Search.TopK,
		RetrievalLimit:  cfg.Search.RetrievalLimit,
		FusionK:         cfg.Search.FusionK,
		CacheTTL:        secondsToDuration(cfg.Search.CacheTTLSeconds),
		CacheMaxEntries: cfg.Search.CacheMaxEntries,
		ScoringWorkers:  cfg.Search.ScoringWorkers,
	}

	if cfg.Vector.Enabled {
		provider, err := vector.NewHNSWProvider(catalog, vector.Config{
			Dimensions:     cfg.Vector.Dimensions,
			QueryCacheSize: cfg.Vector.QueryCacheSize,
		})
		if err != nil {
			slog.Warn("vector index unavailable, running lexical-only",
				slog.String("error", err.Error()))
		} else {
			pipelineCfg.Provider = provider
		}
	}

	if cfg.Memory.Enabled {
		memStore, err := memory.Open(cfg.Memory.DBPath)
		if err != nil {
			slog.Warn("interaction memory unavailable, personalization off",
				slog.String("error", err.Error()))
		} else {
			e.memStore = memStore
			e.asyncLog = memory.NewAsyncLogger(memStore, 256)
			pipelineCfg.Recall = memStore
			pipelineCfg.Interactions = e.asyncLog
		}
	}

	pipeline, err := search.New(catalog, index, pipelineCfg)
	if err != nil {
		e.close()
		return nil, err
	}
	e.pipeline = pipeline
	return e, nil
}

func (e *engine) close() {
	if e.asyncLog != nil {
		e.asyncLog.Close()
	}
	if e.memStore != nil {
		_ = e.memStore.Close()
	}
	if e.pipeline != nil {
		e.pipeline.Close()
	}
}

func secondsToDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}
