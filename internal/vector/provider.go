package vector

import (
	"context"
	"fmt"

	"github.com/coder/hnsw"

	"github.com/vidyarthi-io/scholarseek/internal/store"
)

// Provider is the semantic retrieval collaborator. A nil Provider is a
// valid configuration meaning retrieval is lexical-only.
type Provider interface {
	// Search returns up to limit candidates ranked by similarity.
	Search(ctx context.Context, query string, limit int) ([]store.RankedCandidate, error)
}

// HNSWProvider implements Provider with a coder/hnsw graph over record
// search text. The index is built wholesale at construction and is
// read-only afterwards, so Search needs no locking.
type HNSWProvider struct {
	graph    *hnsw.Graph[uint64]
	keyMap   map[uint64]string
	embedder *Embedder
}

// Config tunes the HNSW provider.
type Config struct {
	Dimensions     int
	QueryCacheSize int
}

// NewHNSWProvider builds the vector index over every record in the
// catalog. Records embed the same search text the lexical index uses.
func NewHNSWProvider(catalog *store.Catalog, cfg Config) (*HNSWProvider, error) {
	embedder := NewEmbedder(cfg.Dimensions, cfg.QueryCacheSize)

	graph := hnsw.NewGraph[uint64]()
	graph.Distance = hnsw.CosineDistance
	graph.M = 16
	graph.EfSearch = 20
	graph.Ml = 0.25

	p := &HNSWProvider{
		graph:    graph,
		keyMap:   make(map[uint64]string, catalog.Len()),
		embedder: embedder,
	}

	var key uint64
	for _, rec := range catalog.All() {
		vec := embedder.Embed(rec.SearchText())
		graph.Add(hnsw.MakeNode(key, vec))
		p.keyMap[key] = rec.ID
		key++
	}

	return p, nil
}

// Search embeds the query and returns the nearest records with cosine
// similarity scores in [0,1]. An empty graph yields an empty result.
func (p *HNSWProvider) Search(ctx context.Context, query string, limit int) ([]store.RankedCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("vector search canceled: %w", err)
	}
	if p.graph.Len() == 0 || limit <= 0 {
		return []store.RankedCandidate{}, nil
	}

	queryVec := p.embedder.Embed(query)
	nodes := p.graph.Search(queryVec, limit)

	results := make([]store.RankedCandidate, 0, len(nodes))
	for _, node := range nodes {
		id, ok := p.keyMap[node.Key]
		if !ok {
			continue
		}
		distance := p.graph.Distance(queryVec, node.Value)
		// Cosine distance ranges 0 (identical) to 2 (opposite).
		results = append(results, store.RankedCandidate{
			ID:    id,
			Score: 1.0 - float64(distance)/2.0,
		})
	}
	return results, nil
}

// Count returns the number of indexed records.
func (p *HNSWProvider) Count() int {
	return len(p.keyMap)
}
