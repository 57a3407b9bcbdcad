// Package vector provides the optional semantic retriever: a
// deterministic hash embedder over record text and an HNSW nearest
// neighbour index. Absence of a provider is a valid configuration; the
// pipeline falls back to lexical-only retrieval.
package vector

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vidyarthi-io/scholarseek/internal/store"
)

// Weights for vector generation. Whole tokens carry most of the signal;
// character trigrams keep near-miss spellings (e.g. "scholarship" vs
// "scholarships") close together.
const (
	tokenWeight = 0.7
	ngramWeight = 0.3
	ngramSize   = 3
)

// DefaultDimensions is the embedding width used when config leaves it unset.
const DefaultDimensions = 256

// DefaultQueryCacheSize bounds the LRU of query embeddings.
const DefaultQueryCacheSize = 1000

// Embedder produces deterministic hash-based embeddings. No model, no
// network: the same text always maps to the same vector, which keeps
// retrieval reproducible across runs. Query embeddings are memoized in
// an LRU since users repeat queries far more often than record text.
type Embedder struct {
	dims  int
	cache *lru.Cache[string, []float32]
}

// NewEmbedder creates an embedder with the given dimensions and query
// cache size. Non-positive arguments fall back to defaults.
func NewEmbedder(dims, cacheSize int) *Embedder {
	if dims <= 0 {
		dims = DefaultDimensions
	}
	if cacheSize <= 0 {
		cacheSize = DefaultQueryCacheSize
	}
	cache, _ := lru.New[string, []float32](cacheSize)
	return &Embedder{dims: dims, cache: cache}
}

// Embed returns the normalized embedding for text. Empty text yields the
// zero vector. Safe for concurrent use.
func (e *Embedder) Embed(text string) []float32 {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return make([]float32, e.dims)
	}

	if vec, ok := e.cache.Get(trimmed); ok {
		return vec
	}

	vec := e.generate(trimmed)
	normalizeInPlace(vec)
	e.cache.Add(trimmed, vec)
	return vec
}

// Dimensions returns the embedding width.
func (e *Embedder) Dimensions() int {
	return e.dims
}

func (e *Embedder) generate(text string) []float32 {
	vec := make([]float32, e.dims)

	for _, token := range store.Tokenize(text) {
		vec[hashToIndex(token, e.dims)] += tokenWeight
	}

	normalized := normalizeForNgrams(text)
	for _, ngram := range extractNgrams(normalized, ngramSize) {
		vec[hashToIndex(ngram, e.dims)] += ngramWeight
	}

	return vec
}

// normalizeForNgrams strips everything but letters and digits so trigram
// windows never straddle punctuation or whitespace.
func normalizeForNgrams(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// extractNgrams extracts n-character sliding windows.
func extractNgrams(text string, n int) []string {
	if len(text) < n {
		return nil
	}
	ngrams := make([]string, 0, len(text)-n+1)
	for i := 0; i <= len(text)-n; i++ {
		ngrams = append(ngrams, text[i:i+n])
	}
	return ngrams
}

// hashToIndex uses FNV-64 to map a string to a vector index.
func hashToIndex(s string, size int) int {
	h := fnv.New64()
	_, _ = h.Write([]byte(s))
	return int(h.Sum64() % uint64(size))
}

// normalizeInPlace scales the vector to unit length.
func normalizeInPlace(v []float32) {
	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}
	if sumSquares == 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(sumSquares))
	for i := range v {
		v[i] *= inv
	}
}
