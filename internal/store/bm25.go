package store

import (
	"math"
	"sort"
)

// BM25 tuning parameters. k1 controls term-frequency saturation, b the
// degree of document-length normalization.
const (
	DefaultK1 = 1.5
	DefaultB  = 0.75
)

// RankedCandidate is one retrieval hit: a record identifier and its
// relevance score. Produced by the lexical index, the vector provider and
// the fusion step alike.
type RankedCandidate struct {
	ID    string
	Score float64
}

// BM25Index is an in-memory inverted index with frequency statistics.
//
// Construction is a single-writer phase: call AddDocument for every record,
// then treat the index as read-only. Search is safe for concurrent use
// once building is done.
type BM25Index struct {
	k1 float64
	b  float64

	docOrder   []string                  // insertion order, for stable ties
	docLengths map[string]int            // tokens per document
	termFreqs  map[string]map[string]int // docID -> term -> count
	docFreqs   map[string]int            // term -> number of docs containing it
	totalLen   int
	n          int
}

// NewBM25Index creates an empty index with the default k1/b parameters.
func NewBM25Index() *BM25Index {
	return &BM25Index{
		k1:         DefaultK1,
		b:          DefaultB,
		docLengths: make(map[string]int),
		termFreqs:  make(map[string]map[string]int),
		docFreqs:   make(map[string]int),
	}
}

// AddDocument tokenizes text and folds it into the index statistics.
// Not safe for concurrent writers.
func (idx *BM25Index) AddDocument(id, text string) {
	tokens := Tokenize(text)

	if _, exists := idx.termFreqs[id]; !exists {
		idx.docOrder = append(idx.docOrder, id)
		idx.n++
	} else {
		// Re-adding a document replaces its previous statistics.
		idx.removeStats(id)
	}

	tf := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		tf[tok]++
	}
	for term := range tf {
		idx.docFreqs[term]++
	}

	idx.termFreqs[id] = tf
	idx.docLengths[id] = len(tokens)
	idx.totalLen += len(tokens)
}

func (idx *BM25Index) removeStats(id string) {
	for term := range idx.termFreqs[id] {
		if idx.docFreqs[term] > 1 {
			idx.docFreqs[term]--
		} else {
			delete(idx.docFreqs, term)
		}
	}
	idx.totalLen -= idx.docLengths[id]
}

// Search scores every document containing a query term and returns the top
// limit results by descending score. Documents with zero score are omitted;
// ties keep the original insertion order. An empty query or empty corpus
// yields an empty result, never an error.
func (idx *BM25Index) Search(query string, limit int) []RankedCandidate {
	if idx.n == 0 {
		return []RankedCandidate{}
	}

	avgLen := float64(idx.totalLen) / float64(idx.n)
	scores := make(map[string]float64)

	for _, term := range Tokenize(query) {
		df, ok := idx.docFreqs[term]
		if !ok {
			continue
		}

		idf := math.Log((float64(idx.n)-float64(df)+0.5)/(float64(df)+0.5) + 1)

		for docID, tf := range idx.termFreqs {
			count := tf[term]
			if count == 0 {
				continue
			}
			docLen := float64(idx.docLengths[docID])
			num := float64(count) * (idx.k1 + 1)
			den := float64(count) + idx.k1*(1-idx.b+idx.b*docLen/avgLen)
			scores[docID] += idf * num / den
		}
	}

	// Collect in insertion order so equal scores rank by discovery order.
	results := make([]RankedCandidate, 0, len(scores))
	for _, id := range idx.docOrder {
		if score, ok := scores[id]; ok && score > 0 {
			results = append(results, RankedCandidate{ID: id, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// DocCount returns the number of indexed documents.
func (idx *BM25Index) DocCount() int {
	return idx.n
}

// IndexStats summarizes the index for status reporting.
type IndexStats struct {
	DocumentCount int
	TermCount     int
	AvgDocLength  float64
}

// Stats returns current index statistics.
func (idx *BM25Index) Stats() IndexStats {
	avg := 0.0
	if idx.n > 0 {
		avg = float64(idx.totalLen) / float64(idx.n)
	}
	return IndexStats{
		DocumentCount: idx.n,
		TermCount:     len(idx.docFreqs),
		AvgDocLength:  avg,
	}
}
