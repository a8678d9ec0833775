package index

import (
	"fmt"
	"sort"
	"sync"
)

// Meta is the chunk metadata stored alongside each vector, in the same
// positional order.
type Meta struct {
	DocumentID string `json:"document_id"`
	ChunkIndex int    `json:"chunk_index"`
	Text       string `json:"text"`
}

// SearchResult is derived at query time and never persisted.
type SearchResult struct {
	Text       string
	DocumentID string
	ChunkIndex int
	Distance   float64
	Score      float64
}

// Index is an append-only flat vector index searched by exhaustive scan
// with squared Euclidean distance. Entries have no delete or update
// primitive. The dimension is fixed the first time the index sees data,
// either from the first Add batch or from an explicit Load.
//
// Reads may run concurrently; Add and Save take the write lock so a search
// never observes a partially appended batch.
type Index struct {
	mu      sync.RWMutex
	path    string
	dim     int
	vectors [][]float32
	meta    []Meta
}

// New creates an uninitialized index whose artifacts live at path
// (path + ".vec" and path + ".meta").
func New(path string) *Index {
	return &Index{path: path}
}

// Add appends a batch of vectors with their metadata, preserving relative
// order. The first batch fixes the index dimension when no Load fixed one
// earlier.
func (ix *Index) Add(vectors [][]float32, meta []Meta) error {
	if len(vectors) != len(meta) {
		return fmt.Errorf("index: vectors and metadata length mismatch: %d != %d", len(vectors), len(meta))
	}
	if len(vectors) == 0 {
		return nil
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.dim == 0 {
		ix.dim = len(vectors[0])
	}
	for i, v := range vectors {
		if len(v) != ix.dim {
			return fmt.Errorf("index: vector %d has dimension %d, index is fixed at %d", i, len(v), ix.dim)
		}
	}

	ix.vectors = append(ix.vectors, vectors...)
	ix.meta = append(ix.meta, meta...)
	return nil
}

// Search returns up to k entries nearest to query, ordered by ascending
// distance. An empty or uninitialized index yields an empty result set,
// not an error — callers treat it as "no data".
func (ix *Index) Search(query []float32, k int) []SearchResult {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if k <= 0 || len(ix.vectors) == 0 || len(query) != ix.dim {
		return nil
	}

	type scored struct {
		pos  int
		dist float64
	}
	all := make([]scored, len(ix.vectors))
	for i, v := range ix.vectors {
		all[i] = scored{pos: i, dist: squaredL2(query, v)}
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].dist < all[j].dist })

	if k > len(all) {
		k = len(all)
	}

	results := make([]SearchResult, 0, k)
	for _, s := range all[:k] {
		m := ix.meta[s.pos]
		results = append(results, SearchResult{
			Text:       m.Text,
			DocumentID: m.DocumentID,
			ChunkIndex: m.ChunkIndex,
			Distance:   s.dist,
			Score:      1 / (1 + s.dist),
		})
	}
	return results
}

// Len returns the number of stored entries.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.vectors)
}

// Dimension returns the fixed vector dimension, or 0 if uninitialized.
func (ix *Index) Dimension() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.dim
}

// DocumentCount returns the number of distinct documents indexed.
func (ix *Index) DocumentCount() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, m := range ix.meta {
		seen[m.DocumentID] = struct{}{}
	}
	return len(seen)
}

func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
