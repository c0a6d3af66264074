package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/avasant/docuchat/internal/domain"
	"github.com/avasant/docuchat/internal/rag/vectorstore"
)

// Store is a brute-force cosine similarity index kept entirely in memory.
// Useful for tests and single-node deployments without a Qdrant instance.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]point
}

type point struct {
	chunk  vectorstore.Chunk
	vector []float32
}

func New() *Store {
	return &Store{collections: make(map[string][]point)}
}

func (s *Store) CollectionExists(_ context.Context, collection string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.collections[collection]
	return ok, nil
}

func (s *Store) EnsureCollection(_ context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[collection]; !ok {
		s.collections[collection] = nil
	}
	return nil
}

func (s *Store) DeleteCollection(_ context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections, collection)
	return nil
}

func (s *Store) UpsertBatch(_ context.Context, collection string, chunks []vectorstore.Chunk, vectors [][]float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	points, ok := s.collections[collection]
	if !ok {
		return domain.ErrCollectionNotFound
	}

	for i, chunk := range chunks {
		replaced := false
		for j := range points {
			if points[j].chunk.ID == chunk.ID {
				points[j] = point{chunk: chunk, vector: vectors[i]}
				replaced = true
				break
			}
		}
		if !replaced {
			points = append(points, point{chunk: chunk, vector: vectors[i]})
		}
	}
	s.collections[collection] = points
	return nil
}

func (s *Store) Query(_ context.Context, collection string, vector []float32, limit int, filter map[string]string) ([]vectorstore.Scored, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	points, ok := s.collections[collection]
	if !ok {
		return nil, domain.ErrCollectionNotFound
	}

	var hits []vectorstore.Scored
	for _, p := range points {
		if !matches(p.chunk.Metadata, filter) {
			continue
		}
		hits = append(hits, vectorstore.Scored{
			Chunk: p.chunk,
			Score: cosineSimilarity(vector, p.vector),
		})
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (s *Store) PeekMetadata(_ context.Context, collection string) (map[string]string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	points, ok := s.collections[collection]
	if !ok {
		return nil, false, domain.ErrCollectionNotFound
	}
	if len(points) == 0 {
		return nil, false, nil
	}
	return points[0].chunk.Metadata, true, nil
}

func (s *Store) ScrollByFilter(_ context.Context, collection string, filter map[string]string, limit int) ([]vectorstore.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	points, ok := s.collections[collection]
	if !ok {
		return nil, domain.ErrCollectionNotFound
	}

	var chunks []vectorstore.Chunk
	for _, p := range points {
		if !matches(p.chunk.Metadata, filter) {
			continue
		}
		chunks = append(chunks, p.chunk)
		if len(chunks) == limit {
			break
		}
	}
	return chunks, nil
}

func (s *Store) DeleteByFilter(_ context.Context, collection string, filter map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	points, ok := s.collections[collection]
	if !ok {
		return domain.ErrCollectionNotFound
	}

	kept := points[:0]
	for _, p := range points {
		if !matches(p.chunk.Metadata, filter) {
			kept = append(kept, p)
		}
	}
	s.collections[collection] = kept
	return nil
}

func matches(metadata, filter map[string]string) bool {
	for k, v := range filter {
		if metadata[k] != v {
			return false
		}
	}
	return true
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
