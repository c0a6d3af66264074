package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/avasant/docuchat/internal/domain"
	"github.com/avasant/docuchat/internal/rag/vectorstore"
)

func seed(t *testing.T, s *Store, collection string) {
	t.Helper()
	ctx := context.Background()
	if err := s.EnsureCollection(ctx, collection); err != nil {
		t.Fatal(err)
	}
	chunks := []vectorstore.Chunk{
		{ID: "a", Text: "cats are mammals", Metadata: map[string]string{"url_hash": "h1"}},
		{ID: "b", Text: "dogs are loyal", Metadata: map[string]string{"url_hash": "h2"}},
		{ID: "c", Text: "rust is a language", Metadata: map[string]string{"url_hash": "h2"}},
	}
	vectors := [][]float32{
		{1, 0, 0},
		{0.9, 0.1, 0},
		{0, 0, 1},
	}
	if err := s.UpsertBatch(ctx, collection, chunks, vectors); err != nil {
		t.Fatal(err)
	}
}

func TestQuery_RanksByCosine(t *testing.T) {
	s := New()
	seed(t, s, "web_u1")

	hits, err := s.Query(context.Background(), "web_u1", []float32{1, 0, 0}, 2, nil)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].ID != "a" || hits[1].ID != "b" {
		t.Errorf("wrong ranking: %s, %s", hits[0].ID, hits[1].ID)
	}
	if hits[0].Score <= hits[1].Score {
		t.Errorf("scores not descending: %f, %f", hits[0].Score, hits[1].Score)
	}
}

func TestQuery_FilterRestrictsHits(t *testing.T) {
	s := New()
	seed(t, s, "web_u1")

	hits, err := s.Query(context.Background(), "web_u1", []float32{1, 0, 0}, 10, map[string]string{"url_hash": "h2"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	for _, h := range hits {
		if h.Metadata["url_hash"] != "h2" {
			t.Errorf("filter leaked hit %s", h.ID)
		}
	}
	if len(hits) != 2 {
		t.Errorf("expected 2 filtered hits, got %d", len(hits))
	}
}

func TestQuery_MissingCollection(t *testing.T) {
	s := New()
	_, err := s.Query(context.Background(), "nope", []float32{1}, 1, nil)
	if !errors.Is(err, domain.ErrCollectionNotFound) {
		t.Errorf("expected ErrCollectionNotFound, got %v", err)
	}
}

func TestUpsert_ReplacesById(t *testing.T) {
	s := New()
	seed(t, s, "doc_1")
	ctx := context.Background()

	err := s.UpsertBatch(ctx, "doc_1",
		[]vectorstore.Chunk{{ID: "a", Text: "updated", Metadata: map[string]string{"url_hash": "h9"}}},
		[][]float32{{0, 1, 0}})
	if err != nil {
		t.Fatal(err)
	}

	chunks, err := s.ScrollByFilter(ctx, "doc_1", nil, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 3 {
		t.Errorf("upsert should replace, not append: %d points", len(chunks))
	}
}

func TestDeleteByFilter(t *testing.T) {
	s := New()
	seed(t, s, "web_u1")
	ctx := context.Background()

	if err := s.DeleteByFilter(ctx, "web_u1", map[string]string{"url_hash": "h2"}); err != nil {
		t.Fatal(err)
	}
	chunks, err := s.ScrollByFilter(ctx, "web_u1", nil, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 || chunks[0].ID != "a" {
		t.Errorf("expected only chunk a to survive, got %+v", chunks)
	}
}

func TestPeekMetadata(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.EnsureCollection(ctx, "doc_9"); err != nil {
		t.Fatal(err)
	}
	_, found, err := s.PeekMetadata(ctx, "doc_9")
	if err != nil || found {
		t.Errorf("empty collection should peek nothing: found=%v err=%v", found, err)
	}

	seed(t, s, "doc_9")
	meta, found, err := s.PeekMetadata(ctx, "doc_9")
	if err != nil || !found {
		t.Fatalf("peek failed: found=%v err=%v", found, err)
	}
	if meta["url_hash"] == "" {
		t.Errorf("expected metadata, got %v", meta)
	}
}

func TestDeleteCollection(t *testing.T) {
	s := New()
	seed(t, s, "doc_2")
	ctx := context.Background()

	if err := s.DeleteCollection(ctx, "doc_2"); err != nil {
		t.Fatal(err)
	}
	exists, err := s.CollectionExists(ctx, "doc_2")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("collection should be gone")
	}
}
