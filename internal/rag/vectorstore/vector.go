package vectorstore

import "context"

// Chunk is one stored text fragment with its payload metadata.
type Chunk struct {
	ID       string
	Text     string
	Metadata map[string]string
}

// Scored is a retrieval hit with its cosine similarity score.
type Scored struct {
	Chunk
	Score float32
}

// Store is the vector collection backend. Collections are named per owner
// (doc_<documentId>, web_<userId>); every method takes the collection name so
// tenants never share an index.
type Store interface {
	CollectionExists(ctx context.Context, collection string) (bool, error)
	EnsureCollection(ctx context.Context, collection string) error
	DeleteCollection(ctx context.Context, collection string) error

	UpsertBatch(ctx context.Context, collection string, chunks []Chunk, vectors [][]float32) error
	Query(ctx context.Context, collection string, vector []float32, limit int, filter map[string]string) ([]Scored, error)

	// PeekMetadata returns the payload metadata of an arbitrary stored point,
	// used for cheap change detection before a rebuild.
	PeekMetadata(ctx context.Context, collection string) (map[string]string, bool, error)
	ScrollByFilter(ctx context.Context, collection string, filter map[string]string, limit int) ([]Chunk, error)
	DeleteByFilter(ctx context.Context, collection string, filter map[string]string) error
}
