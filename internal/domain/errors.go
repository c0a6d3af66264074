package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the retrieval core. Collection existence is always
// checked explicitly; no code path depends on catching opaque backend errors.
var (
	ErrCollectionNotFound = errors.New("collection not found")
	ErrNotIndexed         = errors.New("no indexed URLs found, add URLs first")
	ErrNoRelevantContent  = errors.New("no relevant information found in the indexed URLs")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
)

// ExtractionError means the byte stream could not be parsed as the declared
// type. Fatal to that ingestion call; never retried with another type.
type ExtractionError struct {
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// EmbeddingError means the embedding model call failed.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string { return fmt.Sprintf("embedding: %v", e.Err) }
func (e *EmbeddingError) Unwrap() error { return e.Err }

// GenerationError means the generative model call failed. Surfaced to the
// caller with no local retry.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return fmt.Sprintf("generation: %v", e.Err) }
func (e *GenerationError) Unwrap() error { return e.Err }

// ScrapeError is a per-URL failure: network, non-2xx status or unparseable
// markup. Batch URL addition reports these individually instead of aborting.
type ScrapeError struct {
	URL string
	Err error
}

func (e *ScrapeError) Error() string { return fmt.Sprintf("scrape %s: %v", e.URL, e.Err) }
func (e *ScrapeError) Unwrap() error { return e.Err }
