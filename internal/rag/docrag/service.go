package docrag

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/avasant/docuchat/internal/adapter/utils"
	"github.com/avasant/docuchat/internal/config"
	"github.com/avasant/docuchat/internal/domain"
	"github.com/avasant/docuchat/internal/metrics"
	"github.com/avasant/docuchat/internal/rag/chunker"
	"github.com/avasant/docuchat/internal/rag/embedding"
	"github.com/avasant/docuchat/internal/rag/extract"
	"github.com/avasant/docuchat/internal/rag/llm"
	"github.com/avasant/docuchat/internal/rag/vectorstore"
	"github.com/avasant/docuchat/pkg/logger_i"
)

// Fixed answers for retrieval outcomes that never reach the model.
const (
	AnswerDocumentMissing = "Document not found in the database"
	AnswerNoRelevantInfo  = "No relevant information found in the document."
)

// ProcessResult reports what one ingestion call did.
type ProcessResult struct {
	Skipped     bool
	ChunksCount int
	FileHash    string
}

// Service owns the per-document collections (doc_<id>): building them from
// uploaded files and answering questions against them.
type Service interface {
	Process(ctx context.Context, doc domain.Document) (ProcessResult, error)
	Answer(ctx context.Context, documentID string, question string) (string, error)
	Cleanup(ctx context.Context, documentID string) error
}

type service struct {
	vectorDB    vectorstore.Store
	llmProvider llm.Provider
	embedder    embedding.Embedder
	logger      *logger_i.Logger
}

func NewService(vector vectorstore.Store, llm llm.Provider, em embedding.Embedder) Service {
	return &service{
		vectorDB:    vector,
		llmProvider: llm,
		embedder:    em,
		logger:      logger_i.NewLogger("DocRAG Service :"),
	}
}

func CollectionName(documentID string) string {
	return config.DocCollectionPrefix + documentID
}

// Process indexes the file behind doc into its collection. If the collection
// already holds chunks for the same file hash the call is a no-op; a changed
// hash drops the collection and rebuilds it from scratch. A failed rebuild
// never leaves a partial collection behind.
func (s *service) Process(ctx context.Context, doc domain.Document) (ProcessResult, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "documentId", doc.ID)
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_ingestion", time.Since(start)) }()

	raw, err := os.ReadFile(doc.FilePath)
	if err != nil {
		return ProcessResult{}, fmt.Errorf("reading upload: %w", err)
	}
	sum := sha256.Sum256(raw)
	fileHash := hex.EncodeToString(sum[:])

	collection := CollectionName(doc.ID)
	exists, err := s.vectorDB.CollectionExists(ctx, collection)
	if err != nil {
		return ProcessResult{}, err
	}
	if exists {
		meta, found, err := s.vectorDB.PeekMetadata(ctx, collection)
		if err == nil && found && meta["file_hash"] == fileHash {
			log.Info("document unchanged, skipping ingestion")
			return ProcessResult{Skipped: true, FileHash: fileHash}, nil
		}
		log.Info("document changed, rebuilding collection")
		if err := s.vectorDB.DeleteCollection(ctx, collection); err != nil {
			return ProcessResult{}, err
		}
	}

	text, err := extract.Text(doc.FilePath)
	if err != nil {
		return ProcessResult{}, err
	}
	pieces := chunker.Split(text, chunker.Config{ChunkSize: config.ChunkSize, ChunkOverlap: config.ChunkOverlap})
	if len(pieces) == 0 {
		return ProcessResult{}, &domain.ExtractionError{Format: doc.FileType, Err: errors.New("no text content")}
	}

	chunks := make([]vectorstore.Chunk, len(pieces))
	for i, p := range pieces {
		chunks[i] = vectorstore.Chunk{
			ID:   utils.GetNewUUID(),
			Text: p,
			Metadata: map[string]string{
				"file_hash":   fileHash,
				"document_id": doc.ID,
				"file_name":   doc.FileName,
				"chunk_index": strconv.Itoa(i),
			},
		}
	}

	if err := s.vectorDB.EnsureCollection(ctx, collection); err != nil {
		return ProcessResult{}, err
	}
	if err := s.ingestBatches(ctx, collection, chunks); err != nil {
		// drop the partial collection so a later retry starts clean
		if delErr := s.vectorDB.DeleteCollection(ctx, collection); delErr != nil {
			log.Error("failed to clean up partial collection", "error", delErr)
		}
		return ProcessResult{}, err
	}

	metrics.IncrementDocumentsIngested()
	metrics.AddChunksUpserted(len(chunks))
	log.Info("document indexed", "chunks", len(chunks))
	return ProcessResult{ChunksCount: len(chunks), FileHash: fileHash}, nil
}

func (s *service) ingestBatches(ctx context.Context, collection string, chunks []vectorstore.Chunk) error {
	batchSize := config.IngestBatchSize

	for i := 0; i < len(chunks); i += batchSize {
		end := i + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		currentBatch := chunks[i:end]

		texts := make([]string, len(currentBatch))
		for j, c := range currentBatch {
			texts[j] = c.Text
		}

		vectors, err := s.embedder.BatchEmbedding(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding batch failed: %w", err)
		}
		if err := s.vectorDB.UpsertBatch(ctx, collection, currentBatch, vectors); err != nil {
			return fmt.Errorf("upserting batch failed: %w", err)
		}
	}
	return nil
}

// Answer retrieves the top chunks for the question and lets the model answer
// from them. Document chats are stateless: no history is threaded in.
func (s *service) Answer(ctx context.Context, documentID string, question string) (string, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "documentId", documentID)
	start := time.Now()
	defer func() { metrics.CaptureRequestMetrics("doc_chat", time.Since(start)) }()

	collection := CollectionName(documentID)
	exists, err := s.vectorDB.CollectionExists(ctx, collection)
	if err != nil {
		return "", err
	}
	if !exists {
		return AnswerDocumentMissing, nil
	}

	embStart := time.Now()
	queryVector, err := s.embedder.GetEmbedding(ctx, question)
	metrics.CaptureExecutionMetrics("embedding", time.Since(embStart))
	if err != nil {
		return "", err
	}

	searchStart := time.Now()
	hits, err := s.vectorDB.Query(ctx, collection, queryVector, config.DocumentTopK, nil)
	metrics.CaptureExecutionMetrics("vector_search", time.Since(searchStart))
	if err != nil {
		return "", err
	}

	var matches []string
	for _, h := range hits {
		if strings.TrimSpace(h.Text) != "" {
			matches = append(matches, h.Text)
		}
	}
	if len(matches) == 0 {
		log.Debug("no usable matches for question")
		return AnswerNoRelevantInfo, nil
	}

	llmStart := time.Now()
	answer, err := s.llmProvider.Generate(ctx, question, matches, nil)
	metrics.CaptureExecutionMetrics("llm_generation", time.Since(llmStart))
	if err != nil {
		return "", err
	}
	return answer, nil
}

// Cleanup removes the document's collection, if any.
func (s *service) Cleanup(ctx context.Context, documentID string) error {
	collection := CollectionName(documentID)
	exists, err := s.vectorDB.CollectionExists(ctx, collection)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	return s.vectorDB.DeleteCollection(ctx, collection)
}
