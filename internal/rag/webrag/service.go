package webrag

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/avasant/docuchat/internal/adapter/utils"
	"github.com/avasant/docuchat/internal/config"
	"github.com/avasant/docuchat/internal/domain"
	"github.com/avasant/docuchat/internal/metrics"
	"github.com/avasant/docuchat/internal/rag/chunker"
	"github.com/avasant/docuchat/internal/rag/embedding"
	"github.com/avasant/docuchat/internal/rag/llm"
	"github.com/avasant/docuchat/internal/rag/scrape"
	"github.com/avasant/docuchat/internal/rag/vectorstore"
	"github.com/avasant/docuchat/pkg/logger_i"
)

// Messages carried by the retrieval failures web chat raises. Unlike
// document chat, an empty retrieval here is an error, not an answer.
const (
	MsgNoIndexedURLs  = "No indexed URLs found. Please add URLs first."
	MsgNoRelevantInfo = "No relevant information found in the indexed URLs."
)

const scrollPageSize = 1000

// Fetcher downloads and cleans one page.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*scrape.Page, error)
}

// AddResult reports the outcome for a single URL in an add call.
type AddResult struct {
	URL         string `json:"url"`
	Success     bool   `json:"success"`
	IsNew       bool   `json:"is_new"`
	ChunksCount int    `json:"chunks_count"`
	Error       string `json:"error,omitempty"`
}

// IndexedURL describes one URL currently present in a user's web collection.
type IndexedURL struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	ChunksCount int    `json:"chunks_count"`
}

// Answer is a grounded response with the URLs its chunks came from.
type Answer struct {
	Text    string   `json:"answer"`
	Sources []string `json:"sources"`
}

// Source is one URL a question's retrieved chunks came from.
type Source struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Service owns the per-user web collections (web_<userId>): scraping URLs
// into them and answering questions with conversation history.
type Service interface {
	AddURL(ctx context.Context, userID string, rawURL string) AddResult
	AddURLs(ctx context.Context, userID string, rawURLs []string) []AddResult
	IndexedURLs(ctx context.Context, userID string) ([]IndexedURL, error)
	RemoveURL(ctx context.Context, userID string, rawURL string) error
	ClearAll(ctx context.Context, userID string) error
	Chat(ctx context.Context, userID string, question string, history []domain.ChatTurn) (Answer, error)
	Sources(ctx context.Context, userID string, question string) ([]Source, error)
}

type service struct {
	vectorDB    vectorstore.Store
	llmProvider llm.Provider
	embedder    embedding.Embedder
	fetcher     Fetcher
	logger      *logger_i.Logger
}

func NewService(vector vectorstore.Store, llm llm.Provider, em embedding.Embedder, fetcher Fetcher) Service {
	return &service{
		vectorDB:    vector,
		llmProvider: llm,
		embedder:    em,
		fetcher:     fetcher,
		logger:      logger_i.NewLogger("WebRAG Service :"),
	}
}

func CollectionName(userID string) string {
	return config.WebCollectionPrefix + userID
}

// AddURL scrapes one URL into the user's collection. A URL whose hash is
// already present is reported as success with IsNew false and not re-scraped.
func (s *service) AddURL(ctx context.Context, userID string, rawURL string) AddResult {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "userId", userID)
	collection := CollectionName(userID)

	target := scrape.NormalizeURL(rawURL)
	if target == "" {
		return AddResult{URL: rawURL, Error: "empty url"}
	}
	urlHash := scrape.URLHash(target)

	if err := s.vectorDB.EnsureCollection(ctx, collection); err != nil {
		return AddResult{URL: target, Error: err.Error()}
	}

	existing, err := s.vectorDB.ScrollByFilter(ctx, collection, map[string]string{"url_hash": urlHash}, 1)
	if err != nil {
		return AddResult{URL: target, Error: err.Error()}
	}
	if len(existing) > 0 {
		log.Debug("url already indexed", "url", target)
		return AddResult{URL: target, Success: true, IsNew: false}
	}

	page, err := s.fetcher.Fetch(ctx, target)
	if err != nil {
		log.Error("scrape failed", "url", target, "error", err)
		return AddResult{URL: target, Error: err.Error()}
	}

	pieces := chunker.Split(page.Text, chunker.Config{ChunkSize: config.ChunkSize, ChunkOverlap: config.ChunkOverlap})
	if len(pieces) == 0 {
		return AddResult{URL: target, Error: "No content could be extracted from the URL"}
	}

	chunks := make([]vectorstore.Chunk, len(pieces))
	for i, p := range pieces {
		chunks[i] = vectorstore.Chunk{
			ID:   utils.GetNewUUID(),
			Text: p,
			Metadata: map[string]string{
				"url":         target,
				"url_hash":    urlHash,
				"title":       page.Title,
				"chunk_index": strconv.Itoa(i),
			},
		}
	}

	if err := s.ingestBatches(ctx, collection, chunks); err != nil {
		log.Error("indexing failed", "url", target, "error", err)
		// remove whatever slice of this url made it in
		if delErr := s.vectorDB.DeleteByFilter(ctx, collection, map[string]string{"url_hash": urlHash}); delErr != nil {
			log.Error("failed to clean up partial url", "error", delErr)
		}
		return AddResult{URL: target, Error: err.Error()}
	}

	metrics.IncrementUrlsIndexed()
	metrics.AddChunksUpserted(len(chunks))
	log.Info("url indexed", "url", target, "chunks", len(chunks))
	return AddResult{URL: target, Success: true, IsNew: true, ChunksCount: len(chunks)}
}

// AddURLs processes each URL independently; one bad URL never aborts the rest.
func (s *service) AddURLs(ctx context.Context, userID string, rawURLs []string) []AddResult {
	results := make([]AddResult, 0, len(rawURLs))
	for _, u := range rawURLs {
		results = append(results, s.AddURL(ctx, userID, u))
	}
	return results
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

// IndexedURLs lists the distinct URLs in the user's collection with their
// chunk counts.
func (s *service) IndexedURLs(ctx context.Context, userID string) ([]IndexedURL, error) {
	collection := CollectionName(userID)
	exists, err := s.vectorDB.CollectionExists(ctx, collection)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []IndexedURL{}, nil
	}

	chunks, err := s.vectorDB.ScrollByFilter(ctx, collection, nil, scrollPageSize)
	if err != nil {
		return nil, err
	}

	byHash := make(map[string]*IndexedURL)
	for _, c := range chunks {
		hash := c.Metadata["url_hash"]
		if entry, ok := byHash[hash]; ok {
			entry.ChunksCount++
			continue
		}
		byHash[hash] = &IndexedURL{
			URL:         c.Metadata["url"],
			Title:       c.Metadata["title"],
			ChunksCount: 1,
		}
	}

	urls := make([]IndexedURL, 0, len(byHash))
	for _, entry := range byHash {
		urls = append(urls, *entry)
	}
	sort.Slice(urls, func(i, j int) bool { return urls[i].URL < urls[j].URL })
	return urls, nil
}

// RemoveURL deletes every chunk of one URL from the user's collection.
func (s *service) RemoveURL(ctx context.Context, userID string, rawURL string) error {
	collection := CollectionName(userID)
	exists, err := s.vectorDB.CollectionExists(ctx, collection)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotIndexed
	}

	urlHash := scrape.URLHash(scrape.NormalizeURL(rawURL))
	existing, err := s.vectorDB.ScrollByFilter(ctx, collection, map[string]string{"url_hash": urlHash}, 1)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return domain.ErrNotIndexed
	}
	return s.vectorDB.DeleteByFilter(ctx, collection, map[string]string{"url_hash": urlHash})
}

// ClearAll drops the user's whole web collection.
func (s *service) ClearAll(ctx context.Context, userID string) error {
	collection := CollectionName(userID)
	exists, err := s.vectorDB.CollectionExists(ctx, collection)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	return s.vectorDB.DeleteCollection(ctx, collection)
}

// Chat answers a question against the user's indexed URLs, threading in the
// last turns of conversation history. It fails with domain.ErrNotIndexed when
// the user has no collection and domain.ErrNoRelevantContent when retrieval
// comes back empty; the model is never called in either case.
func (s *service) Chat(ctx context.Context, userID string, question string, history []domain.ChatTurn) (Answer, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "userId", userID)
	start := time.Now()
	defer func() { metrics.CaptureRequestMetrics("web_chat", time.Since(start)) }()

	collection := CollectionName(userID)
	exists, err := s.vectorDB.CollectionExists(ctx, collection)
	if err != nil {
		return Answer{}, err
	}
	if !exists {
		return Answer{}, domain.ErrNotIndexed
	}

	embStart := time.Now()
	queryVector, err := s.embedder.GetEmbedding(ctx, question)
	metrics.CaptureExecutionMetrics("embedding", time.Since(embStart))
	if err != nil {
		return Answer{}, err
	}

	searchStart := time.Now()
	hits, err := s.vectorDB.Query(ctx, collection, queryVector, config.WebTopK, nil)
	metrics.CaptureExecutionMetrics("vector_search", time.Since(searchStart))
	if err != nil {
		return Answer{}, err
	}

	var matches []string
	var sources []string
	seen := make(map[string]bool)
	for _, h := range hits {
		if strings.TrimSpace(h.Text) == "" {
			continue
		}
		matches = append(matches, h.Text)
		if url := h.Metadata["url"]; url != "" && !seen[url] {
			seen[url] = true
			sources = append(sources, url)
		}
	}
	if len(matches) == 0 {
		log.Debug("no usable matches for question")
		return Answer{}, domain.ErrNoRelevantContent
	}

	llmStart := time.Now()
	answer, err := s.llmProvider.Generate(ctx, question, matches, FormatHistory(history))
	metrics.CaptureExecutionMetrics("llm_generation", time.Since(llmStart))
	if err != nil {
		return Answer{}, err
	}
	return Answer{Text: answer, Sources: sources}, nil
}

// Sources previews which indexed URLs a question would be answered from,
// without calling the model. Missing collection or no matches yield an empty
// list, not an error.
func (s *service) Sources(ctx context.Context, userID string, question string) ([]Source, error) {
	collection := CollectionName(userID)
	exists, err := s.vectorDB.CollectionExists(ctx, collection)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []Source{}, nil
	}

	queryVector, err := s.embedder.GetEmbedding(ctx, question)
	if err != nil {
		return nil, err
	}
	hits, err := s.vectorDB.Query(ctx, collection, queryVector, config.WebTopK, nil)
	if err != nil {
		return nil, err
	}

	sources := make([]Source, 0, len(hits))
	seen := make(map[string]bool)
	for _, h := range hits {
		url := h.Metadata["url"]
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true
		sources = append(sources, Source{URL: url, Title: h.Metadata["title"]})
	}
	return sources, nil
}

// FormatHistory renders the last turns oldest-first in the form the model
// prompt expects.
func FormatHistory(history []domain.ChatTurn) []string {
	if len(history) > config.HistoryDepth {
		history = history[len(history)-config.HistoryDepth:]
	}
	lines := make([]string, 0, len(history)*2)
	for _, turn := range history {
		lines = append(lines, "User: "+turn.Question, "Assistant: "+turn.Answer)
	}
	return lines
}
