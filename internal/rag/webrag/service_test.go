package webrag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/avasant/docuchat/internal/domain"
	"github.com/avasant/docuchat/internal/rag/scrape"
	"github.com/avasant/docuchat/internal/rag/vectorstore/memory"
)

// --- Mocks ---

type mockEmbedder struct {
	getFunc   func(ctx context.Context, query string) ([]float32, error)
	batchFunc func(ctx context.Context, chunks []string) ([][]float32, error)
}

func (m *mockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, query)
	}
	return []float32{1, 0, 0}, nil
}

func (m *mockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	if m.batchFunc != nil {
		return m.batchFunc(ctx, chunks)
	}
	vectors := make([][]float32, len(chunks))
	for i := range vectors {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

type mockLLM struct {
	generateFunc func(ctx context.Context, query string, matches []string, history []string) (string, error)
	calls        int
}

func (m *mockLLM) Generate(ctx context.Context, query string, matches []string, history []string) (string, error) {
	m.calls++
	if m.generateFunc != nil {
		return m.generateFunc(ctx, query, matches, history)
	}
	return "generated answer", nil
}

type mockFetcher struct {
	fetchFunc func(ctx context.Context, rawURL string) (*scrape.Page, error)
	calls     int
}

func (m *mockFetcher) Fetch(ctx context.Context, rawURL string) (*scrape.Page, error) {
	m.calls++
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, rawURL)
	}
	return &scrape.Page{
		URL:   rawURL,
		Title: "Example Page",
		Text:  "Example page content about widgets and how to install them.",
	}, nil
}

func newTestService(fetcher Fetcher) (Service, *memory.Store) {
	store := memory.New()
	return NewService(store, &mockLLM{}, &mockEmbedder{}, fetcher), store
}

// --- Tests ---

func TestAddURL_NewThenDuplicate(t *testing.T) {
	fetcher := &mockFetcher{}
	svc, _ := newTestService(fetcher)
	ctx := context.Background()

	first := svc.AddURL(ctx, "u1", "example.com/docs")
	if !first.Success || !first.IsNew {
		t.Fatalf("first add should succeed as new: %+v", first)
	}
	if first.URL != "https://example.com/docs" {
		t.Errorf("url not normalized: %q", first.URL)
	}
	if first.ChunksCount == 0 {
		t.Error("expected indexed chunks")
	}

	second := svc.AddURL(ctx, "u1", "https://example.com/docs")
	if !second.Success || second.IsNew {
		t.Errorf("duplicate add should succeed without re-indexing: %+v", second)
	}
	if fetcher.calls != 1 {
		t.Errorf("duplicate must not be re-fetched, got %d fetches", fetcher.calls)
	}
}

func TestAddURLs_PartialFailure(t *testing.T) {
	fetcher := &mockFetcher{
		fetchFunc: func(ctx context.Context, rawURL string) (*scrape.Page, error) {
			if strings.Contains(rawURL, "bad") {
				return nil, &domain.ScrapeError{URL: rawURL, Err: errors.New("unexpected status 500")}
			}
			return &scrape.Page{URL: rawURL, Title: "ok", Text: "working page content"}, nil
		},
	}
	svc, _ := newTestService(fetcher)

	results := svc.AddURLs(context.Background(), "u1", []string{"good.example.com", "bad.example.com"})
	if len(results) != 2 {
		t.Fatalf("expected one result per url, got %d", len(results))
	}
	if !results[0].Success {
		t.Errorf("good url should succeed: %+v", results[0])
	}
	if results[1].Success || results[1].Error == "" {
		t.Errorf("bad url should carry its error: %+v", results[1])
	}
}

func TestAddURL_EmptyPage(t *testing.T) {
	fetcher := &mockFetcher{
		fetchFunc: func(ctx context.Context, rawURL string) (*scrape.Page, error) {
			return &scrape.Page{URL: rawURL, Title: "blank", Text: "   "}, nil
		},
	}
	svc, _ := newTestService(fetcher)

	res := svc.AddURL(context.Background(), "u1", "https://example.com/empty")
	if res.Success {
		t.Fatalf("empty page should fail: %+v", res)
	}
	if res.Error != "No content could be extracted from the URL" {
		t.Errorf("error = %q", res.Error)
	}
}

func TestAddURL_CleansUpOnEmbedFailure(t *testing.T) {
	store := memory.New()
	em := &mockEmbedder{
		batchFunc: func(ctx context.Context, chunks []string) ([][]float32, error) {
			return nil, errors.New("quota exceeded")
		},
	}
	svc := NewService(store, &mockLLM{}, em, &mockFetcher{})

	res := svc.AddURL(context.Background(), "u1", "example.com")
	if res.Success {
		t.Fatal("expected failure")
	}
	chunks, err := store.ScrollByFilter(context.Background(), "web_u1", nil, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 0 {
		t.Errorf("failed url must leave no chunks, found %d", len(chunks))
	}
}

func TestIndexedURLs_GroupsByURL(t *testing.T) {
	svc, _ := newTestService(&mockFetcher{})
	ctx := context.Background()

	svc.AddURL(ctx, "u1", "https://a.example.com")
	svc.AddURL(ctx, "u1", "https://b.example.com")

	urls, err := svc.IndexedURLs(ctx, "u1")
	if err != nil {
		t.Fatalf("IndexedURLs failed: %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("expected 2 urls, got %d: %+v", len(urls), urls)
	}
	for _, u := range urls {
		if u.ChunksCount == 0 {
			t.Errorf("url %s has no chunk count", u.URL)
		}
		if u.Title == "" {
			t.Errorf("url %s lost its title", u.URL)
		}
	}
}

func TestIndexedURLs_EmptyForUnknownUser(t *testing.T) {
	svc, _ := newTestService(&mockFetcher{})
	urls, err := svc.IndexedURLs(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("IndexedURLs failed: %v", err)
	}
	if len(urls) != 0 {
		t.Errorf("expected empty list, got %+v", urls)
	}
}

func TestRemoveURL(t *testing.T) {
	svc, store := newTestService(&mockFetcher{})
	ctx := context.Background()

	svc.AddURL(ctx, "u1", "https://a.example.com")
	svc.AddURL(ctx, "u1", "https://b.example.com")

	if err := svc.RemoveURL(ctx, "u1", "https://a.example.com"); err != nil {
		t.Fatalf("RemoveURL failed: %v", err)
	}
	chunks, _ := store.ScrollByFilter(ctx, "web_u1", nil, 100)
	for _, c := range chunks {
		if c.Metadata["url"] == "https://a.example.com" {
			t.Error("removed url still has chunks")
		}
	}

	if err := svc.RemoveURL(ctx, "u1", "https://never-added.example.com"); !errors.Is(err, domain.ErrNotIndexed) {
		t.Errorf("expected ErrNotIndexed, got %v", err)
	}
	if err := svc.RemoveURL(ctx, "ghost-user", "https://a.example.com"); !errors.Is(err, domain.ErrNotIndexed) {
		t.Errorf("expected ErrNotIndexed for unknown user, got %v", err)
	}
}

func TestClearAll(t *testing.T) {
	svc, store := newTestService(&mockFetcher{})
	ctx := context.Background()

	svc.AddURL(ctx, "u1", "https://a.example.com")
	if err := svc.ClearAll(ctx, "u1"); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	exists, _ := store.CollectionExists(ctx, "web_u1")
	if exists {
		t.Error("collection should be gone")
	}

	// clearing an empty user is a no-op
	if err := svc.ClearAll(ctx, "ghost"); err != nil {
		t.Errorf("ClearAll for unknown user should not fail: %v", err)
	}
}

func TestChat_NoIndexedURLs(t *testing.T) {
	llm := &mockLLM{}
	svc := NewService(memory.New(), llm, &mockEmbedder{}, &mockFetcher{})

	_, err := svc.Chat(context.Background(), "u1", "what are widgets?", nil)
	if !errors.Is(err, domain.ErrNotIndexed) {
		t.Fatalf("expected ErrNotIndexed, got %v", err)
	}
	if llm.calls != 0 {
		t.Error("model must not be called without indexed urls")
	}
}

func TestChat_NoRelevantContent(t *testing.T) {
	store := memory.New()
	if err := store.EnsureCollection(context.Background(), "web_u1"); err != nil {
		t.Fatal(err)
	}
	llm := &mockLLM{}
	svc := NewService(store, llm, &mockEmbedder{}, &mockFetcher{})

	_, err := svc.Chat(context.Background(), "u1", "anything?", nil)
	if !errors.Is(err, domain.ErrNoRelevantContent) {
		t.Fatalf("expected ErrNoRelevantContent, got %v", err)
	}
	if llm.calls != 0 {
		t.Error("model must not be called with an empty retrieval")
	}
}

func TestChat_AnswerWithSources(t *testing.T) {
	store := memory.New()
	var gotHistory []string
	llm := &mockLLM{
		generateFunc: func(ctx context.Context, query string, matches []string, history []string) (string, error) {
			gotHistory = history
			return "widgets install with one command", nil
		},
	}
	svc := NewService(store, llm, &mockEmbedder{}, &mockFetcher{})
	ctx := context.Background()

	svc.AddURL(ctx, "u1", "https://example.com/docs")

	history := []domain.ChatTurn{
		{Question: "what is this site?", Answer: "a widget manual"},
	}
	answer, err := svc.Chat(ctx, "u1", "how do I install?", history)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if answer.Text != "widgets install with one command" {
		t.Errorf("unexpected answer %q", answer.Text)
	}
	if len(answer.Sources) != 1 || answer.Sources[0] != "https://example.com/docs" {
		t.Errorf("sources = %v", answer.Sources)
	}
	want := []string{"User: what is this site?", "Assistant: a widget manual"}
	if len(gotHistory) != 2 || gotHistory[0] != want[0] || gotHistory[1] != want[1] {
		t.Errorf("history = %v; want %v", gotHistory, want)
	}
}

func TestSources(t *testing.T) {
	llm := &mockLLM{}
	svc := NewService(memory.New(), llm, &mockEmbedder{}, &mockFetcher{})
	ctx := context.Background()

	sources, err := svc.Sources(ctx, "u1", "anything")
	if err != nil {
		t.Fatalf("Sources failed: %v", err)
	}
	if len(sources) != 0 {
		t.Errorf("expected no sources before indexing, got %+v", sources)
	}

	svc.AddURL(ctx, "u1", "https://example.com/docs")
	sources, err = svc.Sources(ctx, "u1", "how do I install?")
	if err != nil {
		t.Fatalf("Sources failed: %v", err)
	}
	if len(sources) != 1 || sources[0].URL != "https://example.com/docs" {
		t.Fatalf("sources = %+v", sources)
	}
	if sources[0].Title != "Example Page" {
		t.Errorf("title = %q", sources[0].Title)
	}
	if llm.calls != 0 {
		t.Error("source preview must not call the model")
	}
}

func TestFormatHistory_TruncatesToRecentTurns(t *testing.T) {
	var history []domain.ChatTurn
	for i := 1; i <= 8; i++ {
		history = append(history, domain.ChatTurn{
			Question: fmt.Sprintf("q%d", i),
			Answer:   fmt.Sprintf("a%d", i),
		})
	}

	lines := FormatHistory(history)
	if len(lines) != 10 {
		t.Fatalf("expected 5 turns (10 lines), got %d", len(lines))
	}
	if lines[0] != "User: q4" {
		t.Errorf("oldest kept turn should be q4, got %q", lines[0])
	}
	if lines[9] != "Assistant: a8" {
		t.Errorf("newest line should be a8, got %q", lines[9])
	}
}
