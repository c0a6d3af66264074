package chunker

import (
	"strings"
	"testing"
)

func TestSplit_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\n\n"} {
		if got := Split(text, Config{ChunkSize: 100, ChunkOverlap: 10}); len(got) != 0 {
			t.Errorf("Split(%q) = %d chunks; want 0", text, len(got))
		}
	}
}

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	chunks := Split("hello world", Config{ChunkSize: 100, ChunkOverlap: 10})
	if len(chunks) != 1 || chunks[0] != "hello world" {
		t.Errorf("got %v; want one chunk with the full text", chunks)
	}
}

func TestSplit_ParagraphBoundary(t *testing.T) {
	text := "Alice has 10 cats.\n\nBob has 3 dogs."
	chunks := Split(text, Config{ChunkSize: 20, ChunkOverlap: 5})

	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if !strings.Contains(chunks[0], "Alice has 10 cats.") {
		t.Errorf("first chunk %q should contain the first paragraph", chunks[0])
	}
	for i, c := range chunks {
		if len([]rune(c)) > 20 {
			t.Errorf("chunk %d exceeds the size limit: %q", i, c)
		}
	}
}

func TestSplit_HardCutCount(t *testing.T) {
	// No separators at all forces the terminal fixed-window cut, where the
	// chunk count is exactly ceil(L / (C - O)).
	text := strings.Repeat("a", 1000)
	chunks := Split(text, Config{ChunkSize: 100, ChunkOverlap: 20})

	want := 13 // ceil(1000 / 80)
	if len(chunks) != want {
		t.Errorf("got %d chunks, want %d", len(chunks), want)
	}
	for i, c := range chunks {
		if len(c) > 100 {
			t.Errorf("chunk %d has %d chars, limit is 100", i, len(c))
		}
	}
}

func TestSplit_CoverageAndOrder(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("the quick brown fox jumps over the lazy dog. ")
	}
	text := b.String()
	chunks := Split(text, Config{ChunkSize: 120, ChunkOverlap: 20})

	if len(chunks) < 2 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}

	// Every chunk is a contiguous substring and their start offsets are
	// non-decreasing, so concatenation order matches the original order.
	prevStart := -1
	prevEnd := 0
	for i, c := range chunks {
		start := strings.Index(text, c)
		if start < 0 {
			t.Fatalf("chunk %d is not a substring of the input: %q", i, c)
		}
		if start < prevStart {
			t.Errorf("chunk %d out of order (start %d < %d)", i, start, prevStart)
		}
		if i > 0 && start > prevEnd {
			t.Errorf("gap before chunk %d: previous ended at %d, next starts at %d", i, prevEnd, start)
		}
		prevStart = start
		if start+len(c) > prevEnd {
			prevEnd = start + len(c)
		}
	}
	if prevEnd < len(strings.TrimRight(text, " ")) {
		t.Errorf("chunks cover up to %d of %d input characters", prevEnd, len(text))
	}
}

func TestSplit_RecursiveFallback(t *testing.T) {
	// A single paragraph that exceeds ChunkSize must fall through to the
	// sentence and word separators instead of being emitted oversized.
	text := "one two three four five six seven eight nine ten eleven twelve"
	chunks := Split(text, Config{ChunkSize: 25, ChunkOverlap: 5})

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %v", chunks)
	}
	for i, c := range chunks {
		if len(c) > 25 {
			t.Errorf("chunk %d exceeds limit after fallback: %q", i, c)
		}
	}
	joined := strings.Join(chunks, " ")
	for _, word := range strings.Fields(text) {
		if !strings.Contains(joined, word) {
			t.Errorf("word %q lost during splitting", word)
		}
	}
}

func TestSplit_Defaults(t *testing.T) {
	text := strings.Repeat("sentence body here. ", 100)
	chunks := Split(text, Config{})
	for i, c := range chunks {
		if len([]rune(c)) > 500 {
			t.Errorf("chunk %d exceeds the 500 char default: %d", i, len(c))
		}
	}
	if len(chunks) < 3 {
		t.Errorf("2000 chars should produce several default-size chunks, got %d", len(chunks))
	}
}
