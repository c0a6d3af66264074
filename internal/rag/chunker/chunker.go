package chunker

import "strings"

// DefaultSeparators is the boundary preference order: paragraph, line,
// sentence, word, then a hard character cut as the terminal fallback.
var DefaultSeparators = []string{"\n\n", "\n", ".", " ", ""}

// Config tunes the splitter.
//
// ChunkSize:    max characters per chunk.
// ChunkOverlap: characters shared between consecutive chunks.
// Separators:   ordered preference list for split boundaries.
type Config struct {
	ChunkSize    int
	ChunkOverlap int
	Separators   []string
}

func (c Config) withDefaults() Config {
	if c.ChunkSize <= 0 {
		c.ChunkSize = 500
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		c.ChunkOverlap = 50
		if c.ChunkOverlap >= c.ChunkSize {
			c.ChunkOverlap = c.ChunkSize / 10
		}
	}
	if len(c.Separators) == 0 {
		c.Separators = DefaultSeparators
	}
	return c
}

// Split cuts text into chunks of at most ChunkSize characters in original
// order. It splits on the first separator that appears in the text, merges
// adjacent small pieces back up to ChunkSize carrying ChunkOverlap characters
// between consecutive chunks, and recurses to the next separator for pieces
// that are still too large. Empty input yields no chunks.
func Split(text string, cfg Config) []string {
	cfg = cfg.withDefaults()
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return splitRecursive(text, cfg.Separators, cfg)
}

func splitRecursive(text string, seps []string, cfg Config) []string {
	sep := ""
	var rest []string
	for i, s := range seps {
		if s == "" {
			break
		}
		if strings.Contains(text, s) {
			sep = s
			rest = seps[i+1:]
			break
		}
	}
	if sep == "" {
		return hardCut(text, cfg)
	}

	// SplitAfter keeps the separator attached so no character is lost.
	pieces := strings.SplitAfter(text, sep)

	var out []string
	var fits []string
	flush := func() {
		out = append(out, mergePieces(fits, cfg)...)
		fits = fits[:0]
	}
	for _, p := range pieces {
		if len([]rune(p)) <= cfg.ChunkSize {
			fits = append(fits, p)
			continue
		}
		flush()
		out = append(out, splitRecursive(p, rest, cfg)...)
	}
	flush()
	return out
}

// mergePieces joins consecutive pieces (each already within ChunkSize) into
// chunks, retaining a tail of at most ChunkOverlap characters as the seed of
// the next chunk.
func mergePieces(pieces []string, cfg Config) []string {
	var chunks []string
	var window []string
	total := 0

	emit := func() {
		if c := strings.TrimSpace(strings.Join(window, "")); c != "" {
			chunks = append(chunks, c)
		}
	}

	for _, p := range pieces {
		n := len([]rune(p))
		if total+n > cfg.ChunkSize && total > 0 {
			emit()
			for total > cfg.ChunkOverlap || (total > 0 && total+n > cfg.ChunkSize) {
				total -= len([]rune(window[0]))
				window = window[1:]
			}
		}
		window = append(window, p)
		total += n
	}
	emit()
	return chunks
}

// hardCut is the terminal fallback: fixed-size windows advancing by
// ChunkSize-ChunkOverlap characters.
func hardCut(text string, cfg Config) []string {
	runes := []rune(text)
	step := cfg.ChunkSize - cfg.ChunkOverlap
	if step <= 0 {
		step = cfg.ChunkSize
	}
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + cfg.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
