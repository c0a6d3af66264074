package extract

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/avasant/docuchat/internal/domain"
)

// HTML parses a markup stream and returns the page title and the visible
// text with boilerplate elements removed and whitespace collapsed.
func HTML(r io.Reader) (title, text string, err error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", "", &domain.ExtractionError{Format: ".html", Err: err}
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("script, style, nav, footer, header").Remove()

	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}
	text = collapseWhitespace(body.Text())
	return title, text, nil
}

// collapseWhitespace squeezes repeated whitespace within each line and drops
// blank lines, keeping the newlines the chunker's separators rely on.
func collapseWhitespace(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
