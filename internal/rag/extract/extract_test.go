package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avasant/docuchat/internal/domain"
)

func TestSupportedType(t *testing.T) {
	tests := []struct {
		ext      string
		expected bool
	}{
		{".pdf", true},
		{"PDF", true},
		{".docx", true},
		{"csv", true},
		{".xlsx", true},
		{".xls", true},
		{".png", false},
		{".exe", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := SupportedType(tt.ext); got != tt.expected {
			t.Errorf("SupportedType(%q) = %v; want %v", tt.ext, got, tt.expected)
		}
	}
}

func TestText_UnsupportedType(t *testing.T) {
	_, err := Text("image.png")
	if err == nil {
		t.Fatal("expected error for unsupported type")
	}
	var exErr *domain.ExtractionError
	if !errors.As(err, &exErr) {
		t.Errorf("expected ExtractionError, got %T", err)
	}
}

func TestText_PlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("Quarterly revenue grew 12%."), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Text(path)
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if !strings.Contains(got, "Quarterly revenue grew 12%.") {
		t.Errorf("content lost: %q", got)
	}
}

func TestText_CSVRendersTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sales.csv")
	content := "region,revenue\nnorth,1200\nsouth,800\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Text(path)
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	for _, want := range []string{"REGION", "north", "1200", "south", "800"} {
		if !strings.Contains(strings.ToLower(got), strings.ToLower(want)) {
			t.Errorf("rendered table missing %q:\n%s", want, got)
		}
	}
}

func TestText_CorruptPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	if err := os.WriteFile(path, []byte("not really a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Text(path)
	if err == nil {
		t.Fatal("expected error for corrupt pdf")
	}
	var exErr *domain.ExtractionError
	if !errors.As(err, &exErr) {
		t.Errorf("expected ExtractionError, got %T", err)
	}
	if exErr.Format != ".pdf" {
		t.Errorf("error format = %q; want .pdf", exErr.Format)
	}
}

func TestHTML(t *testing.T) {
	markup := `<html><head><title>Release Notes</title>
	<script>console.log("skip me")</script>
	<style>body { color: red }</style></head>
	<body>
	<nav>Home | About</nav>
	<header>Site Header</header>
	<p>Version   2.0 adds   exports.</p>
	<footer>copyright</footer>
	</body></html>`

	title, text, err := HTML(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	if title != "Release Notes" {
		t.Errorf("title = %q; want Release Notes", title)
	}
	if !strings.Contains(text, "Version 2.0 adds exports.") {
		t.Errorf("whitespace not collapsed: %q", text)
	}
	for _, dropped := range []string{"skip me", "color: red", "Home | About", "Site Header", "copyright"} {
		if strings.Contains(text, dropped) {
			t.Errorf("boilerplate %q should have been removed: %q", dropped, text)
		}
	}
}

func TestHTML_KeepsLineStructure(t *testing.T) {
	markup := `<html><body>
	<p>First   paragraph  about widgets.</p>

	<p>Second paragraph
	about   installation.</p>
	</body></html>`

	_, text, err := HTML(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	if !strings.Contains(text, "\n") {
		t.Fatalf("newlines lost, page flattened to one line: %q", text)
	}
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			t.Errorf("blank line survived: %q", text)
		}
		if strings.Contains(line, "  ") {
			t.Errorf("whitespace run survived in line %q", line)
		}
	}
	if !strings.Contains(text, "First paragraph about widgets.") {
		t.Errorf("in-line whitespace not collapsed: %q", text)
	}
}
