package importer

import (
	"fmt"
	"strings"
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		wantType string
	}{
		{"notes.txt", "*importer.TextExtractor"},
		{"README.md", "*importer.MarkdownExtractor"},
		{"doc.markdown", "*importer.MarkdownExtractor"},
		{"data.csv", "*importer.CSVExtractor"},
		{"page.html", "*importer.HTMLExtractor"},
		{"page.HTM", "*importer.HTMLExtractor"},
		{"report.pdf", "*importer.PDFExtractor"},
		{"letter.docx", "*importer.DOCXExtractor"},
	}
	for _, tt := range tests {
		ex, err := ForFile(tt.filename)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.filename, err)
			continue
		}
		if got := fmt.Sprintf("%T", ex); got != tt.wantType {
			t.Errorf("%s: expected %s, got %s", tt.filename, tt.wantType, got)
		}
	}

	if _, err := ForFile("archive.zip"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("a.txt") || !IsSupportedExtension("b.DOCX") {
		t.Error("expected txt and DOCX to be supported")
	}
	if IsSupportedExtension("c.exe") || IsSupportedExtension("noext") {
		t.Error("expected exe and extensionless names to be unsupported")
	}
}

func TestTextExtractor(t *testing.T) {
	input := "first line\nsecond line\n\n\nnext paragraph\n"

	content, err := (&TextExtractor{}).Extract(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", content.Title)
	}
	want := "first line\nsecond line\n\nnext paragraph"
	if content.Body != want {
		t.Errorf("expected body %q, got %q", want, content.Body)
	}
}

func TestMarkdownExtractor(t *testing.T) {
	input := "# Project Plan\n\nSome intro text.\n\n## Phase One\n\nDetails here.\n"

	content, err := (&MarkdownExtractor{}).Extract(strings.NewReader(input), "plan.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content.Title != "Project Plan" {
		t.Errorf("expected title from first h1, got %q", content.Title)
	}
	for _, want := range []string{"Project Plan", "Some intro text.", "Phase One", "Details here."} {
		if !strings.Contains(content.Body, want) {
			t.Errorf("expected body to contain %q, got %q", want, content.Body)
		}
	}
}

func TestMarkdownExtractor_NoHeadingFallsBackToFilename(t *testing.T) {
	content, err := (&MarkdownExtractor{}).Extract(strings.NewReader("just a paragraph\n"), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content.Title != "plain" {
		t.Errorf("expected title %q, got %q", "plain", content.Title)
	}
}

func TestCSVExtractor(t *testing.T) {
	input := "name,qty\nwidget,3\ngadget,7\n"

	content, err := (&CSVExtractor{}).Extract(strings.NewReader(input), "inventory.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(content.Body, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), content.Body)
	}
	if lines[0] != "Headers: name, qty" {
		t.Errorf("expected header line, got %q", lines[0])
	}
	if lines[1] != "name: widget, qty: 3" {
		t.Errorf("expected %q, got %q", "name: widget, qty: 3", lines[1])
	}
}

func TestHTMLExtractor(t *testing.T) {
	input := `<html><head><title>Quarterly Report</title><style>p{color:red}</style></head>
<body><nav>skip me</nav><h1>Results</h1><p>Revenue grew.</p><script>alert(1)</script></body></html>`

	content, err := (&HTMLExtractor{}).Extract(strings.NewReader(input), "report.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content.Title != "Quarterly Report" {
		t.Errorf("expected title from <title>, got %q", content.Title)
	}
	for _, want := range []string{"Results", "Revenue grew."} {
		if !strings.Contains(content.Body, want) {
			t.Errorf("expected body to contain %q, got %q", want, content.Body)
		}
	}
	for _, skip := range []string{"skip me", "alert", "color:red"} {
		if strings.Contains(content.Body, skip) {
			t.Errorf("expected body to omit %q, got %q", skip, content.Body)
		}
	}
}
