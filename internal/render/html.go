package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// HTML converts rendered markdown to HTML for preview surfaces.
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
