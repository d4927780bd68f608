// Package richtext renders submitted markdown to HTML at write time.
// Raw HTML in the source is dropped by the renderer, so the stored
// html column is safe to serve as-is.
package richtext

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var engine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
		extension.Typographer,
	),
)

// Render converts markdown into sanitized HTML. Empty input renders to "".
func Render(markdown string) string {
	text := strings.TrimSpace(markdown)
	if text == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := engine.Convert([]byte(text), &buf); err != nil {
		// fall back to nothing rather than echoing unrendered input
		return ""
	}
	return buf.String()
}
