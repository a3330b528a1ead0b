package ingest

import (
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Extractor turns raw file content into the text to tokenize.
type Extractor interface {
	Extract(content string) (string, error)
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(content string) (string, error)

// Extract implements Extractor.
func (f ExtractorFunc) Extract(content string) (string, error) { return f(content) }

// PlainText returns content unchanged.
var PlainText = ExtractorFunc(func(content string) (string, error) {
	return content, nil
})

// HTMLText keeps only the text nodes of an HTML document.
// Script and style bodies are skipped; text nodes are joined by a space.
var HTMLText = ExtractorFunc(func(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String()), nil
})

// ExtractorFor picks the extractor for a file name by extension.
// Unknown extensions are treated as plain text.
func ExtractorFor(name string) Extractor {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return HTMLText
	default:
		return PlainText
	}
}
