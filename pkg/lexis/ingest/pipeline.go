package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/cognicore/lexis/pkg/lexis/internalerr"
)

// Parse decodes content as UTF-8, tokenizes it and returns the document.
// Content that is not valid UTF-8 fails with internalerr.ErrEncoding.
func (t *Tokenizer) Parse(name string, content []byte) (*Document, error) {
	return t.parse(name, content, PlainText)
}

func (t *Tokenizer) parse(name string, content []byte, ex Extractor) (*Document, error) {
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("document %s: %w", name, internalerr.ErrEncoding)
	}
	text, err := ex.Extract(string(content))
	if err != nil {
		return nil, fmt.Errorf("document %s: extract text: %w", name, err)
	}
	return NewDocument(name, t.Tokenize(text)), nil
}

// Load reads the file at path and tokenizes it under the given name.
// An empty name defaults to the file's base name.
// A missing or unreadable path fails with internalerr.ErrNotFound.
func (t *Tokenizer) Load(path, name string) (*Document, error) {
	if name == "" {
		name = filepath.Base(path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		// Missing, unreadable and non-regular paths all count as not found.
		return nil, fmt.Errorf("read %s: %w: %v", path, internalerr.ErrNotFound, err)
	}
	return t.parse(name, content, ExtractorFor(path))
}
