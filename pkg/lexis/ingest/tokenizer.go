package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultMinLength is the shortest token kept after filtering.
const DefaultMinLength = 3

// Segmenter splits cleaned text into word tokens.
type Segmenter func(text string) []string

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithSegmenter replaces the default English word segmenter.
func WithSegmenter(s Segmenter) Option {
	return func(t *Tokenizer) {
		if s != nil {
			t.segment = s
		}
	}
}

// WithMinLength sets the minimum token length. Values below 1 are ignored.
func WithMinLength(n int) Option {
	return func(t *Tokenizer) {
		if n > 0 {
			t.minLength = n
		}
	}
}

// Tokenizer handles text cleaning, segmentation and filtering.
// It is safe for concurrent use once constructed.
type Tokenizer struct {
	stopwords map[string]struct{}
	segment   Segmenter
	minLength int
}

// NewTokenizer creates a new tokenizer with the given stopword list
func NewTokenizer(stopwords []string, opts ...Option) *Tokenizer {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	t := &Tokenizer{
		stopwords: stops,
		segment:   WordSegmenter,
		minLength: DefaultMinLength,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// MinLength returns the configured minimum token length.
func (t *Tokenizer) MinLength() int { return t.minLength }

// Clean deletes every character that is not an ASCII letter or whitespace,
// then case-folds the result. Deleted characters leave no gap: "don't" becomes "dont".
func Clean(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isASCIILetter(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	// Casers carry state, so one is created per call.
	return cases.Lower(language.English).String(b.String())
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Tokenize cleans text, segments it and drops stopwords and short tokens.
// Token order follows the text; duplicates are retained.
func (t *Tokenizer) Tokenize(text string) []string {
	words := t.segment(Clean(text))
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if t.isStopword(w) {
			continue
		}
		if len(w) < t.minLength {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

func (t *Tokenizer) isStopword(word string) bool {
	_, ok := t.stopwords[word]
	return ok
}

// contractions are the fused forms an English treebank tokenizer splits in two.
var contractions = map[string][2]string{
	"cannot": {"can", "not"},
	"gimme":  {"gim", "me"},
	"gonna":  {"gon", "na"},
	"gotta":  {"got", "ta"},
	"lemme":  {"lem", "me"},
	"wanna":  {"wan", "na"},
}

// WordSegmenter is the default English word-boundary segmenter for cleaned text.
// Words are separated by whitespace and a few fused contractions are split.
func WordSegmenter(text string) []string {
	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if parts, ok := contractions[strings.ToLower(f)]; ok {
			n := len(parts[0])
			words = append(words, f[:n], f[n:])
			continue
		}
		words = append(words, f)
	}
	return words
}
