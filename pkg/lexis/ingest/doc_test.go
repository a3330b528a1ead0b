package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/lexis/pkg/lexis/internalerr"
)

func TestDocumentFrequenciesSumToTokenCount(t *testing.T) {
	tokenizer := NewTokenizer(testStops)
	docs := []string{
		"The cat sat on the mat",
		"whale whale whale ship sea ship",
		"",
		"Call me Ishmael. Some years ago, never mind how long precisely",
	}

	for _, text := range docs {
		doc, err := tokenizer.Parse("doc.txt", []byte(text))
		if err != nil {
			t.Fatalf("Parse(%q): %v", text, err)
		}
		sum := 0
		for _, e := range doc.Frequencies().Entries() {
			sum += e.Count
		}
		if sum != doc.TokenCount() {
			t.Errorf("%q: frequency sum %d != token count %d", text, sum, doc.TokenCount())
		}
	}
}

func TestDocumentTokenCountIsTotalOccurrences(t *testing.T) {
	doc := NewDocument("moby", []string{"whale", "whale", "sea"})

	if doc.TokenCount() != 3 {
		t.Errorf("TokenCount() = %d, want 3", doc.TokenCount())
	}
	if doc.Frequencies().Len() != 2 {
		t.Errorf("distinct tokens = %d, want 2", doc.Frequencies().Len())
	}
	if doc.Frequencies().Get("whale") != 2 {
		t.Errorf("whale count = %d, want 2", doc.Frequencies().Get("whale"))
	}
}

func TestDocumentImmutable(t *testing.T) {
	tokens := []string{"cat", "sat"}
	doc := NewDocument("a", tokens)
	tokens[0] = "dog"

	got := doc.Tokens()
	if got[0] != "cat" {
		t.Error("document must copy its input tokens")
	}
	got[1] = "log"
	if doc.Tokens()[1] != "sat" {
		t.Error("Tokens() must return a copy")
	}
}

func TestParseRejectsInvalidUTF8(t *testing.T) {
	tokenizer := NewTokenizer(testStops)

	_, err := tokenizer.Parse("bad.txt", []byte{'c', 'a', 't', 0xff, 0xfe})
	if !errors.Is(err, internalerr.ErrEncoding) {
		t.Fatalf("expected ErrEncoding, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	tokenizer := NewTokenizer(testStops)

	_, err := tokenizer.Load(filepath.Join(t.TempDir(), "missing.txt"), "")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadDefaultsNameToBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mat.txt")
	if err := os.WriteFile(path, []byte("The cat sat on the mat"), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := NewTokenizer(testStops).Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Name() != "mat.txt" {
		t.Errorf("Name() = %q, want mat.txt", doc.Name())
	}
	if !equalTokens(doc.Tokens(), []string{"cat", "sat", "mat"}) {
		t.Errorf("unexpected tokens %v", doc.Tokens())
	}

	named, err := NewTokenizer(testStops).Load(path, "custom")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if named.Name() != "custom" {
		t.Errorf("Name() = %q, want custom", named.Name())
	}
}

func TestLoadHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	page := `<html><head><style>body{color:red}</style><script>var whale = 1;</script></head>
<body><h1>Whale</h1><p>ship</p><p>harpoon</p></body></html>`
	if err := os.WriteFile(path, []byte(page), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := NewTokenizer(testStops).Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"whale", "ship", "harpoon"}
	if !equalTokens(doc.Tokens(), want) {
		t.Errorf("tokens = %v, want %v", doc.Tokens(), want)
	}
}

func TestDocumentsSatisfiesCollection(t *testing.T) {
	a := NewDocument("a", []string{"cat"})
	b := NewDocument("b", []string{"dog"})

	var ds interface{ Documents() []*Document } = Documents{a, b}
	got := ds.Documents()
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("Documents() = %v", got)
	}
}
