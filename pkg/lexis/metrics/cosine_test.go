package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/cognicore/lexis/pkg/lexis/ingest"
	"github.com/cognicore/lexis/pkg/lexis/internalerr"
	"github.com/cognicore/lexis/pkg/lexis/stoplist"
)

func parse(t *testing.T, name, text string) *ingest.Document {
	t.Helper()
	doc, err := ingest.NewTokenizer(stoplist.English()).Parse(name, []byte(text))
	if err != nil {
		t.Fatalf("Parse(%s): %v", name, err)
	}
	return doc
}

func TestCosineCatDog(t *testing.T) {
	a := parse(t, "a", "the cat sat on the mat")
	b := parse(t, "b", "the dog sat on the log")

	sim, err := Cosine(a, b)
	if err != nil {
		t.Fatalf("Cosine: %v", err)
	}
	if math.Abs(sim-1.0/3.0) > 1e-12 {
		t.Errorf("sim = %v, want 1/3", sim)
	}
}

func TestCosineSymmetricAndSelf(t *testing.T) {
	docs := []*ingest.Document{
		ingest.NewDocument("a", []string{"whale", "whale", "sea", "ship"}),
		ingest.NewDocument("b", []string{"sea", "sea", "harpoon"}),
		ingest.NewDocument("c", []string{"desert", "camel"}),
		ingest.NewDocument("d", []string{"whale"}),
	}

	for _, x := range docs {
		self, err := Cosine(x, x)
		if err != nil {
			t.Fatalf("Cosine(%s,%s): %v", x.Name(), x.Name(), err)
		}
		if self != 1.0 {
			t.Errorf("sim(%s,%s) = %v, want exactly 1", x.Name(), x.Name(), self)
		}
		for _, y := range docs {
			xy, err := Cosine(x, y)
			if err != nil {
				t.Fatal(err)
			}
			yx, err := Cosine(y, x)
			if err != nil {
				t.Fatal(err)
			}
			if xy != yx {
				t.Errorf("sim(%s,%s)=%v != sim(%s,%s)=%v", x.Name(), y.Name(), xy, y.Name(), x.Name(), yx)
			}
			if xy < 0 || xy > 1+1e-12 {
				t.Errorf("sim(%s,%s)=%v out of range", x.Name(), y.Name(), xy)
			}
		}
	}

	disjoint, _ := Cosine(docs[0], docs[2])
	if disjoint != 0 {
		t.Errorf("disjoint documents should have similarity 0, got %v", disjoint)
	}
}

func TestCosineDegenerate(t *testing.T) {
	empty := ingest.NewDocument("empty", nil)
	full := ingest.NewDocument("full", []string{"cat"})

	tests := []struct {
		name string
		a, b *ingest.Document
		want error
	}{
		{name: "both empty", a: empty, b: empty, want: internalerr.ErrDegenerateInput},
		{name: "left empty", a: empty, b: full, want: internalerr.ErrDegenerateInput},
		{name: "right empty", a: full, b: empty, want: internalerr.ErrDegenerateInput},
		{name: "nil", a: nil, b: full, want: internalerr.ErrTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Cosine(tt.a, tt.b); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSimilarityMatrix(t *testing.T) {
	set := ingest.Documents{
		parse(t, "a.txt", "the cat sat on the mat"),
		parse(t, "b.txt", "the dog sat on the log"),
		parse(t, "c.txt", "a cat and a dog"),
	}

	m, err := SimilarityMatrix(set)
	if err != nil {
		t.Fatalf("SimilarityMatrix: %v", err)
	}
	if m.Size() != 3 {
		t.Fatalf("size = %d, want 3", m.Size())
	}
	wantLabels := []string{"a.txt", "b.txt", "c.txt"}
	for i, l := range wantLabels {
		if m.Labels[i] != l {
			t.Errorf("label %d = %q, want %q", i, m.Labels[i], l)
		}
	}
	for i := 0; i < m.Size(); i++ {
		if m.At(i, i) != 1.0 {
			t.Errorf("diagonal %d = %v, want 1", i, m.At(i, i))
		}
		for j := 0; j < m.Size(); j++ {
			if m.At(i, j) != m.At(j, i) {
				t.Errorf("M[%d][%d]=%v != M[%d][%d]=%v", i, j, m.At(i, j), j, i, m.At(j, i))
			}
		}
	}

	ab, ok := m.Lookup("a.txt", "b.txt")
	if !ok || math.Abs(ab-1.0/3.0) > 1e-12 {
		t.Errorf("Lookup(a,b) = %v,%v, want 1/3", ab, ok)
	}
	if _, ok := m.Lookup("a.txt", "missing"); ok {
		t.Error("Lookup of unknown label should fail")
	}
}

func TestSimilarityMatrixZeroTokenDocument(t *testing.T) {
	set := ingest.Documents{
		ingest.NewDocument("empty", nil),
		ingest.NewDocument("full", []string{"cat"}),
	}

	m, err := SimilarityMatrix(set)
	if err != nil {
		t.Fatalf("SimilarityMatrix: %v", err)
	}
	if m.At(0, 0) != 1.0 || m.At(1, 1) != 1.0 {
		t.Errorf("diagonal must be 1 even for empty documents: %v", m.Values)
	}
	if !math.IsNaN(m.At(0, 1)) || !math.IsNaN(m.At(1, 0)) {
		t.Errorf("pair with an empty document should be NaN, got %v", m.Values)
	}
}

func TestSimilarityMatrixInvalidSets(t *testing.T) {
	if _, err := SimilarityMatrix(nil); !errors.Is(err, internalerr.ErrTypeMismatch) {
		t.Errorf("nil set: expected ErrTypeMismatch, got %v", err)
	}
	if _, err := SimilarityMatrix(ingest.Documents{nil}); !errors.Is(err, internalerr.ErrTypeMismatch) {
		t.Errorf("nil document: expected ErrTypeMismatch, got %v", err)
	}
	dup := ingest.Documents{
		ingest.NewDocument("same", []string{"cat"}),
		ingest.NewDocument("same", []string{"dog"}),
	}
	if _, err := SimilarityMatrix(dup); !errors.Is(err, internalerr.ErrDuplicate) {
		t.Errorf("duplicate names: expected ErrDuplicate, got %v", err)
	}
}
