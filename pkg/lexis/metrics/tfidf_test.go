package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/cognicore/lexis/pkg/lexis/ingest"
	"github.com/cognicore/lexis/pkg/lexis/internalerr"
)

func repeat(tok string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = tok
	}
	return out
}

func TestTFIDFSingleDocumentTerm(t *testing.T) {
	// Each document has 10 tokens; "whale" occurs twice in the first only.
	a := ingest.NewDocument("a", append([]string{"whale", "whale"}, repeat("sea", 8)...))
	b := ingest.NewDocument("b", repeat("sea", 10))

	table, err := TFIDF([]string{"whale"}, ingest.Documents{a, b})
	if err != nil {
		t.Fatalf("TFIDF: %v", err)
	}

	if table.TF[0][0] != 0.2 {
		t.Errorf("TF = %v, want 0.2", table.TF[0][0])
	}
	if table.DF[0] != 1 {
		t.Errorf("DF = %d, want 1", table.DF[0])
	}
	if math.Abs(table.IDF[0]-math.Ln2) > 1e-12 {
		t.Errorf("IDF = %v, want ln 2", table.IDF[0])
	}
	if math.Abs(table.Values[0][0]-0.2*math.Ln2) > 1e-12 {
		t.Errorf("TF-IDF(a) = %v, want %v", table.Values[0][0], 0.2*math.Ln2)
	}
	if math.Abs(table.Values[0][0]-0.1386) > 1e-4 {
		t.Errorf("TF-IDF(a) = %v, want ≈0.1386", table.Values[0][0])
	}
	if table.Values[0][1] != 0 {
		t.Errorf("TF-IDF(b) = %v, want 0", table.Values[0][1])
	}
}

func TestTFIDFAbsentTermIsNegativeInfinity(t *testing.T) {
	set := ingest.Documents{
		ingest.NewDocument("a", []string{"cat", "sat"}),
		ingest.NewDocument("b", []string{"dog"}),
	}

	table, err := TFIDF([]string{"cat", "unicorn"}, set)
	if err != nil {
		t.Fatalf("TFIDF: %v", err)
	}

	if !table.Absent(1) {
		t.Error("unicorn should be absent")
	}
	if table.Absent(0) {
		t.Error("cat should not be absent")
	}
	if !math.IsInf(table.IDF[1], -1) {
		t.Errorf("IDF(unicorn) = %v, want -Inf", table.IDF[1])
	}
	for j := range table.Documents {
		if !IsAbsent(table.Values[1][j]) {
			t.Errorf("TF-IDF(unicorn, %s) = %v, want -Inf", table.Documents[j], table.Values[1][j])
		}
		if math.IsNaN(table.Values[1][j]) {
			t.Errorf("TF-IDF(unicorn, %s) must not be NaN", table.Documents[j])
		}
	}
}

func TestTFIDFUbiquitousTermIsZero(t *testing.T) {
	set := ingest.Documents{
		ingest.NewDocument("a", []string{"sea", "cat"}),
		ingest.NewDocument("b", []string{"sea"}),
	}

	table, err := TFIDF([]string{"sea"}, set)
	if err != nil {
		t.Fatalf("TFIDF: %v", err)
	}
	for j := range table.Documents {
		if table.Values[0][j] != 0 {
			t.Errorf("term in every document should score 0, got %v", table.Values[0][j])
		}
	}
}

func TestTFIDFLabelsAndLookup(t *testing.T) {
	set := ingest.Documents{
		ingest.NewDocument("z.txt", []string{"cat"}),
		ingest.NewDocument("a.txt", []string{"dog"}),
	}
	terms := []string{"dog", "cat"}

	table, err := TFIDF(terms, set)
	if err != nil {
		t.Fatalf("TFIDF: %v", err)
	}
	terms[0] = "mutated"

	if table.Terms[0] != "dog" || table.Terms[1] != "cat" {
		t.Errorf("rows must keep caller order and be copied, got %v", table.Terms)
	}
	if table.Documents[0] != "z.txt" || table.Documents[1] != "a.txt" {
		t.Errorf("columns must keep set order, got %v", table.Documents)
	}
	if table.Counts[0][1] != 1 || table.Counts[0][0] != 0 {
		t.Errorf("counts = %v", table.Counts)
	}

	v, ok := table.At("cat", "z.txt")
	if !ok || math.Abs(v-math.Ln2) > 1e-12 {
		t.Errorf("At(cat, z.txt) = %v,%v, want ln 2", v, ok)
	}
	if _, ok := table.At("cat", "missing"); ok {
		t.Error("At with unknown document should fail")
	}
}

func TestTFIDFErrors(t *testing.T) {
	tests := []struct {
		name string
		set  DocumentSet
		want error
	}{
		{name: "nil set", set: nil, want: internalerr.ErrTypeMismatch},
		{name: "nil document", set: ingest.Documents{nil}, want: internalerr.ErrTypeMismatch},
		{name: "empty set", set: ingest.Documents{}, want: internalerr.ErrEmptyCorpus},
		{name: "zero-token document", set: ingest.Documents{ingest.NewDocument("e", nil)}, want: internalerr.ErrDegenerateInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := TFIDF([]string{"cat"}, tt.set); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
