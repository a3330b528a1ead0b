package metrics

import (
	"fmt"
	"math"

	"github.com/cognicore/lexis/pkg/lexis/ingest"
	"github.com/cognicore/lexis/pkg/lexis/internalerr"
)

// Cosine returns the cosine similarity of two documents' count vectors over
// the union of their vocabularies.
//
// A document without tokens has a zero norm; Cosine then fails with
// internalerr.ErrDegenerateInput instead of returning NaN.
func Cosine(a, b *ingest.Document) (float64, error) {
	if a == nil || b == nil {
		return 0, fmt.Errorf("cosine: nil document: %w", internalerr.ErrTypeMismatch)
	}
	if a.TokenCount() == 0 || b.TokenCount() == 0 {
		return 0, fmt.Errorf("cosine %q/%q: zero-token document: %w",
			a.Name(), b.Name(), internalerr.ErrDegenerateInput)
	}

	fa, fb := a.Frequencies(), b.Frequencies()

	// Walk the union once; each term contributes to the same position of both vectors.
	var dot, normA, normB int64
	for _, e := range fa.Entries() {
		x := int64(e.Count)
		y := int64(fb.Get(e.Token))
		dot += x * y
		normA += x * x
		normB += y * y
	}
	for _, e := range fb.Entries() {
		if fa.Has(e.Token) {
			continue
		}
		y := int64(e.Count)
		normB += y * y
	}

	// sqrt(|a|²·|b|²) keeps sim(A,A) exactly 1.
	return float64(dot) / math.Sqrt(float64(normA)*float64(normB)), nil
}

// Matrix is a square, symmetric similarity table labelled by document name.
type Matrix struct {
	Labels []string
	Values [][]float64
}

// Size returns the number of rows.
func (m Matrix) Size() int { return len(m.Labels) }

// At returns the value at row i, column j.
func (m Matrix) At(i, j int) float64 { return m.Values[i][j] }

// Lookup returns the similarity between two named documents.
func (m Matrix) Lookup(a, b string) (float64, bool) {
	i, j := m.index(a), m.index(b)
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.Values[i][j], true
}

func (m Matrix) index(label string) int {
	for i, l := range m.Labels {
		if l == label {
			return i
		}
	}
	return -1
}

// SimilarityMatrix computes cosine similarity once per unordered pair of
// documents and writes it to both (i,j) and (j,i). The diagonal is set to
// exactly 1.0 without computing it.
//
// Pairs involving a zero-token document have no defined similarity and are
// stored as NaN.
func SimilarityMatrix(set DocumentSet) (Matrix, error) {
	docs, err := Resolve(set)
	if err != nil {
		return Matrix{}, fmt.Errorf("similarity matrix: %w", err)
	}

	n := len(docs)
	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
		values[i][i] = 1.0
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sim := math.NaN()
			if docs[i].TokenCount() > 0 && docs[j].TokenCount() > 0 {
				if sim, err = Cosine(docs[i], docs[j]); err != nil {
					return Matrix{}, fmt.Errorf("similarity matrix: %w", err)
				}
			}
			values[i][j] = sim
			values[j][i] = sim
		}
	}

	return Matrix{Labels: names(docs), Values: values}, nil
}
