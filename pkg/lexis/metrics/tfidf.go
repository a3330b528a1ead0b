package metrics

import (
	"fmt"
	"math"

	"github.com/cognicore/lexis/pkg/lexis/internalerr"
)

// TFIDFTable is a terms × documents table.
// Rows follow the caller's term order, columns follow the set's document order.
type TFIDFTable struct {
	Terms     []string
	Documents []string
	Counts    [][]int     // raw term counts
	TF        [][]float64 // count / document token count
	DF        []int       // documents containing the term
	IDF       []float64   // ln(n/DF), or -Inf when DF == 0
	Values    [][]float64 // TF × IDF
}

// IsAbsent reports whether v is the negative-infinity sentinel used for
// terms that occur in none of the documents.
func IsAbsent(v float64) bool { return math.IsInf(v, -1) }

// Absent reports whether the term in row i occurs in no document.
func (t TFIDFTable) Absent(i int) bool { return t.DF[i] == 0 }

// At returns the TF-IDF value for a term and document name.
func (t TFIDFTable) At(term, doc string) (float64, bool) {
	row, col := -1, -1
	for i, tm := range t.Terms {
		if tm == term {
			row = i
			break
		}
	}
	for j, d := range t.Documents {
		if d == doc {
			col = j
			break
		}
	}
	if row < 0 || col < 0 {
		return 0, false
	}
	return t.Values[row][col], true
}

// TFIDF computes term frequency × inverse document frequency for every term
// and document in the set.
//
// A term found in no document gets IDF = -Inf and TF-IDF = -Inf for every
// document; this is a result, not an error. A document with zero tokens has
// no defined TF and fails with internalerr.ErrDegenerateInput.
func TFIDF(terms []string, set DocumentSet) (TFIDFTable, error) {
	docs, err := Resolve(set)
	if err != nil {
		return TFIDFTable{}, fmt.Errorf("tf-idf: %w", err)
	}
	if len(docs) == 0 {
		return TFIDFTable{}, fmt.Errorf("tf-idf: no documents: %w", internalerr.ErrEmptyCorpus)
	}
	for _, d := range docs {
		if d.TokenCount() == 0 {
			return TFIDFTable{}, fmt.Errorf("tf-idf: document %q has no tokens: %w",
				d.Name(), internalerr.ErrDegenerateInput)
		}
	}

	rows := make([]string, len(terms))
	copy(rows, terms)
	table := TFIDFTable{
		Terms:     rows,
		Documents: names(docs),
		Counts:    make([][]int, len(terms)),
		TF:        make([][]float64, len(terms)),
		DF:        make([]int, len(terms)),
		IDF:       make([]float64, len(terms)),
		Values:    make([][]float64, len(terms)),
	}

	n := float64(len(docs))
	for i, term := range rows {
		counts := make([]int, len(docs))
		tf := make([]float64, len(docs))
		df := 0
		for j, d := range docs {
			c := d.Frequencies().Get(term)
			counts[j] = c
			tf[j] = float64(c) / float64(d.TokenCount())
			if c > 0 {
				df++
			}
		}

		idf := math.Inf(-1)
		if df > 0 {
			idf = math.Log(n / float64(df))
		}

		values := make([]float64, len(docs))
		for j := range docs {
			if df == 0 {
				// 0 × -Inf is NaN; the sentinel is set directly.
				values[j] = math.Inf(-1)
				continue
			}
			values[j] = tf[j] * idf
		}

		table.Counts[i] = counts
		table.TF[i] = tf
		table.DF[i] = df
		table.IDF[i] = idf
		table.Values[i] = values
	}

	return table, nil
}
