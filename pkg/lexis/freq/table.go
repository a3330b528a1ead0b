// Package freq holds token frequency tables sorted by descending count.
package freq

import "sort"

// Entry is one token and its occurrence count.
type Entry struct {
	Token string
	Count int
}

// Table is an immutable token → count mapping iterated in descending count order.
//
// Ties keep the order in which the entries were supplied: first encounter for
// tables built by Count, the given order for FromCounts and Merge.
// The zero value is an empty table.
type Table struct {
	entries []Entry
	index   map[string]int
	total   int
}

// Count tallies tokens and returns the sorted table.
func Count(tokens []string) Table {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, tok := range tokens {
		if _, ok := counts[tok]; !ok {
			order = append(order, tok)
		}
		counts[tok]++
	}
	return FromCounts(order, counts)
}

// FromCounts builds a table from counts, using order as the tie-break sequence.
// Tokens in order that have no count are kept with a count of 0.
// Tokens in counts that are not listed in order are ignored.
func FromCounts(order []string, counts map[string]int) Table {
	entries := make([]Entry, 0, len(order))
	seen := make(map[string]struct{}, len(order))
	for _, tok := range order {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		entries = append(entries, Entry{Token: tok, Count: counts[tok]})
	}
	return newTable(entries)
}

// Merge folds tables into a zero-initialized table over vocabulary.
// Tokens absent from vocabulary are appended in encounter order so the
// result always covers every input key.
func Merge(vocabulary []string, tables ...Table) Table {
	counts := make(map[string]int, len(vocabulary))
	order := make([]string, 0, len(vocabulary))
	for _, tok := range vocabulary {
		if _, ok := counts[tok]; ok {
			continue
		}
		counts[tok] = 0
		order = append(order, tok)
	}
	for _, t := range tables {
		for _, e := range t.entries {
			if _, ok := counts[e.Token]; !ok {
				order = append(order, e.Token)
			}
			counts[e.Token] += e.Count
		}
	}
	return FromCounts(order, counts)
}

func newTable(entries []Entry) Table {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	index := make(map[string]int, len(entries))
	total := 0
	for i, e := range entries {
		index[e.Token] = i
		total += e.Count
	}
	return Table{entries: entries, index: index, total: total}
}

// Get returns the count for token, or 0 when absent.
func (t Table) Get(token string) int {
	i, ok := t.index[token]
	if !ok {
		return 0
	}
	return t.entries[i].Count
}

// Has reports whether token is a key of the table.
func (t Table) Has(token string) bool {
	_, ok := t.index[token]
	return ok
}

// Len returns the number of distinct tokens.
func (t Table) Len() int { return len(t.entries) }

// Total returns the sum of all counts.
func (t Table) Total() int { return t.total }

// Entries returns a copy of all entries in table order.
func (t Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Top returns the first n entries. n is clamped to [0, Len()].
func (t Table) Top(n int) []Entry {
	if n < 0 {
		n = 0
	}
	if n > len(t.entries) {
		n = len(t.entries)
	}
	out := make([]Entry, n)
	copy(out, t.entries[:n])
	return out
}

// Keys returns the tokens in table order.
func (t Table) Keys() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Token
	}
	return out
}
