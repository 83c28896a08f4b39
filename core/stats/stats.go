// Package stats computes compression ratios across the three granularity
// levels of a corpus and ranks the results.
//
// Each granularity is compressed from its own freshly concatenated text.
// A chapter ratio is never derived from its verses' ratios: compression
// statistics are not additive (shared dictionaries and context windows),
// so reusing finer-grained results would change the numbers. The repeated
// work over overlapping text is the required behavior, not an accident.
package stats

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/benonymity/bible-compression/core/compressor"
	"github.com/benonymity/bible-compression/core/corpus"
	"github.com/benonymity/bible-compression/core/errors"
)

// Ratios maps algorithm name to compressed/original byte ratio for one unit.
// Values are in [0, inf); short inputs can expand past 1.0. A zero-length
// unit has ratio 0 for every algorithm by convention.
type Ratios map[compressor.Algorithm]float64

// Table is an insertion-ordered mapping from unit identifier to Ratios.
// Iteration order is the order units were recorded during aggregation, which
// ranking uses as the tie-break order.
type Table struct {
	order   []string
	records map[string]Ratios
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{records: make(map[string]Ratios)}
}

// Set records the ratios for a unit. First insertion fixes the unit's
// position; setting an existing id overwrites in place.
func (t *Table) Set(id string, r Ratios) {
	if _, exists := t.records[id]; !exists {
		t.order = append(t.order, id)
	}
	t.records[id] = r
}

// Get returns the ratios for a unit.
func (t *Table) Get(id string) (Ratios, bool) {
	r, ok := t.records[id]
	return r, ok
}

// IDs returns the unit identifiers in insertion order.
func (t *Table) IDs() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of units in the table.
func (t *Table) Len() int {
	return len(t.order)
}

// tableEntry is the JSON wire form; an array keeps insertion order intact.
type tableEntry struct {
	ID     string `json:"id"`
	Ratios Ratios `json:"ratios"`
}

// MarshalJSON serializes the table as an ordered array of entries.
func (t *Table) MarshalJSON() ([]byte, error) {
	entries := make([]tableEntry, len(t.order))
	for i, id := range t.order {
		entries[i] = tableEntry{ID: id, Ratios: t.records[id]}
	}
	return json.Marshal(entries)
}

// UnmarshalJSON restores a table from its ordered array form.
func (t *Table) UnmarshalJSON(data []byte) error {
	var entries []tableEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	t.order = nil
	t.records = make(map[string]Ratios, len(entries))
	for _, e := range entries {
		if _, exists := t.records[e.ID]; exists {
			return fmt.Errorf("duplicate unit id %q", e.ID)
		}
		t.Set(e.ID, e.Ratios)
	}
	return nil
}

// Result holds the three ratio tables produced by one aggregation pass.
type Result struct {
	Books    *Table `json:"books"`
	Chapters *Table `json:"chapters"`
	Verses   *Table `json:"verses"`
}

// TableFor returns the table for the named granularity level
// ("books", "chapters", or "verses").
func (r *Result) TableFor(level string) (*Table, error) {
	switch level {
	case "books":
		return r.Books, nil
	case "chapters":
		return r.Chapters, nil
	case "verses":
		return r.Verses, nil
	default:
		return nil, fmt.Errorf("unknown granularity level: %q", level)
	}
}

// Aggregate runs every compressor over every unit of the corpus at all three
// granularity levels. Any codec failure aborts the whole pass; no partial
// result is returned.
func Aggregate(c *corpus.Corpus) (*Result, error) {
	res := &Result{
		Books:    NewTable(),
		Chapters: NewTable(),
		Verses:   NewTable(),
	}

	for _, book := range c.Books() {
		bookID := book.Name
		ratios, err := compressUnit(bookID, book.Text())
		if err != nil {
			return nil, err
		}
		res.Books.Set(bookID, ratios)

		for _, chapter := range book.Chapters() {
			chapterID := fmt.Sprintf("%s %s", book.Name, chapter.Number)
			ratios, err := compressUnit(chapterID, chapter.Text())
			if err != nil {
				return nil, err
			}
			res.Chapters.Set(chapterID, ratios)

			for _, verse := range chapter.Verses() {
				verseID := fmt.Sprintf("%s %s:%s", book.Name, chapter.Number, verse.Number)
				ratios, err := compressUnit(verseID, verse.Text)
				if err != nil {
					return nil, err
				}
				res.Verses.Set(verseID, ratios)
			}
		}
	}

	return res, nil
}

// compressUnit runs the whole compressor set over one unit's text.
// Zero-length text yields ratio 0 for every algorithm, by convention, so an
// empty verse sorts as a valid value instead of dividing by zero.
func compressUnit(id, text string) (Ratios, error) {
	ratios := make(Ratios, len(compressor.Names()))
	data := []byte(text)

	if len(data) == 0 {
		for _, algo := range compressor.Names() {
			ratios[algo] = 0
		}
		return ratios, nil
	}

	for _, algo := range compressor.Names() {
		compressed, err := compressor.Compress(algo, data)
		if err != nil {
			return nil, errors.NewCompression(string(algo), id, err)
		}
		ratios[algo] = float64(len(compressed)) / float64(len(data))
	}
	return ratios, nil
}

// Mean returns the average ratio across the algorithms present in r,
// iterating the canonical algorithm order. Empty records have mean 0.
func Mean(r Ratios) float64 {
	sum := 0.0
	count := 0
	for _, algo := range compressor.Names() {
		v, ok := r[algo]
		if !ok {
			continue
		}
		sum += v
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// Entry is one ranked row: a unit, its per-algorithm ratios, and their mean.
type Entry struct {
	ID     string
	Ratios Ratios
	Mean   float64
}

// Rank sorts the table's units ascending by mean ratio. The sort is stable:
// units with equal means keep their table insertion order, so ranking is
// reproducible for identical input.
func Rank(t *Table) []Entry {
	entries := make([]Entry, 0, t.Len())
	for _, id := range t.IDs() {
		r, _ := t.Get(id)
		entries = append(entries, Entry{ID: id, Ratios: r, Mean: Mean(r)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Mean < entries[j].Mean
	})
	return entries
}

// TopBottom returns the first k and last k entries of a ranked sequence,
// concatenated. k <= 0 returns the sequence unmodified. The halves are not
// deduplicated: when 2k exceeds the sequence length the overlap produces
// duplicate rows, which is the documented behavior.
func TopBottom(entries []Entry, k int) []Entry {
	if k <= 0 {
		return entries
	}
	if k > len(entries) {
		k = len(entries)
	}
	out := make([]Entry, 0, 2*k)
	out = append(out, entries[:k]...)
	out = append(out, entries[len(entries)-k:]...)
	return out
}
