// Package correct repairs known handwriting-recognition mistakes in excerpt text.
//
// It holds three fixed lookup tables, each built once and never mutated:
//
// - Table: canonical text mapped to the erroneous forms OCR tends to produce for it
// - title corrections: erroneous book titles mapped to canonical titles
// - Rules: patterns for lines that are scanning artifacts rather than content
//
// Replacement is literal and unconditional. An erroneous form that also occurs
// inside correct text is rewritten anyway, and entries are applied in table
// order, so an earlier entry can consume text a later entry would have matched.
// Both behaviors are known limitations kept for output compatibility.
package correct

import "strings"

// Entry maps one canonical string to the erroneous forms that should become it.
type Entry struct {
	Canonical string
	Errors    []string
}

// Table is an ordered list of correction entries.
type Table struct {
	entries []Entry
}

// Result is the outcome of applying a Table to a document.
type Result struct {
	Text    string
	Changes int // differing rune positions, diagnostic only
}

// NewTable copies entries into an immutable Table.
func NewTable(entries ...Entry) *Table {
	t := &Table{entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		t.entries = append(t.entries, Entry{
			Canonical: e.Canonical,
			Errors:    append([]string(nil), e.Errors...),
		})
	}
	return t
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Apply replaces every erroneous form with its canonical form.
func (t *Table) Apply(text string) Result {
	corrected := text
	for _, e := range t.entries {
		for _, wrong := range e.Errors {
			if wrong == "" || wrong == e.Canonical {
				continue
			}
			if strings.Contains(corrected, wrong) {
				corrected = strings.ReplaceAll(corrected, wrong, e.Canonical)
			}
		}
	}
	return Result{Text: corrected, Changes: CountChanges(text, corrected)}
}

// CountChanges compares a and b rune by rune up to the shorter length and
// counts positions that differ. Length changes past that point are not counted.
func CountChanges(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n := len(ra)
	if len(rb) < n {
		n = len(rb)
	}
	changes := 0
	for i := 0; i < n; i++ {
		if ra[i] != rb[i] {
			changes++
		}
	}
	return changes
}

var defaultTable = NewTable(
	// digits misread as letters
	Entry{Canonical: "0", Errors: []string{"O"}},
	Entry{Canonical: "1", Errors: []string{"l"}},

	Entry{Canonical: "活着", Errors: []string{"话着"}},
	Entry{Canonical: "官运亨通", Errors: []string{"官运享通"}},
	Entry{Canonical: "战功赫赫", Errors: []string{"战功赫的"}},
	// Shadowed: the first entry turns "逾走规越矩" into "逾越矩" before
	// the second one runs.
	Entry{Canonical: "逾越", Errors: []string{"逾走规越"}},
	Entry{Canonical: "逾矩", Errors: []string{"逾走规越矩"}},
	Entry{Canonical: "卑鄙", Errors: []string{"卑都"}},

	Entry{Canonical: "李纨", Errors: []string{"李仇"}},
	Entry{Canonical: "红楼梦", Errors: []string{"江楼梦"}},
	Entry{Canonical: "好了歌", Errors: []string{"好妨佳节"}},
)

// DefaultTable returns the built-in correction table.
func DefaultTable() *Table {
	return defaultTable
}
