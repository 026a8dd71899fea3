// Package merge combines grouped excerpt text into one cleaned Markdown
// document per canonical book title.
//
// Fragments whose titles normalize to the same canonical title are joined in
// capture order, separated by a blank line. The joined body goes through the
// noise filter first, so artifacts are matched in their recognized form, and
// then through the correction table. Merging a directory of previously merged
// output yields byte-identical documents.
package merge

import (
	"strings"

	"github.com/gardar/bookocr/pkg/correct"
	"github.com/gardar/bookocr/pkg/excerpt"
)

// Document is one merged book.
type Document struct {
	Title   string   // canonical title
	Body    string   // cleaned, corrected text without the heading
	Sources []string // fragment sources in merge order
	Changes int      // characters changed by the correction table
	// Misreadings are known erroneous titles whose fragments were merged in.
	Misreadings []string
}

// Markdown renders the document with a single top-level heading.
func (d Document) Markdown() string {
	return "# " + d.Title + "\n\n" + d.Body + "\n"
}

// FileName is the Markdown file name the document is written under.
func (d Document) FileName() string {
	return excerpt.FileName(d.Title)
}

// Options selects the tables used by Merge. Nil fields use the defaults.
type Options struct {
	Table *correct.Table
	Rules *correct.Rules
}

func (o Options) withDefaults() Options {
	if o.Table == nil {
		o.Table = correct.DefaultTable()
	}
	if o.Rules == nil {
		o.Rules = correct.DefaultRules()
	}
	return o
}

// Merge produces one Document per canonical title, in the order each
// canonical title first appears in store.
func Merge(store *excerpt.Store, opts Options) []Document {
	opts = opts.withDefaults()

	canonical := excerpt.NewStore()
	misread := make(map[string][]string)
	for _, title := range store.Titles() {
		normalized := correct.NormalizeTitle(title)
		if correct.IsKnownMisreading(title) {
			misread[normalized] = append(misread[normalized], title)
		}
		for _, f := range store.Fragments(title) {
			canonical.Add(normalized, f)
		}
	}

	docs := make([]Document, 0, canonical.Len())
	for _, title := range canonical.Titles() {
		var bodies, sources []string
		for _, f := range canonical.Fragments(title) {
			sources = append(sources, f.Source)
			if body := trimBlankLines(f.Text); body != "" {
				bodies = append(bodies, body)
			}
		}

		cleaned := opts.Rules.Clean(strings.Join(bodies, "\n\n"))
		result := opts.Table.Apply(cleaned)

		docs = append(docs, Document{
			Title:       title,
			Body:        trimBlankLines(result.Text),
			Sources:     sources,
			Changes:     result.Changes,
			Misreadings: misread[title],
		})
	}
	return docs
}

// trimBlankLines removes leading and trailing lines that hold only
// whitespace. Indentation of the first content line is kept.
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
