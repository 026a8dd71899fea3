// Package excerpt turns recognized excerpt photos into per-book text groups.
//
// A Capture is the recognized text of one photographed page. The Extractor
// guesses which book a capture belongs to by running an ordered list of
// matchers over its text, and Group collects captures into a Store keyed by
// title. Captures with no recognizable title get their own placeholder title
// (Unknown_1, Unknown_2, ...) numbered in processing order.
//
// Main Functions:
//
// - DefaultExtractor: bracketed titles first, then a lexicon of known titles
// - Group: builds a Store from captures, assigning placeholder titles
// - LoadResults / SaveResults: the intermediate results file
// - WriteMarkdown: one raw Markdown file per title
package excerpt

// Capture is the recognized text of one source image.
type Capture struct {
	Name  string // image file name, e.g. IMG_7781.jpg
	Text  string // recognized lines joined by "\n"
	Title string // extracted title, empty when none matched
}

// Fragment is one block of text belonging to a book.
type Fragment struct {
	Source string // image or Markdown file the text came from
	Text   string
}
