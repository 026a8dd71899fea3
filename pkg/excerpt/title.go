package excerpt

import (
	"regexp"
	"strings"
)

// Matcher looks for a title in text. matched reports whether the matcher
// fired at all; title may be empty even when it did.
type Matcher func(text string) (title string, matched bool)

// PatternMatcher returns a Matcher yielding the first capture group of the
// first match of re, or the whole match when re has no groups.
func PatternMatcher(re *regexp.Regexp) Matcher {
	return func(text string) (string, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		if len(m) > 1 {
			return m[1], true
		}
		return m[0], true
	}
}

// Extractor evaluates matchers in priority order.
type Extractor struct {
	matchers []Matcher
}

// NewExtractor builds an Extractor from matchers, highest priority first.
func NewExtractor(matchers ...Matcher) *Extractor {
	return &Extractor{matchers: append([]Matcher(nil), matchers...)}
}

// Extract returns the title found by the first matcher that fires. A matcher
// that fires with a blank title (e.g. "《》" or "《 》") ends the search with no
// title. Titles are returned trimmed.
func (e *Extractor) Extract(text string) (string, bool) {
	for _, m := range e.matchers {
		if title, ok := m(text); ok {
			title = strings.TrimSpace(title)
			return title, title != ""
		}
	}
	return "", false
}

var (
	bracketTitle = regexp.MustCompile(`[《〈](.*?)[》〉]`)
	knownTitle   = regexp.MustCompile(`(红楼梦|月亮与六便士|围城|.*?集)`)

	defaultExtractor = NewExtractor(
		PatternMatcher(bracketTitle),
		PatternMatcher(knownTitle),
	)
)

// DefaultExtractor prefers titles in book-title brackets over the lexicon of
// known titles. The lexicon also accepts any line prefix ending in 集.
func DefaultExtractor() *Extractor {
	return defaultExtractor
}
