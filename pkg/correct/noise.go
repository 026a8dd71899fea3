package correct

import (
	"fmt"
	"regexp"
	"strings"
)

// Rules is an ordered set of noise-line patterns.
type Rules struct {
	patterns []*regexp.Regexp
}

var titleBrackets = strings.NewReplacer("《", "", "》", "")

// NewRules compiles patterns. Each pattern is matched against the trimmed
// line and must be anchored by the caller if a full-line match is intended.
func NewRules(patterns ...string) (*Rules, error) {
	r := &Rules{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid noise pattern %q: %w", p, err)
		}
		r.patterns = append(r.patterns, re)
	}
	return r, nil
}

// MustRules is like NewRules but panics on an invalid pattern.
func MustRules(patterns ...string) *Rules {
	r, err := NewRules(patterns...)
	if err != nil {
		panic(err)
	}
	return r
}

// IsNoise reports whether line is a recognition artifact.
func (r *Rules) IsNoise(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, re := range r.patterns {
		if re.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// Clean strips title brackets, drops noise lines and collapses runs of
// blank lines into one. Whitespace-only lines count as blank.
func (r *Rules) Clean(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	prevBlank := false

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if !prevBlank {
				out = append(out, "")
			}
			prevBlank = true
			continue
		}
		// Brackets go first so that a bracketed artifact such as 《DATE》 is
		// matched now rather than on the next pass.
		line = titleBrackets.Replace(line)
		if strings.TrimSpace(line) == "" {
			// the line held nothing but brackets
			if !prevBlank {
				out = append(out, "")
			}
			prevBlank = true
			continue
		}
		if r.IsNoise(line) {
			continue
		}
		out = append(out, line)
		prevBlank = false
	}

	return strings.Join(out, "\n")
}

var defaultRules = MustRules(
	`^DATE\s*$`,
	`^OM\s*$`,
	`^OT\s*$`,
	`^oW\s*$`,
	`^So\s*$`,
	`^os\s*$`,
	`^OF\s*$`,
	`^NOTES\s*$`,
	`^front\s*$`,
	`^成分\s*$`,
	`^虚伪牧\s*$`,
)

// DefaultRules returns the built-in noise rule set.
func DefaultRules() *Rules {
	return defaultRules
}
