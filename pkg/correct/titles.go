package correct

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var titleCorrections = map[string]string{
	"江楼梦":    "红楼梦",
	"话着":     "活着",
	"富爸爸穷龟爸": "富爸爸穷爸爸",
	"汉谈拉比法典": "汉谟拉比法典",
	"Ų威的森林":  "挪威的森林",
}

// NormalizeTitle returns the canonical form of a book title. Titles with no
// known correction come back trimmed and NFC-normalized but otherwise as given.
func NormalizeTitle(title string) string {
	t := norm.NFC.String(strings.TrimSpace(title))
	if fixed, ok := titleCorrections[t]; ok {
		return fixed
	}
	return t
}

// IsKnownMisreading reports whether title is a recorded erroneous title.
func IsKnownMisreading(title string) bool {
	_, ok := titleCorrections[norm.NFC.String(strings.TrimSpace(title))]
	return ok
}
