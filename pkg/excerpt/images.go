package excerpt

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// NumberedImages returns the names IMG_<start>.jpg through IMG_<end>.jpg,
// leaving out any listed in skip. Existence is not checked.
func NumberedImages(start, end int, skip []string) []string {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[s] = true
	}

	var names []string
	for n := start; n <= end; n++ {
		name := fmt.Sprintf("IMG_%d.jpg", n)
		if skipped[name] {
			continue
		}
		names = append(names, name)
	}
	return names
}

// GlobImages returns image paths under dir matching a doublestar pattern,
// relative to dir and in lexical order.
func GlobImages(dir, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid image pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)
	for i, m := range matches {
		matches[i] = filepath.FromSlash(m)
	}
	return matches, nil
}
