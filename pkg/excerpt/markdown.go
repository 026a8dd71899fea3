package excerpt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/gardar/bookocr/pkg/logging"
)

// MarkdownExt is the extension of every generated book file.
const MarkdownExt = ".md"

var unsafeNameChars = strings.NewReplacer(
	"<", "", ">", "", ":", "", `"`, "", "/", "", `\`, "", "|", "", "?", "", "*", "",
	"《", "", "》", "",
)

// SafeName strips characters that are not portable in file names from a title.
func SafeName(title string) string {
	name := strings.TrimSpace(unsafeNameChars.Replace(title))
	if name == "" {
		return "untitled"
	}
	return name
}

// FileName returns the Markdown file name for a title.
func FileName(title string) string {
	return SafeName(title) + MarkdownExt
}

// RenderGroup formats the raw fragments of one title as Markdown: a heading
// followed by each fragment and a blank line.
func RenderGroup(title string, fragments []Fragment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	for _, f := range fragments {
		b.WriteString(f.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

// WriteMarkdown writes one raw Markdown file per title in store into dir and
// returns the written paths in title order. Titles that share a file name
// overwrite each other; each overwrite is logged.
func WriteMarkdown(dir string, store *Store, log *zap.Logger) ([]string, error) {
	log = logging.OrNop(log)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	owners := make(map[string]string)
	for _, title := range store.Titles() {
		name := FileName(title)
		if prev, ok := owners[name]; ok {
			log.Warn("file name collision, earlier book overwritten",
				zap.String("file", name), zap.String("overwritten", prev), zap.String("title", title))
		}
		owners[name] = title

		path := filepath.Join(dir, name)
		content := RenderGroup(title, store.Fragments(title))
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
