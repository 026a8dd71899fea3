package merge

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"go.uber.org/zap"

	"github.com/gardar/bookocr/pkg/excerpt"
	"github.com/gardar/bookocr/pkg/logging"
)

var markdown = goldmark.New()

// ListMarkdown returns the Markdown files directly under dir in lexical order.
func ListMarkdown(dir string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), "*"+excerpt.MarkdownExt, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	sort.Strings(matches)
	for i, m := range matches {
		matches[i] = filepath.Join(dir, m)
	}
	return matches, nil
}

// ReadDir loads every Markdown file in dir as one fragment. Files that cannot
// be read are logged and skipped.
func ReadDir(dir string, log *zap.Logger) (*excerpt.Store, error) {
	log = logging.OrNop(log)

	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", dir, err)
	}
	paths, err := ListMarkdown(dir)
	if err != nil {
		return nil, err
	}

	store := excerpt.NewStore()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn("skipping unreadable file", zap.String("file", path), zap.Error(err))
			continue
		}
		stem := strings.TrimSuffix(filepath.Base(path), excerpt.MarkdownExt)
		title, body := ParseFragment(string(data), stem)
		store.Add(title, excerpt.Fragment{Source: filepath.Base(path), Text: body})
	}
	return store, nil
}

// ParseFragment splits a Markdown file into its title and body. When the first
// line is a level-1 heading its text is the title and the line is dropped from
// the body; otherwise fallback is the title and the whole content is the body.
func ParseFragment(content, fallback string) (title, body string) {
	first, rest, _ := strings.Cut(content, "\n")
	if heading, ok := headingText(first); ok {
		return heading, trimBlankLines(rest)
	}
	return fallback, trimBlankLines(content)
}

// headingText returns the raw inline text of line if it is a level-1 ATX heading.
func headingText(line string) (string, bool) {
	source := []byte(line)
	doc := markdown.Parser().Parse(text.NewReader(source))

	heading, ok := doc.FirstChild().(*ast.Heading)
	if !ok || heading.Level != 1 || heading.Lines().Len() == 0 {
		return "", false
	}
	var b strings.Builder
	for i := 0; i < heading.Lines().Len(); i++ {
		seg := heading.Lines().At(i)
		b.Write(seg.Value(source))
	}
	title := strings.TrimSpace(b.String())
	return title, title != ""
}
