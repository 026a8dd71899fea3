package merge

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/gardar/bookocr/pkg/correct"
	"github.com/gardar/bookocr/pkg/excerpt"
	"github.com/gardar/bookocr/pkg/logging"
)

// BookChange reports one in-place correction.
type BookChange struct {
	Title   string
	Path    string
	Changes int
	Saved   bool // false when the text was already clean
}

// CorrectFile applies table to the whole Markdown file at path and rewrites
// it when the text changed.
func CorrectFile(path string, table *correct.Table) (BookChange, error) {
	change := BookChange{Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return change, fmt.Errorf("failed to read %s: %w", path, err)
	}

	res := table.Apply(string(data))
	change.Changes = res.Changes
	if res.Text == string(data) {
		return change, nil
	}
	if err := os.WriteFile(path, []byte(res.Text), 0644); err != nil {
		return change, fmt.Errorf("failed to write %s: %w", path, err)
	}
	change.Saved = true
	return change, nil
}

// CorrectBooks runs CorrectFile on the file of each listed title in dir.
// Missing or unwritable books are logged and skipped.
func CorrectBooks(dir string, titles []string, table *correct.Table, log *zap.Logger) []BookChange {
	log = logging.OrNop(log)
	if table == nil {
		table = correct.DefaultTable()
	}

	var changes []BookChange
	for _, title := range titles {
		path := filepath.Join(dir, excerpt.FileName(title))
		change, err := CorrectFile(path, table)
		change.Title = title
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Warn("book not found", zap.String("book", title), zap.String("file", path))
			} else {
				log.Error("correction failed", zap.String("book", title), zap.Error(err))
			}
			continue
		}
		log.Info("book corrected",
			zap.String("book", title),
			zap.Int("changes", change.Changes),
			zap.Bool("saved", change.Saved))
		changes = append(changes, change)
	}
	return changes
}
