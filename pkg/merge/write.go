package merge

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/gardar/bookocr/pkg/logging"
)

// WriteDir clears the Markdown files in dir and writes docs into it. The
// replacement is not atomic: a failure part way leaves a partial set.
// Documents that share a file name overwrite each other; each overwrite is
// logged.
func WriteDir(dir string, docs []Document, log *zap.Logger) ([]string, error) {
	log = logging.OrNop(log)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	existing, err := ListMarkdown(dir)
	if err != nil {
		return nil, err
	}
	for _, path := range existing {
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("failed to clear %s: %w", path, err)
		}
	}

	written := make([]string, 0, len(docs))
	owners := make(map[string]string, len(docs))
	for _, doc := range docs {
		name := doc.FileName()
		if prev, ok := owners[name]; ok {
			log.Warn("file name collision, earlier book overwritten",
				zap.String("file", name), zap.String("overwritten", prev), zap.String("title", doc.Title))
		}
		owners[name] = doc.Title

		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(doc.Markdown()), 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
