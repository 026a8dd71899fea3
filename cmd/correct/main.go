// correct applies the OCR correction table to selected books in place.
//
// Each listed book is read from <output_dir>/<title>.md, corrected and saved
// when anything changed. Books without a file are reported and skipped.
//
// Usage:
//
//	correct [-config bookocr.yaml] [title ...]
//
// Titles given as arguments replace the books_to_correct list from the
// configuration (月亮与六便士, 红楼梦, 围城, 人性的枷锁 and 活着 by default).
package main

import (
	"flag"

	"go.uber.org/zap"

	"github.com/gardar/bookocr/pkg/config"
	"github.com/gardar/bookocr/pkg/correct"
	"github.com/gardar/bookocr/pkg/logging"
	"github.com/gardar/bookocr/pkg/merge"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML file overriding the built-in settings")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.New(logging.LevelInfo).Fatal("failed to load config", zap.Error(err))
	}
	log := logging.New(cfg.LogLevel)
	defer log.Sync() //nolint:errcheck

	books := cfg.BooksToCorrect
	if flag.NArg() > 0 {
		books = flag.Args()
	}

	changes := merge.CorrectBooks(cfg.OutputDir, books, correct.DefaultTable(), log)
	saved := 0
	for _, c := range changes {
		if c.Saved {
			saved++
		}
	}
	log.Info("done", zap.Int("books", len(books)), zap.Int("modified", saved))
}
