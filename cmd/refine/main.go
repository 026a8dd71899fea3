// refine merges and cleans the Markdown files written by recognize.
//
// Files whose titles are known misreadings of the same book (江楼梦 for 红楼梦,
// for example) are merged in file name order, known OCR errors are corrected,
// and artifact lines such as DATE or NOTES printed on the notebook paper are
// removed. The output directory is then cleared and rewritten with one file per
// book. Running refine again on its own output changes nothing.
//
// Usage:
//
//	refine [-config bookocr.yaml]
//
// Without -config the Markdown directory is final/.
package main

import (
	"flag"

	"go.uber.org/zap"

	"github.com/gardar/bookocr/pkg/config"
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

	store, err := merge.ReadDir(cfg.OutputDir, log)
	if err != nil {
		log.Fatal("failed to read Markdown", zap.String("dir", cfg.OutputDir), zap.Error(err))
	}
	log.Info("read fragments", zap.Int("titles", store.Len()), zap.String("dir", cfg.OutputDir))

	docs := merge.Merge(store, merge.Options{})
	for _, doc := range docs {
		for _, title := range doc.Misreadings {
			log.Info("title corrected", zap.String("from", title), zap.String("to", doc.Title))
		}
		log.Info("merged",
			zap.String("title", doc.Title),
			zap.Strings("sources", doc.Sources),
			zap.Int("corrections", doc.Changes))
	}

	written, err := merge.WriteDir(cfg.OutputDir, docs, log)
	if err != nil {
		log.Fatal("failed to write Markdown", zap.String("dir", cfg.OutputDir), zap.Error(err))
	}
	log.Info("done", zap.Int("books", len(written)), zap.String("dir", cfg.OutputDir))
}
