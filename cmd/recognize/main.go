// recognize runs handwriting OCR over the photographed excerpt pages and
// writes one raw Markdown file per book.
//
// Every image is sent to the configured recognition engine. The book title is
// taken from the first 《》 or 〈〉 title in the recognized text, or from a short
// list of known titles; pages without one are grouped under Unknown_1,
// Unknown_2 and so on. All recognized text is also saved to the results file
// so later stages can be rerun without calling the engine again.
//
// Usage:
//
//	recognize [-config bookocr.yaml]
//
// Without -config the built-in defaults are used: images photo_jpg/IMG_7781.jpg
// through IMG_7817.jpg (IMG_7801.jpg skipped), results in ocr_results.yaml and
// Markdown in final/.
//
// Environment:
//
//	BOOKOCR_ENGINE                  docai (default), hocr, gemini or tesseract
//	GOOGLE_APPLICATION_CREDENTIALS  service account for Document AI
//	DOCAI_PROJECT_ID                Document AI project
//	DOCAI_PROCESSOR_ID              Document AI OCR processor
//	GEMINI_API_KEY                  key for the gemini engine
//
// Example:
//
//	export GOOGLE_APPLICATION_CREDENTIALS=/path/to/credentials.json
//	DOCAI_PROJECT_ID=my-project DOCAI_PROCESSOR_ID=abc123 recognize
//	BOOKOCR_ENGINE=hocr recognize -config bookocr.yaml
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/gardar/bookocr/pkg/config"
	"github.com/gardar/bookocr/pkg/excerpt"
	"github.com/gardar/bookocr/pkg/logging"
	"github.com/gardar/bookocr/pkg/recognize"
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

	ctx := context.Background()
	images, err := cfg.Images()
	if err != nil {
		log.Fatal("failed to list images", zap.Error(err))
	}

	engine, err := recognize.New(ctx, cfg.Recognize)
	if err != nil {
		// Every page then comes back empty and is skipped.
		log.Error("recognition engine unavailable", zap.String("engine", cfg.Recognize.Engine), zap.Error(err))
	}

	extractor := excerpt.DefaultExtractor()
	results := excerpt.NewResults(cfg.Recognize.Engine)
	log.Info("starting recognition",
		zap.String("run", results.RunID),
		zap.String("engine", cfg.Recognize.Engine),
		zap.Int("images", len(images)))

	for i, path := range images {
		name := filepath.Base(path)
		if _, err := os.Stat(path); err != nil {
			log.Warn("image not found", zap.String("image", name))
			continue
		}

		log.Info("recognizing", zap.String("image", name), zap.Int("n", i+1), zap.Int("of", len(images)))
		text := recognize.Text(ctx, engine, path, log)
		if text == "" {
			// already logged by recognize.Text; a failed page gets no placeholder
			continue
		}
		capture := excerpt.Capture{Name: name, Text: text}
		if title, ok := extractor.Extract(text); ok {
			capture.Title = title
			log.Info("found title", zap.String("image", name), zap.String("title", title))
		}
		results.Add(capture)
	}

	if err := excerpt.SaveResults(cfg.ResultsFile, results); err != nil {
		log.Error("failed to save results", zap.String("file", cfg.ResultsFile), zap.Error(err))
	}

	store := excerpt.Group(results.Captures)
	written, err := excerpt.WriteMarkdown(cfg.OutputDir, store, log)
	if err != nil {
		log.Fatal("failed to write Markdown", zap.String("dir", cfg.OutputDir), zap.Error(err))
	}
	for _, title := range store.Titles() {
		log.Info("book", zap.String("title", title), zap.Int("fragments", len(store.Fragments(title))))
	}
	log.Info("done", zap.Int("books", len(written)), zap.String("dir", cfg.OutputDir))
}
