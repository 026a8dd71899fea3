// bookpdf renders every merged book in the output directory as a PDF.
//
// Usage:
//
//	bookpdf [-config bookocr.yaml] [-font NotoSansSC-Regular.ttf] [-overwrite]
//
// Chinese text needs a TrueType font with CJK coverage, given by -font or
// pdf.font_path in the configuration. Books that cannot be rendered are
// reported and skipped. PDFs go to pdf/ unless pdf.dir says otherwise.
package main

import (
	"flag"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/gardar/bookocr/pkg/bookpdf"
	"github.com/gardar/bookocr/pkg/config"
	"github.com/gardar/bookocr/pkg/logging"
	"github.com/gardar/bookocr/pkg/merge"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML file overriding the built-in settings")
	fontPath := flag.String("font", "", "TrueType font for the PDF text (overrides pdf.font_path)")
	overwrite := flag.Bool("overwrite", false, "Overwrite existing PDFs")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.New(logging.LevelInfo).Fatal("failed to load config", zap.Error(err))
	}
	log := logging.New(cfg.LogLevel)
	defer log.Sync() //nolint:errcheck

	if *fontPath != "" {
		cfg.PDF.FontPath = *fontPath
	}
	opts := bookpdf.Options{
		Font: bookpdf.FontConfig{Path: cfg.PDF.FontPath, Size: cfg.PDF.FontSize},
	}

	// Reading without merging keeps the files exactly as refine left them.
	store, err := merge.ReadDir(cfg.OutputDir, log)
	if err != nil {
		log.Fatal("failed to read Markdown", zap.String("dir", cfg.OutputDir), zap.Error(err))
	}
	if err := os.MkdirAll(cfg.PDF.Dir, 0755); err != nil {
		log.Fatal("failed to create PDF directory", zap.String("dir", cfg.PDF.Dir), zap.Error(err))
	}

	rendered := 0
	for _, title := range store.Titles() {
		out := filepath.Join(cfg.PDF.Dir, bookpdf.FileName(title))
		if _, err := os.Stat(out); err == nil && !*overwrite {
			log.Warn("PDF exists, use -overwrite to replace it", zap.String("file", out))
			continue
		}

		doc := merge.Document{Title: title}
		for _, f := range store.Fragments(title) {
			doc.Sources = append(doc.Sources, f.Source)
			if doc.Body != "" {
				doc.Body += "\n\n"
			}
			doc.Body += f.Text
		}

		data, err := bookpdf.Render(doc, opts)
		if err != nil {
			log.Error("failed to render", zap.String("title", title), zap.Error(err))
			continue
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			log.Error("failed to write PDF", zap.String("file", out), zap.Error(err))
			continue
		}
		log.Info("rendered", zap.String("title", title), zap.String("file", out))
		rendered++
	}
	log.Info("done", zap.Int("books", rendered), zap.String("dir", cfg.PDF.Dir))
}
