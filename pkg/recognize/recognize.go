// Package recognize is the boundary to the external handwriting recognizers.
//
// Every engine implements Recognizer. Callers that want the pipeline's
// best-effort behavior go through Text, which turns any failure into an empty
// result and a log line naming the image, so one bad photo never stops a run.
//
// Engines:
//
// - docai: Google Document AI OCR processor (default)
// - hocr: reads <image>.hocr files produced beforehand by any hOCR-emitting tool
// - gemini: transcription by a Gemini vision model
// - tesseract: local Tesseract through gosseract, only in builds with the tesseract tag
package recognize

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/gardar/bookocr/pkg/gdocai"
	"github.com/gardar/bookocr/pkg/logging"
)

// Engine names accepted by New.
const (
	EngineDocAI     = "docai"
	EngineHOCR      = "hocr"
	EngineGemini    = "gemini"
	EngineTesseract = "tesseract"
)

// ErrNoText is returned by engines that ran but found nothing to read.
var ErrNoText = errors.New("no text recognized")

// Recognizer extracts text lines from one image.
type Recognizer interface {
	Recognize(ctx context.Context, path string) ([]string, error)
}

// Config selects and configures an engine.
type Config struct {
	Engine     string          `yaml:"engine"`
	DocumentAI gdocai.Config   `yaml:"document_ai"`
	HOCR       HOCRConfig      `yaml:"hocr"`
	Gemini     GeminiConfig    `yaml:"gemini"`
	Tesseract  TesseractConfig `yaml:"tesseract"`
}

// New builds the engine named by cfg.Engine.
func New(ctx context.Context, cfg Config) (Recognizer, error) {
	var (
		r   Recognizer
		err error
	)
	switch cfg.Engine {
	case EngineDocAI, "":
		r, err = NewDocAI(cfg.DocumentAI)
	case EngineHOCR:
		r = NewHOCR(cfg.HOCR)
	case EngineGemini:
		r, err = NewGemini(ctx, cfg.Gemini)
	case EngineTesseract:
		r, err = NewTesseract(cfg.Tesseract)
	default:
		err = fmt.Errorf("unknown recognition engine %q", cfg.Engine)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Text runs r on the image at path and joins the lines with "\n". Any error,
// panic, or empty result is logged and yields "".
func Text(ctx context.Context, r Recognizer, path string, log *zap.Logger) (text string) {
	log = logging.OrNop(log)
	image := zap.String("image", filepath.Base(path))

	defer func() {
		if p := recover(); p != nil {
			log.Error("recognizer panicked", image, zap.Any("panic", p))
			text = ""
		}
	}()

	if r == nil {
		log.Error("no recognizer configured", image)
		return ""
	}

	lines, err := r.Recognize(ctx, path)
	if err != nil {
		log.Warn("recognition failed", image, zap.Error(err))
		return ""
	}

	text = strings.Join(lines, "\n")
	if strings.TrimSpace(text) == "" {
		log.Warn("recognition failed", image, zap.Error(ErrNoText))
		return ""
	}
	return text
}

// splitLines breaks engine output into trimmed, non-empty lines.
func splitLines(s string) []string {
	var lines []string
	for _, l := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
