//go:build tesseract

package recognize

import (
	"context"
	"fmt"
	"os"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract runs a local Tesseract install. It needs libtesseract and the
// chi_sim traineddata, and is only compiled with -tags tesseract.
type Tesseract struct {
	cfg TesseractConfig
}

// NewTesseract checks the language and page segmentation settings against the
// local install.
func NewTesseract(cfg TesseractConfig) (*Tesseract, error) {
	cfg = cfg.withDefaults()
	client, err := newTesseractClient(cfg)
	if err != nil {
		return nil, err
	}
	client.Close()
	return &Tesseract{cfg: cfg}, nil
}

func newTesseractClient(cfg TesseractConfig) (*gosseract.Client, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage(cfg.Language); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language %q: %w", cfg.Language, err)
	}
	if cfg.PageSegMode > 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(cfg.PageSegMode)); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set page segmentation mode %d: %w", cfg.PageSegMode, err)
		}
	}
	return client, nil
}

// Recognize implements Recognizer.
func (t *Tesseract) Recognize(ctx context.Context, path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client, err := newTesseractClient(t.cfg)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if err := client.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("tesseract failed: %w", err)
	}

	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, ErrNoText
	}
	return lines, nil
}
