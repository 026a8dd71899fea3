package recognize

import (
	"context"

	"github.com/gardar/bookocr/pkg/gdocai"
)

// DocAI recognizes images with a Google Document AI OCR processor.
type DocAI struct {
	cfg gdocai.Config
}

// NewDocAI checks the processor settings and returns the engine.
func NewDocAI(cfg gdocai.Config) (*DocAI, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &DocAI{cfg: cfg}, nil
}

// Recognize implements Recognizer.
func (d *DocAI) Recognize(ctx context.Context, path string) ([]string, error) {
	lines, err := gdocai.RecognizeFile(ctx, path, &d.cfg)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrNoText
	}
	return lines, nil
}
