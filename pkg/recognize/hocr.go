package recognize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gardar/bookocr/pkg/hocr"
)

// HOCRConfig locates pre-computed hOCR files.
type HOCRConfig struct {
	// Dir holds the .hocr files; empty means next to each image.
	Dir string `yaml:"dir"`
	// Ext is the sidecar extension, ".hocr" by default.
	Ext string `yaml:"ext"`
	// MinConfidence drops words scored below it (x_wconf, 0-100). Zero keeps all.
	MinConfidence float64 `yaml:"min_confidence"`
}

// HOCR reads recognized text from an hOCR file named after the image, e.g.
// IMG_7781.hocr for IMG_7781.jpg.
type HOCR struct {
	cfg HOCRConfig
}

// NewHOCR returns the engine.
func NewHOCR(cfg HOCRConfig) *HOCR {
	if cfg.Ext == "" {
		cfg.Ext = ".hocr"
	}
	return &HOCR{cfg: cfg}
}

// SidecarPath returns the hOCR path used for an image.
func (h *HOCR) SidecarPath(imagePath string) string {
	base := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath)) + h.cfg.Ext
	if h.cfg.Dir != "" {
		return filepath.Join(h.cfg.Dir, base)
	}
	return filepath.Join(filepath.Dir(imagePath), base)
}

// Recognize implements Recognizer.
func (h *HOCR) Recognize(_ context.Context, path string) ([]string, error) {
	sidecar := h.SidecarPath(path)
	data, err := os.ReadFile(sidecar)
	if err != nil {
		return nil, fmt.Errorf("failed to read hOCR file: %w", err)
	}
	doc, err := hocr.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(sidecar), err)
	}
	for _, page := range doc.Pages {
		if page.ImageName != "" && stem(page.ImageName) != stem(path) {
			return nil, fmt.Errorf("%s describes %s, not %s",
				filepath.Base(sidecar), page.ImageName, filepath.Base(path))
		}
	}

	lines := doc.ConfidentLines(h.cfg.MinConfidence)
	if len(lines) == 0 {
		return nil, ErrNoText
	}
	return lines, nil
}

// stem is the file name without directory or extension. hOCR files may carry
// paths from another system, so both separators are accepted.
func stem(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}
