// Package gdocai recognizes text in page images with Google Document AI.
//
// Document AI's OCR processor handles handwriting, which makes it the default
// engine for photographed notebook pages. The package sends one image per
// request and returns the recognized lines in reading order.
//
// Main Functions:
//
// - ProcessDocument: sends image bytes to Document AI and returns the raw Document proto
// - Lines: recognized line texts of a Document proto, page by page
// - RecognizeFile: reads an image from disk and returns its lines
// - ToJSON: debug dump of a response
//
// Usage Requirements:
//
// - Google Cloud project with Document AI API enabled
// - Document AI processor configured for OCR
// - Authentication via GOOGLE_APPLICATION_CREDENTIALS environment variable
package gdocai

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config identifies the Document AI processor to use.
type Config struct {
	ProjectID   string `yaml:"project_id"`
	Location    string `yaml:"location"`
	ProcessorID string `yaml:"processor_id"`
	// CredentialsFile overrides GOOGLE_APPLICATION_CREDENTIALS when set.
	CredentialsFile string `yaml:"credentials_file"`
	// DebugDir, when set, receives the raw JSON response for every image.
	DebugDir string `yaml:"debug_dir"`
}

// Validate reports missing processor settings.
func (c *Config) Validate() error {
	var missing []string
	if c.ProjectID == "" {
		missing = append(missing, "project_id")
	}
	if c.Location == "" {
		missing = append(missing, "location")
	}
	if c.ProcessorID == "" {
		missing = append(missing, "processor_id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("document AI config is missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// MimeType returns the MIME type Document AI expects for an image path.
func MimeType(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg", nil
	case ".png":
		return "image/png", nil
	case ".tif", ".tiff":
		return "image/tiff", nil
	case ".gif":
		return "image/gif", nil
	case ".bmp":
		return "image/bmp", nil
	case ".webp":
		return "image/webp", nil
	case ".pdf":
		return "application/pdf", nil
	default:
		return "", fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

// RecognizeFile processes the image at path and returns its recognized lines.
func RecognizeFile(ctx context.Context, path string, cfg *Config) ([]string, error) {
	mimeType, err := MimeType(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	doc, err := ProcessDocument(ctx, content, mimeType, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.DebugDir != "" {
		if err := writeDebug(cfg.DebugDir, path, doc); err != nil {
			return nil, err
		}
	}
	return Lines(doc), nil
}

func writeDebug(dir, imagePath string, doc any) error {
	data, err := ToJSON(doc)
	if err != nil {
		return fmt.Errorf("failed to convert API response to JSON: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create debug directory: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath)) + ".json"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0644); err != nil {
		return fmt.Errorf("failed to write API response JSON: %w", err)
	}
	return nil
}
