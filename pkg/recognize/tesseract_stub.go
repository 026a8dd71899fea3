//go:build !tesseract

package recognize

import "errors"

// NewTesseract reports that this binary was built without Tesseract support.
func NewTesseract(TesseractConfig) (Recognizer, error) {
	return nil, errors.New("tesseract engine not available: rebuild with -tags tesseract")
}
