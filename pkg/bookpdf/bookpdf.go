// Package bookpdf renders merged books as PDF files.
//
// Each book starts on a new A4 page with its title as a heading, followed by
// the body paragraph by paragraph. Chinese text needs a TrueType font with CJK
// coverage (Options.Font.Path); without one the core Helvetica font is used,
// which only covers Windows-1252.
package bookpdf

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/gardar/bookocr/pkg/excerpt"
	"github.com/gardar/bookocr/pkg/merge"
)

// Ext is the extension of rendered files.
const Ext = ".pdf"

// ErrEncoding is returned when too much text cannot be shown in a core font.
var ErrEncoding = errors.New("text not representable in core font")

// FontConfig selects the body font.
type FontConfig struct {
	Name  string  // family name registered with the PDF
	Path  string  // TrueType file; empty selects the core font Name
	Size  float64 // body size in points; the title is 1.5 times larger
	Style string  // "", "B", "I" or "BI"; core fonts only
}

// DefaultFont is the core font used when no TrueType file is configured.
var DefaultFont = FontConfig{
	Name: "Helvetica",
	Size: 12,
}

// Options configures Render.
type Options struct {
	Font FontConfig
	// Author is written to the document metadata when set.
	Author string
}

func (o Options) withDefaults() Options {
	if o.Font.Size <= 0 {
		o.Font.Size = DefaultFont.Size
	}
	if o.Font.Name == "" {
		if o.Font.Path != "" {
			o.Font.Name = "body"
		} else {
			o.Font.Name = DefaultFont.Name
		}
	}
	return o
}

// FileName is the PDF file name a book is written under.
func FileName(title string) string {
	return excerpt.SafeName(title) + Ext
}

// Render lays out doc and returns the PDF bytes.
func Render(doc merge.Document, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	font := opts.Font

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(56, 56, 56)
	pdf.SetAutoPageBreak(true, 56)
	pdf.SetTitle(doc.Title, true)
	if opts.Author != "" {
		pdf.SetAuthor(opts.Author, true)
	}

	encode := func(s string) (string, bool) { return s, true }
	if font.Path != "" {
		if _, err := os.Stat(font.Path); err != nil {
			return nil, fmt.Errorf("font file: %w", err)
		}
		pdf.AddUTF8Font(font.Name, "", font.Path)
		font.Style = ""
	} else {
		encode = encodeCore
	}

	pdf.AddPage()
	lineHeight := font.Size * 1.5
	width, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	textWidth := width - left - right

	lines, failed := 0, 0
	write := func(size float64, text string) {
		lines++
		encoded, ok := encode(text)
		if !ok {
			failed++
		}
		pdf.SetFont(font.Name, font.Style, size)
		pdf.MultiCell(textWidth, size*1.5, encoded, "", "L", false)
	}

	write(font.Size*1.5, doc.Title)
	pdf.Ln(lineHeight / 2)
	for _, para := range strings.Split(doc.Body, "\n") {
		if strings.TrimSpace(para) == "" {
			pdf.Ln(lineHeight / 2)
			continue
		}
		write(font.Size, para)
	}

	if failed > 0 && failed > lines/10 {
		return nil, fmt.Errorf("%w: %d of %d lines in %q, configure a TrueType font",
			ErrEncoding, failed, lines, doc.Title)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to lay out %q: %w", doc.Title, err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// encodeCore converts UTF-8 to the single-byte encoding core fonts use.
// Unrepresentable runes become '?'.
func encodeCore(s string) (string, bool) {
	enc := charmap.Windows1252.NewEncoder()
	out, err := enc.String(s)
	if err == nil {
		return out, true
	}

	var b strings.Builder
	for _, r := range s {
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String(), false
}
