package hocr

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Document is a parsed hOCR file.
type Document struct {
	Pages []Page
}

// Page is one page of recognized text.
// Corresponds to hOCR element with class: 'ocr_page'
type Page struct {
	ID        string
	ImageName string // from the 'image' title property
	Lines     []Line
}

// Line is one recognized line of text.
// Corresponds to hOCR element with class: 'ocr_line' and its variants
type Line struct {
	ID    string
	Words []Word
}

// Word is a recognized word.
// Corresponds to hOCR element with class: 'ocrx_word'
type Word struct {
	ID         string
	Text       string
	Confidence float64 // x_wconf, 0-100; NoConfidence when absent
}

// NoConfidence marks a word whose file gives no x_wconf.
const NoConfidence = -1

// Text joins the words of a line. CJK words are joined without a separator,
// other adjacent words with a single space.
func (l Line) Text() string {
	var b strings.Builder
	prev := ""
	for _, w := range l.Words {
		if w.Text == "" {
			continue
		}
		if prev != "" && needsSpace(prev, w.Text) {
			b.WriteByte(' ')
		}
		b.WriteString(w.Text)
		prev = w.Text
	}
	return b.String()
}

// Lines returns the non-empty line texts of all pages in document order.
func (d *Document) Lines() []string {
	return d.ConfidentLines(0)
}

// ConfidentLines is Lines without the words scored below threshold. Words with no
// score are always kept.
func (d *Document) ConfidentLines(threshold float64) []string {
	var lines []string
	for _, p := range d.Pages {
		for _, l := range p.Lines {
			if t := l.confident(threshold).Text(); t != "" {
				lines = append(lines, t)
			}
		}
	}
	return lines
}

func (l Line) confident(threshold float64) Line {
	if threshold <= 0 {
		return l
	}
	kept := Line{ID: l.ID}
	for _, w := range l.Words {
		if w.Confidence == NoConfidence || w.Confidence >= threshold {
			kept.Words = append(kept.Words, w)
		}
	}
	return kept
}

func needsSpace(prev, next string) bool {
	last, _ := utf8.DecodeLastRuneInString(prev)
	first, _ := utf8.DecodeRuneInString(next)
	return !isCJK(last) && !isCJK(first)
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) ||
		(r >= 0x3000 && r <= 0x303F) || // CJK punctuation
		(r >= 0xFF00 && r <= 0xFFEF) // full-width forms
}
