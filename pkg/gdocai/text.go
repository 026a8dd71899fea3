package gdocai

import (
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

// Lines returns the text of every detected line, page by page. When a page
// has no line layout the page text is split on newlines instead.
func Lines(doc *documentaipb.Document) []string {
	if doc == nil {
		return nil
	}

	var lines []string
	for _, page := range doc.GetPages() {
		if len(page.GetLines()) == 0 {
			lines = appendNonEmpty(lines, strings.Split(textFromLayout(page.GetLayout(), doc.GetText()), "\n")...)
			continue
		}
		for _, line := range page.GetLines() {
			lines = appendNonEmpty(lines, textFromLayout(line.GetLayout(), doc.GetText()))
		}
	}

	if len(doc.GetPages()) == 0 {
		lines = appendNonEmpty(lines, strings.Split(doc.GetText(), "\n")...)
	}
	return lines
}

func appendNonEmpty(lines []string, texts ...string) []string {
	for _, t := range texts {
		if t = strings.TrimSpace(t); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}

// textFromLayout extracts text from a layout's text anchor segments
func textFromLayout(layout *documentaipb.Document_Page_Layout, fullText string) string {
	if layout == nil || layout.TextAnchor == nil {
		return ""
	}
	runes := []rune(fullText)
	result := strings.Builder{}
	totalRunes := len(runes)

	for _, seg := range layout.TextAnchor.TextSegments {
		start := int(seg.StartIndex)
		end := int(seg.EndIndex)
		if start < 0 {
			start = 0
		}
		if end > totalRunes {
			end = totalRunes
		}
		if start > end {
			start = end
		}
		result.WriteString(string(runes[start:end]))
	}
	return result.String()
}
