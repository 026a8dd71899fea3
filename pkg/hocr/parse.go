package hocr

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/htmlindex"
)

var lineClasses = []string{"ocr_line", "ocr_textfloat", "ocr_header", "ocr_caption"}

// charset declarations are looked for near the top of the file only
const charsetScanLimit = 4096

var charsetDecl = regexp.MustCompile(`(?i)charset\s*=\s*["']?([a-z0-9_.:\-]+)`)

// Parse converts raw hOCR data into a Document. Data declared in a non UTF-8
// charset is decoded first.
func Parse(data []byte) (*Document, error) {
	decoded, err := decode(data)
	if err != nil {
		return nil, err
	}

	root, err := html.Parse(bytes.NewReader(decoded))
	if err != nil {
		return nil, fmt.Errorf("failed to parse hOCR HTML: %w", err)
	}

	p := &parser{doc: &Document{}, page: -1}
	p.walk(root)

	if len(p.doc.Pages) == 0 {
		return nil, fmt.Errorf("no ocr_page elements found in hOCR data")
	}
	return p.doc, nil
}

// ParseTitle breaks down an hOCR title attribute into its properties.
// Example input: "bbox 100 200 300 400; x_wconf 95"
func ParseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(part)
		if len(items) > 0 {
			result[items[0]] = items[1:]
		}
	}
	return result
}

func decode(data []byte) ([]byte, error) {
	head := data
	if len(head) > charsetScanLimit {
		head = head[:charsetScanLimit]
	}
	m := charsetDecl.FindSubmatch(head)
	if m == nil {
		return data, nil
	}

	label := string(m[1])
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported hOCR charset %q: %w", label, err)
	}
	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		return data, nil
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", label, err)
	}
	return decoded, nil
}

type parser struct {
	doc  *Document
	page int // index of the current page, -1 before the first
}

func (p *parser) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		classes := classList(n)
		switch {
		case hasClass(classes, "ocr_page"):
			p.doc.Pages = append(p.doc.Pages, newPage(n))
			p.page = len(p.doc.Pages) - 1
		case hasClass(classes, lineClasses...):
			page := p.currentPage()
			page.Lines = append(page.Lines, parseLine(n))
			return
		case hasClass(classes, "ocrx_word"):
			// a word with no enclosing line becomes its own line
			page := p.currentPage()
			page.Lines = append(page.Lines, Line{Words: []Word{parseWord(n)}})
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}
}

// currentPage returns the page being filled, creating an implicit one for
// content that appears before any ocr_page element.
func (p *parser) currentPage() *Page {
	if p.page < 0 {
		p.doc.Pages = append(p.doc.Pages, Page{ID: "page_implicit"})
		p.page = len(p.doc.Pages) - 1
	}
	return &p.doc.Pages[p.page]
}

func newPage(n *html.Node) Page {
	page := Page{ID: attr(n, "id")}
	if image, ok := ParseTitle(attr(n, "title"))["image"]; ok && len(image) > 0 {
		page.ImageName = strings.Trim(image[0], `"`)
	}
	return page
}

func parseLine(n *html.Node) Line {
	line := Line{ID: attr(n, "id")}

	var collect func(*html.Node)
	collect = func(c *html.Node) {
		if c.Type == html.ElementNode && hasClass(classList(c), "ocrx_word") {
			line.Words = append(line.Words, parseWord(c))
			return
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			collect(cc)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c)
	}

	// Some engines put the text straight into the line element.
	if len(line.Words) == 0 {
		if text := textContent(n); text != "" {
			line.Words = []Word{{Text: text, Confidence: NoConfidence}}
		}
	}
	return line
}

func parseWord(n *html.Node) Word {
	word := Word{ID: attr(n, "id"), Text: textContent(n), Confidence: NoConfidence}
	if conf, ok := ParseTitle(attr(n, "title"))["x_wconf"]; ok && len(conf) > 0 {
		if c, err := strconv.ParseFloat(conf[0], 64); err == nil {
			word.Confidence = c
		}
	}
	return word
}

// textContent gets all text from a node and its children, trimmed.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return strings.TrimSpace(b.String())
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func classList(n *html.Node) []string {
	return strings.Fields(attr(n, "class"))
}

func hasClass(classes []string, want ...string) bool {
	for _, c := range classes {
		for _, w := range want {
			if c == w {
				return true
			}
		}
	}
	return false
}
