package bookpdf

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardar/bookocr/pkg/merge"
)

func TestRenderCoreFont(t *testing.T) {
	doc := merge.Document{
		Title: "The Moon and Sixpence",
		Body:  "Everyone was so busy looking at the sixpence.\n\nThat he never looked up at the moon. Café.",
	}

	data, err := Render(doc, Options{Author: "bookocr"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.True(t, bytes.Contains(data, []byte("%%EOF")))
}

func TestRenderCJKNeedsFont(t *testing.T) {
	doc := merge.Document{Title: "红楼梦", Body: "满纸荒唐言\n一把辛酸泪"}

	_, err := Render(doc, Options{})
	assert.ErrorIs(t, err, ErrEncoding)
}

func TestRenderMissingFontFile(t *testing.T) {
	doc := merge.Document{Title: "围城", Body: "城外的人想冲进去"}

	_, err := Render(doc, Options{Font: FontConfig{Path: filepath.Join(t.TempDir(), "NotoSansSC.ttf")}})
	assert.ErrorContains(t, err, "font file")
}

func TestEncodeCore(t *testing.T) {
	out, ok := encodeCore("naïve €")
	assert.True(t, ok)
	assert.Equal(t, "na\xefve \x80", out)

	out, ok = encodeCore("a活b")
	assert.False(t, ok)
	assert.Equal(t, "a?b", out)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "月亮与六便士.pdf", FileName("《月亮与六便士》"))
}
