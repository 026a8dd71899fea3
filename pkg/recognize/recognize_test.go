package recognize

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeRecognizer struct {
	lines []string
	err   error
	panic bool
}

func (f fakeRecognizer) Recognize(context.Context, string) ([]string, error) {
	if f.panic {
		panic("engine exploded")
	}
	return f.lines, f.err
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		r        Recognizer
		want     string
		wantLogs int
	}{
		{"lines joined", fakeRecognizer{lines: []string{"《活着》", "人是为活着本身而活着"}}, "《活着》\n人是为活着本身而活着", 0},
		{"engine error", fakeRecognizer{err: errors.New("quota exceeded")}, "", 1},
		{"blank result", fakeRecognizer{lines: []string{"  ", ""}}, "", 1},
		{"panic", fakeRecognizer{panic: true}, "", 1},
		{"nil recognizer", nil, "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, logs := observedLogger()
			got := Text(context.Background(), tt.r, "photo_jpg/IMG_7781.jpg", log)
			assert.Equal(t, tt.want, got)
			require.Equal(t, tt.wantLogs, logs.Len())
			for _, entry := range logs.All() {
				assert.Equal(t, "IMG_7781.jpg", entry.ContextMap()["image"])
			}
		})
	}
}

func TestNewUnknownEngine(t *testing.T) {
	r, err := New(context.Background(), Config{Engine: "abacus"})
	assert.Nil(t, r)
	assert.ErrorContains(t, err, "abacus")
}

func TestNewDocAIValidates(t *testing.T) {
	r, err := New(context.Background(), Config{Engine: EngineDocAI})
	assert.Nil(t, r)
	assert.ErrorContains(t, err, "processor_id")
}

func TestNewGeminiNeedsKey(t *testing.T) {
	_, err := New(context.Background(), Config{Engine: EngineGemini})
	assert.ErrorContains(t, err, "api_key")
}

const sampleHOCR = `<!DOCTYPE html>
<html><head><title></title></head>
<body>
<div class="ocr_page" id="page_1" title="image &quot;IMG_7781.jpg&quot;; bbox 0 0 100 100">
 <span class="ocr_line" id="line_1_1"><span class="ocrx_word" id="word_1_1" title="x_wconf 90">《红楼梦》</span></span>
 <span class="ocr_line" id="line_1_2"><span class="ocrx_word" id="word_1_2" title="x_wconf 88">满纸荒唐言</span></span>
</div>
</body></html>`

func TestHOCRSidecar(t *testing.T) {
	dir := t.TempDir()
	image := filepath.Join(dir, "IMG_7781.jpg")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "IMG_7781.hocr"), []byte(sampleHOCR), 0o644))

	r, err := New(context.Background(), Config{Engine: EngineHOCR})
	require.NoError(t, err)

	lines, err := r.Recognize(context.Background(), image)
	require.NoError(t, err)
	assert.Equal(t, []string{"《红楼梦》", "满纸荒唐言"}, lines)

	assert.Equal(t, "《红楼梦》\n满纸荒唐言", Text(context.Background(), r, image, nil))
}

func TestHOCRSidecarDir(t *testing.T) {
	h := NewHOCR(HOCRConfig{Dir: "ocr", Ext: ".html"})
	assert.Equal(t, filepath.Join("ocr", "IMG_7790.html"), h.SidecarPath(filepath.Join("photo_jpg", "IMG_7790.jpg")))
}

func TestHOCRMissingSidecar(t *testing.T) {
	log, logs := observedLogger()
	got := Text(context.Background(), NewHOCR(HOCRConfig{}), filepath.Join(t.TempDir(), "IMG_7799.jpg"), log)
	assert.Empty(t, got)
	assert.Equal(t, 1, logs.FilterMessage("recognition failed").Len())
}

func TestHOCRRejectsOtherImage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "IMG_7782.hocr"), []byte(sampleHOCR), 0o644))

	_, err := NewHOCR(HOCRConfig{}).Recognize(context.Background(), filepath.Join(dir, "IMG_7782.jpg"))
	assert.ErrorContains(t, err, "IMG_7781.jpg")
}

func TestHOCRMinConfidence(t *testing.T) {
	dir := t.TempDir()
	image := filepath.Join(dir, "IMG_7781.jpg")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "IMG_7781.hocr"), []byte(sampleHOCR), 0o644))

	lines, err := NewHOCR(HOCRConfig{MinConfidence: 89}).Recognize(context.Background(), image)
	require.NoError(t, err)
	assert.Equal(t, []string{"《红楼梦》"}, lines)

	_, err = NewHOCR(HOCRConfig{MinConfidence: 95}).Recognize(context.Background(), image)
	assert.ErrorIs(t, err, ErrNoText)
}

func TestStem(t *testing.T) {
	assert.Equal(t, "IMG_7781", stem("IMG_7781.jpg"))
	assert.Equal(t, "IMG_7781", stem(`C:\photos\IMG_7781.png`))
	assert.Equal(t, "IMG_7781", stem("/tmp/IMG_7781.jpg"))
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitLines("  a \r\n\n b\n"))
	assert.Nil(t, splitLines("\n \n"))
}
