package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardar/bookocr/pkg/recognize"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookocr.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "photo_jpg", cfg.PhotoDir)
	assert.Equal(t, "final", cfg.OutputDir)
	assert.Equal(t, "ocr_results.yaml", cfg.ResultsFile)
	assert.Equal(t, 7781, cfg.First)
	assert.Equal(t, 7817, cfg.Last)
	assert.Equal(t, []string{"IMG_7801.jpg"}, cfg.Skip)
	assert.Equal(t, recognize.EngineDocAI, cfg.Recognize.Engine)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverlayKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
output_dir: out
recognize:
  engine: hocr
  document_ai:
    project_id: my-project
pdf:
  font_path: fonts/NotoSansSC.ttf
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "photo_jpg", cfg.PhotoDir)
	assert.Equal(t, 7781, cfg.First)
	assert.Equal(t, recognize.EngineHOCR, cfg.Recognize.Engine)
	assert.Equal(t, "my-project", cfg.Recognize.DocumentAI.ProjectID)
	assert.Equal(t, "us", cfg.Recognize.DocumentAI.Location)
	assert.Equal(t, "chi_sim", cfg.Recognize.Tesseract.Language)
	assert.Equal(t, "fonts/NotoSansSC.ttf", cfg.PDF.FontPath)
	assert.Equal(t, 12.0, cfg.PDF.FontSize)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	_, err = Load(writeConfig(t, "first: [1, 2\n"))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = Load(writeConfig(t, "first: 10\nlast: 9\n"))
	assert.ErrorContains(t, err, "image range")

	_, err = Load(writeConfig(t, "output_dir: \"\"\n"))
	assert.ErrorContains(t, err, "output_dir")
}

func TestLoadEnv(t *testing.T) {
	t.Setenv(EnvEngine, "gemini")
	t.Setenv(EnvGeminiAPIKey, "secret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, recognize.EngineGemini, cfg.Recognize.Engine)
	assert.Equal(t, "secret", cfg.Recognize.Gemini.APIKey)
}

func TestApplyEnvIgnoresEmpty(t *testing.T) {
	cfg := Default()
	cfg.applyEnv(func(key string) (string, bool) {
		return "", key == EnvEngine
	})
	assert.Equal(t, recognize.EngineDocAI, cfg.Recognize.Engine)
}

func TestImagesNumbered(t *testing.T) {
	cfg := Default()
	cfg.First, cfg.Last = 7799, 7802

	images, err := cfg.Images()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("photo_jpg", "IMG_7799.jpg"),
		filepath.Join("photo_jpg", "IMG_7800.jpg"),
		filepath.Join("photo_jpg", "IMG_7802.jpg"),
	}, images)
}

func TestImagesGlob(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"IMG_2.jpg", "IMG_1.jpg", "IMG_7801.jpg", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	cfg := Default()
	cfg.PhotoDir = dir
	cfg.ImageGlob = "*.jpg"

	images, err := cfg.Images()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "IMG_1.jpg"),
		filepath.Join(dir, "IMG_2.jpg"),
	}, images)
}
