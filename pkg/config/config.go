// Package config holds the settings shared by the pipeline commands.
//
// Every command works without a config file: Default returns the settings
// the pipeline was built around. A YAML file given to Load overlays only the
// keys it sets, and a few environment variables override engine choice and
// secrets last.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gardar/bookocr/pkg/excerpt"
	"github.com/gardar/bookocr/pkg/gdocai"
	"github.com/gardar/bookocr/pkg/logging"
	"github.com/gardar/bookocr/pkg/recognize"
)

// Environment variables read by Load.
const (
	EnvEngine         = "BOOKOCR_ENGINE"
	EnvGeminiAPIKey   = "GEMINI_API_KEY"
	EnvGoogleCreds    = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvDocAIProject   = "DOCAI_PROJECT_ID"
	EnvDocAIProcessor = "DOCAI_PROCESSOR_ID"
)

// Config is the full pipeline configuration.
type Config struct {
	PhotoDir    string `yaml:"photo_dir"`
	OutputDir   string `yaml:"output_dir"`
	ResultsFile string `yaml:"results_file"`

	// Images IMG_<First>.jpg through IMG_<Last>.jpg are processed unless
	// ImageGlob is set, in which case it selects the images under PhotoDir.
	First     int      `yaml:"first"`
	Last      int      `yaml:"last"`
	Skip      []string `yaml:"skip"`
	ImageGlob string   `yaml:"image_glob"`

	Recognize recognize.Config `yaml:"recognize"`

	// BooksToCorrect lists the titles the correct command rewrites in place.
	BooksToCorrect []string `yaml:"books_to_correct"`

	PDF PDFConfig `yaml:"pdf"`

	LogLevel string `yaml:"log_level"`
}

// PDFConfig configures the bookpdf command.
type PDFConfig struct {
	Dir string `yaml:"dir"`
	// FontPath is a TrueType font with CJK coverage. Without it only Latin-1
	// text renders.
	FontPath string  `yaml:"font_path"`
	FontSize float64 `yaml:"font_size"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		PhotoDir:    "photo_jpg",
		OutputDir:   "final",
		ResultsFile: "ocr_results.yaml",
		First:       7781,
		Last:        7817,
		Skip:        []string{"IMG_7801.jpg"},
		Recognize: recognize.Config{
			Engine:     recognize.EngineDocAI,
			DocumentAI: gdocai.Config{Location: "us"},
			Tesseract: recognize.TesseractConfig{
				Language: "chi_sim",
			},
		},
		BooksToCorrect: []string{"月亮与六便士", "红楼梦", "围城", "人性的枷锁", "活着"},
		PDF: PDFConfig{
			Dir:      "pdf",
			FontSize: 12,
		},
		LogLevel: logging.LevelInfo,
	}
}

// Load returns Default overlaid with the YAML file at path, if path is not
// empty, and then with the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(EnvEngine, &c.Recognize.Engine)
	set(EnvGeminiAPIKey, &c.Recognize.Gemini.APIKey)
	set(EnvGoogleCreds, &c.Recognize.DocumentAI.CredentialsFile)
	set(EnvDocAIProject, &c.Recognize.DocumentAI.ProjectID)
	set(EnvDocAIProcessor, &c.Recognize.DocumentAI.ProcessorID)
}

// Validate checks the settings every command relies on. Engine settings are
// checked when the engine is built.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output_dir must not be empty")
	}
	if c.ImageGlob == "" && c.First > c.Last {
		return fmt.Errorf("image range %d-%d is empty", c.First, c.Last)
	}
	return nil
}

// Images returns the image paths to recognize, in processing order.
func (c *Config) Images() ([]string, error) {
	var names []string
	if c.ImageGlob != "" {
		var err error
		if names, err = excerpt.GlobImages(c.PhotoDir, c.ImageGlob); err != nil {
			return nil, err
		}
		names = removeSkipped(names, c.Skip)
	} else {
		names = excerpt.NumberedImages(c.First, c.Last, c.Skip)
	}

	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(c.PhotoDir, n)
	}
	return paths, nil
}

func removeSkipped(names, skip []string) []string {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[s] = true
	}
	kept := names[:0]
	for _, n := range names {
		if !skipped[filepath.Base(n)] {
			kept = append(kept, n)
		}
	}
	return kept
}
