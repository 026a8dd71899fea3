package recognize

import (
	"context"
	"errors"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/gardar/bookocr/pkg/gdocai"
)

// DefaultGeminiModel is used when GeminiConfig.Model is empty.
const DefaultGeminiModel = "gemini-2.5-flash"

const transcribePrompt = `This photo shows a handwritten page of book excerpts, mostly in Chinese.
Transcribe the handwriting exactly as written, one output line per handwritten line.
Keep book-title brackets such as 《》 as written. Do not translate, summarize or correct anything.
Output only the transcription.`

// GeminiConfig configures the Gemini vision engine.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
	// Prompt replaces the built-in transcription instructions when set.
	Prompt string `yaml:"prompt"`
}

// Gemini transcribes images with a Gemini vision model.
type Gemini struct {
	client *genai.Client
	model  string
	prompt string
}

// NewGemini creates a Gemini API client.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api_key is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	g := &Gemini{client: client, model: cfg.Model, prompt: cfg.Prompt}
	if g.model == "" {
		g.model = DefaultGeminiModel
	}
	if g.prompt == "" {
		g.prompt = transcribePrompt
	}
	return g, nil
}

// Recognize implements Recognizer.
func (g *Gemini) Recognize(ctx context.Context, path string) ([]string, error) {
	mimeType, err := gdocai.MimeType(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(g.prompt),
			genai.NewPartFromBytes(data, mimeType),
		}, genai.RoleUser),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0)),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	lines := splitLines(resp.Text())
	if len(lines) == 0 {
		return nil, ErrNoText
	}
	return lines, nil
}
