package flows

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Part is one piece of a prompt: text, or inline bytes with their MIME type.
type Part struct {
	Text     string
	Data     []byte
	MIMEType string
}

// Request is a single prompt-completion call.
type Request struct {
	Model  string
	System string
	Parts  []Part
	// Schema constrains the JSON the model must answer with.
	Schema *genai.Schema
}

// Model issues one blocking completion and returns the raw text answer.
type Model interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// ErrNotConfigured is returned by flows when no API key was provided.
var ErrNotConfigured = errors.New("AI provider is not configured")

// GeminiModel calls the hosted Gemini API.
type GeminiModel struct {
	client *genai.Client
}

// NewGeminiModel creates the client; the key comes from GEMINI_API_KEY or GOOGLE_API_KEY.
func NewGeminiModel(ctx context.Context, apiKey string) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiModel{client: client}, nil
}

func (m *GeminiModel) Generate(ctx context.Context, req Request) (string, error) {
	parts := make([]*genai.Part, 0, len(req.Parts))
	for _, p := range req.Parts {
		if len(p.Data) > 0 {
			parts = append(parts, genai.NewPartFromBytes(p.Data, p.MIMEType))
			continue
		}
		parts = append(parts, genai.NewPartFromText(p.Text))
	}
	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = req.Schema
	}
	resp, err := m.client.Models.GenerateContent(ctx, req.Model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, cfg)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("empty model response")
	}
	return text, nil
}
