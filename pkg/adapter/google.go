package adapter

import (
	"context"
	"fmt"

	"github.com/verdant-systems/ecolens/pkg/task"
	"google.golang.org/genai"
)

// GoogleBackend implements Backend over the Gemini API. The client is
// constructed once and injected wherever a Backend is needed; there is no
// package-level instance.
type GoogleBackend struct {
	client *genai.Client
}

// NewGoogleBackend creates a backend bound to the Gemini API.
func NewGoogleBackend(ctx context.Context, apiKey string) (*GoogleBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GoogleBackend{client: client}, nil
}

// Name returns the backend identifier.
func (b *GoogleBackend) Name() string {
	return "google"
}

// Generate sends a structured request to Gemini and returns the raw payload.
func (b *GoogleBackend) Generate(ctx context.Context, req *task.Request) (*RawResponse, error) {
	cfg := &genai.GenerateContentConfig{}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = req.Schema
	}
	if req.UseSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	if req.ThinkingBudget > 0 {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(req.ThinkingBudget)}
	}

	resp, err := b.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Instruction), cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	candidate := resp.Candidates[0]

	var content string
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				content += part.Text
			}
		}
	}

	return &RawResponse{
		Text:   content,
		Chunks: groundingChunks(candidate.GroundingMetadata),
	}, nil
}

// groundingChunks flattens the backend's citation metadata without filtering;
// chunks with missing fields come through empty.
func groundingChunks(md *genai.GroundingMetadata) []GroundingChunk {
	if md == nil {
		return nil
	}
	chunks := make([]GroundingChunk, 0, len(md.GroundingChunks))
	for _, c := range md.GroundingChunks {
		if c == nil {
			continue
		}
		var chunk GroundingChunk
		if c.Web != nil {
			chunk.Title = c.Web.Title
			chunk.URI = c.Web.URI
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

// Speak synthesizes text into a raw PCM buffer (24 kHz, 16-bit, mono).
func (b *GoogleBackend) Speak(ctx context.Context, model, voice, text string) ([]byte, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	}

	resp, err := b.client.Models.GenerateContent(ctx, model, genai.Text(text), cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	data := firstInlineData(resp)
	if data == nil {
		return nil, fmt.Errorf("gemini returned no audio payload")
	}
	return data.Data, nil
}

// Render generates an illustrative image at the requested size tier.
func (b *GoogleBackend) Render(ctx context.Context, model, prompt string, size ImageSize) (*InlineImage, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
		ImageConfig:        &genai.ImageConfig{ImageSize: string(size)},
	}

	resp, err := b.client.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	data := firstInlineData(resp)
	if data == nil {
		return nil, fmt.Errorf("gemini returned no image payload")
	}
	return &InlineImage{MIMEType: data.MIMEType, Data: data.Data}, nil
}

func firstInlineData(resp *genai.GenerateContentResponse) *genai.Blob {
	if resp == nil {
		return nil
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil {
				return part.InlineData
			}
		}
	}
	return nil
}
