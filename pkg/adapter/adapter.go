// Package adapter wraps the generative backend behind a small interface so
// the orchestration layer can be exercised against a mock.
package adapter

import (
	"context"

	"github.com/verdant-systems/ecolens/pkg/task"
)

// Backend is the contract with the generation service. Exactly one real
// implementation exists; this is not a multi-provider abstraction.
type Backend interface {
	// Generate sends a structured request and returns the raw text payload
	// plus any grounding chunks the backend attached.
	Generate(ctx context.Context, req *task.Request) (*RawResponse, error)

	// Speak synthesizes text into a linear-PCM audio buffer.
	Speak(ctx context.Context, model, voice, text string) ([]byte, error)

	// Render generates an illustrative image for a prompt at a size tier.
	Render(ctx context.Context, model, prompt string, size ImageSize) (*InlineImage, error)

	// Name returns the backend's identifier.
	Name() string
}

// RawResponse is the backend's answer to one request. It is consumed
// immediately by the caller and never retained.
type RawResponse struct {
	Text   string
	Chunks []GroundingChunk
}

// GroundingChunk is one citation candidate as the backend reported it.
// Either field may be empty; filtering is the extractor's job.
type GroundingChunk struct {
	Title string
	URI   string
}

// ImageSize selects the output resolution tier for image synthesis.
type ImageSize string

const (
	Image1K ImageSize = "1K"
	Image2K ImageSize = "2K"
	Image4K ImageSize = "4K"
)

// InlineImage is an image payload returned inline by the backend.
type InlineImage struct {
	MIMEType string
	Data     []byte
}

// PCM audio contract of the speech backend: 24 kHz, 16-bit, mono.
const (
	AudioSampleRate    = 24000
	AudioBitsPerSample = 16
	AudioChannels      = 1
)
