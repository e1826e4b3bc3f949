package adapter

import (
	"context"
	"fmt"

	"github.com/verdant-systems/ecolens/pkg/task"
)

// MockBackend returns scripted responses for tests and local runs.
type MockBackend struct {
	// Responses maps task kind to a scripted response. Requests for kinds
	// without an entry fall back to Response.
	Responses map[task.Kind]*RawResponse
	Response  *RawResponse
	Err       error

	Audio []byte
	Image *InlineImage

	GenerateCalls int
	LastRequest   *task.Request
}

// NewMockBackend creates a mock with a default empty-object response.
func NewMockBackend() *MockBackend {
	return &MockBackend{Response: &RawResponse{Text: "{}"}}
}

// Name returns the mock identifier.
func (b *MockBackend) Name() string {
	return "mock"
}

// Generate returns the scripted response or error for the request's kind.
func (b *MockBackend) Generate(_ context.Context, req *task.Request) (*RawResponse, error) {
	b.GenerateCalls++
	b.LastRequest = req
	if b.Err != nil {
		return nil, b.Err
	}
	if resp, ok := b.Responses[req.Task]; ok {
		return resp, nil
	}
	if b.Response != nil {
		return b.Response, nil
	}
	return nil, fmt.Errorf("mock: no response scripted for task %s", req.Task)
}

// Speak returns the scripted audio buffer.
func (b *MockBackend) Speak(_ context.Context, _, _, _ string) ([]byte, error) {
	if b.Err != nil {
		return nil, b.Err
	}
	return b.Audio, nil
}

// Render returns the scripted image.
func (b *MockBackend) Render(_ context.Context, _, _ string, _ ImageSize) (*InlineImage, error) {
	if b.Err != nil {
		return nil, b.Err
	}
	if b.Image == nil {
		return nil, fmt.Errorf("mock: no image scripted")
	}
	return b.Image, nil
}
