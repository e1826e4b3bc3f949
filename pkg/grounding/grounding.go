// Package grounding extracts citation sources from search-augmented
// responses.
package grounding

import "github.com/verdant-systems/ecolens/pkg/adapter"

// Source is one citation the backend attached to its answer.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Extract keeps the chunks that carry both a title and a URI, in their
// original order. No deduplication or ranking is applied; the backend's own
// chunk list is taken as-is. An absent list yields an empty result, never an
// error.
func Extract(chunks []adapter.GroundingChunk) []Source {
	sources := make([]Source, 0, len(chunks))
	for _, c := range chunks {
		if c.Title == "" || c.URI == "" {
			continue
		}
		sources = append(sources, Source{Title: c.Title, URI: c.URI})
	}
	return sources
}
