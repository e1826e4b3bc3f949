package grounding

import (
	"testing"

	"github.com/verdant-systems/ecolens/pkg/adapter"
)

func TestExtractFiltersIncompleteChunks(t *testing.T) {
	chunks := []adapter.GroundingChunk{
		{Title: "NOAA Ocean Report", URI: "https://noaa.example/report"},
		{Title: "", URI: "https://orphan.example"},
	}

	sources := Extract(chunks)
	if len(sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(sources))
	}
	if sources[0].Title != "NOAA Ocean Report" || sources[0].URI != "https://noaa.example/report" {
		t.Fatalf("unexpected source: %+v", sources[0])
	}
}

func TestExtractPreservesOrder(t *testing.T) {
	chunks := []adapter.GroundingChunk{
		{Title: "b", URI: "https://b.example"},
		{Title: "a", URI: "https://a.example"},
		{Title: "missing uri"},
		{Title: "c", URI: "https://c.example"},
	}

	sources := Extract(chunks)
	if len(sources) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(sources))
	}
	for i, want := range []string{"b", "a", "c"} {
		if sources[i].Title != want {
			t.Fatalf("sources[%d] = %q, want %q", i, sources[i].Title, want)
		}
	}
}

func TestExtractEmptyAndNil(t *testing.T) {
	if got := Extract(nil); len(got) != 0 {
		t.Fatalf("expected empty result for nil chunks")
	}
	if got := Extract([]adapter.GroundingChunk{}); len(got) != 0 {
		t.Fatalf("expected empty result for empty chunks")
	}
}

func TestExtractKeepsDuplicates(t *testing.T) {
	// The backend's chunk list is authoritative; duplicates pass through.
	chunks := []adapter.GroundingChunk{
		{Title: "same", URI: "https://same.example"},
		{Title: "same", URI: "https://same.example"},
	}
	if got := Extract(chunks); len(got) != 2 {
		t.Fatalf("expected duplicates preserved, got %d", len(got))
	}
}
