package orchestrator

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/verdant-systems/ecolens/pkg/adapter"
	"github.com/verdant-systems/ecolens/pkg/config"
	"github.com/verdant-systems/ecolens/pkg/task"
)

const reportJSON = `{
	"topic": "Ocean Acidification",
	"summary": "Seawater pH is falling as oceans absorb CO2.",
	"introduction": "intro",
	"explanation": "carbonate chemistry shifts",
	"background": "bg",
	"causes": ["CO2 emissions"],
	"impacts": ["coral bleaching"],
	"solutions": ["decarbonization"],
	"examples": ["Great Barrier Reef"],
	"preventionTips": ["reduce energy use"],
	"conclusion": "end",
	"visualPrompt": "diagram of carbonate chemistry",
	"category": "Climate Change",
	"section": "Water"
}`

func newTestOrchestrator(backend adapter.Backend) *Orchestrator {
	return New(backend, adapter.NewSubstringClassifier(zap.NewNop()), config.DefaultModels(), zap.NewNop())
}

func TestResearchReportEndToEnd(t *testing.T) {
	backend := adapter.NewMockBackend()
	backend.Responses = map[task.Kind]*adapter.RawResponse{
		task.ResearchReport: {
			Text: reportJSON,
			Chunks: []adapter.GroundingChunk{
				{Title: "NOAA", URI: "https://noaa.example/a"},
				{Title: "IPCC", URI: "https://ipcc.example/b"},
			},
		},
	}

	o := newTestOrchestrator(backend)
	report, err := o.ResearchReport(context.Background(), "ocean acidification", "Water", "English")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Section != "Water" {
		t.Fatalf("section = %q", report.Section)
	}
	if report.Topic != "Ocean Acidification" {
		t.Fatalf("topic = %q", report.Topic)
	}
	if len(report.Sources) != 2 {
		t.Fatalf("sources = %d, want 2", len(report.Sources))
	}

	// The request that went out must be the search-grounded report request.
	if backend.LastRequest.Task != task.ResearchReport || !backend.LastRequest.UseSearch {
		t.Fatalf("unexpected request: %+v", backend.LastRequest)
	}
	if !strings.Contains(backend.LastRequest.Instruction, "ocean acidification") {
		t.Fatalf("subject missing from instruction")
	}
}

func TestResearchReportQuotaFailure(t *testing.T) {
	backend := adapter.NewMockBackend()
	backend.Err = errors.New("429 Too Many Requests")

	o := newTestOrchestrator(backend)
	_, err := o.ResearchReport(context.Background(), "smog", "Air", "English")
	if err == nil {
		t.Fatal("expected error")
	}
	if !adapter.IsQuotaExceeded(err) {
		t.Fatalf("expected quota classification, got %v", err)
	}
}

func TestResearchReportUpstreamFailurePreservesMessage(t *testing.T) {
	backend := adapter.NewMockBackend()
	backend.Err = errors.New("upstream fell over")

	o := newTestOrchestrator(backend)
	_, err := o.ResearchReport(context.Background(), "smog", "Air", "English")
	if err == nil {
		t.Fatal("expected error")
	}
	if adapter.IsQuotaExceeded(err) {
		t.Fatalf("misclassified as quota: %v", err)
	}
	if !strings.Contains(err.Error(), "upstream fell over") {
		t.Fatalf("original message lost: %v", err)
	}
}

func TestResearchReportRepairsTruncatedPayload(t *testing.T) {
	// Payload cut off mid-array, as happens at the output token ceiling.
	truncated := `{"topic": "Smog", "summary": "s", "introduction": "i",
		"explanation": "e", "background": "b",
		"causes": ["traffic", "industry"`

	backend := adapter.NewMockBackend()
	backend.Responses = map[task.Kind]*adapter.RawResponse{
		task.ResearchReport: {Text: truncated},
	}

	o := newTestOrchestrator(backend)
	report, err := o.ResearchReport(context.Background(), "smog", "Air", "English")
	if err != nil {
		t.Fatalf("expected repaired parse, got %v", err)
	}
	if report.Topic != "Smog" || len(report.Causes) != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.Sources) != 0 {
		t.Fatalf("expected no sources, got %d", len(report.Sources))
	}
}

func TestResearchReportMalformedAfterRepair(t *testing.T) {
	backend := adapter.NewMockBackend()
	backend.Responses = map[task.Kind]*adapter.RawResponse{
		task.ResearchReport: {Text: `{"topic": "x",}`},
	}

	o := newTestOrchestrator(backend)
	_, err := o.ResearchReport(context.Background(), "smog", "Air", "English")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsMalformedResponse(err) {
		t.Fatalf("expected malformed-response kind, got %v", err)
	}
	if adapter.IsQuotaExceeded(err) {
		t.Fatalf("parse failure must not classify as quota")
	}
	if backend.GenerateCalls != 1 {
		t.Fatalf("expected exactly one backend call, got %d", backend.GenerateCalls)
	}
}

func TestSustainabilityPlan(t *testing.T) {
	backend := adapter.NewMockBackend()
	backend.Responses = map[task.Kind]*adapter.RawResponse{
		task.SustainabilityPlan: {
			Text: `{"title": "Plastic-Free Week", "days": [
				{"day": 1, "task": "audit your waste", "impact": "baseline"},
				{"day": 2, "task": "switch to reusables", "impact": "less landfill"}
			]}`,
		},
	}

	o := newTestOrchestrator(backend)
	plan, err := o.SustainabilityPlan(context.Background(), "reduce plastic waste", "English")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Title != "Plastic-Free Week" || len(plan.Days) != 2 {
		t.Fatalf("unexpected plan: %+v", plan)
	}
	if plan.Days[0].Day != 1 || plan.Days[1].Task != "switch to reusables" {
		t.Fatalf("unexpected days: %+v", plan.Days)
	}
	// Plan is not search-grounded: empty source list, never nil.
	if plan.Sources == nil || len(plan.Sources) != 0 {
		t.Fatalf("expected empty sources, got %#v", plan.Sources)
	}
	if backend.LastRequest.UseSearch {
		t.Fatalf("plan request must not enable search")
	}
}

func TestPlanetaryStatus(t *testing.T) {
	backend := adapter.NewMockBackend()
	backend.Responses = map[task.Kind]*adapter.RawResponse{
		task.PlanetaryStatus: {
			Text: `{"localTemp": "18°C", "localCondition": "Overcast",
				"globalAvgTemp": "+1.3°C vs pre-industrial",
				"news": [{"title": "t", "description": "d", "url": "https://n.example"}]}`,
			Chunks: []adapter.GroundingChunk{
				{Title: "Weather service", URI: "https://weather.example"},
			},
		},
	}

	o := newTestOrchestrator(backend)
	status, err := o.PlanetaryStatus(context.Background(), 35.6895, 139.6917, "English")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.LocalTemp != "18°C" || len(status.News) != 1 {
		t.Fatalf("unexpected status: %+v", status)
	}
	if len(status.Sources) != 1 {
		t.Fatalf("sources = %d, want 1", len(status.Sources))
	}
}

func TestNarrateClassifiesFailure(t *testing.T) {
	backend := adapter.NewMockBackend()
	backend.Err = errors.New("RESOURCE_EXHAUSTED: out of quota")

	o := newTestOrchestrator(backend)
	_, err := o.Narrate(context.Background(), "hello")
	if !adapter.IsQuotaExceeded(err) {
		t.Fatalf("expected quota classification, got %v", err)
	}
}

func TestNarrateReturnsBuffer(t *testing.T) {
	backend := adapter.NewMockBackend()
	backend.Audio = []byte{1, 2, 3, 4}

	o := newTestOrchestrator(backend)
	audio, err := o.Narrate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(audio) != 4 {
		t.Fatalf("audio = %v", audio)
	}
}

func TestIllustrateWrapsDataURI(t *testing.T) {
	backend := adapter.NewMockBackend()
	backend.Image = &adapter.InlineImage{MIMEType: "image/png", Data: []byte("png-bytes")}

	o := newTestOrchestrator(backend)
	uri, err := o.Illustrate(context.Background(), "carbonate chemistry diagram", adapter.Image2K)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	if uri != want {
		t.Fatalf("uri = %q", uri)
	}
}
