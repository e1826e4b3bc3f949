// Package orchestrator is the entry point for every generation task. Each
// operation follows the same path: build the request, call the backend,
// parse strictly, repair once on failure, attach grounding sources. Backend
// failures come back classified; unparseable payloads come back as
// MalformedResponseError. Nothing is retried and nothing is cached — every
// call is self-contained.
package orchestrator

import (
	"context"
	"encoding/base64"
	"fmt"

	"go.uber.org/zap"

	"github.com/verdant-systems/ecolens/pkg/adapter"
	"github.com/verdant-systems/ecolens/pkg/config"
	"github.com/verdant-systems/ecolens/pkg/grounding"
	"github.com/verdant-systems/ecolens/pkg/task"
)

// Orchestrator wires the request builder, backend, repair pass and grounding
// extraction together. Safe for concurrent use: calls share no mutable state.
type Orchestrator struct {
	backend    adapter.Backend
	classifier adapter.ErrorClassifier
	models     config.Models
	log        *zap.Logger
}

// New creates an orchestrator over an explicitly injected backend.
func New(backend adapter.Backend, classifier adapter.ErrorClassifier, models config.Models, log *zap.Logger) *Orchestrator {
	if classifier == nil {
		classifier = adapter.NewSubstringClassifier(log)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		backend:    backend,
		classifier: classifier,
		models:     models,
		log:        log,
	}
}

// ResearchReport generates a structured report for an environmental problem.
func (o *Orchestrator) ResearchReport(ctx context.Context, subject, section, language string) (*ResearchReport, error) {
	req := task.BuildReportRequest(o.models.Report, task.ReportParams{
		Subject:  subject,
		Section:  section,
		Language: language,
	})

	raw, err := o.call(ctx, req)
	if err != nil {
		return nil, err
	}

	var report ResearchReport
	if err := decode(raw.Text, &report); err != nil {
		return nil, err
	}
	report.Sources = grounding.Extract(raw.Chunks)
	return &report, nil
}

// SustainabilityPlan generates a 7-day action plan for a goal. The task is
// not search-grounded, so the source list is always empty.
func (o *Orchestrator) SustainabilityPlan(ctx context.Context, goal, language string) (*Plan, error) {
	req := task.BuildPlanRequest(o.models.Plan, task.PlanParams{
		Goal:     goal,
		Language: language,
	})

	raw, err := o.call(ctx, req)
	if err != nil {
		return nil, err
	}

	var plan Plan
	if err := decode(raw.Text, &plan); err != nil {
		return nil, err
	}
	plan.Sources = grounding.Extract(raw.Chunks)
	return &plan, nil
}

// PlanetaryStatus generates a live status snapshot for a location.
func (o *Orchestrator) PlanetaryStatus(ctx context.Context, latitude, longitude float64, language string) (*Status, error) {
	req := task.BuildStatusRequest(o.models.Status, task.StatusParams{
		Latitude:  latitude,
		Longitude: longitude,
		Language:  language,
	})

	raw, err := o.call(ctx, req)
	if err != nil {
		return nil, err
	}

	var status Status
	if err := decode(raw.Text, &status); err != nil {
		return nil, err
	}
	status.Sources = grounding.Extract(raw.Chunks)
	return &status, nil
}

// Narrate synthesizes text into a raw PCM audio buffer.
func (o *Orchestrator) Narrate(ctx context.Context, text string) ([]byte, error) {
	audio, err := o.backend.Speak(ctx, o.models.Speech, o.models.Voice, text)
	if err != nil {
		return nil, o.classifier.Classify(err)
	}
	return audio, nil
}

// Illustrate generates an image for a prompt and wraps it as a data URI.
func (o *Orchestrator) Illustrate(ctx context.Context, prompt string, size adapter.ImageSize) (string, error) {
	img, err := o.backend.Render(ctx, o.models.Image, prompt, size)
	if err != nil {
		return "", o.classifier.Classify(err)
	}
	return fmt.Sprintf("data:%s;base64,%s", img.MIMEType, base64.StdEncoding.EncodeToString(img.Data)), nil
}

// call routes every backend invocation through the classifier so no raw
// failure escapes to callers.
func (o *Orchestrator) call(ctx context.Context, req *task.Request) (*adapter.RawResponse, error) {
	o.log.Debug("generation request",
		zap.String("task", string(req.Task)),
		zap.String("model", req.Model),
		zap.Bool("search", req.UseSearch),
	)

	raw, err := o.backend.Generate(ctx, req)
	if err != nil {
		return nil, o.classifier.Classify(err)
	}
	return raw, nil
}
