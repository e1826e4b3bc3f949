// Package task defines the generation task catalogue: one output schema and
// one prompt template per task kind, paired into backend-ready requests.
package task

import "google.golang.org/genai"

// Kind identifies a generation task. The set is fixed at process start.
type Kind string

const (
	ResearchReport     Kind = "research_report"
	SustainabilityPlan Kind = "sustainability_plan"
	PlanetaryStatus    Kind = "planetary_status"
	SpeechSynthesis    Kind = "speech_synthesis"
	ImageSynthesis     Kind = "image_synthesis"
)

// Request describes one structured-generation call. Building a request never
// fails; parameter validity is the caller's responsibility.
type Request struct {
	Task        Kind
	Model       string
	Instruction string

	// Schema constrains the response to a declared shape. Nil for tasks
	// that do not return JSON (speech, image).
	Schema *genai.Schema

	// UseSearch enables the search-grounding tool so the response carries
	// citation chunks.
	UseSearch bool

	// ThinkingBudget is an extended reasoning hint in tokens; zero means
	// the backend default.
	ThinkingBudget int32
}
