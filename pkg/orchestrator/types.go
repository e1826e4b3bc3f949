package orchestrator

import "github.com/verdant-systems/ecolens/pkg/grounding"

// ResearchReport is the structured answer for one environmental problem.
// Field names mirror the response schema; Sources is attached locally from
// the grounding metadata and never produced by the model.
type ResearchReport struct {
	Topic          string   `json:"topic"`
	Summary        string   `json:"summary"`
	Introduction   string   `json:"introduction"`
	Explanation    string   `json:"explanation"`
	Background     string   `json:"background"`
	Causes         []string `json:"causes"`
	Impacts        []string `json:"impacts"`
	Solutions      []string `json:"solutions"`
	Examples       []string `json:"examples"`
	PreventionTips []string `json:"preventionTips"`
	Conclusion     string   `json:"conclusion"`
	VisualPrompt   string   `json:"visualPrompt"`
	Category       string   `json:"category"`
	Section        string   `json:"section"`

	Sources []grounding.Source `json:"sources"`
}

// PlanDay is one entry of a sustainability plan.
type PlanDay struct {
	Day    int    `json:"day"`
	Task   string `json:"task"`
	Impact string `json:"impact"`
}

// Plan is a 7-day sustainability action plan.
type Plan struct {
	Title string    `json:"title"`
	Days  []PlanDay `json:"days"`

	Sources []grounding.Source `json:"sources"`
}

// NewsItem is one environmental news citation in a status result.
type NewsItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Status is a live planetary status snapshot for a location.
type Status struct {
	LocalTemp      string     `json:"localTemp"`
	LocalCondition string     `json:"localCondition"`
	GlobalAvgTemp  string     `json:"globalAvgTemp"`
	News           []NewsItem `json:"news"`

	Sources []grounding.Source `json:"sources"`
}
