package task

import (
	"fmt"
	"strings"
)

// ExplanationMaxChars bounds the report's long-form explanation field.
// Unbounded explanations are the main driver of token-limit truncation, so
// the cap is stated in the prompt itself. It is a mitigation, not a
// guarantee; the repair pass remains the backstop.
const ExplanationMaxChars = 1200

// reportThinkingBudget grants extended reasoning to the report task, which is
// the only one complex enough to benefit from it.
const reportThinkingBudget int32 = 2048

// ReportParams parameterize a research report request.
type ReportParams struct {
	Subject  string
	Section  string
	Language string
}

// PlanParams parameterize a 7-day sustainability plan request.
type PlanParams struct {
	Goal     string
	Language string
}

// StatusParams parameterize a planetary status request.
type StatusParams struct {
	Latitude  float64
	Longitude float64
	Language  string
}

// BuildReportRequest assembles the search-grounded research report request.
func BuildReportRequest(model string, p ReportParams) *Request {
	var sb strings.Builder
	sb.WriteString("You are an environmental science research assistant. ")
	fmt.Fprintf(&sb, "Produce a structured report on the following problem: %q. ", p.Subject)
	fmt.Fprintf(&sb, "The report belongs to the %s section of the application. ", p.Section)
	fmt.Fprintf(&sb, "Write every field in %s. ", p.Language)
	sb.WriteString("Ground every claim in current sources. ")
	fmt.Fprintf(&sb, "Keep the explanation field under %d characters. ", ExplanationMaxChars)
	sb.WriteString("Each array field should contain 3 to 5 short entries. ")
	sb.WriteString("The visualPrompt field must describe a single clear scientific diagram illustrating the problem. ")
	sb.WriteString("Respond with JSON matching the declared schema and nothing else.")

	return &Request{
		Task:           ResearchReport,
		Model:          model,
		Instruction:    sb.String(),
		Schema:         reportSchema(),
		UseSearch:      true,
		ThinkingBudget: reportThinkingBudget,
	}
}

// BuildPlanRequest assembles the sustainability plan request. The plan is
// generated from the model's own knowledge, so search grounding stays off.
func BuildPlanRequest(model string, p PlanParams) *Request {
	var sb strings.Builder
	sb.WriteString("You are a sustainability coach. ")
	fmt.Fprintf(&sb, "Create a 7-day action plan that helps the user achieve this goal: %q. ", p.Goal)
	fmt.Fprintf(&sb, "Write every field in %s. ", p.Language)
	sb.WriteString("Return exactly 7 days, numbered 1 through 7, each with one concrete task and its environmental impact. ")
	sb.WriteString("Respond with JSON matching the declared schema and nothing else.")

	return &Request{
		Task:        SustainabilityPlan,
		Model:       model,
		Instruction: sb.String(),
		Schema:      planSchema(),
	}
}

// BuildStatusRequest assembles the search-grounded planetary status request.
func BuildStatusRequest(model string, p StatusParams) *Request {
	var sb strings.Builder
	sb.WriteString("You are a live environmental data reporter. ")
	fmt.Fprintf(&sb, "Report the current conditions at latitude %.4f, longitude %.4f, ", p.Latitude, p.Longitude)
	sb.WriteString("together with the current global average temperature anomaly and three recent environmental news items. ")
	fmt.Fprintf(&sb, "Write every field in %s. ", p.Language)
	sb.WriteString("Use search to obtain current values; do not invent numbers. ")
	sb.WriteString("Respond with JSON matching the declared schema and nothing else.")

	return &Request{
		Task:        PlanetaryStatus,
		Model:       model,
		Instruction: sb.String(),
		Schema:      statusSchema(),
		UseSearch:   true,
	}
}
