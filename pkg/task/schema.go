package task

import "google.golang.org/genai"

// Sections a research report can be filed under.
var SectionValues = []string{"Climate", "Water", "Air", "Noise", "Vision"}

// Broad problem categories the model assigns to a report.
var CategoryValues = []string{
	"Pollution",
	"Climate Change",
	"Conservation",
	"Energy",
	"Waste Management",
	"Biodiversity",
}

func stringField(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc}
}

func stringArrayField(desc string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Description: desc,
		Items:       &genai.Schema{Type: genai.TypeString},
	}
}

// reportSchema declares the research report shape. Every field the
// orchestrator reads is listed as required; a mismatch between this tree and
// the result struct is a configuration defect, not a runtime condition.
func reportSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"topic":          stringField("Concise name of the environmental problem."),
			"summary":        stringField("Two to three sentence overview."),
			"introduction":   stringField("Accessible introduction for a general audience."),
			"explanation":    stringField("Deep technical explanation of the mechanism."),
			"background":     stringField("Historical and scientific background."),
			"causes":         stringArrayField("Primary causes."),
			"impacts":        stringArrayField("Environmental and societal impacts."),
			"solutions":      stringArrayField("Remediation and mitigation steps."),
			"examples":       stringArrayField("Concrete real-world examples."),
			"preventionTips": stringArrayField("Actions individuals can take."),
			"conclusion":     stringField("Closing assessment."),
			"visualPrompt":   stringField("Prompt for an illustrative scientific diagram."),
			"category": {
				Type: genai.TypeString,
				Enum: CategoryValues,
			},
			"section": {
				Type: genai.TypeString,
				Enum: SectionValues,
			},
		},
		Required: []string{
			"topic", "summary", "introduction", "explanation", "background",
			"causes", "impacts", "solutions", "examples", "preventionTips",
			"conclusion", "visualPrompt", "category", "section",
		},
	}
}

func planSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title": stringField("Name of the 7-day plan."),
			"days": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"day":    {Type: genai.TypeInteger},
						"task":   stringField("The action for this day."),
						"impact": stringField("Why the action matters."),
					},
					Required: []string{"day", "task", "impact"},
				},
			},
		},
		Required: []string{"title", "days"},
	}
}

func statusSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"localTemp":      stringField("Current temperature at the given coordinates."),
			"localCondition": stringField("Current weather condition at the given coordinates."),
			"globalAvgTemp":  stringField("Current global average temperature anomaly."),
			"news": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":       {Type: genai.TypeString},
						"description": {Type: genai.TypeString},
						"url":         {Type: genai.TypeString},
					},
					Required: []string{"title", "description", "url"},
				},
			},
		},
		Required: []string{"localTemp", "localCondition", "globalAvgTemp", "news"},
	}
}
