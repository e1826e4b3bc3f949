package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Models selects the backend model per task, plus the narration voice.
type Models struct {
	Report string `yaml:"report,omitempty"`
	Plan   string `yaml:"plan,omitempty"`
	Status string `yaml:"status,omitempty"`
	Speech string `yaml:"speech,omitempty"`
	Image  string `yaml:"image,omitempty"`
	Voice  string `yaml:"voice,omitempty"`
}

// DefaultModels returns the built-in model selection.
func DefaultModels() Models {
	return Models{
		Report: "gemini-2.5-flash",
		Plan:   "gemini-2.5-flash",
		Status: "gemini-2.5-flash",
		Speech: "gemini-2.5-flash-preview-tts",
		Image:  "gemini-3-pro-image-preview",
		Voice:  "Kore",
	}
}

// LoadModels reads a model selection from a YAML file. Unset fields fall
// back to the defaults.
func LoadModels(path string) (*Models, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	models := DefaultModels()
	if err := yaml.Unmarshal(data, &models); err != nil {
		return nil, err
	}
	return &models, nil
}
