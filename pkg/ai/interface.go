package ai

import (
	"context"
	"fmt"
)

// ClassificationResult is the structured judgment the reasoning service
// produces for one email. The JSON keys match the response format the
// system prompt demands from the model.
type ClassificationResult struct {
	Category        string `json:"categoria"`
	Priority        string `json:"prioridad"`
	HasTask         bool   `json:"hasTask"`
	TaskDescription string `json:"taskDescription,omitempty"`
}

var validCategories = map[string]bool{
	"cliente": true,
	"lead":    true,
	"interno": true,
	"spam":    true,
}

var validPriorities = map[string]bool{
	"alta":  true,
	"media": true,
	"baja":  true,
}

// Validate checks the result against the fixed schema. A task description
// is only meaningful together with hasTask, so it is cleared otherwise.
func (r *ClassificationResult) Validate() error {
	if !validCategories[r.Category] {
		return fmt.Errorf("invalid category %q", r.Category)
	}
	if !validPriorities[r.Priority] {
		return fmt.Errorf("invalid priority %q", r.Priority)
	}
	if !r.HasTask {
		r.TaskDescription = ""
	}
	return nil
}

// DefaultResult is the safe fallback classification used when no provider
// can produce a valid judgment.
func DefaultResult() *ClassificationResult {
	return &ClassificationResult{
		Category: "spam",
		Priority: "baja",
		HasTask:  false,
	}
}

// Classifier extracts structured metadata from a single email.
// Implement this interface to add new AI providers (OpenAI, Ollama, etc.)
type Classifier interface {
	ClassifyEmail(ctx context.Context, sender, subject, body string) (*ClassificationResult, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)
