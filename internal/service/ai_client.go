package service

import (
	"context"
)

// AIClient is the interface for the language model provider
type AIClient interface {
	// ExtractIntent turns a property query into the raw extraction payload.
	ExtractIntent(ctx context.Context, prompt string) (*IntentExtraction, error)

	// CreateEmbeddings generates embeddings for texts, in input order
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)

	// IsEnabled returns whether the AI client is configured and ready
	IsEnabled() bool
}

// IntentExtraction is what the model returns for a query. Areas are names
// only; coordinates come from the area table.
type IntentExtraction struct {
	BudgetMin              *float64        `json:"budgetMin"`
	BudgetMax              *float64        `json:"budgetMax"`
	SizeMin                *float64        `json:"sizeMin"`
	SizeMax                *float64        `json:"sizeMax"`
	PreferredAreas         []ExtractedArea `json:"preferredAreas"`
	PreferredHandoverMonth *string         `json:"preferredHandoverMonth"`
	AmenitiesRequested     []string        `json:"amenitiesRequested"`
	Keywords               []string        `json:"keywords"`
	InvestmentFocused      bool            `json:"investmentFocused"`
}

// ExtractedArea is a location the model picked out, with how it got there
type ExtractedArea struct {
	Name      string `json:"name"`
	Inference string `json:"inference,omitempty"`
}

// Ensure OpenAIClient implements AIClient
var _ AIClient = (*OpenAIClient)(nil)
