package model

// Subscores holds the per-dimension fit of one project against one intent.
// Every value is an already-rounded percentage in [0, 100].
type Subscores struct {
	Price        int `json:"price"`
	Size         int `json:"size"`
	Location     int `json:"location"`
	Timeline     int `json:"timeline"`
	Semantic     int `json:"semantic"`
	Amenities    int `json:"amenities"`
	Transparency int `json:"transparency"`
	QFit         int `json:"qfit"` // quantitative fit
	QRes         int `json:"qres"` // qualitative resonance
}

// SearchRequest represents a search query request
type SearchRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Limit  int    `json:"limit,omitempty"`
}

// SearchResult is one ranked project
type SearchResult struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Developer     string    `json:"developer"`
	Thumbnail     string    `json:"thumbnail"`
	PriceAED      float64   `json:"price_aed"`
	HandoverMonth string    `json:"handover_month"`
	Score         int       `json:"score"`
	Rationale     string    `json:"rationale"`
	Subs          Subscores `json:"subs"`
}

// SearchResponse represents a search result response
type SearchResponse struct {
	SearchID string         `json:"search_id"`
	Intent   *UserIntent    `json:"intent"`
	Results  []SearchResult `json:"results"`
	Took     int64          `json:"took_ms"` // Response time in milliseconds
}

// ParseRequest asks for intent extraction only
type ParseRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// ParseResponse wraps an extracted intent
type ParseResponse struct {
	Intent *UserIntent `json:"intent"`
}

// EmbeddingBatchRequest represents a batch embedding update request
type EmbeddingBatchRequest struct {
	Embeddings []EmbeddingItem `json:"embeddings" binding:"required"`
}

// EmbeddingItem represents a single embedding for a project
type EmbeddingItem struct {
	ProjectID string    `json:"project_id" binding:"required"`
	Embedding []float32 `json:"embedding" binding:"required"`
}

// EmbeddingBatchResponse represents the response for batch embedding update
type EmbeddingBatchResponse struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// SimilarProject is a catalog neighbour by description embedding
type SimilarProject struct {
	Project
	Distance float64 `json:"distance" db:"distance"`
}
