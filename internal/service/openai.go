package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"openkey/internal/config"
	"openkey/internal/httputil"
	"openkey/internal/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// ErrAIDisabled is returned by OpenAIClient calls when no API key is configured.
var ErrAIDisabled = errors.New("AI client is not enabled (missing OPENAI_API_KEY)")

// OpenAIClient handles OpenAI-compatible API interactions
type OpenAIClient struct {
	config     *config.OpenAIConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewOpenAIClient creates a new OpenAI-compatible client
func NewOpenAIClient(cfg *config.OpenAIConfig, logger *logrus.Logger) *OpenAIClient {
	return &OpenAIClient{
		config:     cfg,
		httpClient: httputil.NewClient(cfg.Timeout),
		limiter:    rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
		logger:     logger,
	}
}

// IsEnabled returns whether the client is configured and ready
func (c *OpenAIClient) IsEnabled() bool {
	return c.config.Enabled
}

// ChatCompletionRequest represents a chat completion request
type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatMessage represents a single message in the conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat specifies the format of the response
type ResponseFormat struct {
	Type string `json:"type"` // "json_object" or "text"
}

// ChatCompletionResponse represents the API response
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// EmbeddingRequest represents an embedding request
type EmbeddingRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions,omitempty"`
}

// EmbeddingResponse represents the embedding API response
type EmbeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Model string `json:"model"`
}

// ChatCompletion performs a chat completion request
func (c *OpenAIClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if !c.config.Enabled {
		return nil, ErrAIDisabled
	}

	if req.Model == "" {
		req.Model = c.config.ChatModel
	}
	if req.MaxTokens == 0 && c.config.ChatMaxTokens > 0 {
		req.MaxTokens = c.config.ChatMaxTokens
	}

	var result ChatCompletionResponse
	if err := c.post(ctx, "/chat/completions", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateEmbeddings generates embeddings in batches of the configured size
func (c *OpenAIClient) CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if !c.config.Enabled {
		return nil, ErrAIDisabled
	}
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	batchSize := c.config.BatchSize
	if batchSize <= 0 {
		batchSize = len(texts)
	}

	all := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += batchSize {
		end := min(i+batchSize, len(texts))

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		embeddings, err := c.createEmbeddingBatch(ctx, texts[i:end])
		if err != nil {
			return nil, fmt.Errorf("embedding batch %d: %w", i/batchSize, err)
		}
		all = append(all, embeddings...)
	}

	return all, nil
}

func (c *OpenAIClient) createEmbeddingBatch(ctx context.Context, texts []string) ([][]float32, error) {
	req := EmbeddingRequest{
		Model:      c.config.EmbeddingModel,
		Input:      texts,
		Dimensions: c.config.EmbeddingDimensions,
	}

	var result EmbeddingResponse
	if err := c.post(ctx, "/embeddings", req, &result); err != nil {
		return nil, err
	}
	if len(result.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(result.Data))
	}

	out := make([][]float32, len(texts))
	for _, d := range result.Data {
		if d.Index < 0 || d.Index >= len(out) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		out[d.Index] = d.Embedding
	}
	return out, nil
}

// ExtractIntent asks the chat model for the structured form of a query.
func (c *OpenAIClient) ExtractIntent(ctx context.Context, prompt string) (*IntentExtraction, error) {
	req := ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: extractionPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature:    c.config.ChatTemperature,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	resp, err := c.ChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no choices in chat completion")
	}

	content := resp.Choices[0].Message.Content
	var result IntentExtraction
	if err := utils.DecodeModelJSON(content, &result); err != nil {
		c.logger.WithField("content", utils.Truncate(content, 200)).Warn("Unparseable intent extraction")
		return nil, fmt.Errorf("decode intent extraction: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"model":  resp.Model,
		"tokens": resp.Usage.TotalTokens,
		"areas":  len(result.PreferredAreas),
	}).Debug("Intent extracted")

	return &result, nil
}

func (c *OpenAIClient) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimRight(c.config.APIBase, "/") + path
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, httpReq, 0)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, utils.Truncate(string(respBody), 200))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

const extractionPrompt = `You are a Dubai real estate search assistant. Extract structured property search criteria from the user's query and answer with a single JSON object with exactly these keys:

- budgetMin (number or null): minimum budget in AED. Only for "at least", "from", or the lower end of a range.
- budgetMax (number or null): maximum budget in AED. A single figure is a maximum: "2.5M AED" and "under 2.5M" both mean budgetMax=2500000. "M" is millions, "K" is thousands. "around 2.5M" means budgetMin=2250000, budgetMax=2750000.
- sizeMin (number or null): minimum size in square metres ("120 sqm", "150m2"). "spacious" suggests 150.
- sizeMax (number or null): maximum size in square metres.
- preferredAreas (array of {"name", "inference"}): locations. City level: Dubai, Abu Dhabi, Sharjah. Neighbourhoods: Dubai Marina, Palm Jumeirah, Downtown Dubai, JBR, Business Bay, Dubai Hills, City Walk, DIFC, JLT. "near the beach" means JBR or Dubai Marina; "downtown" means Downtown Dubai.
- preferredHandoverMonth (string or null): YYYY-MM. "early 2027" is 2027-01, "mid 2027" is 2027-06, "Q2 2026" is 2026-04.
- amenitiesRequested (array of strings) from this vocabulary only: pool, gym, beach_access, parking, kids_area, school_nearby, park_nearby, concierge, sauna, tennis, pet_friendly, co_working, metro, tram, golf_course, marina_access, cinema. "family friendly" implies kids_area, school_nearby and park_nearby.
- keywords (array of strings): lifestyle indicators such as family, quiet, luxury, investment, beachfront, sea view, golf, nature, urban, modern.
- investmentFocused (boolean): true if the query mentions ROI, rental yield, rental income or investment.

Use null or an empty array for anything not mentioned. Respond with JSON only.`
