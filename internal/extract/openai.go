package extract

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/catalogflow/shelfscan/internal/common"
)

const extractionSystemPrompt = "You are a receipt data extractor. You MUST respond with ONLY a valid JSON object. " +
	"Do not include any explanatory text, markdown formatting, or commentary before or after the JSON. " +
	"Start your response directly with { and end with }."

const categorizationSystemPrompt = "You are a product categorizer. You MUST respond with ONLY a valid JSON object. " +
	"Do not include any explanatory text, markdown formatting, or commentary before or after the JSON. " +
	"Start your response directly with { and end with }."

// openAIExtractor implements the Extractor interface against an
// OpenAI-compatible chat completions API.
type openAIExtractor struct {
	httpClient  *http.Client
	limiter     *rateLimiter
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
}

func newOpenAIExtractor(cfg Config) (Extractor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: OpenAI API key is required", common.ErrMissingConfig)
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.2
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2000
	}

	return &openAIExtractor{
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		limiter:     newRateLimiter(cfg.RequestsPerMinute),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// ExtractReceipt sends a vision request for one validated receipt image.
func (c *openAIExtractor) ExtractReceipt(ctx context.Context, image []byte) (Extraction, error) {
	if err := ValidateImage(image); err != nil {
		return Extraction{}, err
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", DetectImageMIME(image), base64.StdEncoding.EncodeToString(image))

	requestBody := map[string]any{
		"model": c.model,
		"messages": []map[string]any{
			{
				"role":    "system",
				"content": extractionSystemPrompt,
			},
			{
				"role": "user",
				"content": []map[string]any{
					{
						"type": "text",
						"text": extractionPrompt(),
					},
					{
						"type":      "image_url",
						"image_url": map[string]string{"url": dataURL},
					},
				},
			},
		},
		"temperature": c.temperature,
		"max_tokens":  c.maxTokens,
	}

	content, err := c.complete(ctx, requestBody)
	if err != nil {
		return Extraction{}, fmt.Errorf("%w: %v", common.ErrExtractionFailed, err)
	}

	extraction, err := parseExtraction(content)
	if err != nil {
		// A malformed result is a failed extraction, never partially trusted
		return Extraction{}, fmt.Errorf("%w: %v", common.ErrExtractionFailed, err)
	}
	return extraction, nil
}

// CategorizeBatch categorizes all names in one request. The response must
// cover every requested name or the whole call fails.
func (c *openAIExtractor) CategorizeBatch(ctx context.Context, names []string, categories []string) ([]Suggestion, error) {
	if len(names) == 0 {
		return nil, nil
	}

	requestBody := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": categorizationSystemPrompt,
			},
			{
				"role":    "user",
				"content": batchCategorizePrompt(names, categories),
			},
		},
		"temperature": c.temperature,
		"max_tokens":  c.maxTokens,
	}

	content, err := c.complete(ctx, requestBody)
	if err != nil {
		return nil, err
	}

	return parseSuggestions(content, len(names))
}

// CategorizeOne is the single-item fallback when a batch call fails.
func (c *openAIExtractor) CategorizeOne(ctx context.Context, name string, categories []string) (Suggestion, error) {
	suggestions, err := c.CategorizeBatch(ctx, []string{name}, categories)
	if err != nil {
		return Suggestion{}, err
	}
	return suggestions[0], nil
}

// Close releases the rate limiter.
func (c *openAIExtractor) Close() error {
	c.limiter.Close()
	return nil
}

// complete performs one rate-limited chat completion and returns the
// message content.
func (c *openAIExtractor) complete(ctx context.Context, requestBody map[string]any) (string, error) {
	if err := c.limiter.wait(ctx); err != nil {
		return "", err
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.openai.com/v1/chat/completions", strings.NewReader(string(jsonBody)))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", common.ErrRateLimit
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var response openAIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return response.Choices[0].Message.Content, nil
}

func extractionPrompt() string {
	return `Extract the products and metadata from this receipt image. Respond with JSON:
{
  "merchantName": "", "invoiceNumber": "", "date": "", "totalAmount": 0,
  "candidates": [
    {"name": "", "price": 0, "quantity": 1, "unit": "", "brand": "",
     "confidence": {"name": 0, "price": 0, "quantity": 0, "brand": 0, "overall": 0}}
  ]
}
If the receipt is unreadable as structured products, return the raw text lines instead:
{"merchantName": "", "lines": ["..."]}`
}

func batchCategorizePrompt(names []string, categories []string) string {
	var b strings.Builder
	b.WriteString("Categorize each product into one of these categories: ")
	b.WriteString(strings.Join(categories, ", "))
	b.WriteString("\n\nProducts:\n")
	for i, name := range names {
		fmt.Fprintf(&b, "%d. %s\n", i+1, name)
	}
	b.WriteString(`
Respond with JSON containing one suggestion per product, in order:
{"suggestions": [{"category": "", "subcategory": "", "confidence": 0, "isNewSubcategory": false}]}`)
	return b.String()
}

// openAIResponse represents the OpenAI API response structure.
type openAIResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
		Index        int    `json:"index"`
	} `json:"choices"`
	Created int64 `json:"created"`
}
