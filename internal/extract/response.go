package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/catalogflow/shelfscan/internal/model"
)

// parseExtraction decodes the collaborator's extraction payload. The result
// must carry either candidates or raw lines; a response with neither, or
// with an unnamed candidate, is rejected wholesale.
func parseExtraction(content string) (Extraction, error) {
	var payload struct {
		MerchantName  string   `json:"merchantName"`
		InvoiceNumber string   `json:"invoiceNumber"`
		Date          string   `json:"date"`
		TotalAmount   float64  `json:"totalAmount"`
		Lines         []string `json:"lines"`
		Candidates    []struct {
			Name       string  `json:"name"`
			Price      float64 `json:"price"`
			Quantity   float64 `json:"quantity"`
			Unit       string  `json:"unit"`
			Brand      string  `json:"brand"`
			Confidence struct {
				Name     float64 `json:"name"`
				Price    float64 `json:"price"`
				Quantity float64 `json:"quantity"`
				Brand    float64 `json:"brand"`
				Overall  float64 `json:"overall"`
			} `json:"confidence"`
		} `json:"candidates"`
	}

	content = cleanMarkdownWrapper(content)
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return Extraction{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if len(payload.Candidates) == 0 && len(payload.Lines) == 0 {
		return Extraction{}, fmt.Errorf("response contains neither candidates nor lines")
	}

	extraction := Extraction{
		Lines: payload.Lines,
		Metadata: model.ReceiptMetadata{
			MerchantName:  payload.MerchantName,
			InvoiceNumber: payload.InvoiceNumber,
			Date:          payload.Date,
			TotalAmount:   payload.TotalAmount,
			HasTotal:      payload.TotalAmount > 0,
			FormatType:    model.FormatUnknown,
		},
	}

	for i, c := range payload.Candidates {
		if strings.TrimSpace(c.Name) == "" {
			return Extraction{}, fmt.Errorf("candidate %d has no name", i)
		}
		quantity := c.Quantity
		if quantity == 0 {
			quantity = 1
		}
		extraction.Candidates = append(extraction.Candidates, model.ExtractedCandidate{
			Name:         strings.TrimSpace(c.Name),
			Price:        c.Price,
			Quantity:     quantity,
			Unit:         c.Unit,
			Brand:        c.Brand,
			OriginalText: c.Name,
			Confidence: model.Confidence{
				Name:     c.Confidence.Name,
				Price:    c.Confidence.Price,
				Quantity: c.Confidence.Quantity,
				Brand:    c.Confidence.Brand,
				Overall:  c.Confidence.Overall,
			},
		})
	}

	return extraction, nil
}

// parseSuggestions decodes a batch categorization payload. The batch is
// atomic: a suggestion count that does not cover every requested name fails
// the whole call so the caller can fall back to single-item requests.
func parseSuggestions(content string, want int) ([]Suggestion, error) {
	var payload struct {
		Suggestions []struct {
			Category         string  `json:"category"`
			Subcategory      string  `json:"subcategory"`
			Confidence       float64 `json:"confidence"`
			IsNewSubcategory bool    `json:"isNewSubcategory"`
		} `json:"suggestions"`
	}

	content = cleanMarkdownWrapper(content)
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if len(payload.Suggestions) != want {
		return nil, fmt.Errorf("expected %d suggestions, got %d", want, len(payload.Suggestions))
	}

	suggestions := make([]Suggestion, len(payload.Suggestions))
	for i, s := range payload.Suggestions {
		suggestions[i] = Suggestion{
			Category:       s.Category,
			Subcategory:    s.Subcategory,
			Confidence:     s.Confidence,
			SubcategoryNew: s.IsNewSubcategory,
		}
	}
	return suggestions, nil
}

// cleanMarkdownWrapper strips code fences some models insist on adding
// around JSON responses.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}
	return content
}
