// Package extract talks to the OCR/AI collaborator that turns receipt
// images into text lines or pre-extracted candidates, and optionally
// categorizes candidates in bulk. All implementations sit behind the
// Extractor interface so the pipeline can run against in-memory fakes.
package extract

import (
	"context"
	"fmt"

	"github.com/catalogflow/shelfscan/internal/common"
	"github.com/catalogflow/shelfscan/internal/model"
)

// Extraction is what the collaborator returns for one receipt image:
// either flat text lines for the parser, or already-extracted candidates
// with raw confidence hints, plus whatever metadata it recognized.
type Extraction struct {
	Lines      []string
	Candidates []model.ExtractedCandidate
	Metadata   model.ReceiptMetadata
}

// Suggestion is one AI categorization result. Category and Subcategory are
// names, resolved against the seller's known sets by the caller.
type Suggestion struct {
	Category       string
	Subcategory    string
	Confidence     float64
	SubcategoryNew bool
}

// Extractor defines the contract for the AI extraction collaborator.
type Extractor interface {
	// ExtractReceipt processes one validated receipt image. A transport or
	// service failure is an error; a malformed response is never partially
	// trusted.
	ExtractReceipt(ctx context.Context, image []byte) (Extraction, error)

	// CategorizeBatch categorizes all names in one request. The call is
	// atomic: either every name gets a suggestion or the call fails and the
	// caller falls back to single-item categorization.
	CategorizeBatch(ctx context.Context, names []string, categories []string) ([]Suggestion, error)

	// CategorizeOne is the single-item fallback path.
	CategorizeOne(ctx context.Context, name string, categories []string) (Suggestion, error)

	// Close releases client resources.
	Close() error
}

// Config holds settings for constructing an extractor.
type Config struct {
	Provider          string
	APIKey            string
	Model             string
	Temperature       float64
	MaxTokens         int
	RequestsPerMinute int
}

// NewExtractor creates an extractor for the configured provider.
func NewExtractor(cfg Config) (Extractor, error) {
	switch cfg.Provider {
	case "openai", "":
		return newOpenAIExtractor(cfg)
	default:
		return nil, fmt.Errorf("%w: unknown extractor provider %q", common.ErrInvalidConfig, cfg.Provider)
	}
}
