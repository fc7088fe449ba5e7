package engine

import (
	"context"

	"github.com/catalogflow/shelfscan/internal/extract"
)

// Extractor defines the contract for the AI extraction and categorization
// collaborator. extract.Extractor satisfies it; tests use in-memory fakes.
type Extractor interface {
	ExtractReceipt(ctx context.Context, image []byte) (extract.Extraction, error)
	CategorizeBatch(ctx context.Context, names []string, categories []string) ([]extract.Suggestion, error)
	CategorizeOne(ctx context.Context, name string, categories []string) (extract.Suggestion, error)
}
