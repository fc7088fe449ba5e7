// Package engine implements the receipt ingestion pipeline: extraction,
// scoring, categorization, duplicate detection, and bulk import. Every
// stage below the import step is pure; the engine is the only place
// external effects happen.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/catalogflow/shelfscan/internal/common"
	"github.com/catalogflow/shelfscan/internal/dupe"
	"github.com/catalogflow/shelfscan/internal/extract"
	"github.com/catalogflow/shelfscan/internal/importer"
	"github.com/catalogflow/shelfscan/internal/match"
	"github.com/catalogflow/shelfscan/internal/model"
	"github.com/catalogflow/shelfscan/internal/parser"
	"github.com/catalogflow/shelfscan/internal/score"
	"github.com/catalogflow/shelfscan/internal/service"
)

// Engine orchestrates the ingestion pipeline.
type Engine struct {
	storage   service.Storage
	extractor Extractor
	matcher   *match.Matcher
	scorer    *score.Scorer
	detector  *dupe.Detector
	importer  *importer.Importer
}

// Config holds configuration options for the engine.
type Config struct {
	ReviewThreshold    float64
	DuplicateThreshold float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ReviewThreshold:    score.DefaultReviewThreshold,
		DuplicateThreshold: dupe.DefaultSimilarityThreshold,
	}
}

// New creates an engine with default configuration. The extractor may be
// nil, in which case categorization is purely keyword-based and image
// extraction is unavailable.
func New(storage service.Storage, extractor Extractor) *Engine {
	return NewWithConfig(storage, extractor, DefaultConfig())
}

// NewWithConfig creates an engine with custom thresholds.
func NewWithConfig(storage service.Storage, extractor Extractor, config Config) *Engine {
	return &Engine{
		storage:   storage,
		extractor: extractor,
		matcher:   match.NewMatcher(),
		scorer:    score.NewScorer(config.ReviewThreshold),
		detector:  dupe.NewDetector(config.DuplicateThreshold),
		importer:  importer.New(storage),
	}
}

// ParseLines runs the pure line parser over raw OCR text.
func (e *Engine) ParseLines(lines []string) model.ParsedReceipt {
	return parser.Parse(lines)
}

// ExtractFromImage validates the image and asks the AI collaborator for
// structured candidates, falling back to the line parser when the
// collaborator returns raw text. An extraction failure is a failure of the
// whole call; a malformed result is never partially trusted.
func (e *Engine) ExtractFromImage(ctx context.Context, image []byte) (model.ParsedReceipt, error) {
	if e.extractor == nil {
		return model.ParsedReceipt{}, fmt.Errorf("%w: no extractor configured", common.ErrMissingConfig)
	}

	if err := extract.ValidateImage(image); err != nil {
		return model.ParsedReceipt{}, err
	}

	var extraction extract.Extraction
	retryErr := common.WithRetry(ctx, func() error {
		var err error
		extraction, err = e.extractor.ExtractReceipt(ctx, image)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: true}
		}
		return nil
	}, service.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
	})
	if retryErr != nil {
		return model.ParsedReceipt{}, fmt.Errorf("%w: %v", common.ErrExtractionFailed, retryErr)
	}

	if len(extraction.Candidates) > 0 {
		return model.ParsedReceipt{
			Candidates: extraction.Candidates,
			Metadata:   extraction.Metadata,
		}, nil
	}

	parsed := parser.Parse(extraction.Lines)
	if extraction.Metadata.MerchantName != "" {
		parsed.Metadata.MerchantName = extraction.Metadata.MerchantName
	}
	return parsed, nil
}

// Categorize scores the request's candidates, assigns categories and
// subcategories, annotates duplicates against the seller's catalog, and
// creates confidently proposed new subcategories once per batch.
func (e *Engine) Categorize(ctx context.Context, req CategorizeRequest) (*CategorizeResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	categories, err := e.storage.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	subcategories, err := e.storage.GetSubcategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load subcategories: %w", err)
	}

	candidates := e.scorer.ScoreAll(req.Products)
	matches := e.matchAll(ctx, req.Batch, candidates, categories, subcategories)

	var existing []model.Product
	if req.SellerID != "" {
		existing, err = e.storage.GetProductsForSeller(ctx, req.SellerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load seller products: %w", err)
		}
	}

	registry := importer.NewSubcategoryRegistry()
	result := &CategorizeResult{Products: make([]CategorizedProduct, len(candidates))}

	for i, candidate := range candidates {
		matched := matches[i]

		if matched.Subcategory != nil && matched.Subcategory.IsNew &&
			matched.Subcategory.Confidence >= importer.MinCreateConfidence && matched.Category != nil {
			sub, created, createErr := registry.Ensure(ctx, e.storage, matched.Subcategory.SuggestedName, matched.Category.Category.ID)
			if createErr != nil {
				slog.Warn("Failed to create suggested subcategory",
					"name", matched.Subcategory.SuggestedName,
					"category_id", matched.Category.Category.ID,
					"error", createErr)
			} else {
				matched.Subcategory.Subcategory = sub
				matched.Subcategory.IsNew = false
				if created {
					result.NewSubcategoriesCreated++
				}
			}
		}

		result.Products[i] = CategorizedProduct{
			Candidate:   candidate,
			Category:    matched.Category,
			Subcategory: matched.Subcategory,
			Verdict:     e.detector.Check(candidate.Name, existing),
		}
	}

	// Reload so newly created subcategories appear in the response
	result.Categories = categories
	result.Subcategories = subcategories
	if result.NewSubcategoriesCreated > 0 {
		if fresh, reloadErr := e.storage.GetSubcategories(ctx); reloadErr == nil {
			result.Subcategories = fresh
		}
	}

	slog.Info("Categorization complete",
		"products", len(result.Products),
		"new_subcategories", result.NewSubcategoriesCreated)

	return result, nil
}

// Import persists categorized products, isolating per-item failures.
func (e *Engine) Import(ctx context.Context, sellerID string, products []CategorizedProduct) model.BulkImportResult {
	items := make([]model.BulkImportItem, len(products))
	for i, p := range products {
		items[i] = model.BulkImportItem{
			Candidate: p.Candidate,
			SellerID:  sellerID,
			Verdict:   p.Verdict,
		}
		if p.Category != nil {
			items[i].CategoryID = p.Category.Category.ID
		}
		if p.Subcategory != nil && p.Subcategory.Subcategory != nil {
			items[i].SubcategoryID = p.Subcategory.Subcategory.ID
		}
	}
	return e.importer.Import(ctx, items)
}

// Move reassigns existing products to a category, isolating unknown ids.
func (e *Engine) Move(ctx context.Context, productIDs []string, categoryID, subcategoryID int) model.MoveResult {
	return e.importer.Move(ctx, productIDs, categoryID, subcategoryID)
}

// Copy duplicates existing products into a category under fresh identities.
func (e *Engine) Copy(ctx context.Context, productIDs []string, categoryID, subcategoryID int) model.CopyResult {
	return e.importer.Copy(ctx, productIDs, categoryID, subcategoryID)
}

// matchAll produces one match result per candidate. With an extractor and
// batch mode, AI categorization runs one request for the whole list; when
// that fails, each candidate falls back to a single-item request, and any
// remaining failures fall back to the local keyword matcher. All paths
// produce structurally identical suggestions.
func (e *Engine) matchAll(ctx context.Context, batch bool, candidates []model.ExtractedCandidate, categories []model.Category, subcategories []model.Subcategory) []model.MatchResult {
	results := make([]model.MatchResult, len(candidates))

	if e.extractor != nil && batch && len(categories) > 0 {
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = c.Name
		}
		categoryNames := make([]string, len(categories))
		for i, c := range categories {
			categoryNames[i] = c.Name
		}

		suggestions, err := e.extractor.CategorizeBatch(ctx, names, categoryNames)
		if err == nil {
			for i := range candidates {
				results[i] = e.resolveSuggestion(suggestions[i], candidates[i].Name, categories, subcategories)
			}
			return results
		}

		slog.Warn("Batch categorization failed, falling back to single items", "error", err)
		for i, c := range candidates {
			suggestion, oneErr := e.extractor.CategorizeOne(ctx, c.Name, categoryNames)
			if oneErr != nil {
				results[i] = e.matcher.Match(c.Name, categories, subcategories)
				continue
			}
			results[i] = e.resolveSuggestion(suggestion, c.Name, categories, subcategories)
		}
		return results
	}

	for i, c := range candidates {
		results[i] = e.matcher.Match(c.Name, categories, subcategories)
	}
	return results
}

// resolveSuggestion maps an AI suggestion's names onto the seller's actual
// category entities. A category name the seller does not have falls back to
// the keyword matcher rather than trusting the collaborator blindly.
func (e *Engine) resolveSuggestion(s extract.Suggestion, name string, categories []model.Category, subcategories []model.Subcategory) model.MatchResult {
	var category *model.Category
	for i := range categories {
		if strings.EqualFold(categories[i].Name, s.Category) {
			category = &categories[i]
			break
		}
	}
	if category == nil {
		return e.matcher.Match(name, categories, subcategories)
	}

	result := model.MatchResult{
		Category: &model.CategorySuggestion{
			Category:   *category,
			Confidence: s.Confidence,
		},
	}

	if s.Subcategory == "" {
		return result
	}

	for i := range subcategories {
		if subcategories[i].CategoryID == category.ID && strings.EqualFold(subcategories[i].Name, s.Subcategory) {
			result.Subcategory = &model.SubcategorySuggestion{
				Subcategory: &subcategories[i],
				Confidence:  s.Confidence,
			}
			return result
		}
	}

	result.Subcategory = &model.SubcategorySuggestion{
		SuggestedName: s.Subcategory,
		Confidence:    s.Confidence,
		IsNew:         true,
	}
	return result
}
