package importer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/catalogflow/shelfscan/internal/model"
	"github.com/catalogflow/shelfscan/internal/service"
)

// MinCreateConfidence gates new-subcategory auto-creation: suggestions
// below it stay proposals and are never persisted automatically.
const MinCreateConfidence = 0.7

// SubcategoryRegistry deduplicates subcategory creation within one batch.
// Each batch owns its own registry, so concurrent batches never share
// state; within a batch, concurrent requests for the same
// (categoryID, name) pair collapse to a single create call.
type SubcategoryRegistry struct {
	created map[string]*model.Subcategory
	mu      sync.Mutex
}

// NewSubcategoryRegistry creates an empty per-batch registry.
func NewSubcategoryRegistry() *SubcategoryRegistry {
	return &SubcategoryRegistry{created: make(map[string]*model.Subcategory)}
}

// Ensure creates the subcategory once per distinct (categoryID, normalized
// name) pair and returns it. The second return reports whether this call
// performed the creation.
func (r *SubcategoryRegistry) Ensure(ctx context.Context, storage service.Storage, name string, categoryID int) (*model.Subcategory, bool, error) {
	key := registryKey(name, categoryID)

	r.mu.Lock()
	defer r.mu.Unlock()

	if sub, ok := r.created[key]; ok {
		return sub, false, nil
	}

	sub, err := storage.CreateSubcategory(ctx, name, categoryID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create subcategory %q: %w", name, err)
	}

	r.created[key] = sub
	return sub, true, nil
}

// CreatedCount reports how many subcategories this batch created.
func (r *SubcategoryRegistry) CreatedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.created)
}

func registryKey(name string, categoryID int) string {
	return fmt.Sprintf("%d:%s", categoryID, strings.ToLower(strings.TrimSpace(name)))
}
