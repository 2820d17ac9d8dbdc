package schema

import (
	"fmt"
	"slices"
	"sync"

	"github.com/ukaji3/xlingest-go/pkg/xlingest/models"
)

// Resolver loads spreadsheet definitions from a Source once and serves them
// from memory afterwards. It is safe for concurrent use.
type Resolver struct {
	src Source

	mu   sync.Mutex
	defs []models.SpreadsheetDefinition
}

// NewResolver returns a Resolver reading from src.
func NewResolver(src Source) *Resolver {
	return &Resolver{src: src}
}

// Resolve returns every spreadsheet definition. The first successful result
// is cached; failures are not, so a later call retries the source.
func (r *Resolver) Resolve() ([]models.SpreadsheetDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.defs != nil {
		return slices.Clone(r.defs), nil
	}

	rc, err := r.src.Open()
	if err != nil {
		return nil, fmt.Errorf("open configuration: %w", err)
	}
	defer rc.Close()

	defs, err := Decode(rc)
	if err != nil {
		return nil, err
	}
	r.defs = defs
	return slices.Clone(defs), nil
}

// Lookup returns the first definition named name.
func (r *Resolver) Lookup(name string) (models.SpreadsheetDefinition, error) {
	defs, err := r.Resolve()
	if err != nil {
		return models.SpreadsheetDefinition{}, err
	}
	for _, d := range defs {
		if d.Name == name {
			return d, nil
		}
	}
	return models.SpreadsheetDefinition{}, fmt.Errorf("%w: %q", ErrSpreadsheetNotFound, name)
}
