// Package file implements the pricing update cache as a JSON file on
// the local filesystem.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/davidbz/gemcost/internal/domain"
	"github.com/davidbz/gemcost/internal/observability"
)

const cacheFileMode = 0o644

// Store persists pricing updates as pretty-printed JSON at a fixed path.
type Store struct {
	path string
}

// NewStore creates a file-backed update cache at the given path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the cached pricing update. A missing file maps to
// domain.ErrCacheMiss; a corrupt file is an error.
func (s *Store) Load(ctx context.Context) (*domain.PricingUpdate, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("read pricing cache %s: %w", s.path, err)
	}

	var update domain.PricingUpdate
	if err := json.Unmarshal(data, &update); err != nil {
		return nil, fmt.Errorf("decode pricing cache %s: %w", s.path, err)
	}

	observability.FromContext(ctx).Debug("loaded pricing cache",
		observability.String("path", s.path),
		observability.Time("timestamp", update.Timestamp),
	)

	return &update, nil
}

// Store writes the pricing update, creating parent directories as
// needed.
func (s *Store) Store(ctx context.Context, update *domain.PricingUpdate) error {
	data, err := json.MarshalIndent(update, "", "  ")
	if err != nil {
		return fmt.Errorf("encode pricing cache: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create cache directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(s.path, data, cacheFileMode); err != nil {
		return fmt.Errorf("write pricing cache %s: %w", s.path, err)
	}

	observability.FromContext(ctx).Debug("stored pricing cache",
		observability.String("path", s.path),
		observability.Int("models", update.ModelCount()),
	)

	return nil
}
