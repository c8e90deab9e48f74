package catalog

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"logistics/internal/entities"
)

const (
	defaultCacheSize = 16
	defaultCacheTTL  = time.Minute
)

// Catalog отдаёт справочники только на чтение. Списки кэшируются целиком
// по виду справочника в LRU с TTL, поэтому правки в БД видны не позже чем через TTL.
type Catalog struct {
	repository Repository
	cache      *expirable.LRU[entities.ReferenceKind, []entities.Reference]
}

func New(repository Repository, size int, ttl time.Duration) *Catalog {
	if size <= 0 {
		size = defaultCacheSize
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Catalog{
		repository: repository,
		cache:      expirable.NewLRU[entities.ReferenceKind, []entities.Reference](size, nil, ttl),
	}
}

func (c *Catalog) ListReferences(ctx context.Context, kind entities.ReferenceKind) ([]entities.Reference, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}

	if cached, ok := c.cache.Get(kind); ok {
		cacheHitsTotal.WithLabelValues(kind.String()).Inc()
		return slices.Clone(cached), nil
	}
	cacheMissesTotal.WithLabelValues(kind.String()).Inc()

	refs, err := c.repository.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}

	// вызывающий получает свою копию, кэш не разделяется
	c.cache.Add(kind, refs)
	return slices.Clone(refs), nil
}

func (c *Catalog) GetReference(ctx context.Context, kind entities.ReferenceKind, id uuid.UUID) (*entities.Reference, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}

	if cached, ok := c.cache.Peek(kind); ok {
		for i := range cached {
			if cached[i].ID == id {
				ref := cached[i]
				return &ref, nil
			}
		}
	}

	ref, err := c.repository.GetByID(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", kind, err)
	}
	return ref, nil
}
