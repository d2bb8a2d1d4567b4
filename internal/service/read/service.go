// Package read implements the read-side operations: id lookup, indexed
// lookup, filter search, and fuzzy text search.
package read

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/picotan/picotan-backend/internal/domain"
	"github.com/picotan/picotan-backend/internal/query"
)

// store is the slice of the document store the read service needs.
type store interface {
	FindByIDs(ctx context.Context, c domain.Collection, ids []string) ([]domain.Document, error)
	FindByField(ctx context.Context, c domain.Collection, field string, values []string) ([]domain.Document, error)
	FindWithQuery(ctx context.Context, c domain.Collection, q query.Query) ([]domain.Document, error)
	TextSearch(ctx context.Context, c domain.Collection, text, path string) ([]domain.Document, error)
}

// Service executes read operations against the store.
type Service struct {
	log   *slog.Logger
	store store
}

// NewService creates a read Service.
func NewService(logger *slog.Logger, store store) *Service {
	return &Service{
		log:   logger.With("service", "read"),
		store: store,
	}
}

// ByIDs fetches documents by id and returns them in exactly the input
// order, with a nil placeholder at every position whose id has no
// match. Callers doing positional batch lookups rely on both
// guarantees. Every id is checked before the store round-trip; the
// first malformed one fails the whole call.
func (s *Service) ByIDs(ctx context.Context, c domain.Collection, ids []string) ([]domain.Document, error) {
	if c == "" {
		return nil, fmt.Errorf("%w: collectionName", domain.ErrMissingParameter)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: ids", domain.ErrMissingParameter)
	}
	for _, id := range ids {
		if err := domain.ValidateID(id); err != nil {
			return nil, err
		}
	}

	docs, err := s.store.FindByIDs(ctx, c, ids)
	if err != nil {
		return nil, fmt.Errorf("find by ids: %w", err)
	}

	byID := make(map[string]domain.Document, len(docs))
	for _, d := range docs {
		if id, ok := d.String("_id"); ok {
			byID[id] = d
		}
	}

	ordered := make([]domain.Document, len(ids))
	for i, id := range ids {
		ordered[i] = byID[id]
	}
	return ordered, nil
}

// ByIndex fetches documents whose index field equals any of the given
// values. Result order is whatever the store returns. Collections
// without an index field do not support this operation.
func (s *Service) ByIndex(ctx context.Context, c domain.Collection, indexValues []string) ([]domain.Document, error) {
	if c == "" {
		return nil, fmt.Errorf("%w: collectionName", domain.ErrMissingParameter)
	}
	if len(indexValues) == 0 {
		return nil, fmt.Errorf("%w: indexValues", domain.ErrMissingParameter)
	}

	field, ok := c.IndexField()
	if !ok {
		return nil, fmt.Errorf("%w: %q does not support index-based lookups", domain.ErrUnsupportedCollection, c)
	}

	docs, err := s.store.FindByField(ctx, c, field, indexValues)
	if err != nil {
		return nil, fmt.Errorf("find by index: %w", err)
	}
	return docs, nil
}

// BySearch runs a filter search. Filters are translated per the query
// package's precedence rules; an empty filter map matches everything.
func (s *Service) BySearch(ctx context.Context, c domain.Collection, filters map[string]any) ([]domain.Document, error) {
	if c == "" {
		return nil, fmt.Errorf("%w: collectionName", domain.ErrMissingParameter)
	}
	if filters == nil {
		return nil, fmt.Errorf("%w: filters", domain.ErrMissingParameter)
	}

	docs, err := s.store.FindWithQuery(ctx, c, query.BuildSearch(filters))
	if err != nil {
		return nil, fmt.Errorf("find by search: %w", err)
	}
	return docs, nil
}

// ByFuzzyText runs the store's relevance-ranked text search, scoped to
// one field or (with path "*") all text fields. Only the free-text-heavy
// collections carry a search index.
func (s *Service) ByFuzzyText(ctx context.Context, c domain.Collection, searchText, path string) ([]domain.Document, error) {
	if c == "" {
		return nil, fmt.Errorf("%w: collectionName", domain.ErrMissingParameter)
	}
	if !c.SupportsFuzzySearch() {
		return nil, fmt.Errorf("%w: fuzzy search is not supported for %q (supported: %s, %s, %s)",
			domain.ErrUnsupportedCollection, c,
			domain.CollectionWords, domain.CollectionYojijukugo, domain.CollectionKotowaza)
	}
	if strings.TrimSpace(searchText) == "" {
		return nil, fmt.Errorf("%w: search text cannot be empty", domain.ErrEmptyQuery)
	}
	if path == "" {
		path = "*"
	}

	docs, err := s.store.TextSearch(ctx, c, searchText, path)
	if err != nil {
		return nil, fmt.Errorf("fuzzy search: %w", err)
	}
	return docs, nil
}
