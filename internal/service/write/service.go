// Package write implements the write-side operations: add, edit,
// delete. Entry validation happens at the transport boundary before
// these are called; this layer only enforces collection and parameter
// shape.
package write

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/picotan/picotan-backend/internal/domain"
)

// store is the slice of the document store the write service needs.
type store interface {
	InsertOne(ctx context.Context, c domain.Collection, doc domain.Document) (string, error)
	UpdateByID(ctx context.Context, c domain.Collection, id string, fields domain.Document) (matched, modified int64, err error)
	DeleteByID(ctx context.Context, c domain.Collection, id string) (int64, error)
}

// Service executes write operations against the store.
type Service struct {
	log   *slog.Logger
	store store
}

// NewService creates a write Service.
func NewService(logger *slog.Logger, store store) *Service {
	return &Service{
		log:   logger.With("service", "write"),
		store: store,
	}
}

// EditResult reports how many documents an edit matched and changed.
// Zero matched is a valid outcome; callers decide whether that means
// "not found".
type EditResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// Add inserts a new entry and returns the store-assigned id. The
// collection must be in the known-collections allow-list regardless of
// document content.
func (s *Service) Add(ctx context.Context, c domain.Collection, entry domain.Document) (string, error) {
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownCollection, c)
	}
	if entry == nil {
		return "", fmt.Errorf("%w: newEntry", domain.ErrMissingParameter)
	}

	doc := entry.Clone()
	coerceKankenLevel(doc)

	id, err := s.store.InsertOne(ctx, c, doc)
	if err != nil {
		return "", fmt.Errorf("add entry: %w", err)
	}

	s.log.InfoContext(ctx, "entry added",
		slog.String("collection", c.String()),
		slog.String("id", id),
	)
	return id, nil
}

// Edit applies a partial field-level merge to the document with the
// given id. Only the named fields change. A zero matched count is
// reported as a successful empty result, not an error.
func (s *Service) Edit(ctx context.Context, c domain.Collection, id string, updateData domain.Document) (EditResult, error) {
	if !c.IsValid() {
		return EditResult{}, fmt.Errorf("%w: %q", domain.ErrUnknownCollection, c)
	}
	if id == "" || updateData == nil {
		return EditResult{}, fmt.Errorf("%w: id and updateData", domain.ErrMissingParameter)
	}
	if err := domain.ValidateID(id); err != nil {
		return EditResult{}, err
	}

	fields := updateData.Clone()
	// The id is addressed by the filter, never rewritten.
	delete(fields, "_id")
	coerceKankenLevel(fields)

	matched, modified, err := s.store.UpdateByID(ctx, c, id, fields)
	if err != nil {
		return EditResult{}, fmt.Errorf("edit entry: %w", err)
	}

	s.log.InfoContext(ctx, "entry edited",
		slog.String("collection", c.String()),
		slog.String("id", id),
		slog.Int64("matched", matched),
		slog.Int64("modified", modified),
	)
	return EditResult{MatchedCount: matched, ModifiedCount: modified}, nil
}

// Delete removes the document with the given id. Returns how many
// documents were removed (0 or 1); zero is not an error at this layer.
func (s *Service) Delete(ctx context.Context, c domain.Collection, id string) (int64, error) {
	if !c.IsValid() {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownCollection, c)
	}
	if id == "" {
		return 0, fmt.Errorf("%w: id", domain.ErrMissingParameter)
	}
	if err := domain.ValidateID(id); err != nil {
		return 0, err
	}

	deleted, err := s.store.DeleteByID(ctx, c, id)
	if err != nil {
		return 0, fmt.Errorf("delete entry: %w", err)
	}

	s.log.InfoContext(ctx, "entry deleted",
		slog.String("collection", c.String()),
		slog.String("id", id),
		slog.Int64("deleted", deleted),
	)
	return deleted, nil
}

// coerceKankenLevel forces kanken_level to a float so the store tags it
// as a double. Grades include halves (2.5, 1.5); an integer-typed value
// would make the field's type flip between documents.
func coerceKankenLevel(doc domain.Document) {
	switch v := doc["kanken_level"].(type) {
	case int:
		doc["kanken_level"] = float64(v)
	case int32:
		doc["kanken_level"] = float64(v)
	case int64:
		doc["kanken_level"] = float64(v)
	case float32:
		doc["kanken_level"] = float64(v)
	}
}
