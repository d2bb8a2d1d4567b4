// Package mongo adapts the document store to the read/write services.
// It owns the translation between the neutral query/document types and
// the driver's BSON values; nothing outside this package touches BSON.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/picotan/picotan-backend/internal/config"
	"github.com/picotan/picotan-backend/internal/domain"
	"github.com/picotan/picotan-backend/internal/query"
)

// Store wraps a Mongo database handle. It is safe for concurrent use;
// the driver manages its own connection pool.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes a client, verifies the connection with a ping,
// and returns a Store bound to the configured database.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.MinPoolSize > 0 {
		opts.SetMinPoolSize(cfg.MinPoolSize)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Store{client: client, db: client.Database(cfg.Name)}, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping checks store connectivity, for health probes.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// FindByIDs fetches every document whose id is in ids, in one query.
// Store order is arbitrary; callers that care about order re-sort.
func (s *Store) FindByIDs(ctx context.Context, c domain.Collection, ids []string) ([]domain.Document, error) {
	objectIDs := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := bson.ObjectIDFromHex(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
		}
		objectIDs = append(objectIDs, oid)
	}

	return s.find(ctx, c, bson.M{"_id": bson.M{"$in": objectIDs}})
}

// FindByField fetches every document whose field equals any of values.
func (s *Store) FindByField(ctx context.Context, c domain.Collection, field string, values []string) ([]domain.Document, error) {
	return s.find(ctx, c, bson.M{field: bson.M{"$in": values}})
}

// FindWithQuery runs a filter search built by the query package.
func (s *Store) FindWithQuery(ctx context.Context, c domain.Collection, q query.Query) ([]domain.Document, error) {
	return s.find(ctx, c, toBSON(q))
}

// TextSearch runs the store's relevance-ranked text search over one
// field, or all text fields when path is "*". Each collection has a
// search index named "<collection>_search".
func (s *Store) TextSearch(ctx context.Context, c domain.Collection, text, path string) ([]domain.Document, error) {
	var pathValue any = path
	if path == "*" {
		pathValue = bson.M{"wildcard": "*"}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$search", Value: bson.M{
			"index": fmt.Sprintf("%s_search", c),
			"text": bson.M{
				"query": text,
				"path":  pathValue,
			},
		}}},
	}

	cursor, err := s.db.Collection(c.String()).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storeErr("text search", err)
	}
	return decodeAll(ctx, cursor)
}

// InsertOne persists a new document and returns the store-assigned id
// as a hex string.
func (s *Store) InsertOne(ctx context.Context, c domain.Collection, doc domain.Document) (string, error) {
	res, err := s.db.Collection(c.String()).InsertOne(ctx, bson.M(doc))
	if err != nil {
		return "", storeErr("insert", err)
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", storeErr("insert", fmt.Errorf("unexpected inserted id type %T", res.InsertedID))
	}
	return oid.Hex(), nil
}

// UpdateByID applies a field-level $set merge to the document with the
// given id. Zero matched documents is not an error.
func (s *Store) UpdateByID(ctx context.Context, c domain.Collection, id string, fields domain.Document) (matched, modified int64, err error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}

	res, err := s.db.Collection(c.String()).UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M(fields)},
	)
	if err != nil {
		return 0, 0, storeErr("update", err)
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

// DeleteByID removes the document with the given id and returns how
// many documents were removed (0 or 1).
func (s *Store) DeleteByID(ctx context.Context, c domain.Collection, id string) (int64, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}

	res, err := s.db.Collection(c.String()).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, storeErr("delete", err)
	}
	return res.DeletedCount, nil
}

func (s *Store) find(ctx context.Context, c domain.Collection, filter bson.M) ([]domain.Document, error) {
	cursor, err := s.db.Collection(c.String()).Find(ctx, filter)
	if err != nil {
		return nil, storeErr("find", err)
	}
	return decodeAll(ctx, cursor)
}

func decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]domain.Document, error) {
	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, storeErr("decode", err)
	}

	docs := make([]domain.Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, normalizeDoc(m))
	}
	return docs, nil
}

// storeErr wraps driver failures so callers can tell them apart from
// parameter-shape failures via errors.Is(err, domain.ErrStore).
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStore, op, err)
}
