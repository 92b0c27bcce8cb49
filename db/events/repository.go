package events

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson"

	"events/db"
	"events/entity"
)

type Repository struct {
	store db.Store
}

// NewRepository accepts a nil store: every call then fails with
// entity.ErrDatabaseUnavailable.
func NewRepository(store db.Store) Repository {
	return Repository{store: store}
}

func (r Repository) Add(ctx context.Context, event entity.Event) (string, error) {
	if r.store == nil {
		return "", entity.ErrDatabaseUnavailable
	}

	id, err := r.store.InsertOne(ctx, db.EventCollection, event)
	if err != nil {
		return "", fmt.Errorf("could not store event: %w", err)
	}

	return id.Hex(), nil
}

func (r Repository) List(ctx context.Context, limit int64) ([]entity.Document, error) {
	if r.store == nil {
		return nil, entity.ErrDatabaseUnavailable
	}

	docs, err := r.store.FindMany(ctx, db.EventCollection, bson.M{}, limit)
	if err != nil {
		return nil, fmt.Errorf("could not list events: %w", err)
	}

	return toDocuments(docs), nil
}

// ListBetween returns the events dated in [from, to).
func (r Repository) ListBetween(ctx context.Context, from, to time.Time) ([]entity.Document, error) {
	if r.store == nil {
		return nil, entity.ErrDatabaseUnavailable
	}

	filter := bson.M{
		"date": bson.M{
			"$gte": from,
			"$lt":  to,
		},
	}

	docs, err := r.store.FindMany(ctx, db.EventCollection, filter, 0)
	if err != nil {
		return nil, fmt.Errorf("could not list events between %s and %s: %w", from, to, err)
	}

	return toDocuments(docs), nil
}

func (r Repository) Get(ctx context.Context, eventID string) (entity.Document, error) {
	if r.store == nil {
		return nil, entity.ErrDatabaseUnavailable
	}

	doc, err := r.store.FindOneByID(ctx, db.EventCollection, eventID)
	if err != nil {
		return nil, fmt.Errorf("could not get event %s: %w", eventID, err)
	}

	return entity.Document(doc), nil
}

func toDocuments(docs []bson.M) []entity.Document {
	return lo.Map(docs, func(doc bson.M, _ int) entity.Document {
		return entity.Document(doc)
	})
}
