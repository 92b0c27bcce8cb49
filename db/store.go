package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EventCollection  = "event"
	TicketCollection = "ticket"
)

// Store is the document store as the rest of the service sees it.
//
// FindOneByID returns entity.ErrInvalidIdentifier when id is not an
// ObjectID in hex form and entity.ErrNotFound when nothing matches. Every
// other failure is an *entity.StoreError.
type Store interface {
	InsertOne(ctx context.Context, collection string, record any) (primitive.ObjectID, error)
	// FindMany returns at most limit documents in the store's natural order.
	// A limit of 0 returns every match.
	FindMany(ctx context.Context, collection string, filter bson.M, limit int64) ([]bson.M, error)
	FindOneByID(ctx context.Context, collection string, id string) (bson.M, error)

	Name() string
	ListCollectionNames(ctx context.Context) ([]string, error)
}
