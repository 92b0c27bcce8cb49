package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"events/entity"
)

type MongoStore struct {
	db *mongo.Database
}

// Connect dials uri and checks the server answers before handing out
// the database called name.
func Connect(ctx context.Context, uri, name string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("could not connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("could not ping mongo: %w", err)
	}

	return NewMongoStore(client.Database(name)), nil
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	if db == nil {
		panic("db is nil")
	}

	return &MongoStore{db: db}
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

func (s *MongoStore) InsertOne(ctx context.Context, collection string, record any) (primitive.ObjectID, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, storeError("insert_one", collection, err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, storeError("insert_one", collection, fmt.Errorf("unexpected inserted id type %T", res.InsertedID))
	}

	return id, nil
}

func (s *MongoStore) FindMany(ctx context.Context, collection string, filter bson.M, limit int64) ([]bson.M, error) {
	if filter == nil {
		filter = bson.M{}
	}

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, storeError("find_many", collection, err)
	}

	docs := []bson.M{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storeError("find_many", collection, err)
	}

	return docs, nil
}

func (s *MongoStore) FindOneByID(ctx context.Context, collection string, id string) (bson.M, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidIdentifier, err)
	}

	var doc bson.M
	err = s.db.Collection(collection).FindOne(ctx, bson.M{entity.NativeIDKey: objectID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, storeError("find_one", collection, err)
	}

	return doc, nil
}

func (s *MongoStore) Name() string {
	return s.db.Name()
}

func (s *MongoStore) ListCollectionNames(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, storeError("list_collections", "", err)
	}
	return names, nil
}

func storeError(op, collection string, err error) error {
	return &entity.StoreError{
		Op:         op,
		Collection: collection,
		Err:        err,
	}
}
