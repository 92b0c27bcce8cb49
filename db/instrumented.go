package db

import (
	"context"
	"errors"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"events/entity"
	"events/metrics"
)

// InstrumentedStore records metrics, spans and debug logs around every
// operation of the wrapped store.
type InstrumentedStore struct {
	Store
}

func (s InstrumentedStore) InsertOne(ctx context.Context, collection string, record any) (id primitive.ObjectID, err error) {
	err = observe(ctx, "insert_one", collection, func(ctx context.Context) error {
		id, err = s.Store.InsertOne(ctx, collection, record)
		return err
	})
	return id, err
}

func (s InstrumentedStore) FindMany(ctx context.Context, collection string, filter bson.M, limit int64) (docs []bson.M, err error) {
	err = observe(ctx, "find_many", collection, func(ctx context.Context) error {
		docs, err = s.Store.FindMany(ctx, collection, filter, limit)
		return err
	})
	return docs, err
}

func (s InstrumentedStore) FindOneByID(ctx context.Context, collection string, id string) (doc bson.M, err error) {
	err = observe(ctx, "find_one", collection, func(ctx context.Context) error {
		doc, err = s.Store.FindOneByID(ctx, collection, id)
		return err
	})
	return doc, err
}

func (s InstrumentedStore) ListCollectionNames(ctx context.Context) (names []string, err error) {
	err = observe(ctx, "list_collections", "", func(ctx context.Context) error {
		names, err = s.Store.ListCollectionNames(ctx)
		return err
	})
	return names, err
}

func observe(ctx context.Context, operation, collection string, fn func(ctx context.Context) error) error {
	ctx, span := otel.Tracer("").Start(ctx, "store: "+operation)
	span.SetAttributes(
		attribute.String("db.system", "mongodb"),
		attribute.String("db.operation", operation),
		attribute.String("db.collection", collection),
	)
	defer span.End()

	labels := prometheus.Labels{"operation": operation, "collection": collection}
	start := time.Now()

	err := fn(ctx)

	metrics.StoreOperations.With(labels).Inc()
	metrics.StoreOperationDuration.With(labels).Observe(time.Since(start).Seconds())

	logger := log.FromContext(ctx).WithFields(logrus.Fields{
		"operation":  operation,
		"collection": collection,
		"duration":   time.Since(start),
	})

	if err != nil && isFailure(err) {
		metrics.StoreOperationsFailed.With(labels).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.WithError(err).Error("Store operation failed")
		return err
	}

	logger.Debug("Store operation done")

	return err
}

// not found and malformed ids are answers, not store failures
func isFailure(err error) bool {
	return !errors.Is(err, entity.ErrNotFound) && !errors.Is(err, entity.ErrInvalidIdentifier)
}
