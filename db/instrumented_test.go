package db

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"events/entity"
	"events/metrics"
)

func TestInstrumentedStore(t *testing.T) {
	ctx := context.Background()
	memory := NewMemoryStore("events")
	store := InstrumentedStore{Store: memory}

	collection := "instrumented"
	ops := metrics.StoreOperations.WithLabelValues("insert_one", collection)
	failed := metrics.StoreOperationsFailed.WithLabelValues("insert_one", collection)
	opsBefore := testutil.ToFloat64(ops)
	failedBefore := testutil.ToFloat64(failed)

	id, err := store.InsertOne(ctx, collection, bson.M{"title": "x"})
	require.NoError(t, err)
	assert.False(t, id.IsZero())

	memory.FailWith(errors.New("boom"))
	_, err = store.InsertOne(ctx, collection, bson.M{"title": "y"})
	var storeErr *entity.StoreError
	require.True(t, errors.As(err, &storeErr))

	assert.Equal(t, opsBefore+2, testutil.ToFloat64(ops))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}

func TestInstrumentedStore_notFoundIsNotAFailure(t *testing.T) {
	ctx := context.Background()
	store := InstrumentedStore{Store: NewMemoryStore("events")}

	failed := metrics.StoreOperationsFailed.WithLabelValues("find_one", EventCollection)
	before := testutil.ToFloat64(failed)

	_, err := store.FindOneByID(ctx, EventCollection, "000000000000000000000000")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	_, err = store.FindOneByID(ctx, EventCollection, "nope")
	assert.ErrorIs(t, err, entity.ErrInvalidIdentifier)

	assert.Equal(t, before, testutil.ToFloat64(failed))
}
