package tickets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"events/db"
	"events/entity"
)

func TestRepository_Add(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore("events")
	repo := NewRepository(store)

	id, err := repo.Add(ctx, entity.Ticket{
		EventID:  "does-not-exist",
		Name:     "Ada",
		Email:    "ada@example.com",
		Quantity: 2,
	})
	require.NoError(t, err)

	docs, err := store.FindMany(ctx, db.TicketCollection, bson.M{}, 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := entity.ToAPIRepresentation(entity.Document(docs[0]))
	assert.Equal(t, id, doc["id"])
	assert.Equal(t, "does-not-exist", doc["event_id"])
	assert.EqualValues(t, 2, doc["quantity"])
}

func TestRepository_withoutStore(t *testing.T) {
	_, err := NewRepository(nil).Add(context.Background(), entity.Ticket{})
	assert.ErrorIs(t, err, entity.ErrDatabaseUnavailable)
}
