package tickets

import (
	"context"
	"fmt"

	"events/db"
	"events/entity"
)

type Repository struct {
	store db.Store
}

func NewRepository(store db.Store) Repository {
	return Repository{store: store}
}

// Add stores the ticket without looking up the event it refers to.
func (r Repository) Add(ctx context.Context, ticket entity.Ticket) (string, error) {
	if r.store == nil {
		return "", entity.ErrDatabaseUnavailable
	}

	id, err := r.store.InsertOne(ctx, db.TicketCollection, ticket)
	if err != nil {
		return "", fmt.Errorf("could not store ticket: %w", err)
	}

	return id.Hex(), nil
}
