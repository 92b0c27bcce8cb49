package pubsub

import (
	"context"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"events/entity"
	"events/metrics"
)

// Announcer publishes what was created through the API. Publication is
// best effort: failures are logged and counted, the caller never sees them.
type Announcer struct {
	eventBus *cqrs.EventBus
}

// NewAnnouncer with a nil event bus gives an Announcer that publishes nothing.
func NewAnnouncer(eventBus *cqrs.EventBus) Announcer {
	return Announcer{eventBus: eventBus}
}

func (a Announcer) EventCreated(ctx context.Context, eventID string, event entity.Event) {
	a.publish(ctx, "EventCreated_v1", entity.EventCreated_v1{
		Header:  entity.NewEventHeader(),
		EventID: eventID,
		Title:   event.Title,
		Date:    event.Date,
		Venue:   event.Venue,
	})
}

func (a Announcer) TicketBooked(ctx context.Context, ticketID string, ticket entity.Ticket) {
	a.publish(ctx, "TicketBooked_v1", entity.TicketBooked_v1{
		Header:   entity.NewEventHeader(),
		TicketID: ticketID,
		EventID:  ticket.EventID,
		Email:    ticket.Email,
		Quantity: ticket.Quantity,
	})
}

func (a Announcer) publish(ctx context.Context, name string, event any) {
	if a.eventBus == nil {
		return
	}

	if err := a.eventBus.Publish(ctx, event); err != nil {
		metrics.MessagesPublishFailed.WithLabelValues(name).Inc()
		log.FromContext(ctx).WithError(err).WithField("event_name", name).Error("Could not publish announcement")
		return
	}

	metrics.MessagesPublished.WithLabelValues(name).Inc()
}
