package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventHeader struct {
	ID          string    `json:"id"`
	PublishedAt time.Time `json:"published_at"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:          uuid.NewString(),
		PublishedAt: time.Now().UTC(),
	}
}

type EventCreated_v1 struct {
	Header EventHeader `json:"header"`

	EventID string    `json:"event_id"`
	Title   string    `json:"title"`
	Date    time.Time `json:"date"`
	Venue   string    `json:"venue"`
}

type TicketBooked_v1 struct {
	Header EventHeader `json:"header"`

	TicketID string `json:"ticket_id"`
	EventID  string `json:"event_id"`
	Email    string `json:"email"`
	Quantity int    `json:"quantity"`
}
