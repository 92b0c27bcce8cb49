package entity

import "time"

// EventPayload is the inbound shape of an event. Pointers tell absent
// fields apart from zero values.
type EventPayload struct {
	Title       *string  `json:"title" validate:"required"`
	Date        *string  `json:"date" validate:"required"`
	Venue       *string  `json:"venue" validate:"required"`
	City        *string  `json:"city"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Tags        []string `json:"tags"`
	Price       *float64 `json:"price"`
}

// Event is stored in the "event" collection.
type Event struct {
	Title       string    `json:"title" bson:"title"`
	Date        time.Time `json:"date" bson:"date"`
	Venue       string    `json:"venue" bson:"venue"`
	City        *string   `json:"city" bson:"city"`
	Description *string   `json:"description" bson:"description"`
	Image       *string   `json:"image" bson:"image"`
	Tags        []string  `json:"tags" bson:"tags"`
	Price       float64   `json:"price" bson:"price" validate:"gte=0"`
}

const defaultEventPrice = 0.0

func ParseEvent(payload EventPayload) (Event, error) {
	verr := &ValidationError{}

	validateStruct(payload, verr)
	if len(verr.Fields) > 0 {
		return Event{}, verr
	}

	date, err := ParseDate(*payload.Date)
	if err != nil {
		return Event{}, NewValidationError(LocationBody, "date", "datetime", "invalid datetime format")
	}

	price := defaultEventPrice
	if payload.Price != nil {
		price = *payload.Price
	}

	event := Event{
		Title:       *payload.Title,
		Date:        date,
		Venue:       *payload.Venue,
		City:        payload.City,
		Description: payload.Description,
		Image:       payload.Image,
		Tags:        payload.Tags,
		Price:       price,
	}

	validateStruct(event, verr)
	if len(verr.Fields) > 0 {
		return Event{}, verr
	}

	return event, nil
}
