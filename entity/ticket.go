package entity

// TicketPayload is the inbound shape of a ticket.
type TicketPayload struct {
	EventID  *string       `json:"event_id" validate:"required"`
	Name     *string       `json:"name" validate:"required"`
	Email    *string       `json:"email" validate:"required"`
	Quantity Optional[int] `json:"quantity"`
}

// Ticket is stored in the "ticket" collection. EventID is not checked
// against the event collection.
type Ticket struct {
	EventID  string `json:"event_id" bson:"event_id"`
	Name     string `json:"name" bson:"name"`
	Email    string `json:"email" bson:"email" validate:"email"`
	Quantity int    `json:"quantity" bson:"quantity" validate:"min=1,max=10"`
}

const defaultTicketQuantity = 1

func ParseTicket(payload TicketPayload) (Ticket, error) {
	verr := &ValidationError{}

	validateStruct(payload, verr)
	// quantity may be left out, but not sent as null
	if payload.Quantity.Null {
		verr.add(LocationBody, "quantity", "type_error.none.not_allowed", "none is not an allowed value")
	}
	if len(verr.Fields) > 0 {
		return Ticket{}, verr
	}

	quantity := defaultTicketQuantity
	if payload.Quantity.Set {
		quantity = payload.Quantity.Value
	}

	ticket := Ticket{
		EventID:  *payload.EventID,
		Name:     *payload.Name,
		Email:    *payload.Email,
		Quantity: quantity,
	}

	validateStruct(ticket, verr)
	if len(verr.Fields) > 0 {
		return Ticket{}, verr
	}

	return ticket, nil
}
