package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"events/entity"
)

func (s Server) PostTicket(c echo.Context) error {
	var payload entity.TicketPayload
	if err := decodeBody(c, &payload); err != nil {
		return err
	}

	ticket, err := entity.ParseTicket(payload)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	ticketID, err := s.ticketsRepo.Add(ctx, ticket)
	if err != nil {
		return err
	}

	s.announcer.TicketBooked(ctx, ticketID, ticket)

	return c.JSON(http.StatusOK, createdResponse{ID: ticketID})
}
