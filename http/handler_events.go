package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"events/entity"
)

const defaultEventsLimit = 50

type createdResponse struct {
	ID string `json:"id"`
}

func (s Server) PostEvent(c echo.Context) error {
	var payload entity.EventPayload
	if err := decodeBody(c, &payload); err != nil {
		return err
	}

	event, err := entity.ParseEvent(payload)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	eventID, err := s.eventsRepo.Add(ctx, event)
	if err != nil {
		return err
	}

	s.announcer.EventCreated(ctx, eventID, event)

	return c.JSON(http.StatusOK, createdResponse{ID: eventID})
}

func (s Server) GetEvents(c echo.Context) error {
	limit, err := parseLimit(c.QueryParam("limit"))
	if err != nil {
		return err
	}

	docs, err := s.eventsRepo.List(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAPIRepresentations(docs))
}

func (s Server) GetTodayEvents(c echo.Context) error {
	now := s.clock.Now()
	from, to := entity.DayBounds(now)

	docs, err := s.eventsRepo.ListBetween(c.Request().Context(), from, to)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAPIRepresentations(entity.OnDay(docs, now)))
}

func (s Server) GetEvent(c echo.Context) error {
	doc, err := s.eventsRepo.Get(c.Request().Context(), c.Param("event_id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, entity.ToAPIRepresentation(doc))
}

func parseLimit(raw string) (int64, error) {
	if raw == "" {
		return defaultEventsLimit, nil
	}

	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, entity.NewValidationError(locationQuery, "limit", "type_error.integer", "value is not a valid integer")
	}
	if limit < 1 {
		return 0, entity.NewValidationError(locationQuery, "limit", "value_error.number.not_ge", "ensure this value is greater than or equal to 1")
	}

	return limit, nil
}

func toAPIRepresentations(docs []entity.Document) []entity.Document {
	return lo.Map(docs, func(doc entity.Document, _ int) entity.Document {
		return entity.ToAPIRepresentation(doc)
	})
}
