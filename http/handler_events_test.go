package http_test

import (
	"context"
	"errors"
	nethttp "net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"events/db"
	"events/db/events"
	"events/entity"
)

const validEvent = `{"title":"Launch","date":"2024-01-01T10:00:00","venue":"Hall A"}`

func TestPostEvent_roundTrip(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s.handler, nethttp.MethodPost, "/api/events", validEvent)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())

	created := decodeObject(t, rec)
	eventID, ok := created["id"].(string)
	require.True(t, ok)
	require.Len(t, eventID, 24)

	rec = doRequest(t, s.handler, nethttp.MethodGet, "/api/events/"+eventID, "")
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, map[string]any{
		"id":          eventID,
		"title":       "Launch",
		"date":        "2024-01-01T10:00:00",
		"venue":       "Hall A",
		"city":        nil,
		"description": nil,
		"image":       nil,
		"tags":        nil,
		"price":       0.0,
	}, decodeObject(t, rec))

	assert.Equal(t, []announcement{{name: "EventCreated_v1", id: eventID}}, s.announcer.all())
}

func TestPostEvent_optionalFields(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s.handler, nethttp.MethodPost, "/api/events", `{
		"title": "Jazz night",
		"date": "2024-05-01T20:30:00+02:00",
		"venue": "Blue Room",
		"city": "Lisbon",
		"description": "Live quartet",
		"image": "https://img.example.com/jazz.png",
		"tags": ["music", "jazz"],
		"price": 12.5
	}`)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	eventID := decodeObject(t, rec)["id"].(string)

	rec = doRequest(t, s.handler, nethttp.MethodGet, "/api/events/"+eventID, "")
	require.Equal(t, nethttp.StatusOK, rec.Code)

	event := decodeObject(t, rec)
	assert.Equal(t, "2024-05-01T18:30:00", event["date"])
	assert.Equal(t, "Lisbon", event["city"])
	assert.Equal(t, []any{"music", "jazz"}, event["tags"])
	assert.Equal(t, 12.5, event["price"])
	assert.NotContains(t, event, "_id")
}

func TestPostEvent_nullPriceDefaults(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s.handler, nethttp.MethodPost, "/api/events",
		`{"title":"Launch","date":"2024-01-01T10:00:00","venue":"Hall A","price":null}`)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	eventID := decodeObject(t, rec)["id"].(string)

	rec = doRequest(t, s.handler, nethttp.MethodGet, "/api/events/"+eventID, "")
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, 0.0, decodeObject(t, rec)["price"])
}

func TestPostEvent_invalid(t *testing.T) {
	testCases := []struct {
		Name         string
		Body         string
		ExpectedLoc  []string
		ExpectedType string
	}{
		{
			Name:         "missing title",
			Body:         `{"date":"2024-01-01T10:00:00","venue":"Hall A"}`,
			ExpectedLoc:  []string{"body", "title"},
			ExpectedType: "required",
		},
		{
			Name:         "negative price",
			Body:         `{"title":"Launch","date":"2024-01-01T10:00:00","venue":"Hall A","price":-1}`,
			ExpectedLoc:  []string{"body", "price"},
			ExpectedType: "gte",
		},
		{
			Name:         "unparsable date",
			Body:         `{"title":"Launch","date":"next tuesday","venue":"Hall A"}`,
			ExpectedLoc:  []string{"body", "date"},
			ExpectedType: "datetime",
		},
		{
			Name:         "price of the wrong type",
			Body:         `{"title":"Launch","date":"2024-01-01T10:00:00","venue":"Hall A","price":"free"}`,
			ExpectedLoc:  []string{"body", "price"},
			ExpectedType: "type_error",
		},
		{
			Name:         "malformed json",
			Body:         `{"title":`,
			ExpectedLoc:  []string{"body"},
			ExpectedType: "value_error.jsondecode",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			s := newTestServer(t)

			rec := doRequest(t, s.handler, nethttp.MethodPost, "/api/events", tc.Body)
			require.Equal(t, nethttp.StatusUnprocessableEntity, rec.Code, rec.Body.String())

			detail := decodeValidation(t, rec).Detail
			assert.Equal(t, tc.ExpectedLoc, detail[0].Loc)
			assert.Equal(t, tc.ExpectedType, detail[0].Type)
			assert.NotEmpty(t, detail[0].Msg)

			docs, err := s.store.FindMany(context.Background(), db.EventCollection, nil, 0)
			require.NoError(t, err)
			assert.Empty(t, docs)
			assert.Empty(t, s.announcer.all())
		})
	}
}

func TestPostEvent_reportsEveryMissingField(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s.handler, nethttp.MethodPost, "/api/events", `{}`)
	require.Equal(t, nethttp.StatusUnprocessableEntity, rec.Code)

	var fields []string
	for _, d := range decodeValidation(t, rec).Detail {
		fields = append(fields, d.Loc[len(d.Loc)-1])
	}
	assert.ElementsMatch(t, []string{"title", "date", "venue"}, fields)
}

func TestPostEvent_storeFailure(t *testing.T) {
	s := newTestServer(t)
	s.store.FailWith(errors.New("connection refused"))

	rec := doRequest(t, s.handler, nethttp.MethodPost, "/api/events", validEvent)

	require.Equal(t, nethttp.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"detail": "connection refused"}, decodeObject(t, rec))
	assert.Empty(t, s.announcer.all())
}

func TestGetEvents_limit(t *testing.T) {
	s := newTestServer(t)
	repo := events.NewRepository(s.store)

	for i := 0; i < 60; i++ {
		_, err := repo.Add(context.Background(), entity.Event{
			Title: "Event " + strconv.Itoa(i),
			Date:  testNow,
			Venue: "Hall",
		})
		require.NoError(t, err)
	}

	t.Run("default", func(t *testing.T) {
		rec := doRequest(t, s.handler, nethttp.MethodGet, "/api/events", "")
		require.Equal(t, nethttp.StatusOK, rec.Code)

		list := decodeList(t, rec)
		require.Len(t, list, 50)
		assert.Equal(t, "Event 0", list[0]["title"])
		assert.Equal(t, "Event 49", list[49]["title"])
		for _, event := range list {
			assert.Contains(t, event, "id")
			assert.NotContains(t, event, "_id")
		}
	})

	t.Run("explicit", func(t *testing.T) {
		rec := doRequest(t, s.handler, nethttp.MethodGet, "/api/events?limit=5", "")
		require.Equal(t, nethttp.StatusOK, rec.Code)
		assert.Len(t, decodeList(t, rec), 5)
	})

	t.Run("above stored count", func(t *testing.T) {
		rec := doRequest(t, s.handler, nethttp.MethodGet, "/api/events?limit=100", "")
		require.Equal(t, nethttp.StatusOK, rec.Code)
		assert.Len(t, decodeList(t, rec), 60)
	})

	for _, limit := range []string{"0", "-3", "ten"} {
		t.Run("invalid "+limit, func(t *testing.T) {
			rec := doRequest(t, s.handler, nethttp.MethodGet, "/api/events?limit="+limit, "")
			require.Equal(t, nethttp.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, []string{"query", "limit"}, decodeValidation(t, rec).Detail[0].Loc)
		})
	}
}

func TestGetEvents_empty(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s.handler, nethttp.MethodGet, "/api/events", "")

	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetTodayEvents(t *testing.T) {
	s := newTestServer(t)
	repo := events.NewRepository(s.store)

	dates := map[string]time.Time{
		"yesterday":     testNow.AddDate(0, 0, -1),
		"start of day":  time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		"today":         testNow,
		"end of day":    time.Date(2024, 3, 10, 23, 59, 59, int(999*time.Millisecond), time.UTC),
		"tomorrow":      time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		"next week":     testNow.AddDate(0, 0, 7),
		"same day 2023": testNow.AddDate(-1, 0, 0),
	}
	for title, date := range dates {
		_, err := repo.Add(context.Background(), entity.Event{Title: title, Date: date, Venue: "Hall"})
		require.NoError(t, err)
	}

	rec := doRequest(t, s.handler, nethttp.MethodGet, "/api/events/today", "")
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())

	var titles []string
	for _, event := range decodeList(t, rec) {
		titles = append(titles, event["title"].(string))
		assert.Contains(t, event, "id")
	}
	assert.ElementsMatch(t, []string{"start of day", "today", "end of day"}, titles)
}

func TestGetEvent(t *testing.T) {
	s := newTestServer(t)

	t.Run("malformed id", func(t *testing.T) {
		rec := doRequest(t, s.handler, nethttp.MethodGet, "/api/events/not-an-id", "")

		require.Equal(t, nethttp.StatusBadRequest, rec.Code)
		assert.Equal(t, map[string]any{"detail": "Invalid id"}, decodeObject(t, rec))
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := doRequest(t, s.handler, nethttp.MethodGet, "/api/events/65a0f0f0f0f0f0f0f0f0f0f0", "")

		require.Equal(t, nethttp.StatusNotFound, rec.Code)
		assert.Equal(t, map[string]any{"detail": "Event not found"}, decodeObject(t, rec))
	})
}

func TestEvents_withoutDatabase(t *testing.T) {
	handler := newServerWithoutDatabase(t)

	testCases := []struct {
		Name   string
		Method string
		Target string
		Body   string
	}{
		{Name: "get", Method: nethttp.MethodGet, Target: "/api/events/not-even-checked"},
		{Name: "list", Method: nethttp.MethodGet, Target: "/api/events"},
		{Name: "today", Method: nethttp.MethodGet, Target: "/api/events/today"},
		{Name: "create", Method: nethttp.MethodPost, Target: "/api/events", Body: validEvent},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			rec := doRequest(t, handler, tc.Method, tc.Target, tc.Body)

			require.Equal(t, nethttp.StatusInternalServerError, rec.Code)
			assert.Equal(t, map[string]any{"detail": "Database not available"}, decodeObject(t, rec))
		})
	}
}
