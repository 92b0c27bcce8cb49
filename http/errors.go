package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"

	"events/entity"
)

const locationQuery = "query"

type errorResponse struct {
	Detail any `json:"detail"`
}

type fieldErrorResponse struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func (s Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, detail := translateError(err)

	logger := log.FromContext(c.Request().Context()).WithError(err).WithField("status", status)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed")
	} else {
		logger.Debug("Request rejected")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, errorResponse{Detail: detail})
	}
	if err != nil {
		logger.WithError(err).Error("Could not write error response")
	}
}

func translateError(err error) (int, any) {
	var validationErr *entity.ValidationError
	var storeErr *entity.StoreError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, validationDetail(validationErr)
	case errors.Is(err, entity.ErrDatabaseUnavailable):
		return http.StatusInternalServerError, "Database not available"
	case errors.Is(err, entity.ErrInvalidIdentifier):
		return http.StatusBadRequest, "Invalid id"
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound, "Event not found"
	case errors.As(err, &storeErr):
		return http.StatusInternalServerError, storeErr.Error()
	case errors.As(err, &httpErr):
		if message, ok := httpErr.Message.(string); ok {
			return httpErr.Code, message
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

func validationDetail(err *entity.ValidationError) []fieldErrorResponse {
	detail := make([]fieldErrorResponse, 0, len(err.Fields))
	for _, f := range err.Fields {
		loc := []string{f.Location}
		if f.Field != "" {
			loc = append(loc, f.Field)
		}
		detail = append(detail, fieldErrorResponse{
			Loc:  loc,
			Msg:  f.Message,
			Type: f.Rule,
		})
	}
	return detail
}

// decodeBody reads a JSON body into payload. Decoding problems are reported
// the same way as failed validation rules.
func decodeBody(c echo.Context, payload any) error {
	err := json.NewDecoder(c.Request().Body).Decode(payload)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		return entity.NewValidationError(
			entity.LocationBody,
			typeErr.Field,
			"type_error",
			fmt.Sprintf("value is not a valid %s", typeName(typeErr.Type)),
		)
	case errors.Is(err, io.EOF):
		return entity.NewValidationError(entity.LocationBody, "", "missing", "field required")
	default:
		return entity.NewValidationError(entity.LocationBody, "", "value_error.jsondecode", "invalid JSON body")
	}
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Map, reflect.Struct:
		return "object"
	default:
		return t.Kind().String()
	}
}
