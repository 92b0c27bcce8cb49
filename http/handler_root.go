package http

import (
	"fmt"
	"net/http"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
)

const (
	maxListedCollections = 10
	maxErrorSummary      = 50
)

type rootResponse struct {
	Message string `json:"message"`
}

type diagnosticsResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      *string  `json:"database_url"`
	DatabaseName     *string  `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

func (s Server) GetRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, rootResponse{Message: "Events API running"})
}

// GetDiagnostics reports on the database connection. It always answers 200,
// failures end up summarized in the "database" field.
func (s Server) GetDiagnostics(c echo.Context) error {
	return c.JSON(http.StatusOK, s.diagnose(c))
}

func (s Server) diagnose(c echo.Context) (response diagnosticsResponse) {
	response = diagnosticsResponse{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}

	defer func() {
		if r := recover(); r != nil {
			response.Database = "❌ Error: " + summarize(fmt.Sprint(r))
		}
	}()

	if s.database == nil {
		return response
	}

	urlStatus := "❌ Not Set"
	if s.databaseURLSet {
		urlStatus = "✅ Set"
	}
	name := s.database.Name()

	response.Database = "✅ Available"
	response.DatabaseURL = &urlStatus
	response.DatabaseName = &name
	response.ConnectionStatus = "Connected"

	ctx := c.Request().Context()

	collections, err := s.database.ListCollectionNames(ctx)
	if err != nil {
		log.FromContext(ctx).WithError(err).Warn("Diagnostics could not list collections")
		response.Database = "⚠️  Connected but Error: " + summarize(err.Error())
		return response
	}

	if len(collections) > maxListedCollections {
		collections = collections[:maxListedCollections]
	}
	if len(collections) > 0 {
		response.Collections = collections
	}
	response.Database = "✅ Connected & Working"

	return response
}

func summarize(message string) string {
	runes := []rune(message)
	if len(runes) > maxErrorSummary {
		return string(runes[:maxErrorSummary])
	}
	return message
}
