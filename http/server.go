package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	echoHTTP "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"events/clock"
	"events/entity"
)

type EventsRepository interface {
	Add(ctx context.Context, event entity.Event) (string, error)
	List(ctx context.Context, limit int64) ([]entity.Document, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]entity.Document, error)
	Get(ctx context.Context, eventID string) (entity.Document, error)
}

type TicketsRepository interface {
	Add(ctx context.Context, ticket entity.Ticket) (string, error)
}

type Announcer interface {
	EventCreated(ctx context.Context, eventID string, event entity.Event)
	TicketBooked(ctx context.Context, ticketID string, ticket entity.Ticket)
}

// Database is what the diagnostics endpoint reports on. It is nil when no
// database is configured.
type Database interface {
	Name() string
	ListCollectionNames(ctx context.Context) ([]string, error)
}

type Server struct {
	addr           string
	e              *echo.Echo
	eventsRepo     EventsRepository
	ticketsRepo    TicketsRepository
	announcer      Announcer
	database       Database
	databaseURLSet bool
	clock          clock.Clock
}

func NewServer(
	addr string,
	eventsRepo EventsRepository,
	ticketsRepo TicketsRepository,
	announcer Announcer,
	database Database,
	databaseURLSet bool,
	clk clock.Clock,
) *Server {
	e := echoHTTP.NewEcho()

	server := &Server{
		addr:           addr,
		e:              e,
		eventsRepo:     eventsRepo,
		ticketsRepo:    ticketsRepo,
		announcer:      announcer,
		database:       database,
		databaseURLSet: databaseURLSet,
		clock:          clk,
	}

	e.HTTPErrorHandler = server.handleError

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowCredentials: true,
		// browsers reject a literal "*" together with credentials, so the
		// request origin is echoed back instead
		UnsafeWildcardOriginWithAllowCredentials: true,
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch,
			http.MethodPost, http.MethodDelete, http.MethodOptions,
		},
	}))
	e.Use(otelecho.Middleware("events-api"))
	e.Use(countRequests)

	e.GET("/", server.GetRoot)
	e.GET("/test", server.GetDiagnostics)
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/api/events", server.PostEvent)
	e.GET("/api/events", server.GetEvents)
	e.GET("/api/events/today", server.GetTodayEvents)
	e.GET("/api/events/:event_id", server.GetEvent)

	e.POST("/api/tickets", server.PostTicket)

	return server
}

// ServeHTTP makes the server usable with httptest.
func (s Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()

		err := s.e.Shutdown(shutdownCtx)
		if err != nil {
			log.FromContext(ctx).WithError(err).Error("failed to shutdown HTTP server")
		}
	}()

	log.FromContext(ctx).WithField("addr", s.addr).Info("[HTTP] server listening")
	if err := s.e.Start(s.addr); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
