package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/redis/go-redis/v9"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"

	"events/clock"
	"events/db"
	"events/db/events"
	"events/db/tickets"
	"events/http"
	"events/pubsub"
	"events/pubsub/bus"
)

type Service struct {
	httpServer     *http.Server
	tracerProvider *tracesdk.TracerProvider
}

// New wires the API. store may be nil, the API then answers every database
// operation with "Database not available". Announcements are published only
// when redisClient is set.
func New(
	addr string,
	store db.Store,
	databaseURLSet bool,
	redisClient *redis.Client,
	tracerProvider *tracesdk.TracerProvider,
	clk clock.Clock,
) (Service, error) {
	var database http.Database
	if store != nil {
		store = db.InstrumentedStore{Store: store}
		database = store
	}

	eventsRepo := events.NewRepository(store)
	ticketsRepo := tickets.NewRepository(store)

	var eventBus *cqrs.EventBus
	if redisClient != nil {
		watermillLogger := log.NewWatermill(log.FromContext(context.Background()))

		redisPublisher, err := pubsub.NewRedisPublisher(redisClient, watermillLogger)
		if err != nil {
			return Service{}, err
		}

		eventBus, err = bus.NewEventBus(redisPublisher)
		if err != nil {
			return Service{}, fmt.Errorf("could not create event bus: %w", err)
		}
	}

	httpServer := http.NewServer(
		addr,
		eventsRepo,
		ticketsRepo,
		pubsub.NewAnnouncer(eventBus),
		database,
		databaseURLSet,
		clk,
	)

	return Service{
		httpServer:     httpServer,
		tracerProvider: tracerProvider,
	}, nil
}

func (s Service) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.httpServer.Run(ctx)
	})

	if s.tracerProvider != nil {
		g.Go(func() error {
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()

			// flushes the spans still batched
			if err := s.tracerProvider.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("could not shutdown tracer provider: %w", err)
			}
			return nil
		})
	}

	return g.Wait()
}
