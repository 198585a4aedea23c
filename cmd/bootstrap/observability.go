package bootstrap

import (
	"context"

	"court-booking-engine/internal/infra/events"
	"court-booking-engine/internal/infra/metrics"
	"court-booking-engine/internal/pkg/config"
	"court-booking-engine/internal/usecase/shared"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

var ObservabilityModule = fx.Module("observability",
	fx.Provide(
		NewMetricsRegistry,
		func(reg *prometheus.Registry) prometheus.Gatherer { return reg },
		fx.Annotate(
			NewBookingMetrics,
			fx.As(fx.Self()),
			fx.As(new(shared.BookingMetrics)),
		),
		NewEventPublisher,
	),
)

func NewMetricsRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func NewBookingMetrics(reg *prometheus.Registry) *metrics.BookingMetrics {
	return metrics.New(reg)
}

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) shared.EventPublisher {
	publisher, closeFn := events.NewPublisher(cfg.Redis)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return closeFn()
		},
	})
	return publisher
}
