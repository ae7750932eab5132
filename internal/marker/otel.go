package marker

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/hakatashi/rhythm-medley/internal/marker"

// Meter returns the package meter from the global OTel provider (no-op if not
// configured).
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type instruments struct {
	spawned metric.Int64Counter
	expired metric.Int64Counter
	live    metric.Int64ObservableGauge
}

// Instrument registers spawn/expiry counters and a live-marker gauge on mt.
func (m *Manager) Instrument(mt metric.Meter) error {
	var (
		in  instruments
		err error
	)

	in.spawned, err = mt.Int64Counter(
		"markers.spawned",
		metric.WithDescription("Total markers spawned by pointer input"),
	)
	if err != nil {
		return fmt.Errorf("creating spawned counter: %w", err)
	}

	in.expired, err = mt.Int64Counter(
		"markers.expired",
		metric.WithDescription("Total markers dropped after their ttl"),
	)
	if err != nil {
		return fmt.Errorf("creating expired counter: %w", err)
	}

	in.live, err = mt.Int64ObservableGauge(
		"markers.live",
		metric.WithDescription("Markers currently on screen"),
	)
	if err != nil {
		return fmt.Errorf("creating live gauge: %w", err)
	}

	_, err = mt.RegisterCallback(
		func(_ context.Context, o metric.Observer) error {
			o.ObserveInt64(in.live, m.live.Load())
			return nil
		},
		in.live,
	)
	if err != nil {
		return fmt.Errorf("registering live callback: %w", err)
	}

	m.instr = &in
	return nil
}
