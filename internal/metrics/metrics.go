package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Resultados posibles de una llamada al upstream.
const (
	OutcomeSuccess    = "success"
	OutcomeIncomplete = "incomplete"
	OutcomeError      = "error"
)

// Metrics agrupa los colectores del relay. Un *Metrics nil es valido y no registra nada.
type Metrics struct {
	upstreamDuration *prometheus.HistogramVec
	predictions      *prometheus.CounterVec
	inFlight         prometheus.Gauge
}

// New registra los colectores en reg, reutilizando los existentes si ya estaban registrados.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{}

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bigfive_upstream_duration_seconds",
		Help:    "Time taken by the upstream prediction service to answer",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	if err := register(reg, duration, &m.upstreamDuration); err != nil {
		return nil, fmt.Errorf("register upstream duration metric: %w", err)
	}

	predictions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bigfive_predictions_total",
		Help: "Number of relayed prediction requests by outcome",
	}, []string{"outcome"})
	if err := register(reg, predictions, &m.predictions); err != nil {
		return nil, fmt.Errorf("register predictions metric: %w", err)
	}

	inFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "bigfive_upstream_in_flight",
		Help: "Number of upstream calls currently awaiting a response",
	})
	if err := register(reg, inFlight, &m.inFlight); err != nil {
		return nil, fmt.Errorf("register in-flight metric: %w", err)
	}

	return m, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T, dst *T) error {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return err
			}
			*dst = existing
			return nil
		}
		return err
	}
	*dst = c
	return nil
}

// StartUpstream marca una llamada en curso y devuelve la funcion que la cierra con su resultado.
func (m *Metrics) StartUpstream() func(outcome string) {
	if m == nil {
		return func(string) {}
	}
	start := time.Now()
	m.inFlight.Inc()
	return func(outcome string) {
		m.inFlight.Dec()
		m.upstreamDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
		m.predictions.WithLabelValues(outcome).Inc()
	}
}
