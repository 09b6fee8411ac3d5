// Package metrics exposes Prometheus instrumentation for the dialog engine.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/atendebot/atende/pkg/dialog"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	TurnsTotal    *prometheus.CounterVec
	TurnDuration  prometheus.Histogram
	DialogsBegun  *prometheus.CounterVec
	DialogsEnded  *prometheus.CounterVec
	PromptRetries *prometheus.CounterVec
}

// New builds the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TurnsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atende_turns_total",
				Help: "Total number of processed conversation turns",
			},
			[]string{"outcome"},
		),
		TurnDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "atende_turn_duration_seconds",
				Help:    "Duration of turn processing",
				Buckets: prometheus.DefBuckets,
			},
		),
		DialogsBegun: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atende_dialogs_begun_total",
				Help: "Total number of dialogs pushed onto a conversation stack",
			},
			[]string{"dialog"},
		),
		DialogsEnded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atende_dialogs_ended_total",
				Help: "Total number of dialogs popped, by completion status",
			},
			[]string{"dialog", "status"},
		),
		PromptRetries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atende_prompt_retries_total",
				Help: "Total number of prompt re-asks after invalid replies",
			},
			[]string{"dialog", "kind"},
		),
	}
	reg.MustRegister(m.TurnsTotal, m.TurnDuration, m.DialogsBegun, m.DialogsEnded, m.PromptRetries)
	return m
}

// Hooks bridges the collectors onto the engine's lifecycle callbacks.
func (m *Metrics) Hooks() dialog.Hooks {
	return dialog.Hooks{
		OnDialogBegin: func(ctx context.Context, conversationID, name string) {
			m.DialogsBegun.WithLabelValues(name).Inc()
		},
		OnDialogEnd: func(ctx context.Context, conversationID, name string, status dialog.Status) {
			m.DialogsEnded.WithLabelValues(name, string(status)).Inc()
		},
		OnPromptRetry: func(ctx context.Context, conversationID, name string, kind dialog.PromptKind) {
			m.PromptRetries.WithLabelValues(name, string(kind)).Inc()
		},
	}
}

// ObserveTurn records the outcome and duration of one processed turn.
func (m *Metrics) ObserveTurn(start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.TurnsTotal.WithLabelValues(outcome).Inc()
	m.TurnDuration.Observe(time.Since(start).Seconds())
}
