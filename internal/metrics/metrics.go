// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics records process invocations as Prometheus metrics.
package metrics

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/tombee/cmdlets/pkg/runner"
)

// Outcome label values.
const (
	OutcomeSuccess    = "success"
	OutcomeFailure    = "failure"
	OutcomeSpawnError = "spawn_error"
)

// Metrics holds the invocation collectors.
type Metrics struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		invocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cmdlets_invocations_total",
				Help: "Total process invocations by command and outcome",
			},
			[]string{"command", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cmdlets_invocation_duration_seconds",
				Help:    "Wall time of process invocations by command",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),
	}
}

// Invocations returns the counter for command and outcome.
func (m *Metrics) Invocations(command, outcome string) prometheus.Counter {
	return m.invocations.WithLabelValues(command, outcome)
}

// Observe records one finished invocation.
func (m *Metrics) Observe(command, outcome string, elapsed time.Duration) {
	m.invocations.WithLabelValues(command, outcome).Inc()
	m.duration.WithLabelValues(command).Observe(elapsed.Seconds())
}

// WrapExecutor returns an Executor that records every call to next.
func WrapExecutor(next runner.Executor, m *Metrics) runner.Executor {
	return runner.ExecutorFunc(func(ctx context.Context, cmd runner.Command) (*runner.Completed, error) {
		start := time.Now()
		done, err := next.Execute(ctx, cmd)

		outcome := OutcomeSuccess
		switch {
		case err != nil:
			outcome = OutcomeSpawnError
		case done.ExitCode != 0:
			outcome = OutcomeFailure
		}
		m.Observe(CommandLabel(cmd.Path), outcome, time.Since(start))

		return done, err
	})
}

// CommandLabel reduces an executable path to its base name to keep label
// cardinality bounded.
func CommandLabel(path string) string {
	return filepath.Base(path)
}

// WriteText writes every metric family from g in the Prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
