// Copyright 2026 Google LLC
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

package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/googlecloudplatform/dummygen/common"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dummygen"

type prometheusMetrics struct {
	files        *prometheus.CounterVec
	bytesWritten prometheus.Counter
	writeLatency *prometheus.HistogramVec
	reports      *prometheus.CounterVec
}

// NewPrometheusMetrics returns a MetricHandle whose collectors are registered
// with reg.
func NewPrometheusMetrics(reg prometheus.Registerer) (MetricHandle, error) {
	m := &prometheusMetrics{
		files: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "files_total",
				Help:      "The cumulative number of files processed along with the outcome.",
			},
			[]string{common.Outcome},
		),
		bytesWritten: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bytes_written_total",
				Help:      "The cumulative number of bytes written to data files.",
			},
		),
		writeLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "write_latency_ms",
				Help:      "The distribution of whole-file write latencies in milliseconds.",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 20),
			},
			[]string{common.IOMode},
		),
		reports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "status_reports_total",
				Help:      "The cumulative number of node status file writes.",
			},
			[]string{common.Status},
		),
	}

	for _, c := range []prometheus.Collector{m.files, m.bytesWritten, m.writeLatency, m.reports} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering collector: %w", err)
		}
	}
	return m, nil
}

func (m *prometheusMetrics) FilesCount(inc int64, outcome string) {
	m.files.With(prometheus.Labels{common.Outcome: outcome}).Add(float64(inc))
}

func (m *prometheusMetrics) BytesWrittenCount(inc int64) {
	m.bytesWritten.Add(float64(inc))
}

func (m *prometheusMetrics) WriteLatency(ctx context.Context, duration time.Duration, ioMode string) {
	m.writeLatency.With(prometheus.Labels{common.IOMode: ioMode}).Observe(float64(duration.Microseconds()) / 1000)
}

func (m *prometheusMetrics) StatusReportCount(inc int64, status string) {
	m.reports.With(prometheus.Labels{common.Status: status}).Add(float64(inc))
}
