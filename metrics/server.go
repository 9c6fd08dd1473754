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
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/googlecloudplatform/dummygen/common"
	"github.com/googlecloudplatform/dummygen/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupPrometheus creates a registry holding the generator metrics and serves
// it on the given port. A port of 0 disables the endpoint and returns a noop
// handle and a nil shutdown function.
func SetupPrometheus(port int64) (MetricHandle, common.ShutdownFn, error) {
	if port <= 0 {
		return NewNoopMetrics(), nil, nil
	}

	reg := prometheus.NewRegistry()
	mh, err := NewPrometheusMetrics(reg)
	if err != nil {
		return nil, nil, err
	}

	shutdownCh := make(chan context.Context)
	done := make(chan error)
	go serveMetrics(port, reg, shutdownCh, done)
	return mh, func(ctx context.Context) error {
		shutdownCh <- ctx
		close(shutdownCh)
		return <-done
	}, nil
}

func serveMetrics(port int64, gatherer prometheus.Gatherer, shutdownCh <-chan context.Context, done chan<- error) {
	logger.Infof("Serving metrics at localhost:%d/metrics", port)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	prometheusServer := &http.Server{
		Addr:           fmt.Sprintf(":%d", port),
		Handler:        mux,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
	go func() {
		if err := prometheusServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("Failed to start Prometheus server: %v", err)
		}
	}()

	ctx := <-shutdownCh
	logger.Debugf("Shutting down Prometheus exporter.")
	err := prometheusServer.Shutdown(ctx)
	if err != nil {
		logger.Errorf("Error while shutting down Prometheus exporter: %v", err)
	}
	done <- err
	close(done)
}
