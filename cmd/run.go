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

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/googlecloudplatform/dummygen/cfg"
	"github.com/googlecloudplatform/dummygen/common"
	"github.com/googlecloudplatform/dummygen/internal/generator"
	"github.com/googlecloudplatform/dummygen/internal/logger"
	"github.com/googlecloudplatform/dummygen/internal/util"
	"github.com/googlecloudplatform/dummygen/metrics"
	"github.com/jacobsa/syncutil"
)

const shutdownTimeout = 5 * time.Second

// runGenerator runs a node with the given config. Per-file failures are
// reported in the summary and do not make it fail.
func runGenerator(c *cfg.Config) (err error) {
	if err = logger.InitLogFile(c.Logging); err != nil {
		return fmt.Errorf("init log file: %w", err)
	}
	defer logger.Close()

	if c.Debug.ExitOnInvariantViolation {
		syncutil.EnableInvariantChecking()
	}

	logger.Infof("Start dummygen/%s for node %d", common.GetVersion(), c.Cluster.NodeId)
	logger.Infof("Cluster of %d nodes creates %d files in %s", c.Cluster.NodeCount, cfg.TotalTargetFiles(c), c.Generate.OutputDir)
	if cfgStr, err := util.YAMLStringify(c); err != nil {
		logger.Warnf("failed to stringify configuration: %v", err)
	} else {
		logger.Debugf("dummygen config:\n%s", cfgStr)
	}

	mh, metricsShutdown, err := metrics.SetupPrometheus(c.Metrics.PrometheusPort)
	if err != nil {
		return fmt.Errorf("failed to set up metrics: %w", err)
	}
	shutdownFn := common.JoinShutdownFunc(metricsShutdown)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownFn(ctx); err != nil {
			logger.Warnf("Error while shutting down: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gc := generator.NewConfig(c)
	gc.Metrics = mh
	gc.Out = os.Stdout
	s, err := generator.New(gc).Run(ctx)
	if err != nil {
		logger.Errorf("Run of node %d failed: %v", c.Cluster.NodeId, err)
		return err
	}
	logger.Infof("Node %d created %d files at %.2f MiB/s", s.NodeID, s.Created, s.ThroughputMBs())
	return nil
}
