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

// Package generator runs one node of a dummy data generation: it writes the
// node's share of the data files with a pool of workers and keeps the node's
// status file up to date.
package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/googlecloudplatform/dummygen/internal/buffer"
	"github.com/googlecloudplatform/dummygen/internal/logger"
	"github.com/googlecloudplatform/dummygen/internal/partition"
	"github.com/googlecloudplatform/dummygen/internal/ratelimit"
	"github.com/googlecloudplatform/dummygen/internal/status"
	"github.com/googlecloudplatform/dummygen/internal/util"
	"github.com/googlecloudplatform/dummygen/internal/writer"
	"github.com/googlecloudplatform/dummygen/metrics"
	"github.com/jacobsa/syncutil"
	"golang.org/x/sys/unix"
)

// State is the phase of a run.
type State int32

const (
	Init State = iota
	Running
	Reporting
	Done
)

func (s State) String() string {
	switch s {
	case Init:
		return "init"
	case Running:
		return "running"
	case Reporting:
		return "reporting"
	case Done:
		return "done"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Generator runs a single node. A Generator runs at most once.
type Generator struct {
	cfg   Config
	state atomic.Int32
	ran   atomic.Bool

	// Set up by setup.
	buf      *buffer.Buffer
	writer   *writer.Writer
	throttle ratelimit.Throttle
	tracker  *status.Tracker
	meta     status.NodeMetadata
	ioMode   string

	created atomic.Int64
	skipped atomic.Int64
	failed  atomic.Int64
	bytes   atomic.Int64
}

// New returns a generator for c. Unset collaborators get their defaults: the
// real clock, the basic metadata provider, no metrics and no output.
func New(c Config) *Generator {
	c.setDefaults()
	return &Generator{cfg: c}
}

// State returns the current phase of the run.
func (g *Generator) State() State {
	return State(g.state.Load())
}

func (g *Generator) setState(s State) {
	logger.Debugf("Node %d: %v -> %v", g.cfg.NodeID, g.State(), s)
	g.state.Store(int32(s))
}

// Run creates the node's files and reports its progress. Errors that prevent
// the run from starting are returned as *ConfigError. Failures of individual
// files are logged and counted in the summary but do not fail the run.
//
// Cancelling ctx stops the workers before their next file; the final status
// is still written.
func (g *Generator) Run(ctx context.Context) (*Summary, error) {
	if !g.ran.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("generator already ran")
	}

	if err := g.setup(); err != nil {
		return nil, err
	}
	defer func() {
		if err := g.buf.Release(); err != nil {
			logger.Warnf("Releasing buffer: %v", err)
		}
	}()

	start := g.cfg.Clock.Now()
	g.tracker.Start()

	g.setState(Running)
	runErr := g.writeAll(ctx)

	g.setState(Reporting)
	final := g.tracker.Finish()
	if str, err := util.Stringify(final); err == nil {
		logger.Debugf("Final status of node %d: %s", g.cfg.NodeID, str)
	}

	g.setState(Done)
	s := &Summary{
		NodeID:       g.cfg.NodeID,
		Created:      int(g.created.Load()),
		Skipped:      int(g.skipped.Load()),
		Failed:       int(g.failed.Load()),
		BytesWritten: g.bytes.Load(),
		Elapsed:      g.cfg.Clock.Now().Sub(start),
		Status:       final,
	}

	// Other nodes may still be running; their progress is reported as is.
	cs, err := status.Aggregate(context.WithoutCancel(ctx), g.cfg.OutputDir, g.cfg.NodeCount, g.cfg.NumFiles)
	if err != nil {
		logger.Warnf("Unable to aggregate cluster status: %v", err)
	}
	s.Cluster = cs

	if err = s.Print(g.cfg.Out); err != nil {
		logger.Warnf("Unable to print summary: %v", err)
	}

	return s, runErr
}

// setup prepares everything the workers share. Nothing but the output
// directory is created when it fails.
func (g *Generator) setup() error {
	c := &g.cfg
	if err := c.validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(c.OutputDir, 0755); err != nil {
		return &ConfigError{Err: fmt.Errorf("creating output directory: %w", err)}
	}
	if err := unix.Access(c.OutputDir, unix.W_OK); err != nil {
		return &ConfigError{Err: fmt.Errorf("output directory %s is not writable: %w", c.OutputDir, err)}
	}

	buf, err := buffer.New(c.FileSize, c.DirectIO, c.Seed)
	if err != nil {
		return &ConfigError{Err: fmt.Errorf("allocating write buffer: %w", err)}
	}
	if buf.Len() != c.FileSize {
		logger.Infof("File size rounded up from %d to %d bytes for direct I/O", c.FileSize, buf.Len())
	}
	g.buf = buf

	g.writer = writer.New(c.DirectIO, c.WriteBufferSize, c.FileMode)
	g.ioMode = metrics.IOModeBuffered
	if g.writer.Direct() {
		g.ioMode = metrics.IOModeDirect
	}
	g.throttle = ratelimit.NewThrottle(c.MaxFilesPerSec, c.Threads)

	host := c.Metadata.Collect()
	logger.Debugf("Host: %v", host)
	g.meta = status.NodeMetadata{
		NodeID:      c.NodeID,
		NodeCount:   c.NodeCount,
		ThreadCount: c.Threads,
		FileSizeKB:  buf.Len() / 1024,
		TargetFiles: c.NumFiles,
		RunID:       uuid.NewString(),
		DirectIO:    c.DirectIO,
	}
	g.meta.SetHost(host)

	reporter := status.NewFileReporter(c.OutputDir)
	g.tracker = status.NewTracker(c.Clock, reporter, c.Metrics, g.meta, buf.Len(), c.ReportEvery)

	logger.Infof(
		"Node %d/%d: creating %d files of %d bytes in %s with %d threads (run %s, seed %d)",
		c.NodeID, c.NodeCount, c.NumFiles, buf.Len(), c.OutputDir, c.Threads, g.meta.RunID, buf.Seed())
	return nil
}

// writeAll runs one worker per non-empty partition and waits for all of them.
func (g *Generator) writeAll(ctx context.Context) error {
	b := syncutil.NewBundle(ctx)
	for _, r := range partition.Split(g.cfg.NumFiles, g.cfg.Threads) {
		if r.Empty() {
			continue
		}
		b.Add(func(ctx context.Context) error {
			return g.writeRange(ctx, r)
		})
	}
	return b.Join()
}

// writeRange writes the files of r in order.
func (g *Generator) writeRange(ctx context.Context, r partition.Range) error {
	for local := r.Start; local < r.End; local++ {
		if err := g.throttle.Wait(ctx, 1); err != nil {
			return err
		}
		g.writeOne(ctx, local)
	}
	return nil
}

func (g *Generator) writeOne(ctx context.Context, local int) {
	global := partition.GlobalIndex(local, g.cfg.NodeID, g.cfg.NodeCount)
	path := filepath.Join(g.cfg.OutputDir, partition.DataFileName(g.cfg.NodeID, global))

	start := time.Now()
	res := g.writer.Write(path, g.buf.Bytes())
	g.cfg.Metrics.FilesCount(1, res.Outcome.String())

	switch res.Outcome {
	case writer.Written:
		g.cfg.Metrics.WriteLatency(ctx, time.Since(start), g.ioMode)
		g.cfg.Metrics.BytesWrittenCount(res.Bytes)
		g.created.Add(1)
		g.bytes.Add(res.Bytes)
		g.tracker.FileCreated()
		logger.Tracef("Wrote %s", path)

	case writer.Skipped:
		g.skipped.Add(1)
		logger.Warnf("File %s already exists, skipping", path)

	case writer.Failed:
		g.failed.Add(1)
		logger.Errorf("Failed to write %s: %v", path, res.Err)
	}
}
