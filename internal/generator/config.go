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

package generator

import (
	"fmt"
	"io"
	"os"

	"github.com/googlecloudplatform/dummygen/cfg"
	"github.com/googlecloudplatform/dummygen/internal/sysinfo"
	"github.com/googlecloudplatform/dummygen/internal/writer"
	"github.com/googlecloudplatform/dummygen/metrics"
	"github.com/jacobsa/timeutil"
)

// Config describes the run of a single node. It is not modified once the run
// starts.
type Config struct {
	OutputDir string

	// Number of files this node creates.
	NumFiles int

	// Requested size of each file in bytes. With DirectIO the size is rounded
	// up to a multiple of the block size.
	FileSize int64

	Threads   int
	NodeID    int
	NodeCount int
	DirectIO  bool

	WriteBufferSize int
	FileMode        os.FileMode

	// The node status file is written after every ReportEvery created files.
	ReportEvery int

	// Seed of the file contents. 0 picks a random seed.
	Seed uint64

	// Upper bound on files created per second by the node. 0 is unlimited.
	MaxFilesPerSec float64

	Clock    timeutil.Clock
	Metadata sysinfo.Provider
	Metrics  metrics.MetricHandle

	// Out receives the final statistics. Nil discards them.
	Out io.Writer
}

// NewConfig builds the run configuration from the application config. The
// collaborators are left unset and default in New.
func NewConfig(c *cfg.Config) Config {
	return Config{
		OutputDir:       string(c.Generate.OutputDir),
		NumFiles:        c.Generate.NumFiles,
		FileSize:        cfg.FileSizeBytes(c),
		Threads:         c.Generate.Threads,
		NodeID:          c.Cluster.NodeId,
		NodeCount:       c.Cluster.NodeCount,
		DirectIO:        c.Generate.DirectIo,
		WriteBufferSize: cfg.WriteBufferBytes(c),
		FileMode:        os.FileMode(c.Generate.FileMode),
		ReportEvery:     c.Status.ReportEvery,
		Seed:            c.Generate.Seed,
		MaxFilesPerSec:  c.Generate.MaxFilesPerSec,
		Metadata:        sysinfo.New(c.Status.MetadataProvider),
	}
}

// ConfigError reports a run that could not start. Nothing has been written
// to the output directory when it is returned, apart from the directory
// itself.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErrorf(format string, v ...any) error {
	return &ConfigError{Err: fmt.Errorf(format, v...)}
}

func (c *Config) validate() error {
	if c.OutputDir == "" {
		return configErrorf("output directory is required")
	}
	if c.NodeCount < 1 {
		return configErrorf("node count must be at least 1, got %d", c.NodeCount)
	}
	if c.NodeID < 0 || c.NodeID >= c.NodeCount {
		return configErrorf("node id %d out of range [0, %d)", c.NodeID, c.NodeCount)
	}
	if c.NumFiles < 0 {
		return configErrorf("number of files must not be negative, got %d", c.NumFiles)
	}
	if c.FileSize <= 0 {
		return configErrorf("file size must be positive, got %d", c.FileSize)
	}
	if c.Threads < 1 {
		return configErrorf("thread count must be positive, got %d", c.Threads)
	}
	if c.ReportEvery < 1 {
		return configErrorf("report interval must be positive, got %d", c.ReportEvery)
	}
	if c.MaxFilesPerSec < 0 {
		return configErrorf("max files per second must not be negative, got %v", c.MaxFilesPerSec)
	}
	if c.DirectIO && !writer.DirectIOSupported() {
		return &ConfigError{Err: writer.ErrDirectIOUnsupported}
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Clock == nil {
		c.Clock = timeutil.RealClock()
	}
	if c.Metadata == nil {
		c.Metadata = sysinfo.NewBasic()
	}
	if c.Metrics == nil {
		c.Metrics = metrics.NewNoopMetrics()
	}
	if c.Out == nil {
		c.Out = io.Discard
	}
	if c.WriteBufferSize <= 0 {
		c.WriteBufferSize = cfg.KiB * cfg.KiB
	}
	if c.FileMode == 0 {
		c.FileMode = 0644
	}
}
