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

package cfg

import (
	"fmt"
	"runtime"

	"github.com/googlecloudplatform/dummygen/internal/writer"
)

const (
	NumFilesInvalidValueError      = "the value of num-files can't be negative"
	SizeKBInvalidValueError        = "the value of size-kb should be atleast 1"
	SizeKBTooHighError             = "the value of size-kb is too high to be supported. Max is 67108864"
	ThreadsInvalidValueError       = "the value of threads should be atleast 1"
	WriteBufferKBInvalidValueError = "the value of write-buffer-kb should be between 1 and 1048576"
	MaxFilesPerSecInvalidError     = "the value of max-files-per-sec can't be negative"
	NodeCountInvalidValueError     = "the value of node-count should be atleast 1"
	ReportEveryInvalidValueError   = "the value of report-every should be atleast 1"
	PrometheusPortInvalidError     = "the value of prometheus-port should be between 0 and 65535"
)

func isValidLogRotateConfig(config *LogRotateLoggingConfig) error {
	if config.MaxFileSizeMb <= 0 {
		return fmt.Errorf("max-file-size-mb should be atleast 1")
	}
	if config.BackupFileCount < 0 {
		return fmt.Errorf("backup-file-count should be 0 (to retain all backup files) or a positive value")
	}
	return nil
}

func isValidGenerateConfig(c *GenerateConfig) error {
	if c.NumFiles < 0 {
		return fmt.Errorf(NumFilesInvalidValueError)
	}
	if c.SizeKb <= 0 {
		return fmt.Errorf(SizeKBInvalidValueError)
	}
	if c.SizeKb > MaxFileSizeKB {
		return fmt.Errorf(SizeKBTooHighError)
	}
	if c.Threads <= 0 {
		return fmt.Errorf(ThreadsInvalidValueError)
	}
	if c.WriteBufferKb <= 0 || c.WriteBufferKb > MaxWriteBufferKB {
		return fmt.Errorf(WriteBufferKBInvalidValueError)
	}
	if c.MaxFilesPerSec < 0 {
		return fmt.Errorf(MaxFilesPerSecInvalidError)
	}
	if c.DirectIo && !writer.DirectIOSupported() {
		return fmt.Errorf("direct-io is not supported on %s", runtime.GOOS)
	}
	return nil
}

func isValidClusterConfig(c *ClusterConfig) error {
	if c.NodeCount < 1 {
		return fmt.Errorf(NodeCountInvalidValueError)
	}
	if c.NodeId < 0 || c.NodeId >= c.NodeCount {
		return fmt.Errorf("node-id must be in [0, %d), got %d", c.NodeCount, c.NodeId)
	}
	return nil
}

// ValidateConfig returns a non-nil error if the config is invalid.
func ValidateConfig(config *Config) error {
	var err error

	if err = isValidGenerateConfig(&config.Generate); err != nil {
		return fmt.Errorf("error parsing generate config: %w", err)
	}

	if err = isValidClusterConfig(&config.Cluster); err != nil {
		return fmt.Errorf("error parsing cluster config: %w", err)
	}

	if config.Status.ReportEvery < 1 {
		return fmt.Errorf("error parsing status config: %s", ReportEveryInvalidValueError)
	}

	if err = isValidLogRotateConfig(&config.Logging.LogRotate); err != nil {
		return fmt.Errorf("error parsing log-rotate config: %w", err)
	}

	if config.Metrics.PrometheusPort < 0 || config.Metrics.PrometheusPort > 65535 {
		return fmt.Errorf("error parsing metrics config: %s", PrometheusPortInvalidError)
	}

	return nil
}
