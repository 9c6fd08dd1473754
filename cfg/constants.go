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

const (
	// Logging-level constants

	TRACE   string = "TRACE"
	DEBUG   string = "DEBUG"
	INFO    string = "INFO"
	WARNING string = "WARNING"
	ERROR   string = "ERROR"
	OFF     string = "OFF"
)

const (
	// ThreadsConfigKey is the viper key of the worker count.
	ThreadsConfigKey = "generate.threads"
	// NodeIDConfigKey is the viper key of the node id.
	NodeIDConfigKey = "cluster.node-id"
	// NodeCountConfigKey is the viper key of the node count.
	NodeCountConfigKey = "cluster.node-count"
	// LogSeverityConfigKey is the viper key of the log severity.
	LogSeverityConfigKey = "logging.severity"
)

const (
	// KiB is the unit of the size-kb and write-buffer-kb flags.
	KiB = 1024

	// MaxFileSizeKB bounds size-kb so that a single buffer allocation can hold
	// one file (64 GiB).
	MaxFileSizeKB = 64 * 1024 * 1024

	// MaxWriteBufferKB is the max value supported by the write-buffer-kb flag.
	MaxWriteBufferKB = 1024 * 1024
)
