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
	"runtime"
)

// DefaultThreads is the worker count used when threads is unset or 0.
func DefaultThreads() int {
	return max(1, runtime.NumCPU())
}

// FileSizeBytes returns the configured per-file size in bytes.
func FileSizeBytes(c *Config) int64 {
	return c.Generate.SizeKb * KiB
}

// WriteBufferBytes returns the configured write buffer size in bytes.
func WriteBufferBytes(c *Config) int {
	return int(c.Generate.WriteBufferKb * KiB)
}

// TotalTargetFiles is the number of files the whole cluster creates.
func TotalTargetFiles(c *Config) int {
	return c.Generate.NumFiles * c.Cluster.NodeCount
}
