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

// Package status maintains the per-node status files that nodes of a run use
// to observe each other's progress, and aggregates them into a cluster view.
package status

import (
	"fmt"
	"time"

	"github.com/googlecloudplatform/dummygen/internal/sysinfo"
)

const (
	statusFilePrefix = ".dummy_data_status_node"
	statusFileSuffix = ".json"
)

// FileName returns the name of the status file of the given node.
func FileName(nodeID int) string {
	return fmt.Sprintf("%s%d%s", statusFilePrefix, nodeID, statusFileSuffix)
}

// FilePattern matches the status files of all nodes.
func FilePattern() string {
	return statusFilePrefix + "*" + statusFileSuffix
}

// NodeMetadata describes the configuration and host of a node. It does not
// change during a run.
type NodeMetadata struct {
	NodeID      int       `json:"node_id" yaml:"node_id"`
	NodeCount   int       `json:"node_count" yaml:"node_count"`
	ThreadCount int       `json:"thread_count" yaml:"thread_count"`
	FileSizeKB  int64     `json:"file_size_kb" yaml:"file_size_kb"`
	TargetFiles int       `json:"target_files" yaml:"target_files"`
	Hostname    string    `json:"hostname" yaml:"hostname"`
	StartTime   time.Time `json:"start_time" yaml:"start_time"`
	Platform    string    `json:"platform" yaml:"platform"`
	CPUCores    int       `json:"cpu_cores" yaml:"cpu_cores"`
	CPUThreads  int       `json:"cpu_threads" yaml:"cpu_threads"`
	RunID       string    `json:"run_id" yaml:"run_id"`
	DirectIO    bool      `json:"direct_io" yaml:"direct_io"`

	// Only reported by the enhanced metadata provider.
	CPUModel         string  `json:"cpu_model,omitempty" yaml:"cpu_model,omitempty"`
	MemoryTotalBytes uint64  `json:"memory_total_bytes,omitempty" yaml:"memory_total_bytes,omitempty"`
	CPULimit         float64 `json:"cpu_limit,omitempty" yaml:"cpu_limit,omitempty"`
	MemoryLimitBytes int64   `json:"memory_limit_bytes,omitempty" yaml:"memory_limit_bytes,omitempty"`
	Container        bool    `json:"container,omitempty" yaml:"container,omitempty"`
}

// SetHost copies the host description collected by a metadata provider.
func (m *NodeMetadata) SetHost(info sysinfo.Info) {
	m.Hostname = info.Hostname
	m.Platform = info.Platform
	m.CPUCores = info.CPUCores
	m.CPUThreads = info.CPUThreads
	m.CPUModel = info.CPUModel
	m.MemoryTotalBytes = info.MemoryTotalBytes
	m.CPULimit = info.CPULimit
	m.MemoryLimitBytes = info.MemoryLimitBytes
	m.Container = info.Container
}

// NodeStatus is the content of a node's status file. The rates are nil until
// the first report after some files were created.
type NodeStatus struct {
	NodeID          int       `json:"node_id" yaml:"node_id"`
	FilesCreated    int       `json:"files_created" yaml:"files_created"`
	PercentComplete float64   `json:"percent_complete" yaml:"percent_complete"`
	LastUpdate      time.Time `json:"last_update" yaml:"last_update"`
	// ThroughputMBs is the write rate in MiB/s over the files created since
	// the previous report.
	ThroughputMBs *float64 `json:"throughput_mb_s" yaml:"throughput_mb_s"`
	// FilesPerSec is the average creation rate since the start of the run.
	FilesPerSec  *float64     `json:"files_per_sec" yaml:"files_per_sec"`
	NodeMetadata NodeMetadata `json:"node_metadata" yaml:"node_metadata"`
}

// Active reports whether the node has reported a throughput yet.
func (s *NodeStatus) Active() bool {
	return s.ThroughputMBs != nil
}

// clone returns a copy of s that shares no pointers with it.
func (s *NodeStatus) clone() NodeStatus {
	c := *s
	if s.ThroughputMBs != nil {
		v := *s.ThroughputMBs
		c.ThroughputMBs = &v
	}
	if s.FilesPerSec != nil {
		v := *s.FilesPerSec
		c.FilesPerSec = &v
	}
	return c
}

// AggregateStats sums the progress of all nodes.
type AggregateStats struct {
	TotalFilesCreated  int     `json:"total_files_created" yaml:"total_files_created"`
	TotalThroughputMBs float64 `json:"total_throughput_mb_s" yaml:"total_throughput_mb_s"`
	TotalFilesPerSec   float64 `json:"total_files_per_sec" yaml:"total_files_per_sec"`
	ActiveNodes        int     `json:"active_nodes" yaml:"active_nodes"`
	PercentComplete    float64 `json:"percent_complete" yaml:"percent_complete"`
}

// ClusterStatus is a point-in-time view of all status files in a directory.
// It is computed on demand and never written to disk.
type ClusterStatus struct {
	Timestamp        time.Time          `json:"timestamp" yaml:"timestamp"`
	TotalTargetFiles int                `json:"total_target_files" yaml:"total_target_files"`
	Nodes            map[int]NodeStatus `json:"nodes" yaml:"nodes"`
	Aggregate        AggregateStats     `json:"aggregate" yaml:"aggregate"`
}
