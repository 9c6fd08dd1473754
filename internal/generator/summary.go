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
	"strings"
	"time"

	"github.com/googlecloudplatform/dummygen/internal/format"
	"github.com/googlecloudplatform/dummygen/internal/status"
	"github.com/googlecloudplatform/dummygen/internal/util"
)

// Summary is the outcome of a node's run.
type Summary struct {
	NodeID       int
	Created      int
	Skipped      int
	Failed       int
	BytesWritten int64
	Elapsed      time.Duration

	// The final status written by the node.
	Status status.NodeStatus

	// The cluster view after the node finished, or nil if it could not be
	// built.
	Cluster *status.ClusterStatus
}

// rate is the average write rate of the node in bytes per second, or 0 if no
// time elapsed.
func (s *Summary) rate() float64 {
	secs := s.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(s.BytesWritten) / secs
}

// ThroughputMBs is the average write rate of the node over the whole run in
// MiB/s, or 0 if no time elapsed.
func (s *Summary) ThroughputMBs() float64 {
	return util.RoundTo(util.BytesToMiBs(int64(s.rate())), 2)
}

// Print writes the human readable statistics of the run to w.
func (s *Summary) Print(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Node %d finished in %v\n", s.NodeID, s.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(&b, "  Files created: %d\n", s.Created)
	fmt.Fprintf(&b, "  Files skipped: %d\n", s.Skipped)
	fmt.Fprintf(&b, "  Files failed:  %d\n", s.Failed)
	fmt.Fprintf(&b, "  Data written:  %s\n", format.Bytes(float64(s.BytesWritten)))
	fmt.Fprintf(&b, "  Throughput:    %s\n", format.Rate(s.rate()))

	if cs := s.Cluster; cs != nil {
		a := cs.Aggregate
		fmt.Fprintf(&b, "Cluster: %d/%d files (%.1f%%) from %d nodes, %d active\n",
			a.TotalFilesCreated, cs.TotalTargetFiles, a.PercentComplete, len(cs.Nodes), a.ActiveNodes)
		fmt.Fprintf(&b, "  Throughput:    %.2f MiB/s, %.2f files/s\n", a.TotalThroughputMBs, a.TotalFilesPerSec)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
