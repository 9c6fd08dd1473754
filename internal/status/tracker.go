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

package status

import (
	"fmt"
	"time"

	"github.com/googlecloudplatform/dummygen/internal/logger"
	"github.com/googlecloudplatform/dummygen/internal/util"
	"github.com/googlecloudplatform/dummygen/metrics"
	"github.com/jacobsa/syncutil"
	"github.com/jacobsa/timeutil"
)

// Tracker counts the files a node creates and reports its status every
// reportEvery files. It is the only state shared between the workers of a
// node, and all of it is guarded by one lock.
type Tracker struct {
	/////////////////////////
	// Dependencies
	/////////////////////////

	clock    timeutil.Clock
	reporter Reporter
	metrics  metrics.MetricHandle

	/////////////////////////
	// Constant data
	/////////////////////////

	fileSize    int64
	reportEvery int
	target      int

	/////////////////////////
	// Mutable state
	/////////////////////////

	mu syncutil.InvariantMutex

	// The number of files created by this node so far.
	//
	// INVARIANT: 0 <= created <= target
	//
	// GUARDED_BY(mu)
	created int

	// GUARDED_BY(mu)
	startTime time.Time

	// Time and created count of the last status update.
	//
	// INVARIANT: 0 <= lastReportCount <= created
	//
	// GUARDED_BY(mu)
	lastReportTime  time.Time
	lastReportCount int

	// INVARIANT: status.FilesCreated == lastReportCount
	//
	// GUARDED_BY(mu)
	status NodeStatus
}

// NewTracker returns a tracker for a node described by meta, whose files are
// fileSize bytes long.
func NewTracker(
	clock timeutil.Clock,
	reporter Reporter,
	mh metrics.MetricHandle,
	meta NodeMetadata,
	fileSize int64,
	reportEvery int) (t *Tracker) {
	t = &Tracker{
		clock:       clock,
		reporter:    reporter,
		metrics:     mh,
		fileSize:    fileSize,
		reportEvery: max(reportEvery, 1),
		target:      meta.TargetFiles,
		status: NodeStatus{
			NodeID:       meta.NodeID,
			NodeMetadata: meta,
		},
	}

	t.mu = syncutil.NewInvariantMutex(t.checkInvariants)

	return
}

////////////////////////////////////////////////////////////////////////
// Helpers
////////////////////////////////////////////////////////////////////////

func (t *Tracker) checkInvariants() {
	if t.created < 0 || t.created > t.target {
		panic(fmt.Sprintf("created %d out of range [0, %d]", t.created, t.target))
	}

	if t.lastReportCount < 0 || t.lastReportCount > t.created {
		panic(fmt.Sprintf("lastReportCount %d out of range [0, %d]", t.lastReportCount, t.created))
	}

	if t.status.FilesCreated != t.lastReportCount {
		panic(fmt.Sprintf("status.FilesCreated %d != lastReportCount %d", t.status.FilesCreated, t.lastReportCount))
	}
}

// updateLocked refreshes the status with the progress made since the last
// update. The throughput covers the files created since the last update; it
// is left unchanged when there are none or no time has passed.
//
// LOCKS_REQUIRED(t.mu)
func (t *Tracker) updateLocked(now time.Time) {
	if n := t.created - t.lastReportCount; n > 0 {
		if window := now.Sub(t.lastReportTime).Seconds(); window > 0 {
			mbs := util.RoundTo(util.BytesToMiBs(int64(n)*t.fileSize)/window, 2)
			t.status.ThroughputMBs = &mbs
		}
	}

	if elapsed := now.Sub(t.startTime).Seconds(); elapsed > 0 && t.created > 0 {
		fps := util.RoundTo(float64(t.created)/elapsed, 2)
		t.status.FilesPerSec = &fps
	}

	t.status.FilesCreated = t.created
	t.status.PercentComplete = percent(t.created, t.target)
	t.status.LastUpdate = now
	t.lastReportTime = now
	t.lastReportCount = t.created
}

// reportLocked persists the current status. Failures are logged and retried
// by the next report.
//
// LOCKS_REQUIRED(t.mu)
func (t *Tracker) reportLocked() {
	if err := t.reporter.Report(&t.status); err != nil {
		logger.Warnf("Failed to write status of node %d: %v", t.status.NodeID, err)
		t.metrics.StatusReportCount(1, metrics.StatusFailed)
		return
	}
	t.metrics.StatusReportCount(1, metrics.StatusOK)
}

////////////////////////////////////////////////////////////////////////
// Public interface
////////////////////////////////////////////////////////////////////////

// Start records the start of the run and writes the initial status, with no
// files and no rates.
//
// LOCKS_EXCLUDED(t.mu)
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.startTime = t.clock.Now()
	t.lastReportTime = t.startTime
	t.status.NodeMetadata.StartTime = t.startTime
	t.status.LastUpdate = t.startTime
	t.status.PercentComplete = percent(0, t.target)
	t.reportLocked()
}

// FileCreated counts one created file, and writes the status when the count
// reaches a multiple of the report interval.
//
// LOCKS_EXCLUDED(t.mu)
func (t *Tracker) FileCreated() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.created++
	if t.created%t.reportEvery != 0 {
		return
	}

	t.updateLocked(t.clock.Now())
	t.reportLocked()
}

// Finish writes the final status regardless of the report interval and
// returns it.
//
// LOCKS_EXCLUDED(t.mu)
func (t *Tracker) Finish() NodeStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.updateLocked(t.clock.Now())
	t.reportLocked()
	return t.status.clone()
}

// Created returns the number of files created so far.
//
// LOCKS_EXCLUDED(t.mu)
func (t *Tracker) Created() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.created
}

// Snapshot returns the last reported status.
//
// LOCKS_EXCLUDED(t.mu)
func (t *Tracker) Snapshot() NodeStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.status.clone()
}
