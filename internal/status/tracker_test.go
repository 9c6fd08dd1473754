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
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/googlecloudplatform/dummygen/metrics"
	"github.com/jacobsa/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// fakeReporter records every reported status.
type fakeReporter struct {
	mu      sync.Mutex
	reports []NodeStatus
	err     error
}

func (r *fakeReporter) Report(s *NodeStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.reports = append(r.reports, s.clone())
	return nil
}

func (r *fakeReporter) Reports() []NodeStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]NodeStatus(nil), r.reports...)
}

type trackerTest struct {
	suite.Suite
	clock    timeutil.SimulatedClock
	reporter *fakeReporter
	start    time.Time
}

func TestTrackerSuite(t *testing.T) {
	suite.Run(t, new(trackerTest))
}

func (t *trackerTest) SetupTest() {
	t.start = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	t.clock.SetTime(t.start)
	t.reporter = &fakeReporter{}
}

func (t *trackerTest) newTracker(target int, fileSize int64, reportEvery int) *Tracker {
	meta := NodeMetadata{NodeID: 2, NodeCount: 3, TargetFiles: target}
	return NewTracker(&t.clock, t.reporter, metrics.NewNoopMetrics(), meta, fileSize, reportEvery)
}

func (t *trackerTest) createFiles(tr *Tracker, n int) {
	for range n {
		tr.FileCreated()
	}
}

func (t *trackerTest) TestStartReportsEmptyStatus() {
	tr := t.newTracker(100, 1024, 10)

	tr.Start()

	reports := t.reporter.Reports()
	require.Len(t.T(), reports, 1)
	s := reports[0]
	assert.Equal(t.T(), 2, s.NodeID)
	assert.Equal(t.T(), 0, s.FilesCreated)
	assert.Equal(t.T(), 0.0, s.PercentComplete)
	assert.Nil(t.T(), s.ThroughputMBs)
	assert.Nil(t.T(), s.FilesPerSec)
	assert.True(t.T(), t.start.Equal(s.LastUpdate))
	assert.True(t.T(), t.start.Equal(s.NodeMetadata.StartTime))
	assert.False(t.T(), s.Active())
}

func (t *trackerTest) TestReportsEveryKFiles() {
	tr := t.newTracker(100, 1024, 10)
	tr.Start()

	t.createFiles(tr, 9)
	assert.Len(t.T(), t.reporter.Reports(), 1)

	tr.FileCreated()
	assert.Len(t.T(), t.reporter.Reports(), 2)

	t.createFiles(tr, 25)
	reports := t.reporter.Reports()
	require.Len(t.T(), reports, 4)
	assert.Equal(t.T(), 30, reports[3].FilesCreated)
	assert.Equal(t.T(), 35, tr.Created())
	assert.Equal(t.T(), 30, tr.Snapshot().FilesCreated)
}

func (t *trackerTest) TestRates() {
	tr := t.newTracker(20, 1<<20, 10)
	tr.Start()

	// 10 files of 1 MiB in 2 seconds.
	t.clock.AdvanceTime(2 * time.Second)
	t.createFiles(tr, 10)

	s := tr.Snapshot()
	require.NotNil(t.T(), s.ThroughputMBs)
	require.NotNil(t.T(), s.FilesPerSec)
	assert.Equal(t.T(), 5.0, *s.ThroughputMBs)
	assert.Equal(t.T(), 5.0, *s.FilesPerSec)
	assert.Equal(t.T(), 50.0, s.PercentComplete)
	assert.True(t.T(), t.start.Add(2*time.Second).Equal(s.LastUpdate))

	// The throughput covers only the files since the previous report, the
	// file rate the whole run.
	t.clock.AdvanceTime(4 * time.Second)
	t.createFiles(tr, 10)

	s = tr.Snapshot()
	assert.Equal(t.T(), 2.5, *s.ThroughputMBs)
	assert.Equal(t.T(), 3.33, *s.FilesPerSec)
	assert.Equal(t.T(), 100.0, s.PercentComplete)
}

func (t *trackerTest) TestFinishReportsRemainder() {
	tr := t.newTracker(15, 1<<20, 10)
	tr.Start()
	t.clock.AdvanceTime(time.Second)
	t.createFiles(tr, 10)
	t.clock.AdvanceTime(time.Second)
	t.createFiles(tr, 5)

	s := tr.Finish()

	reports := t.reporter.Reports()
	require.Len(t.T(), reports, 3)
	assert.Equal(t.T(), 15, s.FilesCreated)
	assert.Equal(t.T(), 15, reports[2].FilesCreated)
	assert.Equal(t.T(), 100.0, s.PercentComplete)
	assert.Equal(t.T(), 5.0, *s.ThroughputMBs)
	assert.Equal(t.T(), 7.5, *s.FilesPerSec)
}

func (t *trackerTest) TestFinishWithoutNewFilesKeepsThroughput() {
	tr := t.newTracker(10, 1<<20, 10)
	tr.Start()
	t.clock.AdvanceTime(2 * time.Second)
	t.createFiles(tr, 10)
	t.clock.AdvanceTime(8 * time.Second)

	s := tr.Finish()

	assert.Equal(t.T(), 5.0, *s.ThroughputMBs)
	assert.Equal(t.T(), 1.0, *s.FilesPerSec)
	assert.True(t.T(), t.start.Add(10*time.Second).Equal(s.LastUpdate))
}

func (t *trackerTest) TestFinishWithNoFiles() {
	tr := t.newTracker(0, 1024, 10)
	tr.Start()
	t.clock.AdvanceTime(time.Second)

	s := tr.Finish()

	assert.Equal(t.T(), 0, s.FilesCreated)
	assert.Equal(t.T(), 0.0, s.PercentComplete)
	assert.Nil(t.T(), s.ThroughputMBs)
	assert.Nil(t.T(), s.FilesPerSec)
}

func (t *trackerTest) TestNoElapsedTimeLeavesRatesUnset() {
	tr := t.newTracker(10, 1024, 5)
	tr.Start()

	t.createFiles(tr, 5)

	s := tr.Snapshot()
	assert.Equal(t.T(), 5, s.FilesCreated)
	assert.Nil(t.T(), s.ThroughputMBs)
	assert.Nil(t.T(), s.FilesPerSec)
}

func (t *trackerTest) TestReportFailureDoesNotStopTracking() {
	t.reporter.err = errors.New("disk full")
	tr := t.newTracker(10, 1024, 1)
	tr.Start()
	t.clock.AdvanceTime(time.Second)

	t.createFiles(tr, 3)

	assert.Equal(t.T(), 3, tr.Created())
	assert.Equal(t.T(), 3, tr.Snapshot().FilesCreated)
	assert.Empty(t.T(), t.reporter.Reports())
}

func (t *trackerTest) TestSnapshotIsACopy() {
	tr := t.newTracker(10, 1024, 1)
	tr.Start()
	t.clock.AdvanceTime(time.Second)
	tr.FileCreated()

	s := tr.Snapshot()
	*s.ThroughputMBs = 1000

	assert.NotEqual(t.T(), 1000.0, *tr.Snapshot().ThroughputMBs)
}

func (t *trackerTest) TestConcurrentFileCreated() {
	const workers, perWorker = 8, 125
	tr := t.newTracker(workers*perWorker, 1024, 10)
	tr.Start()
	t.clock.AdvanceTime(time.Second)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			t.createFiles(tr, perWorker)
		}()
	}
	wg.Wait()

	assert.Equal(t.T(), workers*perWorker, tr.Created())
	reports := t.reporter.Reports()
	// The initial report plus one per 10 files.
	require.Len(t.T(), reports, 1+workers*perWorker/10)
	for i := 1; i < len(reports); i++ {
		assert.Equal(t.T(), 10*i, reports[i].FilesCreated)
	}
}
