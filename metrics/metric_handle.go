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

package metrics

import (
	"context"
	"time"
)

// Values of the outcome attribute of FilesCount.
const (
	OutcomeWritten = "written"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// Values of the io_mode attribute of WriteLatency.
const (
	IOModeBuffered = "buffered"
	IOModeDirect   = "direct"
)

// Values of the status attribute of StatusReportCount.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// MetricHandle records the metrics of a generator run.
type MetricHandle interface {
	// FilesCount - The cumulative number of files processed along with the outcome: written, skipped or failed.
	FilesCount(inc int64, outcome string)

	// BytesWrittenCount - The cumulative number of bytes written to data files.
	BytesWrittenCount(inc int64)

	// WriteLatency - The cumulative distribution of whole-file write latencies along with the io mode: buffered or direct.
	WriteLatency(ctx context.Context, duration time.Duration, ioMode string)

	// StatusReportCount - The cumulative number of node status file writes along with the status: ok or failed.
	StatusReportCount(inc int64, status string)
}
