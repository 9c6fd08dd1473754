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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/googlecloudplatform/dummygen/internal/logger"
	"github.com/googlecloudplatform/dummygen/internal/util"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentReads bounds the number of status files read in parallel.
const maxConcurrentReads = 16

// Aggregate reads every status file in dir and sums the progress of the
// nodes that wrote them. Files that cannot be read or parsed are skipped with
// a warning; they are treated as nodes without data yet.
//
// The target is filesPerNode*nodeCount. A non-positive filesPerNode or
// nodeCount is taken from the metadata of the first parsed node, which lets
// observers that do not know the run configuration use it.
func Aggregate(ctx context.Context, dir string, nodeCount, filesPerNode int) (*ClusterStatus, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("reading status directory: %w", err)
	}
	paths, err := filepath.Glob(filepath.Join(dir, FilePattern()))
	if err != nil {
		return nil, fmt.Errorf("listing status files: %w", err)
	}
	sort.Strings(paths)

	parsed := make([]*NodeStatus, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := ReadNodeStatus(path)
			if err != nil {
				logger.Warnf("Skipping status file %s: %v", path, err)
				return nil
			}
			parsed[i] = s
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	cs := &ClusterStatus{
		Timestamp: time.Now(),
		Nodes:     make(map[int]NodeStatus),
	}
	for _, s := range parsed {
		if s == nil {
			continue
		}
		if filesPerNode <= 0 {
			filesPerNode = s.NodeMetadata.TargetFiles
		}
		if nodeCount <= 0 {
			nodeCount = s.NodeMetadata.NodeCount
		}
		cs.Nodes[s.NodeID] = *s
	}

	for _, s := range cs.Nodes {
		cs.Aggregate.TotalFilesCreated += s.FilesCreated
		if !s.Active() {
			continue
		}
		cs.Aggregate.ActiveNodes++
		cs.Aggregate.TotalThroughputMBs += *s.ThroughputMBs
		if s.FilesPerSec != nil {
			cs.Aggregate.TotalFilesPerSec += *s.FilesPerSec
		}
	}
	cs.Aggregate.TotalThroughputMBs = util.RoundTo(cs.Aggregate.TotalThroughputMBs, 2)
	cs.Aggregate.TotalFilesPerSec = util.RoundTo(cs.Aggregate.TotalFilesPerSec, 2)

	cs.TotalTargetFiles = max(filesPerNode, 0) * max(nodeCount, 0)
	cs.Aggregate.PercentComplete = percent(cs.Aggregate.TotalFilesCreated, cs.TotalTargetFiles)
	return cs, nil
}

// percent returns created/target as a percentage rounded to one decimal, or
// 0 when there is no target.
func percent(created, target int) float64 {
	if target <= 0 {
		return 0
	}
	return util.RoundTo(float64(created)/float64(target)*100, 1)
}
