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

// Package partition splits a node's files between workers and maps them to
// cluster-wide indices and names.
package partition

import "fmt"

// Range is the half-open interval [Start, End) of local file indices owned by
// one worker.
type Range struct {
	Start int
	End   int
}

// Len returns the number of files in r.
func (r Range) Len() int {
	return r.End - r.Start
}

// Empty reports whether r holds no files.
func (r Range) Empty() bool {
	return r.Len() <= 0
}

// Split divides n files between t workers. It returns exactly t contiguous
// ranges that cover [0, n) in order; the first n mod t ranges get one file
// more than the others. Ranges are empty when t > n.
func Split(n, t int) []Range {
	if t <= 0 {
		return nil
	}
	if n < 0 {
		n = 0
	}

	per, remaining := n/t, n%t
	ranges := make([]Range, t)
	for i := range ranges {
		start := i*per + min(i, remaining)
		end := start + per
		if i < remaining {
			end++
		}
		ranges[i] = Range{Start: start, End: end}
	}
	return ranges
}

// GlobalIndex interleaves the local index of a file with the other nodes so
// that indices never collide across the cluster.
func GlobalIndex(local, nodeID, nodeCount int) int {
	return local*nodeCount + nodeID
}

// DataFileName returns the name of the data file with the given global index.
func DataFileName(nodeID, global int) string {
	return fmt.Sprintf("dummy_n%d_%d.dat", nodeID, global)
}
