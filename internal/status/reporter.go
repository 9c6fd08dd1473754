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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// Reporter persists node status.
type Reporter interface {
	Report(s *NodeStatus) error
}

// FileReporter writes each node's status to its status file in dir. Readers
// never observe a partially written file: the content goes to a temporary
// file in the same directory, is synced, and then renamed over the old one.
type FileReporter struct {
	dir string
}

func NewFileReporter(dir string) *FileReporter {
	return &FileReporter{dir: dir}
}

// Path returns the status file path of the given node.
func (r *FileReporter) Path(nodeID int) string {
	return filepath.Join(r.dir, FileName(nodeID))
}

func (r *FileReporter) Report(s *NodeStatus) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling status: %w", err)
	}

	path := r.Path(s.NodeID)
	if err = renameio.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadNodeStatus parses a status file.
func ReadNodeStatus(path string) (*NodeStatus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s NodeStatus
	if err = json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}
