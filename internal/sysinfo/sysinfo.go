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

// Package sysinfo collects the host metadata recorded in node status files.
package sysinfo

import (
	"fmt"
	"os"
	"runtime"

	"github.com/googlecloudplatform/dummygen/cfg"
	"github.com/googlecloudplatform/dummygen/internal/logger"
)

// Info describes the host a node runs on. Fields past CPUThreads are only
// filled by the enhanced provider and are zero when unknown.
type Info struct {
	Hostname   string
	Platform   string
	CPUCores   int
	CPUThreads int

	CPUModel         string
	MemoryTotalBytes uint64
	// CPULimit is the cgroup CPU quota in cores, or 0 when unlimited.
	CPULimit float64
	// MemoryLimitBytes is the cgroup memory limit, or 0 when unlimited.
	MemoryLimitBytes int64
	Container        bool
}

// Provider collects host metadata. Collect never fails; values it cannot
// determine are left at their basic defaults.
type Provider interface {
	Collect() Info
}

// New returns the provider selected by kind.
func New(kind cfg.MetadataProviderKind) Provider {
	if kind == cfg.BasicMetadataProvider {
		return NewBasic()
	}
	return NewEnhanced()
}

type basicProvider struct{}

// NewBasic returns a provider that only uses the Go runtime and the OS
// hostname.
func NewBasic() Provider {
	return basicProvider{}
}

func (basicProvider) Collect() Info {
	hostname, err := os.Hostname()
	if err != nil {
		logger.Warnf("Unable to get hostname: %v", err)
		hostname = "unknown"
	}

	return Info{
		Hostname:   hostname,
		Platform:   runtime.GOOS + "-" + runtime.GOARCH,
		CPUCores:   runtime.NumCPU(),
		CPUThreads: runtime.NumCPU(),
	}
}

func (i Info) String() string {
	return fmt.Sprintf("%s (%s, %d cores/%d threads)", i.Hostname, i.Platform, i.CPUCores, i.CPUThreads)
}
