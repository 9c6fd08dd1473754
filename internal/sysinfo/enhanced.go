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

package sysinfo

import (
	"strings"

	"github.com/googlecloudplatform/dummygen/internal/logger"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

type enhancedProvider struct {
	basic  Provider
	cgroup *cgroupReader
	env    *envDetector
}

// NewEnhanced returns a provider that adds CPU model, memory and container
// limits gathered through gopsutil and cgroup files.
func NewEnhanced() Provider {
	return &enhancedProvider{
		basic:  NewBasic(),
		cgroup: newCgroupReader(cgroupBase),
		env:    defaultEnvDetector(),
	}
}

func platformString(h *host.InfoStat) string {
	parts := []string{h.OS, h.KernelVersion, h.KernelArch}
	if h.Platform != "" {
		parts = append(parts, h.Platform+"-"+h.PlatformVersion)
	}
	return strings.Join(parts, "-")
}

func (p *enhancedProvider) Collect() Info {
	info := p.basic.Collect()

	if h, err := host.Info(); err != nil {
		logger.Warnf("Error fetching host info: %v", err)
	} else {
		info.Platform = platformString(h)
	}

	if n, err := cpu.Counts(false); err != nil || n <= 0 {
		logger.Debugf("Physical core count not available: %v", err)
	} else {
		info.CPUCores = n
	}
	if n, err := cpu.Counts(true); err != nil || n <= 0 {
		logger.Debugf("Logical CPU count not available: %v", err)
	} else {
		info.CPUThreads = n
	}

	if stats, err := cpu.Info(); err != nil || len(stats) == 0 {
		logger.Debugf("CPU model not available: %v", err)
	} else {
		info.CPUModel = strings.TrimSpace(stats[0].ModelName)
	}

	if v, err := mem.VirtualMemory(); err != nil {
		logger.Warnf("Error fetching memory stats: %v", err)
	} else {
		info.MemoryTotalBytes = v.Total
	}

	info.Container = p.env.isContainer()
	if !info.Container {
		return info
	}

	if limit, err := p.cgroup.cpuLimit(); err != nil {
		logger.Warnf("[cgroup v2/v1] CPU limit not available: %v", err)
	} else {
		info.CPULimit = limit
	}
	if limit, err := p.cgroup.memoryLimit(); err != nil {
		logger.Warnf("[cgroup v2/v1] Memory limit not available: %v", err)
	} else {
		info.MemoryLimitBytes = limit
	}

	return info
}
