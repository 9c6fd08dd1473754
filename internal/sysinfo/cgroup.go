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
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	cgroupBase = "/sys/fs/cgroup"

	// cgroup v1 reports this (or more) when no memory limit is set.
	cgroupV1NoMemoryLimit = 9000000000000000000
)

// cgroupReader reads CPU and memory limits from a cgroup v2 unified
// hierarchy, falling back to the v1 layout, under root.
type cgroupReader struct {
	root string
}

func newCgroupReader(root string) *cgroupReader {
	return &cgroupReader{root: root}
}

func (c *cgroupReader) readFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(content)), nil
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

// cpuLimit returns the CPU quota in cores, or 0 when there is no quota.
func (c *cgroupReader) cpuLimit() (float64, error) {
	quota, period, err := c.cgroupV2CPULimit()
	if err != nil {
		var errV1 error
		quota, period, errV1 = c.cgroupV1CPULimit()
		if errV1 != nil {
			return 0, fmt.Errorf("%v; %w", err, errV1)
		}
	}

	if quota <= 0 || period <= 0 {
		return 0, nil
	}
	return float64(quota) / float64(period), nil
}

func (c *cgroupReader) cgroupV2CPULimit() (quota int64, period int64, err error) {
	filePath := filepath.Join(c.root, "cpu.max")
	content, err := c.readFile(filePath)
	if err != nil {
		return 0, 0, fmt.Errorf("cgroup v2: could not read %s: %w", filePath, err)
	}

	parts := strings.Fields(content)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("cgroup v2: invalid format in cpu.max: expected '$QUOTA $PERIOD', got '%s'", content)
	}

	period, err = parseInt64(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("cgroup v2: could not parse period from cpu.max '%s': %w", content, err)
	}

	if parts[0] == "max" {
		return -1, period, nil
	}

	quota, err = parseInt64(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("cgroup v2: could not parse quota from cpu.max '%s': %w", content, err)
	}
	return quota, period, nil
}

func (c *cgroupReader) cgroupV1CPULimit() (quota int64, period int64, err error) {
	quotaPath := filepath.Join(c.root, "cpu", "cpu.cfs_quota_us")
	periodPath := filepath.Join(c.root, "cpu", "cpu.cfs_period_us")

	quotaStr, err := c.readFile(quotaPath)
	if err != nil {
		return 0, 0, fmt.Errorf("cgroup v1: could not read %s: %w", quotaPath, err)
	}
	quota, err = parseInt64(quotaStr)
	if err != nil {
		return 0, 0, fmt.Errorf("cgroup v1: could not parse cpu.cfs_quota_us value '%s': %w", quotaStr, err)
	}

	periodStr, err := c.readFile(periodPath)
	if err != nil {
		return 0, 0, fmt.Errorf("cgroup v1: could not read %s: %w", periodPath, err)
	}
	period, err = parseInt64(periodStr)
	if err != nil {
		return 0, 0, fmt.Errorf("cgroup v1: could not parse cpu.cfs_period_us value '%s': %w", periodStr, err)
	}
	return quota, period, nil
}

// memoryLimit returns the memory limit in bytes, or 0 when there is none.
func (c *cgroupReader) memoryLimit() (int64, error) {
	filePath := filepath.Join(c.root, "memory.max")
	content, errV2 := c.readFile(filePath)
	if errV2 == nil {
		if content == "max" {
			return 0, nil
		}
		limit, err := parseInt64(content)
		if err != nil {
			return 0, fmt.Errorf("cgroup v2: could not parse memory.max value '%s': %w", content, err)
		}
		return limit, nil
	}

	filePath = filepath.Join(c.root, "memory", "memory.limit_in_bytes")
	content, err := c.readFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("cgroup v2: %v; cgroup v1: could not read %s: %w", errV2, filePath, err)
	}
	limit, err := parseInt64(content)
	if err != nil {
		return 0, fmt.Errorf("cgroup v1: could not parse memory.limit_in_bytes value '%s': %w", content, err)
	}
	if limit > cgroupV1NoMemoryLimit {
		return 0, nil
	}
	return limit, nil
}
