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
	"bufio"
	"os"
	"strings"
)

// envDetector decides whether the process runs inside a container.
type envDetector struct {
	dockerEnvPath string
	procCgroup    string
	getenv        func(string) string
}

func defaultEnvDetector() *envDetector {
	return &envDetector{
		dockerEnvPath: "/.dockerenv",
		procCgroup:    "/proc/1/cgroup",
		getenv:        os.Getenv,
	}
}

func (e *envDetector) hasDockerEnv() bool {
	_, err := os.Stat(e.dockerEnvPath)
	return err == nil
}

func (e *envDetector) checkProcCgroup() bool {
	file, err := os.Open(e.procCgroup)
	if err != nil {
		return false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "docker") ||
			strings.Contains(line, "kubepods") ||
			strings.Contains(line, "containerd") {
			return true
		}
	}
	return false
}

func (e *envDetector) checkK8sEnv() bool {
	return e.getenv("KUBERNETES_SERVICE_HOST") != ""
}

func (e *envDetector) isContainer() bool {
	return e.hasDockerEnv() || e.checkProcCgroup() || e.checkK8sEnv()
}
