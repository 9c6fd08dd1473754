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

package util

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const MiB = 1 << 20

// 1. Returns the same filepath in case of absolute path or empty filename.
// 2. For relative path starting with ~, it resolves with respect to home dir.
// 3. Other relative paths are resolved against the working directory.
func GetResolvedPath(filePath string) (resolvedPath string, err error) {
	if filePath == "" || path.IsAbs(filePath) {
		resolvedPath = filePath
		return
	}

	// Relative path starting with tilda (~)
	if strings.HasPrefix(filePath, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("fetch home dir: %w", err)
		}
		return filepath.Join(homeDir, filePath[2:]), err
	}

	return filepath.Abs(filePath)
}

// Stringify marshals an object (only exported attribute) to a JSON string. If marshalling fails, it returns an empty string.
func Stringify(input any) (string, error) {
	inputBytes, err := json.Marshal(input)

	if err != nil {
		return "", fmt.Errorf("error in Stringify %w", err)
	}
	return string(inputBytes), nil
}

// YAMLStringify marshals an object to a YAML string.
func YAMLStringify(input any) (string, error) {
	inputBytes, err := yaml.Marshal(input)

	if err != nil {
		return "", fmt.Errorf("error in YAMLStringify %w", err)
	}
	return string(inputBytes), nil
}

// BytesToMiBs returns the fractional no. of MiBs in the given bytes.
func BytesToMiBs(bytes int64) float64 {
	return float64(bytes) / MiB
}

// RoundTo rounds f half away from zero to the given no. of decimal places.
func RoundTo(f float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(f*p) / p
}
