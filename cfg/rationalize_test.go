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

package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockIsSet struct {
	keys map[string]bool
}

func (m *mockIsSet) IsSet(key string) bool {
	return m.keys[key]
}

func TestRationalizeThreads(t *testing.T) {
	testCases := []struct {
		name            string
		set             bool
		threads         int
		expectedThreads int
	}{
		{
			name:            "unset threads defaults to CPU count",
			set:             false,
			threads:         0,
			expectedThreads: DefaultThreads(),
		},
		{
			name:            "zero threads resolves to CPU count",
			set:             true,
			threads:         0,
			expectedThreads: DefaultThreads(),
		},
		{
			name:            "explicit threads are kept",
			set:             true,
			threads:         7,
			expectedThreads: 7,
		},
		{
			name:            "negative threads are left for validation",
			set:             true,
			threads:         -3,
			expectedThreads: -3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := &Config{Generate: GenerateConfig{Threads: tc.threads}}
			v := &mockIsSet{keys: map[string]bool{ThreadsConfigKey: tc.set}}

			err := Rationalize(v, c)

			require.NoError(t, err)
			assert.Equal(t, tc.expectedThreads, c.Generate.Threads)
		})
	}
}

func TestRationalizeLoggingWithoutLogFile(t *testing.T) {
	c := &Config{Logging: LoggingConfig{LogRotate: LogRotateLoggingConfig{Compress: true}}}

	err := Rationalize(&mockIsSet{}, c)

	require.NoError(t, err)
	assert.False(t, c.Logging.LogRotate.Compress)
	assert.Equal(t, TextLogFormat, c.Logging.Format)
	assert.Equal(t, InfoLogSeverity, c.Logging.Severity)
	assert.Equal(t, EnhancedMetadataProvider, c.Status.MetadataProvider)
}

func TestRationalizeLoggingWithLogFile(t *testing.T) {
	c := &Config{Logging: LoggingConfig{
		FilePath:  "/tmp/dummygen.log",
		Format:    JSONLogFormat,
		Severity:  DebugLogSeverity,
		LogRotate: LogRotateLoggingConfig{Compress: true},
	}}

	err := Rationalize(&mockIsSet{}, c)

	require.NoError(t, err)
	assert.True(t, c.Logging.LogRotate.Compress)
	assert.Equal(t, JSONLogFormat, c.Logging.Format)
	assert.Equal(t, DebugLogSeverity, c.Logging.Severity)
}
