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
	"os"
	"path/filepath"
	"testing"

	"github.com/googlecloudplatform/dummygen/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOctalTypeInConfigMarshalling(t *testing.T) {
	c := Config{
		Generate: GenerateConfig{
			FileMode: 0644,
		},
	}

	str, err := util.YAMLStringify(&c.Generate)

	require.NoError(t, err)
	assert.Contains(t, str, "file-mode: \"644\"\n")
}

func TestOctalMarshalling(t *testing.T) {
	o := Octal(0765)

	str, err := util.YAMLStringify(&o)

	if assert.NoError(t, err) {
		assert.Equal(t, "\"765\"\n", str)
	}
}

func TestOctalUnmarshalling(t *testing.T) {
	t.Parallel()
	tests := []struct {
		str      string
		expected Octal
		wantErr  bool
	}{
		{
			str:      "0644",
			expected: 0644,
		},
		{
			str:      "755",
			expected: 0755,
		},
		{
			str:     "958",
			wantErr: true,
		},
		{
			str:     "abc",
			wantErr: true,
		},
	}

	for idx, tc := range tests {
		t.Run(tc.str, func(t *testing.T) {
			t.Parallel()
			var o Octal

			err := (&o).UnmarshalText([]byte(tests[idx].str))

			if tc.wantErr {
				assert.Error(t, err)
			} else if assert.NoError(t, err) {
				assert.Equal(t, tc.expected, o)
			}
		})
	}
}

func TestLogSeverityUnmarshalling(t *testing.T) {
	t.Parallel()
	tests := []struct {
		str      string
		expected LogSeverity
		wantErr  bool
	}{
		{str: "TRACE", expected: TraceLogSeverity},
		{str: "debug", expected: DebugLogSeverity},
		{str: "Info", expected: InfoLogSeverity},
		{str: "warning", expected: WarningLogSeverity},
		{str: "error", expected: ErrorLogSeverity},
		{str: "off", expected: OffLogSeverity},
		{str: "verbose", wantErr: true},
		{str: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.str, func(t *testing.T) {
			t.Parallel()
			var l LogSeverity

			err := (&l).UnmarshalText([]byte(tc.str))

			if tc.wantErr {
				assert.Error(t, err)
			} else if assert.NoError(t, err) {
				assert.Equal(t, tc.expected, l)
			}
		})
	}
}

func TestLogSeverityRank(t *testing.T) {
	assert.Less(t, TraceLogSeverity.Rank(), DebugLogSeverity.Rank())
	assert.Less(t, DebugLogSeverity.Rank(), InfoLogSeverity.Rank())
	assert.Less(t, InfoLogSeverity.Rank(), WarningLogSeverity.Rank())
	assert.Less(t, WarningLogSeverity.Rank(), ErrorLogSeverity.Rank())
	assert.Less(t, ErrorLogSeverity.Rank(), OffLogSeverity.Rank())
	assert.Equal(t, -1, LogSeverity("LOUD").Rank())
}

func TestLogFormatUnmarshalling(t *testing.T) {
	var f LogFormat

	require.NoError(t, f.UnmarshalText([]byte("JSON")))
	assert.Equal(t, JSONLogFormat, f)
	assert.Error(t, f.UnmarshalText([]byte("xml")))
}

func TestMetadataProviderKindUnmarshalling(t *testing.T) {
	var m MetadataProviderKind

	require.NoError(t, m.UnmarshalText([]byte("Basic")))
	assert.Equal(t, BasicMetadataProvider, m)
	require.NoError(t, m.UnmarshalText([]byte("enhanced")))
	assert.Equal(t, EnhancedMetadataProvider, m)
	assert.Error(t, m.UnmarshalText([]byte("full")))
}

func TestResolvedPathUnmarshalling(t *testing.T) {
	h, err := os.UserHomeDir()
	require.NoError(t, err)
	wd, err := os.Getwd()
	require.NoError(t, err)
	tests := []struct {
		str      string
		expected ResolvedPath
	}{
		{str: "~/test.txt", expected: ResolvedPath(filepath.Join(h, "test.txt"))},
		{str: "/a/test.txt", expected: "/a/test.txt"},
		{str: "test.txt", expected: ResolvedPath(filepath.Join(wd, "test.txt"))},
		{str: "", expected: ""},
	}

	for _, tc := range tests {
		t.Run(tc.str, func(t *testing.T) {
			var p ResolvedPath

			err := (&p).UnmarshalText([]byte(tc.str))

			if assert.NoError(t, err) {
				assert.Equal(t, tc.expected, p)
			}
		})
	}
}
