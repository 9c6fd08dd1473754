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

// isSet interface is abstraction over the IsSet() method of viper, specially
// added to keep rationalize method simple.
type isSet interface {
	IsSet(string) bool
}

// resolveThreads replaces an unset or zero thread count with the CPU count.
// Negative values are left alone so that validation can report them.
func resolveThreads(v isSet, g *GenerateConfig) {
	if !v.IsSet(ThreadsConfigKey) || g.Threads == 0 {
		g.Threads = DefaultThreads()
	}
}

// resolveLoggingConfig turns off compression of rotated logs when logs go to
// stdout, since there is nothing to rotate.
func resolveLoggingConfig(l *LoggingConfig) {
	if l.FilePath == "" {
		l.LogRotate.Compress = false
	}
	if l.Format == "" {
		l.Format = TextLogFormat
	}
	if l.Severity == "" {
		l.Severity = InfoLogSeverity
	}
}

func resolveStatusConfig(s *StatusConfig) {
	if s.MetadataProvider == "" {
		s.MetadataProvider = EnhancedMetadataProvider
	}
}

// Rationalize updates the config fields based on the values of other fields.
func Rationalize(v isSet, c *Config) error {
	resolveThreads(v, &c.Generate)
	resolveLoggingConfig(&c.Logging)
	resolveStatusConfig(&c.Status)
	return nil
}
