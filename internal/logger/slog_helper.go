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

package logger

import (
	"log/slog"

	"github.com/googlecloudplatform/dummygen/cfg"
)

const (
	textTimeFormat = "02/01/2006 03:04:05.000000"
	severityKey    = "severity"
	messageKey     = "message"
	timestampKey   = "timestamp"
)

func setLoggingLevel(level string, programLevel *slog.LevelVar) {
	switch level {
	// logs having severity >= the configured value will be logged.
	case cfg.TRACE:
		programLevel.Set(LevelTrace)
	case cfg.DEBUG:
		programLevel.Set(LevelDebug)
	case cfg.INFO:
		programLevel.Set(LevelInfo)
	case cfg.WARNING:
		programLevel.Set(LevelWarn)
	case cfg.ERROR:
		programLevel.Set(LevelError)
	case cfg.OFF:
		programLevel.Set(LevelOff)
	}
}

func severityName(level slog.Level) string {
	switch {
	case level < LevelDebug:
		return cfg.TRACE
	case level < LevelInfo:
		return cfg.DEBUG
	case level < LevelWarn:
		return cfg.INFO
	case level < LevelError:
		return cfg.WARNING
	default:
		return cfg.ERROR
	}
}

// getHandlerOptions renames the built-in attributes of slog records to the
// severity/message/timestamp layout, and prepends prefix to every message.
func getHandlerOptions(levelVar *slog.LevelVar, prefix string, format string) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: levelVar,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.LevelKey:
				level := a.Value.Any().(slog.Level)
				a.Key = severityKey
				a.Value = slog.StringValue(severityName(level))
			case slog.TimeKey:
				t := a.Value.Time().Round(0)
				if format == string(cfg.TextLogFormat) {
					a.Value = slog.StringValue(t.Format(textTimeFormat))
				} else {
					a.Key = timestampKey
					a.Value = slog.GroupValue(
						slog.Int64("seconds", t.Unix()),
						slog.Int64("nanos", int64(t.Nanosecond())),
					)
				}
			case slog.MessageKey:
				a.Key = messageKey
				a.Value = slog.StringValue(prefix + a.Value.String())
			}
			return a
		},
	}
}
