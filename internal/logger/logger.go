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
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/googlecloudplatform/dummygen/cfg"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Severity levels on top of the ones slog defines.
const (
	LevelTrace = slog.Level(-8)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
	LevelOff   = slog.Level(12)
)

var (
	defaultLoggerFactory *loggerFactory
	defaultLogger        *slog.Logger
)

// InitLogFile initializes the logger factory to create loggers that print to
// a log file, with rotation handled by lumberjack.
// In case of empty file, it keeps writing the logs to stdout.
func InitLogFile(newLogConfig cfg.LoggingConfig) error {
	var f *os.File
	var err error
	if newLogConfig.FilePath != "" {
		f, err = os.OpenFile(
			string(newLogConfig.FilePath),
			os.O_WRONLY|os.O_CREATE|os.O_APPEND,
			0644,
		)
		if err != nil {
			return fmt.Errorf("error while opening log file: %w", err)
		}
	}

	defaultLoggerFactory = &loggerFactory{
		file:            f,
		format:          string(newLogConfig.Format),
		level:           string(newLogConfig.Severity),
		logRotateConfig: newLogConfig.LogRotate,
	}
	defaultLogger = defaultLoggerFactory.newLogger(string(newLogConfig.Severity))

	return nil
}

// init initializes the logger factory to use stdout.
func init() {
	defaultLoggerFactory = &loggerFactory{
		file:            nil,
		format:          string(cfg.TextLogFormat),
		level:           cfg.INFO,
		logRotateConfig: DefaultLogRotateConfig(),
	}
	defaultLogger = defaultLoggerFactory.newLogger(cfg.INFO)
}

// DefaultLogRotateConfig is used until InitLogFile is called.
func DefaultLogRotateConfig() cfg.LogRotateLoggingConfig {
	return cfg.LogRotateLoggingConfig{
		BackupFileCount: 10,
		Compress:        true,
		MaxFileSizeMb:   512,
	}
}

// SetLogFormat updates the format of the default logger.
func SetLogFormat(format string) {
	defaultLoggerFactory.format = format
	defaultLogger = defaultLoggerFactory.newLogger(defaultLoggerFactory.level)
}

// Close closes the log file when necessary.
func Close() {
	if w := defaultLoggerFactory.rotator; w != nil {
		w.Close()
		defaultLoggerFactory.rotator = nil
	}
	if f := defaultLoggerFactory.file; f != nil {
		f.Close()
		defaultLoggerFactory.file = nil
	}
}

// Tracef prints the message with TRACE severity in the specified format.
func Tracef(format string, v ...interface{}) {
	defaultLogger.Log(context.Background(), LevelTrace, fmt.Sprintf(format, v...))
}

// Debugf prints the message with DEBUG severity in the specified format.
func Debugf(format string, v ...interface{}) {
	defaultLogger.Debug(fmt.Sprintf(format, v...))
}

// Infof prints the message with INFO severity in the specified format.
func Infof(format string, v ...interface{}) {
	defaultLogger.Info(fmt.Sprintf(format, v...))
}

// Info prints the message with info severity.
func Info(message string, args ...any) {
	defaultLogger.Info(message, args...)
}

// Warnf prints the message with WARNING severity in the specified format.
func Warnf(format string, v ...interface{}) {
	defaultLogger.Warn(fmt.Sprintf(format, v...))
}

// Errorf prints the message with ERROR severity in the specified format.
func Errorf(format string, v ...interface{}) {
	defaultLogger.Error(fmt.Sprintf(format, v...))
}

// Fatal prints an error log and exits with non-zero exit code.
func Fatal(format string, v ...interface{}) {
	Errorf(format, v...)
	Close()
	os.Exit(1)
}

type loggerFactory struct {
	// If nil, log to stdout. Otherwise, log to this file through rotator.
	file            *os.File
	rotator         *lumberjack.Logger
	format          string
	level           string
	logRotateConfig cfg.LogRotateLoggingConfig
}

func (f *loggerFactory) newLogger(level string) *slog.Logger {
	// create a new logger
	var programLevel = new(slog.LevelVar)
	logger := slog.New(f.handler(programLevel, ""))
	slog.SetDefault(logger)
	setLoggingLevel(level, programLevel)
	return logger
}

func (f *loggerFactory) createJsonOrTextHandler(writer io.Writer, levelVar *slog.LevelVar, prefix string) slog.Handler {
	if f.format == string(cfg.TextLogFormat) {
		return slog.NewTextHandler(writer, getHandlerOptions(levelVar, prefix, f.format))
	}
	return slog.NewJSONHandler(writer, getHandlerOptions(levelVar, prefix, f.format))
}

func (f *loggerFactory) handler(levelVar *slog.LevelVar, prefix string) slog.Handler {
	if f.file != nil {
		if f.rotator == nil {
			f.rotator = &lumberjack.Logger{
				Filename:   f.file.Name(),
				MaxSize:    int(f.logRotateConfig.MaxFileSizeMb),
				MaxBackups: int(f.logRotateConfig.BackupFileCount),
				Compress:   f.logRotateConfig.Compress,
			}
		}
		return f.createJsonOrTextHandler(f.rotator, levelVar, prefix)
	}
	return f.createJsonOrTextHandler(os.Stdout, levelVar, prefix)
}
