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
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Cluster ClusterConfig `yaml:"cluster"`

	Debug DebugConfig `yaml:"debug"`

	Generate GenerateConfig `yaml:"generate"`

	Logging LoggingConfig `yaml:"logging"`

	Metrics MetricsConfig `yaml:"metrics"`

	Status StatusConfig `yaml:"status"`
}

type ClusterConfig struct {
	NodeCount int `yaml:"node-count"`

	NodeId int `yaml:"node-id"`
}

type DebugConfig struct {
	ExitOnInvariantViolation bool `yaml:"exit-on-invariant-violation"`
}

type GenerateConfig struct {
	DirectIo bool `yaml:"direct-io"`

	FileMode Octal `yaml:"file-mode"`

	MaxFilesPerSec float64 `yaml:"max-files-per-sec"`

	NumFiles int `yaml:"num-files"`

	// OutputDir is populated from the positional argument, not from a flag.
	OutputDir ResolvedPath `yaml:"output-dir"`

	Seed uint64 `yaml:"seed"`

	SizeKb int64 `yaml:"size-kb"`

	Threads int `yaml:"threads"`

	WriteBufferKb int64 `yaml:"write-buffer-kb"`
}

type LogRotateLoggingConfig struct {
	BackupFileCount int64 `yaml:"backup-file-count"`

	Compress bool `yaml:"compress"`

	MaxFileSizeMb int64 `yaml:"max-file-size-mb"`
}

type LoggingConfig struct {
	FilePath ResolvedPath `yaml:"file-path"`

	Format LogFormat `yaml:"format"`

	LogRotate LogRotateLoggingConfig `yaml:"log-rotate"`

	Severity LogSeverity `yaml:"severity"`
}

type MetricsConfig struct {
	PrometheusPort int64 `yaml:"prometheus-port"`
}

type StatusConfig struct {
	MetadataProvider MetadataProviderKind `yaml:"metadata-provider"`

	ReportEvery int `yaml:"report-every"`
}

func BindFlags(v *viper.Viper, flagSet *pflag.FlagSet) error {
	var err error

	flagSet.BoolP("debug_invariants", "", false, "Exit when internal invariants are violated.")

	err = v.BindPFlag("debug.exit-on-invariant-violation", flagSet.Lookup("debug_invariants"))
	if err != nil {
		return err
	}

	flagSet.BoolP("direct-io", "", false, "Write data files with uncached (O_DIRECT) I/O. File sizes are rounded up to a multiple of 4096 bytes.")

	err = v.BindPFlag("generate.direct-io", flagSet.Lookup("direct-io"))
	if err != nil {
		return err
	}

	flagSet.StringP("file-mode", "", "0644", "Permissions bits for generated files, in octal.")

	err = v.BindPFlag("generate.file-mode", flagSet.Lookup("file-mode"))
	if err != nil {
		return err
	}

	flagSet.StringP("log-file", "", "", "The file for storing logs. When not provided, logs are printed to stdout.")

	err = v.BindPFlag("logging.file-path", flagSet.Lookup("log-file"))
	if err != nil {
		return err
	}

	flagSet.StringP("log-format", "", "text", "The format of the log file: 'text' or 'json'.")

	err = v.BindPFlag("logging.format", flagSet.Lookup("log-format"))
	if err != nil {
		return err
	}

	flagSet.IntP("log-rotate-backup-file-count", "", 10, "The maximum number of backup log files to retain after they have been rotated. A value of 0 indicates all backup files are retained.")

	err = v.BindPFlag("logging.log-rotate.backup-file-count", flagSet.Lookup("log-rotate-backup-file-count"))
	if err != nil {
		return err
	}

	flagSet.BoolP("log-rotate-compress", "", true, "Controls whether the rotated log files should be compressed using gzip.")

	err = v.BindPFlag("logging.log-rotate.compress", flagSet.Lookup("log-rotate-compress"))
	if err != nil {
		return err
	}

	flagSet.IntP("log-rotate-max-file-size-mb", "", 512, "The maximum size in megabytes that a log file can reach before it is rotated.")

	err = v.BindPFlag("logging.log-rotate.max-file-size-mb", flagSet.Lookup("log-rotate-max-file-size-mb"))
	if err != nil {
		return err
	}

	flagSet.StringP("log-severity", "", "info", "Specifies the logging severity expressed as one of [trace, debug, info, warning, error, off]")

	err = v.BindPFlag("logging.severity", flagSet.Lookup("log-severity"))
	if err != nil {
		return err
	}

	flagSet.Float64P("max-files-per-sec", "", 0, "Upper bound on the number of files this node creates per second, across all threads. 0 means unlimited.")

	err = v.BindPFlag("generate.max-files-per-sec", flagSet.Lookup("max-files-per-sec"))
	if err != nil {
		return err
	}

	flagSet.StringP("metadata-provider", "", "enhanced", "Source of the host metadata recorded in status files: 'basic' or 'enhanced'.")

	err = v.BindPFlag("status.metadata-provider", flagSet.Lookup("metadata-provider"))
	if err != nil {
		return err
	}

	flagSet.IntP("node-count", "", 1, "Total number of nodes in a distributed run.")

	err = v.BindPFlag("cluster.node-count", flagSet.Lookup("node-count"))
	if err != nil {
		return err
	}

	flagSet.IntP("node-id", "", 0, "Node identifier (0-based) for distributed runs.")

	err = v.BindPFlag("cluster.node-id", flagSet.Lookup("node-id"))
	if err != nil {
		return err
	}

	flagSet.IntP("num-files", "n", 100, "Number of files to generate per node.")

	err = v.BindPFlag("generate.num-files", flagSet.Lookup("num-files"))
	if err != nil {
		return err
	}

	flagSet.IntP("prometheus-port", "", 0, "Expose Prometheus metrics endpoint on this port. 0 disables the endpoint.")

	err = v.BindPFlag("metrics.prometheus-port", flagSet.Lookup("prometheus-port"))
	if err != nil {
		return err
	}

	flagSet.IntP("report-every", "", 10, "Write the node status file after every N created files.")

	err = v.BindPFlag("status.report-every", flagSet.Lookup("report-every"))
	if err != nil {
		return err
	}

	flagSet.Uint64P("seed", "", 0, "Seed for the pseudorandom file contents. 0 picks a random seed.")

	err = v.BindPFlag("generate.seed", flagSet.Lookup("seed"))
	if err != nil {
		return err
	}

	flagSet.IntP("size-kb", "s", 10240, "Size of each file in KiB.")

	err = v.BindPFlag("generate.size-kb", flagSet.Lookup("size-kb"))
	if err != nil {
		return err
	}

	flagSet.IntP("threads", "t", 0, "Number of worker threads. 0 uses the number of CPUs.")

	err = v.BindPFlag("generate.threads", flagSet.Lookup("threads"))
	if err != nil {
		return err
	}

	flagSet.IntP("write-buffer-kb", "", 1024, "Size of the write buffer used for cached writes, in KiB.")

	err = v.BindPFlag("generate.write-buffer-kb", flagSet.Lookup("write-buffer-kb"))
	if err != nil {
		return err
	}

	return nil
}
