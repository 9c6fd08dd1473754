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

package cmd

import (
	"fmt"
	"os"

	"github.com/googlecloudplatform/dummygen/cfg"
	"github.com/googlecloudplatform/dummygen/common"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd returns the root command. It parses the flags and the optional
// config file into a validated cfg.Config and passes it to run.
func NewRootCmd(run func(c *cfg.Config) error) (*cobra.Command, error) {
	var (
		configObj cfg.Config
		cfgFile   string
		v         = viper.New()
	)

	rootCmd := &cobra.Command{
		Use:   "dummygen [flags] output_dir",
		Short: "Generate files filled with pseudorandom data",
		Long: `dummygen creates a fixed number of equally sized files filled with
pseudorandom data in output_dir, using several threads and optionally direct
I/O. Several nodes can share output_dir: each creates a disjoint set of files
and reports its progress in a status file that the others aggregate.`,
		Version:      common.GetVersion(),
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := populateConfig(v, cfgFile, args[0], &configObj); err != nil {
				return err
			}
			return run(&configObj)
		},
	}

	rootCmd.Flags().StringVar(&cfgFile, "config-file", "", "YAML config file with the same keys as the flags. Flags take precedence.")
	if err := cfg.BindFlags(v, rootCmd.Flags()); err != nil {
		return nil, fmt.Errorf("error while declaring/binding flags: %w", err)
	}

	rootCmd.AddCommand(newStatusCmd())
	return rootCmd, nil
}

func populateConfig(v *viper.Viper, cfgFile, outputDir string, c *cfg.Config) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error while reading the config file: %w", err)
		}
	}
	v.Set("generate.output-dir", outputDir)

	err := v.Unmarshal(c, viper.DecodeHook(cfg.DecodeHook()), func(decoderConfig *mapstructure.DecoderConfig) {
		decoderConfig.TagName = "yaml"
	})
	if err != nil {
		return fmt.Errorf("error while parsing the config: %w", err)
	}

	if err = cfg.Rationalize(v, c); err != nil {
		return fmt.Errorf("error while rationalizing the config: %w", err)
	}

	if err = cfg.ValidateConfig(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Execute runs the root command and exits with status 1 on error.
func Execute() {
	rootCmd, err := NewRootCmd(runGenerator)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error occurred while creating the root command: %v\n", err)
		os.Exit(1)
	}
	if err = rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
