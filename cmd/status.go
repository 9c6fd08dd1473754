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
	"encoding/json"
	"fmt"
	"io"

	"github.com/googlecloudplatform/dummygen/internal/status"
	"github.com/googlecloudplatform/dummygen/internal/util"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	jsonFormat = "json"
	yamlFormat = "yaml"
)

type statusOptions struct {
	format    string
	nodeCount int
	numFiles  int
}

func newStatusCmd() *cobra.Command {
	var opts statusOptions

	statusCmd := &cobra.Command{
		Use:   "status [flags] output_dir",
		Short: "Print the aggregated progress of all nodes writing to output_dir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := util.GetResolvedPath(args[0])
			if err != nil {
				return err
			}
			return printStatus(cmd, dir, opts)
		},
	}

	statusCmd.Flags().StringVar(&opts.format, "format", jsonFormat, "Output format: 'json' or 'yaml'.")
	statusCmd.Flags().IntVar(&opts.nodeCount, "node-count", 0, "Total number of nodes. 0 takes it from the status files.")
	statusCmd.Flags().IntVarP(&opts.numFiles, "num-files", "n", 0, "Number of files per node. 0 takes it from the status files.")
	return statusCmd
}

func printStatus(cmd *cobra.Command, dir string, opts statusOptions) error {
	if opts.format != jsonFormat && opts.format != yamlFormat {
		return fmt.Errorf("invalid format %q: must be %s or %s", opts.format, jsonFormat, yamlFormat)
	}

	cs, err := status.Aggregate(cmd.Context(), dir, opts.nodeCount, opts.numFiles)
	if err != nil {
		return err
	}
	return writeClusterStatus(cmd.OutOrStdout(), cs, opts.format)
}

func writeClusterStatus(w io.Writer, cs *status.ClusterStatus, format string) error {
	if format == yamlFormat {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cs); err != nil {
			return fmt.Errorf("encoding status: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cs); err != nil {
		return fmt.Errorf("encoding status: %w", err)
	}
	return nil
}
