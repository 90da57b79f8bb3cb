// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"

	"github.com/consensys/go-scalaropt/pkg/stats"
	"github.com/spf13/cobra"
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify [flags] tree_file(s)",
	Short: "simplify one or more expressions or functions.",
	Long: `Simplify every expression and function in a given set of files, printing the
	simplified trees in the order they were given.`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		var (
			trees            = ReadTreeFiles(args)
			simplifier, sink = getSimplifier(cmd)
			formatter        = getFormatter(cmd)
			perf             = stats.NewPerfStats()
		)
		//
		for _, tree := range trees {
			fmt.Print(formatter.Format(simplifier.Simplify(tree).Lisp()))
		}
		//
		perf.Log(fmt.Sprintf("simplifying %d tree(s)", len(trees)))
		sink.Flush()
	},
}

func init() {
	rootCmd.AddCommand(simplifyCmd)
}
