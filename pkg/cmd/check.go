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
	"strings"

	"github.com/consensys/go-scalaropt/pkg/ir/exp"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] tree_file(s)",
	Short: "type check one or more expressions or functions.",
	Long: `Parse and type check every expression and function in a given set of files,
	reporting the type of each.`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		for _, tree := range ReadTreeFiles(args) {
			fmt.Printf("%s : %s\n", tree.String(), typeString(tree))
		}
	},
}

// typeString returns a textual representation of the type of a well-typed
// tree.  Functions are written with their parameter types first.
func typeString(tree exp.Tree) string {
	switch t := tree.(type) {
	case exp.Expr:
		if r, err := exp.TypeOf(t, nil); err == nil {
			return r.String()
		}
	case exp.Fun:
		if params, r, err := exp.TypeOfFun(t, nil); err == nil {
			var builder strings.Builder
			//
			for _, p := range params {
				builder.WriteString(p.String())
				builder.WriteString(" -> ")
			}
			//
			builder.WriteString(r.String())
			//
			return builder.String()
		}
	}
	// Should be unreachable for trees which have been checked.
	return "?"
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
