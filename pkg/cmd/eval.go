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
	"os"

	"github.com/consensys/go-scalaropt/pkg/ir/eval"
	"github.com/consensys/go-scalaropt/pkg/ir/exp"
	"github.com/consensys/go-scalaropt/pkg/ir/gen"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval [flags] tree_file(s)",
	Short: "evaluate one or more expressions.",
	Long: `Evaluate every expression in a given set of files, against the built-in arrays
	A (Int, shape 2x3) and B (Int, shape 4).  Functions are skipped.`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		var (
			trees      = ReadTreeFiles(args)
			evaluator  = eval.New(gen.Arrays(), GetUint(cmd, "fuel"))
			simplified = GetFlag(cmd, "simplified")
			failed     = false
		)
		//
		simplifier, sink := getSimplifier(cmd)
		//
		for _, tree := range trees {
			e, ok := tree.(exp.Expr)
			//
			if !ok {
				fmt.Printf("%s : <function>\n", tree.String())
				continue
			} else if simplified {
				e = simplifier.Exp(e)
			}
			//
			if v, err := evaluator.Eval(e); err != nil {
				fmt.Printf("%s : error (%s)\n", e.String(), err.Error())
				//
				failed = true
			} else {
				fmt.Printf("%s = %s\n", e.String(), v.String())
			}
		}
		//
		sink.Flush()
		//
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().Uint("fuel", 10000, "maximum number of loop iterations")
	evalCmd.Flags().Bool("simplified", false, "simplify expressions before evaluating them")
}
