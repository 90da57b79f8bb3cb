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
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/consensys/go-scalaropt/pkg/ir/eval"
	"github.com/consensys/go-scalaropt/pkg/ir/exp"
	"github.com/consensys/go-scalaropt/pkg/ir/gen"
	"github.com/consensys/go-scalaropt/pkg/ir/simplify"
	"github.com/consensys/go-scalaropt/pkg/stats"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var fuzzCmd = &cobra.Command{
	Use:   "fuzz [flags]",
	Short: "check the simplifier against randomly generated expressions.",
	Long: `Generate random well-typed expressions, and check that simplifying them
	preserves their type and meaning.  Simplifying a simplified expression must
	also preserve its meaning.  Expressions are checked concurrently.`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		var (
			seed             = GetUint64(cmd, "seed")
			count            = GetUint64(cmd, "count")
			depth            = GetUint(cmd, "depth")
			workers          = max(1, GetUint(cmd, "workers"))
			simplifier, sink = getSimplifier(cmd)
			perf             = stats.NewPerfStats()
			failures         = make(chan string, workers)
			wg               sync.WaitGroup
			failed           uint
		)
		//
		for w := range uint64(workers) {
			wg.Add(1)
			//
			go func() {
				defer wg.Done()
				//
				for i := w; i < count; i += uint64(workers) {
					e := gen.New(seed+i).Expr(depth)
					//
					if err := fuzzExp(simplifier, e); err != nil {
						failures <- fmt.Sprintf("seed %d: %s", seed+i, err.Error())
					}
				}
			}()
		}
		//
		go func() {
			wg.Wait()
			close(failures)
		}()
		//
		for msg := range failures {
			fmt.Println(msg)
			//
			failed++
		}
		//
		perf.Log(fmt.Sprintf("checking %d expression(s)", count))
		sink.Flush()
		//
		if failed > 0 {
			fmt.Printf("%d of %d expression(s) failed\n", failed, count)
			os.Exit(1)
		}
		//
		log.Infof("%d expression(s) passed", count)
	},
}

// fuzzExp checks that simplifying a given closed expression (and then
// simplifying the result) preserves its type and meaning.
func fuzzExp(simplifier *simplify.Simplifier, e exp.Expr) error {
	var (
		once  = simplifier.Exp(e)
		twice = simplifier.Exp(once)
	)
	//
	if err := sameType(e, once); err != nil {
		return err
	} else if err := sameType(e, twice); err != nil {
		return err
	} else if !exp.Match(once, twice) {
		log.Debugf("%s simplified again to %s", once.String(), twice.String())
	}
	//
	v, err := eval.New(gen.Arrays(), FUZZ_FUEL).Eval(e)
	if err != nil {
		// Simplification may remove errors, so nothing to compare against.
		return nil
	}
	//
	for _, r := range []exp.Expr{once, twice} {
		w, err := eval.New(gen.Arrays(), 10*FUZZ_FUEL).Eval(r)
		//
		switch {
		case errors.Is(err, eval.ErrOutOfFuel):
			log.Debugf("%s exhausted fuel", r.String())
		case err != nil:
			return fmt.Errorf("%s simplified to %s which failed (%w)", e.String(), r.String(), err)
		case !v.Equals(w):
			return fmt.Errorf("%s = %s simplified to %s = %s", e.String(), v.String(), r.String(), w.String())
		}
	}
	//
	return nil
}

func sameType(original exp.Expr, result exp.Expr) error {
	lhs, err := exp.TypeOf(original, nil)
	if err != nil {
		return err
	}
	//
	rhs, err := exp.TypeOf(result, nil)
	if err != nil {
		return fmt.Errorf("%s simplified to ill-typed %s (%w)", original.String(), result.String(), err)
	} else if !lhs.Equals(rhs) {
		return fmt.Errorf("%s : %s simplified to %s : %s", original.String(), lhs.String(), result.String(),
			rhs.String())
	}
	//
	return nil
}

// FUZZ_FUEL determines the maximum number of loop iterations when evaluating a
// generated expression.
const FUZZ_FUEL = 10000

func init() {
	rootCmd.AddCommand(fuzzCmd)
	fuzzCmd.Flags().Uint64("seed", 0, "first seed to use")
	fuzzCmd.Flags().Uint64("count", 1000, "number of expressions to check")
	fuzzCmd.Flags().Uint("depth", 6, "maximum depth of generated expressions")
	fuzzCmd.Flags().Uint("workers", 4, "number of concurrent workers")
}
