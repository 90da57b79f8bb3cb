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
package test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/consensys/go-scalaropt/pkg/ir/eval"
	"github.com/consensys/go-scalaropt/pkg/ir/exp"
	"github.com/consensys/go-scalaropt/pkg/ir/gen"
	"github.com/consensys/go-scalaropt/pkg/ir/simplify"
	"github.com/consensys/go-scalaropt/pkg/util/source"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the simplifier test files (lisp) are found.
const TestDir = "../../testdata"

// FUEL determines the maximum number of loop iterations permitted when
// evaluating an original tree.  Simplified trees are permitted more, since
// loop recovery can turn straight-line code into a loop.
const FUEL uint = 10000

// ARGUMENTS identifies the argument tuples used for evaluating functions of
// integer parameters.
var ARGUMENTS = [][]int64{{0, 0, 0}, {1, -1, 2}, {3, 7, -5}, {-4, 2, 9}}

// Check that every tree in a given test file is typed and simplifies to a tree
// with the same type and meaning, at every optimisation level.
func Check(t *testing.T, test string) {
	var (
		filename   = fmt.Sprintf("%s/simplify/%s.lisp", TestDir, test)
		bytes, err = os.ReadFile(filename)
	)
	//
	t.Parallel()
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	trees, errs := exp.ParseFile(source.NewSourceFile(filename, bytes))
	//
	for _, err := range errs {
		t.Errorf("%s: %s", filename, err.Message())
	}
	//
	if len(trees) == 0 {
		t.Fatalf("missing any tests for %s", test)
	}
	//
	for _, tree := range trees {
		for level := range simplify.OPTIMISATION_LEVELS {
			checkTree(t, uint(level), tree)
		}
	}
}

// checkTree checks that a given tree simplifies at a given level to a tree
// with the same type and meaning.
func checkTree(t *testing.T, level uint, tree exp.Tree) {
	var simplifier = simplify.New(simplify.OPTIMISATION_LEVELS[level], nil)
	//
	switch tree := tree.(type) {
	case exp.Expr:
		CheckExpr(t, simplifier, tree)
	case exp.Fun:
		CheckFun(t, simplifier, tree)
	}
}

// CheckExpr checks that a given closed expression simplifies to an expression
// of the same type and meaning.
func CheckExpr(t *testing.T, simplifier *simplify.Simplifier, e exp.Expr) {
	var (
		result   = simplifier.Exp(e)
		lhs, err = exp.TypeOf(e, nil)
	)
	//
	if err != nil {
		t.Fatalf("ill-typed %s: %s", e.String(), err.Error())
	}
	//
	rhs, err := exp.TypeOf(result, nil)
	//
	if err != nil {
		t.Fatalf("simplifying %s gave ill-typed %s: %s", e.String(), result.String(), err.Error())
	} else if !lhs.Equals(rhs) {
		t.Fatalf("simplifying %s changed type from %s to %s", e.String(), lhs.String(), rhs.String())
	} else if !exp.IsClosed(result) {
		t.Fatalf("simplifying %s gave open %s", e.String(), result.String())
	}
	//
	var (
		v1, err1 = eval.New(gen.Arrays(), FUEL).Eval(e)
		v2, err2 = eval.New(gen.Arrays(), 10*FUEL).Eval(result)
	)
	//
	checkValues(t, e.String(), result.String(), v1, err1, v2, err2)
}

// CheckFun checks that a given closed function simplifies to a function of
// the same type and, when its parameters are all integers, the same meaning.
func CheckFun(t *testing.T, simplifier *simplify.Simplifier, f exp.Fun) {
	var (
		result             = simplifier.Fun(f)
		params, lhs, err   = exp.TypeOfFun(f, nil)
		rparams, rhs, rerr = exp.TypeOfFun(result, nil)
	)
	//
	if err != nil {
		t.Fatalf("ill-typed %s: %s", f.String(), err.Error())
	} else if rerr != nil {
		t.Fatalf("simplifying %s gave ill-typed %s: %s", f.String(), result.String(), rerr.Error())
	} else if !lhs.Equals(rhs) || len(params) != len(rparams) {
		t.Fatalf("simplifying %s changed type", f.String())
	}
	//
	for i, p := range params {
		if !p.Equals(rparams[i]) {
			t.Fatalf("simplifying %s changed parameter %d from %s to %s", f.String(), i, p.String(),
				rparams[i].String())
		} else if !p.Equals(exp.Int) || len(params) > len(ARGUMENTS[0]) {
			// Cannot evaluate
			return
		}
	}
	//
	for _, args := range ARGUMENTS {
		var values = make([]exp.Value, len(params))
		//
		for i := range values {
			values[i] = exp.IntValue(args[i])
		}
		//
		var (
			v1, err1 = eval.New(gen.Arrays(), FUEL).Apply(f, values...)
			v2, err2 = eval.New(gen.Arrays(), 10*FUEL).Apply(result, values...)
		)
		//
		checkValues(t, f.String(), result.String(), v1, err1, v2, err2)
	}
}

// checkValues checks the outcome of evaluating an original tree against that
// of its simplified form.  Simplification may eliminate errors (e.g. by
// removing dead code) but must never introduce them.
func checkValues(t *testing.T, original string, result string, v1 exp.Value, err1 error, v2 exp.Value,
	err2 error) {
	//
	switch {
	case err1 != nil:
		// Nothing to check
		return
	case errors.Is(err2, eval.ErrOutOfFuel):
		t.Logf("simplified %s exhausted fuel", result)
	case err2 != nil:
		t.Fatalf("simplifying %s to %s introduced error: %s", original, result, err2.Error())
	case !v1.Equals(v2):
		t.Fatalf("simplifying %s to %s changed value from %s to %s", original, result, v1.String(), v2.String())
	}
}
