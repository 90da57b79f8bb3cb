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
package simplify

import (
	"errors"
	"testing"

	"github.com/consensys/go-scalaropt/pkg/ir/eval"
	"github.com/consensys/go-scalaropt/pkg/ir/exp"
	"github.com/consensys/go-scalaropt/pkg/ir/gen"
	"github.com/consensys/go-scalaropt/pkg/stats"
	"github.com/consensys/go-scalaropt/pkg/util/assert"
)

// An element of B which cannot be simplified away.
const x = "(linear-index (array B 1 Int) 0)"

// Shape of A, which cannot be simplified away.
const shA = "(shape-of (array A 2 Int))"

// ===================================================================
// Common Subexpression Elimination
// ===================================================================

func Test_Simplify_Cse_01(t *testing.T) {
	checkSimplify(t, 0, "(let (add "+x+" 1) (mul (add "+x+" 1) (add "+x+" 1)))",
		"(let (add "+x+" 1) (mul #0 #0))")
}

func Test_Simplify_Cse_02(t *testing.T) {
	checkSimplify(t, 1, "(let (add "+x+" 1) (mul (add "+x+" 1) (add "+x+" 1)))",
		"(let (add "+x+" 1) (mul #0 #0))")
}

func Test_Simplify_Cse_03(t *testing.T) {
	// Matching candidate two binders out
	checkSimplify(t, 0, "(let (add "+x+" 1) (let (mul "+x+" 3) (tuple #0 (add "+x+" 1))))",
		"(let (add "+x+" 1) (let (mul "+x+" 3) (tuple #0 #1)))")
}

func Test_Simplify_Cse_04(t *testing.T) {
	// Candidate mentioning a variable
	checkSimplify(t, 0, "(let "+x+" (let (add #0 1) (let (mul #1 2) (add #2 1))))",
		"(let "+x+" (let (add #0 1) (let (mul #1 2) #1)))")
}

func Test_Simplify_Cse_05(t *testing.T) {
	// Repeated binding is eliminated entirely
	checkSimplify(t, 0, "(let (add "+x+" 1) (let (neg #0) (let (add "+x+" 1) (add "+x+" 1))))",
		"(let (add "+x+" 1) (let (neg #0) #1))")
}

func Test_Simplify_Cse_06(t *testing.T) {
	// Parameters are never candidates
	checkSimplify(t, 0, "(while (lam Int (lt #0 10)) (lam Int (add #0 1)) "+x+")",
		"(while (lam Int (lt #0 10)) (lam Int (add #0 1)) "+x+")")
}

func Test_Simplify_Cse_07(t *testing.T) {
	// Candidates are visible within loop functions
	checkSimplify(t, 0, "(let (mul "+x+" 2) (while (lam Int (lt #0 (mul "+x+" 2))) (lam Int (add #0 1)) 0))",
		"(let (mul "+x+" 2) (while (lam Int (lt #0 #1)) (lam Int (add #0 1)) 0))")
}

func Test_Simplify_LocalCse_01(t *testing.T) {
	checkSimplify(t, 0, "(let 5 (let 5 #0))", "(let 5 #0)")
}

func Test_Simplify_LocalCse_02(t *testing.T) {
	checkSimplify(t, 1, "(let 5 (let 5 #0))", "5")
}

func Test_Simplify_LocalCse_03(t *testing.T) {
	checkSimplify(t, 0, "(let "+x+" (let "+x+" (add #0 #1)))", "(let "+x+" (add #0 #0))")
}

func Test_Simplify_LocalCse_04(t *testing.T) {
	checkSimplify(t, 1, "(let "+x+" (let "+x+" (add #0 #1)))", "(let "+x+" (add #0 #0))")
}

// ===================================================================
// Conditionals
// ===================================================================

func Test_Simplify_Cond_01(t *testing.T) {
	checkSimplify(t, 0, "(if true "+x+" 0)", x)
}

func Test_Simplify_Cond_02(t *testing.T) {
	checkSimplify(t, 0, "(if false "+x+" 0)", "0")
}

func Test_Simplify_Cond_03(t *testing.T) {
	checkSimplify(t, 0, "(if (lt 1 2) 1 2)", "1")
}

func Test_Simplify_Cond_04(t *testing.T) {
	checkSimplify(t, 0, "(if (lt "+x+" 3) "+x+" "+x+")", x)
}

func Test_Simplify_Cond_05(t *testing.T) {
	checkSimplify(t, 0, "(if (lt "+x+" 3) 1 2)", "(if (lt "+x+" 3) 1 2)")
}

func Test_Simplify_Cond_06(t *testing.T) {
	// Branches identical once simplified
	checkSimplify(t, 0, "(if (lt "+x+" 3) (add "+x+" 0) (mul 1 "+x+"))", x)
}

// ===================================================================
// Shapes
// ===================================================================

func Test_Simplify_Shape_01(t *testing.T) {
	checkSimplify(t, 0, "(head (:. "+shA+" "+x+"))", x)
}

func Test_Simplify_Shape_02(t *testing.T) {
	checkSimplify(t, 0, "(tail (:. "+shA+" "+x+"))", shA)
}

func Test_Simplify_Shape_03(t *testing.T) {
	checkSimplify(t, 0, "(:. (tail "+shA+") (head "+shA+"))", shA)
}

func Test_Simplify_Shape_04(t *testing.T) {
	checkSimplify(t, 0, "(:. Z (head (shape-of (array B 1 Int))))", "(shape-of (array B 1 Int))")
}

func Test_Simplify_Shape_05(t *testing.T) {
	// Rank 2 shape cannot be rebuilt from its head alone
	checkSimplify(t, 0, "(:. Z (head "+shA+"))", "(:. Z (head "+shA+"))")
}

func Test_Simplify_Shape_06(t *testing.T) {
	checkSimplify(t, 0, "(head (:. Z 4))", "4")
}

func Test_Simplify_Shape_07(t *testing.T) {
	checkSimplify(t, 0, "(size (shape 2 3 4))", "24")
}

func Test_Simplify_Shape_08(t *testing.T) {
	checkSimplify(t, 0, "(transpose (transpose "+shA+"))", shA)
}

func Test_Simplify_Shape_09(t *testing.T) {
	checkSimplify(t, 0, "(transpose (shape 1 2 3))", "(shape 3 2 1)")
}

func Test_Simplify_Shape_10(t *testing.T) {
	checkSimplify(t, 0, "(tail (shape 1 2 3))", "(shape 1 2)")
}

func Test_Simplify_Shape_11(t *testing.T) {
	checkSimplify(t, 1, "(:. (shape 2) 3)", "(shape 2 3)")
}

func Test_Simplify_Shape_12(t *testing.T) {
	// Folding requires the fold shapes flag
	checkSimplify(t, 0, "(:. (shape 2) 3)", "(:. (shape 2) 3)")
}

func Test_Simplify_Linear_01(t *testing.T) {
	checkSimplify(t, 0, "(to-index "+shA+" (from-index "+shA+" "+x+"))", x)
}

func Test_Simplify_Linear_02(t *testing.T) {
	checkSimplify(t, 0, "(from-index "+shA+" (to-index "+shA+" (:. (:. Z 1) 2)))", "(:. (shape 1) 2)")
}

func Test_Simplify_Linear_03(t *testing.T) {
	checkSimplify(t, 1, "(to-index (shape 2 3) (shape 1 2))", "5")
}

func Test_Simplify_Linear_04(t *testing.T) {
	checkSimplify(t, 1, "(from-index (shape 2 3) 5)", "(shape 1 2)")
}

func Test_Simplify_Linear_05(t *testing.T) {
	// Shapes must match
	checkSimplify(t, 0, "(to-index "+shA+" (from-index (shape 2 3) "+x+"))",
		"(to-index "+shA+" (from-index (shape 2 3) "+x+"))")
}

func Test_Simplify_Linear_06(t *testing.T) {
	checkSimplify(t, 0, "(to-index Z (from-index Z 0))", "0")
}

func Test_Simplify_Linear_07(t *testing.T) {
	// Only index 0 lies within a rank zero shape
	checkRemovesError(t, 0, "(to-index Z (from-index Z 2))", "2")
}

func Test_Simplify_Linear_08(t *testing.T) {
	var z = "(slice [fixed] (shape-of (array B 1 Int)) (shape-of (array B 1 Int)))"
	//
	checkRemovesError(t, 1, "(to-index "+z+" (from-index "+z+" 5))", "5")
}

func Test_Simplify_Linear_09(t *testing.T) {
	// Index outside of A's shape
	checkRemovesError(t, 0, "(from-index "+shA+" (to-index "+shA+" (:. (:. Z 1) 7)))", "(:. (shape 1) 7)")
}

func Test_Simplify_Linear_10(t *testing.T) {
	checkRemovesError(t, 1, "(to-index "+shA+" (from-index "+shA+" "+x+"))", x)
}

func Test_Simplify_Slice_01(t *testing.T) {
	checkSimplify(t, 1, "(slice [all fixed all] (:. Z "+x+") (shape 2 3 4))", "(shape 2 4)")
}

func Test_Simplify_Slice_02(t *testing.T) {
	checkSimplify(t, 1, "(full [all fixed] (shape 7) (shape 2))", "(shape 2 7)")
}

func Test_Simplify_Slice_03(t *testing.T) {
	checkSimplify(t, 1, "(to-slice [fixed all fixed] (shape 2 3 4) 5)", "(shape 1 1)")
}

func Test_Simplify_Chain_01(t *testing.T) {
	checkSimplify(t, 0, "(intersect (intersect "+shA+" (shape 2 2)) "+shA+")",
		"(intersect "+shA+" (shape 2 2))")
}

func Test_Simplify_Chain_02(t *testing.T) {
	checkSimplify(t, 1, "(union (shape 1 5) (shape 3 2))", "(shape 3 5)")
}

func Test_Simplify_Chain_03(t *testing.T) {
	checkSimplify(t, 1, "(intersect (intersect (shape 1 5) "+shA+") (shape 3 2))",
		"(intersect (intersect (shape 1 5) "+shA+") (shape 3 2))")
}

func Test_Simplify_Chain_04(t *testing.T) {
	checkSimplify(t, 1, "(intersect (intersect (shape 1 5) (shape 3 2)) "+shA+")",
		"(intersect (shape 1 2) "+shA+")")
}

func Test_Simplify_Chain_05(t *testing.T) {
	checkSimplify(t, 0, "(union "+shA+" "+shA+")", shA)
}

// ===================================================================
// Projections
// ===================================================================

func Test_Simplify_Prj_01(t *testing.T) {
	checkSimplify(t, 0, "(prj 0 (tuple "+x+" 2))", x)
}

func Test_Simplify_Prj_02(t *testing.T) {
	checkSimplify(t, 0, "(prj 1 {1 true})", "true")
}

func Test_Simplify_Prj_03(t *testing.T) {
	// Non-trivial components are not duplicated
	checkSimplify(t, 0, "(let (tuple (add "+x+" 1) "+x+") (add (prj 0 #0) (prj 0 #0)))",
		"(let (tuple (add "+x+" 1) "+x+") (add (prj 0 #0) (prj 0 #0)))")
}

func Test_Simplify_Prj_04(t *testing.T) {
	checkSimplify(t, 0, "(let (tuple "+x+" 7) (add (prj 1 #0) (prj 0 #0)))",
		"(let (tuple "+x+" 7) (add 7 (prj 0 #0)))")
}

func Test_Simplify_Prj_05(t *testing.T) {
	checkSimplify(t, 1, "(let (tuple "+x+" 7) (add (prj 1 #0) (prj 0 #0)))", "(add 7 "+x+")")
}

func Test_Simplify_Prj_06(t *testing.T) {
	checkSimplify(t, 0, "(prj 0 (let "+x+" (tuple #0 1)))", "(let "+x+" #0)")
}

func Test_Simplify_Prj_07(t *testing.T) {
	checkSimplify(t, 1, "(prj 0 (let "+x+" (tuple #0 1)))", x)
}

func Test_Simplify_Prj_08(t *testing.T) {
	// Projection from a loop cannot be reduced
	checkSimplify(t, 0, "(prj 0 (while (lam (Tuple Int Int) false) (lam (Tuple Int Int) #0) (tuple 1 2)))",
		"(prj 0 (while (lam (Tuple Int Int) false) (lam (Tuple Int Int) #0) (tuple 1 2)))")
}

// ===================================================================
// Primitives
// ===================================================================

func Test_Simplify_Prim_01(t *testing.T) {
	checkSimplify(t, 0, "(add (mul 2 3) (sub 10 4))", "12")
}

func Test_Simplify_Prim_02(t *testing.T) {
	checkSimplify(t, 0, "(add "+x+" (mul 0 2))", x)
}

func Test_Simplify_Prim_03(t *testing.T) {
	checkSimplify(t, 0, "(sub (add "+x+" 1) (add "+x+" 1))", "0")
}

func Test_Simplify_Prim_04(t *testing.T) {
	checkSimplify(t, 0, "(and (lt "+x+" 1) (not true))", "false")
}

func Test_Simplify_Prim_05(t *testing.T) {
	checkSimplify(t, 0, "(not (not (lt "+x+" 1)))", "(lt "+x+" 1)")
}

func Test_Simplify_Prim_06(t *testing.T) {
	// Division by zero is never folded
	checkSimplify(t, 0, "(quot "+x+" (sub 2 2))", "(quot "+x+" 0)")
}

func Test_Simplify_Prim_07(t *testing.T) {
	checkSimplify(t, 0, "(mul.Field fr:3 (add.Field fr:2 fr:0))", "fr:6")
}

func Test_Simplify_Prim_08(t *testing.T) {
	checkSimplify(t, 0, "(max (min 3 "+x+") (min 3 "+x+"))", "(min 3 "+x+")")
}

// ===================================================================
// Functions
// ===================================================================

func Test_Simplify_Fun_01(t *testing.T) {
	checkSimplifyFun(t, 0, "(lam Int (add (mul #0 1) 0))", "(lam Int #0)")
}

func Test_Simplify_Fun_02(t *testing.T) {
	checkSimplifyFun(t, 1, "(lam Int (lam Int (let (add #0 #1) (mul (add #1 #2) #0))))",
		"(lam Int (lam Int (let (add #0 #1) (mul #0 #0))))")
}

func Test_Simplify_Fun_03(t *testing.T) {
	// Branches identical after elimination
	checkSimplifyFun(t, 1, "(lam Int (let (add #0 1) (if (lt #1 0) #0 (add #1 1))))", "(lam Int (add #0 1))")
}

func Test_Simplify_Fun_04(t *testing.T) {
	checkSimplifyFun(t, 0, "(lam Int (foreign fma (lam Int (add (mul #0 1) 0)) (add #0 0)))",
		"(lam Int (foreign fma (lam Int #0) #0))")
}

func Test_Simplify_Fun_05(t *testing.T) {
	checkSimplifyFun(t, 1, "(lam Int (let (mul #0 #0) 3))", "(lam Int 3)")
}

// ===================================================================
// Loop Recovery
// ===================================================================

const chain = "(let (add (mul " + x + " 2) 1) (let (add (mul #0 2) 1) (let (add (mul #0 2) 1) #0)))"

func Test_Simplify_Loop_01(t *testing.T) {
	// Disabled by default
	checkSimplify(t, 1, chain, "(add (mul (add (mul (add (mul "+x+" 2) 1) 2) 1) 2) 1)")
}

func Test_Simplify_Loop_02(t *testing.T) {
	checkSimplify(t, 2, chain, "(prj 1 (while (lam (Tuple Int Int) (lt (prj 0 #0) 3)) "+
		"(lam (Tuple Int Int) (tuple (add (prj 0 #0) 1) (add (mul (prj 1 #0) 2) 1))) (tuple 0 "+x+")))")
}

func Test_Simplify_Loop_03(t *testing.T) {
	// Intermediate value used, hence no loop
	checkSimplify(t, 2, "(let (add (mul "+x+" 2) 1) (let (add (mul #0 2) 1) (add #0 #1)))",
		"(let (add (mul "+x+" 2) 1) (add (add (mul #0 2) 1) #0))")
}

func Test_Simplify_Loop_04(t *testing.T) {
	// Step function changes type, hence no loop
	checkSimplify(t, 2, "(let (tuple "+x+") (let (tuple #0) #0))", "(tuple (tuple "+x+"))")
}

// ===================================================================
// Fixed Point
// ===================================================================

func Test_Simplify_FixedPoint_01(t *testing.T) {
	var (
		sink = stats.NewSink(true)
		s    = NewWith(OPTIMISATION_LEVELS[1], &restless{}, &restless{}, sink)
		e    = parseExpr(t, "(add "+x+" 1)")
	)
	// Always reports a change, hence the round limit must be reached.
	r := s.Exp(e)
	//
	assert.True(t, exp.Match(e, r), "unexpected result %s", r.String())
	//
	_, _, capped := sink.Snapshot()
	runs, rounds := sink.Rounds()
	//
	assert.Equal(t, 1, capped)
	assert.Equal(t, 1, runs)
	assert.Equal(t, MaxRounds, rounds)
}

func Test_Simplify_FixedPoint_02(t *testing.T) {
	var (
		sink = stats.NewSink(true)
		s    = New(OPTIMISATION_LEVELS[1], sink)
	)
	//
	s.Exp(parseExpr(t, "(let (tuple "+x+" 7) (add (prj 1 #0) (prj 0 #0)))"))
	//
	_, _, capped := sink.Snapshot()
	runs, rounds := sink.Rounds()
	//
	assert.Equal(t, 0, capped)
	assert.Equal(t, 1, runs)
	assert.Equal(t, 2, rounds)
	assert.Equal(t, 1, sink.Rule("prj-var"))
	assert.Equal(t, 1, sink.Rule("prj-tuple"))
}

func Test_Simplify_FixedPoint_03(t *testing.T) {
	var (
		sink = stats.NewSink(true)
		s    = New(OPTIMISATION_LEVELS[0], sink)
	)
	//
	s.Exp(parseExpr(t, "(let "+x+" (if true (add "+x+" 1) 0))"))
	//
	branches, substitutions, _ := sink.Snapshot()
	runs, rounds := sink.Rounds()
	//
	assert.Equal(t, 1, branches)
	assert.Equal(t, 1, substitutions)
	assert.Equal(t, 1, runs)
	assert.Equal(t, 0, rounds)
}

func Test_Simplify_Idempotent_01(t *testing.T) {
	var s = New(DEFAULT_OPTIMISATION_LEVEL, nil)
	//
	for _, input := range []string{
		chain,
		"(let (add " + x + " 1) (mul (add " + x + " 1) (add " + x + " 1)))",
		"(let (tuple (add " + x + " 1) " + x + ") (add (prj 0 #0) (prj 0 #0)))",
		"(intersect (intersect (shape 1 5) (shape 3 2)) " + shA + ")",
	} {
		once := s.Exp(parseExpr(t, input))
		twice := s.Exp(once)
		//
		assert.True(t, exp.Match(once, twice), "%s not idempotent (%s vs %s)", input, once.String(),
			twice.String())
	}
}

// restless is an algebra and shrinker which always claims to have changed
// something, without actually doing so.
type restless struct{}

func (p *restless) Apply(fun exp.PrimFun, arg exp.Expr) (exp.Expr, bool) {
	return &exp.PrimApp{Fun: fun, Arg: arg}, true
}

func (p *restless) ShrinkExp(e exp.Expr) (exp.Expr, bool) { return e, true }

func (p *restless) ShrinkFun(f exp.Fun) (exp.Fun, bool) { return f, true }

// ===================================================================
// Test Helpers
// ===================================================================

func checkSimplify(t *testing.T, level uint, input string, expected string) {
	var (
		s      = New(OPTIMISATION_LEVELS[level], nil)
		e      = parseExpr(t, input)
		result = s.Exp(e)
	)
	//
	assert.Equal(t, parseExpr(t, expected).String(), result.String())
	assert.NoError(t, exp.Check(result))
	// Check meaning preserved
	var (
		evaluator = eval.New(gen.Arrays(), 1000)
		v1, err1  = evaluator.Eval(e)
		v2, err2  = evaluator.Eval(result)
	)
	//
	if err1 == nil {
		assert.NoError(t, err2)
		assert.True(t, v1.Equals(v2), "expected %s, got %s", v1.String(), v2.String())
	}
}

// checkRemovesError checks that an expression which fails to evaluate (because
// of an index out of bounds) simplifies to the expected expression, which does
// not.
func checkRemovesError(t *testing.T, level uint, input string, expected string) {
	var (
		s         = New(OPTIMISATION_LEVELS[level], nil)
		e         = parseExpr(t, input)
		result    = s.Exp(e)
		evaluator = eval.New(gen.Arrays(), 1000)
	)
	//
	assert.Equal(t, parseExpr(t, expected).String(), result.String())
	//
	_, err := evaluator.Eval(e)
	assert.True(t, errors.Is(err, eval.ErrOutOfBounds), "expected out of bounds, got %v", err)
	//
	_, err = evaluator.Eval(result)
	assert.NoError(t, err)
}

func checkSimplifyFun(t *testing.T, level uint, input string, expected string) {
	var (
		s      = New(OPTIMISATION_LEVELS[level], nil)
		f      = parseFun(t, input)
		result = s.Fun(f)
	)
	//
	assert.Equal(t, parseFun(t, expected).String(), result.String())
	assert.NoError(t, exp.Check(result))
}

func parseExpr(t *testing.T, input string) exp.Expr {
	e, errs := exp.ParseExpr(input)
	//
	if len(errs) > 0 {
		t.Fatalf("failed parsing %s: %s", input, errs[0].Message())
	} else if err := exp.Check(e); err != nil {
		t.Fatalf("ill-typed %s: %s", input, err.Error())
	}
	//
	return e
}

func parseFun(t *testing.T, input string) exp.Fun {
	f, errs := exp.ParseFun(input)
	//
	if len(errs) > 0 {
		t.Fatalf("failed parsing %s: %s", input, errs[0].Message())
	} else if err := exp.Check(f); err != nil {
		t.Fatalf("ill-typed %s: %s", input, err.Error())
	}
	//
	return f
}
