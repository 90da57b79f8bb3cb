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
package algebra

import (
	"testing"

	"github.com/consensys/go-scalaropt/pkg/ir/exp"
	"github.com/consensys/go-scalaropt/pkg/util/assert"
)

// ===================================================================
// Constant Folding
// ===================================================================

func Test_Fold_01(t *testing.T) {
	checkApply(t, "(add 1 2)", "3")
}

func Test_Fold_02(t *testing.T) {
	checkApply(t, "(quot -7 2)", "-3")
}

func Test_Fold_03(t *testing.T) {
	checkApply(t, "(lt.Float 1.0 2.5)", "true")
}

func Test_Fold_04(t *testing.T) {
	checkApply(t, "(mul.Field fr:3 fr:4)", "fr:12")
}

func Test_Fold_05(t *testing.T) {
	checkApply(t, "(or false true)", "true")
}

func Test_Fold_06(t *testing.T) {
	checkApply(t, "(add {1 2})", "3")
}

func Test_Fold_07(t *testing.T) {
	// Runtime failure is not folded
	checkNoApply(t, "(rem 1 0)")
}

func Test_Fold_08(t *testing.T) {
	checkNoApply(t, "(div.Field fr:1 fr:0)")
}

// ===================================================================
// Identities
// ===================================================================

func Test_Identity_01(t *testing.T) {
	checkApply(t, "(add #0 0)", "#0")
}

func Test_Identity_02(t *testing.T) {
	checkApply(t, "(add 0 #0)", "#0")
}

func Test_Identity_03(t *testing.T) {
	checkApply(t, "(sub.Field #0 fr:0)", "#0")
}

func Test_Identity_04(t *testing.T) {
	checkApply(t, "(mul #0 1)", "#0")
}

func Test_Identity_05(t *testing.T) {
	checkApply(t, "(mul 0 #0)", "0")
}

func Test_Identity_06(t *testing.T) {
	checkApply(t, "(sub (add #0 #1) (add #0 #1))", "0")
}

func Test_Identity_07(t *testing.T) {
	checkApply(t, "(neg (neg #0))", "#0")
}

func Test_Identity_08(t *testing.T) {
	checkApply(t, "(not (not #0))", "#0")
}

func Test_Identity_09(t *testing.T) {
	checkApply(t, "(and #0 true)", "#0")
}

func Test_Identity_10(t *testing.T) {
	checkApply(t, "(and false #0)", "false")
}

func Test_Identity_11(t *testing.T) {
	checkApply(t, "(or #0 false)", "#0")
}

func Test_Identity_12(t *testing.T) {
	checkApply(t, "(or #0 true)", "true")
}

func Test_Identity_13(t *testing.T) {
	checkApply(t, "(or #0 #0)", "#0")
}

func Test_Identity_14(t *testing.T) {
	checkApply(t, "(min #1 #1)", "#1")
}

func Test_Identity_15(t *testing.T) {
	checkApply(t, "(lte #0 #0)", "true")
}

func Test_Identity_16(t *testing.T) {
	checkApply(t, "(neq.Bool #0 #0)", "false")
}

func Test_Identity_17(t *testing.T) {
	checkApply(t, "(mul.Field fr:0 #0)", "fr:0")
}

// ===================================================================
// Floating Point
// ===================================================================

func Test_Float_01(t *testing.T) {
	// x + 0.0 differs from x when x is -0.0
	checkNoApply(t, "(add.Float #0 0.0)")
}

func Test_Float_02(t *testing.T) {
	// x * 0.0 differs from 0.0 when x is NaN
	checkNoApply(t, "(mul.Float #0 0.0)")
}

func Test_Float_03(t *testing.T) {
	// NaN is not equal to itself
	checkNoApply(t, "(eq.Float #0 #0)")
}

func Test_Float_04(t *testing.T) {
	checkNoApply(t, "(sub.Float #0 #0)")
}

func Test_Float_05(t *testing.T) {
	checkApply(t, "(neg.Float (neg.Float #0))", "#0")
}

// ===================================================================
// No Change
// ===================================================================

func Test_NoApply_01(t *testing.T) {
	checkNoApply(t, "(add #0 #1)")
}

func Test_NoApply_02(t *testing.T) {
	checkNoApply(t, "(neg (not #0))")
}

func Test_NoApply_03(t *testing.T) {
	checkNoApply(t, "(sub 0 #0)")
}

func Test_NoApply_04(t *testing.T) {
	checkNoApply(t, "(add (prj 0 #0))")
}

// ===================================================================
// Test Helpers
// ===================================================================

func checkApply(t *testing.T, input string, expected string) {
	var (
		app = parseApp(t, input)
		alg = New()
	)
	//
	r, ok := alg.Apply(app.Fun, app.Arg)
	//
	assert.True(t, ok, "no rewrite for %s", input)
	assert.Equal(t, expected, r.String())
}

func checkNoApply(t *testing.T, input string) {
	var (
		app = parseApp(t, input)
		alg = New()
	)
	//
	r, ok := alg.Apply(app.Fun, app.Arg)
	//
	assert.False(t, ok, "unexpected rewrite %s", r)
}

func parseApp(t *testing.T, input string) *exp.PrimApp {
	e, errs := exp.ParseExpr(input)
	//
	if len(errs) > 0 {
		t.Fatalf("failed parsing %s: %s", input, errs[0].Message())
	}
	//
	return e.(*exp.PrimApp)
}
