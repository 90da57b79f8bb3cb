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
package shrink

import (
	"testing"

	"github.com/consensys/go-scalaropt/pkg/ir/exp"
	"github.com/consensys/go-scalaropt/pkg/util/assert"
)

func Test_Shrink_01(t *testing.T) {
	// Dead binding
	checkShrink(t, "(let (add 1 2) 3)", "3")
}

func Test_Shrink_02(t *testing.T) {
	// Trivial binding
	checkShrink(t, "(let 1 (add #0 #0))", "(add 1 1)")
}

func Test_Shrink_03(t *testing.T) {
	// Single use
	checkShrink(t, "(let (add #0 1) (mul #0 2))", "(mul (add #0 1) 2)")
}

func Test_Shrink_04(t *testing.T) {
	// Multiple uses
	checkNoShrink(t, "(let (add #0 1) (mul #0 #0))")
}

func Test_Shrink_05(t *testing.T) {
	// Single use within loop
	checkNoShrink(t, "(let (add #0 1) (while (lam Int (lt #0 #1)) (lam Int (add #0 1)) 0))")
}

func Test_Shrink_06(t *testing.T) {
	// Trivial binding used within loop
	checkShrink(t, "(let #0 (while (lam Int (lt #0 #1)) (lam Int (add #0 1)) 0))",
		"(while (lam Int (lt #0 #1)) (lam Int (add #0 1)) 0)")
}

func Test_Shrink_07(t *testing.T) {
	// Cascading
	checkShrink(t, "(let (add #0 1) (let (mul #0 #0) (let #0 (tuple #0 #2))))",
		"(let (add #0 1) (tuple (mul #0 #0) #0))")
}

func Test_Shrink_08(t *testing.T) {
	// Chain of dead bindings
	checkShrink(t, "(let 1 (let 2 (let 3 #3)))", "#0")
}

func Test_Shrink_09(t *testing.T) {
	// Within loop functions
	checkShrink(t, "(while (lam Int (let 3 (lt #1 #0))) (lam Int #0) 0)",
		"(while (lam Int (lt #0 3)) (lam Int #0) 0)")
}

func Test_Shrink_10(t *testing.T) {
	checkNoShrink(t, "(add #0 (foreign f (lam Int (let (mul #0 #0) (add #0 #0))) #1))")
}

func Test_Shrink_Fun_01(t *testing.T) {
	var (
		f, _       = exp.ParseFun("(lam Int (let (add #0 1) (let (mul #1 2) (tuple #0 #0 #1))))")
		r, changed = New().ShrinkFun(f)
	)
	// Only the outer binding is used once
	assert.True(t, changed)
	assert.Equal(t, "(lam Int (let (mul #0 2) (tuple #0 #0 (add #1 1))))", r.String())
}

// ===================================================================
// Test Helpers
// ===================================================================

func checkShrink(t *testing.T, input string, expected string) {
	r, changed := New().ShrinkExp(parse(t, input))
	//
	assert.True(t, changed, "%s did not shrink", input)
	assert.Equal(t, expected, r.String())
}

func checkNoShrink(t *testing.T, input string) {
	r, changed := New().ShrinkExp(parse(t, input))
	//
	assert.False(t, changed, "%s shrank", input)
	assert.Equal(t, input, r.String())
}

func parse(t *testing.T, input string) exp.Expr {
	e, errs := exp.ParseExpr(input)
	//
	if len(errs) > 0 {
		t.Fatalf("failed parsing %s: %s", input, errs[0].Message())
	}
	//
	return e
}
