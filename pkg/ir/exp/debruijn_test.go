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
package exp

import (
	"testing"

	"github.com/consensys/go-scalaropt/pkg/util/assert"
)

func Test_Weaken_01(t *testing.T) {
	e := Weaken(mustParse(t, "(add #0 (let 1 (add #0 #1)))"), 2)
	assert.Equal(t, "(add #2 (let 1 (add #0 #3)))", e.String())
}

func Test_Weaken_02(t *testing.T) {
	e := Weaken(mustParse(t, "(while (lam Int (lt #0 #1)) (lam Int #0) #0)"), 1)
	assert.Equal(t, "(while (lam Int (lt #0 #2)) (lam Int #0) #1)", e.String())
}

func Test_Weaken_03(t *testing.T) {
	// Foreign fallbacks are closed
	e := Weaken(mustParse(t, "(foreign f (lam Int #0) #0)"), 3)
	assert.Equal(t, "(foreign f (lam Int #0) #3)", e.String())
}

func Test_Shift_01(t *testing.T) {
	e := Shift(mustParse(t, "(add #0 #1)"), 1, 1)
	assert.Equal(t, "(add #0 #2)", e.String())
}

func Test_Instantiate_01(t *testing.T) {
	e := Instantiate(mustParse(t, "(add #0 #1)"), mustParse(t, "(mul #0 2)"))
	assert.Equal(t, "(add (mul #0 2) #0)", e.String())
}

func Test_Instantiate_02(t *testing.T) {
	e := Instantiate(mustParse(t, "(let #0 (add #0 #1))"), mustParse(t, "#3"))
	assert.Equal(t, "(let #3 (add #0 #4))", e.String())
}

func Test_Instantiate_03(t *testing.T) {
	f := InstantiateFun(mustParseFun(t, "(lam Int (add #0 #1))"), mustParse(t, "7"))
	assert.Equal(t, "(lam Int (add #0 7))", f.String())
}

func Test_Strengthen_01(t *testing.T) {
	e, ok := Strengthen(mustParse(t, "(add #1 2)"))
	assert.True(t, ok)
	assert.Equal(t, "(add #0 2)", e.String())
}

func Test_Strengthen_02(t *testing.T) {
	_, ok := Strengthen(mustParse(t, "(add #0 2)"))
	assert.False(t, ok)
}

func Test_Strengthen_03(t *testing.T) {
	e, ok := StrengthenAt(mustParse(t, "(let #0 (add #0 #3))"), 1)
	assert.True(t, ok)
	assert.Equal(t, "(let #0 (add #0 #2))", e.String())
}

func Test_Strengthen_04(t *testing.T) {
	_, ok := StrengthenAt(mustParse(t, "(let #0 (add #0 #2))"), 1)
	assert.False(t, ok)
}

func Test_IsClosed_01(t *testing.T) {
	assert.True(t, IsClosed(mustParse(t, "(let 1 (while (lam Int (lt #0 #1)) (lam Int #0) #0))")))
	assert.False(t, IsClosed(mustParse(t, "(let 1 (while (lam Int (lt #0 #2)) (lam Int #0) #0))")))
}

func Test_Uses_01(t *testing.T) {
	uses, lambdas := Uses(mustParse(t, "(add #0 (while (lam Int (lt #0 #1)) (lam Int #0) #0))"), 0)
	assert.Equal(t, 3, uses)
	assert.Equal(t, 1, lambdas)
}

func Test_Uses_02(t *testing.T) {
	uses, lambdas := Uses(mustParse(t, "(let #1 (add #0 #2))"), 1)
	assert.Equal(t, 2, uses)
	assert.Equal(t, 0, lambdas)
}

func Test_Size_01(t *testing.T) {
	assert.Equal(t, 6, Size(mustParse(t, "(let 1 (add #0 2))")))
}

// ===================================================================
// Test Helpers
// ===================================================================

func mustParse(t *testing.T, input string) Expr {
	e, errs := ParseExpr(input)
	//
	if len(errs) > 0 {
		t.Fatalf("failed parsing %s: %s", input, errs[0].Message())
	}
	//
	return e
}

func mustParseFun(t *testing.T, input string) Fun {
	f, errs := ParseFun(input)
	//
	if len(errs) > 0 {
		t.Fatalf("failed parsing %s: %s", input, errs[0].Message())
	}
	//
	return f
}
