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

func Test_Match_01(t *testing.T) {
	checkMatch(t, "(let 1 (add #0 #1))", "(let 1 (add #0 #1))", 0)
}

func Test_Match_02(t *testing.T) {
	checkMatch(t, "(add #2 1)", "(add #0 1)", 2)
}

func Test_Match_03(t *testing.T) {
	checkMatch(t, "(let 1 (add #0 #3))", "(let 1 (add #0 #1))", 2)
}

func Test_Match_04(t *testing.T) {
	checkMatch(t, "(while (lam Int (lt #0 #2)) (lam Int #0) #1)", "(while (lam Int (lt #0 #1)) (lam Int #0) #0)", 1)
}

func Test_Match_05(t *testing.T) {
	// NaN is identical to itself
	checkMatch(t, "(add.Float nan 1.0)", "(add.Float nan 1.0)", 0)
}

func Test_Match_06(t *testing.T) {
	checkMatch(t, "(slice [all fixed] (shape 1) (shape-of (array A 2 Int)))",
		"(slice [all fixed] (shape 1) (shape-of (array A 2 Int)))", 0)
}

func Test_Match_07(t *testing.T) {
	checkMatch(t, "(foreign f (lam Int #0) #1)", "(foreign f (lam Int #0) #0)", 1)
}

func Test_NotMatch_01(t *testing.T) {
	checkNotMatch(t, "(add #0 1)", "(add #1 1)", 0)
}

func Test_NotMatch_02(t *testing.T) {
	// Bound versus free
	checkNotMatch(t, "(let 1 #0)", "(let 1 #1)", 0)
}

func Test_NotMatch_03(t *testing.T) {
	checkNotMatch(t, "(add #0 1)", "(add #0 1)", 1)
}

func Test_NotMatch_04(t *testing.T) {
	checkNotMatch(t, "(add 1 2)", "(add.Field fr:1 fr:2)", 0)
}

func Test_NotMatch_05(t *testing.T) {
	checkNotMatch(t, "(slice [all fixed] (shape 1) (shape 2 3))", "(slice [fixed all] (shape 1) (shape 2 3))", 0)
}

func Test_NotMatch_06(t *testing.T) {
	checkNotMatch(t, "(linear-index (array A 1 Int) 0)", "(linear-index (array B 1 Int) 0)", 0)
}

func Test_NotMatch_07(t *testing.T) {
	checkNotMatch(t, "(prj 0 {1 2})", "(prj 1 {1 2})", 0)
}

// ===================================================================
// Test Helpers
// ===================================================================

// Check that x (formed in a scope with shift more variables than y) matches
// y, and that both have the same hash.
func checkMatch(t *testing.T, x string, y string, shift uint) {
	var (
		ex = mustParse(t, x)
		ey = mustParse(t, y)
		// Arbitrary enclosing scope
		scope = uint(3)
	)
	//
	assert.True(t, MatchAt(ex, ey, shift), "%s does not match %s", x, y)
	assert.True(t, MatchAt(ex, Weaken(ey, shift), 0), "%s does not match weakened %s", x, y)
	assert.Equal(t, Hash(ey, scope), Hash(ex, scope+shift))
}

func checkNotMatch(t *testing.T, x string, y string, shift uint) {
	var (
		ex = mustParse(t, x)
		ey = mustParse(t, y)
	)
	//
	assert.False(t, MatchAt(ex, ey, shift), "%s matches %s", x, y)
}
