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

func Test_Check_01(t *testing.T) {
	checkType(t, "(let 1 (add #0 #0))", "Int")
}

func Test_Check_02(t *testing.T) {
	checkType(t, "(tuple 1 true (shape 2 3))", "(Tuple Int Bool (Shape 2))")
}

func Test_Check_03(t *testing.T) {
	checkType(t, "(:. (tail (shape 1 2)) (head (shape 3)))", "(Shape 2)")
}

func Test_Check_04(t *testing.T) {
	checkType(t, "(slice [all fixed all] (shape 1) (shape 2 3 4))", "(Shape 2)")
}

func Test_Check_05(t *testing.T) {
	checkType(t, "(full [all fixed all] (shape 1) (shape 2 4))", "(Shape 3)")
}

func Test_Check_06(t *testing.T) {
	checkType(t, "(to-slice [all fixed fixed] (shape 2 3 4) 5)", "(Shape 2)")
}

func Test_Check_07(t *testing.T) {
	checkType(t, "(while (lam (Tuple Int Int) (lt (prj 0 #0) 3)) (lam (Tuple Int Int) #0) (tuple 0 1))",
		"(Tuple Int Int)")
}

func Test_Check_08(t *testing.T) {
	checkType(t, "(index (array A 2 Float) (from-index (shape-of (array A 2 Float)) 1))", "Float")
}

func Test_Check_09(t *testing.T) {
	checkType(t, "(foreign sq (lam Field (mul.Field #0 #0)) fr:3)", "Field")
}

func Test_Check_10(t *testing.T) {
	checkType(t, "(if (eq.Bool true false) (max-bound Int) (min-bound Int))", "Int")
}

func Test_Check_Invalid_01(t *testing.T) {
	checkTypeInvalid(t, "(add 1 true)")
}

func Test_Check_Invalid_02(t *testing.T) {
	checkTypeInvalid(t, "#0")
}

func Test_Check_Invalid_03(t *testing.T) {
	checkTypeInvalid(t, "(head Z)")
}

func Test_Check_Invalid_04(t *testing.T) {
	checkTypeInvalid(t, "(while (lam Int true) (lam Int true) 0)")
}

func Test_Check_Invalid_05(t *testing.T) {
	checkTypeInvalid(t, "(prj 2 (tuple 1 2))")
}

func Test_Check_Invalid_06(t *testing.T) {
	checkTypeInvalid(t, "(div 1 2)")
}

func Test_Check_Invalid_07(t *testing.T) {
	checkTypeInvalid(t, "(to-index (shape 1 2) (shape 1))")
}

func Test_Check_Invalid_08(t *testing.T) {
	// Fallback must be closed
	checkTypeInvalid(t, "(let 1 (foreign f (lam Int #1) 2))")
}

func Test_Check_Invalid_09(t *testing.T) {
	checkTypeInvalid(t, "(pi Int)")
}

func Test_Check_Invalid_10(t *testing.T) {
	checkTypeInvalid(t, "(if 1 2 3)")
}

func Test_Check_Fun_01(t *testing.T) {
	f := mustParseFun(t, "(lam Int (lam Bool (if #0 #1 0)))")
	params, result, err := TypeOfFun(f, nil)
	//
	assert.NoError(t, err)
	assert.Equal(t, 2, len(params))
	assert.Equal(t, "Int", result.String())
}

// ===================================================================
// Test Helpers
// ===================================================================

func checkType(t *testing.T, input string, expected string) {
	typ, err := TypeOf(mustParse(t, input), nil)
	//
	assert.NoError(t, err)
	assert.Equal(t, expected, typ.String())
}

func checkTypeInvalid(t *testing.T, input string) {
	assert.Error(t, Check(mustParse(t, input)))
}
