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
	"testing"
)

// ===================================================================
// Curated Tests
// ===================================================================

func Test_Simplify_Cse(t *testing.T) {
	Check(t, "cse")
}

func Test_Simplify_Shapes(t *testing.T) {
	Check(t, "shapes")
}

func Test_Simplify_Cond(t *testing.T) {
	Check(t, "cond")
}

func Test_Simplify_Prj(t *testing.T) {
	Check(t, "prj")
}

func Test_Simplify_Prim(t *testing.T) {
	Check(t, "prim")
}

func Test_Simplify_Loops(t *testing.T) {
	Check(t, "loops")
}

func Test_Simplify_Funs(t *testing.T) {
	Check(t, "funs")
}
