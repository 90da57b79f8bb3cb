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
package gen

import (
	"testing"

	"github.com/consensys/go-scalaropt/pkg/ir/exp"
	"github.com/consensys/go-scalaropt/pkg/util/assert"
)

func Test_Gen_WellTyped(t *testing.T) {
	for seed := range uint64(500) {
		e := New(seed).Expr(6)
		//
		assert.NoError(t, exp.Check(e), "seed %d generated ill-typed %s", seed, e.String())
		assert.True(t, exp.IsClosed(e), "seed %d generated open %s", seed, e.String())
	}
}

func Test_Gen_Types(t *testing.T) {
	for seed := range uint64(50) {
		g := New(seed)
		//
		for _, typ := range Types() {
			e := g.Gen(typ, 4)
			r, err := exp.TypeOf(e, nil)
			//
			assert.NoError(t, err)
			assert.True(t, typ.Equals(r), "expected %s, got %s", typ.String(), r.String())
		}
	}
}

func Test_Gen_Fun(t *testing.T) {
	for seed := range uint64(100) {
		f := New(seed).Fun(2, 5)
		params, result, err := exp.TypeOfFun(f, nil)
		//
		assert.NoError(t, err, "seed %d generated ill-typed %s", seed, f.String())
		assert.Equal(t, 2, len(params))
		assert.True(t, result.Equals(exp.Int))
	}
}

func Test_Gen_Deterministic(t *testing.T) {
	for seed := range uint64(20) {
		assert.Equal(t, New(seed).Expr(6).String(), New(seed).Expr(6).String())
	}
}
