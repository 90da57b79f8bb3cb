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
	"errors"
	"testing"

	"github.com/consensys/go-scalaropt/pkg/util/assert"
)

func Test_ShapeIndex_01(t *testing.T) {
	checkShapeIndex(t)
}

func Test_ShapeIndex_02(t *testing.T) {
	checkShapeIndex(t, 4)
}

func Test_ShapeIndex_03(t *testing.T) {
	checkShapeIndex(t, 2, 3)
}

func Test_ShapeIndex_04(t *testing.T) {
	checkShapeIndex(t, 3, 1, 2)
}

func Test_ShapeIndex_05(t *testing.T) {
	checkShapeIndex(t, 0, 3)
}

func Test_ShapeIndex_06(t *testing.T) {
	_, err := ShapeFromIndex(NewShapeValue(2, 0), 1)
	assert.True(t, errors.Is(err, ErrDivisionByZero))
}

func Test_ShapeIndex_07(t *testing.T) {
	_, err := ShapeToIndex(NewShapeValue(2, 3), NewShapeValue(1))
	assert.Error(t, err)
}

func Test_ShapeIndex_08(t *testing.T) {
	// Negative components are out of bounds
	_, err := ShapeToIndex(NewShapeValue(2, 3), NewShapeValue(-1, 2))
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

// checkShapeIndex checks that converting to and from linear indices are
// inverses for every index within a given shape, and that indices outside of
// it are rejected.
func checkShapeIndex(t *testing.T, extents ...int64) {
	var (
		sh   = NewShapeValue(extents...)
		size = ShapeSizeOf(sh)
	)
	//
	for i := range size {
		ix, err := ShapeFromIndex(sh, i)
		assert.NoError(t, err)
		//
		j, err := ShapeToIndex(sh, ix)
		assert.NoError(t, err)
		assert.Equal(t, i, j, "index %d of %s", i, sh.String())
	}
	//
	for _, i := range []int64{-1, size, size + 1, 2*size + 3} {
		_, err := ShapeFromIndex(sh, i)
		assert.True(t, errors.Is(err, ErrOutOfBounds), "index %d of %s", i, sh.String())
	}
	// Components outside their extent
	for k := range extents {
		ix := make([]int64, len(extents))
		ix[k] = extents[k]
		//
		_, err := ShapeToIndex(sh, NewShapeValue(ix...))
		assert.True(t, errors.Is(err, ErrOutOfBounds), "component %d of %s", k, sh.String())
	}
}
