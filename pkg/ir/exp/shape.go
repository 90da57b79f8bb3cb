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
	"fmt"
)

// ErrOutOfBounds is returned when an index lies outside of a given shape.
var ErrOutOfBounds = errors.New("index out of bounds")

// ShapeToIndex converts a multi-dimensional index into a linear index for a
// given shape, using row-major order (i.e. the innermost extent varies
// fastest).  Every component of the index must lie within its extent.
func ShapeToIndex(sh *ShapeValue, ix *ShapeValue) (int64, error) {
	if len(sh.Extents) != len(ix.Extents) {
		return 0, fmt.Errorf("rank mismatch (%d vs %d)", len(sh.Extents), len(ix.Extents))
	}
	//
	var index int64
	//
	for i, n := range sh.Extents {
		if ix.Extents[i] < 0 || ix.Extents[i] >= n {
			return 0, ErrOutOfBounds
		}
		//
		index = index*n + ix.Extents[i]
	}
	//
	return index, nil
}

// ShapeFromIndex converts a linear index into a multi-dimensional index for a
// given shape.  The index must lie within [0, size), such that both
// ShapeToIndex(sh, ShapeFromIndex(sh, i)) == i and ShapeFromIndex(sh,
// ShapeToIndex(sh, ix)) == ix whenever either side is defined.
func ShapeFromIndex(sh *ShapeValue, index int64) (*ShapeValue, error) {
	var (
		n  = len(sh.Extents)
		ix = make([]int64, n)
	)
	//
	for i := n - 1; i > 0; i-- {
		if sh.Extents[i] == 0 {
			return nil, ErrDivisionByZero
		}
	}
	//
	if index < 0 || index >= ShapeSizeOf(sh) {
		return nil, ErrOutOfBounds
	}
	//
	for i := n - 1; i >= 0; i-- {
		ix[i] = index % sh.Extents[i]
		index = index / sh.Extents[i]
	}
	//
	return &ShapeValue{ix}, nil
}

// ShapeSizeOf returns the number of elements in an array of a given shape.
func ShapeSizeOf(sh *ShapeValue) int64 {
	var size int64 = 1
	//
	for _, n := range sh.Extents {
		size *= n
	}
	//
	return size
}

// ShapeTranspose reverses the extents of a shape.
func ShapeTranspose(sh *ShapeValue) *ShapeValue {
	var (
		n       = len(sh.Extents)
		extents = make([]int64, n)
	)
	//
	for i, e := range sh.Extents {
		extents[n-1-i] = e
	}
	//
	return &ShapeValue{extents}
}

// ShapeIntersect computes the component-wise minimum of two shapes.
func ShapeIntersect(lhs *ShapeValue, rhs *ShapeValue) (*ShapeValue, error) {
	return shapeZip(lhs, rhs, func(x, y int64) int64 { return min(x, y) })
}

// ShapeUnion computes the component-wise maximum of two shapes.
func ShapeUnion(lhs *ShapeValue, rhs *ShapeValue) (*ShapeValue, error) {
	return shapeZip(lhs, rhs, func(x, y int64) int64 { return max(x, y) })
}

// ShapeSlice restricts a full shape to the dimensions kept by a slice.
func ShapeSlice(slice SliceIndex, sh *ShapeValue) (*ShapeValue, error) {
	if slice.Rank() != uint(len(sh.Extents)) {
		return nil, fmt.Errorf("slice rank mismatch (%d vs %d)", slice.Rank(), len(sh.Extents))
	}
	//
	var extents []int64
	//
	for i, d := range slice {
		if d == All {
			extents = append(extents, sh.Extents[i])
		}
	}
	//
	return &ShapeValue{extents}, nil
}

// ShapeFull rebuilds a full shape by interleaving the components of a slice
// specifier (fixed dimensions) and a slice shape (kept dimensions).
func ShapeFull(slice SliceIndex, slix *ShapeValue, sl *ShapeValue) (*ShapeValue, error) {
	if slice.FixedRank() != uint(len(slix.Extents)) || slice.SliceRank() != uint(len(sl.Extents)) {
		return nil, fmt.Errorf("slice rank mismatch")
	}
	//
	var (
		extents = make([]int64, len(slice))
		i, j    int
	)
	//
	for k, d := range slice {
		if d == All {
			extents[k] = sl.Extents[j]
			j++
		} else {
			extents[k] = slix.Extents[i]
			i++
		}
	}
	//
	return &ShapeValue{extents}, nil
}

// ShapeToSlice converts a linear index over the fixed dimensions of a full
// shape into a slice specifier.
func ShapeToSlice(slice SliceIndex, sh *ShapeValue, index int64) (*ShapeValue, error) {
	if slice.Rank() != uint(len(sh.Extents)) {
		return nil, fmt.Errorf("slice rank mismatch (%d vs %d)", slice.Rank(), len(sh.Extents))
	}
	//
	var fixed []int64
	//
	for i, d := range slice {
		if d == Fixed {
			fixed = append(fixed, sh.Extents[i])
		}
	}
	//
	return ShapeFromIndex(&ShapeValue{fixed}, index)
}

func shapeZip(lhs *ShapeValue, rhs *ShapeValue, fn func(int64, int64) int64) (*ShapeValue, error) {
	if len(lhs.Extents) != len(rhs.Extents) {
		return nil, fmt.Errorf("rank mismatch (%d vs %d)", len(lhs.Extents), len(rhs.Extents))
	}
	//
	var extents = make([]int64, len(lhs.Extents))
	//
	for i := range extents {
		extents[i] = fn(lhs.Extents[i], rhs.Extents[i])
	}
	//
	return &ShapeValue{extents}, nil
}
