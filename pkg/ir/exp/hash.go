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
	"hash/fnv"
	"math"
)

const (
	offset64 uint64 = 14695981039346656037
	prime64  uint64 = 1099511628211
)

// Hash computes a structural hashcode for an expression occurring in a scope
// with a given number of variables.  Free variables are hashed by their level
// (i.e. their position counting from the outermost binder) rather than their
// index, such that an expression and its weakening into a deeper scope have the
// same hashcode.  Thus, if MatchAt(x, y, n) holds for x in scope m+n and y in
// scope m, then Hash(x, m+n) == Hash(y, m).  The converse does not hold, as
// collisions are permitted.
func Hash(e Expr, scope uint) uint64 {
	var hash = offset64
	//
	mix := func(v uint64) {
		hash ^= v
		hash *= prime64
	}
	//
	Walk(e, func(e Expr, depth uint, _ bool) bool {
		mix(nodeTag(e))
		//
		switch e := e.(type) {
		case *Var:
			if e.Index < depth {
				mix(uint64(e.Index))
			} else {
				// Level of free variable
				level := int64(scope) - 1 - int64(e.Index-depth)
				mix(uint64(level) ^ 0x8000000000000000)
			}
		case *Const:
			mix(hashValue(e.Value))
		case *PrimConst:
			mix(uint64(e.Tag)<<8 | uint64(e.Type))
		case *Tuple:
			mix(uint64(len(e.Elements)))
		case *Prj:
			mix(uint64(e.Index))
		case *PrimApp:
			mix(uint64(e.Fun.Op)<<8 | uint64(e.Fun.Type))
		case *Index:
			mix(hashString(e.Array.Name))
		case *LinearIndex:
			mix(hashString(e.Array.Name))
		case *Shape:
			mix(hashString(e.Array.Name))
		case *Foreign:
			mix(hashString(e.Name))
		}
		//
		return true
	})
	//
	return hash
}

func nodeTag(e Expr) uint64 {
	switch e.(type) {
	case *Let:
		return 1
	case *Var:
		return 2
	case *Const:
		return 3
	case *PrimConst:
		return 4
	case *Tuple:
		return 5
	case *Prj:
		return 6
	case *IndexNil:
		return 7
	case *IndexCons:
		return 8
	case *IndexHead:
		return 9
	case *IndexTail:
		return 10
	case *IndexTrans:
		return 11
	case *IndexSlice:
		return 12
	case *IndexFull:
		return 13
	case *ToIndex:
		return 14
	case *FromIndex:
		return 15
	case *ToSlice:
		return 16
	case *ShapeSize:
		return 17
	case *Intersect:
		return 18
	case *Union:
		return 19
	case *Cond:
		return 20
	case *While:
		return 21
	case *PrimApp:
		return 22
	case *Index:
		return 23
	case *LinearIndex:
		return 24
	case *Shape:
		return 25
	case *Foreign:
		return 26
	}
	//
	return 0
}

func hashValue(v Value) uint64 {
	switch v := v.(type) {
	case IntValue:
		return uint64(v)
	case BoolValue:
		if v {
			return 1
		}
		//
		return 0
	case FloatValue:
		return math.Float64bits(float64(v))
	case FieldValue:
		bytes := v.Element.Bytes()
		hash := fnv.New64a()
		hash.Write(bytes[:])
		//
		return hash.Sum64()
	case *TupleValue:
		var hash = offset64
		//
		for _, e := range v.Elements {
			hash ^= hashValue(e)
			hash *= prime64
		}
		//
		return hash
	case *ShapeValue:
		var hash = offset64 ^ 0xff
		//
		for _, e := range v.Extents {
			hash ^= uint64(e)
			hash *= prime64
		}
		//
		return hash
	}
	//
	return 0
}

func hashString(s string) uint64 {
	hash := fnv.New64a()
	hash.Write([]byte(s))
	//
	return hash.Sum64()
}
