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
	"fmt"
)

// Match checks whether two expressions, in the same scope, are structurally
// identical.  Since variables are de Bruijn indexed, this is equivalent to
// checking alpha-equivalence.
func Match(x Expr, y Expr) bool {
	return matchExpr(x, y, 0, 0)
}

// MatchAt checks whether two expressions are structurally identical, where y
// was formed in a scope enclosing that of x with shift fewer binders.  That is,
// free variables of y are weakened by shift before being compared, such that
// two variables match only when they refer to the same binder.
func MatchAt(x Expr, y Expr, shift uint) bool {
	return matchExpr(x, y, 0, shift)
}

// MatchFun checks whether two functions, in the same scope, are structurally
// identical.
func MatchFun(x Fun, y Fun) bool {
	return matchFun(x, y, 0, 0)
}

//nolint:gocyclo
func matchExpr(x Expr, y Expr, depth uint, shift uint) bool {
	switch x := x.(type) {
	case *Let:
		if y, ok := y.(*Let); ok {
			return matchExpr(x.Bound, y.Bound, depth, shift) && matchExpr(x.Body, y.Body, depth+1, shift)
		}
	case *Var:
		if y, ok := y.(*Var); ok {
			if y.Index < depth {
				return x.Index == y.Index
			}
			//
			return x.Index == y.Index+shift
		}
	case *Const:
		if y, ok := y.(*Const); ok {
			return x.Value.Equals(y.Value)
		}
	case *PrimConst:
		if y, ok := y.(*PrimConst); ok {
			return x.Tag == y.Tag && x.Type == y.Type
		}
	case *Tuple:
		if y, ok := y.(*Tuple); ok && len(x.Elements) == len(y.Elements) {
			for i, elem := range x.Elements {
				if !matchExpr(elem, y.Elements[i], depth, shift) {
					return false
				}
			}
			//
			return true
		}
	case *Prj:
		if y, ok := y.(*Prj); ok {
			return x.Index == y.Index && matchExpr(x.Arg, y.Arg, depth, shift)
		}
	case *IndexNil:
		_, ok := y.(*IndexNil)
		return ok
	case *IndexCons:
		if y, ok := y.(*IndexCons); ok {
			return matchExpr(x.Tail, y.Tail, depth, shift) && matchExpr(x.Head, y.Head, depth, shift)
		}
	case *IndexHead:
		if y, ok := y.(*IndexHead); ok {
			return matchExpr(x.Arg, y.Arg, depth, shift)
		}
	case *IndexTail:
		if y, ok := y.(*IndexTail); ok {
			return matchExpr(x.Arg, y.Arg, depth, shift)
		}
	case *IndexTrans:
		if y, ok := y.(*IndexTrans); ok {
			return matchExpr(x.Arg, y.Arg, depth, shift)
		}
	case *IndexSlice:
		if y, ok := y.(*IndexSlice); ok {
			return x.Slice.Equals(y.Slice) && matchExpr(x.Slix, y.Slix, depth, shift) &&
				matchExpr(x.Shape, y.Shape, depth, shift)
		}
	case *IndexFull:
		if y, ok := y.(*IndexFull); ok {
			return x.Slice.Equals(y.Slice) && matchExpr(x.Slix, y.Slix, depth, shift) &&
				matchExpr(x.Sl, y.Sl, depth, shift)
		}
	case *ToIndex:
		if y, ok := y.(*ToIndex); ok {
			return matchExpr(x.Shape, y.Shape, depth, shift) && matchExpr(x.Index, y.Index, depth, shift)
		}
	case *FromIndex:
		if y, ok := y.(*FromIndex); ok {
			return matchExpr(x.Shape, y.Shape, depth, shift) && matchExpr(x.Index, y.Index, depth, shift)
		}
	case *ToSlice:
		if y, ok := y.(*ToSlice); ok {
			return x.Slice.Equals(y.Slice) && matchExpr(x.Shape, y.Shape, depth, shift) &&
				matchExpr(x.Index, y.Index, depth, shift)
		}
	case *ShapeSize:
		if y, ok := y.(*ShapeSize); ok {
			return matchExpr(x.Arg, y.Arg, depth, shift)
		}
	case *Intersect:
		if y, ok := y.(*Intersect); ok {
			return matchExpr(x.Lhs, y.Lhs, depth, shift) && matchExpr(x.Rhs, y.Rhs, depth, shift)
		}
	case *Union:
		if y, ok := y.(*Union); ok {
			return matchExpr(x.Lhs, y.Lhs, depth, shift) && matchExpr(x.Rhs, y.Rhs, depth, shift)
		}
	case *Cond:
		if y, ok := y.(*Cond); ok {
			return matchExpr(x.Condition, y.Condition, depth, shift) &&
				matchExpr(x.TrueBranch, y.TrueBranch, depth, shift) &&
				matchExpr(x.FalseBranch, y.FalseBranch, depth, shift)
		}
	case *While:
		if y, ok := y.(*While); ok {
			return matchFun(x.Predicate, y.Predicate, depth, shift) && matchFun(x.Step, y.Step, depth, shift) &&
				matchExpr(x.Seed, y.Seed, depth, shift)
		}
	case *PrimApp:
		if y, ok := y.(*PrimApp); ok {
			return x.Fun == y.Fun && matchExpr(x.Arg, y.Arg, depth, shift)
		}
	case *Index:
		if y, ok := y.(*Index); ok {
			return x.Array.Equals(y.Array) && matchExpr(x.Index, y.Index, depth, shift)
		}
	case *LinearIndex:
		if y, ok := y.(*LinearIndex); ok {
			return x.Array.Equals(y.Array) && matchExpr(x.Index, y.Index, depth, shift)
		}
	case *Shape:
		if y, ok := y.(*Shape); ok {
			return x.Array.Equals(y.Array)
		}
	case *Foreign:
		if y, ok := y.(*Foreign); ok {
			// Fallbacks are closed, hence are compared in the empty scope.
			return x.Name == y.Name && matchFun(x.Fallback, y.Fallback, 0, 0) &&
				matchExpr(x.Arg, y.Arg, depth, shift)
		}
	default:
		panic(fmt.Sprintf("unknown expression encountered (%T)", x))
	}
	//
	return false
}

func matchFun(x Fun, y Fun, depth uint, shift uint) bool {
	switch x := x.(type) {
	case *Body:
		if y, ok := y.(*Body); ok {
			return matchExpr(x.Body, y.Body, depth, shift)
		}
	case *Lam:
		if y, ok := y.(*Lam); ok {
			return x.Param.Equals(y.Param) && matchFun(x.Body, y.Body, depth+1, shift)
		}
	default:
		panic(fmt.Sprintf("unknown function encountered (%T)", x))
	}
	//
	return false
}
