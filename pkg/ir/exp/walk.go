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

// Visitor is called for every subexpression encountered during a walk.  The
// depth gives the number of binders between the root of the walk and the
// subexpression, whilst lambda indicates whether the subexpression lies within
// a function body.  Returning false prevents the walk from descending into the
// subexpression's children.
type Visitor func(e Expr, depth uint, lambda bool) bool

// Walk visits every subexpression of a given expression in pre-order.  Closed
// functions (i.e. the fallback of a Foreign) are not visited, since they
// cannot refer to any enclosing variables.
func Walk(e Expr, visitor Visitor) {
	walk(e, 0, false, visitor)
}

// WalkFun visits every subexpression of a given function in pre-order.
func WalkFun(f Fun, visitor Visitor) {
	walkFun(f, 0, false, visitor)
}

func walk(e Expr, depth uint, lambda bool, visitor Visitor) {
	if !visitor(e, depth, lambda) {
		return
	}
	//
	switch e := e.(type) {
	case *Let:
		walk(e.Bound, depth, lambda, visitor)
		walk(e.Body, depth+1, lambda, visitor)
	case *Var, *Const, *PrimConst, *IndexNil, *Shape:
		return
	case *Tuple:
		for _, elem := range e.Elements {
			walk(elem, depth, lambda, visitor)
		}
	case *Prj:
		walk(e.Arg, depth, lambda, visitor)
	case *IndexCons:
		walk(e.Tail, depth, lambda, visitor)
		walk(e.Head, depth, lambda, visitor)
	case *IndexHead:
		walk(e.Arg, depth, lambda, visitor)
	case *IndexTail:
		walk(e.Arg, depth, lambda, visitor)
	case *IndexTrans:
		walk(e.Arg, depth, lambda, visitor)
	case *IndexSlice:
		walk(e.Slix, depth, lambda, visitor)
		walk(e.Shape, depth, lambda, visitor)
	case *IndexFull:
		walk(e.Slix, depth, lambda, visitor)
		walk(e.Sl, depth, lambda, visitor)
	case *ToIndex:
		walk(e.Shape, depth, lambda, visitor)
		walk(e.Index, depth, lambda, visitor)
	case *FromIndex:
		walk(e.Shape, depth, lambda, visitor)
		walk(e.Index, depth, lambda, visitor)
	case *ToSlice:
		walk(e.Shape, depth, lambda, visitor)
		walk(e.Index, depth, lambda, visitor)
	case *ShapeSize:
		walk(e.Arg, depth, lambda, visitor)
	case *Intersect:
		walk(e.Lhs, depth, lambda, visitor)
		walk(e.Rhs, depth, lambda, visitor)
	case *Union:
		walk(e.Lhs, depth, lambda, visitor)
		walk(e.Rhs, depth, lambda, visitor)
	case *Cond:
		walk(e.Condition, depth, lambda, visitor)
		walk(e.TrueBranch, depth, lambda, visitor)
		walk(e.FalseBranch, depth, lambda, visitor)
	case *While:
		walkFun(e.Predicate, depth, true, visitor)
		walkFun(e.Step, depth, true, visitor)
		walk(e.Seed, depth, lambda, visitor)
	case *PrimApp:
		walk(e.Arg, depth, lambda, visitor)
	case *Index:
		walk(e.Index, depth, lambda, visitor)
	case *LinearIndex:
		walk(e.Index, depth, lambda, visitor)
	case *Foreign:
		walk(e.Arg, depth, lambda, visitor)
	default:
		panic(fmt.Sprintf("unknown expression encountered (%T)", e))
	}
}

func walkFun(f Fun, depth uint, lambda bool, visitor Visitor) {
	switch f := f.(type) {
	case *Body:
		walk(f.Body, depth, lambda, visitor)
	case *Lam:
		walkFun(f.Body, depth+1, lambda, visitor)
	default:
		panic(fmt.Sprintf("unknown function encountered (%T)", f))
	}
}

// Size returns the number of nodes in a given expression.
func Size(e Expr) uint {
	var n uint
	//
	Walk(e, func(Expr, uint, bool) bool {
		n++
		return true
	})
	//
	return n
}

// Uses counts the number of occurrences of a given variable within an
// expression.  The second count gives the number of those occurrences which
// lie within a function body (e.g. a loop predicate), and hence may be
// evaluated more than once.
func Uses(e Expr, index uint) (uint, uint) {
	var total, lambdas uint
	//
	Walk(e, func(e Expr, depth uint, lambda bool) bool {
		if v, ok := e.(*Var); ok && v.Index == index+depth {
			total++
			//
			if lambda {
				lambdas++
			}
		}
		//
		return true
	})
	//
	return total, lambdas
}

// MapChildren rebuilds an expression by applying a given rewriting to each of
// its immediate children.  Functions (i.e. loop predicates and step functions,
// along with foreign fallbacks) are rewritten by a separate rewriting.  Leaves
// are returned as is.
//
//nolint:gocyclo
func MapChildren(e Expr, fn func(Expr) Expr, fnf func(Fun) Fun) Expr {
	switch e := e.(type) {
	case *Let:
		return &Let{fn(e.Bound), fn(e.Body)}
	case *Var, *Const, *PrimConst, *IndexNil, *Shape:
		return e
	case *Tuple:
		elements := make([]Expr, len(e.Elements))
		//
		for i, elem := range e.Elements {
			elements[i] = fn(elem)
		}
		//
		return &Tuple{elements}
	case *Prj:
		return &Prj{e.Index, fn(e.Arg)}
	case *IndexCons:
		return &IndexCons{fn(e.Tail), fn(e.Head)}
	case *IndexHead:
		return &IndexHead{fn(e.Arg)}
	case *IndexTail:
		return &IndexTail{fn(e.Arg)}
	case *IndexTrans:
		return &IndexTrans{fn(e.Arg)}
	case *IndexSlice:
		return &IndexSlice{e.Slice, fn(e.Slix), fn(e.Shape)}
	case *IndexFull:
		return &IndexFull{e.Slice, fn(e.Slix), fn(e.Sl)}
	case *ToIndex:
		return &ToIndex{fn(e.Shape), fn(e.Index)}
	case *FromIndex:
		return &FromIndex{fn(e.Shape), fn(e.Index)}
	case *ToSlice:
		return &ToSlice{e.Slice, fn(e.Shape), fn(e.Index)}
	case *ShapeSize:
		return &ShapeSize{fn(e.Arg)}
	case *Intersect:
		return &Intersect{fn(e.Lhs), fn(e.Rhs)}
	case *Union:
		return &Union{fn(e.Lhs), fn(e.Rhs)}
	case *Cond:
		return &Cond{fn(e.Condition), fn(e.TrueBranch), fn(e.FalseBranch)}
	case *While:
		return &While{fnf(e.Predicate), fnf(e.Step), fn(e.Seed)}
	case *PrimApp:
		return &PrimApp{e.Fun, fn(e.Arg)}
	case *Index:
		return &Index{e.Array, fn(e.Index)}
	case *LinearIndex:
		return &LinearIndex{e.Array, fn(e.Index)}
	case *Foreign:
		return &Foreign{e.Name, fnf(e.Fallback), fn(e.Arg)}
	default:
		panic(fmt.Sprintf("unknown expression encountered (%T)", e))
	}
}
