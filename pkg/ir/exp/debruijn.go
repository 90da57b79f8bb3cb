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

// Weaken shifts every free variable in a given expression outwards by n
// positions.  This is required whenever an expression is moved underneath n
// additional binders.
func Weaken(e Expr, n uint) Expr {
	return Shift(e, n, 0)
}

// Shift increments every variable whose index is at least cutoff (relative to
// the root of the expression) by n.
func Shift(e Expr, n uint, cutoff uint) Expr {
	if n == 0 {
		return e
	}
	//
	r, _ := mapVars(e, 0, func(v *Var, depth uint) (Expr, bool) {
		if v.Index >= depth+cutoff {
			return &Var{v.Index + n}, true
		}
		//
		return v, true
	})
	//
	return r
}

// ShiftFun is the function variant of Shift.
func ShiftFun(f Fun, n uint, cutoff uint) Fun {
	if n == 0 {
		return f
	}
	//
	r, _ := mapVarsFun(f, 0, func(v *Var, depth uint) (Expr, bool) {
		if v.Index >= depth+cutoff {
			return &Var{v.Index + n}, true
		}
		//
		return v, true
	})
	//
	return r
}

// Strengthen removes the innermost variable from scope of a given expression.
// This fails if the variable is actually used.
func Strengthen(e Expr) (Expr, bool) {
	return StrengthenAt(e, 0)
}

// StrengthenAt removes the variable with a given index from scope of a given
// expression, such that all variables further out are shifted inwards by one.
// This fails if the variable is actually used.
func StrengthenAt(e Expr, index uint) (Expr, bool) {
	return mapVars(e, 0, func(v *Var, depth uint) (Expr, bool) {
		switch {
		case v.Index == depth+index:
			return nil, false
		case v.Index > depth+index:
			return &Var{v.Index - 1}, true
		default:
			return v, true
		}
	})
}

// Instantiate substitutes a given expression for the innermost variable of a
// body, removing that variable from scope.  The replacement is given in the
// scope enclosing the binder being eliminated.
func Instantiate(body Expr, replacement Expr) Expr {
	r, _ := mapVars(body, 0, func(v *Var, depth uint) (Expr, bool) {
		switch {
		case v.Index == depth:
			return Weaken(replacement, depth), true
		case v.Index > depth:
			return &Var{v.Index - 1}, true
		default:
			return v, true
		}
	})
	//
	return r
}

// InstantiateFun is the function variant of Instantiate.
func InstantiateFun(body Fun, replacement Expr) Fun {
	r, _ := mapVarsFun(body, 0, func(v *Var, depth uint) (Expr, bool) {
		switch {
		case v.Index == depth:
			return Weaken(replacement, depth), true
		case v.Index > depth:
			return &Var{v.Index - 1}, true
		default:
			return v, true
		}
	})
	//
	return r
}

// IsClosed checks whether an expression has no free variables.
func IsClosed(e Expr) bool {
	var closed = true
	//
	Walk(e, func(e Expr, depth uint, _ bool) bool {
		if v, ok := e.(*Var); ok && v.Index >= depth {
			closed = false
		}
		//
		return closed
	})
	//
	return closed
}

// ============================================================================
// Helpers
// ============================================================================

// varMapping rewrites a variable encountered at a given binder depth (relative
// to the root of the traversal).  Returning false aborts the traversal.
type varMapping func(v *Var, depth uint) (Expr, bool)

//nolint:gocyclo
func mapVars(e Expr, depth uint, fn varMapping) (Expr, bool) {
	var ok = true
	// Helper for recursive calls
	rec := func(arg Expr, d uint) Expr {
		if !ok {
			return nil
		}
		//
		var r Expr
		r, ok = mapVars(arg, d, fn)
		//
		return r
	}
	recf := func(arg Fun) Fun {
		if !ok {
			return nil
		}
		//
		var r Fun
		r, ok = mapVarsFun(arg, depth, fn)
		//
		return r
	}
	//
	var r Expr
	//
	switch e := e.(type) {
	case *Let:
		r = &Let{rec(e.Bound, depth), rec(e.Body, depth+1)}
	case *Var:
		return fn(e, depth)
	case *Const, *PrimConst, *IndexNil, *Shape:
		return e, true
	case *Tuple:
		elements := make([]Expr, len(e.Elements))
		//
		for i, elem := range e.Elements {
			elements[i] = rec(elem, depth)
		}
		//
		r = &Tuple{elements}
	case *Prj:
		r = &Prj{e.Index, rec(e.Arg, depth)}
	case *IndexCons:
		r = &IndexCons{rec(e.Tail, depth), rec(e.Head, depth)}
	case *IndexHead:
		r = &IndexHead{rec(e.Arg, depth)}
	case *IndexTail:
		r = &IndexTail{rec(e.Arg, depth)}
	case *IndexTrans:
		r = &IndexTrans{rec(e.Arg, depth)}
	case *IndexSlice:
		r = &IndexSlice{e.Slice, rec(e.Slix, depth), rec(e.Shape, depth)}
	case *IndexFull:
		r = &IndexFull{e.Slice, rec(e.Slix, depth), rec(e.Sl, depth)}
	case *ToIndex:
		r = &ToIndex{rec(e.Shape, depth), rec(e.Index, depth)}
	case *FromIndex:
		r = &FromIndex{rec(e.Shape, depth), rec(e.Index, depth)}
	case *ToSlice:
		r = &ToSlice{e.Slice, rec(e.Shape, depth), rec(e.Index, depth)}
	case *ShapeSize:
		r = &ShapeSize{rec(e.Arg, depth)}
	case *Intersect:
		r = &Intersect{rec(e.Lhs, depth), rec(e.Rhs, depth)}
	case *Union:
		r = &Union{rec(e.Lhs, depth), rec(e.Rhs, depth)}
	case *Cond:
		r = &Cond{rec(e.Condition, depth), rec(e.TrueBranch, depth), rec(e.FalseBranch, depth)}
	case *While:
		r = &While{recf(e.Predicate), recf(e.Step), rec(e.Seed, depth)}
	case *PrimApp:
		r = &PrimApp{e.Fun, rec(e.Arg, depth)}
	case *Index:
		r = &Index{e.Array, rec(e.Index, depth)}
	case *LinearIndex:
		r = &LinearIndex{e.Array, rec(e.Index, depth)}
	case *Foreign:
		// The fallback is closed, hence is unaffected.
		r = &Foreign{e.Name, e.Fallback, rec(e.Arg, depth)}
	default:
		panic(fmt.Sprintf("unknown expression encountered (%T)", e))
	}
	//
	if !ok {
		return nil, false
	}
	//
	return r, true
}

func mapVarsFun(f Fun, depth uint, fn varMapping) (Fun, bool) {
	switch f := f.(type) {
	case *Body:
		if body, ok := mapVars(f.Body, depth, fn); ok {
			return &Body{body}, true
		}
	case *Lam:
		if body, ok := mapVarsFun(f.Body, depth+1, fn); ok {
			return &Lam{f.Param, body}, true
		}
	default:
		panic(fmt.Sprintf("unknown function encountered (%T)", f))
	}
	//
	return nil, false
}
