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

	"github.com/consensys/go-scalaropt/pkg/util/source/sexp"
)

// Lisp implementation for the Tree interface.
func (p *Let) Lisp() sexp.SExp { return list("let", p.Bound.Lisp(), p.Body.Lisp()) }

// Lisp implementation for the Tree interface.
func (p *Var) Lisp() sexp.SExp { return sexp.NewSymbol(fmt.Sprintf("#%d", p.Index)) }

// Lisp implementation for the Tree interface.
func (p *Const) Lisp() sexp.SExp { return LispOfValue(p.Value) }

// Lisp implementation for the Tree interface.
func (p *PrimConst) Lisp() sexp.SExp {
	return list(p.Tag.String(), sexp.NewSymbol(p.Type.String()))
}

// Lisp implementation for the Tree interface.
func (p *Tuple) Lisp() sexp.SExp { return list("tuple", lispOfExprs(p.Elements...)...) }

// Lisp implementation for the Tree interface.
func (p *Prj) Lisp() sexp.SExp {
	return list("prj", sexp.NewSymbol(fmt.Sprintf("%d", p.Index)), p.Arg.Lisp())
}

// Lisp implementation for the Tree interface.
func (p *IndexNil) Lisp() sexp.SExp { return sexp.NewSymbol("Z") }

// Lisp implementation for the Tree interface.
func (p *IndexCons) Lisp() sexp.SExp { return list(":.", p.Tail.Lisp(), p.Head.Lisp()) }

// Lisp implementation for the Tree interface.
func (p *IndexHead) Lisp() sexp.SExp { return list("head", p.Arg.Lisp()) }

// Lisp implementation for the Tree interface.
func (p *IndexTail) Lisp() sexp.SExp { return list("tail", p.Arg.Lisp()) }

// Lisp implementation for the Tree interface.
func (p *IndexTrans) Lisp() sexp.SExp { return list("transpose", p.Arg.Lisp()) }

// Lisp implementation for the Tree interface.
func (p *IndexSlice) Lisp() sexp.SExp {
	return list("slice", lispOfSlice(p.Slice), p.Slix.Lisp(), p.Shape.Lisp())
}

// Lisp implementation for the Tree interface.
func (p *IndexFull) Lisp() sexp.SExp {
	return list("full", lispOfSlice(p.Slice), p.Slix.Lisp(), p.Sl.Lisp())
}

// Lisp implementation for the Tree interface.
func (p *ToIndex) Lisp() sexp.SExp { return list("to-index", p.Shape.Lisp(), p.Index.Lisp()) }

// Lisp implementation for the Tree interface.
func (p *FromIndex) Lisp() sexp.SExp { return list("from-index", p.Shape.Lisp(), p.Index.Lisp()) }

// Lisp implementation for the Tree interface.
func (p *ToSlice) Lisp() sexp.SExp {
	return list("to-slice", lispOfSlice(p.Slice), p.Shape.Lisp(), p.Index.Lisp())
}

// Lisp implementation for the Tree interface.
func (p *ShapeSize) Lisp() sexp.SExp { return list("size", p.Arg.Lisp()) }

// Lisp implementation for the Tree interface.
func (p *Intersect) Lisp() sexp.SExp { return list("intersect", p.Lhs.Lisp(), p.Rhs.Lisp()) }

// Lisp implementation for the Tree interface.
func (p *Union) Lisp() sexp.SExp { return list("union", p.Lhs.Lisp(), p.Rhs.Lisp()) }

// Lisp implementation for the Tree interface.
func (p *Cond) Lisp() sexp.SExp {
	return list("if", p.Condition.Lisp(), p.TrueBranch.Lisp(), p.FalseBranch.Lisp())
}

// Lisp implementation for the Tree interface.
func (p *While) Lisp() sexp.SExp {
	return list("while", p.Predicate.Lisp(), p.Step.Lisp(), p.Seed.Lisp())
}

// Lisp implementation for the Tree interface.  Binary operators applied to an
// explicit pair are printed with two arguments.
func (p *PrimApp) Lisp() sexp.SExp {
	if t, ok := p.Arg.(*Tuple); ok && p.Fun.Arity() == 2 && len(t.Elements) == 2 {
		return list(p.Fun.String(), t.Elements[0].Lisp(), t.Elements[1].Lisp())
	}
	//
	return list(p.Fun.String(), p.Arg.Lisp())
}

// Lisp implementation for the Tree interface.
func (p *Index) Lisp() sexp.SExp { return list("index", lispOfArray(p.Array), p.Index.Lisp()) }

// Lisp implementation for the Tree interface.
func (p *LinearIndex) Lisp() sexp.SExp {
	return list("linear-index", lispOfArray(p.Array), p.Index.Lisp())
}

// Lisp implementation for the Tree interface.
func (p *Shape) Lisp() sexp.SExp { return list("shape-of", lispOfArray(p.Array)) }

// Lisp implementation for the Tree interface.
func (p *Foreign) Lisp() sexp.SExp {
	return list("foreign", sexp.NewSymbol(p.Name), p.Fallback.Lisp(), p.Arg.Lisp())
}

// Lisp implementation for the Tree interface.
func (p *Body) Lisp() sexp.SExp { return p.Body.Lisp() }

// Lisp implementation for the Tree interface.
func (p *Lam) Lisp() sexp.SExp { return list("lam", LispOfType(p.Param), p.Body.Lisp()) }

func (p *Let) String() string         { return p.Lisp().String(false) }
func (p *Var) String() string         { return p.Lisp().String(false) }
func (p *Const) String() string       { return p.Lisp().String(false) }
func (p *PrimConst) String() string   { return p.Lisp().String(false) }
func (p *Tuple) String() string       { return p.Lisp().String(false) }
func (p *Prj) String() string         { return p.Lisp().String(false) }
func (p *IndexNil) String() string    { return p.Lisp().String(false) }
func (p *IndexCons) String() string   { return p.Lisp().String(false) }
func (p *IndexHead) String() string   { return p.Lisp().String(false) }
func (p *IndexTail) String() string   { return p.Lisp().String(false) }
func (p *IndexTrans) String() string  { return p.Lisp().String(false) }
func (p *IndexSlice) String() string  { return p.Lisp().String(false) }
func (p *IndexFull) String() string   { return p.Lisp().String(false) }
func (p *ToIndex) String() string     { return p.Lisp().String(false) }
func (p *FromIndex) String() string   { return p.Lisp().String(false) }
func (p *ToSlice) String() string     { return p.Lisp().String(false) }
func (p *ShapeSize) String() string   { return p.Lisp().String(false) }
func (p *Intersect) String() string   { return p.Lisp().String(false) }
func (p *Union) String() string       { return p.Lisp().String(false) }
func (p *Cond) String() string        { return p.Lisp().String(false) }
func (p *While) String() string       { return p.Lisp().String(false) }
func (p *PrimApp) String() string     { return p.Lisp().String(false) }
func (p *Index) String() string       { return p.Lisp().String(false) }
func (p *LinearIndex) String() string { return p.Lisp().String(false) }
func (p *Shape) String() string       { return p.Lisp().String(false) }
func (p *Foreign) String() string     { return p.Lisp().String(false) }
func (p *Body) String() string        { return p.Lisp().String(false) }
func (p *Lam) String() string         { return p.Lisp().String(false) }

// LispOfValue converts a value into an S-Expression.  Tuples are written as
// sets (e.g. "{1 true}"), whilst shapes are written as lists (e.g. "(shape 2
// 3)").
func LispOfValue(v Value) sexp.SExp {
	switch v := v.(type) {
	case *TupleValue:
		elements := make([]sexp.SExp, len(v.Elements))
		//
		for i, e := range v.Elements {
			elements[i] = LispOfValue(e)
		}
		//
		return sexp.NewSet(elements)
	case *ShapeValue:
		elements := make([]sexp.SExp, len(v.Extents)+1)
		elements[0] = sexp.NewSymbol("shape")
		//
		for i, e := range v.Extents {
			elements[i+1] = sexp.NewSymbol(fmt.Sprintf("%d", e))
		}
		//
		return sexp.NewList(elements)
	default:
		return sexp.NewSymbol(v.String())
	}
}

// LispOfType converts a type into an S-Expression.
func LispOfType(t Type) sexp.SExp {
	switch t := t.(type) {
	case *TupleType:
		elements := make([]sexp.SExp, len(t.Elements))
		//
		for i, e := range t.Elements {
			elements[i] = LispOfType(e)
		}
		//
		return list("Tuple", elements...)
	case *ShapeType:
		return list("Shape", sexp.NewSymbol(fmt.Sprintf("%d", t.Rank)))
	default:
		return sexp.NewSymbol(t.String())
	}
}

func lispOfArray(arr ArrayRef) sexp.SExp {
	return list("array", sexp.NewSymbol(arr.Name), sexp.NewSymbol(fmt.Sprintf("%d", arr.Rank)),
		LispOfType(arr.Element))
}

func lispOfSlice(slice SliceIndex) sexp.SExp {
	var elements = make([]sexp.SExp, len(slice))
	//
	for i, d := range slice {
		if d == All {
			elements[i] = sexp.NewSymbol("all")
		} else {
			elements[i] = sexp.NewSymbol("fixed")
		}
	}
	//
	return sexp.NewArray(elements)
}

func lispOfExprs(exprs ...Expr) []sexp.SExp {
	var elements = make([]sexp.SExp, len(exprs))
	//
	for i, e := range exprs {
		elements[i] = e.Lisp()
	}
	//
	return elements
}

func list(head string, args ...sexp.SExp) *sexp.List {
	var elements = make([]sexp.SExp, len(args)+1)
	//
	elements[0] = sexp.NewSymbol(head)
	copy(elements[1:], args)
	//
	return sexp.NewList(elements)
}
