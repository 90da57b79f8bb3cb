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
	"github.com/consensys/go-scalaropt/pkg/util/source/sexp"
)

// Tree represents either an expression or a function.  Trees are immutable:
// rewriting a tree always produces a new tree, though subtrees may be shared
// between the input and the output.
type Tree interface {
	// Lisp converts this tree into an S-Expression, for example so it can be
	// printed.
	Lisp() sexp.SExp
	// String returns a compact textual representation of this tree.
	String() string
}

// Expr represents a scalar expression.  Variables are represented using de
// Bruijn indices, such that Var(0) refers to the innermost enclosing binder.
// Binders are Let (binding one variable in its body) and Lam (binding one
// variable in the remainder of a function).
type Expr interface {
	Tree
	// expr is a marker which prevents functions from being used as
	// expressions.
	expr()
}

// Let binds the result of an expression in a given body, where it is
// accessible as Var(0).
type Let struct {
	Bound Expr
	Body  Expr
}

// Var is a de Bruijn indexed variable.
type Var struct {
	Index uint
}

// Const is a constant value.
type Const struct {
	Value Value
}

// PrimConst is a primitive constant whose value depends on its type, such as
// the smallest representable integer.
type PrimConst struct {
	Tag  PrimConstTag
	Type ScalarType
}

// Tuple constructs a tuple from zero or more expressions.
type Tuple struct {
	Elements []Expr
}

// Prj projects out the ith component (counting from 0) of a tuple.
type Prj struct {
	Index uint
	Arg   Expr
}

// IndexNil is the empty shape Z.
type IndexNil struct{}

// IndexCons extends a shape with a new innermost extent.
type IndexCons struct {
	Tail Expr
	Head Expr
}

// IndexHead extracts the innermost extent of a shape.
type IndexHead struct {
	Arg Expr
}

// IndexTail drops the innermost extent of a shape.
type IndexTail struct {
	Arg Expr
}

// IndexTrans transposes a shape (i.e. reverses its extents).
type IndexTrans struct {
	Arg Expr
}

// IndexSlice restricts a full shape to those dimensions kept by a slice.  The
// slice specifier is evaluated (and simplified) but does not affect the result.
type IndexSlice struct {
	Slice SliceIndex
	Slix  Expr
	Shape Expr
}

// IndexFull rebuilds a full shape from a slice specifier (giving the fixed
// dimensions) and a slice shape (giving the kept dimensions).
type IndexFull struct {
	Slice SliceIndex
	Slix  Expr
	Sl    Expr
}

// ToIndex converts a multi-dimensional index into a linear index in row-major
// order for a given shape.
type ToIndex struct {
	Shape Expr
	Index Expr
}

// FromIndex converts a linear index into a multi-dimensional index for a given
// shape.
type FromIndex struct {
	Shape Expr
	Index Expr
}

// ToSlice converts a linear index over the fixed dimensions of a full shape
// into a slice specifier.
type ToSlice struct {
	Slice SliceIndex
	Shape Expr
	Index Expr
}

// ShapeSize determines the number of elements in an array of a given shape.
type ShapeSize struct {
	Arg Expr
}

// Intersect computes the component-wise minimum of two shapes.
type Intersect struct {
	Lhs Expr
	Rhs Expr
}

// Union computes the component-wise maximum of two shapes.
type Union struct {
	Lhs Expr
	Rhs Expr
}

// Cond is a conditional expression.  The condition is assumed to be free of
// side effects.
type Cond struct {
	Condition   Expr
	TrueBranch  Expr
	FalseBranch Expr
}

// While repeatedly applies a step function to a value (starting from a given
// seed) whilst a given predicate holds.  Both functions take exactly one
// parameter and are open in the enclosing scope.
type While struct {
	Predicate Fun
	Step      Fun
	Seed      Expr
}

// PrimApp applies a primitive operator to an operand.  Binary operators take
// a pair as their operand.
type PrimApp struct {
	Fun PrimFun
	Arg Expr
}

// Index reads an element of an array using a multi-dimensional index.
type Index struct {
	Array ArrayRef
	Index Expr
}

// LinearIndex reads an element of an array using a linear index.
type LinearIndex struct {
	Array ArrayRef
	Index Expr
}

// Shape returns the shape of an array.
type Shape struct {
	Array ArrayRef
}

// Foreign wraps a backend intrinsic.  The fallback is a closed function which
// provides a portable implementation of the intrinsic, and which is applied to
// the given argument.
type Foreign struct {
	Name     string
	Fallback Fun
	Arg      Expr
}

func (p *Let) expr()         {}
func (p *Var) expr()         {}
func (p *Const) expr()       {}
func (p *PrimConst) expr()   {}
func (p *Tuple) expr()       {}
func (p *Prj) expr()         {}
func (p *IndexNil) expr()    {}
func (p *IndexCons) expr()   {}
func (p *IndexHead) expr()   {}
func (p *IndexTail) expr()   {}
func (p *IndexTrans) expr()  {}
func (p *IndexSlice) expr()  {}
func (p *IndexFull) expr()   {}
func (p *ToIndex) expr()     {}
func (p *FromIndex) expr()   {}
func (p *ToSlice) expr()     {}
func (p *ShapeSize) expr()   {}
func (p *Intersect) expr()   {}
func (p *Union) expr()       {}
func (p *Cond) expr()        {}
func (p *While) expr()       {}
func (p *PrimApp) expr()     {}
func (p *Index) expr()       {}
func (p *LinearIndex) expr() {}
func (p *Shape) expr()       {}
func (p *Foreign) expr()     {}

// ============================================================================
// Constructors
// ============================================================================

// NewLet constructs a let binding.
func NewLet(bound Expr, body Expr) *Let {
	return &Let{bound, body}
}

// NewVar constructs a variable with a given de Bruijn index.
func NewVar(index uint) *Var {
	return &Var{index}
}

// NewConst constructs a constant expression.
func NewConst(value Value) *Const {
	return &Const{value}
}

// NewInt constructs an integer constant expression.
func NewInt(value int64) *Const {
	return &Const{IntValue(value)}
}

// NewBool constructs a boolean constant expression.
func NewBool(value bool) *Const {
	return &Const{BoolValue(value)}
}

// NewTuple constructs a tuple expression.
func NewTuple(elements ...Expr) *Tuple {
	return &Tuple{elements}
}

// NewPrj constructs a projection.
func NewPrj(index uint, arg Expr) *Prj {
	return &Prj{index, arg}
}

// NewCond constructs a conditional expression.
func NewCond(condition Expr, trueBranch Expr, falseBranch Expr) *Cond {
	return &Cond{condition, trueBranch, falseBranch}
}

// NewPrimApp applies a primitive operator to one or more arguments.  When more
// than one argument is given, they are paired into a tuple operand.
func NewPrimApp(fun PrimFun, args ...Expr) *PrimApp {
	if len(args) == 1 {
		return &PrimApp{fun, args[0]}
	}
	//
	return &PrimApp{fun, &Tuple{args}}
}

// ============================================================================
// Arrays
// ============================================================================

// ArrayRef is an opaque reference to an array.  Array references are never
// rewritten; only the scalar expressions used to index them are.
type ArrayRef struct {
	// Name of the array
	Name string
	// Rank of the array's shape
	Rank uint
	// Element type of the array
	Element Type
}

// Equals checks whether two array references are identical.
func (p ArrayRef) Equals(other ArrayRef) bool {
	return p.Name == other.Name && p.Rank == other.Rank && p.Element.Equals(other.Element)
}

// ============================================================================
// Slices
// ============================================================================

// SliceDim determines whether a given dimension is kept by a slice, or fixed
// by the slice specifier.
type SliceDim bool

const (
	// All indicates a dimension retained in the slice.
	All SliceDim = true
	// Fixed indicates a dimension fixed by the slice specifier.
	Fixed SliceDim = false
)

// SliceIndex describes how a slice is taken from a shape, one entry per
// dimension (outermost first).
type SliceIndex []SliceDim

// Rank returns the rank of the full shape.
func (p SliceIndex) Rank() uint {
	return uint(len(p))
}

// SliceRank returns the rank of the slice shape.
func (p SliceIndex) SliceRank() uint {
	return p.count(All)
}

// FixedRank returns the rank of the slice specifier.
func (p SliceIndex) FixedRank() uint {
	return p.count(Fixed)
}

// Equals checks whether two slice indices are identical.
func (p SliceIndex) Equals(other SliceIndex) bool {
	if len(p) != len(other) {
		return false
	}
	//
	for i, d := range p {
		if d != other[i] {
			return false
		}
	}
	//
	return true
}

func (p SliceIndex) count(kind SliceDim) uint {
	var n uint
	//
	for _, d := range p {
		if d == kind {
			n++
		}
	}
	//
	return n
}
