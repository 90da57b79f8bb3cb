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
	"math/rand/v2"

	"github.com/consensys/go-scalaropt/pkg/ir/eval"
	"github.com/consensys/go-scalaropt/pkg/ir/exp"
)

// ARRAY_A is a rank 2 integer array available to generated expressions.
var ARRAY_A = exp.ArrayRef{Name: "A", Rank: 2, Element: exp.Int}

// ARRAY_B is a rank 1 integer array available to generated expressions.
var ARRAY_B = exp.ArrayRef{Name: "B", Rank: 1, Element: exp.Int}

// Arrays returns the arrays referred to by generated expressions.
func Arrays() map[string]*eval.Array {
	var (
		a = make([]exp.Value, 6)
		b = make([]exp.Value, 4)
	)
	//
	for i := range a {
		a[i] = exp.IntValue(i * 3)
	}
	//
	for i := range b {
		b[i] = exp.IntValue(10 - i)
	}
	//
	return map[string]*eval.Array{
		"A": {Shape: exp.NewShapeValue(2, 3), Elements: a},
		"B": {Shape: exp.NewShapeValue(4), Elements: b},
	}
}

// Generator produces random, well-typed, closed expressions.  Generated
// expressions deliberately contain repeated subexpressions, such that there is
// something to eliminate.  Linear indices are only ever converted back into
// shapes when constant, since the identity fromIndex sh (toIndex sh ix) == ix
// only holds for indices within the bounds of sh.
type Generator struct {
	rand *rand.Rand
	// Types of variables in scope (outermost first)
	ctx []exp.Type
	// Previously generated expressions available for reuse
	pool []item
}

// item is a previously generated expression, along with its type and the
// number of variables in scope when it was generated.
type item struct {
	expr  exp.Expr
	etype exp.Type
	scope uint
}

// New constructs a generator with a given seed.
func New(seed uint64) *Generator {
	return &Generator{rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), nil, nil}
}

// Types returns the types of expression which can be generated.
func Types() []exp.Type {
	return []exp.Type{
		exp.Int, exp.Bool, exp.Field,
		exp.NewShapeType(0), exp.NewShapeType(1), exp.NewShapeType(2),
		exp.NewTupleType(exp.Int, exp.Bool),
	}
}

// Expr generates a closed expression of a random type, with a given maximum
// depth.
func (p *Generator) Expr(depth uint) exp.Expr {
	types := Types()
	return p.Gen(types[p.rand.IntN(len(types))], depth)
}

// Gen generates a closed expression of a given type, with a given maximum
// depth.
func (p *Generator) Gen(t exp.Type, depth uint) exp.Expr {
	p.ctx, p.pool = nil, nil
	return p.gen(t, depth)
}

// Fun generates a closed function of a given number of (integer) parameters.
func (p *Generator) Fun(params uint, depth uint) exp.Fun {
	var types = make([]exp.Type, params)
	//
	for i := range types {
		types[i] = exp.Int
	}
	//
	p.ctx, p.pool = types, nil
	body := p.gen(exp.Int, depth)
	p.ctx = nil
	//
	return exp.NewFun(body, types...)
}

func (p *Generator) gen(t exp.Type, depth uint) exp.Expr {
	var e exp.Expr
	//
	switch {
	case depth == 0:
		e = p.leaf(t)
	case p.rand.IntN(8) == 0:
		e = p.leaf(t)
	case p.rand.IntN(6) == 0:
		e = p.let(t, depth)
	case p.rand.IntN(10) == 0:
		e = exp.NewCond(p.gen(exp.Bool, depth-1), p.gen(t, depth-1), p.gen(t, depth-1))
	default:
		e = p.node(t, depth)
	}
	// Remember for reuse
	p.pool = append(p.pool, item{e, t, uint(len(p.ctx))})
	//
	return e
}

func (p *Generator) node(t exp.Type, depth uint) exp.Expr {
	switch t := t.(type) {
	case exp.ScalarType:
		switch t {
		case exp.IntType:
			return p.genInt(depth)
		case exp.BoolType:
			return p.genBool(depth)
		case exp.FieldType:
			return p.genField(depth)
		}
	case *exp.ShapeType:
		return p.genShape(t.Rank, depth)
	case *exp.TupleType:
		elements := make([]exp.Expr, len(t.Elements))
		//
		for i, et := range t.Elements {
			elements[i] = p.gen(et, depth-1)
		}
		//
		return exp.NewTuple(elements...)
	}
	//
	return p.leaf(t)
}

var intOps = []exp.Op{exp.AddOp, exp.SubOp, exp.MulOp, exp.QuotOp, exp.RemOp, exp.MinOp, exp.MaxOp}

func (p *Generator) genInt(depth uint) exp.Expr {
	var d = depth - 1
	//
	switch p.rand.IntN(11) {
	case 0:
		return exp.NewPrimApp(exp.NewPrimFun(exp.NegOp, exp.IntType), p.gen(exp.Int, d))
	case 1:
		return &exp.IndexHead{Arg: p.gen(exp.NewShapeType(1+uint(p.rand.IntN(2))), d)}
	case 2:
		return &exp.ShapeSize{Arg: p.gen(exp.NewShapeType(uint(p.rand.IntN(3))), d)}
	case 3:
		var (
			rank  = uint(p.rand.IntN(3))
			shape = p.gen(exp.NewShapeType(rank), d)
		)
		// Round trips through the same shape are common after inlining.
		if p.rand.IntN(2) == 0 {
			return &exp.ToIndex{Shape: shape, Index: &exp.FromIndex{Shape: shape, Index: p.gen(exp.Int, d)}}
		}
		//
		return &exp.ToIndex{Shape: shape, Index: p.gen(exp.NewShapeType(rank), d)}
	case 4:
		return exp.NewPrj(0, p.gen(exp.NewTupleType(exp.Int, exp.Bool), d))
	case 5:
		return &exp.LinearIndex{Array: ARRAY_B, Index: p.gen(exp.Int, d)}
	case 6:
		return &exp.Index{Array: ARRAY_A, Index: p.gen(exp.NewShapeType(2), d)}
	case 7:
		return p.genWhile(d)
	default:
		op := intOps[p.rand.IntN(len(intOps))]
		return exp.NewPrimApp(exp.NewPrimFun(op, exp.IntType), p.gen(exp.Int, d), p.gen(exp.Int, d))
	}
}

// genWhile generates a counting loop, whose state is an integer.
func (p *Generator) genWhile(depth uint) exp.Expr {
	var (
		lt   = exp.NewPrimFun(exp.LtOp, exp.IntType)
		add  = exp.NewPrimFun(exp.AddOp, exp.IntType)
		seed = p.gen(exp.Int, depth)
	)
	// Predicate and step are generated with the loop state in scope
	p.enter(exp.Int)
	pred := exp.NewPrimApp(lt, exp.NewVar(0), p.gen(exp.Int, depth/2))
	step := exp.NewPrimApp(add, exp.NewVar(0), exp.NewInt(1+int64(p.rand.IntN(3))))
	p.leave()
	//
	return &exp.While{Predicate: exp.NewFun(pred, exp.Int), Step: exp.NewFun(step, exp.Int), Seed: seed}
}

var cmpOps = []exp.Op{exp.EqOp, exp.NeqOp, exp.LtOp, exp.LteOp, exp.GtOp, exp.GteOp}

func (p *Generator) genBool(depth uint) exp.Expr {
	var d = depth - 1
	//
	switch p.rand.IntN(6) {
	case 0:
		return exp.NewPrimApp(exp.NewPrimFun(exp.NotOp, exp.BoolType), p.gen(exp.Bool, d))
	case 1:
		op := []exp.Op{exp.AndOp, exp.OrOp, exp.EqOp}[p.rand.IntN(3)]
		return exp.NewPrimApp(exp.NewPrimFun(op, exp.BoolType), p.gen(exp.Bool, d), p.gen(exp.Bool, d))
	case 2:
		return exp.NewPrimApp(exp.NewPrimFun(exp.EqOp, exp.FieldType), p.gen(exp.Field, d), p.gen(exp.Field, d))
	case 3:
		return exp.NewPrj(1, p.gen(exp.NewTupleType(exp.Int, exp.Bool), d))
	default:
		op := cmpOps[p.rand.IntN(len(cmpOps))]
		return exp.NewPrimApp(exp.NewPrimFun(op, exp.IntType), p.gen(exp.Int, d), p.gen(exp.Int, d))
	}
}

var fieldOps = []exp.Op{exp.AddOp, exp.SubOp, exp.MulOp, exp.DivOp}

func (p *Generator) genField(depth uint) exp.Expr {
	var d = depth - 1
	//
	if p.rand.IntN(4) == 0 {
		return exp.NewPrimApp(exp.NewPrimFun(exp.NegOp, exp.FieldType), p.gen(exp.Field, d))
	}
	//
	op := fieldOps[p.rand.IntN(len(fieldOps))]
	//
	return exp.NewPrimApp(exp.NewPrimFun(op, exp.FieldType), p.gen(exp.Field, d), p.gen(exp.Field, d))
}

func (p *Generator) genShape(rank uint, depth uint) exp.Expr {
	var d = depth - 1
	//
	switch p.rand.IntN(8) {
	case 0:
		if rank > 0 {
			return &exp.IndexCons{Tail: p.gen(exp.NewShapeType(rank-1), d), Head: p.gen(exp.Int, d)}
		}
	case 1:
		return &exp.IndexTail{Arg: p.gen(exp.NewShapeType(rank+1), d)}
	case 2:
		return &exp.IndexTrans{Arg: p.gen(exp.NewShapeType(rank), d)}
	case 3:
		return &exp.Intersect{Lhs: p.gen(exp.NewShapeType(rank), d), Rhs: p.gen(exp.NewShapeType(rank), d)}
	case 4:
		return &exp.Union{Lhs: p.gen(exp.NewShapeType(rank), d), Rhs: p.gen(exp.NewShapeType(rank), d)}
	case 5:
		if p.rand.IntN(2) == 0 {
			return &exp.FromIndex{Shape: p.gen(exp.NewShapeType(rank), d), Index: exp.NewInt(int64(p.rand.IntN(8)))}
		}
		//
		return &exp.FromIndex{Shape: p.gen(exp.NewShapeType(rank), d), Index: p.gen(exp.Int, d)}
	case 6:
		if rank == 1 {
			return &exp.Shape{Array: ARRAY_B}
		} else if rank == 2 {
			return &exp.Shape{Array: ARRAY_A}
		}
	case 7:
		// Keep all of the given rank, with one additional fixed dimension.
		slice := make(exp.SliceIndex, rank+1)
		for i := range slice {
			slice[i] = exp.All
		}
		//
		slice[p.rand.IntN(len(slice))] = exp.Fixed
		//
		return &exp.IndexSlice{Slice: slice, Slix: p.gen(exp.NewShapeType(1), d),
			Shape: p.gen(exp.NewShapeType(rank+1), d)}
	}
	//
	return p.leaf(exp.NewShapeType(rank))
}

// let generates a let binding whose body has a given type.
func (p *Generator) let(t exp.Type, depth uint) exp.Expr {
	var (
		types = Types()
		bt    = types[p.rand.IntN(len(types))]
		bound = p.gen(bt, depth-1)
	)
	//
	p.enter(bt)
	body := p.gen(t, depth-1)
	p.leave()
	//
	return exp.NewLet(bound, body)
}

// leaf generates an expression of a given type without any further nesting,
// by choosing between a variable, a previously generated expression, or a
// constant.
func (p *Generator) leaf(t exp.Type) exp.Expr {
	switch p.rand.IntN(3) {
	case 0:
		if v, ok := p.variable(t); ok {
			return v
		}
	case 1:
		if e, ok := p.reuse(t); ok {
			return e
		}
	}
	//
	return p.constant(t)
}

func (p *Generator) variable(t exp.Type) (exp.Expr, bool) {
	var candidates []uint
	//
	for j, vt := range p.ctx {
		if vt.Equals(t) {
			candidates = append(candidates, uint(len(p.ctx)-1-j))
		}
	}
	//
	if len(candidates) == 0 {
		return nil, false
	}
	//
	return exp.NewVar(candidates[p.rand.IntN(len(candidates))]), true
}

func (p *Generator) reuse(t exp.Type) (exp.Expr, bool) {
	var candidates []item
	//
	for _, it := range p.pool {
		if it.etype.Equals(t) {
			candidates = append(candidates, it)
		}
	}
	//
	if len(candidates) == 0 {
		return nil, false
	}
	//
	it := candidates[p.rand.IntN(len(candidates))]
	//
	return exp.Weaken(it.expr, uint(len(p.ctx))-it.scope), true
}

func (p *Generator) constant(t exp.Type) exp.Expr {
	switch t := t.(type) {
	case exp.ScalarType:
		switch t {
		case exp.IntType:
			return exp.NewInt(int64(p.rand.IntN(9) - 3))
		case exp.BoolType:
			return exp.NewBool(p.rand.IntN(2) == 0)
		case exp.FieldType:
			return exp.NewConst(exp.NewFieldValue(int64(p.rand.IntN(5))))
		}
	case *exp.ShapeType:
		if t.Rank == 0 {
			return &exp.IndexNil{}
		}
		//
		extents := make([]int64, t.Rank)
		for i := range extents {
			extents[i] = int64(1 + p.rand.IntN(3))
		}
		//
		return exp.NewConst(exp.NewShapeValue(extents...))
	case *exp.TupleType:
		elements := make([]exp.Expr, len(t.Elements))
		//
		for i, et := range t.Elements {
			elements[i] = p.constant(et)
		}
		//
		return exp.NewTuple(elements...)
	}
	//
	panic("unknown type " + t.String())
}

// enter a binder introducing a variable of a given type.
func (p *Generator) enter(t exp.Type) {
	p.ctx = append(p.ctx, t)
}

// leave the innermost binder, discarding any expressions generated within it
// from the pool.
func (p *Generator) leave() {
	var n = uint(len(p.ctx) - 1)
	//
	p.ctx = p.ctx[:n]
	//
	for len(p.pool) > 0 && p.pool[len(p.pool)-1].scope > n {
		p.pool = p.pool[:len(p.pool)-1]
	}
}
