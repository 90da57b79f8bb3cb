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
package simplify

import (
	"github.com/consensys/go-scalaropt/pkg/ir/exp"
)

// outcome is the result of attempting the rewrite rules for a given node.  The
// rule is empty when no rule fired, in which case the expression is simply the
// node rebuilt from its (simplified) operands.
type outcome struct {
	expr exp.Expr
	rule string
}

func fired(rule string, e exp.Expr) outcome {
	return outcome{e, rule}
}

func rebuilt(e exp.Expr) outcome {
	return outcome{e, ""}
}

// rule records the outcome of a rewrite.
func (p *pass) rule(o outcome, changed bool) (exp.Expr, bool) {
	if o.rule != "" {
		p.stats.RuleFired(o.rule)
		return o.expr, true
	}
	//
	return o.expr, changed
}

// ============================================================================
// Shape Construction
// ============================================================================

func (p *pass) indexCons(tail exp.Expr, head exp.Expr) outcome {
	switch t := tail.(type) {
	case *exp.IndexNil:
		// Z :. c ==> (shape c)
		if c, ok := intConst(head); ok {
			return fired("cons-nil-const", exp.NewConst(exp.NewShapeValue(c)))
		}
		// Z :. head sz ==> sz, provided sz has rank 1.
		if h, ok := head.(*exp.IndexHead); ok && p.rankOf(h.Arg) == 1 {
			return fired("cons-nil-head", h.Arg)
		}
	case *exp.IndexTail:
		// tail sh :. head sh ==> sh
		if h, ok := head.(*exp.IndexHead); ok && exp.Match(t.Arg, h.Arg) {
			return fired("cons-tail-head", t.Arg)
		}
	case *exp.Const:
		if sh, ok := t.Value.(*exp.ShapeValue); ok && p.config.FoldShapes {
			if c, ok := intConst(head); ok {
				extents := append(append([]int64{}, sh.Extents...), c)
				return fired("fold-cons", exp.NewConst(exp.NewShapeValue(extents...)))
			}
		}
	}
	//
	return rebuilt(&exp.IndexCons{Tail: tail, Head: head})
}

func (p *pass) indexHead(arg exp.Expr) outcome {
	switch a := arg.(type) {
	case *exp.Const:
		if sh, ok := a.Value.(*exp.ShapeValue); ok && len(sh.Extents) > 0 {
			return fired("head-const", exp.NewInt(sh.Extents[len(sh.Extents)-1]))
		}
	case *exp.IndexCons:
		return fired("head-cons", a.Head)
	}
	//
	return rebuilt(&exp.IndexHead{Arg: arg})
}

func (p *pass) indexTail(arg exp.Expr) outcome {
	switch a := arg.(type) {
	case *exp.Const:
		if sh, ok := a.Value.(*exp.ShapeValue); ok && len(sh.Extents) > 0 {
			extents := sh.Extents[:len(sh.Extents)-1]
			return fired("tail-const", exp.NewConst(exp.NewShapeValue(extents...)))
		}
	case *exp.IndexCons:
		return fired("tail-cons", a.Tail)
	}
	//
	return rebuilt(&exp.IndexTail{Arg: arg})
}

func (p *pass) indexTrans(arg exp.Expr) outcome {
	switch a := arg.(type) {
	case *exp.Const:
		if sh, ok := a.Value.(*exp.ShapeValue); ok {
			return fired("transpose-const", exp.NewConst(exp.ShapeTranspose(sh)))
		}
	case *exp.IndexTrans:
		return fired("transpose-transpose", a.Arg)
	}
	//
	return rebuilt(&exp.IndexTrans{Arg: arg})
}

func (p *pass) shapeSize(arg exp.Expr) outcome {
	if sh, ok := shapeConst(arg); ok {
		return fired("size-const", exp.NewInt(exp.ShapeSizeOf(sh)))
	}
	//
	return rebuilt(&exp.ShapeSize{Arg: arg})
}

// ============================================================================
// Linearisation
// ============================================================================

func (p *pass) toIndex(sh exp.Expr, index exp.Expr) outcome {
	// toIndex sh (fromIndex sh ix) ==> ix
	if from, ok := index.(*exp.FromIndex); ok && exp.Match(sh, from.Shape) {
		return fired("to-from-index", from.Index)
	}
	//
	if s, ok := shapeConst(sh); ok && p.config.FoldShapes {
		if ix, ok := shapeConst(index); ok {
			if r, err := exp.ShapeToIndex(s, ix); err == nil {
				return fired("fold-to-index", exp.NewInt(r))
			}
		}
	}
	//
	return rebuilt(&exp.ToIndex{Shape: sh, Index: index})
}

func (p *pass) fromIndex(sh exp.Expr, index exp.Expr) outcome {
	// fromIndex sh (toIndex sh ix) ==> ix
	if to, ok := index.(*exp.ToIndex); ok && exp.Match(sh, to.Shape) {
		return fired("from-to-index", to.Index)
	}
	//
	if s, ok := shapeConst(sh); ok && p.config.FoldShapes {
		if i, ok := intConst(index); ok {
			if r, err := exp.ShapeFromIndex(s, i); err == nil {
				return fired("fold-from-index", exp.NewConst(r))
			}
		}
	}
	//
	return rebuilt(&exp.FromIndex{Shape: sh, Index: index})
}

// ============================================================================
// Slicing
// ============================================================================

func (p *pass) indexSlice(slice exp.SliceIndex, slix exp.Expr, sh exp.Expr) outcome {
	if s, ok := shapeConst(sh); ok && p.config.FoldShapes {
		if r, err := exp.ShapeSlice(slice, s); err == nil {
			// NOTE: the slice specifier does not contribute to the result.
			return fired("fold-slice", exp.NewConst(r))
		}
	}
	//
	return rebuilt(&exp.IndexSlice{Slice: slice, Slix: slix, Shape: sh})
}

func (p *pass) indexFull(slice exp.SliceIndex, slix exp.Expr, sl exp.Expr) outcome {
	if ix, ok := shapeConst(slix); ok && p.config.FoldShapes {
		if s, ok := shapeConst(sl); ok {
			if r, err := exp.ShapeFull(slice, ix, s); err == nil {
				return fired("fold-full", exp.NewConst(r))
			}
		}
	}
	//
	return rebuilt(&exp.IndexFull{Slice: slice, Slix: slix, Sl: sl})
}

func (p *pass) toSlice(slice exp.SliceIndex, sh exp.Expr, index exp.Expr) outcome {
	if s, ok := shapeConst(sh); ok && p.config.FoldShapes {
		if i, ok := intConst(index); ok {
			if r, err := exp.ShapeToSlice(slice, s, i); err == nil {
				return fired("fold-to-slice", exp.NewConst(r))
			}
		}
	}
	//
	return rebuilt(&exp.ToSlice{Slice: slice, Shape: sh, Index: index})
}

// ============================================================================
// Intersection & Union
// ============================================================================

// chain simplifies an intersection (or union) by flattening nested chains of
// the same operator into a list of leaves, removing duplicate leaves, and then
// folding the operator (from the left) over what remains.  The given node
// determines which operator is being simplified.
func (p *pass) chain(node exp.Expr, lhs exp.Expr, rhs exp.Expr) outcome {
	var (
		leaves []exp.Expr
		naive  = rebuildChain(node, lhs, rhs)
		name   = "intersect-chain"
	)
	//
	if _, ok := node.(*exp.Union); ok {
		name = "union-chain"
	}
	//
	leaves = flatten(node, lhs, leaves)
	leaves = flatten(node, rhs, leaves)
	leaves = dedup(leaves)
	// Left fold
	r := leaves[0]
	//
	for _, leaf := range leaves[1:] {
		r = p.combine(node, r, leaf)
	}
	//
	if exp.Match(r, naive) {
		return rebuilt(naive)
	}
	//
	return fired(name, r)
}

// combine two shapes using the operator determined by a given node, folding
// them if both are constant.
func (p *pass) combine(node exp.Expr, lhs exp.Expr, rhs exp.Expr) exp.Expr {
	if l, ok := shapeConst(lhs); ok && p.config.FoldShapes {
		if r, ok := shapeConst(rhs); ok {
			var (
				sh  *exp.ShapeValue
				err error
			)
			//
			if _, ok := node.(*exp.Union); ok {
				sh, err = exp.ShapeUnion(l, r)
			} else {
				sh, err = exp.ShapeIntersect(l, r)
			}
			//
			if err == nil {
				return exp.NewConst(sh)
			}
		}
	}
	//
	return rebuildChain(node, lhs, rhs)
}

func rebuildChain(node exp.Expr, lhs exp.Expr, rhs exp.Expr) exp.Expr {
	if _, ok := node.(*exp.Union); ok {
		return &exp.Union{Lhs: lhs, Rhs: rhs}
	}
	//
	return &exp.Intersect{Lhs: lhs, Rhs: rhs}
}

// flatten a nested chain of operators (of the same kind as a given node) into
// its leaves, in order.
func flatten(node exp.Expr, e exp.Expr, leaves []exp.Expr) []exp.Expr {
	switch n := node.(type) {
	case *exp.Intersect:
		if i, ok := e.(*exp.Intersect); ok {
			return flatten(n, i.Rhs, flatten(n, i.Lhs, leaves))
		}
	case *exp.Union:
		if u, ok := e.(*exp.Union); ok {
			return flatten(n, u.Rhs, flatten(n, u.Lhs, leaves))
		}
	}
	//
	return append(leaves, e)
}

// dedup removes structurally duplicate leaves, retaining the first occurrence
// of each.
func dedup(leaves []exp.Expr) []exp.Expr {
	var unique []exp.Expr
	//
	for _, leaf := range leaves {
		var seen bool
		//
		for _, u := range unique {
			if exp.Match(leaf, u) {
				seen = true
				break
			}
		}
		//
		if !seen {
			unique = append(unique, leaf)
		}
	}
	//
	return unique
}

// ============================================================================
// Helpers
// ============================================================================

// rankOf determines the rank of a shape expression formed at the current depth.
// If this cannot be determined, then an impossible rank is returned.
func (p *pass) rankOf(e exp.Expr) uint {
	if t, ok := p.env.TypeOf(e); ok {
		if rank, ok := exp.RankOf(t); ok {
			return rank
		}
	}
	//
	return ^uint(0)
}

// shapeConst extracts a constant shape (including the empty shape Z).
func shapeConst(e exp.Expr) (*exp.ShapeValue, bool) {
	switch e := e.(type) {
	case *exp.IndexNil:
		return exp.NewShapeValue(), true
	case *exp.Const:
		if sh, ok := e.Value.(*exp.ShapeValue); ok {
			return sh, true
		}
	}
	//
	return nil, false
}

// intConst extracts a constant integer.
func intConst(e exp.Expr) (int64, bool) {
	if c, ok := e.(*exp.Const); ok {
		if i, ok := c.Value.(exp.IntValue); ok {
			return int64(i), true
		}
	}
	//
	return 0, false
}
