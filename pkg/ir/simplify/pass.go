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
	"fmt"

	"github.com/consensys/go-scalaropt/pkg/ir/env"
	"github.com/consensys/go-scalaropt/pkg/ir/exp"
)

// pass represents a single bottom-up traversal of a tree, where the
// environment tracks the variables in scope at the current point.  Every
// rewrite returns the rewritten tree along with a flag indicating whether
// anything changed.
type pass struct {
	*Simplifier
	env *env.Env
}

// exp simplifies an expression formed at the current depth.  Before anything
// else, the expression is compared against all candidates in scope, in which
// case it is replaced (wholesale) by a reference to the nearest such
// candidate.
func (p *pass) exp(e exp.Expr) (exp.Expr, bool) {
	if v, ok := p.cse(e); ok {
		return v, true
	}
	//
	r, changed := p.node(e)
	// Simplification may have exposed a match
	if changed {
		if v, ok := p.cse(r); ok {
			return v, true
		}
	}
	//
	return r, changed
}

// node simplifies an expression formed at the current depth, without first
// looking for a matching candidate.
//
//nolint:gocyclo
func (p *pass) node(e exp.Expr) (exp.Expr, bool) {
	switch e := e.(type) {
	case *exp.Let:
		return p.let(e)
	case *exp.Var, *exp.Const, *exp.PrimConst, *exp.IndexNil, *exp.Shape:
		return e, false
	case *exp.Tuple:
		elements, changed := p.exps(e.Elements...)
		return exp.NewTuple(elements...), changed
	case *exp.Prj:
		return p.prj(e)
	case *exp.IndexCons:
		args, changed := p.exps(e.Tail, e.Head)
		return p.rule(p.indexCons(args[0], args[1]), changed)
	case *exp.IndexHead:
		arg, changed := p.exp(e.Arg)
		return p.rule(p.indexHead(arg), changed)
	case *exp.IndexTail:
		arg, changed := p.exp(e.Arg)
		return p.rule(p.indexTail(arg), changed)
	case *exp.IndexTrans:
		arg, changed := p.exp(e.Arg)
		return p.rule(p.indexTrans(arg), changed)
	case *exp.IndexSlice:
		args, changed := p.exps(e.Slix, e.Shape)
		return p.rule(p.indexSlice(e.Slice, args[0], args[1]), changed)
	case *exp.IndexFull:
		args, changed := p.exps(e.Slix, e.Sl)
		return p.rule(p.indexFull(e.Slice, args[0], args[1]), changed)
	case *exp.ToIndex:
		args, changed := p.exps(e.Shape, e.Index)
		return p.rule(p.toIndex(args[0], args[1]), changed)
	case *exp.FromIndex:
		args, changed := p.exps(e.Shape, e.Index)
		return p.rule(p.fromIndex(args[0], args[1]), changed)
	case *exp.ToSlice:
		args, changed := p.exps(e.Shape, e.Index)
		return p.rule(p.toSlice(e.Slice, args[0], args[1]), changed)
	case *exp.ShapeSize:
		arg, changed := p.exp(e.Arg)
		return p.rule(p.shapeSize(arg), changed)
	case *exp.Intersect:
		args, changed := p.exps(e.Lhs, e.Rhs)
		return p.rule(p.chain(e, args[0], args[1]), changed)
	case *exp.Union:
		args, changed := p.exps(e.Lhs, e.Rhs)
		return p.rule(p.chain(e, args[0], args[1]), changed)
	case *exp.Cond:
		return p.cond(e)
	case *exp.While:
		return p.while(e)
	case *exp.PrimApp:
		return p.primApp(e)
	case *exp.Index:
		index, changed := p.exp(e.Index)
		return &exp.Index{Array: e.Array, Index: index}, changed
	case *exp.LinearIndex:
		index, changed := p.exp(e.Index)
		return &exp.LinearIndex{Array: e.Array, Index: index}, changed
	case *exp.Foreign:
		return p.foreign(e)
	default:
		panic(fmt.Sprintf("unknown expression encountered (%T)", e))
	}
}

// exps simplifies zero or more expressions formed at the current depth.
func (p *pass) exps(es ...exp.Expr) ([]exp.Expr, bool) {
	var (
		rs      = make([]exp.Expr, len(es))
		changed bool
	)
	//
	for i, e := range es {
		var c bool
		//
		rs[i], c = p.exp(e)
		changed = changed || c
	}
	//
	return rs, changed
}

// let simplifies a let binding.  The bound expression is simplified first
// (without replacing it wholesale by a candidate).  Then, in order: if the
// bound expression matches a candidate, the binding is eliminated entirely;
// if it begins a chain of congruent bindings, the chain is refolded into a
// loop; otherwise, the bound expression becomes a candidate whilst
// simplifying the body.
func (p *pass) let(e *exp.Let) (exp.Expr, bool) {
	bound, changed := p.node(e.Bound)
	// Local CSE
	if v, ok := p.cse(bound); ok {
		p.stats.RuleFired("cse-local")
		body, _ := p.exp(exp.Instantiate(e.Body, v))
		//
		return body, true
	}
	// Loop recovery
	if p.config.LoopRecovery {
		if l, ok := p.recoverLoop(bound, e.Body); ok {
			p.stats.RuleFired("loop-recovery")
			r, _ := p.bind(l.Bound, l.Body, true)
			//
			return r, true
		}
	}
	//
	return p.bind(bound, e.Body, changed)
}

// bind simplifies the body of a let binding whose bound expression has already
// been simplified.
func (p *pass) bind(bound exp.Expr, body exp.Expr, changed bool) (exp.Expr, bool) {
	p.env.PushCandidate(bound)
	body, c := p.exp(body)
	p.env.Pop()
	//
	return exp.NewLet(bound, body), changed || c
}

// cond eliminates conditionals whose outcome is known, or whose branches are
// identical.  In the latter case, the condition is discarded (which is safe
// since conditions are free of side effects).
func (p *pass) cond(e *exp.Cond) (exp.Expr, bool) {
	args, changed := p.exps(e.Condition, e.TrueBranch, e.FalseBranch)
	//
	if c, ok := args[0].(*exp.Const); ok {
		if b, ok := c.Value.(exp.BoolValue); ok {
			p.stats.KnownBranch()
			//
			if b {
				return args[1], true
			}
			//
			return args[2], true
		}
	}
	//
	if exp.Match(args[1], args[2]) {
		p.stats.RuleFired("cond-same")
		return args[2], true
	}
	//
	return exp.NewCond(args[0], args[1], args[2]), changed
}

// while simplifies the predicate, step function and seed of a loop
// independently.
func (p *pass) while(e *exp.While) (exp.Expr, bool) {
	pred, c1 := p.fun(e.Predicate)
	step, c2 := p.fun(e.Step)
	seed, c3 := p.exp(e.Seed)
	//
	return &exp.While{Predicate: pred, Step: step, Seed: seed}, c1 || c2 || c3
}

// primApp simplifies the operand of a primitive operator, and then applies the
// algebra for that operator.
func (p *pass) primApp(e *exp.PrimApp) (exp.Expr, bool) {
	arg, changed := p.exp(e.Arg)
	//
	if r, ok := p.algebra.Apply(e.Fun, arg); ok {
		p.stats.RuleFired("prim-" + e.Fun.Op.String())
		return r, true
	}
	//
	return &exp.PrimApp{Fun: e.Fun, Arg: arg}, changed
}

// foreign simplifies the fallback of a foreign function in isolation, since it
// is closed, along with its argument.
func (p *pass) foreign(e *exp.Foreign) (exp.Expr, bool) {
	fallback, c1 := p.pass(env.New()).fun(e.Fallback)
	arg, c2 := p.exp(e.Arg)
	//
	return &exp.Foreign{Name: e.Name, Fallback: fallback, Arg: arg}, c1 || c2
}

// ============================================================================
// Functions
// ============================================================================

// fun simplifies a function formed at the current depth.  Each parameter is
// given a placeholder, such that it is never matched against.
func (p *pass) fun(f exp.Fun) (exp.Fun, bool) {
	switch f := f.(type) {
	case *exp.Body:
		body, changed := p.exp(f.Body)
		return exp.NewBody(body), changed
	case *exp.Lam:
		p.env.PushPlaceholder(f.Param)
		body, changed := p.fun(f.Body)
		p.env.Pop()
		//
		return exp.NewLam(f.Param, body), changed
	default:
		panic(fmt.Sprintf("unknown function encountered (%T)", f))
	}
}
