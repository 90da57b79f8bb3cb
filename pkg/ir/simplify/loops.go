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
	"reflect"

	"github.com/consensys/go-scalaropt/pkg/ir/exp"
)

// recoverLoop attempts to refold a chain of congruent let bindings into an
// explicit loop.  Such chains typically arise from fixed unrolling, and have
// the form:
//
//	let x1 = F(s) in let x2 = F(x1) in ... let xn = F(xn-1) in body
//
// where none of x1 .. xn-1 are used in body.  This becomes:
//
//	let x = prj 1 (while (λ(i,x). i < n) (λ(i,x). (i+1, F(x))) (0, s)) in body
//
// The bound expression has already been simplified, whilst the body has not.
// The loop is only recovered for chains of at least two bindings.
func (p *pass) recoverLoop(bound exp.Expr, body exp.Expr) (*exp.Let, bool) {
	next, ok := body.(*exp.Let)
	if !ok {
		return nil, false
	}
	// The step function F(x1) is given by the second binding, from which the
	// seed s can be determined.
	step := next.Bound
	//
	seed, ok := findHole(step, bound, 0)
	if !ok || !exp.Match(exp.Instantiate(step, seed), bound) {
		return nil, false
	}
	// Determine the trip count
	var (
		n    = uint(2)
		last = next.Body
	)
	//
	for {
		l, ok := last.(*exp.Let)
		// Next binding should be F(xn) where F's free variables are shifted
		// over the intervening bindings.
		if !ok || !exp.Match(l.Bound, exp.Shift(step, n-1, 1)) {
			break
		}
		//
		last = l.Body
		n++
	}
	// Intermediate bindings x1 .. xn-1 must be unused.
	for i := uint(1); i < n; i++ {
		if uses, _ := exp.Uses(last, i); uses != 0 {
			return nil, false
		}
	}
	// Determine type of loop state
	elem, ok := p.env.TypeOf(bound)
	if !ok {
		return nil, false
	} else if t, ok := p.env.TypeOf(seed); !ok || !t.Equals(elem) {
		// Step function is not of the form T -> T
		return nil, false
	}
	//
	state := exp.NewTupleType(exp.Int, elem)
	//
	return exp.NewLet(buildLoop(state, n, step, seed), dropUnused(last, n-1)), true
}

// buildLoop constructs the loop which iterates a given step function a given
// number of times on a given seed.
func buildLoop(state exp.Type, n uint, step exp.Expr, seed exp.Expr) exp.Expr {
	var (
		counter = exp.NewPrj(0, exp.NewVar(0))
		lt      = exp.NewPrimFun(exp.LtOp, exp.IntType)
		add     = exp.NewPrimFun(exp.AddOp, exp.IntType)
		// Substitute the loop state for the step function's parameter
		body = exp.Instantiate(exp.Shift(step, 1, 1), exp.NewPrj(1, exp.NewVar(0)))
		//
		pred = exp.NewPrimApp(lt, counter, exp.NewInt(int64(n)))
		next = exp.NewTuple(exp.NewPrimApp(add, counter, exp.NewInt(1)), body)
	)
	//
	loop := &exp.While{
		Predicate: exp.NewFun(pred, state),
		Step:      exp.NewFun(next, state),
		Seed:      exp.NewTuple(exp.NewInt(0), seed),
	}
	//
	return exp.NewPrj(1, loop)
}

// dropUnused removes n unused variables from scope, starting with the variable
// immediately enclosing the innermost one.
func dropUnused(body exp.Expr, n uint) exp.Expr {
	for range n {
		body, _ = exp.StrengthenAt(body, 1)
	}
	//
	return body
}

// findHole searches for the expression in x corresponding to the first use of
// a given variable (the hole) in template, where template is formed under one
// more binder than x.  The search only considers positions not enclosed by any
// binder.
func findHole(template exp.Expr, x exp.Expr, hole uint) (exp.Expr, bool) {
	if v, ok := template.(*exp.Var); ok && v.Index == hole {
		return x, true
	} else if reflect.TypeOf(template) != reflect.TypeOf(x) {
		return nil, false
	}
	//
	var (
		lhs = children(template)
		rhs = children(x)
	)
	//
	if len(lhs) != len(rhs) {
		return nil, false
	}
	//
	for i := range lhs {
		if r, ok := findHole(lhs[i], rhs[i], hole); ok {
			return r, true
		}
	}
	//
	return nil, false
}

// children returns the immediate children of an expression which are not
// enclosed by a binder.
func children(e exp.Expr) []exp.Expr {
	var rs []exp.Expr
	//
	if l, ok := e.(*exp.Let); ok {
		return []exp.Expr{l.Bound}
	}
	//
	exp.MapChildren(e, func(c exp.Expr) exp.Expr {
		rs = append(rs, c)
		return c
	}, func(f exp.Fun) exp.Fun {
		return f
	})
	//
	return rs
}
