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
package shrink

import (
	"github.com/consensys/go-scalaropt/pkg/ir/exp"
)

// Shrinker eliminates dead and trivial bindings.  Specifically, a Let is
// removed when: its bound variable is unused; its bound expression is trivial
// (i.e. a variable or constant); or its bound variable is used exactly once,
// and not from within a function body (where it might be evaluated repeatedly).
type Shrinker struct{}

// New constructs a new shrinker.
func New() *Shrinker {
	return &Shrinker{}
}

// ShrinkExp shrinks a given expression, returning the result and a flag
// indicating whether anything changed.
func (p *Shrinker) ShrinkExp(e exp.Expr) (exp.Expr, bool) {
	var changed bool
	//
	r := shrinkExp(e, &changed)
	//
	return r, changed
}

// ShrinkFun shrinks a given function, returning the result and a flag
// indicating whether anything changed.
func (p *Shrinker) ShrinkFun(f exp.Fun) (exp.Fun, bool) {
	var changed bool
	//
	r := shrinkFun(f, &changed)
	//
	return r, changed
}

func shrinkExp(e exp.Expr, changed *bool) exp.Expr {
	var (
		fn  = func(e exp.Expr) exp.Expr { return shrinkExp(e, changed) }
		fnf = func(f exp.Fun) exp.Fun { return shrinkFun(f, changed) }
	)
	//
	if l, ok := e.(*exp.Let); ok {
		return shrinkLet(fn(l.Bound), fn(l.Body), changed)
	}
	//
	return exp.MapChildren(e, fn, fnf)
}

func shrinkLet(bound exp.Expr, body exp.Expr, changed *bool) exp.Expr {
	uses, lambdas := exp.Uses(body, 0)
	//
	switch {
	case uses == 0:
		// Dead binding
		if r, ok := exp.Strengthen(body); ok {
			*changed = true
			return r
		}
	case isTrivial(bound), uses == 1 && lambdas == 0:
		*changed = true
		// Inlining may expose further opportunities
		return shrinkExp(exp.Instantiate(body, bound), changed)
	}
	//
	return exp.NewLet(bound, body)
}

func shrinkFun(f exp.Fun, changed *bool) exp.Fun {
	switch f := f.(type) {
	case *exp.Body:
		return exp.NewBody(shrinkExp(f.Body, changed))
	case *exp.Lam:
		return exp.NewLam(f.Param, shrinkFun(f.Body, changed))
	}
	//
	return f
}

func isTrivial(e exp.Expr) bool {
	switch e.(type) {
	case *exp.Var, *exp.Const, *exp.PrimConst, *exp.IndexNil:
		return true
	default:
		return false
	}
}
