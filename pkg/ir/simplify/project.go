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

// prj simplifies a projection by pushing it into its (simplified) target where
// possible.
func (p *pass) prj(e *exp.Prj) (exp.Expr, bool) {
	arg, changed := p.exp(e.Arg)
	//
	if r, rule, ok := p.project(e.Index, arg); ok {
		p.stats.RuleFired(rule)
		return r, true
	}
	//
	return exp.NewPrj(e.Index, arg), changed
}

// project attempts to reduce the ith component of a (simplified) target formed
// at the current depth.  This succeeds only when the projection genuinely
// reduces, returning the name of the rule applied.
func (p *pass) project(i uint, target exp.Expr) (exp.Expr, string, bool) {
	switch t := target.(type) {
	case *exp.Tuple:
		if i < uint(len(t.Elements)) {
			return t.Elements[i], "prj-tuple", true
		}
	case *exp.Const:
		if tv, ok := t.Value.(*exp.TupleValue); ok && i < uint(len(tv.Elements)) {
			return exp.NewConst(tv.Elements[i]), "prj-const", true
		}
	case *exp.Var:
		// Only substitute when the result is trivial, since otherwise the bound
		// expression (or part of it) would be duplicated.
		if bound, ok := p.env.Binding(t); ok {
			if r, _, ok := p.project(i, bound); ok && isTrivial(r) {
				return r, "prj-var", true
			}
		}
	case *exp.Let:
		p.env.PushCandidate(t.Bound)
		body, _, ok := p.project(i, t.Body)
		p.env.Pop()
		//
		if ok {
			return exp.NewLet(t.Bound, body), "prj-let", true
		}
	}
	//
	return nil, "", false
}

// isTrivial determines whether an expression can be duplicated freely.
func isTrivial(e exp.Expr) bool {
	switch e.(type) {
	case *exp.Var, *exp.Const, *exp.PrimConst, *exp.IndexNil:
		return true
	default:
		return false
	}
}
