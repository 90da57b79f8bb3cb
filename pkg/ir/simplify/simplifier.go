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

	"github.com/consensys/go-scalaropt/pkg/ir/algebra"
	"github.com/consensys/go-scalaropt/pkg/ir/env"
	"github.com/consensys/go-scalaropt/pkg/ir/exp"
	"github.com/consensys/go-scalaropt/pkg/ir/shrink"
	"github.com/consensys/go-scalaropt/pkg/stats"
)

// Algebra provides constant folding and identity laws for primitive operators.
type Algebra interface {
	// Apply a primitive operator to a simplified operand, returning a simpler
	// equivalent expression (and true) or false if there is none.
	Apply(fun exp.PrimFun, arg exp.Expr) (exp.Expr, bool)
}

// Shrinker eliminates dead and trivial bindings.  Both methods return the
// shrunk tree along with a flag indicating whether anything changed.
type Shrinker interface {
	ShrinkExp(e exp.Expr) (exp.Expr, bool)
	ShrinkFun(f exp.Fun) (exp.Fun, bool)
}

// Simplifier performs common subexpression elimination, constant folding,
// shape arithmetic and branch elimination over expressions and functions.  A
// simplifier holds no state between invocations, and can be safely shared
// between goroutines.
type Simplifier struct {
	config   OptimisationConfig
	algebra  Algebra
	shrinker Shrinker
	stats    *stats.Sink
}

// New constructs a simplifier with the given configuration, using the standard
// algebra and shrinker.  Statistics are written to the given sink, which may be
// nil.
func New(config OptimisationConfig, sink *stats.Sink) *Simplifier {
	return NewWith(config, algebra.New(), shrink.New(), sink)
}

// NewWith constructs a simplifier with an explicit algebra and shrinker.
func NewWith(config OptimisationConfig, algebra Algebra, shrinker Shrinker, sink *stats.Sink) *Simplifier {
	return &Simplifier{config, algebra, shrinker, sink}
}

// Simplify a tree (i.e. an expression or a function) as far as possible,
// producing a tree of the same kind.
func (p *Simplifier) Simplify(tree exp.Tree) exp.Tree {
	switch t := tree.(type) {
	case exp.Expr:
		return p.Exp(t)
	case exp.Fun:
		return p.Fun(t)
	}
	//
	panic(fmt.Sprintf("unknown tree encountered (%T)", tree))
}

// Exp simplifies a closed expression as far as possible.
func (p *Simplifier) Exp(e exp.Expr) exp.Expr {
	return fixpoint(p, e, p.simplifyExp, p.shrinker.ShrinkExp)
}

// Fun simplifies a closed function as far as possible.
func (p *Simplifier) Fun(f exp.Fun) exp.Fun {
	return fixpoint(p, f, p.simplifyFun, p.shrinker.ShrinkFun)
}

// simplifyExp performs a single simplification pass over an expression.
func (p *Simplifier) simplifyExp(e exp.Expr) (exp.Expr, bool) {
	return p.pass(env.New()).exp(e)
}

// simplifyFun performs a single simplification pass over a function.
func (p *Simplifier) simplifyFun(f exp.Fun) (exp.Fun, bool) {
	return p.pass(env.New()).fun(f)
}

func (p *Simplifier) pass(environment *env.Env) *pass {
	return &pass{p, environment}
}
