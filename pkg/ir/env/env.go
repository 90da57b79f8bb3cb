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
package env

import (
	"fmt"
	"strings"

	"github.com/consensys/go-scalaropt/pkg/ir/exp"
	"github.com/consensys/go-scalaropt/pkg/util/collection/hash"
)

// Env records the variables in scope at some point during a traversal, with
// exactly one entry per enclosing binder.  Entries are stored outermost first,
// such that (at depth n) entry j is referred to by Var(n-1-j).  An entry is
// either a candidate, recording the expression bound by a Let (which is
// eligible for common subexpression elimination), or a placeholder introduced
// by some other binder (e.g. a function parameter), which never matches
// anything.
type Env struct {
	entries []Entry
	// Index of candidates, mapping each (distinct) candidate to the positions
	// of all entries it occupies (outermost first).
	index *hash.Map[key, []uint]
}

// Entry describes a single variable in scope.
type Entry struct {
	// Bound expression of a candidate, or nil for a placeholder.  This is
	// given in the scope enclosing the entry itself.
	Bound exp.Expr
	// Type of the variable, which may be nil if not yet determined.
	Type exp.Type
}

// IsPlaceholder checks whether this entry was introduced by a binder other than
// Let.
func (p Entry) IsPlaceholder() bool {
	return p.Bound == nil
}

// New constructs an empty environment.
func New() *Env {
	return &Env{nil, hash.NewMap[key, []uint](0)}
}

// Depth returns the number of variables in scope.
func (p *Env) Depth() uint {
	return uint(len(p.entries))
}

// PushCandidate enters the body of a Let, whose bound expression becomes a
// candidate for later matching.
func (p *Env) PushCandidate(bound exp.Expr) {
	var (
		n = p.Depth()
		k = key{bound, n}
	)
	//
	positions, _ := p.index.Get(k)
	p.index.Insert(k, append(positions, n))
	p.entries = append(p.entries, Entry{bound, nil})
}

// PushPlaceholder enters a binder (other than Let) introducing a variable of
// the given type.
func (p *Env) PushPlaceholder(t exp.Type) {
	p.entries = append(p.entries, Entry{nil, t})
}

// Pop leaves the innermost binder.
func (p *Env) Pop() {
	var (
		n     = len(p.entries) - 1
		entry = p.entries[n]
	)
	//
	if !entry.IsPlaceholder() {
		k := key{entry.Bound, uint(n)}
		positions, _ := p.index.Get(k)
		// Innermost position is always last
		if positions = positions[:len(positions)-1]; len(positions) == 0 {
			p.index.Remove(k)
		} else {
			p.index.Insert(k, positions)
		}
	}
	//
	p.entries = p.entries[:n]
}

// Lookup searches for a candidate structurally matching a given expression
// (formed at the current depth).  When more than one candidate matches, the
// nearest enclosing one is chosen.  The variable referring to that candidate
// is returned.
func (p *Env) Lookup(e exp.Expr) (*exp.Var, bool) {
	if p.index.Size() == 0 {
		return nil, false
	}
	//
	var n = p.Depth()
	//
	if positions, ok := p.index.Get(key{e, n}); ok {
		j := positions[len(positions)-1]
		return exp.NewVar(n - 1 - j), true
	}
	//
	return nil, false
}

// Binding returns the expression bound to a given variable (formed at the
// current depth), weakened into the current scope.  This fails if the variable
// refers to a placeholder.
func (p *Env) Binding(v *exp.Var) (exp.Expr, bool) {
	var n = p.Depth()
	//
	if v.Index >= n {
		return nil, false
	}
	//
	j := n - 1 - v.Index
	//
	if entry := p.entries[j]; !entry.IsPlaceholder() {
		return exp.Weaken(entry.Bound, n-j), true
	}
	//
	return nil, false
}

// TypeOf determines the type of an expression formed at the current depth.
// Candidate types are computed on demand, and this fails if any type cannot be
// determined.
func (p *Env) TypeOf(e exp.Expr) (exp.Type, bool) {
	var ctx = make([]exp.Type, len(p.entries))
	//
	for j := range p.entries {
		entry := &p.entries[j]
		//
		if entry.Type == nil {
			t, err := exp.TypeOf(entry.Bound, ctx[:j])
			if err != nil {
				return nil, false
			}
			//
			entry.Type = t
		}
		//
		ctx[j] = entry.Type
	}
	//
	t, err := exp.TypeOf(e, ctx)
	//
	return t, err == nil
}

func (p *Env) String() string {
	var builder strings.Builder
	//
	builder.WriteString("[")
	//
	for j, entry := range p.entries {
		if j != 0 {
			builder.WriteString(", ")
		}
		//
		if entry.IsPlaceholder() {
			builder.WriteString(fmt.Sprintf("_:%s", entry.Type))
		} else {
			builder.WriteString(entry.Bound.String())
		}
	}
	//
	builder.WriteString("]")
	//
	return builder.String()
}

// ============================================================================
// Keys
// ============================================================================

// key identifies an expression formed in a scope of a given size.  Two keys are
// equal when their expressions are structurally identical after weakening the
// shallower one into the deeper scope.
type key struct {
	expr  exp.Expr
	scope uint
}

func (p key) Equals(other key) bool {
	if p.scope >= other.scope {
		return exp.MatchAt(p.expr, other.expr, p.scope-other.scope)
	}
	//
	return exp.MatchAt(other.expr, p.expr, other.scope-p.scope)
}

func (p key) Hash() uint64 {
	return exp.Hash(p.expr, p.scope)
}
