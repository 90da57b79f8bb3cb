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

// cse looks for a candidate in scope which structurally matches a given
// expression, returning a reference to the nearest one found.  Any syntactic
// match is eliminated unconditionally; no attempt is made to account for the
// cost of keeping the candidate alive.
func (p *pass) cse(e exp.Expr) (*exp.Var, bool) {
	v, ok := p.env.Lookup(e)
	//
	if ok {
		p.stats.Substitution()
	}
	//
	return v, ok
}
