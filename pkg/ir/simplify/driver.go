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
	log "github.com/sirupsen/logrus"
)

// fixpoint alternates simplification and shrinking of a tree until neither
// changes anything, or the round limit is reached.  Simplification is always
// applied first, since shrinking can erase structure which some rewrites (e.g.
// loop recovery) depend upon.  Reaching the round limit is not an error: the
// tree returned is still equivalent to the original, just (perhaps) not as
// simple as it could be.
func fixpoint[T exp.Tree](p *Simplifier, tree T, simplify func(T) (T, bool), shrink func(T) (T, bool)) T {
	var changed bool
	//
	tree, _ = simplify(tree)
	//
	if !p.config.FixedPoint {
		p.stats.Iteration(0, false)
		return tree
	}
	//
	for round := uint(1); ; round++ {
		if tree, changed = shrink(tree); !changed {
			log.Debugf("shrink stable after %d round(s)", round)
			p.stats.Iteration(round, false)
			//
			return tree
		} else if tree, changed = simplify(tree); !changed {
			log.Debugf("simplify stable after %d round(s)", round)
			p.stats.Iteration(round, false)
			//
			return tree
		} else if round >= MaxRounds {
			log.Warnf("simplification incomplete after %d rounds", round)
			p.stats.Iteration(round, true)
			//
			return tree
		}
	}
}
