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
package stats

import (
	"maps"
	"slices"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Sink collects statistics about the rewrites performed during simplification.
// Statistics are purely observational: nothing recorded here is ever read back
// by the simplifier.  A nil sink is valid and discards everything, as does a
// sink which is not enabled.  A sink may be shared between concurrent
// simplifications.
type Sink struct {
	mux     sync.Mutex
	enabled bool
	// Number of times each named rule fired
	rules map[string]uint
	// Number of conditionals eliminated because their branch was known
	branches uint
	// Number of expressions replaced by a reference to an equal candidate
	substitutions uint
	// Number of driver invocations, total rounds and those hitting the cap
	runs, rounds, capped uint
}

// NewSink constructs a statistics sink which is enabled (or not).
func NewSink(enabled bool) *Sink {
	return &Sink{enabled: enabled, rules: make(map[string]uint)}
}

// Enabled checks whether this sink is recording anything.
func (p *Sink) Enabled() bool {
	return p != nil && p.enabled
}

// RuleFired records that a given rewrite rule fired.
func (p *Sink) RuleFired(rule string) {
	if p.Enabled() {
		p.mux.Lock()
		p.rules[rule]++
		p.mux.Unlock()
	}
}

// KnownBranch records that a conditional was replaced by one of its branches.
func (p *Sink) KnownBranch() {
	if p.Enabled() {
		p.mux.Lock()
		p.branches++
		p.mux.Unlock()
	}
}

// Substitution records that an expression was replaced by a reference to an
// equivalent binding.
func (p *Sink) Substitution() {
	if p.Enabled() {
		p.mux.Lock()
		p.substitutions++
		p.mux.Unlock()
	}
}

// Iteration records the completion of one run of the fixed-point driver, which
// took a given number of rounds and may have reached the iteration cap.
func (p *Sink) Iteration(rounds uint, capped bool) {
	if p.Enabled() {
		p.mux.Lock()
		//
		p.runs++
		p.rounds += rounds
		//
		if capped {
			p.capped++
		}
		//
		p.mux.Unlock()
	}
}

// Rule returns the number of times a given rule has fired (since the last
// flush).
func (p *Sink) Rule(rule string) uint {
	if !p.Enabled() {
		return 0
	}
	//
	p.mux.Lock()
	defer p.mux.Unlock()
	//
	return p.rules[rule]
}

// Snapshot returns the current counts (since the last flush) of known
// branches, substitutions and capped runs.
func (p *Sink) Snapshot() (branches uint, substitutions uint, capped uint) {
	if !p.Enabled() {
		return 0, 0, 0
	}
	//
	p.mux.Lock()
	defer p.mux.Unlock()
	//
	return p.branches, p.substitutions, p.capped
}

// Rounds returns the number of driver invocations (since the last flush),
// along with the total number of rounds they took.
func (p *Sink) Rounds() (runs uint, rounds uint) {
	if !p.Enabled() {
		return 0, 0
	}
	//
	p.mux.Lock()
	defer p.mux.Unlock()
	//
	return p.runs, p.rounds
}

// Flush reports all statistics collected so far, and resets them.
func (p *Sink) Flush() {
	if !p.Enabled() {
		return
	}
	//
	p.mux.Lock()
	defer p.mux.Unlock()
	//
	log.Infof("simplified %d tree(s) in %d round(s), %d reached iteration limit", p.runs, p.rounds, p.capped)
	log.Infof("%d known branch(es), %d substitution(s)", p.branches, p.substitutions)
	//
	for _, rule := range slices.Sorted(maps.Keys(p.rules)) {
		log.Infof("rule %s fired %d time(s)", rule, p.rules[rule])
	}
	// Reset
	p.rules = make(map[string]uint)
	p.branches, p.substitutions = 0, 0
	p.runs, p.rounds, p.capped = 0, 0, 0
}
