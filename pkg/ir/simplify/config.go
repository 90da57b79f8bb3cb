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

// MaxRounds is the maximum number of rounds (i.e. shrink followed by simplify)
// which the fixed-point driver will perform after the initial simplification.
const MaxRounds = 5

// OptimisationConfig provides a mechanism for controlling how simplification
// is applied.
type OptimisationConfig struct {
	// FixedPoint determines whether simplification alternates with shrinking
	// until the tree stabilises (or the round limit is reached).  Otherwise,
	// the tree is simplified exactly once.
	FixedPoint bool
	// FoldShapes enables constant folding of shape operations whose operands
	// are all constant, beyond those rules which are always applied.
	FoldShapes bool
	// LoopRecovery enables the refolding of chains of congruent let bindings
	// (e.g. as left by unrolling) into explicit loops.
	LoopRecovery bool
}

// OPTIMISATION_LEVELS provides a set of precanned optimisation configurations.
// Here 0 implies minimal optimisation and, otherwise, increasing levels implies
// increasingly aggressive optimisation (though that doesn't mean they will
// always improve performance).
var OPTIMISATION_LEVELS = []OptimisationConfig{
	// Level 0 == single pass
	{false, false, false},
	// Level 1 == fixed point
	{true, true, false},
	// Level 2 == everything
	{true, true, true},
}

// DEFAULT_OPTIMISATION_INDEX gives the index of the default optimisation level
// in OPTIMISATION_LEVELS.
var DEFAULT_OPTIMISATION_INDEX = uint(1)

// DEFAULT_OPTIMISATION_LEVEL provides a default level of optimisation which
// should be used in most cases.
var DEFAULT_OPTIMISATION_LEVEL = OPTIMISATION_LEVELS[DEFAULT_OPTIMISATION_INDEX]
