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
	"sync"
	"testing"

	"github.com/consensys/go-scalaropt/pkg/util/assert"
)

func Test_Sink_01(t *testing.T) {
	var sink *Sink
	// Nil sink discards everything
	sink.RuleFired("x")
	sink.KnownBranch()
	sink.Substitution()
	sink.Iteration(1, true)
	sink.Flush()
	//
	assert.False(t, sink.Enabled())
	assert.Equal(t, 0, sink.Rule("x"))
}

func Test_Sink_02(t *testing.T) {
	sink := NewSink(false)
	sink.RuleFired("x")
	sink.KnownBranch()
	//
	branches, _, _ := sink.Snapshot()
	//
	assert.Equal(t, 0, sink.Rule("x"))
	assert.Equal(t, 0, branches)
}

func Test_Sink_03(t *testing.T) {
	sink := NewSink(true)
	sink.RuleFired("x")
	sink.RuleFired("x")
	sink.RuleFired("y")
	sink.KnownBranch()
	sink.Substitution()
	sink.Substitution()
	sink.Iteration(2, false)
	sink.Iteration(5, true)
	//
	branches, substitutions, capped := sink.Snapshot()
	runs, rounds := sink.Rounds()
	//
	assert.Equal(t, 2, sink.Rule("x"))
	assert.Equal(t, 1, sink.Rule("y"))
	assert.Equal(t, 1, branches)
	assert.Equal(t, 2, substitutions)
	assert.Equal(t, 1, capped)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 7, rounds)
	// Flushing resets
	sink.Flush()
	//
	branches, substitutions, capped = sink.Snapshot()
	runs, rounds = sink.Rounds()
	//
	assert.Equal(t, 0, sink.Rule("x"))
	assert.Equal(t, 0, branches+substitutions+capped+runs+rounds)
}

func Test_Sink_04(t *testing.T) {
	var (
		sink = NewSink(true)
		wg   sync.WaitGroup
	)
	//
	for range 8 {
		wg.Add(1)
		//
		go func() {
			defer wg.Done()
			//
			for range 100 {
				sink.RuleFired("x")
				sink.Substitution()
			}
		}()
	}
	//
	wg.Wait()
	//
	_, substitutions, _ := sink.Snapshot()
	//
	assert.Equal(t, 800, sink.Rule("x"))
	assert.Equal(t, 800, substitutions)
}
