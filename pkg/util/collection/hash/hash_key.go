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
package hash

// A reasonably simple hashmap implementation which permits collisions.  This
// matters for keys whose hash function is deliberately coarse, such as
// expressions hashed up to the choice of variable, where equality must then be
// confirmed by a (more expensive) structural comparison.

// Hasher provides a generic definition of a hashing function suitable for use
// within the hashmap.  This is similar to the Hasher interface provided in
// go-set, except that it additionally includes equality.
type Hasher[T any] interface {
	// Check whether two items are equal (or not).
	Equals(T) bool
	// Return a suitable hashcode.
	Hash() uint64
}
