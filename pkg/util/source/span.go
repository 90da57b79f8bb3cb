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
package source

import "fmt"

// Span represents a contiguous region of a source file, given by the index of
// its first character and one past its last character.
type Span struct {
	start int
	end   int
}

// NewSpan constructs a new span, checking that it is well-formed.
func NewSpan(start int, end int) Span {
	if start > end {
		panic(fmt.Sprintf("invalid span [%d,%d)", start, end))
	}
	//
	return Span{start, end}
}

// Start returns the index of the first character of this span.
func (p Span) Start() int {
	return p.start
}

// End returns one past the index of the last character of this span.
func (p Span) End() int {
	return p.end
}

// Length returns the number of characters covered by this span.
func (p Span) Length() int {
	return p.end - p.start
}

// Map records, for each node of a tree parsed from a source file, the span of
// text from which it originated.  This allows errors on those nodes to be
// reported precisely.
type Map[T comparable] struct {
	mapping map[T]Span
	srcfile *File
}

// NewSourceMap constructs an initially empty source map for a given file.
func NewSourceMap[T comparable](srcfile *File) *Map[T] {
	return &Map[T]{make(map[T]Span), srcfile}
}

// Source returns the file on which this map operates.
func (p *Map[T]) Source() *File {
	return p.srcfile
}

// Put associates a node with a given span.  Nodes cannot be registered twice.
func (p *Map[T]) Put(item T, span Span) {
	if _, ok := p.mapping[item]; ok {
		panic(fmt.Sprintf("source map key already exists: %v", any(item)))
	}
	//
	p.mapping[item] = span
}

// Has checks whether a given node is registered with this map.
func (p *Map[T]) Has(item T) bool {
	_, ok := p.mapping[item]
	return ok
}

// Get returns the span associated with a given node.  If the node is not
// registered then the span of the whole file is returned.
func (p *Map[T]) Get(item T) Span {
	if s, ok := p.mapping[item]; ok {
		return s
	}
	//
	return Span{0, len(p.srcfile.contents)}
}

// SyntaxError constructs a syntax error for a given node.
func (p *Map[T]) SyntaxError(item T, msg string) *SyntaxError {
	return p.srcfile.SyntaxError(p.Get(item), msg)
}
