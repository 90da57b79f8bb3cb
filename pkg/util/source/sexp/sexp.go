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
package sexp

import (
	"strings"
	"unicode"
)

// SExp is an S-Expression, which is either a symbol or a bracketed sequence of
// zero or more S-Expressions.  Three kinds of sequence are supported: lists
// "(...)", sets "{...}" and arrays "[...]".
type SExp interface {
	// AsList returns this S-Expression if it is a list, or nil otherwise.
	AsList() *List
	// AsSet returns this S-Expression if it is a set, or nil otherwise.
	AsSet() *Set
	// AsArray returns this S-Expression if it is an array, or nil otherwise.
	AsArray() *Array
	// AsSymbol returns this S-Expression if it is a symbol, or nil otherwise.
	AsSymbol() *Symbol
	// String generates a textual representation of this S-Expression.  When
	// quote is set, symbols which could not be parsed back as a single symbol
	// are quoted.
	String(quote bool) string
}

// NOTE: These are used for compile time type checking if the given type
// satisfies the given interface.
var (
	_ SExp = (*List)(nil)
	_ SExp = (*Set)(nil)
	_ SExp = (*Array)(nil)
	_ SExp = (*Symbol)(nil)
)

// List represents a list of zero or more S-Expressions.
type List struct {
	Elements []SExp
}

// Set represents a set of zero or more S-Expressions.
type Set struct {
	Elements []SExp
}

// Array represents an array of zero or more S-Expressions.
type Array struct {
	Elements []SExp
}

// Symbol represents a terminating symbol.
type Symbol struct {
	Value string
}

// NewList creates a new list from a given array of S-Expressions.
func NewList(elements []SExp) *List { return &List{elements} }

// NewSet creates a new set from a given array of S-Expressions.
func NewSet(elements []SExp) *Set { return &Set{elements} }

// NewArray creates a new array from a given array of S-Expressions.
func NewArray(elements []SExp) *Array { return &Array{elements} }

// NewSymbol creates a new symbol from a given string.
func NewSymbol(value string) *Symbol { return &Symbol{value} }

// AsList implementation for SExp interface.
func (l *List) AsList() *List { return l }

// AsSet implementation for SExp interface.
func (l *List) AsSet() *Set { return nil }

// AsArray implementation for SExp interface.
func (l *List) AsArray() *Array { return nil }

// AsSymbol implementation for SExp interface.
func (l *List) AsSymbol() *Symbol { return nil }

// Len returns the number of elements in this list.
func (l *List) Len() int { return len(l.Elements) }

// Get returns the ith element of this list.
func (l *List) Get(i int) SExp { return l.Elements[i] }

// Head returns the leading symbol of this list, or "" if there is none.
func (l *List) Head() string {
	if len(l.Elements) > 0 {
		if s := l.Elements[0].AsSymbol(); s != nil {
			return s.Value
		}
	}
	//
	return ""
}

func (l *List) String(quote bool) string { return sequence('(', ')', l.Elements, quote) }

// AsList implementation for SExp interface.
func (l *Set) AsList() *List { return nil }

// AsSet implementation for SExp interface.
func (l *Set) AsSet() *Set { return l }

// AsArray implementation for SExp interface.
func (l *Set) AsArray() *Array { return nil }

// AsSymbol implementation for SExp interface.
func (l *Set) AsSymbol() *Symbol { return nil }

// Len returns the number of elements in this set.
func (l *Set) Len() int { return len(l.Elements) }

func (l *Set) String(quote bool) string { return sequence('{', '}', l.Elements, quote) }

// AsList implementation for SExp interface.
func (a *Array) AsList() *List { return nil }

// AsSet implementation for SExp interface.
func (a *Array) AsSet() *Set { return nil }

// AsArray implementation for SExp interface.
func (a *Array) AsArray() *Array { return a }

// AsSymbol implementation for SExp interface.
func (a *Array) AsSymbol() *Symbol { return nil }

// Len returns the number of elements in this array.
func (a *Array) Len() int { return len(a.Elements) }

func (a *Array) String(quote bool) string { return sequence('[', ']', a.Elements, quote) }

// AsList implementation for SExp interface.
func (s *Symbol) AsList() *List { return nil }

// AsSet implementation for SExp interface.
func (s *Symbol) AsSet() *Set { return nil }

// AsArray implementation for SExp interface.
func (s *Symbol) AsArray() *Array { return nil }

// AsSymbol implementation for SExp interface.
func (s *Symbol) AsSymbol() *Symbol { return s }

func (s *Symbol) String(quote bool) string {
	if quote && strings.IndexFunc(s.Value, isDelimiter) >= 0 {
		return "\"" + s.Value + "\""
	}
	//
	return s.Value
}

func sequence(open rune, close rune, elements []SExp, quote bool) string {
	var builder strings.Builder
	//
	builder.WriteRune(open)
	//
	for i, e := range elements {
		if i != 0 {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(e.String(quote))
	}
	//
	builder.WriteRune(close)
	//
	return builder.String()
}

// isDelimiter identifies characters which cannot occur within a symbol.
func isDelimiter(r rune) bool {
	switch r {
	case '(', ')', '{', '}', '[', ']', ';':
		return true
	default:
		return unicode.IsSpace(r)
	}
}
