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
package exp

import (
	"fmt"
	"math"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// Value represents a constant embedded within an expression tree, or the
// result of evaluating an expression.
type Value interface {
	fmt.Stringer
	// Type returns the type of this value.
	Type() Type
	// Equals checks whether two values are identical.  Floating point values are
	// compared bitwise, so that structural equality is reflexive.
	Equals(Value) bool
}

// IntValue is a signed 64-bit integer value.
type IntValue int64

// BoolValue is a boolean value.
type BoolValue bool

// FloatValue is a 64-bit floating point value.
type FloatValue float64

// FieldValue is an element of the BLS12-377 scalar field.
type FieldValue struct {
	fr.Element
}

// TupleValue is a tuple of zero or more values.
type TupleValue struct {
	Elements []Value
}

// ShapeValue is a constant shape (or index).  Extents are stored outermost
// first, such that the head of a shape is its last extent.
type ShapeValue struct {
	Extents []int64
}

// NewFieldValue constructs a field element from a given integer.
func NewFieldValue(val int64) FieldValue {
	var elem fr.Element
	//
	elem.SetInt64(val)
	//
	return FieldValue{elem}
}

// NewTupleValue constructs a tuple value from zero or more values.
func NewTupleValue(elements ...Value) *TupleValue {
	return &TupleValue{elements}
}

// NewShapeValue constructs a shape value from zero or more extents.
func NewShapeValue(extents ...int64) *ShapeValue {
	return &ShapeValue{extents}
}

// ============================================================================
// Types
// ============================================================================

// Type implementation for Value interface.
func (p IntValue) Type() Type { return Int }

// Type implementation for Value interface.
func (p BoolValue) Type() Type { return Bool }

// Type implementation for Value interface.
func (p FloatValue) Type() Type { return Float }

// Type implementation for Value interface.
func (p FieldValue) Type() Type { return Field }

// Type implementation for Value interface.
func (p *TupleValue) Type() Type {
	var types = make([]Type, len(p.Elements))
	//
	for i, v := range p.Elements {
		types[i] = v.Type()
	}
	//
	return &TupleType{types}
}

// Type implementation for Value interface.
func (p *ShapeValue) Type() Type { return &ShapeType{uint(len(p.Extents))} }

// ============================================================================
// Equality
// ============================================================================

// Equals implementation for Value interface.
func (p IntValue) Equals(other Value) bool {
	o, ok := other.(IntValue)
	return ok && o == p
}

// Equals implementation for Value interface.
func (p BoolValue) Equals(other Value) bool {
	o, ok := other.(BoolValue)
	return ok && o == p
}

// Equals implementation for Value interface.
func (p FloatValue) Equals(other Value) bool {
	o, ok := other.(FloatValue)
	return ok && math.Float64bits(float64(o)) == math.Float64bits(float64(p))
}

// Equals implementation for Value interface.
func (p FieldValue) Equals(other Value) bool {
	o, ok := other.(FieldValue)
	return ok && o.Element.Equal(&p.Element)
}

// Equals implementation for Value interface.
func (p *TupleValue) Equals(other Value) bool {
	o, ok := other.(*TupleValue)
	//
	if !ok || len(o.Elements) != len(p.Elements) {
		return false
	}
	//
	for i, v := range p.Elements {
		if !v.Equals(o.Elements[i]) {
			return false
		}
	}
	//
	return true
}

// Equals implementation for Value interface.
func (p *ShapeValue) Equals(other Value) bool {
	o, ok := other.(*ShapeValue)
	//
	if !ok || len(o.Extents) != len(p.Extents) {
		return false
	}
	//
	for i, v := range p.Extents {
		if v != o.Extents[i] {
			return false
		}
	}
	//
	return true
}

// ============================================================================
// Printing
// ============================================================================

func (p IntValue) String() string { return fmt.Sprintf("%d", int64(p)) }

func (p BoolValue) String() string {
	if p {
		return "true"
	}
	//
	return "false"
}

// String always includes a decimal point (or exponent), which is how the
// parser distinguishes floats from integers.
func (p FloatValue) String() string {
	var f = float64(p)
	//
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "+inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	//
	str := fmt.Sprintf("%g", f)
	if !strings.ContainsAny(str, ".e") {
		str = str + ".0"
	}
	//
	return str
}

func (p FieldValue) String() string { return "fr:" + p.Element.String() }

func (p *TupleValue) String() string {
	var builder strings.Builder
	//
	builder.WriteString("{")
	//
	for i, v := range p.Elements {
		if i != 0 {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(v.String())
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}

func (p *ShapeValue) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(shape")
	//
	for _, v := range p.Extents {
		builder.WriteString(fmt.Sprintf(" %d", v))
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

// ============================================================================
// Helpers
// ============================================================================

// Head returns the innermost extent of a shape, or false for the empty shape.
func (p *ShapeValue) Head() (int64, bool) {
	if n := len(p.Extents); n > 0 {
		return p.Extents[n-1], true
	}
	//
	return 0, false
}

// Tail returns all but the innermost extent of a shape, or false for the
// empty shape.
func (p *ShapeValue) Tail() (*ShapeValue, bool) {
	if n := len(p.Extents); n > 0 {
		return &ShapeValue{p.Extents[:n-1]}, true
	}
	//
	return nil, false
}

// Cons extends a shape with a new innermost extent.
func (p *ShapeValue) Cons(head int64) *ShapeValue {
	var extents = make([]int64, len(p.Extents)+1)
	//
	copy(extents, p.Extents)
	extents[len(p.Extents)] = head
	//
	return &ShapeValue{extents}
}
