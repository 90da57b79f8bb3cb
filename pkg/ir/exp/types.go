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
	"strings"
)

// Type represents the type of a scalar expression.  Types are used to check
// the well-formedness of trees once (e.g. after parsing), and to supply the
// explicit rank information required by some rewrite rules.
type Type interface {
	fmt.Stringer
	// Equals checks whether two types are identical.
	Equals(Type) bool
}

// ============================================================================
// Scalar Types
// ============================================================================

// ScalarType represents one of the primitive (non-compound) types.
type ScalarType uint8

const (
	// IntType is the type of signed 64-bit integers.
	IntType ScalarType = iota
	// BoolType is the type of booleans.
	BoolType
	// FloatType is the type of 64-bit floating point numbers.
	FloatType
	// FieldType is the type of elements of the BLS12-377 scalar field.
	FieldType
)

// Int is the integer type
var Int Type = IntType

// Bool is the boolean type
var Bool Type = BoolType

// Float is the floating point type
var Float Type = FloatType

// Field is the prime field type
var Field Type = FieldType

// Equals implementation for the Type interface.
func (p ScalarType) Equals(other Type) bool {
	if o, ok := other.(ScalarType); ok {
		return p == o
	}
	//
	return false
}

// IsNumeric checks whether arithmetic operators are defined on this type.
func (p ScalarType) IsNumeric() bool {
	return p != BoolType
}

// IsOrdered checks whether comparison operators are defined on this type.
func (p ScalarType) IsOrdered() bool {
	return p == IntType || p == FloatType
}

func (p ScalarType) String() string {
	switch p {
	case IntType:
		return "Int"
	case BoolType:
		return "Bool"
	case FloatType:
		return "Float"
	case FieldType:
		return "Field"
	}
	//
	panic(fmt.Sprintf("unknown scalar type (%d)", uint8(p)))
}

// ============================================================================
// Tuple Types
// ============================================================================

// TupleType represents a tuple of zero or more component types.  The empty
// tuple type is the unit type.
type TupleType struct {
	Elements []Type
}

// NewTupleType constructs a new tuple type.
func NewTupleType(elements ...Type) *TupleType {
	return &TupleType{elements}
}

// Equals implementation for the Type interface.
func (p *TupleType) Equals(other Type) bool {
	if o, ok := other.(*TupleType); ok && len(o.Elements) == len(p.Elements) {
		for i, t := range p.Elements {
			if !t.Equals(o.Elements[i]) {
				return false
			}
		}
		//
		return true
	}
	//
	return false
}

func (p *TupleType) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(Tuple")
	//
	for _, t := range p.Elements {
		builder.WriteString(" ")
		builder.WriteString(t.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

// ============================================================================
// Shape Types
// ============================================================================

// ShapeType represents an array shape (or, equally, an index into an array)
// of a given rank.  Rank 0 is the empty shape Z.
type ShapeType struct {
	Rank uint
}

// NewShapeType constructs a shape type of a given rank.
func NewShapeType(rank uint) *ShapeType {
	return &ShapeType{rank}
}

// Equals implementation for the Type interface.
func (p *ShapeType) Equals(other Type) bool {
	if o, ok := other.(*ShapeType); ok {
		return p.Rank == o.Rank
	}
	//
	return false
}

func (p *ShapeType) String() string {
	return fmt.Sprintf("(Shape %d)", p.Rank)
}

// RankOf returns the rank of a given type, provided it is a shape type.
func RankOf(t Type) (uint, bool) {
	if s, ok := t.(*ShapeType); ok {
		return s.Rank, true
	}
	//
	return 0, false
}
