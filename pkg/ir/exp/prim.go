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
	"errors"
	"fmt"
	"math"
)

// ErrDivisionByZero is returned when a quotient, remainder or division has a
// zero divisor.
var ErrDivisionByZero = errors.New("division by zero")

// Op identifies a primitive operator.
type Op uint8

const (
	// AddOp is addition
	AddOp Op = iota
	// SubOp is subtraction
	SubOp
	// MulOp is multiplication
	MulOp
	// NegOp is negation
	NegOp
	// QuotOp is truncated integer division
	QuotOp
	// RemOp is the remainder of truncated integer division
	RemOp
	// DivOp is (floating point or field) division
	DivOp
	// MinOp is the minimum of two values
	MinOp
	// MaxOp is the maximum of two values
	MaxOp
	// EqOp is equality
	EqOp
	// NeqOp is non-equality
	NeqOp
	// LtOp is strictly less than
	LtOp
	// LteOp is less than or equal
	LteOp
	// GtOp is strictly greater than
	GtOp
	// GteOp is greater than or equal
	GteOp
	// AndOp is logical conjunction
	AndOp
	// OrOp is logical disjunction
	OrOp
	// NotOp is logical negation
	NotOp
)

var opNames = []string{"add", "sub", "mul", "neg", "quot", "rem", "div", "min", "max", "eq", "neq", "lt", "lte",
	"gt", "gte", "and", "or", "not"}

func (p Op) String() string {
	return opNames[p]
}

// OpFromString looks up an operator by its name.
func OpFromString(name string) (Op, bool) {
	for i, n := range opNames {
		if n == name {
			return Op(i), true
		}
	}
	//
	return 0, false
}

// PrimFun is a primitive operator specialised to the scalar type it operates
// on.
type PrimFun struct {
	Op   Op
	Type ScalarType
}

// NewPrimFun constructs a new primitive function.
func NewPrimFun(op Op, t ScalarType) PrimFun {
	return PrimFun{op, t}
}

func (p PrimFun) String() string {
	switch {
	case p.Type == IntType:
		return p.Op.String()
	case p.Type == BoolType && (p.Op == AndOp || p.Op == OrOp || p.Op == NotOp):
		return p.Op.String()
	}
	//
	return fmt.Sprintf("%s.%s", p.Op.String(), p.Type.String())
}

// Arity returns the number of operands of this function.
func (p PrimFun) Arity() uint {
	switch p.Op {
	case NegOp, NotOp:
		return 1
	default:
		return 2
	}
}

// IsComparison checks whether this function produces a boolean from non-boolean
// operands.
func (p PrimFun) IsComparison() bool {
	switch p.Op {
	case EqOp, NeqOp, LtOp, LteOp, GtOp, GteOp:
		return true
	default:
		return false
	}
}

// ResultType returns the type of value produced by this function.
func (p PrimFun) ResultType() ScalarType {
	if p.IsComparison() {
		return BoolType
	}
	//
	return p.Type
}

// ArgType returns the type of operand accepted by this function.
func (p PrimFun) ArgType() Type {
	if p.Arity() == 1 {
		return p.Type
	}
	//
	return &TupleType{[]Type{p.Type, p.Type}}
}

// Check that this operator is defined for its type.
func (p PrimFun) Check() error {
	var ok bool
	//
	switch p.Op {
	case AddOp, SubOp, MulOp, NegOp:
		ok = p.Type.IsNumeric()
	case QuotOp, RemOp:
		ok = p.Type == IntType
	case DivOp:
		ok = p.Type == FloatType || p.Type == FieldType
	case MinOp, MaxOp, LtOp, LteOp, GtOp, GteOp:
		ok = p.Type.IsOrdered()
	case EqOp, NeqOp:
		ok = true
	case AndOp, OrOp, NotOp:
		ok = p.Type == BoolType
	}
	//
	if !ok {
		return fmt.Errorf("operator %s undefined for type %s", p.Op.String(), p.Type.String())
	}
	//
	return nil
}

// Apply this function to an operand value.  Binary functions expect a pair.
func (p PrimFun) Apply(arg Value) (Value, error) {
	if p.Arity() == 1 {
		return p.apply1(arg)
	} else if pair, ok := arg.(*TupleValue); ok && len(pair.Elements) == 2 {
		return p.apply2(pair.Elements[0], pair.Elements[1])
	}
	//
	return nil, fmt.Errorf("invalid operand %s for %s", arg.String(), p.String())
}

func (p PrimFun) apply1(arg Value) (Value, error) {
	switch x := arg.(type) {
	case IntValue:
		if p.Op == NegOp {
			return -x, nil
		}
	case FloatValue:
		if p.Op == NegOp {
			return -x, nil
		}
	case FieldValue:
		if p.Op == NegOp {
			var r FieldValue
			r.Element.Neg(&x.Element)
			//
			return r, nil
		}
	case BoolValue:
		if p.Op == NotOp {
			return !x, nil
		}
	}
	//
	return nil, fmt.Errorf("invalid operand %s for %s", arg.String(), p.String())
}

func (p PrimFun) apply2(lhs Value, rhs Value) (Value, error) {
	switch x := lhs.(type) {
	case IntValue:
		if y, ok := rhs.(IntValue); ok {
			return applyInt(p.Op, x, y)
		}
	case FloatValue:
		if y, ok := rhs.(FloatValue); ok {
			return applyFloat(p.Op, x, y)
		}
	case FieldValue:
		if y, ok := rhs.(FieldValue); ok {
			return applyField(p.Op, x, y)
		}
	case BoolValue:
		if y, ok := rhs.(BoolValue); ok {
			return applyBool(p.Op, x, y)
		}
	}
	//
	return nil, fmt.Errorf("invalid operands %s, %s for %s", lhs.String(), rhs.String(), p.String())
}

func applyInt(op Op, x IntValue, y IntValue) (Value, error) {
	switch op {
	case AddOp:
		return x + y, nil
	case SubOp:
		return x - y, nil
	case MulOp:
		return x * y, nil
	case QuotOp, RemOp:
		if y == 0 {
			return nil, ErrDivisionByZero
		} else if op == QuotOp {
			return x / y, nil
		}
		//
		return x % y, nil
	case MinOp:
		return min(x, y), nil
	case MaxOp:
		return max(x, y), nil
	case EqOp:
		return BoolValue(x == y), nil
	case NeqOp:
		return BoolValue(x != y), nil
	case LtOp:
		return BoolValue(x < y), nil
	case LteOp:
		return BoolValue(x <= y), nil
	case GtOp:
		return BoolValue(x > y), nil
	case GteOp:
		return BoolValue(x >= y), nil
	}
	//
	return nil, fmt.Errorf("operator %s undefined for Int", op.String())
}

func applyFloat(op Op, x FloatValue, y FloatValue) (Value, error) {
	switch op {
	case AddOp:
		return x + y, nil
	case SubOp:
		return x - y, nil
	case MulOp:
		return x * y, nil
	case DivOp:
		return x / y, nil
	case MinOp:
		return FloatValue(math.Min(float64(x), float64(y))), nil
	case MaxOp:
		return FloatValue(math.Max(float64(x), float64(y))), nil
	case EqOp:
		return BoolValue(x == y), nil
	case NeqOp:
		return BoolValue(x != y), nil
	case LtOp:
		return BoolValue(x < y), nil
	case LteOp:
		return BoolValue(x <= y), nil
	case GtOp:
		return BoolValue(x > y), nil
	case GteOp:
		return BoolValue(x >= y), nil
	}
	//
	return nil, fmt.Errorf("operator %s undefined for Float", op.String())
}

func applyField(op Op, x FieldValue, y FieldValue) (Value, error) {
	var r FieldValue
	//
	switch op {
	case AddOp:
		r.Element.Add(&x.Element, &y.Element)
	case SubOp:
		r.Element.Sub(&x.Element, &y.Element)
	case MulOp:
		r.Element.Mul(&x.Element, &y.Element)
	case DivOp:
		if y.Element.IsZero() {
			return nil, ErrDivisionByZero
		}
		//
		r.Element.Div(&x.Element, &y.Element)
	case EqOp:
		return BoolValue(x.Element.Equal(&y.Element)), nil
	case NeqOp:
		return BoolValue(!x.Element.Equal(&y.Element)), nil
	default:
		return nil, fmt.Errorf("operator %s undefined for Field", op.String())
	}
	//
	return r, nil
}

func applyBool(op Op, x BoolValue, y BoolValue) (Value, error) {
	switch op {
	case AndOp:
		return x && y, nil
	case OrOp:
		return x || y, nil
	case EqOp:
		return BoolValue(x == y), nil
	case NeqOp:
		return BoolValue(x != y), nil
	}
	//
	return nil, fmt.Errorf("operator %s undefined for Bool", op.String())
}

// ============================================================================
// Primitive Constants
// ============================================================================

// PrimConstTag identifies a primitive constant.
type PrimConstTag uint8

const (
	// MinBound is the smallest representable value of a bounded type.
	MinBound PrimConstTag = iota
	// MaxBound is the largest representable value of a bounded type.
	MaxBound
	// Pi is the ratio of a circle's circumference to its diameter.
	Pi
)

var primConstNames = []string{"min-bound", "max-bound", "pi"}

func (p PrimConstTag) String() string {
	return primConstNames[p]
}

// PrimConstFromString looks up a primitive constant by name.
func PrimConstFromString(name string) (PrimConstTag, bool) {
	for i, n := range primConstNames {
		if n == name {
			return PrimConstTag(i), true
		}
	}
	//
	return 0, false
}

// Value returns the value of a primitive constant at a given type, or an
// error if it is not defined for that type.
func (p *PrimConst) Value() (Value, error) {
	switch {
	case p.Tag == MinBound && p.Type == IntType:
		return IntValue(math.MinInt64), nil
	case p.Tag == MaxBound && p.Type == IntType:
		return IntValue(math.MaxInt64), nil
	case p.Tag == MinBound && p.Type == BoolType:
		return BoolValue(false), nil
	case p.Tag == MaxBound && p.Type == BoolType:
		return BoolValue(true), nil
	case p.Tag == Pi && p.Type == FloatType:
		return FloatValue(math.Pi), nil
	}
	//
	return nil, fmt.Errorf("constant %s undefined for type %s", p.Tag.String(), p.Type.String())
}
