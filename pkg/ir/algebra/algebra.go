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
package algebra

import (
	"github.com/consensys/go-scalaropt/pkg/ir/exp"
)

// Standard is the default algebra for primitive operators, providing constant
// folding and a small number of identity laws.  Laws which do not hold
// bit-for-bit over floating point values (e.g. x+0 == x, which fails for -0.0)
// are only applied to integers and field elements.  Rewrites may discard a
// failing subexpression (e.g. x*0 == 0), but never introduce one.
type Standard struct{}

// New constructs the standard algebra.
func New() *Standard {
	return &Standard{}
}

// Apply a primitive operator to a (simplified) operand, returning a simpler
// equivalent expression if one exists.
func (p *Standard) Apply(fun exp.PrimFun, arg exp.Expr) (exp.Expr, bool) {
	if v, ok := constantOf(arg); ok {
		if r, err := fun.Apply(v); err == nil {
			return exp.NewConst(r), true
		}
		// Cannot fold (e.g. division by zero), so leave for runtime.
		return nil, false
	} else if fun.Arity() == 1 {
		return applyUnary(fun, arg)
	} else if pair, ok := arg.(*exp.Tuple); ok && len(pair.Elements) == 2 {
		return applyBinary(fun, pair.Elements[0], pair.Elements[1])
	}
	//
	return nil, false
}

// Double negation cancels
func applyUnary(fun exp.PrimFun, arg exp.Expr) (exp.Expr, bool) {
	if inner, ok := arg.(*exp.PrimApp); ok && inner.Fun == fun {
		return inner.Arg, true
	}
	//
	return nil, false
}

//nolint:gocyclo
func applyBinary(fun exp.PrimFun, lhs exp.Expr, rhs exp.Expr) (exp.Expr, bool) {
	var exact = fun.Type == exp.IntType || fun.Type == exp.FieldType
	//
	switch fun.Op {
	case exp.AddOp:
		if exact && isConst(rhs, 0, fun.Type) {
			return lhs, true
		} else if exact && isConst(lhs, 0, fun.Type) {
			return rhs, true
		}
	case exp.SubOp:
		if exact && isConst(rhs, 0, fun.Type) {
			return lhs, true
		} else if exact && exp.Match(lhs, rhs) {
			return constOf(0, fun.Type), true
		}
	case exp.MulOp:
		if exact && isConst(rhs, 1, fun.Type) {
			return lhs, true
		} else if exact && isConst(lhs, 1, fun.Type) {
			return rhs, true
		} else if exact && (isConst(lhs, 0, fun.Type) || isConst(rhs, 0, fun.Type)) {
			return constOf(0, fun.Type), true
		}
	case exp.AndOp:
		return applyLogical(lhs, rhs, true)
	case exp.OrOp:
		return applyLogical(lhs, rhs, false)
	case exp.MinOp, exp.MaxOp:
		if fun.Type == exp.IntType && exp.Match(lhs, rhs) {
			return lhs, true
		}
	case exp.EqOp, exp.LteOp, exp.GteOp:
		if fun.Type != exp.FloatType && exp.Match(lhs, rhs) {
			return exp.NewBool(true), true
		}
	case exp.NeqOp, exp.LtOp, exp.GtOp:
		if fun.Type != exp.FloatType && exp.Match(lhs, rhs) {
			return exp.NewBool(false), true
		}
	}
	//
	return nil, false
}

// Apply the laws for conjunction (unit true, zero false) or disjunction (unit
// false, zero true).
func applyLogical(lhs exp.Expr, rhs exp.Expr, unit bool) (exp.Expr, bool) {
	switch {
	case isBool(lhs, unit):
		return rhs, true
	case isBool(rhs, unit):
		return lhs, true
	case isBool(lhs, !unit), isBool(rhs, !unit):
		return exp.NewBool(!unit), true
	case exp.Match(lhs, rhs):
		return lhs, true
	}
	//
	return nil, false
}

// ============================================================================
// Helpers
// ============================================================================

// constantOf extracts the value of an operand, provided it is constant.
func constantOf(arg exp.Expr) (exp.Value, bool) {
	switch arg := arg.(type) {
	case *exp.Const:
		return arg.Value, true
	case *exp.Tuple:
		values := make([]exp.Value, len(arg.Elements))
		//
		for i, e := range arg.Elements {
			c, ok := e.(*exp.Const)
			if !ok {
				return nil, false
			}
			//
			values[i] = c.Value
		}
		//
		return exp.NewTupleValue(values...), true
	}
	//
	return nil, false
}

func constOf(val int64, t exp.ScalarType) *exp.Const {
	if t == exp.FieldType {
		return exp.NewConst(exp.NewFieldValue(val))
	}
	//
	return exp.NewInt(val)
}

func isConst(e exp.Expr, val int64, t exp.ScalarType) bool {
	if c, ok := e.(*exp.Const); ok {
		return c.Value.Equals(constOf(val, t).Value)
	}
	//
	return false
}

func isBool(e exp.Expr, val bool) bool {
	if c, ok := e.(*exp.Const); ok {
		return c.Value.Equals(exp.BoolValue(val))
	}
	//
	return false
}
