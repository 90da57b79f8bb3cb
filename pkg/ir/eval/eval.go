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
package eval

import (
	"errors"
	"fmt"

	"github.com/consensys/go-scalaropt/pkg/ir/exp"
)

// ErrOutOfFuel is returned when evaluation performs more loop iterations than
// permitted.
var ErrOutOfFuel = errors.New("out of fuel")

// ErrOutOfBounds is returned when an array (or shape) is indexed outside of its
// shape.
var ErrOutOfBounds = exp.ErrOutOfBounds

// Array is a multi-dimensional array of values, stored in row-major order.
type Array struct {
	Shape    *exp.ShapeValue
	Elements []exp.Value
}

// NewArray constructs an array of a given shape.
func NewArray(shape *exp.ShapeValue, elements ...exp.Value) (*Array, error) {
	if exp.ShapeSizeOf(shape) != int64(len(elements)) {
		return nil, fmt.Errorf("array of shape %s requires %d elements (found %d)", shape.String(),
			exp.ShapeSizeOf(shape), len(elements))
	}
	//
	return &Array{shape, elements}, nil
}

// Evaluator is a reference interpreter for expressions and functions, which
// defines their meaning.  Arrays are looked up by name.  Loops are bounded by a
// fuel limit, such that evaluation always terminates.
type Evaluator struct {
	arrays map[string]*Array
	fuel   uint
}

// New constructs an evaluator for a given set of arrays, where each evaluation
// can perform at most fuel loop iterations.
func New(arrays map[string]*Array, fuel uint) *Evaluator {
	return &Evaluator{arrays, fuel}
}

// Eval evaluates a closed expression.
func (p *Evaluator) Eval(e exp.Expr) (exp.Value, error) {
	s := state{p, nil, p.fuel}
	return s.eval(e)
}

// Apply a closed function to zero or more arguments.
func (p *Evaluator) Apply(f exp.Fun, args ...exp.Value) (exp.Value, error) {
	s := state{p, nil, p.fuel}
	return s.apply(f, args...)
}

// state holds the values of all variables in scope (outermost first), along
// with the fuel remaining.
type state struct {
	*Evaluator
	stack []exp.Value
	fuel  uint
}

//nolint:gocyclo
func (p *state) eval(e exp.Expr) (exp.Value, error) {
	switch e := e.(type) {
	case *exp.Let:
		v, err := p.eval(e.Bound)
		if err != nil {
			return nil, err
		}
		//
		p.stack = append(p.stack, v)
		r, err := p.eval(e.Body)
		p.stack = p.stack[:len(p.stack)-1]
		//
		return r, err
	case *exp.Var:
		n := uint(len(p.stack))
		if e.Index >= n {
			return nil, fmt.Errorf("variable #%d out of scope", e.Index)
		}
		//
		return p.stack[n-1-e.Index], nil
	case *exp.Const:
		return e.Value, nil
	case *exp.PrimConst:
		return e.Value()
	case *exp.Tuple:
		vs, err := p.evals(e.Elements...)
		if err != nil {
			return nil, err
		}
		//
		return exp.NewTupleValue(vs...), nil
	case *exp.Prj:
		v, err := p.eval(e.Arg)
		if err != nil {
			return nil, err
		} else if t, ok := v.(*exp.TupleValue); ok && e.Index < uint(len(t.Elements)) {
			return t.Elements[e.Index], nil
		}
		//
		return nil, fmt.Errorf("invalid projection %d from %s", e.Index, v.String())
	case *exp.IndexNil:
		return exp.NewShapeValue(), nil
	case *exp.IndexCons:
		return p.indexCons(e)
	case *exp.IndexHead:
		sh, err := p.shape(e.Arg)
		if err != nil {
			return nil, err
		} else if len(sh.Extents) == 0 {
			return nil, errors.New("head of empty shape")
		}
		//
		return exp.IntValue(sh.Extents[len(sh.Extents)-1]), nil
	case *exp.IndexTail:
		sh, err := p.shape(e.Arg)
		if err != nil {
			return nil, err
		} else if len(sh.Extents) == 0 {
			return nil, errors.New("tail of empty shape")
		}
		//
		return exp.NewShapeValue(sh.Extents[:len(sh.Extents)-1]...), nil
	case *exp.IndexTrans:
		sh, err := p.shape(e.Arg)
		if err != nil {
			return nil, err
		}
		//
		return exp.ShapeTranspose(sh), nil
	case *exp.IndexSlice:
		shapes, err := p.shapes(e.Slix, e.Shape)
		if err != nil {
			return nil, err
		}
		//
		return wrapShape(exp.ShapeSlice(e.Slice, shapes[1]))
	case *exp.IndexFull:
		shapes, err := p.shapes(e.Slix, e.Sl)
		if err != nil {
			return nil, err
		}
		//
		return wrapShape(exp.ShapeFull(e.Slice, shapes[0], shapes[1]))
	case *exp.ToIndex:
		shapes, err := p.shapes(e.Shape, e.Index)
		if err != nil {
			return nil, err
		}
		//
		i, err := exp.ShapeToIndex(shapes[0], shapes[1])
		//
		return exp.IntValue(i), err
	case *exp.FromIndex:
		sh, i, err := p.shapeAndInt(e.Shape, e.Index)
		if err != nil {
			return nil, err
		}
		//
		return wrapShape(exp.ShapeFromIndex(sh, i))
	case *exp.ToSlice:
		sh, i, err := p.shapeAndInt(e.Shape, e.Index)
		if err != nil {
			return nil, err
		}
		//
		return wrapShape(exp.ShapeToSlice(e.Slice, sh, i))
	case *exp.ShapeSize:
		sh, err := p.shape(e.Arg)
		if err != nil {
			return nil, err
		}
		//
		return exp.IntValue(exp.ShapeSizeOf(sh)), nil
	case *exp.Intersect:
		shapes, err := p.shapes(e.Lhs, e.Rhs)
		if err != nil {
			return nil, err
		}
		//
		return wrapShape(exp.ShapeIntersect(shapes[0], shapes[1]))
	case *exp.Union:
		shapes, err := p.shapes(e.Lhs, e.Rhs)
		if err != nil {
			return nil, err
		}
		//
		return wrapShape(exp.ShapeUnion(shapes[0], shapes[1]))
	case *exp.Cond:
		return p.cond(e)
	case *exp.While:
		return p.while(e)
	case *exp.PrimApp:
		v, err := p.eval(e.Arg)
		if err != nil {
			return nil, err
		}
		//
		return e.Fun.Apply(v)
	case *exp.Index:
		return p.index(e)
	case *exp.LinearIndex:
		return p.linearIndex(e)
	case *exp.Shape:
		arr, err := p.array(e.Array)
		if err != nil {
			return nil, err
		}
		//
		return arr.Shape, nil
	case *exp.Foreign:
		arg, err := p.eval(e.Arg)
		if err != nil {
			return nil, err
		}
		// Fallback is closed, hence evaluated in an empty scope.
		fallback := state{p.Evaluator, nil, p.fuel}
		r, err := fallback.apply(e.Fallback, arg)
		p.fuel = fallback.fuel
		//
		return r, err
	default:
		panic(fmt.Sprintf("unknown expression encountered (%T)", e))
	}
}

func (p *state) evals(es ...exp.Expr) ([]exp.Value, error) {
	var vs = make([]exp.Value, len(es))
	//
	for i, e := range es {
		v, err := p.eval(e)
		if err != nil {
			return nil, err
		}
		//
		vs[i] = v
	}
	//
	return vs, nil
}

// apply a function (formed in the current scope) to zero or more arguments.
func (p *state) apply(f exp.Fun, args ...exp.Value) (exp.Value, error) {
	var n = len(p.stack)
	//
	defer func() { p.stack = p.stack[:n] }()
	//
	for _, arg := range args {
		lam, ok := f.(*exp.Lam)
		if !ok {
			return nil, fmt.Errorf("too many arguments (%d)", len(args))
		}
		//
		p.stack = append(p.stack, arg)
		f = lam.Body
	}
	//
	if body, ok := f.(*exp.Body); ok {
		return p.eval(body.Body)
	}
	//
	return nil, fmt.Errorf("too few arguments (%d)", len(args))
}

func (p *state) cond(e *exp.Cond) (exp.Value, error) {
	c, err := p.eval(e.Condition)
	if err != nil {
		return nil, err
	} else if b, ok := c.(exp.BoolValue); !ok {
		return nil, fmt.Errorf("expected boolean condition, found %s", c.String())
	} else if b {
		return p.eval(e.TrueBranch)
	}
	//
	return p.eval(e.FalseBranch)
}

func (p *state) while(e *exp.While) (exp.Value, error) {
	x, err := p.eval(e.Seed)
	//
	for err == nil {
		var c exp.Value
		//
		if p.fuel == 0 {
			return nil, ErrOutOfFuel
		}
		//
		p.fuel--
		//
		if c, err = p.apply(e.Predicate, x); err != nil {
			break
		} else if b, ok := c.(exp.BoolValue); !ok {
			return nil, fmt.Errorf("expected boolean predicate, found %s", c.String())
		} else if !b {
			return x, nil
		}
		//
		x, err = p.apply(e.Step, x)
	}
	//
	return nil, err
}

func (p *state) indexCons(e *exp.IndexCons) (exp.Value, error) {
	sh, i, err := p.shapeAndInt(e.Tail, e.Head)
	if err != nil {
		return nil, err
	}
	//
	extents := append(append([]int64{}, sh.Extents...), i)
	//
	return exp.NewShapeValue(extents...), nil
}

func (p *state) index(e *exp.Index) (exp.Value, error) {
	arr, err := p.array(e.Array)
	if err != nil {
		return nil, err
	}
	//
	ix, err := p.shape(e.Index)
	if err != nil {
		return nil, err
	} else if len(ix.Extents) != len(arr.Shape.Extents) {
		return nil, fmt.Errorf("index %s has incorrect rank for array %s", ix.String(), e.Array.Name)
	}
	// Bounds are checked during linearisation
	i, err := exp.ShapeToIndex(arr.Shape, ix)
	if err != nil {
		return nil, err
	}
	//
	return arr.Elements[i], nil
}

func (p *state) linearIndex(e *exp.LinearIndex) (exp.Value, error) {
	arr, err := p.array(e.Array)
	if err != nil {
		return nil, err
	}
	//
	v, err := p.eval(e.Index)
	if err != nil {
		return nil, err
	} else if i, ok := v.(exp.IntValue); !ok {
		return nil, fmt.Errorf("expected integer index, found %s", v.String())
	} else if i < 0 || int(i) >= len(arr.Elements) {
		return nil, ErrOutOfBounds
	} else {
		return arr.Elements[i], nil
	}
}

func (p *state) array(ref exp.ArrayRef) (*Array, error) {
	arr, ok := p.arrays[ref.Name]
	//
	if !ok {
		return nil, fmt.Errorf("unknown array %s", ref.Name)
	} else if uint(len(arr.Shape.Extents)) != ref.Rank {
		return nil, fmt.Errorf("array %s has rank %d (expected %d)", ref.Name, len(arr.Shape.Extents), ref.Rank)
	}
	//
	return arr, nil
}

// ============================================================================
// Helpers
// ============================================================================

func (p *state) shape(e exp.Expr) (*exp.ShapeValue, error) {
	v, err := p.eval(e)
	if err != nil {
		return nil, err
	} else if sh, ok := v.(*exp.ShapeValue); ok {
		return sh, nil
	}
	//
	return nil, fmt.Errorf("expected shape, found %s", v.String())
}

func (p *state) shapes(lhs exp.Expr, rhs exp.Expr) ([]*exp.ShapeValue, error) {
	l, err := p.shape(lhs)
	if err != nil {
		return nil, err
	}
	//
	r, err := p.shape(rhs)
	if err != nil {
		return nil, err
	}
	//
	return []*exp.ShapeValue{l, r}, nil
}

func (p *state) shapeAndInt(lhs exp.Expr, rhs exp.Expr) (*exp.ShapeValue, int64, error) {
	sh, err := p.shape(lhs)
	if err != nil {
		return nil, 0, err
	}
	//
	v, err := p.eval(rhs)
	if err != nil {
		return nil, 0, err
	} else if i, ok := v.(exp.IntValue); ok {
		return sh, int64(i), nil
	}
	//
	return nil, 0, fmt.Errorf("expected integer, found %s", v.String())
}

func wrapShape(sh *exp.ShapeValue, err error) (exp.Value, error) {
	if err != nil {
		return nil, err
	}
	//
	return sh, nil
}
