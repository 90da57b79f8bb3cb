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
)

// Check that a given (closed) tree is well-scoped and well-typed.  This is
// intended to be applied once, when a tree is first constructed (e.g. after
// parsing).  Rewrites assume, but do not check, that their inputs are
// well-formed.
func Check(tree Tree) error {
	switch t := tree.(type) {
	case Expr:
		_, err := TypeOf(t, nil)
		return err
	case Fun:
		_, _, err := TypeOfFun(t, nil)
		return err
	}
	//
	panic(fmt.Sprintf("unknown tree encountered (%T)", tree))
}

// TypeOf determines the type of an expression in a given context, where the
// context gives the type of each variable in scope (outermost first).  An error
// is returned if the expression is not well-scoped or not well-typed.
//
//nolint:gocyclo
func TypeOf(e Expr, ctx []Type) (Type, error) {
	switch e := e.(type) {
	case *Let:
		bound, err := TypeOf(e.Bound, ctx)
		if err != nil {
			return nil, err
		}
		//
		return TypeOf(e.Body, extend(ctx, bound))
	case *Var:
		if e.Index >= uint(len(ctx)) {
			return nil, fmt.Errorf("variable #%d out of scope", e.Index)
		}
		//
		return ctx[uint(len(ctx))-1-e.Index], nil
	case *Const:
		return e.Value.Type(), nil
	case *PrimConst:
		if _, err := e.Value(); err != nil {
			return nil, err
		}
		//
		return e.Type, nil
	case *Tuple:
		types := make([]Type, len(e.Elements))
		//
		for i, elem := range e.Elements {
			t, err := TypeOf(elem, ctx)
			if err != nil {
				return nil, err
			}
			//
			types[i] = t
		}
		//
		return &TupleType{types}, nil
	case *Prj:
		t, err := TypeOf(e.Arg, ctx)
		if err != nil {
			return nil, err
		} else if tt, ok := t.(*TupleType); !ok || e.Index >= uint(len(tt.Elements)) {
			return nil, fmt.Errorf("invalid projection %d from %s", e.Index, t.String())
		} else {
			return tt.Elements[e.Index], nil
		}
	case *IndexNil:
		return &ShapeType{0}, nil
	case *IndexCons:
		rank, err := rankOf(e.Tail, ctx)
		if err != nil {
			return nil, err
		} else if err = expect(e.Head, ctx, Int); err != nil {
			return nil, err
		}
		//
		return &ShapeType{rank + 1}, nil
	case *IndexHead:
		if rank, err := rankOf(e.Arg, ctx); err != nil {
			return nil, err
		} else if rank == 0 {
			return nil, fmt.Errorf("head of empty shape")
		}
		//
		return Int, nil
	case *IndexTail:
		if rank, err := rankOf(e.Arg, ctx); err != nil {
			return nil, err
		} else if rank == 0 {
			return nil, fmt.Errorf("tail of empty shape")
		} else {
			return &ShapeType{rank - 1}, nil
		}
	case *IndexTrans:
		rank, err := rankOf(e.Arg, ctx)
		if err != nil {
			return nil, err
		}
		//
		return &ShapeType{rank}, nil
	case *IndexSlice:
		if err := expect(e.Slix, ctx, &ShapeType{e.Slice.FixedRank()}); err != nil {
			return nil, err
		} else if err := expect(e.Shape, ctx, &ShapeType{e.Slice.Rank()}); err != nil {
			return nil, err
		}
		//
		return &ShapeType{e.Slice.SliceRank()}, nil
	case *IndexFull:
		if err := expect(e.Slix, ctx, &ShapeType{e.Slice.FixedRank()}); err != nil {
			return nil, err
		} else if err := expect(e.Sl, ctx, &ShapeType{e.Slice.SliceRank()}); err != nil {
			return nil, err
		}
		//
		return &ShapeType{e.Slice.Rank()}, nil
	case *ToIndex:
		rank, err := rankOf(e.Shape, ctx)
		if err != nil {
			return nil, err
		} else if err := expect(e.Index, ctx, &ShapeType{rank}); err != nil {
			return nil, err
		}
		//
		return Int, nil
	case *FromIndex:
		rank, err := rankOf(e.Shape, ctx)
		if err != nil {
			return nil, err
		} else if err := expect(e.Index, ctx, Int); err != nil {
			return nil, err
		}
		//
		return &ShapeType{rank}, nil
	case *ToSlice:
		if err := expect(e.Shape, ctx, &ShapeType{e.Slice.Rank()}); err != nil {
			return nil, err
		} else if err := expect(e.Index, ctx, Int); err != nil {
			return nil, err
		}
		//
		return &ShapeType{e.Slice.FixedRank()}, nil
	case *ShapeSize:
		if _, err := rankOf(e.Arg, ctx); err != nil {
			return nil, err
		}
		//
		return Int, nil
	case *Intersect:
		return typeOfShapes(e.Lhs, e.Rhs, ctx)
	case *Union:
		return typeOfShapes(e.Lhs, e.Rhs, ctx)
	case *Cond:
		if err := expect(e.Condition, ctx, Bool); err != nil {
			return nil, err
		}
		//
		t, err := TypeOf(e.TrueBranch, ctx)
		if err != nil {
			return nil, err
		} else if err := expect(e.FalseBranch, ctx, t); err != nil {
			return nil, err
		}
		//
		return t, nil
	case *While:
		return typeOfWhile(e, ctx)
	case *PrimApp:
		if err := e.Fun.Check(); err != nil {
			return nil, err
		} else if err := expect(e.Arg, ctx, e.Fun.ArgType()); err != nil {
			return nil, err
		}
		//
		return e.Fun.ResultType(), nil
	case *Index:
		if err := expect(e.Index, ctx, &ShapeType{e.Array.Rank}); err != nil {
			return nil, err
		}
		//
		return e.Array.Element, nil
	case *LinearIndex:
		if err := expect(e.Index, ctx, Int); err != nil {
			return nil, err
		}
		//
		return e.Array.Element, nil
	case *Shape:
		return &ShapeType{e.Array.Rank}, nil
	case *Foreign:
		arg, err := TypeOf(e.Arg, ctx)
		if err != nil {
			return nil, err
		}
		// Fallback is closed, so is typed in the empty context.
		params, result, err := TypeOfFun(e.Fallback, nil)
		if err != nil {
			return nil, err
		} else if len(params) != 1 || !params[0].Equals(arg) {
			return nil, fmt.Errorf("foreign function %s expects one argument of type %s", e.Name, arg.String())
		}
		//
		return result, nil
	default:
		panic(fmt.Sprintf("unknown expression encountered (%T)", e))
	}
}

// TypeOfFun determines the parameter types and the result type of a function
// in a given context.
func TypeOfFun(f Fun, ctx []Type) ([]Type, Type, error) {
	var params []Type
	//
	for {
		switch t := f.(type) {
		case *Body:
			result, err := TypeOf(t.Body, ctx)
			return params, result, err
		case *Lam:
			params = append(params, t.Param)
			ctx = extend(ctx, t.Param)
			f = t.Body
		default:
			panic(fmt.Sprintf("unknown function encountered (%T)", f))
		}
	}
}

func typeOfWhile(e *While, ctx []Type) (Type, error) {
	seed, err := TypeOf(e.Seed, ctx)
	if err != nil {
		return nil, err
	}
	// Check predicate
	params, result, err := TypeOfFun(e.Predicate, ctx)
	if err != nil {
		return nil, err
	} else if len(params) != 1 || !params[0].Equals(seed) || !result.Equals(Bool) {
		return nil, fmt.Errorf("loop predicate must have type %s -> Bool", seed.String())
	}
	// Check step function
	params, result, err = TypeOfFun(e.Step, ctx)
	if err != nil {
		return nil, err
	} else if len(params) != 1 || !params[0].Equals(seed) || !result.Equals(seed) {
		return nil, fmt.Errorf("loop step must have type %s -> %s", seed.String(), seed.String())
	}
	//
	return seed, nil
}

func typeOfShapes(lhs Expr, rhs Expr, ctx []Type) (Type, error) {
	rank, err := rankOf(lhs, ctx)
	if err != nil {
		return nil, err
	} else if err := expect(rhs, ctx, &ShapeType{rank}); err != nil {
		return nil, err
	}
	//
	return &ShapeType{rank}, nil
}

func rankOf(e Expr, ctx []Type) (uint, error) {
	t, err := TypeOf(e, ctx)
	if err != nil {
		return 0, err
	} else if rank, ok := RankOf(t); ok {
		return rank, nil
	}
	//
	return 0, fmt.Errorf("expected shape, found %s", t.String())
}

func expect(e Expr, ctx []Type, expected Type) error {
	t, err := TypeOf(e, ctx)
	if err != nil {
		return err
	} else if !t.Equals(expected) {
		return fmt.Errorf("expected %s, found %s", expected.String(), t.String())
	}
	//
	return nil
}

// extend a context with a new innermost variable, without disturbing the
// original context.
func extend(ctx []Type, t Type) []Type {
	var nctx = make([]Type, len(ctx)+1)
	//
	copy(nctx, ctx)
	nctx[len(ctx)] = t
	//
	return nctx
}
