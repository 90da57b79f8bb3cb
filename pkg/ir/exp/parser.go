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
	"strconv"
	"strings"

	"github.com/consensys/go-scalaropt/pkg/util/source"
	"github.com/consensys/go-scalaropt/pkg/util/source/sexp"
)

// ParseExpr parses an expression from a given string.  This is primarily
// useful for testing.
func ParseExpr(text string) (Expr, []source.SyntaxError) {
	tree, errs := ParseTree(text)
	//
	if len(errs) > 0 {
		return nil, errs
	} else if e, ok := tree.(Expr); ok {
		return e, nil
	}
	//
	return nil, []source.SyntaxError{*source.NewSourceFile("", []byte(text)).SyntaxError(
		source.NewSpan(0, len(text)), "expected expression")}
}

// ParseFun parses a function from a given string.
func ParseFun(text string) (Fun, []source.SyntaxError) {
	var (
		srcfile        = source.NewSourceFile("", []byte(text))
		s, srcmap, err = sexp.Parse(srcfile)
	)
	//
	if err != nil {
		return nil, []source.SyntaxError{*err}
	}
	//
	f, err := (&translator{srcmap}).fun(s)
	if err != nil {
		return nil, []source.SyntaxError{*err}
	}
	//
	return f, nil
}

// ParseTree parses either an expression or a function from a given string.
// Functions are distinguished by a leading "lam".
func ParseTree(text string) (Tree, []source.SyntaxError) {
	trees, errs := ParseFile(source.NewSourceFile("", []byte(text)))
	//
	if len(errs) > 0 {
		return nil, errs
	} else if len(trees) != 1 {
		return nil, []source.SyntaxError{*source.NewSourceFile("", []byte(text)).SyntaxError(
			source.NewSpan(0, len(text)), "expected exactly one tree")}
	}
	//
	return trees[0], nil
}

// ParseFile parses zero or more trees (i.e. expressions or functions) from a
// given source file.
func ParseFile(srcfile *source.File) ([]Tree, []source.SyntaxError) {
	var (
		trees  []Tree
		errors []source.SyntaxError
	)
	//
	terms, srcmap, err := sexp.ParseAll(srcfile)
	if err != nil {
		return nil, []source.SyntaxError{*err}
	}
	//
	p := &translator{srcmap}
	//
	for _, term := range terms {
		var (
			tree Tree
			err  *source.SyntaxError
		)
		//
		if l := term.AsList(); l != nil && l.Head() == "lam" {
			tree, err = p.fun(term)
		} else {
			tree, err = p.expr(term)
		}
		//
		if err != nil {
			errors = append(errors, *err)
		} else {
			trees = append(trees, tree)
		}
	}
	//
	return trees, errors
}

// ParseType parses a type from a given string.
func ParseType(text string) (Type, []source.SyntaxError) {
	var (
		srcfile        = source.NewSourceFile("", []byte(text))
		s, srcmap, err = sexp.Parse(srcfile)
	)
	//
	if err != nil {
		return nil, []source.SyntaxError{*err}
	}
	//
	t, err := (&translator{srcmap}).typeOf(s)
	if err != nil {
		return nil, []source.SyntaxError{*err}
	}
	//
	return t, nil
}

// ============================================================================
// Translator
// ============================================================================

// unaryNodes maps the names of shape operators with one argument onto their
// constructors.
var unaryNodes = map[string]func(Expr) Expr{
	"head":      func(e Expr) Expr { return &IndexHead{e} },
	"tail":      func(e Expr) Expr { return &IndexTail{e} },
	"transpose": func(e Expr) Expr { return &IndexTrans{e} },
	"size":      func(e Expr) Expr { return &ShapeSize{e} },
}

// binaryNodes maps the names of operators with two arguments onto their
// constructors.
var binaryNodes = map[string]func(Expr, Expr) Expr{
	"let":        func(l, r Expr) Expr { return &Let{l, r} },
	":.":         func(l, r Expr) Expr { return &IndexCons{l, r} },
	"to-index":   func(l, r Expr) Expr { return &ToIndex{l, r} },
	"from-index": func(l, r Expr) Expr { return &FromIndex{l, r} },
	"intersect":  func(l, r Expr) Expr { return &Intersect{l, r} },
	"union":      func(l, r Expr) Expr { return &Union{l, r} },
}

// sliceNodes maps the names of slice operators onto their constructors.
var sliceNodes = map[string]func(SliceIndex, Expr, Expr) Expr{
	"slice":    func(s SliceIndex, l, r Expr) Expr { return &IndexSlice{s, l, r} },
	"full":     func(s SliceIndex, l, r Expr) Expr { return &IndexFull{s, l, r} },
	"to-slice": func(s SliceIndex, l, r Expr) Expr { return &ToSlice{s, l, r} },
}

type translator struct {
	srcmap *source.Map[sexp.SExp]
}

func (p *translator) fun(s sexp.SExp) (Fun, *source.SyntaxError) {
	if l := s.AsList(); l != nil && l.Head() == "lam" {
		if l.Len() != 3 {
			return nil, p.srcmap.SyntaxError(s, "malformed lambda")
		}
		//
		param, err := p.typeOf(l.Get(1))
		if err != nil {
			return nil, err
		}
		//
		body, err := p.fun(l.Get(2))
		if err != nil {
			return nil, err
		}
		//
		return &Lam{param, body}, nil
	}
	//
	body, err := p.expr(s)
	if err != nil {
		return nil, err
	}
	//
	return &Body{body}, nil
}

func (p *translator) expr(s sexp.SExp) (Expr, *source.SyntaxError) {
	switch s := s.(type) {
	case *sexp.Symbol:
		return p.symbol(s)
	case *sexp.Set:
		v, err := p.value(s)
		if err != nil {
			return nil, err
		}
		//
		return &Const{v}, nil
	case *sexp.List:
		return p.list(s)
	}
	//
	return nil, p.srcmap.SyntaxError(s, "unexpected term")
}

func (p *translator) symbol(s *sexp.Symbol) (Expr, *source.SyntaxError) {
	switch {
	case s.Value == "Z":
		return &IndexNil{}, nil
	case strings.HasPrefix(s.Value, "#"):
		index, err := strconv.ParseUint(s.Value[1:], 10, 64)
		if err != nil {
			return nil, p.srcmap.SyntaxError(s, "invalid variable")
		}
		//
		return &Var{uint(index)}, nil
	}
	//
	v, err := p.value(s)
	if err != nil {
		return nil, err
	}
	//
	return &Const{v}, nil
}

//nolint:gocyclo
func (p *translator) list(l *sexp.List) (Expr, *source.SyntaxError) {
	var (
		head = l.Head()
		args = l.Elements
	)
	//
	if head == "" {
		return nil, p.srcmap.SyntaxError(l, "invalid list")
	} else if len(args) > 0 {
		args = args[1:]
	}
	//
	if ctor, ok := unaryNodes[head]; ok {
		exprs, err := p.exprs(l, args, 1)
		if err != nil {
			return nil, err
		}
		//
		return ctor(exprs[0]), nil
	} else if ctor, ok := binaryNodes[head]; ok {
		exprs, err := p.exprs(l, args, 2)
		if err != nil {
			return nil, err
		}
		//
		return ctor(exprs[0], exprs[1]), nil
	} else if ctor, ok := sliceNodes[head]; ok {
		if len(args) != 3 {
			return nil, p.srcmap.SyntaxError(l, "incorrect number of arguments")
		}
		//
		slice, err := p.slice(args[0])
		if err != nil {
			return nil, err
		}
		//
		exprs, err := p.exprs(l, args[1:], 2)
		if err != nil {
			return nil, err
		}
		//
		return ctor(slice, exprs[0], exprs[1]), nil
	}
	//
	switch head {
	case "tuple":
		exprs, err := p.exprs(l, args, uint(len(args)))
		if err != nil {
			return nil, err
		}
		//
		return &Tuple{exprs}, nil
	case "prj":
		if len(args) != 2 {
			return nil, p.srcmap.SyntaxError(l, "incorrect number of arguments")
		}
		//
		index, err := p.natural(args[0])
		if err != nil {
			return nil, err
		}
		//
		arg, err := p.expr(args[1])
		if err != nil {
			return nil, err
		}
		//
		return &Prj{index, arg}, nil
	case "if":
		exprs, err := p.exprs(l, args, 3)
		if err != nil {
			return nil, err
		}
		//
		return &Cond{exprs[0], exprs[1], exprs[2]}, nil
	case "while":
		return p.while(l, args)
	case "index", "linear-index":
		if len(args) != 2 {
			return nil, p.srcmap.SyntaxError(l, "incorrect number of arguments")
		}
		//
		arr, err := p.array(args[0])
		if err != nil {
			return nil, err
		}
		//
		index, err := p.expr(args[1])
		if err != nil {
			return nil, err
		} else if head == "index" {
			return &Index{arr, index}, nil
		}
		//
		return &LinearIndex{arr, index}, nil
	case "shape-of":
		if len(args) != 1 {
			return nil, p.srcmap.SyntaxError(l, "incorrect number of arguments")
		}
		//
		arr, err := p.array(args[0])
		if err != nil {
			return nil, err
		}
		//
		return &Shape{arr}, nil
	case "foreign":
		return p.foreign(l, args)
	case "shape":
		v, err := p.value(l)
		if err != nil {
			return nil, err
		}
		//
		return &Const{v}, nil
	}
	// Primitive constants
	if tag, ok := PrimConstFromString(head); ok {
		if len(args) != 1 {
			return nil, p.srcmap.SyntaxError(l, "incorrect number of arguments")
		}
		//
		t, err := p.scalarType(args[0])
		if err != nil {
			return nil, err
		}
		//
		return &PrimConst{tag, t}, nil
	}
	// Primitive operators
	return p.primApp(l, head, args)
}

func (p *translator) primApp(l *sexp.List, head string, args []sexp.SExp) (Expr, *source.SyntaxError) {
	var (
		name, typeName, _ = strings.Cut(head, ".")
		fun               = PrimFun{Type: IntType}
	)
	//
	op, ok := OpFromString(name)
	if !ok {
		return nil, p.srcmap.SyntaxError(l, fmt.Sprintf("unknown operator \"%s\"", head))
	} else if typeName != "" {
		t, err := p.scalarType(sexp.NewSymbol(typeName))
		if err != nil {
			return nil, p.srcmap.SyntaxError(l, fmt.Sprintf("unknown type \"%s\"", typeName))
		}
		//
		fun.Type = t
	} else if op == AndOp || op == OrOp || op == NotOp {
		fun.Type = BoolType
	}
	//
	fun.Op = op
	//
	if len(args) == 0 || len(args) > int(fun.Arity()) {
		return nil, p.srcmap.SyntaxError(l, "incorrect number of arguments")
	}
	//
	exprs, err := p.exprs(l, args, uint(len(args)))
	if err != nil {
		return nil, err
	}
	//
	return NewPrimApp(fun, exprs...), nil
}

func (p *translator) while(l *sexp.List, args []sexp.SExp) (Expr, *source.SyntaxError) {
	if len(args) != 3 {
		return nil, p.srcmap.SyntaxError(l, "incorrect number of arguments")
	}
	//
	pred, err := p.fun(args[0])
	if err != nil {
		return nil, err
	}
	//
	step, err := p.fun(args[1])
	if err != nil {
		return nil, err
	}
	//
	seed, err := p.expr(args[2])
	if err != nil {
		return nil, err
	}
	//
	return &While{pred, step, seed}, nil
}

func (p *translator) foreign(l *sexp.List, args []sexp.SExp) (Expr, *source.SyntaxError) {
	if len(args) != 3 || args[0].AsSymbol() == nil {
		return nil, p.srcmap.SyntaxError(l, "malformed foreign")
	}
	//
	fallback, err := p.fun(args[1])
	if err != nil {
		return nil, err
	}
	//
	arg, err := p.expr(args[2])
	if err != nil {
		return nil, err
	}
	//
	return &Foreign{args[0].AsSymbol().Value, fallback, arg}, nil
}

func (p *translator) exprs(l *sexp.List, args []sexp.SExp, n uint) ([]Expr, *source.SyntaxError) {
	if uint(len(args)) != n {
		return nil, p.srcmap.SyntaxError(l, "incorrect number of arguments")
	}
	//
	exprs := make([]Expr, n)
	//
	for i, arg := range args {
		e, err := p.expr(arg)
		if err != nil {
			return nil, err
		}
		//
		exprs[i] = e
	}
	//
	return exprs, nil
}

func (p *translator) array(s sexp.SExp) (ArrayRef, *source.SyntaxError) {
	var l = s.AsList()
	//
	if l == nil || l.Head() != "array" || l.Len() != 4 || l.Get(1).AsSymbol() == nil {
		return ArrayRef{}, p.srcmap.SyntaxError(s, "malformed array reference")
	}
	//
	rank, err := p.natural(l.Get(2))
	if err != nil {
		return ArrayRef{}, err
	}
	//
	elem, err := p.typeOf(l.Get(3))
	if err != nil {
		return ArrayRef{}, err
	}
	//
	return ArrayRef{l.Get(1).AsSymbol().Value, rank, elem}, nil
}

func (p *translator) slice(s sexp.SExp) (SliceIndex, *source.SyntaxError) {
	var arr = s.AsArray()
	//
	if arr == nil {
		return nil, p.srcmap.SyntaxError(s, "expected slice index")
	}
	//
	slice := make(SliceIndex, arr.Len())
	//
	for i, e := range arr.Elements {
		switch sym := e.AsSymbol(); {
		case sym != nil && sym.Value == "all":
			slice[i] = All
		case sym != nil && sym.Value == "fixed":
			slice[i] = Fixed
		default:
			return nil, p.srcmap.SyntaxError(e, "expected \"all\" or \"fixed\"")
		}
	}
	//
	return slice, nil
}

// ============================================================================
// Values
// ============================================================================

func (p *translator) value(s sexp.SExp) (Value, *source.SyntaxError) {
	switch s := s.(type) {
	case *sexp.Set:
		elements := make([]Value, s.Len())
		//
		for i, e := range s.Elements {
			v, err := p.value(e)
			if err != nil {
				return nil, err
			}
			//
			elements[i] = v
		}
		//
		return &TupleValue{elements}, nil
	case *sexp.List:
		if s.Head() != "shape" {
			break
		}
		//
		extents := make([]int64, s.Len()-1)
		//
		for i, e := range s.Elements[1:] {
			sym := e.AsSymbol()
			if sym == nil {
				return nil, p.srcmap.SyntaxError(e, "invalid extent")
			}
			//
			extent, err := strconv.ParseInt(sym.Value, 10, 64)
			if err != nil {
				return nil, p.srcmap.SyntaxError(e, "invalid extent")
			}
			//
			extents[i] = extent
		}
		//
		return &ShapeValue{extents}, nil
	case *sexp.Symbol:
		if v, ok := parseScalar(s.Value); ok {
			return v, nil
		}
		//
		return nil, p.srcmap.SyntaxError(s, fmt.Sprintf("unknown symbol \"%s\"", s.Value))
	}
	//
	return nil, p.srcmap.SyntaxError(s, "invalid constant")
}

func parseScalar(text string) (Value, bool) {
	switch text {
	case "true":
		return BoolValue(true), true
	case "false":
		return BoolValue(false), true
	case "nan":
		return FloatValue(math.NaN()), true
	case "+inf":
		return FloatValue(math.Inf(1)), true
	case "-inf":
		return FloatValue(math.Inf(-1)), true
	}
	//
	if digits, ok := strings.CutPrefix(text, "fr:"); ok {
		var v FieldValue
		//
		if _, err := v.Element.SetString(digits); err != nil {
			return nil, false
		}
		//
		return v, true
	} else if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return IntValue(i), true
	} else if !isNumeric(text) {
		return nil, false
	} else if f, err := strconv.ParseFloat(text, 64); err == nil {
		return FloatValue(f), true
	}
	//
	return nil, false
}

// isNumeric checks whether a symbol begins like a number (i.e. with a digit,
// optionally preceded by a sign).
func isNumeric(text string) bool {
	text = strings.TrimLeft(text, "+-")
	return len(text) > 0 && text[0] >= '0' && text[0] <= '9'
}

func (p *translator) natural(s sexp.SExp) (uint, *source.SyntaxError) {
	if sym := s.AsSymbol(); sym != nil {
		if n, err := strconv.ParseUint(sym.Value, 10, 64); err == nil {
			return uint(n), nil
		}
	}
	//
	return 0, p.srcmap.SyntaxError(s, "expected unsigned integer")
}

// ============================================================================
// Types
// ============================================================================

func (p *translator) typeOf(s sexp.SExp) (Type, *source.SyntaxError) {
	if l := s.AsList(); l != nil {
		switch l.Head() {
		case "Tuple":
			elements := make([]Type, l.Len()-1)
			//
			for i, e := range l.Elements[1:] {
				t, err := p.typeOf(e)
				if err != nil {
					return nil, err
				}
				//
				elements[i] = t
			}
			//
			return &TupleType{elements}, nil
		case "Shape":
			if l.Len() != 2 {
				return nil, p.srcmap.SyntaxError(s, "malformed shape type")
			}
			//
			rank, err := p.natural(l.Get(1))
			if err != nil {
				return nil, err
			}
			//
			return &ShapeType{rank}, nil
		}
		//
		return nil, p.srcmap.SyntaxError(s, "unknown type")
	}
	//
	return p.scalarType(s)
}

func (p *translator) scalarType(s sexp.SExp) (ScalarType, *source.SyntaxError) {
	if sym := s.AsSymbol(); sym != nil {
		for _, t := range []ScalarType{IntType, BoolType, FloatType, FieldType} {
			if t.String() == sym.Value {
				return t, nil
			}
		}
	}
	//
	return 0, p.srcmap.SyntaxError(s, "unknown type")
}
