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

// Fun represents a function of zero or more parameters, with one Lam layer
// per parameter.
type Fun interface {
	Tree
	// fun is a marker which prevents expressions from being used as
	// functions.
	fun()
}

// Body is the body of a function, where each enclosing Lam is accessible as a
// variable.
type Body struct {
	Body Expr
}

// Lam introduces a single parameter of a given type.
type Lam struct {
	Param Type
	Body  Fun
}

func (p *Body) fun() {}
func (p *Lam) fun()  {}

// NewBody constructs a function body.
func NewBody(body Expr) *Body {
	return &Body{body}
}

// NewLam constructs a function parameter.
func NewLam(param Type, body Fun) *Lam {
	return &Lam{param, body}
}

// NewFun constructs a function of one or more parameters around a given body.
func NewFun(body Expr, params ...Type) Fun {
	var f Fun = &Body{body}
	//
	for i := len(params) - 1; i >= 0; i-- {
		f = &Lam{params[i], f}
	}
	//
	return f
}

// Arity returns the number of parameters of a given function.
func Arity(f Fun) uint {
	var n uint
	//
	for {
		switch t := f.(type) {
		case *Lam:
			n++
			f = t.Body
		default:
			return n
		}
	}
}
