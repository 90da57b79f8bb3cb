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
	"unicode"

	"github.com/consensys/go-scalaropt/pkg/util/source"
)

// Parse a source file containing exactly one S-Expression.  A source map is
// also returned, which identifies the span of each S-Expression within the
// file.
func Parse(srcfile *source.File) (SExp, *source.Map[SExp], *source.SyntaxError) {
	var p = newParser(srcfile)
	//
	term, err := p.parse()
	//
	if err != nil {
		return nil, nil, err
	} else if term == nil {
		return nil, nil, p.error("unexpected end-of-file")
	} else if p.skipWhiteSpace(); p.index != len(p.text) {
		return nil, nil, p.error("unexpected remainder")
	}
	//
	return term, p.srcmap, nil
}

// ParseAll parses a source file containing zero or more S-Expressions.
func ParseAll(srcfile *source.File) ([]SExp, *source.Map[SExp], *source.SyntaxError) {
	var (
		p     = newParser(srcfile)
		terms []SExp
	)
	//
	for {
		term, err := p.parse()
		//
		if err != nil {
			return nil, nil, err
		} else if term == nil {
			return terms, p.srcmap, nil
		}
		//
		terms = append(terms, term)
	}
}

// ParseString is a convenience for parsing a single S-Expression from a
// string.
func ParseString(text string) (SExp, *source.SyntaxError) {
	term, _, err := Parse(source.NewSourceFile("", []byte(text)))
	return term, err
}

type parser struct {
	srcfile *source.File
	text    []rune
	index   int
	srcmap  *source.Map[SExp]
}

func newParser(srcfile *source.File) *parser {
	return &parser{srcfile, srcfile.Contents(), 0, source.NewSourceMap[SExp](srcfile)}
}

// parse the next S-Expression, returning nil at end-of-file.
func (p *parser) parse() (SExp, *source.SyntaxError) {
	var (
		term SExp
		err  *source.SyntaxError
	)
	//
	p.skipWhiteSpace()
	//
	if p.index == len(p.text) {
		return nil, nil
	}
	//
	start := p.index
	//
	switch c := p.text[p.index]; c {
	case ')', '}', ']':
		return nil, p.error("unexpected closing bracket")
	case '(':
		var elements []SExp
		elements, err = p.parseSequence(')')
		term = &List{elements}
	case '{':
		var elements []SExp
		elements, err = p.parseSequence('}')
		term = &Set{elements}
	case '[':
		var elements []SExp
		elements, err = p.parseSequence(']')
		term = &Array{elements}
	default:
		term = &Symbol{p.parseSymbol()}
	}
	//
	if err != nil {
		return nil, err
	}
	//
	p.srcmap.Put(term, source.NewSpan(start, p.index))
	//
	return term, nil
}

// parseSequence parses elements up to (and including) a given closing bracket,
// assuming the opening bracket has not yet been consumed.
func (p *parser) parseSequence(closing rune) ([]SExp, *source.SyntaxError) {
	var elements []SExp
	// Skip opening bracket
	p.index++
	//
	for {
		p.skipWhiteSpace()
		//
		if p.index == len(p.text) {
			return nil, p.error("unexpected end-of-file")
		} else if p.text[p.index] == closing {
			p.index++
			return elements, nil
		}
		//
		element, err := p.parse()
		if err != nil {
			return nil, err
		}
		//
		elements = append(elements, element)
	}
}

func (p *parser) parseSymbol() string {
	var start = p.index
	//
	for p.index < len(p.text) && !isDelimiter(p.text[p.index]) {
		p.index++
	}
	//
	return string(p.text[start:p.index])
}

// skipWhiteSpace skips over whitespace and comments (which run from ';' to the
// end of the line).
func (p *parser) skipWhiteSpace() {
	for p.index < len(p.text) {
		switch c := p.text[p.index]; {
		case c == ';':
			for p.index < len(p.text) && p.text[p.index] != '\n' {
				p.index++
			}
		case unicode.IsSpace(c):
			p.index++
		default:
			return
		}
	}
}

func (p *parser) error(msg string) *source.SyntaxError {
	var end = min(p.index+1, len(p.text))
	//
	return p.srcfile.SyntaxError(source.NewSpan(min(p.index, end), end), msg)
}
