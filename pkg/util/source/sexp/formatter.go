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
)

// FormattingRule determines how a list which does not fit on the current line
// is broken across lines.  Specifically, it returns the number of leading
// elements (including the head) to keep on the opening line, or false if the
// rule does not apply to the given list.
type FormattingRule interface {
	Split(*List) (uint, bool)
}

// LFormatter breaks a list with a given head so that every argument starts on
// its own line, thusly:
//
//	(head
//	   child1
//	   child2)
type LFormatter struct {
	Head string
}

// Split implementation for the FormattingRule interface.
func (p *LFormatter) Split(list *List) (uint, bool) {
	return 1, list.Head() == p.Head
}

// SFormatter is a variation on the LFormatter which keeps the first n
// arguments on the opening line, thusly (for n=1):
//
//	(head child1
//	   child2
//	   child3)
type SFormatter struct {
	Head string
	// Number of arguments to keep on the opening line.
	Keep uint
}

// Split implementation for the FormattingRule interface.
func (p *SFormatter) Split(list *List) (uint, bool) {
	return 1 + p.Keep, list.Head() == p.Head
}

// Formatter pretty prints S-Expressions so that, where possible, they fit
// within a given width.  Lists which do not fit are broken across lines
// according to the formatting rules, or otherwise after their head.
type Formatter struct {
	// Maximum desired width
	maxWidth uint
	// Indentation used for each nested level
	indent string
	// Rules to be used for formatting
	rules []FormattingRule
}

// NewFormatter constructs a new formatter which aims to fit its output within a
// given width.
func NewFormatter(width uint) *Formatter {
	return &Formatter{width, "   ", nil}
}

// Add a new formatting rule to this formatter.
func (p *Formatter) Add(rule FormattingRule) {
	p.rules = append(p.rules, rule)
}

// Format a given S-Expression using the rules embedded within this formatter.
// The result is terminated with a newline.
func (p *Formatter) Format(sexp SExp) string {
	var builder strings.Builder
	//
	p.format(sexp, 0, 0, &builder)
	builder.WriteString("\n")
	//
	return builder.String()
}

// format an S-Expression starting at a given column, with a given level of
// indentation for any subsequent lines.
func (p *Formatter) format(sexp SExp, column uint, level uint, out *strings.Builder) {
	var flat = sexp.String(true)
	// Check whether it fits as is
	list, ok := sexp.(*List)
	if !ok || column+uint(len(flat)) <= p.maxWidth || list.Len() <= 1 {
		out.WriteString(flat)
		return
	}
	// Determine how many elements to keep on opening line
	keep := p.split(list)
	//
	out.WriteString("(")
	column++
	//
	for i, e := range list.Elements {
		if uint(i) >= keep {
			// Start new line
			out.WriteString("\n")
			out.WriteString(strings.Repeat(p.indent, int(level+1)))
			column = uint(len(p.indent)) * (level + 1)
		} else if i != 0 {
			out.WriteString(" ")
			column++
		}
		//
		p.format(e, column, level+1, out)
		// Recompute column, since element may have spanned multiple lines
		text := out.String()
		column = uint(len(text) - 1 - strings.LastIndex(text, "\n"))
	}
	//
	out.WriteString(")")
}

func (p *Formatter) split(list *List) uint {
	for _, rule := range p.rules {
		if keep, ok := rule.Split(list); ok {
			return max(1, keep)
		}
	}
	// Default is to keep the head only.
	return 1
}
