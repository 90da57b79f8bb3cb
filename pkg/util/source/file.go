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
package source

import (
	"fmt"
	"os"
)

// File represents a named source of text, which is typically (though not
// necessarily) stored on disk.
type File struct {
	// Name of this source file.
	filename string
	// Contents of this file, as runes for easier parsing.
	contents []rune
}

// NewSourceFile constructs a new source file from a given byte array.
func NewSourceFile(filename string, bytes []byte) *File {
	return &File{filename, []rune(string(bytes))}
}

// ReadFiles reads a given set of source files from disk, or produces an error.
func ReadFiles(filenames ...string) ([]*File, error) {
	var files = make([]*File, len(filenames))
	//
	for i, n := range filenames {
		bytes, err := os.ReadFile(n)
		if err != nil {
			return nil, err
		}
		//
		files[i] = NewSourceFile(n, bytes)
	}
	//
	return files, nil
}

// Filename returns the filename associated with this source file.
func (s *File) Filename() string {
	return s.filename
}

// Contents returns the contents of this source file.
func (s *File) Contents() []rune {
	return s.contents
}

// SyntaxError constructs a syntax error over a given span of this file.
func (s *File) SyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{s, span, msg}
}

// EnclosingLine determines the line enclosing the start of a given span.  If
// the span starts beyond the end of the file, the last line is returned.
func (s *File) EnclosingLine(span Span) Line {
	var (
		start  = 0
		number = 1
	)
	//
	for i, c := range s.contents {
		if i == span.start {
			break
		} else if c == '\n' {
			number++
			start = i + 1
		}
	}
	// Find end of line
	end := start
	for end < len(s.contents) && s.contents[end] != '\n' {
		end++
	}
	//
	return Line{s.contents, Span{start, end}, number}
}

// Line identifies a physical line within a source file.
type Line struct {
	text []rune
	// Span of this line within the text
	span Span
	// Line number (counting from 1)
	number int
}

// Number returns the line number of this line, where the first line has
// number 1.
func (p Line) Number() int {
	return p.number
}

// Start returns the offset of this line within the original text.
func (p Line) Start() int {
	return p.span.start
}

func (p Line) String() string {
	return string(p.text[p.span.start:p.span.end])
}

// SyntaxError is a structured error which identifies the span of text within a
// source file where an error arose.
type SyntaxError struct {
	srcfile *File
	span    Span
	msg     string
}

// SourceFile returns the source file in which this error arose.
func (p *SyntaxError) SourceFile() *File {
	return p.srcfile
}

// Span returns the span of text covered by this error.
func (p *SyntaxError) Span() Span {
	return p.span
}

// Message returns the message to be reported.
func (p *SyntaxError) Message() string {
	return p.msg
}

// Error implements the error interface.
func (p *SyntaxError) Error() string {
	line := p.srcfile.EnclosingLine(p.span)
	return fmt.Sprintf("%s:%d: %s", p.srcfile.filename, line.Number(), p.msg)
}
