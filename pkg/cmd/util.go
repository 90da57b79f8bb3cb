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
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-scalaropt/pkg/ir/exp"
	"github.com/consensys/go-scalaropt/pkg/ir/simplify"
	"github.com/consensys/go-scalaropt/pkg/stats"
	"github.com/consensys/go-scalaropt/pkg/util/source"
	"github.com/consensys/go-scalaropt/pkg/util/source/sexp"
	"github.com/consensys/go-scalaropt/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer flag, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint64 gets an expected 64bit unsigned integer flag, or exits if an error
// arises.
func GetUint64(cmd *cobra.Command, flag string) uint64 {
	r, err := cmd.Flags().GetUint64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// configureLogging sets the log level according to the verbose flag.
func configureLogging(cmd *cobra.Command) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
}

// getSimplifier constructs a simplifier for the optimisation level given on
// the command line, along with the statistics sink it reports to.
func getSimplifier(cmd *cobra.Command) (*simplify.Simplifier, *stats.Sink) {
	var level = GetUint(cmd, "opt")
	//
	if level >= uint(len(simplify.OPTIMISATION_LEVELS)) {
		fmt.Printf("invalid optimisation level %d (max %d)\n", level, len(simplify.OPTIMISATION_LEVELS)-1)
		os.Exit(2)
	}
	//
	sink := stats.NewSink(GetFlag(cmd, "stats"))
	//
	return simplify.New(simplify.OPTIMISATION_LEVELS[level], sink), sink
}

// getFormatter constructs a formatter for printing trees which fits output to
// the width given on the command line or, failing that, the terminal width.
func getFormatter(cmd *cobra.Command) *sexp.Formatter {
	var width = GetUint(cmd, "width")
	//
	if width == 0 {
		width = termio.GetWidth()
	}
	//
	formatter := sexp.NewFormatter(width)
	formatter.Add(&sexp.SFormatter{Head: "let", Keep: 1})
	formatter.Add(&sexp.SFormatter{Head: "lam", Keep: 1})
	formatter.Add(&sexp.SFormatter{Head: "if", Keep: 1})
	formatter.Add(&sexp.LFormatter{Head: "while"})
	//
	return formatter
}

// ReadTreeFiles parses and type checks all trees in a given set of files,
// exiting if any errors arise.
func ReadTreeFiles(filenames []string) []exp.Tree {
	var (
		trees  []exp.Tree
		failed bool
	)
	//
	srcfiles, err := source.ReadFiles(filenames...)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	for _, srcfile := range srcfiles {
		ts, errs := exp.ParseFile(srcfile)
		//
		for i := range errs {
			printSyntaxError(&errs[i])
		}
		//
		for _, tree := range ts {
			if err := exp.Check(tree); err != nil {
				fmt.Printf("%s: %s\n", srcfile.Filename(), err.Error())
				//
				failed = true
			}
		}
		//
		failed = failed || len(errs) > 0
		trees = append(trees, ts...)
	}
	//
	if failed {
		os.Exit(1)
	}
	//
	return trees
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(err *source.SyntaxError) {
	span := err.Span()
	line := err.SourceFile().EnclosingLine(span)
	lineOffset := span.Start() - line.Start()
	lineLength := len([]rune(line.String()))
	// Calculate length (ensures don't overflow line)
	length := max(1, min(lineLength-lineOffset, span.Length()))
	// Print error + line number
	fmt.Printf("%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, err.Message())
	// Print separator line
	fmt.Println()
	// Print line
	fmt.Println(line.String())
	// Print indent (todo: account for tabs)
	fmt.Print(strings.Repeat(" ", max(0, lineOffset)))
	// Print highlight
	fmt.Println(strings.Repeat("^", length))
}
