// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sam implements the data model, text codec and query helpers for
// the SAM sequence alignment format, following the conventions of the SAM
// specification.
package sam

import (
	"strings"

	"github.com/kortschak/utter"
)

// ParseText parses a complete SAM text document: header lines followed by
// alignment lines. Lines are split on "\r\n" or "\n"; blank lines are
// discarded. A line beginning with "@" is a header line; all others are
// alignment lines.
func ParseText(text string) (SamFile, error) {
	rawLines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var headerLines, alignLines []string
	for _, l := range rawLines {
		if l == "" {
			continue
		}
		if l[0] == '@' {
			headerLines = append(headerLines, l)
		} else {
			alignLines = append(alignLines, l)
		}
	}

	h, err := ParseHeader(headerLines)
	if err != nil {
		return SamFile{}, err
	}

	f := SamFile{Header: h}
	if len(alignLines) > 0 {
		f.Alignments = make([]Alignment, 0, len(alignLines))
	}
	for _, l := range alignLines {
		a, err := ParseAlignment(l)
		if err != nil {
			return SamFile{}, err
		}
		f.Alignments = append(f.Alignments, a)
	}
	return f, nil
}

// ParseHeaderText parses the "@"-prefixed header text block of a SAM or
// BAM file (no alignment lines). Lines are split on "\r\n" or "\n"; blank
// lines are discarded.
func ParseHeaderText(text string) (Header, error) {
	rawLines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	var headerLines []string
	for _, l := range rawLines {
		if l != "" {
			headerLines = append(headerLines, l)
		}
	}
	return ParseHeader(headerLines)
}

// WriteText renders f back to SAM text: header lines followed by alignment
// lines, joined by "\n" with no trailing newline.
func WriteText(f SamFile) string {
	var lines []string
	if headerText := f.Header.String(); headerText != "" {
		lines = append(lines, strings.Split(strings.TrimSuffix(headerText, "\n"), "\n")...)
	}
	for _, a := range f.Alignments {
		lines = append(lines, a.String())
	}
	return strings.Join(lines, "\n")
}

// Dump renders v using a verbose, field-labelled representation, for use
// in diagnostic output and test failure messages.
func Dump(v interface{}) string {
	return utter.Sdump(v)
}
