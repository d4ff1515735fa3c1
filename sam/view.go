// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sam

import (
	"fmt"
	"strings"
)

// ExtractReferenceSequence walks a's CIGAR against ref (the full reference
// sequence a aligns to, 0-based) and returns the subsequence of ref that a
// spans: bases consumed by M/=/X are copied from ref, bases consumed by D
// are skipped over, bases consumed by N are represented as a run of 'N' of
// the matching length, and I/S/H/P operations contribute nothing (they do
// not consume reference bases). An out-of-bounds reference walk or a
// malformed CIGAR is an error.
func ExtractReferenceSequence(a Alignment, ref string) (string, error) {
	c, err := ParseCigar(a.Cigar)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	pos := a.Pos - 1
	for _, op := range c {
		switch op.Op {
		case 'M', '=', 'X':
			if pos+op.Len > len(ref) || pos < 0 {
				return "", fmt.Errorf("sam: cigar walk exceeds reference bounds at %d+%d (reference length %d)", pos, op.Len, len(ref))
			}
			b.WriteString(ref[pos : pos+op.Len])
			pos += op.Len
		case 'D':
			if pos+op.Len > len(ref) || pos < 0 {
				return "", fmt.Errorf("sam: cigar walk exceeds reference bounds at %d+%d (reference length %d)", pos, op.Len, len(ref))
			}
			pos += op.Len
		case 'N':
			b.WriteString(strings.Repeat("N", op.Len))
			pos += op.Len
		}
	}
	return b.String(), nil
}

// CreateAlignmentView renders a three-line textual alignment view of a
// against ref:
//
//	Ref:  <reference bases spanned by the alignment>
//	      <match markers>
//	Read: <read bases, with '-' for deleted or skipped positions>
//
// The middle row uses '|' where the read base equals the reference base
// and ' ' everywhere else (including insertions, clips and mismatches).
// It is indented by six spaces, the width of the "Ref:  "/"Read: "
// labels, so that all three rows line up.
func CreateAlignmentView(a Alignment, ref string) (string, error) {
	c, err := ParseCigar(a.Cigar)
	if err != nil {
		return "", err
	}

	var refRow, midRow, readRow strings.Builder
	refPos := a.Pos - 1
	readPos := 0
	seq := a.Seq

	readBase := func(i int) byte {
		if i < 0 || i >= len(seq) {
			return 'N'
		}
		return seq[i]
	}

	for _, op := range c {
		switch op.Op {
		case 'M', '=', 'X':
			for i := 0; i < op.Len; i++ {
				if refPos+i >= len(ref) {
					return "", fmt.Errorf("sam: cigar walk exceeds reference bounds at %d (reference length %d)", refPos+i, len(ref))
				}
				rb := ref[refPos+i]
				qb := readBase(readPos + i)
				refRow.WriteByte(rb)
				readRow.WriteByte(qb)
				if rb == qb {
					midRow.WriteByte('|')
				} else {
					midRow.WriteByte(' ')
				}
			}
			refPos += op.Len
			readPos += op.Len
		case 'I', 'S':
			for i := 0; i < op.Len; i++ {
				refRow.WriteByte('-')
				readRow.WriteByte(readBase(readPos + i))
				midRow.WriteByte(' ')
			}
			readPos += op.Len
		case 'D':
			for i := 0; i < op.Len; i++ {
				if refPos+i >= len(ref) {
					return "", fmt.Errorf("sam: cigar walk exceeds reference bounds at %d (reference length %d)", refPos+i, len(ref))
				}
				refRow.WriteByte(ref[refPos+i])
				readRow.WriteByte('-')
				midRow.WriteByte(' ')
			}
			refPos += op.Len
		case 'N':
			for i := 0; i < op.Len; i++ {
				refRow.WriteByte('N')
				readRow.WriteByte('-')
				midRow.WriteByte(' ')
			}
			refPos += op.Len
		case 'H', 'P':
			// Consume neither reference nor read bases; contribute nothing
			// to the view.
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Ref:  %s\n", refRow.String())
	fmt.Fprintf(&b, "      %s\n", midRow.String())
	fmt.Fprintf(&b, "Read: %s", readRow.String())
	return b.String(), nil
}
