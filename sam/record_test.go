// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sam

import (
	"gopkg.in/check.v1"
)

func (s *S) TestParseAlignmentBasic(c *check.C) {
	line := "r001\t99\tchr1\t7\t30\t8M2I4M1D3M\t=\t37\t39\tTTAGATAAAGGATACTG\t*\tNM:i:1\tMD:Z:16"
	a, err := ParseAlignment(line)
	c.Assert(err, check.Equals, nil)
	c.Check(a.QName, check.Equals, "r001")
	c.Check(a.Flag, check.Equals, uint16(99))
	c.Check(a.RName, check.Equals, "chr1")
	c.Check(a.Pos, check.Equals, 7)
	c.Check(a.MapQ, check.Equals, uint8(30))
	c.Check(a.Cigar, check.Equals, "8M2I4M1D3M")
	c.Check(a.RNext, check.Equals, "=")
	c.Check(a.PNext, check.Equals, 37)
	c.Check(a.TLen, check.Equals, 39)
	c.Check(a.Seq, check.Equals, "TTAGATAAAGGATACTG")
	c.Check(a.Qual, check.Equals, "*")
	c.Assert(len(a.Tags), check.Equals, 2)
	c.Check(a.Tags["NM"].Value, check.Equals, int64(1))
	c.Check(a.Tags["MD"].Value, check.Equals, "16")
}

func (s *S) TestParseAlignmentTooFewFields(c *check.C) {
	_, err := ParseAlignment("r001\t99\tchr1")
	c.Check(err, check.Not(check.Equals), nil)
}

func (s *S) TestAlignmentStringRoundTrip(c *check.C) {
	line := "r001\t99\tchr1\t7\t30\t8M2I4M1D3M\t=\t37\t39\tTTAGATAAAGGATACTG\t*\tMD:Z:16\tNM:i:1"
	a, err := ParseAlignment(line)
	c.Assert(err, check.Equals, nil)
	c.Check(a.String(), check.Equals, line)
}

func (s *S) TestParseTextRoundTrip(c *check.C) {
	text := "@HD\tVN:1.6\n@SQ\tLN:100\tSN:chr1\nr001\t99\tchr1\t7\t30\t8M\t=\t37\t39\tACGTACGT\t*"
	f, err := ParseText(text)
	c.Assert(err, check.Equals, nil)
	c.Check(f.Header.HD["VN"], check.Equals, "1.6")
	c.Assert(len(f.Alignments), check.Equals, 1)
	c.Check(f.Alignments[0].QName, check.Equals, "r001")
	c.Check(WriteText(f), check.Equals, text)
}

func (s *S) TestParseTextDiscardsBlankLines(c *check.C) {
	text := "@HD\tVN:1.6\n\nr001\t4\t*\t0\t0\t*\t*\t0\t0\t*\t*\n"
	f, err := ParseText(text)
	c.Assert(err, check.Equals, nil)
	c.Assert(len(f.Alignments), check.Equals, 1)
}
