// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sam

import (
	"gopkg.in/check.v1"
)

func (s *S) TestParseCigarRoundTrip(c *check.C) {
	for _, cigar := range []string{"*", "10M", "5M2I3D4S2H6N2=3X", "1M1I1D1N1S1H1P1=1X"} {
		parsed, err := ParseCigar(cigar)
		c.Assert(err, check.Equals, nil)
		c.Check(parsed.String(), check.Equals, cigar)
	}
}

func (s *S) TestParseCigarErrors(c *check.C) {
	for _, cigar := range []string{"", "M", "10", "10M2", "10Q", "10M2I3D4S5H6N=X"} {
		_, err := ParseCigar(cigar)
		c.Check(err, check.Not(check.Equals), nil, check.Commentf("cigar %q", cigar))
	}
}

func (s *S) TestCigarWordRoundTrip(c *check.C) {
	for _, op := range []CigarOp{{Len: 0, Op: 'M'}, {Len: 100, Op: 'D'}, {Len: 5, Op: 'X'}} {
		word := EncodeCigarWord(op)
		c.Check(DecodeCigarWord(word), check.Equals, op)
	}
}

func (s *S) TestDecodeCigarWordUnknownCode(c *check.C) {
	// Low 4 bits 0xf has no defined operation: decodes as '?'.
	op := DecodeCigarWord(0xf)
	c.Check(op.Op, check.Equals, uint8('?'))
}

func (s *S) TestAnalyzeCigar(c *check.C) {
	cigar, err := ParseCigar("5M2I3D1S2H4N2=3X")
	c.Assert(err, check.Equals, nil)
	sum := AnalyzeCigar(cigar)
	c.Check(sum.Matches, check.Equals, 2)
	c.Check(sum.Mismatches, check.Equals, 3)
	c.Check(sum.MatchOrMismatch, check.Equals, 5)
	c.Check(sum.Insertions, check.Equals, 2)
	c.Check(sum.Deletions, check.Equals, 3)
	c.Check(sum.Skipped, check.Equals, 4)
	c.Check(sum.SoftClipped, check.Equals, 1)
	c.Check(sum.HardClipped, check.Equals, 2)
	c.Check(sum.ClippedBases, check.Equals, 3)
	c.Check(sum.AlignedRefBases, check.Equals, 17) // 5+3+4+2+3
	c.Check(sum.AlignedReadBases, check.Equals, 13) // 5+2+1+2+3
}

func (s *S) TestGetEndPositionAndOverlap(c *check.C) {
	cigar, err := ParseCigar("10M")
	c.Assert(err, check.Equals, nil)
	c.Check(GetEndPosition(100, cigar), check.Equals, 109)
	c.Check(OverlapsRegion(100, cigar, 105, 200), check.Equals, true)
	c.Check(OverlapsRegion(100, cigar, 110, 200), check.Equals, false)
	c.Check(OverlapsRegion(100, cigar, 1, 99), check.Equals, false)
}
