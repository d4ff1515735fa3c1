// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sam

import (
	"gopkg.in/check.v1"
)

func (s *S) TestParseHeaderBasic(c *check.C) {
	lines := []string{
		"@HD\tVN:1.6\tSO:coordinate",
		"@SQ\tSN:chr1\tLN:248956422",
		"@SQ\tSN:chr2\tLN:242193529",
		"@RG\tID:rg1\tSM:sample1",
		"@PG\tID:bwa\tPN:bwa",
		"@CO\tfree text comment",
	}
	h, err := ParseHeader(lines)
	c.Assert(err, check.Equals, nil)
	c.Check(h.HD["VN"], check.Equals, "1.6")
	c.Check(h.HD["SO"], check.Equals, "coordinate")
	c.Assert(len(h.SQ), check.Equals, 2)
	c.Check(h.SQ[0]["SN"], check.Equals, "chr1")
	c.Check(h.SQ[1]["LN"], check.Equals, "242193529")
	c.Assert(len(h.RG), check.Equals, 1)
	c.Check(h.RG[0]["ID"], check.Equals, "rg1")
	c.Assert(len(h.PG), check.Equals, 1)
	c.Check(h.PG[0]["PN"], check.Equals, "bwa")
	c.Assert(len(h.CO), check.Equals, 1)
	c.Check(h.CO[0], check.Equals, "free text comment")
}

func (s *S) TestParseHeaderEmptyHD(c *check.C) {
	h, err := ParseHeader([]string{"@HD"})
	c.Assert(err, check.Equals, nil)
	c.Check(h.HD, check.NotNil)
	c.Check(len(h.HD), check.Equals, 0)
}

func (s *S) TestParseHeaderMissingLN(c *check.C) {
	h, err := ParseHeader([]string{"@SQ\tSN:chr1"})
	c.Assert(err, check.Equals, nil)
	c.Assert(len(h.SQ), check.Equals, 1)
	c.Check(h.SQ[0]["SN"], check.Equals, "chr1")
	_, ok := h.SQ[0]["LN"]
	c.Check(ok, check.Equals, false)
}

func (s *S) TestParseHeaderUnknownTagIgnored(c *check.C) {
	h, err := ParseHeader([]string{"@ZZ\tfoo:bar", "@HD\tVN:1.6"})
	c.Assert(err, check.Equals, nil)
	c.Check(h.HD["VN"], check.Equals, "1.6")
}

func (s *S) TestParseHeaderCOWithoutTab(c *check.C) {
	h, err := ParseHeader([]string{"@CO"})
	c.Assert(err, check.Equals, nil)
	c.Assert(len(h.CO), check.Equals, 1)
	c.Check(h.CO[0], check.Equals, "")
}

func (s *S) TestHeaderStringOrder(c *check.C) {
	h := Header{
		HD: map[string]string{"VN": "1.6"},
		SQ: []map[string]string{{"SN": "chr1", "LN": "100"}},
		RG: []map[string]string{{"ID": "rg1"}},
		PG: []map[string]string{{"ID": "bwa"}},
		CO: []string{"a comment"},
	}
	text := h.String()
	expect := "@HD\tVN:1.6\n@SQ\tLN:100\tSN:chr1\n@RG\tID:rg1\n@PG\tID:bwa\n@CO\ta comment\n"
	c.Check(text, check.Equals, expect)
}
