// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sam

import (
	"gopkg.in/check.v1"
)

func (s *S) TestFingerprintStableAndSensitive(c *check.C) {
	a := Alignment{QName: "r1", RName: "chr1", Pos: 10, Flag: 99, Cigar: "10M", Seq: "ACGTACGTAC", Qual: "IIIIIIIIII"}
	b := a
	c.Check(a.Fingerprint(), check.Equals, b.Fingerprint())

	b.Pos = 11
	c.Check(a.Fingerprint(), check.Not(check.Equals), b.Fingerprint())

	d := a
	d.Tags = map[string]TagValue{"NM": {Type: 'i', Value: int64(1)}}
	c.Check(a.Fingerprint(), check.Not(check.Equals), d.Fingerprint())
}
