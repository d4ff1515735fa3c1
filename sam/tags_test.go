// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sam

import (
	"gopkg.in/check.v1"
)

func (s *S) TestParseTagFieldRoundTrip(c *check.C) {
	for _, field := range []string{"NM:i:3", "MD:Z:10A5", "XA:A:x", "FI:f:1.5", "BQ:H:1A2B"} {
		key, tv, err := ParseTagField(field)
		c.Assert(err, check.Equals, nil)
		v, err := FormatTagValue(tv)
		c.Assert(err, check.Equals, nil)
		c.Check(key+":"+string(tv.Type)+":"+v, check.Equals, field)
	}
}

func (s *S) TestParseArrayTag(c *check.C) {
	_, tv, err := ParseTagField("XB:B:c,1,2,3")
	c.Assert(err, check.Equals, nil)
	c.Check(tv.SubType, check.Equals, uint8('c'))
	c.Check(tv.Value, check.DeepEquals, []int64{1, 2, 3})

	_, tv, err = ParseTagField("XF:B:f,1.5,2.5")
	c.Assert(err, check.Equals, nil)
	c.Check(tv.Value, check.DeepEquals, []float64{1.5, 2.5})
}

func (s *S) TestInferArrayType(c *check.C) {
	code, label := InferArrayType(nil)
	c.Check(code, check.Equals, uint8('i'))
	c.Check(label, check.Equals, "int32")

	code, label = InferArrayType([]interface{}{int64(100)})
	c.Check(code, check.Equals, uint8('c'))
	c.Check(label, check.Equals, "int8")

	code, label = InferArrayType([]interface{}{int64(200)})
	c.Check(code, check.Equals, uint8('C'))
	c.Check(label, check.Equals, "uint8")

	code, label = InferArrayType([]interface{}{int64(40000)})
	c.Check(code, check.Equals, uint8('S'))
	c.Check(label, check.Equals, "uint16")

	code, label = InferArrayType([]interface{}{1.5})
	c.Check(code, check.Equals, uint8('f'))
	c.Check(label, check.Equals, "float32")
}

func (s *S) TestFormatTagValueArrayAlwaysWidens(c *check.C) {
	// FormatTagValue's B-array emission always uses 'i'/'f' regardless of
	// how narrow InferArrayType would report the values fit.
	tv := TagValue{Type: 'B', SubType: 'c', Value: []int64{1, 2, 3}}
	v, err := FormatTagValue(tv)
	c.Assert(err, check.Equals, nil)
	c.Check(v, check.Equals, "i,1,2,3")
}

func (s *S) TestDecodeAuxBAMStopsOnUnknownType(c *check.C) {
	buf := []byte{
		'N', 'M', 'C', 5, // NM:C:5
		'X', 'X', '?', // unknown type byte: stop here
		'Z', 'Z', 'Z', 'o', 'o', 0,
	}
	tags := DecodeAuxBAM(buf)
	c.Check(len(tags), check.Equals, 1)
	c.Check(tags["NM"].Value, check.Equals, int64(5))
	_, ok := tags["ZZ"]
	c.Check(ok, check.Equals, false)
}

func (s *S) TestDecodeAuxBAMTypes(c *check.C) {
	buf := []byte{
		'A', 'A', 'A', 'x',
		'Z', 'Z', 'Z', 'h', 'i', 0,
	}
	tags := DecodeAuxBAM(buf)
	c.Check(tags["AA"].Value, check.Equals, "x")
	c.Check(tags["ZZ"].Value, check.Equals, "hi")
}
