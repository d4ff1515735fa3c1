// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sam

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TagValue is a typed auxiliary field value. Type is one of the BAM/SAM
// type codes 'A', 'c', 'C', 's', 'S', 'i', 'I', 'f', 'Z', 'H' or 'B'.
// Value holds:
//
//	A            string of length 1
//	c C s S i I  int64
//	f            float64
//	Z            string
//	H            string of hex digits, verbatim (not decoded to bytes)
//	B            []int64 or []float64, selected by SubType
//
// SubType is only meaningful when Type == 'B' and holds the element type
// code of the array ('c','C','s','S','i','I' or 'f').
type TagValue struct {
	Type    byte
	SubType byte
	Value   interface{}
}

// integer type codes, narrowest to widest within a signedness class.
const (
	tagInt8   = 'c'
	tagUint8  = 'C'
	tagInt16  = 's'
	tagUint16 = 'S'
	tagInt32  = 'i'
	tagUint32 = 'I'
)

func isIntType(t byte) bool {
	switch t {
	case tagInt8, tagUint8, tagInt16, tagUint16, tagInt32, tagUint32:
		return true
	}
	return false
}

// ParseTagValue decodes the text representation of a single auxiliary
// field value, given its one-character type code. It is the value-only
// half of tag parsing; ParseTagField additionally attaches the two-byte
// tag key.
func ParseTagValue(typ byte, text string) (interface{}, error) {
	switch typ {
	case 'A':
		if len(text) != 1 {
			return nil, fmt.Errorf("sam: invalid A tag value %q", text)
		}
		return text, nil
	case tagInt8, tagUint8, tagInt16, tagUint16, tagInt32, tagUint32:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("sam: invalid %c tag value %q: %v", typ, text, err)
		}
		return v, nil
	case 'f':
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("sam: invalid f tag value %q: %v", text, err)
		}
		return v, nil
	case 'Z':
		return text, nil
	case 'H':
		return text, nil
	case 'B':
		return parseArrayTagValue(text)
	}
	return nil, fmt.Errorf("sam: unknown tag type %q", typ)
}

func parseArrayTagValue(text string) (interface{}, error) {
	if len(text) < 2 || text[1] != ',' {
		return nil, fmt.Errorf("sam: malformed B tag value %q", text)
	}
	sub := text[0]
	fields := strings.Split(text[2:], ",")
	if len(fields) == 1 && fields[0] == "" {
		fields = nil
	}
	if sub == 'f' {
		fs := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("sam: invalid B:f element %q: %v", f, err)
			}
			fs[i] = v
		}
		return fs, nil
	}
	if !isIntType(sub) {
		return nil, fmt.Errorf("sam: unknown B tag sub-type %q", sub)
	}
	is := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("sam: invalid B:%c element %q: %v", sub, f, err)
		}
		is[i] = v
	}
	return is, nil
}

// ParseTagField parses a single "TT:Y:V" SAM auxiliary field, returning the
// two-character tag key and its decoded TagValue.
func ParseTagField(field string) (key string, tv TagValue, err error) {
	parts := strings.SplitN(field, ":", 3)
	if len(parts) != 3 || len(parts[0]) != 2 || len(parts[1]) != 1 {
		return "", TagValue{}, fmt.Errorf("sam: malformed aux field %q", field)
	}
	typ := parts[1][0]
	v, err := ParseTagValue(typ, parts[2])
	if err != nil {
		return "", TagValue{}, err
	}
	tv = TagValue{Type: typ, Value: v}
	if typ == 'B' {
		tv.SubType = parts[2][0]
	}
	return parts[0], tv, nil
}

// FormatTagValue renders a TagValue back to its SAM text form "V" (the
// value only; callers prepend "TT:Y:"). For a 'B' array, the type code
// emitted is always 'i' for integer arrays or 'f' for float arrays — this
// is deliberately distinct from InferArrayType's narrowing rule; see
// InferArrayType's doc comment.
func FormatTagValue(tv TagValue) (string, error) {
	switch tv.Type {
	case 'A':
		return tv.Value.(string), nil
	case tagInt8, tagUint8, tagInt16, tagUint16, tagInt32, tagUint32:
		return strconv.FormatInt(tv.Value.(int64), 10), nil
	case 'f':
		return strconv.FormatFloat(tv.Value.(float64), 'g', -1, 64), nil
	case 'Z', 'H':
		return tv.Value.(string), nil
	case 'B':
		return formatArrayTagValue(tv)
	}
	return "", fmt.Errorf("sam: unknown tag type %q", tv.Type)
}

func formatArrayTagValue(tv TagValue) (string, error) {
	switch v := tv.Value.(type) {
	case []float64:
		var b strings.Builder
		b.WriteByte('f')
		for _, f := range v {
			b.WriteByte(',')
			b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		}
		return b.String(), nil
	case []int64:
		var b strings.Builder
		b.WriteByte('i')
		for _, n := range v {
			b.WriteByte(',')
			b.WriteString(strconv.FormatInt(n, 10))
		}
		return b.String(), nil
	}
	return "", fmt.Errorf("sam: unsupported B tag value %T", tv.Value)
}

// InferArrayType returns the narrowest type code and a human-readable
// label that can hold the first element of values, per the narrowing
// table:
//
//	float              -> 'f', "float32"
//	-128  <= v <= 127  -> 'c', "int8"
//	0     <= v <= 255  -> 'C', "uint8"
//	-32768<= v <=32767 -> 's', "int16"
//	0     <= v <=65535 -> 'S', "uint16"
//	otherwise          -> 'i', "int32"
//	empty              -> 'i', "int32"
//
// This is distinct from FormatTagValue's emission rule, which always uses
// 'i'/'f' regardless of the narrowest fit — the two rules serve different
// callers and are not meant to be unified.
func InferArrayType(values []interface{}) (code byte, label string) {
	if len(values) == 0 {
		return 'i', "int32"
	}
	switch v := values[0].(type) {
	case float64:
		return 'f', "float32"
	case float32:
		return 'f', "float32"
	case int64:
		return narrowestInt(v)
	case int:
		return narrowestInt(int64(v))
	}
	return 'i', "int32"
}

func narrowestInt(v int64) (byte, string) {
	switch {
	case -128 <= v && v <= 127:
		return 'c', "int8"
	case 0 <= v && v <= 255:
		return 'C', "uint8"
	case -32768 <= v && v <= 32767:
		return 's', "int16"
	case 0 <= v && v <= 65535:
		return 'S', "uint16"
	default:
		return 'i', "int32"
	}
}

// DecodeAuxBAM decodes the auxiliary-field region of a BAM alignment
// record. Parsing stops at the first unrecognised type byte, and the tags
// successfully decoded up to that point are returned, per the BAM
// truncation-is-not-an-error policy.
func DecodeAuxBAM(buf []byte) map[string]TagValue {
	tags := make(map[string]TagValue)
	i := 0
	for i+3 <= len(buf) {
		key := string(buf[i : i+2])
		typ := buf[i+2]
		i += 3
		switch typ {
		case 'A':
			if i >= len(buf) {
				return tags
			}
			tags[key] = TagValue{Type: 'A', Value: string(buf[i])}
			i++
		case tagInt8:
			if i+1 > len(buf) {
				return tags
			}
			tags[key] = TagValue{Type: typ, Value: int64(int8(buf[i]))}
			i++
		case tagUint8:
			if i+1 > len(buf) {
				return tags
			}
			tags[key] = TagValue{Type: typ, Value: int64(buf[i])}
			i++
		case tagInt16:
			if i+2 > len(buf) {
				return tags
			}
			tags[key] = TagValue{Type: typ, Value: int64(int16(binary.LittleEndian.Uint16(buf[i:])))}
			i += 2
		case tagUint16:
			if i+2 > len(buf) {
				return tags
			}
			tags[key] = TagValue{Type: typ, Value: int64(binary.LittleEndian.Uint16(buf[i:]))}
			i += 2
		case tagInt32:
			if i+4 > len(buf) {
				return tags
			}
			tags[key] = TagValue{Type: typ, Value: int64(int32(binary.LittleEndian.Uint32(buf[i:])))}
			i += 4
		case tagUint32:
			if i+4 > len(buf) {
				return tags
			}
			tags[key] = TagValue{Type: typ, Value: int64(binary.LittleEndian.Uint32(buf[i:]))}
			i += 4
		case 'f':
			if i+4 > len(buf) {
				return tags
			}
			bits := binary.LittleEndian.Uint32(buf[i:])
			tags[key] = TagValue{Type: 'f', Value: float64(math.Float32frombits(bits))}
			i += 4
		case 'Z', 'H':
			j := i
			for j < len(buf) && buf[j] != 0 {
				j++
			}
			tags[key] = TagValue{Type: typ, Value: string(buf[i:j])}
			i = j + 1
		case 'B':
			n, ok := decodeArrayTagBAM(buf[i:], key, tags)
			if !ok {
				return tags
			}
			i += n
		default:
			// Unknown type byte: stop parsing this record's tags,
			// keeping what has already been decoded.
			return tags
		}
	}
	return tags
}

func decodeArrayTagBAM(buf []byte, key string, tags map[string]TagValue) (consumed int, ok bool) {
	if len(buf) < 5 {
		return 0, false
	}
	sub := buf[0]
	count := int(binary.LittleEndian.Uint32(buf[1:5]))
	off := 5
	if sub == 'f' {
		fs := make([]float64, count)
		for i := 0; i < count; i++ {
			if off+4 > len(buf) {
				return 0, false
			}
			fs[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])))
			off += 4
		}
		tags[key] = TagValue{Type: 'B', SubType: 'f', Value: fs}
		return off, true
	}
	width, ok := intWidth(sub)
	if !ok {
		return 0, false
	}
	is := make([]int64, count)
	for i := 0; i < count; i++ {
		if off+width > len(buf) {
			return 0, false
		}
		is[i] = decodeIntWidth(sub, buf[off:off+width])
		off += width
	}
	tags[key] = TagValue{Type: 'B', SubType: sub, Value: is}
	return off, true
}

func intWidth(sub byte) (int, bool) {
	switch sub {
	case tagInt8, tagUint8:
		return 1, true
	case tagInt16, tagUint16:
		return 2, true
	case tagInt32, tagUint32:
		return 4, true
	}
	return 0, false
}

func decodeIntWidth(sub byte, b []byte) int64 {
	switch sub {
	case tagInt8:
		return int64(int8(b[0]))
	case tagUint8:
		return int64(b[0])
	case tagInt16:
		return int64(int16(binary.LittleEndian.Uint16(b)))
	case tagUint16:
		return int64(binary.LittleEndian.Uint16(b))
	case tagInt32:
		return int64(int32(binary.LittleEndian.Uint32(b)))
	case tagUint32:
		return int64(binary.LittleEndian.Uint32(b))
	}
	return 0
}
