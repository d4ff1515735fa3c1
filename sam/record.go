// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sam

import (
	"fmt"
	"strconv"
	"strings"
)

// Alignment is a single SAM/BAM alignment record. Fields mirror the eleven
// mandatory SAM columns; Tags holds the optional auxiliary fields keyed by
// their two-character tag name.
type Alignment struct {
	QName string // Query template name ("*" if unavailable).
	Flag  uint16
	RName string // Reference sequence name ("*" if unmapped).
	Pos   int    // 1-based leftmost mapping position (0 if unmapped).
	MapQ  uint8
	Cigar string // CIGAR string, "*" if unavailable.
	RNext string // Reference name of the mate/next read.
	PNext int
	TLen  int
	Seq   string // "*" if not stored.
	Qual  string // Phred+33 text, "*" if not stored.

	Tags map[string]TagValue
}

// Header is a SAM header: a sequence of typed record groups, each a plain
// key-value map (order among keys within a record is not preserved; order
// among records of the same type is preserved).
type Header struct {
	HD map[string]string   // @HD, at most one.
	SQ []map[string]string // @SQ, one per reference sequence.
	RG []map[string]string // @RG, one per read group.
	PG []map[string]string // @PG, one per program.
	CO []string            // @CO, free-text comments, verbatim.
}

// SamFile is a parsed SAM file: a header and its alignment records, in
// file order.
type SamFile struct {
	Header     Header
	Alignments []Alignment
}

const mandatoryFieldCount = 11

// ParseAlignment parses a single tab-separated SAM alignment line (no
// trailing newline, no leading "@"). The eleven mandatory fields must be
// present; any further tab-separated fields are auxiliary tags.
func ParseAlignment(line string) (Alignment, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < mandatoryFieldCount {
		return Alignment{}, fmt.Errorf("sam: alignment line has %d fields, want at least %d", len(fields), mandatoryFieldCount)
	}

	flag, err := strconv.ParseUint(fields[1], 10, 16)
	if err != nil {
		return Alignment{}, fmt.Errorf("sam: invalid FLAG %q: %v", fields[1], err)
	}
	pos, err := strconv.Atoi(fields[3])
	if err != nil {
		return Alignment{}, fmt.Errorf("sam: invalid POS %q: %v", fields[3], err)
	}
	mapq, err := strconv.ParseUint(fields[4], 10, 8)
	if err != nil {
		return Alignment{}, fmt.Errorf("sam: invalid MAPQ %q: %v", fields[4], err)
	}
	pnext, err := strconv.Atoi(fields[7])
	if err != nil {
		return Alignment{}, fmt.Errorf("sam: invalid PNEXT %q: %v", fields[7], err)
	}
	tlen, err := strconv.Atoi(fields[8])
	if err != nil {
		return Alignment{}, fmt.Errorf("sam: invalid TLEN %q: %v", fields[8], err)
	}

	a := Alignment{
		QName: fields[0],
		Flag:  uint16(flag),
		RName: fields[2],
		Pos:   pos,
		MapQ:  uint8(mapq),
		Cigar: fields[5],
		RNext: fields[6],
		PNext: pnext,
		TLen:  tlen,
		Seq:   fields[9],
		Qual:  fields[10],
	}

	if len(fields) > mandatoryFieldCount {
		a.Tags = make(map[string]TagValue, len(fields)-mandatoryFieldCount)
		for _, f := range fields[mandatoryFieldCount:] {
			if f == "" {
				continue
			}
			key, tv, err := ParseTagField(f)
			if err != nil {
				return Alignment{}, err
			}
			a.Tags[key] = tv
		}
	}

	return a, nil
}

// String renders a back into its tab-separated SAM text line, with
// auxiliary tags in an unspecified but deterministic (sorted-by-key) order.
func (a Alignment) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\t%d\t%s\t%d\t%d\t%s\t%s\t%d\t%d\t%s\t%s",
		orDefault(a.QName, "*"), a.Flag, orDefault(a.RName, "*"), a.Pos, a.MapQ,
		orDefault(a.Cigar, "*"), orDefault(a.RNext, "*"), a.PNext, a.TLen,
		orDefault(a.Seq, "*"), orDefault(a.Qual, "*"))

	keys := make([]string, 0, len(a.Tags))
	for k := range a.Tags {
		keys = append(keys, k)
	}
	sortStrings(keys)
	for _, k := range keys {
		tv := a.Tags[k]
		v, err := FormatTagValue(tv)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "\t%s:%c:%s", k, tv.Type, v)
	}
	return b.String()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// sortStrings sorts s in place without importing sort; used for
// deterministic key order in tag and header emission and in Fingerprint.
func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// ParseHeader parses the "@"-prefixed header lines of a SAM file, in the
// order they appear. Unrecognised "@XX" record types are ignored. A
// malformed "@SQ" line (missing "LN") is kept with only the tags present;
// a "@CO" line with no following text yields an empty comment.
func ParseHeader(lines []string) (Header, error) {
	h := Header{}
	for _, line := range lines {
		if len(line) < 3 || line[0] != '@' {
			continue
		}
		tag := line[1:3]
		rest := ""
		if len(line) > 3 {
			rest = line[4:]
		}
		switch tag {
		case "HD":
			if h.HD == nil {
				h.HD = map[string]string{}
			}
			parseTagMapInto(rest, h.HD)
		case "SQ":
			h.SQ = append(h.SQ, parseTagMap(rest))
		case "RG":
			h.RG = append(h.RG, parseTagMap(rest))
		case "PG":
			h.PG = append(h.PG, parseTagMap(rest))
		case "CO":
			h.CO = append(h.CO, rest)
		}
	}
	return h, nil
}

func parseTagMap(s string) map[string]string {
	m := map[string]string{}
	parseTagMapInto(s, m)
	return m
}

func parseTagMapInto(s string, m map[string]string) {
	if s == "" {
		return
	}
	for _, field := range strings.Split(s, "\t") {
		if field == "" {
			continue
		}
		kv := strings.SplitN(field, ":", 2)
		if len(kv) != 2 {
			continue
		}
		m[kv[0]] = kv[1]
	}
}

// String renders h back into "@"-prefixed header text lines, in the fixed
// order @HD, @SQ*, @RG*, @PG*, @CO*. Tag order within a record is
// unspecified (sorted by key for determinism).
func (h Header) String() string {
	var b strings.Builder
	if h.HD != nil {
		writeTagLine(&b, "HD", h.HD)
	}
	for _, sq := range h.SQ {
		writeTagLine(&b, "SQ", sq)
	}
	for _, rg := range h.RG {
		writeTagLine(&b, "RG", rg)
	}
	for _, pg := range h.PG {
		writeTagLine(&b, "PG", pg)
	}
	for _, co := range h.CO {
		fmt.Fprintf(&b, "@CO\t%s\n", co)
	}
	return b.String()
}

func writeTagLine(b *strings.Builder, tag string, m map[string]string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortStrings(keys)
	fmt.Fprintf(b, "@%s", tag)
	for _, k := range keys {
		fmt.Fprintf(b, "\t%s:%s", k, m[k])
	}
	b.WriteByte('\n')
}
