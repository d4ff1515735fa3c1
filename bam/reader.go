// Copyright ©2012 The bíogo.bam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bam decodes the BAM binary alignment format: a BGZF-compressed
// container holding a SAM header followed by a reference sequence
// dictionary and a stream of fixed-layout binary alignment records.
package bam

import (
	"encoding/binary"
	"fmt"

	"github.com/kortschak/samkit/sam"
	"github.com/pkg/errors"
)

var endian = binary.LittleEndian

var bamMagic = [4]byte{'B', 'A', 'M', 1}

// seqTableRev maps a 4-bit packed base code to its IUPAC letter.
var seqTableRev = [16]byte{'=', 'A', 'C', 'M', 'G', 'R', 'S', 'V', 'T', 'W', 'Y', 'H', 'K', 'D', 'B', 'N'}

// Parse decodes a whole BAM file's uncompressed byte stream (the output of
// bgzf.Decompress) into a sam.SamFile. Decoding is lenient: a record or
// reference entry that cannot be fully read because the stream ends early
// is dropped rather than treated as a fatal error, so that a truncated BAM
// still yields every alignment read before the truncation point.
func Parse(data []byte) (sam.SamFile, error) {
	dec := &decoder{buf: data}

	if err := dec.expectMagic(); err != nil {
		return sam.SamFile{}, errors.Wrap(err, "bam: reading magic")
	}

	header, err := dec.readHeaderText()
	if err != nil {
		return sam.SamFile{}, errors.Wrap(err, "bam: reading header text")
	}

	refNames, err := dec.readReferenceTable(&header)
	if err != nil {
		return sam.SamFile{}, errors.Wrap(err, "bam: reading reference table")
	}

	f := sam.SamFile{Header: header}
	for {
		a, ok := dec.readAlignment(refNames)
		if !ok {
			break
		}
		f.Alignments = append(f.Alignments, a)
	}
	return f, nil
}

type decoder struct {
	buf []byte
	pos int
}

func (d *decoder) remaining() []byte { return d.buf[d.pos:] }

func (d *decoder) expectMagic() error {
	if len(d.remaining()) < 4 {
		return fmt.Errorf("bam: truncated magic number")
	}
	var magic [4]byte
	copy(magic[:], d.buf[d.pos:d.pos+4])
	d.pos += 4
	if magic != bamMagic {
		return fmt.Errorf("bam: magic number mismatch")
	}
	return nil
}

func (d *decoder) readHeaderText() (sam.Header, error) {
	if len(d.remaining()) < 4 {
		return sam.Header{}, fmt.Errorf("bam: truncated header length")
	}
	lText := int(int32(endian.Uint32(d.buf[d.pos:])))
	d.pos += 4
	if lText < 0 || d.pos+lText > len(d.buf) {
		return sam.Header{}, fmt.Errorf("bam: truncated header text")
	}
	text := string(d.buf[d.pos : d.pos+lText])
	d.pos += lText

	return sam.ParseHeaderText(text)
}

// readReferenceTable reads the BAM binary reference dictionary and
// reconciles it against any @SQ lines already present in header (adding
// entries for reference names the binary dictionary names but the text
// header omitted). It returns the ordered reference name list used to
// resolve a record's ref_id/next_ref_id.
func (d *decoder) readReferenceTable(header *sam.Header) ([]string, error) {
	if len(d.remaining()) < 4 {
		return nil, fmt.Errorf("bam: truncated reference count")
	}
	nRef := int(int32(endian.Uint32(d.buf[d.pos:])))
	d.pos += 4
	if nRef < 0 {
		return nil, fmt.Errorf("bam: negative reference count %d", nRef)
	}

	known := make(map[string]bool, len(header.SQ))
	for _, sq := range header.SQ {
		known[sq["SN"]] = true
	}

	names := make([]string, 0, nRef)
	for i := 0; i < nRef; i++ {
		if len(d.remaining()) < 4 {
			return names, nil
		}
		lName := int(int32(endian.Uint32(d.buf[d.pos:])))
		d.pos += 4
		if lName <= 0 || d.pos+lName > len(d.buf) {
			return names, nil
		}
		raw := d.buf[d.pos : d.pos+lName]
		d.pos += lName
		name := string(raw[:len(raw)-1]) // NUL-terminated.

		if len(d.remaining()) < 4 {
			return names, nil
		}
		lRef := int32(endian.Uint32(d.buf[d.pos:]))
		d.pos += 4

		names = append(names, name)
		if !known[name] {
			header.SQ = append(header.SQ, map[string]string{"SN": name, "LN": fmt.Sprint(lRef)})
			known[name] = true
		}
	}
	return names, nil
}

const bamRecordFixedSize = 32 // everything from block_size's successor through next_pos/tlen.

// readAlignment decodes a single binary alignment record. ok is false once
// the stream is exhausted or too short to hold another complete record,
// the caller's signal to stop.
func (d *decoder) readAlignment(refNames []string) (a sam.Alignment, ok bool) {
	if len(d.remaining()) < 4 {
		return sam.Alignment{}, false
	}
	blockSize := int(int32(endian.Uint32(d.buf[d.pos:])))
	if blockSize < bamRecordFixedSize || d.pos+4+blockSize > len(d.buf) {
		return sam.Alignment{}, false
	}
	start := d.pos + 4
	rec := d.buf[start : start+blockSize]
	d.pos = start + blockSize

	refID := int32(endian.Uint32(rec[0:4]))
	pos := int32(endian.Uint32(rec[4:8]))
	lReadName := int(rec[8])
	mapQ := rec[9]
	// rec[10:12] is the "bin" field, unused by this decoder.
	nCigarOp := int(endian.Uint16(rec[12:14]))
	flag := endian.Uint16(rec[14:16])
	lSeq := int(int32(endian.Uint32(rec[16:20])))
	nextRefID := int32(endian.Uint32(rec[20:24]))
	nextPos := int32(endian.Uint32(rec[24:28]))
	tLen := int32(endian.Uint32(rec[28:32]))

	off := 32
	if off+lReadName > len(rec) || lReadName == 0 {
		return sam.Alignment{}, false
	}
	name := string(rec[off : off+lReadName-1]) // drop the trailing NUL.
	off += lReadName

	if off+nCigarOp*4 > len(rec) {
		return sam.Alignment{}, false
	}
	cigar := make(sam.Cigar, nCigarOp)
	for i := 0; i < nCigarOp; i++ {
		word := endian.Uint32(rec[off+i*4:])
		cigar[i] = sam.DecodeCigarWord(word)
	}
	off += nCigarOp * 4

	seqBytes := (lSeq + 1) / 2
	if off+seqBytes > len(rec) {
		return sam.Alignment{}, false
	}
	seq := decodeSeq(rec[off:off+seqBytes], lSeq)
	off += seqBytes

	if off+lSeq > len(rec) {
		return sam.Alignment{}, false
	}
	qual := decodeQual(rec[off : off+lSeq])
	off += lSeq

	tags := sam.DecodeAuxBAM(rec[off:])

	a = sam.Alignment{
		QName: name,
		Flag:  flag,
		Pos:   int(pos) + 1,
		MapQ:  mapQ,
		Cigar: cigar.String(),
		PNext: int(nextPos) + 1,
		TLen:  int(tLen),
		Seq:   seq,
		Qual:  qual,
		Tags:  tags,
	}
	a.RName = refName(refID, refNames)
	if refID >= 0 && nextRefID == refID {
		a.RNext = "="
	} else {
		a.RNext = refName(nextRefID, refNames)
	}
	return a, true
}

func refName(id int32, names []string) string {
	if id < 0 || int(id) >= len(names) {
		return "*"
	}
	return names[id]
}

func decodeSeq(packed []byte, lSeq int) string {
	if lSeq == 0 {
		return "*"
	}
	b := make([]byte, lSeq)
	for i := 0; i < lSeq; i++ {
		shift := 4
		if i&1 == 1 {
			shift = 0
		}
		b[i] = seqTableRev[(packed[i>>1]>>uint(shift))&0xf]
	}
	return string(b)
}

func decodeQual(q []byte) string {
	if len(q) == 0 || q[0] == 0xff {
		return "*"
	}
	b := make([]byte, len(q))
	for i, v := range q {
		b[i] = v + 33
	}
	return string(b)
}
