// Copyright ©2012 The bíogo.bam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bgzf decompresses BGZF (blocked gzip) data, the block-oriented
// gzip variant used by the BAM file format. Each BGZF block is an
// independent gzip member with an "BC" extra subfield recording the
// compressed size of the block, which allows a stream of blocks to be
// decoded even when later blocks are damaged or absent.
package bgzf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"io/ioutil"

	"github.com/klauspost/compress/gzip"
)

// bgzfMagic is the first four bytes of every well-formed BGZF block: the
// standard gzip magic plus FLG.FEXTRA set.
var bgzfMagic = []byte{0x1f, 0x8b, 0x08, 0x04}

// bgzfExtraPrefix identifies the "BC" extra subfield that carries the
// total compressed block size (BSIZE) minus one.
var bgzfExtraPrefix = []byte("BC\x02\x00")

// eofMarker is the 28-byte empty BGZF block every well-formed BAM/BGZF
// stream is terminated with.
var eofMarker = []byte{
	0x1f, 0x8b, 0x08, 0x04, 0x00, 0x00, 0x00, 0x00,
	0x00, 0xff, 0x06, 0x00, 0x42, 0x43, 0x02, 0x00,
	0x1b, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
}

// ErrNoData is returned by Decompress when neither the whole-stream
// attempt nor block-scan recovery could extract any payload bytes.
var ErrNoData = errors.New("bgzf: no decodable data found")

// Decompress inflates BGZF-compressed data. It first attempts to decode
// the entire input as a single multistream gzip stream (the fast path for
// well-formed files); if that fails partway, or decodes to nothing, it
// falls back to scanning the input byte-by-byte for BGZF block signatures
// and decoding each recognisable block independently, skipping over
// anything that does not parse as a block. An empty terminal member (the
// standard BGZF EOF marker) decodes to zero bytes and is not an error.
//
// Decompress returns an error only if no payload bytes could be recovered
// by either approach.
func Decompress(data []byte) ([]byte, error) {
	if out, err := decompressWhole(data); err == nil && len(out) > 0 {
		return out, nil
	} else if err == nil {
		// Whole-stream decode succeeded but produced no bytes: only a
		// legitimate result if the input was just an EOF marker (or
		// empty). Otherwise fall through to recovery scanning, which
		// below will itself report ErrNoData if nothing is found.
		if len(data) == 0 || bytes.Equal(data, eofMarker) {
			return out, nil
		}
	}

	out, ok := decompressByScanning(data)
	if !ok {
		return nil, ErrNoData
	}
	return out, nil
}

// decompressWhole attempts to treat data as a well-formed BGZF/multistream
// gzip stream in one pass.
func decompressWhole(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	gz.Multistream(true)
	out, err := ioutil.ReadAll(gz)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// decompressByScanning recovers as many BGZF blocks as possible from data
// by scanning for block signatures, decoding each one it finds, and
// skipping a single byte forward whenever the candidate at the current
// offset does not decode. ok reports whether any bytes were recovered.
func decompressByScanning(data []byte) (out []byte, ok bool) {
	var buf bytes.Buffer
	i := 0
	for i < len(data) {
		size, valid := blockSize(data[i:])
		if !valid || i+size > len(data) {
			i++
			continue
		}

		block := data[i : i+size]
		payload, err := decodeBlock(block)
		if err != nil {
			i++
			continue
		}
		buf.Write(payload)
		ok = true
		i += size
	}
	return buf.Bytes(), ok
}

// blockSize reports the total compressed size of the BGZF block starting
// at b[0], as recorded by its "BC" extra subfield (BSIZE+1), and whether
// b begins with a recognisable BGZF block header at all.
func blockSize(b []byte) (size int, valid bool) {
	if len(b) < 18 || !bytes.Equal(b[:4], bgzfMagic) {
		return 0, false
	}
	xlen := int(binary.LittleEndian.Uint16(b[10:12]))
	if len(b) < 12+xlen {
		return 0, false
	}
	extra := b[12 : 12+xlen]
	idx := bytes.Index(extra, bgzfExtraPrefix)
	if idx < 0 || idx+6 > len(extra) {
		return 0, false
	}
	bsize := int(binary.LittleEndian.Uint16(extra[idx+4 : idx+6]))
	return bsize + 1, true
}

// decodeBlock inflates a single, already size-delimited BGZF block.
func decodeBlock(block []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(block))
	if err != nil {
		return nil, err
	}
	gz.Multistream(false)
	out, err := ioutil.ReadAll(gz)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return out, nil
}
