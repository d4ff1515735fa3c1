// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sam

import (
	"encoding/binary"
	"hash"

	"github.com/blainsmith/seahash"
)

// Fingerprint returns a stable 64-bit digest of a's identifying fields:
// reference name and position, FLAG, CIGAR, sequence, quality and
// auxiliary tags. Two alignments that agree in every field this method
// reads have the same Fingerprint; the converse does not hold, since the
// per-field hashes are summed and distinct alignments can collide. It is
// intended for duplicate-read detection, not as a cryptographic checksum.
func (a Alignment) Fingerprint() uint64 {
	h := seahash.New()

	pos := [8]byte{}
	binary.LittleEndian.PutUint32(pos[:4], uint32(len(a.RName)))
	binary.LittleEndian.PutUint32(pos[4:], uint32(a.Pos))

	var sum uint64
	sum += hashField(h, pos, []byte(a.RName))

	var flagBuf [2]byte
	binary.LittleEndian.PutUint16(flagBuf[:], a.Flag)
	sum += hashField(h, pos, flagBuf[:])

	sum += hashField(h, pos, []byte(a.Cigar))
	sum += hashField(h, pos, []byte(a.Seq))
	sum += hashField(h, pos, []byte(a.Qual))

	keys := make([]string, 0, len(a.Tags))
	for k := range a.Tags {
		keys = append(keys, k)
	}
	sortStrings(keys)
	for _, k := range keys {
		tv := a.Tags[k]
		sum += hashField(h, pos, []byte(k))
		if v, err := FormatTagValue(tv); err == nil {
			sum += hashField(h, pos, []byte(v))
		}
	}

	return sum
}

// hashField hashes value alongside the record's position prefix, resetting
// h first so successive fields of the same record don't accumulate state
// from one another.
func hashField(h hash.Hash64, pos [8]byte, value []byte) uint64 {
	h.Reset()
	h.Write(pos[:])
	h.Write(value)
	return h.Sum64()
}
