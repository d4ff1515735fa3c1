// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sam

// FilterByReference returns a new SamFile containing only the alignments of
// f whose RName equals name, preserving their relative order. The header is
// copied unchanged.
func FilterByReference(f SamFile, name string) SamFile {
	out := SamFile{Header: f.Header}
	for _, a := range f.Alignments {
		if a.RName == name {
			out.Alignments = append(out.Alignments, a)
		}
	}
	return out
}

// FilterByPosition returns a new SamFile containing only the alignments of
// f whose Pos falls within the closed interval [start, end], preserving
// their relative order. Only the alignment's leftmost position is
// considered — this does not account for the bases the CIGAR covers; use
// OverlapsRegion directly for that.
func FilterByPosition(f SamFile, start, end int) SamFile {
	out := SamFile{Header: f.Header}
	for _, a := range f.Alignments {
		if a.Pos >= start && a.Pos <= end {
			out.Alignments = append(out.Alignments, a)
		}
	}
	return out
}

// ReferenceSequences returns the SN value of each @SQ header record, in
// header order.
func ReferenceSequences(f SamFile) []string {
	var names []string
	for _, sq := range f.Header.SQ {
		if sn, ok := sq["SN"]; ok {
			names = append(names, sn)
		}
	}
	return names
}

// ExtractQualityScores decodes a's Phred+33 QUAL string into per-base
// quality scores. A QUAL of "*" (scores unavailable) yields an empty
// slice.
func ExtractQualityScores(a Alignment) []int {
	if a.Qual == "*" || a.Qual == "" {
		return nil
	}
	scores := make([]int, len(a.Qual))
	for i := 0; i < len(a.Qual); i++ {
		scores[i] = int(a.Qual[i]) - 33
	}
	return scores
}

// AlignmentEndPosition returns the highest 1-based reference coordinate
// covered by a, derived from a.Pos and a.Cigar.
func AlignmentEndPosition(a Alignment) (int, error) {
	c, err := ParseCigar(a.Cigar)
	if err != nil {
		return 0, err
	}
	return GetEndPosition(a.Pos, c), nil
}

// AlignmentOverlapsRegion reports whether a's reference-covered interval
// intersects the closed interval [start, end].
func AlignmentOverlapsRegion(a Alignment, start, end int) (bool, error) {
	c, err := ParseCigar(a.Cigar)
	if err != nil {
		return false, err
	}
	return OverlapsRegion(a.Pos, c, start, end), nil
}
