// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sam

// Flags is a BAM/SAM record's alignment FLAG field.
type Flags uint16

// Flag bit values, LSB first, as defined by the SAM specification.
const (
	Paired        Flags = 1 << iota // The read is paired in sequencing, no matter whether it is mapped in a pair.
	ProperPair                      // The read is mapped in a proper pair.
	Unmapped                        // The read itself is unmapped; conflicts with ProperPair.
	MateUnmapped                    // The mate is unmapped.
	Reverse                         // The read is mapped to the reverse strand.
	MateReverse                     // The mate is mapped to the reverse strand.
	Read1                           // This is read1.
	Read2                           // This is read2.
	Secondary                       // Not primary alignment.
	Filtered                        // QC failure.
	Duplicate                       // Optical or PCR duplicate.
	Supplementary                   // Supplementary alignment; part of a chimeric alignment.
)

// FlagBits is the decomposition of a Flags value into its named booleans.
type FlagBits struct {
	Paired        bool
	ProperPair    bool
	Unmapped      bool
	NextUnmapped  bool
	Reversed      bool
	NextReversed  bool
	First         bool
	Last          bool
	Secondary     bool
	Filtered      bool
	Duplicate     bool
	Supplementary bool
}

// InterpretFlags decomposes a raw FLAG value into its named booleans.
// BuildFlag is its exact inverse for every flag in [0, 0xFFF].
func InterpretFlags(flag uint16) FlagBits {
	f := Flags(flag)
	return FlagBits{
		Paired:        f&Paired != 0,
		ProperPair:    f&ProperPair != 0,
		Unmapped:      f&Unmapped != 0,
		NextUnmapped:  f&MateUnmapped != 0,
		Reversed:      f&Reverse != 0,
		NextReversed:  f&MateReverse != 0,
		First:         f&Read1 != 0,
		Last:          f&Read2 != 0,
		Secondary:     f&Secondary != 0,
		Filtered:      f&Filtered != 0,
		Duplicate:     f&Duplicate != 0,
		Supplementary: f&Supplementary != 0,
	}
}

// BuildFlag recomposes a raw FLAG value from its named booleans. It is the
// exact inverse of InterpretFlags.
func BuildFlag(b FlagBits) uint16 {
	var f Flags
	if b.Paired {
		f |= Paired
	}
	if b.ProperPair {
		f |= ProperPair
	}
	if b.Unmapped {
		f |= Unmapped
	}
	if b.NextUnmapped {
		f |= MateUnmapped
	}
	if b.Reversed {
		f |= Reverse
	}
	if b.NextReversed {
		f |= MateReverse
	}
	if b.First {
		f |= Read1
	}
	if b.Last {
		f |= Read2
	}
	if b.Secondary {
		f |= Secondary
	}
	if b.Filtered {
		f |= Filtered
	}
	if b.Duplicate {
		f |= Duplicate
	}
	if b.Supplementary {
		f |= Supplementary
	}
	return uint16(f)
}

// IsPaired returns whether the read is paired in sequencing.
func IsPaired(a Alignment) bool { return Flags(a.Flag)&Paired != 0 }

// IsMapped returns whether the read itself is mapped.
func IsMapped(a Alignment) bool { return Flags(a.Flag)&Unmapped == 0 }

// IsProperlyPaired returns whether the read is mapped in a proper pair.
func IsProperlyPaired(a Alignment) bool { return Flags(a.Flag)&ProperPair != 0 }

// IsReverse returns whether the read is mapped to the reverse strand.
func IsReverse(a Alignment) bool { return Flags(a.Flag)&Reverse != 0 }

// IsSecondary returns whether the alignment is not the primary alignment.
func IsSecondary(a Alignment) bool { return Flags(a.Flag)&Secondary != 0 }

// IsSupplementary returns whether the alignment is a supplementary
// (chimeric) alignment.
func IsSupplementary(a Alignment) bool { return Flags(a.Flag)&Supplementary != 0 }

// String representation of BAM alignment flags:
//
//	0x001 - p - Paired
//	0x002 - P - ProperPair
//	0x004 - u - Unmapped
//	0x008 - U - MateUnmapped
//	0x010 - r - Reverse
//	0x020 - R - MateReverse
//	0x040 - 1 - Read1
//	0x080 - 2 - Read2
//	0x100 - s - Secondary
//	0x200 - f - Filtered
//	0x400 - d - Duplicate
//	0x800 - S - Supplementary
func (f Flags) String() string {
	const pairedMask = ProperPair | MateUnmapped | MateReverse | Read1 | Read2
	if f&1 == 0 {
		f &^= pairedMask
	}

	const flags = "pPuUrR12sfdS"

	b := make([]byte, len(flags))
	for i, c := range flags {
		if f&(1<<uint(i)) != 0 {
			b[i] = byte(c)
		} else {
			b[i] = '-'
		}
	}
	return string(b)
}
