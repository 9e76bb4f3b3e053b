package core

import "github.com/vybium/vybium-crypto/pkg/vybium-crypto/hash"

// Digest is the 256-bit block-identifying hash attached to every
// CodeBlock. Four Goldilocks field elements give exactly 256 bits.
type Digest [4]FieldElement

// ZeroDigest is the digest used for a missing child (e.g. a Loop's
// absent second child) when folding into merge_in_domain.
var ZeroDigest = Digest{Zero, Zero, Zero, Zero}

// Elements returns the digest as a flat slice, the shape the hash
// facade's functions consume and return.
func (d Digest) Elements() []FieldElement { return d[:] }

// Equal reports whether two digests are identical.
func (d Digest) Equal(other Digest) bool {
	for i := range d {
		if !d[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

func fromHashOutput(out []FieldElement) Digest {
	var d Digest
	copy(d[:], out[:len(d)])
	return d
}

// MergeInDomain is the two-child domain-tagged compression used by
// Join, Split, and Loop: digest = merge_in_domain([left, right_or_zero],
// domain) where domain is the opcode of the block kind's representative
// control operation.
func MergeInDomain(left, right Digest, domain byte) Digest {
	elems := make([]FieldElement, 0, 9)
	elems = append(elems, left.Elements()...)
	elems = append(elems, right.Elements()...)
	elems = append(elems, NewFieldElement(uint64(domain)))
	return fromHashOutput(hash.HashVarlen(elems))
}

// HashOps is the Span-specific compression: the digest of a Span is the
// hash of its operation opcodes and immediates laid out as field
// elements.
func HashOps(elements []FieldElement) Digest {
	return fromHashOutput(hash.HashVarlen(elements))
}
