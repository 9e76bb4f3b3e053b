// Package core carries the Goldilocks field element used throughout the
// assembler and the block-hash facade built on top of it.
package core

import (
	"fmt"
	"strconv"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

// FieldElement is a value in the VM's prime field (modulus
// 18446744069414584321, the Goldilocks prime).
type FieldElement = field.Element

// Zero and One are the field's additive and multiplicative identities.
var (
	Zero = field.Zero
	One  = field.One
)

// Modulus is the VM's prime field modulus, P.
const Modulus = field.P

// NewFieldElement reduces v modulo the field's prime and returns the
// resulting element.
func NewFieldElement(v uint64) FieldElement {
	return field.New(v)
}

// Negate returns P - v for a nonzero v, as used by local-frame epilogues
// (push(P - k) fmpupdate). Negating zero returns zero.
func Negate(v uint64) uint64 {
	if v == 0 {
		return 0
	}
	return Modulus - v
}

// ParseFieldElement parses a decimal unsigned integer string into a field
// element. It rejects values that do not fit in a uint64; the field itself
// reduces anything larger mod P, but assembly source is not expected to
// write immediates past 2^64-1.
func ParseFieldElement(s string) (FieldElement, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return Zero, fmt.Errorf("invalid field element %q: %w", s, err)
	}
	return field.New(v), nil
}
