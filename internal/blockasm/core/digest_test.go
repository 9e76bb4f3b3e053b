package core

import "testing"

func TestMergeInDomainDeterministic(t *testing.T) {
	left := HashOps([]FieldElement{NewFieldElement(1), NewFieldElement(2)})
	right := HashOps([]FieldElement{NewFieldElement(3)})

	a := MergeInDomain(left, right, 0xf0)
	b := MergeInDomain(left, right, 0xf0)
	if !a.Equal(b) {
		t.Errorf("MergeInDomain is not deterministic: %v != %v", a, b)
	}
}

func TestMergeInDomainSensitiveToDomainByte(t *testing.T) {
	left := HashOps([]FieldElement{NewFieldElement(1)})
	right := HashOps([]FieldElement{NewFieldElement(2)})

	a := MergeInDomain(left, right, 0xf0)
	b := MergeInDomain(left, right, 0xf1)
	if a.Equal(b) {
		t.Errorf("MergeInDomain produced the same digest for different domain bytes")
	}
}

func TestMergeInDomainSensitiveToChildOrder(t *testing.T) {
	left := HashOps([]FieldElement{NewFieldElement(1)})
	right := HashOps([]FieldElement{NewFieldElement(2)})

	a := MergeInDomain(left, right, 0xf0)
	b := MergeInDomain(right, left, 0xf0)
	if a.Equal(b) {
		t.Errorf("MergeInDomain(left, right) == MergeInDomain(right, left); Join should not be commutative")
	}
}

func TestHashOpsDeterministic(t *testing.T) {
	elems := []FieldElement{NewFieldElement(7), NewFieldElement(9)}
	a := HashOps(elems)
	b := HashOps(elems)
	if !a.Equal(b) {
		t.Errorf("HashOps is not deterministic: %v != %v", a, b)
	}
}

func TestZeroDigestIsAllZero(t *testing.T) {
	for i, e := range ZeroDigest.Elements() {
		if !e.Equal(Zero) {
			t.Errorf("ZeroDigest[%d] = %v, want Zero", i, e)
		}
	}
}
