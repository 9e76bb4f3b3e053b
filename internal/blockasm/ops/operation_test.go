package ops

import (
	"testing"

	"github.com/vybium/blockasm/internal/blockasm/core"
)

func TestOperationString(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		want string
	}{
		{"noop", Noop(), "noop"},
		{"pad", Pad(), "pad"},
		{"incr", Incr(), "incr"},
		{"add", Add(), "add"},
		{"push with immediate", Push(core.NewFieldElement(2)), "push(2)"},
		{"push large immediate", Push(core.NewFieldElement(18446744069414584320)), "push(18446744069414584320)"},
		{"dup with depth", Dup(3), "dup(3)"},
		{"swap with depth", Swap(1), "swap(1)"},
		{"fmpupdate", FmpUpdate(), "fmpupdate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.op.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperationEqual(t *testing.T) {
	if !Add().Equal(Add()) {
		t.Errorf("Add() should equal itself")
	}
	if Add().Equal(Mul()) {
		t.Errorf("Add() should not equal Mul()")
	}
	if !Push(core.NewFieldElement(5)).Equal(Push(core.NewFieldElement(5))) {
		t.Errorf("Push(5) should equal Push(5)")
	}
	if Push(core.NewFieldElement(5)).Equal(Push(core.NewFieldElement(6))) {
		t.Errorf("Push(5) should not equal Push(6)")
	}
	if Push(core.NewFieldElement(0)).Equal(Pad()) {
		t.Errorf("Push(0) should not equal Pad() — they are different opcodes even if semantically similar")
	}
}

func TestHasArgument(t *testing.T) {
	if Add().HasArgument() {
		t.Errorf("Add() should not carry an argument")
	}
	if !Push(core.NewFieldElement(1)).HasArgument() {
		t.Errorf("Push(1) should carry an argument")
	}
}
