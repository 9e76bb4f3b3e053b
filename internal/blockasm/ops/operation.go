// Package ops defines the VM's fixed operation set: the atomic units a
// Span block sequences, each identified by a small opcode and carrying
// an optional immediate field element.
package ops

import (
	"fmt"

	"github.com/vybium/blockasm/internal/blockasm/core"
)

// Code is an opcode identifying one VM operation.
type Code uint8

const (
	OpNoop Code = iota
	OpPad
	OpIncr
	OpPush
	OpDrop
	OpDup
	OpSwap
	OpAdd
	OpNeg
	OpEqz
	OpAssert
	OpMul
	OpMLoad
	OpMStore
	OpFmpUpdate
	OpFmpAdd
	OpU32Add3
	OpU32Madd
)

type codeInfo struct {
	name   string
	hasArg bool
}

// table is a metadata map keyed by opcode, giving each operation its
// mnemonic name and whether it carries an immediate argument.
var table = map[Code]codeInfo{
	OpNoop:      {"noop", false},
	OpPad:       {"pad", false},
	OpIncr:      {"incr", false},
	OpPush:      {"push", true},
	OpDrop:      {"drop", false},
	OpDup:       {"dup", true},
	OpSwap:      {"swap", true},
	OpAdd:       {"add", false},
	OpNeg:       {"neg", false},
	OpEqz:       {"eqz", false},
	OpAssert:    {"assert", false},
	OpMul:       {"mul", false},
	OpMLoad:     {"mload", false},
	OpMStore:    {"mstore", false},
	OpFmpUpdate: {"fmpupdate", false},
	OpFmpAdd:    {"fmpadd", false},
	OpU32Add3:   {"u32add3", false},
	OpU32Madd:   {"u32madd", false},
}

// Operation is one VM operation: an opcode plus an optional immediate.
type Operation struct {
	Code   Code
	Imm    core.FieldElement
	hasImm bool
}

// HasArgument reports whether this operation carries an immediate.
func (o Operation) HasArgument() bool { return o.hasImm }

// Name returns the operation's mnemonic textual form, e.g. "push".
func (o Operation) Name() string { return table[o.Code].name }

// Opcode returns the numeric opcode, laid out as a field element when a
// Span block's digest is computed.
func (o Operation) Opcode() byte { return byte(o.Code) }

// String reproduces the exact textual forms test fixtures assert
// against: "push(2)", "noop", "add", etc.
func (o Operation) String() string {
	info := table[o.Code]
	if o.hasImm {
		return fmt.Sprintf("%s(%s)", info.name, o.Imm.String())
	}
	return info.name
}

// Equal reports whether two operations are identical.
func (o Operation) Equal(other Operation) bool {
	if o.Code != other.Code || o.hasImm != other.hasImm {
		return false
	}
	return !o.hasImm || o.Imm.Equal(other.Imm)
}

func withImm(code Code, v core.FieldElement) Operation {
	return Operation{Code: code, Imm: v, hasImm: true}
}

func plain(code Code) Operation {
	return Operation{Code: code}
}

// Noop is a no-operation placeholder, used as the default Span for a
// missing else arm.
func Noop() Operation { return plain(OpNoop) }

// Pad pushes a zero word onto the stack.
func Pad() Operation { return plain(OpPad) }

// Incr adds one to the top of the stack.
func Incr() Operation { return plain(OpIncr) }

// Push pushes v verbatim, with no constant folding — callers decide
// when push.v should fold to Pad/Pad+Incr instead (see instr.LowerPush).
func Push(v core.FieldElement) Operation { return withImm(OpPush, v) }

// Drop discards the top of the stack.
func Drop() Operation { return plain(OpDrop) }

// Dup duplicates the stack element at depth i.
func Dup(i uint32) Operation { return withImm(OpDup, core.NewFieldElement(uint64(i))) }

// Swap exchanges the top of the stack with the element at depth i.
func Swap(i uint32) Operation { return withImm(OpSwap, core.NewFieldElement(uint64(i))) }

// Add pops two elements and pushes their sum.
func Add() Operation { return plain(OpAdd) }

// Neg negates the top of the stack.
func Neg() Operation { return plain(OpNeg) }

// Eqz pushes 1 if the top of the stack is zero, else 0.
func Eqz() Operation { return plain(OpEqz) }

// Assert pops the top of the stack and aborts execution if it is zero.
func Assert() Operation { return plain(OpAssert) }

// Mul pops two elements and pushes their product.
func Mul() Operation { return plain(OpMul) }

// MLoad reads a word from local memory at the address on the stack.
func MLoad() Operation { return plain(OpMLoad) }

// MStore writes the second stack element to local memory at the
// address on the stack.
func MStore() Operation { return plain(OpMStore) }

// FmpUpdate shifts the local-memory frame pointer by the top of stack.
func FmpUpdate() Operation { return plain(OpFmpUpdate) }

// FmpAdd adds the current frame pointer to the top of the stack.
func FmpAdd() Operation { return plain(OpFmpAdd) }

// U32Add3 adds three 32-bit limbs with carry.
func U32Add3() Operation { return plain(OpU32Add3) }

// U32Madd multiplies two 32-bit limbs and adds a third, with carry.
func U32Madd() Operation { return plain(OpU32Madd) }
