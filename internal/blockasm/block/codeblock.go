// Package block builds a CodeBlock tree from a procedure or program
// body, performing span packing, procedure inlining, repeat unrolling,
// and local-memory frame injection.
package block

import (
	"fmt"
	"strings"

	"github.com/vybium/blockasm/internal/blockasm/core"
	"github.com/vybium/blockasm/internal/blockasm/ops"
)

// Kind discriminates a CodeBlock's four cases.
type Kind int

const (
	KindSpan Kind = iota
	KindJoin
	KindSplit
	KindLoop
)

// Domain bytes tag each control block kind's merge_in_domain call: the
// domain byte is the opcode of the representative control operation of
// that kind. These are internal block-hash tags, not part of the
// surface VM operation set in internal/blockasm/ops — a Join/Split/Loop
// has no surface mnemonic of its own to borrow an opcode from.
const (
	domainJoin  byte = 0xf0
	domainSplit byte = 0xf1
	domainLoop  byte = 0xf2
)

// CodeBlock is one node of the hashed program tree: a Span of
// straight-line operations, a binary Join, a two-armed Split, or a
// Loop. Each carries an immutable digest computed at construction.
// Children are exclusively owned; trees are never shared by pointer.
type CodeBlock struct {
	Kind Kind
	Hash core.Digest

	Ops []ops.Operation // Span

	Left, Right *CodeBlock // Join

	Then, Else *CodeBlock // Split

	Body *CodeBlock // Loop
}

func newSpan(opsList []ops.Operation) *CodeBlock {
	elems := make([]core.FieldElement, 0, len(opsList)*2)
	for _, o := range opsList {
		elems = append(elems, core.NewFieldElement(uint64(o.Opcode())))
		if o.HasArgument() {
			elems = append(elems, o.Imm)
		}
	}
	return &CodeBlock{Kind: KindSpan, Ops: opsList, Hash: core.HashOps(elems)}
}

func newJoin(left, right *CodeBlock) *CodeBlock {
	return &CodeBlock{
		Kind: KindJoin, Left: left, Right: right,
		Hash: core.MergeInDomain(left.Hash, right.Hash, domainJoin),
	}
}

func newSplit(then, els *CodeBlock) *CodeBlock {
	return &CodeBlock{
		Kind: KindSplit, Then: then, Else: els,
		Hash: core.MergeInDomain(then.Hash, els.Hash, domainSplit),
	}
}

func newLoop(body *CodeBlock) *CodeBlock {
	return &CodeBlock{
		Kind: KindLoop, Body: body,
		Hash: core.MergeInDomain(body.Hash, core.ZeroDigest, domainLoop),
	}
}

// foldJoin combines two or more sequential blocks via left-leaning
// binary Join composition: fold(blocks, Join::new). A singleton slice
// is returned as-is (no wrapping Join).
func foldJoin(blocks []*CodeBlock) *CodeBlock {
	acc := blocks[0]
	for _, b := range blocks[1:] {
		acc = newJoin(acc, b)
	}
	return acc
}

func spanNoop() *CodeBlock {
	return newSpan([]ops.Operation{ops.Noop()})
}

// String renders the block's canonical textual form: "span <op>… end",
// "join <left> <right> end", "if.true <then> else <else> end",
// "while.true <body> end".
func (b *CodeBlock) String() string {
	switch b.Kind {
	case KindSpan:
		parts := make([]string, 0, len(b.Ops)+2)
		parts = append(parts, "span")
		for _, o := range b.Ops {
			parts = append(parts, o.String())
		}
		parts = append(parts, "end")
		return strings.Join(parts, " ")
	case KindJoin:
		return fmt.Sprintf("join %s %s end", b.Left.String(), b.Right.String())
	case KindSplit:
		return fmt.Sprintf("if.true %s else %s end", b.Then.String(), b.Else.String())
	case KindLoop:
		return fmt.Sprintf("while.true %s end", b.Body.String())
	default:
		return ""
	}
}

// Program is a compiled CodeBlock tree with an enforced begin root, the
// public result of a successful compilation.
type Program struct {
	Root *CodeBlock
}

// Hash returns the program's root digest.
func (p *Program) Hash() core.Digest { return p.Root.Hash }

// String renders "begin <root> end".
func (p *Program) String() string {
	return fmt.Sprintf("begin %s end", p.Root.String())
}
