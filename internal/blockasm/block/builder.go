package block

import (
	"github.com/vybium/blockasm/internal/blockasm/asmerr"
	"github.com/vybium/blockasm/internal/blockasm/core"
	"github.com/vybium/blockasm/internal/blockasm/instr"
	"github.com/vybium/blockasm/internal/blockasm/module"
	"github.com/vybium/blockasm/internal/blockasm/ops"
	"github.com/vybium/blockasm/internal/blockasm/resolver"
	"github.com/vybium/blockasm/internal/blockasm/token"
)

// ctx is the module scope active while flattening a body: the module
// whose use-aliases and local procedures are in effect, and the
// provider consulted for imported procedures. Inlining a cross-module
// exec site switches ctx to the callee module's own scope, so the
// callee's exec sites resolve against its own aliases, not the
// caller's.
type ctx struct {
	ast      *module.AST
	provider resolver.ModuleProvider
}

// Build constructs the program's CodeBlock tree from its module AST's
// program body, resolving imported procedures through provider.
func Build(ast *module.AST, provider resolver.ModuleProvider) (*Program, error) {
	items, err := flatten(ast.ProgramBody, &ctx{ast: ast, provider: provider})
	if err != nil {
		return nil, err
	}
	root, err := buildRoot(items)
	if err != nil {
		return nil, err
	}
	return &Program{Root: root}, nil
}

// item is one entry of the flattened body: either a run of VM
// operations ready to merge into the surrounding span, or a structural
// control-flow marker (if/else/while/end). repeat.N and exec sites are
// expanded away entirely during flatten and never appear as items.
type item struct {
	kind       itemKind
	operations []ops.Operation
}

type itemKind int

const (
	itemOps itemKind = iota
	itemIf
	itemElse
	itemWhile
	itemEnd
)

// flatten walks body's tokens, decoding straight-line instructions into
// operation-bearing items, passing if/while/end through as structural
// markers, and expanding repeat.N unrolling and exec.* inlining inline
// — each recursively flattened in its own scope before splicing in.
func flatten(body []token.Token, c *ctx) ([]item, error) {
	var out []item
	i := 0
	for i < len(body) {
		t := body[i]
		d, err := instr.Decode(t)
		if err != nil {
			return nil, err
		}
		switch d.Kind {
		case instr.KindOps:
			out = append(out, item{kind: itemOps, operations: d.Ops})
			i++
		case instr.KindIfTrue:
			out = append(out, item{kind: itemIf})
			i++
		case instr.KindElse:
			out = append(out, item{kind: itemElse})
			i++
		case instr.KindWhileTrue:
			out = append(out, item{kind: itemWhile})
			i++
		case instr.KindEnd:
			out = append(out, item{kind: itemEnd})
			i++
		case instr.KindRepeat:
			inner, next, err := scanControlBody(body, i+1)
			if err != nil {
				return nil, err
			}
			for n := uint64(0); n < d.RepeatN; n++ {
				sub, err := flatten(inner, c)
				if err != nil {
					return nil, err
				}
				out = append(out, sub...)
			}
			i = next
		case instr.KindExec:
			expanded, err := c.inlineExec(d.Alias, d.Name)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)
			i++
		default:
			return nil, asmerr.NewUnexpectedBodyTermination(t.Text)
		}
	}
	return out, nil
}

// scanControlBody finds the extent of a repeat.N body: the tokens up
// to its own matching "end", tracking nested if/while/repeat openers.
// The module parser has already verified the overall body is balanced,
// so exhaustion here without a match cannot happen for well-formed
// input; the error is a defensive backstop.
func scanControlBody(toks []token.Token, start int) ([]token.Token, int, error) {
	depth := 0
	for i := start; i < len(toks); i++ {
		root, _ := token.Split(toks[i].Text)
		switch root {
		case "if", "while", "repeat":
			depth++
		case "end":
			if depth == 0 {
				return toks[start:i], i + 1, nil
			}
			depth--
		}
	}
	return nil, 0, asmerr.NewMissingEndFor("repeat")
}

func (c *ctx) inlineExec(alias, name string) ([]item, error) {
	var proc module.ProcDecl
	var calleeCtx *ctx
	if alias == "" {
		p, ok := c.ast.FindProc(name)
		if !ok {
			return nil, asmerr.NewUndefinedProcedure(name)
		}
		proc, calleeCtx = p, c
	} else {
		path, ok := c.ast.Uses[alias]
		if !ok {
			return nil, asmerr.NewUndefinedImport(alias)
		}
		id := resolver.NewProcedureID(path, name)
		named, ok := c.provider.GetModule(id)
		if !ok {
			return nil, asmerr.NewUndefinedProcedure(name)
		}
		p, ok := named.Module.FindProc(name)
		if !ok {
			return nil, asmerr.NewUndefinedProcedure(name)
		}
		proc, calleeCtx = p, &ctx{ast: named.Module, provider: c.provider}
	}

	body, err := flatten(proc.Body, calleeCtx)
	if err != nil {
		return nil, err
	}
	if proc.NumLocals == 0 {
		return body, nil
	}
	var out []item
	out = append(out, item{kind: itemOps, operations: []ops.Operation{
		instr.LowerFrameAdjust(proc.NumLocals), ops.FmpUpdate(),
	}})
	out = append(out, body...)
	out = append(out, item{kind: itemOps, operations: []ops.Operation{
		instr.LowerFrameAdjust(core.Negate(proc.NumLocals)), ops.FmpUpdate(),
	}})
	return out, nil
}

// frame classifies the enclosing construct a recursive buildSeq call is
// accumulating blocks for, so itemElse and end-of-input are judged
// against the right expectation.
type frame int

const (
	frameRoot frame = iota
	frameIfThen
	frameIfElse
	frameWhileBody
)

// term reports which marker ended a buildSeq call.
type term int

const (
	termNone term = iota // reached end-of-input; only legal for frameRoot
	termEnd
	termElse
)

func buildRoot(items []item) (*CodeBlock, error) {
	blocks, _, _, err := buildSeq(items, 0, frameRoot)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, asmerr.NewEmptyCodeBlock()
	}
	return foldJoin(blocks), nil
}

// buildSeq accumulates sequential blocks left-to-right from items[i:],
// flushing the straight-line operation buffer into a Span whenever a
// control construct is entered, until it meets the terminator its
// enclosing frame expects.
func buildSeq(items []item, i int, fr frame) ([]*CodeBlock, int, term, error) {
	var blocks []*CodeBlock
	var span []ops.Operation
	flush := func() {
		if len(span) > 0 {
			blocks = append(blocks, newSpan(span))
			span = nil
		}
	}

	for i < len(items) {
		it := items[i]
		switch it.kind {
		case itemOps:
			span = append(span, it.operations...)
			i++

		case itemIf:
			flush()
			thenBlocks, next, t, err := buildSeq(items, i+1, frameIfThen)
			if err != nil {
				return nil, 0, termNone, err
			}
			if len(thenBlocks) == 0 {
				return nil, 0, termNone, asmerr.NewEmptyCodeBlock()
			}
			thenBlock := foldJoin(thenBlocks)
			var elseBlock *CodeBlock
			if t == termElse {
				elseBlocks, next2, t2, err := buildSeq(items, next, frameIfElse)
				if err != nil {
					return nil, 0, termNone, err
				}
				if t2 != termEnd {
					return nil, 0, termNone, asmerr.NewUnmatchedOpener("if")
				}
				if len(elseBlocks) == 0 {
					return nil, 0, termNone, asmerr.NewEmptyCodeBlock()
				}
				elseBlock = foldJoin(elseBlocks)
				i = next2
			} else {
				elseBlock = spanNoop()
				i = next
			}
			blocks = append(blocks, newSplit(thenBlock, elseBlock))

		case itemWhile:
			flush()
			bodyBlocks, next, t, err := buildSeq(items, i+1, frameWhileBody)
			if err != nil {
				return nil, 0, termNone, err
			}
			if t != termEnd {
				return nil, 0, termNone, asmerr.NewUnmatchedOpener("while")
			}
			if len(bodyBlocks) == 0 {
				return nil, 0, termNone, asmerr.NewEmptyCodeBlock()
			}
			blocks = append(blocks, newLoop(foldJoin(bodyBlocks)))
			i = next

		case itemElse:
			switch fr {
			case frameIfThen:
				flush()
				return blocks, i + 1, termElse, nil
			case frameIfElse:
				return nil, 0, termNone, asmerr.NewDanglingElseNoEnd()
			default:
				return nil, 0, termNone, asmerr.NewDanglingElseNoIf()
			}

		case itemEnd:
			flush()
			return blocks, i + 1, termEnd, nil
		}
	}

	if fr == frameRoot {
		flush()
		return blocks, i, termNone, nil
	}
	return nil, 0, termNone, asmerr.NewUnmatchedOpener(openerName(fr))
}

func openerName(fr frame) string {
	switch fr {
	case frameIfThen, frameIfElse:
		return "if"
	case frameWhileBody:
		return "while"
	default:
		return "block"
	}
}
