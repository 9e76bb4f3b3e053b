package block

import (
	"testing"

	"github.com/vybium/blockasm/internal/blockasm/asmerr"
	"github.com/vybium/blockasm/internal/blockasm/module"
	"github.com/vybium/blockasm/internal/blockasm/resolver"
)

func compile(t *testing.T, source string) *Program {
	t.Helper()
	ast, err := module.Parse(source)
	if err != nil {
		t.Fatalf("module.Parse(%q) returned error: %v", source, err)
	}
	p, err := Build(ast, resolver.EmptyProvider{})
	if err != nil {
		t.Fatalf("Build(%q) returned error: %v", source, err)
	}
	return p
}

func TestBuildLeftLeaningJoin(t *testing.T) {
	// Four sequential instructions with no control flow between them
	// still merge into a single Span — Join only appears where a
	// control block interrupts the straight-line run. Force three spans
	// separated by two if.true blocks (five siblings) to check
	// binarization of 3+ siblings.
	p := compile(t, "begin add if.true mul end mul if.true mul end mul end")
	if p.Root.Kind != KindJoin {
		t.Fatalf("root.Kind = %v, want KindJoin", p.Root.Kind)
	}
	// Left-leaning: the outermost Join's left child should itself be a
	// Join (or Span), never revealing an n-ary flattening.
	inner := p.Root.Left
	if inner.Kind != KindJoin && inner.Kind != KindSpan {
		t.Errorf("left-leaning fold violated: root.Left.Kind = %v", inner.Kind)
	}
}

func TestBuildSpanNeverEmpty(t *testing.T) {
	p := compile(t, "begin add end")
	if p.Root.Kind != KindSpan || len(p.Root.Ops) == 0 {
		t.Errorf("root = %+v, want a non-empty Span", p.Root)
	}
}

func TestBuildSplitAlwaysHasBothArms(t *testing.T) {
	p := compile(t, "begin push.1 if.true add end end")
	split := findSplit(t, p.Root)
	if split.Then == nil || split.Else == nil {
		t.Fatalf("Split has a nil arm: %+v", split)
	}
	if split.Else.Kind != KindSpan || len(split.Else.Ops) != 1 || split.Else.Ops[0].String() != "noop" {
		t.Errorf("absent else arm = %v, want Span{noop}", split.Else)
	}
}

func TestBuildRepeatUnrolls(t *testing.T) {
	p := compile(t, "begin repeat.2 push.8 end end")
	if p.Root.Kind != KindSpan {
		t.Fatalf("root.Kind = %v, want KindSpan", p.Root.Kind)
	}
	want := []string{"push(8)", "push(8)"}
	if len(p.Root.Ops) != len(want) {
		t.Fatalf("root.Ops = %v, want %v", p.Root.Ops, want)
	}
	for i, w := range want {
		if p.Root.Ops[i].String() != w {
			t.Errorf("Ops[%d] = %q, want %q", i, p.Root.Ops[i].String(), w)
		}
	}
}

func TestBuildDigestStability(t *testing.T) {
	p1 := compile(t, "begin push.1 push.2 add end")
	p2 := compile(t, "begin push.1 push.2 add end")
	if !p1.Hash().Equal(p2.Hash()) {
		t.Errorf("identical programs produced different digests")
	}
}

func TestBuildDanglingElseWithinIf(t *testing.T) {
	_, err := buildFromSource("begin push.1 if.true add else mul else mul end end")
	if err == nil {
		t.Fatalf("expected a DanglingElse error for a second else")
	}
	asmErr, ok := err.(*asmerr.Error)
	if !ok {
		t.Fatalf("error is not *asmerr.Error: %v", err)
	}
	if asmErr.Code != asmerr.DanglingElse {
		t.Errorf("error code = %v, want DanglingElse", asmErr.Code)
	}
	if asmErr.Message != "else without matching end" {
		t.Errorf("message = %q, want %q", asmErr.Message, "else without matching end")
	}
}

func buildFromSource(source string) (*Program, error) {
	ast, err := module.Parse(source)
	if err != nil {
		return nil, err
	}
	return Build(ast, resolver.EmptyProvider{})
}

func findSplit(t *testing.T, b *CodeBlock) *CodeBlock {
	t.Helper()
	switch b.Kind {
	case KindSplit:
		return b
	case KindJoin:
		if s := findSplitOrNil(b.Left); s != nil {
			return s
		}
		if s := findSplitOrNil(b.Right); s != nil {
			return s
		}
	}
	t.Fatalf("no Split block found in tree rooted at %v", b)
	return nil
}

func findSplitOrNil(b *CodeBlock) *CodeBlock {
	if b == nil {
		return nil
	}
	switch b.Kind {
	case KindSplit:
		return b
	case KindJoin:
		if s := findSplitOrNil(b.Left); s != nil {
			return s
		}
		return findSplitOrNil(b.Right)
	}
	return nil
}
