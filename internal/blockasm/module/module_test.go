package module

import (
	"testing"

	"github.com/vybium/blockasm/internal/blockasm/asmerr"
)

func TestParseProgramBody(t *testing.T) {
	ast, err := Parse("begin push.1 push.2 add end")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !ast.IsProgram {
		t.Fatalf("IsProgram = false, want true")
	}
	want := []string{"push.1", "push.2", "add"}
	if len(ast.ProgramBody) != len(want) {
		t.Fatalf("ProgramBody = %v, want %d tokens", ast.ProgramBody, len(want))
	}
	for i, tok := range want {
		if ast.ProgramBody[i].Text != tok {
			t.Errorf("ProgramBody[%d] = %q, want %q", i, ast.ProgramBody[i].Text, tok)
		}
	}
}

func TestParseLocalProcsAndUses(t *testing.T) {
	src := "use.std::math proc.foo.2 add end export.bar mul end"
	ast, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(ast.LocalProcs) != 2 {
		t.Fatalf("LocalProcs = %v, want 2 entries", ast.LocalProcs)
	}
	foo, ok := ast.FindProc("foo")
	if !ok || foo.NumLocals != 2 || !foo.HasLocals {
		t.Errorf("FindProc(foo) = %+v, ok=%v, want NumLocals=2 HasLocals=true", foo, ok)
	}
	bar, ok := ast.FindProc("bar")
	if !ok || bar.HasLocals {
		t.Errorf("FindProc(bar) = %+v, ok=%v, want HasLocals=false", bar, ok)
	}
	if path := ast.Uses["math"]; path != "std::math" {
		t.Errorf("Uses[math] = %q, want std::math", path)
	}
}

func TestParseUseAliasLastWins(t *testing.T) {
	// Open Question (a): last-wins on alias collision.
	src := "use.a::math use.b::math proc.foo add end begin exec.foo end"
	ast, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := ast.Uses["math"]; got != "b::math" {
		t.Errorf("Uses[math] = %q, want last-registered path b::math", got)
	}
}

func TestParseExportedInProgram(t *testing.T) {
	_, err := Parse("export.foo add end begin exec.foo end")
	requireCode(t, err, asmerr.ExportedInProgram)
}

func TestParseDanglingAfterProgram(t *testing.T) {
	_, err := Parse("begin add end mul")
	requireCode(t, err, asmerr.DanglingAfterProgram)
}

func TestParseEmptyCodeBlock(t *testing.T) {
	_, err := Parse("begin end")
	requireCode(t, err, asmerr.EmptyCodeBlock)
}

func TestParseInvalidProcedureLabel(t *testing.T) {
	_, err := Parse("proc.1bad add end begin exec.foo end")
	requireCode(t, err, asmerr.InvalidProcedureLabel)
}

func TestParseDuplicateProcedureLabel(t *testing.T) {
	_, err := Parse("proc.foo add end proc.foo mul end begin exec.foo end")
	requireCode(t, err, asmerr.DuplicateProcedureLabel)
}

func TestParseUnexpectedBodyTermination(t *testing.T) {
	_, err := Parse("proc.foo add proc.bar mul end end begin exec.foo end")
	requireCode(t, err, asmerr.UnexpectedBodyTermination)
}

func TestParseMissingEndFor(t *testing.T) {
	_, err := Parse("begin if.true add end")
	requireCode(t, err, asmerr.MissingEndFor)
}

func requireCode(t *testing.T, err error, want asmerr.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("Parse succeeded, want error with code %v", want)
	}
	asmErr, ok := err.(*asmerr.Error)
	if !ok {
		t.Fatalf("error is not *asmerr.Error: %v", err)
	}
	if asmErr.Code != want {
		t.Errorf("error code = %v, want %v", asmErr.Code, want)
	}
}
