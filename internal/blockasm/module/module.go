// Package module parses assembly source into a module AST: a set of
// local procedure declarations plus, for a program module, the single
// begin…end body.
package module

import (
	"regexp"
	"strings"

	"github.com/vybium/blockasm/internal/blockasm/asmerr"
	"github.com/vybium/blockasm/internal/blockasm/instr"
	"github.com/vybium/blockasm/internal/blockasm/token"
)

var labelPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ProcDecl is one local procedure declaration: its label, local-word
// count, and unparsed body token slice (consumed later by the block
// builder).
type ProcDecl struct {
	Label     string
	NumLocals uint64
	HasLocals bool
	Body      []token.Token
}

// AST is one module's parse result: its local procedures, its use-alias
// table, and, if the source declared a begin…end form, the program body.
type AST struct {
	LocalProcs  []ProcDecl
	Uses        map[string]string // alias -> full module path, last-wins
	ProgramBody []token.Token
	IsProgram   bool
}

// FindProc looks up a local procedure by label.
func (a *AST) FindProc(name string) (ProcDecl, bool) {
	for _, p := range a.LocalProcs {
		if p.Label == name {
			return p, true
		}
	}
	return ProcDecl{}, false
}

// Parse tokenizes source and builds its module AST, validating the
// grammar: duplicate/invalid procedure labels, export-at-program-scope,
// and dangling tokens after a program's end.
func Parse(source string) (*AST, error) {
	stream, err := token.NewStream(source)
	if err != nil {
		return nil, err
	}
	toks := stream.All()

	ast := &AST{Uses: map[string]string{}}
	seen := map[string]bool{}
	sawExport := false

	i := 0
	for i < len(toks) {
		t := toks[i]
		root, _ := token.Split(t.Text)
		switch root {
		case "use":
			d, err := instr.Decode(t)
			if err != nil {
				return nil, err
			}
			ast.Uses[lastSegment(d.Path)] = d.Path
			i++
		case "proc", "export":
			d, err := instr.Decode(t)
			if err != nil {
				return nil, err
			}
			if !labelPattern.MatchString(d.Label) {
				return nil, asmerr.NewInvalidProcedureLabel(d.Label)
			}
			if seen[d.Label] {
				return nil, asmerr.NewDuplicateProcedureLabel(d.Label)
			}
			body, next, err := scanBody(toks, i+1, root)
			if err != nil {
				return nil, err
			}
			if len(body) == 0 {
				return nil, asmerr.NewEmptyCodeBlock()
			}
			seen[d.Label] = true
			if root == "export" {
				sawExport = true
			}
			ast.LocalProcs = append(ast.LocalProcs, ProcDecl{
				Label:     d.Label,
				NumLocals: d.NumLocals,
				HasLocals: d.HasLocals,
				Body:      body,
			})
			i = next
		case "begin":
			if sawExport {
				return nil, asmerr.NewExportedInProgram()
			}
			body, next, err := scanBody(toks, i+1, root)
			if err != nil {
				return nil, err
			}
			if len(body) == 0 {
				return nil, asmerr.NewEmptyCodeBlock()
			}
			ast.ProgramBody = body
			ast.IsProgram = true
			i = next
			if i < len(toks) {
				return nil, asmerr.NewDanglingAfterProgram()
			}
		default:
			return nil, asmerr.NewExpectedBegin(t.Text)
		}
	}
	return ast, nil
}

// scanBody finds the extent of a top-level proc/export/begin body:
// everything up to (but not including) the matching depth-0 "end",
// tracking nested if/while/repeat openers so their own "end"s don't
// terminate early. A proc/export/begin keyword encountered at depth 0
// before that end is an illegal body terminator.
func scanBody(toks []token.Token, start int, openerKind string) ([]token.Token, int, error) {
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
		case "proc", "export", "begin":
			if depth == 0 {
				return nil, 0, asmerr.NewUnexpectedBodyTermination(toks[i].Text)
			}
		}
	}
	return nil, 0, asmerr.NewMissingEndFor(openerKind)
}

func lastSegment(path string) string {
	idx := strings.LastIndex(path, "::")
	if idx < 0 {
		return path
	}
	return path[idx+2:]
}
