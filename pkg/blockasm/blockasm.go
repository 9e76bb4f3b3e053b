// Package blockasm is the public facade for the assembler: it compiles
// assembly source text into a hashed CodeBlock program tree.
package blockasm

import (
	"github.com/vybium/blockasm/internal/blockasm/asmerr"
	"github.com/vybium/blockasm/internal/blockasm/block"
	"github.com/vybium/blockasm/internal/blockasm/module"
	"github.com/vybium/blockasm/internal/blockasm/resolver"
)

// Re-exported types (type X = internalpkg.X) so callers never import
// internal/* directly.
type (
	Program        = block.Program
	CodeBlock      = block.CodeBlock
	ModuleProvider = resolver.ModuleProvider
	NamedModuleAST = resolver.NamedModuleAST
	ProcedureID    = resolver.ProcedureID

	// Error is the assembler's single tagged error type.
	Error = asmerr.Error
	// ErrorCode classifies an Error; the set is closed.
	ErrorCode = asmerr.Code
)

// NewProcedureID computes the procedure identifier a module provider
// indexes by: the digest of "module_path::proc_name".
var NewProcedureID = resolver.NewProcedureID

// EmptyProvider is a ModuleProvider that never resolves anything; it is
// the Assembler's default when no module provider option is supplied.
type EmptyProvider = resolver.EmptyProvider

// NewFixedProvider builds a ModuleProvider over a fixed set of named
// modules, each produced by ParseModule. Every local procedure of every
// module is indexed by its computed ProcedureID at construction time.
func NewFixedProvider(modules ...NamedModuleAST) ModuleProvider {
	byPath := make(map[string]*module.AST, len(modules))
	for _, m := range modules {
		byPath[m.Path] = m.Module
	}
	return resolver.NewFixedProvider(byPath)
}

// Assembler is a value-type configurator for Compile: the one
// recognized option is a module provider, default empty.
type Assembler struct {
	provider ModuleProvider
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithModuleProvider sets the capability consulted for exec.alias::name
// sites that reference procedures outside the compiled module.
func WithModuleProvider(p ModuleProvider) Option {
	return func(a *Assembler) { a.provider = p }
}

// NewAssembler builds an Assembler, applying opts over a default
// configuration (an EmptyProvider module provider).
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{provider: EmptyProvider{}}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Compile parses source as a program module and builds its CodeBlock
// tree, inlining any exec.alias::name sites via the Assembler's module
// provider. It returns an *Error on failure.
func (a *Assembler) Compile(source string) (*Program, error) {
	ast, err := module.Parse(source)
	if err != nil {
		return nil, err
	}
	if !ast.IsProgram {
		return nil, asmerr.NewExpectedBegin("")
	}
	return block.Build(ast, a.provider)
}

// ParseModule parses source as a library module (no begin…end body
// required) and pairs it with its fully-qualified path, ready to hand
// to NewFixedProvider or a caller's own ModuleProvider implementation.
// Unlike Compile, it accepts modules with no program body.
func ParseModule(path, source string) (NamedModuleAST, error) {
	ast, err := module.Parse(source)
	if err != nil {
		return NamedModuleAST{}, err
	}
	return NamedModuleAST{Path: path, Module: ast}, nil
}
