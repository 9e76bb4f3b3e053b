// Package resolver implements procedure identifiers and the pluggable
// module provider capability: resolving a cross-module exec.alias::name
// site to the defining module's AST.
package resolver

import (
	"golang.org/x/crypto/sha3"

	"github.com/vybium/blockasm/internal/blockasm/module"
)

// ProcedureID is the digest of "module_path::proc_name" used to look a
// procedure up in a module provider.
type ProcedureID [32]byte

// NewProcedureID computes the procedure identifier for a fully-qualified
// module path and procedure name: a byte-oriented hash over the UTF-8
// encoded key, computed before anything touches field elements.
func NewProcedureID(modulePath, procName string) ProcedureID {
	return sha3.Sum256([]byte(modulePath + "::" + procName))
}

// NamedModuleAST pairs a module's fully-qualified path with its parsed
// AST, the shape a provider returns on a successful lookup.
type NamedModuleAST struct {
	Path   string
	Module *module.AST
}

// ModuleProvider resolves a procedure identifier to the module that
// defines it.
type ModuleProvider interface {
	GetModule(id ProcedureID) (NamedModuleAST, bool)
}

// EmptyProvider never resolves anything; it is the Assembler's default
// when no module provider option is supplied.
type EmptyProvider struct{}

// GetModule always reports no match.
func (EmptyProvider) GetModule(ProcedureID) (NamedModuleAST, bool) {
	return NamedModuleAST{}, false
}

// FixedProvider resolves procedure identifiers against a fixed set of
// named modules, pre-indexed by every local procedure's computed ID at
// construction time.
type FixedProvider struct {
	byID map[ProcedureID]NamedModuleAST
}

// NewFixedProvider builds a FixedProvider from a set of parsed modules
// keyed by their fully-qualified path. Every local procedure of every
// module is indexed so GetModule resolves in constant time.
func NewFixedProvider(modules map[string]*module.AST) *FixedProvider {
	p := &FixedProvider{byID: make(map[ProcedureID]NamedModuleAST)}
	for path, ast := range modules {
		named := NamedModuleAST{Path: path, Module: ast}
		for _, proc := range ast.LocalProcs {
			p.byID[NewProcedureID(path, proc.Label)] = named
		}
	}
	return p
}

// GetModule implements ModuleProvider.
func (p *FixedProvider) GetModule(id ProcedureID) (NamedModuleAST, bool) {
	m, ok := p.byID[id]
	return m, ok
}
