// Package instr decodes a single token of the form
// mnemonic[.param[.param…]] into either a span fragment (a sequence of
// VM operations) or a recognized control keyword.
package instr

import (
	"strconv"
	"strings"

	"github.com/vybium/blockasm/internal/blockasm/asmerr"
	"github.com/vybium/blockasm/internal/blockasm/core"
	"github.com/vybium/blockasm/internal/blockasm/ops"
	"github.com/vybium/blockasm/internal/blockasm/token"
)

// Kind classifies what a decoded token represents.
type Kind int

const (
	KindOps Kind = iota
	KindBegin
	KindProc
	KindExport
	KindUse
	KindIfTrue
	KindElse
	KindWhileTrue
	KindRepeat
	KindEnd
	KindExec
)

// Decoded is the result of decoding one token.
type Decoded struct {
	Kind Kind

	// KindOps
	Ops []ops.Operation

	// KindProc, KindExport
	Label     string
	NumLocals uint64
	HasLocals bool

	// KindUse
	Path string

	// KindRepeat
	RepeatN uint64

	// KindExec
	Alias string // empty for a local exec
	Name  string
}

// Decode classifies and, where applicable, lowers a single token.
func Decode(t token.Token) (Decoded, error) {
	root, params := token.Split(t.Text)
	switch root {
	case "begin":
		return Decoded{Kind: KindBegin}, nil
	case "end":
		return Decoded{Kind: KindEnd}, nil
	case "else":
		return Decoded{Kind: KindElse}, nil
	case "use":
		if len(params) != 1 || params[0] == "" {
			return Decoded{}, asmerr.NewMalformedInstructionMissing(root)
		}
		return Decoded{Kind: KindUse, Path: params[0]}, nil
	case "proc", "export":
		return decodeProcHeader(root, params)
	case "if":
		return decodeQualifiedTrue(root, params, KindIfTrue)
	case "while":
		return decodeQualifiedTrue(root, params, KindWhileTrue)
	case "repeat":
		return decodeRepeat(root, params)
	case "exec":
		return decodeExec(root, params)
	default:
		opsOut, err := lowerMnemonic(root, params)
		if err != nil {
			return Decoded{}, err
		}
		return Decoded{Kind: KindOps, Ops: opsOut}, nil
	}
}

func decodeProcHeader(root string, params []string) (Decoded, error) {
	kind := KindProc
	if root == "export" {
		kind = KindExport
	}
	if len(params) < 1 || params[0] == "" {
		return Decoded{}, asmerr.NewMalformedInstructionMissing(root)
	}
	d := Decoded{Kind: kind, Label: params[0]}
	if len(params) >= 2 {
		n, err := strconv.ParseUint(params[1], 10, 32)
		if err != nil {
			return Decoded{}, asmerr.NewMalformedInstructionParam(root, params[1])
		}
		d.NumLocals = n
		d.HasLocals = true
	}
	return d, nil
}

func decodeQualifiedTrue(root string, params []string, kind Kind) (Decoded, error) {
	if len(params) != 1 || params[0] == "" {
		return Decoded{}, asmerr.NewMalformedInstructionMissing(root)
	}
	if params[0] != "true" {
		return Decoded{}, asmerr.NewMalformedInstructionParam(root, params[0])
	}
	return Decoded{Kind: kind}, nil
}

func decodeRepeat(root string, params []string) (Decoded, error) {
	if len(params) != 1 || params[0] == "" {
		return Decoded{}, asmerr.NewMalformedInstructionMissing(root)
	}
	n, err := strconv.ParseUint(params[0], 10, 32)
	if err != nil || n == 0 {
		return Decoded{}, asmerr.NewMalformedInstructionParam(root, params[0])
	}
	return Decoded{Kind: KindRepeat, RepeatN: n}, nil
}

func decodeExec(root string, params []string) (Decoded, error) {
	if len(params) != 1 || params[0] == "" {
		return Decoded{}, asmerr.NewMalformedInstructionMissing(root)
	}
	site := params[0]
	if idx := strings.Index(site, "::"); idx >= 0 {
		alias := site[:idx]
		name := site[idx+2:]
		if alias == "" || name == "" {
			return Decoded{}, asmerr.NewMalformedInstructionParam(root, site)
		}
		return Decoded{Kind: KindExec, Alias: alias, Name: name}, nil
	}
	return Decoded{Kind: KindExec, Name: site}, nil
}

// LowerPush implements push.v's constant folding: push.0 -> pad,
// push.1 -> pad incr, push.v for v>=2 -> push(v).
func LowerPush(v uint64) []ops.Operation {
	switch v {
	case 0:
		return []ops.Operation{ops.Pad()}
	case 1:
		return []ops.Operation{ops.Pad(), ops.Incr()}
	default:
		return []ops.Operation{ops.Push(core.NewFieldElement(v))}
	}
}

// LowerFrameAdjust builds a procedure prologue/epilogue push, which
// never folds even when the local count is 0 or 1 — test fixtures show
// a literal push(1) for a one-local procedure's prologue, unlike a
// surface push.1.
func LowerFrameAdjust(v uint64) ops.Operation {
	return ops.Push(core.NewFieldElement(v))
}

func lowerMnemonic(mnemonic string, params []string) ([]ops.Operation, error) {
	switch mnemonic {
	case "push":
		if len(params) != 1 || params[0] == "" {
			return nil, asmerr.NewMalformedInstructionMissing(mnemonic)
		}
		v, err := strconv.ParseUint(params[0], 10, 64)
		if err != nil {
			return nil, asmerr.NewMalformedInstructionParam(mnemonic, params[0])
		}
		return LowerPush(v), nil
	case "add":
		return []ops.Operation{ops.Add()}, nil
	case "mul":
		return []ops.Operation{ops.Mul()}, nil
	case "drop":
		return []ops.Operation{ops.Drop()}, nil
	case "neg":
		return []ops.Operation{ops.Neg()}, nil
	case "sub":
		return []ops.Operation{ops.Neg(), ops.Add()}, nil
	case "noop":
		return []ops.Operation{ops.Noop()}, nil
	case "mload":
		return []ops.Operation{ops.MLoad()}, nil
	case "mstore":
		return []ops.Operation{ops.MStore()}, nil
	case "fmpupdate":
		return []ops.Operation{ops.FmpUpdate()}, nil
	case "fmpadd":
		return []ops.Operation{ops.FmpAdd()}, nil
	case "assert":
		return []ops.Operation{ops.Assert()}, nil
	case "assertz":
		return []ops.Operation{ops.Eqz(), ops.Assert()}, nil
	case "u32wrapping_madd":
		return []ops.Operation{ops.U32Madd(), ops.Drop()}, nil
	case "u32wrapping_add3":
		return []ops.Operation{ops.U32Add3(), ops.Drop()}, nil
	case "eq":
		if len(params) != 1 || params[0] == "" {
			return nil, asmerr.NewMalformedInstructionMissing(mnemonic)
		}
		if params[0] != "0" {
			return nil, asmerr.NewMalformedInstructionParam(mnemonic, params[0])
		}
		return []ops.Operation{ops.Eqz()}, nil
	case "swap":
		i, err := requireUintParam(mnemonic, params)
		if err != nil {
			return nil, err
		}
		return []ops.Operation{ops.Swap(uint32(i))}, nil
	case "dup":
		i, err := requireUintParam(mnemonic, params)
		if err != nil {
			return nil, err
		}
		return []ops.Operation{ops.Dup(uint32(i))}, nil
	case "loc_store":
		i, err := requireUintParam(mnemonic, params)
		if err != nil {
			return nil, err
		}
		out := LowerPush(i)
		return append(out, ops.FmpAdd(), ops.MStore(), ops.Drop()), nil
	case "loc_load":
		i, err := requireUintParam(mnemonic, params)
		if err != nil {
			return nil, err
		}
		out := LowerPush(i)
		return append(out, ops.FmpAdd(), ops.MLoad()), nil
	default:
		return nil, asmerr.NewMalformedInstructionMissing(mnemonic)
	}
}

func requireUintParam(mnemonic string, params []string) (uint64, error) {
	if len(params) != 1 || params[0] == "" {
		return 0, asmerr.NewMalformedInstructionMissing(mnemonic)
	}
	v, err := strconv.ParseUint(params[0], 10, 32)
	if err != nil {
		return 0, asmerr.NewMalformedInstructionParam(mnemonic, params[0])
	}
	return v, nil
}
