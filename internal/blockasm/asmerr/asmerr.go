// Package asmerr defines the single tagged error kind every assembler
// failure surfaces through: a Code, a human-readable Message, and an
// optional wrapped Cause. pkg/blockasm re-exports Error and Code
// directly.
package asmerr

import "fmt"

// Code classifies an Error. The set is closed.
type Code int

const (
	Unknown Code = iota
	EmptySource
	ExpectedBegin
	MissingEndFor
	DanglingAfterProgram
	EmptyCodeBlock
	UnexpectedBodyTermination
	UndefinedProcedure
	InvalidProcedureLabel
	DuplicateProcedureLabel
	DanglingElse
	MalformedInstruction
	ExportedInProgram
	UndefinedImport
	UnmatchedOpener
)

// Error is the assembler's single tagged error type.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Code, so
// callers can match with errors.Is(err, &asmerr.Error{Code: ...}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// NewEmptySource builds the EmptySource error.
func NewEmptySource() *Error {
	return New(EmptySource, "source code cannot be an empty string")
}

// NewExpectedBegin builds the ExpectedBegin error; found is the token
// text encountered where "begin" was grammatically expected (empty
// string if the source was otherwise exhausted).
func NewExpectedBegin(found string) *Error {
	return New(ExpectedBegin, fmt.Sprintf("unexpected token: expected 'begin' but was '%s'", found))
}

// NewMissingEndFor builds the MissingEndFor error for an unterminated
// form; kind is its opener keyword (e.g. "proc", "begin", "repeat").
func NewMissingEndFor(kind string) *Error {
	return New(MissingEndFor, fmt.Sprintf("%s without matching end", kind))
}

// NewDanglingAfterProgram builds the DanglingAfterProgram error.
func NewDanglingAfterProgram() *Error {
	return New(DanglingAfterProgram, "dangling instructions after program end")
}

// NewEmptyCodeBlock builds the EmptyCodeBlock error.
func NewEmptyCodeBlock() *Error {
	return New(EmptyCodeBlock, "a code block must contain at least one instruction")
}

// NewUnexpectedBodyTermination builds the UnexpectedBodyTermination
// error for an illegal top-level keyword found inside a proc body.
func NewUnexpectedBodyTermination(tok string) *Error {
	return New(UnexpectedBodyTermination, fmt.Sprintf("unexpected body termination: invalid token '%s'", tok))
}

// NewUndefinedProcedure builds the UndefinedProcedure error.
func NewUndefinedProcedure(name string) *Error {
	return New(UndefinedProcedure, fmt.Sprintf("undefined procedure: %s", name))
}

// NewInvalidProcedureLabel builds the InvalidProcedureLabel error.
func NewInvalidProcedureLabel(label string) *Error {
	return New(InvalidProcedureLabel, fmt.Sprintf("invalid procedure label: %s", label))
}

// NewDuplicateProcedureLabel builds the DuplicateProcedureLabel error.
func NewDuplicateProcedureLabel(label string) *Error {
	return New(DuplicateProcedureLabel, fmt.Sprintf("duplicate procedure label: %s", label))
}

// NewDanglingElseNoIf builds the DanglingElse error for an "else" whose
// enclosing frame is not an open "if" (root, while, or repeat frame).
func NewDanglingElseNoIf() *Error {
	return New(DanglingElse, "else without matching if")
}

// NewDanglingElseNoEnd builds the DanglingElse error for a second
// "else" within the same if, where only "end" is expected next.
func NewDanglingElseNoEnd() *Error {
	return New(DanglingElse, "else without matching end")
}

// NewMalformedInstructionParam builds the MalformedInstruction error
// for an invalid parameter value.
func NewMalformedInstructionParam(mnemonic, param string) *Error {
	return New(MalformedInstruction, fmt.Sprintf("malformed instruction `%s`: parameter '%s' is invalid", mnemonic, param))
}

// NewMalformedInstructionMissing builds the MalformedInstruction error
// for a missing required parameter.
func NewMalformedInstructionMissing(mnemonic string) *Error {
	return New(MalformedInstruction, fmt.Sprintf("malformed instruction '%s': missing required parameter", mnemonic))
}

// NewExportedInProgram builds the ExportedInProgram error.
func NewExportedInProgram() *Error {
	return New(ExportedInProgram, "export is not allowed in a program module")
}

// NewUndefinedImport builds the UndefinedImport error.
func NewUndefinedImport(alias string) *Error {
	return New(UndefinedImport, fmt.Sprintf("undefined import alias: %s", alias))
}

// NewUnmatchedOpener builds the UnmatchedOpener error for a body that
// was exhausted with kind's frame still open.
func NewUnmatchedOpener(kind string) *Error {
	return New(UnmatchedOpener, fmt.Sprintf("%s without matching end", kind))
}
