// Command blockasm-assemble compiles a single .masm source file and
// prints its assembled program tree's textual form to stdout. Proving
// and verifying the resulting program is a separate collaborator's job;
// this driver only exercises the assembler itself.
package main

import (
	"fmt"
	"os"

	"github.com/vybium/blockasm/pkg/blockasm"
)

func main() {
	if len(os.Args) != 2 {
		fatal("usage: blockasm-assemble <path.masm>")
	}

	src, err := os.ReadFile(os.Args[1])
	if err != nil {
		fatal(fmt.Sprintf("failed to read %s: %v", os.Args[1], err))
	}

	asm := blockasm.NewAssembler()
	program, err := asm.Compile(string(src))
	if err != nil {
		fatal(fmt.Sprintf("assembly failed: %v", err))
	}

	fmt.Println(program.String())
}

func logStderr(msg string) {
	fmt.Fprintln(os.Stderr, "blockasm-assemble:", msg)
}

func fatal(msg string) {
	logStderr("ERROR: " + msg)
	os.Exit(1)
}
