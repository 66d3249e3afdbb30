// Package render formats decoded instructions into the textual listing shown
// by the CLI and the TUI.
package render

import (
	"fmt"
	"strings"

	"jinspect/internal/bytecode"
)

// maxDescription caps resolved constant pool descriptions so a pathological
// constant (a giant string literal, say) cannot blow up the listing.
const maxDescription = 1000

// A Describer resolves a constant pool index to human-readable text.
// *classfile.Pool satisfies it.
type Describer interface {
	Describe(index uint16) string
}

// Line formats a single instruction without constant pool resolution.
func Line(inst bytecode.Instruction) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Offset %04d: opcode [%02X] %s", inst.Offset, inst.Opcode, inst.Text)
	if inst.CPIndex != nil {
		fmt.Fprintf(&sb, " %d", *inst.CPIndex)
	}
	return sb.String()
}

// LineWithPool formats an instruction and, when it carries a constant pool
// index, appends the resolved description.
func LineWithPool(inst bytecode.Instruction, pool Describer) string {
	line := Line(inst)
	if inst.CPIndex == nil || pool == nil {
		return line
	}
	desc := pool.Describe(*inst.CPIndex)
	if desc == "" {
		return line
	}
	if len(desc) > maxDescription {
		desc = desc[:maxDescription]
	}
	return line + " - " + desc
}

// Listing renders every instruction on its own line.
func Listing(insts []bytecode.Instruction, pool Describer) string {
	var sb strings.Builder
	for _, inst := range insts {
		sb.WriteString(LineWithPool(inst, pool))
		sb.WriteByte('\n')
	}
	return sb.String()
}
