package bytecode

import "fmt"

// Rendering formats shared by the plain and widened operand forms.
const (
	formatLocal = "%s %d"
	formatIinc  = "%s index = %d const = %d"
)

// decodeOperands consumes exactly the operand bytes declared by the catalog
// entry's shape and renders the instruction text. start is the offset of the
// opcode byte, already consumed.
func decodeOperands(r *reader, def *InstructionDef, start int) (Instruction, error) {
	inst := Instruction{Offset: uint32(start), Opcode: def.Opcode}

	switch def.Shape {
	case ShapeNone:
		inst.Text = def.Name()

	case ShapeU8:
		v, err := r.u8()
		if err != nil {
			return inst, err
		}
		inst.Text = fmt.Sprintf(formatLocal, def.Mnemonic, v)

	case ShapeU16:
		v, err := r.u16()
		if err != nil {
			return inst, err
		}
		inst.Text = fmt.Sprintf(formatLocal, def.Mnemonic, v)

	case ShapeBranch16:
		v, err := r.s16()
		if err != nil {
			return inst, err
		}
		inst.Text = fmt.Sprintf(formatLocal, def.Mnemonic, v)

	case ShapeBranch32:
		v, err := r.s32()
		if err != nil {
			return inst, err
		}
		inst.Text = fmt.Sprintf(formatLocal, def.Mnemonic, v)

	case ShapeIinc:
		index, err := r.u8()
		if err != nil {
			return inst, err
		}
		constant, err := r.s8()
		if err != nil {
			return inst, err
		}
		inst.Text = fmt.Sprintf(formatIinc, def.Mnemonic, index, constant)

	case ShapeCPU8:
		idx, err := r.u8()
		if err != nil {
			return inst, err
		}
		cp := uint16(idx)
		inst.CPIndex = &cp
		inst.Text = def.Mnemonic

	case ShapeCPU16:
		idx, err := r.u16()
		if err != nil {
			return inst, err
		}
		inst.CPIndex = &idx
		inst.Text = def.Mnemonic

	case ShapeInvokeInterface:
		idx, err := r.u16()
		if err != nil {
			return inst, err
		}
		nargs, err := r.u8()
		if err != nil {
			return inst, err
		}
		if err := r.skip(1); err != nil {
			return inst, err
		}
		inst.CPIndex = &idx
		inst.Text = fmt.Sprintf("%s interface=%d, nargs=%d", def.Mnemonic, idx, nargs)

	case ShapeInvokeDynamic:
		idx, err := r.u16()
		if err != nil {
			return inst, err
		}
		// The two trailing bytes are required to be zero; skipped, not read.
		if err := r.skip(2); err != nil {
			return inst, err
		}
		inst.CPIndex = &idx
		inst.Text = def.Mnemonic

	case ShapeNewArray:
		code, err := r.u8()
		if err != nil {
			return inst, err
		}
		inst.Text = fmt.Sprintf("%s %s", def.Mnemonic, ArrayTypeName(code))

	case ShapeMultiArray:
		idx, err := r.u16()
		if err != nil {
			return inst, err
		}
		dims, err := r.u8()
		if err != nil {
			return inst, err
		}
		inst.CPIndex = &idx
		inst.Text = fmt.Sprintf("%s type=%d dimensions=%d", def.Mnemonic, idx, dims)

	case ShapeTableSwitch:
		text, err := decodeTableSwitch(r, def.Mnemonic)
		if err != nil {
			return inst, err
		}
		inst.Text = text

	case ShapeLookupSwitch:
		text, err := decodeLookupSwitch(r, def.Mnemonic)
		if err != nil {
			return inst, err
		}
		inst.Text = text

	case ShapeWide:
		text, err := decodeWide(r)
		if err != nil {
			return inst, err
		}
		inst.Text = text

	default:
		inst.Text = def.Name()
	}

	return inst, nil
}
