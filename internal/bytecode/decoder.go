package bytecode

import (
	"errors"
	"fmt"
)

// Decode errors. ErrTruncated is returned alongside every instruction that
// was fully decoded before the stream ran out; ErrUnknownOpcode is only
// returned by a strict Decoder.
var (
	ErrTruncated     = errors.New("code array truncated mid-instruction")
	ErrUnknownOpcode = errors.New("unknown opcode")
)

// Instruction is one decoded unit of a method's code array.
type Instruction struct {
	// Offset is the byte position of the opcode within the code array.
	Offset uint32 `json:"offset"`
	// Opcode is the raw opcode byte.
	Opcode byte `json:"opcode"`
	// Text is the mnemonic plus rendered operands. Jump tables render one
	// target per line.
	Text string `json:"text"`
	// CPIndex is the referenced constant pool index, nil when the
	// instruction does not reference the constant pool.
	CPIndex *uint16 `json:"cpIndex,omitempty"`
}

// Decoder decodes method code arrays. The zero value is the permissive
// decoder; Strict makes an undefined opcode byte stop the decode instead of
// producing a placeholder record and resuming at the next byte.
//
// A Decoder holds no state across calls and is safe for concurrent use.
type Decoder struct {
	Strict bool
}

// Decode turns a code array into an ordered instruction list. Empty or nil
// input yields an empty list.
//
// On truncation the instructions decoded so far are returned together with
// an error wrapping ErrTruncated; callers must treat a non-nil error as a
// sign that the list does not cover the whole array.
func (d *Decoder) Decode(code []byte) ([]Instruction, error) {
	insts := []Instruction{}
	if len(code) == 0 {
		return insts, nil
	}

	r := newReader(code)
	for r.remaining() > 0 {
		start := r.pos()
		op, _ := r.u8()

		def, ok := Lookup(op)
		if !ok {
			if d.Strict {
				return insts, fmt.Errorf("offset %d: opcode 0x%02X: %w", start, op, ErrUnknownOpcode)
			}
			// The operand width of an undefined opcode is unknowable, so
			// decoding resumes at the very next byte. Best effort: a
			// malformed stream can desync every later offset.
			insts = append(insts, Instruction{
				Offset: uint32(start),
				Opcode: op,
				Text:   TextUnknownOpcode,
			})
			continue
		}

		inst, err := decodeOperands(r, def, start)
		if err != nil {
			return insts, fmt.Errorf("offset %d: %s: %w", start, def.Mnemonic, ErrTruncated)
		}
		insts = append(insts, inst)
	}
	return insts, nil
}

// Decode decodes a code array with the default permissive policy.
func Decode(code []byte) ([]Instruction, error) {
	var d Decoder
	return d.Decode(code)
}
