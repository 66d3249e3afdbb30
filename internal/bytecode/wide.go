package bytecode

import "fmt"

// Opcode values the widening prefix may legally precede.
const (
	opIload  = 21
	opLload  = 22
	opFload  = 23
	opDload  = 24
	opAload  = 25
	opIstore = 54
	opLstore = 55
	opFstore = 56
	opDstore = 57
	opAstore = 58
	opIinc   = 132
	opRet    = 169
)

// decodeWide handles the widening prefix: it reads the inner opcode and the
// widened 2-byte operands. Load, store and ret forms take a 2-byte local
// index; iinc takes a 2-byte index plus a 2-byte signed constant. Any other
// inner opcode is illegal here; it renders an unknown marker and consumes no
// further bytes, so the stream resumes right after it.
func decodeWide(r *reader) (string, error) {
	inner, err := r.u8()
	if err != nil {
		return "", err
	}

	switch inner {
	case opIload, opLload, opFload, opDload, opAload,
		opIstore, opLstore, opFstore, opDstore, opAstore, opRet:
		index, err := r.u16()
		if err != nil {
			return "", err
		}
		def, _ := Lookup(inner)
		return fmt.Sprintf(formatLocal, wideName(def.Mnemonic), index), nil

	case opIinc:
		index, err := r.u16()
		if err != nil {
			return "", err
		}
		constant, err := r.s16()
		if err != nil {
			return "", err
		}
		def, _ := Lookup(inner)
		return fmt.Sprintf(formatIinc, wideName(def.Mnemonic), index, constant), nil

	default:
		return "wide " + TextUnknownOpcode, nil
	}
}

func wideName(mnemonic string) string {
	return "wide " + mnemonic
}
