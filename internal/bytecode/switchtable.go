package bytecode

import (
	"fmt"
	"strings"
)

const switchIndent = "    "

// decodeTableSwitch reads the indexed jump-table form. The payload starts at
// the next 4-byte boundary relative to the start of the code array; the
// padding bytes are skipped, never interpreted.
func decodeTableSwitch(r *reader, mnemonic string) (string, error) {
	if err := r.align4(); err != nil {
		return "", err
	}
	defaultJump, err := r.s32()
	if err != nil {
		return "", err
	}
	low, err := r.s32()
	if err != nil {
		return "", err
	}
	high, err := r.s32()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %d to %d: default=%d", mnemonic, low, high, defaultJump)

	// high < low means an empty table, not a negative entry count.
	for i := int64(low); i <= int64(high); i++ {
		offset, err := r.s32()
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "\n%s%d", switchIndent, offset)
	}
	return sb.String(), nil
}

// decodeLookupSwitch reads the match-based jump-table form. Match values are
// transcribed in stream order; the JVM requires them sorted but this is a
// transcription, not a verifier.
func decodeLookupSwitch(r *reader, mnemonic string) (string, error) {
	if err := r.align4(); err != nil {
		return "", err
	}
	defaultJump, err := r.s32()
	if err != nil {
		return "", err
	}
	pairCount, err := r.s32()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: default=%d", mnemonic, defaultJump)

	for i := int32(0); i < pairCount; i++ {
		match, err := r.s32()
		if err != nil {
			return "", err
		}
		offset, err := r.s32()
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "\n%scase %d: %d", switchIndent, match, offset)
	}
	return sb.String(), nil
}
