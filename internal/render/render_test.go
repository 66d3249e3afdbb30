package render

import (
	"strings"
	"testing"

	"jinspect/internal/bytecode"
)

type fakePool map[uint16]string

func (p fakePool) Describe(index uint16) string { return p[index] }

func cpIndex(v uint16) *uint16 { return &v }

func TestLine(t *testing.T) {
	testCases := []struct {
		name string
		inst bytecode.Instruction
		want string
	}{
		{
			name: "plain",
			inst: bytecode.Instruction{Offset: 0, Opcode: 0xB1, Text: "return"},
			want: "Offset 0000: opcode [B1] return",
		},
		{
			name: "operand in text",
			inst: bytecode.Instruction{Offset: 3, Opcode: 0x10, Text: "bipush 42"},
			want: "Offset 0003: opcode [10] bipush 42",
		},
		{
			name: "constant pool index",
			inst: bytecode.Instruction{Offset: 17, Opcode: 0xB2, Text: "getstatic", CPIndex: cpIndex(7)},
			want: "Offset 0017: opcode [B2] getstatic 7",
		},
		{
			name: "wide offset",
			inst: bytecode.Instruction{Offset: 12345, Opcode: 0x00, Text: "nop"},
			want: "Offset 12345: opcode [00] nop",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Line(tc.inst); got != tc.want {
				t.Errorf("Line() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLineWithPool(t *testing.T) {
	pool := fakePool{7: "java.lang.System.out:Ljava/io/PrintStream;"}

	inst := bytecode.Instruction{Offset: 0, Opcode: 0xB2, Text: "getstatic", CPIndex: cpIndex(7)}
	want := "Offset 0000: opcode [B2] getstatic 7 - java.lang.System.out:Ljava/io/PrintStream;"
	if got := LineWithPool(inst, pool); got != want {
		t.Errorf("LineWithPool() = %q, want %q", got, want)
	}

	// No index: the pool is never consulted.
	plain := bytecode.Instruction{Offset: 1, Opcode: 0xB1, Text: "return"}
	if got := LineWithPool(plain, pool); got != "Offset 0001: opcode [B1] return" {
		t.Errorf("LineWithPool() = %q", got)
	}

	// Nil pool falls back to the bare line.
	if got := LineWithPool(inst, nil); got != "Offset 0000: opcode [B2] getstatic 7" {
		t.Errorf("LineWithPool(nil pool) = %q", got)
	}
}

func TestLineWithPoolTruncates(t *testing.T) {
	long := fakePool{1: strings.Repeat("x", 5000)}
	inst := bytecode.Instruction{Offset: 0, Opcode: 0x12, Text: "ldc", CPIndex: cpIndex(1)}

	got := LineWithPool(inst, long)
	wantPrefix := "Offset 0000: opcode [12] ldc 1 - "
	if !strings.HasPrefix(got, wantPrefix) {
		t.Fatalf("LineWithPool() = %q, want prefix %q", got, wantPrefix)
	}
	if desc := got[len(wantPrefix):]; len(desc) != 1000 {
		t.Errorf("description length = %d, want 1000", len(desc))
	}
}

func TestListing(t *testing.T) {
	insts := []bytecode.Instruction{
		{Offset: 0, Opcode: 0x10, Text: "bipush 42"},
		{Offset: 2, Opcode: 0xAC, Text: "ireturn"},
	}
	want := "Offset 0000: opcode [10] bipush 42\nOffset 0002: opcode [AC] ireturn\n"
	if got := Listing(insts, nil); got != want {
		t.Errorf("Listing() = %q, want %q", got, want)
	}

	if got := Listing(nil, nil); got != "" {
		t.Errorf("Listing(nil) = %q, want empty", got)
	}
}
