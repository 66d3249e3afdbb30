package bytecode

import "testing"

func TestCatalogCoverage(t *testing.T) {
	defined := 0
	for op := 0; op < 256; op++ {
		if _, ok := Lookup(byte(op)); ok {
			defined++
		}
	}
	if defined != 205 {
		t.Errorf("expected 205 defined opcodes, got %d", defined)
	}

	// The contiguous range plus the three reserved values, nothing else.
	for op := 0; op < 256; op++ {
		_, ok := Lookup(byte(op))
		wantDefined := op <= 201 || op == 202 || op == 254 || op == 255
		if ok != wantDefined {
			t.Errorf("opcode %d: defined=%v, want %v", op, ok, wantDefined)
		}
	}
}

func TestCatalogEntries(t *testing.T) {
	testCases := []struct {
		opcode   byte
		mnemonic string
		reserved bool
		shape    Shape
	}{
		{0, "nop", false, ShapeNone},
		{16, "bipush", false, ShapeU8},
		{17, "sipush", false, ShapeU16},
		{18, "ldc", false, ShapeCPU8},
		{132, "iinc", false, ShapeIinc},
		{167, "goto", false, ShapeBranch16},
		{170, "tableswitch", false, ShapeTableSwitch},
		{171, "lookupswitch", false, ShapeLookupSwitch},
		{177, "return", false, ShapeNone},
		{185, "invokeinterface", false, ShapeInvokeInterface},
		{186, "invokedynamic", false, ShapeInvokeDynamic},
		{188, "newarray", false, ShapeNewArray},
		{196, "wide", false, ShapeWide},
		{197, "multianewarray", false, ShapeMultiArray},
		{200, "goto_w", false, ShapeBranch32},
		{202, "breakpoint", true, ShapeNone},
		{254, "impdep1", true, ShapeNone},
		{255, "impdep2", true, ShapeNone},
	}

	for _, tc := range testCases {
		t.Run(tc.mnemonic, func(t *testing.T) {
			def, ok := Lookup(tc.opcode)
			if !ok {
				t.Fatalf("opcode %d not defined", tc.opcode)
			}
			if def.Mnemonic != tc.mnemonic {
				t.Errorf("mnemonic = %q, want %q", def.Mnemonic, tc.mnemonic)
			}
			if def.Reserved != tc.reserved {
				t.Errorf("reserved = %v, want %v", def.Reserved, tc.reserved)
			}
			if def.Shape != tc.shape {
				t.Errorf("shape = %d, want %d", def.Shape, tc.shape)
			}
			if def.Opcode != tc.opcode {
				t.Errorf("opcode = %d, want %d", def.Opcode, tc.opcode)
			}
		})
	}
}

func TestMnemonicsDistinct(t *testing.T) {
	seen := make(map[string]byte)
	for _, def := range defs {
		if prev, dup := seen[def.Mnemonic]; dup {
			t.Errorf("mnemonic %q used by opcodes %d and %d", def.Mnemonic, prev, def.Opcode)
		}
		seen[def.Mnemonic] = def.Opcode
	}
}

func TestReservedName(t *testing.T) {
	def, ok := Lookup(202)
	if !ok {
		t.Fatal("breakpoint not defined")
	}
	if got := def.Name(); got != "[Reserved] breakpoint" {
		t.Errorf("Name() = %q, want %q", got, "[Reserved] breakpoint")
	}
}

func TestArrayTypeName(t *testing.T) {
	testCases := []struct {
		code byte
		want string
	}{
		{4, "T_BOOLEAN"},
		{5, "T_CHAR"},
		{6, "T_FLOAT"},
		{7, "T_DOUBLE"},
		{8, "T_BYTE"},
		{9, "T_SHORT"},
		{10, "T_INT"},
		{11, "T_LONG"},
		{0, "[ERROR: Unknown type]"},
		{3, "[ERROR: Unknown type]"},
		{12, "[ERROR: Unknown type]"},
	}
	for _, tc := range testCases {
		if got := ArrayTypeName(tc.code); got != tc.want {
			t.Errorf("ArrayTypeName(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
}
