// Package bytecode decodes the instruction stream of a JVM method body
// (the Code attribute's code array) into structured instruction records.
package bytecode

// Shape describes the operand bytes that follow an opcode.
type Shape int

const (
	ShapeNone            Shape = iota // mnemonic only
	ShapeU8                           // unsigned byte immediate or local index
	ShapeU16                          // unsigned 16-bit immediate
	ShapeBranch16                     // signed 16-bit branch offset
	ShapeBranch32                     // signed 32-bit branch offset
	ShapeIinc                         // unsigned byte index + signed byte const
	ShapeCPU8                         // 1-byte constant pool index
	ShapeCPU16                        // 2-byte constant pool index
	ShapeInvokeInterface              // cp index + arg count + reserved byte
	ShapeInvokeDynamic                // cp index + 2 reserved bytes
	ShapeNewArray                     // primitive array type code
	ShapeMultiArray                   // cp index + dimension count
	ShapeTableSwitch                  // padded jump table, low..high
	ShapeLookupSwitch                 // padded jump table, match/offset pairs
	ShapeWide                         // widening prefix, re-dispatches
)

// InstructionDef is one immutable catalog entry.
type InstructionDef struct {
	Opcode   byte
	Mnemonic string
	Reserved bool
	Shape    Shape
}

// Markers used in rendered instruction text.
const (
	TextUnknownOpcode = "[Unknown opcode]"
	reservedPrefix    = "[Reserved] "
	unknownArrayType  = "[ERROR: Unknown type]"
)

var defs = []InstructionDef{
	{0, "nop", false, ShapeNone},
	{1, "aconst_null", false, ShapeNone},
	{2, "iconst_m1", false, ShapeNone},
	{3, "iconst_0", false, ShapeNone},
	{4, "iconst_1", false, ShapeNone},
	{5, "iconst_2", false, ShapeNone},
	{6, "iconst_3", false, ShapeNone},
	{7, "iconst_4", false, ShapeNone},
	{8, "iconst_5", false, ShapeNone},
	{9, "lconst_0", false, ShapeNone},
	{10, "lconst_1", false, ShapeNone},
	{11, "fconst_0", false, ShapeNone},
	{12, "fconst_1", false, ShapeNone},
	{13, "fconst_2", false, ShapeNone},
	{14, "dconst_0", false, ShapeNone},
	{15, "dconst_1", false, ShapeNone},
	{16, "bipush", false, ShapeU8},
	{17, "sipush", false, ShapeU16},
	{18, "ldc", false, ShapeCPU8},
	{19, "ldc_w", false, ShapeCPU16},
	{20, "ldc2_w", false, ShapeCPU16},
	{21, "iload", false, ShapeU8},
	{22, "lload", false, ShapeU8},
	{23, "fload", false, ShapeU8},
	{24, "dload", false, ShapeU8},
	{25, "aload", false, ShapeU8},
	{26, "iload_0", false, ShapeNone},
	{27, "iload_1", false, ShapeNone},
	{28, "iload_2", false, ShapeNone},
	{29, "iload_3", false, ShapeNone},
	{30, "lload_0", false, ShapeNone},
	{31, "lload_1", false, ShapeNone},
	{32, "lload_2", false, ShapeNone},
	{33, "lload_3", false, ShapeNone},
	{34, "fload_0", false, ShapeNone},
	{35, "fload_1", false, ShapeNone},
	{36, "fload_2", false, ShapeNone},
	{37, "fload_3", false, ShapeNone},
	{38, "dload_0", false, ShapeNone},
	{39, "dload_1", false, ShapeNone},
	{40, "dload_2", false, ShapeNone},
	{41, "dload_3", false, ShapeNone},
	{42, "aload_0", false, ShapeNone},
	{43, "aload_1", false, ShapeNone},
	{44, "aload_2", false, ShapeNone},
	{45, "aload_3", false, ShapeNone},
	{46, "iaload", false, ShapeNone},
	{47, "laload", false, ShapeNone},
	{48, "faload", false, ShapeNone},
	{49, "daload", false, ShapeNone},
	{50, "aaload", false, ShapeNone},
	{51, "baload", false, ShapeNone},
	{52, "caload", false, ShapeNone},
	{53, "saload", false, ShapeNone},
	{54, "istore", false, ShapeU8},
	{55, "lstore", false, ShapeU8},
	{56, "fstore", false, ShapeU8},
	{57, "dstore", false, ShapeU8},
	{58, "astore", false, ShapeU8},
	{59, "istore_0", false, ShapeNone},
	{60, "istore_1", false, ShapeNone},
	{61, "istore_2", false, ShapeNone},
	{62, "istore_3", false, ShapeNone},
	{63, "lstore_0", false, ShapeNone},
	{64, "lstore_1", false, ShapeNone},
	{65, "lstore_2", false, ShapeNone},
	{66, "lstore_3", false, ShapeNone},
	{67, "fstore_0", false, ShapeNone},
	{68, "fstore_1", false, ShapeNone},
	{69, "fstore_2", false, ShapeNone},
	{70, "fstore_3", false, ShapeNone},
	{71, "dstore_0", false, ShapeNone},
	{72, "dstore_1", false, ShapeNone},
	{73, "dstore_2", false, ShapeNone},
	{74, "dstore_3", false, ShapeNone},
	{75, "astore_0", false, ShapeNone},
	{76, "astore_1", false, ShapeNone},
	{77, "astore_2", false, ShapeNone},
	{78, "astore_3", false, ShapeNone},
	{79, "iastore", false, ShapeNone},
	{80, "lastore", false, ShapeNone},
	{81, "fastore", false, ShapeNone},
	{82, "dastore", false, ShapeNone},
	{83, "aastore", false, ShapeNone},
	{84, "bastore", false, ShapeNone},
	{85, "castore", false, ShapeNone},
	{86, "sastore", false, ShapeNone},
	{87, "pop", false, ShapeNone},
	{88, "pop2", false, ShapeNone},
	{89, "dup", false, ShapeNone},
	{90, "dup_x1", false, ShapeNone},
	{91, "dup_x2", false, ShapeNone},
	{92, "dup2", false, ShapeNone},
	{93, "dup2_x1", false, ShapeNone},
	{94, "dup2_x2", false, ShapeNone},
	{95, "swap", false, ShapeNone},
	{96, "iadd", false, ShapeNone},
	{97, "ladd", false, ShapeNone},
	{98, "fadd", false, ShapeNone},
	{99, "dadd", false, ShapeNone},
	{100, "isub", false, ShapeNone},
	{101, "lsub", false, ShapeNone},
	{102, "fsub", false, ShapeNone},
	{103, "dsub", false, ShapeNone},
	{104, "imul", false, ShapeNone},
	{105, "lmul", false, ShapeNone},
	{106, "fmul", false, ShapeNone},
	{107, "dmul", false, ShapeNone},
	{108, "idiv", false, ShapeNone},
	{109, "ldiv", false, ShapeNone},
	{110, "fdiv", false, ShapeNone},
	{111, "ddiv", false, ShapeNone},
	{112, "irem", false, ShapeNone},
	{113, "lrem", false, ShapeNone},
	{114, "frem", false, ShapeNone},
	{115, "drem", false, ShapeNone},
	{116, "ineg", false, ShapeNone},
	{117, "lneg", false, ShapeNone},
	{118, "fneg", false, ShapeNone},
	{119, "dneg", false, ShapeNone},
	{120, "ishl", false, ShapeNone},
	{121, "lshl", false, ShapeNone},
	{122, "ishr", false, ShapeNone},
	{123, "lshr", false, ShapeNone},
	{124, "iushr", false, ShapeNone},
	{125, "lushr", false, ShapeNone},
	{126, "iand", false, ShapeNone},
	{127, "land", false, ShapeNone},
	{128, "ior", false, ShapeNone},
	{129, "lor", false, ShapeNone},
	{130, "ixor", false, ShapeNone},
	{131, "lxor", false, ShapeNone},
	{132, "iinc", false, ShapeIinc},
	{133, "i2l", false, ShapeNone},
	{134, "i2f", false, ShapeNone},
	{135, "i2d", false, ShapeNone},
	{136, "l2i", false, ShapeNone},
	{137, "l2f", false, ShapeNone},
	{138, "l2d", false, ShapeNone},
	{139, "f2i", false, ShapeNone},
	{140, "f2l", false, ShapeNone},
	{141, "f2d", false, ShapeNone},
	{142, "d2i", false, ShapeNone},
	{143, "d2l", false, ShapeNone},
	{144, "d2f", false, ShapeNone},
	{145, "i2b", false, ShapeNone},
	{146, "i2c", false, ShapeNone},
	{147, "i2s", false, ShapeNone},
	{148, "lcmp", false, ShapeNone},
	{149, "fcmpl", false, ShapeNone},
	{150, "fcmpg", false, ShapeNone},
	{151, "dcmpl", false, ShapeNone},
	{152, "dcmpg", false, ShapeNone},
	{153, "ifeq", false, ShapeBranch16},
	{154, "ifne", false, ShapeBranch16},
	{155, "iflt", false, ShapeBranch16},
	{156, "ifge", false, ShapeBranch16},
	{157, "ifgt", false, ShapeBranch16},
	{158, "ifle", false, ShapeBranch16},
	{159, "if_icmpeq", false, ShapeBranch16},
	{160, "if_icmpne", false, ShapeBranch16},
	{161, "if_icmplt", false, ShapeBranch16},
	{162, "if_icmpge", false, ShapeBranch16},
	{163, "if_icmpgt", false, ShapeBranch16},
	{164, "if_icmple", false, ShapeBranch16},
	{165, "if_acmpeq", false, ShapeBranch16},
	{166, "if_acmpne", false, ShapeBranch16},
	{167, "goto", false, ShapeBranch16},
	{168, "jsr", false, ShapeBranch16},
	{169, "ret", false, ShapeU8},
	{170, "tableswitch", false, ShapeTableSwitch},
	{171, "lookupswitch", false, ShapeLookupSwitch},
	{172, "ireturn", false, ShapeNone},
	{173, "lreturn", false, ShapeNone},
	{174, "freturn", false, ShapeNone},
	{175, "dreturn", false, ShapeNone},
	{176, "areturn", false, ShapeNone},
	{177, "return", false, ShapeNone},
	{178, "getstatic", false, ShapeCPU16},
	{179, "putstatic", false, ShapeCPU16},
	{180, "getfield", false, ShapeCPU16},
	{181, "putfield", false, ShapeCPU16},
	{182, "invokevirtual", false, ShapeCPU16},
	{183, "invokespecial", false, ShapeCPU16},
	{184, "invokestatic", false, ShapeCPU16},
	{185, "invokeinterface", false, ShapeInvokeInterface},
	{186, "invokedynamic", false, ShapeInvokeDynamic},
	{187, "new", false, ShapeCPU16},
	{188, "newarray", false, ShapeNewArray},
	{189, "anewarray", false, ShapeCPU16},
	{190, "arraylength", false, ShapeNone},
	{191, "athrow", false, ShapeNone},
	{192, "checkcast", false, ShapeCPU16},
	{193, "instanceof", false, ShapeCPU16},
	{194, "monitorenter", false, ShapeNone},
	{195, "monitorexit", false, ShapeNone},
	{196, "wide", false, ShapeWide},
	{197, "multianewarray", false, ShapeMultiArray},
	{198, "ifnull", false, ShapeBranch16},
	{199, "ifnonnull", false, ShapeBranch16},
	{200, "goto_w", false, ShapeBranch32},
	{201, "jsr_w", false, ShapeBranch32},
	{202, "breakpoint", true, ShapeNone},
	{254, "impdep1", true, ShapeNone},
	{255, "impdep2", true, ShapeNone},
}

var catalog = func() [256]*InstructionDef {
	var t [256]*InstructionDef
	for i := range defs {
		t[defs[i].Opcode] = &defs[i]
	}
	return t
}()

// Lookup returns the catalog entry for an opcode, or false when the byte
// value is not a defined instruction.
func Lookup(op byte) (*InstructionDef, bool) {
	def := catalog[op]
	return def, def != nil
}

// Name returns the rendered mnemonic for a catalog entry. Reserved opcodes
// are marked so downstream tooling can flag them.
func (d *InstructionDef) Name() string {
	if d.Reserved {
		return reservedPrefix + d.Mnemonic
	}
	return d.Mnemonic
}

// Array type codes used by newarray, per the JVM specification table.
var arrayTypeNames = map[byte]string{
	4:  "T_BOOLEAN",
	5:  "T_CHAR",
	6:  "T_FLOAT",
	7:  "T_DOUBLE",
	8:  "T_BYTE",
	9:  "T_SHORT",
	10: "T_INT",
	11: "T_LONG",
}

// ArrayTypeName maps a newarray primitive type code to its name. Codes
// outside 4..11 yield an error marker rather than failing the decode.
func ArrayTypeName(code byte) string {
	if n, ok := arrayTypeNames[code]; ok {
		return n
	}
	return unknownArrayType
}
