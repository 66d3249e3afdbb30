package classfile

import parser "github.com/wreulicke/classfile-parser"

// ACC_INTERFACE is not exported by the parser library.
const accInterface = 0x0200

func classFlagNames(flags parser.AccessFlags) []string {
	names := make([]string, 0)
	if flags.Is(parser.ACC_PUBLIC) {
		names = append(names, "public")
	}
	if flags.Is(parser.ACC_FINAL) {
		names = append(names, "final")
	}
	if flags.Is(parser.ACC_ABSTRACT) {
		names = append(names, "abstract")
	}
	if flags.Is(parser.ACC_SYNTHETIC) {
		names = append(names, "synthetic")
	}
	switch {
	case flags.Is(parser.ACC_ANNOTATION):
		names = append(names, "@interface")
	case flags.Is(parser.ACC_ENUM):
		names = append(names, "enum")
	case flags.Is(accInterface):
		names = append(names, "interface")
	default:
		names = append(names, "class")
	}
	return names
}

func fieldFlagNames(flags parser.AccessFlags) []string {
	names := make([]string, 0)
	if flags.Is(parser.ACC_PUBLIC) {
		names = append(names, "public")
	}
	if flags.Is(parser.ACC_PRIVATE) {
		names = append(names, "private")
	}
	if flags.Is(parser.ACC_PROTECTED) {
		names = append(names, "protected")
	}
	if flags.Is(parser.ACC_STATIC) {
		names = append(names, "static")
	}
	if flags.Is(parser.ACC_FINAL) {
		names = append(names, "final")
	}
	if flags.Is(parser.ACC_VOLATILE) {
		names = append(names, "volatile")
	}
	if flags.Is(parser.ACC_TRANSIENT) {
		names = append(names, "transient")
	}
	if flags.Is(parser.ACC_SYNTHETIC) {
		names = append(names, "synthetic")
	}
	if flags.Is(parser.ACC_ENUM) {
		names = append(names, "enum")
	}
	return names
}

func methodFlagNames(flags parser.AccessFlags) []string {
	names := make([]string, 0)
	if flags.Is(parser.ACC_PUBLIC) {
		names = append(names, "public")
	}
	if flags.Is(parser.ACC_PRIVATE) {
		names = append(names, "private")
	}
	if flags.Is(parser.ACC_PROTECTED) {
		names = append(names, "protected")
	}
	if flags.Is(parser.ACC_STATIC) {
		names = append(names, "static")
	}
	if flags.Is(parser.ACC_FINAL) {
		names = append(names, "final")
	}
	if flags.Is(parser.ACC_SYNCHRONIZED) {
		names = append(names, "synchronized")
	}
	if flags.Is(parser.ACC_BRIDGE) {
		names = append(names, "bridge")
	}
	if flags.Is(parser.ACC_VARARGS) {
		names = append(names, "varargs")
	}
	if flags.Is(parser.ACC_NATIVE) {
		names = append(names, "native")
	}
	if flags.Is(parser.ACC_ABSTRACT) {
		names = append(names, "abstract")
	}
	if flags.Is(parser.ACC_STRICT) {
		names = append(names, "strictfp")
	}
	if flags.Is(parser.ACC_SYNTHETIC) {
		names = append(names, "synthetic")
	}
	return names
}
