package classfile

import "strings"

// FieldType renders a JVM field descriptor as a Java source type, e.g.
// "[Ljava/lang/String;" -> "java.lang.String[]".
func FieldType(desc string) string {
	pos := 0
	return descriptorType(desc, &pos)
}

// MethodSignature splits a JVM method descriptor into its parameter types
// and return type.
func MethodSignature(desc string) (params []string, ret string) {
	params = []string{}
	if len(desc) == 0 || desc[0] != '(' {
		return params, "?"
	}
	pos := 1
	for pos < len(desc) && desc[pos] != ')' {
		params = append(params, descriptorType(desc, &pos))
	}
	if pos < len(desc) {
		pos++ // ')'
	}
	return params, descriptorType(desc, &pos)
}

func descriptorType(desc string, pos *int) string {
	if *pos >= len(desc) {
		return "?"
	}
	ch := desc[*pos]
	*pos++
	switch ch {
	case 'B':
		return "byte"
	case 'C':
		return "char"
	case 'D':
		return "double"
	case 'F':
		return "float"
	case 'I':
		return "int"
	case 'J':
		return "long"
	case 'S':
		return "short"
	case 'Z':
		return "boolean"
	case 'V':
		return "void"
	case '[':
		return descriptorType(desc, pos) + "[]"
	case 'L':
		end := strings.IndexByte(desc[*pos:], ';')
		if end == -1 {
			return "?"
		}
		name := desc[*pos : *pos+end]
		*pos += end + 1
		return dotted(name)
	default:
		return string(ch)
	}
}
