package classfile

import (
	"fmt"
	"math"
	"strings"

	parser "github.com/wreulicke/classfile-parser"
)

// Pool is the constant pool resolution service: it turns a numeric constant
// pool index into a human-readable description for the renderer.
type Pool struct {
	cp *parser.ConstantPool
}

// Describe resolves a constant pool index. Unresolvable indexes come back as
// the bare "#n" form rather than an error; a bad index in one instruction
// must not break the rest of the listing.
func (p *Pool) Describe(index uint16) string {
	if p == nil || p.cp == nil {
		return fmt.Sprintf("#%d", index)
	}
	return describe(p.cp, index)
}

func describe(cp *parser.ConstantPool, index uint16) string {
	if int(index) < 1 || int(index) > len(cp.Constants) {
		return fmt.Sprintf("#%d", index)
	}
	c := cp.Constants[index-1]
	if c == nil {
		return fmt.Sprintf("#%d", index)
	}

	switch v := c.(type) {
	case *parser.ConstantClass:
		if name := cp.LookupUtf8(v.NameIndex); name != nil {
			return dotted(name.String())
		}
	case *parser.ConstantString:
		if s := cp.LookupUtf8(v.StringIndex); s != nil {
			return fmt.Sprintf("%q", s.String())
		}
	case *parser.ConstantFieldref:
		return describeRef(cp, v.ClassIndex, v.NameAndTypeIndex)
	case *parser.ConstantMethodref:
		return describeRef(cp, v.ClassIndex, v.NameAndTypeIndex)
	case *parser.ConstantInterfaceMethodref:
		return describeRef(cp, v.ClassIndex, v.NameAndTypeIndex)
	case *parser.ConstantNameAndType:
		name := cp.LookupUtf8(v.NameIndex)
		desc := cp.LookupUtf8(v.DescriptorIndex)
		if name != nil && desc != nil {
			return name.String() + ":" + desc.String()
		}
	case *parser.ConstantInteger:
		return fmt.Sprintf("%d", int32(v.Bytes))
	case *parser.ConstantFloat:
		return fmt.Sprintf("%g", math.Float32frombits(v.Bytes))
	case *parser.ConstantLong:
		return fmt.Sprintf("%dL", int64(v.HighBytes)<<32|int64(v.LowBytes))
	case *parser.ConstantDouble:
		bits := uint64(v.HighBytes)<<32 | uint64(v.LowBytes)
		return fmt.Sprintf("%g", math.Float64frombits(bits))
	case *parser.ConstantUtf8:
		return v.String()
	case *parser.ConstantInvokeDynamic:
		nat := describe(cp, v.NameAndTypeIndex)
		return fmt.Sprintf("InvokeDynamic #%d:%s", v.BootstrapMethodAttrIndex, nat)
	}
	return fmt.Sprintf("#%d", index)
}

// describeRef renders a field/method/interface-method reference as
// class.name:descriptor.
func describeRef(cp *parser.ConstantPool, classIndex, natIndex uint16) string {
	className, err := cp.GetClassName(classIndex)
	if err != nil {
		className = fmt.Sprintf("#%d", classIndex)
	} else {
		className = dotted(className)
	}

	if int(natIndex) < 1 || int(natIndex) > len(cp.Constants) {
		return className + fmt.Sprintf(".#%d", natIndex)
	}
	nat, ok := cp.Constants[natIndex-1].(*parser.ConstantNameAndType)
	if !ok {
		return className + fmt.Sprintf(".#%d", natIndex)
	}
	name := cp.LookupUtf8(nat.NameIndex)
	desc := cp.LookupUtf8(nat.DescriptorIndex)
	if name == nil || desc == nil {
		return className + ".?"
	}

	var sb strings.Builder
	sb.WriteString(className)
	sb.WriteByte('.')
	sb.WriteString(name.String())
	sb.WriteByte(':')
	sb.WriteString(desc.String())
	return sb.String()
}
