// Package classfile parses the Java class-file container and resolves
// constant pool entries into human-readable descriptions. It supplies the
// raw code arrays that internal/bytecode decodes.
package classfile

import (
	"fmt"
	"io"
	"os"
	"strings"

	parser "github.com/wreulicke/classfile-parser"
)

// Class is the parsed summary of one class file.
type Class struct {
	MinorVersion uint16
	MajorVersion uint16
	JavaVersion  string
	ClassName    string
	SuperClass   string
	Interfaces   []string
	SourceFile   string
	AccessFlags  []string
	Fields       []Field
	Methods      []Method
	Pool         *Pool
}

// Field is one declared field.
type Field struct {
	Name       string
	Descriptor string
	Type       string
	Flags      []string
}

// Method is one declared method together with its raw code array, when the
// method has one (abstract and native methods do not).
type Method struct {
	Name       string
	Descriptor string
	Flags      []string
	ReturnType string
	Params     []string
	Exceptions []string
	MaxStack   int
	MaxLocals  int
	Code       []byte
}

// Signature renders the method the way javap would, e.g.
// "public static void main(java.lang.String[])".
func (m Method) Signature() string {
	var sb strings.Builder
	for _, f := range m.Flags {
		sb.WriteString(f)
		sb.WriteByte(' ')
	}
	sb.WriteString(m.ReturnType)
	sb.WriteByte(' ')
	sb.WriteString(m.Name)
	sb.WriteByte('(')
	sb.WriteString(strings.Join(m.Params, ", "))
	sb.WriteByte(')')
	if len(m.Exceptions) > 0 {
		sb.WriteString(" throws ")
		sb.WriteString(strings.Join(m.Exceptions, ", "))
	}
	return sb.String()
}

// Open parses the class file at path.
func Open(path string) (*Class, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads and summarizes a class file.
func Parse(r io.Reader) (*Class, error) {
	cf, err := parser.New(r).Parse()
	if err != nil {
		return nil, fmt.Errorf("parse class file: %w", err)
	}

	cp := cf.ConstantPool
	pool := &Pool{cp: cp}

	c := &Class{
		MinorVersion: cf.MinorVersion,
		MajorVersion: cf.MajorVersion,
		JavaVersion:  JavaVersion(cf.MajorVersion),
		AccessFlags:  classFlagNames(cf.AccessFlags),
		Pool:         pool,
	}

	if name, err := cf.ThisClassName(); err == nil {
		c.ClassName = dotted(name)
	}
	if cf.SuperClass != 0 {
		if name, err := cf.SuperClassName(); err == nil {
			c.SuperClass = dotted(name)
		}
	}
	for _, idx := range cf.Interfaces {
		if name, err := cp.GetClassName(idx); err == nil {
			c.Interfaces = append(c.Interfaces, dotted(name))
		}
	}
	if sf := cf.SourceFile(); sf != nil {
		if u := cp.LookupUtf8(sf.SourcefileIndex); u != nil {
			c.SourceFile = u.String()
		}
	}

	for _, f := range cf.Fields {
		name, _ := f.Name(cp)
		desc, _ := f.Descriptor(cp)
		c.Fields = append(c.Fields, Field{
			Name:       name,
			Descriptor: desc,
			Type:       FieldType(desc),
			Flags:      fieldFlagNames(f.AccessFlags),
		})
	}

	for _, m := range cf.Methods {
		name, _ := m.Name(cp)
		desc, _ := m.Descriptor(cp)
		params, ret := MethodSignature(desc)
		method := Method{
			Name:       name,
			Descriptor: desc,
			Flags:      methodFlagNames(m.AccessFlags),
			ReturnType: ret,
			Params:     params,
		}
		if exc := m.Exceptions(); exc != nil {
			for _, idx := range exc.ExceptionIndexes {
				if eName, err := cp.GetClassName(idx); err == nil {
					method.Exceptions = append(method.Exceptions, dotted(eName))
				}
			}
		}
		if code := m.Code(); code != nil {
			method.MaxStack = int(code.MaxStack)
			method.MaxLocals = int(code.MaxLocals)
			method.Code = code.Codes
		}
		c.Methods = append(c.Methods, method)
	}

	return c, nil
}

// dotted converts an internal binary name (java/lang/String) to the source
// form (java.lang.String).
func dotted(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}
