package classfile

import (
	"bytes"
	"encoding/binary"
	"reflect"
	"testing"

	"jinspect/internal/bytecode"
)

// buildTestClass assembles a minimal, valid class file:
//
//	public class Foo extends java.lang.Object {
//	    public static int answer() { return 42; }
//	}
func buildTestClass(t *testing.T) []byte {
	t.Helper()
	var b bytes.Buffer
	w := func(v any) {
		if err := binary.Write(&b, binary.BigEndian, v); err != nil {
			t.Fatalf("build class: %v", err)
		}
	}
	utf8 := func(s string) {
		w(byte(1)) // CONSTANT_Utf8
		w(uint16(len(s)))
		b.WriteString(s)
	}

	w(uint32(0xCAFEBABE))
	w(uint16(0))  // minor
	w(uint16(52)) // major, Java 8

	w(uint16(8)) // constant_pool_count
	utf8("Foo")                  // #1
	w(byte(7)); w(uint16(1))     // #2 Class Foo
	utf8("java/lang/Object")     // #3
	w(byte(7)); w(uint16(3))     // #4 Class Object
	utf8("answer")               // #5
	utf8("()I")                  // #6
	utf8("Code")                 // #7

	w(uint16(0x0021)) // access flags: public super
	w(uint16(2))      // this class
	w(uint16(4))      // super class
	w(uint16(0))      // interfaces

	w(uint16(0)) // fields
	w(uint16(1)) // methods

	code := []byte{0x10, 0x2A, 0xAC} // bipush 42; ireturn
	w(uint16(0x0009))                // public static
	w(uint16(5))                     // name answer
	w(uint16(6))                     // descriptor ()I
	w(uint16(1))                     // attributes_count
	w(uint16(7))                     // attribute name Code
	w(uint32(12 + uint32(len(code)))) // attribute_length
	w(uint16(1))                     // max_stack
	w(uint16(1))                     // max_locals
	w(uint32(len(code)))
	b.Write(code)
	w(uint16(0)) // exception_table_length
	w(uint16(0)) // code attributes_count

	w(uint16(0)) // class attributes_count
	return b.Bytes()
}

func TestParse(t *testing.T) {
	c, err := Parse(bytes.NewReader(buildTestClass(t)))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if c.ClassName != "Foo" {
		t.Errorf("ClassName = %q, want %q", c.ClassName, "Foo")
	}
	if c.SuperClass != "java.lang.Object" {
		t.Errorf("SuperClass = %q, want %q", c.SuperClass, "java.lang.Object")
	}
	if c.JavaVersion != "8" {
		t.Errorf("JavaVersion = %q, want %q", c.JavaVersion, "8")
	}
	if len(c.Methods) != 1 {
		t.Fatalf("got %d methods, want 1", len(c.Methods))
	}

	m := c.Methods[0]
	if m.Name != "answer" {
		t.Errorf("method name = %q, want %q", m.Name, "answer")
	}
	if m.ReturnType != "int" {
		t.Errorf("return type = %q, want %q", m.ReturnType, "int")
	}
	if !reflect.DeepEqual(m.Flags, []string{"public", "static"}) {
		t.Errorf("flags = %v, want [public static]", m.Flags)
	}
	if m.MaxStack != 1 || m.MaxLocals != 1 {
		t.Errorf("max_stack/max_locals = %d/%d, want 1/1", m.MaxStack, m.MaxLocals)
	}
	if !bytes.Equal(m.Code, []byte{0x10, 0x2A, 0xAC}) {
		t.Errorf("code = %x, want 102aac", m.Code)
	}
}

func TestParseAndDecode(t *testing.T) {
	c, err := Parse(bytes.NewReader(buildTestClass(t)))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	insts, err := bytecode.Decode(c.Methods[0].Code)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(insts) != 2 {
		t.Fatalf("got %d instructions, want 2", len(insts))
	}
	if insts[0].Text != "bipush 42" {
		t.Errorf("first = %q, want %q", insts[0].Text, "bipush 42")
	}
	if insts[1].Text != "ireturn" {
		t.Errorf("second = %q, want %q", insts[1].Text, "ireturn")
	}
}

func TestPoolDescribe(t *testing.T) {
	c, err := Parse(bytes.NewReader(buildTestClass(t)))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	testCases := []struct {
		index uint16
		want  string
	}{
		{1, "Foo"},              // Utf8
		{2, "Foo"},              // Class
		{4, "java.lang.Object"}, // Class
		{6, "()I"},              // Utf8
		{0, "#0"},               // out of range
		{99, "#99"},             // out of range
	}
	for _, tc := range testCases {
		if got := c.Pool.Describe(tc.index); got != tc.want {
			t.Errorf("Describe(%d) = %q, want %q", tc.index, got, tc.want)
		}
	}

	var nilPool *Pool
	if got := nilPool.Describe(3); got != "#3" {
		t.Errorf("nil pool Describe(3) = %q, want %q", got, "#3")
	}
}
