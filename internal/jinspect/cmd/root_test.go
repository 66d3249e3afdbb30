package cmd

import (
	"bytes"
	"strings"
	"testing"

	"jinspect/internal/classfile"
)

func testClass() *classfile.Class {
	return &classfile.Class{
		MinorVersion: 0,
		MajorVersion: 52,
		JavaVersion:  "8",
		ClassName:    "com.example.Greeter",
		SuperClass:   "java.lang.Object",
		SourceFile:   "Greeter.java",
		AccessFlags:  []string{"public", "class"},
		Fields: []classfile.Field{
			{Name: "count", Descriptor: "I", Type: "int", Flags: []string{"private"}},
		},
		Methods: []classfile.Method{
			{
				Name:       "answer",
				Descriptor: "()I",
				Flags:      []string{"public", "static"},
				ReturnType: "int",
				Params:     []string{},
				MaxStack:   1,
				MaxLocals:  1,
				Code:       []byte{0x10, 0x2A, 0xAC}, // bipush 42; ireturn
			},
			{
				Name:       "reset",
				Descriptor: "()V",
				Flags:      []string{"public"},
				ReturnType: "void",
				Params:     []string{},
				MaxStack:   2,
				MaxLocals:  1,
				Code:       []byte{0x2A, 0x03, 0xB5, 0x00, 0x02, 0xB1}, // aload_0; iconst_0; putfield #2; return
			},
		},
	}
}

func TestClassHeading(t *testing.T) {
	testCases := []struct {
		name  string
		class *classfile.Class
		want  string
	}{
		{
			name:  "plain class",
			class: testClass(),
			want:  "public class com.example.Greeter",
		},
		{
			name: "subclass with interfaces",
			class: &classfile.Class{
				ClassName:   "Worker",
				SuperClass:  "java.lang.Thread",
				Interfaces:  []string{"java.lang.Runnable", "java.io.Closeable"},
				AccessFlags: []string{"public", "final", "class"},
			},
			want: "public final class Worker extends java.lang.Thread implements java.lang.Runnable, java.io.Closeable",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classHeading(tc.class); got != tc.want {
				t.Errorf("classHeading() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestWriteListing(t *testing.T) {
	t.Setenv("JINSPECT_NO_COLOR", "1")

	var buf bytes.Buffer
	err := writeListing(&buf, "/tmp/Greeter.class", "cafe", testClass(), inspectOptions{})
	if err != nil {
		t.Fatalf("writeListing error: %v", err)
	}
	out := buf.String()

	wantLines := []string{
		"; /tmp/Greeter.class",
		"; cafe",
		"public class com.example.Greeter",
		"  major version: 52 (Java 8)",
		"  source file: Greeter.java",
		"private int count",
		"public static int answer()",
		"  stack=1, locals=1",
		"Offset 0000: opcode [10] bipush 42",
		"Offset 0002: opcode [AC] ireturn",
		"public void reset()",
		"Offset 0002: opcode [B5] putfield 2",
	}
	for _, line := range wantLines {
		if !strings.Contains(out, line) {
			t.Errorf("listing missing %q\nfull output:\n%s", line, out)
		}
	}
}

func TestWriteListingMethodFilter(t *testing.T) {
	t.Setenv("JINSPECT_NO_COLOR", "1")

	var buf bytes.Buffer
	opts := inspectOptions{methodFilter: "answer"}
	if err := writeListing(&buf, "/tmp/Greeter.class", "", testClass(), opts); err != nil {
		t.Fatalf("writeListing error: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "answer()") {
		t.Errorf("filtered listing should contain answer(), got:\n%s", out)
	}
	if strings.Contains(out, "reset()") {
		t.Errorf("filtered listing should not contain reset(), got:\n%s", out)
	}
	// The filter also suppresses the field section
	if strings.Contains(out, "count") {
		t.Errorf("filtered listing should not contain fields, got:\n%s", out)
	}
}

func TestWriteListingStrict(t *testing.T) {
	t.Setenv("JINSPECT_NO_COLOR", "1")

	c := testClass()
	c.Methods[0].Code = []byte{0xCB} // unassigned opcode

	var buf bytes.Buffer
	err := writeListing(&buf, "/tmp/Greeter.class", "", c, inspectOptions{strict: true})
	if err == nil {
		t.Fatal("expected error for unassigned opcode in strict mode")
	}
	if !strings.Contains(err.Error(), "answer") {
		t.Errorf("error should name the method, got %v", err)
	}

	// Without strict the same class produces a placeholder and no error
	buf.Reset()
	if err := writeListing(&buf, "/tmp/Greeter.class", "", c, inspectOptions{}); err != nil {
		t.Fatalf("non-strict writeListing error: %v", err)
	}
	if !strings.Contains(buf.String(), "[Unknown opcode]") {
		t.Errorf("non-strict listing should contain the placeholder, got:\n%s", buf.String())
	}
}

func TestBuildReport(t *testing.T) {
	report, err := buildReport("/tmp/Greeter.class", "cafe", testClass(), inspectOptions{})
	if err != nil {
		t.Fatalf("buildReport error: %v", err)
	}

	if report.Digest != "cafe" {
		t.Errorf("digest = %q, want %q", report.Digest, "cafe")
	}
	if report.ClassName != "com.example.Greeter" {
		t.Errorf("class name = %q", report.ClassName)
	}
	if len(report.Fields) != 1 || report.Fields[0].Name != "count" {
		t.Errorf("fields = %+v", report.Fields)
	}
	if len(report.Methods) != 2 {
		t.Fatalf("got %d methods, want 2", len(report.Methods))
	}

	answer := report.Methods[0]
	if answer.Name != "answer" {
		t.Errorf("method name = %q", answer.Name)
	}
	if len(answer.Instructions) != 2 {
		t.Fatalf("got %d instructions, want 2", len(answer.Instructions))
	}
	if answer.Instructions[0].Text != "bipush 42" {
		t.Errorf("first instruction = %q", answer.Instructions[0].Text)
	}
	if len(answer.Listing) != 2 {
		t.Fatalf("got %d listing lines, want 2", len(answer.Listing))
	}
	if answer.Listing[1] != "Offset 0002: opcode [AC] ireturn" {
		t.Errorf("listing line = %q", answer.Listing[1])
	}
	if answer.Error != "" {
		t.Errorf("unexpected method error %q", answer.Error)
	}

	reset := report.Methods[1]
	if reset.Instructions[2].CPIndex == nil || *reset.Instructions[2].CPIndex != 2 {
		t.Errorf("putfield constant pool index not reported: %+v", reset.Instructions[2])
	}
}

func TestBuildReportMethodFilter(t *testing.T) {
	report, err := buildReport("/tmp/Greeter.class", "", testClass(), inspectOptions{methodFilter: "reset"})
	if err != nil {
		t.Fatalf("buildReport error: %v", err)
	}
	if len(report.Methods) != 1 || report.Methods[0].Name != "reset" {
		t.Errorf("methods = %+v", report.Methods)
	}
}
