package colorize

import (
	"strings"
	"testing"
)

func TestListingNoColor(t *testing.T) {
	t.Setenv("JINSPECT_NO_COLOR", "1")

	listing := "Offset 0000: opcode [10] bipush 42\nOffset 0002: opcode [AC] ireturn\n"
	if got := Listing(listing); got != listing {
		t.Errorf("Listing() with colors disabled = %q, want input unchanged", got)
	}
}

func TestLineColorized(t *testing.T) {
	t.Setenv("JINSPECT_NO_COLOR", "")

	line := "Offset 0000: opcode [B2] getstatic 7 - java.lang.System.out:Ljava/io/PrintStream;"
	got := Line(line)

	// The offset prefix gets the dimmed escape, the description the golden one.
	if !strings.Contains(got, "\033[38;2;79;79;79m") {
		t.Errorf("Line() missing offset color: %q", got)
	}
	if !strings.Contains(got, "\033[38;2;234;205;83m") {
		t.Errorf("Line() missing description color: %q", got)
	}
	if !strings.Contains(got, "java.lang.System.out:Ljava/io/PrintStream;") {
		t.Errorf("Line() lost the description text: %q", got)
	}
}

func TestStyleRegistered(t *testing.T) {
	if BytecodeDark == nil {
		t.Fatal("bytecode-dark style not registered")
	}
	if BytecodeDark.Name != "bytecode-dark" {
		t.Errorf("style name = %q", BytecodeDark.Name)
	}
}
