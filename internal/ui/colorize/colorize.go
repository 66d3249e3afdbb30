// Package colorize applies terminal syntax highlighting to bytecode listings.
package colorize

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// getListingLexer returns a lexer suitable for mnemonic-and-operand lines.
// Bytecode mnemonics tokenize well with the assembler lexers.
func getListingLexer() chroma.Lexer {
	candidates := []string{"nasm", "gas", "GAS", "Gas"}
	for _, name := range candidates {
		if lexer := lexers.Get(name); lexer != nil {
			return lexer
		}
	}
	return nil
}

// getListingStyle returns the listing style with fallbacks
func getListingStyle() *chroma.Style {
	// Try our custom style first, then fallbacks
	candidates := []string{"bytecode-dark", "dracula", "monokai"}
	for _, name := range candidates {
		if style := styles.Get(name); style != nil {
			return style
		}
	}
	return styles.Fallback
}

// getTerminalFormatter returns an appropriate terminal formatter
func getTerminalFormatter() chroma.Formatter {
	// Try high-color first, then fallback
	candidates := []string{"terminal16m", "terminal256"}
	for _, name := range candidates {
		if formatter := formatters.Get(name); formatter != nil {
			return formatter
		}
	}
	return formatters.Fallback
}

func colorsDisabled() bool {
	return os.Getenv("JINSPECT_NO_COLOR") != ""
}

// Listing colorizes a full instruction listing line by line.
func Listing(listing string) string {
	if colorsDisabled() {
		return listing
	}
	lines := strings.Split(listing, "\n")
	for i, line := range lines {
		lines[i] = Line(line)
	}
	return strings.Join(lines, "\n")
}

// Line colorizes a single listing line while preserving its layout.
// Lines have the shape "Offset 0000: opcode [B2] getstatic 7 - description";
// the offset prefix is dimmed, the rest goes through chroma, and the
// resolved description is rendered in the comment color.
func Line(line string) string {
	if colorsDisabled() {
		return line
	}

	rest, ok := strings.CutPrefix(line, "Offset ")
	if !ok {
		return colorizeChunk(line)
	}
	colon := strings.Index(rest, ": ")
	if colon < 0 {
		return colorizeChunk(line)
	}

	prefix := "Offset " + rest[:colon+1]
	body := rest[colon+2:]

	desc := ""
	if i := strings.Index(body, " - "); i >= 0 {
		desc = body[i+3:]
		body = body[:i]
	}

	// Offset prefix in gray (79, 79, 79)
	var sb strings.Builder
	fmt.Fprintf(&sb, "\033[38;2;79;79;79m%s\033[0m ", prefix)
	sb.WriteString(colorizeChunk(body))
	if desc != "" {
		// Description in golden (234, 205, 83)
		fmt.Fprintf(&sb, " - \033[38;2;234;205;83m%s\033[0m", desc)
	}
	return sb.String()
}

// colorizeChunk runs chroma over a fragment of a listing line
func colorizeChunk(s string) string {
	lexer := getListingLexer()
	if lexer == nil {
		// Return plain text if no lexer available
		return s
	}

	// Make sure our custom style is registered
	_ = BytecodeDark // Force registration

	style := getListingStyle()
	formatter := getTerminalFormatter()

	iterator, err := lexer.Tokenise(nil, s)
	if err != nil {
		return s
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return s
	}
	return strings.TrimRight(buf.String(), "\n")
}
