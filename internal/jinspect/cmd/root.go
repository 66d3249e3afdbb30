package cmd

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"os"
	pathpkg "path/filepath"
	"runtime/pprof"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"jinspect/internal/bytecode"
	"jinspect/internal/classfile"
	jlog "jinspect/internal/jinspect/log"
	"jinspect/internal/logging"
	"jinspect/internal/render"
	"jinspect/internal/ui/colorize"
)

// logger writes diagnostics to stderr or, with JINSPECT_LOG_TO_FILE=1, to the
// debug log file that the logs command reads.
var logger = logging.NewLogger()

func init() {
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")

	rootCmd.Flags().BoolP("help", "h", false, "Help")
	rootCmd.Flags().BoolP("no-tui", "n", false, "Show listing without TUI")
	rootCmd.Flags().BoolP("json", "j", false, "Output results as JSON for regression testing")
	rootCmd.Flags().StringP("method", "m", "", "Only show methods whose name contains this string")
	rootCmd.Flags().Bool("strict", false, "Fail on unknown opcodes instead of emitting a placeholder")
	rootCmd.Flags().String("cpuprofile", "", "Write CPU profile to file")
	rootCmd.Flags().String("memprofile", "", "Write memory profile to file")
}

var rootCmd = &cobra.Command{
	Use:   "jinspect [file]",
	Short: "Terminal-based class file inspector",
	Long: `Jinspect is a terminal-based inspector for compiled class files.
It parses the class file container, decodes the bytecode of every method,
and provides an interactive TUI for exploring the result.`,
	Example: `
# Run in interactive mode on a class file
jinspect /path/to/Foo.class

# Print a plain listing of one method
jinspect -n -m main /path/to/Foo.class
  `,
	Args: cobra.ExactArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := ResolveCwd(cmd); err != nil {
			return err
		}
		debug, _ := cmd.Flags().GetBool("debug")
		logFile := ""
		if os.Getenv("JINSPECT_LOG_TO_FILE") == "1" {
			logFile = logging.DebugLogFile
		}
		jlog.Setup(logFile, debug || logging.IsDebug())
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Setup CPU profiling if requested
		cpuprofile, _ := cmd.Flags().GetString("cpuprofile")
		if cpuprofile != "" {
			f, err := os.Create(cpuprofile)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %v", err)
			}
			defer f.Close()
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %v", err)
			}
			defer pprof.StopCPUProfile()
		}

		// Setup memory profiling if requested
		memprofile, _ := cmd.Flags().GetString("memprofile")
		if memprofile != "" {
			defer func() {
				f, err := os.Create(memprofile)
				if err != nil {
					fmt.Fprintf(os.Stderr, "could not create memory profile: %v\n", err)
					return
				}
				defer f.Close()
				if err := pprof.WriteHeapProfile(f); err != nil {
					fmt.Fprintf(os.Stderr, "could not write memory profile: %v\n", err)
				}
			}()
		}

		file := args[0]

		// Get absolute path
		absPath, err := pathpkg.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path: %v", err)
		}

		// Check if file exists
		if _, err := os.Stat(absPath); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", file)
			}
			return fmt.Errorf("cannot access file: %v", err)
		}

		noTUI, _ := cmd.Flags().GetBool("no-tui")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		methodFilter, _ := cmd.Flags().GetString("method")
		strict, _ := cmd.Flags().GetBool("strict")

		// Also use no-tui mode when output is being piped
		if !term.IsTerminal(os.Stdout.Fd()) {
			noTUI = true
			os.Setenv("JINSPECT_NO_COLOR", "1")
		}

		// Disable coloring when using --no-tui to avoid garbled output
		if noTUI {
			os.Setenv("JINSPECT_NO_COLOR", "1")
		}

		opts := inspectOptions{
			methodFilter: methodFilter,
			strict:       strict,
		}

		if jsonOutput {
			return runJSON(absPath, opts)
		}

		if noTUI {
			return runNoTUI(absPath, opts)
		}

		// Set up the TUI.
		program := tea.NewProgram(
			NewModel(absPath, opts),
			tea.WithAltScreen(),
			tea.WithContext(cmd.Context()),
			// Mouse tracking disabled to allow native text selection
		)

		if _, err := program.Run(); err != nil {
			slog.Error("TUI run error", "error", err)
			return fmt.Errorf("TUI error: %v", err)
		}
		return nil
	},
}

// inspectOptions carries the listing flags shared by the output modes.
type inspectOptions struct {
	methodFilter string
	strict       bool
}

func (o inspectOptions) matches(name string) bool {
	return o.methodFilter == "" || strings.Contains(name, o.methodFilter)
}

func (o inspectOptions) decoder() *bytecode.Decoder {
	return &bytecode.Decoder{Strict: o.strict}
}

// fileDigest computes the SHA-256 digest of the file at path.
func fileDigest(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}

// classHeading renders the javap-style declaration line for the class.
func classHeading(c *classfile.Class) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(c.AccessFlags, " "))
	sb.WriteByte(' ')
	sb.WriteString(c.ClassName)
	if c.SuperClass != "" && c.SuperClass != "java.lang.Object" {
		sb.WriteString(" extends ")
		sb.WriteString(c.SuperClass)
	}
	if len(c.Interfaces) > 0 {
		sb.WriteString(" implements ")
		sb.WriteString(strings.Join(c.Interfaces, ", "))
	}
	return sb.String()
}

// writeListing writes the plain text listing for a parsed class.
func writeListing(w io.Writer, path, digest string, c *classfile.Class, opts inspectOptions) error {
	fmt.Fprintf(w, "; %s\n", path)
	fmt.Fprintf(w, "; %s (%s)\n", pathpkg.Base(path), c.JavaVersion)
	if digest != "" {
		fmt.Fprintf(w, "; %s\n", digest)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, classHeading(c))
	fmt.Fprintf(w, "  minor version: %d\n", c.MinorVersion)
	fmt.Fprintf(w, "  major version: %d (Java %s)\n", c.MajorVersion, c.JavaVersion)
	if c.SourceFile != "" {
		fmt.Fprintf(w, "  source file: %s\n", c.SourceFile)
	}
	fmt.Fprintln(w)

	if len(c.Fields) > 0 && opts.methodFilter == "" {
		for _, f := range c.Fields {
			decl := strings.Join(f.Flags, " ")
			if decl != "" {
				decl += " "
			}
			fmt.Fprintf(w, "%s%s %s\n", decl, f.Type, f.Name)
		}
		fmt.Fprintln(w)
	}

	dec := opts.decoder()
	for _, m := range c.Methods {
		if !opts.matches(m.Name) {
			continue
		}
		fmt.Fprintln(w, m.Signature())
		if m.Code == nil {
			fmt.Fprintln(w)
			continue
		}
		fmt.Fprintf(w, "  stack=%d, locals=%d\n", m.MaxStack, m.MaxLocals)

		insts, err := dec.Decode(m.Code)
		listing := render.Listing(insts, c.Pool)
		fmt.Fprint(w, colorize.Listing(listing))
		if err != nil {
			if opts.strict {
				return fmt.Errorf("method %s: %v", m.Name, err)
			}
			fmt.Fprintf(w, "; %v\n", err)
		}
		fmt.Fprintln(w)
	}

	return nil
}

// runNoTUI runs the inspector in non-interactive mode
func runNoTUI(path string, opts inspectOptions) error {
	c, err := classfile.Open(path)
	if err != nil {
		return fmt.Errorf("failed to parse class file: %v", err)
	}
	logger.Debug("parsed class file", "file", path, "class", c.ClassName, "methods", len(c.Methods))

	digest, err := fileDigest(path)
	if err != nil {
		return fmt.Errorf("failed to calculate digest: %v", err)
	}

	return writeListing(os.Stdout, path, digest, c, opts)
}

func Execute() {
	// Check if --no-tui or --json flag is present, or if output is being
	// piped, to bypass fang's automatic markdown rendering
	noTUI := false
	for _, arg := range os.Args[1:] {
		if arg == "--no-tui" || arg == "-n" || arg == "--json" || arg == "-j" {
			noTUI = true
			break
		}
	}

	// Also bypass fang when output is being piped
	if !noTUI && !term.IsTerminal(os.Stdout.Fd()) {
		noTUI = true
	}

	if noTUI {
		// Use cobra directly to avoid fang's automatic markdown rendering
		if err := rootCmd.Execute(); err != nil {
			os.Exit(1)
		}
	} else {
		// Use fang for enhanced CLI experience with markdown rendering
		if err := fang.Execute(
			context.Background(),
			rootCmd,
			fang.WithNotifySignal(os.Interrupt),
		); err != nil {
			os.Exit(1)
		}
	}
}

func ResolveCwd(cmd *cobra.Command) (string, error) {
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd != "" {
		err := os.Chdir(cwd)
		if err != nil {
			return "", fmt.Errorf("failed to change directory: %v", err)
		}
		return cwd, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %v", err)
	}
	return cwd, nil
}
