package cmd

import (
	"fmt"
	"io"
	"os"
	pathpkg "path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"jinspect/internal/classfile"
	"jinspect/internal/jinspect/styles"
	"jinspect/internal/render"
	"jinspect/internal/ui/colorize"
)

type viewMode int

const (
	viewOverview viewMode = iota
	viewMethods
	viewBytecode
)

type methodItem struct {
	index      int
	name       string
	signature  string
	hasCode    bool
	filterTerm string // Pre-computed filter value
}

func (i methodItem) Title() string {
	// This is used for filtering - return plain text
	return i.signature
}

func (i methodItem) FilterValue() string {
	// Return the pre-computed filter term
	return i.filterTerm
}

func (i methodItem) Description() string { return "" }

// Custom item delegate for the methods list
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(methodItem)
	if !ok {
		return
	}

	var numStyle lipgloss.Style
	var indicator string

	if index == m.Index() {
		// Selected item
		indicator = ">"
		numStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170")) // Purple for selected index
	} else {
		// Normal item
		indicator = " "
		numStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // Gray for normal index
	}

	sig := colorizeSignature(i.signature)
	if !i.hasCode {
		// Abstract and native methods have nothing to decode
		sig = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render(i.signature)
	}

	str := fmt.Sprintf(" %s  %s  %s",
		indicator,
		numStyle.Render(fmt.Sprintf("%3d", i.index)),
		sig)

	fmt.Fprint(w, str)
}

// colorizeSignature applies syntax highlighting to a method signature
func colorizeSignature(sig string) string {
	typeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("81"))     // Cyan for types
	funcStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))    // Orange for method names
	keywordStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("141")) // Purple for modifiers

	parenIdx := strings.Index(sig, "(")
	if parenIdx == -1 {
		return funcStyle.Render(sig)
	}

	preFunc := sig[:parenIdx]
	postFunc := sig[parenIdx:]

	words := strings.Fields(preFunc)
	var colored []string
	for i, word := range words {
		switch {
		case i == len(words)-1:
			// Method name
			colored = append(colored, funcStyle.Render(word))
		case isModifier(word):
			colored = append(colored, keywordStyle.Render(word))
		default:
			// Return type
			colored = append(colored, typeStyle.Render(word))
		}
	}

	return strings.Join(colored, " ") + postFunc
}

func isModifier(word string) bool {
	switch word {
	case "public", "private", "protected", "static", "final", "abstract",
		"synchronized", "native", "strictfp", "bridge", "varargs", "synthetic":
		return true
	}
	return false
}

type model struct {
	viewport     viewport.Model
	methodsList  list.Model
	bytecodeView viewport.Model
	spinner      spinner.Model
	mode         viewMode
	filepath     string
	opts         inspectOptions
	digest       string
	class        *classfile.Class
	parseErr     error
	loadingClass bool
	loadingDigest bool
	width        int
	height       int
}

// Message types
type digestCalculatedMsg struct {
	digest string
}

type classLoadedMsg struct {
	class *classfile.Class
	err   error
}

// Commands
func calculateDigestCmd(filepath string) tea.Cmd {
	return func() tea.Msg {
		digest, err := fileDigest(filepath)
		if err != nil {
			return digestCalculatedMsg{digest: fmt.Sprintf("error: %v", err)}
		}
		return digestCalculatedMsg{digest: digest}
	}
}

func loadClassCmd(filepath string) tea.Cmd {
	return func() tea.Msg {
		c, err := classfile.Open(filepath)
		return classLoadedMsg{class: c, err: err}
	}
}

func NewModel(filepath string, opts inspectOptions) model {
	vp := viewport.New()
	vp.SetWidth(80)
	vp.SetHeight(24)

	// Create custom item delegate
	delegate := itemDelegate{}

	methodsList := list.New([]list.Item{}, delegate, 80, 24)
	methodsList.SetShowStatusBar(false)
	methodsList.SetFilteringEnabled(true)
	methodsList.Title = "Methods"
	methodsList.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("99")).
		MarginLeft(2)
	methodsList.SetShowHelp(true)

	// Create spinner
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))

	// Create bytecode viewport
	bvp := viewport.New()
	bvp.SetWidth(80)
	bvp.SetHeight(24)

	m := model{
		viewport:      vp,
		methodsList:   methodsList,
		bytecodeView:  bvp,
		spinner:       s,
		mode:          viewOverview,
		filepath:      filepath,
		opts:          opts,
		loadingClass:  true,
		loadingDigest: true,
		width:         80,
		height:        24,
	}

	// Set initial content
	m.updateContent()

	return m
}

func (m model) Init() tea.Cmd {
	// Start calculating the digest, parsing the class, and the spinner
	return tea.Batch(
		calculateDigestCmd(m.filepath),
		loadClassCmd(m.filepath),
		m.spinner.Tick,
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case digestCalculatedMsg:
		m.digest = msg.digest
		m.loadingDigest = false
		m.updateContent()
		return m, nil

	case classLoadedMsg:
		m.class = msg.class
		m.parseErr = msg.err
		m.loadingClass = false
		if msg.err == nil && msg.class != nil {
			m.updateMethodsList()
		}
		m.updateContent()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		// Only continue spinner if we're still loading something
		if m.loadingDigest || m.loadingClass {
			m.updateContent()
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		if msg.Width != m.width || msg.Height != m.height {
			m.width = msg.Width
			m.height = msg.Height
			m.viewport.SetWidth(msg.Width)
			m.viewport.SetHeight(msg.Height - 2)
			m.methodsList.SetWidth(msg.Width)
			m.methodsList.SetHeight(msg.Height - 2)
			m.bytecodeView.SetWidth(msg.Width)
			m.bytecodeView.SetHeight(msg.Height - 2)

			m.updateContent()
		}

	case tea.KeyMsg:
		// If we're in methods view and the list is filtering, let it handle
		// the keys first
		if m.mode == viewMethods && m.methodsList.FilterState() == list.Filtering {
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "esc":
				// Let the list handle ESC to exit filtering
				break
			default:
				// Pass all other keys to the list when filtering
				break
			}
		} else {
			// Normal key handling when not filtering
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "o":
				m.mode = viewOverview
				return m, nil
			case "m":
				if m.methodCount() > 0 {
					m.mode = viewMethods
				}
				return m, nil
			case "b":
				if m.bytecodeView.TotalLineCount() > 0 {
					m.mode = viewBytecode
				}
				return m, nil
			case "enter":
				// If in methods view, decode and show the selected method
				if m.mode == viewMethods {
					if selectedItem := m.methodsList.SelectedItem(); selectedItem != nil {
						if item, ok := selectedItem.(methodItem); ok && m.class != nil {
							content := m.generateMethodListing(item)
							if content != "" {
								m.mode = viewBytecode
								m.bytecodeView.SetContent(content)
								m.bytecodeView.GotoTop()
							}
						}
					}
				}
				return m, nil
			case "tab":
				// Cycle forward through views
				switch m.mode {
				case viewOverview:
					if m.methodCount() > 0 {
						m.mode = viewMethods
					}
				case viewMethods:
					if m.bytecodeView.TotalLineCount() > 0 {
						m.mode = viewBytecode
					} else {
						m.mode = viewOverview
					}
				case viewBytecode:
					m.mode = viewOverview
				}
				return m, nil
			case "shift+tab":
				// Cycle backward through views
				switch m.mode {
				case viewOverview:
					if m.bytecodeView.TotalLineCount() > 0 {
						m.mode = viewBytecode
					} else if m.methodCount() > 0 {
						m.mode = viewMethods
					}
				case viewMethods:
					m.mode = viewOverview
				case viewBytecode:
					if m.methodCount() > 0 {
						m.mode = viewMethods
					}
				}
				return m, nil
			}
		}
	}

	// Update the active view
	switch m.mode {
	case viewMethods:
		m.methodsList, cmd = m.methodsList.Update(msg)
	case viewBytecode:
		m.bytecodeView, cmd = m.bytecodeView.Update(msg)
	default:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	var content string
	switch m.mode {
	case viewMethods:
		content = m.methodsList.View()
	case viewBytecode:
		content = m.bytecodeView.View()
	default:
		content = m.viewport.View()
	}

	// Add menu bar at the bottom
	var menu string
	switch m.mode {
	case viewMethods:
		menu = " Enter: view bytecode • O: overview • Tab: cycle • Q: quit "
	case viewBytecode:
		menu = " O: overview • M: methods • Tab: cycle • Q: quit "
	default: // viewOverview
		if m.methodCount() > 0 {
			menu = " M: methods • B: bytecode • Tab: cycle • Q: quit "
		} else {
			menu = " Q: quit "
		}
	}

	// Style the menu bar
	menuStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("252")).
		Padding(0, 1).
		Width(m.width)

	return content + "\n" + menuStyle.Render(menu)
}

func (m model) methodCount() int {
	if m.class == nil {
		return 0
	}
	return len(m.class.Methods)
}

func (m *model) updateContent() {
	// Get relative path from current directory
	relPath := m.filepath
	if cwd, err := os.Getwd(); err == nil {
		if rel, err := pathpkg.Rel(cwd, m.filepath); err == nil {
			relPath = rel
		}
	}

	var lines []string

	// Split path into directory and filename
	dir := pathpkg.Dir(relPath)
	base := pathpkg.Base(relPath)

	// Add directory path
	if dir != "." {
		lines = append(lines, fmt.Sprintf("; %s/", dir))
	}
	lines = append(lines, fmt.Sprintf("; %s", base))

	// Add digest
	if m.digest != "" {
		lines = append(lines, fmt.Sprintf("; %s", m.digest))
	} else if m.loadingDigest {
		lines = append(lines, "; Calculating digest...")
	}

	markdown := fmt.Sprintf("# Jinspect\n\n```\n%s\n```", strings.Join(lines, "\n"))

	if m.parseErr != nil {
		markdown += fmt.Sprintf("\n\n**Parse error:** %v", m.parseErr)
	} else if c := m.class; c != nil {
		markdown += "\n\n## Class\n\n"
		markdown += fmt.Sprintf("```\n%s\n```\n\n", classHeading(c))
		markdown += fmt.Sprintf("- Java %s (major %d, minor %d)\n", c.JavaVersion, c.MajorVersion, c.MinorVersion)
		if c.SourceFile != "" {
			markdown += fmt.Sprintf("- compiled from `%s`\n", c.SourceFile)
		}
		markdown += fmt.Sprintf("- %d fields, %d methods\n", len(c.Fields), len(c.Methods))

		if len(c.Fields) > 0 {
			markdown += "\n## Fields\n\n"
			for _, f := range c.Fields {
				decl := strings.Join(f.Flags, " ")
				if decl != "" {
					decl += " "
				}
				markdown += fmt.Sprintf("- `%s%s %s`\n", decl, f.Type, f.Name)
			}
		}
	}

	// Add loading spinner after the code block if needed
	if m.loadingClass {
		markdown += fmt.Sprintf("\n\n%s Parsing class file...", m.spinner.View())
	}
	if m.loadingDigest && m.digest == "" {
		markdown += fmt.Sprintf("\n\n%s Calculating digest...", m.spinner.View())
	}

	// Render markdown using glamour
	width := m.width
	if width == 0 {
		width = 80
	}
	renderer := styles.GetMarkdownRenderer(width - 2)
	rendered, _ := renderer.Render(markdown)
	m.viewport.SetContent(strings.TrimSuffix(rendered, "\n"))
}

func (m *model) updateMethodsList() {
	items := make([]list.Item, 0, len(m.class.Methods))
	for i, method := range m.class.Methods {
		sig := method.Signature()
		items = append(items, methodItem{
			index:      i,
			name:       method.Name,
			signature:  sig,
			hasCode:    method.Code != nil,
			filterTerm: method.Name + " " + sig,
		})
	}

	m.methodsList.SetItems(items)
	m.methodsList.Title = fmt.Sprintf("Methods (%d total)", len(items))
}

// generateMethodListing decodes and formats the bytecode of one method
func (m *model) generateMethodListing(item methodItem) string {
	if item.index < 0 || item.index >= len(m.class.Methods) {
		return ""
	}
	method := m.class.Methods[item.index]

	var sb strings.Builder
	sb.WriteString(item.signature + "\n")

	if method.Code == nil {
		sb.WriteString("\n(no code attribute)\n")
		return sb.String()
	}
	fmt.Fprintf(&sb, "  stack=%d, locals=%d\n\n", method.MaxStack, method.MaxLocals)

	insts, err := m.opts.decoder().Decode(method.Code)
	listing := render.Listing(insts, m.class.Pool)
	sb.WriteString(colorize.Listing(listing))
	if err != nil {
		fmt.Fprintf(&sb, "; %v\n", err)
	}

	return sb.String()
}
