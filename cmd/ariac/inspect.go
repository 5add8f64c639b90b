package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/cancelei/aria-lang-sub001/internal/concurrent"
	"github.com/cancelei/aria-lang-sub001/internal/examples"
	"github.com/cancelei/aria-lang-sub001/internal/mir"
)

var (
	inspectTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4")).
				Padding(0, 1)

	inspectFuncStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98"))
	inspectSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4"))
	inspectBodyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
	inspectHelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// inspectModel browses a lowered+optimized mir.Program's functions and, for
// each, its pretty-printed basic blocks. Scope snapshots from a live
// concurrent.Scope are shown alongside when one is supplied (none of the
// built-in example programs keep a scope running past their own call, so
// this is normally empty — it exists so the same view renders real
// snapshots when embedded by a future host that does).
type inspectModel struct {
	programName string
	program     *mir.Program
	snapshot    *concurrent.ScopeSnapshot
	selected    int
	colored     bool
}

func newInspectModel(name string, p *mir.Program, snapshot *concurrent.ScopeSnapshot, colored bool) *inspectModel {
	return &inspectModel{programName: name, program: p, snapshot: snapshot, colored: colored}
}

func (m *inspectModel) Init() tea.Cmd { return nil }

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.program.Functions)-1 {
			m.selected++
		}
	}
	return m, nil
}

func (m *inspectModel) View() string {
	var b strings.Builder

	title := "ariac inspect: " + m.programName
	if m.colored {
		b.WriteString(inspectTitleStyle.Render(title))
	} else {
		b.WriteString(title)
	}
	b.WriteString("\n\n")

	for i, fn := range m.program.Functions {
		line := fmt.Sprintf("fn#%d %s (%d blocks)", fn.ID, fn.Name, len(fn.Blocks))
		cursor := "  "
		if i == m.selected {
			cursor = "> "
			if m.colored {
				line = inspectSelectedStyle.Render(cursor + line)
			} else {
				line = cursor + line
			}
		} else if m.colored {
			line = cursor + inspectFuncStyle.Render(line)
		} else {
			line = cursor + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.program.Functions) > 0 {
		body := mir.PrettyPrintFunction(m.program, m.program.Functions[m.selected])
		if m.colored {
			b.WriteString(inspectBodyStyle.Render(body))
		} else {
			b.WriteString(body)
		}
	}

	if m.snapshot != nil {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("scope: %d active tasks, cancelled=%v\n",
			m.snapshot.ActiveCount, m.snapshot.Cancelled))
	}

	help := "↑/↓ select function • q quit"
	if m.colored {
		help = inspectHelpStyle.Render(help)
	}
	b.WriteString("\n" + help)
	return b.String()
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	program := fs.String("program", "identity", "built-in program to inspect (available: "+strings.Join(examples.Names(), ", ")+")")
	opt := fs.String("opt", "basic", "optimization level: none, basic, or aggressive")
	fs.Parse(args)

	p, err := buildProgram(*program, *opt)
	if err != nil {
		return err
	}

	colored := term.IsTerminal(int(os.Stdout.Fd()))
	model := newInspectModel(*program, p, nil, colored)
	tp := tea.NewProgram(model, tea.WithAltScreen())
	_, err = tp.Run()
	return err
}
