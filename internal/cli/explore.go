package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ionutms/schemascope/pkg/explorer"
	"github.com/ionutms/schemascope/pkg/schema"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand creates the explore command for interactive browsing.
func (c *CLI) exploreCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "explore [schema]",
		Short: "Browse the catalog and property trees interactively",
		Long: `Browse the catalog and property trees interactively.

Without arguments, a schema picker opens first. Inside a tree, enter looks
up the highlighted node's documentation link.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return c.runExplore(cmd.Context(), runner, name)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

// runExplore drives the picker and tree views in sequence.
func (c *CLI) runExplore(ctx context.Context, runner *explorer.Runner, name string) error {
	if name == "" {
		entries := make([]*schema.Entry, 0)
		for _, n := range runner.Names() {
			e, err := runner.Entry(n)
			if err != nil {
				return err
			}
			entries = append(entries, e)
		}

		model, err := tea.NewProgram(newSchemaListModel(entries)).Run()
		if err != nil {
			return err
		}
		list := model.(schemaListModel)
		if list.Selected == nil {
			return nil
		}
		name = list.Selected.Name
	}

	res, err := runner.Explore(ctx, &explorer.Options{Schema: name, Logger: c.Logger})
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(newTreeModel(ctx, runner, res)).Run()
	return err
}

// =============================================================================
// schemaListModel - Interactive schema selection
// =============================================================================

// schemaListModel is the bubbletea model for picking a schema.
type schemaListModel struct {
	Entries  []*schema.Entry
	Cursor   int
	Selected *schema.Entry
	Height   int
	Offset   int
}

func newSchemaListModel(entries []*schema.Entry) schemaListModel {
	return schemaListModel{
		Entries: entries,
		Height:  15,
	}
}

func (m schemaListModel) Init() tea.Cmd {
	return nil
}

func (m schemaListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Entries[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m schemaListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Schema"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, e.Name, e.DocPath})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Schema", "Doc Path").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 2 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}

// =============================================================================
// treeModel - Interactive tree browsing
// =============================================================================

// docLinkMsg carries the result of an asynchronous documentation lookup.
type docLinkMsg struct {
	nodeID string
	link   *explorer.DocLink
	err    error
}

// treeModel is the bubbletea model for walking a built tree.
type treeModel struct {
	ctx    context.Context
	runner *explorer.Runner
	result *explorer.Result

	Cursor   int
	Offset   int
	Height   int
	checking bool
	lastDoc  *docLinkMsg
}

func newTreeModel(ctx context.Context, runner *explorer.Runner, res *explorer.Result) treeModel {
	return treeModel{
		ctx:    ctx,
		runner: runner,
		result: res,
		Height: 20,
	}
}

func (m treeModel) Init() tea.Cmd {
	return nil
}

func (m treeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.result.Tree.Len()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			id := m.result.Tree.IDs[m.Cursor]
			m.checking = true
			m.lastDoc = nil
			return m, m.lookupDoc(id)
		}
	case docLinkMsg:
		m.checking = false
		cp := msg
		m.lastDoc = &cp
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// lookupDoc resolves and verifies the documentation link off the UI loop.
func (m treeModel) lookupDoc(nodeID string) tea.Cmd {
	return func() tea.Msg {
		link, err := m.runner.Doc(m.ctx, m.result.Schema, nodeID)
		return docLinkMsg{nodeID: nodeID, link: link, err: err}
	}
}

func (m treeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.result.Schema))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d nodes", m.result.Tree.Len())))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ docs  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > m.result.Tree.Len() {
		end = m.result.Tree.Len()
	}

	for i := m.Offset; i < end; i++ {
		depth := strings.Count(m.result.Tree.IDs[i], "*")
		indent := strings.Repeat("  ", depth)

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := cursor + indent + m.result.Tree.Labels[i]
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else if depth == 0 {
			b.WriteString(listNormalStyle.Render(line))
		} else {
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.checking:
		b.WriteString(listDimStyle.Render("  checking documentation..."))
	case m.lastDoc != nil && m.lastDoc.err != nil:
		b.WriteString(StyleWarning.Render("  " + m.lastDoc.err.Error()))
	case m.lastDoc != nil && m.lastDoc.link.Exists:
		b.WriteString("  " + StyleLink.Render(m.lastDoc.link.URL))
	case m.lastDoc != nil:
		b.WriteString(StyleWarning.Render("  no documentation section for " + m.lastDoc.nodeID))
	}

	return b.String()
}
