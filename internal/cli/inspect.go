package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dashweave/dashweave/pkg/content"
	"github.com/dashweave/dashweave/pkg/pipeline"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	interactive bool // open the interactive tree browser instead of printing
	noCache     bool // disable the dataset cache
}

// inspectCommand creates the inspect command, which shows the materialized
// tab tree. Prints a styled tree by default, -i opens the browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect [manifest]",
		Short: "Show the dashboard's tab tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd, manifestArg(args), &opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the tree interactively")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the dataset cache")

	return cmd
}

func (c *CLI) runInspect(cmd *cobra.Command, manifest string, opts *inspectOpts) error {
	runner, err := c.newRunner(cmd.Context(), opts.noCache, "")
	if err != nil {
		return err
	}
	defer runner.Close()

	var result pipeline.Result
	if err := runner.Collect(cmd.Context(), pipeline.Options{
		Manifest:  manifest,
		Logger:    c.Logger,
		HTTPCache: newHTTPCache(opts.noCache),
	}, &result); err != nil {
		return err
	}

	tree := result.Collection.Materialize()
	rows := flattenTree(tree, 0)

	if opts.interactive {
		model := newTreeModel(result.Title, rows)
		_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
		return err
	}

	if result.Title != "" {
		fmt.Println(StyleTitle.Render(result.Title))
	}
	for _, row := range rows {
		indent := strings.Repeat("  ", row.Depth)
		if row.IsLeaf {
			fmt.Println(indent + treeLeafStyle.Render(row.Text))
		} else {
			fmt.Println(indent + treeGroupStyle.Render(row.Text))
		}
	}
	return nil
}

// treeRow is one display line of the flattened tab tree.
type treeRow struct {
	Depth  int
	Text   string
	IsLeaf bool
	Detail string
}

// flattenTree converts the node tree into indented display rows.
func flattenTree(nodes []content.Node, depth int) []treeRow {
	var rows []treeRow
	for _, n := range nodes {
		switch node := n.(type) {
		case *content.GroupNode:
			rows = append(rows, treeRow{Depth: depth, Text: node.Label})
			rows = append(rows, flattenTree(node.Children, depth+1)...)
		case content.Leaf:
			rows = append(rows, treeRow{
				Depth:  depth,
				Text:   leafText(node.Item),
				IsLeaf: true,
				Detail: leafDetail(node.Item),
			})
		}
	}
	return rows
}

func leafText(item content.Item) string {
	if title := item.DisplayTitle(); title != "" {
		return fmt.Sprintf("%s (%s)", title, item.Kind)
	}
	return string(item.Kind)
}

// leafDetail renders the item's params sorted by name.
func leafDetail(item content.Item) string {
	if len(item.Params) == 0 {
		return "no params"
	}
	keys := make([]string, 0, len(item.Params))
	for k := range item.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, item.Params[k])
	}
	return strings.Join(parts, "  ")
}

// =============================================================================
// treeModel - Interactive tree browser
// =============================================================================

var (
	treeSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	treeGroupStyle    = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	treeLeafStyle     = lipgloss.NewStyle().Foreground(colorGray)
)

// treeModel is the bubbletea model for tree browsing.
type treeModel struct {
	Title  string
	Rows   []treeRow
	Cursor int
	Height int
	Offset int
}

func newTreeModel(title string, rows []treeRow) treeModel {
	if title == "" {
		title = "Dashboard"
	}
	return treeModel{Title: title, Rows: rows, Height: 20}
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
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m treeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	for i := m.Offset; i < end; i++ {
		row := m.Rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := cursor + strings.Repeat("  ", row.Depth) + row.Text
		switch {
		case i == m.Cursor:
			b.WriteString(treeSelectedStyle.Render(line))
		case row.IsLeaf:
			b.WriteString(treeLeafStyle.Render(line))
		default:
			b.WriteString(treeGroupStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.Cursor < len(m.Rows) && m.Rows[m.Cursor].IsLeaf {
		b.WriteString(StyleDim.Render("  " + m.Rows[m.Cursor].Detail))
		b.WriteString("\n")
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}
