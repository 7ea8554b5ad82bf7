package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/openopus/ng-pane-manager2-sub000/pkg/layout"
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "browse [layout]",
		Short: "Explore and resize a layout interactively",
		Long: `Open a layout in an interactive tree view.

Keys:
  ↑/↓ k/j   move
  ←/→ h/l   shrink / grow the selected pane within its split
  tab       cycle the tabs of a tab stack, or select the highlighted tab
  s         save (for @name layouts)
  q         quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tf, err := formatFlag(format)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			arg := inputArg(args)
			root, err := c.readLayout(ctx, arg, tf)
			if err != nil {
				return err
			}

			var save func(*layout.Root) error
			if name, ok := storedName(arg); ok {
				save = func(r *layout.Root) error {
					return c.writeLayout(ctx, nil, r, "@"+name, tf)
				}
			}

			m := newBrowseModel(root, save)
			defer m.close()
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil && ctx.Err() != nil {
				return context.Cause(ctx)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "template format when reading stdin: json, toml")
	return cmd
}

// browseStep is the fraction of a split's ratio sum moved per key press.
const browseStep = 0.05

// maxEvents bounds the event log shown under the tree.
const maxEvents = 5

var (
	browseCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	browseHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

type browseRow struct {
	depth int
	slot  layout.ChildID
}

// browseModel is the bubbletea model for the browse command. Resizes and
// tab switches mutate the tree in place; the model listens to the
// resulting events to keep its log.
type browseModel struct {
	root   *layout.Root
	rows   []browseRow
	cursor int
	events []string
	status string
	dirty  bool
	save   func(*layout.Root) error
	unsubs []func()
}

func newBrowseModel(root *layout.Root, save func(*layout.Root) error) *browseModel {
	m := &browseModel{root: root, save: save}
	m.collect(root, 0)
	return m
}

// collect flattens the tree into rows and subscribes to every split and
// tab stack.
func (m *browseModel) collect(stem layout.Stem, depth int) {
	for i := 0; i < stem.Len(); i++ {
		slot := layout.ChildID{Stem: stem, Index: i}
		m.rows = append(m.rows, browseRow{depth: depth, slot: slot})

		switch n := slot.Child().(type) {
		case *layout.Split:
			m.unsubs = append(m.unsubs, n.OnResize(func(ev layout.ResizeEvent) {
				m.logEvent("resize %s[%d] → %.3g", n.Axis(), ev.Index, ev.Ratio)
			}))
		case *layout.Tabbed:
			m.unsubs = append(m.unsubs, n.OnTabChange(func(ev layout.TabEvent) {
				m.logEvent("tab %d → %d", ev.Previous, ev.Current)
			}))
		}
		if s, ok := slot.Child().(layout.Stem); ok {
			m.collect(s, depth+1)
		}
	}
}

func (m *browseModel) logEvent(format string, args ...any) {
	m.dirty = true
	m.events = append(m.events, fmt.Sprintf(format, args...))
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
}

// close drops the event subscriptions.
func (m *browseModel) close() {
	for _, u := range m.unsubs {
		u()
	}
	m.unsubs = nil
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.status = ""
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "right", "l", "+":
		m.resize(browseStep)
	case "left", "h", "-":
		m.resize(-browseStep)
	case "tab", "enter":
		m.switchTab()
	case "s":
		m.saveLayout()
	}
	return m, nil
}

func (m *browseModel) selected() (browseRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return browseRow{}, false
	}
	return m.rows[m.cursor], true
}

// resize grows (delta > 0) or shrinks the selected pane within its split.
func (m *browseModel) resize(delta float64) {
	row, ok := m.selected()
	if !ok {
		return
	}
	split, ok := row.slot.Stem.(*layout.Split)
	if !ok || split.Len() < 2 {
		m.status = "not inside a split"
		return
	}
	amount := delta * split.RatioSum()
	i := row.slot.Index
	var err error
	if i < split.Len()-1 {
		err = split.MoveSplit(i, amount)
	} else {
		err = split.MoveSplit(i-1, -amount)
	}
	if err != nil {
		m.status = err.Error()
	}
}

// switchTab cycles a selected tab stack, or makes the selected tab current.
func (m *browseModel) switchTab() {
	row, ok := m.selected()
	if !ok {
		return
	}
	if tabs, ok := row.slot.Child().(*layout.Tabbed); ok {
		if tabs.Len() > 0 {
			tabs.SetCurrentTab((tabs.CurrentTab() + 1) % tabs.Len())
		}
		return
	}
	if tabs, ok := row.slot.Stem.(*layout.Tabbed); ok {
		tabs.SetCurrentTab(row.slot.Index)
		return
	}
	m.status = "not a tab"
}

func (m *browseModel) saveLayout() {
	if m.save == nil {
		m.status = "only @name layouts can be saved"
		return
	}
	if err := m.save(m.root); err != nil {
		m.status = err.Error()
		return
	}
	m.dirty = false
	m.status = "saved"
}

func (m *browseModel) View() string {
	var b strings.Builder

	title := "Layout"
	if m.dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(browseHelpStyle.Render("↑/↓ move  ←/→ resize  tab switch  s save  q quit"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(StyleDim.Render("  (empty layout)"))
		b.WriteString("\n")
	}
	for i, row := range m.rows {
		cursor := "  "
		if i == m.cursor {
			cursor = browseCursorStyle.Render("▸ ")
		}
		line := strings.Repeat("  ", row.depth) + childPrefix(row.slot.Stem, row.slot.Index) + nodeLabel(row.slot.Child())
		b.WriteString(cursor + line + "\n")
	}

	if len(m.events) > 0 {
		b.WriteString("\n")
		for _, ev := range m.events {
			b.WriteString(StyleDim.Render("  " + ev))
			b.WriteString("\n")
		}
	}
	if m.status != "" {
		b.WriteString("\n" + StyleWarning.Render(m.status) + "\n")
	}
	return b.String()
}
