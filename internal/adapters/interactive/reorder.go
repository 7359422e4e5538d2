package interactive

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/trebuchet-org/ztx/internal/domain/config"
	"github.com/trebuchet-org/ztx/internal/domain/models"
	"github.com/trebuchet-org/ztx/internal/usecase"
)

// callItem is one row of the reorder list
type callItem struct {
	id    string
	label string
}

// reorderModel is the bubbletea model for reordering the bundle
type reorderModel struct {
	items     []callItem
	cursor    int
	grabbed   bool
	title     string
	done      bool
	cancelled bool
}

func initialReorderModel(calls []models.PendingCall, title string) reorderModel {
	items := make([]callItem, len(calls))
	for i, call := range calls {
		items[i] = callItem{
			id:    call.ID,
			label: fmt.Sprintf("%s → %s", call.Function.Canonical(), call.To.Hex()),
		}
	}
	return reorderModel{items: items, title: title}
}

// Init is the initial command for bubbletea
func (m reorderModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m reorderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case " ":
			m.grabbed = !m.grabbed
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// move steps the cursor, carrying the grabbed item along
func (m *reorderModel) move(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.items) {
		return
	}
	if m.grabbed {
		m.items[m.cursor], m.items[next] = m.items[next], m.items[m.cursor]
	}
	m.cursor = next
}

func (m reorderModel) ids() []string {
	ids := make([]string, len(m.items))
	for i, item := range m.items {
		ids[i] = item.id
	}
	return ids
}

// View renders the UI
func (m reorderModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(color.New(color.FgCyan, color.Bold).Sprintf("%s\n\n", m.title))

	for i, item := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = color.New(color.FgCyan).Sprint("▸")
			if m.grabbed {
				cursor = color.New(color.FgGreen).Sprint("≡")
			}
		}

		id := color.New(color.FgWhite, color.Bold).Sprint(item.id)
		label := color.New(color.FgWhite, color.Faint).Sprint(item.label)
		b.WriteString(fmt.Sprintf("%s %2d. %s %s\n", cursor, i+1, id, label))
	}

	b.WriteString("\n")
	b.WriteString(color.New(color.FgYellow).Sprint("↑/↓: move  Space: grab/drop  Enter: confirm  q: cancel\n"))

	return b.String()
}

// ReordererAdapter reorders the bundle with a terminal UI
type ReordererAdapter struct {
	config *config.RuntimeConfig
}

// NewReordererAdapter creates a new reorderer
func NewReordererAdapter(cfg *config.RuntimeConfig) *ReordererAdapter {
	return &ReordererAdapter{config: cfg}
}

// Reorder shows the bundle and returns the ids in the order the user chose
func (r *ReordererAdapter) Reorder(ctx context.Context, calls []models.PendingCall) ([]string, error) {
	if r.config.NonInteractive {
		return nil, fmt.Errorf("interactive reorder not available in non-interactive mode")
	}
	if len(calls) == 0 {
		return nil, fmt.Errorf("no calls to reorder")
	}

	model := initialReorderModel(calls, "Reorder bundle")
	p := tea.NewProgram(model, tea.WithContext(ctx))

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("reorder failed: %w", err)
	}

	m := finalModel.(reorderModel)
	if m.cancelled || !m.done {
		return nil, fmt.Errorf("reorder cancelled")
	}
	return m.ids(), nil
}

// Ensure the adapter implements the interface
var _ usecase.BundleReorderer = (*ReordererAdapter)(nil)
