package picker

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cloudnav/accounttree/internal/domain"
	"github.com/cloudnav/accounttree/internal/ports"
)

var ErrUnexpectedPickerModel = errors.New("unexpected final bubbletea model type")

const (
	defaultWidth  = 60
	defaultHeight = 14
)

// Picker is the interactive single-choice subscription picker. Only
// subscription nodes are offered; dismissing the list reports
// domain.ErrUserCancelled.
type Picker struct {
	input  io.Reader
	output io.Writer
}

var _ ports.SubscriptionPicker = (*Picker)(nil)

func New() *Picker {
	return &Picker{}
}

// WithIO redirects the picker's terminal streams, primarily for tests.
func (p *Picker) WithIO(input io.Reader, output io.Writer) *Picker {
	p.input = input
	p.output = output
	return p
}

func (p *Picker) Pick(ctx context.Context, nodes []ports.Node) (ports.Node, error) {
	items := subscriptionItems(nodes)
	if len(items) == 0 {
		return nil, domain.ErrNoSubscription
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.input != nil {
		opts = append(opts, tea.WithInput(p.input))
	}
	if p.output != nil {
		opts = append(opts, tea.WithOutput(p.output))
	}

	program := tea.NewProgram(newModel(items), opts...)
	finalModel, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("run subscription picker: %w", err)
	}

	m, ok := finalModel.(model)
	if !ok {
		return nil, ErrUnexpectedPickerModel
	}
	if m.cancelled || m.choice == nil {
		return nil, domain.ErrUserCancelled
	}

	return m.choice, nil
}

type model struct {
	list      list.Model
	choice    ports.Node
	cancelled bool
}

func newModel(items []list.Item) model {
	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, defaultWidth, defaultHeight)
	l.Title = "Select a subscription"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().Bold(true)

	return model{list: l}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			// No selection (an emptied filter list): keep the picker open
			// rather than reading the keypress as a dismissal.
			selected, ok := m.list.SelectedItem().(item)
			if !ok {
				return m, nil
			}
			m.choice = selected.node
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	return m.list.View()
}
