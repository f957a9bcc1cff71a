package tree

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cloudnav/accounttree/internal/ports"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	nodes  []ports.Node
	opts   RenderOptions
	styles styles
	output string
}

func newModel(nodes []ports.Node, opts RenderOptions) model {
	return model{
		nodes:  nodes,
		opts:   opts,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderView(m.nodes, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render produces the one-shot styled listing of the account node's
// children.
func Render(nodes []ports.Node, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(nodes, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return m.output, nil
}
