package tree

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cloudnav/accounttree/internal/domain"
	"github.com/cloudnav/accounttree/internal/ports"
)

type RenderOptions struct {
	Title       string
	Status      domain.Status
	RefreshedAt time.Time
}

// actionable is the slice of the engine's placeholder surface the
// renderer cares about.
type actionable interface {
	Command() string
}

func renderView(nodes []ports.Node, opts RenderOptions, s styles) string {
	title := opts.Title
	if title == "" {
		title = "Account"
	}

	lines := []string{s.title.Render(title)}
	if opts.Status != "" {
		lines = append(lines, s.header.Render(fmt.Sprintf("status: %s", opts.Status)))
	}
	if !opts.RefreshedAt.IsZero() {
		lines = append(lines, s.header.Render(fmt.Sprintf("refreshed: %s", opts.RefreshedAt.Format(time.Kitchen))))
	}

	if len(nodes) == 0 {
		lines = append(lines, s.empty.Render("No children."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for i, node := range nodes {
		connector := "├─"
		if i == len(nodes)-1 {
			connector = "└─"
		}
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.branch.Render(connector),
			" ",
			renderNode(node, s),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderNode(node ports.Node, s styles) string {
	if node.Kind() == ports.NodeKindSubscription {
		return lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.sub.Render(node.Label()),
			" ",
			s.subID.Render(fmt.Sprintf("(%s)", domain.BareSubscriptionID(node.ID()))),
		)
	}

	label := s.placeholder.Render(node.Label())
	if a, ok := node.(actionable); ok && a.Command() != "" {
		return lipgloss.JoinHorizontal(
			lipgloss.Top,
			label,
			" ",
			s.action.Render(fmt.Sprintf("[%s]", a.Command())),
		)
	}

	return label
}
