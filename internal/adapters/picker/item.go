package picker

import (
	"github.com/charmbracelet/bubbles/list"

	"github.com/cloudnav/accounttree/internal/domain"
	"github.com/cloudnav/accounttree/internal/ports"
)

// item wraps a subscription node for the picker list.
type item struct {
	node ports.Node
}

var _ list.DefaultItem = item{}

func (i item) Title() string { return i.node.Label() }

func (i item) Description() string {
	return domain.BareSubscriptionID(i.node.ID())
}

func (i item) FilterValue() string {
	return i.node.Label() + " " + i.node.ID()
}

func subscriptionItems(nodes []ports.Node) []list.Item {
	items := make([]list.Item, 0, len(nodes))
	for _, node := range nodes {
		if node.Kind() != ports.NodeKindSubscription {
			continue
		}
		items = append(items, item{node: node})
	}
	return items
}
