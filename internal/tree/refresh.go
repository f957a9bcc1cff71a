package tree

import (
	"github.com/sirupsen/logrus"

	"github.com/cloudnav/accounttree/internal/domain"
)

// refreshTrigger turns provider events into refresh requests. Requests
// are enqueued on a buffered channel rather than delivered by direct
// call, so event delivery never re-enters child loading; pending requests
// coalesce into one.
type refreshTrigger struct {
	log      logrus.FieldLogger
	requests chan struct{}
}

func newRefreshTrigger(log logrus.FieldLogger) *refreshTrigger {
	return &refreshTrigger{
		log:      log,
		requests: make(chan struct{}, 1),
	}
}

func (t *refreshTrigger) Requests() <-chan struct{} {
	return t.requests
}

func (t *refreshTrigger) schedule() {
	select {
	case t.requests <- struct{}{}:
	default:
	}
}

// filtersChanged always schedules a refresh.
func (t *refreshTrigger) filtersChanged() {
	t.log.Debug("subscription filters changed, scheduling refresh")
	t.schedule()
}

// statusChanged schedules a refresh except on the transition to loggedIn.
// The provider contract promises an imminent filters-changed event for
// that transition, and refreshing early would flash a stale "select
// subscriptions" placeholder before the real filter list arrives.
func (t *refreshTrigger) statusChanged(status domain.Status) {
	if status == domain.StatusLoggedIn {
		t.log.WithField("status", status).Debug("suppressing refresh, awaiting filters-changed event")
		return
	}
	t.log.WithField("status", status).Debug("provider status changed, scheduling refresh")
	t.schedule()
}
