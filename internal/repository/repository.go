package repository

import (
	"time"

	"github.com/telalestate/propertydesk/internal/events"
)

// publish emits a change event when a publisher is wired. Repositories used
// directly in tests may run without one.
func publish(pub events.Publisher, entity, action, id string) {
	if pub == nil {
		return
	}
	pub.Publish(events.Event{Entity: entity, Action: action, ID: id, At: time.Now()})
}

// validDate reports whether s is a calendar date in the store's wire format.
func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
