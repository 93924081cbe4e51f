package listeners

import (
	"github.com/gobuffalo/events"

	"github.com/verixa-platform/verixa-api/domain"
)

func taskCompleted(e events.Event) {
	if e.Kind != domain.EventApiTaskCompleted {
		return
	}

	defer panicRecover(e.Kind)

	id, err := getID(e.Payload)
	if err != nil {
		domain.ErrLogger.Printf("Failed to get task ID in %s, %s", e.Kind, err)
		return
	}

	domain.Logger.Printf("task %s reached validator quorum and completed", id)
}
