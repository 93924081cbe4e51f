package listeners

import (
	"github.com/gobuffalo/events"

	"github.com/verixa-platform/verixa-api/domain"
)

func claimAutoApproved(e events.Event) {
	if e.Kind != domain.EventApiClaimAutoApproved {
		return
	}

	defer panicRecover(e.Kind)

	id, err := getID(e.Payload)
	if err != nil {
		domain.ErrLogger.Printf("Failed to get claim ID in %s, %s", e.Kind, err)
		return
	}

	domain.Logger.Printf("claim %s auto approved by triage", id)
}
