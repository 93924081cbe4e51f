package listeners

import (
	"fmt"

	"github.com/gobuffalo/events"
	"github.com/gofrs/uuid"

	"github.com/verixa-platform/verixa-api/domain"
)

type apiListener struct {
	name     string
	listener func(events.Event)
}

// Register new listener functions here.  Remember, though, that these groupings just
// describe what we want.  They don't make it happen this way. The listeners
// themselves still need to verify the event kind
var apiListeners = map[string][]apiListener{
	domain.EventApiClaimAutoApproved: {
		{
			name:     "claim-auto-approved",
			listener: claimAutoApproved,
		},
	},
	domain.EventApiTaskCompleted: {
		{
			name:     "task-completed",
			listener: taskCompleted,
		},
	},
}

// RegisterListeners registers all the listeners to be used by the app
func RegisterListeners() {
	for _, listeners := range apiListeners {
		for _, l := range listeners {
			_, err := events.NamedListen(l.name, l.listener)
			if err != nil {
				domain.ErrLogger.Printf("Failed registering listener: %s, err: %s", l.name, err.Error())
			}
		}
	}
}

func getID(p events.Payload) (uuid.UUID, error) {
	i, ok := p[domain.EventPayloadID]
	if !ok {
		return uuid.UUID{}, fmt.Errorf("id not in event payload")
	}

	switch id := i.(type) {
	case string:
		return uuid.FromStringOrNil(id), nil
	case uuid.UUID:
		return id, nil
	default:
		return uuid.UUID{}, fmt.Errorf("id not a valid type: %T", id)
	}
}

func panicRecover(name string) {
	if err := recover(); err != nil {
		domain.ErrLogger.Printf("panic in event listener %s: %v", name, err)
	}
}
