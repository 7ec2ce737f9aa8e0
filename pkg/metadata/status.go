package metadata

import "fmt"

// Status is the authoritative lifecycle state of an asset. It is only ever
// written through the asset repository's Transition, never assigned directly.
type Status string

const (
	StatusAvailable     Status = "Available"
	StatusAssigned      Status = "Assigned"
	StatusRequestRepair Status = "RequestRepair"
	StatusUnderRepair   Status = "UnderRepair"
	StatusRetired       Status = "Retired"
)

// Event names a lifecycle transition trigger.
type Event string

const (
	EventAssign         Event = "assign"
	EventReturn         Event = "return"
	EventRequestRepair  Event = "request_repair"
	EventApproveRequest Event = "approve_request"
	EventDeclineRequest Event = "decline_request"
	EventLogRepair      Event = "log_repair"
	EventCompleteRepair Event = "complete_repair"
	EventRetire         Event = "retire"
)

// transitions maps each event to its legal source states and its target.
// EventDeclineRequest has no static target: the asset is restored to the
// status persisted on the request log when the request was created.
var transitions = map[Event]struct {
	sources []Status
	target  Status
}{
	EventAssign:         {sources: []Status{StatusAvailable}, target: StatusAssigned},
	EventReturn:         {sources: []Status{StatusAssigned}, target: StatusAvailable},
	EventRequestRepair:  {sources: []Status{StatusAvailable, StatusAssigned}, target: StatusRequestRepair},
	EventApproveRequest: {sources: []Status{StatusRequestRepair}, target: StatusUnderRepair},
	EventDeclineRequest: {sources: []Status{StatusRequestRepair}},
	EventLogRepair:      {sources: []Status{StatusAvailable, StatusAssigned, StatusRequestRepair, StatusUnderRepair}, target: StatusUnderRepair},
	EventCompleteRepair: {sources: []Status{StatusUnderRepair}, target: StatusAvailable},
	EventRetire:         {sources: []Status{StatusAvailable, StatusAssigned, StatusRequestRepair, StatusUnderRepair}, target: StatusRetired},
}

func NewStatus(value string) (Status, error) {
	status := Status(value)
	if !status.isValid() {
		return "", fmt.Errorf("invalid asset status: %s", value)
	}
	return status, nil
}

func (s Status) isValid() bool {
	switch s {
	case StatusAvailable, StatusAssigned, StatusRequestRepair, StatusUnderRepair, StatusRetired:
		return true
	default:
		return false
	}
}

// Allows reports whether the event may fire from status s. A retired asset
// allows nothing, including retire itself.
func (s Status) Allows(event Event) bool {
	if s == StatusRetired {
		return false
	}
	t, ok := transitions[event]
	if !ok {
		return false
	}
	for _, src := range t.sources {
		if src == s {
			return true
		}
	}
	return false
}

// Sources returns the legal source states for an event. The returned slice
// is shared; callers must not mutate it.
func Sources(event Event) []Status {
	return transitions[event].sources
}

// Target returns the destination state of an event. ok is false for unknown
// events and for EventDeclineRequest, whose destination is dynamic.
func Target(event Event) (Status, bool) {
	t, ok := transitions[event]
	if !ok || t.target == "" {
		return "", false
	}
	return t.target, true
}
