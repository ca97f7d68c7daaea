package queue

// Event drives a status change.
type Event string

const (
	EventStart  Event = "start"
	EventFinish Event = "finish"
	EventCancel Event = "cancel"
)

type edge struct {
	from  Status
	event Event
}

var transitions = map[edge]Status{
	{StatusWaiting, EventStart}:     StatusInProgress,
	{StatusInProgress, EventFinish}: StatusCompleted,
	{StatusWaiting, EventCancel}:    StatusCancelled,
}

// Next returns the status reached by applying ev to current.
func Next(current Status, ev Event) (Status, error) {
	to, ok := transitions[edge{current, ev}]
	if !ok {
		return current, ErrInvalidTransition
	}
	return to, nil
}

// EventFor returns the event that moves an entry from one status to another.
func EventFor(from, to Status) (Event, error) {
	for e, target := range transitions {
		if e.from == from && target == to {
			return e.event, nil
		}
	}
	return "", ErrInvalidTransition
}
