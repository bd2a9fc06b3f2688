package replay

// Severity classifies notifications flowing to listeners. Ordinary event
// application and failure conditions share the one channel so a single
// consumer can both log activity and detect faults.
type Severity int

const (
	SeverityEvent Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityEvent:
		return "event"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

// Notification is delivered synchronously to registered listeners whenever a
// discrete event is applied, an unknown event kind is skipped, or an entity
// fails. Status carries the post-projection status of the entity, when the
// event changed it.
type Notification struct {
	EntityID string   `json:"entityId"`
	Kind     string   `json:"eventKind"`
	Payload  string   `json:"payload,omitempty"`
	SimTime  int64    `json:"simTime"`
	Severity Severity `json:"severity"`
	Status   string   `json:"status,omitempty"`
}

// Listener receives notifications. Listeners run synchronously inside Tick;
// they must not call back into the engine.
type Listener func(Notification)
