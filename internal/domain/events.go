package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventExperimentsUpdated EventType = "ExperimentsUpdated"
	EventRefreshRequested   EventType = "RefreshRequested"
	EventServerError        EventType = "ServerError"
	EventConfigChanged      EventType = "ConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ExperimentsUpdatedEvent is emitted when a fresh experiment catalog arrives
type ExperimentsUpdatedEvent struct {
	Experiments []ExperimentInfo
}

func (e ExperimentsUpdatedEvent) Type() EventType { return EventExperimentsUpdated }

// RefreshRequestedEvent asks the watcher to poll the server immediately
type RefreshRequestedEvent struct{}

func (e RefreshRequestedEvent) Type() EventType { return EventRefreshRequested }

// ServerErrorEvent is emitted when a server call fails
type ServerErrorEvent struct {
	Message string
	Err     error
}

func (e ServerErrorEvent) Type() EventType { return EventServerError }

// ConfigChangedEvent is emitted when configuration should be persisted
type ConfigChangedEvent struct{}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }
