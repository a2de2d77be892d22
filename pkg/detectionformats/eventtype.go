package detectionformats

import "encoding/json"

// EventType classifies the event a message describes. Both fields are
// optional; an EventType with neither set is empty and treated as absent.
type EventType struct {
	Type      string
	Certainty string
}

type eventTypeWire struct {
	Type      string `json:"Type,omitempty"`
	Certainty string `json:"Certainty,omitempty"`
}

func NewEventType(eventType, certainty string) EventType {
	return EventType{Type: eventType, Certainty: certainty}
}

// IsEmpty reports whether neither field is set.
func (e EventType) IsEmpty() bool {
	return e.Type == "" && e.Certainty == ""
}

func (e EventType) MarshalJSON() ([]byte, error) {
	return json.Marshal(eventTypeWire(e))
}

func (e *EventType) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	e.decode(o)
	return nil
}

func (e *EventType) decode(o object) {
	*e = EventType{
		Type:      o.str("Type"),
		Certainty: o.str("Certainty"),
	}
}

func (e EventType) Validate() Findings {
	var fs Findings
	if e.Type != "" && !oneOf(e.Type, EventTypes) {
		fs.add("Type", "Invalid Type in eventtype class.")
	}
	if e.Certainty != "" && !oneOf(e.Certainty, Certainties) {
		fs.add("Certainty", "Invalid Certainty in eventtype class.")
	}
	return fs
}

func (e EventType) Errors() []string { return e.Validate().Strings() }

func (e EventType) IsValid() bool { return len(e.Errors()) == 0 }
