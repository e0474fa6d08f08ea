package eventstream

import "encoding/json"

// Event is the application-level view of a frame: the ":event-type" header
// plus an interpretation of the payload.
type Event struct {
	// Type is the frame's ":event-type" header, or "" when absent.
	Type string

	// Data is the parsed JSON payload when the payload is valid JSON, the
	// payload as a UTF-8 string when it is not, and nil when the frame has
	// no payload.
	Data any
}

// ToEvent translates a decoded frame into an Event. It never fails: every
// frame maps to some event, falling back to raw text when the payload is
// not JSON.
func ToEvent(f *Frame) Event {
	ev := Event{}
	if v, ok := f.Headers[HeaderEventType]; ok && v.Type == TypeString {
		ev.Type = v.Str
	}
	if len(f.Payload) == 0 {
		return ev
	}

	var data any
	if err := json.Unmarshal(f.Payload, &data); err != nil {
		ev.Data = string(f.Payload)
		return ev
	}
	ev.Data = data
	return ev
}
