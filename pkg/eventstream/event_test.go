package eventstream

import (
	"reflect"
	"testing"
)

func TestToEvent(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]Value
		payload  []byte
		wantType string
		wantData any
	}{
		{
			name:     "end_no_payload",
			headers:  map[string]Value{HeaderEventType: StringValue("end")},
			payload:  nil,
			wantType: "end",
			wantData: nil,
		},
		{
			name:     "json_object",
			headers:  map[string]Value{HeaderEventType: StringValue("chunk")},
			payload:  []byte(`{"a":1}`),
			wantType: "chunk",
			wantData: map[string]any{"a": float64(1)},
		},
		{
			name:     "json_array",
			headers:  map[string]Value{HeaderEventType: StringValue("chunk")},
			payload:  []byte(`[1,2]`),
			wantType: "chunk",
			wantData: []any{float64(1), float64(2)},
		},
		{
			name:     "non_json_text",
			headers:  map[string]Value{HeaderEventType: StringValue("chunk")},
			payload:  []byte("hi"),
			wantType: "chunk",
			wantData: "hi",
		},
		{
			name:     "no_event_type_header",
			headers:  map[string]Value{},
			payload:  []byte(`"quoted"`),
			wantType: "",
			wantData: "quoted",
		},
		{
			name:     "non_string_event_type_ignored",
			headers:  map[string]Value{HeaderEventType: Int32Value(9)},
			payload:  nil,
			wantType: "",
			wantData: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ev := ToEvent(&Frame{Headers: tc.headers, Payload: tc.payload})
			if ev.Type != tc.wantType {
				t.Errorf("Type = %q, want %q", ev.Type, tc.wantType)
			}
			if !reflect.DeepEqual(ev.Data, tc.wantData) {
				t.Errorf("Data = %#v, want %#v", ev.Data, tc.wantData)
			}
		})
	}
}

func TestToEventFromWire(t *testing.T) {
	wire := mustEncodeFrame(t, map[string]Value{
		HeaderEventType: StringValue("message"),
	}, []byte(`{"text":"hello","n":2}`))

	d := NewStreamDecoder()
	frames := drain(t, d, wire)
	if len(frames) != 1 {
		t.Fatalf("decoded %d frames, want 1", len(frames))
	}

	ev := ToEvent(frames[0])
	if ev.Type != "message" {
		t.Errorf("Type = %q, want message", ev.Type)
	}
	obj, ok := ev.Data.(map[string]any)
	if !ok {
		t.Fatalf("Data = %T, want map", ev.Data)
	}
	if obj["text"] != "hello" || obj["n"] != float64(2) {
		t.Errorf("Data = %#v", obj)
	}
}
