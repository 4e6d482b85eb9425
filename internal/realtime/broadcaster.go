package realtime

import "sync"

// Broadcaster pushes a named event with a JSON-serializable payload to all
// currently connected clients. Delivery is fire-and-forget: disconnected
// clients miss the event permanently, and no acknowledgment is collected.
// The capability is always injected; nothing holds a process-global handle.
type Broadcaster interface {
	Broadcast(event string, payload any)
}

// NopBroadcaster discards every event.
type NopBroadcaster struct{}

func (NopBroadcaster) Broadcast(string, any) {}

// BroadcastRecord is one captured Broadcast call.
type BroadcastRecord struct {
	Event   string
	Payload any
}

// RecordingBroadcaster captures broadcasts for assertions in tests.
type RecordingBroadcaster struct {
	mu      sync.Mutex
	records []BroadcastRecord
}

func (r *RecordingBroadcaster) Broadcast(event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, BroadcastRecord{Event: event, Payload: payload})
}

// Records returns a copy of everything broadcast so far.
func (r *RecordingBroadcaster) Records() []BroadcastRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]BroadcastRecord, len(r.records))
	copy(out, r.records)
	return out
}
