package event

// Recorder is an in-memory outbox embedded by aggregates. The zero value is ready to use.
type Recorder struct {
	pending []Event
}

// Record appends e to the pending events.
func (r *Recorder) Record(e Event) {
	r.pending = append(r.pending, e)
}

// PendingEvents returns the recorded events in emission order. The returned
// slice is a copy.
func (r *Recorder) PendingEvents() []Event {
	out := make([]Event, len(r.pending))
	copy(out, r.pending)
	return out
}

// ClearEvents forgets every pending event.
func (r *Recorder) ClearEvents() {
	r.pending = nil
}
