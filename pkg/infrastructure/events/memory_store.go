package events

import "sync"

// InMemoryJournal keeps movements in memory, grouped by request id in
// append order.
type InMemoryJournal struct {
	mutex   sync.RWMutex
	streams map[string][]Movement
	ordered []Movement
}

// NewInMemoryJournal creates an empty journal.
func NewInMemoryJournal() *InMemoryJournal {
	return &InMemoryJournal{streams: make(map[string][]Movement)}
}

// Verify interface compliance
var _ Journal = (*InMemoryJournal)(nil)

// Append adds a movement to its request stream.
func (j *InMemoryJournal) Append(m Movement) error {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	j.streams[m.RequestID] = append(j.streams[m.RequestID], m)
	j.ordered = append(j.ordered, m)
	return nil
}

// Read returns the movements of one request in append order.
func (j *InMemoryJournal) Read(requestID string) ([]Movement, error) {
	j.mutex.RLock()
	defer j.mutex.RUnlock()

	stream := j.streams[requestID]
	out := make([]Movement, len(stream))
	copy(out, stream)
	return out, nil
}

// ReadAll returns every recorded movement in append order.
func (j *InMemoryJournal) ReadAll() ([]Movement, error) {
	j.mutex.RLock()
	defer j.mutex.RUnlock()

	out := make([]Movement, len(j.ordered))
	copy(out, j.ordered)
	return out, nil
}
