package services_test

import (
	"sync"
)

// recordingBroadcaster captures data update notifications
type recordingBroadcaster struct {
	mu      sync.Mutex
	updates []string
}

func (b *recordingBroadcaster) BroadcastDataUpdate(electionID, path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.updates = append(b.updates, electionID+":"+path)
}

func (b *recordingBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.updates)
}
