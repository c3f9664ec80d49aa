package presentation

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// autosaveDebounce is the trailing debounce window for durable writes.
// Rapid consecutive edits supersede each other; only the last state within
// the window is persisted.
const autosaveDebounce = 250 * time.Millisecond

// autosaver observes state changes and writes the latest snapshot to the
// slot on a trailing timer. It is the store's only background task.
type autosaver struct {
	slot Slot

	mu      sync.Mutex
	timer   *time.Timer
	pending []byte
}

func newAutosaver(slot Slot) *autosaver {
	return &autosaver{slot: slot}
}

// schedule records the snapshot as the pending write and (re)starts the
// debounce timer, cancelling any earlier pending write.
func (a *autosaver) schedule(st State) {
	data, err := json.Marshal(st)
	if err != nil {
		log.Printf("WARNING: failed to encode presentation state: %v", err)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = data
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(autosaveDebounce, a.write)
}

// cancel drops any pending write without persisting it.
func (a *autosaver) cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// flush persists the pending write immediately, if there is one.
func (a *autosaver) flush() {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()
	a.write()
}

func (a *autosaver) write() {
	a.mu.Lock()
	data := a.pending
	a.pending = nil
	a.mu.Unlock()

	if data == nil {
		return
	}
	if err := a.slot.Save(data); err != nil {
		log.Printf("WARNING: autosave failed: %v", err)
	}
}
