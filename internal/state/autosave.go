package state

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Autosaver writes snapshots to a Store, either immediately or coalesced
// behind a short delay. Errors are logged and never returned.
type Autosaver struct {
	store Store
	delay time.Duration
	log   zerolog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending *pendingSave
	seq     uint64

	// Writes are serialized and never go back to an older snapshot.
	writeMu sync.Mutex
	written uint64
}

type pendingSave struct {
	seq      uint64
	viewerID string
	snap     Snapshot
}

// NewAutosaver creates an autosaver that coalesces scheduled writes over
// delay.
func NewAutosaver(store Store, delay time.Duration, log zerolog.Logger) *Autosaver {
	return &Autosaver{
		store: store,
		delay: delay,
		log:   log.With().Str("component", "autosave").Logger(),
	}
}

// SaveNow writes snap immediately, superseding any scheduled write.
func (a *Autosaver) SaveNow(viewerID string, snap Snapshot) {
	a.mu.Lock()
	a.cancelLocked()
	a.seq++
	p := pendingSave{seq: a.seq, viewerID: viewerID, snap: snap}
	a.mu.Unlock()

	a.write(p)
}

// Schedule records snap as the latest state and writes it once the delay
// has passed since the first unsaved change. Later calls within the window
// only replace the pending snapshot.
func (a *Autosaver) Schedule(viewerID string, snap Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.seq++
	a.pending = &pendingSave{seq: a.seq, viewerID: viewerID, snap: snap}
	if a.timer != nil {
		return
	}
	a.timer = time.AfterFunc(a.delay, func() {
		if pending := a.takePending(); pending != nil {
			a.write(*pending)
		}
	})
}

func (a *Autosaver) takePending() *pendingSave {
	a.mu.Lock()
	defer a.mu.Unlock()
	pending := a.pending
	a.pending = nil
	a.timer = nil
	return pending
}

// Flush writes the pending snapshot, if any, right away.
func (a *Autosaver) Flush() {
	a.mu.Lock()
	pending := a.pending
	a.cancelLocked()
	a.mu.Unlock()

	if pending != nil {
		a.write(*pending)
	}
}

// Stop drops the pending snapshot without writing it.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelLocked()
}

func (a *Autosaver) cancelLocked() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.pending = nil
}

// write saves p unless a newer snapshot has already been written.
func (a *Autosaver) write(p pendingSave) {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	if p.seq <= a.written {
		a.log.Debug().Str("viewer", p.viewerID).Msg("skipping superseded playback state")
		return
	}
	a.written = p.seq
	if err := a.store.Save(context.Background(), p.viewerID, p.snap); err != nil {
		a.log.Warn().Err(err).Str("viewer", p.viewerID).Msg("failed to save playback state")
	}
}
