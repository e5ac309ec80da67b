package player

import (
	"sync"
	"time"
)

// DefaultMockDuration is the duration reported by Mock after Load.
const DefaultMockDuration = 3 * time.Minute

// Mock is a test double for Device. It behaves like a well-mannered device:
// every accepted call produces the matching event on Events.
type Mock struct {
	mu sync.Mutex

	source   string
	playing  bool
	position time.Duration
	duration time.Duration
	volume   float64

	loadErr error
	playErr error

	// Deferred loading, as Speaker does: seeks issued while loading are
	// held until FinishLoad reports them with EventMetadataLoaded.
	deferLoad   bool
	loading     bool
	pendingSeek time.Duration

	loadCalls   []string
	playCalls   int
	pauseCalls  int
	seekCalls   []time.Duration
	releaseCall int

	events chan Event
}

// NewMock creates a new mock device for testing.
func NewMock() *Mock {
	return &Mock{
		duration: DefaultMockDuration,
		volume:   1,
		events:   make(chan Event, eventBuffer),
	}
}

func (m *Mock) Load(source string) error {
	m.mu.Lock()
	m.loadCalls = append(m.loadCalls, source)
	if m.loadErr != nil {
		m.mu.Unlock()
		return m.loadErr
	}
	m.source = source
	m.playing = false
	m.position = 0
	d := m.duration
	if m.deferLoad {
		m.loading = true
		m.pendingSeek = 0
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	m.Emit(Event{Kind: EventMetadataLoaded, Source: source, Duration: d})
	return nil
}

// SetDeferredLoad makes Load return before the source is ready. The load
// completes on FinishLoad.
func (m *Mock) SetDeferredLoad(deferred bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deferLoad = deferred
}

// FinishLoad completes a deferred load, applying any seek issued meanwhile.
func (m *Mock) FinishLoad() {
	m.mu.Lock()
	if !m.loading {
		m.mu.Unlock()
		return
	}
	m.loading = false
	m.position = m.pendingSeek
	ev := Event{Kind: EventMetadataLoaded, Source: m.source, Position: m.position, Duration: m.duration}
	m.mu.Unlock()

	m.Emit(ev)
}

func (m *Mock) Play() error {
	m.mu.Lock()
	m.playCalls++
	if m.playErr != nil {
		m.mu.Unlock()
		return m.playErr
	}
	if m.source == "" {
		m.mu.Unlock()
		return ErrNoSource
	}
	m.playing = true
	ev := Event{Kind: EventPlay, Source: m.source, Position: m.position, Duration: m.duration}
	m.mu.Unlock()

	m.Emit(ev)
	return nil
}

func (m *Mock) Pause() {
	m.mu.Lock()
	m.pauseCalls++
	if !m.playing {
		m.mu.Unlock()
		return
	}
	m.playing = false
	ev := Event{Kind: EventPause, Source: m.source, Position: m.position, Duration: m.duration}
	m.mu.Unlock()

	m.Emit(ev)
}

func (m *Mock) Seek(pos time.Duration) {
	m.mu.Lock()
	m.seekCalls = append(m.seekCalls, pos)
	if m.source == "" {
		m.mu.Unlock()
		return
	}
	if m.loading {
		m.pendingSeek = pos
		m.mu.Unlock()
		return
	}
	m.position = pos
	ev := Event{Kind: EventTimeUpdate, Source: m.source, Position: pos, Duration: m.duration}
	m.mu.Unlock()

	m.Emit(ev)
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = ClampVolume(level)
}

func (m *Mock) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseCall++
	m.source = ""
	m.loading = false
	m.playing = false
	m.position = 0
}

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Close() error { return nil }

// Test helpers

// Emit queues an event as if the device produced it.
func (m *Mock) Emit(ev Event) {
	select {
	case m.events <- ev:
	default:
		panic("player.Mock: event buffer full, drain Events in the test")
	}
}

// SimulateEnded reports the loaded source as finished.
func (m *Mock) SimulateEnded() {
	m.mu.Lock()
	m.playing = false
	m.position = m.duration
	ev := Event{Kind: EventEnded, Source: m.source, Position: m.duration, Duration: m.duration}
	m.mu.Unlock()
	m.Emit(ev)
}

// SimulateTime reports a playback position.
func (m *Mock) SimulateTime(pos time.Duration) {
	m.mu.Lock()
	m.position = pos
	ev := Event{Kind: EventTimeUpdate, Source: m.source, Position: pos, Duration: m.duration}
	m.mu.Unlock()
	m.Emit(ev)
}

// SimulateError reports a playback failure on the loaded source.
func (m *Mock) SimulateError(err error) {
	m.mu.Lock()
	m.playing = false
	ev := Event{Kind: EventError, Source: m.source, Err: err}
	m.mu.Unlock()
	m.Emit(ev)
}

func (m *Mock) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

func (m *Mock) SetPlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

func (m *Mock) Source() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source
}

func (m *Mock) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *Mock) LoadCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loadCalls...)
}

func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

func (m *Mock) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCalls
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

func (m *Mock) ReleaseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.releaseCall
}

// Drain returns all queued events without blocking.
func (m *Mock) Drain() []Event {
	var out []Event
	for {
		select {
		case ev := <-m.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

var _ Device = (*Mock)(nil)
