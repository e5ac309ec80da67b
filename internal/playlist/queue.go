package playlist

import (
	"math/rand/v2"

	"github.com/cockroachdb/errors"

	"github.com/llehouerou/airwaves/internal/catalog"
)

var (
	ErrEmptyQueue   = errors.New("queue is empty")
	ErrInvalidIndex = errors.New("index out of range")
)

// PlayingQueue is the ordered playback list with its shuffle and repeat
// state.
//
// Invariant: 0 <= CurrentIndex() < Len() whenever the queue is non-empty,
// and CurrentIndex() == -1 when it is empty.
type PlayingQueue struct {
	items    *Playlist
	original *Playlist // pre-shuffle order, identical to items when shuffle is off

	currentIndex int
	currentKey   uint64

	// next is the index the next advance lands on after the current entry
	// was removed (the entry that slid into its place), -1 otherwise.
	// It may equal Len() when the removed entry was the last one.
	next int

	repeat  RepeatMode
	shuffle bool

	lastKey uint64
	rng     *rand.Rand
}

// NewQueue creates a new empty playing queue.
func NewQueue() *PlayingQueue {
	return NewQueueWithRand(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))) //nolint:gosec // shuffle order is not security sensitive
}

// NewQueueWithRand creates a queue that shuffles with r.
func NewQueueWithRand(r *rand.Rand) *PlayingQueue {
	return &PlayingQueue{
		items:        NewPlaylist(),
		original:     NewPlaylist(),
		currentIndex: -1,
		next:         -1,
		rng:          r,
	}
}

func (q *PlayingQueue) newEntry(t catalog.Track) entry {
	q.lastKey++
	return entry{key: q.lastKey, track: t}
}

func (q *PlayingQueue) newEntries(tracks []catalog.Track) []entry {
	entries := make([]entry, len(tracks))
	for i, t := range tracks {
		entries[i] = q.newEntry(t)
	}
	return entries
}

// SetQueue replaces the queue with tracks and makes start current.
// Tracks are expected to be policy-filtered already. When shuffle is on the
// new list is shuffled immediately with the start track pinned at index 0.
func (q *PlayingQueue) SetQueue(tracks []catalog.Track, start int) (*catalog.Track, error) {
	if len(tracks) == 0 {
		return nil, ErrEmptyQueue
	}
	if start < 0 || start >= len(tracks) {
		return nil, ErrInvalidIndex
	}

	entries := q.newEntries(tracks)
	q.items = &Playlist{entries: entries}
	q.original = q.items.clone()
	q.setCurrent(start)

	if q.shuffle {
		q.shuffleAroundCurrent()
	}
	return q.Current(), nil
}

// Append adds a track to the tail of the queue. The pre-shuffle order is
// only extended while shuffle is off, so the two lists stay identical.
func (q *PlayingQueue) Append(t catalog.Track) {
	e := q.newEntry(t)
	q.items.add(e)
	if !q.shuffle {
		q.original.add(e)
	}
	if q.currentIndex < 0 {
		q.setCurrent(0)
	}
}

// RemoveAt removes the entry at index.
// Removing an entry before the current one shifts the current index down.
// Removing the current entry keeps the index so that the next advance lands
// on the entry that took its place.
func (q *PlayingQueue) RemoveAt(index int) bool {
	removed, ok := q.items.removeAt(index)
	if !ok {
		return false
	}
	q.original.removeKey(removed.key)

	n := q.items.Len()
	if n == 0 {
		q.currentIndex = -1
		q.next = -1
		return true
	}

	if q.next >= 0 && index < q.next {
		q.next--
	}

	switch {
	case index < q.currentIndex:
		q.currentIndex--
	case index == q.currentIndex:
		if removed.key == q.currentKey {
			q.next = index
		}
		q.currentIndex = min(q.currentIndex, n-1)
	}
	return true
}

// Collapse reduces the queue to the given track and resets shuffle and
// repeat. A nil track clears the queue entirely.
func (q *PlayingQueue) Collapse(current *catalog.Track) {
	q.Clear()
	if current == nil {
		return
	}
	q.Append(*current)
}

// Clear removes all tracks and resets the modes.
func (q *PlayingQueue) Clear() {
	q.items.clear()
	q.original.clear()
	q.currentIndex = -1
	q.next = -1
	q.repeat = RepeatOff
	q.shuffle = false
}

// Restore loads a persisted queue as-is. The persisted order is kept even
// when shuffle is on; it becomes the order restored by unshuffling.
func (q *PlayingQueue) Restore(tracks []catalog.Track, index int, repeat RepeatMode, shuffle bool) {
	q.Clear()
	q.repeat = repeat
	q.shuffle = shuffle
	if len(tracks) == 0 {
		return
	}
	q.items = &Playlist{entries: q.newEntries(tracks)}
	q.original = q.items.clone()
	if index < 0 || index >= len(tracks) {
		index = 0
	}
	q.setCurrent(index)
}

// Retain removes every entry for which keep returns false and reports how
// many were removed.
func (q *PlayingQueue) Retain(keep func(catalog.Track) bool) int {
	removed := 0
	for i := q.items.Len() - 1; i >= 0; i-- {
		if !keep(q.items.entries[i].track) {
			q.RemoveAt(i)
			removed++
		}
	}
	return removed
}

// UpdateTrack applies fn to every entry holding the track id and returns the
// number of entries updated.
func (q *PlayingQueue) UpdateTrack(id string, fn func(catalog.Track) catalog.Track) int {
	updated := 0
	for _, p := range []*Playlist{q.items, q.original} {
		for i := range p.entries {
			if p.entries[i].track.ID == id {
				p.entries[i].track = fn(p.entries[i].track)
				if p == q.items {
					updated++
				}
			}
		}
	}
	return updated
}

// JumpTo makes index current and returns its track, or nil if invalid.
func (q *PlayingQueue) JumpTo(index int) *catalog.Track {
	if index < 0 || index >= q.items.Len() {
		return nil
	}
	q.setCurrent(index)
	return q.Current()
}

func (q *PlayingQueue) setCurrent(index int) {
	q.currentIndex = index
	q.currentKey = q.items.entries[index].key
	q.next = -1
}

// Current returns the current track, or nil if the queue is empty or the
// current entry has been removed.
func (q *PlayingQueue) Current() *catalog.Track {
	if q.next >= 0 {
		return nil
	}
	e := q.items.at(q.currentIndex)
	if e == nil {
		return nil
	}
	t := e.track
	return &t
}

// CurrentIndex returns the index of the current track (-1 if empty).
func (q *PlayingQueue) CurrentIndex() int {
	return q.currentIndex
}

// NextIndex returns the index the next advance should land on before any
// wrapping. It may be Len() when the end has been reached.
func (q *PlayingQueue) NextIndex() int {
	if q.next >= 0 {
		return q.next
	}
	return q.currentIndex + 1
}

// PreviousIndex returns the index before the current position.
// It may be -1 at the start of the queue.
func (q *PlayingQueue) PreviousIndex() int {
	if q.next >= 0 {
		return q.next - 1
	}
	return q.currentIndex - 1
}

// Detach marks the current entry as removed, as RemoveAt does for the
// playing entry, so that the next advance lands on next. It is used when
// restoring a queue whose playing entry had been removed.
func (q *PlayingQueue) Detach(next int) {
	n := q.items.Len()
	if n == 0 {
		return
	}
	next = max(0, min(next, n))
	q.currentIndex = min(next, n-1)
	q.currentKey = 0
	q.next = next
}

// Detached reports whether the current entry was removed from the queue.
func (q *PlayingQueue) Detached() bool {
	return q.next >= 0
}

// At returns a copy of the track at index, or nil if out of range.
func (q *PlayingQueue) At(index int) *catalog.Track {
	e := q.items.at(index)
	if e == nil {
		return nil
	}
	t := e.track
	return &t
}

// Tracks returns the tracks in playback order.
func (q *PlayingQueue) Tracks() []catalog.Track {
	return q.items.Tracks()
}

// Original returns the pre-shuffle order.
func (q *PlayingQueue) Original() []catalog.Track {
	return q.original.Tracks()
}

// Len returns the number of tracks in the queue.
func (q *PlayingQueue) Len() int {
	return q.items.Len()
}

// IsEmpty returns true if the queue has no tracks.
func (q *PlayingQueue) IsEmpty() bool {
	return q.items.Len() == 0
}

// RepeatMode returns the current repeat mode.
func (q *PlayingQueue) RepeatMode() RepeatMode {
	return q.repeat
}

// SetRepeatMode sets the repeat mode.
func (q *PlayingQueue) SetRepeatMode(mode RepeatMode) {
	q.repeat = mode
}

// CycleRepeatMode advances off → all → one → off and returns the new mode.
func (q *PlayingQueue) CycleRepeatMode() RepeatMode {
	q.repeat = q.repeat.Next()
	return q.repeat
}
