package playlist

// Shuffle returns whether shuffle is enabled.
func (q *PlayingQueue) Shuffle() bool {
	return q.shuffle
}

// SetShuffle switches shuffle on or off. It is a no-op when the state does
// not change.
func (q *PlayingQueue) SetShuffle(enabled bool) {
	if enabled == q.shuffle {
		return
	}
	q.ToggleShuffle()
}

// ToggleShuffle flips shuffle and returns the new state.
//
// Turning shuffle on keeps the current order as the restore point and
// shuffles everything else behind the current track, which moves to index 0.
// Turning it off restores the saved order and finds the current track in
// it again, falling back to index 0 when it is gone.
func (q *PlayingQueue) ToggleShuffle() bool {
	if q.shuffle {
		q.unshuffle()
	} else {
		q.original = q.items.clone()
		q.shuffleAroundCurrent()
	}
	q.shuffle = !q.shuffle
	return q.shuffle
}

func (q *PlayingQueue) shuffleAroundCurrent() {
	entries := q.items.entries
	if len(entries) == 0 {
		return
	}

	if q.next >= 0 {
		// Current entry is no longer queued: shuffle everything and let the
		// next advance start from the top.
		q.fisherYates(entries)
		q.currentIndex = 0
		q.next = 0
		return
	}

	cur := entries[q.currentIndex]
	rest := make([]entry, 0, len(entries)-1)
	rest = append(rest, entries[:q.currentIndex]...)
	rest = append(rest, entries[q.currentIndex+1:]...)
	q.fisherYates(rest)

	q.items.entries = append([]entry{cur}, rest...)
	q.currentIndex = 0
}

func (q *PlayingQueue) unshuffle() {
	q.items = q.original.clone()
	if q.items.Len() == 0 {
		q.currentIndex = -1
		q.next = -1
		return
	}

	if i := q.items.indexOfKey(q.currentKey); i >= 0 && q.next < 0 {
		q.currentIndex = i
		return
	}
	q.currentIndex = 0
	if q.next >= 0 {
		q.next = 0
	}
}

func (q *PlayingQueue) fisherYates(entries []entry) {
	for i := len(entries) - 1; i > 0; i-- {
		j := q.rng.IntN(i + 1)
		entries[i], entries[j] = entries[j], entries[i]
	}
}
