package playlist

import "github.com/llehouerou/airwaves/internal/catalog"

// entry is a queue slot. The key identifies the slot independently of the
// track, so the same track can be queued twice and removals stay exact.
type entry struct {
	key   uint64
	track catalog.Track
}

// Playlist holds an ordered collection of entries.
type Playlist struct {
	entries []entry
}

// NewPlaylist creates a new empty playlist.
func NewPlaylist() *Playlist {
	return &Playlist{
		entries: make([]entry, 0),
	}
}

func (p *Playlist) add(entries ...entry) {
	p.entries = append(p.entries, entries...)
}

// removeAt removes the entry at index and returns it.
func (p *Playlist) removeAt(index int) (entry, bool) {
	if index < 0 || index >= len(p.entries) {
		return entry{}, false
	}
	e := p.entries[index]
	p.entries = append(p.entries[:index], p.entries[index+1:]...)
	return e, true
}

func (p *Playlist) removeKey(key uint64) bool {
	if i := p.indexOfKey(key); i >= 0 {
		_, ok := p.removeAt(i)
		return ok
	}
	return false
}

func (p *Playlist) indexOfKey(key uint64) int {
	for i, e := range p.entries {
		if e.key == key {
			return i
		}
	}
	return -1
}

func (p *Playlist) at(index int) *entry {
	if index < 0 || index >= len(p.entries) {
		return nil
	}
	return &p.entries[index]
}

func (p *Playlist) clone() *Playlist {
	c := make([]entry, len(p.entries))
	copy(c, p.entries)
	return &Playlist{entries: c}
}

func (p *Playlist) clear() {
	p.entries = p.entries[:0]
}

// Tracks returns a copy of all tracks.
func (p *Playlist) Tracks() []catalog.Track {
	result := make([]catalog.Track, len(p.entries))
	for i, e := range p.entries {
		result[i] = e.track
	}
	return result
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.entries)
}
