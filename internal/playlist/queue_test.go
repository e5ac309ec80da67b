package playlist

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/llehouerou/airwaves/internal/catalog"
)

func tracks(ids ...string) []catalog.Track {
	out := make([]catalog.Track, len(ids))
	for i, id := range ids {
		out[i] = catalog.Track{ID: id, AudioURL: "https://cdn.example/" + id + ".mp3"}
	}
	return out
}

func ids(ts []catalog.Track) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}

func seeded() *PlayingQueue {
	return NewQueueWithRand(rand.New(rand.NewPCG(1, 2)))
}

func TestNewQueue(t *testing.T) {
	q := NewQueue()

	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
	if q.Current() != nil {
		t.Error("Current() should be nil for empty queue")
	}
	if q.RepeatMode() != RepeatOff || q.Shuffle() {
		t.Error("new queue should have repeat off and shuffle off")
	}
}

func TestQueue_SetQueue(t *testing.T) {
	q := seeded()

	cur, err := q.SetQueue(tracks("A", "B", "C"), 1)
	if err != nil {
		t.Fatalf("SetQueue() error = %v", err)
	}
	if cur == nil || cur.ID != "B" {
		t.Errorf("current = %v, want B", cur)
	}
	if q.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", q.CurrentIndex())
	}
	if !slices.Equal(ids(q.Original()), []string{"A", "B", "C"}) {
		t.Errorf("Original() = %v", ids(q.Original()))
	}
}

func TestQueue_SetQueue_Errors(t *testing.T) {
	q := seeded()

	if _, err := q.SetQueue(nil, 0); !errors.Is(err, ErrEmptyQueue) {
		t.Errorf("empty SetQueue error = %v, want ErrEmptyQueue", err)
	}
	if _, err := q.SetQueue(tracks("A"), 3); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("out of range SetQueue error = %v, want ErrInvalidIndex", err)
	}
	if _, err := q.SetQueue(tracks("A"), -1); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("negative SetQueue error = %v, want ErrInvalidIndex", err)
	}
}

func TestQueue_SetQueue_WhileShuffled(t *testing.T) {
	q := seeded()
	q.SetShuffle(true)

	cur, err := q.SetQueue(tracks("A", "B", "C", "D", "E"), 3)
	if err != nil {
		t.Fatalf("SetQueue() error = %v", err)
	}
	if cur.ID != "D" || q.CurrentIndex() != 0 {
		t.Errorf("start track should be pinned at 0, got %s at %d", cur.ID, q.CurrentIndex())
	}
	if !slices.Equal(ids(q.Original()), []string{"A", "B", "C", "D", "E"}) {
		t.Errorf("Original() = %v, want input order", ids(q.Original()))
	}
	got := ids(q.Tracks())
	slices.Sort(got)
	if !slices.Equal(got, []string{"A", "B", "C", "D", "E"}) {
		t.Errorf("shuffled queue must be a permutation, got %v", got)
	}
}

func TestQueue_Append(t *testing.T) {
	q := seeded()

	q.Append(tracks("A")[0])
	if q.CurrentIndex() != 0 {
		t.Errorf("first append should make index 0, got %d", q.CurrentIndex())
	}

	q.Append(tracks("B")[0])
	if q.CurrentIndex() != 0 {
		t.Errorf("append should not move current, got %d", q.CurrentIndex())
	}
	if !slices.Equal(ids(q.Tracks()), []string{"A", "B"}) {
		t.Errorf("Tracks() = %v", ids(q.Tracks()))
	}
	if !slices.Equal(ids(q.Original()), []string{"A", "B"}) {
		t.Errorf("Original() = %v", ids(q.Original()))
	}
}

func TestQueue_Append_WhileShuffledSkipsOriginal(t *testing.T) {
	q := seeded()
	_, _ = q.SetQueue(tracks("A", "B"), 0)
	q.ToggleShuffle()

	q.Append(tracks("C")[0])

	if q.Len() != 3 {
		t.Errorf("Len() = %d, want 3", q.Len())
	}
	if !slices.Equal(ids(q.Original()), []string{"A", "B"}) {
		t.Errorf("Original() = %v, want [A B]", ids(q.Original()))
	}
}

func TestQueue_RemoveAt_BeforeCurrent(t *testing.T) {
	q := seeded()
	_, _ = q.SetQueue(tracks("A", "B", "C"), 2)

	if !q.RemoveAt(0) {
		t.Fatal("RemoveAt(0) = false")
	}
	if q.CurrentIndex() != 1 || q.Current().ID != "C" {
		t.Errorf("current = %d/%v, want 1/C", q.CurrentIndex(), q.Current())
	}
}

func TestQueue_RemoveAt_AfterCurrent(t *testing.T) {
	q := seeded()
	_, _ = q.SetQueue(tracks("A", "B", "C"), 0)

	q.RemoveAt(2)

	if q.CurrentIndex() != 0 || q.Current().ID != "A" {
		t.Errorf("current = %d/%v, want 0/A", q.CurrentIndex(), q.Current())
	}
	if q.NextIndex() != 1 {
		t.Errorf("NextIndex() = %d, want 1", q.NextIndex())
	}
}

func TestQueue_RemoveAt_Current(t *testing.T) {
	q := seeded()
	_, _ = q.SetQueue(tracks("A", "B", "C"), 1)

	q.RemoveAt(1)

	if !q.Detached() {
		t.Error("queue should be detached after removing the current entry")
	}
	if q.Current() != nil {
		t.Errorf("Current() = %v, want nil", q.Current())
	}
	if q.NextIndex() != 1 || q.At(q.NextIndex()).ID != "C" {
		t.Errorf("next advance should land on C, got index %d", q.NextIndex())
	}
	if q.PreviousIndex() != 0 {
		t.Errorf("PreviousIndex() = %d, want 0", q.PreviousIndex())
	}
}

func TestQueue_Detach(t *testing.T) {
	tests := []struct {
		name      string
		next      int
		wantIndex int
		wantNext  int
	}{
		{"middle", 1, 1, 1},
		{"first", 0, 0, 0},
		{"past the end", 2, 1, 2},
		{"out of range", 7, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := seeded()
			q.Restore(tracks("A", "C"), 0, RepeatOff, false)

			q.Detach(tt.next)

			if !q.Detached() || q.Current() != nil {
				t.Errorf("Detached() = %v, Current() = %v", q.Detached(), q.Current())
			}
			if q.CurrentIndex() != tt.wantIndex {
				t.Errorf("CurrentIndex() = %d, want %d", q.CurrentIndex(), tt.wantIndex)
			}
			if q.NextIndex() != tt.wantNext {
				t.Errorf("NextIndex() = %d, want %d", q.NextIndex(), tt.wantNext)
			}
		})
	}
}

func TestQueue_RemoveAt_CurrentLast(t *testing.T) {
	q := seeded()
	_, _ = q.SetQueue(tracks("A", "B"), 1)

	q.RemoveAt(1)

	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0 (clamped)", q.CurrentIndex())
	}
	if q.NextIndex() != q.Len() {
		t.Errorf("NextIndex() = %d, want end of queue %d", q.NextIndex(), q.Len())
	}
}

func TestQueue_RemoveAt_DetachedThenEarlier(t *testing.T) {
	q := seeded()
	_, _ = q.SetQueue(tracks("A", "B", "C", "D"), 2)
	q.RemoveAt(2) // current C removed, next is D at 2

	q.RemoveAt(0)

	if q.At(q.NextIndex()).ID != "D" {
		t.Errorf("next should still be D, got index %d", q.NextIndex())
	}
}

func TestQueue_RemoveAt_LastEntry(t *testing.T) {
	q := seeded()
	_, _ = q.SetQueue(tracks("A"), 0)

	q.RemoveAt(0)

	if !q.IsEmpty() || q.CurrentIndex() != -1 {
		t.Errorf("queue should be empty with index -1, got len %d index %d", q.Len(), q.CurrentIndex())
	}
}

func TestQueue_RemoveAt_OutOfRange(t *testing.T) {
	q := seeded()
	_, _ = q.SetQueue(tracks("A"), 0)

	if q.RemoveAt(5) || q.RemoveAt(-1) {
		t.Error("RemoveAt out of range should return false")
	}
}

func TestQueue_RemoveAt_DropsFromOriginal(t *testing.T) {
	q := seeded()
	_, _ = q.SetQueue(tracks("A", "B", "C", "D"), 0)
	q.ToggleShuffle()

	// Remove whatever landed last in the shuffled order.
	last := q.At(q.Len() - 1).ID
	q.RemoveAt(q.Len() - 1)

	if slices.Contains(ids(q.Original()), last) {
		t.Errorf("Original() = %v still contains removed %s", ids(q.Original()), last)
	}
}

func TestQueue_JumpTo(t *testing.T) {
	q := seeded()
	_, _ = q.SetQueue(tracks("A", "B", "C"), 0)

	if got := q.JumpTo(2); got == nil || got.ID != "C" {
		t.Errorf("JumpTo(2) = %v, want C", got)
	}
	if q.JumpTo(3) != nil {
		t.Error("JumpTo out of range should return nil")
	}
	if q.CurrentIndex() != 2 {
		t.Errorf("CurrentIndex() = %d, want 2", q.CurrentIndex())
	}
}

func TestQueue_JumpTo_ClearsDetached(t *testing.T) {
	q := seeded()
	_, _ = q.SetQueue(tracks("A", "B", "C"), 1)
	q.RemoveAt(1)

	q.JumpTo(0)

	if q.Detached() {
		t.Error("JumpTo should attach the queue again")
	}
	if q.NextIndex() != 1 {
		t.Errorf("NextIndex() = %d, want 1", q.NextIndex())
	}
}

func TestQueue_ToggleShuffle_PinsCurrent(t *testing.T) {
	q := seeded()
	_, _ = q.SetQueue(tracks("A", "B", "C", "D", "E", "F"), 2)

	if !q.ToggleShuffle() {
		t.Fatal("ToggleShuffle() should return true")
	}

	if q.CurrentIndex() != 0 || q.Current().ID != "C" {
		t.Errorf("current should be C at index 0, got %v at %d", q.Current(), q.CurrentIndex())
	}
	got := ids(q.Tracks())
	slices.Sort(got)
	if !slices.Equal(got, []string{"A", "B", "C", "D", "E", "F"}) {
		t.Errorf("shuffled queue must be a permutation, got %v", got)
	}
}

func TestQueue_ToggleShuffle_RoundTrip(t *testing.T) {
	q := seeded()
	_, _ = q.SetQueue(tracks("A", "B", "C", "D", "E"), 1)

	q.ToggleShuffle()
	q.JumpTo(3)
	playing := q.Current().ID
	q.ToggleShuffle()

	if !slices.Equal(ids(q.Tracks()), []string{"A", "B", "C", "D", "E"}) {
		t.Errorf("unshuffle should restore order, got %v", ids(q.Tracks()))
	}
	if q.Current().ID != playing {
		t.Errorf("current = %s, want %s", q.Current().ID, playing)
	}
	if q.CurrentIndex() != slices.Index(ids(q.Tracks()), playing) {
		t.Errorf("CurrentIndex() = %d does not point at %s", q.CurrentIndex(), playing)
	}
}

func TestQueue_ToggleShuffle_Empty(t *testing.T) {
	q := seeded()

	q.ToggleShuffle()
	q.ToggleShuffle()

	if q.CurrentIndex() != -1 || !q.IsEmpty() {
		t.Error("shuffling an empty queue should leave it empty")
	}
}

func TestQueue_ToggleShuffle_AppendedTrackLostOnUnshuffle(t *testing.T) {
	q := seeded()
	_, _ = q.SetQueue(tracks("A", "B"), 0)
	q.ToggleShuffle()
	q.Append(tracks("C")[0])

	q.ToggleShuffle()

	if !slices.Equal(ids(q.Tracks()), []string{"A", "B"}) {
		t.Errorf("Tracks() = %v, want [A B]", ids(q.Tracks()))
	}
}

func TestQueue_ToggleShuffle_CurrentGoneFallsBackToStart(t *testing.T) {
	q := seeded()
	_, _ = q.SetQueue(tracks("A", "B"), 0)
	q.ToggleShuffle()
	q.Append(tracks("C")[0])
	q.JumpTo(2) // C, not present in the saved order

	q.ToggleShuffle()

	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
	}
}

func TestQueue_SetShuffle_NoOp(t *testing.T) {
	q := seeded()
	_, _ = q.SetQueue(tracks("A", "B", "C"), 1)

	q.SetShuffle(false)

	if !slices.Equal(ids(q.Tracks()), []string{"A", "B", "C"}) || q.CurrentIndex() != 1 {
		t.Error("SetShuffle(false) on unshuffled queue should not change anything")
	}
}

func TestQueue_CycleRepeatMode(t *testing.T) {
	q := seeded()

	want := []RepeatMode{RepeatAll, RepeatOne, RepeatOff, RepeatAll}
	for i, w := range want {
		if got := q.CycleRepeatMode(); got != w {
			t.Errorf("cycle %d = %v, want %v", i, got, w)
		}
	}
}

func TestQueue_Collapse(t *testing.T) {
	q := seeded()
	_, _ = q.SetQueue(tracks("A", "B", "C"), 1)
	q.SetRepeatMode(RepeatAll)
	q.ToggleShuffle()

	cur := q.Current()
	q.Collapse(cur)

	if q.Len() != 1 || q.Current().ID != "B" || q.CurrentIndex() != 0 {
		t.Errorf("collapse should keep only B, got %v", ids(q.Tracks()))
	}
	if q.Shuffle() || q.RepeatMode() != RepeatOff {
		t.Error("collapse should reset modes")
	}
	if !slices.Equal(ids(q.Original()), []string{"B"}) {
		t.Errorf("Original() = %v, want [B]", ids(q.Original()))
	}
}

func TestQueue_Collapse_Nil(t *testing.T) {
	q := seeded()
	_, _ = q.SetQueue(tracks("A", "B"), 0)

	q.Collapse(nil)

	if !q.IsEmpty() || q.CurrentIndex() != -1 {
		t.Error("collapse without a current track should empty the queue")
	}
}

func TestQueue_Restore(t *testing.T) {
	q := seeded()

	q.Restore(tracks("C", "A", "B"), 1, RepeatOne, true)

	if !slices.Equal(ids(q.Tracks()), []string{"C", "A", "B"}) {
		t.Errorf("restore must not reshuffle, got %v", ids(q.Tracks()))
	}
	if q.CurrentIndex() != 1 || !q.Shuffle() || q.RepeatMode() != RepeatOne {
		t.Errorf("restored state = %d/%v/%v", q.CurrentIndex(), q.Shuffle(), q.RepeatMode())
	}
}

func TestQueue_Restore_BadIndex(t *testing.T) {
	q := seeded()

	q.Restore(tracks("A", "B"), 7, RepeatOff, false)

	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
	}
}

func TestQueue_Retain(t *testing.T) {
	q := seeded()
	ts := tracks("A", "B", "C", "D")
	ts[0].IsExplicit = true
	ts[2].IsExplicit = true
	_, _ = q.SetQueue(ts, 3)

	removed := q.Retain(func(t catalog.Track) bool { return !t.IsExplicit })

	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if !slices.Equal(ids(q.Tracks()), []string{"B", "D"}) {
		t.Errorf("Tracks() = %v", ids(q.Tracks()))
	}
	if q.Current().ID != "D" || q.CurrentIndex() != 1 {
		t.Errorf("current should follow D, got %v at %d", q.Current(), q.CurrentIndex())
	}
}

func TestQueue_UpdateTrack(t *testing.T) {
	q := seeded()
	_, _ = q.SetQueue(tracks("A", "B", "A"), 0)
	q.ToggleShuffle()

	n := q.UpdateTrack("A", func(t catalog.Track) catalog.Track {
		return t.WithLike("u1", true)
	})

	if n != 2 {
		t.Errorf("updated = %d, want 2", n)
	}
	for _, tr := range append(q.Tracks(), q.Original()...) {
		if tr.ID == "A" && !tr.LikedBy("u1") {
			t.Error("every copy of A should be liked")
		}
	}
}

func TestQueue_DuplicateTracks(t *testing.T) {
	q := seeded()
	_, _ = q.SetQueue(tracks("A", "B", "A"), 2)

	q.RemoveAt(0)

	if q.CurrentIndex() != 1 || q.Current().ID != "A" {
		t.Errorf("removing the first A must not detach the second, got %d/%v", q.CurrentIndex(), q.Current())
	}
}
