package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/airwaves/internal/catalog"
)

func TestIsPlayable(t *testing.T) {
	adult := &Viewer{ID: "adult"}
	minor := &Viewer{ID: "kid", IsMinor: true}
	suspended := &Viewer{ID: "banned", IsSuspended: true}

	clean := catalog.Track{ID: "clean"}
	explicit := catalog.Track{ID: "explicit", IsExplicit: true}
	hidden := catalog.Track{ID: "hidden", IsHidden: true, HiddenReason: "copyright claim"}
	hiddenNoReason := catalog.Track{ID: "hidden2", IsHidden: true}

	tests := []struct {
		name   string
		track  catalog.Track
		viewer *Viewer
		want   Decision
	}{
		{"clean track, no viewer", clean, nil, Allow()},
		{"explicit track, no viewer", explicit, nil, Allow()},
		{"explicit track, adult", explicit, adult, Allow()},
		{"explicit track, minor", explicit, minor, Block(ReasonAgeRestricted, "")},
		{"clean track, minor", clean, minor, Allow()},
		{"clean track, suspended", clean, suspended, Block(ReasonSuspended, "")},
		{"hidden with reason", hidden, adult, Block(ReasonHidden, "copyright claim")},
		{"hidden without reason", hiddenNoReason, nil, Block(ReasonHidden, DefaultHiddenReason)},
		{"hidden wins over suspension", hidden, suspended, Block(ReasonHidden, "copyright claim")},
		{
			"suspension wins over age restriction",
			explicit,
			&Viewer{ID: "x", IsMinor: true, IsSuspended: true},
			Block(ReasonSuspended, ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPlayable(tt.track, tt.viewer))
		})
	}
}

func TestFilterQueue_PreservesOrder(t *testing.T) {
	minor := &Viewer{ID: "kid", IsMinor: true}
	tracks := []catalog.Track{
		{ID: "A", IsExplicit: true},
		{ID: "B"},
		{ID: "C", IsHidden: true},
		{ID: "D"},
	}

	got := FilterQueue(tracks, minor)

	assert.Equal(t, []string{"B", "D"}, ids(got))
	assert.Len(t, tracks, 4, "input must not be modified")
}

func TestFirstPlayable(t *testing.T) {
	tracks := []catalog.Track{{ID: "A"}, {ID: "B", IsHidden: true}, {ID: "C"}}

	assert.Equal(t, 0, FirstPlayable(tracks, 0, nil))
	assert.Equal(t, 2, FirstPlayable(tracks, 1, nil))
	assert.Equal(t, -1, FirstPlayable(tracks, 3, nil))
	assert.Equal(t, 0, FirstPlayable(tracks, -4, nil))
}

func TestMessages_Text(t *testing.T) {
	m := DefaultMessages()

	assert.Equal(t, "copyright claim", m.Text(Block(ReasonHidden, "copyright claim"), nil))
	assert.Equal(t, m.AgeRestricted, m.Text(Block(ReasonAgeRestricted, ""), nil))
	assert.Empty(t, m.Text(Allow(), nil))

	expires := time.Now().Add(72 * time.Hour)
	v := &Viewer{ID: "v", IsSuspended: true, Suspension: Suspension{ExpiresAt: &expires}}
	text := m.Text(Block(ReasonSuspended, ""), v)
	assert.Contains(t, text, m.Suspended)
	assert.Contains(t, text, "from now")
}

func ids(tracks []catalog.Track) []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.ID
	}
	return out
}
