package player

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelToVolume(t *testing.T) {
	tests := []struct {
		level  float64
		want   float64
		silent bool
	}{
		{1, 0, false},
		{1.5, 0, false},
		{0.5, -1, false},
		{0.25, -2, false},
		{0, -10, true},
		{-1, -10, true},
	}
	for _, tt := range tests {
		got, silent := levelToVolume(tt.level)
		if math.Abs(got-tt.want) > 1e-9 || silent != tt.silent {
			t.Errorf("levelToVolume(%v) = %v, %v; want %v, %v", tt.level, got, silent, tt.want, tt.silent)
		}
	}
}

func TestClampVolume(t *testing.T) {
	assert.InDelta(t, 0.0, ClampVolume(-0.5), 1e-9)
	assert.InDelta(t, 1.0, ClampVolume(2), 1e-9)
	assert.InDelta(t, 0.3, ClampVolume(0.3), 1e-9)
}

func TestDecode_Unsupported(t *testing.T) {
	_, _, err := decode(memFile{}, ".xyz")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtFromContentType(t *testing.T) {
	assert.Equal(t, extMP3, extFromContentType("audio/mpeg"))
	assert.Equal(t, extFLAC, extFromContentType("audio/flac"))
	assert.Equal(t, extOGG, extFromContentType("audio/ogg; codecs=vorbis"))
	assert.Empty(t, extFromContentType("application/octet-stream"))
}

func TestMock_EventSequence(t *testing.T) {
	m := NewMock()

	require.NoError(t, m.Load("a.mp3"))
	require.NoError(t, m.Play())
	m.SimulateTime(10 * time.Second)
	m.Pause()
	m.SimulateEnded()

	kinds := []EventKind{}
	for _, ev := range m.Drain() {
		assert.Equal(t, "a.mp3", ev.Source)
		kinds = append(kinds, ev.Kind)
	}
	assert.Equal(t, []EventKind{EventMetadataLoaded, EventPlay, EventTimeUpdate, EventPause, EventEnded}, kinds)
}

func TestMock_PlayWithoutSource(t *testing.T) {
	m := NewMock()

	err := m.Play()

	assert.ErrorIs(t, err, ErrNoSource)
	assert.Empty(t, m.Drain())
}

func TestMock_PlayError(t *testing.T) {
	m := NewMock()
	boom := errors.New("autoplay denied")
	m.SetPlayError(boom)
	require.NoError(t, m.Load("a.mp3"))
	m.Drain()

	err := m.Play()

	assert.ErrorIs(t, err, boom)
	assert.False(t, m.Playing())
	assert.Empty(t, m.Drain())
}

func TestMock_PauseWhenNotPlaying(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.Load("a.mp3"))
	m.Drain()

	m.Pause()

	assert.Empty(t, m.Drain())
	assert.Equal(t, 1, m.PauseCalls())
}

func TestMock_Release(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.Load("a.mp3"))
	require.NoError(t, m.Play())

	m.Release()

	assert.Empty(t, m.Source())
	assert.False(t, m.Playing())
	assert.Equal(t, 1, m.ReleaseCalls())
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "ended", EventEnded.String())
	assert.Equal(t, "unknown", EventKind(99).String())
}

func TestSpeaker_LoadMissingFileReportsError(t *testing.T) {
	s := NewSpeaker(zerolog.Nop())
	defer s.Close()

	require.NoError(t, s.Load("/nonexistent/airwaves-test.mp3"))

	select {
	case ev := <-s.Events():
		assert.Equal(t, EventError, ev.Kind)
		assert.Equal(t, "/nonexistent/airwaves-test.mp3", ev.Source)
		assert.Error(t, ev.Err)
	case <-time.After(5 * time.Second):
		t.Fatal("expected an error event")
	}
	assert.ErrorIs(t, s.Play(), ErrNoSource)
}

func TestSpeaker_PlayWithoutSource(t *testing.T) {
	s := NewSpeaker(zerolog.Nop())
	defer s.Close()

	assert.ErrorIs(t, s.Play(), ErrNoSource)
	assert.ErrorIs(t, s.Load(""), ErrNoSource)
}
