package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/airwaves/internal/catalog"
	dbutil "github.com/llehouerou/airwaves/internal/db"
)

func setupTestManager(t *testing.T) *Manager {
	t.Helper()

	db, err := dbutil.Open(":memory:")
	require.NoError(t, err)

	m, err := New(db, nil)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func sampleSnapshot() Snapshot {
	a := catalog.Track{ID: "a", Title: "First", AudioURL: "https://cdn/a.mp3", Likes: []string{"u1"}}
	b := catalog.Track{ID: "b", Title: "Second", AudioURL: "https://cdn/b.mp3", IsExplicit: true}
	return Snapshot{
		CurrentTrack:    &b,
		Items:           []catalog.Track{a, b},
		CurrentIndex:    1,
		Volume:          0.4,
		RepeatMode:      "all",
		Shuffle:         true,
		PositionSeconds: 42.5,
		Context:         &catalog.PlaybackContext{Kind: catalog.ContextAlbum, ID: "al1", DisplayName: "Album"},
	}
}

func TestManager_SaveAndLoad(t *testing.T) {
	m := setupTestManager(t)
	ctx := context.Background()
	want := sampleSnapshot()

	require.NoError(t, m.Save(ctx, "u1", want))

	got, err := m.Load(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestManager_LoadMissing(t *testing.T) {
	m := setupTestManager(t)

	got, err := m.Load(context.Background(), "nobody")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestManager_Overwrite(t *testing.T) {
	m := setupTestManager(t)
	ctx := context.Background()

	first := sampleSnapshot()
	second := sampleSnapshot()
	second.Volume = 0.9
	second.PositionSeconds = 3

	require.NoError(t, m.Save(ctx, "u1", first))
	require.NoError(t, m.Save(ctx, "u1", second))

	got, err := m.Load(ctx, "u1")
	require.NoError(t, err)
	assert.InDelta(t, 0.9, got.Volume, 1e-9)
	assert.InDelta(t, 3.0, got.PositionSeconds, 1e-9)
}

func TestManager_ScopedByViewer(t *testing.T) {
	m := setupTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Save(ctx, "u1", sampleSnapshot()))

	other, err := m.Load(ctx, "u2")
	require.NoError(t, err)
	assert.Nil(t, other)

	var key string
	require.NoError(t, m.db.QueryRow(`SELECT key FROM player_state`).Scan(&key))
	assert.Equal(t, "playerState_u1", key)
}

func TestManager_CustomKeyFunc(t *testing.T) {
	db, err := dbutil.Open(":memory:")
	require.NoError(t, err)
	m, err := New(db, PrefixKey("test:"))
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.Save(context.Background(), "u1", sampleSnapshot()))

	var key string
	require.NoError(t, m.db.QueryRow(`SELECT key FROM player_state`).Scan(&key))
	assert.Equal(t, "test:u1", key)
}

func TestManager_Corrupt(t *testing.T) {
	m := setupTestManager(t)
	_, err := m.db.Exec(`INSERT INTO player_state (key, value, updated_at) VALUES (?, ?, 0)`, "playerState_u1", "{not json")
	require.NoError(t, err)

	got, err := m.Load(context.Background(), "u1")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
}

func TestManager_NullValue(t *testing.T) {
	m := setupTestManager(t)
	_, err := m.db.Exec(`INSERT INTO player_state (key, value, updated_at) VALUES (?, NULL, 0)`, "playerState_u1")
	require.NoError(t, err)

	got, err := m.Load(context.Background(), "u1")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestManager_Remove(t *testing.T) {
	m := setupTestManager(t)
	ctx := context.Background()
	require.NoError(t, m.Save(ctx, "u1", sampleSnapshot()))

	require.NoError(t, m.Remove(ctx, "u1"))

	got, err := m.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInitSchema_Idempotent(t *testing.T) {
	m := setupTestManager(t)

	require.NoError(t, initSchema(m.db))

	var version int
	require.NoError(t, m.db.QueryRow(`SELECT version FROM schema_version`).Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestMock_Corrupt(t *testing.T) {
	m := NewMock()
	m.SetRaw("u1", "garbage")

	got, err := m.Load(context.Background(), "u1")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
}

func TestSnapshot_JSONFieldNames(t *testing.T) {
	raw, err := encode(sampleSnapshot())
	require.NoError(t, err)

	for _, field := range []string{
		`"currentTrack"`, `"items"`, `"currentIndex"`, `"volume"`,
		`"repeatMode"`, `"shuffle"`, `"positionSeconds"`, `"context"`,
		`"audioUrl"`, `"isExplicit"`,
	} {
		assert.Contains(t, raw, field)
	}
}
