package state

import (
	"context"
	"database/sql"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"

	dbutil "github.com/llehouerou/airwaves/internal/db"
)

const (
	appName    = "airwaves"
	dbFileName = "airwaves.db"
)

// Manager is a Store backed by a SQLite key/value table.
type Manager struct {
	db  *sql.DB
	key KeyFunc
}

// Open opens the database at path, or at the XDG data location when path is
// empty.
func Open(path string, key KeyFunc) (*Manager, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	db, err := dbutil.Open(path)
	if err != nil {
		return nil, err
	}

	m, err := New(db, key)
	if err != nil {
		db.Close()
		return nil, err
	}
	return m, nil
}

// New wraps an open database, creating the schema if needed.
// A nil key uses PrefixKey(DefaultKeyPrefix).
func New(db *sql.DB, key KeyFunc) (*Manager, error) {
	if err := initSchema(db); err != nil {
		return nil, errors.Wrap(err, "init schema")
	}
	if key == nil {
		key = PrefixKey(DefaultKeyPrefix)
	}
	return &Manager{db: db, key: key}, nil
}

// DefaultPath returns the XDG data path of the database.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

func (m *Manager) Load(ctx context.Context, viewerID string) (*Snapshot, error) {
	var value sql.NullString
	row := m.db.QueryRowContext(ctx, `SELECT value FROM player_state WHERE key = ?`, m.key(viewerID))
	err := row.Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load snapshot for %s", viewerID)
	}

	raw := dbutil.NullStringValue(value)
	if raw == "" {
		return nil, nil
	}
	return decode(raw)
}

func (m *Manager) Save(ctx context.Context, viewerID string, snap Snapshot) error {
	raw, err := encode(snap)
	if err != nil {
		return err
	}

	return dbutil.WithTx(ctx, m.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO player_state (key, value, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				value = excluded.value,
				updated_at = excluded.updated_at
		`, m.key(viewerID), raw, time.Now().Unix())
		return errors.Wrapf(err, "save snapshot for %s", viewerID)
	})
}

func (m *Manager) Remove(ctx context.Context, viewerID string) error {
	return dbutil.WithTx(ctx, m.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM player_state WHERE key = ?`, m.key(viewerID))
		return errors.Wrapf(err, "remove snapshot for %s", viewerID)
	})
}

func (m *Manager) Close() error {
	return m.db.Close()
}

var _ Store = (*Manager)(nil)
