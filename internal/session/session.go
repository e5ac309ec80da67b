// Package session switches the playback engine between viewers as identity
// signals arrive.
package session

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/llehouerou/airwaves/internal/bus"
	"github.com/llehouerou/airwaves/internal/errmsg"
	"github.com/llehouerou/airwaves/internal/playback"
	"github.com/llehouerou/airwaves/internal/policy"
	"github.com/llehouerou/airwaves/internal/state"
)

// ErrIdentityMismatch is returned when a newer identity signal superseded a
// login before its snapshot was applied.
var ErrIdentityMismatch = errors.New("identity changed during login")

// Engine is the part of the playback engine the handler drives.
type Engine interface {
	Viewer() *policy.Viewer
	Teardown()
	Rehydrate(viewer policy.Viewer, snap *state.Snapshot)
	ApplyViewer(viewer policy.Viewer)
}

// Handler applies login and logout signals to an engine. The latest signal
// always wins: a login whose snapshot arrives after a newer signal is
// discarded.
type Handler struct {
	engine Engine
	store  state.Store
	log    zerolog.Logger

	mu  sync.Mutex
	gen uint64
	wg  sync.WaitGroup
}

// New creates a handler. store may be nil, in which case every login starts
// empty.
func New(engine Engine, store state.Store, log zerolog.Logger) *Handler {
	return &Handler{
		engine: engine,
		store:  store,
		log:    log.With().Str("component", "session").Logger(),
	}
}

// LoggedIn attaches viewer. A different identity tears the engine down and
// rehydrates it from the viewer's snapshot; the same identity only
// re-applies the content policy to what is loaded.
func (h *Handler) LoggedIn(ctx context.Context, viewer policy.Viewer) error {
	return h.loggedIn(ctx, h.next(), viewer)
}

// LoggedOut stops playback and clears the engine. Snapshots are kept.
func (h *Handler) LoggedOut() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.gen++
	if v := h.engine.Viewer(); v != nil {
		h.log.Info().Str("viewer", v.ID).Msg("viewer logged out")
	}
	h.engine.Teardown()
}

// Run applies bus identity signals, in publish order, until ctx is done or
// the subscription is closed. Logins run concurrently so that a later
// signal can supersede a slow snapshot load.
func (h *Handler) Run(ctx context.Context, sub *bus.Subscription) error {
	defer h.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sub.Done:
			return nil
		case e := <-sub.Identity:
			if e.LoggedOut() {
				h.LoggedOut()
				continue
			}
			viewer := *e.Viewer
			gen := h.next()
			h.wg.Go(func() {
				if err := h.loggedIn(ctx, gen, viewer); err != nil {
					h.log.Debug().Err(err).Str("viewer", viewer.ID).Msg("login discarded")
				}
			})
		}
	}
}

func (h *Handler) next() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.gen++
	return h.gen
}

func (h *Handler) loggedIn(ctx context.Context, gen uint64, viewer policy.Viewer) error {
	h.mu.Lock()
	if h.gen != gen {
		h.mu.Unlock()
		return errors.Wrapf(ErrIdentityMismatch, "viewer %s", viewer.ID)
	}
	if cur := h.engine.Viewer(); cur != nil && cur.ID == viewer.ID {
		h.engine.ApplyViewer(viewer)
		h.mu.Unlock()
		h.log.Debug().Str("viewer", viewer.ID).Msg("viewer attributes updated")
		return nil
	}
	h.engine.Teardown()
	h.mu.Unlock()

	snap := h.load(ctx, viewer.ID)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.gen != gen {
		h.log.Info().Str("viewer", viewer.ID).Msg("discarding snapshot for superseded login")
		return errors.Wrapf(ErrIdentityMismatch, "viewer %s", viewer.ID)
	}
	h.engine.Rehydrate(viewer, snap)
	h.log.Info().Str("viewer", viewer.ID).Bool("restored", snap != nil).Msg("viewer logged in")
	return nil
}

// load reads the viewer's snapshot. Any failure is treated as no snapshot.
func (h *Handler) load(ctx context.Context, viewerID string) *state.Snapshot {
	if h.store == nil {
		return nil
	}
	snap, err := h.store.Load(ctx, viewerID)
	if err != nil {
		h.log.Warn().
			Err(errors.Wrapf(playback.ErrPersistence, "load snapshot: %v", err)).
			Str("op", string(errmsg.OpStateLoad)).
			Str("viewer", viewerID).
			Bool("corrupt", errors.Is(err, state.ErrCorruptSnapshot)).
			Msg("ignoring unreadable playback state")
		return nil
	}
	return snap
}
