package playback

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/airwaves/internal/bus"
	"github.com/llehouerou/airwaves/internal/catalog"
	"github.com/llehouerou/airwaves/internal/player"
	"github.com/llehouerou/airwaves/internal/playlist"
	"github.com/llehouerou/airwaves/internal/policy"
	"github.com/llehouerou/airwaves/internal/state"
)

const (
	DefaultPlayCountAfter  = 30 * time.Second
	DefaultRewindThreshold = 3 * time.Second
	DefaultAutosaveDelay   = time.Second
)

// Options configures the engine. Zero values select the defaults; a zero
// InitialVolume means full volume.
type Options struct {
	Catalog  catalog.Client // play counts and likes; nil disables both
	Store    state.Store    // snapshot persistence; nil disables it
	Bus      *bus.Bus       // like-change fan-out; nil applies likes locally
	Logger   *zerolog.Logger
	Messages policy.Messages

	PlayCountAfter  time.Duration
	RewindThreshold time.Duration
	AutosaveDelay   time.Duration
	InitialVolume   float64
}

func (o Options) withDefaults() Options {
	if o.PlayCountAfter <= 0 {
		o.PlayCountAfter = DefaultPlayCountAfter
	}
	if o.RewindThreshold <= 0 {
		o.RewindThreshold = DefaultRewindThreshold
	}
	if o.AutosaveDelay <= 0 {
		o.AutosaveDelay = DefaultAutosaveDelay
	}
	if o.InitialVolume <= 0 {
		o.InitialVolume = 1
	}
	if o.Logger == nil {
		o.Logger = &log.Logger
	}
	defaults := policy.DefaultMessages()
	if o.Messages.Hidden == "" {
		o.Messages.Hidden = defaults.Hidden
	}
	if o.Messages.Suspended == "" {
		o.Messages.Suspended = defaults.Suspended
	}
	if o.Messages.AgeRestricted == "" {
		o.Messages.AgeRestricted = defaults.AgeRestricted
	}
	return o
}

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	mu sync.RWMutex

	device  player.Device
	queue   *playlist.PlayingQueue
	catalog catalog.Client
	saver   *state.Autosaver
	bus     *bus.Bus
	busSub  *bus.Subscription
	opts    Options
	log     zerolog.Logger

	viewer  *policy.Viewer
	context *catalog.PlaybackContext

	// Transport. isPlaying, position and duration are only written from
	// device events.
	current      *catalog.Track
	source       string
	isPlaying    bool
	position     time.Duration
	duration     time.Duration
	volume       float64
	countPending bool
	lastState    State

	playTimers map[uint64]*time.Timer
	timerSeq   uint64

	subs       []*Subscription
	subsMu     sync.RWMutex
	subsClosed bool

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	closed bool
}

// New creates a new playback engine. The engine owns the device and closes
// it on Close.
func New(d player.Device, q *playlist.PlayingQueue, opts Options) Service {
	return newService(d, q, opts)
}

func newService(d player.Device, q *playlist.PlayingQueue, opts Options) *serviceImpl {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	s := &serviceImpl{
		device:     d,
		queue:      q,
		catalog:    opts.Catalog,
		bus:        opts.Bus,
		opts:       opts,
		log:        opts.Logger.With().Str("component", "playback").Logger(),
		volume:     player.ClampVolume(opts.InitialVolume),
		playTimers: make(map[uint64]*time.Timer),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	if opts.Store != nil {
		s.saver = state.NewAutosaver(opts.Store, opts.AutosaveDelay, *opts.Logger)
	}
	if opts.Bus != nil {
		s.busSub = opts.Bus.Subscribe()
	}
	d.SetVolume(s.volume)
	return s
}

// Run pumps device events and bus like changes until ctx is done or the
// engine is closed.
func (s *serviceImpl) Run(ctx context.Context) error {
	events := s.device.Events()
	var likes <-chan bus.LikeChanged
	var busDone <-chan struct{}
	if s.busSub != nil {
		likes = s.busSub.LikeChanged
		busDone = s.busSub.Done
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return nil
		case <-busDone:
			likes, busDone = nil, nil
		case ev := <-events:
			s.handleEvent(ev)
		case e := <-likes:
			s.applyLike(e)
		}
	}
}

// Status returns a copy of the engine state.
func (s *serviceImpl) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		State:        s.stateLocked(),
		CurrentTrack: copyTrack(s.current),
		Queue:        s.queue.Tracks(),
		Index:        s.queue.CurrentIndex(),
		IsPlaying:    s.isPlaying,
		Position:     s.position,
		Duration:     s.duration,
		Volume:       s.volume,
		RepeatMode:   s.queue.RepeatMode(),
		Shuffle:      s.queue.Shuffle(),
		Context:      copyContext(s.context),
	}
}

// Viewer returns the attached viewer, or nil.
func (s *serviceImpl) Viewer() *policy.Viewer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.viewer == nil {
		return nil
	}
	v := *s.viewer
	return &v
}

func (s *serviceImpl) stateLocked() State {
	return stateOf(s.current, s.isPlaying)
}

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	if s.subsClosed {
		sub.close()
		return sub
	}
	s.subs = append(s.subs, sub)
	return sub
}

// Close shuts down the engine, flushing pending state and releasing the
// device.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.stopPlayTimersLocked()
	if s.saver != nil {
		s.saver.Flush()
	}
	s.cancel()
	s.mu.Unlock()

	if s.bus != nil && s.busSub != nil {
		s.bus.Unsubscribe(s.busSub)
	}

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsClosed = true
	s.subsMu.Unlock()

	s.device.Release()
	return s.device.Close()
}

func copyTrack(t *catalog.Track) *catalog.Track {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyContext(c *catalog.PlaybackContext) *catalog.PlaybackContext {
	if c == nil {
		return nil
	}
	cc := *c
	return &cc
}
