// Package bus is the process-wide publish/subscribe channel for identity
// and social signals.
package bus

import (
	"sync"

	"github.com/llehouerou/airwaves/internal/policy"
)

const eventBufferSize = 16

// Identity is published when a viewer logs in, changes identity, or has
// its attributes refreshed (Viewer set), and when the viewer logs out
// (Viewer nil).
type Identity struct {
	Viewer *policy.Viewer
}

// LoggedOut reports whether the event is a logout.
func (e Identity) LoggedOut() bool {
	return e.Viewer == nil
}

// LikeChanged is published when a user's like on a track changes.
type LikeChanged struct {
	TrackID string
	UserID  string
	Liked   bool
}

// Subscription provides event channels for a subscriber.
//
// Identity events arrive in publish order and are never dropped; events
// that do not fit the buffer wait in an overflow queue.
type Subscription struct {
	Identity    <-chan Identity
	LikeChanged <-chan LikeChanged
	Done        <-chan struct{}

	identityCh    chan Identity
	likeChangedCh chan LikeChanged
	doneCh        chan struct{}

	mu       sync.Mutex
	overflow []Identity
	pumping  bool
}

func newSubscription() *Subscription {
	s := &Subscription{
		identityCh:    make(chan Identity, eventBufferSize),
		likeChangedCh: make(chan LikeChanged, eventBufferSize),
		doneCh:        make(chan struct{}),
	}
	s.Identity = s.identityCh
	s.LikeChanged = s.likeChangedCh
	s.Done = s.doneCh
	return s
}

func (s *Subscription) sendIdentity(e Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.overflow) == 0 {
		select {
		case s.identityCh <- e:
			return
		default:
		}
	}
	s.overflow = append(s.overflow, e)
	if !s.pumping {
		s.pumping = true
		go s.pumpOverflow()
	}
}

// pumpOverflow moves queued identity events into the channel as the
// subscriber reads, until the queue is empty or the subscription closes.
func (s *Subscription) pumpOverflow() {
	for {
		s.mu.Lock()
		if len(s.overflow) == 0 {
			s.pumping = false
			s.mu.Unlock()
			return
		}
		e := s.overflow[0]
		s.mu.Unlock()

		select {
		case s.identityCh <- e:
			s.mu.Lock()
			s.overflow = s.overflow[1:]
			s.mu.Unlock()
		case <-s.doneCh:
			return
		}
	}
}

// Bus fans events out to every subscriber. Publishing never blocks. A
// subscriber whose buffer is full misses like events but keeps every
// identity event.
type Bus struct {
	mu     sync.RWMutex
	subs   []*Subscription
	closed bool
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe creates a new event subscription.
func (b *Bus) Subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := newSubscription()
	if b.closed {
		close(sub.doneCh)
		return sub
	}
	b.subs = append(b.subs, sub)
	return sub
}

// Unsubscribe removes sub and closes its Done channel.
func (b *Bus) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(s.doneCh)
			return
		}
	}
}

func (b *Bus) PublishLoggedIn(v policy.Viewer) {
	b.each(func(s *Subscription) {
		viewer := v
		s.sendIdentity(Identity{Viewer: &viewer})
	})
}

func (b *Bus) PublishLoggedOut() {
	b.each(func(s *Subscription) {
		s.sendIdentity(Identity{})
	})
}

func (b *Bus) PublishLikeChanged(e LikeChanged) {
	b.each(func(s *Subscription) {
		select {
		case s.likeChangedCh <- e:
		default:
		}
	})
}

func (b *Bus) each(fn func(*Subscription)) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, s := range b.subs {
		fn(s)
	}
}

// Close closes every subscription. Later publishes are dropped.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, s := range b.subs {
		close(s.doneCh)
	}
	b.subs = nil
}
