package app

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"photodeck/domain/deck"
	"photodeck/internal"
	"photodeck/internal/errors"
	"photodeck/ports"
)

// ErrUnknownSession is returned for events against an expired or
// never-opened viewer session
var ErrUnknownSession = errors.New("SESSION_UNKNOWN", "unknown or expired viewer session")

// DeckService owns one navigation machine per connected viewer and
// funnels every event source through it. Accepted transitions are
// emitted to the shell through the configured emitter port.
type DeckService struct {
	deck     *deck.Deck
	cooldown time.Duration
	ttl      time.Duration
	emitter  ports.NavEmitterPort
	now      func() time.Time
	log      *internal.Logger

	mu       sync.Mutex
	sessions map[string]*viewerSession
}

type viewerSession struct {
	machine  *deck.Machine
	lastSeen time.Time
}

// NewDeckService creates the service. A nil clock falls back to time.Now.
func NewDeckService(d *deck.Deck, cooldown, ttl time.Duration, emitter ports.NavEmitterPort, now func() time.Time) *DeckService {
	if now == nil {
		now = time.Now
	}
	return &DeckService{
		deck:     d,
		cooldown: cooldown,
		ttl:      ttl,
		emitter:  emitter,
		now:      now,
		log:      internal.DefaultLogger,
		sessions: make(map[string]*viewerSession),
	}
}

// Deck returns the presentation served to every viewer
func (s *DeckService) Deck() *deck.Deck {
	return s.deck
}

// OpenSession registers a new viewer positioned on slide 0 and returns
// its session ID.
func (s *DeckService) OpenSession() (string, error) {
	machine, err := deck.NewMachine(s.deck.Len(), s.cooldown, s.now)
	if err != nil {
		return "", errors.Wrap(err, "cannot open a session for an empty deck")
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &viewerSession{machine: machine, lastSeen: s.now()}
	s.mu.Unlock()

	s.log.Debug("[Deck] Opened viewer session %s (%d slides)", id, s.deck.Len())
	return id, nil
}

// Submit routes one navigation event to the session's machine. The bool
// reports whether the machine accepted the event; accepted transitions
// are broadcast before returning. The emit happens under the session
// lock so transitions reach the shell in the exact order the machine
// applied them; the hub's Broadcast is a non-blocking send, so the lock
// is never held across a slow consumer.
func (s *DeckService) Submit(sessionID string, ev deck.Event) (deck.Transition, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return deck.Transition{}, false, ErrUnknownSession
	}
	sess.lastSeen = s.now()
	tr, accepted := sess.machine.Submit(ev)

	if accepted && s.emitter != nil {
		s.emitter.EmitTransition(sessionID, tr)
	}
	return tr, accepted, nil
}

// Index returns the session's current slide index
func (s *DeckService) Index(sessionID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return 0, ErrUnknownSession
	}
	return sess.machine.Index(), nil
}

// SessionCount returns the number of live viewer sessions
func (s *DeckService) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// SweepIdle evicts sessions idle past the TTL and returns how many were
// removed. Slide position is deliberately not persisted anywhere.
func (s *DeckService) SweepIdle() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.log.Info("[Deck] Evicted %d idle viewer sessions", removed)
	}
	return removed
}

// RunSweeper evicts idle sessions on the given interval until the
// channel is closed.
func (s *DeckService) RunSweeper(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.SweepIdle()
		case <-stop:
			return
		}
	}
}
