package deck

import (
	"errors"
	"time"
)

// ErrNoSlides is returned when a machine is requested for an empty deck
var ErrNoSlides = errors.New("deck has no slides")

// DefaultWheelCooldown is the cooldown window applied to wheel-triggered
// transitions. Keyboard and dot-click transitions are intentionally not
// throttled: those devices do not autorepeat at wheel rates.
const DefaultWheelCooldown = 800 * time.Millisecond

// Source identifies which input device produced a navigation event
type Source string

const (
	SourceWheel    Source = "wheel"
	SourceKeyboard Source = "keyboard"
	SourceDot      Source = "dot"
	SourceObserver Source = "observer" // viewport visibility report from the shell
)

// Command is the navigation operation requested by an event
type Command string

const (
	CmdAdvance Command = "advance"
	CmdRetreat Command = "retreat"
	CmdGoTo    Command = "goto"
	CmdStart   Command = "start"
	CmdEnd     Command = "end"
	CmdSync    Command = "sync"
)

// Event is the single intake shape for all four input sources. Target is
// only meaningful for CmdGoTo and CmdSync.
type Event struct {
	Source  Source  `json:"source"`
	Command Command `json:"command"`
	Target  int     `json:"target"`
}

// Transition reports an accepted index change to the shell
type Transition struct {
	From   int    `json:"from"`
	To     int    `json:"to"`
	Source Source `json:"source"`
}

// Machine owns the current slide index and reconciles events from all
// input sources through Submit. It is not safe for concurrent use; the
// owning session serializes access.
type Machine struct {
	index          int
	count          int
	cooldown       time.Duration
	throttledUntil time.Time
	now            func() time.Time
}

// NewMachine creates a machine positioned on slide 0. A nil clock falls
// back to time.Now.
func NewMachine(slideCount int, cooldown time.Duration, now func() time.Time) (*Machine, error) {
	if slideCount < 1 {
		return nil, ErrNoSlides
	}
	if cooldown <= 0 {
		cooldown = DefaultWheelCooldown
	}
	if now == nil {
		now = time.Now
	}
	return &Machine{count: slideCount, cooldown: cooldown, now: now}, nil
}

// Index returns the current slide index
func (m *Machine) Index() int {
	return m.index
}

// Count returns the slide count
func (m *Machine) Count() int {
	return m.count
}

// Throttled reports whether the wheel cooldown window is currently open
func (m *Machine) Throttled() bool {
	return m.now().Before(m.throttledUntil)
}

// Submit funnels one navigation event through the machine. The returned
// bool reports whether the event was accepted; rejected events (wheel
// events inside the cooldown window, unknown commands) leave the index
// untouched. Out-of-range targets are clamped, never rejected, since
// scrolling past either end of the deck is ordinary user behavior.
func (m *Machine) Submit(ev Event) (Transition, bool) {
	// An observer sync is the ground truth for what the viewer is
	// actually looking at; it bypasses the throttle and always wins.
	if ev.Command == CmdSync {
		return m.apply(ev.Source, m.clamp(ev.Target)), true
	}

	var to int
	switch ev.Command {
	case CmdAdvance:
		to = m.clamp(m.index + 1)
	case CmdRetreat:
		to = m.clamp(m.index - 1)
	case CmdGoTo:
		to = m.clamp(ev.Target)
	case CmdStart:
		to = 0
	case CmdEnd:
		to = m.count - 1
	default:
		return Transition{}, false
	}

	if ev.Source == SourceWheel {
		now := m.now()
		if now.Before(m.throttledUntil) {
			return Transition{}, false
		}
		// A wheel gesture that clamps at either end still arms the
		// cooldown: the gesture was processed, it just had nowhere to go.
		m.throttledUntil = now.Add(m.cooldown)
	}

	return m.apply(ev.Source, to), true
}

func (m *Machine) apply(src Source, to int) Transition {
	tr := Transition{From: m.index, To: to, Source: src}
	m.index = to
	return tr
}

func (m *Machine) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i > m.count-1 {
		return m.count - 1
	}
	return i
}
