package ports

import "photodeck/domain/deck"

// NavEmitterPort receives every accepted navigation transition so the
// shell can scroll the viewport and refresh the dot indicator. The core
// never talks to a transport directly.
type NavEmitterPort interface {
	EmitTransition(sessionID string, tr deck.Transition)
}

// NavEmitterFunc adapts a function to NavEmitterPort
type NavEmitterFunc func(sessionID string, tr deck.Transition)

func (f NavEmitterFunc) EmitTransition(sessionID string, tr deck.Transition) {
	f(sessionID, tr)
}
