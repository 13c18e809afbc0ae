package game

import "github.com/iamasit07/four-chain/backend/internal/domain"

// Result is the outcome of one player action. A rejected action changed
// nothing; Reason says why. Events are what was (or, when rejected, what
// may still be) published, in emission order.
type Result struct {
	Accepted bool
	Reason   error
	Events   []domain.Event
}

func Accepted(events ...domain.Event) Result {
	return Result{Accepted: true, Events: events}
}

func Rejected(reason error, events ...domain.Event) Result {
	return Result{Accepted: false, Reason: reason, Events: events}
}
