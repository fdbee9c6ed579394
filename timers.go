package cardstack

import "time"

type timerKind uint8

const (
	timerSettle timerKind = iota
	timerFeedback
	numTimerKinds
)

type pendingTimer struct {
	active    bool
	gen       uint64
	remaining time.Duration
}

// Timers holds the two settle timers. They are advanced by the game loop, so
// firing happens on the same logical thread as every other state change.
// Each kind has at most one pending timer; scheduling replaces it.
type Timers struct {
	pending [numTimerKinds]pendingTimer
}

// Apply schedules or cancels timers for the timer-related effects in
// effects and ignores the rest.
func (t *Timers) Apply(effects []Effect) {
	for _, e := range effects {
		switch e.Type {
		case EffectScheduleSettle:
			t.schedule(timerSettle, e.Gen, e.Delay)
		case EffectScheduleFeedback:
			t.schedule(timerFeedback, e.Gen, e.Delay)
		case EffectCancelTimers:
			t.CancelAll()
		}
	}
}

func (t *Timers) schedule(kind timerKind, gen uint64, delay time.Duration) {
	t.pending[kind] = pendingTimer{active: true, gen: gen, remaining: delay}
}

// CancelAll drops every pending timer.
func (t *Timers) CancelAll() {
	for i := range t.pending {
		t.pending[i] = pendingTimer{}
	}
}

// Pending reports whether any timer is scheduled.
func (t *Timers) Pending() bool {
	for _, p := range t.pending {
		if p.active {
			return true
		}
	}
	return false
}

// Advance moves every pending timer forward by dt and returns the events of
// the timers that elapsed, settle before feedback.
func (t *Timers) Advance(dt time.Duration) []Event {
	var fired []Event
	for kind := range t.pending {
		p := &t.pending[kind]
		if !p.active {
			continue
		}
		p.remaining -= dt
		if p.remaining > 0 {
			continue
		}
		ev := Event{Type: EventSettleElapsed, Gen: p.gen}
		if timerKind(kind) == timerFeedback {
			ev.Type = EventFeedbackElapsed
		}
		fired = append(fired, ev)
		*p = pendingTimer{}
	}
	return fired
}
