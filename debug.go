package cardstack

import (
	"context"
	"log/slog"
)

var eventTypeNames = [...]string{
	"preloaded", "pointer-down", "drag-move", "drag-release",
	"settle-elapsed", "feedback-elapsed", "reset",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

var outcomeNames = [...]string{"ignored", "cancelled", "committed"}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// logTransition records a state machine step at debug level. Drag moves that
// leave the phase and lean unchanged are skipped to keep the log readable.
func (c *Controller) logTransition(prev, next State, ev Event) {
	if ev.Type == EventDragMove && prev.Phase == next.Phase && prev.Leaning == next.Leaning {
		return
	}
	attrs := []slog.Attr{
		slog.String("event", ev.Type.String()),
		slog.String("from", prev.Phase.String()),
		slog.String("to", next.Phase.String()),
		slog.Int("card", next.CardIndex),
	}
	switch ev.Type {
	case EventDragMove:
		attrs = append(attrs, slog.String("leaning", next.Leaning.String()))
	case EventDragRelease:
		attrs = append(attrs,
			slog.String("outcome", ev.Decision.Outcome.String()),
			slog.String("direction", ev.Decision.Direction.String()))
	case EventSettleElapsed, EventFeedbackElapsed:
		attrs = append(attrs, slog.Uint64("gen", ev.Gen))
	}
	c.logger.LogAttrs(context.Background(), slog.LevelDebug, "transition", attrs...)
}
