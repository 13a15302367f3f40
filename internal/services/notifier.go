package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/gitfit/gitfit-backend/internal/realtime"
	"github.com/gitfit/gitfit-backend/internal/types"
)

// CoachingNotifier pushes coaching directives and adjustment events onto the
// user's realtime channel.
type CoachingNotifier interface {
	Directive(userID uuid.UUID, directive *CoachingDirective)
	AdjustmentDecided(userID uuid.UUID, decision *types.AdjustmentDecision, reused bool)
	OutcomeRecorded(userID uuid.UUID, outcome *types.AdjustmentOutcome)
	AchievementUpdated(userID uuid.UUID, achievement *types.AdjustmentAchievement)
}

type coachingNotifier struct {
	emit Emitter
}

func NewCoachingNotifier(emit Emitter) CoachingNotifier {
	return &coachingNotifier{emit: emit}
}

func (n *coachingNotifier) Directive(userID uuid.UUID, directive *CoachingDirective) {
	if n == nil || n.emit == nil || userID == uuid.Nil {
		return
	}
	n.emit.Emit(context.Background(), realtime.Message{
		Channel: userID.String(),
		Event:   realtime.EventCoachingDirective,
		Data:    map[string]any{"directive": directive},
	})
}

func (n *coachingNotifier) AdjustmentDecided(userID uuid.UUID, decision *types.AdjustmentDecision, reused bool) {
	if n == nil || n.emit == nil || userID == uuid.Nil {
		return
	}
	n.emit.Emit(context.Background(), realtime.Message{
		Channel: userID.String(),
		Event:   realtime.EventAdjustmentDecided,
		Data: map[string]any{
			"decision": decision,
			"reused":   reused,
		},
	})
}

func (n *coachingNotifier) OutcomeRecorded(userID uuid.UUID, outcome *types.AdjustmentOutcome) {
	if n == nil || n.emit == nil || userID == uuid.Nil {
		return
	}
	n.emit.Emit(context.Background(), realtime.Message{
		Channel: userID.String(),
		Event:   realtime.EventOutcomeRecorded,
		Data:    map[string]any{"outcome": outcome},
	})
}

func (n *coachingNotifier) AchievementUpdated(userID uuid.UUID, achievement *types.AdjustmentAchievement) {
	if n == nil || n.emit == nil || userID == uuid.Nil {
		return
	}
	n.emit.Emit(context.Background(), realtime.Message{
		Channel: userID.String(),
		Event:   realtime.EventAchievementUpdated,
		Data:    map[string]any{"achievement": achievement},
	})
}
