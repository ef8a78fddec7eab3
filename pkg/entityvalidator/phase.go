package entityvalidator

import (
	"context"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/entityvalidator/pkg/logger"
)

// Phase is a step of one validation run.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseResolving  Phase = "resolving"
	PhaseExtracting Phase = "extracting"
	PhaseValidating Phase = "validating"
	PhaseReporting  Phase = "reporting"
)

func (p Phase) String() string {
	return string(p)
}

// transitions lists the phases reachable from each phase. Validating goes
// back to Extracting for the next field; Resolving skips to Reporting when
// there is nothing to validate.
var transitions = map[Phase][]Phase{
	PhaseIdle:       {PhaseResolving},
	PhaseResolving:  {PhaseExtracting, PhaseReporting},
	PhaseExtracting: {PhaseValidating},
	PhaseValidating: {PhaseExtracting, PhaseReporting},
	PhaseReporting:  {PhaseIdle},
}

// CanTransition reports whether a run may move from one phase to the other.
func CanTransition(from, to Phase) bool {
	return slices.Contains(transitions[from], to)
}

// phaseTracker follows one run through its phases.
type phaseTracker struct {
	current Phase
	log     *slog.Logger
}

func newPhaseTracker(log *slog.Logger) *phaseTracker {
	return &phaseTracker{current: PhaseIdle, log: log}
}

func (t *phaseTracker) advance(ctx context.Context, to Phase) error {
	if !CanTransition(t.current, to) {
		return &TransitionError{From: t.current, To: to}
	}
	t.log.DebugContext(ctx, "phase transition",
		slog.String("from", t.current.String()),
		logger.Phase(to.String()),
	)
	t.current = to
	return nil
}

// abort ends the run from any phase after an infrastructure failure.
func (t *phaseTracker) abort(ctx context.Context, err error) {
	t.log.ErrorContext(ctx, "validation aborted",
		logger.Phase(t.current.String()),
		logger.Error(err),
	)
	t.current = PhaseIdle
}
