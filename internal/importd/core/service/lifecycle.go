package service

import (
	"context"

	"github.com/looplab/fsm"

	fsmutil "github.com/vinsync-io/vinsync/internal/pkg/util/fsm"
	"github.com/vinsync-io/vinsync/pkg/log"
)

// Engine lifecycle states.
const (
	StateIdle        = "idle"
	StateFetching    = "fetching"
	StateReconciling = "reconciling"
	StatePersisting  = "persisting"
)

const (
	eventFetch     = "event_fetch"
	eventReconcile = "event_reconcile"
	eventPersist   = "event_persist"
	eventFinish    = "event_finish"
	eventAbort     = "event_abort"
)

// lifecycle is the batch-run state machine. Because eventFetch is only valid
// from idle, firing it doubles as the mutual-exclusion guard: a second
// trigger while a run is in flight fails the transition and is rejected.
type lifecycle struct {
	*fsm.FSM
}

func newLifecycle() *lifecycle {
	return &lifecycle{
		FSM: fsm.NewFSM(
			StateIdle,
			fsm.Events{
				{Name: eventFetch, Src: []string{StateIdle}, Dst: StateFetching},
				{Name: eventReconcile, Src: []string{StateFetching}, Dst: StateReconciling},
				{Name: eventPersist, Src: []string{StateReconciling}, Dst: StatePersisting},
				{Name: eventFinish, Src: []string{StatePersisting}, Dst: StateIdle},
				{Name: eventAbort, Src: []string{StateFetching, StateReconciling, StatePersisting}, Dst: StateIdle},
			},
			fsm.Callbacks{
				"enter_state": fsmutil.WrapEvent(func(ctx context.Context, e *fsm.Event) error {
					log.Debug("run state changed", "from", e.Src, "to", e.Dst)
					return nil
				}),
			},
		),
	}
}

// begin acquires the run lock by entering the fetching state.
func (l *lifecycle) begin(ctx context.Context) error {
	if err := l.Event(ctx, eventFetch); err != nil {
		return ErrRunInProgress
	}
	return nil
}

// advance moves through the run states; the sequence is fixed, so a failed
// transition here is a programming error worth logging, not handling.
func (l *lifecycle) advance(ctx context.Context, event string) {
	if err := l.Event(ctx, event); err != nil {
		log.Error(err, "unexpected lifecycle transition failure", "event", event, "state", l.Current())
	}
}

// abort returns the machine to idle from any in-run state.
func (l *lifecycle) abort(ctx context.Context) {
	l.advance(ctx, eventAbort)
}
