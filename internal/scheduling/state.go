package scheduling

import "errors"

// SyncState tracks an entity through the optimistic-update-then-reconcile
// cycle. A mutation is applied locally first (PendingOptimistic), confirmed by
// the backend (Reconciled) or rolled back on failure (RevertedOnError); the
// only way out of RevertedOnError is an authoritative refetch back to Clean.
type SyncState int

const (
	SyncClean SyncState = iota + 1
	SyncPendingOptimistic
	SyncReconciled
	SyncRevertedOnError
)

var ErrInvalidTransition = errors.New("invalid sync state transition")

func (s SyncState) String() string {
	switch s {
	case SyncClean:
		return "Clean"
	case SyncPendingOptimistic:
		return "PendingOptimistic"
	case SyncReconciled:
		return "Reconciled"
	case SyncRevertedOnError:
		return "RevertedOnError"
	default:
		return "Unknown"
	}
}

// EntitySync is the per-entity state machine.
type EntitySync struct {
	state SyncState
}

func NewEntitySync() *EntitySync {
	return &EntitySync{state: SyncClean}
}

func (e *EntitySync) State() SyncState {
	return e.state
}

// MarkPending records that an optimistic local update has been applied ahead
// of backend confirmation.
func (e *EntitySync) MarkPending() error {
	if e.state != SyncClean && e.state != SyncReconciled {
		return ErrInvalidTransition
	}

	e.state = SyncPendingOptimistic

	return nil
}

// Reconcile records backend confirmation of the pending update.
func (e *EntitySync) Reconcile() error {
	if e.state != SyncPendingOptimistic {
		return ErrInvalidTransition
	}

	e.state = SyncReconciled

	return nil
}

// Revert records that the backend rejected the pending update and the
// optimistic local state has been discarded.
func (e *EntitySync) Revert() error {
	if e.state != SyncPendingOptimistic {
		return ErrInvalidTransition
	}

	e.state = SyncRevertedOnError

	return nil
}

// Refetch records a reload of authoritative state, the single recovery
// transition out of RevertedOnError.
func (e *EntitySync) Refetch() {
	e.state = SyncClean
}
