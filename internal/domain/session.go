package domain

// SyncState describes how the local cart relates to the remote checkout
// session.
type SyncState string

const (
	// StateEmptyLocal: no items, no remote session.
	StateEmptyLocal SyncState = "empty_local"
	// StateLocalOnly: items present, nothing submitted to the platform yet.
	StateLocalOnly SyncState = "local_only"
	// StateSynced: a remote session exists and the last call to the
	// platform succeeded.
	StateSynced SyncState = "synced"
	// StateDiverged: a remote session exists but the last call failed, so
	// local state may be ahead of remote state. The next successful call
	// returns to StateSynced.
	StateDiverged SyncState = "diverged"
)

func (s SyncState) String() string {
	return string(s)
}
