package season

// SnapshotStore is the contract the file store (and the in-memory store used
// when no snapshot path is configured) must satisfy.
type SnapshotStore interface {
	// Load returns ErrSnapshotNotFound when nothing was saved yet and
	// ErrSnapshotParse when the saved content is unusable.
	Load() (Snapshot, error)
	Save(snap Snapshot) error
}
