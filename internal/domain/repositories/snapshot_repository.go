package repositories

import (
	"context"

	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
)

// SnapshotRepository persists the roster as a single flat snapshot. The
// ledger treats Load and Save as atomic scoped operations; no partial state
// is ever observed.
type SnapshotRepository interface {
	// Load reads the last saved snapshot. A missing backing store is not an
	// error: it yields an empty snapshot.
	Load(ctx context.Context) (*entities.Snapshot, error)

	// Save replaces the stored snapshot. Write failures propagate to the
	// caller.
	Save(ctx context.Context, snapshot *entities.Snapshot) error
}
