package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
	"github.com/clinicdesk/clinic-ledger/internal/domain/repositories"
	apperrors "github.com/clinicdesk/clinic-ledger/pkg/errors"
)

const (
	patientsFile     = "patients.json"
	appointmentsFile = "appointments.json"
)

// FileSnapshotAdapter persists the roster snapshot as two flat JSON files
// in a data directory, one record array per entity set.
type FileSnapshotAdapter struct {
	dir string
}

// NewFileSnapshotAdapter creates a file-backed snapshot store rooted at dir.
func NewFileSnapshotAdapter(dir string) repositories.SnapshotRepository {
	return &FileSnapshotAdapter{dir: dir}
}

// Load reads both record files. Missing files mean an empty roster, never
// an error; anything else propagates.
func (a *FileSnapshotAdapter) Load(ctx context.Context) (*entities.Snapshot, error) {
	snapshot := &entities.Snapshot{}

	if err := a.readRecords(patientsFile, &snapshot.Patients); err != nil {
		return nil, err
	}
	if err := a.readRecords(appointmentsFile, &snapshot.Appointments); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Save writes both record files. Write failures propagate to the caller.
func (a *FileSnapshotAdapter) Save(ctx context.Context, snapshot *entities.Snapshot) error {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return apperrors.NewInternalError("failed to create data directory", err)
	}
	if err := a.writeRecords(patientsFile, snapshot.Patients); err != nil {
		return err
	}
	return a.writeRecords(appointmentsFile, snapshot.Appointments)
}

func (a *FileSnapshotAdapter) readRecords(name string, out interface{}) error {
	data, err := os.ReadFile(filepath.Join(a.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to read %s", name), err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to parse %s", name), err)
	}
	return nil
}

func (a *FileSnapshotAdapter) writeRecords(name string, records interface{}) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to encode %s", name), err)
	}

	// Write through a temp file so a failed write never truncates the
	// previous snapshot.
	path := filepath.Join(a.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to write %s", name), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to replace %s", name), err)
	}
	return nil
}
