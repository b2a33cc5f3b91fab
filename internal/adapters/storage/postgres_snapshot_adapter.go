package storage

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
	"github.com/clinicdesk/clinic-ledger/internal/domain/repositories"
	"github.com/clinicdesk/clinic-ledger/internal/infrastructure/clients/postgres"
	apperrors "github.com/clinicdesk/clinic-ledger/pkg/errors"
)

// PostgresSnapshotAdapter persists the roster snapshot in two tables.
// Snapshot semantics carry over from the flat files: Save replaces both
// record sets inside one transaction, Load reads them back in roster order
// (patients by id, appointments by their stored position).
type PostgresSnapshotAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPostgresSnapshotAdapter creates a Postgres-backed snapshot store.
func NewPostgresSnapshotAdapter(client *postgres.Client) repositories.SnapshotRepository {
	return &PostgresSnapshotAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Load reads the stored snapshot. Empty tables yield an empty roster.
func (a *PostgresSnapshotAdapter) Load(ctx context.Context) (*entities.Snapshot, error) {
	snapshot := &entities.Snapshot{}

	query, args, err := a.db.Select(
		"id", "first_name", "last_name", "national_id", "age", "registered_on", "insurance_provider",
	).From("patients").Order(goqu.I("id").Asc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build patients query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load patients", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p entities.Patient
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.NationalID, &p.Age, &p.RegisteredOn, &p.Provider); err != nil {
			return nil, apperrors.NewInternalError("failed to scan patient", err)
		}
		snapshot.Patients = append(snapshot.Patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read patients", err)
	}

	query, args, err = a.db.Select(
		"patient_id", "specialty", "amount_due", "booked_on", "status",
	).From("appointments").Order(goqu.I("position").Asc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build appointments query", err)
	}

	rows, err = a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load appointments", err)
	}
	defer rows.Close()

	for rows.Next() {
		var appt entities.Appointment
		if err := rows.Scan(&appt.PatientID, &appt.Specialty, &appt.AmountDue, &appt.BookedOn, &appt.Status); err != nil {
			return nil, apperrors.NewInternalError("failed to scan appointment", err)
		}
		snapshot.Appointments = append(snapshot.Appointments, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read appointments", err)
	}

	return snapshot, nil
}

// Save replaces the stored snapshot in one transaction.
func (a *PostgresSnapshotAdapter) Save(ctx context.Context, snapshot *entities.Snapshot) error {
	tx, err := a.client.DB().BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewInternalError("failed to begin snapshot transaction", err)
	}
	defer tx.Rollback()

	if err := a.execDelete(ctx, tx, "appointments"); err != nil {
		return err
	}
	if err := a.execDelete(ctx, tx, "patients"); err != nil {
		return err
	}

	if len(snapshot.Patients) > 0 {
		records := make([]goqu.Record, len(snapshot.Patients))
		for i, p := range snapshot.Patients {
			records[i] = goqu.Record{
				"id":                 p.ID,
				"first_name":         p.FirstName,
				"last_name":          p.LastName,
				"national_id":        p.NationalID,
				"age":                p.Age,
				"registered_on":      p.RegisteredOn,
				"insurance_provider": string(p.Provider),
			}
		}
		if err := a.execInsert(ctx, tx, "patients", records); err != nil {
			return err
		}
	}

	if len(snapshot.Appointments) > 0 {
		records := make([]goqu.Record, len(snapshot.Appointments))
		for i, appt := range snapshot.Appointments {
			records[i] = goqu.Record{
				"position":   i,
				"patient_id": appt.PatientID,
				"specialty":  string(appt.Specialty),
				"amount_due": appt.AmountDue,
				"booked_on":  appt.BookedOn,
				"status":     string(appt.Status),
			}
		}
		if err := a.execInsert(ctx, tx, "appointments", records); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit snapshot", err)
	}
	return nil
}

func (a *PostgresSnapshotAdapter) execDelete(ctx context.Context, tx *sql.Tx, table string) error {
	query, args, err := a.db.Delete(table).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to clear "+table, err)
	}
	return nil
}

func (a *PostgresSnapshotAdapter) execInsert(ctx context.Context, tx *sql.Tx, table string, records []goqu.Record) error {
	rows := make([]interface{}, len(records))
	for i := range records {
		rows[i] = records[i]
	}
	query, args, err := a.db.Insert(table).Rows(rows...).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to insert into "+table, err)
	}
	return nil
}
