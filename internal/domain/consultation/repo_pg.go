package consultation

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicdesk/clinicdesk/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const noteCols = `id, patient_id, doctor_id, note_date, reason_for_visit, icd10_code,
	subjective, objective, assessment, plan, clinical_notes, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, n *Note) error {
	n.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO consultation_note (
			id, patient_id, doctor_id, note_date, reason_for_visit, icd10_code,
			subjective, objective, assessment, plan, clinical_notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		n.ID, n.PatientID, n.DoctorID, n.NoteDate, n.ReasonForVisit, n.ICD10Code,
		n.Subjective, n.Objective, n.Assessment, n.Plan, n.ClinicalNotes,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Note, error) {
	return scanNote(r.conn(ctx).QueryRow(ctx, `SELECT `+noteCols+` FROM consultation_note WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, n *Note) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE consultation_note SET
			note_date=$2, reason_for_visit=$3, icd10_code=$4,
			subjective=$5, objective=$6, assessment=$7, plan=$8,
			clinical_notes=$9, updated_at=NOW()
		WHERE id = $1`,
		n.ID, n.NoteDate, n.ReasonForVisit, n.ICD10Code,
		n.Subjective, n.Objective, n.Assessment, n.Plan, n.ClinicalNotes,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM consultation_note WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Note, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+noteCols+` FROM consultation_note
		WHERE patient_id = $1
		ORDER BY note_date DESC, created_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNotes(rows)
}

func scanNote(row pgx.Row) (*Note, error) {
	var n Note
	err := row.Scan(
		&n.ID, &n.PatientID, &n.DoctorID, &n.NoteDate, &n.ReasonForVisit, &n.ICD10Code,
		&n.Subjective, &n.Objective, &n.Assessment, &n.Plan, &n.ClinicalNotes,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func collectNotes(rows pgx.Rows) ([]*Note, error) {
	var out []*Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(
			&n.ID, &n.PatientID, &n.DoctorID, &n.NoteDate, &n.ReasonForVisit, &n.ICD10Code,
			&n.Subjective, &n.Objective, &n.Assessment, &n.Plan, &n.ClinicalNotes,
			&n.CreatedAt, &n.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}
