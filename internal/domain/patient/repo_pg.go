package patient

import (
	"context"
	"time"

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

const patientCols = `id, id_number, id_type, first_name, surname, date_of_birth, sex,
	phone, email, address, emergency_name, emergency_phone,
	medical_aid_scheme, medical_aid_number, medical_history,
	consultation_status, visit_type, visit_reason, payment_method,
	last_status_change, practice_code, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (
			id, id_number, id_type, first_name, surname, date_of_birth, sex,
			phone, email, address, emergency_name, emergency_phone,
			medical_aid_scheme, medical_aid_number, medical_history,
			consultation_status, visit_type, visit_reason, payment_method,
			last_status_change, practice_code
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,
			$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21
		)`,
		p.ID, p.IDNumber, p.IDType, p.FirstName, p.Surname, p.DateOfBirth, p.Sex,
		p.Phone, p.Email, p.Address, p.EmergencyName, p.EmergencyPhone,
		p.MedicalAidScheme, p.MedicalAidNumber, p.MedicalHistory,
		p.ConsultationStatus, p.VisitType, p.VisitReason, p.PaymentMethod,
		p.LastStatusChange, p.PracticeCode,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET
			id_number=$2, id_type=$3, first_name=$4, surname=$5, date_of_birth=$6, sex=$7,
			phone=$8, email=$9, address=$10, emergency_name=$11, emergency_phone=$12,
			medical_aid_scheme=$13, medical_aid_number=$14, medical_history=$15,
			payment_method=$16, practice_code=$17, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.IDNumber, p.IDType, p.FirstName, p.Surname, p.DateOfBirth, p.Sex,
		p.Phone, p.Email, p.Address, p.EmergencyName, p.EmergencyPhone,
		p.MedicalAidScheme, p.MedicalAidNumber, p.MedicalHistory,
		p.PaymentMethod, p.PracticeCode,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patient ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPatients(rows)
}

func (r *repoPG) SetWaiting(ctx context.Context, id uuid.UUID, visitType string, reason *string, at time.Time) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET
			consultation_status=$2, visit_type=$3, visit_reason=$4,
			last_status_change=$5, updated_at=NOW()
		WHERE id = $1
		  AND consultation_status NOT IN ($6, $7)`,
		id, StatusWaiting, visitType, reason, at,
		StatusWaiting, StatusInConsultation,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// StartConsultation is the hard single-occupancy guard: the row only updates
// when no other patient holds in_consultation, and the partial unique index
// on consultation_status backs it against concurrent writers.
func (r *repoPG) StartConsultation(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET
			consultation_status=$2, last_status_change=$3, updated_at=NOW()
		WHERE id = $1
		  AND consultation_status = $4
		  AND NOT EXISTS (
			SELECT 1 FROM patient WHERE consultation_status = $2 AND id <> $1
		  )`,
		id, StatusInConsultation, at, StatusWaiting,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repoPG) CompleteConsultation(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET
			consultation_status=$2, last_status_change=$3, updated_at=NOW()
		WHERE id = $1
		  AND consultation_status = $4`,
		id, StatusServed, at, StatusInConsultation,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repoPG) CountInConsultation(ctx context.Context) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM patient WHERE consultation_status = $1`,
		StatusInConsultation,
	).Scan(&count)
	return count, err
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(
		&p.ID, &p.IDNumber, &p.IDType, &p.FirstName, &p.Surname, &p.DateOfBirth, &p.Sex,
		&p.Phone, &p.Email, &p.Address, &p.EmergencyName, &p.EmergencyPhone,
		&p.MedicalAidScheme, &p.MedicalAidNumber, &p.MedicalHistory,
		&p.ConsultationStatus, &p.VisitType, &p.VisitReason, &p.PaymentMethod,
		&p.LastStatusChange, &p.PracticeCode, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPatients(rows pgx.Rows) ([]*Patient, error) {
	var patients []*Patient
	for rows.Next() {
		var p Patient
		if err := rows.Scan(
			&p.ID, &p.IDNumber, &p.IDType, &p.FirstName, &p.Surname, &p.DateOfBirth, &p.Sex,
			&p.Phone, &p.Email, &p.Address, &p.EmergencyName, &p.EmergencyPhone,
			&p.MedicalAidScheme, &p.MedicalAidNumber, &p.MedicalHistory,
			&p.ConsultationStatus, &p.VisitType, &p.VisitReason, &p.PaymentMethod,
			&p.LastStatusChange, &p.PracticeCode, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		patients = append(patients, &p)
	}
	return patients, rows.Err()
}
