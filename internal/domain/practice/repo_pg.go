package practice

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

const practiceCols = `id, name, code, address, city, phone, email, status, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, p *Practice) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO practice (id, name, code, address, city, phone, email, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.Name, p.Code, p.Address, p.City, p.Phone, p.Email, p.Status,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Practice, error) {
	return scanPractice(r.conn(ctx).QueryRow(ctx, `SELECT `+practiceCols+` FROM practice WHERE id = $1`, id))
}

func (r *repoPG) GetByCode(ctx context.Context, code string) (*Practice, error) {
	return scanPractice(r.conn(ctx).QueryRow(ctx, `SELECT `+practiceCols+` FROM practice WHERE code = $1`, code))
}

func (r *repoPG) Update(ctx context.Context, p *Practice) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE practice SET
			name=$2, address=$3, city=$4, phone=$5, email=$6, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.Address, p.City, p.Phone, p.Email,
	)
	return err
}

func (r *repoPG) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE practice SET status=$2, updated_at=NOW() WHERE id = $1`, id, status)
	return err
}

func (r *repoPG) List(ctx context.Context) ([]*Practice, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+practiceCols+` FROM practice ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Practice
	for rows.Next() {
		var p Practice
		if err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.Address, &p.City,
			&p.Phone, &p.Email, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func scanPractice(row pgx.Row) (*Practice, error) {
	var p Practice
	err := row.Scan(&p.ID, &p.Name, &p.Code, &p.Address, &p.City,
		&p.Phone, &p.Email, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
