package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const profCols = `id, full_name, role, registration_no, contact, location,
	latitude, longitude, created_at, updated_at`

func scanProfessional(row pgx.Row) (*Professional, error) {
	var p Professional
	err := row.Scan(&p.ID, &p.FullName, &p.Role, &p.RegistrationNo, &p.Contact,
		&p.Location, &p.Latitude, &p.Longitude, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Professional) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO professional (id, full_name, role, registration_no, contact, location, latitude, longitude)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.FullName, p.Role, p.RegistrationNo, p.Contact, p.Location, p.Latitude, p.Longitude)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Professional, error) {
	return scanProfessional(r.pool.QueryRow(ctx, `SELECT `+profCols+` FROM professional WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Professional) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE professional SET full_name=$2, role=$3, registration_no=$4, contact=$5,
			location=$6, latitude=$7, longitude=$8, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FullName, p.Role, p.RegistrationNo, p.Contact, p.Location, p.Latitude, p.Longitude)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM professional WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, role string, registeredOnly bool, limit, offset int) ([]*Professional, int, error) {
	query := `SELECT ` + profCols + ` FROM professional WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM professional WHERE 1=1`
	var args []interface{}
	idx := 1

	if role != "" {
		cond := fmt.Sprintf(` AND role = $%d`, idx)
		query += cond
		countQuery += cond
		args = append(args, role)
		idx++
	}
	if registeredOnly {
		cond := ` AND registration_no IS NOT NULL AND registration_no <> ''`
		query += cond
		countQuery += cond
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY full_name LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Professional
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}
