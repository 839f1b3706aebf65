package triage

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) CenterRepository { return &repoPG{pool: pool} }

const centerCols = `id, name, address, latitude, longitude, status, phone, created_at`

func scanCenter(row pgx.Row) (*CrisisCenter, error) {
	var c CrisisCenter
	err := row.Scan(&c.ID, &c.Name, &c.Address, &c.Latitude, &c.Longitude,
		&c.Status, &c.Phone, &c.CreatedAt)
	return &c, err
}

func (r *repoPG) Create(ctx context.Context, c *CrisisCenter) error {
	c.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO crisis_center (id, name, address, latitude, longitude, status, phone)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.Name, c.Address, c.Latitude, c.Longitude, c.Status, c.Phone)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM crisis_center WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCenterNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context) ([]*CrisisCenter, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+centerCols+` FROM crisis_center ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var centers []*CrisisCenter
	for rows.Next() {
		c, err := scanCenter(rows)
		if err != nil {
			return nil, err
		}
		centers = append(centers, c)
	}
	return centers, rows.Err()
}
