package scheduling

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) AppointmentRepository { return &repoPG{pool: pool} }

const apptCols = `id, role, user_public_id, counselor_id, psychiatrist_id,
	assigned_to, date_time, status, contact, created_by, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.Role, &a.UserPublicID, &a.CounselorID, &a.PsychiatristID,
		&a.AssignedTo, &a.DateTime, &a.Status, &a.Contact, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &a, err
}

// slotConflict translates the unique-index violation on (professional,
// date_time) into ErrSlotTaken. The partial unique indexes are the
// authoritative exclusivity check: two concurrent bookings for one slot
// race at the index, not in application code.
func slotConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrSlotTaken
	}
	return err
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointment (id, role, user_public_id, counselor_id, psychiatrist_id,
			assigned_to, date_time, status, contact, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		a.ID, a.Role, a.UserPublicID, a.CounselorID, a.PsychiatristID,
		a.AssignedTo, a.DateTime, a.Status, a.Contact, a.CreatedBy)
	return slotConflict(err)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppointment(r.pool.QueryRow(ctx, `SELECT `+apptCols+` FROM appointment WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointment SET role=$2, counselor_id=$3, psychiatrist_id=$4, assigned_to=$5,
			date_time=$6, status=$7, contact=$8, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.Role, a.CounselorID, a.PsychiatristID, a.AssignedTo,
		a.DateTime, a.Status, a.Contact)
	if err != nil {
		return slotConflict(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) ListByPatient(ctx context.Context, userPublicID string, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointment WHERE user_public_id = $1`, userPublicID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+apptCols+` FROM appointment WHERE user_public_id = $1 ORDER BY date_time LIMIT $2 OFFSET $3`,
		userPublicID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return collectAppointments(rows, total)
}

func (r *repoPG) ListByProfessional(ctx context.Context, professionalID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointment WHERE counselor_id = $1 OR psychiatrist_id = $1`, professionalID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+apptCols+` FROM appointment WHERE counselor_id = $1 OR psychiatrist_id = $1 ORDER BY date_time LIMIT $2 OFFSET $3`,
		professionalID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return collectAppointments(rows, total)
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointment`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+apptCols+` FROM appointment ORDER BY date_time LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return collectAppointments(rows, total)
}

func collectAppointments(rows pgx.Rows, total int) ([]*Appointment, int, error) {
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}
