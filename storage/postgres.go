package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"jeepfest-bot/core/logger"
	"jeepfest-bot/registration"
)

// Unique index names from the initial migration; pq reports the violated
// constraint so conflicts map back to the offending field.
const (
	phoneUniqueConstraint = "registrations_phone_key"
	plateUniqueConstraint = "registrations_plate_key"
)

const uniqueViolation = pq.ErrorCode("23505")

// PostgresRepository implements Repository on top of sqlx/Postgres.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgres wraps an initialized connection pool.
func NewPostgres(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const upsertSQL = `
INSERT INTO registrations
    (tg_id, lang, name, car, plate, phone, people, participation, discipline,
     pay_status, photo_file_id, created_at, updated_at)
VALUES
    (:tg_id, :lang, :name, :car, :plate, :phone, :people, :participation,
     :discipline, :pay_status, :photo_file_id, now(), now())
ON CONFLICT (tg_id) DO UPDATE SET
    lang          = EXCLUDED.lang,
    name          = EXCLUDED.name,
    car           = EXCLUDED.car,
    plate         = EXCLUDED.plate,
    phone         = EXCLUDED.phone,
    people        = EXCLUDED.people,
    participation = EXCLUDED.participation,
    discipline    = EXCLUDED.discipline,
    photo_file_id = EXCLUDED.photo_file_id,
    updated_at    = now()
RETURNING id`

// Upsert inserts or overwrites the row for reg.TgID in a single statement,
// so the uniqueness checks on phone and plate are atomic with the write.
// Payment status and receipt survive user-initiated edits: they belong to the
// admin confirmation flow, not the conversation.
func (r *PostgresRepository) Upsert(ctx context.Context, reg registration.Registration) (int64, error) {
	if reg.PayStatus == "" {
		reg.PayStatus = registration.PayPending
	}

	start := time.Now()
	rows, err := r.db.NamedQueryContext(ctx, upsertSQL, reg)
	if err != nil {
		if conflict := mapConflict(err); conflict != nil {
			logger.SVCRegs.Warn("upsert conflict",
				slog.String("event", "repo.upsert"),
				slog.String("status", "fail"),
				slog.Int64("user_id", reg.TgID),
				slog.String("field", string(conflict.Field)),
			)
			return 0, conflict
		}
		return 0, err
	}
	defer rows.Close()

	var id int64
	if rows.Next() {
		if err := rows.Scan(&id); err != nil {
			return 0, err
		}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	logger.SVCRegs.Debug("upsert ok",
		slog.String("event", "repo.upsert"),
		slog.String("status", "ok"),
		slog.Int64("user_id", reg.TgID),
		slog.Int64("reg_id", id),
		slog.Duration("duration", logger.Took(start)),
	)
	return id, nil
}

func mapConflict(err error) *ConflictError {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return nil
	}
	switch pqErr.Constraint {
	case phoneUniqueConstraint:
		return &ConflictError{Field: registration.FieldPhone}
	case plateUniqueConstraint:
		return &ConflictError{Field: registration.FieldPlate}
	}
	return nil
}

func (r *PostgresRepository) GetByTgID(ctx context.Context, tgID int64) (registration.Registration, error) {
	var reg registration.Registration
	err := r.db.GetContext(ctx, &reg,
		`SELECT * FROM registrations WHERE tg_id = $1`, tgID)
	if errors.Is(err, sql.ErrNoRows) {
		return reg, ErrNotFound
	}
	return reg, err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (registration.Registration, error) {
	var reg registration.Registration
	err := r.db.GetContext(ctx, &reg,
		`SELECT * FROM registrations WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return reg, ErrNotFound
	}
	return reg, err
}

// UpdatePaymentStatus is admin-only and has no uniqueness implications.
func (r *PostgresRepository) UpdatePaymentStatus(ctx context.Context, id int64, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE registrations SET pay_status = $1, updated_at = now() WHERE id = $2`,
		status, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// SetReceipt stores the payment receipt media reference and moves the
// registration back to pending confirmation.
func (r *PostgresRepository) SetReceipt(ctx context.Context, id int64, fileID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE registrations
            SET receipt_file_id = $1, pay_status = $2, updated_at = now()
          WHERE id = $3`,
		fileID, registration.PayPending, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns every registration in creation order for exports.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]registration.Registration, error) {
	var regs []registration.Registration
	err := r.db.SelectContext(ctx, &regs,
		`SELECT * FROM registrations ORDER BY id`)
	return regs, err
}

func (r *PostgresRepository) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := r.db.GetContext(ctx, &t.Registrations,
		`SELECT COUNT(*) FROM registrations`)
	if err != nil {
		return t, err
	}
	err = r.db.GetContext(ctx, &t.People,
		`SELECT COALESCE(SUM(people), 0) FROM registrations`)
	return t, err
}

// ListTgIDs returns every registered identity, used for broadcasts.
func (r *PostgresRepository) ListTgIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.SelectContext(ctx, &ids,
		`SELECT tg_id FROM registrations ORDER BY id`)
	return ids, err
}
