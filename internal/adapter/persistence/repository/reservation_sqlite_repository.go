package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/usecase/interfaces"
)

const reservationColumns = `id, status, cancellation_reason, total_value, rateio, court_name,
	date, start_time, contact, created_at, updated_at`

type ReservationSQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

var _ interfaces.IReservationRepository = (*ReservationSQLiteRepository)(nil)

func NewReservationSQLiteRepository(db *sql.DB) *ReservationSQLiteRepository {
	return &ReservationSQLiteRepository{db: db, now: time.Now}
}

func (r *ReservationSQLiteRepository) Create(ctx context.Context, res entities.Reservation, participants []entities.Participant) (entities.Reservation, error) {
	rateio, err := marshalRateio(res.Rateio)
	if err != nil {
		return entities.Reservation{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return entities.Reservation{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO reservations (`+reservationColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		res.ID, string(res.Status), res.CancellationReason, formatDecimal(res.TotalValue), rateio,
		res.CourtName, res.Date, res.StartTime, res.Contact, formatTime(res.CreatedAt), formatTime(res.UpdatedAt),
	)
	if err != nil {
		return entities.Reservation{}, fmt.Errorf("insert reservation: %w", err)
	}

	for i, p := range participants {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO reservation_participants
			(reservation_id, id, name, contact, payment_status, owed_amount, owed_percent, position)
			VALUES (?,?,?,?,?,?,?,?)`,
			res.ID, p.ID, p.Name, p.Contact, string(p.PaymentStatus),
			formatNullableDecimal(p.OwedAmount), formatNullableDecimal(p.OwedPercent), i,
		)
		if err != nil {
			return entities.Reservation{}, fmt.Errorf("insert participant %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return entities.Reservation{}, fmt.Errorf("commit: %w", err)
	}
	return res, nil
}

func (r *ReservationSQLiteRepository) GetByID(ctx context.Context, id string) (entities.Reservation, error) {
	var (
		res                  entities.Reservation
		status, total        string
		rateio               sql.NullString
		createdAt, updatedAt string
	)
	err := r.db.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id).Scan(
		&res.ID, &status, &res.CancellationReason, &total, &rateio, &res.CourtName,
		&res.Date, &res.StartTime, &res.Contact, &createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Reservation{}, nil
	}
	if err != nil {
		return entities.Reservation{}, fmt.Errorf("get reservation: %w", err)
	}

	res.Status = entities.ReservationStatus(status)
	res.TotalValue = parseDecimal(total)
	res.CreatedAt = parseTime(createdAt)
	res.UpdatedAt = parseTime(updatedAt)
	if rateio.Valid && rateio.String != "" {
		var cfg entities.RateioConfig
		if err := json.Unmarshal([]byte(rateio.String), &cfg); err != nil {
			return entities.Reservation{}, fmt.Errorf("decode rateio: %w", err)
		}
		res.Rateio = &cfg
	}
	return res, nil
}

func (r *ReservationSQLiteRepository) UpdateStatus(ctx context.Context, id string, to entities.ReservationStatus, from []entities.ReservationStatus, reason string) error {
	if len(from) == 0 {
		return interfaces.ErrNotApplied
	}
	in, args := placeholders(from)
	query := `UPDATE reservations SET status = ?, updated_at = ?`
	head := []any{string(to), formatTime(r.now())}
	if reason != "" {
		query += `, cancellation_reason = ?`
		head = append(head, reason)
	}
	query += ` WHERE id = ? AND status IN (` + in + `)`
	head = append(head, id)

	res, err := r.db.ExecContext(ctx, query, append(head, args...)...)
	if err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}
	return requireAffected(res)
}

func (r *ReservationSQLiteRepository) ListParticipants(ctx context.Context, reservationID string) ([]entities.Participant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, reservation_id, name, contact, payment_status, owed_amount, owed_percent
		FROM reservation_participants WHERE reservation_id = ? ORDER BY position ASC`, reservationID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	out := []entities.Participant{}
	for rows.Next() {
		var (
			p         entities.Participant
			status    string
			owed, pct sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.ReservationID, &p.Name, &p.Contact, &status, &owed, &pct); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		p.PaymentStatus = entities.ParticipantPaymentStatus(status)
		p.OwedAmount = parseNullableDecimal(nullStringPtr(owed))
		p.OwedPercent = parseNullableDecimal(nullStringPtr(pct))
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ReservationSQLiteRepository) UpdateParticipantPaymentStatus(ctx context.Context, reservationID, participantID string, status entities.ParticipantPaymentStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reservation_participants SET payment_status = ? WHERE reservation_id = ? AND id = ?`,
		string(status), reservationID, participantID)
	if err != nil {
		return fmt.Errorf("update participant payment status: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return fmt.Errorf("participant %s not found in reservation %s", participantID, reservationID)
	}
	return nil
}

func (r *ReservationSQLiteRepository) SaveRateio(ctx context.Context, reservationID string, cfg entities.RateioConfig, participants []entities.Participant) error {
	raw, err := marshalRateio(&cfg)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE reservations SET rateio = ?, updated_at = ? WHERE id = ? AND status <> ?`,
		raw, formatTime(r.now()), reservationID, string(entities.ReservationStatusCancelled))
	if err != nil {
		return fmt.Errorf("save rateio: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}

	for _, p := range participants {
		res, err := tx.ExecContext(ctx,
			`UPDATE reservation_participants SET owed_amount = ?, owed_percent = ? WHERE reservation_id = ? AND id = ?`,
			formatNullableDecimal(p.OwedAmount), formatNullableDecimal(p.OwedPercent), reservationID, p.ID)
		if err != nil {
			return fmt.Errorf("save participant %s: %w", p.ID, err)
		}
		if err := requireAffected(res); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func marshalRateio(cfg *entities.RateioConfig) (sql.NullString, error) {
	if cfg == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode rateio: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}
