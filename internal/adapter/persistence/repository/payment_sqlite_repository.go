package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/usecase/interfaces"
)

const paymentColumns = `id, provider_payment_id, customer_id, reservation_id, amount, net_value,
	billing_method, status, metadata, due_date, paid_at, confirmed_at, created_at, updated_at`

// PaymentSQLiteRepository is the single-node store for Payment, used for
// local runs and tests.
type PaymentSQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

var _ interfaces.IPaymentRepository = (*PaymentSQLiteRepository)(nil)

func NewPaymentSQLiteRepository(db *sql.DB) *PaymentSQLiteRepository {
	return &PaymentSQLiteRepository{db: db, now: time.Now}
}

func (r *PaymentSQLiteRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	metadata, err := marshalMetadata(p.Metadata)
	if err != nil {
		return entities.Payment{}, err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO payments (`+paymentColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.ID, nullString(p.ProviderPaymentID), p.CustomerID, nullString(p.ReservationID),
		formatDecimal(p.Amount), formatDecimal(p.NetValue), string(p.BillingMethod), string(p.Status),
		metadata, p.DueDate, formatNullableTime(p.PaidAt), formatNullableTime(p.ConfirmedAt),
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		return entities.Payment{}, fmt.Errorf("insert payment: %w", err)
	}
	return p, nil
}

func (r *PaymentSQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}

func (r *PaymentSQLiteRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = ?`, id)
	return scanPayment(row)
}

func (r *PaymentSQLiteRepository) GetByProviderPaymentID(ctx context.Context, providerPaymentID string) (entities.Payment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE provider_payment_id = ?`, providerPaymentID)
	return scanPayment(row)
}

func (r *PaymentSQLiteRepository) FindLatestOpenByReservationID(ctx context.Context, reservationID string) (entities.Payment, error) {
	in, args := placeholders(openPaymentStatuses)
	row := r.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments
		WHERE reservation_id = ? AND status IN (`+in+`)
		ORDER BY created_at DESC LIMIT 1`,
		append([]any{reservationID}, args...)...,
	)
	return scanPayment(row)
}

func (r *PaymentSQLiteRepository) ListByReservationID(ctx context.Context, reservationID string) ([]entities.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE reservation_id = ? ORDER BY created_at ASC`, reservationID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []entities.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PaymentSQLiteRepository) SetProviderPaymentID(ctx context.Context, id, providerPaymentID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE payments SET provider_payment_id = ?, updated_at = ?
		WHERE id = ? AND (provider_payment_id IS NULL OR provider_payment_id = ?)`,
		providerPaymentID, formatTime(r.now()), id, providerPaymentID,
	)
	if err != nil {
		return fmt.Errorf("set provider payment id: %w", err)
	}
	return requireAffected(res)
}

// UpdateStatus applies the change and merges metadata inside one
// transaction guarded by the stored status.
func (r *PaymentSQLiteRepository) UpdateStatus(ctx context.Context, id string, upd entities.PaymentStatusUpdate) (entities.Payment, error) {
	if len(upd.AllowedFrom) == 0 {
		return entities.Payment{}, interfaces.ErrNotApplied
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return entities.Payment{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	current, err := scanPayment(tx.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = ?`, id))
	if err != nil {
		return entities.Payment{}, err
	}
	if current.ID == "" {
		return entities.Payment{}, interfaces.ErrNotApplied
	}

	metadata := current.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	for k, v := range upd.Metadata {
		metadata[k] = v
	}
	raw, err := marshalMetadata(metadata)
	if err != nil {
		return entities.Payment{}, err
	}

	sets := []string{"status = ?", "updated_at = ?", "metadata = ?"}
	args := []any{string(upd.Status), formatTime(r.now()), raw}
	if upd.PaidAt != nil {
		sets = append(sets, "paid_at = ?")
		args = append(args, formatTime(*upd.PaidAt))
	}
	if upd.ConfirmedAt != nil {
		sets = append(sets, "confirmed_at = ?")
		args = append(args, formatTime(*upd.ConfirmedAt))
	}
	if upd.NetValue != nil {
		sets = append(sets, "net_value = ?")
		args = append(args, formatDecimal(*upd.NetValue))
	}
	in, statusArgs := placeholders(upd.AllowedFrom)
	args = append(args, id)
	args = append(args, statusArgs...)

	res, err := tx.ExecContext(ctx,
		`UPDATE payments SET `+strings.Join(sets, ", ")+` WHERE id = ? AND status IN (`+in+`)`, args...)
	if err != nil {
		return entities.Payment{}, fmt.Errorf("update payment status: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return entities.Payment{}, err
	}

	updated, err := scanPayment(tx.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = ?`, id))
	if err != nil {
		return entities.Payment{}, err
	}
	if err := tx.Commit(); err != nil {
		return entities.Payment{}, fmt.Errorf("commit: %w", err)
	}
	return updated, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (entities.Payment, error) {
	var (
		p                         entities.Payment
		providerID, reservationID sql.NullString
		amount, netValue          string
		method, status, metadata  string
		paidAt, confirmedAt       sql.NullString
		createdAt, updatedAt      string
	)
	err := row.Scan(&p.ID, &providerID, &p.CustomerID, &reservationID, &amount, &netValue,
		&method, &status, &metadata, &p.DueDate, &paidAt, &confirmedAt, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Payment{}, nil
	}
	if err != nil {
		return entities.Payment{}, fmt.Errorf("scan payment: %w", err)
	}

	p.ProviderPaymentID = providerID.String
	p.ReservationID = reservationID.String
	p.Amount = parseDecimal(amount)
	p.NetValue = parseDecimal(netValue)
	p.BillingMethod = entities.BillingMethod(method)
	p.Status = entities.PaymentStatus(status)
	p.PaidAt = parseNullableTime(nullStringPtr(paidAt))
	p.ConfirmedAt = parseNullableTime(nullStringPtr(confirmedAt))
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	if err := json.Unmarshal([]byte(metadata), &p.Metadata); err != nil {
		return entities.Payment{}, fmt.Errorf("decode metadata: %w", err)
	}
	return p, nil
}

func marshalMetadata(m map[string]any) (string, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	return string(b), nil
}

func placeholders[S ~string](values []S) (string, []any) {
	marks := make([]string, len(values))
	args := make([]any, len(values))
	for i, v := range values {
		marks[i] = "?"
		args[i] = string(v)
	}
	return strings.Join(marks, ","), args
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return interfaces.ErrNotApplied
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
