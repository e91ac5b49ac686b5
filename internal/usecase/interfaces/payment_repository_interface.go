package interfaces

import (
	"context"
	"errors"
	"quadra_billing/internal/domain/entities"
)

// ErrNotApplied is returned by conditional writes whose condition did not hold.
var ErrNotApplied = errors.New("conditional write not applied")

// IPaymentRepository abstracts persistence for Payment.
//
// Lookups return the zero value (empty ID) when nothing matches.
// UpdateStatus is an atomic conditional write: it returns ErrNotApplied
// when the stored status is not one of update.AllowedFrom.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	GetByProviderPaymentID(ctx context.Context, providerPaymentID string) (entities.Payment, error)
	FindLatestOpenByReservationID(ctx context.Context, reservationID string) (entities.Payment, error)
	ListByReservationID(ctx context.Context, reservationID string) ([]entities.Payment, error)
	SetProviderPaymentID(ctx context.Context, id string, providerPaymentID string) error
	UpdateStatus(ctx context.Context, id string, update entities.PaymentStatusUpdate) (entities.Payment, error)
}
