package interfaces

import (
	"context"
	"quadra_billing/internal/domain/entities"
)

// INotificationDispatcher triggers user-facing messages. Message content and
// channel selection belong to the messaging service.
type INotificationDispatcher interface {
	NotifyPaymentConfirmed(ctx context.Context, destination string, facts entities.PaymentConfirmation) error
	ScheduleReservationReminders(ctx context.Context, req entities.ReminderRequest) error
	NotifyOperator(ctx context.Context, alert entities.OperatorAlert) error
}
