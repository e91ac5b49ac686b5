package notifications

import (
	"context"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/infrastructure/logger"
	"quadra_billing/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

// LogNotifier only logs. It is used when no Pub/Sub project is configured.
type LogNotifier struct {
	region string
	log    *logrus.Entry
}

var _ interfaces.INotificationDispatcher = (*LogNotifier)(nil)

func NewLogNotifier(region string, log logrus.FieldLogger) *LogNotifier {
	return &LogNotifier{region: region, log: logger.Component(log, "notifications")}
}

func (n *LogNotifier) NotifyPaymentConfirmed(_ context.Context, destination string, facts entities.PaymentConfirmation) error {
	dest, err := NormalizeDestination(destination, n.region)
	if err != nil {
		return err
	}
	n.log.WithFields(logrus.Fields{
		"destination": dest,
		"payment_id":  facts.PaymentID,
		"amount":      facts.Amount.StringFixed(2),
	}).Info("payment confirmation notification")
	return nil
}

func (n *LogNotifier) ScheduleReservationReminders(_ context.Context, req entities.ReminderRequest) error {
	n.log.WithFields(logrus.Fields{
		"reservation_id": req.ReservationID,
		"court":          req.Court,
		"date":           req.Date,
		"time":           req.Time,
		"participants":   len(req.ParticipantNames),
	}).Info("reservation reminders requested")
	return nil
}

func (n *LogNotifier) NotifyOperator(_ context.Context, alert entities.OperatorAlert) error {
	n.log.WithFields(logrus.Fields{
		"kind":                alert.Kind,
		"provider_payment_id": alert.ProviderPaymentID,
		"external_reference":  alert.ExternalReference,
		"amount":              alert.Amount.StringFixed(2),
	}).Warn(alert.Message)
	return nil
}
