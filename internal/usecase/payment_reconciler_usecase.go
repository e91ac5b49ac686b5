package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/infrastructure/logger"
	"quadra_billing/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

const (
	reconcileLockTTL       = 30 * time.Second
	overdueCancelReason    = "payment overdue"
	MetadataParticipantID  = "participant_id"
	MetadataPayerContact   = "payer_contact"
	MetadataProviderStatus = "provider_status"
	orphanAlertKind        = "orphan_payment"
	voidedAlertKind        = "settled_after_void"
)

// IPaymentReconciler applies provider payment events to local state.
//
// Every handler is safe to call repeatedly for the same event: status writes
// are conditional on the status graph, and side effects only follow a write
// that was actually applied.
type IPaymentReconciler interface {
	HandleCreated(ctx context.Context, p entities.ProviderPayment) error
	HandleAwaitingPayment(ctx context.Context, p entities.ProviderPayment) error
	HandleConfirmed(ctx context.Context, p entities.ProviderPayment) error
	HandleReceived(ctx context.Context, p entities.ProviderPayment) error
	HandleOverdue(ctx context.Context, p entities.ProviderPayment) error
	HandleRefunded(ctx context.Context, p entities.ProviderPayment) error
	HandleDeleted(ctx context.Context, p entities.ProviderPayment) error
}

type PaymentReconcilerUseCase struct {
	payments     interfaces.IPaymentRepository
	reservations interfaces.IReservationRepository
	notifier     interfaces.INotificationDispatcher
	tasks        interfaces.ITaskQueue
	locker       interfaces.ILocker
	orphanAlerts bool
	log          *logrus.Entry
	now          func() time.Time
}

var _ IPaymentReconciler = (*PaymentReconcilerUseCase)(nil)

type ReconcilerOptions struct {
	// Locker narrows concurrent processing of the same payment. Optional.
	Locker             interfaces.ILocker
	OrphanAlertEnabled bool
	Logger             logrus.FieldLogger
}

func NewPaymentReconcilerUseCase(payments interfaces.IPaymentRepository, reservations interfaces.IReservationRepository, notifier interfaces.INotificationDispatcher, tasks interfaces.ITaskQueue, opts ReconcilerOptions) *PaymentReconcilerUseCase {
	return &PaymentReconcilerUseCase{
		payments:     payments,
		reservations: reservations,
		notifier:     notifier,
		tasks:        tasks,
		locker:       opts.Locker,
		orphanAlerts: opts.OrphanAlertEnabled,
		log:          logger.Component(opts.Logger, "payment.reconciler"),
		now:          time.Now,
	}
}

// HandleCreated only links the provider id to the local record.
func (u *PaymentReconcilerUseCase) HandleCreated(ctx context.Context, p entities.ProviderPayment) error {
	_, _, err := u.locate(ctx, p, u.eventLog(entities.EventPaymentCreated, p))
	return err
}

// HandleAwaitingPayment keeps the payment pending. Statuses never move
// backwards, so a payment already past pending is left untouched.
func (u *PaymentReconcilerUseCase) HandleAwaitingPayment(ctx context.Context, p entities.ProviderPayment) error {
	log := u.eventLog(entities.EventPaymentAwaitingPayment, p)
	local, found, err := u.locate(ctx, p, log)
	if err != nil || !found {
		return err
	}
	if local.Status != entities.PaymentStatusPending {
		log.WithField("status", local.Status).Info("awaiting-payment ignored for payment past pending")
	}
	return nil
}

func (u *PaymentReconcilerUseCase) HandleConfirmed(ctx context.Context, p entities.ProviderPayment) error {
	return u.handleSuccess(ctx, entities.EventPaymentConfirmed, entities.PaymentStatusConfirmed, p)
}

func (u *PaymentReconcilerUseCase) HandleReceived(ctx context.Context, p entities.ProviderPayment) error {
	return u.handleSuccess(ctx, entities.EventPaymentReceived, entities.PaymentStatusReceived, p)
}

func (u *PaymentReconcilerUseCase) HandleOverdue(ctx context.Context, p entities.ProviderPayment) error {
	log := u.eventLog(entities.EventPaymentOverdue, p)
	release := u.lock(ctx, p, log)
	defer release()

	local, found, err := u.locate(ctx, p, log)
	if err != nil || !found {
		return err
	}
	updated, applied, err := u.transition(ctx, local, entities.NewPaymentStatusUpdate(entities.PaymentStatusOverdue), log)
	if err != nil || !applied {
		return err
	}
	if updated.ReservationID != "" {
		u.updateReservation(ctx, updated.ReservationID, entities.ReservationStatusCancelled, overdueCancelReason, log)
	}
	return nil
}

func (u *PaymentReconcilerUseCase) HandleRefunded(ctx context.Context, p entities.ProviderPayment) error {
	log := u.eventLog(entities.EventPaymentRefunded, p)
	release := u.lock(ctx, p, log)
	defer release()

	local, found, err := u.locate(ctx, p, log)
	if err != nil || !found {
		return err
	}
	updated, applied, err := u.transition(ctx, local, entities.NewPaymentStatusUpdate(entities.PaymentStatusRefunded), log)
	if err != nil || !applied {
		return err
	}
	u.updateParticipant(ctx, updated, entities.ParticipantPaymentPending, log)
	return nil
}

func (u *PaymentReconcilerUseCase) HandleDeleted(ctx context.Context, p entities.ProviderPayment) error {
	log := u.eventLog(entities.EventPaymentDeleted, p)
	release := u.lock(ctx, p, log)
	defer release()

	local, found, err := u.locate(ctx, p, log)
	if err != nil || !found {
		return err
	}
	_, _, err = u.transition(ctx, local, entities.NewPaymentStatusUpdate(entities.PaymentStatusCancelled), log)
	return err
}

// handleSuccess is the confirmed/received critical path.
func (u *PaymentReconcilerUseCase) handleSuccess(ctx context.Context, kind entities.WebhookEventKind, target entities.PaymentStatus, p entities.ProviderPayment) error {
	log := u.eventLog(kind, p)
	release := u.lock(ctx, p, log)
	defer release()

	local, found, err := u.locate(ctx, p, log)
	if err != nil {
		return err
	}
	if !found {
		u.reportOrphan(p, log)
		return nil
	}

	// First success: only from a status that is not already a success, so the
	// reservation and notification side effects happen once.
	upd := u.successUpdate(target, p)
	upd.AllowedFrom = nonSuccess(entities.AllowedPredecessors(target))
	updated, applied, err := u.transition(ctx, local, upd, log)
	if err != nil {
		return err
	}
	if !applied {
		if local.Status.IsTerminal() {
			u.reportGap(p, voidedAlertKind, fmt.Sprintf("provider settled payment %s already %s locally", local.ID, local.Status),
				log.WithFields(logrus.Fields{"payment_id": local.ID, "status": local.Status}))
			return nil
		}
		if target == entities.PaymentStatusReceived && local.Status != entities.PaymentStatusReceived {
			// confirmed -> received settles an already confirmed payment silently.
			upd.AllowedFrom = []entities.PaymentStatus{entities.PaymentStatusConfirmed}
			if _, err := u.payments.UpdateStatus(ctx, local.ID, upd); err != nil && !errors.Is(err, interfaces.ErrNotApplied) {
				return fmt.Errorf("update payment status: %w", err)
			}
		}
		return nil
	}

	reservationConfirmed := false
	if updated.ReservationID != "" {
		reservationConfirmed = u.updateReservation(ctx, updated.ReservationID, entities.ReservationStatusConfirmed, "", log)
	}
	if local.Status == entities.PaymentStatusOverdue && updated.ReservationID != "" && !reservationConfirmed {
		u.reportGap(p, voidedAlertKind, fmt.Sprintf("provider settled overdue payment %s after reservation %s was released", local.ID, updated.ReservationID),
			log.WithFields(logrus.Fields{"payment_id": local.ID, "reservation_id": updated.ReservationID}))
	}
	u.updateParticipant(ctx, updated, entities.ParticipantPaymentPaid, log)
	u.scheduleNotifications(updated, reservationConfirmed, log)
	return nil
}

func (u *PaymentReconcilerUseCase) successUpdate(target entities.PaymentStatus, p entities.ProviderPayment) entities.PaymentStatusUpdate {
	now := u.now().UTC()
	upd := entities.NewPaymentStatusUpdate(target)

	paidAt := parseProviderDate(p.PaymentDate)
	if paidAt == nil {
		paidAt = parseProviderDate(p.ConfirmedDate)
	}
	if paidAt == nil {
		paidAt = &now
	}
	confirmedAt := parseProviderDate(p.ConfirmedDate)
	if confirmedAt == nil {
		confirmedAt = &now
	}
	upd.PaidAt = paidAt
	upd.ConfirmedAt = confirmedAt
	if !p.NetValue.IsZero() {
		net := p.NetValue
		upd.NetValue = &net
	}

	upd.Metadata = map[string]any{MetadataProviderStatus: p.Status}
	if p.BillingType != "" {
		upd.Metadata["provider_billing_type"] = p.BillingType
	}
	if p.InvoiceURL != "" {
		upd.Metadata["invoice_url"] = p.InvoiceURL
	}
	return upd
}

// locate runs the primary lookup by provider id, then the fallbacks by
// external reference: the latest open payment of a reservation, then a local
// payment id (credit purchases). A fallback match gets the provider id
// backfilled.
func (u *PaymentReconcilerUseCase) locate(ctx context.Context, p entities.ProviderPayment, log *logrus.Entry) (entities.Payment, bool, error) {
	providerID := strings.TrimSpace(p.ID)
	if providerID != "" {
		local, err := u.payments.GetByProviderPaymentID(ctx, providerID)
		if err != nil {
			return entities.Payment{}, false, fmt.Errorf("lookup payment by provider id: %w", err)
		}
		if local.ID != "" {
			return local, true, nil
		}
	}

	ref := strings.TrimSpace(p.ExternalReference)
	if ref == "" {
		return entities.Payment{}, false, nil
	}

	local, err := u.payments.FindLatestOpenByReservationID(ctx, ref)
	if err != nil {
		return entities.Payment{}, false, fmt.Errorf("lookup open payment by reservation: %w", err)
	}
	if local.ID == "" {
		local, err = u.payments.GetByID(ctx, ref)
		if err != nil {
			return entities.Payment{}, false, fmt.Errorf("lookup payment by external reference: %w", err)
		}
		if local.ID != "" && !local.Status.IsOpen() {
			log.WithFields(logrus.Fields{"payment_id": local.ID, "status": local.Status}).Info("external reference points to a closed payment")
			return entities.Payment{}, false, nil
		}
	}
	if local.ID == "" {
		return entities.Payment{}, false, nil
	}

	if local.ProviderPaymentID != "" && local.ProviderPaymentID != providerID {
		log.WithFields(logrus.Fields{"payment_id": local.ID, "linked_provider_payment_id": local.ProviderPaymentID}).
			Warn("fallback candidate already linked to another provider payment")
		return entities.Payment{}, false, nil
	}
	if local.ProviderPaymentID == "" && providerID != "" {
		if err := u.payments.SetProviderPaymentID(ctx, local.ID, providerID); err != nil && !errors.Is(err, interfaces.ErrNotApplied) {
			return entities.Payment{}, false, fmt.Errorf("backfill provider payment id: %w", err)
		}
		local.ProviderPaymentID = providerID
		log.WithField("payment_id", local.ID).Info("provider payment id backfilled from external reference")
	}
	return local, true, nil
}

// transition performs the conditional status write. applied is false when
// the stored status did not allow it.
func (u *PaymentReconcilerUseCase) transition(ctx context.Context, local entities.Payment, upd entities.PaymentStatusUpdate, log *logrus.Entry) (entities.Payment, bool, error) {
	if !containsStatus(upd.AllowedFrom, local.Status) {
		log.WithFields(logrus.Fields{"payment_id": local.ID, "status": local.Status, "target": upd.Status}).Info("status transition not applicable")
		return local, false, nil
	}
	updated, err := u.payments.UpdateStatus(ctx, local.ID, upd)
	if errors.Is(err, interfaces.ErrNotApplied) {
		log.WithFields(logrus.Fields{"payment_id": local.ID, "target": upd.Status}).Info("status already advanced concurrently")
		return local, false, nil
	}
	if err != nil {
		return entities.Payment{}, false, fmt.Errorf("update payment status: %w", err)
	}
	log.WithFields(logrus.Fields{"payment_id": updated.ID, "from": local.Status, "to": updated.Status}).Info("payment status updated")
	return updated, true, nil
}

// updateReservation is a derived side effect: failures are logged only.
func (u *PaymentReconcilerUseCase) updateReservation(ctx context.Context, reservationID string, to entities.ReservationStatus, reason string, log *logrus.Entry) bool {
	log = log.WithFields(logrus.Fields{"reservation_id": reservationID, "reservation_status": to})
	err := u.reservations.UpdateStatus(ctx, reservationID, to, []entities.ReservationStatus{entities.ReservationStatusPending}, reason)
	switch {
	case errors.Is(err, interfaces.ErrNotApplied):
		log.Info("reservation not pending; left unchanged")
		return false
	case err != nil:
		log.WithError(err).Error("reservation update failed")
		return false
	}
	log.Info("reservation updated")
	return true
}

func (u *PaymentReconcilerUseCase) updateParticipant(ctx context.Context, p entities.Payment, status entities.ParticipantPaymentStatus, log *logrus.Entry) {
	participantID := p.MetadataString(MetadataParticipantID)
	if participantID == "" || p.ReservationID == "" {
		return
	}
	if err := u.reservations.UpdateParticipantPaymentStatus(ctx, p.ReservationID, participantID, status); err != nil {
		log.WithError(err).WithField("participant_id", participantID).Error("participant payment status update failed")
	}
}

// scheduleNotifications submits the confirmation work to the task queue. It
// never blocks and never fails the caller.
func (u *PaymentReconcilerUseCase) scheduleNotifications(p entities.Payment, reservationConfirmed bool, log *logrus.Entry) {
	if u.notifier == nil || u.tasks == nil {
		return
	}
	err := u.tasks.Submit("payment-confirmed:"+p.ID, func(ctx context.Context) error {
		return u.notifyConfirmed(ctx, p, reservationConfirmed)
	})
	if err != nil {
		log.WithError(err).Warn("payment confirmation notification dropped")
	}
}

func (u *PaymentReconcilerUseCase) notifyConfirmed(ctx context.Context, p entities.Payment, reservationConfirmed bool) error {
	destination := p.MetadataString(MetadataPayerContact)
	facts := entities.PaymentConfirmation{
		PaymentID:         p.ID,
		ProviderPaymentID: p.ProviderPaymentID,
		ReservationID:     p.ReservationID,
		Amount:            p.Amount,
		BillingMethod:     p.BillingMethod,
	}
	if p.PaidAt != nil {
		facts.PaidAt = *p.PaidAt
	}

	var (
		res          entities.Reservation
		participants []entities.Participant
	)
	if p.ReservationID != "" {
		var err error
		if res, err = u.reservations.GetByID(ctx, p.ReservationID); err != nil {
			return fmt.Errorf("load reservation for notification: %w", err)
		}
		if participants, err = u.reservations.ListParticipants(ctx, p.ReservationID); err != nil {
			return fmt.Errorf("load participants for notification: %w", err)
		}
	}
	if pid := p.MetadataString(MetadataParticipantID); pid != "" {
		for _, part := range participants {
			if part.ID == pid {
				facts.ParticipantName = part.Name
				if destination == "" {
					destination = part.Contact
				}
			}
		}
	}
	if destination == "" {
		destination = res.Contact
	}

	var errs []error
	if destination != "" {
		if err := u.notifier.NotifyPaymentConfirmed(ctx, destination, facts); err != nil {
			errs = append(errs, fmt.Errorf("notify payment confirmed: %w", err))
		}
	}
	if reservationConfirmed && res.ID != "" {
		names := make([]string, 0, len(participants))
		for _, part := range participants {
			names = append(names, part.Name)
		}
		req := entities.ReminderRequest{
			ReservationID:    res.ID,
			Contact:          res.Contact,
			Court:            res.CourtName,
			Date:             res.Date,
			Time:             res.StartTime,
			ParticipantNames: names,
		}
		if err := u.notifier.ScheduleReservationReminders(ctx, req); err != nil {
			errs = append(errs, fmt.Errorf("schedule reminders: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (u *PaymentReconcilerUseCase) reportOrphan(p entities.ProviderPayment, log *logrus.Entry) {
	u.reportGap(p, orphanAlertKind, "provider confirmed a payment with no local record", log)
}

// reportGap logs money the provider took that local state cannot absorb, and
// raises an operator alert when enabled.
func (u *PaymentReconcilerUseCase) reportGap(p entities.ProviderPayment, kind, message string, log *logrus.Entry) {
	log.WithFields(logrus.Fields{
		"gap_kind":     kind,
		"amount":       p.Value.StringFixed(2),
		"billing_type": p.BillingType,
	}).Error("reconciliation gap: " + message)

	if !u.orphanAlerts || u.notifier == nil || u.tasks == nil {
		return
	}
	alert := entities.OperatorAlert{
		Kind:              kind,
		ProviderPaymentID: p.ID,
		ExternalReference: p.ExternalReference,
		Amount:            p.Value,
		Message:           message,
	}
	if err := u.tasks.Submit("operator-alert:"+kind+":"+p.ID, func(ctx context.Context) error {
		return u.notifier.NotifyOperator(ctx, alert)
	}); err != nil {
		log.WithError(err).Warn("operator alert dropped")
	}
}

// lock takes a best-effort per-payment lock. Correctness never depends on it.
func (u *PaymentReconcilerUseCase) lock(ctx context.Context, p entities.ProviderPayment, log *logrus.Entry) func() {
	noop := func() {}
	if u.locker == nil || p.ID == "" {
		return noop
	}
	release, err := u.locker.Obtain(ctx, "lock:payment:"+p.ID, reconcileLockTTL)
	if err != nil {
		if !errors.Is(err, interfaces.ErrLockNotObtained) {
			log.WithError(err).Warn("payment lock unavailable")
		} else {
			log.Info("payment lock held elsewhere; proceeding")
		}
		return noop
	}
	if release == nil {
		return noop
	}
	return release
}

func (u *PaymentReconcilerUseCase) eventLog(kind entities.WebhookEventKind, p entities.ProviderPayment) *logrus.Entry {
	return u.log.WithFields(logrus.Fields{
		"event":               kind,
		"provider_payment_id": p.ID,
		"external_reference":  p.ExternalReference,
	})
}

func nonSuccess(in []entities.PaymentStatus) []entities.PaymentStatus {
	out := make([]entities.PaymentStatus, 0, len(in))
	for _, s := range in {
		if !s.IsSuccess() {
			out = append(out, s)
		}
	}
	return out
}

func containsStatus(in []entities.PaymentStatus, s entities.PaymentStatus) bool {
	for _, v := range in {
		if v == s {
			return true
		}
	}
	return false
}

var providerDateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"}

func parseProviderDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range providerDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
