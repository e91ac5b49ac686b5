package usecase

import (
	"errors"
	"fmt"

	"quadra_billing/internal/domain/entities"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Violation codes reported by the rateio engine.
const (
	ViolationInvalidMode          = "invalid_mode"
	ViolationInvalidInput         = "invalid_input"
	ViolationInvalidTotal         = "invalid_total"
	ViolationNoParticipants       = "no_participants"
	ViolationDuplicateParticipant = "duplicate_participant"
	ViolationMissingValue         = "missing_value"
	ViolationNonPositiveValue     = "non_positive_value"
	ViolationPercentSum           = "percent_sum"
	ViolationFixedSumExceedsTotal = "fixed_sum_exceeds_total"
)

var (
	hundred          = decimal.NewFromInt(100)
	percentTolerance = decimal.RequireFromString("0.01")
)

// RateioParticipantInput carries either a fixed value (valor) or a
// percentage (percentual), depending on the mode.
type RateioParticipantInput struct {
	ID         string           `json:"id" validate:"required"`
	Valor      *decimal.Decimal `json:"valor,omitempty"`
	Percentual *decimal.Decimal `json:"percentual,omitempty"`
}

type RateioInput struct {
	Mode         entities.RateioMode      `json:"mode"`
	Participants []RateioParticipantInput `json:"participants" validate:"dive"`
}

type RateioViolation struct {
	Code          string `json:"code"`
	ParticipantID string `json:"participant_id,omitempty"`
	Message       string `json:"message"`
}

type RateioShare struct {
	ParticipantID string          `json:"participant_id"`
	Amount        decimal.Decimal `json:"amount"`
	Percent       decimal.Decimal `json:"percent"`
}

// RateioResult is the outcome of a computation. Shares are filled only when
// Valid; Remainder is total minus the sum of shares (negative when fixed
// values exceed the total).
type RateioResult struct {
	Mode       entities.RateioMode `json:"mode"`
	Total      decimal.Decimal     `json:"total"`
	Valid      bool                `json:"valid"`
	Violations []RateioViolation   `json:"violations,omitempty"`
	Shares     []RateioShare       `json:"shares,omitempty"`
	Remainder  decimal.Decimal     `json:"remainder"`
}

// Config converts an accepted result into the persisted configuration.
func (r RateioResult) Config() entities.RateioConfig {
	cfg := entities.RateioConfig{Mode: r.Mode, Shares: make([]entities.RateioShare, 0, len(r.Shares))}
	for _, s := range r.Shares {
		share := entities.RateioShare{ParticipantID: s.ParticipantID}
		amount, percent := s.Amount, s.Percent
		switch r.Mode {
		case entities.RateioModePercent:
			share.Percent = &percent
		default:
			share.Value = &amount
		}
		cfg.Shares = append(cfg.Shares, share)
	}
	return cfg
}

// RateioEngine is pure: it never touches storage.
type RateioEngine struct {
	validate *validator.Validate
}

func NewRateioEngine() *RateioEngine {
	return &RateioEngine{validate: validator.New()}
}

// Compute validates in against total and, when valid, returns every
// participant's owed amount. Equal shares are truncated to cents and the
// rounding remainder is reported, not redistributed.
func (e *RateioEngine) Compute(total decimal.Decimal, in RateioInput) RateioResult {
	res := RateioResult{Mode: in.Mode, Total: total, Remainder: total}

	if !in.Mode.Valid() {
		res.Violations = append(res.Violations, RateioViolation{Code: ViolationInvalidMode, Message: fmt.Sprintf("unknown rateio mode %q", in.Mode)})
	}
	if !total.IsPositive() {
		res.Violations = append(res.Violations, RateioViolation{Code: ViolationInvalidTotal, Message: "reservation total must be positive"})
	}
	if len(in.Participants) == 0 {
		res.Violations = append(res.Violations, RateioViolation{Code: ViolationNoParticipants, Message: "at least one participant is required"})
	}
	res.Violations = append(res.Violations, e.structViolations(in)...)
	res.Violations = append(res.Violations, duplicateViolations(in.Participants)...)
	if len(res.Violations) > 0 {
		return res
	}

	switch in.Mode {
	case entities.RateioModeEqual:
		e.computeEqual(&res, in)
	case entities.RateioModeFixed:
		e.computeFixed(&res, in)
	case entities.RateioModePercent:
		e.computePercent(&res, in)
	}
	res.Valid = len(res.Violations) == 0
	if !res.Valid {
		res.Shares = nil
	}
	return res
}

// SwitchMode discards the values of the previous mode. Equal recomputes at
// once; fixed and percent come back with cleared fields awaiting entry.
func (e *RateioEngine) SwitchMode(total decimal.Decimal, in RateioInput, mode entities.RateioMode) (RateioInput, RateioResult) {
	out := RateioInput{Mode: mode, Participants: make([]RateioParticipantInput, len(in.Participants))}
	for i, p := range in.Participants {
		out.Participants[i] = RateioParticipantInput{ID: p.ID}
	}
	return out, e.Compute(total, out)
}

func (e *RateioEngine) computeEqual(res *RateioResult, in RateioInput) {
	n := decimal.NewFromInt(int64(len(in.Participants)))
	amount := res.Total.Div(n).Truncate(2)
	percent := hundred.Div(n).Truncate(2)
	if !amount.IsPositive() {
		res.Violations = append(res.Violations, RateioViolation{
			Code: ViolationNonPositiveValue,
			Message: fmt.Sprintf("total %s split %d ways leaves each participant owing %s",
				res.Total.StringFixed(2), len(in.Participants), amount.StringFixed(2)),
		})
		return
	}

	sum := decimal.Zero
	for _, p := range in.Participants {
		res.Shares = append(res.Shares, RateioShare{ParticipantID: p.ID, Amount: amount, Percent: percent})
		sum = sum.Add(amount)
	}
	res.Remainder = res.Total.Sub(sum)
}

func (e *RateioEngine) computeFixed(res *RateioResult, in RateioInput) {
	sum := decimal.Zero
	for _, p := range in.Participants {
		if v, ok := positiveValue(res, p.ID, p.Valor, "valor"); ok {
			amount := v.Round(2)
			if !positiveShare(res, p.ID, amount) {
				continue
			}
			sum = sum.Add(amount)
			res.Shares = append(res.Shares, RateioShare{
				ParticipantID: p.ID,
				Amount:        amount,
				Percent:       amount.Mul(hundred).Div(res.Total).Round(2),
			})
		}
	}
	res.Remainder = res.Total.Sub(sum)
	if len(res.Violations) == 0 && res.Remainder.IsNegative() {
		res.Violations = append(res.Violations, RateioViolation{
			Code: ViolationFixedSumExceedsTotal,
			Message: fmt.Sprintf("fixed amounts sum to %s, exceeding the total %s by %s (remainder %s)",
				sum.StringFixed(2), res.Total.StringFixed(2), res.Remainder.Abs().StringFixed(2), res.Remainder.StringFixed(2)),
		})
	}
}

func (e *RateioEngine) computePercent(res *RateioResult, in RateioInput) {
	sumPct := decimal.Zero
	sumAmount := decimal.Zero
	for _, p := range in.Participants {
		if v, ok := positiveValue(res, p.ID, p.Percentual, "percentual"); ok {
			amount := res.Total.Mul(v).Div(hundred).Round(2)
			if !positiveShare(res, p.ID, amount) {
				continue
			}
			sumPct = sumPct.Add(v)
			sumAmount = sumAmount.Add(amount)
			res.Shares = append(res.Shares, RateioShare{ParticipantID: p.ID, Amount: amount, Percent: v})
		}
	}
	if len(res.Violations) > 0 {
		return
	}
	res.Remainder = res.Total.Sub(sumAmount)

	diff := sumPct.Sub(hundred)
	if diff.Abs().GreaterThan(percentTolerance) {
		direction := "short of"
		if diff.IsPositive() {
			direction = "over"
		}
		res.Violations = append(res.Violations, RateioViolation{
			Code:    ViolationPercentSum,
			Message: fmt.Sprintf("percentages sum to %s, %s points %s 100", sumPct.StringFixed(2), diff.Abs().StringFixed(2), direction),
		})
	}
}

func positiveValue(res *RateioResult, participantID string, v *decimal.Decimal, field string) (decimal.Decimal, bool) {
	if v == nil {
		res.Violations = append(res.Violations, RateioViolation{
			Code: ViolationMissingValue, ParticipantID: participantID,
			Message: fmt.Sprintf("%s is required in %s mode", field, res.Mode),
		})
		return decimal.Zero, false
	}
	if !v.IsPositive() {
		res.Violations = append(res.Violations, RateioViolation{
			Code: ViolationNonPositiveValue, ParticipantID: participantID,
			Message: fmt.Sprintf("%s must be greater than zero, got %s", field, v.String()),
		})
		return decimal.Zero, false
	}
	return *v, true
}

// positiveShare rejects owed amounts that round down to zero cents.
func positiveShare(res *RateioResult, participantID string, amount decimal.Decimal) bool {
	if amount.IsPositive() {
		return true
	}
	res.Violations = append(res.Violations, RateioViolation{
		Code: ViolationNonPositiveValue, ParticipantID: participantID,
		Message: fmt.Sprintf("owed amount rounds to %s", amount.StringFixed(2)),
	})
	return false
}

func (e *RateioEngine) structViolations(in RateioInput) []RateioViolation {
	err := e.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []RateioViolation{{Code: ViolationInvalidInput, Message: err.Error()}}
	}
	out := make([]RateioViolation, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, RateioViolation{
			Code:    ViolationInvalidInput,
			Message: fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()),
		})
	}
	return out
}

func duplicateViolations(ps []RateioParticipantInput) []RateioViolation {
	seen := make(map[string]bool, len(ps))
	var out []RateioViolation
	for _, p := range ps {
		if p.ID == "" {
			continue
		}
		if seen[p.ID] {
			out = append(out, RateioViolation{Code: ViolationDuplicateParticipant, ParticipantID: p.ID, Message: "participant listed more than once"})
		}
		seen[p.ID] = true
	}
	return out
}
