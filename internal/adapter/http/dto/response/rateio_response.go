package response

import "quadra_billing/internal/usecase"

type RateioShareResponse struct {
	ParticipantID string `json:"participant_id"`
	Amount        string `json:"amount"`
	Percent       string `json:"percent"`
}

// RateioResponse is returned for both accepted and rejected splits; rejected
// ones carry violations and no shares.
type RateioResponse struct {
	Mode       string                    `json:"mode"`
	Total      string                    `json:"total"`
	Valid      bool                      `json:"valid"`
	Violations []usecase.RateioViolation `json:"violations,omitempty"`
	Shares     []RateioShareResponse     `json:"shares,omitempty"`
	Remainder  string                    `json:"remainder"`
}

func FromRateioResult(r usecase.RateioResult) RateioResponse {
	out := RateioResponse{
		Mode:       string(r.Mode),
		Total:      r.Total.StringFixed(2),
		Valid:      r.Valid,
		Violations: r.Violations,
		Remainder:  r.Remainder.StringFixed(2),
	}
	for _, s := range r.Shares {
		out.Shares = append(out.Shares, RateioShareResponse{
			ParticipantID: s.ParticipantID,
			Amount:        s.Amount.StringFixed(2),
			Percent:       s.Percent.StringFixed(2),
		})
	}
	return out
}
