package usecase

import (
	"strings"
	"testing"

	"quadra_billing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func hasViolation(res RateioResult, code string) bool {
	for _, v := range res.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

func TestRateioEngine_Equal(t *testing.T) {
	e := NewRateioEngine()

	t.Run("splits evenly", func(t *testing.T) {
		res := e.Compute(decimal.NewFromInt(300), RateioInput{
			Mode:         entities.RateioModeEqual,
			Participants: []RateioParticipantInput{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		})
		if !res.Valid {
			t.Fatalf("expected valid result, got %+v", res.Violations)
		}
		if len(res.Shares) != 3 {
			t.Fatalf("expected 3 shares, got %d", len(res.Shares))
		}
		for _, s := range res.Shares {
			if !s.Amount.Equal(decimal.NewFromInt(100)) {
				t.Fatalf("expected 100.00, got %s", s.Amount)
			}
		}
		if !res.Remainder.IsZero() {
			t.Fatalf("expected zero remainder, got %s", res.Remainder)
		}
	})

	t.Run("reports rounding remainder", func(t *testing.T) {
		res := e.Compute(decimal.NewFromInt(100), RateioInput{
			Mode:         entities.RateioModeEqual,
			Participants: []RateioParticipantInput{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		})
		if !res.Valid {
			t.Fatalf("expected valid result, got %+v", res.Violations)
		}
		if !res.Shares[0].Amount.Equal(decimal.RequireFromString("33.33")) {
			t.Fatalf("expected 33.33, got %s", res.Shares[0].Amount)
		}
		if !res.Remainder.Equal(decimal.RequireFromString("0.01")) {
			t.Fatalf("expected remainder 0.01, got %s", res.Remainder)
		}
	})

	t.Run("ignores stale values", func(t *testing.T) {
		res := e.Compute(decimal.NewFromInt(200), RateioInput{
			Mode:         entities.RateioModeEqual,
			Participants: []RateioParticipantInput{{ID: "a", Valor: dec("150")}, {ID: "b"}},
		})
		if !res.Valid || !res.Shares[0].Amount.Equal(decimal.NewFromInt(100)) {
			t.Fatalf("expected equal split, got %+v", res)
		}
	})
}

func TestRateioEngine_Percent(t *testing.T) {
	e := NewRateioEngine()
	total := decimal.NewFromInt(300)

	t.Run("accepts sum of 100", func(t *testing.T) {
		res := e.Compute(total, RateioInput{
			Mode: entities.RateioModePercent,
			Participants: []RateioParticipantInput{
				{ID: "a", Percentual: dec("40")},
				{ID: "b", Percentual: dec("35")},
				{ID: "c", Percentual: dec("25")},
			},
		})
		if !res.Valid {
			t.Fatalf("expected valid result, got %+v", res.Violations)
		}
		want := []string{"120", "105", "75"}
		for i, s := range res.Shares {
			if !s.Amount.Equal(decimal.RequireFromString(want[i])) {
				t.Fatalf("share %d: expected %s, got %s", i, want[i], s.Amount)
			}
		}
	})

	t.Run("rejects sum below 100", func(t *testing.T) {
		res := e.Compute(total, RateioInput{
			Mode: entities.RateioModePercent,
			Participants: []RateioParticipantInput{
				{ID: "a", Percentual: dec("40")},
				{ID: "b", Percentual: dec("35")},
				{ID: "c", Percentual: dec("20")},
			},
		})
		if res.Valid {
			t.Fatalf("expected invalid result")
		}
		if !hasViolation(res, ViolationPercentSum) {
			t.Fatalf("expected percent_sum violation, got %+v", res.Violations)
		}
		if !strings.Contains(res.Violations[0].Message, "5.00 points short of 100") {
			t.Fatalf("unexpected message %q", res.Violations[0].Message)
		}
		if res.Shares != nil {
			t.Fatalf("expected no shares on invalid result")
		}
	})

	t.Run("rejects sum above 100", func(t *testing.T) {
		res := e.Compute(total, RateioInput{
			Mode: entities.RateioModePercent,
			Participants: []RateioParticipantInput{
				{ID: "a", Percentual: dec("60")},
				{ID: "b", Percentual: dec("50")},
			},
		})
		if res.Valid || !strings.Contains(res.Violations[0].Message, "10.00 points over 100") {
			t.Fatalf("unexpected result %+v", res)
		}
	})

	t.Run("tolerates a cent of drift", func(t *testing.T) {
		res := e.Compute(total, RateioInput{
			Mode: entities.RateioModePercent,
			Participants: []RateioParticipantInput{
				{ID: "a", Percentual: dec("33.33")},
				{ID: "b", Percentual: dec("33.33")},
				{ID: "c", Percentual: dec("33.33")},
			},
		})
		if !res.Valid {
			t.Fatalf("expected 99.99 to be accepted, got %+v", res.Violations)
		}
		if !res.Remainder.Equal(decimal.RequireFromString("0.03")) {
			t.Fatalf("expected remainder 0.03, got %s", res.Remainder)
		}
	})

	t.Run("rejects missing and zero percentages", func(t *testing.T) {
		res := e.Compute(total, RateioInput{
			Mode: entities.RateioModePercent,
			Participants: []RateioParticipantInput{
				{ID: "a", Percentual: dec("100")},
				{ID: "b"},
				{ID: "c", Percentual: dec("0")},
			},
		})
		if res.Valid {
			t.Fatalf("expected invalid result")
		}
		if !hasViolation(res, ViolationMissingValue) || !hasViolation(res, ViolationNonPositiveValue) {
			t.Fatalf("unexpected violations %+v", res.Violations)
		}
	})
}

func TestRateioEngine_Fixed(t *testing.T) {
	e := NewRateioEngine()
	total := decimal.NewFromInt(300)

	t.Run("rejects sum above total", func(t *testing.T) {
		res := e.Compute(total, RateioInput{
			Mode: entities.RateioModeFixed,
			Participants: []RateioParticipantInput{
				{ID: "a", Valor: dec("150")},
				{ID: "b", Valor: dec("100")},
				{ID: "c", Valor: dec("60")},
			},
		})
		if res.Valid {
			t.Fatalf("expected invalid result")
		}
		if !hasViolation(res, ViolationFixedSumExceedsTotal) {
			t.Fatalf("expected fixed_sum_exceeds_total, got %+v", res.Violations)
		}
		if !res.Remainder.Equal(decimal.NewFromInt(-10)) {
			t.Fatalf("expected remainder -10, got %s", res.Remainder)
		}
		if !strings.Contains(res.Violations[0].Message, "exceeding the total 300.00 by 10.00") {
			t.Fatalf("unexpected message %q", res.Violations[0].Message)
		}
	})

	t.Run("accepts sum equal to total", func(t *testing.T) {
		res := e.Compute(total, RateioInput{
			Mode: entities.RateioModeFixed,
			Participants: []RateioParticipantInput{
				{ID: "a", Valor: dec("150")},
				{ID: "b", Valor: dec("150")},
			},
		})
		if !res.Valid || !res.Remainder.IsZero() {
			t.Fatalf("unexpected result %+v", res)
		}
		if !res.Shares[0].Percent.Equal(decimal.NewFromInt(50)) {
			t.Fatalf("expected 50%%, got %s", res.Shares[0].Percent)
		}
	})

	t.Run("accepts sum below total with remainder", func(t *testing.T) {
		res := e.Compute(total, RateioInput{
			Mode:         entities.RateioModeFixed,
			Participants: []RateioParticipantInput{{ID: "a", Valor: dec("100")}},
		})
		if !res.Valid || !res.Remainder.Equal(decimal.NewFromInt(200)) {
			t.Fatalf("unexpected result %+v", res)
		}
	})

	t.Run("rejects negative value", func(t *testing.T) {
		res := e.Compute(total, RateioInput{
			Mode:         entities.RateioModeFixed,
			Participants: []RateioParticipantInput{{ID: "a", Valor: dec("-5")}},
		})
		if res.Valid || !hasViolation(res, ViolationNonPositiveValue) {
			t.Fatalf("unexpected result %+v", res)
		}
		if res.Violations[0].ParticipantID != "a" {
			t.Fatalf("expected violation on participant a, got %q", res.Violations[0].ParticipantID)
		}
	})
}

func TestRateioEngine_InputErrors(t *testing.T) {
	e := NewRateioEngine()
	total := decimal.NewFromInt(100)

	cases := []struct {
		name string
		in   RateioInput
		tot  decimal.Decimal
		code string
	}{
		{"unknown mode", RateioInput{Mode: "weighted", Participants: []RateioParticipantInput{{ID: "a"}}}, total, ViolationInvalidMode},
		{"no participants", RateioInput{Mode: entities.RateioModeEqual}, total, ViolationNoParticipants},
		{"zero total", RateioInput{Mode: entities.RateioModeEqual, Participants: []RateioParticipantInput{{ID: "a"}}}, decimal.Zero, ViolationInvalidTotal},
		{"blank id", RateioInput{Mode: entities.RateioModeEqual, Participants: []RateioParticipantInput{{ID: ""}}}, total, ViolationInvalidInput},
		{"duplicate id", RateioInput{Mode: entities.RateioModeEqual, Participants: []RateioParticipantInput{{ID: "a"}, {ID: "a"}}}, total, ViolationDuplicateParticipant},
		{"equal share below one cent", RateioInput{Mode: entities.RateioModeEqual, Participants: []RateioParticipantInput{{ID: "a"}, {ID: "b"}, {ID: "c"}}}, decimal.RequireFromString("0.02"), ViolationNonPositiveValue},
		{"fixed value rounds to zero", RateioInput{Mode: entities.RateioModeFixed, Participants: []RateioParticipantInput{{ID: "a", Valor: dec("0.004")}, {ID: "b", Valor: dec("50")}}}, total, ViolationNonPositiveValue},
		{"percent amount rounds to zero", RateioInput{Mode: entities.RateioModePercent, Participants: []RateioParticipantInput{{ID: "a", Percentual: dec("0.1")}, {ID: "b", Percentual: dec("99.9")}}}, decimal.NewFromInt(1), ViolationNonPositiveValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := e.Compute(tc.tot, tc.in)
			if res.Valid {
				t.Fatalf("expected invalid result")
			}
			if !hasViolation(res, tc.code) {
				t.Fatalf("expected %s, got %+v", tc.code, res.Violations)
			}
		})
	}
}

func TestRateioEngine_SwitchMode(t *testing.T) {
	e := NewRateioEngine()
	total := decimal.NewFromInt(300)
	in := RateioInput{
		Mode: entities.RateioModeFixed,
		Participants: []RateioParticipantInput{
			{ID: "a", Valor: dec("200")},
			{ID: "b", Valor: dec("100")},
		},
	}

	t.Run("to equal recomputes", func(t *testing.T) {
		out, res := e.SwitchMode(total, in, entities.RateioModeEqual)
		if out.Participants[0].Valor != nil {
			t.Fatalf("expected cleared values")
		}
		if !res.Valid || !res.Shares[0].Amount.Equal(decimal.NewFromInt(150)) {
			t.Fatalf("unexpected result %+v", res)
		}
	})

	t.Run("to percent awaits entry", func(t *testing.T) {
		out, res := e.SwitchMode(total, in, entities.RateioModePercent)
		if out.Mode != entities.RateioModePercent {
			t.Fatalf("expected percent mode, got %s", out.Mode)
		}
		if res.Valid || !hasViolation(res, ViolationMissingValue) {
			t.Fatalf("expected missing values, got %+v", res)
		}
		if in.Participants[0].Valor == nil {
			t.Fatalf("input must not be mutated")
		}
	})
}

func TestRateioResult_Config(t *testing.T) {
	e := NewRateioEngine()
	res := e.Compute(decimal.NewFromInt(100), RateioInput{
		Mode: entities.RateioModePercent,
		Participants: []RateioParticipantInput{
			{ID: "a", Percentual: dec("70")},
			{ID: "b", Percentual: dec("30")},
		},
	})
	cfg := res.Config()
	if cfg.Mode != entities.RateioModePercent || len(cfg.Shares) != 2 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Shares[0].Percent == nil || !cfg.Shares[0].Percent.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("expected 70 percent on first share")
	}
	if cfg.Shares[0].Value != nil {
		t.Fatalf("percent config must not carry values")
	}
}
