package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func rateioPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rateio-preview",
		Short: "Compute a split of a reservation total without storing it",
		Example: `  billing-cli rateio-preview --total 120 --mode equal -p ana -p bia -p caio
  billing-cli rateio-preview --total 100 --mode percent -p ana=60 -p bia=40`,
		RunE: func(cmd *cobra.Command, args []string) error {
			totalFlag, _ := cmd.Flags().GetString("total")
			mode, _ := cmd.Flags().GetString("mode")
			specs, _ := cmd.Flags().GetStringArray("participant")

			total, err := decimal.NewFromString(totalFlag)
			if err != nil {
				return fmt.Errorf("invalid --total %q: %w", totalFlag, err)
			}
			in, err := parseRateioInput(entities.RateioMode(mode), specs)
			if err != nil {
				return err
			}

			res := usecase.NewRateioEngine().Compute(total, in)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}
			if !res.Valid {
				return fmt.Errorf("rateio rejected with %d violation(s)", len(res.Violations))
			}
			return nil
		},
	}

	cmd.Flags().String("total", "", "Reservation total")
	cmd.Flags().StringP("mode", "m", string(entities.RateioModeEqual), "Split mode (equal, fixed, percent)")
	cmd.Flags().StringArrayP("participant", "p", nil, "Participant as id or id=value")
	_ = cmd.MarkFlagRequired("total")

	return cmd
}

// parseRateioInput reads "id" or "id=value" entries. The value is a fixed
// amount in fixed mode and a percentage in percent mode.
func parseRateioInput(mode entities.RateioMode, specs []string) (usecase.RateioInput, error) {
	in := usecase.RateioInput{Mode: mode, Participants: make([]usecase.RateioParticipantInput, 0, len(specs))}
	for _, spec := range specs {
		id, raw, hasValue := strings.Cut(spec, "=")
		p := usecase.RateioParticipantInput{ID: strings.TrimSpace(id)}
		if hasValue {
			v, err := decimal.NewFromString(strings.TrimSpace(raw))
			if err != nil {
				return usecase.RateioInput{}, fmt.Errorf("invalid value for participant %q: %w", id, err)
			}
			switch mode {
			case entities.RateioModePercent:
				p.Percentual = &v
			default:
				p.Valor = &v
			}
		}
		in.Participants = append(in.Participants, p)
	}
	return in, nil
}
