package main

import (
	"fmt"
	"strings"

	"github.com/kinnoda-akl/RMA-working-day-calculator/internal/deadline"
	"github.com/kinnoda-akl/RMA-working-day-calculator/pkg/dateutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func calculateCmd() *cobra.Command {
	var (
		trigger    string
		decision   string
		appType    string
		holds      []string
		extensions []string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate statutory working days for an application",
		Example: `  rma-calc calculate --trigger 2024-03-04 --decision 2024-04-05 --type non_notified \
    --hold further_information,2024-03-08,2024-03-15 --extension 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildRequest(trigger, decision, appType, holds, extensions, defaultApplicationType())
			if err != nil {
				return err
			}

			loader, err := loadCalendar(cmd.Context())
			if err != nil {
				return err
			}

			engine := deadline.NewEngine(loader, logger)
			result, err := engine.Calculate(req)
			if err != nil {
				return err
			}

			logger.Info("Calculation finished",
				zap.Stringer("trigger", result.Trigger),
				zap.Stringer("decision", result.Decision),
				zap.Stringer("application_type", result.ApplicationType),
				zap.Int("final_days", result.FinalDays),
				zap.Bool("overtime", result.IsOvertime))

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			writeResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&trigger, "trigger", "", "Trigger date (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().StringVar(&decision, "decision", "", "Decision date (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().StringVarP(&appType, "type", "t", "", "Application type key (see 'rma-calc types')")
	cmd.Flags().StringArrayVar(&holds, "hold", nil, "Hold period as type,start,end[,id] (repeatable)")
	cmd.Flags().StringArrayVar(&extensions, "extension", nil, "Extension in working days (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

// buildRequest turns raw flag values into a request. Blank dates are left
// unset so the engine reports them as validation errors.
func buildRequest(trigger, decision, appType string, holds, extensions []string, defaultType deadline.ApplicationType) (deadline.Request, error) {
	req := deadline.Request{Type: defaultType}

	if d, err := dateutil.ParseDate(trigger); err == nil {
		req.Trigger = d
	} else if strings.TrimSpace(trigger) != "" {
		return req, fmt.Errorf("trigger: %w", err)
	}
	if d, err := dateutil.ParseDate(decision); err == nil {
		req.Decision = d
	} else if strings.TrimSpace(decision) != "" {
		return req, fmt.Errorf("decision: %w", err)
	}

	if appType != "" {
		t, err := deadline.ParseApplicationType(appType)
		if err != nil {
			return req, err
		}
		req.Type = t
	}

	for i, raw := range holds {
		hold, err := parseHoldFlag(raw)
		if err != nil {
			return req, fmt.Errorf("hold %d: %w", i+1, err)
		}
		req.Holds = append(req.Holds, hold)
	}

	for _, raw := range extensions {
		req.Extensions = append(req.Extensions, deadline.ParseExtension("", raw))
	}

	return req, nil
}

// parseHoldFlag parses "type,start,end[,id]". Either date may be left blank.
func parseHoldFlag(raw string) (deadline.HoldPeriod, error) {
	parts := strings.Split(raw, ",")
	if len(parts) < 3 || len(parts) > 4 {
		return deadline.HoldPeriod{}, fmt.Errorf("expected type,start,end[,id], got %q", raw)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	id := ""
	if len(parts) == 4 {
		id = parts[3]
	}
	return deadline.ParseHoldPeriod(id, parts[0], parts[1], parts[2])
}
