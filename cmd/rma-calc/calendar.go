package main

import (
	"fmt"
	"time"

	"github.com/kinnoda-akl/RMA-working-day-calculator/internal/calendar"
	"github.com/kinnoda-akl/RMA-working-day-calculator/pkg/dateutil"
	"github.com/spf13/cobra"
)

func classifyCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "classify DATE...",
		Short: "Show whether dates are working days and why",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dates := make([]dateutil.Date, 0, len(args))
			for _, arg := range args {
				d, err := dateutil.ParseDate(arg)
				if err != nil {
					return err
				}
				dates = append(dates, d)
			}

			loader, err := loadCalendar(cmd.Context())
			if err != nil {
				return err
			}

			days := make([]calendar.DayInfo, 0, len(dates))
			for _, d := range dates {
				days = append(days, calendar.GetDayInfo(loader, d))
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), days)
			}
			writeDays(cmd.OutOrStdout(), days)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func monthCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Summarise working days in a month (default: current month)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			today := dateutil.Today()
			year, month := today.Year(), today.Month()
			if len(args) == 1 {
				t, err := time.Parse("2006-01", args[0])
				if err != nil {
					return fmt.Errorf("invalid month %q, expected YYYY-MM", args[0])
				}
				year, month = t.Year(), t.Month()
			}

			loader, err := loadCalendar(cmd.Context())
			if err != nil {
				return err
			}

			info := calendar.GetMonthInfo(loader, year, month)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			writeMonth(cmd.OutOrStdout(), info)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List application types and hold period types",
		RunE: func(cmd *cobra.Command, args []string) error {
			writeTypes(cmd.OutOrStdout())
			return nil
		},
	}
}
