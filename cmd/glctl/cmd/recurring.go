package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/SscSPs/general_ledger/internal/dto"
)

var recurringFrom, recurringTo string

var recurringCmd = &cobra.Command{
	Use:   "recurring",
	Short: "Work with recurring entry templates",
}

var recurringProcessCmd = &cobra.Command{
	Use:   "process",
	Short: "Post every due recurring occurrence in a window",
	Long: `Post each recurring occurrence dated in [--from, --to] that has not been
posted yet. Running the same window twice posts nothing the second time.

Example:
  glctl recurring process --from 2024-01-01 --to 2024-03-31`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := dto.ParseDate(recurringFrom)
		if err != nil {
			return err
		}
		to, err := dto.ParseDate(recurringTo)
		if err != nil {
			return err
		}
		if to.IsZero() {
			to = dto.NewDate(time.Now().UTC())
		}
		if from.IsZero() {
			from = to
		}

		return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
			generated, err := svc.Recurring.ProcessRecurringEntries(cmd.Context(), from.Time, to.Time)
			out := cmd.OutOrStdout()
			for _, e := range generated {
				fmt.Fprintf(out, "%s  %s  %s\n", e.JournalNumber, e.Date.Format(time.DateOnly), e.Description)
			}
			fmt.Fprintf(out, "%d entries posted\n", len(generated))
			return err
		})
	},
}

var recurringListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recurring templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
			templates, err := svc.Recurring.ListRecurringTemplates(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range templates {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-9s  %s..%s  %s\n", t.ID, t.Frequency,
					t.StartDate.Format(time.DateOnly), t.EndDate.Format(time.DateOnly), t.Description)
			}
			return nil
		})
	},
}

func init() {
	recurringProcessCmd.Flags().StringVar(&recurringFrom, "from", "", "window start (YYYY-MM-DD, default --to)")
	recurringProcessCmd.Flags().StringVar(&recurringTo, "to", "", "window end (YYYY-MM-DD, default today)")

	recurringCmd.AddCommand(recurringProcessCmd, recurringListCmd)
}
