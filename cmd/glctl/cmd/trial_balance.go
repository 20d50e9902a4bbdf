package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/SscSPs/general_ledger/internal/dto"
	"github.com/SscSPs/general_ledger/internal/utils"
)

var tbFrom, tbTo string

var trialBalanceCmd = &cobra.Command{
	Use:   "trial-balance",
	Short: "Print the trial balance for a date range",
	Long: `Print every account's net balance over [--from, --to].
Without --from the range is unbounded; --to defaults to today.

Example:
  glctl trial-balance --from 2024-01-01 --to 2024-12-31`,
	Args: cobra.NoArgs,
	RunE: runTrialBalance,
}

func init() {
	trialBalanceCmd.Flags().StringVar(&tbFrom, "from", "", "start date (YYYY-MM-DD)")
	trialBalanceCmd.Flags().StringVar(&tbTo, "to", "", "end date (YYYY-MM-DD, default today)")
}

func runTrialBalance(cmd *cobra.Command, args []string) error {
	from, err := dto.ParseDate(tbFrom)
	if err != nil {
		return err
	}
	to, err := dto.ParseDate(tbTo)
	if err != nil {
		return err
	}
	if to.IsZero() {
		to = dto.NewDate(time.Now().UTC())
	}

	return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
		report, err := svc.TrialBalance.GenerateReport(cmd.Context(), from.Time, to.Time)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "ACCOUNT\tNAME\tDEBIT\tCREDIT\t")
		for _, row := range report.Rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", row.AccountCode, row.AccountName,
				utils.FormatMoney(row.Debit), utils.FormatMoney(row.Credit))
		}
		fmt.Fprintf(w, "TOTAL\t\t%s\t%s\t\n", utils.FormatMoney(report.TotalDebits), utils.FormatMoney(report.TotalCredits))
		if err := w.Flush(); err != nil {
			return err
		}
		if !report.Balanced {
			fmt.Fprintln(cmd.OutOrStdout(), "WARNING: trial balance does not balance")
		}
		return nil
	})
}
