package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/SscSPs/general_ledger/internal/utils"
)

var journalLimit int

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect posted journal entries",
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posted entries in posting order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
			out := cmd.OutOrStdout()
			var token *string
			printed := 0
			for {
				entries, next, err := svc.Ledger.ListJournals(cmd.Context(), 0, token)
				if err != nil {
					return err
				}
				for _, e := range entries {
					if journalLimit > 0 && printed >= journalLimit {
						return nil
					}
					fmt.Fprintf(out, "%s  %s  %10s  %s\n", e.JournalNumber, e.Date.Format(time.DateOnly),
						utils.FormatMoney(e.TotalDebits()), e.Description)
					printed++
				}
				if next == nil {
					return nil
				}
				token = next
			}
		})
	},
}

func init() {
	journalListCmd.Flags().IntVar(&journalLimit, "limit", 0, "maximum entries to print (0 prints all)")
	journalCmd.AddCommand(journalListCmd)
}
