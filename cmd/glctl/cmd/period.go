package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/SscSPs/general_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
)

var (
	periodActor  string
	periodReason string
)

var periodCmd = &cobra.Command{
	Use:   "period",
	Short: "Lock, unlock or inspect an accounting period",
}

var periodLockCmd = &cobra.Command{
	Use:   "lock YEAR MONTH",
	Short: "Lock a period against new postings",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		period, err := parsePeriodArgs(args)
		if err != nil {
			return err
		}
		return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
			if err := svc.Ledger.LockPeriodBy(cmd.Context(), period.Year, period.Month, periodActor); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "period %s locked\n", period)
			return nil
		})
	},
}

var periodUnlockCmd = &cobra.Command{
	Use:   "unlock YEAR MONTH",
	Short: "Unlock a period; requires --actor and --reason",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		period, err := parsePeriodArgs(args)
		if err != nil {
			return err
		}
		return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
			if err := svc.Ledger.UnlockPeriod(cmd.Context(), period.Year, period.Month, periodActor, periodReason); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "period %s unlocked\n", period)
			return nil
		})
	},
}

var periodStatusCmd = &cobra.Command{
	Use:   "status YEAR MONTH",
	Short: "Show the lock state and audit log of a period",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		period, err := parsePeriodArgs(args)
		if err != nil {
			return err
		}
		return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
			status, err := svc.Ledger.PeriodStatus(cmd.Context(), period.Year, period.Month)
			if err != nil {
				return err
			}
			state := "open"
			if status.Locked {
				state = "locked"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "period %s is %s\n", period, state)
			for _, a := range status.AuditLog {
				fmt.Fprintf(out, "  %s\n", a)
			}
			return nil
		})
	},
}

func init() {
	periodLockCmd.Flags().StringVar(&periodActor, "actor", "", "who is locking the period")
	periodUnlockCmd.Flags().StringVar(&periodActor, "actor", "", "who is unlocking the period")
	periodUnlockCmd.Flags().StringVar(&periodReason, "reason", "", "why the period is reopened")
	_ = periodUnlockCmd.MarkFlagRequired("actor")
	_ = periodUnlockCmd.MarkFlagRequired("reason")

	periodCmd.AddCommand(periodLockCmd, periodUnlockCmd, periodStatusCmd)
}

func parsePeriodArgs(args []string) (domain.PeriodKey, error) {
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return domain.PeriodKey{}, fmt.Errorf("invalid year %q", args[0])
	}
	month, err := strconv.Atoi(args[1])
	if err != nil {
		return domain.PeriodKey{}, fmt.Errorf("invalid month %q", args[1])
	}
	return domain.NewPeriodKey(year, time.Month(month))
}
