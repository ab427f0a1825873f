package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/prospera-app/prospera-backend/internal/domain"
	"github.com/prospera-app/prospera-backend/internal/forecast"
	"github.com/spf13/cobra"
)

var (
	flagScenario string
	flagStart    string
	flagDays     int
	flagCSV      bool
)

var rootCmd = &cobra.Command{
	Use:   "prosperactl",
	Short: "Offline ledger projection",
	Long:  "Project account balances from a TOML scenario file without a server or database.",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Project a scenario and print the result",
	RunE:  runProjection,
}

func init() {
	runCmd.Flags().StringVarP(&flagScenario, "scenario", "f", "scenario.toml", "Scenario file")
	runCmd.Flags().StringVar(&flagStart, "start", "", "Start date (YYYY-MM-DD, overrides scenario)")
	runCmd.Flags().IntVarP(&flagDays, "days", "n", 0, "Horizon in days (overrides scenario)")
	runCmd.Flags().BoolVar(&flagCSV, "csv", false, "Emit one CSV row per account per day instead of a summary")
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runProjection(_ *cobra.Command, _ []string) error {
	scenario, err := LoadScenario(flagScenario)
	if err != nil {
		return err
	}

	input, err := scenario.ProjectionInput()
	if err != nil {
		return err
	}

	if flagStart != "" {
		start, err := time.Parse(time.DateOnly, flagStart)
		if err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
		input.StartDate = start
	}
	if flagDays > 0 {
		input.HorizonDays = flagDays
	}
	if input.HorizonDays <= 0 {
		input.HorizonDays = 365
	}

	snapshots := forecast.Project(input)
	if len(snapshots) == 0 {
		fmt.Println("Nothing to project.")
		return nil
	}

	if flagCSV {
		return writeCSV(os.Stdout, snapshots)
	}
	return writeSummary(os.Stdout, input.Accounts, snapshots)
}

// writeSummary prints one line per account: starting balance, ending
// balance, and how many projected days carried activity.
func writeSummary(out *os.File, accounts []domain.Account, snapshots []domain.DaySnapshot) error {
	first := snapshots[0]
	last := snapshots[len(snapshots)-1]

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ACCOUNT\tTYPE\tSTART\tEND\tACTIVE DAYS\n")
	for _, account := range accounts {
		start, ok := first.Accounts[account.Name]
		if !ok {
			continue
		}
		end := last.Accounts[account.Name]

		activeDays := 0
		for _, snapshot := range snapshots {
			if day, ok := snapshot.Accounts[account.Name]; ok && day.HadActivity {
				activeDays++
			}
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			account.Name, account.AccountType,
			start.PriorBalance.StringFixed(2), end.Balance.StringFixed(2), activeDays)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d days projected, %s through %s\n",
		len(snapshots),
		first.Date.Format(time.DateOnly), last.Date.Format(time.DateOnly))
	return nil
}

func writeCSV(out *os.File, snapshots []domain.DaySnapshot) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"date", "account", "balance", "inflow", "outflow"}); err != nil {
		return err
	}
	for _, snapshot := range snapshots {
		names := make([]string, 0, len(snapshot.Accounts))
		for name := range snapshot.Accounts {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			day := snapshot.Accounts[name]
			record := []string{
				snapshot.Date.Format(time.DateOnly),
				name,
				day.Balance.StringFixed(2),
				day.TotalInflow.StringFixed(2),
				day.TotalOutflow.StringFixed(2),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}
