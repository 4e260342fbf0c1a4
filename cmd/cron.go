package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"mergington.GO/cron"
	"mergington.GO/cron/jobs"
	activityRepo "mergington.GO/model/repository/activity"
	"mergington.GO/model/seed"
)

var jobName string

var cronStartCmd = &cobra.Command{
	Use:   "cron:start",
	Short: "Start the cron scheduler or run a single job by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		acts, err := seed.Load(cfg.SeedFile)
		if err != nil {
			return err
		}
		repo, err := activityRepo.NewActivityRepository(acts)
		if err != nil {
			return err
		}
		cron.Register(jobs.RosterReportName, cfg.Cron.RosterSchedule, jobs.RosterReport(repo, log.Named("cron")))

		if jobName != "" {
			j, ok := cron.Jobs()[strings.ToLower(jobName)]
			if !ok {
				return fmt.Errorf("unknown job: %s", jobName)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Running cron job: %s\n", jobName)
			j.Run()
			return nil
		}

		c, err := cron.StartCron(log.Named("cron"))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Cron scheduler started. Press Ctrl+C to exit.")
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
		<-c.Stop().Done()
		return nil
	},
}

func init() {
	cronStartCmd.Flags().StringVarP(&jobName, "job", "j", "", "Run a single cron job by name and exit")
	Register(cronStartCmd)
}
