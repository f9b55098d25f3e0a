package main

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/networkteam/pagetour"
	"github.com/networkteam/pagetour/scenario"
)

var errScenariosFailed = errors.New("scenarios failed")

func newRunCmd(a *app) *cobra.Command {
	var selection scenario.Selection

	runCmd := &cobra.Command{
		Use:   "run [scenario...]",
		Short: "Run scenarios, all by default",
		Long: "Run scenarios in a fresh browser session each. Names select scenarios and groups of data-driven cases\n" +
			"(e.g. login_invalid), tags select by category. Exits non-zero if a scenario did not pass.",
		RunE: func(cmd *cobra.Command, args []string) error {
			selection.Names = args
			return a.run(cmd, selection)
		},
	}

	runCmd.Flags().StringSliceVarP(&selection.Tags, "tag", "t", nil, "only run scenarios with one of these tags")
	runCmd.Flags().StringSliceVar(&selection.ExcludeTags, "exclude-tag", nil, "skip scenarios with one of these tags")

	return runCmd
}

func (a *app) run(cmd *cobra.Command, selection scenario.Selection) error {
	ctx := cmd.Context()

	browserOptions := a.browserOptions()
	instance, err := pagetour.NewWithOptions(ctx, pagetour.Options{
		Browser:     &browserOptions,
		Page:        a.pageOptions(),
		Scenarios:   a.scenarioOptions(),
		Handler:     a.logger.Handler(),
		ReportsDir:  a.cfg.Output.ReportsDir,
		ReportTitle: a.cfg.Report.Title,
		HistoryPath: a.cfg.Output.HistoryPath,
	})
	if err != nil {
		return err
	}

	progress := instance.Subscribe(ctx)
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		for result := range progress {
			printf(cmd, "%-5s %s (%s)\n", strings.ToUpper(string(result.Status)), result.Scenario, result.Duration.Round(time.Millisecond))
			if result.Message != "" {
				printf(cmd, "      %s\n", strings.ReplaceAll(result.Message, "\n", "\n      "))
			}
		}
	}()

	run, runErr := instance.Run(ctx, selection)
	closeErr := instance.Close()
	<-printed

	if runErr != nil {
		return errors.Join(runErr, closeErr)
	}
	if closeErr != nil {
		a.logger.Warn("Could not shut down cleanly", slog.Any("err", closeErr))
	}

	summary := run.Summary()
	printf(cmd, "\n%d scenarios: %d passed, %d failed, %d errors in %s\n",
		summary.Total, summary.Passed, summary.Failed, summary.Errored, run.Duration().Round(time.Millisecond))
	printf(cmd, "Report: %s\n", filepath.Join(a.cfg.Output.ReportsDir, run.ID.String()+".html"))

	if !run.Succeeded() {
		return errScenariosFailed
	}
	return nil
}
