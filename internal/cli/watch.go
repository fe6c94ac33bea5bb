package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tubewatch/internal/config"
	"tubewatch/internal/scan"
	"tubewatch/internal/state"
	"tubewatch/internal/youtube"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Scan configured channels and print new activity",
	RunE:  watchAction,
}

var dryRun bool

func init() {
	watchCmd.Flags().BoolVar(&dryRun, "dry-run", false, "scan and print without updating the state file")
	rootCmd.AddCommand(watchCmd)
}

func watchAction(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	channels, err := state.Load(statePath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client := youtube.New(cfg.APIKey, cfg.API.BaseURL, cfg.API.Retries, cfg.API.RetryDelay.Duration)
	scanner := &scan.Scanner{
		Client:   client,
		Out:      cmd.OutOrStdout(),
		PageSize: cfg.API.PageSize,
	}

	// Display names are required context: a failure here aborts the run.
	if err := scanner.ResolveNames(ctx, channels, cfg.Channels); err != nil {
		return err
	}

	emitted := scanner.Scan(ctx, channels, cfg.Channels)
	logrus.WithField("items", emitted).Debug("scan complete")

	if dryRun {
		logrus.Debug("dry run, state file left untouched")
		return nil
	}

	// A failed write means duplicate reports next run; say so loudly.
	if err := state.Save(statePath, cfg.Channels, channels); err != nil {
		return fmt.Errorf("%w (new marks lost, expect duplicate reports on the next run)", err)
	}
	return nil
}
