package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tubewatch/internal/config"
	"tubewatch/internal/state"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and state health",
	RunE:  doctorAction,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func doctorAction(_ *cobra.Command, _ []string) error {
	ok := true

	cfg, err := config.Load(configPath)
	if err != nil {
		printCheck(false, "config %s: %v", configPath, err)
		ok = false
	} else {
		printCheck(true, "config %s (%d channels)", configPath, len(cfg.Channels))
	}

	channels, err := state.Load(statePath)
	switch {
	case err != nil:
		printCheck(false, "state %s: %v", statePath, err)
		ok = false
	case len(channels) == 0:
		if _, statErr := os.Stat(statePath); errors.Is(statErr, os.ErrNotExist) {
			printCheck(true, "state %s absent (first run will report everything)", statePath)
		} else {
			printCheck(true, "state %s empty", statePath)
		}
	default:
		printCheck(true, "state %s (%d channels with marks)", statePath, len(channels))
	}

	if !ok {
		return errors.New("doctor found problems")
	}
	return nil
}

func printCheck(ok bool, format string, args ...any) {
	mark := "ok"
	if !ok {
		mark = "FAIL"
	}
	fmt.Printf("  [%s] %s\n", mark, fmt.Sprintf(format, args...))
}
