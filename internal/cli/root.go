// Package cli provides the command-line interface for tubewatch.
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tubewatch/internal/config"
)

// Version and Commit are set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

var (
	configPath string
	statePath  string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "tubewatch",
	Short: "Report new YouTube channel activity since the last run",
	Long: "tubewatch polls a fixed set of YouTube channels, remembers the latest\n" +
		"activity timestamp per channel, and prints one line per item that is\n" +
		"new since the previous invocation.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logrus.SetOutput(os.Stderr)
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.InfoLevel)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("tubewatch %s (%s)\n", Version, Commit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigFile, "path to the config file")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", config.DefaultStateFile, "path to the state file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every outgoing request URL")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
