package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const exampleConfig = `# tubewatch configuration.
#
# The API key can be given directly or read from an environment variable.
#api_key: "AIza..."
api_key_env: YOUTUBE_API_KEY

# Channels are scanned, and reported, in this order.
channels:
  - UC_x5XG1OV2P6uZZ5FSM9Ttw
  - UCsBjURrPoezykLs9EqgamOA

# Optional overrides; the defaults are shown.
#api:
#  page_size: 50
#  retries: 3
#  retry_delay: 3s
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example config file",
	RunE:  initAction,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func initAction(_ *cobra.Command, _ []string) error {
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("exists: %s\n", configPath)
		return nil
	}
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", configPath, err)
	}
	fmt.Printf("created: %s\n", configPath)
	return nil
}
