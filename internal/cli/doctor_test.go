package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDoctorHealthy(t *testing.T) {
	dir := t.TempDir()
	oldConfig, oldState := configPath, statePath
	defer func() {
		configPath = oldConfig
		statePath = oldState
	}()

	configPath = filepath.Join(dir, "tubewatch.yaml")
	statePath = filepath.Join(dir, "state")
	if err := os.WriteFile(configPath, []byte("api_key: \"k\"\nchannels: [UC1]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	rootCmd.SetArgs([]string{"doctor"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("doctor failed on a healthy setup: %v", err)
	}
}

func TestDoctorBrokenConfig(t *testing.T) {
	oldConfig := configPath
	defer func() { configPath = oldConfig }()
	configPath = filepath.Join(t.TempDir(), "absent.yaml")

	rootCmd.SetArgs([]string{"doctor"})
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	defer func() {
		rootCmd.SilenceErrors = false
		rootCmd.SilenceUsage = false
	}()
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected doctor to report problems")
	}
}
