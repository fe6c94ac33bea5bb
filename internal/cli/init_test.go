package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitCreatesExampleConfig(t *testing.T) {
	oldConfig := configPath
	defer func() { configPath = oldConfig }()
	configPath = filepath.Join(t.TempDir(), "tubewatch.yaml")

	rootCmd.SetArgs([]string{"init"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("config not created: %v", err)
	}
	if len(data) == 0 {
		t.Error("example config is empty")
	}

	// Second init leaves the existing file alone.
	if err := os.WriteFile(configPath, []byte("custom"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	data, _ = os.ReadFile(configPath)
	if string(data) != "custom" {
		t.Error("init overwrote an existing config")
	}
}
