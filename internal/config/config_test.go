package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.OutPath != "public/data/quests.json" {
		t.Errorf("expected default out path, got %s", cfg.OutPath)
	}
	if cfg.ManualLinksPath != "tools/manual_links.json" {
		t.Errorf("expected default manual links path, got %s", cfg.ManualLinksPath)
	}
}

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	t.Setenv("QUESTGRAPH_OUT", "")
	t.Setenv("QUESTGRAPH_MANUAL_LINKS", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OutPath != "public/data/quests.json" {
		t.Errorf("expected default out path, got %s", cfg.OutPath)
	}
}

func TestLoad_FileAndEnvOverlay(t *testing.T) {
	t.Setenv("QUESTGRAPH_OUT", "env/quests.json")
	t.Setenv("QUESTGRAPH_MANUAL_LINKS", "")

	path := filepath.Join(t.TempDir(), "questgraph.yaml")
	content := "quests_path: export/quests.csv\nout_path: file/quests.json\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.QuestsPath != "export/quests.csv" {
		t.Errorf("expected file value, got %s", cfg.QuestsPath)
	}
	if cfg.OutPath != "env/quests.json" {
		t.Errorf("expected env override to win, got %s", cfg.OutPath)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing quest table path")
	}
	cfg.QuestsPath = "quests.csv"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
