// Package config holds the source and output paths for a conversion run.
// Values layer in order: defaults, optional questgraph.yaml, environment,
// then CLI flags.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config lists every input and output location of the pipeline. Only
// QuestsPath is mandatory; empty optional paths disable their feature.
type Config struct {
	// Primary quest table (CSV). Required.
	QuestsPath string `yaml:"quests_path"`

	// Optional reference sources.
	ItemsPath  string `yaml:"items_path"`
	TasksPath  string `yaml:"tasks_path"` // file or ObjectiveTasksDataManager* directory
	LocalePath string `yaml:"locale_path"`
	POIDir     string `yaml:"poi_dir"` // javelindata_poidefinitions_* directory
	VitalsPath string `yaml:"vitals_path"`

	// Hand-authored corrections, consulted when present.
	ManualLinksPath string `yaml:"manual_links_path"`

	// Output document location; the directory is created when absent.
	OutPath string `yaml:"out_path"`
}

// Default returns the conventional layout used by the consuming site.
func Default() *Config {
	return &Config{
		ManualLinksPath: "tools/manual_links.json",
		OutPath:         "public/data/quests.json",
	}
}

// Load reads a YAML config file over the defaults and applies environment
// overrides. A missing file is not an error; the defaults stand.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// Validate checks the mandatory fields.
func (c *Config) Validate() error {
	if c.QuestsPath == "" {
		return fmt.Errorf("quest table path is required")
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("QUESTGRAPH_OUT"); v != "" {
		c.OutPath = v
	}
	if v := os.Getenv("QUESTGRAPH_MANUAL_LINKS"); v != "" {
		c.ManualLinksPath = v
	}
}
