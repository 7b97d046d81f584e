package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"questgraph/internal/config"
	"questgraph/internal/quest"
)

var (
	questsPath  string
	itemsPath   string
	tasksPath   string
	localePath  string
	poiDir      string
	vitalsPath  string
	manualLinks string
	outPath     string
)

// convertCmd runs the conversion pipeline end to end
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the exported tables into quests.json",
	Long: `Loads the reference tables (items, objective tasks, locale strings,
POI definitions, vitals categories), builds the normalized quest list with
resolved task descriptions and dependency edges, overlays the manual link
corrections and writes the output document.

Only the quest table is required; every other source is optional and its
absence merely disables the matching resolution feature.

Example:
  questgraph convert --quests export/javelindata_quests.csv \
    --items export/items.csv --tasks export/tasks/ --locale export/en-us.json`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&questsPath, "quests", "", "primary quest table (required)")
	convertCmd.Flags().StringVar(&itemsPath, "items", "", "item reference table")
	convertCmd.Flags().StringVar(&tasksPath, "tasks", "", "objective-task table or fragment directory")
	convertCmd.Flags().StringVar(&localePath, "locale", "", "locale key/string document")
	convertCmd.Flags().StringVar(&poiDir, "poi-dir", "", "POI definition directory")
	convertCmd.Flags().StringVar(&vitalsPath, "vitals", "", "vitals categories document")
	convertCmd.Flags().StringVar(&manualLinks, "manual-links", "", "manual link overrides document")
	convertCmd.Flags().StringVar(&outPath, "out", "", "output document path")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	overlayFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	runID := uuid.NewString()
	log := logger.With(zap.String("run_id", runID))
	log.Info("conversion started", zap.String("quests", cfg.QuestsPath))

	doc, err := quest.Run(cfg, log)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	if err := quest.Write(doc, cfg.OutPath); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	log.Info("conversion finished",
		zap.String("out", cfg.OutPath),
		zap.Int("quests", doc.QuestCount),
		zap.Int("edges", doc.EdgeCount))
	fmt.Printf("Wrote %s (quests=%d, edges=%d)\n", cfg.OutPath, doc.QuestCount, doc.EdgeCount)
	return nil
}

// overlayFlags applies explicitly-set CLI flags on top of the loaded config.
func overlayFlags(cfg *config.Config) {
	if questsPath != "" {
		cfg.QuestsPath = questsPath
	}
	if itemsPath != "" {
		cfg.ItemsPath = itemsPath
	}
	if tasksPath != "" {
		cfg.TasksPath = tasksPath
	}
	if localePath != "" {
		cfg.LocalePath = localePath
	}
	if poiDir != "" {
		cfg.POIDir = poiDir
	}
	if vitalsPath != "" {
		cfg.VitalsPath = vitalsPath
	}
	if manualLinks != "" {
		cfg.ManualLinksPath = manualLinks
	}
	if outPath != "" {
		cfg.OutPath = outPath
	}
}
