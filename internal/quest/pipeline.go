package quest

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"questgraph/internal/config"
	"questgraph/internal/refdata"
)

// Run executes the whole conversion: load every reference index, build the
// quest entities and derived edges, overlay the manual links and assemble the
// output document. Only a missing or unparsable primary quest table is fatal;
// every other source degrades to an empty mapping with a diagnostic.
func Run(cfg *config.Config, logger *zap.Logger) (*Document, error) {
	rows, err := refdata.ReadTable(cfg.QuestsPath)
	if err != nil {
		return nil, fmt.Errorf("load quest table: %w", err)
	}

	locale := refdata.LoadLocale(cfg.LocalePath, logger)
	refs := refdata.Refs{
		Items:  refdata.LoadItems(cfg.ItemsPath, logger),
		Tasks:  refdata.LoadTasks(cfg.TasksPath, logger),
		Locale: locale,
		POIs:   refdata.LoadPOIs(cfg.POIDir, locale, logger),
		Vitals: refdata.LoadVitals(cfg.VitalsPath, locale, logger),
	}

	quests, edges := BuildAll(rows, refs, logger)
	edges = ApplyManualLinks(cfg.ManualLinksPath, quests, edges, logger)

	doc := Assemble(quests, edges, time.Now())
	logger.Info("document assembled",
		zap.Int("quests", doc.QuestCount),
		zap.Int("edges", doc.EdgeCount))
	return doc, nil
}
