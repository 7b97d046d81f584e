package quest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Document is the output envelope.
type Document struct {
	GeneratedAt string   `json:"generated_at"`
	QuestCount  int      `json:"quest_count"`
	EdgeCount   int      `json:"edge_count"`
	Quests      []*Quest `json:"quests"`
}

// Assemble orders the quests (main-story first, ties keep discovery order)
// and wraps them in the output envelope.
func Assemble(quests []*Quest, edges []Edge, now time.Time) *Document {
	sort.SliceStable(quests, func(i, j int) bool {
		return quests[i].Priority < quests[j].Priority
	})
	return &Document{
		GeneratedAt: now.UTC().Format(time.RFC3339),
		QuestCount:  len(quests),
		EdgeCount:   len(edges),
		Quests:      quests,
	}
}

// Write serializes the document to path, creating the output directory when
// absent.
func Write(doc *Document, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize document: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
