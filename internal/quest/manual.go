package quest

import (
	"encoding/json"
	"os"
	"strings"

	"go.uber.org/zap"
)

type manualDoc struct {
	Links []manualLink `json:"links"`
}

type manualLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// ApplyManualLinks overlays the hand-authored link document on top of the
// derived edges. It runs strictly after derivation so manual edges are always
// additive and last-applied. A link is skipped when source/target is empty or
// equal, or when either id is unknown post-filter; applying the same link
// twice changes nothing.
func ApplyManualLinks(path string, quests []*Quest, edges []Edge, logger *zap.Logger) []Edge {
	if path == "" {
		return edges
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("manual links unreadable, skipped",
				zap.String("path", path), zap.Error(err))
		}
		return edges
	}
	var doc manualDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("manual links unparsable, skipped",
			zap.String("path", path), zap.Error(err))
		return edges
	}

	byID := make(map[string]*Quest, len(quests))
	for _, q := range quests {
		byID[q.ID] = q
	}

	applied := 0
	for _, link := range doc.Links {
		src := strings.TrimSpace(link.Source)
		tgt := strings.TrimSpace(link.Target)
		if src == "" || tgt == "" || src == tgt {
			continue
		}
		if byID[src] == nil || byID[tgt] == nil {
			logger.Warn("manual link references unknown quest id, dropped",
				zap.String("source", src), zap.String("target", tgt))
			continue
		}
		target := byID[tgt]
		switch strings.ToLower(strings.TrimSpace(link.Type)) {
		case "not", "negative", "forbid":
			if containsString(target.NotPrerequisites, src) {
				continue
			}
			target.NotPrerequisites = append(target.NotPrerequisites, src)
			edges = append(edges, Edge{Source: src, Target: tgt, Negative: true})
		default: // absent type reads as "requires"
			if containsString(target.Prerequisites, src) {
				continue
			}
			target.Prerequisites = append(target.Prerequisites, src)
			edges = append(edges, Edge{Source: src, Target: tgt})
		}
		applied++
	}
	if applied > 0 {
		logger.Info("manual links applied", zap.String("path", path), zap.Int("links", applied))
	}
	return edges
}
