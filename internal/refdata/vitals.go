package refdata

import (
	"encoding/json"
	"os"
	"strings"

	"go.uber.org/zap"
)

// VitalsCategory describes a creature category from the vitals export.
// IsNamed marks uniquely-named creatures as opposed to generic enemy types.
type VitalsCategory struct {
	Name    string
	IsNamed bool
}

// VitalsIndex maps a category id to its record. Both the original-case id and
// its lowercased alias are indexed.
type VitalsIndex map[string]VitalsCategory

// Lookup resolves a category id, trying the exact id then its lowercase form.
func (ix VitalsIndex) Lookup(id string) (VitalsCategory, bool) {
	if id == "" {
		return VitalsCategory{}, false
	}
	if vc, ok := ix[id]; ok {
		return vc, true
	}
	vc, ok := ix[strings.ToLower(id)]
	return vc, ok
}

type vitalsRecord struct {
	VitalsCategoryID string          `json:"VitalsCategoryID"`
	DisplayName      string          `json:"DisplayName"`
	IsNamed          json.RawMessage `json:"IsNamed"`
}

func (r vitalsRecord) isNamed() bool {
	if len(r.IsNamed) == 0 {
		return false
	}
	var b bool
	if err := json.Unmarshal(r.IsNamed, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(r.IsNamed, &s); err == nil {
		return Truthy(s)
	}
	return false
}

// LoadVitals reads the vitals categories document. Display names are resolved
// through the locale map; records without an id are skipped.
func LoadVitals(path string, locale *LocaleMap, logger *zap.Logger) VitalsIndex {
	index := VitalsIndex{}
	if path == "" {
		return index
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("vitals document unavailable, creature resolution disabled",
			zap.String("path", path), zap.Error(err))
		return index
	}
	var records []vitalsRecord
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Warn("vitals document unparsable, creature resolution disabled",
			zap.String("path", path), zap.Error(err))
		return index
	}
	for _, rec := range records {
		id := strings.TrimSpace(rec.VitalsCategoryID)
		if id == "" {
			continue
		}
		vc := VitalsCategory{
			Name:    locale.Lookup(rec.DisplayName),
			IsNamed: rec.isNamed(),
		}
		index[id] = vc
		if low := strings.ToLower(id); low != id {
			if _, seen := index[low]; !seen {
				index[low] = vc
			}
		}
	}
	logger.Info("vitals index built", zap.String("path", path), zap.Int("categories", len(index)))
	return index
}
