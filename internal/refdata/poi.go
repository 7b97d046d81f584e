package refdata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// POIFilePattern matches the point-of-interest definition documents inside
// the POI data directory.
const POIFilePattern = "javelindata_poidefinitions_*"

// IconCDNBase prefixes the icon-path fragments carried by POI records.
const IconCDNBase = "https://cdn.nwdb.info/db/images/live/v55/"

// POIDef is one point-of-interest definition, already localized.
type POIDef struct {
	Name        string
	Icon        string
	TerritoryID *int
}

// Empty reports whether the definition carries no usable attribute.
func (p POIDef) Empty() bool {
	return p.Name == "" && p.Icon == "" && p.TerritoryID == nil
}

// POIIndex maps a POI tag to its definition. The first definition registered
// for a tag wins; later duplicates are ignored.
type POIIndex map[string]POIDef

// poiRecord mirrors the exported document shape. POITag is a string on some
// records and an array on others.
type poiRecord struct {
	POITag              json.RawMessage `json:"POITag"`
	NameLocalizationKey string          `json:"NameLocalizationKey"`
	MapIcon             string          `json:"MapIcon"`
	TerritoryID         json.RawMessage `json:"TerritoryID"`
}

func (r poiRecord) tags() []string {
	var one string
	if err := json.Unmarshal(r.POITag, &one); err == nil {
		return SplitIDs(one)
	}
	var many []string
	if err := json.Unmarshal(r.POITag, &many); err == nil {
		var out []string
		for _, t := range many {
			out = append(out, SplitIDs(t)...)
		}
		return out
	}
	return nil
}

func (r poiRecord) territoryID() *int {
	if len(r.TerritoryID) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(r.TerritoryID, &s); err == nil {
		return IntPtr(s)
	}
	var f float64
	if err := json.Unmarshal(r.TerritoryID, &f); err == nil {
		n := int(f)
		return &n
	}
	return nil
}

// LoadPOIs scans dir for POI definition documents and builds the tag index.
// Names are resolved through the locale map at load time.
func LoadPOIs(dir string, locale *LocaleMap, logger *zap.Logger) POIIndex {
	index := POIIndex{}
	if dir == "" {
		return index
	}
	files, err := filepath.Glob(filepath.Join(dir, POIFilePattern))
	if err != nil || len(files) == 0 {
		logger.Warn("no POI definition documents found", zap.String("dir", dir))
		return index
	}
	sort.Strings(files)

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			logger.Warn("POI document unreadable, skipped",
				zap.String("path", file), zap.Error(err))
			continue
		}
		var records []poiRecord
		if err := json.Unmarshal(data, &records); err != nil {
			logger.Warn("POI document unparsable, skipped",
				zap.String("path", file), zap.Error(err))
			continue
		}
		for _, rec := range records {
			def := POIDef{
				Name:        locale.Lookup(rec.NameLocalizationKey),
				TerritoryID: rec.territoryID(),
			}
			if icon := strings.TrimSpace(rec.MapIcon); icon != "" {
				def.Icon = IconCDNBase + strings.TrimPrefix(icon, "/")
			}
			for _, tag := range rec.tags() {
				if _, seen := index[tag]; seen {
					continue
				}
				index[tag] = def
			}
		}
	}
	logger.Info("POI index built", zap.String("dir", dir), zap.Int("tags", len(index)))
	return index
}
