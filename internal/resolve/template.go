package resolve

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"questgraph/internal/refdata"
)

// Objective-task template columns.
const (
	colDescriptionTag = "TP_DescriptionTag"
	colHiddenTask     = "HiddenTask"
	colItemName       = "TP_ItemName"
	colQuantity       = "TP_Quantity"
	colDropProb       = "TP_DropProbability"
	colPOITags        = "TP_POITags"
	colKillEnemyType  = "TP_KillEnemyType"
	colKillCategory   = "TP_KillEnemyVitalsCategory"
)

// CreatureURLBase prefixes the derived creature lookup links.
const CreatureURLBase = "https://nwdb.info/db/creature/"

// FormatPercent renders a drop probability. A value at or below 1.0 is read
// as a fraction and multiplied by 100; anything above is used as a literal
// percentage. Integral results render bare, others with one decimal place.
// The fraction rule is kept exactly as the export consumers expect it, even
// for awkward inputs like 10 (which renders as 1000%).
func FormatPercent(v float64) string {
	if v <= 1.0 {
		v *= 100
	}
	if v == math.Trunc(v) {
		return strconv.Itoa(int(v)) + "%"
	}
	return fmt.Sprintf("%.1f%%", v)
}

// ApplyTemplate substitutes the recognized placeholder markers in text with
// structured inline tokens built from the owning task row. Unrecognized
// markers are left verbatim. Resolution is idempotent: the same row always
// yields the same tokens.
func ApplyTemplate(text string, task refdata.Row, refs refdata.Refs) string {
	if strings.Contains(text, "{itemName}") {
		text = strings.ReplaceAll(text, "{itemName}", itemToken(task, refs))
	}
	if strings.Contains(text, "{targetName}") {
		text = strings.ReplaceAll(text, "{targetName}", creatureToken(task, refs))
	}
	if strings.Contains(text, "{POITags}") {
		text = strings.ReplaceAll(text, "{POITags}", poiText(task, refs))
	}
	return text
}

func itemToken(task refdata.Row, refs refdata.Refs) string {
	key := task.GetDefault(colItemName, "")
	tok := NewToken(KindItem)
	if it, ok := refs.Items.LookupByNameOrID(key); ok {
		if it.Icon != "" {
			tok.Set("icon", refdata.IconCDNBase+strings.TrimPrefix(it.Icon, "/"))
		} else {
			tok.Set("icon", "")
		}
		tok.Set("name", it.Name)
		tok.Set("chance", dropChance(task))
		tok.Set("rarity", it.Rarity)
		return tok.String()
	}
	tok.Set("icon", "")
	tok.Set("name", key)
	tok.Set("chance", dropChance(task))
	tok.Set("rarity", "")
	return tok.String()
}

func dropChance(task refdata.Row) string {
	raw, ok := task.Get(colDropProb)
	if !ok {
		return ""
	}
	f, ok := refdata.FloatSafe(raw)
	if !ok {
		return ""
	}
	return FormatPercent(f)
}

func creatureToken(task refdata.Row, refs refdata.Refs) string {
	qty := refdata.QtySafe(task.GetDefault(colQuantity, ""))
	catID := task.GetDefault(colKillCategory, "")

	name := task.GetDefault(colKillEnemyType, "")
	named := false
	id := catID
	if vc, ok := refs.Vitals.Lookup(catID); ok {
		name = vc.Name
		named = vc.IsNamed
	} else if id == "" {
		id = name
	}

	tok := NewToken(KindCreature)
	tok.Set("name", name)
	tok.Set("qty", qty)
	tok.Set("named", strconv.FormatBool(named))
	tok.Set("id", id)
	if id != "" {
		tok.Set("url", CreatureURLBase+strings.ToLower(id))
	} else {
		tok.Set("url", "")
	}
	return tok.String()
}

func poiText(task refdata.Row, refs refdata.Refs) string {
	raw := task.GetDefault(colPOITags, "")
	tags := refdata.SplitIDs(raw)
	for _, tag := range tags {
		def, ok := refs.POIs[tag]
		if !ok || def.Empty() {
			continue
		}
		tok := NewToken(KindPOI)
		tok.Set("icon", def.Icon)
		tok.Set("name", def.Name)
		if def.TerritoryID != nil {
			tok.Set("territory", strconv.Itoa(*def.TerritoryID))
		} else {
			tok.Set("territory", "")
		}
		return tok.String()
	}
	if len(tags) > 0 {
		return refs.Locale.Lookup(tags[0])
	}
	return raw
}
