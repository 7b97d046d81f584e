package refdata

import (
	"os"
	"strings"

	"go.uber.org/zap"
)

// Item is one row of the item reference table.
type Item struct {
	ID     string
	Name   string
	Icon   string
	Rarity string
}

// ItemIndex holds the two lookup views over the item table. An id lookup
// takes priority over a name lookup wherever a quest row carries both.
type ItemIndex struct {
	ByID   map[string]Item
	ByName map[string]Item // key lowercased
}

// NewItemIndex returns an empty index, used when no item table is supplied.
func NewItemIndex() *ItemIndex {
	return &ItemIndex{ByID: map[string]Item{}, ByName: map[string]Item{}}
}

// Lookup resolves an item by id first, then by lowercased name.
func (ix *ItemIndex) Lookup(id, name string) (Item, bool) {
	if id != "" {
		if it, ok := ix.ByID[id]; ok {
			return it, true
		}
	}
	if name != "" {
		if it, ok := ix.ByName[strings.ToLower(name)]; ok {
			return it, true
		}
	}
	return Item{}, false
}

// LookupByNameOrID resolves by lowercased name first, then by id. The
// objective-task item field usually carries a display name but sometimes an
// id.
func (ix *ItemIndex) LookupByNameOrID(key string) (Item, bool) {
	if key == "" {
		return Item{}, false
	}
	if it, ok := ix.ByName[strings.ToLower(key)]; ok {
		return it, true
	}
	if it, ok := ix.ByID[key]; ok {
		return it, true
	}
	return Item{}, false
}

// LoadItems reads the item reference table. A missing file degrades to an
// empty index; a row lacking both id and name contributes nothing.
func LoadItems(path string, logger *zap.Logger) *ItemIndex {
	ix := NewItemIndex()
	if path == "" {
		return ix
	}
	if _, err := os.Stat(path); err != nil {
		logger.Warn("item table unavailable, item resolution disabled",
			zap.String("path", path), zap.Error(err))
		return ix
	}
	rows, err := ReadTable(path)
	if err != nil {
		logger.Warn("item table unreadable, item resolution disabled",
			zap.String("path", path), zap.Error(err))
		return ix
	}
	for _, r := range rows {
		id, _ := r.Get("Item ID")
		name, _ := r.Get("Name")
		if id == "" && name == "" {
			continue
		}
		it := Item{
			ID:     id,
			Name:   name,
			Icon:   r.GetDefault("Icon Path", ""),
			Rarity: r.GetDefault("Rarity", ""),
		}
		if id != "" {
			ix.ByID[id] = it
		}
		if name != "" {
			ix.ByName[strings.ToLower(name)] = it
		}
	}
	logger.Info("item table loaded",
		zap.String("path", path),
		zap.Int("by_id", len(ix.ByID)),
		zap.Int("by_name", len(ix.ByName)))
	return ix
}
