package refdata

import (
	"encoding/json"
	"os"
	"strings"

	"go.uber.org/zap"
)

// LocaleMap resolves localization tags to display strings. Lookup is
// case-sensitive first with a case-insensitive fallback; an unknown tag
// falls back to the stripped tag itself so description text never goes
// missing entirely.
type LocaleMap struct {
	exact map[string]string
	lower map[string]string
}

// NewLocaleMap returns an empty map; lookups then pass tags through.
func NewLocaleMap() *LocaleMap {
	return &LocaleMap{exact: map[string]string{}, lower: map[string]string{}}
}

// StripTag removes the leading @ marker and surrounding quote characters from
// a raw description tag, yielding the locale lookup key.
func StripTag(tag string) string {
	tag = strings.TrimSpace(tag)
	tag = strings.Trim(tag, `"'`)
	tag = strings.TrimPrefix(tag, "@")
	return strings.Trim(tag, `"'`)
}

// Lookup resolves a raw tag to its display string.
func (lm *LocaleMap) Lookup(tag string) string {
	key := StripTag(tag)
	if key == "" {
		return ""
	}
	if v, ok := lm.exact[key]; ok {
		return v
	}
	if v, ok := lm.lower[strings.ToLower(key)]; ok {
		return v
	}
	return key
}

// Len reports how many locale entries are loaded.
func (lm *LocaleMap) Len() int { return len(lm.exact) }

// LoadLocale reads a flat key/string JSON document. Absence degrades to an
// empty map and tags then pass through as their own display value.
func LoadLocale(path string, logger *zap.Logger) *LocaleMap {
	lm := NewLocaleMap()
	if path == "" {
		return lm
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("locale document unavailable, tags pass through",
			zap.String("path", path), zap.Error(err))
		return lm
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn("locale document unparsable, tags pass through",
			zap.String("path", path), zap.Error(err))
		return lm
	}
	for k, v := range raw {
		lm.exact[k] = v
		lm.lower[strings.ToLower(k)] = v
	}
	logger.Info("locale loaded", zap.String("path", path), zap.Int("entries", lm.Len()))
	return lm
}
