// Package resolve turns raw objective-task rows into display-ready
// description strings: locale lookup, placeholder substitution and the
// recursive sub-task expansion.
package resolve

import "strings"

// Kind tags an inline token embedded in description text.
type Kind string

// The closed set of inline token kinds. Downstream renderers parse exactly
// this grammar; adding a kind is a renderer-visible change.
const (
	KindItem     Kind = "ITEM"
	KindCreature Kind = "VC"
	KindPOI      Kind = "POI"
)

// Token is one structured inline reference. Fields keep insertion order so
// serialization is stable.
type Token struct {
	Kind   Kind
	keys   []string
	values map[string]string
}

// NewToken starts an inline token of the given kind.
func NewToken(kind Kind) *Token {
	return &Token{Kind: kind, values: map[string]string{}}
}

// Set adds or replaces a field, preserving first-set order.
func (t *Token) Set(key, value string) *Token {
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
	return t
}

// String serializes the token in the {{KIND::key=value::...}} micro-format.
func (t *Token) String() string {
	var b strings.Builder
	b.WriteString("{{")
	b.WriteString(string(t.Kind))
	for _, k := range t.keys {
		b.WriteString("::")
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(t.values[k])
	}
	b.WriteString("}}")
	return b.String()
}
