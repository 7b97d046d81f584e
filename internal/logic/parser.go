// Package logic extracts atomic achievement tokens from the prerequisite
// expression language used by the quest export.
package logic

import "regexp"

// Token is one achievement reference with its polarity.
type Token struct {
	Name    string
	Negated bool
}

var tokenRe = regexp.MustCompile(`!?[A-Za-z0-9_-]+`)

// Parse scans expr for maximal runs of !?[alnum_-]+ and returns them in
// left-to-right order. Grouping and the && / || operators carry no meaning
// here: every token independently contributes an edge, with a ! prefix
// flipping its polarity. Empty input yields an empty sequence.
func Parse(expr string) []Token {
	if expr == "" {
		return nil
	}
	matches := tokenRe.FindAllString(expr, -1)
	out := make([]Token, 0, len(matches))
	for _, m := range matches {
		if m[0] == '!' {
			out = append(out, Token{Name: m[1:], Negated: true})
			continue
		}
		out = append(out, Token{Name: m})
	}
	return out
}
