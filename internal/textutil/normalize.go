// Package textutil holds small text helpers shared by the command parser.
package textutil

import "strings"

// Normalize folds full-width alphanumerics and the ideographic space to their
// half-width equivalents and trims surrounding whitespace. Other full-width
// characters (kana in particular) are left alone so Japanese queries survive
// intact. Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	folded := strings.Map(foldRune, s)
	return strings.TrimSpace(folded)
}

func foldRune(r rune) rune {
	switch {
	case r >= 'Ａ' && r <= 'Ｚ':
		return r - 'Ａ' + 'A'
	case r >= 'ａ' && r <= 'ｚ':
		return r - 'ａ' + 'a'
	case r >= '０' && r <= '９':
		return r - '０' + '0'
	case r == '　': // ideographic space
		return ' '
	}
	return r
}
