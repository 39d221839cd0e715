package application

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldName lowercases value and strips diacritics so "joão" matches "Joao".
func foldName(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, value)
	if err != nil {
		folded = value
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// sortByName orders items by the pt-BR collation of name, breaking ties with less.
func sortByName[T any](items []T, name func(T) string, less func(a, b T) bool) {
	c := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		if cmp := c.CompareString(name(items[i]), name(items[j])); cmp != 0 {
			return cmp < 0
		}
		return less(items[i], items[j])
	})
}
