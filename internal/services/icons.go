package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultCategoryIcon is used for program categories matching no keyword
const DefaultCategoryIcon = "book-open"

var categoryIcons = []struct {
	keywords []string
	icon     string
}{
	{[]string{"economie", "achat"}, "wallet"},
	{[]string{"ecologie", "climat", "energie"}, "leaf"},
	{[]string{"immigration"}, "fingerprint"},
	{[]string{"securite", "justice"}, "scale"},
	{[]string{"social", "sante", "education"}, "heart-pulse"},
	{[]string{"europe", "international", "monde"}, "globe"},
	{[]string{"institution"}, "landmark"},
}

// foldAccents lowercases s and strips combining marks ("Écologie" -> "ecologie")
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// CategoryIcon picks an icon name for a program category
func CategoryIcon(name string) string {
	n := foldAccents(name)
	for _, rule := range categoryIcons {
		for _, kw := range rule.keywords {
			if strings.Contains(n, kw) {
				return rule.icon
			}
		}
	}
	return DefaultCategoryIcon
}
