package seed

import "strings"

// caliberAliases maps retailer spellings to the names used by the caliber filter.
var caliberAliases = map[string][]string{
	"9mm":     {"9mm luger", "9x19", "9mm para", "9 mm"},
	".223":    {".223 rem", ".223 remington", "223 rem", "223 remington"},
	"5.56x45": {"5.56", "5.56 nato", "5.56x45mm"},
	".308":    {".308 win", ".308 winchester", "308 win", "308 winchester"},
	".45 ACP": {".45 auto", "45 acp", ".45acp"},
}

var aliasIndex = func() map[string]string {
	idx := make(map[string]string)
	for canonical, aliases := range caliberAliases {
		idx[strings.ToLower(canonical)] = canonical
		for _, a := range aliases {
			idx[a] = canonical
		}
	}
	return idx
}()

// NormalizeCaliber returns the canonical spelling of a known caliber alias.
// Unknown calibers are returned trimmed but otherwise untouched.
func NormalizeCaliber(c string) string {
	c = strings.TrimSpace(c)
	if canonical, ok := aliasIndex[strings.ToLower(c)]; ok {
		return canonical
	}
	return c
}
