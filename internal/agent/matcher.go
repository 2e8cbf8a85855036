package agent

import "strings"

// ColumnMatcher finds the dataset columns a free-text message refers to.
type ColumnMatcher interface {
	Mentioned(message string, columns []string) []string
}

// SubstringMatcher matches a column when its normalized name appears inside
// the normalized message, so "battery power" finds "battery_power". It is
// the default matcher.
type SubstringMatcher struct{}

func (SubstringMatcher) Mentioned(message string, columns []string) []string {
	msg := normalizeName(message)
	found := []string{}
	for _, col := range columns {
		if strings.Contains(msg, normalizeName(col)) {
			found = append(found, col)
		}
	}
	return found
}

// FuzzyMatcher scores each column against sliding token windows of the
// message with trigram Jaccard similarity, tolerating typos like "battery
// powr". More permissive than SubstringMatcher; not the default.
type FuzzyMatcher struct {
	Threshold float64
}

func (fm FuzzyMatcher) Mentioned(message string, columns []string) []string {
	threshold := fm.Threshold
	if threshold <= 0 {
		threshold = 0.6
	}

	tokens := strings.Fields(normalizeName(message))
	found := []string{}
	for _, col := range columns {
		name := normalizeName(col)
		width := len(strings.Fields(name))
		if width == 0 {
			continue
		}
		for i := 0; i+width <= len(tokens); i++ {
			window := strings.Join(tokens[i:i+width], " ")
			if trigramJaccard(window, name) >= threshold {
				found = append(found, col)
				break
			}
		}
	}
	return found
}

// normalizeName lower-cases and folds the separators column names commonly
// use, so user phrasing and header spelling compare equal.
func normalizeName(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return s
}

func trigramJaccard(a, b string) float64 {
	ga, gb := trigrams(a), trigrams(b)
	if len(ga) == 0 || len(gb) == 0 {
		return 0
	}
	intersection := 0
	for g := range ga {
		if gb[g] {
			intersection++
		}
	}
	union := len(ga) + len(gb) - intersection
	return float64(intersection) / float64(union)
}

func trigrams(s string) map[string]bool {
	set := map[string]bool{}
	if len(s) < 3 {
		if s != "" {
			set[s] = true
		}
		return set
	}
	for i := 0; i+3 <= len(s); i++ {
		set[s[i:i+3]] = true
	}
	return set
}
