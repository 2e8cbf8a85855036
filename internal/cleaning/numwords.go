package cleaning

import "strings"

var wordValues = map[string]float64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var wordScales = map[string]float64{
	"hundred":  100,
	"thousand": 1_000,
	"million":  1_000_000,
	"billion":  1_000_000_000,
}

// parseWordNumber resolves English number words like "twenty-eight" or
// "three hundred and five". Any unrecognized token rejects the whole string.
func parseWordNumber(s string) (float64, bool) {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '-' })
	if len(words) == 0 {
		return 0, false
	}

	total, current := 0.0, 0.0
	seen := false
	for _, w := range words {
		if w == "and" {
			continue
		}
		if v, ok := wordValues[w]; ok {
			current += v
			seen = true
			continue
		}
		if scale, ok := wordScales[w]; ok {
			if current == 0 {
				current = 1
			}
			if scale == 100 {
				current *= scale
			} else {
				total += current * scale
				current = 0
			}
			seen = true
			continue
		}
		return 0, false
	}

	if !seen {
		return 0, false
	}
	return total + current, true
}
