package extract

import "regexp"

var amountPattern = regexp.MustCompile(`€([\d.]+)m`)

// ParseAmount returns the numeric part of a Transfermarkt style money value
// ("€31.20m" -> "31.20"). Anything else, like "-" or "free transfer", is
// returned as is.
func ParseAmount(text string) string {
	if m := amountPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return text
}
