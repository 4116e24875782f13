package portfolio

import (
	"maps"
	"regexp"
	"slices"
	"strings"
)

// companies maps spoken company names to the tickers of the demo account.
var companies = map[string]string{
	"apple":     "AAPL",
	"nvidia":    "NVDA",
	"tesla":     "TSLA",
	"microsoft": "MSFT",
	"amazon":    "AMZN",
	"google":    "GOOGL",
	"alphabet":  "GOOGL",
	"meta":      "META",
	"facebook":  "META",
	"netflix":   "NFLX",
	"amd":       "AMD",
	"spy":       "SPY",
	"s&p":       "SPY",
	"s&p 500":   "SPY",
	"s and p":   "SPY",
}

// KnownTickers returns the tickers NormalizeSymbol knows a company name for, in alphabetical order.
func KnownTickers() []string {
	return slices.Compact(slices.Sorted(maps.Values(companies)))
}

var (
	noiseRE  = regexp.MustCompile(`\b(?:the|ticker|symbol|stock|stocks|shares|options?|inc|corp|corporation)\b`)
	tickerRE = regexp.MustCompile(`^[A-Z]{1,5}(?:\.[A-Z])?$`)
)

// NormalizeSymbol turns a symbol as heard or typed ("Apple", "$aapl", "a a p l", "NVDA stock")
// into a ticker. It returns false when nothing looks like a ticker.
func NormalizeSymbol(spoken string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(spoken))
	s = strings.Trim(s, "$?.!,")
	if t, ok := companies[s]; ok {
		return t, true
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.Join(strings.Fields(noiseRE.ReplaceAllString(s, " ")), " ")
	if t, ok := companies[s]; ok {
		return t, true
	}
	// spelled out letters: "a a p l", "n.v.d.a"
	if letters := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '.' || r == '-' }); len(letters) > 1 && allSingle(letters) {
		s = strings.Join(letters, "")
	}
	s = strings.ToUpper(strings.ReplaceAll(s, " ", ""))
	if !tickerRE.MatchString(s) {
		return "", false
	}
	return s, true
}

func allSingle(ws []string) bool {
	for _, w := range ws {
		if len(w) != 1 {
			return false
		}
	}
	return true
}
