package timeexpr

import (
	"regexp"
	"strings"
)

// templates isolate the time phrase in a sentence. The phrase is the last group.
var templates = []*regexp.Regexp{
	regexp.MustCompile(`\btrades? (?:for|from|on|over|during|in|made) (?:the )?(.+)$`),
	regexp.MustCompile(`\b(?:bought|sold|traded|made|did) .*?\b(?:for|from|on|over|during|in) (?:the )?(.+)$`),
	regexp.MustCompile(`\b(?:for|from|on|over|during|in|since) (?:the )?(.+)$`),
}

// phrases are looked up anywhere in a sentence when no template applies. Longer phrases first.
var phrases = []*regexp.Regexp{
	regexp.MustCompile(`\b` + lastWord + ` (?:\w+ )trading days?\b`),
	regexp.MustCompile(`\b` + lastWord + ` \w+ days?\b`),
	regexp.MustCompile(`\b(?:(?:` + monthNames + `) \d{1,2}(?:st|nd|rd|th)?|\d{1,2}(?:st|nd|rd|th)? (?:of )?(?:` + monthNames + `))\b`),
	regexp.MustCompile(`\b(?:` + lastWord + `|this) (?:week|month)\b`),
	regexp.MustCompile(`\b(?:today|yesterday)\b`),
	regexp.MustCompile(`\b(?:last |on )?(?:` + weekdayNames + `)\b`),
}

// Extract isolates the part of a longer user query that refers to a time period, e.g. "last week"
// in "show me my trades from last week please".
//
// It is a best effort heuristic: it tries a fixed list of sentence templates, then scans for a
// fixed vocabulary of phrases. The first candidate that Parse understands is returned. Sentences
// that phrase time in any other way are not found.
func (p *Parser) Extract(query string) (string, bool) {
	text := normalize(query)
	if text == "" {
		return "", false
	}
	for _, re := range templates {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		candidate := normalize(m[len(m)-1])
		if _, ok := p.Parse(candidate); ok {
			return candidate, true
		}
	}
	for _, re := range phrases {
		for _, candidate := range re.FindAllString(text, -1) {
			candidate = strings.TrimSpace(candidate)
			if _, ok := p.Parse(candidate); ok {
				return candidate, true
			}
		}
	}
	return "", false
}
