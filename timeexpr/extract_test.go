package timeexpr

import "testing"

func TestExtract(t *testing.T) {
	p, _ := newTestParser(wednesday)
	tests := []struct {
		query string
		want  string
		ok    bool
	}{
		{"Show me my trades from last week", "last week", true},
		{"What trades did I make on Monday?", "monday", true},
		{"How much did I make in the past 5 trading days", "past 5 trading days", true},
		{"did I sell any apple last week", "last week", true},
		{"list trades for November 18th.", "november 18th", true},
		{"what did I trade yesterday", "yesterday", true},
		{"trades over the last three days please", "last three days", true},
		{"anything on nvidia during this month", "this month", true},
		{"last week", "last week", true},
		{"what's my portfolio worth", "", false},
		{"trades from the future", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, ok := p.Extract(tt.query)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Extract(%q) = %q, %v, want %q, %v", tt.query, got, ok, tt.want, tt.ok)
			}
			if ok {
				if _, parsed := p.Parse(got); !parsed {
					t.Errorf("Extract(%q) = %q which does not parse", tt.query, got)
				}
			}
		})
	}
}
