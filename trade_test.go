package portfolio

import (
	"slices"
	"testing"
)

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"AAPL", "AAPL", true},
		{"aapl", "AAPL", true},
		{"$nvda", "NVDA", true},
		{"Apple", "AAPL", true},
		{"apple stock", "AAPL", true},
		{"the Tesla shares", "TSLA", true},
		{"a a p l", "AAPL", true},
		{"N.V.D.A.", "NVDA", true},
		{"NVDA options", "NVDA", true},
		{"brk.b", "BRK.B", true},
		{"S&P 500", "SPY", true},
		{"", "", false},
		{"not a ticker at all", "", false},
		{"12345", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizeSymbol(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("NormalizeSymbol(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseTypes(t *testing.T) {
	for in, want := range map[string]SecurityType{"Stock": Stock, "equity": Stock, "options": Option, " contract ": Option} {
		if got, err := ParseSecurityType(in); err != nil || got != want {
			t.Errorf("ParseSecurityType(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	if _, err := ParseSecurityType("bond"); err == nil {
		t.Errorf("ParseSecurityType(%q) must fail", "bond")
	}
	for in, want := range map[string]TradeType{"BUY": Buy, "bought": Buy, "sold": Sell, "sale": Sell} {
		if got, err := ParseTradeType(in); err != nil || got != want {
			t.Errorf("ParseTradeType(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	if _, err := ParseTradeType("hold"); err == nil {
		t.Errorf("ParseTradeType(%q) must fail", "hold")
	}
}

func TestValidate(t *testing.T) {
	valid := buy(1, day(1), Stock, 10, 100)
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	broken := []func(*Trade){
		func(t *Trade) { t.Symbol = "" },
		func(t *Trade) { t.SecurityType = "bond" },
		func(t *Trade) { t.TradeType = "hold" },
		func(t *Trade) { t.Quantity = Q(0) },
		func(t *Trade) { t.Price = USD(-1) },
	}
	for i, breakIt := range broken {
		tr := valid
		breakIt(&tr)
		if err := tr.Validate(); err == nil {
			t.Errorf("case %d: Validate() of %+v must fail", i, tr)
		}
	}
}

func TestUnit(t *testing.T) {
	if got := Stock.Unit(Q(1)); got != "share" {
		t.Errorf("Unit() = %q", got)
	}
	if got := Option.Unit(Q(3)); got != "contracts" {
		t.Errorf("Unit() = %q", got)
	}
}

func TestKnownTickers(t *testing.T) {
	got := KnownTickers()
	want := []string{"AAPL", "AMD", "AMZN", "GOOGL", "META", "MSFT", "NFLX", "NVDA", "SPY", "TSLA"}
	if !slices.Equal(got, want) {
		t.Errorf("KnownTickers() = %v, want %v", got, want)
	}
	for _, ticker := range got {
		if s, ok := NormalizeSymbol(ticker); !ok || s != ticker {
			t.Errorf("NormalizeSymbol(%q) = %q, %v", ticker, s, ok)
		}
	}
}
