package portfolio

import (
	"encoding/json"
	"testing"
)

func TestSummarize(t *testing.T) {
	buys := []Trade{
		buy(1, day(1), Stock, 10, 100),
		buy(2, day(2), Stock, 10, 100),
		buy(3, day(3), Stock, 10, 100),
		buy(4, day(4), Stock, 10, 100),
		buy(5, day(5), Option, 1, 2),
	}
	sells := []Trade{
		sell(11, day(11), Stock, 10, 105), // +50
		sell(12, day(12), Stock, 10, 130), // +300
		sell(13, day(13), Stock, 10, 90),  // -100
		sell(14, day(14), Stock, 10, 120), // +200
		sell(15, day(15), Option, 1, 2),   // 0
	}
	r := Summarize(MatchFIFO(buys, sells))

	if len(r.Pairs) != 5 {
		t.Fatalf("Summarize() has %d pairs, want 5", len(r.Pairs))
	}
	if got := r.ProfitableCount(); got != 3 {
		t.Errorf("ProfitableCount() = %d, want 3", got)
	}
	if r.LosingCount != 1 {
		t.Errorf("LosingCount = %d, want 1", r.LosingCount)
	}
	if want := USD(450); !r.Total.Equal(want) {
		t.Errorf("Total = %v, want %v", r.Total, want)
	}
	if want := USD(550); !r.ProfitableTotal.Equal(want) {
		t.Errorf("ProfitableTotal = %v, want %v", r.ProfitableTotal, want)
	}

	top := r.Top(2)
	if len(top) != 2 || top[0].SellID != 12 || top[1].SellID != 14 {
		t.Errorf("Top(2) = %+v, want sells 12 and 14", top)
	}
	if got := r.ProfitableCount(); got != 3 {
		t.Errorf("Top() changed the count to %d", got)
	}
	if got := len(r.Top(10)); got != 3 {
		t.Errorf("len(Top(10)) = %d, want 3", got)
	}
}

func TestSummarize_Empty(t *testing.T) {
	r := Summarize(nil)
	if !r.Total.IsZero() || r.ProfitableCount() != 0 || len(r.Top(3)) != 0 {
		t.Errorf("Summarize(nil) = %+v, want an empty summary", r)
	}
}

func TestSummarize_Currency(t *testing.T) {
	buys := []Trade{
		inEUR(buy(1, day(1), Stock, 10, 100)),
		inEUR(buy(2, day(2), Stock, 10, 100)),
	}
	sells := []Trade{
		inEUR(sell(11, day(11), Stock, 10, 130)), // +300
		inEUR(sell(12, day(12), Stock, 10, 90)),  // -100
	}
	r := Summarize(MatchFIFO(buys, sells))

	if want := M(200, "EUR"); !r.Total.Equal(want) {
		t.Errorf("Total = %v, want %v", r.Total, want)
	}
	if want := M(300, "EUR"); !r.ProfitableTotal.Equal(want) {
		t.Errorf("ProfitableTotal = %v, want %v", r.ProfitableTotal, want)
	}
	if r.Uncounted != 0 {
		t.Errorf("Uncounted = %d, want 0", r.Uncounted)
	}
}

func TestSummarize_MixedCurrencies(t *testing.T) {
	pairs := append(
		MatchFIFO([]Trade{buy(1, day(1), Stock, 10, 100)}, []Trade{sell(2, day(2), Stock, 10, 110)}),
		MatchFIFO([]Trade{inEUR(buy(3, day(3), Stock, 10, 100))}, []Trade{inEUR(sell(4, day(4), Stock, 10, 150))})...,
	)
	r := Summarize(pairs)

	if want := USD(100); !r.Total.Equal(want) {
		t.Errorf("Total = %v, want %v", r.Total, want)
	}
	if r.Uncounted != 1 {
		t.Errorf("Uncounted = %d, want 1", r.Uncounted)
	}
	if got := r.ProfitableCount(); got != 1 {
		t.Errorf("ProfitableCount() = %d, want 1", got)
	}
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(USD(1850))
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if want := `{"amount":1850.00,"currency":"USD"}`; string(b) != want {
		t.Errorf("json.Marshal() = %s, want %s", b, want)
	}
}

func TestMoneyFormat(t *testing.T) {
	tests := []struct {
		m           Money
		str, spoken string
	}{
		{USD(1850), "$1,850.00", "$1,850.00"},
		{USD(-12.5), "-$12.50", "minus $12.50"},
		{USD(0), "$0.00", "$0.00"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
		if got := tt.m.Spoken(); got != tt.spoken {
			t.Errorf("Spoken() = %q, want %q", got, tt.spoken)
		}
	}
}
