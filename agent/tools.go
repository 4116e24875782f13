package agent

import (
	"context"
	"fmt"
	"strings"

	portfolio "github.com/etnz/portfolio-assistant"
	"github.com/etnz/portfolio-assistant/date"
	"github.com/etnz/portfolio-assistant/docs"
	"github.com/etnz/portfolio-assistant/renderer"
	"github.com/etnz/portfolio-assistant/store"
	"github.com/etnz/portfolio-assistant/timeexpr"
	"google.golang.org/genai"
)

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Tools give the models read access to the trades of one account.
type Tools struct {
	trades  store.Trades
	clock   *date.Clock
	parser  *timeexpr.Parser
	account string
}

// NewTools returns the tools over the trades of account.
func NewTools(trades store.Trades, clock *date.Clock, account string) *Tools {
	return &Tools{
		trades:  trades,
		clock:   clock,
		parser:  timeexpr.New(clock),
		account: account,
	}
}

// Functions returns the functions declared to the models.
func (t *Tools) Functions() []*Func {
	return []*Func{t.parseTime(), t.listTrades(), t.realizedGains()}
}

var periodSchema = &genai.Schema{
	Type: genai.TypeString,
	Description: `A time period as the user said it, in English.

	` + must(docs.GetTopic("periods")),
}

var symbolSchema = &genai.Schema{
	Type:        genai.TypeString,
	Description: `A ticker like "AAPL" or a company name like "Apple".`,
}

func (t *Tools) parseTime() *Func {
	const name = "parse_time_expression"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `Converts a time period into the dates it covers, in the trade history calendar.`,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{"time_period": periodSchema},
				Required:   []string{"time_period"},
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			q, err := t.period(args, true)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: name,
				Response: map[string]any{
					"kind":        q.Kind.String(),
					"startDate":   q.DateRange.StartDate.String(),
					"endDate":     q.DateRange.EndDate.String(),
					"description": q.DateRange.Description,
					"dayCount":    q.DateRange.DayCount,
				},
			}
		},
	}
}

func (t *Tools) listTrades() *Func {
	const name = "list_trades"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `Lists the trades made over a period, optionally for a single security or trade type.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"time_period": periodSchema,
					"symbol":      symbolSchema,
					"type": {
						Type:        genai.TypeString,
						Description: `"buy" or "sell".`,
					},
				},
				Required: []string{"time_period"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeObject,
				Description: "The answer to read to the user, and the trades as a markdown table.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			q, err := t.period(args, true)
			if err != nil {
				return errorResponse(id, name, err)
			}
			f, err := t.filter(args)
			if err != nil {
				return errorResponse(id, name, err)
			}
			tt, err := stringArg(args, "type", false)
			if err != nil {
				return errorResponse(id, name, err)
			}
			if tt != "" {
				if f.TradeType, err = portfolio.ParseTradeType(tt); err != nil {
					return errorResponse(id, name, err)
				}
			}
			trades, err := t.trades.List(ctx, f.InRange(q.DateRange.Range()))
			if err != nil {
				return errorResponse(id, name, fmt.Errorf("cannot read trades: %w", err))
			}
			view := renderer.NewTradeList(t.clock, f.Symbol, &q.DateRange, trades)
			return &genai.FunctionResponse{
				ID:   id,
				Name: name,
				Response: map[string]any{
					"answer":   view.Speech(),
					"markdown": renderer.RenderTrades(view),
					"count":    len(trades),
				},
			}
		},
	}
}

func (t *Tools) realizedGains() *Func {
	const name = "realized_gains"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Computes the profit and loss realized by closed positions, matching sells to buys first in first out.
			Without a time period it covers the whole history, with one it covers the sells made over it.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"time_period": periodSchema,
					"symbol":      symbolSchema,
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeObject,
				Description: "The answer to read to the user, and the realized gains as markdown tables.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			q, err := t.period(args, false)
			if err != nil {
				return errorResponse(id, name, err)
			}
			f, err := t.filter(args)
			if err != nil {
				return errorResponse(id, name, err)
			}
			trades, err := t.trades.List(ctx, f)
			if err != nil {
				return errorResponse(id, name, fmt.Errorf("cannot read trades: %w", err))
			}
			pairs := portfolio.MatchBySymbol(trades)
			var dr *timeexpr.DateRange
			if q != nil {
				dr = &q.DateRange
				pairs = portfolio.SoldIn(pairs, dr.Range())
			}
			realized := portfolio.Summarize(pairs)
			view := renderer.NewGains(t.clock, f.Symbol, dr, realized, 3)
			return &genai.FunctionResponse{
				ID:   id,
				Name: name,
				Response: map[string]any{
					"answer":   view.Speech(),
					"markdown": renderer.RenderGains(view),
					"total":    realized.Total.String(),
				},
			}
		},
	}
}

// period parses the time_period argument, nil if it is optional and absent.
func (t *Tools) period(args map[string]any, required bool) (*timeexpr.Query, error) {
	text, err := stringArg(args, "time_period", required)
	if err != nil || text == "" {
		return nil, err
	}
	q, ok := t.parser.Parse(text)
	if !ok {
		return nil, fmt.Errorf("time period %q is not supported, try one of: %s", text, strings.Join(renderer.NewClarification().Examples, ", "))
	}
	return &q, nil
}

// filter returns the filter on the account and the symbol argument.
func (t *Tools) filter(args map[string]any) (store.Filter, error) {
	f := store.Filter{Account: t.account}
	s, err := stringArg(args, "symbol", false)
	if err != nil || s == "" {
		return f, err
	}
	symbol, ok := portfolio.NormalizeSymbol(s)
	if !ok {
		return f, fmt.Errorf("%q is not a known symbol", s)
	}
	f.Symbol = symbol
	return f, nil
}
