package server

import (
	"fmt"
	"net/http"
	"strconv"

	portfolio "github.com/etnz/portfolio-assistant"
	"github.com/etnz/portfolio-assistant/date"
	"github.com/etnz/portfolio-assistant/renderer"
	"github.com/etnz/portfolio-assistant/store"
	"github.com/etnz/portfolio-assistant/timeexpr"
)

const (
	topPairs     = 3   // profitable pairs detailed in profit and loss answers
	defaultLimit = 100 // trades listed by the api
	maxLimit     = 1000
)

// handleTradesWebhook answers "what trades did I make last week?".
func (s *Server) handleTradesWebhook(w http.ResponseWriter, r *http.Request) {
	log := s.log.With().Str("handler", "trades").Str("request_id", requestID(r.Context())).Logger()

	req, err := decodeRequest(r.Body, s.queryPaths)
	if err != nil {
		httpError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Query == "" && req.TimePeriod == "" {
		httpError(w, r, http.StatusBadRequest, "missing query")
		return
	}
	q, ok := s.parsePeriod(req)
	if !ok {
		log.Debug().Str("query", req.Query).Str("time_period", req.TimePeriod).Msg("time period not understood")
		s.clarify(w, r, renderer.NewClarification())
		return
	}
	f, err := s.webhookFilter(req)
	if err != nil {
		httpError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Symbol != "" && f.Symbol == "" {
		s.clarify(w, r, unknownSymbol(req.Symbol))
		return
	}

	trades, err := s.trades.List(r.Context(), f.InRange(q.DateRange.Range()))
	if err != nil {
		log.Error().Err(err).Msg("failed to list trades")
		httpError(w, r, http.StatusInternalServerError, "failed to list trades")
		return
	}
	log.Info().Str("period", q.DateRange.Description).Str("symbol", f.Symbol).Int("trades", len(trades)).Msg("trades answered")

	view := renderer.NewTradeList(s.clock, f.Symbol, &q.DateRange, trades)
	s.answer(w, r, view, renderer.RenderTrades(view), map[string]any{
		"query":  q,
		"trades": nonNil(trades),
	})
}

// handleProfitLossWebhook answers "what did I make on Apple?", optionally over a period of sells.
func (s *Server) handleProfitLossWebhook(w http.ResponseWriter, r *http.Request) {
	log := s.log.With().Str("handler", "profit-loss").Str("request_id", requestID(r.Context())).Logger()

	req, err := decodeRequest(r.Body, s.queryPaths)
	if err != nil {
		httpError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	// the period is optional, but a period that was asked for must be understood.
	var period *timeexpr.Query
	if req.TimePeriod != "" {
		q, ok := s.parsePeriod(req)
		if !ok {
			s.clarify(w, r, renderer.NewClarification())
			return
		}
		period = &q
	} else if phrase, ok := s.parser.Extract(req.Query); ok {
		if q, ok := s.parser.Parse(phrase); ok {
			period = &q
		}
	}

	f, err := s.webhookFilter(req)
	if err != nil {
		httpError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Symbol != "" && f.Symbol == "" {
		s.clarify(w, r, unknownSymbol(req.Symbol))
		return
	}
	// sells in the period may close buys made before it: read the whole history.
	f.TradeType = ""
	trades, err := s.trades.List(r.Context(), f)
	if err != nil {
		log.Error().Err(err).Msg("failed to list trades")
		httpError(w, r, http.StatusInternalServerError, "failed to list trades")
		return
	}

	pairs := portfolio.MatchBySymbol(trades)
	var dr *timeexpr.DateRange
	if period != nil {
		dr = &period.DateRange
		pairs = portfolio.SoldIn(pairs, dr.Range())
	}
	realized := portfolio.Summarize(pairs)
	log.Info().Str("symbol", f.Symbol).Int("pairs", len(pairs)).Str("total", realized.Total.String()).Msg("profit and loss answered")

	view := renderer.NewGains(s.clock, f.Symbol, dr, realized, topPairs)
	data := map[string]any{
		"closed":          len(realized.Pairs),
		"profitable":      realized.ProfitableCount(),
		"losing":          realized.LosingCount,
		"total":           realized.Total,
		"profitableTotal": realized.ProfitableTotal,
		"top":             nonNil(realized.Top(topPairs)),
	}
	if period != nil {
		data["query"] = period
	}
	s.answer(w, r, view, renderer.RenderGains(view), data)
}

// handleParseTimeWebhook returns the date range of a time expression, for debugging.
func (s *Server) handleParseTimeWebhook(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r.Body, s.queryPaths)
	if err != nil {
		httpError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Query == "" && req.TimePeriod == "" {
		httpError(w, r, http.StatusBadRequest, "missing query")
		return
	}
	q, ok := s.parsePeriod(req)
	if !ok {
		s.clarify(w, r, renderer.NewClarification())
		return
	}
	span, err := s.clock.FormatRange(q.DateRange.StartDate.String(), q.DateRange.EndDate.String())
	if err != nil {
		httpError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, Answer{
		RequestID: requestID(r.Context()),
		Text:      fmt.Sprintf("I understood %q as %s.", q.DateRange.Description, span),
		Data:      q,
	})
}

// handleListTrades serves the trades for UI cards.
//
// Query parameters: symbol, type (buy|sell), security (stock|option), from and to (inclusive,
// YYYY-MM-DD in demo coordinates), order (asc|desc) and limit.
func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	f := store.Filter{
		Account: s.account,
		Desc:    params.Get("order") == "desc",
		Limit:   defaultLimit,
	}
	if v := params.Get("symbol"); v != "" {
		symbol, ok := portfolio.NormalizeSymbol(v)
		if !ok {
			httpError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid symbol %q", v))
			return
		}
		f.Symbol = symbol
	}
	if v := params.Get("type"); v != "" {
		tt, err := portfolio.ParseTradeType(v)
		if err != nil {
			httpError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		f.TradeType = tt
	}
	if v := params.Get("security"); v != "" {
		st, err := portfolio.ParseSecurityType(v)
		if err != nil {
			httpError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		f.SecurityType = st
	}
	for _, b := range []struct {
		name string
		d    *date.Date
	}{{"from", &f.From}, {"to", &f.To}} {
		v := params.Get(b.name)
		if v == "" {
			continue
		}
		d, err := date.Parse(v)
		if err != nil {
			httpError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid %s: %v", b.name, err))
			return
		}
		*b.d = d
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		httpError(w, r, http.StatusBadRequest, "from is after to")
		return
	}
	if v := params.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			httpError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", v))
			return
		}
		f.Limit = min(limit, maxLimit)
	}

	trades, err := s.trades.List(r.Context(), f)
	if err != nil {
		s.log.Error().Err(err).Str("handler", "api-trades").Str("request_id", requestID(r.Context())).Msg("failed to list trades")
		httpError(w, r, http.StatusInternalServerError, "failed to list trades")
		return
	}

	type card struct {
		portfolio.Trade
		When string `json:"when"`
	}
	cards := make([]card, 0, len(trades))
	for _, t := range trades {
		when, err := s.clock.FormatRelative(t.Date.String())
		if err != nil {
			when = t.Date.String()
		}
		cards = append(cards, card{Trade: t, When: when})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"request_id": requestID(r.Context()),
		"count":      len(cards),
		"trades":     cards,
	})
}

// handleDemoClock reports how actual dates are mapped into the demo database.
func (s *Server) handleDemoClock(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"anchor":      s.clock.Anchor(),
		"actualToday": s.clock.ActualToday(),
		"demoToday":   s.clock.DemoToday(),
		"offset":      s.clock.Offset(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := s.trades.List(r.Context(), store.Filter{Limit: 1}); err != nil {
		s.log.Error().Err(err).Msg("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parsePeriod resolves the time period of req: the explicit argument first, else the phrase
// found in the query.
func (s *Server) parsePeriod(req request) (timeexpr.Query, bool) {
	text := req.TimePeriod
	if text == "" {
		text = req.Query
	}
	if q, ok := s.parser.Parse(text); ok {
		return q, true
	}
	phrase, ok := s.parser.Extract(text)
	if !ok {
		return timeexpr.Query{}, false
	}
	return s.parser.Parse(phrase)
}

// webhookFilter converts the webhook arguments into a filter. An unknown symbol leaves the
// filter symbol empty.
func (s *Server) webhookFilter(req request) (store.Filter, error) {
	f := store.Filter{Account: s.account}
	if req.Symbol != "" {
		f.Symbol, _ = portfolio.NormalizeSymbol(req.Symbol)
	}
	if req.TradeType != "" {
		tt, err := portfolio.ParseTradeType(req.TradeType)
		if err != nil {
			return f, err
		}
		f.TradeType = tt
	}
	if req.SecurityType != "" {
		st, err := portfolio.ParseSecurityType(req.SecurityType)
		if err != nil {
			return f, err
		}
		f.SecurityType = st
	}
	return f, nil
}

// answer writes a successful webhook answer.
func (s *Server) answer(w http.ResponseWriter, r *http.Request, view speaker, markdown string, data any) {
	html, err := renderer.HTML(markdown)
	if err != nil {
		s.log.Warn().Err(err).Str("request_id", requestID(r.Context())).Msg("failed to render html")
	}
	writeJSON(w, http.StatusOK, Answer{
		RequestID: requestID(r.Context()),
		Text:      view.Speech(),
		Markdown:  markdown,
		HTML:      html,
		Data:      data,
	})
}

// clarify asks the user to rephrase, it is not an error for the voice platform.
func (s *Server) clarify(w http.ResponseWriter, r *http.Request, c *renderer.Clarification) {
	markdown := renderer.RenderClarification(c)
	html, _ := renderer.HTML(markdown)
	writeJSON(w, http.StatusOK, Answer{
		RequestID:          requestID(r.Context()),
		Text:               c.Speech(),
		Markdown:           markdown,
		HTML:               html,
		NeedsClarification: true,
	})
}

func unknownSymbol(spoken string) *renderer.Clarification {
	return &renderer.Clarification{
		Message: fmt.Sprintf("I don't know which stock %q is. Could you spell its ticker?", spoken),
	}
}

// nonNil makes empty lists encode as [] rather than null.
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
