package server

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// maxPayload bounds the size of webhook bodies.
const maxPayload = 1 << 20

// request holds the arguments of a webhook call, wherever the voice platform put them.
type request struct {
	Query        string
	Symbol       string
	TimePeriod   string
	TradeType    string
	SecurityType string
}

// decodeRequest reads a webhook body and locates the arguments using paths, the JSONPaths of the
// query field. The other arguments are looked up next to the query: for "$.message.args.query"
// the symbol is read at "$.message.args.symbol".
//
// Values that are JSON documents encoded as strings, as some platforms send tool call arguments,
// are decoded first.
func decodeRequest(r io.Reader, paths []string) (request, error) {
	var jobj any
	if err := json.NewDecoder(io.LimitReader(r, maxPayload)).Decode(&jobj); err != nil {
		return request{}, fmt.Errorf("invalid json payload: %w", err)
	}
	jobj = expandJSONStrings(jobj)

	var req request
	for _, path := range paths {
		prefix, ok := strings.CutSuffix(path, ".query")
		if !ok {
			// a custom path, only the query can be found.
			if req.Query == "" {
				req.Query = lookup(path, jobj)
			}
			continue
		}
		fill(&req.Query, prefix+".query", jobj)
		fill(&req.Symbol, prefix+".symbol", jobj)
		fill(&req.TimePeriod, prefix+".time_period", jobj)
		fill(&req.TradeType, prefix+".type", jobj)
		fill(&req.SecurityType, prefix+".security", jobj)
	}
	return req, nil
}

// fill sets *v to the value at path, unless it is already set.
func fill(v *string, path string, jobj any) {
	if *v == "" {
		*v = lookup(path, jobj)
	}
}

// lookup returns the string at path in jobj, or "" if there is none.
func lookup(path string, jobj any) string {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return ""
	}
	// jsonpath returns a list for wildcard and slice paths: keep the first one if any.
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return ""
		}
		jval = jlist[0]
	}
	switch v := jval.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

// expandJSONStrings replaces string values holding a JSON object by the decoded object.
func expandJSONStrings(jval any) any {
	switch v := jval.(type) {
	case map[string]any:
		for k, x := range v {
			v[k] = expandJSONStrings(x)
		}
	case []any:
		for i, x := range v {
			v[i] = expandJSONStrings(x)
		}
	case string:
		if s := strings.TrimSpace(v); strings.HasPrefix(s, "{") {
			var obj map[string]any
			if err := json.Unmarshal([]byte(s), &obj); err == nil {
				return expandJSONStrings(obj)
			}
		}
	}
	return jval
}
