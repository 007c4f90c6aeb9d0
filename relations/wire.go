package relations

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/opyruso/nw-leaderboard-sub000/core"
)

// responseWire is the top-level relationship document. Every list entry is kept
// raw and decoded on its own so one malformed entry never sinks the response.
type responseWire struct {
	Origin         json.RawMessage   `json:"origin"`
	Alternates     []json.RawMessage `json:"alternates"`
	RelatedPlayers []json.RawMessage `json:"relatedPlayers"`
	Edges          []json.RawMessage `json:"edges"`
}

type playerWire struct {
	PlayerID   flexString `json:"playerId"`
	PlayerName flexString `json:"playerName"`
	RunCount   flexCount  `json:"runCount"`
	Origin     flexBool   `json:"origin"`
	Alternate  flexBool   `json:"alternate"`
}

type edgeWire struct {
	SourcePlayerID flexString `json:"sourcePlayerId"`
	TargetPlayerID flexString `json:"targetPlayerId"`
	RunCount       flexCount  `json:"runCount"`
	AlternateLink  flexBool   `json:"alternateLink"`
}

// DecodePayload parses a relationship document into a core.Payload.
//
// Player ids may be JSON strings or numbers; counts may be numbers or numeric
// strings. Entries that cannot be decoded are dropped; entries without a usable
// id are passed through and skipped later by core.Merge. Only a body that is
// not a JSON object at all is an error (ErrMalformedResponse).
func DecodePayload(body []byte) (*core.Payload, error) {
	var raw responseWire
	if err := json.Unmarshal(body, &raw); err != nil {
		// A list field of the wrong shape fails the whole struct; retry field by field.
		fields := map[string]json.RawMessage{}
		if err2 := json.Unmarshal(body, &fields); err2 != nil {
			return nil, ErrMalformedResponse
		}
		raw = responseWire{Origin: fields["origin"]}
		_ = json.Unmarshal(fields["alternates"], &raw.Alternates)
		_ = json.Unmarshal(fields["relatedPlayers"], &raw.RelatedPlayers)
		_ = json.Unmarshal(fields["edges"], &raw.Edges)
	}

	p := &core.Payload{}
	if origin, ok := decodePlayer(raw.Origin); ok {
		p.Origin = &origin
	}
	p.Alternates = decodePlayers(raw.Alternates)
	p.RelatedPlayers = decodePlayers(raw.RelatedPlayers)
	for _, msg := range raw.Edges {
		var w edgeWire
		if json.Unmarshal(msg, &w) != nil {
			continue
		}
		p.Edges = append(p.Edges, core.EdgeEntry{
			SourcePlayerID: string(w.SourcePlayerID),
			TargetPlayerID: string(w.TargetPlayerID),
			RunCount:       w.RunCount.ptr(),
			AlternateLink:  bool(w.AlternateLink),
		})
	}

	return p, nil
}

func decodePlayers(msgs []json.RawMessage) []core.PlayerEntry {
	var out []core.PlayerEntry
	for _, msg := range msgs {
		if entry, ok := decodePlayer(msg); ok {
			out = append(out, entry)
		}
	}

	return out
}

func decodePlayer(msg json.RawMessage) (core.PlayerEntry, bool) {
	if len(msg) == 0 || bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
		return core.PlayerEntry{}, false
	}
	var w playerWire
	if json.Unmarshal(msg, &w) != nil {
		return core.PlayerEntry{}, false
	}

	return core.PlayerEntry{
		PlayerID:   string(w.PlayerID),
		PlayerName: string(w.PlayerName),
		RunCount:   w.RunCount.value(),
		Origin:     bool(w.Origin),
		Alternate:  bool(w.Alternate),
	}, true
}

// flexString accepts a JSON string or number; anything else decodes as "".
// Numbers written with a fraction or exponent are normalized to their shortest
// decimal form, so 1e3 and 1000.0 both read as "1000".
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if json.Unmarshal(b, &s) == nil {
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if json.Unmarshal(b, &n) == nil {
		*f = flexString(numericID(n.String()))
		return nil
	}
	*f = ""

	return nil
}

// numericID renders a JSON number as a player id. Plain integers keep their
// digits even past the float64 range.
func numericID(text string) string {
	if !strings.ContainsAny(text, ".eE") {
		return text
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return text
	}
	if v == 0 {
		return "0"
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

// flexCount accepts a JSON number or numeric string; anything else is unknown.
type flexCount struct {
	n     int64
	valid bool
}

func (f *flexCount) UnmarshalJSON(b []byte) error {
	*f = flexCount{}
	var text string
	var n json.Number
	switch {
	case json.Unmarshal(b, &n) == nil:
		text = n.String()
	case json.Unmarshal(b, &text) == nil:
		text = strings.TrimSpace(text)
	default:
		return nil
	}
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		*f = flexCount{n: v, valid: true}
		return nil
	}
	if v, err := strconv.ParseFloat(text, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		*f = flexCount{n: floatCount(v), valid: true}
	}

	return nil
}

// floatCount floors v and clamps it to the int64 range.
func floatCount(v float64) int64 {
	switch {
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(math.Floor(v))
	}
}

func (f flexCount) value() int64 {
	return f.n
}

func (f flexCount) ptr() *int64 {
	if !f.valid {
		return nil
	}
	v := f.n

	return &v
}

// flexBool accepts true/false, "true"/"false" and numbers (non-zero is true).
type flexBool bool

func (f *flexBool) UnmarshalJSON(b []byte) error {
	var v bool
	if json.Unmarshal(b, &v) == nil {
		*f = flexBool(v)
		return nil
	}
	var s string
	if json.Unmarshal(b, &s) == nil {
		parsed, _ := strconv.ParseBool(strings.TrimSpace(s))
		*f = flexBool(parsed)
		return nil
	}
	var n float64
	if json.Unmarshal(b, &n) == nil {
		*f = n != 0
		return nil
	}
	*f = false

	return nil
}
