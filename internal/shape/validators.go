package shape

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// rfc1123Layouts are the timestamp renderings the exchange has been
// observed to use for the time payload's rfc1123 field. The two-digit
// year variant is what the live endpoint actually returns.
var rfc1123Layouts = []string{
	"Mon, 2 Jan 06 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	time.RFC1123,
	time.RFC1123Z,
}

type timePayload struct {
	Unixtime *int64 `json:"unixtime"`
	RFC1123  string `json:"rfc1123"`
}

// validateTime checks that the payload carries a numeric Unix timestamp
// and that the human-readable rendering agrees with it.
func validateTime(result []byte) error {
	var p timePayload
	if err := json.Unmarshal(result, &p); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if p.Unixtime == nil {
		return fmt.Errorf("unixtime field is missing")
	}
	if p.RFC1123 == "" {
		return fmt.Errorf("rfc1123 field is missing")
	}

	var parsed time.Time
	var err error
	for _, layout := range rfc1123Layouts {
		parsed, err = time.Parse(layout, p.RFC1123)
		if err == nil {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("rfc1123 field %q is not a parseable timestamp", p.RFC1123)
	}

	if parsed.Unix() != *p.Unixtime {
		return fmt.Errorf("rfc1123 %q (unix %d) disagrees with unixtime %d",
			p.RFC1123, parsed.Unix(), *p.Unixtime)
	}

	return nil
}

// tickerPayload is one pair's quote record. Prices and volumes arrive as
// decimal strings; trade counts as integers.
type tickerPayload struct {
	Ask    []string `json:"a"` // price, whole lot volume, lot volume
	Bid    []string `json:"b"` // price, whole lot volume, lot volume
	Last   []string `json:"c"` // price, lot volume
	Volume []string `json:"v"` // today, last 24 hours
	VWAP   []string `json:"p"` // today, last 24 hours
	Trades []int64  `json:"t"` // today, last 24 hours
	Low    []string `json:"l"` // today, last 24 hours
	High   []string `json:"h"` // today, last 24 hours
	Open   string   `json:"o"`
}

// validateTicker checks the per-pair quote records and, when a pair was
// requested, that the payload actually carries it.
func validateTicker(result []byte, pair string) error {
	var tickers map[string]tickerPayload
	if err := json.Unmarshal(result, &tickers); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(tickers) == 0 {
		return fmt.Errorf("no pair entries in ticker payload")
	}

	if pair != "" {
		found := false
		for key := range tickers {
			if pairMatches(key, pair) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("ticker for pair %q not found in payload", pair)
		}
	}

	for key, t := range tickers {
		if err := validateTickerRecord(t); err != nil {
			return fmt.Errorf("pair %s: %w", key, err)
		}
	}
	return nil
}

func validateTickerRecord(t tickerPayload) error {
	for _, f := range []struct {
		name string
		vals []string
	}{
		{"a", t.Ask},
		{"b", t.Bid},
		{"c", t.Last},
		{"l", t.Low},
		{"h", t.High},
		{"o", []string{t.Open}},
	} {
		for i, v := range f.vals {
			price, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s[%d] %q is not numeric", f.name, i, v)
			}
			if price <= 0 {
				return fmt.Errorf("%s[%d] must be positive, got %q", f.name, i, v)
			}
		}
	}

	// Today's volume can legitimately be zero right after midnight; the
	// trailing 24-hour window cannot be for an actively traded pair.
	for _, f := range []struct {
		name string
		vals []string
	}{
		{"v", t.Volume},
		{"p", t.VWAP},
	} {
		for i, v := range f.vals {
			vol, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s[%d] %q is not numeric", f.name, i, v)
			}
			if i > 0 && vol <= 0 {
				return fmt.Errorf("%s[%d] must be positive, got %q", f.name, i, v)
			}
		}
	}

	if len(t.Trades) == 2 && t.Trades[1] <= 0 {
		return fmt.Errorf("t[1] must be positive, got %d", t.Trades[1])
	}

	return nil
}

// pairMatches reports whether a response pair key names the requested
// pair. The exchange canonicalizes pair names with X/Z asset-class
// prefixes ("xbtusd" comes back as "XXBTZUSD"), so the comparison also
// tries the key with the classifiers stripped.
func pairMatches(key, pair string) bool {
	k := strings.ToUpper(key)
	p := strings.ToUpper(pair)
	if k == p {
		return true
	}
	if len(k) == 8 && k[0] == 'X' && k[4] == 'Z' {
		return k[1:4]+k[5:] == p
	}
	return false
}

type ordersPayload struct {
	Open *map[string]json.RawMessage `json:"open"`
}

// validateOrders checks that the payload maps order ids to order
// records under "open". An empty mapping is a legal shape: an account
// may simply have no open orders.
func validateOrders(result []byte) error {
	var p ordersPayload
	if err := json.Unmarshal(result, &p); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if p.Open == nil {
		return fmt.Errorf("open field is missing")
	}

	for id, rec := range *p.Open {
		if id == "" {
			return fmt.Errorf("empty order id in open mapping")
		}
		if !bytes.HasPrefix(bytes.TrimSpace(rec), []byte("{")) {
			return fmt.Errorf("order %s: record is not an object", id)
		}
	}
	return nil
}
