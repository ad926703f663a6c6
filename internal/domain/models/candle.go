package models

import (
	"encoding/json"
	"math"
	"time"

	"StockDesk/pkg/util"
)

// Candle represents one validated OHLC bar. Prices are always finite.
type Candle struct {
	Time  time.Time `json:"t"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
}

// candleTimeKeys lists the timestamp keys in lookup order.
var candleTimeKeys = []string{"t", "begin", "date", "datetime"}

// SanitizeCandles turns loosely typed candle records into validated candles.
// Records with no usable timestamp or a non-finite price are dropped; the
// survivors keep their input order. The result is never nil.
func SanitizeCandles(raw []map[string]any) []Candle {
	out := make([]Candle, 0, len(raw))
	for _, rec := range raw {
		c, ok := sanitizeCandle(rec)
		if !ok {
			continue
		}
		out = append(out, c)
	}
	return out
}

func sanitizeCandle(rec map[string]any) (Candle, bool) {
	if rec == nil {
		return Candle{}, false
	}
	ts, ok := candleTime(rec)
	if !ok {
		return Candle{}, false
	}
	o, ok1 := util.ParseNumber(rec["open"])
	h, ok2 := util.ParseNumber(rec["high"])
	l, ok3 := util.ParseNumber(rec["low"])
	c, ok4 := util.ParseNumber(rec["close"])
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return Candle{}, false
	}
	return Candle{Time: ts, Open: o, High: h, Low: l, Close: c}, true
}

// candleTime takes the first populated timestamp key; empty strings and numeric
// zero count as unpopulated. A populated key that does not parse drops the
// record instead of falling through to the next key.
func candleTime(rec map[string]any) (time.Time, bool) {
	for _, k := range candleTimeKeys {
		v, present := rec[k]
		if !present || isBlank(v) {
			continue
		}
		return parseCandleTime(v)
	}
	return time.Time{}, false
}

func parseCandleTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, !x.IsZero()
	case string:
		return util.ParseTime(x)
	case json.Number, float64, float32, int, int64, int32, uint, uint64, uint32:
		n, ok := util.ParseNumber(x)
		if !ok || n < math.MinInt64 || n >= math.MaxInt64 {
			return time.Time{}, false
		}
		return util.UnixAuto(int64(n)), true
	default:
		return time.Time{}, false
	}
}

func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case json.Number, float64, float32, int, int64, int32, uint, uint64, uint32:
		n, ok := util.ParseNumber(x)
		return !ok || n == 0
	default:
		return false
	}
}
