package tradeapi

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"StockDesk/internal/domain/models"
	xhttp "StockDesk/pkg/http"
	applogger "StockDesk/pkg/logger"
	"StockDesk/pkg/util"
)

// candleInterval is the daily bar interval understood by the candles endpoint.
const candleInterval = "24"

// Market reads public market data. None of its calls send credentials.
type Market struct {
	c *Client
}

func NewMarket(c *Client) *Market {
	return &Market{c: c}
}

// FetchLast returns the last traded price, or nil when the server has none or
// the call fails for any reason.
func (m *Market) FetchLast(ctx context.Context, secid string) *float64 {
	var out struct {
		Last interface{} `json:"last"`
	}
	err := m.c.do(ctx, call{
		endpoint: "market_last",
		method:   xhttp.MethodGet,
		path:     "/api/market/last/" + url.PathEscape(secid),
	}, &out)
	if err != nil {
		m.c.log.Debug("last price unavailable", applogger.String("secid", secid), applogger.Error(err))
		return nil
	}
	v, ok := util.ParseNumber(out.Last)
	if !ok {
		return nil
	}
	return &v
}

// RefreshLast is FetchLast; Market keeps no cache.
func (m *Market) RefreshLast(ctx context.Context, secid string) *float64 {
	return m.FetchLast(ctx, secid)
}

// FetchCandles returns sanitized daily candles between from and to. Any failure
// yields an empty slice.
func (m *Market) FetchCandles(ctx context.Context, secid string, from, to time.Time) []models.Candle {
	var out struct {
		Candles []interface{} `json:"candles"`
	}
	err := m.c.do(ctx, call{
		endpoint: "market_candles",
		method:   xhttp.MethodGet,
		path:     "/api/market/candles/" + url.PathEscape(secid),
		query: map[string][]string{
			"from":     {util.ISODate(from)},
			"to":       {util.ISODate(to)},
			"interval": {candleInterval},
		},
	}, &out)
	if err != nil {
		m.c.log.Warn("candles unavailable", applogger.String("secid", secid), applogger.Error(err))
		return []models.Candle{}
	}
	raw := make([]map[string]interface{}, 0, len(out.Candles))
	for _, item := range out.Candles {
		if rec, ok := item.(map[string]interface{}); ok {
			raw = append(raw, rec)
		}
	}
	return models.SanitizeCandles(raw)
}

// FetchPopular returns today's most traded instruments.
func (m *Market) FetchPopular(ctx context.Context, top int) ([]models.PopularItem, error) {
	var out struct {
		Items []struct {
			Secid    string      `json:"secid"`
			Name     string      `json:"name"`
			Last     interface{} `json:"last"`
			ValToday interface{} `json:"valtoday"`
		} `json:"items"`
	}
	err := m.c.do(ctx, call{
		endpoint: "market_popular",
		method:   xhttp.MethodGet,
		path:     "/api/market/popular-today",
		query:    map[string][]string{"top": {strconv.Itoa(top)}},
	}, &out)
	if err != nil {
		return nil, apiError(err)
	}
	items := make([]models.PopularItem, 0, len(out.Items))
	for _, it := range out.Items {
		p := models.PopularItem{Secid: it.Secid, Name: it.Name}
		if p.Name == "" {
			p.Name = it.Secid
		}
		if v, ok := util.ParseNumber(it.Last); ok {
			p.Last = &v
		}
		if v, ok := util.ParseNumber(it.ValToday); ok {
			p.ValToday = &v
		}
		items = append(items, p)
	}
	return items, nil
}
