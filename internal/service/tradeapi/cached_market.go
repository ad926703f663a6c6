package tradeapi

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"StockDesk/internal/domain/models"
	"StockDesk/internal/domain/repository"
	icache "StockDesk/internal/service/cache"
	"StockDesk/internal/service/metrics"
	applogger "StockDesk/pkg/logger"
	"StockDesk/pkg/util"
)

// CachedMarket keeps last prices and sanitized candle sets for a short TTL in
// front of another MarketData. Failed reads (nil price, empty candles) are not
// cached.
type CachedMarket struct {
	next       repository.MarketData
	cache      icache.BytesCache
	quoteTTL   time.Duration
	candlesTTL time.Duration
	log        *applogger.Logger
}

func NewCachedMarket(next repository.MarketData, cache icache.BytesCache, quoteTTL, candlesTTL time.Duration, log *applogger.Logger) *CachedMarket {
	if log == nil {
		log = applogger.Nop()
	}
	metrics.Register()
	return &CachedMarket{next: next, cache: cache, quoteTTL: quoteTTL, candlesTTL: candlesTTL, log: log}
}

func (m *CachedMarket) FetchLast(ctx context.Context, secid string) *float64 {
	key := "last:" + secid
	if b, ok := m.lookup(ctx, "last", key); ok {
		if v, err := strconv.ParseFloat(string(b), 64); err == nil {
			return &v
		}
	}
	last := m.next.FetchLast(ctx, secid)
	m.storeLast(ctx, secid, last)
	return last
}

// RefreshLast always asks the next MarketData and writes a fresh price back, so
// later FetchLast calls see it.
func (m *CachedMarket) RefreshLast(ctx context.Context, secid string) *float64 {
	last := m.next.RefreshLast(ctx, secid)
	m.storeLast(ctx, secid, last)
	return last
}

func (m *CachedMarket) storeLast(ctx context.Context, secid string, last *float64) {
	if last != nil {
		m.store(ctx, "last:"+secid, []byte(strconv.FormatFloat(*last, 'g', -1, 64)), m.quoteTTL)
	}
}

func (m *CachedMarket) FetchCandles(ctx context.Context, secid string, from, to time.Time) []models.Candle {
	key := "candles:" + secid + ":" + util.ISODate(from) + ":" + util.ISODate(to)
	if b, ok := m.lookup(ctx, "candles", key); ok {
		var candles []models.Candle
		if err := json.Unmarshal(b, &candles); err == nil && candles != nil {
			return candles
		}
	}
	candles := m.next.FetchCandles(ctx, secid, from, to)
	if len(candles) > 0 {
		if b, err := json.Marshal(candles); err == nil {
			m.store(ctx, key, b, m.candlesTTL)
		}
	}
	return candles
}

func (m *CachedMarket) lookup(ctx context.Context, kind, key string) ([]byte, bool) {
	b, ok, err := m.cache.GetBytes(ctx, key)
	if err != nil {
		m.log.Warn("market cache get error", applogger.String("key", key), applogger.Error(err))
		metrics.CacheLookups.WithLabelValues(kind, "error").Inc()
		return nil, false
	}
	if !ok {
		metrics.CacheLookups.WithLabelValues(kind, "miss").Inc()
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues(kind, "hit").Inc()
	return b, true
}

func (m *CachedMarket) store(ctx context.Context, key string, b []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := m.cache.SetBytes(ctx, key, b, ttl); err != nil {
		m.log.Warn("market cache set error", applogger.String("key", key), applogger.Error(err))
	}
}
