package tradeapi

import (
	"context"
	"errors"
	"testing"
	"time"

	"StockDesk/internal/domain/models"
	icache "StockDesk/internal/service/cache"
)

type countingMarket struct {
	last        *float64
	candles     []models.Candle
	lastCalls   int
	candleCalls int
}

func (m *countingMarket) FetchLast(context.Context, string) *float64 {
	m.lastCalls++
	return m.last
}

func (m *countingMarket) RefreshLast(ctx context.Context, secid string) *float64 {
	return m.FetchLast(ctx, secid)
}

func (m *countingMarket) FetchCandles(context.Context, string, time.Time, time.Time) []models.Candle {
	m.candleCalls++
	return m.candles
}

type brokenCache struct{}

func (brokenCache) GetBytes(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("cache down")
}

func (brokenCache) SetBytes(context.Context, string, []byte, time.Duration) error {
	return errors.New("cache down")
}

func TestCachedMarketReusesLastPrice(t *testing.T) {
	v := 101.25
	next := &countingMarket{last: &v}
	m := NewCachedMarket(next, icache.NewTTLCache(), time.Minute, time.Minute, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got := m.FetchLast(ctx, "SBER")
		if got == nil || *got != 101.25 {
			t.Fatalf("unexpected last %v", got)
		}
	}
	if next.lastCalls != 1 {
		t.Fatalf("expected one upstream call, got %d", next.lastCalls)
	}
}

func TestCachedMarketDoesNotCacheMissingPrice(t *testing.T) {
	next := &countingMarket{}
	m := NewCachedMarket(next, icache.NewTTLCache(), time.Minute, time.Minute, nil)
	_ = m.FetchLast(context.Background(), "SBER")
	_ = m.FetchLast(context.Background(), "SBER")
	if next.lastCalls != 2 {
		t.Fatalf("expected failures to be retried, got %d calls", next.lastCalls)
	}
}

func TestCachedMarketReusesCandlesPerRange(t *testing.T) {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	next := &countingMarket{candles: []models.Candle{{Time: day, Open: 1, High: 2, Low: 0.5, Close: 1.5}}}
	m := NewCachedMarket(next, icache.NewTTLCache(), time.Minute, time.Minute, nil)
	ctx := context.Background()
	from, to := day.AddDate(0, -1, 0), day

	first := m.FetchCandles(ctx, "SBER", from, to)
	second := m.FetchCandles(ctx, "SBER", from, to)
	if next.candleCalls != 1 {
		t.Fatalf("expected one upstream call, got %d", next.candleCalls)
	}
	if len(second) != 1 || !second[0].Time.Equal(first[0].Time) || second[0].Close != 1.5 {
		t.Fatalf("cached candles differ: %+v vs %+v", second, first)
	}

	_ = m.FetchCandles(ctx, "SBER", from.AddDate(0, -1, 0), to)
	if next.candleCalls != 2 {
		t.Fatalf("expected a new range to miss the cache")
	}
}

func TestCachedMarketFallsThroughOnCacheErrors(t *testing.T) {
	v := 5.0
	next := &countingMarket{last: &v}
	m := NewCachedMarket(next, brokenCache{}, time.Minute, time.Minute, nil)
	if got := m.FetchLast(context.Background(), "SBER"); got == nil || *got != 5 {
		t.Fatalf("expected upstream value, got %v", got)
	}
}

func TestCachedMarketZeroTTLDisablesCaching(t *testing.T) {
	v := 5.0
	next := &countingMarket{last: &v}
	m := NewCachedMarket(next, icache.NewTTLCache(), 0, 0, nil)
	_ = m.FetchLast(context.Background(), "SBER")
	_ = m.FetchLast(context.Background(), "SBER")
	if next.lastCalls != 2 {
		t.Fatalf("expected no caching with zero ttl, got %d calls", next.lastCalls)
	}
}

func TestCachedMarketRefreshLastBypassesAndUpdatesCache(t *testing.T) {
	v := 100.0
	next := &countingMarket{last: &v}
	m := NewCachedMarket(next, icache.NewTTLCache(), time.Minute, time.Minute, nil)
	ctx := context.Background()

	_ = m.FetchLast(ctx, "SBER")
	fresh := 104.5
	next.last = &fresh
	if got := m.RefreshLast(ctx, "SBER"); got == nil || *got != 104.5 {
		t.Fatalf("expected fresh price, got %v", got)
	}
	if next.lastCalls != 2 {
		t.Fatalf("expected refresh to reach upstream, got %d calls", next.lastCalls)
	}
	if got := m.FetchLast(ctx, "SBER"); got == nil || *got != 104.5 {
		t.Fatalf("expected cache to hold refreshed price, got %v", got)
	}
	if next.lastCalls != 2 {
		t.Fatalf("expected cached read after refresh, got %d calls", next.lastCalls)
	}
}
