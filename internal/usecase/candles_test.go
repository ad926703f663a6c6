package usecase

import (
	"context"
	"testing"
	"time"

	domrepo "StockDesk/internal/domain/repository"
)

func TestGetCandlesResolvesPeriod(t *testing.T) {
	m := &fakeMarket{log: &callLog{}, candles: sampleCandles()}
	uc := NewCandlesUseCase(m)
	now := time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	res := uc.GetCandles(context.Background(), GetCandlesParams{Secid: "SBER", Period: domrepo.PeriodYTD})
	if res.Count != 2 || res.Period != domrepo.PeriodYTD {
		t.Fatalf("unexpected result %+v", res)
	}
	if !m.ranges[0][0].Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) || !m.ranges[0][1].Equal(now) {
		t.Fatalf("unexpected range %v", m.ranges[0])
	}
}

func TestGetCandlesNilIsEmpty(t *testing.T) {
	uc := NewCandlesUseCase(&fakeMarket{log: &callLog{}})
	res := uc.GetCandles(context.Background(), GetCandlesParams{Secid: "SBER", Period: domrepo.Period1M})
	if res.Candles == nil || res.Count != 0 {
		t.Fatalf("expected empty candles, got %+v", res)
	}
}
