package usecase

import (
	"context"
	"time"

	"StockDesk/internal/domain/models"
	domrepo "StockDesk/internal/domain/repository"
)

// CandlesUseCase resolves a period selector and loads the sanitized candles for it.
type CandlesUseCase struct {
	market domrepo.MarketData
	now    func() time.Time
}

func NewCandlesUseCase(market domrepo.MarketData) *CandlesUseCase {
	return &CandlesUseCase{market: market, now: time.Now}
}

type GetCandlesParams struct {
	Secid  string
	Period domrepo.Period
}

type GetCandlesResult struct {
	Secid   string
	Period  domrepo.Period
	From    time.Time
	To      time.Time
	Count   int
	Candles []models.Candle
}

// GetCandles never fails: market data faults surface as an empty candle set.
func (uc *CandlesUseCase) GetCandles(ctx context.Context, p GetCandlesParams) *GetCandlesResult {
	r := domrepo.ResolvePeriod(p.Period, uc.now())
	candles := uc.market.FetchCandles(ctx, p.Secid, r.From, r.To)
	if candles == nil {
		candles = []models.Candle{}
	}
	return &GetCandlesResult{
		Secid:   p.Secid,
		Period:  p.Period,
		From:    r.From,
		To:      r.To,
		Count:   len(candles),
		Candles: candles,
	}
}
