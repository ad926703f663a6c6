package usecase

import (
	"context"
	"sync"
	"time"

	"StockDesk/internal/domain/models"
	"StockDesk/internal/session"
)

// callLog records the order in which fakes were called.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(name string) {
	l.mu.Lock()
	l.calls = append(l.calls, name)
	l.mu.Unlock()
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

func (l *callLog) count(name string) int {
	n := 0
	for _, c := range l.list() {
		if c == name {
			n++
		}
	}
	return n
}

type fakeAccounts struct {
	log          *callLog
	profile      *models.Profile
	profileErr   error
	portfolio    *models.Portfolio
	portfolioErr error
	leaders      []models.LeaderboardEntry
	leadersErr   error
	lastTop      int
}

func (f *fakeAccounts) Profile(context.Context, *session.Session) (*models.Profile, error) {
	f.log.add("profile")
	return f.profile, f.profileErr
}

func (f *fakeAccounts) Portfolio(context.Context, *session.Session) (*models.Portfolio, error) {
	f.log.add("portfolio")
	return f.portfolio, f.portfolioErr
}

func (f *fakeAccounts) Leaderboard(_ context.Context, top int) ([]models.LeaderboardEntry, error) {
	f.log.add("leaderboard")
	f.lastTop = top
	return f.leaders, f.leadersErr
}

type fakePositions struct {
	log *callLog
	pos models.Position
	err error
}

func (f *fakePositions) FetchPosition(ctx context.Context, sess *session.Session, secid string) models.Position {
	pos, err := f.LookupPosition(ctx, sess, secid)
	if err != nil {
		return models.ZeroPosition
	}
	return pos
}

func (f *fakePositions) LookupPosition(context.Context, *session.Session, string) (models.Position, error) {
	f.log.add("position")
	if f.err != nil {
		return models.ZeroPosition, f.err
	}
	return f.pos, nil
}

type fakeMarket struct {
	log     *callLog
	last    *float64
	candles []models.Candle

	// block, when set, holds the first FetchCandles call until released.
	mu      sync.Mutex
	block   chan struct{}
	entered chan struct{}
	ranges  [][2]time.Time
}

func (f *fakeMarket) FetchLast(context.Context, string) *float64 {
	f.log.add("last")
	return f.last
}

func (f *fakeMarket) RefreshLast(ctx context.Context, secid string) *float64 {
	return f.FetchLast(ctx, secid)
}

func (f *fakeMarket) FetchCandles(_ context.Context, _ string, from, to time.Time) []models.Candle {
	f.log.add("candles")
	f.mu.Lock()
	f.ranges = append(f.ranges, [2]time.Time{from, to})
	block := f.block
	f.block = nil
	f.mu.Unlock()
	if block != nil {
		close(f.entered)
		<-block
	}
	return f.candles
}

type fakeTrading struct {
	log    *callLog
	err    error
	orders []models.TradeOrder
}

func (f *fakeTrading) Submit(_ context.Context, _ *session.Session, order models.TradeOrder) error {
	f.log.add("submit")
	f.orders = append(f.orders, order)
	return f.err
}

type fakePopular struct {
	log     *callLog
	items   []models.PopularItem
	err     error
	lastTop int
}

func (f *fakePopular) FetchPopular(_ context.Context, top int) ([]models.PopularItem, error) {
	f.log.add("popular")
	f.lastTop = top
	return f.items, f.err
}

type fakeJournal struct {
	accounts []string
	orders   []models.TradeOrder
}

func (f *fakeJournal) Record(_ context.Context, accountID string, order models.TradeOrder) error {
	f.accounts = append(f.accounts, accountID)
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeJournal) Close() error { return nil }

type nopMetrics struct{}

func (nopMetrics) RecordTrade(string, string)      {}
func (nopMetrics) RecordPageLoad(string, string)   {}
func (nopMetrics) RecordLastPrice(string, float64) {}
func (nopMetrics) RecordError(string)              {}
func (nopMetrics) RecordLatency(string, float64)   {}

func ptr(f float64) *float64 { return &f }

func validSession() *session.Session {
	return session.New("sid", "opaque", "7", time.Now())
}

func sampleCandles() []models.Candle {
	t0 := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	return []models.Candle{
		{Time: t0, Open: 10, High: 12, Low: 9, Close: 11},
		{Time: t0.AddDate(0, 0, 1), Open: 11, High: 13, Low: 10, Close: 12},
	}
}
