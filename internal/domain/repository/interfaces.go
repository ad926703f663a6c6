package repository

import (
	"context"
	"time"

	"StockDesk/internal/domain/models"
	"StockDesk/internal/session"
)

// MarketData reads public market data. Failures never escape: a missing price is
// nil and a failed candle request is an empty slice.
type MarketData interface {
	FetchLast(ctx context.Context, secid string) *float64
	// RefreshLast reads the last price from the server, bypassing any cache.
	RefreshLast(ctx context.Context, secid string) *float64
	FetchCandles(ctx context.Context, secid string, from, to time.Time) []models.Candle
}

// PopularList reads the "popular today" ranking.
type PopularList interface {
	FetchPopular(ctx context.Context, top int) ([]models.PopularItem, error)
}

// Positions reads the caller's holdings.
type Positions interface {
	// FetchPosition returns the zero position on any failure.
	FetchPosition(ctx context.Context, sess *session.Session, secid string) models.Position
	// LookupPosition keeps failures distinct from a flat position.
	LookupPosition(ctx context.Context, sess *session.Session, secid string) (models.Position, error)
}

// Trading submits orders.
type Trading interface {
	Submit(ctx context.Context, sess *session.Session, order models.TradeOrder) error
}

// Accounts reads account-level data.
type Accounts interface {
	Profile(ctx context.Context, sess *session.Session) (*models.Profile, error)
	Portfolio(ctx context.Context, sess *session.Session) (*models.Portfolio, error)
	Leaderboard(ctx context.Context, top int) ([]models.LeaderboardEntry, error)
}

// Authenticator exchanges a provider login payload for credentials.
type Authenticator interface {
	LoginTelegram(ctx context.Context, payload models.TelegramAuth) (*models.Credentials, error)
}

// TradeJournal records submitted orders for auditing.
type TradeJournal interface {
	Record(ctx context.Context, accountID string, order models.TradeOrder) error
	Close() error
}

type Metrics interface {
	RecordTrade(side, result string)
	RecordPageLoad(page, result string)
	RecordLastPrice(secid string, price float64)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}

// Sessions persists signed-in sessions.
type Sessions interface {
	Create(ctx context.Context, token, accountID string) (*session.Session, error)
	Get(ctx context.Context, id string) (*session.Session, error)
	Delete(ctx context.Context, id string) error
	Touch(ctx context.Context, id string) error
}
