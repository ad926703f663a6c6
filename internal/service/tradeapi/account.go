package tradeapi

import (
	"context"
	"strconv"

	"StockDesk/internal/domain/models"
	"StockDesk/internal/session"
	xhttp "StockDesk/pkg/http"
)

// Accounts reads the caller's profile and portfolio and the public leaderboard.
type Accounts struct {
	c *Client
}

func NewAccounts(c *Client) *Accounts {
	return &Accounts{c: c}
}

func (a *Accounts) Profile(ctx context.Context, sess *session.Session) (*models.Profile, error) {
	token := sess.BearerToken()
	if token == "" {
		return nil, models.ErrUnauthorized
	}
	var out models.Profile
	err := a.c.do(ctx, call{endpoint: "me", method: xhttp.MethodGet, path: "/api/me", token: token}, &out)
	if err != nil {
		return nil, apiError(err)
	}
	return &out, nil
}

func (a *Accounts) Portfolio(ctx context.Context, sess *session.Session) (*models.Portfolio, error) {
	token := sess.BearerToken()
	if token == "" {
		return nil, models.ErrUnauthorized
	}
	var out models.Portfolio
	err := a.c.do(ctx, call{endpoint: "portfolio", method: xhttp.MethodGet, path: "/api/portfolio", token: token}, &out)
	if err != nil {
		return nil, apiError(err)
	}
	if out.Positions == nil {
		out.Positions = []models.PortfolioPosition{}
	}
	return &out, nil
}

func (a *Accounts) Leaderboard(ctx context.Context, top int) ([]models.LeaderboardEntry, error) {
	var out struct {
		Items []models.LeaderboardEntry `json:"items"`
	}
	err := a.c.do(ctx, call{
		endpoint: "leaderboard",
		method:   xhttp.MethodGet,
		path:     "/api/leaderboard",
		query:    map[string][]string{"top": {strconv.Itoa(top)}},
	}, &out)
	if err != nil {
		return nil, apiError(err)
	}
	if out.Items == nil {
		out.Items = []models.LeaderboardEntry{}
	}
	return out.Items, nil
}
