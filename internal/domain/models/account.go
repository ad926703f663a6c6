package models

import (
	"encoding/json"
	"strings"
)

type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
}

// DisplayName joins first and last name, falling back to "no name".
func (u User) DisplayName() string {
	parts := make([]string, 0, 2)
	for _, p := range []string{u.FirstName, u.LastName} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "no name"
	}
	return strings.Join(parts, " ")
}

// Handle returns "@username" or an empty string.
func (u User) Handle() string {
	if u.Username == "" {
		return ""
	}
	return "@" + u.Username
}

// MarshalJSON adds the rendered display_name and handle next to the raw fields.
func (u User) MarshalJSON() ([]byte, error) {
	type raw User
	return json.Marshal(struct {
		raw
		DisplayName string `json:"display_name"`
		Handle      string `json:"handle,omitempty"`
	}{raw(u), u.DisplayName(), u.Handle()})
}

type Account struct {
	ID   int64   `json:"id,omitempty"`
	Cash float64 `json:"cash"`
}

// Profile is the authenticated caller as returned by /api/me.
type Profile struct {
	User    User    `json:"user"`
	Account Account `json:"account"`
}

type LeaderboardEntry struct {
	Rank   int     `json:"rank"`
	User   User    `json:"user"`
	Equity float64 `json:"equity"`
	Cash   float64 `json:"cash"`
}

type PortfolioSummary struct {
	PositionsValue  float64 `json:"positions_value"`
	PositionsPnLRub float64 `json:"positions_pnl_rub"`
	PositionsPnLPct float64 `json:"positions_pnl_pct"`
	Equity          float64 `json:"equity"`
}

type PortfolioPosition struct {
	Secid    string  `json:"secid"`
	Name     string  `json:"name"`
	Qty      float64 `json:"qty"`
	AvgPrice float64 `json:"avg_price"`
	Last     float64 `json:"last"`
	Value    float64 `json:"value"`
	PnLRub   float64 `json:"pnl_rub"`
	PnLPct   float64 `json:"pnl_pct"`
}

type Portfolio struct {
	Account   Account             `json:"account"`
	Summary   PortfolioSummary    `json:"summary"`
	Positions []PortfolioPosition `json:"positions"`
}
