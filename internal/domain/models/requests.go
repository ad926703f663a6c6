package models

// Requests accepted by the page endpoints.

type StockPageRequest struct {
	Secid     string `param:"secid" validate:"required"`
	Period    string `query:"period"`
	ChartType string `query:"chart"`
}

type ChartRequest struct {
	Secid     string `param:"secid" validate:"required"`
	ChartType string `query:"chart" default:"candles" validate:"oneof=candles line"`
}

// TradeRequest keeps qty loosely typed: the form may post "12,5" or 12.5.
type TradeRequest struct {
	Qty any `json:"qty" form:"qty"`
}

type DashboardRequest struct {
	LeaderboardTop int `query:"leaderboard_top" validate:"gte=0,lte=100"`
	PopularTop     int `query:"popular_top" validate:"gte=0,lte=100"`
}
