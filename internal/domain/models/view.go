package models

import "time"

type ChartType string

const (
	ChartCandles ChartType = "candles"
	ChartLine    ChartType = "line"
)

// ParseChartType maps anything other than "line" to the candlestick chart.
func ParseChartType(s string) ChartType {
	if ChartType(s) == ChartLine {
		return ChartLine
	}
	return ChartCandles
}

// Chart is a drawing-ready data table. Rows follow the column order; the first
// column is the bar time.
type Chart struct {
	Type    ChartType `json:"type"`
	Empty   bool      `json:"empty"`
	Message string    `json:"message,omitempty"`
	Header  bool      `json:"header"`
	Columns []string  `json:"columns"`
	Rows    [][]any   `json:"rows"`
}

// StockView is the rendered state of the stock page for one instrument.
type StockView struct {
	Secid        string    `json:"secid"`
	Title        string    `json:"title"`
	Profile      *Profile  `json:"profile,omitempty"`
	Last         *float64  `json:"last"`
	LastLabel    string    `json:"last_label"`
	Position     Position  `json:"position"`
	QtyLabel     string    `json:"qty_label"`
	AvgLabel     string    `json:"avg_label"`
	Period       string    `json:"period"`
	From         time.Time `json:"from"`
	To           time.Time `json:"to"`
	ChartType    ChartType `json:"chart_type"`
	Chart        Chart     `json:"chart"`
	Candles      []Candle  `json:"-"`
	Status       string    `json:"status"`
	TradeMessage string    `json:"trade_message,omitempty"`
	Generation   uint64    `json:"generation"`
}

// DashboardView is the index page. Each widget fails on its own; the matching
// *Error field then carries the message to display.
type DashboardView struct {
	Profile          *Profile           `json:"profile,omitempty"`
	Leaderboard      []LeaderboardEntry `json:"leaderboard"`
	LeaderboardError string             `json:"leaderboard_error,omitempty"`
	Portfolio        *Portfolio         `json:"portfolio,omitempty"`
	PortfolioError   string             `json:"portfolio_error,omitempty"`
	Popular          []PopularItem      `json:"popular"`
	PopularError     string             `json:"popular_error,omitempty"`
}
