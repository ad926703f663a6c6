// Package chart turns sanitized candles into drawing-ready data tables.
package chart

import (
	"StockDesk/internal/domain/models"
)

// NoDataMessage is shown instead of a chart when there is nothing to draw.
const NoDataMessage = "no data"

var (
	candleColumns = []string{"Date", "Low", "Open", "Close", "High"}
	lineColumns   = []string{"Date", "Close"}
)

// Build renders candles as the requested chart type. Unknown types draw the
// candlestick chart.
func Build(t models.ChartType, candles []models.Candle) models.Chart {
	if t != models.ChartLine {
		t = models.ChartCandles
	}
	if len(candles) == 0 {
		return models.Chart{Type: t, Empty: true, Message: NoDataMessage, Rows: [][]any{}}
	}
	if t == models.ChartLine {
		return Line(candles)
	}
	return Candlestick(candles)
}

// Candlestick lays rows out as [time, low, open, close, high] with no header
// row, the order candlestick widgets expect.
func Candlestick(candles []models.Candle) models.Chart {
	rows := make([][]any, 0, len(candles))
	for _, c := range candles {
		rows = append(rows, []any{c.Time, c.Low, c.Open, c.Close, c.High})
	}
	return models.Chart{Type: models.ChartCandles, Columns: candleColumns, Rows: rows}
}

// Line draws closes over time under a "Date", "Close" header.
func Line(candles []models.Candle) models.Chart {
	rows := make([][]any, 0, len(candles))
	for _, c := range candles {
		rows = append(rows, []any{c.Time, c.Close})
	}
	return models.Chart{Type: models.ChartLine, Header: true, Columns: lineColumns, Rows: rows}
}
