package chart

import (
	"testing"
	"time"

	"StockDesk/internal/domain/models"
)

func sample() []models.Candle {
	t0 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	return []models.Candle{
		{Time: t0, Open: 10, High: 12, Low: 9, Close: 11},
		{Time: t0.AddDate(0, 0, 1), Open: 11, High: 13, Low: 10, Close: 12},
	}
}

func TestCandlestickRowOrder(t *testing.T) {
	c := Build(models.ChartCandles, sample())
	if c.Empty || c.Header || len(c.Rows) != 2 {
		t.Fatalf("unexpected chart %+v", c)
	}
	row := c.Rows[0]
	if row[1] != 9.0 || row[2] != 10.0 || row[3] != 11.0 || row[4] != 12.0 {
		t.Fatalf("expected [t, low, open, close, high], got %v", row)
	}
}

func TestLineRows(t *testing.T) {
	c := Build(models.ChartLine, sample())
	if c.Type != models.ChartLine || !c.Header || c.Columns[1] != "Close" {
		t.Fatalf("unexpected line chart %+v", c)
	}
	if len(c.Rows[1]) != 2 || c.Rows[1][1] != 12.0 {
		t.Fatalf("unexpected row %v", c.Rows[1])
	}
}

func TestEmptyChart(t *testing.T) {
	for _, typ := range []models.ChartType{models.ChartCandles, models.ChartLine, "bogus"} {
		c := Build(typ, nil)
		if !c.Empty || c.Message != NoDataMessage || c.Rows == nil {
			t.Fatalf("expected no-data chart for %q, got %+v", typ, c)
		}
	}
}
