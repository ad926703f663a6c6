package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewWithRegistry(reg)

	r.RecordTrade("BUY", "ok")
	r.RecordTrade("BUY", "ok")
	r.RecordPageLoad("stock", "unauthorized")
	r.RecordLastPrice("SBER", 301.5)

	if got := testutil.ToFloat64(r.tradesTotal.WithLabelValues("BUY", "ok")); got != 2 {
		t.Fatalf("expected 2 trades, got %v", got)
	}
	if got := testutil.ToFloat64(r.pageLoads.WithLabelValues("stock", "unauthorized")); got != 1 {
		t.Fatalf("expected 1 page load, got %v", got)
	}
	if got := testutil.ToFloat64(r.lastPrice.WithLabelValues("SBER")); got != 301.5 {
		t.Fatalf("unexpected gauge %v", got)
	}
}
