package tradeapi

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestFetchLastParsesNumericString(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/market/last/SBER" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("market data must not send credentials")
		}
		writeJSON(w, 200, `{"secid":"SBER","last":"301,5"}`)
	})
	got := NewMarket(c).FetchLast(context.Background(), "SBER")
	if got == nil || *got != 301.5 {
		t.Fatalf("unexpected last %v", got)
	}
}

func TestFetchLastNilOnFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 404, `{"detail":"Last price not found"}`)
	})
	if got := NewMarket(c).FetchLast(context.Background(), "SBER"); got != nil {
		t.Fatalf("expected nil, got %v", *got)
	}
}

func TestFetchLastNilOnUnparsableValue(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, `{"last":"n/a"}`)
	})
	if got := NewMarket(c).FetchLast(context.Background(), "SBER"); got != nil {
		t.Fatalf("expected nil, got %v", *got)
	}
}

func TestFetchCandlesSendsRangeAndSanitizes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/api/market/candles/GAZP" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if q.Get("from") != "2024-03-15" || q.Get("to") != "2024-06-15" || q.Get("interval") != "24" {
			t.Errorf("unexpected query %v", q)
		}
		writeJSON(w, 200, `{"candles":[
			{"t":"2024-06-13","open":1,"high":2,"low":0.5,"close":1.5},
			{"t":"2024-06-14","open":"x","high":2,"low":0.5,"close":1.5},
			7,
			{"begin":"2024-06-15 00:00:00","open":"1,1","high":2,"low":1,"close":1.9}
		]}`)
	})
	from := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	got := NewMarket(c).FetchCandles(context.Background(), "GAZP", from, to)
	if len(got) != 2 {
		t.Fatalf("expected 2 candles, got %d", len(got))
	}
	if got[1].Open != 1.1 {
		t.Fatalf("unexpected open %v", got[1].Open)
	}
}

func TestFetchCandlesFailureIsEmpty(t *testing.T) {
	for _, body := range []string{`{"candles": 5}`, `garbage`} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, 200, body)
		})
		got := NewMarket(c).FetchCandles(context.Background(), "GAZP", time.Now(), time.Now())
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil slice for %q, got %#v", body, got)
		}
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 500, `{}`)
	})
	if got := NewMarket(c).FetchCandles(context.Background(), "GAZP", time.Now(), time.Now()); got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice on 500")
	}
}

func TestFetchPopularFillsNameAndNumbers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("top") != "15" {
			t.Errorf("unexpected top %q", r.URL.Query().Get("top"))
		}
		writeJSON(w, 200, `{"items":[{"secid":"SBER","name":"Sberbank","last":301.5,"valtoday":"1000"},{"secid":"YDEX","last":null}]}`)
	})
	items, err := NewMarket(c).FetchPopular(context.Background(), 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || *items[0].ValToday != 1000 {
		t.Fatalf("unexpected items %+v", items)
	}
	if items[1].Name != "YDEX" || items[1].Last != nil {
		t.Fatalf("unexpected fallback item %+v", items[1])
	}
}
