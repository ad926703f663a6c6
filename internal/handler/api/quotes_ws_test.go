package api

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	models "StockDesk/internal/domain/models"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// scriptedMarket returns the queued prices in order, then repeats the last one.
type scriptedMarket struct {
	mu     sync.Mutex
	prices []*float64
	calls  int
}

func (m *scriptedMarket) FetchLast(ctx context.Context, secid string) *float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.calls
	m.calls++
	if i >= len(m.prices) {
		i = len(m.prices) - 1
	}
	return m.prices[i]
}

func (m *scriptedMarket) RefreshLast(ctx context.Context, secid string) *float64 {
	return m.FetchLast(ctx, secid)
}

func (m *scriptedMarket) FetchCandles(ctx context.Context, secid string, from, to time.Time) []models.Candle {
	return nil
}

func price(v float64) *float64 { return &v }

func TestQuotesPumpSkipsMissingPrices(t *testing.T) {
	market := &scriptedMarket{prices: []*float64{nil, nil, price(101.5)}}
	h := NewQuotesHandler(nil, market, time.Millisecond, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	var got []models.Quote
	h.pump(ctx, "SBER", func(q models.Quote) error {
		got = append(got, q)
		cancel()
		return nil
	})
	if len(got) != 1 || got[0].Secid != "SBER" || got[0].Last != 101.5 {
		t.Fatalf("unexpected quotes %+v", got)
	}
	if market.calls < 3 {
		t.Fatalf("expected retries before a price, got %d calls", market.calls)
	}
}

func TestQuotesPumpStopsOnSendError(t *testing.T) {
	market := &scriptedMarket{prices: []*float64{price(1)}}
	h := NewQuotesHandler(nil, market, time.Millisecond, time.Millisecond)
	done := make(chan struct{})
	go func() {
		h.pump(context.Background(), "SBER", func(models.Quote) error { return context.Canceled })
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("pump did not stop after send error")
	}
}

func TestQuotesStreamOverWebsocket(t *testing.T) {
	e := echo.New()
	NewQuotesHandler(nil, &scriptedMarket{prices: []*float64{price(260.5)}}, 10*time.Millisecond, time.Second).RegisterRoutes(e)
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/quotes/sber"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var q models.Quote
	if err := conn.ReadJSON(&q); err != nil {
		t.Fatalf("read: %v", err)
	}
	if q.Secid != "SBER" || q.Last != 260.5 || q.At.IsZero() {
		t.Fatalf("unexpected quote %+v", q)
	}
}
