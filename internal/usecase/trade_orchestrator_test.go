package usecase

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"StockDesk/internal/domain/models"
	xhttp "StockDesk/pkg/http"
)

type tradeFixture struct {
	log       *callLog
	accounts  *fakeAccounts
	positions *fakePositions
	market    *fakeMarket
	trading   *fakeTrading
	journal   *fakeJournal
	orch      *TradeOrchestrator
}

func newTradeFixture() *tradeFixture {
	log := &callLog{}
	f := &tradeFixture{
		log:       log,
		accounts:  &fakeAccounts{log: log, profile: &models.Profile{Account: models.Account{Cash: 900}}},
		positions: &fakePositions{log: log, pos: models.Position{Quantity: 3, AverageCost: 100}},
		market:    &fakeMarket{log: log, last: ptr(101)},
		trading:   &fakeTrading{log: log},
		journal:   &fakeJournal{},
	}
	f.orch = NewTradeOrchestrator(f.trading, f.accounts, f.positions, f.market, f.journal, nopMetrics{}, nil)
	return f
}

func TestSubmitRejectsBadInputWithoutNetwork(t *testing.T) {
	cases := []struct {
		name  string
		side  string
		secid string
		qty   any
		want  error
	}{
		{"blank secid", "BUY", "  ", 1, models.ErrInvalidInstrument},
		{"zero qty", "BUY", "SBER", 0, models.ErrInvalidQuantity},
		{"negative qty", "BUY", "SBER", "-2", models.ErrInvalidQuantity},
		{"text qty", "BUY", "SBER", "abc", models.ErrInvalidQuantity},
		{"infinite qty", "BUY", "SBER", math.Inf(1), models.ErrInvalidQuantity},
		{"missing qty", "BUY", "SBER", nil, models.ErrInvalidQuantity},
		{"bad side", "HOLD", "SBER", 1, models.ErrInvalidSide},
	}
	for _, tc := range cases {
		f := newTradeFixture()
		_, err := f.orch.Submit(context.Background(), validSession(), tc.side, tc.secid, tc.qty)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
		if len(f.log.list()) != 0 {
			t.Fatalf("%s: no calls expected, got %v", tc.name, f.log.list())
		}
	}
}

func TestSubmitRequiresSession(t *testing.T) {
	f := newTradeFixture()
	_, err := f.orch.Submit(context.Background(), nil, "BUY", "SBER", 1)
	if !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if len(f.log.list()) != 0 {
		t.Fatalf("no calls expected")
	}
}

func TestSubmitRefreshesInOrderAfterOrder(t *testing.T) {
	f := newTradeFixture()
	res, err := f.orch.Submit(context.Background(), validSession(), "buy", " sber ", "12,5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"submit", "profile", "position", "last"}
	if got := f.log.list(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected call order %v, got %v", want, got)
	}
	order := f.trading.orders[0]
	if order.Secid != "SBER" || order.Quantity != 12.5 || order.Side != models.SideBuy {
		t.Fatalf("unexpected order %+v", order)
	}
	if res.Message != "OK" || res.Profile.Account.Cash != 900 || res.Position.Quantity != 3 || *res.Last != 101 {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(f.journal.orders) != 1 || f.journal.accounts[0] != "7" {
		t.Fatalf("expected order to be journaled, got %+v", f.journal)
	}
}

func TestSubmitRefreshFailuresAreIndependent(t *testing.T) {
	f := newTradeFixture()
	f.accounts.profileErr = xhttp.UpstreamError("boom", 500)
	f.accounts.profile = nil
	f.market.last = nil

	res, err := f.orch.Submit(context.Background(), validSession(), "SELL", "SBER", 1)
	if err != nil {
		t.Fatalf("order should succeed, got %v", err)
	}
	if res.ProfileErr == nil || res.Profile != nil {
		t.Fatalf("expected profile failure to be captured")
	}
	if res.PositionErr != nil || res.Position.Quantity != 3 {
		t.Fatalf("position refresh should be unaffected: %+v", res)
	}
	if !errors.Is(res.LastErr, models.ErrNoLastPrice) || res.Last != nil {
		t.Fatalf("expected missing last price to be captured")
	}
}

func TestSubmitPositionFailureIsZero(t *testing.T) {
	f := newTradeFixture()
	f.positions.err = xhttp.UpstreamError("boom", 500)
	res, err := f.orch.Submit(context.Background(), validSession(), "BUY", "SBER", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PositionErr == nil || res.Position != models.ZeroPosition || res.Profile == nil || res.Last == nil {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestSubmitRejectedOrderSkipsRefresh(t *testing.T) {
	f := newTradeFixture()
	f.trading.err = xhttp.UpstreamError("Not enough cash", 400)
	_, err := f.orch.Submit(context.Background(), validSession(), "BUY", "SBER", 1)
	var appErr *xhttp.AppError
	if !errors.As(err, &appErr) || appErr.Message != "Not enough cash" {
		t.Fatalf("expected server message, got %v", err)
	}
	if got := f.log.list(); !reflect.DeepEqual(got, []string{"submit"}) {
		t.Fatalf("expected no refresh after rejection, got %v", got)
	}
	if len(f.journal.orders) != 0 {
		t.Fatalf("rejected order must not be journaled")
	}
}
