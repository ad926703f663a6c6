package usecase

import (
	"context"
	"errors"
	"testing"

	"StockDesk/internal/domain/models"
	xhttp "StockDesk/pkg/http"
)

func newDashboardFixture() (*Dashboard, *fakeAccounts, *fakePopular) {
	log := &callLog{}
	accounts := &fakeAccounts{
		log:       log,
		profile:   &models.Profile{User: models.User{FirstName: "Ivan"}},
		portfolio: &models.Portfolio{Positions: []models.PortfolioPosition{}},
		leaders:   []models.LeaderboardEntry{{Rank: 1, Equity: 1000}},
	}
	popular := &fakePopular{log: log, items: []models.PopularItem{{Secid: "SBER", Name: "Sberbank"}}}
	return NewDashboard(accounts, popular, nopMetrics{}, nil, 10, 15), accounts, popular
}

func TestDashboardLoadsAllWidgets(t *testing.T) {
	d, accounts, popular := newDashboardFixture()
	v, err := d.Load(context.Background(), validSession(), DashboardParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Profile == nil || v.Portfolio == nil || len(v.Leaderboard) != 1 || len(v.Popular) != 1 {
		t.Fatalf("unexpected view %+v", v)
	}
	if accounts.lastTop != 10 || popular.lastTop != 15 {
		t.Fatalf("expected default tops, got %d %d", accounts.lastTop, popular.lastTop)
	}
}

func TestDashboardWidgetsFailIndependently(t *testing.T) {
	d, accounts, popular := newDashboardFixture()
	accounts.portfolio = nil
	accounts.portfolioErr = xhttp.UpstreamError("Account not found", 404).WithError(errors.New("GET /api/portfolio"))
	popular.items = nil
	popular.err = xhttp.UpstreamError("request failed with status 500", 500)

	v, err := d.Load(context.Background(), validSession(), DashboardParams{LeaderboardTop: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.PortfolioError != "Account not found" {
		t.Fatalf("unexpected portfolio error %q", v.PortfolioError)
	}
	if v.PopularError == "" || v.Popular == nil {
		t.Fatalf("expected popular error with empty list, got %+v", v)
	}
	if v.Profile == nil || len(v.Leaderboard) != 1 || v.LeaderboardError != "" {
		t.Fatalf("other widgets should be unaffected: %+v", v)
	}
	if accounts.lastTop != 3 {
		t.Fatalf("expected explicit top, got %d", accounts.lastTop)
	}
}

func TestDashboardProfileUnauthorized(t *testing.T) {
	d, accounts, _ := newDashboardFixture()
	accounts.profile = nil
	accounts.profileErr = models.ErrUnauthorized
	sess := validSession()
	if _, err := d.Load(context.Background(), sess, DashboardParams{}); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if !sess.Cleared() {
		t.Fatalf("session should be cleared")
	}
}

func TestDashboardRequiresSession(t *testing.T) {
	d, _, _ := newDashboardFixture()
	if _, err := d.Load(context.Background(), nil, DashboardParams{}); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
