package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"StockDesk/internal/domain/models"
	domrepo "StockDesk/internal/domain/repository"
	"StockDesk/internal/session"
	xhttp "StockDesk/pkg/http"
	applogger "StockDesk/pkg/logger"
)

// Dashboard loads the index page widgets. Each widget fails on its own.
type Dashboard struct {
	accounts domrepo.Accounts
	popular  domrepo.PopularList
	metrics  domrepo.Metrics
	log      *applogger.Logger

	leaderboardTop int
	popularTop     int
	now            func() time.Time
}

func NewDashboard(accounts domrepo.Accounts, popular domrepo.PopularList, metrics domrepo.Metrics, log *applogger.Logger, leaderboardTop, popularTop int) *Dashboard {
	if log == nil {
		log = applogger.Nop()
	}
	return &Dashboard{
		accounts:       accounts,
		popular:        popular,
		metrics:        metrics,
		log:            log,
		leaderboardTop: leaderboardTop,
		popularTop:     popularTop,
		now:            time.Now,
	}
}

type DashboardParams struct {
	LeaderboardTop int
	PopularTop     int
}

// Load fetches profile, leaderboard, portfolio and popular concurrently. Only a
// rejected session fails the whole page.
func (d *Dashboard) Load(ctx context.Context, sess *session.Session, p DashboardParams) (*models.DashboardView, error) {
	if !sess.Valid(d.now()) {
		sess.Clear()
		d.pageLoad("unauthorized")
		return nil, models.ErrUnauthorized
	}
	if p.LeaderboardTop <= 0 {
		p.LeaderboardTop = d.leaderboardTop
	}
	if p.PopularTop <= 0 {
		p.PopularTop = d.popularTop
	}

	type item struct {
		name string
		val  interface{}
		err  error
	}
	ch := make(chan item, 4)
	var wg sync.WaitGroup

	wg.Add(4)
	go func() {
		defer wg.Done()
		v, err := d.accounts.Profile(ctx, sess)
		ch <- item{"profile", v, err}
	}()
	go func() {
		defer wg.Done()
		v, err := d.accounts.Leaderboard(ctx, p.LeaderboardTop)
		ch <- item{"leaderboard", v, err}
	}()
	go func() {
		defer wg.Done()
		v, err := d.accounts.Portfolio(ctx, sess)
		ch <- item{"portfolio", v, err}
	}()
	go func() {
		defer wg.Done()
		v, err := d.popular.FetchPopular(ctx, p.PopularTop)
		ch <- item{"popular", v, err}
	}()

	go func() { wg.Wait(); close(ch) }()

	view := &models.DashboardView{
		Leaderboard: []models.LeaderboardEntry{},
		Popular:     []models.PopularItem{},
	}
	var unauthorized bool
	for it := range ch {
		if it.err != nil {
			d.log.Warn("dashboard widget failed", applogger.String("widget", it.name), applogger.Error(it.err))
			switch it.name {
			case "profile":
				unauthorized = errors.Is(it.err, models.ErrUnauthorized)
			case "leaderboard":
				view.LeaderboardError = ErrorMessage(it.err)
			case "portfolio":
				view.PortfolioError = ErrorMessage(it.err)
			case "popular":
				view.PopularError = ErrorMessage(it.err)
			}
			continue
		}
		switch it.name {
		case "profile":
			view.Profile = it.val.(*models.Profile)
		case "leaderboard":
			view.Leaderboard = it.val.([]models.LeaderboardEntry)
		case "portfolio":
			view.Portfolio = it.val.(*models.Portfolio)
		case "popular":
			view.Popular = it.val.([]models.PopularItem)
		}
	}

	if unauthorized {
		sess.Clear()
		d.pageLoad("unauthorized")
		return nil, models.ErrUnauthorized
	}
	d.pageLoad("ok")
	return view, nil
}

func (d *Dashboard) pageLoad(result string) {
	if d.metrics != nil {
		d.metrics.RecordPageLoad("dashboard", result)
	}
}

// ErrorMessage is the user-facing text of err: the AppError message without the
// wrapped cause.
func ErrorMessage(err error) string {
	var appErr *xhttp.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
