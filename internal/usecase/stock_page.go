package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"StockDesk/internal/domain/models"
	domrepo "StockDesk/internal/domain/repository"
	"StockDesk/internal/service/chart"
	"StockDesk/internal/session"
	applogger "StockDesk/pkg/logger"
)

// LoadRequest is one (re)load of the stock page.
type LoadRequest struct {
	Secid     string
	Period    string
	ChartType string
}

type viewKey struct {
	session string
	secid   string
}

// StockPage coordinates the stock detail page: profile, last price, position,
// candles and chart for one instrument, plus trading from that page.
//
// Every load takes a generation number per (session, secid). A load only
// replaces the rendered view if no newer load has been rendered yet, so the
// last started load always wins regardless of completion order.
type StockPage struct {
	accounts  domrepo.Accounts
	positions domrepo.Positions
	market    domrepo.MarketData
	candles   *CandlesUseCase
	trades    *TradeOrchestrator
	metrics   domrepo.Metrics
	log       *applogger.Logger

	defaultPeriod domrepo.Period
	defaultChart  models.ChartType
	now           func() time.Time

	mu    sync.Mutex
	gens  map[viewKey]uint64
	views map[viewKey]*models.StockView
}

func NewStockPage(
	accounts domrepo.Accounts,
	positions domrepo.Positions,
	market domrepo.MarketData,
	candles *CandlesUseCase,
	trades *TradeOrchestrator,
	metrics domrepo.Metrics,
	log *applogger.Logger,
	defaultPeriod string,
	defaultChart string,
) *StockPage {
	if log == nil {
		log = applogger.Nop()
	}
	return &StockPage{
		accounts:      accounts,
		positions:     positions,
		market:        market,
		candles:       candles,
		trades:        trades,
		metrics:       metrics,
		log:           log,
		defaultPeriod: domrepo.NormalizePeriod(defaultPeriod, domrepo.Period3M),
		defaultChart:  models.ParseChartType(defaultChart),
		now:           time.Now,
		gens:          make(map[viewKey]uint64),
		views:         make(map[viewKey]*models.StockView),
	}
}

// Load renders the page. Without a valid session nothing is fetched and the
// session is cleared.
func (p *StockPage) Load(ctx context.Context, sess *session.Session, req LoadRequest) (*models.StockView, error) {
	if !sess.Valid(p.now()) {
		sess.Clear()
		p.pageLoad("unauthorized")
		return nil, models.ErrUnauthorized
	}

	profile, err := p.accounts.Profile(ctx, sess)
	if err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			sess.Clear()
			p.pageLoad("unauthorized")
			return nil, models.ErrUnauthorized
		}
		p.log.Warn("profile unavailable", applogger.Error(err))
		profile = nil
	}

	secid := normalizeSecid(req.Secid)
	if secid == "" {
		p.pageLoad("invalid")
		return nil, models.ErrInvalidInstrument
	}

	key := viewKey{session: sess.ID, secid: secid}
	gen := p.begin(key)

	var (
		wg   sync.WaitGroup
		last *float64
		pos  models.Position
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		last = p.market.RefreshLast(ctx, secid)
	}()
	go func() {
		defer wg.Done()
		pos = p.positions.FetchPosition(ctx, sess, secid)
	}()
	wg.Wait()

	period := domrepo.NormalizePeriod(strings.ToLower(strings.TrimSpace(req.Period)), p.defaultPeriod)
	chartType := p.defaultChart
	if req.ChartType != "" {
		chartType = models.ParseChartType(req.ChartType)
	}
	res := p.candles.GetCandles(ctx, GetCandlesParams{Secid: secid, Period: period})

	view := &models.StockView{
		Secid:      secid,
		Title:      "(" + secid + ")",
		Profile:    profile,
		Period:     string(period),
		From:       res.From,
		To:         res.To,
		ChartType:  chartType,
		Chart:      chart.Build(chartType, res.Candles),
		Candles:    res.Candles,
		Status:     fmt.Sprintf("period: %s, candles: %d", period, res.Count),
		Generation: gen,
	}
	setLast(view, last)
	setPosition(view, pos)
	if last != nil && p.metrics != nil {
		p.metrics.RecordLastPrice(secid, *last)
	}

	rendered := p.commit(key, view)
	p.pageLoad("ok")
	return rendered, nil
}

// Rechart re-renders the current view with another chart type from the
// candles it already holds. With nothing rendered yet it falls back to Load.
func (p *StockPage) Rechart(ctx context.Context, sess *session.Session, secid, chartType string) (*models.StockView, error) {
	if !sess.Valid(p.now()) {
		sess.Clear()
		return nil, models.ErrUnauthorized
	}
	secid = normalizeSecid(secid)
	if secid == "" {
		return nil, models.ErrInvalidInstrument
	}
	key := viewKey{session: sess.ID, secid: secid}
	t := models.ParseChartType(chartType)

	p.mu.Lock()
	cur, ok := p.views[key]
	if ok {
		next := *cur
		next.ChartType = t
		next.Chart = chart.Build(t, cur.Candles)
		p.views[key] = &next
		p.mu.Unlock()
		return &next, nil
	}
	p.mu.Unlock()

	return p.Load(ctx, sess, LoadRequest{Secid: secid, ChartType: string(t)})
}

// Trade submits an order from the page and patches the rendered view with the
// refreshed quantity, average cost and last price.
func (p *StockPage) Trade(ctx context.Context, sess *session.Session, secid, side string, rawQty any) (*models.StockView, *models.TradeResult, error) {
	res, err := p.trades.Submit(ctx, sess, side, secid, rawQty)
	if err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			sess.Clear()
		}
		return nil, nil, err
	}
	if errors.Is(res.ProfileErr, models.ErrUnauthorized) {
		sess.Clear()
		return nil, res, models.ErrUnauthorized
	}

	key := viewKey{session: sess.ID, secid: res.Order.Secid}
	p.mu.Lock()
	defer p.mu.Unlock()
	var next models.StockView
	if cur, ok := p.views[key]; ok {
		next = *cur
	} else {
		next = models.StockView{
			Secid:     res.Order.Secid,
			Title:     "(" + res.Order.Secid + ")",
			ChartType: p.defaultChart,
			Chart:     chart.Build(p.defaultChart, nil),
		}
		setLast(&next, nil)
	}
	if res.Profile != nil {
		next.Profile = res.Profile
	}
	setPosition(&next, res.Position)
	if res.Last != nil {
		setLast(&next, res.Last)
	}
	next.TradeMessage = res.Message
	p.gens[key]++
	next.Generation = p.gens[key]
	p.views[key] = &next
	return &next, res, nil
}

// View returns the rendered view, if any.
func (p *StockPage) View(sessionID, secid string) (*models.StockView, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.views[viewKey{session: sessionID, secid: normalizeSecid(secid)}]
	return v, ok
}

// Forget drops every rendered view of a session.
func (p *StockPage) Forget(sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for k := range p.views {
		if k.session == sessionID {
			delete(p.views, k)
		}
	}
	for k := range p.gens {
		if k.session == sessionID {
			delete(p.gens, k)
		}
	}
}

func (p *StockPage) begin(key viewKey) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gens[key]++
	return p.gens[key]
}

// commit stores view unless a newer generation is already rendered, in which
// case the newer view is returned instead.
func (p *StockPage) commit(key viewKey, view *models.StockView) *models.StockView {
	p.mu.Lock()
	defer p.mu.Unlock()
	if cur, ok := p.views[key]; ok && cur.Generation > view.Generation {
		return cur
	}
	p.views[key] = view
	return view
}

func (p *StockPage) pageLoad(result string) {
	if p.metrics != nil {
		p.metrics.RecordPageLoad("stock", result)
	}
}

func normalizeSecid(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func setLast(v *models.StockView, last *float64) {
	v.Last = last
	if last == nil {
		v.LastLabel = "-"
		return
	}
	v.LastLabel = formatNumber(*last)
}

func setPosition(v *models.StockView, pos models.Position) {
	v.Position = pos
	if pos.IsFlat() {
		v.QtyLabel = "0"
		v.AvgLabel = ""
		return
	}
	v.QtyLabel = formatNumber(pos.Quantity)
	v.AvgLabel = "Avg buy: " + formatNumber(pos.AverageCost)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
