package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"StockDesk/internal/domain/models"
	drepo "StockDesk/internal/domain/repository"
	"StockDesk/internal/session"
	xhttp "StockDesk/pkg/http"
	applogger "StockDesk/pkg/logger"
	"StockDesk/pkg/util"
)

// TradeOrchestrator submits an order and then re-reads everything the order can
// change. It keeps no state between calls.
type TradeOrchestrator struct {
	trading   drepo.Trading
	accounts  drepo.Accounts
	positions drepo.Positions
	market    drepo.MarketData
	journal   drepo.TradeJournal
	metrics   drepo.Metrics
	log       *applogger.Logger
	now       func() time.Time
}

// NewTradeOrchestrator creates an orchestrator. journal may be nil.
func NewTradeOrchestrator(
	trading drepo.Trading,
	accounts drepo.Accounts,
	positions drepo.Positions,
	market drepo.MarketData,
	journal drepo.TradeJournal,
	metrics drepo.Metrics,
	log *applogger.Logger,
) *TradeOrchestrator {
	if log == nil {
		log = applogger.Nop()
	}
	return &TradeOrchestrator{
		trading:   trading,
		accounts:  accounts,
		positions: positions,
		market:    market,
		journal:   journal,
		metrics:   metrics,
		log:       log,
		now:       time.Now,
	}
}

// NewOrder validates raw trade input. Nothing is sent before it passes.
func NewOrder(side, secid string, rawQty any) (models.TradeOrder, error) {
	secid = strings.ToUpper(strings.TrimSpace(secid))
	if secid == "" {
		return models.TradeOrder{}, models.ErrInvalidInstrument
	}
	qty, ok := util.ParseNumber(rawQty)
	if !ok || qty <= 0 {
		return models.TradeOrder{}, models.ErrInvalidQuantity
	}
	s, ok := models.ParseSide(side)
	if !ok {
		return models.TradeOrder{}, models.ErrInvalidSide
	}
	return models.TradeOrder{Secid: secid, Quantity: qty, Side: s}, nil
}

// Submit places a market order and refreshes profile, position and last price,
// strictly after the order response and in that order. A failed refresh is
// recorded on the result and does not affect the other two.
func (o *TradeOrchestrator) Submit(ctx context.Context, sess *session.Session, side, secid string, rawQty any) (*models.TradeResult, error) {
	order, err := NewOrder(side, secid, rawQty)
	if err != nil {
		return nil, err
	}
	if !sess.Valid(o.now()) {
		return nil, models.ErrUnauthorized
	}
	if err := xhttp.ValidateStruct(ctx, &order); err != nil {
		return nil, err
	}

	start := time.Now()
	if err := o.trading.Submit(ctx, sess, order); err != nil {
		o.record(string(order.Side), "rejected")
		o.log.Warn("order rejected",
			applogger.String("secid", order.Secid),
			applogger.String("side", string(order.Side)),
			applogger.Float64("qty", order.Quantity),
			applogger.Error(err))
		return nil, err
	}
	o.record(string(order.Side), "ok")
	if o.metrics != nil {
		o.metrics.RecordLatency("trade_submit", time.Since(start).Seconds())
	}
	o.log.Info("order filled",
		applogger.String("secid", order.Secid),
		applogger.String("side", string(order.Side)),
		applogger.Float64("qty", order.Quantity))

	o.publish(ctx, sess, order)

	res := &models.TradeResult{Order: order, Message: "OK"}
	res.Profile, res.ProfileErr = o.accounts.Profile(ctx, sess)
	res.Position, res.PositionErr = o.positions.LookupPosition(ctx, sess, order.Secid)
	if res.PositionErr != nil {
		res.Position = models.ZeroPosition
	}
	res.Last = o.market.RefreshLast(ctx, order.Secid)
	if res.Last == nil {
		res.LastErr = models.ErrNoLastPrice
	} else if o.metrics != nil {
		o.metrics.RecordLastPrice(order.Secid, *res.Last)
	}
	return res, nil
}

func (o *TradeOrchestrator) publish(ctx context.Context, sess *session.Session, order models.TradeOrder) {
	if o.journal == nil {
		return
	}
	if err := o.journal.Record(ctx, sess.AccountID, order); err != nil {
		o.log.Warn("trade journal write failed", applogger.Error(fmt.Errorf("record %s: %w", order.Secid, err)))
		if o.metrics != nil {
			o.metrics.RecordError("journal")
		}
	}
}

func (o *TradeOrchestrator) record(side, result string) {
	if o.metrics != nil {
		o.metrics.RecordTrade(side, result)
	}
}
