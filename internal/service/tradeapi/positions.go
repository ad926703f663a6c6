package tradeapi

import (
	"context"
	"fmt"
	"net/url"

	"StockDesk/internal/domain/models"
	"StockDesk/internal/domain/repository"
	"StockDesk/internal/session"
	xhttp "StockDesk/pkg/http"
	applogger "StockDesk/pkg/logger"
	"StockDesk/pkg/util"
)

// Positions reads the caller's holding in one instrument.
type Positions struct {
	c       *Client
	metrics repository.Metrics
}

func NewPositions(c *Client, m repository.Metrics) *Positions {
	return &Positions{c: c, metrics: m}
}

// FetchPosition never fails: an unreadable or missing position is flat.
func (p *Positions) FetchPosition(ctx context.Context, sess *session.Session, secid string) models.Position {
	pos, err := p.LookupPosition(ctx, sess, secid)
	if err != nil {
		p.c.log.Warn("position fetch failed, using zero position",
			applogger.String("secid", secid), applogger.Error(err))
		if p.metrics != nil {
			p.metrics.RecordError("position_fetch")
		}
		return models.ZeroPosition
	}
	return pos
}

// LookupPosition returns the position or the reason it could not be read.
// Missing fields read as zero; negative or non-numeric ones are malformed.
func (p *Positions) LookupPosition(ctx context.Context, sess *session.Session, secid string) (models.Position, error) {
	token := sess.BearerToken()
	if token == "" {
		return models.ZeroPosition, models.ErrUnauthorized
	}
	var out struct {
		Qty      interface{} `json:"qty"`
		AvgPrice interface{} `json:"avg_price"`
	}
	err := p.c.do(ctx, call{
		endpoint: "positions",
		method:   xhttp.MethodGet,
		path:     "/api/positions/" + url.PathEscape(secid),
		token:    token,
	}, &out)
	if err != nil {
		return models.ZeroPosition, apiError(err)
	}
	qty, err := nonNegative("qty", out.Qty)
	if err != nil {
		return models.ZeroPosition, err
	}
	avg, err := nonNegative("avg_price", out.AvgPrice)
	if err != nil {
		return models.ZeroPosition, err
	}
	return models.Position{Quantity: qty, AverageCost: avg}, nil
}

func nonNegative(field string, v interface{}) (float64, error) {
	if v == nil {
		return 0, nil
	}
	n, ok := util.ParseNumber(v)
	if !ok || n < 0 {
		return 0, fmt.Errorf("%w: %s=%v", models.ErrMalformedPayload, field, v)
	}
	return n, nil
}
