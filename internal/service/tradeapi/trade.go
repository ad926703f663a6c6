package tradeapi

import (
	"context"

	"StockDesk/internal/domain/models"
	"StockDesk/internal/session"
	xhttp "StockDesk/pkg/http"
)

// Trading submits market orders. It never retries.
type Trading struct {
	c *Client
}

func NewTrading(c *Client) *Trading {
	return &Trading{c: c}
}

// Submit posts {secid, qty} to the side's order endpoint. Non-2xx responses
// become AppErrors carrying the server's detail message.
func (t *Trading) Submit(ctx context.Context, sess *session.Session, order models.TradeOrder) error {
	token := sess.BearerToken()
	if token == "" {
		return models.ErrUnauthorized
	}
	err := t.c.do(ctx, call{
		endpoint: "trade_" + order.Side.Path(),
		method:   xhttp.MethodPost,
		path:     "/api/trade/" + order.Side.Path(),
		token:    token,
		body:     order,
	}, nil)
	if err != nil {
		return apiError(err)
	}
	return nil
}
