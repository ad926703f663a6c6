package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	models "StockDesk/internal/domain/models"
	domrepo "StockDesk/internal/domain/repository"
	xlogger "StockDesk/pkg/logger"

	"github.com/cenkalti/backoff/v5"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// QuotesHandler streams last prices over a websocket. Missing prices back off
// exponentially up to maxBackoff; a price resets to the poll interval.
type QuotesHandler struct {
	logger     *xlogger.Logger
	market     domrepo.MarketData
	poll       time.Duration
	maxBackoff time.Duration
}

func NewQuotesHandler(logger *xlogger.Logger, market domrepo.MarketData, poll, maxBackoff time.Duration) *QuotesHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &QuotesHandler{logger: logger, market: market, poll: poll, maxBackoff: maxBackoff}
}

func (h *QuotesHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/quotes/:secid", h.Stream)
}

func (h *QuotesHandler) Stream(c echo.Context) error {
	secid := strings.ToUpper(strings.TrimSpace(c.Param("secid")))
	if secid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "secid is required")
	}
	conn, err := wsUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("quotes upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()
	go h.readLoop(conn, cancel)

	h.logger.Debug("quotes stream opened", xlogger.String("secid", secid))
	h.pump(ctx, secid, func(q models.Quote) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(q)
	})
	h.logger.Debug("quotes stream closed", xlogger.String("secid", secid))
	return nil
}

// readLoop drains client frames so pings and close frames are handled, and
// cancels the stream when the client goes away.
func (h *QuotesHandler) readLoop(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	}
}

// pump polls the last price until ctx ends or send fails.
func (h *QuotesHandler) pump(ctx context.Context, secid string, send func(models.Quote) error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = h.poll
	bo.MaxInterval = h.maxBackoff

	var wait time.Duration
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
		last := h.market.FetchLast(ctx, secid)
		if last == nil {
			wait = bo.NextBackOff()
			continue
		}
		bo.Reset()
		wait = h.poll
		if err := send(models.Quote{Secid: secid, Last: *last, At: time.Now().UTC()}); err != nil {
			return
		}
	}
}
