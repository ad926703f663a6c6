package api

import (
	"errors"
	"strings"

	models "StockDesk/internal/domain/models"
	"StockDesk/internal/service/ratelimit"
	"StockDesk/internal/usecase"
	xhttp "StockDesk/pkg/http"
	xlogger "StockDesk/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StockEchoHandler serves the stock detail page.
type StockEchoHandler struct {
	logger  *xlogger.Logger
	page    *usecase.StockPage
	gate    *SessionGate
	limiter *ratelimit.Limiter
}

func NewStockEchoHandler(logger *xlogger.Logger, page *usecase.StockPage, gate *SessionGate, limiter *ratelimit.Limiter) *StockEchoHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &StockEchoHandler{logger: logger, page: page, gate: gate, limiter: limiter}
}

func (h *StockEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/stock")
	g.GET("/:secid", h.Load)
	g.GET("/:secid/chart", h.Chart)
	g.POST("/:secid/buy", h.Buy)
	g.POST("/:secid/sell", h.Sell)
}

type tradeResponse struct {
	Message string            `json:"message"`
	View    *models.StockView `json:"view"`
	Order   models.TradeOrder `json:"order"`
}

func (h *StockEchoHandler) Load(c echo.Context) error {
	req := &models.StockPageRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	sess := h.gate.Current(c)
	view, err := h.page.Load(c.Request().Context(), sess, usecase.LoadRequest{
		Secid:     req.Secid,
		Period:    req.Period,
		ChartType: req.ChartType,
	})
	if err != nil {
		return h.fail(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, no-store")
	return xhttp.SuccessResponse(c, view)
}

func (h *StockEchoHandler) Chart(c echo.Context) error {
	req := &models.ChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	view, err := h.page.Rechart(c.Request().Context(), h.gate.Current(c), req.Secid, req.ChartType)
	if err != nil {
		return h.fail(c, err)
	}
	return xhttp.SuccessResponse(c, view)
}

func (h *StockEchoHandler) Buy(c echo.Context) error  { return h.trade(c, string(models.SideBuy)) }
func (h *StockEchoHandler) Sell(c echo.Context) error { return h.trade(c, string(models.SideSell)) }

func (h *StockEchoHandler) trade(c echo.Context, side string) error {
	sess := h.gate.Current(c)
	if sess == nil {
		return h.gate.Reject(c, nil)
	}
	if !h.limiter.Allow(sess.ID) {
		h.logger.Warn("trade rate_limited", xlogger.String("session", sess.ID))
		return xhttp.AppErrorResponse(c, models.ErrRateLimited)
	}

	req := &models.TradeRequest{}
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
			return xhttp.BadRequestResponse(c, verr)
		}
	} else {
		req.Qty = c.FormValue("qty")
	}

	view, res, err := h.page.Trade(c.Request().Context(), sess, c.Param("secid"), side, req.Qty)
	if err != nil {
		return h.fail(c, err)
	}
	return xhttp.SuccessResponse(c, tradeResponse{Message: res.Message, View: view, Order: res.Order})
}

func (h *StockEchoHandler) fail(c echo.Context, err error) error {
	if errors.Is(err, models.ErrUnauthorized) {
		return h.gate.Reject(c, h.gate.Current(c))
	}
	h.logger.Warn("stock page error", xlogger.String("path", c.Path()), xlogger.Error(err))
	return xhttp.AppErrorResponse(c, err)
}
