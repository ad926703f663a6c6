package api

import (
	"errors"

	models "StockDesk/internal/domain/models"
	"StockDesk/internal/usecase"
	xhttp "StockDesk/pkg/http"
	xlogger "StockDesk/pkg/logger"

	"github.com/labstack/echo/v4"
)

type DashboardEchoHandler struct {
	logger    *xlogger.Logger
	dashboard *usecase.Dashboard
	gate      *SessionGate
}

func NewDashboardEchoHandler(logger *xlogger.Logger, dashboard *usecase.Dashboard, gate *SessionGate) *DashboardEchoHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &DashboardEchoHandler{logger: logger, dashboard: dashboard, gate: gate}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/dashboard", h.Dashboard)
}

func (h *DashboardEchoHandler) Dashboard(c echo.Context) error {
	req := &models.DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	sess := h.gate.Current(c)
	view, err := h.dashboard.Load(c.Request().Context(), sess, usecase.DashboardParams{
		LeaderboardTop: req.LeaderboardTop,
		PopularTop:     req.PopularTop,
	})
	if err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			return h.gate.Reject(c, sess)
		}
		h.logger.Error("dashboard usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, view)
}
