package api

import (
	models "StockDesk/internal/domain/models"
	"StockDesk/internal/usecase"
	xhttp "StockDesk/pkg/http"
	xlogger "StockDesk/pkg/logger"

	"github.com/labstack/echo/v4"
)

type AuthEchoHandler struct {
	logger *xlogger.Logger
	login  *usecase.Login
	gate   *SessionGate
}

func NewAuthEchoHandler(logger *xlogger.Logger, login *usecase.Login, gate *SessionGate) *AuthEchoHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &AuthEchoHandler{logger: logger, login: login, gate: gate}
}

func (h *AuthEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/login", h.Login)
	e.POST("/logout", h.Logout)
}

type loginResponse struct {
	AccountID string `json:"account_id"`
}

func (h *AuthEchoHandler) Login(c echo.Context) error {
	req := &models.TelegramAuth{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	sess, err := h.login.Login(c.Request().Context(), *req)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	h.gate.Start(c, sess)
	return xhttp.SuccessResponse(c, loginResponse{AccountID: sess.AccountID})
}

func (h *AuthEchoHandler) Logout(c echo.Context) error {
	return h.gate.Reject(c, h.gate.Current(c))
}
