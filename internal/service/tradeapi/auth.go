package tradeapi

import (
	"context"
	"net/http"
	"strconv"

	"StockDesk/internal/domain/models"
	xhttp "StockDesk/pkg/http"
)

const loginFailedMessage = "authorization error"

// Auth exchanges a Telegram login widget payload for an access token.
type Auth struct {
	c *Client
}

func NewAuth(c *Client) *Auth {
	return &Auth{c: c}
}

func (a *Auth) LoginTelegram(ctx context.Context, payload models.TelegramAuth) (*models.Credentials, error) {
	var out struct {
		AccessToken string      `json:"access_token"`
		AccountID   interface{} `json:"account_id"`
	}
	err := a.c.do(ctx, call{
		endpoint: "auth_telegram",
		method:   xhttp.MethodPost,
		path:     "/auth/telegram",
		body:     payload,
	}, &out)
	if err != nil {
		return nil, loginError(err)
	}
	if out.AccessToken == "" {
		return nil, xhttp.NewAppError("ERR_LOGIN_FAILED", "", loginFailedMessage, http.StatusBadGateway)
	}
	return &models.Credentials{AccessToken: out.AccessToken, AccountID: idString(out.AccountID)}, nil
}

func loginError(err error) error {
	se, ok := xhttp.AsStatusError(err)
	if !ok {
		return xhttp.UpstreamError(loginFailedMessage, 0).WithError(err)
	}
	msg := detailOnly(se.Body, loginFailedMessage)
	status := http.StatusBadGateway
	if se.StatusCode >= 400 && se.StatusCode < 500 {
		status = se.StatusCode
	}
	return xhttp.NewAppError("ERR_LOGIN_FAILED", "", msg, status).WithError(err)
}

func idString(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}
