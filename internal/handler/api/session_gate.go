package api

import (
	"net/http"
	"time"

	"StockDesk/internal/service/ratelimit"
	"StockDesk/internal/session"
	"StockDesk/internal/usecase"
	applogger "StockDesk/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SessionGate maps the session cookie to a stored session and turns auth faults
// into a logout plus a 303 to the login page.
type SessionGate struct {
	login      *usecase.Login
	page       *usecase.StockPage
	limiter    *ratelimit.Limiter
	cookieName string
	loginPath  string
	ttl        time.Duration
	logger     *applogger.Logger
}

func NewSessionGate(
	login *usecase.Login,
	page *usecase.StockPage,
	limiter *ratelimit.Limiter,
	cookieName, loginPath string,
	ttl time.Duration,
	logger *applogger.Logger,
) *SessionGate {
	if logger == nil {
		logger = applogger.Nop()
	}
	return &SessionGate{
		login:      login,
		page:       page,
		limiter:    limiter,
		cookieName: cookieName,
		loginPath:  loginPath,
		ttl:        ttl,
		logger:     logger,
	}
}

// Current returns the caller's session, or nil when there is none.
func (g *SessionGate) Current(c echo.Context) *session.Session {
	ck, err := c.Cookie(g.cookieName)
	if err != nil || ck.Value == "" {
		return nil
	}
	sess, err := g.login.Resolve(c.Request().Context(), ck.Value)
	if err != nil {
		g.logger.Warn("session lookup failed", applogger.Error(err))
		return nil
	}
	if sess != nil {
		g.Start(c, sess)
	}
	return sess
}

// Start hands the session cookie to the browser.
func (g *SessionGate) Start(c echo.Context, sess *session.Session) {
	c.SetCookie(&http.Cookie{
		Name:     g.cookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(g.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Reject destroys sess (if any) and redirects to the login page.
func (g *SessionGate) Reject(c echo.Context, sess *session.Session) error {
	if sess != nil {
		sess.Clear()
		if err := g.login.Logout(c.Request().Context(), sess.ID); err != nil {
			g.logger.Warn("session delete failed", applogger.Error(err))
		}
		g.page.Forget(sess.ID)
		g.limiter.Forget(sess.ID)
	}
	c.SetCookie(&http.Cookie{Name: g.cookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	return c.Redirect(http.StatusSeeOther, g.loginPath)
}
