package usecase

import (
	"context"
	"errors"

	"StockDesk/internal/domain/models"
	domrepo "StockDesk/internal/domain/repository"
	"StockDesk/internal/session"
	xhttp "StockDesk/pkg/http"
	applogger "StockDesk/pkg/logger"
)

// Login exchanges a Telegram payload for a stored session.
type Login struct {
	auth     domrepo.Authenticator
	sessions domrepo.Sessions
	log      *applogger.Logger
}

func NewLogin(auth domrepo.Authenticator, sessions domrepo.Sessions, log *applogger.Logger) *Login {
	if log == nil {
		log = applogger.Nop()
	}
	return &Login{auth: auth, sessions: sessions, log: log}
}

func (uc *Login) Login(ctx context.Context, payload models.TelegramAuth) (*session.Session, error) {
	if err := xhttp.ValidateStruct(ctx, &payload); err != nil {
		return nil, err
	}
	creds, err := uc.auth.LoginTelegram(ctx, payload)
	if err != nil {
		uc.log.Warn("telegram login rejected", applogger.Int64("telegram_id", payload.ID), applogger.Error(err))
		return nil, err
	}
	sess, err := uc.sessions.Create(ctx, creds.AccessToken, creds.AccountID)
	if err != nil {
		return nil, xhttp.InternalError("could not start session").WithError(err)
	}
	uc.log.Info("user signed in", applogger.String("account_id", creds.AccountID))
	return sess, nil
}

// Resolve returns the stored session for id, or nil when there is none. A found
// session has its TTL restarted.
func (uc *Login) Resolve(ctx context.Context, id string) (*session.Session, error) {
	sess, err := uc.sessions.Get(ctx, id)
	if errors.Is(err, session.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := uc.sessions.Touch(ctx, id); err != nil {
		uc.log.Warn("session touch failed", applogger.Error(err))
	}
	return sess, nil
}

func (uc *Login) Logout(ctx context.Context, id string) error {
	return uc.sessions.Delete(ctx, id)
}
