package models

import (
	"strings"

	xhttp "StockDesk/pkg/http"
)

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// ParseSide accepts buy/sell in any case.
func ParseSide(s string) (Side, bool) {
	switch Side(strings.ToUpper(strings.TrimSpace(s))) {
	case SideBuy:
		return SideBuy, true
	case SideSell:
		return SideSell, true
	default:
		return "", false
	}
}

// Path returns the order endpoint suffix for the side.
func (s Side) Path() string { return strings.ToLower(string(s)) }

// TradeOrder is the order body sent upstream. It never carries a price.
type TradeOrder struct {
	Secid    string  `json:"secid" validate:"required"`
	Quantity float64 `json:"qty" validate:"gt=0"`
	Side     Side    `json:"-" validate:"oneof=BUY SELL"`
}

// TradeResult is what a successful submission leaves behind: the refreshed reads.
// A nil pointer with a non-nil error means that refresh failed on its own.
type TradeResult struct {
	Order       TradeOrder `json:"order"`
	Message     string     `json:"message"`
	Profile     *Profile   `json:"profile,omitempty"`
	ProfileErr  error      `json:"-"`
	Position    Position   `json:"position"`
	PositionErr error      `json:"-"`
	Last        *float64   `json:"last,omitempty"`
	LastErr     error      `json:"-"`
}

var (
	ErrUnauthorized      = xhttp.UnauthorizedError("session is missing or expired")
	ErrInvalidInstrument = xhttp.NewAppError("ERR_INVALID_INSTRUMENT", "secid", "secid is required", 400)
	ErrInvalidQuantity   = xhttp.NewAppError("ERR_INVALID_QUANTITY", "qty", "qty must be > 0", 400)
	ErrInvalidSide       = xhttp.NewAppError("ERR_INVALID_SIDE", "side", "side must be BUY or SELL", 400)
	ErrNotFound          = xhttp.NotFoundError("not found")
	ErrMalformedPayload  = xhttp.NewAppError("ERR_MALFORMED_PAYLOAD", "", "upstream payload could not be read", 502)
	ErrRateLimited       = xhttp.TooManyRequestsError("too many trade requests, slow down")
	ErrNoLastPrice       = xhttp.NotFoundError("last price unavailable")
)
