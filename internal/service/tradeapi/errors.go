package tradeapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"StockDesk/internal/domain/models"
	xhttp "StockDesk/pkg/http"
)

// apiError maps a failed call onto the application error taxonomy. A 401 is
// always ErrUnauthorized; other statuses carry the server's detail message.
func apiError(err error) error {
	if se, ok := xhttp.AsStatusError(err); ok {
		if se.StatusCode == http.StatusUnauthorized {
			return models.ErrUnauthorized
		}
		return xhttp.UpstreamError(DetailMessage(se.Body, se.StatusCode), se.StatusCode).WithError(err)
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return fmt.Errorf("%w: %v", models.ErrMalformedPayload, err)
	}
	return xhttp.UpstreamError("trading API unavailable", 0).WithError(err)
}

// DetailMessage extracts a human readable message from an error body: the
// "detail" string when present, otherwise the JSON of the detail or of the
// whole body, otherwise a generic status line.
func DetailMessage(body []byte, status int) string {
	fallback := fmt.Sprintf("request failed with status %d", status)
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return fallback
	}
	var payload interface{}
	if err := json.Unmarshal(trimmed, &payload); err != nil || payload == nil {
		return fallback
	}
	if obj, ok := payload.(map[string]interface{}); ok {
		switch d := obj["detail"].(type) {
		case nil:
		case string:
			if d != "" {
				return d
			}
		default:
			if b, err := json.Marshal(d); err == nil {
				return string(b)
			}
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return fallback
	}
	return buf.String()
}

// detailOnly is the login flavour: the detail string or def.
func detailOnly(body []byte, def string) string {
	var obj struct {
		Detail interface{} `json:"detail"`
	}
	if err := json.Unmarshal(body, &obj); err != nil {
		return def
	}
	if s, ok := obj.Detail.(string); ok && s != "" {
		return s
	}
	return def
}
