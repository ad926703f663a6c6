// Package tradeapi talks to the upstream trading API: market data, positions,
// orders, account reads and login.
package tradeapi

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"StockDesk/internal/service/metrics"
	"StockDesk/pkg/config"
	xhttp "StockDesk/pkg/http"
	applogger "StockDesk/pkg/logger"
)

// Client is the shared foundation of the gateways. It owns the HTTP client,
// the base URL and per-endpoint call metrics.
type Client struct {
	baseURL string
	http    *xhttp.Client
	log     *applogger.Logger
}

// NewClient builds a client from the upstream section of cfg. Extra options are
// applied after the configured timeout.
func NewClient(cfg *config.Config, log *applogger.Logger, opts ...xhttp.ClientOption) *Client {
	timeout := cfg.Upstream.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = applogger.Nop()
	}
	metrics.Register()
	opts = append([]xhttp.ClientOption{xhttp.WithTimeout(timeout)}, opts...)
	return &Client{
		baseURL: strings.TrimRight(cfg.Upstream.BaseURL, "/"),
		http:    xhttp.NewClient(opts...),
		log:     log,
	}
}

type call struct {
	endpoint string // metrics label
	method   string
	path     string
	query    map[string][]string
	token    string
	body     interface{}
}

func (c *Client) do(ctx context.Context, cl call, dest interface{}) error {
	start := time.Now()
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      cl.method,
		URL:         c.baseURL + cl.path,
		QueryParams: cl.query,
		Body:        cl.body,
		BearerToken: cl.token,
	}, dest)
	metrics.UpstreamLatency.WithLabelValues(cl.endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		status := "transport"
		if se, ok := xhttp.AsStatusError(err); ok {
			status = strconv.Itoa(se.StatusCode)
		}
		metrics.UpstreamErrors.WithLabelValues(cl.endpoint, status).Inc()
		return fmt.Errorf("%s %s: %w", cl.method, cl.path, err)
	}
	return nil
}
