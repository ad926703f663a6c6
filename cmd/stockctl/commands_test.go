package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLastCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/market/last/SBER" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"last":"271,5"}`))
	}))
	defer srv.Close()

	out, err := runCmd(t, "--base-url", srv.URL, "last", " sber ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got struct {
		Secid string  `json:"secid"`
		Last  float64 `json:"last"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("bad output %q: %v", out, err)
	}
	if got.Secid != "SBER" || got.Last != 271.5 {
		t.Fatalf("unexpected output %+v", got)
	}
}

func TestLastCommandNoPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := runCmd(t, "--base-url", srv.URL, "last", "SBER"); err == nil {
		t.Fatalf("expected error for missing price")
	}
}

func TestBuyRequiresToken(t *testing.T) {
	t.Setenv("STOCKDESK_TOKEN", "")
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	_, err := runCmd(t, "--base-url", srv.URL, "buy", "SBER", "1")
	if err == nil || !strings.Contains(err.Error(), "token required") {
		t.Fatalf("expected token error, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no upstream calls, got %d", calls)
	}
}

func TestBuyCommand(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/trade/buy":
			if r.Header.Get("Authorization") != "Bearer tok" {
				t.Errorf("missing bearer header")
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			_, _ = w.Write([]byte(`{"ok":true}`))
		case "/api/me":
			_, _ = w.Write([]byte(`{"user":{"id":1},"account":{"id":7,"cash":1000}}`))
		case "/api/positions/SBER":
			_, _ = w.Write([]byte(`{"qty":3,"avg_price":250}`))
		case "/api/market/last/SBER":
			_, _ = w.Write([]byte(`{"last":260}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	out, err := runCmd(t, "--base-url", srv.URL, "--token", "tok", "buy", "sber", "2,5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body["secid"] != "SBER" || body["qty"] != 2.5 {
		t.Fatalf("unexpected order body %v", body)
	}
	if !strings.Contains(out, `"message": "OK"`) {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestMissingUpstream(t *testing.T) {
	t.Setenv("STOCKDESK_UPSTREAM_URL", "")
	if _, err := runCmd(t, "last", "SBER"); err == nil {
		t.Fatalf("expected error without upstream url")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCmd(t, "version")
	if err != nil || !strings.Contains(out, version) {
		t.Fatalf("unexpected version output %q err=%v", out, err)
	}
}
