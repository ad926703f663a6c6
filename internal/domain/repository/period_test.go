package repository

import (
	"testing"
	"time"
)

var anchor = time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

func TestResolvePeriodSevenDays(t *testing.T) {
	r := ResolvePeriod(Period7D, anchor)
	if !r.To.Equal(anchor) {
		t.Fatalf("to must equal anchor, got %v", r.To)
	}
	from, _ := r.Query()
	if from != "2024-06-08" {
		t.Fatalf("expected 2024-06-08, got %s", from)
	}
}

func TestResolvePeriodYTD(t *testing.T) {
	r := ResolvePeriod(PeriodYTD, anchor)
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !r.From.Equal(want) {
		t.Fatalf("expected %v, got %v", want, r.From)
	}
}

func TestResolvePeriodYTDKeepsLocation(t *testing.T) {
	msk := time.FixedZone("MSK", 3*3600)
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, msk)
	r := ResolvePeriod(PeriodYTD, now)
	if r.From.Location() != msk || r.From.Hour() != 0 || r.From.Day() != 1 {
		t.Fatalf("unexpected from %v", r.From)
	}
}

func TestResolvePeriodUnknownIsEmptyWindow(t *testing.T) {
	r := ResolvePeriod(Period("bogus"), anchor)
	if !r.From.Equal(anchor) || !r.To.Equal(anchor) {
		t.Fatalf("expected empty window at anchor, got %v..%v", r.From, r.To)
	}
}

func TestResolvePeriodMonthsAndYears(t *testing.T) {
	cases := map[Period]string{
		Period1M:  "2024-05-15",
		Period3M:  "2024-03-15",
		Period6M:  "2023-12-15",
		Period1Y:  "2023-06-15",
		PeriodMax: "2014-06-15",
	}
	for p, want := range cases {
		from, to := ResolvePeriod(p, anchor).Query()
		if from != want {
			t.Fatalf("%s: expected %s, got %s", p, want, from)
		}
		if to != "2024-06-15" {
			t.Fatalf("%s: unexpected to %s", p, to)
		}
	}
}

func TestNormalizePeriod(t *testing.T) {
	if got := NormalizePeriod("ytd", Period3M); got != PeriodYTD {
		t.Fatalf("got %s", got)
	}
	if got := NormalizePeriod("", Period3M); got != Period3M {
		t.Fatalf("got %s", got)
	}
	if got := NormalizePeriod("2w", Period3M); got != Period3M {
		t.Fatalf("got %s", got)
	}
}
