package models

import "time"

// PopularItem is a row of the "popular today" list ranked by turnover.
type PopularItem struct {
	Secid    string   `json:"secid"`
	Name     string   `json:"name"`
	Last     *float64 `json:"last,omitempty"`
	ValToday *float64 `json:"valtoday,omitempty"`
}

// Quote is a last-price tick pushed to live subscribers.
type Quote struct {
	Secid string    `json:"secid"`
	Last  float64   `json:"last"`
	At    time.Time `json:"ts"`
}
