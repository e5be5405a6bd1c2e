// Package entity defines the domain models for the prices feature.
package entity

import (
	"fmt"
	"time"
)

// DailyPrice is the closing price of a security on one trading day.
type DailyPrice struct {
	Symbol    string    // Security code (e.g., "600519.SH", "7203.T")
	TradeDate time.Time // Trading day at UTC midnight
	Close     float64   // Closing price
}

// tradeDateLayouts are the accepted trade date spellings: the compact form used
// by the tushare daily API and ISO dates.
var tradeDateLayouts = []string{"20060102", time.DateOnly}

// ParseTradeDate parses a trade date into UTC midnight.
func ParseTradeDate(s string) (time.Time, error) {
	for _, layout := range tradeDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse trade date %q", s)
}
