package entity

import "time"

// PricePoint is one daily close of a security.
type PricePoint struct {
	TradeDate time.Time // Trading day, truncated to the date
	Close     float64   // Closing price
}
