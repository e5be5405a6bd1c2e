// Package entity defines the domain models for the symbollist feature.
package entity

import "time"

// Symbol summarizes the stored daily prices of one instrument.
// FirstDate and LastDate bound the trading days available for classification.
type Symbol struct {
	Code      string
	FirstDate time.Time
	LastDate  time.Time
	Days      int
}
