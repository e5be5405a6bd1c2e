package entity

import "time"

// Line is the reversal stamp drawn under a record once its run is exhausted.
type Line int

const (
	LineNone Line = iota
	// LineRed marks the last record of an upward run that turned down.
	LineRed
	// LineBlack marks the last record of a downward run that turned up.
	LineBlack
)

func (l Line) String() string {
	switch l {
	case LineRed:
		return "red"
	case LineBlack:
		return "black"
	default:
		return ""
	}
}

// ClassifiedRecord is a price point assigned to exactly one category.
type ClassifiedRecord struct {
	TradeDate time.Time
	Category  Category
	Close     float64
	Line      Line
}

// ReversalMarker holds the last red and black line prices recorded for a category.
// A value, once set, is only ever replaced by a newer one of the same colour.
type ReversalMarker struct {
	Red      float64
	Black    float64
	HasRed   bool
	HasBlack bool
}
