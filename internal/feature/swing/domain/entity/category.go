// Package entity defines the domain models for the swing feature.
package entity

// Category is one of the six swing columns a closing price can be recorded in.
type Category int

const (
	UpwardTrend Category = iota
	DownwardTrend
	NaturalRally
	NaturalReaction
	SecondaryRally
	SecondaryReaction
)

// Categories lists every category in the column order of the swing table.
var Categories = []Category{
	SecondaryRally,
	NaturalRally,
	UpwardTrend,
	DownwardTrend,
	NaturalReaction,
	SecondaryReaction,
}

// String returns the snake_case column name of the category.
func (c Category) String() string {
	switch c {
	case UpwardTrend:
		return "upward_trend"
	case DownwardTrend:
		return "downward_trend"
	case NaturalRally:
		return "natural_rally"
	case NaturalReaction:
		return "natural_reaction"
	case SecondaryRally:
		return "secondary_rally"
	case SecondaryReaction:
		return "secondary_reaction"
	default:
		return "unknown"
	}
}
