// Package classifier sorts a daily close series into the six swing columns
// (upward/downward trend, natural/secondary rally and reaction).
//
// The classification is a single pass over the series. Each point first runs
// the rules of the active category, then the overflow rules that draw red and
// black lines. The decided record is appended to its category and becomes the
// new active category.
package classifier

import (
	"fmt"
	"math"
	"slices"
	"time"

	"swing_backend/internal/feature/swing/domain"
	"swing_backend/internal/feature/swing/domain/entity"
)

// Result is the outcome of one classification.
type Result struct {
	// Records in ascending trade date order.
	Records []entity.ClassifiedRecord
	// Markers holds the latest red/black line per category; categories that
	// never drew a line are absent.
	Markers map[entity.Category]entity.ReversalMarker
}

// Classifier classifies price series with a fixed set of thresholds.
// It holds no run state and is safe for concurrent use.
type Classifier struct {
	th Thresholds
}

// New returns a Classifier using th.
func New(th Thresholds) *Classifier {
	return &Classifier{th: th}
}

// Classify is shorthand for New(th).Classify(series).
func Classify(series []entity.PricePoint, th Thresholds) (*Result, error) {
	return New(th).Classify(series)
}

// Classify assigns every point of series except the second one to a category.
// The first point is the seed: it opens an upward trend when the second point
// closes at or above it and a downward trend otherwise. The second point only
// decides that direction. The input is not modified and may be in any order.
func (c *Classifier) Classify(series []entity.PricePoint) (*Result, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInsufficientData, len(series))
	}
	points, err := prepare(series)
	if err != nil {
		return nil, err
	}

	head := points[0]
	p, err := percent(points[1].Close, head.Close)
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", head.TradeDate.Format(time.DateOnly), err)
	}
	seed := entity.DownwardTrend
	if p >= 0 {
		seed = entity.UpwardTrend
	}

	r := newRun(c.th, seed, head)
	for _, pt := range points[2:] {
		if err := r.step(pt); err != nil {
			return nil, fmt.Errorf("classify %s: %w", pt.TradeDate.Format(time.DateOnly), err)
		}
	}
	return r.result(), nil
}

// prepare returns a copy of series sorted by trade date after checking every
// close is finite and no trade date repeats.
func prepare(series []entity.PricePoint) ([]entity.PricePoint, error) {
	points := slices.Clone(series)
	for _, p := range points {
		if math.IsNaN(p.Close) || math.IsInf(p.Close, 0) {
			return nil, fmt.Errorf("%w: close %v on %s", domain.ErrMalformedInput, p.Close, p.TradeDate.Format(time.DateOnly))
		}
	}
	slices.SortStableFunc(points, func(a, b entity.PricePoint) int {
		return a.TradeDate.Compare(b.TradeDate)
	})
	for i := 1; i < len(points); i++ {
		if points[i].TradeDate.Equal(points[i-1].TradeDate) {
			return nil, fmt.Errorf("%w: duplicate trade date %s", domain.ErrMalformedInput, points[i].TradeDate.Format(time.DateOnly))
		}
	}
	return points, nil
}
