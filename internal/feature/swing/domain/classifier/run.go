package classifier

import (
	"fmt"
	"slices"

	"swing_backend/internal/feature/swing/domain"
	"swing_backend/internal/feature/swing/domain/entity"
)

const categoryCount = int(entity.SecondaryReaction) + 1

// history is the append-only log of records assigned to one category.
type history struct {
	records []entity.ClassifiedRecord
}

func (h *history) tail() (entity.ClassifiedRecord, bool) {
	if len(h.records) == 0 {
		return entity.ClassifiedRecord{}, false
	}
	return h.records[len(h.records)-1], true
}

func (h *history) append(r entity.ClassifiedRecord) { h.records = append(h.records, r) }

// stamp draws a line under the most recent record.
func (h *history) stamp(l entity.Line) {
	if n := len(h.records); n > 0 {
		h.records[n-1].Line = l
	}
}

// run is the state of one classification. It is never shared between calls.
type run struct {
	th        Thresholds
	active    entity.Category
	histories [categoryCount]history
	markers   [categoryCount]entity.ReversalMarker
}

func newRun(th Thresholds, seed entity.Category, head entity.PricePoint) *run {
	r := &run{th: th}
	r.record(seed, head)
	return r
}

func (r *run) record(c entity.Category, p entity.PricePoint) {
	r.histories[c].append(entity.ClassifiedRecord{
		TradeDate: p.TradeDate,
		Category:  c,
		Close:     p.Close,
	})
	r.active = c
}

// changeFromLast is the move of price against the tail of category c.
// ok is false when the category has no records yet.
func (r *run) changeFromLast(c entity.Category, price float64) (p float64, ok bool, err error) {
	last, ok := r.histories[c].tail()
	if !ok {
		return 0, false, nil
	}
	p, err = percent(price, last.Close)
	return p, err == nil, err
}

// requireChangeFromLast is changeFromLast for references the active state guarantees.
func (r *run) requireChangeFromLast(c entity.Category, price float64) (float64, error) {
	p, ok, err := r.changeFromLast(c, price)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: %s has no records", domain.ErrDivision, c)
	}
	return p, nil
}

// changeFromLine is the move of price against the red or black marker of c.
func (r *run) changeFromLine(c entity.Category, l entity.Line, price float64) (float64, bool, error) {
	m := r.markers[c]
	var ref float64
	switch {
	case l == entity.LineRed && m.HasRed:
		ref = m.Red
	case l == entity.LineBlack && m.HasBlack:
		ref = m.Black
	default:
		return 0, false, nil
	}
	p, err := percent(price, ref)
	return p, err == nil, err
}

// mark stamps the tail of c and remembers price as its latest line of that colour.
func (r *run) mark(c entity.Category, l entity.Line, price float64) {
	r.histories[c].stamp(l)
	m := &r.markers[c]
	switch l {
	case entity.LineRed:
		m.Red, m.HasRed = price, true
	case entity.LineBlack:
		m.Black, m.HasBlack = price, true
	}
}

// step classifies one price point and appends it to its history.
func (r *run) step(p entity.PricePoint) error {
	var (
		decided  entity.Category
		hasState bool
	)
	for _, rl := range stateRules[r.active] {
		c, ok, err := rl.eval(r, p.Close)
		if err != nil {
			return fmt.Errorf("%s: %w", rl.name, err)
		}
		if ok {
			decided, hasState = c, true
			break
		}
	}

	// Overflow rules run on every point; each match leaves its marker behind
	// even when the state rules already decided the category.
	var (
		overflow    entity.Category
		hasOverflow bool
	)
	for _, rl := range overflowRules {
		c, ok, err := rl.eval(r, p.Close)
		if err != nil {
			return fmt.Errorf("%s: %w", rl.name, err)
		}
		if ok {
			overflow, hasOverflow = c, true
		}
	}

	switch {
	case hasState:
		r.record(decided, p)
	case hasOverflow:
		r.record(overflow, p)
	default:
		r.record(r.active, p)
	}
	return nil
}

func (r *run) result() *Result {
	n := 0
	for i := range r.histories {
		n += len(r.histories[i].records)
	}
	records := make([]entity.ClassifiedRecord, 0, n)
	for i := range r.histories {
		records = append(records, r.histories[i].records...)
	}
	slices.SortStableFunc(records, func(a, b entity.ClassifiedRecord) int {
		return a.TradeDate.Compare(b.TradeDate)
	})

	markers := make(map[entity.Category]entity.ReversalMarker)
	for i, m := range r.markers {
		if m.HasRed || m.HasBlack {
			markers[entity.Category(i)] = m
		}
	}
	return &Result{Records: records, Markers: markers}
}
