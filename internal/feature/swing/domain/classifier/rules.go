package classifier

import "swing_backend/internal/feature/swing/domain/entity"

// rule proposes a category for a price. ok is false when the rule does not apply.
type rule struct {
	name string
	eval func(r *run, price float64) (c entity.Category, ok bool, err error)
}

// cond tests a percentage change against the thresholds.
type cond func(th Thresholds, p float64) bool

// pair tests two percentage changes against the thresholds.
type pair func(th Thresholds, p1, p2 float64) bool

func rising(_ Thresholds, p float64) bool  { return p >= 0 }
func falling(_ Thresholds, p float64) bool { return p <= 0 }

func swingUp(th Thresholds, p float64) bool   { return p >= th.SwingUp }
func swingDown(th Thresholds, p float64) bool { return p >= th.SwingDown }

func resumeUp(th Thresholds, p float64) bool   { return p >= th.ResumeUp }
func resumeDown(th Thresholds, p float64) bool { return p >= th.ResumeDown }

// secondary holds when the price has run SwingUp past the first reference
// without getting back above the second.
func secondary(th Thresholds, p1, p2 float64) bool { return p1 >= th.SwingUp && p2 <= 0 }

func aboveSecond(_ Thresholds, _, p2 float64) bool { return p2 >= 0 }

// fromLast applies when ref has records and ok holds against its tail.
func fromLast(name string, ref entity.Category, ok cond, to entity.Category) rule {
	return rule{name: name, eval: func(r *run, price float64) (entity.Category, bool, error) {
		p, has, err := r.changeFromLast(ref, price)
		if err != nil || !has {
			return 0, false, err
		}
		return to, ok(r.th, p), nil
	}}
}

// fromRequiredLast is fromLast for a reference the active state guarantees to exist.
func fromRequiredLast(name string, ref entity.Category, ok cond, to entity.Category) rule {
	return rule{name: name, eval: func(r *run, price float64) (entity.Category, bool, error) {
		p, err := r.requireChangeFromLast(ref, price)
		if err != nil {
			return 0, false, err
		}
		return to, ok(r.th, p), nil
	}}
}

// fromBothLast applies when both references have records and ok holds against their tails.
func fromBothLast(name string, ref1, ref2 entity.Category, ok pair, to entity.Category) rule {
	return rule{name: name, eval: func(r *run, price float64) (entity.Category, bool, error) {
		p1, has1, err := r.changeFromLast(ref1, price)
		if err != nil || !has1 {
			return 0, false, err
		}
		p2, has2, err := r.changeFromLast(ref2, price)
		if err != nil || !has2 {
			return 0, false, err
		}
		return to, ok(r.th, p1, p2), nil
	}}
}

// fromRequiredBoth is fromBothLast for references the active state guarantees to exist.
func fromRequiredBoth(name string, ref1, ref2 entity.Category, ok pair, to entity.Category) rule {
	return rule{name: name, eval: func(r *run, price float64) (entity.Category, bool, error) {
		p1, err := r.requireChangeFromLast(ref1, price)
		if err != nil {
			return 0, false, err
		}
		p2, err := r.requireChangeFromLast(ref2, price)
		if err != nil {
			return 0, false, err
		}
		return to, ok(r.th, p1, p2), nil
	}}
}

// fromLine applies when ref carries a line of colour l and ok holds against it.
func fromLine(name string, ref entity.Category, l entity.Line, ok cond, to entity.Category) rule {
	return rule{name: name, eval: func(r *run, price float64) (entity.Category, bool, error) {
		p, has, err := r.changeFromLine(ref, l, price)
		if err != nil || !has {
			return 0, false, err
		}
		return to, ok(r.th, p), nil
	}}
}

// exhausted is fromLast that also draws line l under the tail of ref when it matches.
func exhausted(name string, ref entity.Category, ok cond, to entity.Category, l entity.Line) rule {
	base := fromLast(name, ref, ok, to)
	return rule{name: name, eval: func(r *run, price float64) (entity.Category, bool, error) {
		c, matched, err := base.eval(r, price)
		if err != nil || !matched {
			return 0, false, err
		}
		r.mark(ref, l, price)
		return c, true, nil
	}}
}

// stateRules are evaluated for the active category only; the first match decides.
// The order inside each list is load-bearing.
var stateRules = map[entity.Category][]rule{
	entity.NaturalRally: {
		fromBothLast("rally into secondary reaction", entity.NaturalRally, entity.NaturalReaction, secondary, entity.SecondaryReaction),
		fromBothLast("rally back above reaction", entity.NaturalRally, entity.NaturalReaction, aboveSecond, entity.NaturalReaction),
		fromLast("rally resumes upward trend", entity.UpwardTrend, rising, entity.UpwardTrend),
		fromLine("rally clears black line", entity.NaturalRally, entity.LineBlack, resumeUp, entity.UpwardTrend),
		fromLast("rally continues", entity.NaturalRally, rising, entity.NaturalRally),
		fromLast("rally reacts", entity.NaturalRally, swingDown, entity.NaturalReaction),
	},
	entity.SecondaryRally: {
		fromRequiredBoth("secondary rally continues", entity.NaturalReaction, entity.NaturalRally, secondary, entity.SecondaryRally),
		fromRequiredBoth("secondary rally joins rally", entity.NaturalReaction, entity.NaturalRally, aboveSecond, entity.NaturalRally),
	},
	entity.NaturalReaction: {
		fromBothLast("reaction into secondary rally", entity.NaturalReaction, entity.NaturalRally, secondary, entity.SecondaryRally),
		fromLast("reaction resumes downward trend", entity.DownwardTrend, falling, entity.DownwardTrend),
		fromLast("reaction resumes upward trend", entity.UpwardTrend, swingUp, entity.UpwardTrend),
		fromLast("reaction turns to rally", entity.NaturalRally, rising, entity.NaturalRally),
		fromLine("reaction holds red line", entity.NaturalReaction, entity.LineRed, resumeDown, entity.DownwardTrend),
		fromLast("reaction rallies", entity.NaturalReaction, swingUp, entity.NaturalRally),
	},
	entity.SecondaryReaction: {
		fromRequiredBoth("secondary reaction continues", entity.NaturalRally, entity.NaturalReaction, secondary, entity.SecondaryReaction),
		fromRequiredBoth("secondary reaction joins reaction", entity.NaturalRally, entity.NaturalReaction, aboveSecond, entity.NaturalReaction),
	},
	entity.UpwardTrend: {
		fromLast("upward trend reacts", entity.NaturalRally, swingDown, entity.NaturalReaction),
	},
	entity.DownwardTrend: {
		fromRequiredLast("downward trend rallies", entity.DownwardTrend, swingUp, entity.NaturalRally),
	},
}

// overflowRules run on every point after the state rules. Every match draws
// its line; among them the last match wins.
var overflowRules = []rule{
	exhausted("upward trend exhausted", entity.UpwardTrend, swingDown, entity.NaturalReaction, entity.LineRed),
	exhausted("reaction exhausted", entity.NaturalReaction, swingUp, entity.NaturalRally, entity.LineRed),
	exhausted("downward trend exhausted", entity.DownwardTrend, swingUp, entity.NaturalRally, entity.LineBlack),
	exhausted("rally exhausted", entity.NaturalRally, swingDown, entity.NaturalRally, entity.LineBlack),
}
