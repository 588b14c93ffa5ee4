package strategies

import (
	"github.com/rustyeddy/crossbar/calendar"
	"github.com/rustyeddy/crossbar/market"
)

// Event is the crossover transition produced by advancing the state
// machine on a newly enriched minute bar.
type Event int

const (
	EventNone Event = iota
	EventPre
	EventFirst
	EventSecond     // second intersection — may trigger Buy Intent
	EventThird      // third intersection (re-entry to firstFound) — triggers Sell Intent
	EventForcedSell // secondFound, no crossover, but in an excluded window — forced sell if a position exists
)

// AdvanceCrossover evaluates the per-bar transition table (§4.3) for one
// symbol's intersection state against a freshly enriched bar, mutating
// both the state and the bar's Intersection tag. The "third intersection"
// is represented as a transition back to firstFound, not a fourth state;
// per the documented journal-compatibility decision, the bar's tag on
// that re-entry is "first", not "third".
func AdvanceCrossover(state *market.IntersectionState, bar *market.EnrichedMinuteBar, index int, excluded *calendar.ExcludedSet) Event {
	switch {
	case !state.PrePointFound:
		if bar.EMA > bar.SMA {
			state.PrePointFound = true
			bar.Intersection = market.IntersectionPre
			return EventPre
		}
		return EventNone

	case state.PrePointFound && !state.FirstFound:
		if bar.SMA > bar.EMA {
			state.FirstFound = true
			state.HighestBetweenFirstAndSecond = bar.High
			state.HasHighestBetween = true
			state.FirstIndex = index
			bar.Intersection = market.IntersectionFirst
			return EventFirst
		}
		return EventNone

	case state.FirstFound && !state.SecondFound:
		if bar.EMA > bar.SMA {
			state.SecondFound = true
			state.SecondCalT = bar.CalTime
			state.SecondIndex = index
			bar.Intersection = market.IntersectionSecond
			return EventSecond
		}
		if bar.High > state.HighestBetweenFirstAndSecond || !state.HasHighestBetween {
			state.HighestBetweenFirstAndSecond = bar.High
			state.HasHighestBetween = true
		}
		return EventNone

	case state.SecondFound:
		if bar.SMA > bar.EMA {
			state.FirstFound = true
			state.SecondFound = false
			state.HighestBetweenFirstAndSecond = bar.High
			state.HasHighestBetween = true
			state.FirstIndex = index
			bar.Intersection = market.IntersectionFirst
			return EventThird
		}
		if excluded.Contains(bar.CalTime) {
			return EventForcedSell
		}
		return EventNone

	default:
		return EventNone
	}
}
