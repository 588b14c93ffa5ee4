// Package calendar converts millisecond UTC timestamps to wall-clock
// HH:MM:SS/date strings in a configured zone, and answers set-membership
// questions about named time windows.
package calendar

import "time"

// Clock converts epoch-millisecond timestamps into the wall-clock
// representation used throughout the strategy engine: an HH:MM:SS time of
// day and an ISO date, both in a single configured zone.
type Clock struct {
	loc *time.Location
}

// NewClock loads the IANA zone named by zone (e.g. "America/Los_Angeles").
func NewClock(zone string) (*Clock, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, err
	}
	return &Clock{loc: loc}, nil
}

// MustNewClock is like NewClock but panics on error. The engine calls it
// with the configured trading-hours zone.
func MustNewClock(zone string) *Clock {
	c, err := NewClock(zone)
	if err != nil {
		panic(err)
	}
	return c
}

// Time returns the wall-clock time for the given millisecond timestamp.
func (c *Clock) Time(ms int64) time.Time {
	return time.UnixMilli(ms).In(c.loc)
}

// ClockString returns "HH:MM:SS" for the given millisecond timestamp.
func (c *Clock) ClockString(ms int64) string {
	return c.Time(ms).Format("15:04:05")
}

// DateString returns "YYYY-MM-DD" for the given millisecond timestamp.
func (c *Clock) DateString(ms int64) string {
	return c.Time(ms).Format("2006-01-02")
}

// NowMs returns the current time as milliseconds since the epoch.
func NowMs() int64 {
	return time.Now().UnixMilli()
}

// Session identifies which trading session a clock time falls in.
type Session int

const (
	SessionNone Session = iota
	SessionPreMarket
	SessionNormal
	SessionAfterMarket
)

// preMarketWindow, normalWindow and afterMarketWindow mirror the session
// boundaries from the order-type-selection rule: pre-market
// 01:00:00-06:29:59, normal 06:30:00-12:59:59, after-market
// 13:00:00-16:59:59, all in the configured trading-hours zone.
var (
	preMarketWindow   = mustWindow("01:00:00", "06:29:59")
	normalWindow      = mustWindow("06:30:00", "12:59:59")
	afterMarketWindow = mustWindow("13:00:00", "16:59:59")
)

// ClassifySession reports which session the given HH:MM:SS clock string
// falls in.
func ClassifySession(clockTime string) Session {
	switch {
	case normalWindow.Contains(clockTime):
		return SessionNormal
	case preMarketWindow.Contains(clockTime):
		return SessionPreMarket
	case afterMarketWindow.Contains(clockTime):
		return SessionAfterMarket
	default:
		return SessionNone
	}
}

func mustWindow(start, end string) *Window {
	w, err := NewWindow(start, end, 1)
	if err != nil {
		panic(err)
	}
	return w
}
