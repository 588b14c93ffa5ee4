package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// Window is a precomputed set of "HH:MM:SS" strings spaced intervalSec
// apart covering [start, end]. When start > end the range wraps through
// midnight: the set is built as [start..24:00) followed by [00:00..end],
// matching the original source's two-pass construction rather than
// normalizing to a simpler always-start<end model.
type Window struct {
	set map[string]struct{}
}

// NewWindow builds a Window from "HH:MM:SS" boundary strings.
func NewWindow(start, end string, intervalSec int) (*Window, error) {
	startSec, err := parseClockSeconds(start)
	if err != nil {
		return nil, fmt.Errorf("window start: %w", err)
	}
	endSec, err := parseClockSeconds(end)
	if err != nil {
		return nil, fmt.Errorf("window end: %w", err)
	}
	if intervalSec <= 0 {
		intervalSec = 1
	}

	set := make(map[string]struct{})

	if startSec <= endSec {
		for t := startSec; t <= endSec; t += intervalSec {
			set[formatClockSeconds(t)] = struct{}{}
		}
		return &Window{set: set}, nil
	}

	const dayEnd = 24 * 3600
	resumeFrom := 0
	for t := startSec; t < dayEnd; t += intervalSec {
		set[formatClockSeconds(t)] = struct{}{}
		if t+intervalSec >= dayEnd {
			resumeFrom = (t + intervalSec) - dayEnd
		}
	}
	for t := resumeFrom; t <= endSec; t += intervalSec {
		set[formatClockSeconds(t)] = struct{}{}
	}

	return &Window{set: set}, nil
}

// Contains reports whether clockTime ("HH:MM:SS") is a member of the window.
func (w *Window) Contains(clockTime string) bool {
	_, ok := w.set[clockTime]
	return ok
}

func parseClockSeconds(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid HH:MM:SS %q", clock)
	}
	hh, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	mm, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	ss, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, err
	}
	return hh*3600 + mm*60 + ss, nil
}

func formatClockSeconds(totalSec int) string {
	hh := totalSec / 3600
	mm := (totalSec % 3600) / 60
	ss := totalSec % 60
	return fmt.Sprintf("%02d:%02d:%02d", hh, mm, ss)
}

// ExcludedWindows builds the four session-boundary windows named in the
// engine's excluded-time set: the midnight-wrapping after/pre-market
// switch and three short mid-session pauses.
func ExcludedWindows() []*Window {
	return []*Window{
		mustWindow("16:59:00", "04:02:00"),
		mustWindow("05:59:00", "06:02:00"),
		mustWindow("06:27:00", "06:33:00"),
		mustWindow("12:59:00", "13:03:00"),
	}
}

// ExcludedSet is a union of the four excluded windows, exposing a single
// Contains test so callers don't iterate the slice themselves.
type ExcludedSet struct {
	windows []*Window
}

// NewExcludedSet builds the standard excluded-time set.
func NewExcludedSet() *ExcludedSet {
	return &ExcludedSet{windows: ExcludedWindows()}
}

// Contains reports whether clockTime falls in any excluded window.
func (e *ExcludedSet) Contains(clockTime string) bool {
	for _, w := range e.windows {
		if w.Contains(clockTime) {
			return true
		}
	}
	return false
}

// AllowedTradingHours is the {06:03:00..14:55:00 step 60s} window named by
// the buy-intent precondition.
func AllowedTradingHours() *Window {
	w, err := NewWindow("06:03:00", "14:55:00", 60)
	if err != nil {
		panic(err)
	}
	return w
}
