package calendar

import "testing"

func TestWindowSimpleRange(t *testing.T) {
	w, err := NewWindow("06:27:00", "06:33:00", 60)
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	if !w.Contains("06:27:00") {
		t.Fatalf("expected 06:27:00 in window")
	}
	if !w.Contains("06:33:00") {
		t.Fatalf("expected 06:33:00 in window")
	}
	if w.Contains("06:34:00") {
		t.Fatalf("expected 06:34:00 not in window")
	}
}

func TestWindowMidnightWrap(t *testing.T) {
	w, err := NewWindow("16:59:00", "04:02:00", 60)
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	for _, tc := range []string{"16:59:00", "23:59:00", "00:00:00", "04:02:00"} {
		if !w.Contains(tc) {
			t.Fatalf("expected %s in wrapping window", tc)
		}
	}
	if w.Contains("10:00:00") {
		t.Fatalf("expected 10:00:00 not in wrapping window")
	}
}

func TestExcludedSet(t *testing.T) {
	e := NewExcludedSet()
	if !e.Contains("12:59:30") {
		t.Fatalf("expected 12:59:30 to be excluded")
	}
	if e.Contains("09:00:00") {
		t.Fatalf("expected 09:00:00 not excluded")
	}
}

func TestAllowedTradingHoursBoundaries(t *testing.T) {
	w := AllowedTradingHours()
	if !w.Contains("06:03:00") {
		t.Fatalf("expected 06:03:00 allowed")
	}
	if w.Contains("06:02:59") {
		t.Fatalf("expected 06:02:59 not allowed")
	}
}

func TestClassifySession(t *testing.T) {
	cases := map[string]Session{
		"02:00:00": SessionPreMarket,
		"07:00:00": SessionNormal,
		"14:00:00": SessionAfterMarket,
		"23:00:00": SessionNone,
	}
	for clockTime, want := range cases {
		if got := ClassifySession(clockTime); got != want {
			t.Fatalf("ClassifySession(%q) = %v, want %v", clockTime, got, want)
		}
	}
}
