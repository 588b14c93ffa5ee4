// Package journal persists per-symbol enriched bar history to disk on
// every buy-request, sell-request, and unsubscribe (§4.6), plus a
// SQLite summary of completed trades for later inspection. Journal
// failures are swallowed by callers — journaling must never block
// trading.
package journal

import (
	"time"

	"github.com/rustyeddy/crossbar/market"
)

// BarDumpMeta names the path components for a bar dump:
// buy_sell_data/<formula>/<phase>/<end_date>_end_date/<SYM>_SD(<sd>)_ST(<st>)_to_ED(<ed>)_ET(<et>).json
type BarDumpMeta struct {
	Formula   string // "F1", "F3", "F4"
	Phase     string // "buy", "sell", or "final" (unsubscribe)
	Symbol    string
	StartDate string // sd
	StartTime string // st
	EndDate   string // ed
	EndTime   string // et
}

// TradeRecord summarizes a completed buy/sell round trip for a symbol,
// used for the SQLite trade log.
type TradeRecord struct {
	Symbol         string
	Formula        string
	Qty            float64
	EntryPrice     float64
	ExitPrice      float64
	OpenTime       time.Time
	CloseTime      time.Time
	RealizedPL     float64
	Loss           bool
	Banned         bool
	RequestedPrice float64
}

// Journal is the persistence contract the engine drives. Implementations
// must tolerate concurrent-ish best-effort writes and never panic.
type Journal interface {
	WriteBars(meta BarDumpMeta, bars []market.EnrichedMinuteBar) error
	RecordTrade(t TradeRecord) error
	Close() error
}
