package journal

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/crossbar/market"
	"github.com/rustyeddy/crossbar/pkg/id"
)

// SQLiteJournal backs the completed-trade log with SQLite; bar dumps go
// through FileJournal instead since they're per-symbol JSON blobs, not
// relational rows.
type SQLiteJournal struct {
	db      *sql.DB
	barDump *FileJournal
}

// NewSQLite opens (creating if needed) the trade database at path and
// wraps bar-dump writes through a FileJournal rooted at barDumpRoot.
func NewSQLite(path, barDumpRoot string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}
	return &SQLiteJournal{db: db, barDump: NewFileJournal(barDumpRoot)}, nil
}

func (j *SQLiteJournal) WriteBars(meta BarDumpMeta, bars []market.EnrichedMinuteBar) error {
	return j.barDump.WriteBars(meta, bars)
}

func (j *SQLiteJournal) RecordTrade(t TradeRecord) error {
	loss, banned := 0, 0
	if t.Loss {
		loss = 1
	}
	if t.Banned {
		banned = 1
	}
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, symbol, formula, qty, entry_price, exit_price, open_time, close_time, realized_pl, loss, banned, requested_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.New(), t.Symbol, t.Formula, t.Qty, t.EntryPrice, t.ExitPrice,
		t.OpenTime.Format(time.RFC3339), t.CloseTime.Format(time.RFC3339),
		t.RealizedPL, loss, banned, t.RequestedPrice,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
