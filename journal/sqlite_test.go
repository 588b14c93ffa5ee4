package journal

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func newTestSQLite(t *testing.T) (*SQLiteJournal, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path, dir)
	assert.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name='trades'`)
	assert.NoError(t, err)
	defer rows.Close()

	found := false
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found = true
	}
	assert.NoError(t, rows.Err())
	assert.True(t, found)
}

func TestSQLiteRecordTrade(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)

	open := time.Date(2026, 7, 31, 6, 30, 0, 0, time.UTC)
	closeT := time.Date(2026, 7, 31, 7, 45, 0, 0, time.UTC)

	rec := TradeRecord{
		Symbol:         "AAPL",
		Formula:        "F1",
		Qty:            42,
		EntryPrice:     10.5,
		ExitPrice:      10.2,
		OpenTime:       open,
		CloseTime:      closeT,
		RealizedPL:     -12.6,
		Loss:           true,
		Banned:         true,
		RequestedPrice: 10.5,
	}

	assert.NoError(t, j.RecordTrade(rec))
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var (
		symbol         string
		formula        string
		qty            float64
		entry          float64
		exit           float64
		openTime       time.Time
		closeTime      time.Time
		realizedPL     float64
		loss           int
		banned         int
		requestedPrice float64
	)

	err = db.QueryRow(`
        SELECT symbol, formula, qty, entry_price, exit_price, open_time, close_time, realized_pl, loss, banned, requested_price
        FROM trades LIMIT 1`).Scan(
		&symbol, &formula, &qty, &entry, &exit, &openTime, &closeTime, &realizedPL, &loss, &banned, &requestedPrice,
	)
	assert.NoError(t, err)

	assert.Equal(t, rec.Symbol, symbol)
	assert.Equal(t, rec.Formula, formula)
	assert.InDelta(t, rec.Qty, qty, 1e-6)
	assert.InDelta(t, rec.EntryPrice, entry, 1e-9)
	assert.InDelta(t, rec.ExitPrice, exit, 1e-9)
	assert.True(t, openTime.Equal(rec.OpenTime))
	assert.True(t, closeTime.Equal(rec.CloseTime))
	assert.InDelta(t, rec.RealizedPL, realizedPL, 1e-6)
	assert.Equal(t, 1, loss)
	assert.Equal(t, 1, banned)
	assert.InDelta(t, rec.RequestedPrice, requestedPrice, 1e-9)
}

func TestSQLiteWriteBarsDelegatesToFileJournal(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	meta := BarDumpMeta{Formula: "F1", Phase: "normal", Symbol: "AAPL", StartDate: "2026-07-31", StartTime: "06:30:00", EndDate: "2026-07-31", EndTime: "07:00:00"}
	assert.NoError(t, j.WriteBars(meta, nil))

	_, err := os.Stat(j.barDump.Path(meta))
	assert.NoError(t, err)
}
