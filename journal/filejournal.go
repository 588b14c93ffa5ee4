// journal/filejournal.go holds the file-backed bar-dump journal: JSON
// files on disk, alongside the SQLite trade log.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rustyeddy/crossbar/market"
)

// FileJournal writes per-symbol enriched bar dumps as JSON files under
// root, following buy_sell_data/<formula>/<phase>/<end_date>_end_date/...
type FileJournal struct {
	root string
}

// NewFileJournal returns a FileJournal rooted at root (created lazily on
// first write).
func NewFileJournal(root string) *FileJournal {
	return &FileJournal{root: root}
}

// Path returns the destination path for a given dump, matching
// buy_sell_data/<formula>/<phase>/<end_date>_end_date/<SYM>_SD(<sd>)_ST(<st>)_to_ED(<ed>)_ET(<et>).json
func (f *FileJournal) Path(meta BarDumpMeta) string {
	dir := filepath.Join(f.root, "buy_sell_data", meta.Formula, meta.Phase, meta.EndDate+"_end_date")
	name := fmt.Sprintf("%s_SD(%s)_ST(%s)_to_ED(%s)_ET(%s).json",
		meta.Symbol, meta.StartDate, meta.StartTime, meta.EndDate, meta.EndTime)
	return filepath.Join(dir, name)
}

// WriteBars serializes bars to JSON and writes them atomically
// (temp file + rename) to the path named by meta.
func (f *FileJournal) WriteBars(meta BarDumpMeta, bars []market.EnrichedMinuteBar) error {
	path := f.Path(meta)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("journal: mkdir %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(bars, "", "  ")
	if err != nil {
		return fmt.Errorf("journal: marshal bars for %s: %w", meta.Symbol, err)
	}

	tmp, err := os.CreateTemp(dir, ".bars-*.tmp")
	if err != nil {
		return fmt.Errorf("journal: create temp: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("journal: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("journal: close temp: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("journal: rename: %w", err)
	}
	return nil
}

// RecordTrade is a no-op on FileJournal; trade summaries are the
// SQLite backend's responsibility. Present so FileJournal alone can
// satisfy Journal when no trade database is configured.
func (f *FileJournal) RecordTrade(t TradeRecord) error {
	return nil
}

// Close is a no-op; FileJournal holds no open handles between writes.
func (f *FileJournal) Close() error {
	return nil
}
