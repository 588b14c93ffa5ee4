// Package banlist persists the symbol → unban-timestamp map to a JSON
// file, written atomically (write-to-temp, rename) after every mutation.
package banlist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// BanDurationMs is the fixed 30-day ban duration named in the engine's
// configuration (§6).
const BanDurationMs = 30 * 24 * 3600 * 1000

// List is a persistent symbol → unban-epoch-ms map.
type List struct {
	mu   sync.Mutex
	path string
	m    map[string]int64
}

// Load reads the ban list from path, or returns an empty list if the
// file doesn't exist yet.
func Load(path string) (*List, error) {
	l := &List{path: path, m: make(map[string]int64)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("banlist: read %s: %w", path, err)
	}
	if len(data) == 0 {
		return l, nil
	}
	if err := json.Unmarshal(data, &l.m); err != nil {
		return nil, fmt.Errorf("banlist: parse %s: %w", path, err)
	}
	return l, nil
}

// IsBanned reports whether symbol is banned as of nowMs.
func (l *List) IsBanned(symbol string, nowMs int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	unban, ok := l.m[symbol]
	return ok && unban > nowMs
}

// All returns a copy of the full symbol -> unban-epoch-ms map, used to
// seed the engine's in-memory ban state at startup.
func (l *List) All() map[string]int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

// UnbanAt returns the unban timestamp for symbol and whether it is
// present in the list at all (regardless of whether it has expired).
func (l *List) UnbanAt(symbol string) (int64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	unban, ok := l.m[symbol]
	return unban, ok
}

// Ban adds symbol to the list with an unban time of nowMs+BanDurationMs
// and persists the list.
func (l *List) Ban(symbol string, nowMs int64) error {
	l.mu.Lock()
	l.m[symbol] = nowMs + BanDurationMs
	snapshot := l.snapshot()
	l.mu.Unlock()
	return l.persist(snapshot)
}

// Unban removes symbol from the list (used when unbanMs <= now on a
// subscription check) and persists the list.
func (l *List) Unban(symbol string) error {
	l.mu.Lock()
	delete(l.m, symbol)
	snapshot := l.snapshot()
	l.mu.Unlock()
	return l.persist(snapshot)
}

func (l *List) snapshot() map[string]int64 {
	cp := make(map[string]int64, len(l.m))
	for k, v := range l.m {
		cp[k] = v
	}
	return cp
}

// persist writes the list atomically: write to a temp file in the same
// directory, then rename over the target path.
func (l *List) persist(m map[string]int64) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("banlist: marshal: %w", err)
	}

	dir := filepath.Dir(l.path)
	tmp, err := os.CreateTemp(dir, ".banlist-*.tmp")
	if err != nil {
		return fmt.Errorf("banlist: create temp: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("banlist: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("banlist: close temp: %w", err)
	}
	if err := os.Rename(tmpPath, l.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("banlist: rename: %w", err)
	}
	return nil
}
