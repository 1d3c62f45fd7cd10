// Package holidays loads public holiday data and marks grid cells with it.
package holidays

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lululau/calview/internal/calendar"
)

// MaxAge is how old cached data may get before it is reported stale.
const MaxAge = 180 * 24 * time.Hour

// Parse decodes holiday JSON.
func Parse(data []byte) (Table, error) {
	var doc file
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse holidays JSON: %w", err)
	}
	table := make(Table, len(doc))
	for _, year := range doc {
		table[year.Year] = year.Holiday
	}
	return table, nil
}

// LoadFromFile loads holiday data from a JSON file.
func LoadFromFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read holidays file: %w", err)
	}
	return Parse(data)
}

// CachePath returns the holiday cache file in the user cache directory.
func CachePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get cache directory: %w", err)
	}
	return filepath.Join(cacheDir, "calview", "holidays.json"), nil
}

// Stale reports whether the file at path is missing or older than maxAge.
func Stale(path string, maxAge time.Duration) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return true, err
	}
	return time.Since(info.ModTime()) > maxAge, nil
}

// Lookup returns the mark for a date, or nil when the table has none.
func (t Table) Lookup(year int, month time.Month, day int) *calendar.Mark {
	if t == nil {
		return nil
	}
	entry, ok := t[strconv.Itoa(year)][fmt.Sprintf("%02d-%02d", int(month), day)]
	if !ok || entry == nil {
		return nil
	}
	return &calendar.Mark{Name: entry.Name, Holiday: entry.Holiday}
}

// Annotate implements calendar.Annotator.
func (t Table) Annotate(cell *calendar.DayCell) {
	cell.Mark = t.Lookup(cell.Date.Year, cell.Date.Month, cell.Date.Day)
}
