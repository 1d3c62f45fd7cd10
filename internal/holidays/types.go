package holidays

import (
	"encoding/json"
	"strconv"
)

// Entry is one day of the holiday JSON data.
type Entry struct {
	Holiday bool   `json:"holiday"`
	Name    string `json:"name"`
	Wage    int    `json:"wage"`
	Date    string `json:"date"`
	After   *bool  `json:"after,omitempty"`
	Target  string `json:"target,omitempty"`
	Rest    *int   `json:"rest,omitempty"`
}

// UnmarshalJSON accepts "holiday" as either a boolean or a string; a
// non-empty string counts as a holiday.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type alias Entry
	aux := &struct {
		Holiday any `json:"holiday"`
		*alias
	}{
		alias: (*alias)(e),
	}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	switch v := aux.Holiday.(type) {
	case bool:
		e.Holiday = v
	case string:
		e.Holiday = v != ""
	default:
		e.Holiday = false
	}
	return nil
}

// file mirrors the JSON document: a list of years, each mapping "MM-DD" to
// an entry.
type file []struct {
	Year    string            `json:"year"`
	Holiday map[string]*Entry `json:"holiday"`
}

// Table indexes entries by year and then by "MM-DD".
type Table map[string]map[string]*Entry

// Years reports the smallest and largest year in the table.
func (t Table) Years() (minYear, maxYear int, ok bool) {
	for key := range t {
		y, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		if !ok || y < minYear {
			minYear = y
		}
		if !ok || y > maxYear {
			maxYear = y
		}
		ok = true
	}
	return minYear, maxYear, ok
}
