package models

import (
	"strconv"
	"time"
)

// Weight is one body-weight journal entry. Timestamp is the entry's day in
// Unix milliseconds and doubles as its key.
type Weight struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

func (w Weight) Normalize() Weight {
	w.Value = NonNegative(w.Value)
	return w
}

// Key returns the timestamp in its textual form.
func (w Weight) Key() string {
	return strconv.FormatInt(w.Timestamp, 10)
}

// Day returns the local calendar day of the entry.
func (w Weight) Day() string {
	return time.UnixMilli(w.Timestamp).Format(time.DateOnly)
}
