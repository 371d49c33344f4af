package model

import (
	"strings"
	"time"
)

// TimestampLayout is the layout table timestamps are written in.
const TimestampLayout = time.RFC3339Nano

// timestampLayouts are tried in order when reading table timestamps.
var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", time.DateOnly}

// ParseTimestamp reads a created_at/updated_at value. It accepts a time.Time
// or a string in one of the accepted layouts.
func ParseTimestamp(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, strings.TrimSpace(x)); err == nil {
				return ts, true
			}
		}
	}

	return time.Time{}, false
}
