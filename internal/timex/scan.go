package timex

import (
	"fmt"
	"time"
)

// layouts accepted for timestamps that a driver hands back as text.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Scanner adapts timestamp columns to time.Time regardless of whether the
// driver returns time.Time (pgx) or text (SQLite). Values are normalised to UTC.
//
//	var created time.Time
//	row.Scan(timex.Scanner{T: &created})
type Scanner struct {
	T *time.Time
}

func (s Scanner) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s.T = time.Time{}
		return nil
	case time.Time:
		*s.T = v.UTC()
		return nil
	case string:
		return s.parse(v)
	case []byte:
		return s.parse(string(v))
	default:
		return fmt.Errorf("timex: cannot scan %T into time.Time", src)
	}
}

func (s Scanner) parse(v string) error {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			*s.T = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("timex: unrecognised timestamp %q", v)
}
