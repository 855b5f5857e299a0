package db

import (
	"fmt"
	"time"
)

// DateLayout is the storage format of DATE columns.
const DateLayout = "2006-01-02"

// FormatDate renders t for a DATE column.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Date scans a nullable DATE column. SQLite may hand back text while
// Postgres returns time.Time.
type Date struct {
	Time  time.Time
	Valid bool
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = Date{Time: v, Valid: true}
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("scanning date: unsupported type %T", src)
	}
}

func (d *Date) parse(s string) error {
	for _, layout := range []string{DateLayout, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = Date{Time: t, Valid: true}
			return nil
		}
	}
	return fmt.Errorf("scanning date: invalid value %q", s)
}

// Ptr returns nil for an invalid date.
func (d Date) Ptr() *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}
