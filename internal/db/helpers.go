package db

import "database/sql"

// NullIfEmpty stores optional strings as NULL instead of empty text.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func FloatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func IntPtr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
