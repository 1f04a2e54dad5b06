// Package timex wraps time.Time with a fixed serialization layout
// Package timex 封装 time.Time，提供固定的序列化格式
package timex

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Layout is the canonical format used for JSON and database round trips
// Layout 是 JSON 与数据库互转使用的标准格式
const Layout = "2006-01-02 15:04:05"

// Time is a time.Time alias with stable JSON/database encoding
// Time 是 time.Time 的别名类型，具有稳定的 JSON/数据库编码
type Time time.Time

// Now returns the current time as a timex.Time
// Now 返回当前时间的 timex.Time
func Now() Time {
	return Time(time.Now())
}

// Time converts back to the standard library type
// Time 转换回标准库类型
func (t Time) Time() time.Time {
	return time.Time(t)
}

// IsZero reports whether t represents the zero time instant
func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

// Unix returns t as a Unix timestamp in seconds
func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

// UnixMilli returns t as a Unix timestamp in milliseconds
func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

// UnixMicro returns t as a Unix timestamp in microseconds
func (t Time) UnixMicro() int64 {
	return time.Time(t).UnixMicro()
}

// UnixNano returns t as a Unix timestamp in nanoseconds
func (t Time) UnixNano() int64 {
	return time.Time(t).UnixNano()
}

// Format formats using the standard library layout rules
func (t Time) Format(layout string) string {
	return time.Time(t).Format(layout)
}

// String implements fmt.Stringer
func (t Time) String() string {
	return time.Time(t).Format(Layout)
}

// MarshalJSON encodes as "2006-01-02 15:04:05"; the zero time encodes as null
// MarshalJSON 编码为 "2006-01-02 15:04:05"；零值时间编码为 null
func (t Time) MarshalJSON() ([]byte, error) {
	if time.Time(t).IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + time.Time(t).Format(Layout) + `"`), nil
}

// UnmarshalJSON accepts the canonical layout, RFC3339, or null
// UnmarshalJSON 接受标准格式、RFC3339 或 null
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*t = Time(time.Time{})
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if parsed, err := time.ParseInLocation(Layout, s, time.Local); err == nil {
		*t = Time(parsed)
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("timex: cannot parse %q", s)
	}
	*t = Time(parsed)
	return nil
}

// Value implements driver.Valuer so GORM can persist the wrapper directly
// Value 实现 driver.Valuer，便于 GORM 直接持久化
func (t Time) Value() (driver.Value, error) {
	if time.Time(t).IsZero() {
		return nil, nil
	}
	return time.Time(t), nil
}

// Scan implements sql.Scanner
// Scan 实现 sql.Scanner
func (t *Time) Scan(v interface{}) error {
	switch value := v.(type) {
	case nil:
		*t = Time(time.Time{})
		return nil
	case time.Time:
		*t = Time(value)
		return nil
	case []byte:
		return t.scanString(string(value))
	case string:
		return t.scanString(value)
	default:
		return fmt.Errorf("timex: cannot scan type %T into timex.Time", v)
	}
}

func (t *Time) scanString(s string) error {
	if s == "" {
		*t = Time(time.Time{})
		return nil
	}
	parsed, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("timex: cannot parse %q", s)
		}
	}
	*t = Time(parsed)
	return nil
}
