package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Date is a calendar date as written in ABO records. Day and month are
// range-checked only, so values such as 31-02 are kept as written rather
// than normalized into the following month as time.Time would.
type Date struct {
	Year  int
	Month int
	Day   int
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseISODate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// ParseISODate parses the YYYY-MM-DD form produced by String.
func ParseISODate(s string) (Date, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
		}
		nums[i] = n
	}
	return Date{Year: nums[0], Month: nums[1], Day: nums[2]}, nil
}

// FormatDate renders a nullable date, empty when nil.
func FormatDate(d *Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
