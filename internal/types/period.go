package types

import (
	"fmt"
	"time"

	ierr "github.com/bohselecta/luvler-metering/internal/errors"
)

// Period identifies one UTC calendar month of usage. Usage records are keyed
// by (user, period) so rollover at a month boundary is implicit: the next
// month simply reads a different key and synthesizes a zero record.
type Period struct {
	Year  int
	Month time.Month
}

// CurrentPeriod returns the period for the current UTC month
func CurrentPeriod() Period {
	return PeriodFromTime(time.Now().UTC())
}

// PeriodFromTime returns the period containing t, evaluated in UTC
func PeriodFromTime(t time.Time) Period {
	utc := t.UTC()
	return Period{Year: utc.Year(), Month: utc.Month()}
}

// ParsePeriod parses a YYYY-MM period key
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, ierr.WithError(err).
			WithHintf("Invalid period %q, expected YYYY-MM", s).
			Mark(ierr.ErrValidation)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// String renders the period as its YYYY-MM storage key segment
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Next returns the following calendar month
func (p Period) Next() Period {
	t := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return Period{Year: t.Year(), Month: t.Month()}
}

// Prev returns the preceding calendar month
func (p Period) Prev() Period {
	t := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return Period{Year: t.Year(), Month: t.Month()}
}

// Before reports whether p is earlier than other
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// MarshalJSON encodes the period as its YYYY-MM string form
func (p Period) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", p.String())), nil
}

// UnmarshalJSON decodes a YYYY-MM string period
func (p *Period) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return ierr.NewErrorf("invalid period json: %s", string(data)).
			Mark(ierr.ErrValidation)
	}
	parsed, err := ParsePeriod(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
