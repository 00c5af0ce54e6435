package ledger

import (
	"fmt"
	"strings"
	"time"
)

// IST is the zone dates are shown and entered in.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// DisplayLayout is the layout used for showing and entering instants.
const DisplayLayout = "2006-01-02 15:04"

// Display formats i in IST, or "" when unset.
func (i Instant) Display() string {
	if !i.Valid {
		return ""
	}

	return i.Time.In(IST).Format(DisplayLayout)
}

// ParseDisplay reads "YYYY-MM-DD HH:MM" (or with a "T" separator) as IST.
// A bare date means midnight IST. Blank input yields an invalid Instant.
func ParseDisplay(s string) (Instant, error) {
	s = strings.TrimSpace(strings.Replace(s, "T", " ", 1))
	if s == "" {
		return Instant{}, nil
	}

	t, err := time.ParseInLocation(DisplayLayout, s, IST)
	if err != nil {
		var dateErr error

		t, dateErr = time.ParseInLocation(time.DateOnly, s, IST)
		if dateErr != nil {
			return Instant{}, err
		}
	}

	i := NewInstant(t)
	if !i.InRange() {
		return Instant{}, fmt.Errorf("parsing date %q: %w", s, ErrInstantRange)
	}

	return i, nil
}
