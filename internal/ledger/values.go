package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Amount is an optional monetary value. An invalid Amount counts as zero.
//
// It decodes from JSON numbers and numeric strings. Empty strings, null and
// anything non-numeric decode to an invalid Amount rather than failing the
// whole document. An invalid Amount encodes as "".
type Amount struct {
	Decimal decimal.Decimal
	Valid   bool
}

// NewAmount returns a valid Amount holding d.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d, Valid: true}
}

// AmountFromInt returns a valid Amount holding v.
func AmountFromInt(v int64) Amount {
	return NewAmount(decimal.NewFromInt(v))
}

// ParseAmount parses s as a decimal. Blank input yields an invalid Amount.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}

	return NewAmount(d), nil
}

// Value returns the decimal value, or zero when the amount is not set.
func (a Amount) Value() decimal.Decimal {
	if !a.Valid {
		return decimal.Zero
	}

	return a.Decimal
}

// Equal reports whether both amounts are unset or hold the same value.
func (a Amount) Equal(b Amount) bool {
	if a.Valid != b.Valid {
		return false
	}

	return !a.Valid || a.Decimal.Equal(b.Decimal)
}

func (a Amount) String() string {
	if !a.Valid {
		return ""
	}

	return a.Decimal.String()
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte(`""`), nil
	}

	return []byte(a.Decimal.String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}

		raw = s
	}

	parsed, err := ParseAmount(raw)
	if err != nil {
		return nil
	}

	*a = parsed

	return nil
}

// ErrInstantRange is returned for instants whose UTC year falls outside
// 0000-9999, which RFC 3339 cannot represent.
var ErrInstantRange = errors.New("instant year outside 0000-9999")

// Instant is an optional point in time, always held in UTC.
//
// It encodes as an RFC 3339 string with nanosecond precision so that any
// instant in range survives a round trip. An invalid Instant encodes as "".
type Instant struct {
	Time  time.Time
	Valid bool
}

// NewInstant returns a valid Instant for t converted to UTC.
func NewInstant(t time.Time) Instant {
	return Instant{Time: t.UTC(), Valid: true}
}

// ParseInstant parses an RFC 3339 timestamp. Blank input yields an invalid
// Instant.
func ParseInstant(s string) (Instant, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Instant{}, nil
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Instant{}, err
	}

	i := NewInstant(t)
	if !i.InRange() {
		return Instant{}, fmt.Errorf("parsing instant %q: %w", s, ErrInstantRange)
	}

	return i, nil
}

// InRange reports whether i is unset or its UTC year is within 0000-9999.
func (i Instant) InRange() bool {
	if !i.Valid {
		return true
	}

	y := i.Time.UTC().Year()

	return y >= 0 && y <= 9999
}

// Equal reports whether both instants are unset or denote the same moment.
func (i Instant) Equal(o Instant) bool {
	if i.Valid != o.Valid {
		return false
	}

	return !i.Valid || i.Time.Equal(o.Time)
}

func (i Instant) String() string {
	if !i.Valid {
		return ""
	}

	return i.Time.UTC().Format(time.RFC3339Nano)
}

func (i Instant) MarshalJSON() ([]byte, error) {
	if !i.InRange() {
		return nil, fmt.Errorf("encoding instant %s: %w", i.Time.UTC(), ErrInstantRange)
	}

	return json.Marshal(i.String())
}

func (i *Instant) UnmarshalJSON(data []byte) error {
	*i = Instant{}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// null, numbers and other shapes are treated as absent.
		return nil
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	// Out-of-range instants stay valid; validation rejects them on save.
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}

	*i = NewInstant(t)

	return nil
}
