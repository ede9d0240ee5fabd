package domain

import (
	"database/sql/driver"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// BigInt is an arbitrary-precision integer that survives JSON and SQL
// round-trips. It marshals as a decimal string so large values (hash rates
// in h/s) cross the cache without float precision loss. The field type is
// the tag; nothing guesses "big integer" from string shape on the way back.
type BigInt struct {
	big.Int
}

// NewBigInt wraps v as a BigInt.
func NewBigInt(v int64) *BigInt {
	b := new(BigInt)
	b.SetInt64(v)
	return b
}

// BigIntFromString parses a decimal string, truncating any fractional part.
func BigIntFromString(s string) (*BigInt, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("bigint: parse %q: %w", s, err)
	}
	b := new(BigInt)
	b.Int = *d.BigInt()
	return b, nil
}

func (b BigInt) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.String() + `"`), nil
}

// UnmarshalJSON accepts both quoted decimal strings and plain JSON numbers;
// the upstream provider sends either depending on the chain. Fractional
// parts are truncated.
func (b *BigInt) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("bigint: unmarshal %q: %w", s, err)
	}
	b.Int = *d.BigInt()
	return nil
}

func (b BigInt) Value() (driver.Value, error) {
	return b.String(), nil
}

func (b *BigInt) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case int64:
		b.SetInt64(v)
		return nil
	case []byte:
		return b.setString(string(v))
	case string:
		return b.setString(v)
	default:
		return fmt.Errorf("bigint: cannot scan %T", src)
	}
}

func (b *BigInt) setString(s string) error {
	parsed, err := BigIntFromString(s)
	if err != nil {
		return err
	}
	b.Int = parsed.Int
	return nil
}
