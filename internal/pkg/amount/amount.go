// Package amount parses decimal values coming from the backend API. Amounts arrive as JSON
// numbers, strings, serialized big-decimal objects ({"s":1,"e":2,"d":[1,2,5]}) or Mongo
// extended-JSON decimals ({"$numberDecimal":"125.00"}); all of them are decoded here and nowhere else.
package amount

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for values that are not a decimal in any supported encoding.
var ErrInvalidAmount = errors.New("invalid decimal amount")

// bigDecimal is the serialized form of a big.js value: sign, exponent of the leading digit and
// the coefficient digits. 1234.5 is {s:1, e:3, d:[1,2,3,4,5]}.
type bigDecimal struct {
	S *int  `json:"s"`
	E *int  `json:"e"`
	D []int `json:"d"`
}

type extendedDecimal struct {
	NumberDecimal *string `json:"$numberDecimal"`
}

// Parse decodes raw JSON into an exact rational.
func Parse(raw json.RawMessage) (*big.Rat, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		return ParseString(s)
	case '{':
		return parseObject(raw)
	default:
		return ParseString(string(raw))
	}
}

// ParseString decodes a plain decimal string such as "1000", "99.90" or "1.5e3".
func ParseString(s string) (*big.Rat, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d.Rat(), nil
}

func parseObject(raw json.RawMessage) (*big.Rat, error) {
	var ext extendedDecimal
	if err := json.Unmarshal(raw, &ext); err == nil && ext.NumberDecimal != nil {
		return ParseString(*ext.NumberDecimal)
	}

	var bd bigDecimal
	if err := json.Unmarshal(raw, &bd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if bd.S == nil || bd.E == nil || len(bd.D) == 0 {
		return nil, fmt.Errorf("%w: object is not a serialized decimal", ErrInvalidAmount)
	}
	if *bd.S != 1 && *bd.S != -1 {
		return nil, fmt.Errorf("%w: sign must be 1 or -1, got %d", ErrInvalidAmount, *bd.S)
	}

	var digits strings.Builder
	for _, d := range bd.D {
		if d < 0 || d > 9 {
			return nil, fmt.Errorf("%w: digit %d out of range", ErrInvalidAmount, d)
		}
		digits.WriteByte(byte('0' + d))
	}

	coefficient, ok := new(big.Int).SetString(digits.String(), 10)
	if !ok {
		return nil, fmt.Errorf("%w: bad coefficient", ErrInvalidAmount)
	}
	if *bd.S < 0 {
		coefficient.Neg(coefficient)
	}

	// value = 0.d1d2...dn * 10^(e+1) = coefficient * 10^(e+1-n)
	exp := *bd.E + 1 - len(bd.D)
	return decimal.NewFromBigInt(coefficient, int32(exp)).Rat(), nil
}

// Round2 rounds r to two decimal places, half away from zero.
func Round2(r *big.Rat) *big.Rat {
	num := decimal.NewFromBigInt(r.Num(), 0)
	den := decimal.NewFromBigInt(r.Denom(), 0)
	return num.DivRound(den, 2).Rat()
}

// Format renders r with exactly places decimals, half away from zero.
func Format(r *big.Rat, places int32) string {
	num := decimal.NewFromBigInt(r.Num(), 0)
	den := decimal.NewFromBigInt(r.Denom(), 0)
	return num.DivRound(den, places).StringFixed(places)
}
