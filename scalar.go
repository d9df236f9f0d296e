package funparams

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

///////////////////////////////////////////////////////////////////////////////
// Base Parsers
///////////////////////////////////////////////////////////////////////////////

// String validates that the named parameter is present and textual. A present
// nil is not a string and fails the type check; only a missing entry produces
// missing_parameter.
func String(name Symbol) *Parser {
	return &Parser{
		params: []Symbol{name},
		run: func(bag Bag, k Cont) (any, error) {
			raw, ok := bag.Lookup(name)
			if !ok {
				return nil, MissingParameter(name)
			}
			s, ok := raw.(string)
			if !ok {
				return nil, ExpectedString(name)
			}
			return deliverValue(k, name, s), nil
		},
	}
}

// Integer validates that the named parameter is present and numeric. Numeric
// strings are coerced, already-numeric values pass through, and the result is
// normalized to int64. A value that fails numeric parse is never swallowed
// into a default; it always reports invalid_type.
func Integer(name Symbol) *Parser {
	return &Parser{
		params: []Symbol{name},
		run: func(bag Bag, k Cont) (any, error) {
			raw, ok := bag.Lookup(name)
			if !ok {
				return nil, MissingParameter(name)
			}
			n, ok := coerceInt(raw)
			if !ok {
				return nil, NotAValidNumber(name)
			}
			return deliverValue(k, name, n), nil
		},
	}
}

// Float validates a floating point parameter, coercing numeric strings and
// normalizing to float64.
func Float(name Symbol) *Parser {
	return &Parser{
		params: []Symbol{name},
		run: func(bag Bag, k Cont) (any, error) {
			raw, ok := bag.Lookup(name)
			if !ok {
				return nil, MissingParameter(name)
			}
			f, ok := coerceFloat(raw)
			if !ok {
				return nil, NotAValidNumber(name)
			}
			return deliverValue(k, name, f), nil
		},
	}
}

// Boolean validates a boolean parameter. Many common textual representations
// are supported:
//   - "true", "1", "yes", "on" (case insensitive)
//   - "false", "0", "no", "off" (case insensitive)
//   - Standard boolean parsing using strconv.ParseBool
func Boolean(name Symbol) *Parser {
	return &Parser{
		params: []Symbol{name},
		run: func(bag Bag, k Cont) (any, error) {
			raw, ok := bag.Lookup(name)
			if !ok {
				return nil, MissingParameter(name)
			}
			b, ok := coerceBool(raw)
			if !ok {
				return nil, NotAValidBoolean(name)
			}
			return deliverValue(k, name, b), nil
		},
	}
}

// UUID validates a UUID parameter, accepting uuid.UUID values directly or
// parsing textual forms.
func UUID(name Symbol) *Parser {
	return &Parser{
		params: []Symbol{name},
		run: func(bag Bag, k Cont) (any, error) {
			raw, ok := bag.Lookup(name)
			if !ok {
				return nil, MissingParameter(name)
			}
			switch v := raw.(type) {
			case uuid.UUID:
				return deliverValue(k, name, v), nil
			case string:
				id, err := uuid.Parse(v)
				if err != nil {
					return nil, NotAValidUUID(name)
				}
				return deliverValue(k, name, id), nil
			default:
				return nil, NotAValidUUID(name)
			}
		},
	}
}

// timeFormats are tried in order when parsing textual timestamps.
var timeFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"15:04:05",
}

// Time validates a timestamp parameter, accepting time.Time values directly
// or parsing textual forms against a list of common layouts (RFC3339 first).
func Time(name Symbol) *Parser {
	return &Parser{
		params: []Symbol{name},
		run: func(bag Bag, k Cont) (any, error) {
			raw, ok := bag.Lookup(name)
			if !ok {
				return nil, MissingParameter(name)
			}
			switch v := raw.(type) {
			case time.Time:
				return deliverValue(k, name, v), nil
			case string:
				for _, layout := range timeFormats {
					if ts, err := time.Parse(layout, v); err == nil {
						return deliverValue(k, name, ts), nil
					}
				}
				return nil, NotAValidTime(name)
			default:
				return nil, NotAValidTime(name)
			}
		},
	}
}

///////////////////////////////////////////////////////////////////////////////
// Coercion Helpers
///////////////////////////////////////////////////////////////////////////////

// coerceInt converts raw to int64. JSON numbers arrive as float64; they are
// accepted only when integral. No silent truncation.
func coerceInt(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), v <= math.MaxInt64
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), v <= math.MaxInt64
	case float32:
		return coerceIntFromFloat(float64(v))
	case float64:
		return coerceIntFromFloat(v)
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func coerceIntFromFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f > math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func coerceFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func coerceBool(raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		switch v {
		case "true", "1", "yes", "on", "True", "TRUE", "YES", "ON":
			return true, true
		case "false", "0", "no", "off", "False", "FALSE", "NO", "OFF":
			return false, true
		default:
			b, err := strconv.ParseBool(v)
			return b, err == nil
		}
	default:
		return false, false
	}
}
