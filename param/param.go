// Package param turns loosely-typed call arguments into tagged wire parameters.
//
// Every argument handed to the dispatcher goes through Coerce exactly once,
// right before the request is encoded. The result pairs the (possibly
// converted) value with one of five wire types:
//
//	String   default, anything that is not recognised below
//	Integer  numbers (or numeric text) whose value is a whole number
//	Float    numbers (or numeric text) with a fractional part
//	Boolean  Go bool, always wins over the numeric rules
//	Array    slices, arrays, maps and structs, passed through untouched
//
// Coerce never fails. Rejecting bad input is the job of the caller.
package param

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/shopspring/decimal"
)

// Type is the declared wire type of a parameter.
type Type byte

const (
	TypeString  Type = 0 // Untyped default
	TypeInteger Type = 1
	TypeFloat   Type = 2
	TypeBoolean Type = 3
	TypeArray   Type = 4
)

func (t Type) String() string {
	switch t {
	case TypeInteger:
		return "int"
	case TypeFloat:
		return "double"
	case TypeBoolean:
		return "boolean"
	case TypeArray:
		return "array"
	default:
		return "string"
	}
}

// Param is a value tagged with its wire type.
//
// Value holds a string for TypeString, int64 for TypeInteger (uint64 above
// MaxInt64), float64 for TypeFloat, bool for TypeBoolean and the caller's
// original collection for TypeArray.
type Param struct {
	Type  Type
	Value any
}

// numericText mirrors what a daemon accepts as a number written as text:
// optional sign, digits with an optional fraction, optional exponent.
// Hex, underscores, "inf" and "nan" are not numeric.
var numericText = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// Coerce classifies v and returns the matching wire parameter.
func Coerce(v any) Param {
	// Rule 2 overrides rule 1, so booleans are checked before any numeric form.
	if b, ok := v.(bool); ok {
		return Param{Type: TypeBoolean, Value: b}
	}
	if p, ok := number(v); ok {
		return p
	}

	switch x := v.(type) {
	case nil:
		return Param{Type: TypeString, Value: ""}
	case string:
		return Param{Type: TypeString, Value: x}
	case []byte:
		return Param{Type: TypeString, Value: string(x)}
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return Param{Type: TypeString, Value: ""}
	}

	// Addresses and hashes travel in their text form.
	switch x := v.(type) {
	case btcutil.Address:
		return Param{Type: TypeString, Value: x.String()}
	case chainhash.Hash:
		return Param{Type: TypeString, Value: x.String()}
	case *chainhash.Hash:
		return Param{Type: TypeString, Value: x.String()}
	}

	// Named types are classified by their underlying kind.
	if p, ok := byKind(rv); ok {
		return p
	}
	if isCollection(rv) {
		return Param{Type: TypeArray, Value: v}
	}
	if s, ok := v.(fmt.Stringer); ok {
		return Param{Type: TypeString, Value: s.String()}
	}
	if rv.Kind() == reflect.Pointer {
		return Coerce(rv.Elem().Interface())
	}

	return Param{Type: TypeString, Value: fmt.Sprint(v)}
}

func byKind(rv reflect.Value) (Param, bool) {
	switch rv.Kind() {
	case reflect.Bool:
		return Param{Type: TypeBoolean, Value: rv.Bool()}, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Param{Type: TypeInteger, Value: rv.Int()}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fromUint(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return fromFloat(rv.Float()), true
	case reflect.String:
		if f, ok := numericString(rv.String()); ok {
			return fromFloat(f), true
		}
		return Param{Type: TypeString, Value: rv.String()}, true
	}
	return Param{}, false
}

// CoerceAll coerces every argument, keeping their order.
func CoerceAll(args []any) []Param {
	params := make([]Param, 0, len(args))
	for _, arg := range args {
		params = append(params, Coerce(arg))
	}
	return params
}

// number handles every numeric shape callers hand us. Go integers are exact
// and always integers; everything else goes through fromFloat.
func number(v any) (Param, bool) {
	switch x := v.(type) {
	case int:
		return Param{Type: TypeInteger, Value: int64(x)}, true
	case int8:
		return Param{Type: TypeInteger, Value: int64(x)}, true
	case int16:
		return Param{Type: TypeInteger, Value: int64(x)}, true
	case int32:
		return Param{Type: TypeInteger, Value: int64(x)}, true
	case int64:
		return Param{Type: TypeInteger, Value: x}, true
	case uint:
		return fromUint(uint64(x)), true
	case uint8:
		return Param{Type: TypeInteger, Value: int64(x)}, true
	case uint16:
		return Param{Type: TypeInteger, Value: int64(x)}, true
	case uint32:
		return Param{Type: TypeInteger, Value: int64(x)}, true
	case uint64:
		return fromUint(x), true
	case float32:
		return fromFloat(float64(x)), true
	case float64:
		return fromFloat(x), true
	case btcutil.Amount:
		return fromFloat(x.ToBTC()), true
	case decimal.Decimal:
		if x.IsInteger() && x.BigInt().IsInt64() {
			return Param{Type: TypeInteger, Value: x.IntPart()}, true
		}
		return fromFloat(x.InexactFloat64()), true
	case json.Number:
		if f, ok := numericString(string(x)); ok {
			return fromFloat(f), true
		}
	case string:
		if f, ok := numericString(x); ok {
			return fromFloat(f), true
		}
	}
	return Param{}, false
}

// fromUint keeps values above MaxInt64 as uint64 so they encode exactly.
func fromUint(u uint64) Param {
	if u > math.MaxInt64 {
		return Param{Type: TypeInteger, Value: u}
	}
	return Param{Type: TypeInteger, Value: int64(u)}
}

func numericString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !numericText.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// fromFloat applies rule 1: a value unchanged by rounding to the nearest
// integer is an integer, anything else is a float.
func fromFloat(f float64) Param {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Param{Type: TypeFloat, Value: f}
	}
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return Param{Type: TypeInteger, Value: int64(f)}
	}
	return Param{Type: TypeFloat, Value: f}
}

func isCollection(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct:
		return true
	}
	return false
}

// MarshalJSON encodes the parameter according to its declared wire type.
func (p Param) MarshalJSON() ([]byte, error) {
	switch p.Type {
	case TypeInteger:
		switch x := p.Value.(type) {
		case int64:
			return []byte(strconv.FormatInt(x, 10)), nil
		case uint64:
			return []byte(strconv.FormatUint(x, 10)), nil
		default:
			return json.Marshal(p.Value)
		}
	case TypeFloat:
		f, ok := p.Value.(float64)
		if !ok {
			return json.Marshal(p.Value)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("param: %v cannot be encoded as a double", f)
		}
		return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
	case TypeBoolean, TypeArray:
		return json.Marshal(p.Value)
	default:
		s, ok := p.Value.(string)
		if !ok {
			s = fmt.Sprint(p.Value)
		}
		return json.Marshal(s)
	}
}

// UnmarshalJSON reads a parameter back from the wire, inferring its type from
// the JSON token. It is used by the server side.
func (p *Param) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch x := v.(type) {
	case json.Number:
		*p = fromNumber(x)
	case bool:
		*p = Param{Type: TypeBoolean, Value: x}
	case string:
		*p = Param{Type: TypeString, Value: x}
	case nil:
		*p = Param{Type: TypeString, Value: ""}
	default:
		*p = Param{Type: TypeArray, Value: x}
	}
	return nil
}

func fromNumber(n json.Number) Param {
	if i, err := n.Int64(); err == nil {
		return Param{Type: TypeInteger, Value: i}
	}
	f, _ := n.Float64()
	return Param{Type: TypeFloat, Value: f}
}
