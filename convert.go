package rational

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/govalues/decimal"
)

var (
	errTypeMismatch    = errors.New("type mismatch")
	errNoApproximation = errors.New("no approximation")
)

// Rationalize returns a simple fraction approximating x.
// The meaning of tol depends on its type:
//
//   - nil selects the default tolerance of x;
//   - a [Tolerance] or a [DecimalTolerance] matching the domain of x;
//   - a number is the magnitude of an absolute tolerance, normalized
//     as by [ToTolerance] or [ToDecimalTolerance];
//   - a [*big.Rat] is an exact absolute half-width, used as is;
//   - an integer is the largest allowed denominator.
//
// x may be a float64, a float32, a [decimal.Decimal], a [*big.Rat],
// a [*big.Int] or any integer type. Integers are returned exactly.
//
// Rationalize returns an error if:
//   - x or tol has an unsupported type;
//   - tol belongs to a different domain than x;
//   - tol is a denominator bound less than 1.
func Rationalize(x, tol any) (Fraction, error) {
	switch x := x.(type) {
	case float64:
		return rationalizeFloat64(x, tol)
	case float32:
		return rationalizeFloat64(float64(x), tol)
	case decimal.Decimal:
		return rationalizeDecimal(x, tol)
	case *big.Rat:
		if x == nil {
			x = new(big.Rat)
		}
		return rationalizeRat(x, tol)
	case *big.Int:
		return ExactBigInt(x), nil
	}
	if i, ok := exactInteger(x); ok {
		return i, nil
	}
	return Fraction{}, fmt.Errorf("rationalizing %T: %w", x, errTypeMismatch)
}

func rationalizeFloat64(x float64, tol any) (Fraction, error) {
	if n, ok := bound(tol); ok {
		return approximated(ApproximateFloat64(x, n))
	}
	switch t := tol.(type) {
	case nil:
		return RationalizeFloat64(x, DefaultTolerance()), nil
	case Tolerance:
		return RationalizeFloat64(x, t), nil
	case float64, float32:
		ft, err := ToTolerance(t)
		if err != nil {
			return Fraction{}, fmt.Errorf("rationalizing %T within %T: %w", x, tol, err)
		}
		return RationalizeFloat64(x, ft), nil
	case *big.Rat:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return ExactFloat64(x), nil
		}
		return Rationalizer{}.Rat(ExactFloat64(x).rat(), t), nil
	}
	return Fraction{}, fmt.Errorf("rationalizing %T within %T: %w", x, tol, errTypeMismatch)
}

func rationalizeDecimal(x decimal.Decimal, tol any) (Fraction, error) {
	if n, ok := bound(tol); ok {
		return approximated(ApproximateDecimal(x, n))
	}
	switch t := tol.(type) {
	case nil:
		return RationalizeDecimal(x, DefaultDecimalTolerance(x)), nil
	case DecimalTolerance:
		return RationalizeDecimal(x, t), nil
	case *big.Rat:
		return Rationalizer{}.Rat(ExactDecimal(x).rat(), t), nil
	case decimal.Decimal, float64, float32:
		dt, err := ToDecimalTolerance(t)
		if err != nil {
			return Fraction{}, fmt.Errorf("rationalizing %T within %T: %w", x, tol, err)
		}
		return RationalizeDecimal(x, dt), nil
	}
	return Fraction{}, fmt.Errorf("rationalizing %T within %T: %w", x, tol, errTypeMismatch)
}

func rationalizeRat(x *big.Rat, tol any) (Fraction, error) {
	if n, ok := bound(tol); ok {
		return approximated(ApproximateRat(x, n))
	}
	switch t := tol.(type) {
	case nil:
		return ExactRat(x), nil
	case *big.Rat:
		return Rationalizer{}.Rat(x, t), nil
	}
	return Fraction{}, fmt.Errorf("rationalizing %T within %T: %w", x, tol, errTypeMismatch)
}

func approximated(f Fraction, ok bool) (Fraction, error) {
	if !ok {
		return Fraction{}, fmt.Errorf("denominator bound below 1: %w", errNoApproximation)
	}
	return f, nil
}

// bound converts an integer of any kind to int64.
// Unsigned values above [math.MaxInt64] saturate.
func bound(x any) (int64, bool) {
	switch x := x.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return saturate(uint64(x)), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return saturate(x), true
	}
	return 0, false
}

func saturate(x uint64) int64 {
	if x > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(x)
}

// exactInteger is like [ExactInt] for an integer of any kind.
func exactInteger(x any) (Fraction, bool) {
	switch x := x.(type) {
	case int:
		return ExactInt(x), true
	case int8:
		return ExactInt(x), true
	case int16:
		return ExactInt(x), true
	case int32:
		return ExactInt(x), true
	case int64:
		return ExactInt(x), true
	case uint:
		return ExactInt(x), true
	case uint8:
		return ExactInt(x), true
	case uint16:
		return ExactInt(x), true
	case uint32:
		return ExactInt(x), true
	case uint64:
		return ExactInt(x), true
	}
	return Fraction{}, false
}

// ToTolerance converts x to a [Tolerance]:
//
//   - a [Tolerance] is returned unchanged;
//   - a float is an absolute magnitude;
//   - an integer is a number of significant digits, rounded.
//
// ToTolerance returns an error if x has any other type.
func ToTolerance(x any) (Tolerance, error) {
	if n, ok := bound(x); ok {
		return NewToleranceFromSigDecimals(clampInt(n), true)
	}
	switch x := x.(type) {
	case Tolerance:
		return x, nil
	case float64:
		return NewTolerance(x, Absolute)
	case float32:
		return NewTolerance(float64(x), Absolute)
	}
	return Tolerance{}, fmt.Errorf("converting %T to %T: %w", x, Tolerance{}, errTypeMismatch)
}

// ToDecimalTolerance converts x to a [DecimalTolerance]:
//
//   - a [DecimalTolerance] is returned unchanged;
//   - an integer is a number of significant digits, rounded;
//   - any number accepted by [ToDecimal] is an absolute magnitude.
//
// ToDecimalTolerance returns an error if x has any other type.
func ToDecimalTolerance(x any) (DecimalTolerance, error) {
	if n, ok := bound(x); ok {
		return NewDecimalToleranceFromSigDecimals(clampInt(n), true)
	}
	if t, ok := x.(DecimalTolerance); ok {
		return t, nil
	}
	d, err := ToDecimal(x, decimal.MaxScale)
	if err != nil {
		return DecimalTolerance{}, fmt.Errorf("converting %T to %T: %w", x, DecimalTolerance{}, err)
	}
	return NewDecimalTolerance(d, Absolute)
}

func clampInt(n int64) int {
	return int(max(min(n, math.MaxInt32), math.MinInt32))
}

// ToDecimal converts x to a [decimal.Decimal] with at most scale digits
// after the decimal point.
// Floats are first replaced by the simplest fraction within
// [DefaultTolerance], so 0.1 becomes 0.1 and not the exact binary value
// of the float.
// Strings are parsed with [decimal.Parse].
//
// ToDecimal returns an error if:
//   - x has an unsupported type;
//   - x is an infinity or NaN;
//   - the integer part of x does not fit [decimal.Decimal].
func ToDecimal(x any, scale int) (decimal.Decimal, error) {
	switch v := x.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		return decimal.Parse(v)
	case float64:
		return RationalizeFloat64(v, DefaultTolerance()).Decimal(scale)
	case float32:
		return RationalizeFloat64(float64(v), DefaultTolerance()).Decimal(scale)
	case Fraction:
		return v.Decimal(scale)
	case *big.Rat:
		if v == nil {
			return decimal.Zero, nil
		}
		return ratToDecimal(v, scale)
	case *big.Int:
		return ExactBigInt(v).Decimal(0)
	}
	if f, ok := exactInteger(x); ok {
		return f.Decimal(0)
	}
	return decimal.Decimal{}, fmt.Errorf("converting %T to %T: %w", x, decimal.Decimal{}, errTypeMismatch)
}

// ToDecimalExact converts x to a [decimal.Decimal] without rounding.
// Floats are converted using their exact binary value.
//
// ToDecimalExact returns an error if x has an unsupported type, or if
// its value has no exact representation as a [decimal.Decimal].
func ToDecimalExact(x any) (decimal.Decimal, error) {
	var f Fraction
	switch v := x.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		return decimal.Parse(v)
	case float64:
		f = ExactFloat64(v)
	case float32:
		f = ExactFloat(v)
	case Fraction:
		f = v
	case *big.Rat:
		f = ExactRat(v)
	case *big.Int:
		f = ExactBigInt(v)
	default:
		var ok bool
		if f, ok = exactInteger(x); !ok {
			return decimal.Decimal{}, fmt.Errorf("converting %T to %T: %w", x, decimal.Decimal{}, errTypeMismatch)
		}
	}
	if !f.IsFinite() {
		return decimal.Decimal{}, fmt.Errorf("converting %v to %T: %w", f, decimal.Decimal{}, errSpecialValue)
	}
	return ratToDecimalExact(f.rat())
}
