package rational

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/govalues/decimal"
)

// Fraction is an exact numerator/denominator pair.
// The zero value is the fraction 0/1.
// It is designed to be safe for concurrent use by multiple goroutines.
//
// Unlike [big.Rat], a fraction is not necessarily in lowest terms and
// its denominator may be zero:
//
//   - n/0 with n > 0 represents positive infinity;
//   - n/0 with n < 0 represents negative infinity;
//   - 0/0 represents NaN.
//
// The denominator is never negative.
// Use [Fraction.Reduce] to obtain the lowest-terms form of a finite fraction.
type Fraction struct {
	num *bint // nil means 0
	den *bint // nil means 1
}

var (
	errNegativeDenominator = errors.New("negative denominator")
	errSpecialValue        = errors.New("special value")
	errInexactConversion   = errors.New("inexact conversion")
)

func newFraction(num, den *bint) Fraction {
	return Fraction{num: num, den: den}
}

// NewFraction returns a fraction equal to num / den.
// The fraction is not reduced.
//
// NewFraction returns an error if den is negative.
func NewFraction(num, den int64) (Fraction, error) {
	if den < 0 {
		return Fraction{}, fmt.Errorf("denominator %v: %w", den, errNegativeDenominator)
	}
	return newFraction(newBint(num), newBint(den)), nil
}

// MustNewFraction is like [NewFraction] but panics if the fraction cannot be constructed.
// It simplifies safe initialization of global variables holding fractions.
func MustNewFraction(num, den int64) Fraction {
	f, err := NewFraction(num, den)
	if err != nil {
		panic(fmt.Sprintf("MustNewFraction(%v, %v) failed: %v", num, den, err))
	}
	return f
}

func (f Fraction) numerator() *bint {
	if f.num == nil {
		return bzero
	}
	return f.num
}

func (f Fraction) denominator() *bint {
	if f.den == nil {
		return bpow10[0]
	}
	return f.den
}

// Num returns a copy of the numerator of f.
func (f Fraction) Num() *big.Int {
	return new(big.Int).Set(f.numerator().big())
}

// Den returns a copy of the denominator of f.
func (f Fraction) Den() *big.Int {
	return new(big.Int).Set(f.denominator().big())
}

// Sign returns:
//
//	-1 if f < 0 or f is negative infinity
//	 0 if f == 0 or f is NaN
//	+1 if f > 0 or f is positive infinity
func (f Fraction) Sign() int {
	return f.numerator().sign()
}

// IsInf returns true if f represents positive or negative infinity.
func (f Fraction) IsInf() bool {
	return f.denominator().sign() == 0 && f.numerator().sign() != 0
}

// IsNaN returns true if f is 0/0.
func (f Fraction) IsNaN() bool {
	return f.denominator().sign() == 0 && f.numerator().sign() == 0
}

// IsFinite returns true if the denominator of f is not zero.
func (f Fraction) IsFinite() bool {
	return f.denominator().sign() != 0
}

// Neg returns a fraction with the opposite sign.
func (f Fraction) Neg() Fraction {
	num := newBint(0)
	num.neg(f.numerator())
	return newFraction(num, f.denominator())
}

// Reduce returns f in lowest terms.
// Special values are returned in their canonical form: 1/0, -1/0 and 0/0.
func (f Fraction) Reduce() Fraction {
	num, den := f.numerator(), f.denominator()
	if den.sign() == 0 {
		return newFraction(newBint(int64(num.sign())), newBint(0))
	}
	r := new(big.Rat).SetFrac(num.big(), den.big())
	return newFraction(newBintFromBig(r.Num()), newBintFromBig(r.Denom()))
}

// Equal returns true if f and g have identical numerators and denominators.
// Equal does not reduce its operands: 2/4 is not equal to 1/2.
func (f Fraction) Equal(g Fraction) bool {
	return f.numerator().cmp(g.numerator()) == 0 &&
		f.denominator().cmp(g.denominator()) == 0
}

// Rat returns the value of f as a [big.Rat].
// If f is a special value, the result is nil and false.
func (f Fraction) Rat() (*big.Rat, bool) {
	if !f.IsFinite() {
		return nil, false
	}
	return new(big.Rat).SetFrac(f.numerator().big(), f.denominator().big()), true
}

// rat is like [Fraction.Rat] but for fractions already known to be finite.
func (f Fraction) rat() *big.Rat {
	return new(big.Rat).SetFrac(f.numerator().big(), f.denominator().big())
}

// Float64 returns the nearest float64 value for f and a boolean indicating
// whether the conversion was exact.
// Infinities and NaN are converted to their IEEE 754 counterparts.
func (f Fraction) Float64() (float64, bool) {
	if !f.IsFinite() {
		return specialFloat64(f), true
	}
	return f.rat().Float64()
}

// Decimal returns the value of f rounded to at most scale digits after
// the decimal point, and to the precision of [decimal.Decimal].
// Trailing zeros are removed.
//
// Decimal returns an error if:
//   - f is a special value;
//   - the integer part of the result has more than [decimal.MaxPrec] digits.
func (f Fraction) Decimal(scale int) (decimal.Decimal, error) {
	if !f.IsFinite() {
		return decimal.Decimal{}, fmt.Errorf("converting %v to %T: %w", f, decimal.Decimal{}, errSpecialValue)
	}
	return ratToDecimal(f.rat(), scale)
}

// String implements the [fmt.Stringer] interface and returns a string
// representation of the fraction in the form "num/den".
func (f Fraction) String() string {
	return f.numerator().string() + "/" + f.denominator().string()
}

// ratToDecimal rounds r half away from zero to scale digits after the decimal
// point and parses the result, which rounds it to the precision of the
// decimal type.
func ratToDecimal(r *big.Rat, scale int) (decimal.Decimal, error) {
	if scale < 0 {
		scale = 0
	}
	if scale > decimal.MaxScale {
		scale = decimal.MaxScale
	}
	d, err := decimal.Parse(r.FloatString(scale))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("converting %v to %T: %w", r, decimal.Decimal{}, err)
	}
	return d.Trim(0), nil
}

// ratToDecimalExact converts r to a decimal without rounding.
// It returns an error if r has no finite decimal expansion within
// the range of the decimal type.
func ratToDecimalExact(r *big.Rat) (decimal.Decimal, error) {
	scale, ok := decimalScale(r.Denom())
	if !ok || scale > decimal.MaxScale {
		return decimal.Decimal{}, fmt.Errorf("converting %v to %T: %w", r, decimal.Decimal{}, errInexactConversion)
	}
	d, err := decimal.Parse(r.FloatString(scale))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("converting %v to %T: %w", r, decimal.Decimal{}, err)
	}
	if ExactDecimal(d).rat().Cmp(r) != 0 {
		return decimal.Decimal{}, fmt.Errorf("converting %v to %T: %w", r, decimal.Decimal{}, errInexactConversion)
	}
	return d.Trim(0), nil
}

// decimalScale returns the smallest s such that den divides 10^s.
// The boolean is false if den has a prime factor other than 2 or 5.
func decimalScale(den *big.Int) (int, bool) {
	d := new(big.Int).Set(den)
	twos := int(d.TrailingZeroBits())
	d.Rsh(d, uint(twos))
	fives := 0
	five := big.NewInt(5)
	r := new(big.Int)
	for d.Cmp(bpow10[0].big()) > 0 {
		q, m := new(big.Int).QuoRem(d, five, r)
		if m.Sign() != 0 {
			return 0, false
		}
		d = q
		fives++
	}
	return max(twos, fives), true
}
