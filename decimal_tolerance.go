package rational

import (
	"fmt"
	"math/big"

	"github.com/govalues/decimal"
)

// DecimalTolerance is an approximation budget for [decimal.Decimal] values.
// It is immutable and safe for concurrent use by multiple goroutines.
//
// DecimalTolerance follows the rules of [Tolerance] with two differences:
//
//   - the magnitude is never replaced by an epsilon, so a zero tolerance
//     requires exact equality;
//   - significant tolerances use decimal exponents, relative to [1, 10),
//     or to [0.1, 1) when the tolerance was built from a number of digits.
//
// All comparisons are evaluated exactly, so they never overflow and
// never round.
//
// The zero value is an absolute tolerance of 0.
type DecimalTolerance struct {
	mag    decimal.Decimal
	mode   Mode
	dec    bool // reference [0.1, 1) instead of [1, 10)
	digits int  // 0 means derived from mag
}

// Default number of digits for [NewDecimalToleranceFromDecimals].
const defaultDecimalDigits = 16

// NewDecimalTolerance returns a tolerance with magnitude |t| and the given mode.
// Magnitudes above 0.5 are clamped to 0.5.
//
// NewDecimalTolerance returns an error if mode is not valid.
func NewDecimalTolerance(t decimal.Decimal, mode Mode) (DecimalTolerance, error) {
	if !mode.valid() {
		return DecimalTolerance{}, fmt.Errorf("mode %v: %w", mode, errInvalidMode)
	}
	t = t.Abs()
	if half := decimal.MustNew(5, 1); t.Cmp(half) > 0 {
		t = half
	}
	return DecimalTolerance{mag: t, mode: mode}, nil
}

// MustNewDecimalTolerance is like [NewDecimalTolerance] but panics if the tolerance cannot be constructed.
// It simplifies safe initialization of global variables holding tolerances.
func MustNewDecimalTolerance(t decimal.Decimal, mode Mode) DecimalTolerance {
	tol, err := NewDecimalTolerance(t, mode)
	if err != nil {
		panic(fmt.Sprintf("MustNewDecimalTolerance(%v, %v) failed: %v", t, mode, err))
	}
	return tol
}

// NewDecimalToleranceFromDecimals returns a tolerance of d decimal digits:
// 10^(-d), or half of it if rounded is true.
// If d is 0, 16 digits are used.
// Significant tolerances built this way are relative to [0.1, 1).
//
// NewDecimalToleranceFromDecimals returns an error if:
//   - mode is not valid;
//   - d is negative;
//   - the magnitude does not fit the scale of [decimal.Decimal].
func NewDecimalToleranceFromDecimals(d int, mode Mode, rounded bool) (DecimalTolerance, error) {
	if !mode.valid() {
		return DecimalTolerance{}, fmt.Errorf("mode %v: %w", mode, errInvalidMode)
	}
	if d < 0 {
		return DecimalTolerance{}, fmt.Errorf("digits %v: %w", d, errInvalidMagnitude)
	}
	if d == 0 {
		d = defaultDecimalDigits
	}
	var t decimal.Decimal
	var err error
	if rounded {
		t, err = decimal.New(5, d+1)
	} else {
		t, err = decimal.New(1, d)
	}
	if err != nil {
		return DecimalTolerance{}, fmt.Errorf("digits %v: %w", d, err)
	}
	return DecimalTolerance{mag: t, mode: mode, dec: true, digits: d}, nil
}

// NewDecimalToleranceFromSigDecimals returns a significant tolerance of
// d significant decimal digits.
// See [NewDecimalToleranceFromDecimals] for details.
func NewDecimalToleranceFromSigDecimals(d int, rounded bool) (DecimalTolerance, error) {
	return NewDecimalToleranceFromDecimals(d, Significant, rounded)
}

// NewDecimalToleranceFromFraction returns a relative tolerance of f.
func NewDecimalToleranceFromFraction(f decimal.Decimal) (DecimalTolerance, error) {
	return NewDecimalTolerance(f, Relative)
}

// NewDecimalToleranceFromPercent returns a relative tolerance of p percent.
func NewDecimalToleranceFromPercent(p decimal.Decimal) (DecimalTolerance, error) {
	f, err := p.Mul(decimal.MustNew(1, 2))
	if err != nil {
		return DecimalTolerance{}, fmt.Errorf("percent %v: %w", p, err)
	}
	return NewDecimalToleranceFromFraction(f)
}

// NewDecimalToleranceFromPermille returns a relative tolerance of p per mille.
func NewDecimalToleranceFromPermille(p decimal.Decimal) (DecimalTolerance, error) {
	f, err := p.Mul(decimal.MustNew(1, 3))
	if err != nil {
		return DecimalTolerance{}, fmt.Errorf("permille %v: %w", p, err)
	}
	return NewDecimalToleranceFromFraction(f)
}

// DefaultDecimalTolerance returns the tolerance used by [RationalizeDecimal]
// for d when no other is given: a significant tolerance with as many digits
// as the precision of d, but no fewer than [Dig] and no more than
// the decimal type can resolve.
func DefaultDecimalTolerance(d decimal.Decimal) DecimalTolerance {
	digits := min(max(d.Prec(), Dig), decimal.MaxPrec-1)
	tol, err := NewDecimalToleranceFromSigDecimals(digits, false)
	if err != nil {
		panic(fmt.Sprintf("DefaultDecimalTolerance(%v) failed: %v", d, err))
	}
	return tol
}

// Magnitude returns the magnitude of the tolerance.
func (t DecimalTolerance) Magnitude() decimal.Decimal {
	return t.mag
}

// Mode returns the mode of the tolerance.
func (t DecimalTolerance) Mode() Mode {
	return t.mode
}

// IsDecimal returns true if significant comparisons are relative to [0.1, 1).
func (t DecimalTolerance) IsDecimal() bool {
	return t.dec
}

// Digits returns the number of decimal digits implied by the magnitude,
// or 0 for a zero magnitude.
func (t DecimalTolerance) Digits() int {
	if t.digits != 0 {
		return t.digits
	}
	if t.mag.IsZero() {
		return 0
	}
	two, err := t.mag.Add(t.mag)
	if err != nil {
		return 0
	}
	return 1 - decimalExponent(two)
}

// String implements the [fmt.Stringer] interface.
func (t DecimalTolerance) String() string {
	if t.dec {
		return fmt.Sprintf("%v %v dec", t.mag, t.mode)
	}
	return fmt.Sprintf("%v %v", t.mag, t.mode)
}

// MagnitudeAt returns the absolute half-width of the tolerance at x,
// rounded to the precision of [decimal.Decimal].
func (t DecimalTolerance) MagnitudeAt(x decimal.Decimal) (decimal.Decimal, error) {
	if t.mode == Absolute {
		return t.mag, nil
	}
	return ratToDecimal(t.width(ExactDecimal(x).rat()), decimal.MaxScale)
}

// decimalExponent returns e such that d = 0.ddd × 10^e, or 0 if d is zero.
func decimalExponent(d decimal.Decimal) int {
	if d.IsZero() {
		return 0
	}
	return d.Prec() - d.Scale()
}

// ratExponent is like [decimalExponent] for a non-negative rational.
func ratExponent(r *big.Rat) int {
	if r.Sign() == 0 {
		return 0
	}
	// Start from the difference in digit counts and adjust by at most one.
	e := len(r.Num().String()) - len(r.Denom().String())
	if r.Cmp(ratPow10(e)) >= 0 {
		return e + 1
	}
	return e
}

// ratPow10 returns 10^n as a rational.
func ratPow10(n int) *big.Rat {
	p := newBintFromPow10(abs(n)).big()
	if n < 0 {
		return new(big.Rat).SetFrac(big.NewInt(1), p)
	}
	return new(big.Rat).SetInt(p)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (t DecimalTolerance) refExp() int {
	if t.dec {
		return 0
	}
	return 1
}

func (t DecimalTolerance) magnitude() *big.Rat {
	return ExactDecimal(t.mag).rat()
}

// width returns the exact half-width of the tolerance at x.
func (t DecimalTolerance) width(x *big.Rat) *big.Rat {
	switch t.mode {
	case Relative:
		ax := new(big.Rat).Abs(x)
		return ax.Mul(ax, t.magnitude())
	case Significant:
		return t.sigWidth(ratExponent(new(big.Rat).Abs(x)))
	}
	return t.magnitude()
}

func (t DecimalTolerance) sigWidth(exp int) *big.Rat {
	w := ratPow10(exp - t.refExp())
	return w.Mul(w, t.magnitude())
}

// bounds returns the smaller and the larger half-width of x and y.
func (t DecimalTolerance) bounds(x, y *big.Rat) (lo, hi *big.Rat) {
	switch t.mode {
	case Relative:
		lo, hi = t.width(x), t.width(y)
	case Significant:
		ex, ey := ratExponent(new(big.Rat).Abs(x)), ratExponent(new(big.Rat).Abs(y))
		lo, hi = t.sigWidth(ex), t.sigWidth(ey)
	default:
		m := t.magnitude()
		return m, m
	}
	if lo.Cmp(hi) > 0 {
		lo, hi = hi, lo
	}
	return lo, hi
}

func ratDist(x, y *big.Rat) *big.Rat {
	d := new(big.Rat).Sub(x, y)
	return d.Abs(d)
}

// Equal returns true if x and y are equal within the tolerance.
// Relative and significant half-widths are taken at the smaller operand.
func (t DecimalTolerance) Equal(x, y decimal.Decimal) bool {
	return t.equal(ExactDecimal(x).rat(), ExactDecimal(y).rat())
}

func (t DecimalTolerance) equal(x, y *big.Rat) bool {
	lo, _ := t.bounds(x, y)
	d := ratDist(x, y)
	if t.mode == Absolute {
		return d.Cmp(lo) < 0
	}
	return d.Cmp(lo) <= 0
}

// ApproxEqual is like [DecimalTolerance.Equal], but the half-width is taken
// at the larger operand.
func (t DecimalTolerance) ApproxEqual(x, y decimal.Decimal) bool {
	rx, ry := ExactDecimal(x).rat(), ExactDecimal(y).rat()
	_, hi := t.bounds(rx, ry)
	return ratDist(rx, ry).Cmp(hi) <= 0
}

// Less returns true if x is less than y by more than the tolerance,
// taken at the larger operand.
func (t DecimalTolerance) Less(x, y decimal.Decimal) bool {
	rx, ry := ExactDecimal(x).rat(), ExactDecimal(y).rat()
	_, hi := t.bounds(rx, ry)
	d := new(big.Rat).Sub(ry, rx)
	return d.Cmp(hi) > 0
}

// Greater returns true if x is greater than y by more than the tolerance.
func (t DecimalTolerance) Greater(x, y decimal.Decimal) bool {
	return t.Less(y, x)
}

// IsZero returns true if |x| is less than the magnitude of the tolerance.
func (t DecimalTolerance) IsZero(x decimal.Decimal) bool {
	return x.Abs().Cmp(t.mag) < 0
}

// IsZeroAt returns true if |x| is less than the half-width of
// the tolerance at ref.
func (t DecimalTolerance) IsZeroAt(x, ref decimal.Decimal) bool {
	ax := new(big.Rat).Abs(ExactDecimal(x).rat())
	return ax.Cmp(t.width(ExactDecimal(ref).rat())) < 0
}

// IsApproxInt returns true if x is equal to the nearest integer within
// the tolerance.
func (t DecimalTolerance) IsApproxInt(x decimal.Decimal) bool {
	_, ok := t.ApproxInt(x)
	return ok
}

// ApproxInt returns the nearest integer to x and true if x is approximately
// an integer, or x and false otherwise.
func (t DecimalTolerance) ApproxInt(x decimal.Decimal) (decimal.Decimal, bool) {
	r := x.Round(0)
	if t.Equal(x, r) {
		return r, true
	}
	return x, false
}
