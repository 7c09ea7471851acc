package rational

import (
	"errors"
	"fmt"
	"math"
)

// Mode determines how the magnitude of a tolerance is interpreted.
type Mode int8

const (
	// Absolute tolerances are constant half-widths.
	Absolute Mode = iota
	// Relative tolerances are proportional to the compared values.
	Relative
	// Significant tolerances are proportional to the order of magnitude
	// (binary or decimal exponent) of the compared values.
	Significant
)

var (
	errInvalidMode      = errors.New("invalid tolerance mode")
	errInvalidMagnitude = errors.New("invalid tolerance magnitude")
)

func (m Mode) valid() bool {
	return m == Absolute || m == Relative || m == Significant
}

// String implements the [fmt.Stringer] interface.
func (m Mode) String() string {
	switch m {
	case Absolute:
		return "abs"
	case Relative:
		return "rel"
	case Significant:
		return "sig"
	}
	return fmt.Sprintf("Mode(%d)", int8(m))
}

// Reference exponents of the significant mode.
const (
	binRefExp = 1 // math.Frexp(1): significance relative to [1, 2)
	decRefExp = 0 // significance relative to [0.1, 1)
)

// Tolerance is an approximation budget for float64 values.
// It is immutable and safe for concurrent use by multiple goroutines.
//
// A tolerance has a magnitude t in (0, 0.5] and a [Mode]:
//
//   - [Absolute]: values closer than t are equal.
//   - [Relative]: values closer than t*|x| are equal.
//   - [Significant]: values closer than t scaled to the exponent of x are equal.
//     The exponent is binary, relative to [1, 2), unless the tolerance
//     was built from a number of decimal digits, in which case it is decimal,
//     relative to [0.1, 1).
//
// The zero value is an absolute tolerance of [Epsilon].
type Tolerance struct {
	mag    float64 // 0 means Epsilon
	mode   Mode
	dec    bool // decimal reference for the significant mode
	digits int  // 0 means derived from mag
}

// NewTolerance returns a tolerance with magnitude |t| and the given mode.
// A zero magnitude is replaced by [Epsilon], magnitudes above 0.5 are
// clamped to 0.5, and relative or significant magnitudes below [Epsilon]
// are raised to [Epsilon].
//
// NewTolerance returns an error if t is NaN or mode is not valid.
func NewTolerance(t float64, mode Mode) (Tolerance, error) {
	return newTolerance(t, mode, false)
}

func newTolerance(t float64, mode Mode, dec bool) (Tolerance, error) {
	switch {
	case !mode.valid():
		return Tolerance{}, fmt.Errorf("mode %v: %w", mode, errInvalidMode)
	case math.IsNaN(t):
		return Tolerance{}, fmt.Errorf("magnitude %v: %w", t, errInvalidMagnitude)
	}
	t = math.Abs(t)
	if t == 0 {
		t = Epsilon
	}
	if t > 0.5 {
		t = 0.5
	}
	if mode != Absolute && t < Epsilon {
		t = Epsilon
	}
	return Tolerance{mag: t, mode: mode, dec: dec}, nil
}

// MustNewTolerance is like [NewTolerance] but panics if the tolerance cannot be constructed.
// It simplifies safe initialization of global variables holding tolerances.
func MustNewTolerance(t float64, mode Mode) Tolerance {
	tol, err := NewTolerance(t, mode)
	if err != nil {
		panic(fmt.Sprintf("MustNewTolerance(%v, %v) failed: %v", t, mode, err))
	}
	return tol
}

// NewToleranceFromDecimals returns a tolerance of d decimal digits:
// 10^(-d), or half of it if rounded is true.
// If d is not in the range [1, [Dig]], [Dig] digits are used.
// Significant tolerances built this way use decimal exponents.
func NewToleranceFromDecimals(d int, mode Mode, rounded bool) (Tolerance, error) {
	if !mode.valid() {
		return Tolerance{}, fmt.Errorf("mode %v: %w", mode, errInvalidMode)
	}
	if d <= 0 || d > Dig {
		d = Dig
	}
	t := math.Pow10(-d)
	if rounded {
		t *= 0.5
	}
	return Tolerance{mag: t, mode: mode, dec: true, digits: d}, nil
}

// NewToleranceFromSigDecimals returns a significant tolerance of
// d significant decimal digits.
// See [NewToleranceFromDecimals] for details.
func NewToleranceFromSigDecimals(d int, rounded bool) (Tolerance, error) {
	return NewToleranceFromDecimals(d, Significant, rounded)
}

// NewToleranceFromEpsilon returns a tolerance of n times [Epsilon].
func NewToleranceFromEpsilon(n int, mode Mode) (Tolerance, error) {
	return NewTolerance(float64(n)*Epsilon, mode)
}

// NewToleranceFromBigEpsilon is like [NewToleranceFromEpsilon], but uses
// twice the precision of float64, which is enough for multiplication to
// be associative within the tolerance.
func NewToleranceFromBigEpsilon(n int, mode Mode) (Tolerance, error) {
	return NewTolerance(math.Ldexp(0.5*float64(n), 3-MantDigits), mode)
}

// NewToleranceFromFraction returns a relative tolerance of f.
func NewToleranceFromFraction(f float64) (Tolerance, error) {
	return NewTolerance(f, Relative)
}

// NewToleranceFromPercent returns a relative tolerance of p percent.
func NewToleranceFromPercent(p float64) (Tolerance, error) {
	return NewToleranceFromFraction(p / 100)
}

// NewToleranceFromPermille returns a relative tolerance of p per mille.
func NewToleranceFromPermille(p float64) (Tolerance, error) {
	return NewToleranceFromFraction(p / 1000)
}

// DefaultTolerance returns the tolerance used by [RationalizeFloat64] when
// no other is given: a significant tolerance of twice [Epsilon].
func DefaultTolerance() Tolerance {
	return MustNewTolerance(2*Epsilon, Significant)
}

// Magnitude returns the magnitude of the tolerance.
func (t Tolerance) Magnitude() float64 {
	if t.mag == 0 {
		return Epsilon
	}
	return t.mag
}

// Mode returns the mode of the tolerance.
func (t Tolerance) Mode() Mode {
	return t.mode
}

// IsDecimal returns true if the significant mode of the tolerance uses
// decimal exponents.
func (t Tolerance) IsDecimal() bool {
	return t.dec
}

// Digits returns the number of decimal digits implied by the magnitude.
func (t Tolerance) Digits() int {
	if t.digits != 0 {
		return t.digits
	}
	return -int(math.Floor(math.Log10(2 * t.Magnitude())))
}

// String implements the [fmt.Stringer] interface.
func (t Tolerance) String() string {
	if t.dec {
		return fmt.Sprintf("%v %v dec", t.Magnitude(), t.mode)
	}
	return fmt.Sprintf("%v %v", t.Magnitude(), t.mode)
}

// MagnitudeAt returns the absolute half-width of the tolerance at x.
func (t Tolerance) MagnitudeAt(x float64) float64 {
	switch t.mode {
	case Relative:
		return t.Magnitude() * math.Abs(x)
	case Significant:
		return t.sigWidth(t.exponent(x))
	}
	return t.Magnitude()
}

// exponent returns the binary or decimal exponent of x used by
// the significant mode.
func (t Tolerance) exponent(x float64) int {
	if t.dec {
		return decExponent(x)
	}
	_, exp := math.Frexp(x)
	return exp
}

// sigWidth returns the half-width of the significant mode for values
// with exponent exp.
func (t Tolerance) sigWidth(exp int) float64 {
	if t.dec {
		return t.Magnitude() * math.Pow10(exp-decRefExp)
	}
	return math.Ldexp(t.Magnitude(), exp-binRefExp)
}

// decExponent returns e such that |x| lies in [10^(e-1), 10^e).
// Values without a finite logarithm, such as 0, have exponent 0.
func decExponent(x float64) int {
	e := math.Log10(math.Abs(x))
	if math.IsInf(e, 0) || math.IsNaN(e) {
		return 0
	}
	return int(math.Floor(e)) + 1
}

// Equal returns true if x and y are equal within the tolerance.
// In the significant mode the half-width is taken at the smaller exponent,
// in the relative mode at the smaller magnitude.
func (t Tolerance) Equal(x, y float64) bool {
	switch t.mode {
	case Significant:
		return math.Abs(y-x) <= t.sigWidth(min(t.exponent(x), t.exponent(y)))
	case Relative:
		return math.Abs(y-x) <= t.Magnitude()*min(math.Abs(x), math.Abs(y))
	}
	return math.Abs(x-y) < t.Magnitude()
}

// ApproxEqual is like [Tolerance.Equal], but the half-width is taken at
// the larger operand, which makes it the looser comparison.
func (t Tolerance) ApproxEqual(x, y float64) bool {
	switch t.mode {
	case Significant:
		return math.Abs(y-x) <= t.sigWidth(max(t.exponent(x), t.exponent(y)))
	case Relative:
		return math.Abs(y-x) <= t.Magnitude()*max(math.Abs(x), math.Abs(y))
	}
	return math.Abs(x-y) <= t.Magnitude()
}

// Less returns true if x is less than y by more than the tolerance,
// taken at the larger operand.
func (t Tolerance) Less(x, y float64) bool {
	switch t.mode {
	case Significant:
		return y-x > t.sigWidth(max(t.exponent(x), t.exponent(y)))
	case Relative:
		return y-x > t.Magnitude()*max(math.Abs(x), math.Abs(y))
	}
	return y-x > t.Magnitude()
}

// Greater returns true if x is greater than y by more than the tolerance.
func (t Tolerance) Greater(x, y float64) bool {
	return t.Less(y, x)
}

// IsZero returns true if |x| is less than the magnitude of the tolerance.
func (t Tolerance) IsZero(x float64) bool {
	return math.Abs(x) < t.Magnitude()
}

// IsZeroAt returns true if |x| is less than the half-width of
// the tolerance at ref.
func (t Tolerance) IsZeroAt(x, ref float64) bool {
	return math.Abs(x) < t.MagnitudeAt(ref)
}

// IsApproxInt returns true if x is equal to the nearest integer within
// the tolerance.
func (t Tolerance) IsApproxInt(x float64) bool {
	return t.Equal(x, math.Round(x))
}

// ApproxInt returns the nearest integer to x and true if x is approximately
// an integer, or x and false otherwise.
func (t Tolerance) ApproxInt(x float64) (float64, bool) {
	r := math.Round(x)
	if t.Equal(x, r) {
		return r, true
	}
	return x, false
}
