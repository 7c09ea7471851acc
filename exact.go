package rational

import (
	"math"
	"math/big"

	"github.com/govalues/decimal"
	"golang.org/x/exp/constraints"
)

// Parameters of float64 in the convention of [math.Frexp], where
// the fraction lies in [0.5, 1).
const (
	MantDigits = 53      // number of binary digits in the significand
	MinExp     = -1021   // minimum exponent of a normalized float64
	MaxExp     = 1024    // maximum exponent of a float64
	Dig        = 15      // number of decimal digits that survive a round trip through float64
	Epsilon    = 0x1p-52 // difference between 1 and the next float64
)

// ExactFloat64 returns a fraction equal to f without any loss of information:
//
//   - integer values are returned as n/1;
//   - positive and negative infinities are returned as 1/0 and -1/0;
//   - NaN is returned as 0/0.
//
// Other values are returned as p/2^k, which is not necessarily in lowest terms.
func ExactFloat64(f float64) Fraction {
	switch {
	case math.IsNaN(f):
		return newFraction(newBint(0), newBint(0))
	case math.IsInf(f, 1):
		return newFraction(newBint(1), newBint(0))
	case math.IsInf(f, -1):
		return newFraction(newBint(-1), newBint(0))
	case f == math.Trunc(f):
		num, _ := new(big.Float).SetFloat64(f).Int(nil)
		return newFraction((*bint)(num), newBint(1))
	}

	frac, exp := math.Frexp(f)
	var bits int
	if exp < MinExp {
		// Subnormal numbers have fewer significant bits.
		bits = exp + MantDigits - MinExp
	} else {
		bits = max(MantDigits, exp)
	}
	num := newBint(int64(math.Ldexp(frac, bits)))
	den := newBintFromPow2(bits - exp)
	return newFraction(num, den)
}

// ExactFloat is like [ExactFloat64] but accepts any floating-point type.
// Conversion of float32 to float64 is lossless, so the result is exact.
func ExactFloat[T constraints.Float](f T) Fraction {
	return ExactFloat64(float64(f))
}

// ExactDecimal returns a fraction equal to d.
// The denominator is 10^s, where s is the scale of d.
func ExactDecimal(d decimal.Decimal) Fraction {
	num := newBint(0)
	num.setUint64(d.Coef())
	if d.IsNeg() {
		num.neg(num)
	}
	return newFraction(num, bpow10[d.Scale()])
}

// ExactInt returns a fraction equal to i/1.
func ExactInt[T constraints.Integer](i T) Fraction {
	num := newBint(0)
	if i < 0 {
		num.setInt64(int64(i))
	} else {
		num.setUint64(uint64(i))
	}
	return newFraction(num, newBint(1))
}

// ExactBigInt returns a fraction equal to i/1.
// A nil i is treated as 0.
func ExactBigInt(i *big.Int) Fraction {
	if i == nil {
		return newFraction(newBint(0), newBint(1))
	}
	return newFraction(newBintFromBig(i), newBint(1))
}

// ExactRat returns a fraction equal to r.
// Since r is already exact, the result is in lowest terms.
// A nil r is treated as 0.
func ExactRat(r *big.Rat) Fraction {
	if r == nil {
		return newFraction(newBint(0), newBint(1))
	}
	return newFraction(newBintFromBig(r.Num()), newBintFromBig(r.Denom()))
}

// specialFloat64 converts a fraction with a zero denominator to
// the corresponding IEEE 754 value.
func specialFloat64(f Fraction) float64 {
	switch f.Sign() {
	case 1:
		return math.Inf(1)
	case -1:
		return math.Inf(-1)
	default:
		return math.NaN()
	}
}
