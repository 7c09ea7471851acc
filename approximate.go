package rational

import (
	"math"
	"math/big"

	"github.com/govalues/decimal"
)

// ApproximateFloat64 returns the fraction closest to x whose denominator
// does not exceed maxDen, and true.
// Infinities and NaN are returned as their exact fractions, integer values
// as n/1.
//
// If maxDen is less than 1, ApproximateFloat64 returns false.
//
// The error of the candidate fractions is measured in float64 arithmetic,
// so results for very large denominators may differ from
// [ApproximateDecimal] by a rounding error.
func ApproximateFloat64(x float64, maxDen int64) (Fraction, bool) {
	switch {
	case maxDen < 1:
		return Fraction{}, false
	case math.IsNaN(x) || math.IsInf(x, 0) || x == math.Trunc(x):
		return ExactFloat64(x), true
	}

	ax := math.Abs(x)
	var a, b int64 = 0, 1
	c := ax
	for b < maxDen && c != 0 {
		cc := 1 / c
		if b > 0 {
			m := (maxDen - a) / b
			// Float comparison first: cc may not fit int64.
			if cc >= float64(m)+1 {
				a, b = b, a+b*m
				break
			}
		}
		k := math.Floor(cc)
		a, b, c = b, int64(k)*b+a, cc-k
	}

	den := b
	if a != 0 && floatError(ax, a) <= floatError(ax, b) {
		den = a
	}
	num, _ := new(big.Float).SetFloat64(math.Round(float64(den) * ax)).Int(nil)
	f := newFraction((*bint)(num), newBint(den))
	if x < 0 {
		f = f.Neg()
	}
	return f, true
}

// floatError returns |round(k·x)/k - x|.
func floatError(x float64, k int64) float64 {
	q := float64(k)
	return math.Abs(math.Round(q*x)/q - x)
}

// ApproximateDecimal returns the fraction closest to d whose denominator
// does not exceed maxDen, and true.
// Integer values are returned as n/1.
// All arithmetic is exact.
//
// If maxDen is less than 1, ApproximateDecimal returns false.
func ApproximateDecimal(d decimal.Decimal, maxDen int64) (Fraction, bool) {
	return approximateRat(ExactDecimal(d).rat(), maxDen)
}

// ApproximateRat is like [ApproximateDecimal] but for an exact rational.
// A nil r is treated as 0.
func ApproximateRat(r *big.Rat, maxDen int64) (Fraction, bool) {
	if r == nil {
		r = new(big.Rat)
	}
	return approximateRat(r, maxDen)
}

func approximateRat(x *big.Rat, maxDen int64) (Fraction, bool) {
	switch {
	case maxDen < 1:
		return Fraction{}, false
	case x.IsInt():
		return ExactRat(x), true
	}

	ax := new(big.Rat).Abs(x)
	bound := big.NewInt(maxDen)
	a, b := newBint(0), newBint(1)
	c := new(big.Rat).Set(ax)
	for b.big().Cmp(bound) < 0 && c.Sign() != 0 {
		cc := new(big.Rat).Inv(c)
		k := newBintFromBig(new(big.Int).Quo(cc.Num(), cc.Denom()))
		if b.sign() > 0 {
			// m = (maxDen - a) / b
			m := newBint(0)
			m.sub((*bint)(bound), a)
			m.quo(m, b)
			if k.cmp(m) > 0 {
				s := newBint(0)
				s.fma(b, m, a)
				a, b = b, s
				break
			}
		}
		s := newBint(0)
		s.fma(k, b, a)
		a, b = b, s
		c = cc.Sub(cc, new(big.Rat).SetInt(k.big()))
	}

	den := b
	if a.sign() != 0 && ratError(ax, a).Cmp(ratError(ax, b)) <= 0 {
		den = a
	}
	f := newFraction(roundRat(new(big.Rat).Mul(ax, new(big.Rat).SetInt(den.big()))), den)
	if x.Sign() < 0 {
		f = f.Neg()
	}
	return f, true
}

// ratError returns |round(k·x)/k - x|.
func ratError(x *big.Rat, k *bint) *big.Rat {
	q := new(big.Rat).SetInt(k.big())
	e := new(big.Rat).Mul(x, q)
	e.SetInt(roundRat(e).big())
	e.Quo(e, q)
	return ratDist(e, x)
}

// roundRat rounds a non-negative rational half away from zero.
func roundRat(r *big.Rat) *bint {
	// ⌊(2·num + den) / (2·den)⌋
	n := newBint(0)
	n.lsh((*bint)(r.Num()), 1)
	n.add(n, (*bint)(r.Denom()))
	d := newBint(0)
	d.lsh((*bint)(r.Denom()), 1)
	n.quo(n, d)
	return n
}
