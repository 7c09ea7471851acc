package rational

import (
	"math"
	"math/big"

	"github.com/govalues/decimal"
)

// Strategy finds the fraction with the smallest denominator in a closed
// interval [x - dx, x + dx].
// Implementations may assume that 0 <= dx < x.
//
// All strategies provided by this package return identical results:
// the unique fraction with the smallest denominator, or the integer closest
// to zero when the interval contains integers.
type Strategy interface {
	Simplest(x, dx *big.Rat) Fraction
}

var (
	// Knuth expands both ends of the interval into continued fractions
	// simultaneously and stops where they diverge.
	Knuth Strategy = knuth{}
	// Horn walks the convergents of x until one falls inside the interval and
	// then binary searches the preceding semiconvergents.
	Horn Strategy = horn{}
	// Hutchins walks the complete quotients of x and computes the smallest
	// semiconvergent inside the interval in closed form.
	Hutchins Strategy = hutchins{}
)

// Rationalizer finds simple fractions that approximate numbers within
// a tolerance.
// The zero value uses the [Knuth] strategy.
type Rationalizer struct {
	strategy Strategy
}

// NewRationalizer returns a rationalizer that uses strategy s.
// A nil s selects [Knuth].
func NewRationalizer(s Strategy) Rationalizer {
	return Rationalizer{strategy: s}
}

func (r Rationalizer) simplest(x, dx *big.Rat) Fraction {
	ax := new(big.Rat).Abs(x)
	adx := new(big.Rat).Abs(dx)
	switch {
	case adx.Cmp(ax) >= 0:
		return newFraction(newBint(0), newBint(1))
	case adx.Sign() == 0:
		return ExactRat(x)
	}
	s := r.strategy
	if s == nil {
		s = Knuth
	}
	f := s.Simplest(ax, adx)
	if x.Sign() < 0 {
		f = f.Neg()
	}
	return f
}

// Float64 returns the simplest fraction equal to x within tolerance t.
// Infinities and NaN are returned as their exact fractions, and values
// that t considers zero as 0/1.
func (r Rationalizer) Float64(x float64, t Tolerance) Fraction {
	switch {
	case math.IsNaN(x) || math.IsInf(x, 0):
		return ExactFloat64(x)
	case t.IsZero(x):
		return newFraction(newBint(0), newBint(1))
	}
	dx := t.MagnitudeAt(math.Abs(x))
	return r.simplest(ExactFloat64(x).rat(), ExactFloat64(dx).rat())
}

// Float64Within returns the simplest fraction in the interval [x - dx, x + dx].
func (r Rationalizer) Float64Within(x, dx float64) Fraction {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return ExactFloat64(x)
	}
	if math.IsNaN(dx) || math.IsInf(dx, 0) {
		return newFraction(newBint(0), newBint(1))
	}
	return r.simplest(ExactFloat64(x).rat(), ExactFloat64(dx).rat())
}

// Decimal returns the simplest fraction equal to x within tolerance t.
// Values that t considers zero are returned as 0/1.
func (r Rationalizer) Decimal(x decimal.Decimal, t DecimalTolerance) Fraction {
	if t.IsZero(x) {
		return newFraction(newBint(0), newBint(1))
	}
	rx := ExactDecimal(x).rat()
	return r.simplest(rx, t.width(rx))
}

// DecimalWithin returns the simplest fraction in the interval [x - dx, x + dx].
func (r Rationalizer) DecimalWithin(x, dx decimal.Decimal) Fraction {
	return r.simplest(ExactDecimal(x).rat(), ExactDecimal(dx).rat())
}

// Rat returns the simplest fraction in the interval [x - dx, x + dx].
// Nil arguments are treated as 0.
func (r Rationalizer) Rat(x, dx *big.Rat) Fraction {
	if x == nil {
		x = new(big.Rat)
	}
	if dx == nil {
		dx = new(big.Rat)
	}
	return r.simplest(x, dx)
}

// RationalizeFloat64 returns the simplest fraction equal to x within
// tolerance t using the [Knuth] strategy.
func RationalizeFloat64(x float64, t Tolerance) Fraction {
	return Rationalizer{}.Float64(x, t)
}

// RationalizeDecimal returns the simplest fraction equal to x within
// tolerance t using the [Knuth] strategy.
func RationalizeDecimal(x decimal.Decimal, t DecimalTolerance) Fraction {
	return Rationalizer{}.Decimal(x, t)
}

// convergents accumulates continued fraction coefficients into
// the numerators p and denominators q of the last two convergents.
type convergents struct {
	p0, q0 *bint // previous
	p1, q1 *bint // current
}

func newConvergents() *convergents {
	// 1/0 and 0/1 seed the recurrence.
	return &convergents{
		p0: newBint(0), q0: newBint(1),
		p1: newBint(1), q1: newBint(0),
	}
}

// push appends coefficient a.
func (c *convergents) push(a *bint) {
	p := newBint(0)
	p.fma(a, c.p1, c.p0)
	q := newBint(0)
	q.fma(a, c.q1, c.q0)
	c.p0, c.q0, c.p1, c.q1 = c.p1, c.q1, p, q
}

// semi returns the semiconvergent (m·p1 + p0) / (m·q1 + q0).
func (c *convergents) semi(m *bint) Fraction {
	p := newBint(0)
	p.fma(m, c.p1, c.p0)
	q := newBint(0)
	q.fma(m, c.q1, c.q0)
	return newFraction(p, q)
}

func (c *convergents) fraction() Fraction {
	return newFraction(c.p1, c.q1)
}

// within reports whether |f - x| <= dx.
func within(f Fraction, x, dx *big.Rat) bool {
	return ratDist(f.rat(), x).Cmp(dx) <= 0
}

type knuth struct{}

// Simplest narrows [lo, hi] by repeatedly removing the common integer part
// and taking reciprocals, which reverses the interval.
func (knuth) Simplest(x, dx *big.Rat) Fraction {
	lo := new(big.Rat).Sub(x, dx)
	hi := new(big.Rat).Add(x, dx)
	ln, ld := newBintFromBig(lo.Num()), newBintFromBig(lo.Denom())
	hn, hd := newBintFromBig(hi.Num()), newBintFromBig(hi.Denom())

	c := newConvergents()
	for {
		a, r := newBint(0), newBint(0)
		a.quoRem(ln, ld, r)
		if r.sign() == 0 {
			// lo is an integer
			c.push(a)
			return c.fraction()
		}
		// a + 1 <= hi
		b := newBint(0)
		b.inc(a)
		t := newBint(0)
		t.mul(b, hd)
		if t.cmp(hn) <= 0 {
			c.push(b)
			return c.fraction()
		}
		c.push(a)
		// [lo, hi] = [1 / (hi - a), 1 / (lo - a)]
		t.fms(hn, a, hd)
		ln, ld, hn, hd = hd, t, ld, r
	}
}

type horn struct{}

// Simplest expands x with the Euclidean algorithm.
func (horn) Simplest(x, dx *big.Rat) Fraction {
	n, d := newBintFromBig(x.Num()), newBintFromBig(x.Denom())
	c := newConvergents()
	for {
		a, r := newBint(0), newBint(0)
		a.quoRem(n, d, r)
		prev := *c
		c.push(a)
		if within(c.fraction(), x, dx) {
			return prev.search(a, x, dx)
		}
		n, d = d, r
	}
}

// search returns the in-band semiconvergent with the smallest m in [1, a].
// The semiconvergent for m = a is known to be in band, and the distance to x
// decreases with m.
func (c *convergents) search(a *bint, x, dx *big.Rat) Fraction {
	lo, hi := newBint(0), newBint(0)
	hi.setBint(a)
	for {
		// hi is in band, lo is not
		gap := newBint(0)
		gap.sub(hi, lo)
		if gap.cmp(bpow10[0]) <= 0 {
			return c.semi(hi)
		}
		mid := newBint(0)
		mid.add(lo, hi)
		mid.big().Rsh(mid.big(), 1)
		if within(c.semi(mid), x, dx) {
			hi = mid
		} else {
			lo = mid
		}
	}
}

type hutchins struct{}

// Simplest iterates on the complete quotients of x.
// Once the convergent pk/qk is in band, the smallest in-band semiconvergent
// (m·p + p') / (m·q + q') of the previous convergents p/q and p'/q' has
//
//	m = ⌈(|p' - x·q'| - dx·q') / (|p - x·q| + dx·q)⌉,
//
// but never less than 1.
func (hutchins) Simplest(x, dx *big.Rat) Fraction {
	xi := new(big.Rat).Set(x)
	c := newConvergents()
	for {
		a := newBintFromBig(new(big.Int).Quo(xi.Num(), xi.Denom()))
		prev := *c
		c.push(a)
		if within(c.fraction(), x, dx) {
			return prev.closest(x, dx)
		}
		// xi = 1 / (xi - a)
		xi.Sub(xi, new(big.Rat).SetInt(a.big()))
		xi.Inv(xi)
	}
}

func (c *convergents) closest(x, dx *big.Rat) Fraction {
	p, q := new(big.Rat).SetInt(c.p1.big()), new(big.Rat).SetInt(c.q1.big())
	pp, qq := new(big.Rat).SetInt(c.p0.big()), new(big.Rat).SetInt(c.q0.big())

	v := ratDist(pp, new(big.Rat).Mul(x, qq))
	w := ratDist(p, new(big.Rat).Mul(x, q))
	v.Sub(v, new(big.Rat).Mul(dx, qq))
	w.Add(w, new(big.Rat).Mul(dx, q))
	v.Quo(v, w)

	m := newBint(0)
	m.ceilQuo(newBintFromBig(v.Num()), newBintFromBig(v.Denom()))
	if m.sign() <= 0 {
		m.setInt64(1)
	}
	return c.semi(m)
}
