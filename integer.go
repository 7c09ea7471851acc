package rational

import (
	"math/big"
	"sync"
)

// bint (Big INTeger) is a wrapper around big.Int.
// Values stored inside a [Fraction] are never mutated after construction.
type bint big.Int

// bpow10 is a cache of powers of 10, where bpow10[x] = 10^x.
// It covers every scale a decimal can have.
var bpow10 = [...]*bint{
	newBintFromPow10(0),
	newBintFromPow10(1),
	newBintFromPow10(2),
	newBintFromPow10(3),
	newBintFromPow10(4),
	newBintFromPow10(5),
	newBintFromPow10(6),
	newBintFromPow10(7),
	newBintFromPow10(8),
	newBintFromPow10(9),
	newBintFromPow10(10),
	newBintFromPow10(11),
	newBintFromPow10(12),
	newBintFromPow10(13),
	newBintFromPow10(14),
	newBintFromPow10(15),
	newBintFromPow10(16),
	newBintFromPow10(17),
	newBintFromPow10(18),
	newBintFromPow10(19),
}

// bzero is a shared 0, returned for the numerator of the zero [Fraction].
var bzero = newBint(0)

// newBint creates a *big.Int equal to x.
func newBint(x int64) *bint {
	z := (*bint)(new(big.Int))
	z.setInt64(x)
	return z
}

// newBintFromPow10 creates a *big.Int equal to 10^power.
func newBintFromPow10(power int) *bint {
	z := (*bint)(new(big.Int))
	z.pow10(power)
	return z
}

// newBintFromPow2 creates a *big.Int equal to 2^power.
func newBintFromPow2(power int) *bint {
	z := newBint(1)
	z.lsh(z, power)
	return z
}

// newBintFromBig creates a copy of x.
func newBintFromBig(x *big.Int) *bint {
	return (*bint)(new(big.Int).Set(x))
}

func (z *bint) big() *big.Int {
	return (*big.Int)(z)
}

func (z *bint) sign() int {
	return (*big.Int)(z).Sign()
}

func (z *bint) cmp(x *bint) int {
	return (*big.Int)(z).Cmp((*big.Int)(x))
}

func (z *bint) string() string {
	return (*big.Int)(z).String()
}

func (z *bint) setBint(x *bint) {
	(*big.Int)(z).Set((*big.Int)(x))
}

func (z *bint) setInt64(x int64) {
	(*big.Int)(z).SetInt64(x)
}

func (z *bint) setUint64(x uint64) {
	(*big.Int)(z).SetUint64(x)
}

// add calculates z = x + y.
func (z *bint) add(x, y *bint) {
	(*big.Int)(z).Add((*big.Int)(x), (*big.Int)(y))
}

// inc calculates z = x + 1.
func (z *bint) inc(x *bint) {
	y := bpow10[0]
	z.add(x, y)
}

// sub calculates z = x - y.
func (z *bint) sub(x, y *bint) {
	(*big.Int)(z).Sub((*big.Int)(x), (*big.Int)(y))
}

// neg calculates z = -x.
func (z *bint) neg(x *bint) {
	(*big.Int)(z).Neg((*big.Int)(x))
}

// mul calculates z = x * y.
func (z *bint) mul(x, y *bint) {
	(*big.Int)(z).Mul((*big.Int)(x), (*big.Int)(y))
}

// fma calculates z = x * y + w.
func (z *bint) fma(x, y, w *bint) {
	b := getBint()
	defer putBint(b)
	b.mul(x, y)
	z.add(b, w)
}

// fms calculates z = x - y * w.
func (z *bint) fms(x, y, w *bint) {
	b := getBint()
	defer putBint(b)
	b.mul(y, w)
	z.sub(x, b)
}

// exp calculates z = x^y.
// If y is negative, the result is unpredictable.
func (z *bint) exp(x, y *bint) {
	(*big.Int)(z).Exp((*big.Int)(x), (*big.Int)(y), nil)
}

// pow10 calculates z = 10^power.
// If power is negative, the result is unpredictable.
func (z *bint) pow10(power int) {
	x := getBint()
	defer putBint(x)
	x.setInt64(10)
	y := getBint()
	defer putBint(y)
	y.setInt64(int64(power))
	z.exp(x, y)
}

// lsh (Left Shift) calculates z = x * 2^shift.
func (z *bint) lsh(x *bint, shift int) {
	(*big.Int)(z).Lsh((*big.Int)(x), uint(shift))
}

// quo calculates z = ⌊x / y⌋ for non-negative x and positive y.
func (z *bint) quo(x, y *bint) {
	r := getBint()
	defer putBint(r)
	// Passing r to prevent heap allocations.
	z.quoRem(x, y, r)
}

// quoRem calculates z and r such that x = z * y + r.
// For non-negative x and positive y this is floor division.
func (z *bint) quoRem(x, y, r *bint) {
	(*big.Int)(z).QuoRem((*big.Int)(x), (*big.Int)(y), (*big.Int)(r))
}

// ceilQuo calculates z = ⌈x / y⌉ for positive y.
func (z *bint) ceilQuo(x, y *bint) {
	r := getBint()
	defer putBint(r)
	// Euclidean division leaves 0 <= r < y.
	(*big.Int)(z).DivMod((*big.Int)(x), (*big.Int)(y), (*big.Int)(r))
	if r.sign() != 0 {
		z.inc(z)
	}
}

var pool = sync.Pool{
	New: func() any {
		return (*bint)(new(big.Int))
	},
}

// getBint obtains a *big.Int from the pool.
func getBint() *bint {
	return pool.Get().(*bint)
}

// putBint returns the *big.Int into the pool.
func putBint(b *bint) {
	pool.Put(b)
}
