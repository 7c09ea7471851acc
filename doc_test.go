package rational_test

import (
	"fmt"
	"math"

	"github.com/govalues/decimal"
	"github.com/govalues/rational"
)

func ExampleExactFloat64() {
	fmt.Println(rational.ExactFloat64(0.5))
	fmt.Println(rational.ExactFloat64(0.1).Reduce())
	fmt.Println(rational.ExactFloat64(-2))
	fmt.Println(rational.ExactFloat64(math.Inf(1)))
	fmt.Println(rational.ExactFloat64(math.NaN()))
	// Output:
	// 4503599627370496/9007199254740992
	// 3602879701896397/36028797018963968
	// -2/1
	// 1/0
	// 0/0
}

func ExampleExactDecimal() {
	fmt.Println(rational.ExactDecimal(decimal.MustParse("-1.25")))
	fmt.Println(rational.ExactDecimal(decimal.MustParse("-1.25")).Reduce())
	// Output:
	// -125/100
	// -5/4
}

func ExampleRationalizeFloat64() {
	t := rational.DefaultTolerance()
	fmt.Println(rational.RationalizeFloat64(1.0/3, t))
	fmt.Println(rational.RationalizeFloat64(0.1, t))
	fmt.Println(rational.RationalizeFloat64(-1.3, t))
	// Output:
	// 1/3
	// 1/10
	// -13/10
}

func ExampleRationalizeDecimal() {
	d := decimal.MustParse("0.6715")
	e := decimal.MustParse("0.333333333333333333")
	fmt.Println(rational.RationalizeDecimal(d, rational.DefaultDecimalTolerance(d)))
	fmt.Println(rational.RationalizeDecimal(e, rational.DefaultDecimalTolerance(e)))
	// Output:
	// 1343/2000
	// 1/3
}

func ExampleRationalizer() {
	t := rational.MustNewTolerance(0.0005, rational.Absolute)
	for _, s := range []rational.Strategy{rational.Knuth, rational.Horn, rational.Hutchins} {
		r := rational.NewRationalizer(s)
		fmt.Println(r.Float64(0.6715, t))
	}
	// Output:
	// 43/64
	// 43/64
	// 43/64
}

func ExampleApproximateFloat64() {
	fmt.Println(rational.ApproximateFloat64(0.6715, 10))
	fmt.Println(rational.ApproximateFloat64(0.6715, 70))
	fmt.Println(rational.ApproximateFloat64(0.6715, 69))
	fmt.Println(rational.ApproximateFloat64(math.Pi, 1000))
	// Output:
	// 2/3 true
	// 47/70 true
	// 45/67 true
	// 355/113 true
}

func ExampleTolerance_Equal() {
	t := rational.MustNewTolerance(0.01, rational.Relative)
	fmt.Println(t.Equal(100, 100.5))
	fmt.Println(t.Equal(1, 1.5))
	// Output:
	// true
	// false
}

func ExampleRationalize() {
	fmt.Println(rational.Rationalize(0.6715, 10))
	fmt.Println(rational.Rationalize(0.6715, 0.0005))
	fmt.Println(rational.Rationalize(decimal.MustParse("0.6715"), decimal.MustParse("0.0005")))
	fmt.Println(rational.Rationalize(0.6715, rational.DecimalTolerance{}))
	// Output:
	// 2/3 <nil>
	// 43/64 <nil>
	// 43/64 <nil>
	// 0/1 rationalizing float64 within rational.DecimalTolerance: type mismatch
}

func ExampleToDecimal() {
	fmt.Println(rational.ToDecimal(0.1, 19))
	fmt.Println(rational.ToDecimal(rational.MustNewFraction(2, 3), 4))
	// Output:
	// 0.1 <nil>
	// 0.6667 <nil>
}

func ExampleToDecimalExact() {
	fmt.Println(rational.ToDecimalExact(0.5))
	fmt.Println(rational.ToDecimalExact(0.1))
	// Output:
	// 0.5 <nil>
	// 0 converting 3602879701896397/36028797018963968 to decimal.Decimal: inexact conversion
}
