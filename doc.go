/*
Package rational finds simple fractions that approximate floating-point
and decimal numbers.
Given a value and a tolerance, it returns the fraction with the smallest
denominator that is equal to the value within the tolerance.
For example, 0.3333333333333333 within 1e-15 is 1/3, and 0.6715 within
0.0005 is 43/64.

# Representation

[Fraction] is a struct with two big integers, a numerator and a denominator.
Unlike [big.Rat], a fraction is not reduced automatically and can hold
the special values of floating-point arithmetic:

  - 1/0 and -1/0 represent the positive and negative infinities;
  - 0/0 represents NaN.

The denominator is never negative.

# Exact Conversions

The package converts numbers to fractions without any loss of information:

  - from float64 and float32:
    [ExactFloat64], [ExactFloat].
  - from decimal:
    [ExactDecimal].
  - from integers:
    [ExactInt], [ExactBigInt].
  - from rationals:
    [ExactRat].

# Tolerances

A tolerance defines when two numbers are considered equal.
[Tolerance] applies to float64 values and [DecimalTolerance] to
[decimal.Decimal] values.
Each tolerance has a magnitude t and one of three modes:

	| Mode          | x and y are equal if                          |
	| ------------- | --------------------------------------------- |
	| [Absolute]    | |x - y| < t                                   |
	| [Relative]    | |x - y| <= t * min(|x|, |y|)                  |
	| [Significant] | |x - y| <= t * base^(min(exp(x), exp(y)) - r) |

In the significant mode exp is the binary exponent (base 2, r = 1) for
float64 tolerances, and the decimal exponent (base 10) otherwise.
Tolerances built from a number of decimal digits, such as
[NewToleranceFromSigDecimals], use decimal exponents relative to [0.1, 1).

Float64 tolerances are never smaller than [Epsilon] unless absolute,
and never larger than 0.5.

# Rationalization

[Rationalizer] searches for the simplest fraction within a tolerance.
Three interchangeable strategies are provided: [Knuth], [Horn] and
[Hutchins].
They are independent algorithms that return identical results.
When the tolerance interval reaches zero, the result is 0/1.
When it contains integers, the result is the integer closest to zero.

[ApproximateFloat64] and [ApproximateDecimal] solve a related problem:
they return the fraction closest to a value among those whose denominator
does not exceed a bound.

# Dynamic Interface

[Rationalize], [ToTolerance], [ToDecimalTolerance], [ToDecimal] and
[ToDecimalExact] accept values of several types and select the appropriate
algorithm at run time.
They return an error when the types of their arguments do not match.

# Errors

All functions are pure and safe for concurrent use.
Infinities and NaN never cause an error during rationalization; they are
returned as their exact fractions.
Errors are returned in the following cases:

  - Type Mismatch.
    An argument of the dynamic interface has an unsupported type, or a
    tolerance belongs to a different numeric domain than the value.

  - No Approximation.
    A denominator bound is less than 1.

  - Inexact Conversion.
    A fraction has no exact representation as a decimal.

[big.Rat]: https://pkg.go.dev/math/big#Rat
*/
package rational
