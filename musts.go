package rational

import "fmt"

// MustRationalize is like [Rationalize] but panics if rationalization fails.
func MustRationalize(x, tol any) Fraction {
	f, err := Rationalize(x, tol)
	if err != nil {
		panic(fmt.Sprintf("MustRationalize(%v, %v) failed: %v", x, tol, err))
	}
	return f
}

// MustToTolerance is like [ToTolerance] but panics if the conversion fails.
func MustToTolerance(x any) Tolerance {
	t, err := ToTolerance(x)
	if err != nil {
		panic(fmt.Sprintf("MustToTolerance(%v) failed: %v", x, err))
	}
	return t
}

// MustToDecimalTolerance is like [ToDecimalTolerance] but panics if the conversion fails.
func MustToDecimalTolerance(x any) DecimalTolerance {
	t, err := ToDecimalTolerance(x)
	if err != nil {
		panic(fmt.Sprintf("MustToDecimalTolerance(%v) failed: %v", x, err))
	}
	return t
}
