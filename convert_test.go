package rational

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/govalues/decimal"
)

func TestRationalize(t *testing.T) {
	dec := decimal.MustParse("0.6715")
	rat := big.NewRat(6715, 10000)
	half := big.NewRat(5, 10000)

	t.Run("success", func(t *testing.T) {
		tests := []struct {
			x, tol any
			want   string
		}{
			// float64
			{0.6715, nil, "1343/2000"},
			{0.6715, MustNewTolerance(0.0005, Absolute), "43/64"},
			{0.6715, 0.0005, "43/64"},
			{-0.6715, 0.0005, "-43/64"},
			{1.7, 0.9, "2/1"},
			{0.6715, 0.0, "1343/2000"},
			{0.0004, 0.0005, "0/1"},
			{0.6715, half, "43/64"},
			{0.6715, 70, "47/70"},
			{0.6715, int64(69), "45/67"},
			{0.6715, uint8(10), "2/3"},
			{math.Inf(-1), half, "-1/0"},
			{float32(0.5), nil, "1/2"},
			{float32(0.75), float32(0.3), "1/1"},

			// decimal
			{dec, nil, "1343/2000"},
			{dec, MustNewDecimalTolerance(decimal.MustParse("0.0005"), Absolute), "43/64"},
			{dec, decimal.MustParse("0.0005"), "43/64"},
			{dec, 0.0005, "43/64"},
			{decimal.MustParse("1.7"), decimal.MustParse("0.9"), "2/1"},
			{decimal.MustParse("1.7"), 0.9, "2/1"},
			{dec, decimal.Zero, "1343/2000"},
			{dec, 0.0, "1343/2000"},
			{dec, half, "43/64"},
			{dec, 10, "2/3"},
			{dec, uint64(math.MaxUint64), "1343/2000"},

			// rational
			{rat, nil, "1343/2000"},
			{rat, half, "43/64"},
			{rat, 70, "47/70"},
			{(*big.Rat)(nil), nil, "0/1"},

			// integers
			{42, nil, "42/1"},
			{int8(-3), 0.5, "-3/1"},
			{uint64(math.MaxUint64), nil, "18446744073709551615/1"},
			{big.NewInt(7), 3, "7/1"},
		}
		for _, tt := range tests {
			got, err := Rationalize(tt.x, tt.tol)
			if err != nil {
				t.Errorf("Rationalize(%v, %v) failed: %v", tt.x, tt.tol, err)
				continue
			}
			if got.String() != tt.want {
				t.Errorf("Rationalize(%v, %v) = %q, want %q", tt.x, tt.tol, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			x, tol any
			want   error
		}{
			"float with decimal tolerance": {0.5, DecimalTolerance{}, errTypeMismatch},
			"decimal with float tolerance": {dec, Tolerance{}, errTypeMismatch},
			"rational with float":          {rat, 0.1, errTypeMismatch},
			"string value":                 {"0.5", nil, errTypeMismatch},
			"string tolerance":             {0.5, "0.1", errTypeMismatch},
			"float nan":                    {0.5, math.NaN(), errInvalidMagnitude},
			"float bound":                  {0.5, 0, errNoApproximation},
			"decimal bound":                {dec, -1, errNoApproximation},
			"rational bound":               {rat, int16(0), errNoApproximation},
		}
		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := Rationalize(tt.x, tt.tol)
				if !errors.Is(err, tt.want) {
					t.Errorf("Rationalize(%v, %v) error = %v, want %v", tt.x, tt.tol, err, tt.want)
				}
			})
		}
	})
}

func TestRationalize_NumberTolerance(t *testing.T) {
	for _, x := range []float64{0.6715, 1.7, -2.35, 1e-9, 123456.789} {
		for _, n := range []float64{0, 1e-12, 0.0005, 0.3, 0.9} {
			got := MustRationalize(x, n)
			want := RationalizeFloat64(x, MustToTolerance(n))
			if !got.Equal(want) {
				t.Errorf("Rationalize(%v, %v) = %q, want %q", x, n, got, want)
			}
			d := decimal.MustParse("1.7")
			dn := MustToDecimalTolerance(n)
			if got, want := MustRationalize(d, n), RationalizeDecimal(d, dn); !got.Equal(want) {
				t.Errorf("Rationalize(%q, %v) = %q, want %q", d, n, got, want)
			}
		}
	}
}

func TestMustRationalize(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("MustRationalize(\"x\", nil) did not panic")
			}
		}()
		MustRationalize("x", nil)
	})
}

func TestToTolerance(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		sig5, _ := NewToleranceFromSigDecimals(5, true)
		tests := []struct {
			x    any
			want Tolerance
		}{
			{MustNewTolerance(0.01, Relative), MustNewTolerance(0.01, Relative)},
			{0.001, MustNewTolerance(0.001, Absolute)},
			{float32(0.5), MustNewTolerance(0.5, Absolute)},
			{5, sig5},
			{uint(5), sig5},
		}
		for _, tt := range tests {
			got, err := ToTolerance(tt.x)
			if err != nil {
				t.Errorf("ToTolerance(%v) failed: %v", tt.x, err)
				continue
			}
			if got != tt.want {
				t.Errorf("ToTolerance(%v) = %v, want %v", tt.x, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]any{
			"string":  "0.1",
			"decimal": decimal.One,
			"nan":     math.NaN(),
		}
		for name, x := range tests {
			t.Run(name, func(t *testing.T) {
				if _, err := ToTolerance(x); err == nil {
					t.Errorf("ToTolerance(%v) did not fail", x)
				}
			})
		}
	})
}

func TestToDecimalTolerance(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		sig3, _ := NewDecimalToleranceFromSigDecimals(3, true)
		tests := []struct {
			x    any
			want DecimalTolerance
		}{
			{sig3, sig3},
			{3, sig3},
			{decimal.MustParse("0.001"), MustNewDecimalTolerance(decimal.MustParse("0.001"), Absolute)},
			{0.001, MustNewDecimalTolerance(decimal.MustParse("0.001"), Absolute)},
			{"0.25", MustNewDecimalTolerance(decimal.MustParse("0.25"), Absolute)},
			{big.NewRat(1, 8), MustNewDecimalTolerance(decimal.MustParse("0.125"), Absolute)},
		}
		for _, tt := range tests {
			got, err := ToDecimalTolerance(tt.x)
			if err != nil {
				t.Errorf("ToDecimalTolerance(%v) failed: %v", tt.x, err)
				continue
			}
			if got.Mode() != tt.want.Mode() || got.Magnitude().Cmp(tt.want.Magnitude()) != 0 || got.Digits() != tt.want.Digits() {
				t.Errorf("ToDecimalTolerance(%v) = %v, want %v", tt.x, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]any{
			"tolerance": Tolerance{},
			"string":    "abc",
			"digits":    25,
			"infinity":  math.Inf(1),
		}
		for name, x := range tests {
			t.Run(name, func(t *testing.T) {
				if _, err := ToDecimalTolerance(x); err == nil {
					t.Errorf("ToDecimalTolerance(%v) did not fail", x)
				}
			})
		}
	})
}

func TestMustToTolerance(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("MustToTolerance(\"x\") did not panic")
			}
		}()
		MustToTolerance("x")
	})
	t.Run("decimal error", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("MustToDecimalTolerance(\"x\") did not panic")
			}
		}()
		MustToDecimalTolerance("x")
	})
}

func TestToDecimal(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			x     any
			scale int
			want  string
		}{
			{0.1, 19, "0.1"},
			{1.0 / 3, 5, "0.33333"},
			{-2.5, 0, "-3"},
			{"1.50", 0, "1.50"},
			{decimal.MustParse("7.25"), 0, "7.25"},
			{big.NewRat(1, 8), 2, "0.13"},
			{MustNewFraction(2, 3), 3, "0.667"},
			{42, 2, "42"},
			{big.NewInt(-7), 2, "-7"},
			{(*big.Rat)(nil), 2, "0"},
		}
		for _, tt := range tests {
			got, err := ToDecimal(tt.x, tt.scale)
			if err != nil {
				t.Errorf("ToDecimal(%v, %v) failed: %v", tt.x, tt.scale, err)
				continue
			}
			want := decimal.MustParse(tt.want)
			if got.Cmp(want) != 0 {
				t.Errorf("ToDecimal(%v, %v) = %q, want %q", tt.x, tt.scale, got, want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]any{
			"infinity":  math.Inf(1),
			"nan":       math.NaN(),
			"overflow":  1e30,
			"tolerance": Tolerance{},
			"string":    "abc",
		}
		for name, x := range tests {
			t.Run(name, func(t *testing.T) {
				if _, err := ToDecimal(x, 2); err == nil {
					t.Errorf("ToDecimal(%v, 2) did not fail", x)
				}
			})
		}
	})
}

func TestToDecimalExact(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			x    any
			want string
		}{
			{0.5, "0.5"},
			{float32(0.25), "0.25"},
			{-1.375, "-1.375"},
			{big.NewRat(1, 8), "0.125"},
			{MustNewFraction(3, 4), "0.75"},
			{3, "3"},
			{big.NewInt(12), "12"},
			{"0.10", "0.10"},
			{math.Ldexp(1, -19), "0.0000019073486328125"},
		}
		for _, tt := range tests {
			got, err := ToDecimalExact(tt.x)
			if err != nil {
				t.Errorf("ToDecimalExact(%v) failed: %v", tt.x, err)
				continue
			}
			want := decimal.MustParse(tt.want)
			if got.Cmp(want) != 0 {
				t.Errorf("ToDecimalExact(%v) = %q, want %q", tt.x, got, want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			x    any
			want error
		}{
			"binary fraction": {0.1, errInexactConversion},
			"repeating":       {big.NewRat(1, 3), errInexactConversion},
			"too small":       {math.Ldexp(1, -20), errInexactConversion},
			"nan":             {math.NaN(), errSpecialValue},
			"infinity":        {MustNewFraction(-1, 0), errSpecialValue},
			"type":            {struct{}{}, errTypeMismatch},
		}
		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := ToDecimalExact(tt.x)
				if !errors.Is(err, tt.want) {
					t.Errorf("ToDecimalExact(%v) error = %v, want %v", tt.x, err, tt.want)
				}
			})
		}
	})
}
