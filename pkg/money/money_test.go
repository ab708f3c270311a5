package money_test

import (
	"testing"

	"github.com/shashiranjanraj/maison/pkg/money"
)

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		major float64
		want  int64
	}{
		{0, 0},
		{1, 100},
		{199.99, 19999},
		{0.01, 1},
		{10.5, 1050},
		{2499.00, 249900},
	}
	for _, c := range cases {
		if got := money.ToMinorUnits(c.major); got != c.want {
			t.Errorf("ToMinorUnits(%v) = %d, want %d", c.major, got, c.want)
		}
	}
}

func TestToMinorUnitsHalfToEven(t *testing.T) {
	// Half-cent ties round to the even cent.
	cases := []struct {
		major float64
		want  int64
	}{
		{0.125, 12}, // 12.5 → 12
		{0.135, 14}, // 13.5 → 14
		{0.105, 10}, // 10.5 → 10
	}
	for _, c := range cases {
		if got := money.ToMinorUnits(c.major); got != c.want {
			t.Errorf("ToMinorUnits(%v) = %d, want %d (half-to-even)", c.major, got, c.want)
		}
	}
}
