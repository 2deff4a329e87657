package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrencyUnits(t *testing.T) {
	t.Parallel()
	f := New("₹")

	require.Equal(t, "₹1.00 Cr", f.Currency(10_000_000, 2))
	require.Equal(t, "₹2.50 Cr", f.Currency(25_000_000.0, 2))
	require.Equal(t, "₹1.00 L", f.Currency(100_000, 2))
	require.Equal(t, "₹9.99 L", f.Currency(999_000, 2))
	require.Equal(t, "₹1.00 K", f.Currency(1_000, 2))
	require.Equal(t, "₹999.00", f.Currency(999, 2))
	require.Equal(t, "₹-1.50 Cr", f.Currency(-15_000_000.0, 2))
}

func TestCurrencyZeroIsPresent(t *testing.T) {
	t.Parallel()
	f := New("₹")

	require.Equal(t, "₹0.00", f.Currency(0, 2))
	require.Equal(t, "₹0.00", f.Currency(0.0, 2))
	require.Equal(t, NA, f.Currency(nil, 2))
	require.Equal(t, NA, f.Currency((*float64)(nil), 2))
	require.Equal(t, NA, f.Currency("abc", 2))
}

func TestCurrencyAcceptsWireShapes(t *testing.T) {
	t.Parallel()
	f := New("₹")

	v := 1_250_000.0
	require.Equal(t, "₹12.50 L", f.Currency(&v, 2))
	require.Equal(t, "₹12.50 L", f.Currency("1250000", 2))
	require.Equal(t, "₹1.3", f.Currency("1.25", 1))
}

func TestPercentageSign(t *testing.T) {
	t.Parallel()
	f := New("₹")

	require.Equal(t, "+5.50%", f.Percentage(5.5, 2))
	require.Equal(t, "-2.00%", f.Percentage(-2, 2))
	require.Equal(t, "+0.00%", f.Percentage(0, 2))
	require.Equal(t, NA, f.Percentage(nil, 2))
}

func TestRatio(t *testing.T) {
	t.Parallel()
	f := New("₹")

	require.Equal(t, "1.85", f.Ratio(1.848, 2))
	require.Equal(t, "0.462", f.Ratio(0.4615, 3))
	require.Equal(t, "0.00", f.Ratio(0, 2))
	require.Equal(t, NA, f.Ratio("n/a", 2))
}

func TestNumberIndianGrouping(t *testing.T) {
	t.Parallel()
	f := New("₹")

	require.Equal(t, "123", f.Number(123, 0))
	require.Equal(t, "1,234", f.Number(1234, 0))
	require.Equal(t, "12,34,567", f.Number(1234567, 0))
	require.Equal(t, "1,23,45,678", f.Number(12345678, 0))
	require.Equal(t, "-1,23,45,678", f.Number(-12345678, 0))
	require.Equal(t, "12,34,567.89", f.Number(1234567.89, 2))
	require.Equal(t, NA, f.Number(nil, 0))
}

func TestDefaultSymbol(t *testing.T) {
	t.Parallel()
	require.Equal(t, "₹1.00 K", New("").Currency(1000, 2))
	require.Equal(t, "$1.00 K", New("$").Currency(1000, 2))
}
