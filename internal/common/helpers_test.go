package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxUSDCAmount(t *testing.T) {
	assert.Equal(t, "18446744073709.551615", MaxUSDCAmount)
}

func TestMaxUSDCAmountRoundTrips(t *testing.T) {
	micro, err := ParseApprovalAmount(MaxUSDCAmount)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), micro)
}

func TestMicroToUSDCPadsSmallValues(t *testing.T) {
	assert.Equal(t, "0.000001", MicroToUSDC(1))
	assert.Equal(t, "0.000000", MicroToUSDC(0))
	assert.Equal(t, "12.500000", MicroToUSDC(12_500_000))
}

func TestLamportsToSOL(t *testing.T) {
	assert.Equal(t, "0.024981836", LamportsToSOL(24981836))
}

func TestUSDCToMicro(t *testing.T) {
	cases := map[string]uint64{
		"1":         1_000_000,
		"1.5":       1_500_000,
		"0.000001":  1,
		".25":       250_000,
		"3.":        3_000_000,
		" 2.0 ":     2_000_000,
		"1.1234567": 1_123_456,
	}
	for in, want := range cases {
		got, err := USDCToMicro(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseApprovalAmountRejectsZero(t *testing.T) {
	_, err := ParseApprovalAmount("0")
	assert.ErrorIs(t, err, ErrNotPositive)

	_, err = ParseApprovalAmount("0.0000001")
	assert.ErrorIs(t, err, ErrNotPositive)
}

func TestParseApprovalAmountRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "-1", "+1", "1e3", "1.2.3", ".", "1,5"} {
		_, err := ParseApprovalAmount(in)
		assert.Error(t, err, in)
	}
}

func TestParseApprovalAmountRejectsOverflow(t *testing.T) {
	_, err := ParseApprovalAmount("18446744073709.551616")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")

	_, err = ParseApprovalAmount("99999999999999999")
	assert.Error(t, err)
}
