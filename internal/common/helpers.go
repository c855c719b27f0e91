package common

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	SOLDecimals  = 9 // SOL has 9 decimals (lamports)
	USDCDecimals = 6 // USDC has 6 decimals (micro)
)

// MaxUSDCAmount is the largest approvable amount: u64 max in micro units, shown with 6 decimals.
var MaxUSDCAmount = MicroToUSDC(math.MaxUint64)

// ErrNotPositive is returned when an amount parses but is zero.
var ErrNotPositive = errors.New("amount must be greater than zero")

// LamportsToSOL converts lamports to SOL string without float precision loss
func LamportsToSOL(lamports uint64) string {
	return formatWithDecimals(lamports, SOLDecimals)
}

// MicroToUSDC converts micro units to USDC string without float precision loss
func MicroToUSDC(micro uint64) string {
	return formatWithDecimals(micro, USDCDecimals)
}

// USDCToMicro converts USDC string to micro units without float precision loss
func USDCToMicro(usdc string) (uint64, error) {
	return parseWithDecimals(usdc, USDCDecimals)
}

// ParseApprovalAmount converts a user supplied USDC amount into a positive micro unit value.
// Digits past the 6th decimal are dropped, so "0.0000001" is rejected as zero.
func ParseApprovalAmount(usdc string) (uint64, error) {
	micro, err := USDCToMicro(usdc)
	if err != nil {
		return 0, err
	}
	if micro == 0 {
		return 0, ErrNotPositive
	}
	return micro, nil
}

// formatWithDecimals converts integer to decimal string by inserting decimal point
// Example: formatWithDecimals(24981836, 9) = "0.024981836"
func formatWithDecimals(value uint64, decimals int) string {
	s := strconv.FormatUint(value, 10)

	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}

	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}

// parseWithDecimals converts decimal string to integer by removing decimal point
// Example: parseWithDecimals("0.024981836", 9) = 24981836
func parseWithDecimals(s string, decimals int) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty string")
	}

	whole, frac, hasPoint := strings.Cut(s, ".")
	if hasPoint && strings.Contains(frac, ".") {
		return 0, fmt.Errorf("invalid decimal format")
	}
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("invalid decimal format")
	}
	if !isDigits(whole) || !isDigits(frac) {
		return 0, fmt.Errorf("invalid number %q", s)
	}

	// Pad or truncate fractional part to exact decimals
	if len(frac) < decimals {
		frac += strings.Repeat("0", decimals-len(frac))
	} else if len(frac) > decimals {
		frac = frac[:decimals]
	}

	// ParseUint reports overflow past u64 max
	n, err := strconv.ParseUint(whole+frac, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("amount exceeds maximum %s", formatWithDecimals(math.MaxUint64, decimals))
		}
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return n, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
