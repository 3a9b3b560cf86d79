package calculator

import (
	"errors"
	"math"
)

// WindowRange scans the price window and returns its low and high.
func WindowRange(prices []float64) (low, high float64, err error) {
	if len(prices) == 0 {
		return 0, 0, errors.New("no prices provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, p := range prices {
		if p > high {
			high = p
		}
		if p < low {
			low = p
		}
	}
	return low, high, nil
}

// RiseFromMin returns the fractional rise of current above low.
// A non-positive low yields 0.
func RiseFromMin(current, low float64) float64 {
	if low <= 0 {
		return 0
	}
	return (current - low) / low
}

// DropFromMax returns the fractional drop of current below high.
// A non-positive high yields 0.
func DropFromMax(current, high float64) float64 {
	if high <= 0 {
		return 0
	}
	return (high - current) / high
}

// Last returns the newest price in the window.
func Last(prices []float64) (float64, error) {
	if len(prices) == 0 {
		return 0, errors.New("no prices provided")
	}
	return prices[len(prices)-1], nil
}
