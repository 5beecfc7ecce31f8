// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

// Package stats provides the descriptive statistics used by the pattern
// classifier: moments, standardized scores, Pearson correlation and a
// least-squares trend fit with significance. Standard deviation is always
// the population form (divide by n), matching the classifier's dispersion
// thresholds.
package stats

import (
	"math"
)

// Mean returns the arithmetic mean of xs, 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev returns the population standard deviation of xs (divide by n, not
// n-1), 0 for fewer than 2 values.
func StdDev(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	mean := Mean(xs)
	variance := 0.0
	for _, x := range xs {
		d := x - mean
		variance += d * d
	}
	variance /= float64(n)
	return math.Sqrt(variance)
}

// CV returns the coefficient of variation (population std-dev over mean).
// A non-positive mean yields 0 rather than a nonsensical ratio.
func CV(xs []float64) float64 {
	mean := Mean(xs)
	if mean <= 0 {
		return 0
	}
	return StdDev(xs) / mean
}

// ZScores standardizes xs to zero mean and unit variance. A zero-dispersion
// series yields all-zero scores.
func ZScores(xs []float64) []float64 {
	scores := make([]float64, len(xs))
	std := StdDev(xs)
	if std == 0 {
		return scores
	}
	mean := Mean(xs)
	for i, x := range xs {
		scores[i] = (x - mean) / std
	}
	return scores
}

// Pearson computes the Pearson correlation coefficient between two series of
// equal length. Mismatched lengths, empty input or zero dispersion in either
// series yield 0.
func Pearson(x, y []float64) float64 {
	n := len(x)
	if n != len(y) || n == 0 {
		return 0
	}

	meanX, meanY := Mean(x), Mean(y)

	numerator := 0.0
	sumSqX := 0.0
	sumSqY := 0.0
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		numerator += dx * dy
		sumSqX += dx * dx
		sumSqY += dy * dy
	}

	denominator := math.Sqrt(sumSqX * sumSqY)
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// Min returns the smallest value in xs, 0 for an empty slice.
func Min(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	min := xs[0]
	for _, x := range xs[1:] {
		if x < min {
			min = x
		}
	}
	return min
}

// Max returns the largest value in xs, 0 for an empty slice.
func Max(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	max := xs[0]
	for _, x := range xs[1:] {
		if x > max {
			max = x
		}
	}
	return max
}

// Round rounds value to the given number of decimal places. IEEE 754 floats
// can differ in the last bits depending on computation order; reported
// metrics are normalized by rounding so repeated runs compare equal.
func Round(value float64, decimals int) float64 {
	multiplier := math.Pow(10, float64(decimals))
	return math.Round(value*multiplier) / multiplier
}
