// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package stats

import (
	"math"
)

// TrendFit is the least-squares fit of a series against its index positions.
// R is the correlation of value vs index; P is the two-sided significance of
// R under the Student-t distribution with n-2 degrees of freedom.
type TrendFit struct {
	Slope     float64
	Intercept float64
	R         float64
	P         float64
}

// FitTrend regresses ys against the index sequence 0..n-1. Series shorter
// than 2 points, or flat series, return a zero fit with P = 1.
func FitTrend(ys []float64) TrendFit {
	fit := TrendFit{P: 1}
	n := len(ys)
	if n < 2 {
		return fit
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}

	meanX, meanY := Mean(xs), Mean(ys)
	sxy, sxx, syy := 0.0, 0.0, 0.0
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}

	fit.Slope = sxy / sxx
	fit.Intercept = meanY - fit.Slope*meanX
	if syy == 0 {
		// flat series: R stays 0, P stays 1
		return fit
	}
	fit.R = sxy / math.Sqrt(sxx*syy)

	if n < 3 {
		return fit
	}
	df := n - 2
	r2 := fit.R * fit.R
	if r2 >= 1 {
		fit.P = 0
		return fit
	}
	t := fit.R * math.Sqrt(float64(df)/(1-r2))
	fit.P = studentTPValue(math.Abs(t), df)
	return fit
}

// studentTPValue returns the two-sided p-value for a Student-t statistic
// with df degrees of freedom, via the identity
// P(|T| > t) = I_{df/(df+t^2)}(df/2, 1/2).
func studentTPValue(t float64, df int) float64 {
	if df <= 0 {
		return 1
	}
	if math.IsInf(t, 0) {
		return 0
	}
	nu := float64(df)
	x := nu / (nu + t*t)
	return regularizedIncompleteBeta(nu/2, 0.5, x)
}

// regularizedIncompleteBeta computes I_x(a, b) using the continued-fraction
// expansion, switching to the symmetry transform when x is past the
// convergence midpoint.
func regularizedIncompleteBeta(a, b, x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}

	lab, _ := math.Lgamma(a + b)
	la, _ := math.Lgamma(a)
	lb, _ := math.Lgamma(b)
	front := math.Exp(lab - la - lb + a*math.Log(x) + b*math.Log(1-x))

	if x < (a+1)/(a+b+2) {
		return front * betacf(a, b, x) / a
	}
	return 1 - front*betacf(b, a, 1-x)/b
}

// betacf evaluates the incomplete-beta continued fraction by the modified
// Lentz method.
func betacf(a, b, x float64) float64 {
	const (
		maxIterations = 200
		epsilon       = 3e-14
		fpmin         = 1e-300
	)

	qab := a + b
	qap := a + 1
	qam := a - 1
	c := 1.0
	d := 1 - qab*x/qap
	if math.Abs(d) < fpmin {
		d = fpmin
	}
	d = 1 / d
	h := d

	for m := 1; m <= maxIterations; m++ {
		fm := float64(m)
		m2 := 2 * fm

		aa := fm * (b - fm) * x / ((qam + m2) * (a + m2))
		d = 1 + aa*d
		if math.Abs(d) < fpmin {
			d = fpmin
		}
		c = 1 + aa/c
		if math.Abs(c) < fpmin {
			c = fpmin
		}
		d = 1 / d
		h *= d * c

		aa = -(a + fm) * (qab + fm) * x / ((a + m2) * (qap + m2))
		d = 1 + aa*d
		if math.Abs(d) < fpmin {
			d = fpmin
		}
		c = 1 + aa/c
		if math.Abs(c) < fpmin {
			c = fpmin
		}
		d = 1 / d
		del := d * c
		h *= del

		if math.Abs(del-1) < epsilon {
			break
		}
	}
	return h
}
