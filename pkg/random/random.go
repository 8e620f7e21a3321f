// Package random provides the distribution samplers used to generate noise
// rasters: uniform, Gaussian (Box-Muller) and Poisson (inverse CDF).
//
// Generator state is never implicit or shared: every sampling call takes an
// explicitly owned *rand.Rand, and concurrent workers must each own their
// own generator. This keeps sampling reproducible for a given seed and free
// of data races by construction.
package random

import (
	"math"
	"time"

	"golang.org/x/exp/rand"

	"ndfilter/pkg/raster"
)

// Sampler draws one value from a distribution using the provided generator.
type Sampler interface {
	Sample(rng *rand.Rand) float64
}

// NewRand builds a generator from a seed; a negative seed derives one from
// the current time.
func NewRand(seed int64) *rand.Rand {
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(uint64(seed)))
}

// Uniform is the continuous uniform distribution over [Start, Stop).
type Uniform struct {
	Start float64
	Stop  float64
}

// PDF returns the probability density at x.
func (u Uniform) PDF(x float64) float64 {
	if x < u.Start || x >= u.Stop {
		return 0
	}
	return 1 / (u.Stop - u.Start)
}

// CDF returns the cumulative probability at x.
func (u Uniform) CDF(x float64) float64 {
	if x <= u.Start {
		return 0
	}
	if x >= u.Stop {
		return 1
	}
	return (x - u.Start) / (u.Stop - u.Start)
}

// Sample draws one value.
func (u Uniform) Sample(rng *rand.Rand) float64 {
	return u.Start + rng.Float64()*(u.Stop-u.Start)
}

// Gaussian is the normal distribution with mean Mu and standard deviation
// Sigma.
type Gaussian struct {
	Mu    float64
	Sigma float64
}

// PDF returns the probability density at x.
func (g Gaussian) PDF(x float64) float64 {
	u := x - g.Mu
	twoVar := 2 * g.Sigma * g.Sigma
	return math.Exp(-u*u/twoVar) / (g.Sigma * math.Sqrt(2*math.Pi))
}

// CDF returns the cumulative probability at x.
func (g Gaussian) CDF(x float64) float64 {
	return 0.5 * (1 + math.Erf((x-g.Mu)/(math.Sqrt2*g.Sigma)))
}

// Sample draws one value with the Box-Muller transform. The uniform draw is
// mapped to (0, 1] so the logarithm stays finite.
func (g Gaussian) Sample(rng *rand.Rand) float64 {
	u := 1 - rng.Float64() // (0, 1]
	theta := 2 * math.Pi * rng.Float64()

	r := math.Sqrt(-2 * math.Log(u))
	return r*math.Cos(theta)*g.Sigma + g.Mu
}

// Poisson is the Poisson distribution with mean Lambda.
type Poisson struct {
	Lambda float64
}

// PMF returns the probability mass at the non-negative integer k.
func (p Poisson) PMF(k int) float64 {
	if k < 0 {
		return 0
	}
	logP := -p.Lambda + float64(k)*math.Log(p.Lambda)
	for i := 2; i <= k; i++ {
		logP -= math.Log(float64(i))
	}
	return math.Exp(logP)
}

// Sample draws one value by accumulating the CDF from a single uniform
// draw. Drawing exactly once per sample keeps the sequence stable: changing
// one sampled mean does not shift the draws of subsequent samples.
func (p Poisson) Sample(rng *rand.Rand) float64 {
	// For stability, draw u even when the mean is degenerate
	u := rng.Float64()

	if p.Lambda <= 0 || u == 0 {
		return 0
	}

	prob := math.Exp(-p.Lambda)
	cumulative := 0.0
	k := 0
	for cumulative < u {
		cumulative += prob
		k++
		prob *= p.Lambda / float64(k)
	}
	return float64(k - 1)
}

// Fill overwrites every element of a raster with independent draws from the
// sampler. The generator is exclusively owned by this call.
func Fill(r *raster.Raster[float64], s Sampler, rng *rand.Rand) {
	data := r.Data()
	for i := range data {
		data[i] = s.Sample(rng)
	}
}
