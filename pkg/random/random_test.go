package random

import (
	"math"
	"testing"

	"ndfilter/pkg/raster"
)

// TestUniformSampleBounds verifies samples stay inside [Start, Stop)
func TestUniformSampleBounds(t *testing.T) {
	rng := NewRand(42)
	u := Uniform{Start: -2, Stop: 3}

	for i := 0; i < 10000; i++ {
		v := u.Sample(rng)
		if v < u.Start || v >= u.Stop {
			t.Fatalf("Expected sample in [%f, %f), got %f", u.Start, u.Stop, v)
		}
	}
}

// TestUniformCDF verifies the distribution function at its landmarks
func TestUniformCDF(t *testing.T) {
	u := Uniform{Start: 0, Stop: 4}

	if got := u.CDF(-1); got != 0 {
		t.Errorf("Expected CDF 0 below the support, got %f", got)
	}
	if got := u.CDF(2); got != 0.5 {
		t.Errorf("Expected CDF 0.5 at the midpoint, got %f", got)
	}
	if got := u.CDF(5); got != 1 {
		t.Errorf("Expected CDF 1 above the support, got %f", got)
	}
	if got := u.PDF(2); got != 0.25 {
		t.Errorf("Expected PDF 0.25 inside the support, got %f", got)
	}
}

// TestGaussianSampleMoments verifies the Box-Muller sampler reproduces the
// requested mean and spread on a large sample
func TestGaussianSampleMoments(t *testing.T) {
	rng := NewRand(7)
	g := Gaussian{Mu: 100, Sigma: 15}

	const n = 200000
	sum := 0.0
	sumSq := 0.0
	for i := 0; i < n; i++ {
		v := g.Sample(rng)
		sum += v
		sumSq += v * v
	}

	mean := sum / n
	std := math.Sqrt(sumSq/n - mean*mean)

	if math.Abs(mean-g.Mu) > 0.5 {
		t.Errorf("Expected sample mean near %f, got %f", g.Mu, mean)
	}
	if math.Abs(std-g.Sigma) > 0.5 {
		t.Errorf("Expected sample stddev near %f, got %f", g.Sigma, std)
	}
}

// TestGaussianCDF verifies symmetry around the mean
func TestGaussianCDF(t *testing.T) {
	g := Gaussian{Mu: 3, Sigma: 2}

	if got := g.CDF(3); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Expected CDF 0.5 at the mean, got %f", got)
	}
	lo := g.CDF(1)
	hi := g.CDF(5)
	if math.Abs(lo+hi-1) > 1e-12 {
		t.Errorf("Expected symmetric tails, got %f and %f", lo, hi)
	}
}

// TestGaussianPDFPeak verifies the density peaks at the mean
func TestGaussianPDFPeak(t *testing.T) {
	g := Gaussian{Mu: 0, Sigma: 1}

	expected := 1 / math.Sqrt(2*math.Pi)
	if got := g.PDF(0); math.Abs(got-expected) > 1e-12 {
		t.Errorf("Expected PDF %f at the mean, got %f", expected, got)
	}
	if g.PDF(1) >= g.PDF(0) {
		t.Errorf("Expected density to decrease away from the mean")
	}
}

// TestPoissonDegenerateMean verifies a non-positive mean always samples 0
func TestPoissonDegenerateMean(t *testing.T) {
	rng := NewRand(1)
	p := Poisson{Lambda: 0}

	for i := 0; i < 100; i++ {
		if v := p.Sample(rng); v != 0 {
			t.Fatalf("Expected 0 for degenerate mean, got %f", v)
		}
	}
}

// TestPoissonSampleMean verifies the inverse-CDF sampler reproduces the
// requested mean on a large sample
func TestPoissonSampleMean(t *testing.T) {
	rng := NewRand(11)
	p := Poisson{Lambda: 4}

	const n = 100000
	sum := 0.0
	for i := 0; i < n; i++ {
		v := p.Sample(rng)
		if v < 0 || v != math.Trunc(v) {
			t.Fatalf("Expected non-negative integer sample, got %f", v)
		}
		sum += v
	}

	mean := sum / n
	if math.Abs(mean-p.Lambda) > 0.1 {
		t.Errorf("Expected sample mean near %f, got %f", p.Lambda, mean)
	}
}

// TestPoissonPMFSumsToOne verifies the mass function over a wide support
func TestPoissonPMFSumsToOne(t *testing.T) {
	p := Poisson{Lambda: 3}

	total := 0.0
	for k := 0; k <= 50; k++ {
		total += p.PMF(k)
	}
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("Expected PMF to sum to 1, got %f", total)
	}
}

// TestFillReproducible verifies that a fixed seed yields a fixed raster
func TestFillReproducible(t *testing.T) {
	a, _ := raster.New[float64](8, 8)
	b, _ := raster.New[float64](8, 8)

	Fill(a, Gaussian{Mu: 0, Sigma: 1}, NewRand(123))
	Fill(b, Gaussian{Mu: 0, Sigma: 1}, NewRand(123))

	for i := range a.Data() {
		if a.Data()[i] != b.Data()[i] {
			t.Errorf("Expected identical draws at flat index %d", i)
		}
	}
}
