package recursive_model

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// samples per axis of the radiation-pattern grid
const pattern_samples = 40

// LedPattern holds a sampled surface of the lambertian radiation lobe of
// the source.
type LedPattern struct {
	theta []float64 // azimuth samples, [0, 2*pi]
	phi   []float64 // polar samples, [0, pi/2]

	// surface samples over the phi x theta grid
	r [][]float64
	x [][]float64
	y [][]float64
	z [][]float64
}

/*
led_pattern samples the 3-D radiation pattern of the LED source.

	The source is a lambertian radiator: the radiant intensity toward the
	polar angle phi is R(phi) = (m+1)/(2*pi) * cos(phi)^m, and the lambert
	number m sets the directivity of the lobe.

	Args:
	    m: lambert number

	Returns:
	    the sampled lobe surface on a 40x40 phi x theta grid
*/
func led_pattern(m float64) *LedPattern {
	p := &LedPattern{
		theta: make([]float64, pattern_samples),
		phi:   make([]float64, pattern_samples),
		r:     make([][]float64, pattern_samples),
		x:     make([][]float64, pattern_samples),
		y:     make([][]float64, pattern_samples),
		z:     make([][]float64, pattern_samples),
	}
	floats.Span(p.theta, 0, 2*math.Pi)
	floats.Span(p.phi, 0, math.Pi/2)

	for i, phi := range p.phi {
		p.r[i] = make([]float64, pattern_samples)
		p.x[i] = make([]float64, pattern_samples)
		p.y[i] = make([]float64, pattern_samples)
		p.z[i] = make([]float64, pattern_samples)
		r := (m + 1) / (2 * math.Pi) * math.Pow(math.Cos(phi), m)
		for j, theta := range p.theta {
			p.r[i][j] = r
			p.x[i][j] = r * math.Sin(phi) * math.Cos(theta)
			p.y[i][j] = r * math.Sin(phi) * math.Sin(theta)
			p.z[i][j] = r * math.Cos(phi)
		}
	}

	return p
}
