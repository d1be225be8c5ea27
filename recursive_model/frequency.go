package recursive_model

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// FrequencyResponse holds the magnitude spectra of the binned impulse
// responses.
type FrequencyResponse struct {
	hist_power_freq [][]float64 // per-order magnitude spectrum, [k_reflec+1][bins/2+1]
	xf              []float64   // frequency axis, Hz, [bins/2+1]
}

/*
compute_freq transforms every order's power histogram to the frequency
domain.

	Args:
	    h: histograms from create_histograms
	    cfg: time resolution and bin count used for the histograms

	Returns:
	    the real-FFT magnitude of each order's histogram together with the
	    frequency axis, bins/2+1 samples each
*/
func compute_freq(h *Histograms, cfg *SimConfig) *FrequencyResponse {
	bins := cfg.bins_hist
	fft := fourier.NewFFT(bins)

	f := &FrequencyResponse{
		hist_power_freq: make([][]float64, len(h.hist_power_time)),
		xf:              make([]float64, bins/2+1),
	}
	for i := range f.xf {
		f.xf[i] = fft.Freq(i) / cfg.time_resolution
	}

	coeff := make([]complex128, bins/2+1)
	for i, hist := range h.hist_power_time {
		coeff = fft.Coefficients(coeff, hist)
		magnitude := make([]float64, len(coeff))
		for j, c := range coeff {
			magnitude[j] = cmplx.Abs(c)
		}
		f.hist_power_freq[i] = magnitude
	}

	return f
}
