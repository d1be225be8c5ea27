package recursive_model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestComputeFreq_LengthAndAxis(t *testing.T) {
	cfg := default_sim_config()
	cfg.bins_hist = 8
	cfg.time_resolution = 1e-9

	h := &Histograms{hist_power_time: [][]float64{{1, 0, 0, 0, 0, 0, 0, 0}}}
	f := compute_freq(h, cfg)

	require.Len(t, f.hist_power_freq, 1)
	require.Len(t, f.hist_power_freq[0], cfg.bins_hist/2+1)
	require.Len(t, f.xf, cfg.bins_hist/2+1)

	// rfftfreq(8, 1e-9): 0, 125 MHz, ..., 500 MHz
	assert.Equal(t, 0.0, f.xf[0])
	assert.InDelta(t, 0.125e9, f.xf[1], 1)
	assert.InDelta(t, 0.5e9, f.xf[4], 1)
}

func TestComputeFreq_ImpulseIsFlat(t *testing.T) {
	cfg := default_sim_config()
	cfg.bins_hist = 8
	cfg.time_resolution = 1e-9

	// a unit impulse at t=0 has a flat magnitude spectrum
	h := &Histograms{hist_power_time: [][]float64{{1, 0, 0, 0, 0, 0, 0, 0}}}
	f := compute_freq(h, cfg)

	for i, mag := range f.hist_power_freq[0] {
		assert.InDelta(t, 1.0, mag, 1e-12, "coefficient %d", i)
	}
}

func TestComputeFreq_DCBinIsTotalPower(t *testing.T) {
	cfg := default_sim_config()
	cfg.bins_hist = 8
	cfg.time_resolution = 1e-9

	hist := []float64{0.5, 1.25, 0, 0.25, 0, 0, 1, 0}
	h := &Histograms{hist_power_time: [][]float64{hist}}
	f := compute_freq(h, cfg)

	assert.InDelta(t, floats.Sum(hist), f.hist_power_freq[0][0], 1e-12)
}
