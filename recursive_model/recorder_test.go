package recursive_model

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_HistogramCSV(t *testing.T) {
	dir := t.TempDir()
	result := &Result{
		hists: &Histograms{
			hist_power_time: [][]float64{{1e-6, 0, 2e-7}},
			total_ht:        []float64{1e-6, 0, 2e-7},
			time_scale:      []float64{0, 0.2e-9, 0.4e-9},
			h_power:         []float64{1.2e-6},
			out_of_range:    []OutOfRange{{}},
		},
	}

	rec := NewRecorder(result, dir)
	require.NoError(t, rec.export_histograms())

	f, err := os.Open(filepath.Join(dir, "h0-histogram.csv"))
	require.NoError(t, err)
	defer f.Close()

	var rows []HistRow
	require.NoError(t, gocsv.UnmarshalFile(f, &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, 1e-6, rows[0].Power)
	assert.Equal(t, 0.4e-9, rows[2].Time)
	assert.Equal(t, 2e-7, rows[2].Power)
}

func TestRecorder_CirCSV(t *testing.T) {
	dir := t.TempDir()
	result := &Result{
		h_k: [][]Ray{{{Power: 7.9e-6, Delay: 6.7e-9}}},
	}

	rec := NewRecorder(result, dir)
	require.NoError(t, rec.export_cir())

	f, err := os.Open(filepath.Join(dir, "h0.csv"))
	require.NoError(t, err)
	defer f.Close()

	var rows []Ray
	require.NoError(t, gocsv.UnmarshalFile(f, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 7.9e-6, rows[0].Power)
	assert.Equal(t, 6.7e-9, rows[0].Delay)
}

func TestLedPattern_LambertianLobe(t *testing.T) {
	p := led_pattern(1)

	require.Len(t, p.phi, pattern_samples)
	require.Len(t, p.r, pattern_samples)

	// peak intensity on axis: (m+1)/(2*pi)
	assert.InDelta(t, 1.0/math.Pi, p.r[0][0], 1e-12)
	// the lobe falls off monotonically toward grazing angles
	for i := 1; i < pattern_samples; i++ {
		assert.LessOrEqual(t, p.r[i][0], p.r[i-1][0], "phi sample %d", i)
	}
	// at phi = pi/2 the lambertian intensity vanishes
	assert.InDelta(t, 0.0, p.r[pattern_samples-1][0], 1e-12)
}
