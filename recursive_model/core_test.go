package recursive_model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func test_scenario() *InputJson {
	return &InputJson{
		Source: SourceJson{
			Position:     [3]float64{1, 1, 2},
			NormalVector: [3]float64{0, 0, -1},
			LambertNum:   1,
			Power:        1,
		},
		Receiver: ReceiverJson{
			Position:     [3]float64{1, 1, 0},
			NormalVector: [3]float64{0, 0, 1},
			Area:         1e-4,
			Fov:          1,
		},
		Environment: EnvironmentJson{
			Reflectance:  0.8,
			ScaleFactor:  1.0 / 3.0,
			SizeRoom:     [3]float64{2, 2, 2},
			KReflections: 1,
		},
	}
}

func TestCalc_Pipeline(t *testing.T) {
	rd := test_scenario()
	result, err := calc(rd, default_sim_config())
	require.NoError(t, err)

	assert.Equal(t, 54, result.tess.no_cells)
	require.Len(t, result.h_k, 2)
	assert.Len(t, result.h_k[1], 54)
	assert.Len(t, result.hists.hist_power_time, 2)
	assert.Len(t, result.freq.hist_power_freq, 2)
	assert.Len(t, result.freq.hist_power_freq[0], bins_hist/2+1)
}

func TestCalc_Idempotence(t *testing.T) {
	rd := test_scenario()
	first, err := calc(rd, default_sim_config())
	require.NoError(t, err)
	second, err := calc(rd, default_sim_config())
	require.NoError(t, err)

	// the parallel fills write each entry exactly once from the same
	// inputs, so two runs are bit-identical
	assert.Equal(t, first.h_k, second.h_k)
	assert.Equal(t, first.hists.hist_power_time, second.hists.hist_power_time)
	assert.Equal(t, first.hists.total_ht, second.hists.total_ht)
	assert.Equal(t, first.freq.hist_power_freq, second.freq.hist_power_freq)
}

func TestCalc_InvalidInputs(t *testing.T) {
	t.Run("reflectance out of range", func(t *testing.T) {
		rd := test_scenario()
		rd.Environment.Reflectance = 1.2
		_, err := calc(rd, default_sim_config())
		require.ErrorIs(t, err, ErrInvalidGeometry)
	})

	t.Run("negative reflection order", func(t *testing.T) {
		rd := test_scenario()
		rd.Environment.KReflections = -1
		_, err := calc(rd, default_sim_config())
		require.ErrorIs(t, err, ErrInvalidGeometry)
	})

	t.Run("off-grid transmitter", func(t *testing.T) {
		rd := test_scenario()
		rd.Source.Position = [3]float64{0.9, 1, 2}
		_, err := calc(rd, default_sim_config())
		require.ErrorIs(t, err, ErrPositionNotOnGrid)
	})
}

func TestSimConfigFromJson(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := sim_config_from_json(&SimulationJson{})
		assert.Equal(t, time_resolution, cfg.time_resolution)
		assert.Equal(t, bins_hist, cfg.bins_hist)
		assert.Equal(t, RangeDrop, cfg.range_policy)
		assert.Equal(t, int64(4<<30), cfg.max_arena_bytes)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg := sim_config_from_json(&SimulationJson{
			TimeResolution:   1e-9,
			BinsHist:         100,
			RangePolicy:      "clip",
			ReducedPrecision: true,
			MaxArenaBytes:    1 << 20,
		})
		assert.Equal(t, 1e-9, cfg.time_resolution)
		assert.Equal(t, 100, cfg.bins_hist)
		assert.Equal(t, RangeClip, cfg.range_policy)
		assert.True(t, cfg.reduced_precision)
		assert.Equal(t, int64(1<<20), cfg.max_arena_bytes)
	})
}

func TestRun_WritesReports(t *testing.T) {
	dir := t.TempDir()

	scenario := filepath.Join(dir, "scenario.json")
	data, err := json.Marshal(test_scenario())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(scenario, data, 0644))

	out := filepath.Join(dir, "report")
	Run(scenario, out, false, true)

	for _, name := range []string{
		"h0.csv", "h1.csv",
		"h0-histogram.csv", "h1-histogram.csv", "total-histogram.csv",
		"h0-freq-histogram.csv", "h1-freq-histogram.csv",
		"led-pattern.csv",
	} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}
}
