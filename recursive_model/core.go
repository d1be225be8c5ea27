package recursive_model

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
)

type InputJson struct {
	Source      SourceJson      `json:"source"`
	Receiver    ReceiverJson    `json:"receiver"`
	Environment EnvironmentJson `json:"environment"`
	Simulation  SimulationJson  `json:"simulation"`
}

type SourceJson struct {
	Position     [3]float64 `json:"position"`
	NormalVector [3]float64 `json:"normal_vector"`
	LambertNum   float64    `json:"lambert_num"`
	Power        float64    `json:"power"`
}

type ReceiverJson struct {
	Position     [3]float64 `json:"position"`
	NormalVector [3]float64 `json:"normal_vector"`
	Area         float64    `json:"area"`
	Fov          float64    `json:"fov"`
}

type EnvironmentJson struct {
	Reflectance  float64    `json:"reflectance"`
	ScaleFactor  float64    `json:"scale_factor"`
	SizeRoom     [3]float64 `json:"size_room"`
	KReflections int        `json:"k_reflections"`
}

type SimulationJson struct {
	TimeResolution   float64 `json:"time_resolution"`
	BinsHist         int     `json:"bins_hist"`
	RangePolicy      string  `json:"range_policy"`
	ReducedPrecision bool    `json:"reduced_precision"`
	MaxArenaBytes    int64   `json:"max_arena_bytes"`
}

// SimConfig carries the simulation-wide knobs shared by every stage. It is
// built once per run and passed down; nothing in the pipeline reads mutable
// package state.
type SimConfig struct {
	time_resolution   float64     // histogram bin width, s
	bins_hist         int         // histogram bin count
	range_policy      RangePolicy // clip or drop for late records
	reduced_precision bool        // store the geometry cache rounded to float32
	max_arena_bytes   int64       // budget for the per-order record arenas
}

func default_sim_config() *SimConfig {
	return &SimConfig{
		time_resolution: time_resolution,
		bins_hist:       bins_hist,
		range_policy:    RangeDrop,
		max_arena_bytes: 4 << 30,
	}
}

// sim_config_from_json overlays the scenario's simulation block on the
// defaults.
func sim_config_from_json(sj *SimulationJson) *SimConfig {
	cfg := default_sim_config()
	if sj.TimeResolution > 0 {
		cfg.time_resolution = sj.TimeResolution
	}
	if sj.BinsHist > 0 {
		cfg.bins_hist = sj.BinsHist
	}
	if sj.RangePolicy == "clip" {
		cfg.range_policy = RangeClip
	}
	cfg.reduced_precision = sj.ReducedPrecision
	if sj.MaxArenaBytes > 0 {
		cfg.max_arena_bytes = sj.MaxArenaBytes
	}
	return cfg
}

// Result bundles the outputs of one simulation run.
type Result struct {
	tess  *Tessellation
	par   *Parameters
	h_k   [][]Ray
	hists *Histograms
	freq  *FrequencyResponse
}

/*
Run executes a channel simulation described by a scenario JSON file.

	Args:
	    scenario_path: path or http(s) URL of the scenario JSON file
	    output_data_dir: directory for CSV reports; empty disables reports
	    is_plot_saved: also render PNG plots of histograms and spectra
	    is_pattern_saved: also export the LED radiation pattern
*/
func Run(
	scenario_path string,
	output_data_dir string,
	is_plot_saved bool,
	is_pattern_saved bool,
) {
	log.SetFlags(log.Lmicroseconds)

	recording := output_data_dir != ""
	if recording {
		if _, err := os.Stat(output_data_dir); os.IsNotExist(err) {
			os.Mkdir(output_data_dir, 0755)
		}
		if _, err := os.Stat(output_data_dir); os.IsNotExist(err) {
			log.Fatalf("`%s` is not a directory", output_data_dir)
		}
	}

	log.Print("loading scenario file")
	var rd InputJson
	if len(scenario_path) >= 4 && scenario_path[0:4] == "http" {
		resp, err := http.Get(scenario_path)
		if err != nil {
			log.Fatal(err)
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			log.Fatal(err)
		}
		json.Unmarshal(body, &rd)
	} else {
		file, err := os.Open(scenario_path)
		if err != nil {
			log.Fatal(err)
		}
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			log.Fatal(err)
		}
		json.Unmarshal(bytes, &rd)
	}

	result, err := calc(&rd, sim_config_from_json(&rd.Simulation))
	if err != nil {
		log.Fatal(err)
	}

	if recording {
		rec := NewRecorder(result, output_data_dir)
		if err := rec.export_cir(); err != nil {
			log.Fatal(err)
		}
		if err := rec.export_histograms(); err != nil {
			log.Fatal(err)
		}
		if err := rec.export_freq(); err != nil {
			log.Fatal(err)
		}
		if is_plot_saved {
			if err := rec.export_plots(); err != nil {
				log.Fatal(err)
			}
		}
		if is_pattern_saved {
			pattern := led_pattern(rd.Source.LambertNum)
			if err := rec.export_pattern(pattern, is_plot_saved); err != nil {
				log.Fatal(err)
			}
		}
		log.Printf("reports saved to `%s`", output_data_dir)
	}
}

/*
calc runs the simulation pipeline end to end: tessellation, pairwise
geometry, recursive CIR, histograms and frequency response.

	Args:
	    rd: scenario input
	    cfg: simulation-wide configuration

	Returns:
	    the full result bundle, or the first fatal error
*/
func calc(rd *InputJson, cfg *SimConfig) (*Result, error) {
	size := rd.Environment.SizeRoom

	tess, err := tessellation(size[0], size[1], size[2], rd.Environment.ScaleFactor)
	if err != nil {
		return nil, err
	}

	par := make_parameters(tess, cfg.reduced_precision)

	if rd.Environment.Reflectance < 0 || rd.Environment.Reflectance > 1 {
		return nil, fmt.Errorf("%w: reflectance must be in [0, 1], got %g",
			ErrInvalidGeometry, rd.Environment.Reflectance)
	}
	if rd.Environment.KReflections < 0 {
		return nil, fmt.Errorf("%w: reflection order must be >= 0, got %d",
			ErrInvalidGeometry, rd.Environment.KReflections)
	}

	h_k, err := compute_cir(
		rd.Source.LambertNum,
		rd.Source.Position,
		rd.Receiver.Position,
		tess,
		par,
		rd.Receiver.Area,
		rd.Environment.Reflectance,
		rd.Environment.KReflections,
		cfg.max_arena_bytes,
	)
	if err != nil {
		return nil, err
	}

	hists := create_histograms(h_k, cfg)
	freq := compute_freq(hists, cfg)

	return &Result{
		tess:  tess,
		par:   par,
		h_k:   h_k,
		hists: hists,
		freq:  freq,
	}, nil
}
