package recursive_model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Recorder persists the outputs of a simulation run as CSV reports and,
// optionally, PNG plots. The file set mirrors the raw-data and report
// directories of the original model: h{k}.csv, h{k}-histogram.csv,
// h{k}-freq-histogram.csv, total-histogram.csv, h{k}.png, h{k}freq.png.
type Recorder struct {
	result          *Result
	output_data_dir string
}

func NewRecorder(result *Result, output_data_dir string) *Recorder {
	return &Recorder{result: result, output_data_dir: output_data_dir}
}

// HistRow is one line of a time-histogram CSV report.
type HistRow struct {
	Power float64 `csv:"power"`
	Time  float64 `csv:"time"`
}

// FreqRow is one line of a frequency-response CSV report.
type FreqRow struct {
	Magnitude float64 `csv:"magnitude"`
	Frequency float64 `csv:"frequency"`
}

// PatternRow is one sample of the LED radiation-pattern CSV report.
type PatternRow struct {
	Theta float64 `csv:"theta"`
	Phi   float64 `csv:"phi"`
	R     float64 `csv:"r"`
	X     float64 `csv:"x"`
	Y     float64 `csv:"y"`
	Z     float64 `csv:"z"`
}

// export_cir writes the raw (power, delay) records of every order.
func (r *Recorder) export_cir() error {
	for k, rays := range r.result.h_k {
		if err := r.save_csv(fmt.Sprintf("h%d.csv", k), &rays); err != nil {
			return err
		}
	}
	return nil
}

// export_histograms writes the per-order and aggregate time histograms.
func (r *Recorder) export_histograms() error {
	h := r.result.hists
	for k, hist := range h.hist_power_time {
		rows := make([]HistRow, len(hist))
		for b, power := range hist {
			rows[b] = HistRow{Power: power, Time: h.time_scale[b]}
		}
		if err := r.save_csv(fmt.Sprintf("h%d-histogram.csv", k), &rows); err != nil {
			return err
		}
	}

	rows := make([]HistRow, len(h.total_ht))
	for b, power := range h.total_ht {
		rows[b] = HistRow{Power: power, Time: h.time_scale[b]}
	}
	return r.save_csv("total-histogram.csv", &rows)
}

// export_freq writes the magnitude spectrum of every order.
func (r *Recorder) export_freq() error {
	f := r.result.freq
	for k, magnitude := range f.hist_power_freq {
		rows := make([]FreqRow, len(magnitude))
		for b, mag := range magnitude {
			rows[b] = FreqRow{Magnitude: mag, Frequency: f.xf[b]}
		}
		if err := r.save_csv(fmt.Sprintf("h%d-freq-histogram.csv", k), &rows); err != nil {
			return err
		}
	}
	return nil
}

// export_plots renders stem-style plots of every order's histogram and
// spectrum.
func (r *Recorder) export_plots() error {
	h := r.result.hists
	f := r.result.freq

	for k, hist := range h.hist_power_time {
		title := fmt.Sprintf("Channel Impulse Response h%d(t)", k)
		name := fmt.Sprintf("h%d.png", k)
		if err := r.save_plot(name, title, "time (s)", "Power (W)", h.time_scale, hist); err != nil {
			return err
		}
	}

	for k, magnitude := range f.hist_power_freq {
		title := fmt.Sprintf("Frequency CIR h%d", k)
		name := fmt.Sprintf("h%dfreq.png", k)
		if err := r.save_plot(name, title, "Freq (Hz)", "Power (W)", f.xf, magnitude); err != nil {
			return err
		}
	}

	return nil
}

// export_pattern writes the LED radiation-pattern samples and, when
// plotting is enabled, a polar cut of the lobe.
func (r *Recorder) export_pattern(p *LedPattern, is_plot_saved bool) error {
	rows := make([]PatternRow, 0, len(p.phi)*len(p.theta))
	for i, phi := range p.phi {
		for j, theta := range p.theta {
			rows = append(rows, PatternRow{
				Theta: theta,
				Phi:   phi,
				R:     p.r[i][j],
				X:     p.x[i][j],
				Y:     p.y[i][j],
				Z:     p.z[i][j],
			})
		}
	}
	if err := r.save_csv("led-pattern.csv", &rows); err != nil {
		return err
	}

	if !is_plot_saved {
		return nil
	}

	// radial cut at theta = 0: intensity against the polar angle
	cut := make([]float64, len(p.phi))
	for i := range p.phi {
		cut[i] = p.r[i][0]
	}
	return r.save_plot("led-pattern.png", "LED radiation pattern",
		"phi (rad)", "Radiant intensity (W/sr)", p.phi, cut)
}

func (r *Recorder) save_csv(name string, rows interface{}) error {
	path := filepath.Join(r.output_data_dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create `%s`: %w", path, err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(rows, f); err != nil {
		return fmt.Errorf("write `%s`: %w", path, err)
	}
	return nil
}

func (r *Recorder) save_plot(name, title, x_label, y_label string, xs, ys []float64) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = x_label
	p.Y.Label.Text = y_label
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.Radius = vg.Points(2)
	p.Add(scatter)

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Width = vg.Points(0.5)
	p.Add(line)

	path := filepath.Join(r.output_data_dir, name)
	if err := p.Save(12*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save `%s`: %w", path, err)
	}
	return nil
}
