package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/jufgutierrezgo/recursivemodel-vlc/recursive_model"
)

func main() {
	var scenario_data string
	flag.StringVar(&scenario_data, "i", "", "scenario JSON file to simulate")

	var output_data_dir string
	flag.StringVar(&output_data_dir, "o", "", "output directory for CIR raw data and reports")

	var is_plot_saved bool
	flag.BoolVar(&is_plot_saved, "plots", false, "render PNG plots of the histograms and spectra")

	var is_pattern_saved bool
	flag.BoolVar(&is_pattern_saved, "pattern", false, "export the LED radiation pattern of the source")

	var pprof_enable bool
	flag.BoolVar(&pprof_enable, "pprof", false, "profile the run and save to cpu.prof")

	flag.Parse()

	if scenario_data == "" {
		log.Fatal("specify the -i option with a scenario JSON file")
	}

	if pprof_enable {
		f, err := os.Create("cpu.prof")
		if err != nil {
			panic(err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				panic(err)
			}
		}()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer pprof.StopCPUProfile()
	}

	start := time.Now()

	recursive_model.Run(
		scenario_data,
		output_data_dir,
		is_plot_saved,
		is_pattern_saved,
	)

	elapsedTime := time.Since(start)
	log.Printf("elapsed_time: %v [sec]", elapsedTime)
}
