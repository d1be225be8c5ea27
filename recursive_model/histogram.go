package recursive_model

import (
	"log"
	"math"

	"gonum.org/v1/gonum/floats"
)

// RangePolicy selects what happens to a record whose delay maps past the end
// of the histogram window.
type RangePolicy int

const (
	// RangeDrop discards the record and counts it.
	RangeDrop RangePolicy = iota
	// RangeClip accumulates the record into the last bin and counts it.
	RangeClip
)

// OutOfRange counts the records of one reflection order that fell outside
// the histogram window. Negative records precede the line-of-sight
// reference, which a correct geometry cannot produce; they are always
// dropped.
type OutOfRange struct {
	Clipped  int
	Dropped  int
	Negative int
}

// Histograms holds the binned channel impulse response.
type Histograms struct {
	hist_power_time [][]float64  // per-order power histogram, [k_reflec+1][bins]
	total_ht        []float64    // aggregate histogram, [bins]
	time_scale      []float64    // time axis, [bins]
	h_power         []float64    // total power per order, [k_reflec+1]
	out_of_range    []OutOfRange // range accounting per order, [k_reflec+1]
}

/*
create_histograms bins the (power, delay) records of every order onto a
common fixed-resolution time axis.

	The order-0 delay is the line-of-sight reference: it is subtracted
	from every record before binning so all orders share t = 0. A record
	lands in bucket floor(adjusted_delay / delta_t). Buckets outside
	[0, bins) are handled by the configured range policy and counted; the
	caller can weigh the counts against the record totals to judge the
	fidelity of the window.

	Args:
	    h_k: per-order record slices from compute_cir
	    cfg: time resolution, bin count and range policy

	Returns:
	    per-order histograms, the aggregate histogram, the time axis, the
	    total power per order and the out-of-range accounting
*/
func create_histograms(h_k [][]Ray, cfg *SimConfig) *Histograms {
	log.Print("//------------- Data report ------------------//")
	log.Printf("Time resolution [s]: %g", cfg.time_resolution)
	log.Printf("Number of Bins: %d", cfg.bins_hist)

	k_orders := len(h_k)
	bins := cfg.bins_hist

	h := &Histograms{
		hist_power_time: make([][]float64, k_orders),
		total_ht:        make([]float64, bins),
		time_scale:      make([]float64, bins),
		h_power:         make([]float64, k_orders),
		out_of_range:    make([]OutOfRange, k_orders),
	}
	floats.Span(h.time_scale, 0, float64(bins)*cfg.time_resolution)

	delay_los := h_k[0][0].Delay

	for i := 0; i < k_orders; i++ {
		hist := make([]float64, bins)
		oor := &h.out_of_range[i]

		for _, ray := range h_k[i] {
			h.h_power[i] += ray.Power

			bucket := int(math.Floor((ray.Delay - delay_los) / cfg.time_resolution))
			switch {
			case bucket < 0:
				oor.Negative++
			case bucket >= bins:
				if cfg.range_policy == RangeClip {
					hist[bins-1] += ray.Power
					oor.Clipped++
				} else {
					oor.Dropped++
				}
			default:
				hist[bucket] += ray.Power
			}
		}

		h.hist_power_time[i] = hist
		floats.Add(h.total_ht, hist)

		log.Printf("h%d-Response:", i)
		log.Printf("Power[w]: %g", h.h_power[i])
		if i == 0 {
			log.Printf("Delay[s]: %g", h_k[i][0].Delay)
		}
		if oor.Clipped+oor.Dropped+oor.Negative > 0 {
			log.Printf("Out-of-range records: clipped=%d dropped=%d negative=%d",
				oor.Clipped, oor.Dropped, oor.Negative)
		}
	}

	log.Print("Total-Response:")
	log.Printf("Total-Power[W]: %g", floats.Sum(h.h_power))

	return h
}
