package recursive_model

import (
	"fmt"
	"log"
	"math"
)

// Ray is one impulse-response record: the optical power delivered by one
// k-bounce path and the total propagation delay of that path.
type Ray struct {
	Power float64 `csv:"power"`
	Delay float64 `csv:"delay"`
}

// bytes per Ray record, used by the arena memory precheck
const ray_size = 16

/*
compute_cir builds the channel impulse response of every reflection order.

	Order 0 is the line-of-sight record. Order 1 combines, per cell, the
	irradiance delivered by the source with the transfer toward the
	receiver. Every higher order k extends the receiver-side chain of
	order k-1 by one leading hop through the diffuse pairwise transfer

	    dP[i,j] = rho * delta_A * cos[i,j] * cos[j,i] / (pi * dist[i,j]^2)

	and then attaches the source-side single-bounce term of the new
	leading cell. Power composes multiplicatively along a path, delay
	additively, and order k enumerates all no_cells^k paths with no
	pruning: consecutive blocks of no_cells^(k-1) records share a fixed
	leading cell.

	Args:
	    m: lambertian number of the tx emission
	    tx_pos: [x,y,z] tx position, must lie on a cell centroid
	    rx_pos: [x,y,z] rx position, must lie on a cell centroid
	    t: tessellated cell set
	    par: pairwise geometry cache
	    a_r: sensitive area of the photodetector, m^2
	    rho: wall reflectance
	    k_reflec: highest reflection order to compute
	    max_arena_bytes: memory budget for the per-order record arenas

	Returns:
	    h_k: one []Ray per reflection order, [k_reflec+1]

	Errors:
	    ErrPositionNotOnGrid if tx_pos or rx_pos matches no centroid;
	    ErrResourceExhausted if an order's arena would exceed the budget.
*/
func compute_cir(
	m float64,
	tx_pos [3]float64,
	rx_pos [3]float64,
	t *Tessellation,
	par *Parameters,
	a_r float64,
	rho float64,
	k_reflec int,
	max_arena_bytes int64,
) ([][]Ray, error) {
	no_cells := t.no_cells

	// ratio between the true wall area and the sampled cell-area total,
	// compensating for the reduced surface sampling of the model
	area_factor := (2*t.x_lim*t.y_lim + 2*t.x_lim*t.z_lim + 2*t.y_lim*t.z_lim) /
		(t.delta_A * float64(no_cells))

	tx_index_point := t.find_cell(tx_pos)
	if tx_index_point < 0 {
		return nil, fmt.Errorf("%w: transmitter at [%g %g %g]",
			ErrPositionNotOnGrid, tx_pos[0], tx_pos[1], tx_pos[2])
	}
	rx_index_point := t.find_cell(rx_pos)
	if rx_index_point < 0 {
		return nil, fmt.Errorf("%w: receiver at [%g %g %g]",
			ErrPositionNotOnGrid, rx_pos[0], rx_pos[1], rx_pos[2])
	}

	dist := par.dist.RawMatrix().Data
	cos := par.cos.RawMatrix().Data

	// radiant intensity of the lambertian source toward each cell, scaled
	// by the inverse-square spreading loss
	tx_power := make([]float64, no_cells)
	// directional response of the detector seen from each cell
	rx_wall_factor := make([]float64, no_cells)
	for j := 0; j < no_cells; j++ {
		d := dist[tx_index_point*no_cells+j]
		if d != 0 {
			cos_phi := cos[tx_index_point*no_cells+j]
			tx_power[j] = (m + 1) / (2 * math.Pi) * math.Pow(cos_phi, m) / (d * d)
		}
		rx_wall_factor[j] = a_r * cos[rx_index_point*no_cells+j]
	}

	// source-to-cell and cell-to-receiver single-hop terms
	h0_se := make([]Ray, no_cells)
	h0_er := make([]Ray, no_cells)
	for c := 0; c < no_cells; c++ {
		h0_se[c].Power = area_factor * rho * t.delta_A * tx_power[c] * cos[c*no_cells+tx_index_point]
		h0_se[c].Delay = dist[tx_index_point*no_cells+c] / speed_of_light

		d := dist[rx_index_point*no_cells+c]
		if d != 0 {
			h0_er[c].Power = cos[c*no_cells+rx_index_point] * rx_wall_factor[c] / (math.Pi * d * d)
		}
		h0_er[c].Delay = d / speed_of_light
	}

	// diffuse cell-to-cell transfer, zero on the diagonal and across
	// same-wall pairs where the cached distance is zero
	dP_ij := make([]float64, no_cells*no_cells)
	parallel_for(no_cells, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			for j := 0; j < no_cells; j++ {
				d := dist[i*no_cells+j]
				if d == 0 {
					continue
				}
				dP_ij[i*no_cells+j] = rho * t.delta_A * cos[i*no_cells+j] * cos[j*no_cells+i] /
					(math.Pi * d * d)
			}
		}
	})

	h_k := make([][]Ray, k_reflec+1)
	// receiver-side partial chains, reused from one order to the next
	var hlast_er []Ray

	records := int64(1)
	for i := 0; i <= k_reflec; i++ {
		if i > 0 {
			if records > math.MaxInt64/int64(no_cells) {
				return nil, fmt.Errorf("%w: order %d overflows the record count",
					ErrResourceExhausted, i)
			}
			records *= int64(no_cells)
		}
		// h_k plus the mirror chain both hold `records` rays
		if records > max_arena_bytes/(2*ray_size) {
			return nil, fmt.Errorf("%w: order %d needs %d records (budget %d bytes)",
				ErrResourceExhausted, i, records, max_arena_bytes)
		}

		h_k[i] = make([]Ray, records)

		switch {
		case i == 0:
			h_k[i][0].Power = tx_power[rx_index_point] * rx_wall_factor[tx_index_point]
			h_k[i][0].Delay = dist[tx_index_point*no_cells+rx_index_point] / speed_of_light

		case i == 1:
			hlast_er = make([]Ray, no_cells)
			copy(hlast_er, h0_er)

			for c := 0; c < no_cells; c++ {
				h_k[i][c].Power = h0_se[c].Power * h0_er[c].Power
				h_k[i][c].Delay = h0_se[c].Delay + h0_er[c].Delay
			}

		default:
			// extend every partial chain of order i-1 by one leading cell
			prev := hlast_er
			next := make([]Ray, records)
			parallel_for(len(prev), func(lo, hi int) {
				for j := lo; j < hi; j++ {
					index_dpij := j % no_cells
					base := no_cells * j
					for c := 0; c < no_cells; c++ {
						next[base+c].Power = prev[j].Power * dP_ij[index_dpij*no_cells+c]
						next[base+c].Delay = prev[j].Delay + dist[index_dpij*no_cells+c]/speed_of_light
					}
				}
			})
			hlast_er = next

			// attach the source-side term of each leading cell l; the
			// chains led by l sit at stride no_cells starting at l
			block := int(records) / no_cells
			out := h_k[i]
			parallel_for(no_cells, func(lo, hi int) {
				for l := lo; l < hi; l++ {
					lim_0 := l * block
					for c := 0; c < block; c++ {
						chain := hlast_er[l+c*no_cells]
						out[lim_0+c].Power = chain.Power * h0_se[l].Power
						out[lim_0+c].Delay = chain.Delay + h0_se[l].Delay
					}
				}
			})
		}

		log.Printf("//------------- h%d-computed ------------------//", i)
	}

	return h_k, nil
}
