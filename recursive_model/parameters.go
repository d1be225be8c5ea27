package recursive_model

import (
	"log"
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Parameters caches the pairwise geometry between cells: the Euclidean
// distance and the cosine of the line of sight against each endpoint's own
// wall normal.
//
// dist is symmetric with a zero diagonal; pairs of cells on the same wall
// stay zero (no self-wall transfer). cos is two-sided on purpose: the
// incidence and emission angles of a diffuse hop are measured independently
// against each cell's normal, so cos.At(i, j) and cos.At(j, i) generally
// differ. This is the four-angle convention of the reflection model.
type Parameters struct {
	dist *mat.Dense
	cos  *mat.Dense
}

/*
make_parameters computes the pairwise geometry cache over all cells.

	Each unordered pair with distinct wall labels is visited once; the
	distance entry is mirrored and the two cosine entries are filled from
	the same unit line-of-sight vector. The pairs carry no cross-iteration
	dependency, so the rows are striped across the available CPUs, each
	worker writing only the entries owned by its rows.

	Args:
	    t: tessellated cell set
	    reduced_precision: store every entry rounded through float32,
	        trading accuracy for a reproducible smaller-footprint cache

	Returns:
	    the distance and cosine matrices, [no_cells, no_cells] each
*/
func make_parameters(t *Tessellation, reduced_precision bool) *Parameters {
	n := t.no_cells
	p := &Parameters{
		dist: mat.NewDense(n, n, nil),
		cos:  mat.NewDense(n, n, nil),
	}

	dist := p.dist.RawMatrix().Data
	cos := p.cos.RawMatrix().Data

	round := func(v float64) float64 { return v }
	if reduced_precision {
		round = func(v float64) float64 { return float64(float32(v)) }
	}

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		// rows are striped so every worker sees a similar share of the
		// shrinking upper triangle
		go func(w int) {
			defer wg.Done()
			for ini_point := w; ini_point < n; ini_point += workers {
				pi := t.points[ini_point]
				ni := normal_vector_wall[t.wall_label[ini_point]]
				for end_point := ini_point + 1; end_point < n; end_point++ {
					if t.wall_label[ini_point] == t.wall_label[end_point] {
						continue
					}
					pj := t.points[end_point]
					nj := normal_vector_wall[t.wall_label[end_point]]

					dx := pi[0] - pj[0]
					dy := pi[1] - pj[1]
					dz := pi[2] - pj[2]
					d := math.Sqrt(dx*dx + dy*dy + dz*dz)

					// unit line of sight from end_point toward ini_point
					ux := dx / d
					uy := dy / d
					uz := dz / d

					dist[ini_point*n+end_point] = round(d)
					dist[end_point*n+ini_point] = round(d)
					cos[ini_point*n+end_point] = round(-(ux*ni[0] + uy*ni[1] + uz*ni[2]))
					cos[end_point*n+ini_point] = round(ux*nj[0] + uy*nj[1] + uz*nj[2])
				}
			}
		}(w)
	}
	wg.Wait()

	log.Print("//------- parameters array created -----------//")

	return p
}

// parallel_for splits [0, n) into contiguous chunks and runs fn on one chunk
// per goroutine. fn must only write output owned by its range.
func parallel_for(n int, fn func(lo, hi int)) {
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		if n > 0 {
			fn(0, n)
		}
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
