package recursive_model

import (
	"fmt"
	"log"
	"math/big"
	"strconv"
)

// Tessellation holds the discretized wall cells of a rectangular room.
type Tessellation struct {
	x_lim, y_lim, z_lim float64

	points     [][3]float64 // centroid [x,y,z] of every cell, [no_cells]
	wall_label []int        // wall label of every cell, 0..5
	no_xtick   int          // number of divisions along the x axis
	no_ytick   int          // number of divisions along the y axis
	no_ztick   int          // number of divisions along the z axis
	init_index [6]int       // start index of each wall's block inside points
	delta_L    float64      // cell edge length, m
	delta_A    float64      // reflecting surface quantum per cell, m^2
	no_cells   int          // total number of cells
}

/*
tessellation splits each of the six walls of a rectangular room into square
cells and returns the centroid of every cell.

	The cell edge is derived with exact rational arithmetic: each dimension
	becomes a fraction of its printed decimal value, the LCM of the three
	denominators gives a common integer tick scale, and the GCD of the tick
	counts gives the coarsest edge delta_Lmax that tiles all three
	dimensions exactly. The scale factor only subdivides delta_Lmax
	further. delta_A is set to delta_L^2/200 so that the cell area stays
	negligible against the minimum distance between centroids.

	Args:
	    x_lim: length of the room along the x axis, m
	    y_lim: length of the room along the y axis, m
	    z_lim: length of the room along the z axis, m
	    scale_factor: refinement factor for delta_Lmax, 0 < f <= 1

	Returns:
	    the cell set, the per-axis division counts, the per-wall start
	    index table, delta_L, delta_A and the total cell count
*/
func tessellation(x_lim, y_lim, z_lim, scale_factor float64) (*Tessellation, error) {
	log.Print("//****** Tessellation *******//")

	if x_lim <= 0 || y_lim <= 0 || z_lim <= 0 {
		return nil, fmt.Errorf("%w: room dimensions must be positive, got [%g %g %g]",
			ErrInvalidGeometry, x_lim, y_lim, z_lim)
	}
	if scale_factor <= 0 || scale_factor > 1 {
		return nil, fmt.Errorf("%w: scale factor must be in (0, 1], got %g",
			ErrInvalidGeometry, scale_factor)
	}

	x_rat := rat_from_float(x_lim)
	y_rat := rat_from_float(y_lim)
	z_rat := rat_from_float(z_lim)
	scale_rat := rat_from_float(scale_factor)

	den_lcm := lcm(x_rat.Denom(), lcm(y_rat.Denom(), z_rat.Denom()))

	// integer tick counts of each dimension at the common denominator scale
	n_x := ticks_at(x_rat, den_lcm)
	n_y := ticks_at(y_rat, den_lcm)
	n_z := ticks_at(z_rat, den_lcm)

	num_gcd := new(big.Int).GCD(nil, nil, n_z, new(big.Int).GCD(nil, nil, n_x, n_y))

	delta_Lmax_rat := new(big.Rat).SetFrac(num_gcd, den_lcm)
	delta_Lmax, _ := delta_Lmax_rat.Float64()
	log.Printf("DeltaL max is: %g", delta_Lmax)
	log.Printf("DeltaA max is: %g", delta_Lmax*delta_Lmax)

	delta_L_rat := new(big.Rat).Mul(delta_Lmax_rat, scale_rat)
	delta_L, _ := delta_L_rat.Float64()

	// delta_A << (delta_L/sqrt(2))^2 keeps the inverse-square terms far
	// from their singularity at the minimum inter-cell distance.
	delta_A := delta_L * delta_L / 200

	log.Printf("Scale factor for Delta L is: %g", scale_factor)
	log.Printf("DeltaL[m]: %g", delta_L)
	log.Printf("DeltaA[m^2]: %g", delta_A)

	no_xtick := axis_divisions(n_x, num_gcd, scale_rat)
	no_ytick := axis_divisions(n_y, num_gcd, scale_rat)
	no_ztick := axis_divisions(n_z, num_gcd, scale_rat)

	if no_xtick.Sign() == 0 || no_ytick.Sign() == 0 || no_ztick.Sign() == 0 {
		return nil, fmt.Errorf("%w: scale factor %g yields zero divisions on an axis",
			ErrInvalidGeometry, scale_factor)
	}

	// 2*(nx*ny + nz*nx + nz*ny) cells in total, computed before any
	// allocation so a pathological decimal dimension fails cleanly.
	total := new(big.Int).Mul(no_xtick, no_ytick)
	total.Add(total, new(big.Int).Mul(no_ztick, no_xtick))
	total.Add(total, new(big.Int).Mul(no_ztick, no_ytick))
	total.Lsh(total, 1)
	if total.Cmp(big.NewInt(max_cells)) > 0 {
		return nil, fmt.Errorf("%w: dimensions [%g %g %g] tessellate into %s cells (limit %d)",
			ErrInvalidGeometry, x_lim, y_lim, z_lim, total.String(), max_cells)
	}

	t := &Tessellation{
		x_lim:    x_lim,
		y_lim:    y_lim,
		z_lim:    z_lim,
		no_xtick: int(no_xtick.Int64()),
		no_ytick: int(no_ytick.Int64()),
		no_ztick: int(no_ztick.Int64()),
		delta_L:  delta_L,
		delta_A:  delta_A,
		no_cells: int(total.Int64()),
	}

	n0 := t.no_xtick * t.no_ytick // walls 0 and 5
	n1 := t.no_ztick * t.no_xtick // walls 1 and 3
	n2 := t.no_ztick * t.no_ytick // walls 2 and 4
	t.init_index = [6]int{0, n0, n0 + n1, n0 + n1 + n2, n0 + n1 + n2 + n1, n0 + n1 + n2 + n1 + n2}

	t.points = make([][3]float64, t.no_cells)
	t.wall_label = make([]int, t.no_cells)

	// walls 0 (ceiling, z = z_lim) and 5 (floor, z = 0)
	counter_cell := 0
	for j := 0; j < t.no_xtick; j++ {
		for i := 0; i < t.no_ytick; i++ {
			x := delta_L/2 + float64(j)*delta_L
			y := delta_L/2 + float64(i)*delta_L
			t.set_cell(t.init_index[0]+counter_cell, x, y, z_lim, 0)
			t.set_cell(t.init_index[5]+counter_cell, x, y, 0, 5)
			counter_cell++
		}
	}

	// walls 1 (y = 0) and 3 (y = y_lim)
	counter_cell = 0
	for j := 0; j < t.no_ztick; j++ {
		for i := 0; i < t.no_xtick; i++ {
			x := x_lim - delta_L/2 - float64(i)*delta_L
			z := z_lim - delta_L/2 - float64(j)*delta_L
			t.set_cell(t.init_index[1]+counter_cell, x, 0, z, 1)
			t.set_cell(t.init_index[3]+counter_cell, x, y_lim, z, 3)
			counter_cell++
		}
	}

	// walls 2 (x = 0) and 4 (x = x_lim)
	counter_cell = 0
	for j := 0; j < t.no_ztick; j++ {
		for i := 0; i < t.no_ytick; i++ {
			y := delta_L/2 + float64(i)*delta_L
			z := z_lim - delta_L/2 - float64(j)*delta_L
			t.set_cell(t.init_index[2]+counter_cell, 0, y, z, 2)
			t.set_cell(t.init_index[4]+counter_cell, x_lim, y, z, 4)
			counter_cell++
		}
	}

	log.Printf("The total number of points is: %d", t.no_cells)
	log.Print("//-------- points array created --------------//")

	return t, nil
}

func (t *Tessellation) set_cell(index int, x, y, z float64, wall int) {
	t.points[index] = [3]float64{x, y, z}
	t.wall_label[index] = wall
}

// find_cell returns the index of the cell whose centroid matches pos, or -1.
func (t *Tessellation) find_cell(pos [3]float64) int {
	for i, p := range t.points {
		if abs(p[0]-pos[0]) <= grid_match_tol &&
			abs(p[1]-pos[1]) <= grid_match_tol &&
			abs(p[2]-pos[2]) <= grid_match_tol {
			return i
		}
	}
	return -1
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// rat_from_float builds the exact rational value of the shortest decimal
// representation of v, mirroring a fraction parsed from the printed number
// rather than from the binary float.
func rat_from_float(v float64) *big.Rat {
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(v, 'f', -1, 64))
	if !ok {
		// FormatFloat always yields a parseable decimal for finite input
		panic("recursive_model: unrepresentable dimension " + strconv.FormatFloat(v, 'g', -1, 64))
	}
	return r
}

func lcm(a, b *big.Int) *big.Int {
	g := new(big.Int).GCD(nil, nil, a, b)
	l := new(big.Int).Div(a, g)
	return l.Mul(l, b)
}

// ticks_at returns den_lcm * num/den, which is exact because den divides
// den_lcm.
func ticks_at(r *big.Rat, den_lcm *big.Int) *big.Int {
	t := new(big.Int).Mul(den_lcm, r.Num())
	return t.Div(t, r.Denom())
}

// axis_divisions returns floor((n/num_gcd) / scale): the number of cells of
// edge delta_L that fit along an axis with n base ticks.
func axis_divisions(n, num_gcd *big.Int, scale *big.Rat) *big.Int {
	base := new(big.Int).Div(n, num_gcd)
	q := new(big.Rat).SetInt(base)
	q.Quo(q, scale)
	return new(big.Int).Div(q.Num(), q.Denom())
}
