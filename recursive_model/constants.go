package recursive_model

// speed of light in [m/s]
const speed_of_light = 3e8

// default time resolution for the power-delay histograms, s
const time_resolution = 0.2e-9

// default number of bins for the power-delay histograms
const bins_hist = 300

// upper bound on the cell count a tessellation may produce; a dimension
// whose decimal expansion forces a finer grid is rejected as invalid
// geometry instead of exhausting memory.
const max_cells = 1 << 22

// tolerance used to match a transmitter/receiver position against a
// generated cell centroid
const grid_match_tol = 1e-9

// normal_vector_wall holds the inward unit normal of each wall, keyed by
// wall label: 0 ceiling (z = z_lim), 1 y = 0, 2 x = 0, 3 y = y_lim,
// 4 x = x_lim, 5 floor (z = 0).
var normal_vector_wall = [6][3]float64{
	{0, 0, -1},
	{0, 1, 0},
	{1, 0, 0},
	{0, -1, 0},
	{-1, 0, 0},
	{0, 0, 1},
}
