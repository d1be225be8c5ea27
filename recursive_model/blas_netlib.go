//go:build netlib

package recursive_model

import (
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/netlib/blas/netlib"
)

// Building with -tags netlib routes gonum's dense-matrix kernels through the
// system BLAS, which pays off once the geometry cache grows past a few
// thousand cells.
func init() {
	blas64.Use(netlib.Implementation{})
}
