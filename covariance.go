package thor

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distmv"
)

const (
	// covarianceSnapε zeroes covariance elements below this magnitude after
	// a transform. Rotations smear floating-point noise into positions that
	// are structurally zero (block-diagonal patterns); anything this small
	// is noise, not signal.
	covarianceSnapε = 1e-25
	// jacobianStep is the central-difference offset of TransformCovariances.
	jacobianStep = 1e-7
)

// Covariances holds one 6×6 covariance matrix per coordinate row. Masked
// coordinate dimensions carry NaN rows and columns; a nil entry marks a row
// without covariance, a nil slice a container without covariances.
type Covariances []*mat.SymDense

// ConversionFunc maps the i-th 6-dimensional coordinate row into another
// representation. Gravitational parameter and solver settings are bound by
// the closure, and i selects per-row parameters such as the epoch. NaN
// dimensions pass through as NaN.
type ConversionFunc func(i int, row []float64) []float64

// Copy returns a deep copy.
func (cs Covariances) Copy() Covariances {
	if cs == nil {
		return nil
	}
	out := make(Covariances, len(cs))
	for i, c := range cs {
		if c == nil {
			continue
		}
		cp := mat.NewSymDense(coordinateDims, nil)
		cp.CopySym(c)
		out[i] = cp
	}
	return out
}

// At returns a copy of the i-th covariance, nil when absent.
func (cs Covariances) At(i int) *mat.SymDense {
	if cs == nil || cs[i] == nil {
		return nil
	}
	cp := mat.NewSymDense(coordinateDims, nil)
	cp.CopySym(cs[i])
	return cp
}

// ingestCovariances validates caller covariances against the coordinate mask.
// A non-nil entry must either be full 6×6, in which case masked rows and
// columns are overwritten with NaN, or D×D where D counts the row's unmasked
// dimensions (entries ordered by ascending dimension), in which case it is
// scattered to full rank. Any other rank is a dimension mismatch.
func ingestCovariances(covs Covariances, mask []bool) (Covariances, error) {
	if covs == nil {
		return nil, nil
	}
	n := len(mask) / coordinateDims
	if len(covs) != n {
		return nil, fmt.Errorf("%d covariance matrices for %d coordinate rows: %w", len(covs), n, ErrInvalidShape)
	}
	out := make(Covariances, n)
	for i, cov := range covs {
		if cov == nil {
			continue
		}
		rowMask := mask[i*coordinateDims : (i+1)*coordinateDims]
		dims := unmaskedOf(rowMask)
		switch cov.SymmetricDim() {
		case coordinateDims:
			out[i] = maskCovariance(cov, rowMask)
		case len(dims):
			out[i] = scatterCovariance(cov, dims)
		default:
			return nil, fmt.Errorf("row %d: covariance rank %d with %d unmasked dimensions: %w", i, cov.SymmetricDim(), len(dims), ErrDimensionMismatch)
		}
	}
	return out, nil
}

// unmaskedOf lists the populated positions of one row's mask.
func unmaskedOf(rowMask []bool) []int {
	dims := make([]int, 0, coordinateDims)
	for j, masked := range rowMask {
		if !masked {
			dims = append(dims, j)
		}
	}
	return dims
}

// finiteDims lists the positions of a row holding finite values, the mask
// convention of rows already filled with NaN sentinels.
func finiteDims(row []float64) []int {
	dims := make([]int, 0, len(row))
	for j, v := range row {
		if !math.IsNaN(v) {
			dims = append(dims, j)
		}
	}
	return dims
}

// maskCovariance copies a full-rank covariance, overwriting masked rows and
// columns with NaN.
func maskCovariance(cov *mat.SymDense, rowMask []bool) *mat.SymDense {
	out := mat.NewSymDense(coordinateDims, nil)
	out.CopySym(cov)
	for j, masked := range rowMask {
		if !masked {
			continue
		}
		for k := 0; k < coordinateDims; k++ {
			out.SetSym(j, k, math.NaN())
		}
	}
	return out
}

// allMaskedCovariance returns a fully masked 6×6 covariance.
func allMaskedCovariance() *mat.SymDense {
	out := mat.NewSymDense(coordinateDims, nil)
	for i := 0; i < coordinateDims; i++ {
		for j := i; j < coordinateDims; j++ {
			out.SetSym(i, j, math.NaN())
		}
	}
	return out
}

// scatterCovariance expands a D×D covariance over the given dimensions into
// a full 6×6 matrix, NaN everywhere else.
func scatterCovariance(cov *mat.SymDense, dims []int) *mat.SymDense {
	out := allMaskedCovariance()
	for a, i := range dims {
		for b := a; b < len(dims); b++ {
			out.SetSym(i, dims[b], cov.At(a, b))
		}
	}
	return out
}

// gatherCovariance extracts the D×D submatrix over the given dimensions.
func gatherCovariance(cov *mat.SymDense, dims []int) *mat.SymDense {
	d := len(dims)
	out := mat.NewSymDense(d, nil)
	for a := 0; a < d; a++ {
		for b := a; b < d; b++ {
			out.SetSym(a, b, cov.At(dims[a], dims[b]))
		}
	}
	return out
}

// snapCovariance zeroes elements with magnitude below covarianceSnapε. NaN
// passes through.
func snapCovariance(cov *mat.SymDense) {
	n := cov.SymmetricDim()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if math.Abs(cov.At(i, j)) < covarianceSnapε {
				cov.SetSym(i, j, 0)
			}
		}
	}
}

// denseToSym reads the upper triangle of a square matrix into a SymDense.
func denseToSym(d *mat.Dense) *mat.SymDense {
	n, _ := d.Dims()
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.SetSym(i, j, d.At(i, j))
		}
	}
	return out
}

// rotateCovariances applies Σ' = R·Σ·Rᵀ per row with the full 6×6 rotation
// and snaps sub-tolerance elements. NaN rows of masked dimensions propagate
// through the products and stay masked.
func rotateCovariances(cs Covariances, m *mat.Dense) Covariances {
	if cs == nil {
		return nil
	}
	out := make(Covariances, len(cs))
	for i, cov := range cs {
		if cov == nil {
			continue
		}
		var tmp, rot mat.Dense
		tmp.Mul(m, cov)
		rot.Mul(&tmp, m.T())
		sym := denseToSym(&rot)
		snapCovariance(sym)
		out[i] = sym
	}
	return out
}

// TransformCovariances propagates per-row covariances through fn by Jacobian
// linearization: Σ' = J·Σ·Jᵀ with J evaluated by central finite differences
// at the nominal row, restricted to the unmasked dimensions on both sides of
// the conversion. Masked dimensions keep NaN rows and columns and
// sub-tolerance elements snap to zero.
func TransformCovariances(rows [][]float64, covs Covariances, fn ConversionFunc) (Covariances, error) {
	if covs == nil {
		return nil, nil
	}
	if len(covs) != len(rows) {
		return nil, fmt.Errorf("%d covariance matrices for %d coordinate rows: %w", len(covs), len(rows), ErrInvalidShape)
	}
	out := make(Covariances, len(covs))
	for i, cov := range covs {
		if cov == nil {
			continue
		}
		row := rows[i]
		dimsIn := finiteDims(row)
		dimsOut := finiteDims(fn(i, row))
		if len(dimsIn) == 0 || len(dimsOut) == 0 {
			out[i] = allMaskedCovariance()
			continue
		}
		jac := mat.NewDense(len(dimsOut), len(dimsIn), nil)
		plus := make([]float64, coordinateDims)
		minus := make([]float64, coordinateDims)
		for k, dk := range dimsIn {
			copy(plus, row)
			copy(minus, row)
			plus[dk] += jacobianStep
			minus[dk] -= jacobianStep
			fp := fn(i, plus)
			fm := fn(i, minus)
			for r, dr := range dimsOut {
				jac.Set(r, k, (fp[dr]-fm[dr])/(2*jacobianStep))
			}
		}
		sub := gatherCovariance(cov, dimsIn)
		var tmp, rot mat.Dense
		tmp.Mul(jac, sub)
		rot.Mul(&tmp, jac.T())
		full := scatterCovariance(denseToSym(&rot), dimsOut)
		snapCovariance(full)
		out[i] = full
	}
	return out, nil
}

// SampleCovariances propagates per-row covariances by Monte Carlo: nSamples
// draws from the normal distribution at each row are mapped through fn and
// the covariance of the outputs estimated from the sample. It complements
// TransformCovariances where the conversion is too nonlinear for a local
// Jacobian to hold across the error ellipsoid.
func SampleCovariances(rows [][]float64, covs Covariances, fn ConversionFunc, nSamples int, src rand.Source) (Covariances, error) {
	if covs == nil {
		return nil, nil
	}
	if len(covs) != len(rows) {
		return nil, fmt.Errorf("%d covariance matrices for %d coordinate rows: %w", len(covs), len(rows), ErrInvalidShape)
	}
	out := make(Covariances, len(covs))
	for i, cov := range covs {
		if cov == nil {
			continue
		}
		row := rows[i]
		dimsIn := finiteDims(row)
		dimsOut := finiteDims(fn(i, row))
		if len(dimsIn) == 0 || len(dimsOut) == 0 {
			out[i] = allMaskedCovariance()
			continue
		}
		mean := make([]float64, len(dimsIn))
		for a, d := range dimsIn {
			mean[a] = row[d]
		}
		normal, ok := distmv.NewNormal(mean, gatherCovariance(cov, dimsIn), src)
		if !ok {
			return nil, fmt.Errorf("row %d: covariance is not positive definite", i)
		}
		samples := mat.NewDense(nSamples, len(dimsOut), nil)
		draw := make([]float64, len(dimsIn))
		pert := make([]float64, coordinateDims)
		for s := 0; s < nSamples; s++ {
			normal.Rand(draw)
			copy(pert, row)
			for a, d := range dimsIn {
				pert[d] = draw[a]
			}
			mapped := fn(i, pert)
			for b, d := range dimsOut {
				samples.Set(s, b, mapped[d])
			}
		}
		var est mat.SymDense
		stat.CovarianceMatrix(&est, samples, nil)
		full := scatterCovariance(&est, dimsOut)
		snapCovariance(full)
		out[i] = full
	}
	return out, nil
}
