package charts

// cubicSpline is a natural cubic spline through (xs[i], ys[i]). The trend
// transform uses it for display smoothing only: the curve passes through
// every data point and never replaces the underlying monthly values.
type cubicSpline struct {
	xs, ys []float64
	m      []float64 // second derivatives at the knots
}

// newCubicSpline fits a natural spline (zero second derivative at both ends).
// xs must be strictly increasing with at least two points.
func newCubicSpline(xs, ys []float64) *cubicSpline {
	n := len(xs)
	s := &cubicSpline{xs: xs, ys: ys, m: make([]float64, n)}
	if n < 3 {
		return s
	}

	// Thomas algorithm on the tridiagonal system for interior knots.
	h := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = xs[i+1] - xs[i]
	}
	diag := make([]float64, n)
	rhs := make([]float64, n)
	for i := 1; i < n-1; i++ {
		diag[i] = 2 * (h[i-1] + h[i])
		rhs[i] = 6 * ((ys[i+1]-ys[i])/h[i] - (ys[i]-ys[i-1])/h[i-1])
	}
	for i := 2; i < n-1; i++ {
		w := h[i-1] / diag[i-1]
		diag[i] -= w * h[i-1]
		rhs[i] -= w * rhs[i-1]
	}
	for i := n - 2; i >= 1; i-- {
		s.m[i] = (rhs[i] - h[i]*s.m[i+1]) / diag[i]
	}
	return s
}

// at evaluates the spline, clamping outside the knot range to the end segments.
func (s *cubicSpline) at(x float64) float64 {
	n := len(s.xs)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return s.ys[0]
	}

	j := n - 2
	for i := 0; i < n-1; i++ {
		if x <= s.xs[i+1] {
			j = i
			break
		}
	}

	h := s.xs[j+1] - s.xs[j]
	a := (s.xs[j+1] - x) / h
	b := (x - s.xs[j]) / h
	return a*s.ys[j] + b*s.ys[j+1] +
		((a*a*a-a)*s.m[j]+(b*b*b-b)*s.m[j+1])*h*h/6
}
