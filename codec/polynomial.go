package codec

import "github.com/arloliu/brro/binario"

// Polynomial reconstructs a window with a natural cubic spline through a
// sparse set of knots, the same knot-selection strategy as IDW but a
// smoother interpolant between them.
type Polynomial struct{}

func (Polynomial) ID() ID { return IDPolynomial }

func (Polynomial) Encode(data []float64) ([]byte, error) {
	return encodePolynomial(data, baselinePointCount(len(data)))
}

func encodePolynomial(data []float64, pointCount int) ([]byte, error) {
	positions := selectKnots(data, pointCount)

	w := binario.NewWriter()
	defer w.Release()

	w.WriteVarint(uint64(len(positions)))
	for _, p := range positions {
		w.WriteVarint(uint64(p))
		w.WriteFloat64(data[p])
	}

	out := make([]byte, w.Len())
	copy(out, w.Bytes())
	return out, nil
}

func (p Polynomial) EncodeBounded(data []float64, maxError float64) ([]byte, error) {
	baseline := baselinePointCount(len(data))
	points := baseline
	jump := 0

	var best []byte
	for iter := 1; ; iter++ {
		payload, err := encodePolynomial(data, points+jump)
		if err != nil {
			return nil, err
		}
		best = payload

		out, err := p.Decode(payload, len(data))
		if err != nil {
			return nil, err
		}
		if SMAPE(data, out) <= maxError {
			return payload, nil
		}
		if points+jump >= len(data) {
			return payload, nil
		}

		switch {
		case iter <= 17:
			jump += (points + jump) / 2
		case iter <= 22:
			jump += (points + jump) / 10
		default:
			return best, nil
		}
	}
}

func (Polynomial) Decode(payload []byte, count int) ([]float64, error) {
	r := binario.NewReader(payload)

	n, err := r.Varint()
	if err != nil {
		return nil, err
	}

	positions := make([]float64, n)
	values := make([]float64, n)
	for i := uint64(0); i < n; i++ {
		p, err := r.Varint()
		if err != nil {
			return nil, err
		}
		v, err := r.Float64()
		if err != nil {
			return nil, err
		}
		positions[i] = float64(p)
		values[i] = v
	}

	spline := newNaturalCubicSpline(positions, values)

	out := make([]float64, count)
	for x := 0; x < count; x++ {
		out[x] = spline.eval(float64(x))
	}

	return out, nil
}

// cubicSpline holds the per-segment coefficients of a natural cubic spline
// solved via the Thomas (tridiagonal) algorithm.
type cubicSpline struct {
	x, a, b, c, d []float64
}

func newNaturalCubicSpline(x, y []float64) *cubicSpline {
	n := len(x)
	if n < 2 {
		return &cubicSpline{x: x, a: y, b: make([]float64, n), c: make([]float64, n), d: make([]float64, n)}
	}

	h := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = x[i+1] - x[i]
		if h[i] == 0 {
			h[i] = 1
		}
	}

	alpha := make([]float64, n)
	for i := 1; i < n-1; i++ {
		alpha[i] = 3*(y[i+1]-y[i])/h[i] - 3*(y[i]-y[i-1])/h[i-1]
	}

	l := make([]float64, n)
	mu := make([]float64, n)
	z := make([]float64, n)
	l[0] = 1

	for i := 1; i < n-1; i++ {
		l[i] = 2*(x[i+1]-x[i-1]) - h[i-1]*mu[i-1]
		if l[i] == 0 {
			l[i] = 1
		}
		mu[i] = h[i] / l[i]
		z[i] = (alpha[i] - h[i-1]*z[i-1]) / l[i]
	}
	l[n-1] = 1

	c := make([]float64, n)
	b := make([]float64, n-1)
	d := make([]float64, n-1)

	for j := n - 2; j >= 0; j-- {
		c[j] = z[j] - mu[j]*c[j+1]
		b[j] = (y[j+1]-y[j])/h[j] - h[j]*(c[j+1]+2*c[j])/3
		d[j] = (c[j+1] - c[j]) / (3 * h[j])
	}

	return &cubicSpline{x: x, a: y, b: b, c: c, d: d}
}

// eval evaluates the spline at t, clamping to the first/last segment
// outside the knot range.
func (s *cubicSpline) eval(t float64) float64 {
	n := len(s.x)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return s.a[0]
	}

	i := 0
	for i < n-2 && t > s.x[i+1] {
		i++
	}

	dx := t - s.x[i]
	return s.a[i] + s.b[i]*dx + s.c[i]*dx*dx + s.d[i]*dx*dx*dx
}
