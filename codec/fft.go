package codec

import (
	"math"
	"math/bits"
	"math/cmplx"
	"sort"

	"github.com/arloliu/brro/binario"
)

// FFT keeps the DC bin plus the K-1 other frequency-domain bins with the
// largest magnitude from a window's one-sided spectrum, discarding the rest. It favors smooth,
// periodic signals where most of the energy sits in a handful of
// frequencies.
type FFT struct{}

func (FFT) ID() ID { return IDFFT }

// nextPow2 returns the smallest power of two >= n (n >= 1).
func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// fftForward runs an iterative radix-2 Cooley-Tukey FFT in place. len(x)
// must be a power of two.
func fftForward(x []complex128) {
	n := len(x)
	if n <= 1 {
		return
	}

	// Bit-reversal permutation.
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}

	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		theta := -2 * math.Pi / float64(size)
		wStep := cmplx.Exp(complex(0, theta))
		for start := 0; start < n; start += size {
			w := complex(1, 0)
			for k := 0; k < half; k++ {
				u := x[start+k]
				v := x[start+k+half] * w
				x[start+k] = u + v
				x[start+k+half] = u - v
				w *= wStep
			}
		}
	}
}

// fftInverse runs the inverse FFT in place, including the 1/n normalization.
func fftInverse(x []complex128) {
	n := len(x)
	for i := range x {
		x[i] = cmplx.Conj(x[i])
	}
	fftForward(x)
	for i := range x {
		x[i] = cmplx.Conj(x[i]) / complex(float64(n), 0)
	}
}

type freqBin struct {
	pos  int
	val  complex128
	mag  float64
}

func (FFT) Encode(data []float64) ([]byte, error) {
	return encodeFFT(data, len(data))
}

func (f FFT) EncodeBounded(data []float64, maxError float64) ([]byte, error) {
	n := len(data)
	paddedLen := nextPow2(n)
	oneSided := paddedLen/2 + 1

	maxK := oneSided
	for k := 1; k <= maxK; k++ {
		payload, err := encodeFFTWithK(data, k)
		if err != nil {
			return nil, err
		}
		out, err := f.Decode(payload, n)
		if err != nil {
			return nil, err
		}
		if SMAPE(data, out) <= maxError || k == maxK {
			return payload, nil
		}
	}

	return encodeFFTWithK(data, maxK)
}

func encodeFFT(data []float64, maxFreq int) ([]byte, error) {
	return encodeFFTWithK(data, maxFreq)
}

func encodeFFTWithK(data []float64, k int) ([]byte, error) {
	n := len(data)
	paddedLen := nextPow2(n)

	buf := make([]complex128, paddedLen)
	for i, v := range data {
		buf[i] = complex(v, 0)
	}
	fftForward(buf)

	oneSided := paddedLen/2 + 1
	if k > oneSided {
		k = oneSided
	}

	bins := make([]freqBin, oneSided)
	for i := 0; i < oneSided; i++ {
		bins[i] = freqBin{pos: i, val: buf[i], mag: cmplx.Abs(buf[i])}
	}

	if k > len(bins) {
		k = len(bins)
	}
	if k < 1 {
		k = 1
	}

	// The DC bin is always retained; only the remaining k-1 slots are
	// chosen by magnitude.
	dc := bins[0]
	rest := append([]freqBin(nil), bins[1:]...)
	sort.SliceStable(rest, func(i, j int) bool {
		if rest[i].mag != rest[j].mag {
			return rest[i].mag > rest[j].mag
		}
		return rest[i].pos < rest[j].pos
	})

	remaining := k - 1
	if remaining > len(rest) {
		remaining = len(rest)
	}
	top := append([]freqBin{dc}, rest[:remaining]...)
	sort.Slice(top, func(i, j int) bool { return top[i].pos < top[j].pos })

	w := binario.NewWriter()
	defer w.Release()

	w.WriteVarint(uint64(paddedLen))
	w.WriteVarint(uint64(len(top)))
	for _, b := range top {
		w.WriteVarint(uint64(b.pos))
		w.WriteFloat32(float32(real(b.val)))
		w.WriteFloat32(float32(imag(b.val)))
	}

	out := make([]byte, w.Len())
	copy(out, w.Bytes())
	return out, nil
}

func (FFT) Decode(payload []byte, count int) ([]float64, error) {
	r := binario.NewReader(payload)

	paddedLenU, err := r.Varint()
	if err != nil {
		return nil, err
	}
	paddedLen := int(paddedLenU)
	oneSided := paddedLen/2 + 1

	n, err := r.Varint()
	if err != nil {
		return nil, err
	}

	spectrum := make([]complex128, oneSided)
	for i := uint64(0); i < n; i++ {
		pos, err := r.Varint()
		if err != nil {
			return nil, err
		}
		re, err := r.Float32()
		if err != nil {
			return nil, err
		}
		im, err := r.Float32()
		if err != nil {
			return nil, err
		}
		if int(pos) < oneSided {
			spectrum[pos] = complex(float64(re), float64(im))
		}
	}

	full := make([]complex128, paddedLen)
	copy(full, spectrum)
	for i := oneSided; i < paddedLen; i++ {
		full[i] = cmplx.Conj(full[paddedLen-i])
	}

	fftInverse(full)

	out := make([]float64, count)
	for i := 0; i < count && i < paddedLen; i++ {
		out[i] = math.Round(real(full[i])*10) / 10
	}

	return out, nil
}
