// Package vsri implements the Very Small Rolo Index: a piecewise-linear
// index mapping sample position to timestamp (and back), built for
// detecting gaps in an otherwise constant-rate series.
//
// Each contiguous run of constant-rate samples is stored as one segment
// describing the line y = mx + b (m is the sample period, b = y0 - m*x0 is
// the line's value at sample position 0) plus the number of samples it
// covers. Looking up a timestamp is solving that line for x; segments are
// scanned from the first, so best case is O(1) (the first segment), worst
// case O(N) in the number of segments.
package vsri

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arloliu/brro/errs"
	"github.com/arloliu/brro/internal/hash"
)

// Segment describes one constant-rate run: M is the sample period, X0/Y0
// are the run's first sample position and timestamp, N is the sample count.
type Segment struct {
	M, X0, Y0, N int64
}

func (s Segment) endY() int64 { return s.Y0 + s.M*(s.N-1) }

// Index is an in-memory VSRI. The zero value is an empty index.
type Index struct {
	minTS, maxTS int64
	segments     []Segment
}

// New returns an empty index.
func New() *Index { return &Index{} }

// Min returns the lowest indexed timestamp.
func (idx *Index) Min() int64 { return idx.minTS }

// Max returns the highest indexed timestamp.
func (idx *Index) Max() int64 { return idx.maxTS }

// Segments returns the index's segments in order. The returned slice must
// not be mutated.
func (idx *Index) Segments() []Segment { return idx.segments }

func (idx *Index) currentSegment() Segment {
	if len(idx.segments) == 0 {
		return Segment{}
	}
	return idx.segments[len(idx.segments)-1]
}

func (idx *Index) isFakeSegment() bool {
	return idx.currentSegment().M == 0
}

func calculateB(s Segment) int64 {
	return s.Y0 - s.M*s.X0
}

func (idx *Index) fitsSegment(y int64) bool {
	last := idx.currentSegment()
	b := calculateB(last)
	if (y-b)%last.M != 0 {
		return false
	}
	x := (y - b) / last.M
	return x == last.N+last.X0
}

func (idx *Index) createFakeSegment(y int64) Segment {
	s := idx.currentSegment()
	x := s.X0 + s.N
	return Segment{M: 0, X0: x, Y0: y, N: 1}
}

// generateSegment upgrades the trailing fake segment (only one known
// point) into a real one now that a second point has arrived.
func (idx *Index) generateSegment(y int64) Segment {
	last := idx.currentSegment()
	if last.M != 0 {
		return last
	}
	m := y - last.Y0
	return Segment{M: m, X0: last.X0, Y0: last.Y0, N: 2}
}

// UpdateForPoint appends the timestamp y as the next sample. Timestamps
// must not decrease from one call to the next: a y lower than the current
// max is rejected, a y equal to it is accepted.
func (idx *Index) UpdateForPoint(y int64) error {
	if y < idx.maxTS {
		return fmt.Errorf("%w: last=%d point=%d", errs.ErrIndexMonotonicity, idx.maxTS, y)
	}
	idx.maxTS = y

	if len(idx.segments) == 0 {
		idx.minTS = y
		idx.segments = append(idx.segments, idx.createFakeSegment(y))
		return nil
	}

	if idx.isFakeSegment() {
		idx.segments[len(idx.segments)-1] = idx.generateSegment(y)
		return nil
	}

	if idx.fitsSegment(y) {
		idx.segments[len(idx.segments)-1].N++
		return nil
	}

	idx.segments = append(idx.segments, idx.createFakeSegment(y))
	return nil
}

// GetSample returns the sample position for timestamp y, or false if no
// segment covers it exactly.
func (idx *Index) GetSample(y int64) (int64, bool) {
	for _, s := range idx.segments {
		if y >= s.Y0 && y <= s.endY() {
			if s.M == 0 {
				return s.X0, true
			}
			return (y - calculateB(s)) / s.M, true
		}
	}
	return 0, false
}

// GetTime returns the timestamp for sample position x.
func (idx *Index) GetTime(x int64) (int64, bool) {
	count := idx.SampleCount()
	switch {
	case x == 0:
		return idx.Min(), true
	case x > count:
		return 0, false
	case x == count:
		return idx.Max(), true
	}

	for _, s := range idx.segments {
		if x >= s.X0 && x < s.X0+s.N {
			return s.Y0 + s.M*(x-s.X0), true
		}
	}
	return 0, false
}

// GetNextSample returns the sample position at or after timestamp y. It
// returns (0, true) if y is before the index's range (no data yet, so the
// next available sample is the first one) and (0, false) if y is at or
// past the index's max (there is no "next" sample beyond the end).
func (idx *Index) GetNextSample(y int64) (int64, bool) {
	if y < idx.Min() {
		return 0, true
	}
	if y >= idx.Max() {
		return 0, false
	}
	for _, s := range idx.segments {
		if y <= s.Y0 {
			return s.X0, true
		}
		if y <= s.endY() {
			return s.X0 + (y-s.Y0+s.M-1)/s.M, true
		}
	}
	return 0, false
}

// GetPreviousSample returns the sample position at or before timestamp y.
// It returns (0, false) if y is before the index's range, and
// (SampleCount(), true) if y is at or past the index's max (the "previous"
// sample to a point past the end is the last sample written).
func (idx *Index) GetPreviousSample(y int64) (int64, bool) {
	if y < idx.Min() {
		return 0, false
	}
	if y >= idx.Max() {
		return idx.SampleCount(), true
	}
	for _, s := range idx.segments {
		if y < s.Y0 {
			return s.X0 - 1, true
		}
		if y <= s.endY() && s.M != 0 {
			return s.X0 + (y-s.Y0)/s.M, true
		}
	}
	return 0, false
}

// GetThisOrNext returns the sample at y if one exists, else the next one.
func (idx *Index) GetThisOrNext(y int64) (int64, bool) {
	if x, ok := idx.GetSample(y); ok {
		return x, true
	}
	return idx.GetNextSample(y)
}

// GetThisOrPrevious returns the sample at y if one exists, else the
// previous one.
func (idx *Index) GetThisOrPrevious(y int64) (int64, bool) {
	if x, ok := idx.GetSample(y); ok {
		return x, true
	}
	return idx.GetPreviousSample(y)
}

// SampleCount returns the total number of samples indexed so far.
func (idx *Index) SampleCount() int64 {
	last := idx.currentSegment()
	return last.N + last.X0
}

// IsEmpty reports whether a [start,end] timestamp range falls entirely in
// a gap between (or outside) the indexed segments.
func (idx *Index) IsEmpty(start, end int64) bool {
	if len(idx.segments) == 1 {
		s := idx.segments[0]
		if (start >= idx.Min() && start <= idx.Max()) || (end <= idx.Max() && end >= idx.Min()) {
			return false
		}
		if start < idx.Min() && end > idx.Max() {
			return false
		}
		_ = s
		return true
	}

	var previousSegEnd int64
	for i, s := range idx.segments {
		segEnd := s.endY()
		if i >= 1 && start > previousSegEnd && end < s.Y0 {
			return true
		}
		if (start >= s.Y0 && start <= segEnd) || (end <= segEnd && end >= s.Y0) {
			return false
		}
		if start < s.Y0 && end > segEnd {
			return false
		}
		previousSegEnd = segEnd
	}
	return true
}

// GetAllTimestamps expands every segment back into its full timestamp list.
func (idx *Index) GetAllTimestamps() []int64 {
	out := make([]int64, 0, idx.SampleCount())
	for _, s := range idx.segments {
		for i := int64(0); i < s.N; i++ {
			out = append(out, i*s.M+s.Y0)
		}
	}
	return out
}

// Flush writes the text representation of the index: min timestamp,
// max timestamp, one "m,x0,y0,n" line per segment, and a trailer line
// carrying an xxhash64 checksum of the body so Load can detect truncation.
func (idx *Index) Flush(w io.Writer) error {
	var body strings.Builder
	fmt.Fprintf(&body, "%d\n%d\n", idx.minTS, idx.maxTS)
	for _, s := range idx.segments {
		fmt.Fprintf(&body, "%d,%d,%d,%d\n", s.M, s.X0, s.Y0, s.N)
	}

	sum := hash.Sum64(body.String())
	if _, err := io.WriteString(w, body.String()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "#%016x\n", sum)
	return err
}

// Load reads an index previously written by Flush, verifying its checksum
// trailer when present.
func Load(r io.Reader) (*Index, error) {
	scanner := bufio.NewScanner(r)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) < 2 {
		return nil, errs.ErrIndexCorrupt
	}

	bodyLines := lines
	var trailer string
	if n := len(lines); n > 0 && strings.HasPrefix(lines[n-1], "#") {
		trailer = lines[n-1]
		bodyLines = lines[:n-1]
	}

	if trailer != "" {
		var body strings.Builder
		for _, l := range bodyLines {
			body.WriteString(l)
			body.WriteByte('\n')
		}
		want := strings.TrimPrefix(trailer, "#")
		got := fmt.Sprintf("%016x", hash.Sum64(body.String()))
		if want != got {
			return nil, errs.ErrIndexChecksumMismatch
		}
	}

	minTS, err := strconv.ParseInt(strings.TrimSpace(bodyLines[0]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrIndexCorrupt, err)
	}
	maxTS, err := strconv.ParseInt(strings.TrimSpace(bodyLines[1]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrIndexCorrupt, err)
	}

	segments := make([]Segment, 0, len(bodyLines)-2)
	for _, line := range bodyLines[2:] {
		fields := strings.Split(line, ",")
		if len(fields) != 4 {
			return nil, errs.ErrIndexCorrupt
		}
		vals := [4]int64{}
		for i, f := range fields {
			v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", errs.ErrIndexCorrupt, err)
			}
			vals[i] = v
		}
		segments = append(segments, Segment{M: vals[0], X0: vals[1], Y0: vals[2], N: vals[3]})
	}

	return &Index{minTS: minTS, maxTS: maxTS, segments: segments}, nil
}
