package meanshift

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

const (
	// DefaultMaxIterations caps the mean shift loop of a single seed.
	DefaultMaxIterations = 100

	// convergenceEpsilon bounds the squared displacement between two
	// successive iterates of a converged seed.
	convergenceEpsilon = 0.01

	// seedFactor scales the range radius into the tolerance under which two
	// adjacent starting vectors are near duplicates (medium and high levels).
	seedFactor = 0.1

	// trialFactor scales the range radius into the tolerance under which a
	// trial step is close enough to a neighbor's mode to adopt it (high
	// level). It must stay below fusionFactor.
	trialFactor = 0.25
)

// processedNeighbors are the offsets of the 8-neighbors that precede a
// pixel in row-major order, in the order they are consulted.
var processedNeighbors = [4][2]int{{-1, 0}, {-1, -1}, {0, -1}, {1, -1}}

// FilterStats counts the work done by a ModeFilter run.
type FilterStats struct {
	// Seeks is the number of pixels filtered by a full mean shift run.
	Seeks int
	// Propagated is the number of pixels given a mode without their own run.
	Propagated int
	// Iterations is the total number of mean shift steps taken.
	Iterations int64
	// NonConverged is the number of seeds that hit the iteration cap.
	NonConverged int
}

// Modes holds the converged feature vector of every pixel, Dim floats per
// pixel in row-major order.
type Modes struct {
	Width   int
	Height  int
	Dim     int
	Vectors []float64
}

// Len returns the number of pixels.
func (m *Modes) Len() int {
	return m.Width * m.Height
}

// At returns the mode of pixel i. The vector aliases the underlying storage.
func (m *Modes) At(i int) FeatureVector {
	return FeatureVector(m.Vectors[i*m.Dim : (i+1)*m.Dim : (i+1)*m.Dim])
}

// FilterOptions tunes a ModeFilter.
type FilterOptions struct {
	MaxIterations int
	Workers       int
	Logger        zerolog.Logger
}

// ModeFilter finds the mode every pixel converges to under a flat kernel.
type ModeFilter struct {
	fs      FeatureSpace
	speedUp SpeedUpLevel
	maxIter int
	workers int
	logger  zerolog.Logger
}

// NewModeFilter returns a filter over fs. Non-positive MaxIterations and
// Workers fall back to DefaultMaxIterations and a single worker.
func NewModeFilter(fs FeatureSpace, speedUp SpeedUpLevel, opts FilterOptions) *ModeFilter {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &ModeFilter{
		fs:      fs,
		speedUp: speedUp,
		maxIter: opts.MaxIterations,
		workers: opts.Workers,
		logger:  opts.Logger,
	}
}

// Filter returns the mode of every pixel of img.
//
// With SpeedUpNone rows are filtered concurrently; every pixel writes only
// its own slot, so the result does not depend on scheduling. The medium
// and high levels read modes written by earlier pixels and run serially in
// row-major order.
func (f *ModeFilter) Filter(img *Image) (*Modes, FilterStats) {
	run := &filterRun{
		fs:      f.fs,
		width:   img.Width,
		height:  img.Height,
		lattice: f.fs.Lattice(img),
	}
	modes := &Modes{
		Width:   img.Width,
		Height:  img.Height,
		Dim:     f.fs.Dim(),
		Vectors: make([]float64, img.Len()*f.fs.Dim()),
	}

	var stats FilterStats
	if img.Len() == 0 {
		return modes, stats
	}
	if f.speedUp == SpeedUpNone {
		stats = f.filterRows(run, modes)
	} else {
		stats = f.filterOrdered(run, modes)
	}

	if stats.NonConverged > 0 {
		f.logger.Warn().
			Int("pixels", stats.NonConverged).
			Int("max_iterations", f.maxIter).
			Msg("mean shift reached iteration cap; keeping last iterate")
	}
	return modes, stats
}

func (f *ModeFilter) filterRows(run *filterRun, modes *Modes) FilterStats {
	workers := min(f.workers, run.height)
	rows := make(chan int, workers*2)

	var iterations, nonConverged atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			y := make([]float64, modes.Dim)
			mean := make([]float64, modes.Dim)
			var its, nc int64
			for row := range rows {
				for x := 0; x < run.width; x++ {
					run.start(x, row, y)
					n, ok := run.seek(y, mean, f.maxIter)
					its += int64(n)
					if !ok {
						nc++
					}
					copy(modes.At(row*run.width+x), y)
				}
			}
			iterations.Add(its)
			nonConverged.Add(nc)
		}()
	}

	for row := 0; row < run.height; row++ {
		rows <- row
	}
	close(rows)
	wg.Wait()

	return FilterStats{
		Seeks:        modes.Len(),
		Iterations:   iterations.Load(),
		NonConverged: int(nonConverged.Load()),
	}
}

func (f *ModeFilter) filterOrdered(run *filterRun, modes *Modes) FilterStats {
	var stats FilterStats
	n := modes.Len()
	done := make([]bool, n)
	y := make([]float64, modes.Dim)
	mean := make([]float64, modes.Dim)
	trial := make([]float64, modes.Dim)

	for idx := 0; idx < n; idx++ {
		if done[idx] {
			continue
		}
		x, row := idx%run.width, idx/run.width
		run.start(x, row, y)
		budget := f.maxIter

		if f.speedUp == SpeedUpHigh && run.step(y, trial) {
			stats.Iterations++
			budget--
			if q := run.adoptable(idx, y, trial, done, modes); q >= 0 {
				run.transfer(modes, q, idx)
				done[idx] = true
				stats.Propagated++
				stats.Propagated += run.spreadSeed(idx, modes, done)
				continue
			}
			copy(y, trial)
		}

		its, ok := run.seek(y, mean, budget)
		stats.Iterations += int64(its)
		if !ok {
			stats.NonConverged++
		}
		copy(modes.At(idx), y)
		done[idx] = true
		stats.Seeks++
		stats.Propagated += run.spreadSeed(idx, modes, done)
	}
	return stats
}

// filterRun is the read-only state shared by all seeds of one Filter call.
type filterRun struct {
	fs      FeatureSpace
	width   int
	height  int
	lattice []float64
}

func (r *filterRun) rangeAt(i int) []float64 {
	n := r.fs.RangeDim
	return r.lattice[i*n : (i+1)*n]
}

// start writes the feature vector of pixel (x, y) into dst.
func (r *filterRun) start(x, y int, dst []float64) {
	dst[0] = float64(x)
	dst[1] = float64(y)
	copy(dst[2:], r.rangeAt(y*r.width+x))
}

// seek iterates mean shift on y in place for at most budget steps and
// reports the number of steps taken and whether the displacement fell
// below the tolerance.
func (r *filterRun) seek(y, mean []float64, budget int) (int, bool) {
	iters := 0
	for iters < budget {
		if !r.step(y, mean) {
			return iters, true
		}
		iters++
		var shift float64
		for k := range y {
			d := mean[k] - y[k]
			shift += d * d
		}
		copy(y, mean)
		if shift < convergenceEpsilon {
			return iters, true
		}
	}
	return iters, false
}

// step stores the mean of the kernel window centred on y in mean. It
// returns false if the window is empty.
func (r *filterRun) step(y, mean []float64) bool {
	hs := r.fs.SpatialRadius
	cx := int(math.Round(y[0]))
	cy := int(math.Round(y[1]))
	x0, x1 := max(cx-hs, 0), min(cx+hs, r.width-1)
	y0, y1 := max(cy-hs, 0), min(cy+hs, r.height-1)

	for k := range mean {
		mean[k] = 0
	}
	count := 0
	for j := y0; j <= y1; j++ {
		dy := float64(j) - y[1]
		for i := x0; i <= x1; i++ {
			dx := float64(i) - y[0]
			p := r.rangeAt(j*r.width + i)
			if !r.fs.InWindow(dx*dx+dy*dy, r.fs.RangeDist2(p, y[2:])) {
				continue
			}
			mean[0] += float64(i)
			mean[1] += float64(j)
			for k, v := range p {
				mean[2+k] += v
			}
			count++
		}
	}
	if count == 0 {
		return false
	}
	for k := range mean {
		mean[k] /= float64(count)
	}
	return true
}

// adoptable returns the already processed neighbor of idx whose mode the
// trial step from start approaches within the trial tolerance, or -1.
// Ties keep the first neighbor in processedNeighbors order.
func (r *filterRun) adoptable(idx int, start, trial []float64, done []bool, modes *Modes) int {
	tol := trialFactor * r.fs.RangeRadius
	tol2 := tol * tol
	x, row := idx%r.width, idx/r.width

	best, bestD := -1, math.Inf(1)
	for _, off := range processedNeighbors {
		qx, qy := x+off[0], row+off[1]
		if qx < 0 || qx >= r.width || qy < 0 {
			continue
		}
		q := qy*r.width + qx
		if !done[q] {
			continue
		}
		m := modes.At(q).Range()
		d := r.fs.RangeDist2(trial[2:], m)
		if d > tol2 || d > r.fs.RangeDist2(start[2:], m) {
			continue
		}
		if d < bestD {
			best, bestD = q, d
		}
	}
	return best
}

// transfer copies the range mode of pixel from onto pixel to, shifting the
// spatial part by the offset between the two pixels.
func (r *filterRun) transfer(modes *Modes, from, to int) {
	src := modes.At(from)
	dst := modes.At(to)
	dst[0] = src[0] + float64(to%r.width-from%r.width)
	dst[1] = src[1] + float64(to/r.width-from/r.width)
	copy(dst[2:], src[2:])
}

// spreadSeed copies the mode of seed to the pending 4-connected pixels
// reachable from it whose starting range values are near duplicates of the
// seed's, staying within the seed's spatial window. It returns the number
// of pixels assigned.
func (r *filterRun) spreadSeed(seed int, modes *Modes, done []bool) int {
	tol := seedFactor * r.fs.RangeRadius
	tol2 := tol * tol
	reach := max(r.fs.SpatialRadius, 1)
	sx, sy := seed%r.width, seed/r.width
	seedRange := r.rangeAt(seed)

	assigned := 0
	queue := []int{seed}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		px, py := p%r.width, p/r.width
		for _, off := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			qx, qy := px+off[0], py+off[1]
			if qx < 0 || qx >= r.width || qy < 0 || qy >= r.height {
				continue
			}
			if qx-sx > reach || sx-qx > reach || qy-sy > reach || sy-qy > reach {
				continue
			}
			q := qy*r.width + qx
			if done[q] || r.fs.RangeDist2(r.rangeAt(q), seedRange) > tol2 {
				continue
			}
			r.transfer(modes, seed, q)
			done[q] = true
			assigned++
			queue = append(queue, q)
		}
	}
	return assigned
}
